package pager

import (
	errs "pinpager/pkg/errors"
)

const (
	// PageSize is the number of images delivered per interaction
	PageSize = 3

	// MinViable is the minimum image count required to start browsing a profile
	MinViable = 3
)

// ErrInsufficientImages is returned when a profile yields fewer than MinViable images
var ErrInsufficientImages = errs.New(errs.ErrorTypeInsufficient, "profile yielded fewer images than the minimum viable batch")

// InitialPage splits a freshly scraped image list into the first page and the
// remainder that becomes the session's pending queue. Order is preserved and
// no element is duplicated or dropped across page and remainder.
func InitialPage(all []string) (page []string, remainder []string, err error) {
	if len(all) < MinViable {
		return nil, nil, ErrInsufficientImages
	}
	return all[:PageSize], all[PageSize:], nil
}

// NextPage takes the pending queue and produces the next full page. Fewer
// than PageSize images remaining means exhaustion: no partial final page is
// served and the queue is left untouched. hasMore reports whether another
// full page will be available after this one.
func NextPage(remaining []string) (page []string, newRemaining []string, hasMore bool) {
	if len(remaining) < PageSize {
		return nil, remaining, false
	}
	page = remaining[:PageSize]
	newRemaining = remaining[PageSize:]
	return page, newRemaining, len(newRemaining) >= PageSize
}
