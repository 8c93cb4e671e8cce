package bot

import (
	"context"
	"strings"

	"pinpager/internal/downloader"
	errs "pinpager/pkg/errors"
	"pinpager/pkg/logger"
	"pinpager/pkg/pager"
	"pinpager/pkg/session"
)

// Keyboard selects which navigation buttons accompany a text message
type Keyboard int

const (
	KeyboardNone Keyboard = iota
	KeyboardNextSwitch
	KeyboardSwitchOnly
)

// Callback data values carried by the navigation buttons
const (
	CallbackNext   = "next"
	CallbackSwitch = "switch"
)

// User-visible messages
const (
	msgWelcome      = "Welcome! Send a link to a Pinterest profile to start browsing its images."
	msgInsufficient = "Not enough images found at that profile. Please send a different link."
	msgInvalid      = "Invalid input. Please send a valid Pinterest profile link."
	msgMorePrompt   = "Tap 'Next' to see more images or 'Switch account' to browse a different profile."
	msgExhausted    = "No more images available. Tap 'Switch account' to browse a different profile."
	msgNoMore       = "No more images available."
	msgSwitchPrompt = "Please send a link to another Pinterest profile."
)

// ImageSource resolves a profile URL into an ordered list of image URLs
type ImageSource interface {
	FetchImages(ctx context.Context, profileURL string) ([]string, error)
}

// ByteFetcher resolves one image URL into raw bytes
type ByteFetcher interface {
	FetchBytes(ctx context.Context, imageURL string) ([]byte, error)
}

// Transport is the outbound side of the chat: plain messages with optional
// navigation keyboards, photo uploads, and callback acknowledgments.
type Transport interface {
	SendText(chatID int64, text string, keyboard Keyboard) error
	SendPhoto(chatID int64, data []byte) error
	AnswerCallback(callbackID string, notice string) error
}

// Controller interprets inbound chat events against the session store and
// pagination engine and emits outbound actions. It is safe for concurrent
// use; events for the same chat serialize on the store's per-chat lock only
// around session reads and writes, never around network calls.
type Controller struct {
	store     *session.Store
	source    ImageSource
	fetcher   ByteFetcher
	transport Transport
	workers   int
	logger    logger.Logger
}

// NewController creates a session controller
func NewController(store *session.Store, source ImageSource, fetcher ByteFetcher, transport Transport, workers int, log logger.Logger) *Controller {
	if log == nil {
		log = logger.GetLogger()
	}
	if workers <= 0 {
		workers = 1
	}
	return &Controller{
		store:     store,
		source:    source,
		fetcher:   fetcher,
		transport: transport,
		workers:   workers,
		logger:    log,
	}
}

// HandleText processes one inbound text message
func (c *Controller) HandleText(ctx context.Context, chatID int64, text string) {
	text = strings.TrimSpace(text)

	switch {
	case strings.HasPrefix(text, "/start"):
		c.sendText(chatID, msgWelcome, KeyboardNone)
	case strings.HasPrefix(text, "http") || strings.HasPrefix(text, "www"):
		c.handleLink(ctx, chatID, text)
	default:
		c.sendText(chatID, msgInvalid, KeyboardNone)
	}
}

// handleLink scrapes the submitted profile and starts a fresh session.
// The scrape runs before any session state is touched, so a failed or
// too-small profile leaves the previous session fully intact. The
// replacement commits under the per-chat lock so it cannot interleave
// with an in-flight page advance.
func (c *Controller) handleLink(ctx context.Context, chatID int64, link string) {
	images, err := c.source.FetchImages(ctx, link)
	if err != nil {
		// Scrape failure and a viable-but-empty profile render the same
		// user text; the log keeps them distinct.
		c.logger.WarnWithFields("profile scrape failed", map[string]interface{}{
			"chat_id":    chatID,
			"url":        link,
			"error":      err.Error(),
			"error_type": string(errs.TypeOf(err)),
		})
		c.sendText(chatID, msgInsufficient, KeyboardNone)
		return
	}

	page, remainder, err := pager.InitialPage(images)
	if err != nil {
		c.logger.InfoWithFields("profile below minimum viable batch", map[string]interface{}{
			"chat_id": chatID,
			"url":     link,
			"count":   len(images),
		})
		c.sendText(chatID, msgInsufficient, KeyboardNone)
		return
	}

	c.store.WithLock(chatID, func() {
		c.store.Put(chatID, session.Session{SourceURL: link, Pending: remainder})
	})

	c.logger.InfoWithFields("session started", map[string]interface{}{
		"chat_id": chatID,
		"url":     link,
		"total":   len(images),
	})

	c.sendPage(ctx, chatID, page)
}

// HandleCallback processes one inbound navigation button press. Every
// callback is answered exactly once regardless of the branch taken.
func (c *Controller) HandleCallback(ctx context.Context, chatID int64, callbackID, data string) {
	switch data {
	case CallbackNext:
		c.handleNext(ctx, chatID, callbackID)
	case CallbackSwitch:
		c.answerCallback(callbackID, "")
		c.sendText(chatID, msgSwitchPrompt, KeyboardNone)
	default:
		c.logger.WarnWithFields("unknown callback data", map[string]interface{}{
			"chat_id": chatID,
			"data":    data,
		})
		c.answerCallback(callbackID, "")
	}
}

// handleNext advances the session by one page. The read-compute-commit
// cycle runs under the per-chat lock so two concurrent presses advance by
// exactly two pages, never duplicating or skipping one. Image downloads
// happen after the commit, outside the critical section.
func (c *Controller) handleNext(ctx context.Context, chatID int64, callbackID string) {
	var page []string
	c.store.WithLock(chatID, func() {
		sess, ok := c.store.Get(chatID)
		if !ok {
			return
		}
		next, rest, _ := pager.NextPage(sess.Pending)
		if len(next) == 0 {
			return
		}
		c.store.UpdatePending(chatID, rest)
		page = next
	})

	if len(page) == 0 {
		c.answerCallback(callbackID, msgNoMore)
		return
	}

	c.answerCallback(callbackID, "")
	c.sendPage(ctx, chatID, page)
}

// sendPage delivers one page of photos in page order, then the follow-up
// navigation prompt. An image whose download failed is skipped and the rest
// of the page still goes out.
func (c *Controller) sendPage(ctx context.Context, chatID int64, page []string) {
	blobs := downloader.FetchPage(ctx, c.fetcher, page, c.workers, c.logger)

	sent := 0
	for i, data := range blobs {
		if data == nil {
			c.logger.WarnWithFields("skipping failed image", map[string]interface{}{
				"chat_id": chatID,
				"url":     page[i],
			})
			continue
		}
		if err := c.transport.SendPhoto(chatID, data); err != nil {
			c.logger.ErrorWithFields("failed to send photo", map[string]interface{}{
				"chat_id": chatID,
				"url":     page[i],
				"error":   err.Error(),
			})
			continue
		}
		sent++
	}

	c.logger.InfoWithFields("page delivered", map[string]interface{}{
		"chat_id": chatID,
		"sent":    sent,
		"of":      len(page),
	})

	sess, ok := c.store.Get(chatID)
	switch {
	case ok && len(sess.Pending) >= pager.PageSize:
		c.sendText(chatID, msgMorePrompt, KeyboardNextSwitch)
	case ok:
		c.sendText(chatID, msgExhausted, KeyboardSwitchOnly)
	default:
		c.sendText(chatID, msgNoMore, KeyboardNone)
	}
}

// sendText sends a message, logging transport failures instead of
// propagating them into the per-event task
func (c *Controller) sendText(chatID int64, text string, keyboard Keyboard) {
	if err := c.transport.SendText(chatID, text, keyboard); err != nil {
		c.logger.ErrorWithFields("failed to send message", map[string]interface{}{
			"chat_id": chatID,
			"error":   err.Error(),
		})
	}
}

// answerCallback acknowledges a callback, logging transport failures
func (c *Controller) answerCallback(callbackID, notice string) {
	if err := c.transport.AnswerCallback(callbackID, notice); err != nil {
		c.logger.ErrorWithFields("failed to answer callback", map[string]interface{}{
			"callback_id": callbackID,
			"error":       err.Error(),
		})
	}
}
