// Package scraper implements the Pinterest image source and byte fetcher.
//
// The client fetches a public profile page over HTTP, extracts the grid
// image URLs from the HTML, and downloads individual images on demand.
// Profile fetches are retried with exponential backoff on transient
// failures; both request kinds share one token-bucket rate limiter and are
// bounded by configured timeouts.
package scraper
