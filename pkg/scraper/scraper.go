package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pinpager/pkg/config"
	errs "pinpager/pkg/errors"
	"pinpager/pkg/logger"
	"pinpager/pkg/ratelimit"
	"pinpager/pkg/retry"
)

// Client fetches Pinterest profile pages and image bytes. One client is
// shared by all chats; a single rate limiter covers both kinds of request.
type Client struct {
	httpClient   *http.Client
	headers      map[string]string
	limiter      ratelimit.Limiter
	pageTimeout  time.Duration
	imageTimeout time.Duration
	maxRetries   int
	logger       logger.Logger
}

// New creates a new Pinterest scraping client
func New(cfg *config.Config, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Client{
		httpClient: &http.Client{},
		headers: map[string]string{
			"User-Agent":      cfg.Scraper.UserAgent,
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.9",
			"Cache-Control":   "no-cache",
		},
		limiter:      ratelimit.NewTokenBucket(cfg.Scraper.RequestsPerMinute, time.Minute),
		pageTimeout:  cfg.Scraper.Timeout,
		imageTimeout: cfg.Download.FetchTimeout,
		maxRetries:   cfg.Scraper.MaxRetries,
		logger:       log,
	}
}

// FetchImages loads a profile page and returns the image URLs found in its
// grid, in document order. The returned slice may be empty; deciding whether
// that is viable for a browsing session is the caller's concern.
func (c *Client) FetchImages(ctx context.Context, profileURL string) ([]string, error) {
	profileURL = NormalizeProfileURL(profileURL)

	c.logger.DebugWithFields("fetching profile page", map[string]interface{}{
		"url": profileURL,
	})

	body, err := retry.DoWithResult(func() ([]byte, error) {
		return c.fetch(ctx, profileURL, c.pageTimeout)
	}, &retry.Config{
		MaxAttempts: c.maxRetries,
		Backoff:     retry.DefaultExponentialBackoff(),
		RetryIf:     retry.DefaultRetryIf,
		Context:     ctx,
		Logger:      c.logger,
	})
	if err != nil {
		c.logger.ErrorWithFields("failed to fetch profile page", map[string]interface{}{
			"url":   profileURL,
			"error": err.Error(),
		})
		return nil, err
	}

	urls, err := ExtractImageURLs(bytes.NewReader(body))
	if err != nil {
		c.logger.ErrorWithFields("failed to parse profile page", map[string]interface{}{
			"url":   profileURL,
			"error": err.Error(),
		})
		return nil, err
	}

	c.logger.DebugWithFields("extracted profile images", map[string]interface{}{
		"url":   profileURL,
		"count": len(urls),
	})

	return urls, nil
}

// FetchBytes downloads a single image
func (c *Client) FetchBytes(ctx context.Context, imageURL string) ([]byte, error) {
	c.logger.DebugWithFields("downloading image", map[string]interface{}{
		"url": imageURL,
	})

	data, err := c.fetch(ctx, imageURL, c.imageTimeout)
	if err != nil {
		c.logger.ErrorWithFields("failed to download image", map[string]interface{}{
			"url":   imageURL,
			"error": err.Error(),
		})
		return nil, err
	}

	c.logger.DebugWithFields("downloaded image", map[string]interface{}{
		"url":  imageURL,
		"size": len(data),
	})

	return data, nil
}

// fetch performs one rate-limited, timeout-bounded GET and reads the body
func (c *Client) fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	c.limiter.Wait()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &errs.Error{
			Type:    errs.ErrorTypeUnknown,
			Message: fmt.Sprintf("failed to create request: %v", err),
		}
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Timeout expiry surfaces as an ordinary fetch failure
		return nil, &errs.Error{
			Type:    errs.ErrorTypeNetwork,
			Message: fmt.Sprintf("network error: %v", err),
		}
	}
	defer resp.Body.Close()

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"url":      url,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	})

	if err := checkResponseStatus(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.Error{
			Type:    errs.ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Code:    resp.StatusCode,
		}
	}

	return body, nil
}

// checkResponseStatus maps HTTP response status onto typed errors
func checkResponseStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return &errs.Error{
			Type:    errs.ErrorTypeNotFound,
			Message: "resource not found",
			Code:    resp.StatusCode,
		}
	case resp.StatusCode == http.StatusTooManyRequests:
		return &errs.Error{
			Type:    errs.ErrorTypeRateLimit,
			Message: "rate limit exceeded",
			Code:    resp.StatusCode,
		}
	case resp.StatusCode >= 500:
		return &errs.Error{
			Type:    errs.ErrorTypeServerError,
			Message: "server error",
			Code:    resp.StatusCode,
		}
	default:
		return &errs.Error{
			Type:    errs.ErrorTypeUnknown,
			Message: fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
			Code:    resp.StatusCode,
		}
	}
}

// NormalizeProfileURL turns user-submitted link text into a fetchable URL.
// Links beginning with "www" are accepted the same way the chat input
// validation accepts them.
func NormalizeProfileURL(link string) string {
	link = strings.TrimSpace(link)
	if strings.HasPrefix(link, "www") {
		return "https://" + link
	}
	return link
}
