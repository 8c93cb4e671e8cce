package downloader

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	errs "pinpager/pkg/errors"
)

// mockFetcher is a mock byte fetcher
type mockFetcher struct {
	delay     time.Duration
	failURLs  map[string]bool
	callCount int32
	mu        sync.Mutex
}

func (m *mockFetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	atomic.AddInt32(&m.callCount, 1)
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	m.mu.Lock()
	fail := m.failURLs[url]
	m.mu.Unlock()
	if fail {
		return nil, errs.New(errs.ErrorTypeNetwork, "download failed")
	}
	return []byte(url), nil
}

func TestFetchPagePreservesOrder(t *testing.T) {
	urls := make([]string, 6)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://example.com/photo%d.jpg", i)
	}

	fetcher := &mockFetcher{delay: 5 * time.Millisecond}
	page := FetchPage(context.Background(), fetcher, urls, 3, nil)

	if len(page) != len(urls) {
		t.Fatalf("Expected %d slots, got %d", len(urls), len(page))
	}
	for i, data := range page {
		if string(data) != urls[i] {
			t.Errorf("Slot %d: expected %q, got %q", i, urls[i], string(data))
		}
	}
	if got := int(atomic.LoadInt32(&fetcher.callCount)); got != len(urls) {
		t.Errorf("Expected %d fetches, got %d", len(urls), got)
	}
}

func TestFetchPageFailedSlotIsNil(t *testing.T) {
	urls := []string{
		"https://example.com/photo0.jpg",
		"https://example.com/photo1.jpg",
		"https://example.com/photo2.jpg",
	}

	fetcher := &mockFetcher{failURLs: map[string]bool{urls[1]: true}}
	page := FetchPage(context.Background(), fetcher, urls, 2, nil)

	if page[0] == nil || page[2] == nil {
		t.Error("Healthy slots must be filled")
	}
	if page[1] != nil {
		t.Error("Failed slot must be nil")
	}
}

func TestFetchPageSingleWorker(t *testing.T) {
	urls := []string{"https://example.com/a.jpg", "https://example.com/b.jpg"}

	fetcher := &mockFetcher{}
	page := FetchPage(context.Background(), fetcher, urls, 0, nil)

	for i, data := range page {
		if string(data) != urls[i] {
			t.Errorf("Slot %d: expected %q, got %q", i, urls[i], string(data))
		}
	}
}

func TestFetchPageCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	urls := []string{"https://example.com/a.jpg", "https://example.com/b.jpg"}
	fetcher := &mockFetcher{}
	page := FetchPage(ctx, fetcher, urls, 2, nil)

	for i, data := range page {
		if data != nil {
			t.Errorf("Slot %d: expected nil after cancellation, got %q", i, string(data))
		}
	}
}

func TestFetchPageEmptyInput(t *testing.T) {
	fetcher := &mockFetcher{}
	page := FetchPage(context.Background(), fetcher, nil, 3, nil)

	if len(page) != 0 {
		t.Errorf("Expected empty page, got %d slots", len(page))
	}
}
