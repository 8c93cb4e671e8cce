package downloader

import (
	"context"
	"sync"
	"time"

	"pinpager/pkg/logger"
)

// ByteFetcher downloads a single image
type ByteFetcher interface {
	FetchBytes(ctx context.Context, imageURL string) ([]byte, error)
}

// job is one slot of a page to download
type job struct {
	index int
	url   string
}

// result carries the downloaded bytes back to the slot they belong to
type result struct {
	index int
	data  []byte
	err   error
}

// FetchPage downloads the images of one page concurrently while preserving
// page order in the returned slice. A slot whose download failed is nil;
// callers skip it and continue with the rest of the page rather than
// aborting the whole delivery.
func FetchPage(ctx context.Context, fetcher ByteFetcher, urls []string, numWorkers int, log logger.Logger) [][]byte {
	if log == nil {
		log = logger.GetLogger()
	}
	if numWorkers <= 0 {
		numWorkers = 1
	}
	if numWorkers > len(urls) {
		numWorkers = len(urls)
	}

	jobs := make(chan job, len(urls))
	results := make(chan result, len(urls))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			worker(ctx, workerID, fetcher, jobs, results, log)
		}(i)
	}

	for i, u := range urls {
		jobs <- job{index: i, url: u}
	}
	close(jobs)

	wg.Wait()
	close(results)

	page := make([][]byte, len(urls))
	for res := range results {
		if res.err != nil {
			continue
		}
		page[res.index] = res.data
	}
	return page
}

// worker drains the job queue until it is closed or the context is cancelled
func worker(ctx context.Context, workerID int, fetcher ByteFetcher, jobs <-chan job, results chan<- result, log logger.Logger) {
	for j := range jobs {
		select {
		case <-ctx.Done():
			results <- result{index: j.index, err: ctx.Err()}
			continue
		default:
		}

		start := time.Now()
		data, err := fetcher.FetchBytes(ctx, j.url)
		if err != nil {
			log.WarnWithFields("worker failed to download image", map[string]interface{}{
				"worker_id": workerID,
				"url":       j.url,
				"error":     err.Error(),
				"duration":  time.Since(start),
			})
			results <- result{index: j.index, err: err}
			continue
		}

		log.DebugWithFields("worker downloaded image", map[string]interface{}{
			"worker_id": workerID,
			"url":       j.url,
			"size":      len(data),
			"duration":  time.Since(start),
		})
		results <- result{index: j.index, data: data}
	}
}
