package downloadmgr

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of parallel downloads if none is set
const DefaultConcurrency = 4

// DownloadManager includes a queue to download
type DownloadManager struct {
	queue []Downloader
	// Concurrency is the number of parallel downloads
	Concurrency int
	// OnProgress is called with the progress in percent after every finished download
	OnProgress func(p int)
}

// Downloader allows downloadmgr to download the file
type Downloader interface {
	Download(ctx context.Context) error
}

// New creates a new downloadmgr
func New() *DownloadManager {
	return &DownloadManager{Concurrency: DefaultConcurrency}
}

// Add adds a new item to the queue
func (d *DownloadManager) Add(i Downloader) {
	d.queue = append(d.queue, i)
}

// Len returns the number of queued items
func (d *DownloadManager) Len() int {
	return len(d.queue)
}

// Start downloads all queued items and empties the queue. The first error
// cancels all other downloads and is returned
func (d *DownloadManager) Start(ctx context.Context) error {
	queue := d.queue
	d.queue = nil
	if len(queue) == 0 {
		return nil
	}

	limit := d.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var mu sync.Mutex
	done := 0
	for _, item := range queue {
		item := item
		g.Go(func() error {
			if err := item.Download(ctx); err != nil {
				return err
			}
			if d.OnProgress != nil {
				mu.Lock()
				done++
				d.OnProgress(done * 100 / len(queue))
				mu.Unlock()
			}
			return nil
		})
	}
	return g.Wait()
}
