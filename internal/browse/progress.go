package browse

import "sync"

// progressTracker carries download progress from the fetcher goroutine to
// the view. The downloader calls update after every chunk; the program
// polls a snapshot on a short tick instead of flooding the update loop
// with one message per chunk.
type progressTracker struct {
	mu       sync.Mutex
	name     string
	received int64
	total    int64
	index    int
	count    int
}

func newProgressTracker(count int) *progressTracker {
	return &progressTracker{count: count}
}

// update implements download.Progress.
func (t *progressTracker) update(name string, received, total int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if name != t.name {
		t.name = name
		t.index++
	}
	t.received = received
	t.total = total
}

// progressSnapshot is one consistent read of the tracker.
type progressSnapshot struct {
	name     string
	received int64
	total    int64
	index    int
	count    int
}

func (t *progressTracker) snapshot() progressSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return progressSnapshot{
		name:     t.name,
		received: t.received,
		total:    t.total,
		index:    t.index,
		count:    t.count,
	}
}
