package util

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gosuri/uilive"
)

// ProgressWriter shows the most recently written line on a live-updating
// terminal line. It satisfies io.Writer so a runner can stream per-episode
// progress into it; the display refreshes at a fixed frequency rather than
// on every write.
type ProgressWriter struct {
	frequency time.Duration
	doneCh    chan struct{}
	stopOnce  sync.Once

	mu   sync.Mutex
	last string

	writer *uilive.Writer
}

func NewProgressWriter(frequency time.Duration) *ProgressWriter {
	return &ProgressWriter{
		frequency: frequency,
		doneCh:    make(chan struct{}),
		writer:    uilive.New(),
	}
}

func (p *ProgressWriter) Write(bs []byte) (int, error) {
	p.mu.Lock()
	p.last = string(bs)
	p.mu.Unlock()
	return len(bs), nil
}

func (p *ProgressWriter) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-p.doneCh:
				p.flush()
				p.writer.Stop()
				return
			case <-ctx.Done():
				p.writer.Stop()
				return
			case <-time.After(p.frequency):
				p.flush()
			}
		}
	}()
}

func (p *ProgressWriter) Stop() {
	p.stopOnce.Do(func() {
		close(p.doneCh)
	})
}

func (p *ProgressWriter) flush() {
	p.mu.Lock()
	line := p.last
	p.mu.Unlock()
	if line == "" {
		return
	}
	fmt.Fprint(p.writer, line)
	p.writer.Flush()
}
