package util

import (
	"fmt"
	"sync"
	"time"

	"github.com/gosuri/uilive"
)

// ProgressWriter keeps a single live status line in the terminal,
// refreshed at a fixed frequency. It implements io.Writer; the most
// recent write wins.
type ProgressWriter struct {
	mu        sync.Mutex
	line      string
	frequency time.Duration
	doneCh    chan struct{}

	writer *uilive.Writer
}

func NewProgressWriter(frequency time.Duration) *ProgressWriter {
	return &ProgressWriter{
		frequency: frequency,
		doneCh:    make(chan struct{}),

		writer: uilive.New(),
	}
}

// Write implements io.Writer. It never fails; the line is rendered on
// the next refresh.
func (p *ProgressWriter) Write(bs []byte) (int, error) {
	p.mu.Lock()
	p.line = string(bs)
	p.mu.Unlock()
	return len(bs), nil
}

func (p *ProgressWriter) Start() {
	go func() {
		for {
			select {
			case <-p.doneCh:
				return
			case <-time.After(p.frequency):
				p.print()
			}
		}
	}()
}

// Stop renders the final line and releases the terminal.
func (p *ProgressWriter) Stop() {
	close(p.doneCh)
	p.print()
	p.writer.Stop()
}

func (p *ProgressWriter) print() {
	p.mu.Lock()
	line := p.line
	p.mu.Unlock()
	if line == "" {
		return
	}
	fmt.Fprint(p.writer, line)
	p.writer.Flush()
}
