// Package loop drives a particle field one frame at a time.
//
// Frames and events never overlap: a Scheduler runs the frame step and the
// posted event callbacks on a single goroutine, one after the other.
package loop

import (
	"context"
	"time"
)

// Scheduler calls step once per display refresh until ctx is done.
type Scheduler interface {
	Run(ctx context.Context, step func()) error
}

// Poster queues a callback to run on the scheduler goroutine between frames.
type Poster interface {
	Post(fn func())
}

// Ticker schedules frames at a fixed rate.
type Ticker struct {
	interval time.Duration
	events   chan func()
	done     chan struct{}
}

// NewTicker returns a scheduler running fps frames per second.
func NewTicker(fps int) *Ticker {
	if fps <= 0 {
		fps = 60
	}
	return &Ticker{
		interval: time.Second / time.Duration(fps),
		events:   make(chan func(), 64),
		done:     make(chan struct{}),
	}
}

// Post queues fn. It is safe to call from any goroutine; callbacks posted
// after Run has returned are dropped.
func (t *Ticker) Post(fn func()) {
	select {
	case t.events <- fn:
	case <-t.done:
	}
}

// Run blocks until ctx is done and returns ctx.Err().
func (t *Ticker) Run(ctx context.Context, step func()) error {
	defer close(t.done)

	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-t.events:
			fn()
		case <-tk.C:
			step()
		}
	}
}

// Manual runs a fixed number of frames back to back. Posted callbacks run
// immediately, which matches a host that delivers events between frames.
type Manual struct {
	Frames int
}

// Post runs fn right away.
func (m *Manual) Post(fn func()) { fn() }

// Run calls step Frames times, stopping early when ctx is done.
func (m *Manual) Run(ctx context.Context, step func()) error {
	for i := 0; i < m.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		step()
	}
	return nil
}
