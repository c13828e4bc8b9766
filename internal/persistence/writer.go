package persistence

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/tasktracker/internal/logging"
)

// WriteFunc persists the current state of one key. It must read that state
// when called, not when the write was scheduled.
type WriteFunc func(ctx context.Context) error

// Writer owns the writes for a single key. Schedule never blocks: it marks
// the key dirty and wakes the goroutine, which calls the WriteFunc until the
// key is clean. Any number of schedules between two writes collapse into
// one, and writes for a key never overlap.
type Writer struct {
	name  string
	write WriteFunc
	log   logging.Logger
	ctx   context.Context

	mu    sync.Mutex
	dirty bool

	kick     chan struct{}
	flushReq chan chan struct{}
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

// NewWriter starts the goroutine for key name. ctx is passed to every write;
// it should outlive the writer.
func NewWriter(ctx context.Context, name string, write WriteFunc, log logging.Logger) *Writer {
	if log == nil {
		log = logging.Nop()
	}
	w := &Writer{
		name:     name,
		write:    write,
		log:      log.With("key", name),
		ctx:      context.WithoutCancel(ctx),
		kick:     make(chan struct{}, 1),
		flushReq: make(chan chan struct{}),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go w.run()
	return w
}

// Schedule requests a write of the latest state.
func (w *Writer) Schedule() {
	w.mu.Lock()
	w.dirty = true
	w.mu.Unlock()

	select {
	case w.kick <- struct{}{}:
	default:
	}
}

// Flush waits until every write scheduled before the call has completed.
func (w *Writer) Flush(ctx context.Context) error {
	ack := make(chan struct{})
	select {
	case w.flushReq <- ack:
	case <-w.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-ack:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close writes anything pending and stops the goroutine. Schedules after
// Close are ignored.
func (w *Writer) Close(ctx context.Context) error {
	w.stopOnce.Do(func() { close(w.done) })
	select {
	case <-w.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Writer) run() {
	defer close(w.stopped)
	for {
		select {
		case <-w.kick:
			w.drain()
		case ack := <-w.flushReq:
			w.drain()
			close(ack)
		case <-w.done:
			w.drain()
			return
		}
	}
}

func (w *Writer) drain() {
	for {
		w.mu.Lock()
		if !w.dirty {
			w.mu.Unlock()
			return
		}
		w.dirty = false
		w.mu.Unlock()

		if err := w.write(w.ctx); err != nil {
			w.log.Error(w.ctx, "durable write failed, data may be lost on restart", "error", err)
		}
	}
}
