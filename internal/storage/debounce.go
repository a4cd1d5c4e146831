package storage

import (
	"context"
	"sync"
	"time"

	"github.com/2beens/activeweek/internal/workouts"
)

const (
	DefaultDebounceDelay = 300 * time.Millisecond
	defaultWriteTimeout  = 10 * time.Second
)

type saver interface {
	Save(ctx context.Context, records []workouts.Record) error
}

// WriteResultFunc observes every completed write.
type WriteResultFunc func(took time.Duration, err error)

type DebouncedWriterOption func(*DebouncedWriter)

func WithDelay(delay time.Duration) DebouncedWriterOption {
	return func(w *DebouncedWriter) {
		w.delay = delay
	}
}

func WithWriteResult(f WriteResultFunc) DebouncedWriterOption {
	return func(w *DebouncedWriter) {
		w.onResult = f
	}
}

// DebouncedWriter coalesces collection snapshots and saves only the latest
// one after the delay has passed without a new snapshot.
type DebouncedWriter struct {
	saver    saver
	delay    time.Duration
	onResult WriteResultFunc

	mutex   sync.Mutex
	timer   *time.Timer
	pending []workouts.Record
	dirty   bool

	// serializes saves so an older snapshot never lands after a newer one
	writeMutex sync.Mutex
}

func NewDebouncedWriter(s saver, opts ...DebouncedWriterOption) *DebouncedWriter {
	w := &DebouncedWriter{
		saver: s,
		delay: DefaultDebounceDelay,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Schedule replaces the pending snapshot and restarts the delay. It never blocks on I/O.
func (w *DebouncedWriter) Schedule(records []workouts.Record) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	w.pending = records
	w.dirty = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.fire)
}

// Flush writes the pending snapshot now, if there is one.
func (w *DebouncedWriter) Flush(ctx context.Context) error {
	w.mutex.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mutex.Unlock()

	return w.write(ctx)
}

func (w *DebouncedWriter) fire() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultWriteTimeout)
	defer cancel()
	// failures are already logged by the saver and reported through onResult
	_ = w.write(ctx)
}

func (w *DebouncedWriter) write(ctx context.Context) error {
	w.writeMutex.Lock()
	defer w.writeMutex.Unlock()

	w.mutex.Lock()
	if !w.dirty {
		w.mutex.Unlock()
		return nil
	}
	records := w.pending
	w.pending = nil
	w.dirty = false
	w.mutex.Unlock()

	start := time.Now()
	err := w.saver.Save(ctx, records)
	if w.onResult != nil {
		w.onResult(time.Since(start), err)
	}
	return err
}
