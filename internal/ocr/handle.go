// Package ocr owns the text-recognition worker used as the last-resort
// timestamp source. The worker is acquired on first use and released by
// Close; nothing here is reachable from the date parser.
package ocr

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// ErrClosed is returned by a Handle after Close.
var ErrClosed = errors.New("ocr handle is closed")

// Worker recognizes text in a PNG image.
type Worker interface {
	Recognize(ctx context.Context, image []byte) (string, error)
	Close() error
}

// Factory starts a worker. It is called at most once per Handle unless the
// previous attempt failed.
type Factory func(ctx context.Context) (Worker, error)

// Handle lazily acquires a single Worker and serializes access to it.
type Handle struct {
	mu      sync.Mutex
	factory Factory
	worker  Worker
	closed  bool
}

func NewHandle(factory Factory) *Handle {
	return &Handle{factory: factory}
}

// Recognize runs the worker, starting it first if needed.
func (h *Handle) Recognize(ctx context.Context, image []byte) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return "", ErrClosed
	}
	if h.worker == nil {
		w, err := h.factory(ctx)
		if err != nil {
			return "", errors.Wrap(err, "failed to start ocr worker")
		}
		h.worker = w
	}
	return h.worker.Recognize(ctx, image)
}

// Started reports whether the worker has been acquired.
func (h *Handle) Started() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.worker != nil
}

// Close releases the worker. Safe to call more than once.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	if h.worker == nil {
		return nil
	}
	err := h.worker.Close()
	h.worker = nil
	return err
}
