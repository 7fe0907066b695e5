package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// HTTPService serves an http.Server until stopped.
type HTTPService struct {
	srv     *http.Server
	timeout time.Duration
	logger  *zap.Logger
}

// NewHTTPService wraps srv. Stop waits up to shutdownTimeout for in-flight requests.
//
// Precondition: srv and logger must be non-nil.
func NewHTTPService(srv *http.Server, shutdownTimeout time.Duration, logger *zap.Logger) *HTTPService {
	return &HTTPService{srv: srv, timeout: shutdownTimeout, logger: logger}
}

// Start listens on the server's address. A graceful Stop is not an error.
func (h *HTTPService) Start() error {
	h.logger.Info("http listening", zap.String("addr", h.srv.Addr))
	if err := h.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests, closing connections forcibly after the timeout.
func (h *HTTPService) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()
	if err := h.srv.Shutdown(ctx); err != nil {
		h.logger.Warn("http shutdown incomplete, closing", zap.Error(err))
		_ = h.srv.Close()
	}
}

// TaskService runs fn until Stop cancels its context.
type TaskService struct {
	fn     func(ctx context.Context)
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// NewTaskService wraps a background loop such as a periodic sweeper.
//
// Precondition: fn must return once its context is cancelled.
func NewTaskService(fn func(ctx context.Context)) *TaskService {
	ctx, cancel := context.WithCancel(context.Background())
	return &TaskService{fn: fn, ctx: ctx, cancel: cancel, done: make(chan struct{})}
}

// Start runs the task and returns when it exits.
func (t *TaskService) Start() error {
	defer t.once.Do(func() { close(t.done) })
	t.fn(t.ctx)
	return nil
}

// Stop cancels the task and waits up to five seconds for it to exit.
func (t *TaskService) Stop() {
	t.cancel()
	select {
	case <-t.done:
	case <-time.After(5 * time.Second):
	}
}
