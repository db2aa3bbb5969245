// Package hostrt is a minimal in-process host runtime: a binary
// messenger whose inbound dispatch runs on a single goroutine, the way
// a GUI host delivers channel messages on its message-handling thread.
// Calls on one channel are therefore serialized by construction.
package hostrt

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/nomade-app/nomade-native/channel"
)

// ErrClosed is returned by Send after the runtime has shut down.
var ErrClosed = errors.New("hostrt: runtime closed")

// Runtime routes channel messages to registered handlers. It
// implements channel.BinaryMessenger.
type Runtime struct {
	logger *zap.Logger

	mu       sync.RWMutex
	handlers map[string]channel.BinaryHandler

	tasks     chan *task
	done      chan struct{}
	closeOnce sync.Once
}

type task struct {
	ctx     context.Context
	channel string
	message []byte
	replyCh chan taskReply
}

type taskReply struct {
	payload []byte
	err     error
}

// New creates a runtime and starts its dispatch goroutine.
func New(logger *zap.Logger) *Runtime {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runtime{
		logger:   logger,
		handlers: make(map[string]channel.BinaryHandler),
		tasks:    make(chan *task),
		done:     make(chan struct{}),
	}
	go r.loop()
	return r
}

// SetHandler installs the handler for a channel name, replacing any
// previous one. A nil handler removes the registration.
func (r *Runtime) SetHandler(name string, handler channel.BinaryHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if handler == nil {
		delete(r.handlers, name)
		return
	}
	r.handlers[name] = handler
}

// Send delivers a message to the named channel's handler on the
// dispatch goroutine and waits for the reply. A channel with no
// handler yields an empty reply, the not-implemented sentinel.
func (r *Runtime) Send(ctx context.Context, name string, message []byte) ([]byte, error) {
	t := &task{
		ctx:     ctx,
		channel: name,
		message: message,
		replyCh: make(chan taskReply, 1),
	}
	select {
	case r.tasks <- t:
	case <-r.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case reply := <-t.replyCh:
		return reply.payload, reply.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops the dispatch goroutine. Pending Sends fail with
// ErrClosed; handlers already running complete normally.
func (r *Runtime) Close() {
	r.closeOnce.Do(func() { close(r.done) })
}

// loop is the runtime's message-handling goroutine.
func (r *Runtime) loop() {
	for {
		select {
		case <-r.done:
			return
		case t := <-r.tasks:
			t.replyCh <- r.deliver(t)
		}
	}
}

func (r *Runtime) deliver(t *task) taskReply {
	r.mu.RLock()
	handler := r.handlers[t.channel]
	r.mu.RUnlock()

	if handler == nil {
		r.logger.Debug("No handler for channel", zap.String("channel", t.channel))
		return taskReply{}
	}
	payload, err := handler(t.ctx, t.message)
	return taskReply{payload: payload, err: err}
}
