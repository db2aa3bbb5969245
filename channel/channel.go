// Package channel provides named method channels between a host
// runtime and its plugins. A plugin obtains a channel from the host's
// registrar, installs a handler, and from then on every call sent to
// that channel name is decoded, dispatched, and answered with exactly
// one reply.
package channel

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nomade-app/nomade-native/codec"
)

// ErrNotImplemented signals that a handler does not recognize a method
// name. The channel answers such calls with the host-standard
// not-implemented reply instead of an error envelope.
var ErrNotImplemented = codec.ErrNotImplemented

// BinaryMessenger is the host runtime's raw transport: named channels
// carrying opaque byte payloads. The host serializes inbound dispatch
// on a single message-handling goroutine.
type BinaryMessenger interface {
	// Send delivers a message on the named channel and returns the
	// peer's reply payload. An empty reply means not implemented.
	Send(ctx context.Context, channel string, message []byte) ([]byte, error)

	// SetHandler installs the receive callback for a channel name,
	// replacing any previous handler. A nil handler removes it.
	SetHandler(channel string, handler BinaryHandler)
}

// BinaryHandler receives one inbound message and returns the reply
// payload. Returning a nil reply with a nil error produces the
// not-implemented reply.
type BinaryHandler func(ctx context.Context, message []byte) ([]byte, error)

// Handler processes one decoded method call. Returning
// ErrNotImplemented yields the not-implemented reply; any other error
// becomes an error envelope. Exactly one reply reaches the caller on
// every path, including a panicking handler.
type Handler func(ctx context.Context, method string, arguments interface{}) (interface{}, error)

// MethodChannel is a named, bidirectional method-call conduit using
// the standard structured-value codec.
type MethodChannel struct {
	messenger BinaryMessenger
	name      string
	codec     codec.MethodCodec
	logger    *zap.Logger
}

// New creates a method channel on the given messenger and name. The
// channel carries no handler until HandleFunc is called.
func New(messenger BinaryMessenger, name string, logger *zap.Logger) *MethodChannel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MethodChannel{
		messenger: messenger,
		name:      name,
		logger:    logger,
	}
}

// Name returns the channel name.
func (c *MethodChannel) Name() string { return c.name }

// HandleFunc installs handler as the channel's method-call receiver,
// replacing any previous handler. The registration lives until the
// messenger shuts down; there is no explicit unregistration.
func (c *MethodChannel) HandleFunc(handler Handler) {
	if handler == nil {
		c.messenger.SetHandler(c.name, nil)
		return
	}
	c.messenger.SetHandler(c.name, func(ctx context.Context, message []byte) ([]byte, error) {
		return c.dispatch(ctx, handler, message)
	})
}

// dispatch decodes one inbound call, runs the handler, and encodes the
// reply. Every path produces a reply payload: success envelope, error
// envelope, or the empty not-implemented reply.
func (c *MethodChannel) dispatch(ctx context.Context, handler Handler, message []byte) (reply []byte, err error) {
	call, err := c.codec.DecodeMethodCall(message)
	if err != nil {
		c.logger.Warn("Undecodable method call",
			zap.String("channel", c.name),
			zap.Error(err))
		return c.codec.EncodeErrorEnvelope("malformed-call", err.Error(), nil)
	}

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Method handler panicked",
				zap.String("channel", c.name),
				zap.String("method", call.Method),
				zap.Any("panic", r))
			reply, err = c.codec.EncodeErrorEnvelope("panic", fmt.Sprint(r), nil)
		}
	}()

	result, herr := handler(ctx, call.Method, call.Arguments)
	switch {
	case herr == nil:
		return c.codec.EncodeSuccessEnvelope(result)
	case errors.Is(herr, ErrNotImplemented):
		c.logger.Debug("Method not implemented",
			zap.String("channel", c.name),
			zap.String("method", call.Method))
		return nil, nil // empty reply is the not-implemented sentinel
	default:
		var methodErr *codec.Error
		if errors.As(herr, &methodErr) {
			return c.codec.EncodeErrorEnvelope(methodErr.Code, methodErr.Message, methodErr.Details)
		}
		return c.codec.EncodeErrorEnvelope("error", herr.Error(), nil)
	}
}

// Invoke sends a method call on the channel and returns the decoded
// result. It returns ErrNotImplemented when the peer does not handle
// the method, or a *codec.Error for an error envelope.
func (c *MethodChannel) Invoke(ctx context.Context, method string, arguments interface{}) (interface{}, error) {
	message, err := c.codec.EncodeMethodCall(codec.MethodCall{Method: method, Arguments: arguments})
	if err != nil {
		return nil, fmt.Errorf("encoding call %q on %q: %w", method, c.name, err)
	}
	reply, err := c.messenger.Send(ctx, c.name, message)
	if err != nil {
		return nil, fmt.Errorf("sending call %q on %q: %w", method, c.name, err)
	}
	return c.codec.DecodeEnvelope(reply)
}
