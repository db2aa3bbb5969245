// Method-call and response envelopes, layered on the structured-value
// encoding. A call payload is the method name followed by the argument
// value; a reply payload is a success envelope, an error envelope, or
// empty bytes meaning the receiver does not implement the method.
package codec

import (
	"bytes"
	"errors"
	"fmt"
)

// Reply envelope markers.
const (
	envelopeSuccess = 0x00
	envelopeError   = 0x01
)

// ErrNotImplemented is the decoded form of an empty reply payload: the
// receiving plugin recognized the channel but not the method name.
var ErrNotImplemented = errors.New("codec: method not implemented")

// MethodCall is a single invocation on a method channel: a method name
// and an opaque argument value (nil when the method takes none).
type MethodCall struct {
	Method    string
	Arguments interface{}
}

// Error is the decoded error envelope of a failed method call.
type Error struct {
	Code    string
	Message string
	Details interface{}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("method call failed: %s", e.Code)
	}
	return fmt.Sprintf("method call failed: %s (%s)", e.Message, e.Code)
}

// MethodCodec encodes and decodes method calls and their replies using
// the standard structured-value encoding. The zero value is ready to use.
type MethodCodec struct{}

// EncodeMethodCall encodes the method name and argument value.
func (MethodCodec) EncodeMethodCall(call MethodCall) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := writeValue(buf, call.Method); err != nil {
		return nil, err
	}
	if err := writeValue(buf, call.Arguments); err != nil {
		return nil, fmt.Errorf("encoding arguments for %q: %w", call.Method, err)
	}
	return buf.Bytes(), nil
}

// DecodeMethodCall decodes an inbound call payload.
func (MethodCodec) DecodeMethodCall(data []byte) (MethodCall, error) {
	r := &reader{data: data}
	name, err := r.readValue()
	if err != nil {
		return MethodCall{}, err
	}
	method, ok := name.(string)
	if !ok {
		return MethodCall{}, fmt.Errorf("%w: method name is %T, not string", ErrInvalidMessage, name)
	}
	args, err := r.readValue()
	if err != nil {
		return MethodCall{}, fmt.Errorf("decoding arguments for %q: %w", method, err)
	}
	if r.pos != len(r.data) {
		return MethodCall{}, fmt.Errorf("%w: %d trailing bytes after call", ErrInvalidMessage, len(r.data)-r.pos)
	}
	return MethodCall{Method: method, Arguments: args}, nil
}

// EncodeSuccessEnvelope wraps a result value in a success reply.
func (MethodCodec) EncodeSuccessEnvelope(result interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte(envelopeSuccess)
	if err := writeValue(buf, result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeErrorEnvelope wraps an error code, message, and detail value in
// an error reply.
func (MethodCodec) EncodeErrorEnvelope(code, message string, details interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte(envelopeError)
	if err := writeValue(buf, code); err != nil {
		return nil, err
	}
	if err := writeValue(buf, message); err != nil {
		return nil, err
	}
	if err := writeValue(buf, details); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeEnvelope decodes a reply payload. It returns the result value
// on success, ErrNotImplemented for an empty payload, or an *Error for
// an error envelope.
func (MethodCodec) DecodeEnvelope(data []byte) (interface{}, error) {
	if len(data) == 0 {
		return nil, ErrNotImplemented
	}
	r := &reader{data: data}
	marker, err := r.readByte()
	if err != nil {
		return nil, err
	}
	switch marker {
	case envelopeSuccess:
		result, err := r.readValue()
		if err != nil {
			return nil, err
		}
		if r.pos != len(r.data) {
			return nil, fmt.Errorf("%w: %d trailing bytes after envelope", ErrInvalidMessage, len(r.data)-r.pos)
		}
		return result, nil
	case envelopeError:
		code, err := r.readValue()
		if err != nil {
			return nil, err
		}
		message, err := r.readValue()
		if err != nil {
			return nil, err
		}
		details, err := r.readValue()
		if err != nil {
			return nil, err
		}
		codeStr, _ := code.(string)
		msgStr, _ := message.(string)
		return nil, &Error{Code: codeStr, Message: msgStr, Details: details}
	default:
		return nil, fmt.Errorf("%w: unknown envelope marker 0x%02x", ErrInvalidMessage, marker)
	}
}
