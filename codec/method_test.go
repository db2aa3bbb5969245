package codec

import (
	"bytes"
	"errors"
	"testing"
)

func TestMethodCall_RoundTrip(t *testing.T) {
	var c MethodCodec

	data, err := c.EncodeMethodCall(MethodCall{Method: "getPlatformVersion", Arguments: nil})
	if err != nil {
		t.Fatal(err)
	}
	call, err := c.DecodeMethodCall(data)
	if err != nil {
		t.Fatal(err)
	}
	if call.Method != "getPlatformVersion" {
		t.Errorf("Method = %q, want getPlatformVersion", call.Method)
	}
	if call.Arguments != nil {
		t.Errorf("Arguments = %v, want nil", call.Arguments)
	}
}

func TestMethodCall_WithArguments(t *testing.T) {
	var c MethodCodec

	args := map[interface{}]interface{}{"verbose": true}
	data, err := c.EncodeMethodCall(MethodCall{Method: "probe", Arguments: args})
	if err != nil {
		t.Fatal(err)
	}
	call, err := c.DecodeMethodCall(data)
	if err != nil {
		t.Fatal(err)
	}
	m, ok := call.Arguments.(map[interface{}]interface{})
	if !ok || m["verbose"] != true {
		t.Errorf("Arguments = %v, want map with verbose=true", call.Arguments)
	}
}

func TestDecodeMethodCall_NonStringName(t *testing.T) {
	var c MethodCodec

	// A call whose first value is an int64, not a method name.
	data, err := EncodeValue(int64(1))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.DecodeMethodCall(data); !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("err = %v, want ErrInvalidMessage", err)
	}
}

func TestSuccessEnvelope_RoundTrip(t *testing.T) {
	var c MethodCodec

	data, err := c.EncodeSuccessEnvelope("Linux 5.15.0-76-generic")
	if err != nil {
		t.Fatal(err)
	}
	if data[0] != envelopeSuccess {
		t.Fatalf("envelope marker = 0x%02x, want 0x00", data[0])
	}
	result, err := c.DecodeEnvelope(data)
	if err != nil {
		t.Fatal(err)
	}
	if result != "Linux 5.15.0-76-generic" {
		t.Errorf("result = %v, want version string", result)
	}
}

func TestErrorEnvelope_RoundTrip(t *testing.T) {
	var c MethodCodec

	data, err := c.EncodeErrorEnvelope("unavailable", "query failed", int64(3))
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.DecodeEnvelope(data)
	var methodErr *Error
	if !errors.As(err, &methodErr) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if methodErr.Code != "unavailable" || methodErr.Message != "query failed" {
		t.Errorf("Error = %+v", methodErr)
	}
	if methodErr.Details != int64(3) {
		t.Errorf("Details = %v, want 3", methodErr.Details)
	}
}

func TestDecodeEnvelope_EmptyIsNotImplemented(t *testing.T) {
	var c MethodCodec

	_, err := c.DecodeEnvelope(nil)
	if !errors.Is(err, ErrNotImplemented) {
		t.Errorf("err = %v, want ErrNotImplemented", err)
	}
	_, err = c.DecodeEnvelope([]byte{})
	if !errors.Is(err, ErrNotImplemented) {
		t.Errorf("err = %v, want ErrNotImplemented", err)
	}
}

func TestDecodeEnvelope_UnknownMarker(t *testing.T) {
	var c MethodCodec

	if _, err := c.DecodeEnvelope([]byte{0x02}); !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("err = %v, want ErrInvalidMessage", err)
	}
}

func TestDecodeEnvelope_TrailingBytes(t *testing.T) {
	var c MethodCodec

	data, err := c.EncodeSuccessEnvelope(nil)
	if err != nil {
		t.Fatal(err)
	}
	data = append(bytes.Clone(data), 0x00)
	if _, err := c.DecodeEnvelope(data); !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("err = %v, want ErrInvalidMessage", err)
	}
}
