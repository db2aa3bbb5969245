package codec

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func TestEncodeValue_KnownBytes(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  []byte
	}{
		{"nil", nil, []byte{0x00}},
		{"true", true, []byte{0x01}},
		{"false", false, []byte{0x02}},
		{"int32", int32(7), []byte{0x03, 0x07, 0x00, 0x00, 0x00}},
		{"int64", int64(1), []byte{0x04, 0x01, 0, 0, 0, 0, 0, 0, 0}},
		{"string", "hi", []byte{0x07, 0x02, 'h', 'i'}},
		{"bytes", []byte{0xaa}, []byte{0x08, 0x01, 0xaa}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeValue(tt.value)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("EncodeValue(%v) = %x, want %x", tt.value, got, tt.want)
			}
		})
	}
}

func TestEncodeValue_Float64Alignment(t *testing.T) {
	got, err := EncodeValue(1.0)
	if err != nil {
		t.Fatal(err)
	}
	// Tag byte, 7 padding bytes to an 8-byte boundary, then the value.
	if len(got) != 16 {
		t.Fatalf("encoded length = %d, want 16", len(got))
	}
	for i := 1; i < 8; i++ {
		if got[i] != 0 {
			t.Errorf("padding byte %d = 0x%02x, want 0", i, got[i])
		}
	}
}

func TestDecodeValue_RoundTrip(t *testing.T) {
	values := []interface{}{
		nil,
		true,
		int32(-5),
		int64(1 << 40),
		3.25,
		"nomade",
		[]byte{1, 2, 3},
		[]int32{1, -2, 3},
		[]int64{1 << 33},
		[]float64{0.5, -0.5},
		[]interface{}{"a", int64(1), nil},
		map[interface{}]interface{}{"k": "v"},
	}
	for _, v := range values {
		data, err := EncodeValue(v)
		if err != nil {
			t.Fatalf("encode %v: %v", v, err)
		}
		got, err := DecodeValue(data)
		if err != nil {
			t.Fatalf("decode %v: %v", v, err)
		}
		if !reflect.DeepEqual(got, v) {
			t.Errorf("round trip %T: got %v, want %v", v, got, v)
		}
	}
}

func TestDecodeValue_NestedCollections(t *testing.T) {
	v := []interface{}{
		map[interface{}]interface{}{
			"inner": []interface{}{int64(1), "two", 3.0},
		},
	}
	data, err := EncodeValue(v)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeValue(data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, v) {
		t.Errorf("got %v, want %v", got, v)
	}
}

func TestEncodeValue_Unsupported(t *testing.T) {
	_, err := EncodeValue(struct{}{})
	if !errors.Is(err, ErrUnsupportedValue) {
		t.Errorf("err = %v, want ErrUnsupportedValue", err)
	}
}

func TestDecodeValue_Truncated(t *testing.T) {
	tests := [][]byte{
		{},                 // no tag
		{0x03, 0x01},       // int32 missing bytes
		{0x07, 0x05, 'h'},  // string shorter than declared size
		{0x0c, 0x02, 0x00}, // list with missing element
	}
	for _, data := range tests {
		if _, err := DecodeValue(data); !errors.Is(err, ErrInvalidMessage) {
			t.Errorf("DecodeValue(%x) err = %v, want ErrInvalidMessage", data, err)
		}
	}
}

func TestDecodeValue_TrailingBytes(t *testing.T) {
	if _, err := DecodeValue([]byte{0x00, 0x00}); !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("err = %v, want ErrInvalidMessage", err)
	}
}

func TestDecodeValue_UnknownTag(t *testing.T) {
	if _, err := DecodeValue([]byte{0x7f}); !errors.Is(err, ErrInvalidMessage) {
		t.Errorf("err = %v, want ErrInvalidMessage", err)
	}
}

func TestWriteSize_LargeCollections(t *testing.T) {
	// A string longer than 253 bytes exercises the two-byte size form.
	long := string(bytes.Repeat([]byte("x"), 300))
	data, err := EncodeValue(long)
	if err != nil {
		t.Fatal(err)
	}
	if data[1] != 254 {
		t.Fatalf("size marker = %d, want 254", data[1])
	}
	got, err := DecodeValue(data)
	if err != nil {
		t.Fatal(err)
	}
	if got != long {
		t.Error("long string did not round trip")
	}
}
