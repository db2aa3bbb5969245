// Package codec implements the structured-value wire encoding used on
// method channels: a compact binary format for a small set of value
// types, plus the method-call and response envelopes layered on top.
// The format is the host framework's standard message codec, so
// payloads interoperate with any peer speaking the same encoding.
package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Wire type tags. One byte precedes every encoded value.
const (
	tagNil         = 0x00
	tagTrue        = 0x01
	tagFalse       = 0x02
	tagInt32       = 0x03
	tagInt64       = 0x04
	tagFloat64     = 0x06
	tagString      = 0x07
	tagUint8List   = 0x08
	tagInt32List   = 0x09
	tagInt64List   = 0x0a
	tagFloat64List = 0x0b
	tagList        = 0x0c
	tagMap         = 0x0d
)

var (
	// ErrUnsupportedValue is returned when a Go value has no wire
	// representation in the standard codec.
	ErrUnsupportedValue = errors.New("codec: unsupported value type")

	// ErrInvalidMessage is returned when a payload cannot be decoded:
	// truncated data, an unknown type tag, or trailing garbage.
	ErrInvalidMessage = errors.New("codec: invalid message")
)

// EncodeValue encodes a single value to its wire form.
//
// Supported Go types: nil, bool, int32, int, int64, float64, string,
// []byte, []int32, []int64, []float64, []interface{}, and maps with
// interface{} or string keys. Anything else yields ErrUnsupportedValue.
func EncodeValue(v interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := writeValue(buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeValue decodes a single value from its wire form. The payload
// must contain exactly one value; trailing bytes are an error.
func DecodeValue(data []byte) (interface{}, error) {
	r := &reader{data: data}
	v, err := r.readValue()
	if err != nil {
		return nil, err
	}
	if r.pos != len(r.data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidMessage, len(r.data)-r.pos)
	}
	return v, nil
}

func writeValue(buf *bytes.Buffer, v interface{}) error {
	switch t := v.(type) {
	case nil:
		buf.WriteByte(tagNil)
	case bool:
		if t {
			buf.WriteByte(tagTrue)
		} else {
			buf.WriteByte(tagFalse)
		}
	case int32:
		buf.WriteByte(tagInt32)
		writeUint32(buf, uint32(t))
	case int:
		buf.WriteByte(tagInt64)
		writeUint64(buf, uint64(t))
	case int64:
		buf.WriteByte(tagInt64)
		writeUint64(buf, uint64(t))
	case float64:
		buf.WriteByte(tagFloat64)
		writeAlignment(buf, 8)
		writeUint64(buf, math.Float64bits(t))
	case string:
		buf.WriteByte(tagString)
		writeSize(buf, len(t))
		buf.WriteString(t)
	case []byte:
		buf.WriteByte(tagUint8List)
		writeSize(buf, len(t))
		buf.Write(t)
	case []int32:
		buf.WriteByte(tagInt32List)
		writeSize(buf, len(t))
		writeAlignment(buf, 4)
		for _, n := range t {
			writeUint32(buf, uint32(n))
		}
	case []int64:
		buf.WriteByte(tagInt64List)
		writeSize(buf, len(t))
		writeAlignment(buf, 8)
		for _, n := range t {
			writeUint64(buf, uint64(n))
		}
	case []float64:
		buf.WriteByte(tagFloat64List)
		writeSize(buf, len(t))
		writeAlignment(buf, 8)
		for _, f := range t {
			writeUint64(buf, math.Float64bits(f))
		}
	case []interface{}:
		buf.WriteByte(tagList)
		writeSize(buf, len(t))
		for _, e := range t {
			if err := writeValue(buf, e); err != nil {
				return err
			}
		}
	case map[interface{}]interface{}:
		buf.WriteByte(tagMap)
		writeSize(buf, len(t))
		for k, e := range t {
			if err := writeValue(buf, k); err != nil {
				return err
			}
			if err := writeValue(buf, e); err != nil {
				return err
			}
		}
	case map[string]interface{}:
		buf.WriteByte(tagMap)
		writeSize(buf, len(t))
		for k, e := range t {
			if err := writeValue(buf, k); err != nil {
				return err
			}
			if err := writeValue(buf, e); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
	return nil
}

// writeSize encodes a collection length: one byte below 254, a 254
// marker plus two little-endian bytes up to 0xffff, otherwise a 255
// marker plus four little-endian bytes.
func writeSize(buf *bytes.Buffer, n int) {
	switch {
	case n < 254:
		buf.WriteByte(byte(n))
	case n <= 0xffff:
		buf.WriteByte(254)
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(n))
		buf.Write(b[:])
	default:
		buf.WriteByte(255)
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(n))
		buf.Write(b[:])
	}
}

// writeAlignment pads with zero bytes until the buffer length is a
// multiple of n. Numeric vectors are aligned so peers can read them
// without copying.
func writeAlignment(buf *bytes.Buffer, n int) {
	for buf.Len()%n != 0 {
		buf.WriteByte(0)
	}
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

// reader decodes values from a byte slice, tracking the absolute
// offset so alignment padding matches the encoder.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) readValue() (interface{}, error) {
	tag, err := r.readByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagNil:
		return nil, nil
	case tagTrue:
		return true, nil
	case tagFalse:
		return false, nil
	case tagInt32:
		n, err := r.readUint32()
		return int32(n), err
	case tagInt64:
		n, err := r.readUint64()
		return int64(n), err
	case tagFloat64:
		if err := r.skipAlignment(8); err != nil {
			return nil, err
		}
		n, err := r.readUint64()
		return math.Float64frombits(n), err
	case tagString:
		b, err := r.readSized()
		return string(b), err
	case tagUint8List:
		b, err := r.readSized()
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(b))
		copy(out, b)
		return out, nil
	case tagInt32List:
		size, err := r.readSize()
		if err != nil {
			return nil, err
		}
		if err := r.skipAlignment(4); err != nil {
			return nil, err
		}
		out := make([]int32, size)
		for i := range out {
			n, err := r.readUint32()
			if err != nil {
				return nil, err
			}
			out[i] = int32(n)
		}
		return out, nil
	case tagInt64List:
		size, err := r.readSize()
		if err != nil {
			return nil, err
		}
		if err := r.skipAlignment(8); err != nil {
			return nil, err
		}
		out := make([]int64, size)
		for i := range out {
			n, err := r.readUint64()
			if err != nil {
				return nil, err
			}
			out[i] = int64(n)
		}
		return out, nil
	case tagFloat64List:
		size, err := r.readSize()
		if err != nil {
			return nil, err
		}
		if err := r.skipAlignment(8); err != nil {
			return nil, err
		}
		out := make([]float64, size)
		for i := range out {
			n, err := r.readUint64()
			if err != nil {
				return nil, err
			}
			out[i] = math.Float64frombits(n)
		}
		return out, nil
	case tagList:
		size, err := r.readSize()
		if err != nil {
			return nil, err
		}
		out := make([]interface{}, size)
		for i := range out {
			if out[i], err = r.readValue(); err != nil {
				return nil, err
			}
		}
		return out, nil
	case tagMap:
		size, err := r.readSize()
		if err != nil {
			return nil, err
		}
		out := make(map[interface{}]interface{}, size)
		for i := 0; i < size; i++ {
			k, err := r.readValue()
			if err != nil {
				return nil, err
			}
			v, err := r.readValue()
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unknown type tag 0x%02x", ErrInvalidMessage, tag)
	}
}

func (r *reader) readByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, fmt.Errorf("%w: truncated", ErrInvalidMessage)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

func (r *reader) readBytes(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, fmt.Errorf("%w: truncated", ErrInvalidMessage)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) readSize() (int, error) {
	b, err := r.readByte()
	if err != nil {
		return 0, err
	}
	switch b {
	case 254:
		raw, err := r.readBytes(2)
		if err != nil {
			return 0, err
		}
		return int(binary.LittleEndian.Uint16(raw)), nil
	case 255:
		raw, err := r.readBytes(4)
		if err != nil {
			return 0, err
		}
		return int(binary.LittleEndian.Uint32(raw)), nil
	default:
		return int(b), nil
	}
}

func (r *reader) readSized() ([]byte, error) {
	size, err := r.readSize()
	if err != nil {
		return nil, err
	}
	return r.readBytes(size)
}

func (r *reader) skipAlignment(n int) error {
	for r.pos%n != 0 {
		if _, err := r.readByte(); err != nil {
			return err
		}
	}
	return nil
}

func (r *reader) readUint32() (uint32, error) {
	b, err := r.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *reader) readUint64() (uint64, error) {
	b, err := r.readBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}
