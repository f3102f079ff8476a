package codec

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/spacemeshos/go-scale"
)

// EncodeTo encodes value to a writer stream.
func EncodeTo(w io.Writer, value scale.Encodable) (int, error) {
	return value.EncodeScale(scale.NewEncoder(w))
}

// DecodeFrom decodes a value using data from a reader stream.
func DecodeFrom(r io.Reader, value scale.Decodable) (int, error) {
	return value.DecodeScale(scale.NewDecoder(r))
}

var encoderPool = sync.Pool{
	New: func() any {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getEncoderBuffer() *bytes.Buffer {
	return encoderPool.Get().(*bytes.Buffer)
}

func putEncoderBuffer(b *bytes.Buffer) {
	b.Reset()
	encoderPool.Put(b)
}

// Encode value to a byte buffer.
func Encode(value scale.Encodable) ([]byte, error) {
	b := getEncoderBuffer()
	defer putEncoderBuffer(b)
	if _, err := EncodeTo(b, value); err != nil {
		return nil, err
	}
	buf := make([]byte, b.Len())
	copy(buf, b.Bytes())
	return buf, nil
}

// MustEncode encodes value and panics on error. Use only for values whose
// encoding can't fail (fixed size arrays, bounded structs).
func MustEncode(value scale.Encodable) []byte {
	buf, err := Encode(value)
	if err != nil {
		panic(err)
	}
	return buf
}

// EncodeAll concatenates encodings of several values, as a tuple would be encoded.
func EncodeAll(values ...scale.Encodable) ([]byte, error) {
	b := getEncoderBuffer()
	defer putEncoderBuffer(b)
	enc := scale.NewEncoder(b)
	for i, value := range values {
		if _, err := value.EncodeScale(enc); err != nil {
			return nil, fmt.Errorf("encode tuple field %d: %w", i, err)
		}
	}
	buf := make([]byte, b.Len())
	copy(buf, b.Bytes())
	return buf, nil
}

// Decode value from a byte buffer. Trailing bytes are an error.
func Decode(buf []byte, value scale.Decodable) error {
	n, err := DecodeFrom(bytes.NewReader(buf), value)
	if err != nil {
		return fmt.Errorf("decode from buffer: %w", err)
	}
	if n != len(buf) {
		return fmt.Errorf("decode from buffer: %d trailing bytes", len(buf)-n)
	}
	return nil
}
