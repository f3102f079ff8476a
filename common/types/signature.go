package types

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spacemeshos/go-scale"
)

// ErrInvalidSignature is returned when decoding a signature of unknown kind.
var ErrInvalidSignature = errors.New("invalid signature")

// SignatureKind selects the scheme of a MultiSignature.
type SignatureKind byte

const (
	Ed25519 SignatureKind = 0
	Sr25519 SignatureKind = 1
	Ecdsa   SignatureKind = 2
)

// String implements fmt.Stringer.
func (k SignatureKind) String() string {
	switch k {
	case Ed25519:
		return "ed25519"
	case Sr25519:
		return "sr25519"
	case Ecdsa:
		return "ecdsa"
	default:
		return "unknown"
	}
}

// Size returns the length of a signature of this kind in bytes, 0 for unknown kinds.
func (k SignatureKind) Size() int {
	switch k {
	case Ed25519, Sr25519:
		return 64
	case Ecdsa:
		return 65
	default:
		return 0
	}
}

// MultiSignature is a signature tagged with its scheme.
type MultiSignature struct {
	Kind SignatureKind
	Data []byte
}

// NewEd25519Signature wraps a 64 byte ed25519 signature.
func NewEd25519Signature(sig []byte) MultiSignature {
	return MultiSignature{Kind: Ed25519, Data: append([]byte(nil), sig...)}
}

// String implements fmt.Stringer.
func (s MultiSignature) String() string {
	return fmt.Sprintf("%s(0x%s)", s.Kind, hex.EncodeToString(s.Data))
}

// EncodeScale implements scale codec interface.
func (s *MultiSignature) EncodeScale(e *scale.Encoder) (int, error) {
	size := s.Kind.Size()
	if size == 0 {
		return 0, fmt.Errorf("%w: kind %d", ErrInvalidSignature, s.Kind)
	}
	if len(s.Data) != size {
		return 0, fmt.Errorf("%w: %s signature must be %d bytes, got %d", ErrInvalidSignature, s.Kind, size, len(s.Data))
	}
	total, err := scale.EncodeByte(e, byte(s.Kind))
	if err != nil {
		return total, err
	}
	n, err := scale.EncodeByteArray(e, s.Data)
	return total + n, err
}

// DecodeScale implements scale codec interface.
func (s *MultiSignature) DecodeScale(d *scale.Decoder) (int, error) {
	kind, total, err := scale.DecodeByte(d)
	if err != nil {
		return total, err
	}
	s.Kind = SignatureKind(kind)
	size := s.Kind.Size()
	if size == 0 {
		return total, fmt.Errorf("%w: kind %d", ErrInvalidSignature, kind)
	}
	s.Data = make([]byte, size)
	n, err := scale.DecodeByteArray(d, s.Data)
	return total + n, err
}
