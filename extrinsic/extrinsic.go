// Package extrinsic defines the calls produced by the factory, their
// signed and unsigned wire representation and the signing pipeline.
package extrinsic

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spacemeshos/go-scale"

	"github.com/spacemeshos/go-txfactory/common/types"
	"github.com/spacemeshos/go-txfactory/hash"
)

const (
	// Version of the extrinsic format.
	Version byte = 4
	// signedBit is set in the version byte of signed extrinsics.
	signedBit byte = 0x80

	// MaxExtrinsicSize bounds the size of a decoded extrinsic.
	MaxExtrinsicSize = 5 << 20
)

// ErrUnsupportedVersion is returned when decoding an extrinsic of unknown version.
var ErrUnsupportedVersion = errors.New("unsupported extrinsic version")

func encodeWith(fn func(*scale.Encoder) (int, error)) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := fn(scale.NewEncoder(&buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SignedBy is the origin of a checked extrinsic.
type SignedBy struct {
	Sender types.AccountID
	Extra  SignedExtra
}

// CheckedExtrinsic is an extrinsic before signing. Signed is nil for unsigned extrinsics.
type CheckedExtrinsic struct {
	Signed   *SignedBy
	Function Call
}

// Signature is the signature section of a signed extrinsic.
type Signature struct {
	Address   types.Address
	Signature types.MultiSignature
	Extra     SignedExtra
}

// EncodeScale implements scale codec interface.
func (s *Signature) EncodeScale(e *scale.Encoder) (int, error) {
	total, err := s.Address.EncodeScale(e)
	if err != nil {
		return total, err
	}
	n, err := s.Signature.EncodeScale(e)
	total += n
	if err != nil {
		return total, err
	}
	n, err = s.Extra.EncodeScale(e)
	return total + n, err
}

// DecodeScale implements scale codec interface.
func (s *Signature) DecodeScale(d *scale.Decoder) (int, error) {
	total, err := s.Address.DecodeScale(d)
	if err != nil {
		return total, err
	}
	n, err := s.Signature.DecodeScale(d)
	total += n
	if err != nil {
		return total, err
	}
	n, err = s.Extra.DecodeScale(d)
	return total + n, err
}

// UncheckedExtrinsic is a wire-level extrinsic. Signature is nil for unsigned extrinsics.
type UncheckedExtrinsic struct {
	Signature *Signature
	Function  Call
}

// IsSigned returns true if extrinsic carries a signature.
func (ue *UncheckedExtrinsic) IsSigned() bool {
	return ue.Signature != nil
}

func (ue *UncheckedExtrinsic) body() ([]byte, error) {
	return encodeWith(func(e *scale.Encoder) (int, error) {
		version := Version
		if ue.IsSigned() {
			version |= signedBit
		}
		total, err := scale.EncodeByte(e, version)
		if err != nil {
			return total, err
		}
		if ue.IsSigned() {
			n, err := ue.Signature.EncodeScale(e)
			total += n
			if err != nil {
				return total, fmt.Errorf("encode signature: %w", err)
			}
		}
		n, err := EncodeCall(e, ue.Function)
		return total + n, err
	})
}

// EncodeScale implements scale codec interface. The extrinsic is prefixed
// with the compact length of its encoding.
func (ue *UncheckedExtrinsic) EncodeScale(e *scale.Encoder) (int, error) {
	body, err := ue.body()
	if err != nil {
		return 0, err
	}
	return scale.EncodeByteSliceWithLimit(e, body, MaxExtrinsicSize)
}

// DecodeScale implements scale codec interface.
func (ue *UncheckedExtrinsic) DecodeScale(d *scale.Decoder) (int, error) {
	body, total, err := scale.DecodeByteSliceWithLimit(d, MaxExtrinsicSize)
	if err != nil {
		return total, err
	}
	if err := ue.decodeBody(body); err != nil {
		return total, err
	}
	return total, nil
}

func (ue *UncheckedExtrinsic) decodeBody(body []byte) error {
	dec := scale.NewDecoder(bytes.NewReader(body))
	version, consumed, err := scale.DecodeByte(dec)
	if err != nil {
		return err
	}
	if version&^signedBit != Version {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, version&^signedBit)
	}
	ue.Signature = nil
	if version&signedBit != 0 {
		ue.Signature = &Signature{}
		n, err := ue.Signature.DecodeScale(dec)
		consumed += n
		if err != nil {
			return fmt.Errorf("decode signature: %w", err)
		}
	}
	call, n, err := DecodeCall(dec)
	consumed += n
	if err != nil {
		return err
	}
	if consumed != len(body) {
		return fmt.Errorf("extrinsic has %d trailing bytes", len(body)-consumed)
	}
	ue.Function = call
	return nil
}

// ID returns blake3 digest of the encoded extrinsic.
func ID(raw []byte) types.Hash256 {
	return types.Hash256(hash.Sum(raw))
}
