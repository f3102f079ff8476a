package types

import (
	"encoding/hex"
	"fmt"
	"math/rand"
	"strings"

	"github.com/spacemeshos/go-scale"
)

const (
	// Hash256Length is 32, the expected length of block and state hashes.
	Hash256Length = 32
)

// Hash256 represents a 32-byte hash (block hash, state root, genesis hash).
type Hash256 [Hash256Length]byte

// EmptyHash256 is the zero value of Hash256.
var EmptyHash256 = Hash256{}

// HexToHash256 parses a hash from its hex representation, with or without 0x prefix.
func HexToHash256(s string) (Hash256, error) {
	var h Hash256
	if err := h.UnmarshalText([]byte(s)); err != nil {
		return h, err
	}
	return h, nil
}

// RandomHash256 fills a hash from rng. rng is expected to be a seeded, reproducible source.
func RandomHash256(rng *rand.Rand) Hash256 {
	var h Hash256
	// rand.Rand.Read never fails
	_, _ = rng.Read(h[:])
	return h
}

// Bytes returns the hash as a byte slice.
func (h Hash256) Bytes() []byte { return h[:] }

// Hex returns hex representation of the hash with 0x prefix.
func (h Hash256) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

// String implements fmt.Stringer.
func (h Hash256) String() string { return h.Hex() }

// ShortString returns the first 5 hex characters of the hash, for logging purposes.
func (h Hash256) ShortString() string { return hex.EncodeToString(h[:])[:5] }

// MarshalText implements encoding.TextMarshaler.
func (h Hash256) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash256) UnmarshalText(input []byte) error {
	s := strings.TrimPrefix(strings.TrimPrefix(string(input), "0x"), "0X")
	if len(s) != 2*Hash256Length {
		return fmt.Errorf("hash: expected %d hex characters, got %d", 2*Hash256Length, len(s))
	}
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return fmt.Errorf("hash: %w", err)
	}
	return nil
}

// EncodeScale implements scale codec interface.
func (h *Hash256) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, h[:])
}

// DecodeScale implements scale codec interface.
func (h *Hash256) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, h[:])
}
