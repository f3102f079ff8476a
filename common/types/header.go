package types

import (
	"errors"
	"fmt"

	"github.com/spacemeshos/go-scale"
)

const (
	// maxDigestItems bounds number of items decoded from a digest.
	maxDigestItems = 1 << 10
	// maxDigestItemSize bounds size of a single opaque digest item.
	maxDigestItemSize = 1 << 16
)

// ErrUnsupportedDigestItem is returned when decoding a digest item other than Other.
var ErrUnsupportedDigestItem = errors.New("unsupported digest item")

// DigestItemOther is the index of an opaque digest item.
const DigestItemOther = 0

// DigestItem is an opaque entry of a header digest.
type DigestItem struct {
	Other []byte
}

// EncodeScale implements scale codec interface.
func (di *DigestItem) EncodeScale(e *scale.Encoder) (int, error) {
	total, err := scale.EncodeByte(e, DigestItemOther)
	if err != nil {
		return total, err
	}
	n, err := scale.EncodeByteSliceWithLimit(e, di.Other, maxDigestItemSize)
	return total + n, err
}

// DecodeScale implements scale codec interface.
func (di *DigestItem) DecodeScale(d *scale.Decoder) (int, error) {
	kind, total, err := scale.DecodeByte(d)
	if err != nil {
		return total, err
	}
	if kind != DigestItemOther {
		return total, fmt.Errorf("%w: %d", ErrUnsupportedDigestItem, kind)
	}
	other, n, err := scale.DecodeByteSliceWithLimit(d, maxDigestItemSize)
	total += n
	if err != nil {
		return total, err
	}
	if len(other) == 0 {
		other = nil
	}
	di.Other = other
	return total, nil
}

// Digest is a list of header digest items.
type Digest struct {
	Logs []DigestItem
}

// EncodeScale implements scale codec interface.
func (dg *Digest) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeStructSliceWithLimit(e, dg.Logs, maxDigestItems)
}

// DecodeScale implements scale codec interface.
func (dg *Digest) DecodeScale(d *scale.Decoder) (int, error) {
	logs, n, err := scale.DecodeStructSliceWithLimit[DigestItem](d, maxDigestItems)
	if err != nil {
		return n, err
	}
	if len(logs) == 0 {
		logs = nil
	}
	dg.Logs = logs
	return n, nil
}

// Header is a block header. Headers produced by the factory are placeholders,
// used as uncles, and do not form a chain.
type Header struct {
	ParentHash     Hash256
	Number         uint32
	StateRoot      Hash256
	ExtrinsicsRoot Hash256
	Digest         Digest
}

// EncodeScale implements scale codec interface.
func (h *Header) EncodeScale(e *scale.Encoder) (int, error) {
	var total int
	{
		n, err := h.ParentHash.EncodeScale(e)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeCompact32(e, h.Number)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := h.StateRoot.EncodeScale(e)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := h.ExtrinsicsRoot.EncodeScale(e)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := h.Digest.EncodeScale(e)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (h *Header) DecodeScale(d *scale.Decoder) (int, error) {
	var total int
	{
		n, err := h.ParentHash.DecodeScale(d)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		field, n, err := scale.DecodeCompact32(d)
		if err != nil {
			return total, err
		}
		total += n
		h.Number = field
	}
	{
		n, err := h.StateRoot.DecodeScale(d)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := h.ExtrinsicsRoot.DecodeScale(d)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := h.Digest.DecodeScale(d)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
