package types

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/spacemeshos/go-scale"
)

// ErrInvalidAddress is returned when decoding an address with an unknown or non-canonical prefix.
var ErrInvalidAddress = errors.New("invalid address")

const (
	addressID    = 0xff
	addressIdx16 = 0xfc
	addressIdx32 = 0xfd
	// largest index that is encoded as a single byte.
	addressMaxShortIndex = 0xef
)

// Address refers to an account either by its full id or by its index in the
// indices pallet.
type Address struct {
	ID      AccountID
	Index   uint32
	IsIndex bool
}

// AddressFromID returns an Address referring to account by id.
func AddressFromID(id AccountID) Address {
	return Address{ID: id}
}

// AddressFromIndex returns an Address referring to account by its index.
func AddressFromIndex(index uint32) Address {
	return Address{Index: index, IsIndex: true}
}

// String implements fmt.Stringer.
func (a Address) String() string {
	if a.IsIndex {
		return fmt.Sprintf("index(%d)", a.Index)
	}
	return a.ID.String()
}

// EncodeScale implements scale codec interface.
func (a *Address) EncodeScale(e *scale.Encoder) (int, error) {
	if !a.IsIndex {
		n, err := scale.EncodeByte(e, addressID)
		if err != nil {
			return n, err
		}
		n1, err := a.ID.EncodeScale(e)
		return n + n1, err
	}
	switch {
	case a.Index <= addressMaxShortIndex:
		return scale.EncodeByte(e, byte(a.Index))
	case a.Index <= 0xffff:
		n, err := scale.EncodeByte(e, addressIdx16)
		if err != nil {
			return n, err
		}
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(a.Index))
		n1, err := scale.EncodeByteArray(e, buf[:])
		return n + n1, err
	default:
		n, err := scale.EncodeByte(e, addressIdx32)
		if err != nil {
			return n, err
		}
		n1, err := scale.EncodeUint32(e, a.Index)
		return n + n1, err
	}
}

// DecodeScale implements scale codec interface.
func (a *Address) DecodeScale(d *scale.Decoder) (int, error) {
	prefix, total, err := scale.DecodeByte(d)
	if err != nil {
		return total, err
	}
	*a = Address{}
	switch {
	case prefix <= addressMaxShortIndex:
		a.IsIndex = true
		a.Index = uint32(prefix)
		return total, nil
	case prefix == addressID:
		n, err := a.ID.DecodeScale(d)
		return total + n, err
	case prefix == addressIdx16:
		var buf [2]byte
		n, err := scale.DecodeByteArray(d, buf[:])
		total += n
		if err != nil {
			return total, err
		}
		idx := binary.LittleEndian.Uint16(buf[:])
		if idx <= addressMaxShortIndex {
			return total, fmt.Errorf("%w: index %d must use the short form", ErrInvalidAddress, idx)
		}
		a.IsIndex = true
		a.Index = uint32(idx)
		return total, nil
	case prefix == addressIdx32:
		idx, n, err := scale.DecodeUint32(d)
		total += n
		if err != nil {
			return total, err
		}
		if idx <= 0xffff {
			return total, fmt.Errorf("%w: index %d must use the 16 bit form", ErrInvalidAddress, idx)
		}
		a.IsIndex = true
		a.Index = idx
		return total, nil
	default:
		return total, fmt.Errorf("%w: prefix %#x", ErrInvalidAddress, prefix)
	}
}
