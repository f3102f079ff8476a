// Package inherents builds inherent data supplied to block authoring
// before the extrinsics produced by the factory.
package inherents

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/spacemeshos/go-scale"

	"github.com/spacemeshos/go-txfactory/codec"
)

const (
	// maxEntries bounds the number of decoded entries.
	maxEntries = 1 << 8
	// maxValueSize bounds the size of a decoded value.
	maxValueSize = 1 << 16
)

var (
	// ErrKeyCollision is returned when data for the identifier is already present.
	ErrKeyCollision = errors.New("inherent data key collision")
	// ErrNotFound is returned when there is no data for the identifier.
	ErrNotFound = errors.New("inherent data not found")
)

// Identifier of inherent data.
type Identifier [8]byte

// String implements fmt.Stringer.
func (id Identifier) String() string {
	return string(id[:])
}

var (
	// TimestampIdentifier is the identifier of the timestamp inherent.
	TimestampIdentifier = Identifier{'t', 'i', 'm', 's', 't', 'a', 'p', '0'}
	// FinalityIdentifier is the identifier of the finalized number hint.
	FinalityIdentifier = Identifier{'f', 'i', 'n', 'a', 'l', 'n', 'u', 'm'}
)

// Data maps identifiers to encoded values.
type Data struct {
	entries map[Identifier][]byte
}

// New returns empty inherent data.
func New() *Data {
	return &Data{entries: map[Identifier][]byte{}}
}

// Put encodes value and stores it under id.
func (d *Data) Put(id Identifier, value scale.Encodable) error {
	if _, exists := d.entries[id]; exists {
		return fmt.Errorf("%w: %s", ErrKeyCollision, id)
	}
	buf, err := codec.Encode(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", id, err)
	}
	d.entries[id] = buf
	return nil
}

// Get decodes the value stored under id.
func (d *Data) Get(id Identifier, value scale.Decodable) error {
	buf, exists := d.entries[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := codec.Decode(buf, value); err != nil {
		return fmt.Errorf("decode %s: %w", id, err)
	}
	return nil
}

// Len returns the number of entries.
func (d *Data) Len() int {
	return len(d.entries)
}

func (d *Data) sortedKeys() []Identifier {
	keys := make([]Identifier, 0, len(d.entries))
	for id := range d.entries {
		keys = append(keys, id)
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i][:], keys[j][:]) < 0
	})
	return keys
}

// EncodeScale implements scale codec interface. Entries are encoded
// in the order of identifiers.
func (d *Data) EncodeScale(e *scale.Encoder) (int, error) {
	total, err := scale.EncodeCompact32(e, uint32(len(d.entries)))
	if err != nil {
		return total, err
	}
	for _, id := range d.sortedKeys() {
		n, err := scale.EncodeByteArray(e, id[:])
		total += n
		if err != nil {
			return total, err
		}
		n, err = scale.EncodeByteSliceWithLimit(e, d.entries[id], maxValueSize)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (d *Data) DecodeScale(dec *scale.Decoder) (int, error) {
	count, total, err := scale.DecodeCompact32(dec)
	if err != nil {
		return total, err
	}
	if count > maxEntries {
		return total, fmt.Errorf("too many inherent entries: %d", count)
	}
	d.entries = make(map[Identifier][]byte, count)
	for i := uint32(0); i < count; i++ {
		var id Identifier
		n, err := scale.DecodeByteArray(dec, id[:])
		total += n
		if err != nil {
			return total, err
		}
		value, n, err := scale.DecodeByteSliceWithLimit(dec, maxValueSize)
		total += n
		if err != nil {
			return total, err
		}
		if _, exists := d.entries[id]; exists {
			return total, fmt.Errorf("%w: %s", ErrKeyCollision, id)
		}
		d.entries[id] = value
	}
	return total, nil
}

// Timestamp is the timestamp inherent in milliseconds.
type Timestamp uint64

// EncodeScale implements scale codec interface.
func (t *Timestamp) EncodeScale(e *scale.Encoder) (int, error) {
	return encodeUint64(e, uint64(*t))
}

// DecodeScale implements scale codec interface.
func (t *Timestamp) DecodeScale(d *scale.Decoder) (int, error) {
	value, n, err := decodeUint64(d)
	*t = Timestamp(value)
	return n, err
}

// BlockNumber is the finalized number hint.
type BlockNumber uint32

// EncodeScale implements scale codec interface.
func (b *BlockNumber) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeUint32(e, uint32(*b))
}

// DecodeScale implements scale codec interface.
func (b *BlockNumber) DecodeScale(d *scale.Decoder) (int, error) {
	value, n, err := scale.DecodeUint32(d)
	*b = BlockNumber(value)
	return n, err
}

// Build returns inherent data for the block after blockNo: the timestamp
// (blockNo+1)*minimumPeriod and blockNo as the finalized number hint.
func Build(blockNo uint32, minimumPeriod uint64) (*Data, error) {
	data := New()
	ts := Timestamp((uint64(blockNo) + 1) * minimumPeriod)
	if err := data.Put(TimestampIdentifier, &ts); err != nil {
		return nil, err
	}
	finalized := BlockNumber(blockNo)
	if err := data.Put(FinalityIdentifier, &finalized); err != nil {
		return nil, err
	}
	return data, nil
}
