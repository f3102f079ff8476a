package database

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/spacemeshos/go-scale"

	"github.com/spacemeshos/go-txfactory/codec"
	"github.com/spacemeshos/go-txfactory/common/types"
	"github.com/spacemeshos/go-txfactory/factory"
)

const (
	keySize = 8
	// maxRawSize bounds the size of a stored extrinsic.
	maxRawSize = 5 << 20
)

// Record is an extrinsic produced by a worker.
type Record struct {
	Worker uint32
	Index  uint32
	Step   factory.Step
	ID     types.Hash256
	Raw    []byte
}

// Key returns the key of the record: worker and index, both big endian,
// so that records of a worker are iterated in production order.
func (r *Record) Key() []byte {
	return recordKey(r.Worker, r.Index)
}

func recordKey(worker, index uint32) []byte {
	key := make([]byte, keySize)
	binary.BigEndian.PutUint32(key, worker)
	binary.BigEndian.PutUint32(key[4:], index)
	return key
}

// EncodeScale implements scale codec interface. Worker and index are
// stored in the key and are not encoded.
func (r *Record) EncodeScale(e *scale.Encoder) (int, error) {
	total, err := scale.EncodeByte(e, byte(r.Step))
	if err != nil {
		return total, err
	}
	n, err := r.ID.EncodeScale(e)
	total += n
	if err != nil {
		return total, err
	}
	n, err = scale.EncodeByteSliceWithLimit(e, r.Raw, maxRawSize)
	return total + n, err
}

// DecodeScale implements scale codec interface.
func (r *Record) DecodeScale(d *scale.Decoder) (int, error) {
	step, total, err := scale.DecodeByte(d)
	if err != nil {
		return total, err
	}
	r.Step = factory.Step(step)
	if !r.Step.Valid() {
		return total, fmt.Errorf("%w: %d", factory.ErrUnsupportedStep, step)
	}
	n, err := r.ID.DecodeScale(d)
	total += n
	if err != nil {
		return total, err
	}
	raw, n, err := scale.DecodeByteSliceWithLimit(d, maxRawSize)
	total += n
	if err != nil {
		return total, err
	}
	r.Raw = raw
	return total, nil
}

// Store persists records in a key value database.
type Store struct {
	db Database
}

// NewStore returns a record store backed by db.
func NewStore(db Database) *Store {
	return &Store{db: db}
}

// Add stores a single record.
func (s *Store) Add(rec *Record) error {
	value, err := codec.Encode(rec)
	if err != nil {
		return fmt.Errorf("encode record %d/%d: %w", rec.Worker, rec.Index, err)
	}
	return s.db.Put(rec.Key(), value)
}

// AddBatch stores records atomically.
func (s *Store) AddBatch(recs []*Record) error {
	batch := s.db.NewBatch()
	for _, rec := range recs {
		value, err := codec.Encode(rec)
		if err != nil {
			return fmt.Errorf("encode record %d/%d: %w", rec.Worker, rec.Index, err)
		}
		if err := batch.Put(rec.Key(), value); err != nil {
			return err
		}
	}
	return batch.Write()
}

// Get returns the record produced by worker at index.
func (s *Store) Get(worker, index uint32) (*Record, error) {
	value, err := s.db.Get(recordKey(worker, index))
	if err != nil {
		return nil, fmt.Errorf("record %d/%d: %w", worker, index, err)
	}
	rec := &Record{Worker: worker, Index: index}
	if err := codec.Decode(value, rec); err != nil {
		return nil, fmt.Errorf("decode record %d/%d: %w", worker, index, err)
	}
	return rec, nil
}

// Iterate calls fn for every record ordered by worker and index, until fn
// returns false.
func (s *Store) Iterate(fn func(*Record) bool) error {
	it := s.db.Find(nil)
	defer it.Release()
	for it.Next() {
		key := it.Key()
		if len(key) != keySize {
			return fmt.Errorf("invalid record key %x", key)
		}
		rec := &Record{
			Worker: binary.BigEndian.Uint32(key),
			Index:  binary.BigEndian.Uint32(key[4:]),
		}
		if err := codec.Decode(it.Value(), rec); err != nil {
			return fmt.Errorf("decode record %d/%d: %w", rec.Worker, rec.Index, err)
		}
		if !fn(rec) {
			break
		}
	}
	return it.Error()
}

// Count returns the number of stored records.
func (s *Store) Count() (int, error) {
	var count int
	err := s.Iterate(func(*Record) bool {
		count++
		return true
	})
	return count, err
}

// IsNotFound returns true if err means the record is missing.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
