package database

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-txfactory/common/types"
	"github.com/spacemeshos/go-txfactory/factory"
)

func testRecord(worker, index uint32) *Record {
	return &Record{
		Worker: worker,
		Index:  index,
		Step:   factory.StakingBond,
		ID:     types.Hash256{byte(worker), byte(index)},
		Raw:    []byte{byte(index), 1, 2, 3},
	}
}

func TestStoreAddGet(t *testing.T) {
	store := NewStore(NewMemDatabase())
	rec := testRecord(1, 2)
	require.NoError(t, store.Add(rec))

	got, err := store.Get(1, 2)
	require.NoError(t, err)
	require.Equal(t, rec, got)

	_, err = store.Get(2, 1)
	require.True(t, IsNotFound(err))
}

func TestStoreIterateOrder(t *testing.T) {
	store := NewStore(NewMemDatabase())
	var recs []*Record
	for worker := uint32(0); worker < 3; worker++ {
		for index := uint32(0); index < 300; index++ {
			recs = append(recs, testRecord(worker, index))
		}
	}
	// reverse insertion order, iteration must follow keys
	for i := len(recs) - 1; i >= 0; i-- {
		require.NoError(t, store.Add(recs[i]))
	}

	var got []*Record
	require.NoError(t, store.Iterate(func(rec *Record) bool {
		got = append(got, rec)
		return true
	}))
	require.Equal(t, recs, got)

	count, err := store.Count()
	require.NoError(t, err)
	require.Equal(t, len(recs), count)

	var visited int
	require.NoError(t, store.Iterate(func(*Record) bool {
		visited++
		return visited < 10
	}))
	require.Equal(t, 10, visited)
}

func TestStoreAddBatch(t *testing.T) {
	store := NewStore(NewMemDatabase())
	recs := []*Record{testRecord(0, 0), testRecord(0, 1), testRecord(0, 2)}
	require.NoError(t, store.AddBatch(recs))
	count, err := store.Count()
	require.NoError(t, err)
	require.Equal(t, 3, count)
	require.NoError(t, store.Close())
}

func TestRecordInvalidStep(t *testing.T) {
	db := NewMemDatabase()
	require.NoError(t, db.Put(recordKey(0, 0), []byte{0}))
	_, err := NewStore(db).Get(0, 0)
	require.ErrorIs(t, err, factory.ErrUnsupportedStep)
}
