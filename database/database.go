// Package database wraps leveldb used to persist extrinsics produced by the factory.
package database

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
	"go.uber.org/zap"
)

// ErrNotFound is special type error for not found in DB.
var ErrNotFound = lerrors.ErrNotFound

// LDBDatabase is a wrapper for leveldb database with concurrent access.
type LDBDatabase struct {
	fn string      // filename for reporting
	db *leveldb.DB // LevelDB instance

	logger *zap.Logger
}

// NewLDBDatabase returns a LevelDB wrapped object.
func NewLDBDatabase(file string, cache, handles int, logger *zap.Logger) (*LDBDatabase, error) {
	// Ensure we have some minimal caching and file guarantees
	cache = max(cache, 16)
	handles = max(handles, 16)
	logger.Info("allocated cache and file handles",
		zap.String("file", file),
		zap.Int("cache_size", cache),
		zap.Int("num_handles", handles),
	)

	// Open the db and recover any potential corruptions
	db, err := leveldb.OpenFile(file, &opt.Options{
		OpenFilesCacheCapacity: handles,
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB, // Two of these are used internally
		Filter:                 filter.NewBloomFilter(10),
	})
	var corrupted *lerrors.ErrCorrupted
	if errors.As(err, &corrupted) {
		logger.Warn("recovering corrupted database", zap.String("file", file), zap.Error(err))
		db, err = leveldb.RecoverFile(file, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return &LDBDatabase{
		fn:     file,
		db:     db,
		logger: logger,
	}, nil
}

// NewMemDatabase returns a memory database instance.
func NewMemDatabase() *LDBDatabase {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		panic("can't open in-memory leveldb: " + err.Error())
	}
	return &LDBDatabase{db: db, logger: zap.NewNop()}
}

// Path returns the path to the database directory.
func (db *LDBDatabase) Path() string {
	return db.fn
}

// Put puts the given key / value to the queue.
func (db *LDBDatabase) Put(key, value []byte) error {
	if err := db.db.Put(key, value, nil); err != nil {
		return fmt.Errorf("put value: %w", err)
	}
	return nil
}

// Has returns whether the db contains the key.
func (db *LDBDatabase) Has(key []byte) (bool, error) {
	has, err := db.db.Has(key, nil)
	if err != nil {
		return false, fmt.Errorf("check value: %w", err)
	}
	return has, nil
}

// Get returns the given key if it's present.
func (db *LDBDatabase) Get(key []byte) ([]byte, error) {
	dat, err := db.db.Get(key, nil)
	if err != nil {
		return nil, fmt.Errorf("get value: %w", err)
	}
	return dat, nil
}

// Delete deletes the key from the queue and database.
func (db *LDBDatabase) Delete(key []byte) error {
	if err := db.db.Delete(key, nil); err != nil {
		return fmt.Errorf("delete value: %w", err)
	}
	return nil
}

// Find returns an iterator over keys with prefix. Nil prefix iterates over all keys.
func (db *LDBDatabase) Find(prefix []byte) Iterator {
	return db.db.NewIterator(util.BytesPrefix(prefix), nil)
}

// NewBatch creates a batch that is written to the database on Write.
func (db *LDBDatabase) NewBatch() Batch {
	return &ldbBatch{db: db.db, b: new(leveldb.Batch)}
}

// Close closes database, flushing writes and denying all new write requests.
func (db *LDBDatabase) Close() error {
	if err := db.db.Close(); err != nil {
		db.logger.Error("failed to close database", zap.String("file", db.fn), zap.Error(err))
		return fmt.Errorf("close %s: %w", db.fn, err)
	}
	db.logger.Info("database closed", zap.String("file", db.fn))
	return nil
}

type ldbBatch struct {
	db   *leveldb.DB
	b    *leveldb.Batch
	size int
}

func (b *ldbBatch) Put(key, value []byte) error {
	b.b.Put(key, value)
	b.size += len(value)
	return nil
}

func (b *ldbBatch) Delete(key []byte) error {
	b.b.Delete(key)
	b.size++
	return nil
}

func (b *ldbBatch) ValueSize() int {
	return b.size
}

func (b *ldbBatch) Write() error {
	if err := b.db.Write(b.b, nil); err != nil {
		return fmt.Errorf("write batch: %w", err)
	}
	return nil
}

func (b *ldbBatch) Reset() {
	b.b.Reset()
	b.size = 0
}
