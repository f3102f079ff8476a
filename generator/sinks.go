package generator

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/afero"

	"github.com/spacemeshos/go-txfactory/database"
)

// StoreSink persists records in the store, one batch per block.
type StoreSink struct {
	store *database.Store
}

// NewStoreSink returns a sink writing to store.
func NewStoreSink(store *database.Store) *StoreSink {
	return &StoreSink{store: store}
}

// Write implements Sink.
func (s *StoreSink) Write(_ context.Context, recs []*database.Record) error {
	return s.store.AddBatch(recs)
}

// FileSink writes hex encoded extrinsics, one per line.
type FileSink struct {
	mu   sync.Mutex
	file afero.File
	w    *bufio.Writer
}

// NewFileSink creates or truncates the file at path.
func NewFileSink(fs afero.Fs, path string) (*FileSink, error) {
	file, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &FileSink{file: file, w: bufio.NewWriter(file)}, nil
}

// Write implements Sink.
func (s *FileSink) Write(_ context.Context, recs []*database.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range recs {
		if _, err := s.w.WriteString(hex.EncodeToString(rec.Raw)); err != nil {
			return fmt.Errorf("write %s: %w", s.file.Name(), err)
		}
		if err := s.w.WriteByte('\n'); err != nil {
			return fmt.Errorf("write %s: %w", s.file.Name(), err)
		}
	}
	return nil
}

// Close flushes buffered lines and closes the file.
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.w.Flush(); err != nil {
		s.file.Close()
		return fmt.Errorf("flush %s: %w", s.file.Name(), err)
	}
	return s.file.Close()
}

// DiscardSink drops all records. It is used to measure the factory alone.
type DiscardSink struct{}

// Write implements Sink.
func (DiscardSink) Write(context.Context, []*database.Record) error { return nil }
