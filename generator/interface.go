package generator

import (
	"context"

	"github.com/spacemeshos/go-txfactory/database"
)

//go:generate mockgen -typed -package=generator -destination=./mocks.go -source=./interface.go

// Sink receives extrinsics produced by workers. Records of a single call
// belong to one worker and one block, ordered by index. Write is called
// concurrently by different workers.
type Sink interface {
	Write(ctx context.Context, recs []*database.Record) error
}
