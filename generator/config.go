package generator

import (
	"errors"
	"fmt"
	"math"

	"github.com/spacemeshos/go-txfactory/factory"
)

// Mode selects destinations of produced extrinsics.
type Mode string

const (
	// MasterToN sends every extrinsic of a worker to a new destination.
	MasterToN Mode = "master-to-n"
	// MasterToOne sends all extrinsics of a worker to a single destination.
	MasterToOne Mode = "master-to-1"
)

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	switch mode := Mode(text); mode {
	case MasterToN, MasterToOne:
		*m = mode
		return nil
	default:
		return fmt.Errorf("unknown mode %q", text)
	}
}

// Config of the generator.
type Config struct {
	Workers int `mapstructure:"workers"`
	// Count is the number of extrinsics produced by each worker.
	Count uint32       `mapstructure:"count"`
	Step  factory.Step `mapstructure:"step"`
	Mode  Mode         `mapstructure:"mode"`

	// Worker w signs with the account derived from SenderSeed+w.
	SenderSeed uint32 `mapstructure:"sender-seed"`
	// Destinations are derived from seeds starting at DestSeed, ranges of
	// different workers don't overlap.
	DestSeed uint32 `mapstructure:"dest-seed"`
	Amount   uint64 `mapstructure:"amount"`

	StartBlock     uint32 `mapstructure:"start-block"`
	TxsPerBlock    uint32 `mapstructure:"txs-per-block"`
	BlocksPerRound uint32 `mapstructure:"blocks-per-round"`

	// Rate limits extrinsics per second across all workers, 0 disables the limit.
	Rate  float64 `mapstructure:"rate"`
	Burst int     `mapstructure:"burst"`

	KeyCacheSize int `mapstructure:"key-cache-size"`
}

// DefaultConfig returns the default generator config.
func DefaultConfig() Config {
	return Config{
		Workers:        1,
		Count:          100,
		Step:           factory.BalancesTransfer,
		Mode:           MasterToN,
		SenderSeed:     0,
		DestSeed:       1 << 20,
		Amount:         1_000_000_000_000_000,
		TxsPerBlock:    10,
		BlocksPerRound: 10,
		Burst:          1,
		KeyCacheSize:   1024,
	}
}

// Validate returns an error if the config can't be used for a run.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return errors.New("at least one worker is required")
	}
	if !c.Step.Valid() {
		return fmt.Errorf("%w: %s", factory.ErrUnsupportedStep, c.Step)
	}
	if c.Mode != MasterToN && c.Mode != MasterToOne {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.TxsPerBlock == 0 || c.BlocksPerRound == 0 {
		return errors.New("txs-per-block and blocks-per-round must be positive")
	}
	if c.Rate < 0 {
		return fmt.Errorf("negative rate %f", c.Rate)
	}
	if c.KeyCacheSize < 1 {
		return fmt.Errorf("key cache size must be positive, got %d", c.KeyCacheSize)
	}
	if uint64(c.SenderSeed)+uint64(c.Workers) > math.MaxUint32 {
		return fmt.Errorf("sender seeds overflow: %d + %d workers", c.SenderSeed, c.Workers)
	}
	if uint64(c.DestSeed)+uint64(c.Workers)*uint64(max(c.Count, 1)) > math.MaxUint32 {
		return fmt.Errorf("destination seeds overflow: %d + %d workers * %d", c.DestSeed, c.Workers, c.Count)
	}
	return nil
}

// destinationSeed returns the seed of the destination account.
func (c *Config) destinationSeed(worker, index uint32) uint32 {
	if c.Mode == MasterToOne {
		return c.DestSeed + worker
	}
	return c.DestSeed + worker*c.Count + index
}
