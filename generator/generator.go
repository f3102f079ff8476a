// Package generator drives the factory: it runs workers that produce signed
// extrinsics and hands them to a sink. Nothing is submitted to a network.
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/spacemeshos/go-txfactory/codec"
	"github.com/spacemeshos/go-txfactory/database"
	"github.com/spacemeshos/go-txfactory/extrinsic"
	"github.com/spacemeshos/go-txfactory/factory"
	"github.com/spacemeshos/go-txfactory/inherents"
	"github.com/spacemeshos/go-txfactory/log"
	"github.com/spacemeshos/go-txfactory/metrics"
)

// Opt modifies Generator.
type Opt func(*Generator)

// WithLogger sets the logger used by Generator.
func WithLogger(logger *zap.Logger) Opt {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithMinimumPeriod sets the minimum period between blocks in milliseconds.
// It is used for timestamps in inherent data of sealed blocks.
func WithMinimumPeriod(period uint64) Opt {
	return func(g *Generator) {
		g.minimumPeriod = period
	}
}

// WithClock sets the clock used to time runs.
func WithClock(clock clockwork.Clock) Opt {
	return func(g *Generator) {
		g.clock = clock
	}
}

// Generator runs workers producing extrinsics.
type Generator struct {
	logger        *zap.Logger
	clock         clockwork.Clock
	cfg           Config
	builder       *factory.Builder
	chain         factory.Chain
	sink          Sink
	minimumPeriod uint64

	keys    *keyCache
	limiter *rate.Limiter
}

// New returns a generator. The config is validated.
func New(cfg Config, builder *factory.Builder, chain factory.Chain, sink Sink, opts ...Opt) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator config: %w", err)
	}
	keys, err := newKeyCache(cfg.KeyCacheSize)
	if err != nil {
		return nil, err
	}
	g := &Generator{
		logger:        zap.NewNop(),
		clock:         clockwork.NewRealClock(),
		cfg:           cfg,
		builder:       builder,
		chain:         chain,
		sink:          sink,
		minimumPeriod: 3000,
		keys:          keys,
	}
	if cfg.Rate > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(cfg.Rate), max(cfg.Burst, 1))
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Run produces Count extrinsics in every worker. The first error stops all
// workers and is returned together with the report of what was produced.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	runID, ok := log.ExtractRunID(ctx)
	if !ok {
		ctx = log.WithNewRunID(ctx)
		runID, _ = log.ExtractRunID(ctx)
	}
	logger := log.WithContext(ctx, g.logger)
	report := &Report{
		RunID:   runID,
		Started: g.clock.Now(),
		Workers: g.cfg.Workers,
		Mode:    g.cfg.Mode,
	}
	logger.Info("starting workers",
		zap.Int("workers", g.cfg.Workers),
		zap.Uint32("count", g.cfg.Count),
		zap.Stringer("step", g.cfg.Step),
		zap.String("mode", string(g.cfg.Mode)),
	)

	var t tally
	eg, ctx := errgroup.WithContext(ctx)
	for w := 0; w < g.cfg.Workers; w++ {
		worker := uint32(w)
		eg.Go(func() error {
			return g.runWorker(ctx, logger, worker, &t)
		})
	}
	err := eg.Wait()
	report.Duration = g.clock.Since(report.Started)
	t.fill(report)
	if err != nil {
		logger.Error("run failed", zap.Uint64("extrinsics", report.Extrinsics), zap.Error(err))
		return report, err
	}
	logger.Info("run completed",
		zap.Uint64("extrinsics", report.Extrinsics),
		zap.Uint64("blocks", report.Blocks),
		zap.Duration("duration", report.Duration),
	)
	return report, nil
}

func (g *Generator) runWorker(ctx context.Context, logger *zap.Logger, worker uint32, t *tally) error {
	signer := g.keys.signer(g.cfg.SenderSeed + worker)
	logger = logger.With(
		zap.Uint32("worker", worker),
		zap.String("sender", signer.AccountID().ShortString()),
	)
	st := factory.NewState(g.cfg.Step, g.cfg.Count)
	st.SetStartNumber(g.cfg.StartBlock)
	st.SetBlockNo(g.cfg.StartBlock)

	batch := make([]*database.Record, 0, g.cfg.TxsPerBlock)
	for !st.Done() {
		if g.limiter != nil {
			if err := g.limiter.Wait(ctx); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		index := st.Index()
		step := st.Step()
		dest := g.keys.accountID(g.cfg.destinationSeed(worker, index))
		ue, err := g.builder.CreateExtrinsic(st, signer, dest, g.cfg.Amount, g.chain, entropy(worker, index))
		if err != nil {
			return fmt.Errorf("worker %d extrinsic %d: %w", worker, index, err)
		}
		raw, err := codec.Encode(ue)
		if err != nil {
			return fmt.Errorf("worker %d encode extrinsic %d: %w", worker, index, err)
		}
		batch = append(batch, &database.Record{
			Worker: worker,
			Index:  index,
			Step:   step,
			ID:     extrinsic.ID(raw),
			Raw:    raw,
		})
		generated.WithLabelValues(step.String()).Inc()
		t.add(step)
		st.IncreaseIndex()

		if len(batch) == int(g.cfg.TxsPerBlock) || st.Done() {
			if err := g.sealBlock(ctx, logger, st, batch); err != nil {
				return err
			}
			t.blocks.Add(1)
			batch = make([]*database.Record, 0, g.cfg.TxsPerBlock)
		}
	}
	logger.Debug("worker completed", zap.Uint32("round", st.Round()), zap.Uint32("block", st.BlockNo()))
	return nil
}

// sealBlock writes extrinsics of the block to the sink and moves the state
// to the next block.
func (g *Generator) sealBlock(ctx context.Context, logger *zap.Logger, st *factory.State, batch []*database.Record) error {
	start := time.Now()
	if err := g.sink.Write(ctx, batch); err != nil {
		return fmt.Errorf("write block %d: %w", st.BlockNo(), err)
	}
	metrics.ObserveSince(sinkLatency, start)
	blocks.Inc()

	data, err := inherents.Build(st.BlockNo(), g.minimumPeriod)
	if err != nil {
		return fmt.Errorf("inherents for block %d: %w", st.BlockNo(), err)
	}
	if ce := logger.Check(zap.DebugLevel, "sealed block"); ce != nil {
		ce.Write(
			zap.Uint32("block", st.BlockNo()),
			zap.Uint32("round", st.Round()),
			zap.Uint32("block_in_round", st.BlockInRound()),
			zap.Int("extrinsics", len(batch)),
			zap.Binary("inherents", codec.MustEncode(data)),
		)
	}

	st.SetBlockNo(st.BlockNo() + 1)
	st.SetBlockInRound(st.BlockInRound() + 1)
	if st.BlockInRound() == g.cfg.BlocksPerRound {
		st.SetRound(st.Round() + 1)
		st.SetBlockInRound(0)
	}
	return nil
}

// entropy seeds placeholder hashes of the extrinsic, so that runs with
// the same config produce the same extrinsics.
func entropy(worker, index uint32) uint64 {
	return uint64(worker)<<32 | uint64(index)
}
