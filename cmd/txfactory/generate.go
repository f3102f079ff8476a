package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-txfactory/config"
	"github.com/spacemeshos/go-txfactory/database"
	"github.com/spacemeshos/go-txfactory/factory"
	"github.com/spacemeshos/go-txfactory/filesystem"
	"github.com/spacemeshos/go-txfactory/generator"
	"github.com/spacemeshos/go-txfactory/log"
	"github.com/spacemeshos/go-txfactory/metrics"
)

func generateCommand(conf *config.Config, configure func(*cobra.Command) error) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "run workers and persist produced extrinsics",
		RunE: func(c *cobra.Command, _ []string) error {
			if err := configure(c); err != nil {
				return err
			}
			return generate(c, conf)
		},
	}
}

func generate(c *cobra.Command, conf *config.Config) error {
	logger, err := conf.LOGGING.Logger(AppLogger)
	if err != nil {
		return log.ErrMalformedConfig(err)
	}
	dataDir := conf.DataDir()
	if err := filesystem.ExistOrCreate(dataDir); err != nil {
		return log.ErrEnsureDataDir(err)
	}
	fl, err := filesystem.Lock(conf.LockPath())
	if err != nil {
		return log.ErrLockDataDir(err)
	}
	defer fl.Unlock()

	ctx, cancel := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx = log.WithNewRunID(ctx)
	runID, _ := log.ExtractRunID(ctx)
	logger = log.WithContext(ctx, logger)

	stopMetrics, err := startMetrics(ctx, conf, runID)
	if err != nil {
		return err
	}
	defer stopMetrics()

	sink, closeSink, err := openSink(conf)
	if err != nil {
		return err
	}
	factoryLogger, _ := conf.LOGGING.Logger(FactoryLogger)
	generatorLogger, _ := conf.LOGGING.Logger(GeneratorLogger)
	gen, err := generator.New(
		conf.Generator,
		factory.NewBuilder(conf.Factory, factory.WithLogger(factoryLogger)),
		conf.Chain.Chain(),
		sink,
		generator.WithLogger(generatorLogger),
		generator.WithMinimumPeriod(conf.Chain.MinimumPeriod),
	)
	if err != nil {
		return errors.Join(err, closeSink())
	}
	report, runErr := gen.Run(ctx)
	if err := closeSink(); err != nil {
		runErr = errors.Join(runErr, err)
	}

	path := resolve(dataDir, conf.ReportFile)
	if err := generator.WriteReport(path, report); err != nil {
		return errors.Join(runErr, err)
	}
	logger.Info("report written", zap.String("path", path))
	printReport(c, report)
	return runErr
}

// openSink returns the configured sink and a function that releases it.
func openSink(conf *config.Config) (generator.Sink, func() error, error) {
	switch conf.Output {
	case config.OutputStore:
		storeLogger, _ := conf.LOGGING.Logger(StoreLogger)
		db, err := database.NewLDBDatabase(conf.StorePath(), conf.StoreCache, conf.StoreHandles, storeLogger)
		if err != nil {
			return nil, nil, log.ErrOpenStore(err)
		}
		store := database.NewStore(db)
		return generator.NewStoreSink(store), store.Close, nil
	case config.OutputFile:
		sink, err := generator.NewFileSink(afero.NewOsFs(), resolve(conf.DataDir(), conf.OutputFile))
		if err != nil {
			return nil, nil, err
		}
		return sink, sink.Close, nil
	default:
		return generator.DiscardSink{}, func() error { return nil }, nil
	}
}

func startMetrics(ctx context.Context, conf *config.Config, runID string) (func(), error) {
	logger, _ := conf.LOGGING.Logger(MetricsLogger)
	var stops []func()
	stop := func() {
		for i := len(stops) - 1; i >= 0; i-- {
			stops[i]()
		}
	}
	if conf.CollectMetrics {
		srv, err := metrics.StartCollectingMetrics(fmt.Sprintf(":%d", conf.MetricsPort), logger)
		if err != nil {
			return nil, err
		}
		stops = append(stops, func() {
			if err := srv.Stop(context.Background()); err != nil {
				logger.Warn("failed to stop metrics server", zap.Error(err))
			}
		})
	}
	if conf.MetricsPush != "" {
		pushCtx, cancel := context.WithCancel(ctx)
		done := metrics.StartPushingMetrics(pushCtx, conf.MetricsPush, conf.MetricsPushPeriod, runID, logger)
		stops = append(stops, func() {
			cancel()
			<-done
		})
	}
	return stop, nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func printReport(c *cobra.Command, report *generator.Report) {
	out := c.OutOrStdout()
	fmt.Fprintf(out, "run %s: %d extrinsics in %d blocks, %s\n",
		report.RunID, report.Extrinsics, report.Blocks, report.Duration)
	for _, step := range factory.Steps() {
		if n, exists := report.Steps[step.String()]; exists {
			fmt.Fprintf(out, "  %-26s %d\n", step, n)
		}
	}
}
