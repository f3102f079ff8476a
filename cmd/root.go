package cmd

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/spacemeshos/go-txfactory/cmd/flags"
	"github.com/spacemeshos/go-txfactory/config"
	"github.com/spacemeshos/go-txfactory/config/presets"
)

// AddFlags binds flags into config. Defaults are the values already in config.
func AddFlags(flagSet *pflag.FlagSet, cfg *config.Config) {
	flagSet.StringVarP(&cfg.Preset, "preset", "p", cfg.Preset,
		fmt.Sprintf("preset overwrites default values of the config. options %+s", presets.Options()))

	/** ======================== BaseConfig Flags ========================== **/
	flagSet.StringVarP(&cfg.ConfigFile, "config", "c",
		cfg.ConfigFile, "Load configuration from file")
	flagSet.StringVarP(&cfg.DataDirParent, "data-folder", "d",
		cfg.DataDirParent, "Specify data directory for txfactory")
	flagSet.StringVar(&cfg.Output, "output",
		cfg.Output, "Where generated extrinsics go (store, file, discard)")
	flagSet.StringVar(&cfg.OutputFile, "output-file",
		cfg.OutputFile, "File for hex encoded extrinsics, relative to the data directory")
	flagSet.StringVar(&cfg.ReportFile, "report-file",
		cfg.ReportFile, "File for the run report, relative to the data directory")
	flagSet.BoolVar(&cfg.CollectMetrics, "metrics",
		cfg.CollectMetrics, "collect metrics")
	flagSet.IntVar(&cfg.MetricsPort, "metrics-port",
		cfg.MetricsPort, "metric server port")
	flagSet.StringVar(&cfg.MetricsPush, "metrics-push",
		cfg.MetricsPush, "Push metrics to url")
	flagSet.DurationVar(&cfg.MetricsPushPeriod, "metrics-push-period",
		cfg.MetricsPushPeriod, "Push period")

	/** ======================== Chain Flags ========================== **/
	flagSet.Uint32Var(&cfg.Chain.SpecVersion, "spec-version",
		cfg.Chain.SpecVersion, "runtime spec version signed into extrinsics")
	flagSet.Var(flags.NewTextValue(&cfg.Chain.GenesisHash, "hash"), "genesis-hash",
		"genesis hash signed into extrinsics")
	flagSet.Var(flags.NewTextValue(&cfg.Chain.PriorBlockHash, "hash"), "prior-block-hash",
		"hash of the block that starts the era of extrinsics")
	flagSet.Uint64Var(&cfg.Chain.MinimumPeriod, "minimum-period",
		cfg.Chain.MinimumPeriod, "minimum period between blocks in milliseconds")

	/** ======================== Factory Flags ========================== **/
	flagSet.Uint64Var(&cfg.Factory.MinimumBalance, "minimum-balance",
		cfg.Factory.MinimumBalance, "minimum balance of the chain, base of staking amounts")
	flagSet.StringVar(&cfg.Factory.NickName, "nick-name",
		cfg.Factory.NickName, "name used by nicks_set_name")
	flagSet.IntVar(&cfg.Factory.Uncles, "uncles",
		cfg.Factory.Uncles, "number of uncle headers in authorship_set_uncles")

	/** ======================== Generator Flags ========================== **/
	flagSet.IntVar(&cfg.Generator.Workers, "workers",
		cfg.Generator.Workers, "number of concurrent workers")
	flagSet.Uint32Var(&cfg.Generator.Count, "count",
		cfg.Generator.Count, "number of extrinsics produced by each worker")
	flagSet.Var(flags.NewTextValue(&cfg.Generator.Step, "step"), "step",
		"first step of the script")
	flagSet.Var(flags.NewTextValue(&cfg.Generator.Mode, "mode"), "mode",
		"destinations of extrinsics (master-to-n, master-to-1)")
	flagSet.Uint32Var(&cfg.Generator.SenderSeed, "sender-seed",
		cfg.Generator.SenderSeed, "seed of the first sender account")
	flagSet.Uint32Var(&cfg.Generator.DestSeed, "dest-seed",
		cfg.Generator.DestSeed, "seed of the first destination account")
	flagSet.Uint64Var(&cfg.Generator.Amount, "amount",
		cfg.Generator.Amount, "amount of transfers")
	flagSet.Uint32Var(&cfg.Generator.StartBlock, "start-block",
		cfg.Generator.StartBlock, "number of the first block")
	flagSet.Uint32Var(&cfg.Generator.TxsPerBlock, "txs-per-block",
		cfg.Generator.TxsPerBlock, "number of extrinsics in a block")
	flagSet.Uint32Var(&cfg.Generator.BlocksPerRound, "blocks-per-round",
		cfg.Generator.BlocksPerRound, "number of blocks in a round")
	flagSet.Float64Var(&cfg.Generator.Rate, "rate",
		cfg.Generator.Rate, "extrinsics per second across all workers, 0 is unlimited")
	flagSet.IntVar(&cfg.Generator.Burst, "burst",
		cfg.Generator.Burst, "burst allowed by the rate limit")
	flagSet.IntVar(&cfg.Generator.KeyCacheSize, "key-cache-size",
		cfg.Generator.KeyCacheSize, "number of derived keys kept in memory")

	/** ======================== Logging Flags ========================== **/
	flagSet.StringVar(&cfg.LOGGING.Encoder, "log-encoder",
		cfg.LOGGING.Encoder, "Log as JSON instead of plain text")
	flagSet.StringVar(&cfg.LOGGING.AppLoggerLevel, "log-level",
		cfg.LOGGING.AppLoggerLevel, "level of the application logger")
}
