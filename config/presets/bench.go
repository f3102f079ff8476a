package presets

import (
	"runtime"

	"github.com/spacemeshos/go-txfactory/config"
	"github.com/spacemeshos/go-txfactory/generator"
)

func init() {
	register("bench", bench())
}

// bench measures the factory alone: transfers to new accounts are
// discarded and metrics are exposed.
func bench() config.Config {
	conf := config.DefaultConfig()
	conf.Output = config.OutputDiscard
	conf.CollectMetrics = true

	conf.Generator.Workers = runtime.NumCPU()
	conf.Generator.Count = 100_000
	conf.Generator.Mode = generator.MasterToN
	conf.Generator.TxsPerBlock = 1000
	conf.Generator.BlocksPerRound = 100
	conf.Generator.KeyCacheSize = 1 << 16

	conf.LOGGING.Encoder = config.JSONLogEncoder
	conf.LOGGING.AppLoggerLevel = "warn"
	conf.LOGGING.GeneratorLoggerLevel = "warn"
	return conf
}
