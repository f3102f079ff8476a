package presets

import (
	"os"
	"path/filepath"

	"github.com/spacemeshos/go-txfactory/config"
	"github.com/spacemeshos/go-txfactory/factory"
)

func init() {
	register("dev", dev())
}

// dev is a small staking run against a local chain, logged verbosely.
func dev() config.Config {
	conf := config.DefaultConfig()
	conf.DataDirParent = filepath.Join(os.TempDir(), "txfactory-dev")

	conf.Chain.MinimumPeriod = 1000

	conf.Factory.MinimumBalance = 1_000

	conf.Generator.Workers = 2
	conf.Generator.Count = 16
	conf.Generator.Step = factory.StakingBond
	conf.Generator.TxsPerBlock = 4
	conf.Generator.BlocksPerRound = 2

	conf.LOGGING.AppLoggerLevel = "debug"
	conf.LOGGING.FactoryLoggerLevel = "debug"
	conf.LOGGING.GeneratorLoggerLevel = "debug"
	return conf
}
