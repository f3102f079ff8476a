// Package config contains txfactory configuration definitions
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/spacemeshos/go-txfactory/common/types"
	"github.com/spacemeshos/go-txfactory/factory"
	"github.com/spacemeshos/go-txfactory/filesystem"
	"github.com/spacemeshos/go-txfactory/generator"
)

const (
	defaultDataDirName = "txfactory"

	// StoreDirName is the name of the extrinsics store under the data directory.
	StoreDirName = "extrinsics"
	// LockFileName is the name of the data directory lock.
	LockFileName = ".lock"
)

// Output kinds of generated extrinsics.
const (
	OutputStore   = "store"
	OutputFile    = "file"
	OutputDiscard = "discard"
)

var defaultDataDir = filepath.Join(filesystem.GetUserHomeDirectory(), defaultDataDirName)

// Config defines the top level configuration of txfactory.
type Config struct {
	BaseConfig `mapstructure:"main"`
	Preset     string           `mapstructure:"preset"`
	Chain      ChainConfig      `mapstructure:"chain"`
	Factory    factory.Params   `mapstructure:"factory"`
	Generator  generator.Config `mapstructure:"generator"`
	LOGGING    LoggerConfig     `mapstructure:"logging"`
}

// DataDir returns the absolute path to use for generated data. This is the
// tilde-expanded path given in the config.
func (cfg *Config) DataDir() string {
	return filesystem.GetCanonicalPath(cfg.DataDirParent)
}

// StorePath returns the path of the extrinsics store.
func (cfg *Config) StorePath() string {
	return filepath.Join(cfg.DataDir(), StoreDirName)
}

// LockPath returns the path of the data directory lock.
func (cfg *Config) LockPath() string {
	return filepath.Join(cfg.DataDir(), LockFileName)
}

// BaseConfig defines the default configuration options for txfactory.
type BaseConfig struct {
	DataDirParent string `mapstructure:"data-folder"`
	// ConfigFile is only read from flags.
	ConfigFile string `mapstructure:"config"`

	// Output is one of store, file or discard.
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	ReportFile string `mapstructure:"report-file"`

	// Store tuning, see database.NewLDBDatabase.
	StoreCache   int `mapstructure:"store-cache"`
	StoreHandles int `mapstructure:"store-handles"`

	CollectMetrics    bool          `mapstructure:"metrics"`
	MetricsPort       int           `mapstructure:"metrics-port"`
	MetricsPush       string        `mapstructure:"metrics-push"`
	MetricsPushPeriod time.Duration `mapstructure:"metrics-push-period"`
}

// ChainConfig describes the chain extrinsics are produced for.
type ChainConfig struct {
	SpecVersion    uint32        `mapstructure:"spec-version"`
	GenesisHash    types.Hash256 `mapstructure:"genesis-hash"`
	PriorBlockHash types.Hash256 `mapstructure:"prior-block-hash"`
	// MinimumPeriod between blocks in milliseconds.
	MinimumPeriod uint64 `mapstructure:"minimum-period"`
}

// Chain returns the chain parameters used by the factory.
func (c ChainConfig) Chain() factory.Chain {
	return factory.Chain{
		SpecVersion:    c.SpecVersion,
		GenesisHash:    c.GenesisHash,
		PriorBlockHash: c.PriorBlockHash,
	}
}

// DefaultConfig returns the default configuration for txfactory.
func DefaultConfig() Config {
	return Config{
		BaseConfig: defaultBaseConfig(),
		Chain: ChainConfig{
			SpecVersion:   1,
			MinimumPeriod: 3000,
		},
		Factory:   factory.DefaultParams(),
		Generator: generator.DefaultConfig(),
		LOGGING:   defaultLoggingConfig(),
	}
}

func defaultBaseConfig() BaseConfig {
	return BaseConfig{
		DataDirParent:     defaultDataDir,
		Output:            OutputStore,
		OutputFile:        "extrinsics.txt",
		ReportFile:        "report.json",
		StoreCache:        16,
		StoreHandles:      16,
		MetricsPort:       1010,
		MetricsPushPeriod: 60 * time.Second,
	}
}

// Validate returns an error if the config is inconsistent.
func (cfg *Config) Validate() error {
	switch cfg.Output {
	case OutputStore, OutputDiscard:
	case OutputFile:
		if cfg.OutputFile == "" {
			return errors.New("output-file is required for file output")
		}
	default:
		return fmt.Errorf("unknown output %q", cfg.Output)
	}
	if cfg.MetricsPush != "" && cfg.MetricsPushPeriod <= 0 {
		return fmt.Errorf("metrics push period must be positive, got %s", cfg.MetricsPushPeriod)
	}
	if cfg.Chain.MinimumPeriod == 0 {
		return errors.New("minimum-period must be positive")
	}
	if err := cfg.LOGGING.validate(); err != nil {
		return err
	}
	if err := cfg.Factory.Validate(); err != nil {
		return err
	}
	return cfg.Generator.Validate()
}

// LoadConfig reads the config file into vip. Empty location means no file.
func LoadConfig(fileLocation string, vip *viper.Viper) error {
	if fileLocation == "" {
		return nil
	}
	vip.SetConfigFile(fileLocation)
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %w", err)
	}
	return nil
}
