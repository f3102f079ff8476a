// Package cmd is the base package for txfactory executables.
package cmd

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spacemeshos/go-txfactory/cmd/mapstructureutil"
	"github.com/spacemeshos/go-txfactory/config"
	"github.com/spacemeshos/go-txfactory/config/presets"
	"github.com/spacemeshos/go-txfactory/log"
)

var (
	// Version is the app's semantic version. Designed to be overwritten by make.
	Version string

	// Branch is the git branch used to build the App. Designed to be overwritten by make.
	Branch string

	// Commit is the git commit used to build the app. Designed to be overwritten by make.
	Commit string
)

// Configure loads preset and config file into conf, then applies args
// parsed by c, so that flags take precedence over both. The result is validated.
func Configure(c *cobra.Command, args []string, conf *config.Config) error {
	preset := conf.Preset // might be set via CLI flag
	if err := LoadConfig(conf, preset, conf.ConfigFile); err != nil {
		return log.ErrMalformedConfig(err)
	}
	// apply CLI args to config
	if err := c.ParseFlags(args); err != nil {
		return log.ErrBadFlags(err)
	}
	if err := conf.Validate(); err != nil {
		return log.ErrMalformedConfig(err)
	}
	return nil
}

// LoadConfig loads config and preset (if provided) into the provided config.
// It first loads the preset and then overrides it with values from the config file.
func LoadConfig(cfg *config.Config, preset, path string) error {
	v := viper.New()
	if err := config.LoadConfig(path, v); err != nil {
		return err
	}

	if len(preset) == 0 && v.IsSet("preset") {
		preset = v.GetString("preset")
	}
	if len(preset) > 0 {
		p, err := presets.Get(preset)
		if err != nil {
			return err
		}
		*cfg = p
	}

	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructureutil.StepDecodeFunc(),
		mapstructureutil.Hash256DecodeFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	)
	opts := []viper.DecoderConfigOption{
		viper.DecodeHook(hook),
		WithIgnoreUntagged(),
		WithErrorUnused(),
	}
	if err := v.Unmarshal(cfg, opts...); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

// WithIgnoreUntagged skips struct fields without mapstructure tag.
func WithIgnoreUntagged() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.IgnoreUntaggedFields = true
	}
}

// WithErrorUnused fails decoding if the config file has unknown keys.
func WithErrorUnused() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
	}
}
