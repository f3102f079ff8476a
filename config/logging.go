package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-txfactory/log"
)

// LogEncoder defines a log encoder kind.
type LogEncoder = string

const (
	defaultLoggingLevel = zapcore.InfoLevel
	// ConsoleLogEncoder represents logging with plain text.
	ConsoleLogEncoder LogEncoder = log.ConsoleEncoding
	// JSONLogEncoder represents logging with JSON.
	JSONLogEncoder LogEncoder = log.JSONEncoding
)

// LoggerConfig holds the logging level for each module.
type LoggerConfig struct {
	Encoder              LogEncoder `mapstructure:"log-encoder"`
	AppLoggerLevel       string     `mapstructure:"app"`
	FactoryLoggerLevel   string     `mapstructure:"factory"`
	GeneratorLoggerLevel string     `mapstructure:"generator"`
	StoreLoggerLevel     string     `mapstructure:"store"`
	MetricsLoggerLevel   string     `mapstructure:"metrics"`
}

func defaultLoggingConfig() LoggerConfig {
	return LoggerConfig{
		Encoder:              ConsoleLogEncoder,
		AppLoggerLevel:       defaultLoggingLevel.String(),
		FactoryLoggerLevel:   defaultLoggingLevel.String(),
		GeneratorLoggerLevel: defaultLoggingLevel.String(),
		StoreLoggerLevel:     zapcore.WarnLevel.String(),
		MetricsLoggerLevel:   zapcore.WarnLevel.String(),
	}
}

func (c *LoggerConfig) levels() map[string]string {
	return map[string]string{
		"app":       c.AppLoggerLevel,
		"factory":   c.FactoryLoggerLevel,
		"generator": c.GeneratorLoggerLevel,
		"store":     c.StoreLoggerLevel,
		"metrics":   c.MetricsLoggerLevel,
	}
}

func (c *LoggerConfig) validate() error {
	if _, err := log.NewEncoder(c.Encoder); err != nil {
		return err
	}
	for module, level := range c.levels() {
		if _, err := zap.ParseAtomicLevel(level); err != nil {
			return fmt.Errorf("logging level of %s: %w", module, err)
		}
	}
	return nil
}

// Logger returns a logger for the module with the configured level.
func (c *LoggerConfig) Logger(module string) (*zap.Logger, error) {
	level, exists := c.levels()[module]
	if !exists {
		return nil, fmt.Errorf("unknown logging module %q", module)
	}
	return log.New(module, level, c.Encoder)
}
