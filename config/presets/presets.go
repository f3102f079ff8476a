// Package presets contains named configurations that replace defaults.
package presets

import (
	"fmt"
	"sort"

	"github.com/spacemeshos/go-txfactory/config"
)

var presets = map[string]config.Config{}

func register(name string, conf config.Config) {
	if _, exists := presets[name]; exists {
		panic(fmt.Sprintf("preset %s already registered", name))
	}
	conf.Preset = name
	presets[name] = conf
}

// Options returns the names of registered presets.
func Options() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a copy of the preset with the name.
func Get(name string) (config.Config, error) {
	conf, exists := presets[name]
	if !exists {
		return config.Config{}, fmt.Errorf("preset %s is not registered. select one of %v", name, Options())
	}
	return conf, nil
}
