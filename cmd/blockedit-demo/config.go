package main

import (
	"time"

	"github.com/iw2rmb/blockedit/editor"
	"github.com/iw2rmb/blockedit/internal/tracing"
)

// demoConfig holds every setting of the demo. Values are layered by viper:
// flags, then BLOCKEDIT_* environment variables, then blockedit.yaml.
type demoConfig struct {
	Doc           string         `mapstructure:"doc"`
	Debug         bool           `mapstructure:"debug"`
	LogFile       string         `mapstructure:"log_file"`
	LogLevel      string         `mapstructure:"log_level"`
	Debounce      time.Duration  `mapstructure:"debounce"`
	BlockNums     bool           `mapstructure:"block_nums"`
	BoundaryMerge bool           `mapstructure:"boundary_merge"`
	Tracing       tracing.Config `mapstructure:"tracing"`
}

func defaultDemoConfig() demoConfig {
	return demoConfig{
		LogFile:       "blockedit-debug.log",
		LogLevel:      "debug",
		Debounce:      editor.DefaultSelectionDebounce,
		BlockNums:     true,
		BoundaryMerge: true,
		Tracing:       tracing.DefaultConfig(),
	}
}
