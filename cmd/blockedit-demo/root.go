package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iw2rmb/blockedit"
)

type runFunc func(cmd *cobra.Command, cfg demoConfig) error

func newRootCmd(run runFunc) *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "blockedit-demo",
		Short:         "Edit a block document in the terminal",
		Long:          `blockedit-demo loads a YAML block fixture and opens it in the block editor. Backspace and Delete across blocks exercise the selection-aware delete planner.`,
		Version:       blockedit.Version(),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v, cfgFile)
			if err != nil {
				return err
			}
			return run(cmd, cfg)
		},
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./blockedit.yaml or ~/.config/blockedit/blockedit.yaml)")
	root.Flags().StringP("doc", "d", "", "YAML fixture to edit (default: built-in sample)")
	root.Flags().Bool("debug", false, "write debug logs")
	root.Flags().String("log-file", "", "debug log path")
	root.Flags().Duration("debounce", 0, "selection-change debounce")
	root.Flags().String("trace-file", "", "write OpenTelemetry spans to this file")

	_ = v.BindPFlag("doc", root.Flags().Lookup("doc"))
	_ = v.BindPFlag("debug", root.Flags().Lookup("debug"))
	_ = v.BindPFlag("log_file", root.Flags().Lookup("log-file"))
	_ = v.BindPFlag("debounce", root.Flags().Lookup("debounce"))
	_ = v.BindPFlag("tracing.file_path", root.Flags().Lookup("trace-file"))

	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the blockedit version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), blockedit.VersionTag())
		},
	}
}

// loadConfig layers defaults, the config file, BLOCKEDIT_* variables and
// flags into a demoConfig.
func loadConfig(v *viper.Viper, cfgFile string) (demoConfig, error) {
	defaults := defaultDemoConfig()
	v.SetDefault("doc", defaults.Doc)
	v.SetDefault("debug", defaults.Debug)
	v.SetDefault("log_file", defaults.LogFile)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("debounce", defaults.Debounce)
	v.SetDefault("block_nums", defaults.BlockNums)
	v.SetDefault("boundary_merge", defaults.BoundaryMerge)
	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	v.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	v.SetEnvPrefix("BLOCKEDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("blockedit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "blockedit"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return demoConfig{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg demoConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return demoConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	// A trace file implies the file exporter.
	if cfg.Tracing.FilePath != "" {
		cfg.Tracing.Enabled = true
		cfg.Tracing.Exporter = "file"
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = defaults.Debounce
	}
	return cfg, nil
}
