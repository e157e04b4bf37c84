package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/blockedit/editor"
	"github.com/iw2rmb/blockedit/internal/log"
	"github.com/iw2rmb/blockedit/internal/tracing"
)

func init() {
	// Query the terminal background before the program owns stdin, so the
	// OSC 11 reply cannot leak into the input stream.
	_ = lipgloss.HasDarkBackground()
}

// editorConfig maps the demo settings onto the editor.
func editorConfig(cfg demoConfig, tp *tracing.Provider) (editor.Config, error) {
	doc, err := loadFixture(cfg.Doc)
	if err != nil {
		return editor.Config{}, err
	}
	ecfg := editor.DefaultConfig()
	ecfg.Document = doc
	ecfg.ShowBlockNums = cfg.BlockNums
	ecfg.SelectionDebounce = cfg.Debounce
	ecfg.Redactor.BoundaryMerge = cfg.BoundaryMerge
	ecfg.Redactor.Tracer = tp.Tracer()
	return ecfg, nil
}

func runDemo(cmd *cobra.Command, cfg demoConfig) error {
	if cfg.Debug {
		cleanup, err := log.InitWithTeaLog(cfg.LogFile, "blockedit")
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		defer cleanup()
		if lvl, ok := log.ParseLevel(cfg.LogLevel); ok {
			log.SetMinLevel(lvl)
		}
		log.Info(log.CatConfig, "blockedit-demo starting", "doc", cfg.Doc, "debounce", cfg.Debounce)
	}

	tp, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.ErrorErr(log.CatConfig, "tracing shutdown", err)
		}
	}()

	ecfg, err := editorConfig(cfg, tp)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newApp(ecfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
