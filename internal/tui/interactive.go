package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/san-kum/glowgrid/internal/animator"
	"github.com/san-kum/glowgrid/internal/config"
	"github.com/san-kum/glowgrid/internal/grid"
)

// Run animates cfg in the terminal until the user quits or ctx is done.
func Run(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	palette, err := cfg.GetPalette()
	if err != nil {
		return err
	}
	initial, err := grid.New(cfg.Rows, cfg.Cols)
	if err != nil {
		return err
	}

	a, err := animator.New(initial, cfg.GetAnimatorConfig())
	if err != nil {
		return err
	}
	pub := animator.NewChannelPublisher()
	a.AddPublisher(pub)
	a.SetLogger(logger)

	if err := a.Start(ctx); err != nil {
		return err
	}
	defer a.Stop()

	m := NewModel(initial, palette, pub.C(), a.Done())
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("live view: %w", err)
	}
	return nil
}
