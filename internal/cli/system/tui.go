package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/humidor/internal/cli"
	"github.com/julianstephens/humidor/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// The TUI writes throughout the session, so it holds the lock until exit
	release, err := ctx.AcquireWriteLock()
	if err != nil {
		return err
	}
	defer release()

	ctx.PerformAutomaticBackup()

	model := tui.NewModel(ctx.Ctx, ctx.Store, tui.WithBeforeClear(ctx.PerformAutomaticBackup))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx.Ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}
