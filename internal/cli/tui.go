package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/litescript/ls-galaxy/internal/catalog"
	"github.com/litescript/ls-galaxy/internal/render"
	"github.com/litescript/ls-galaxy/internal/state"
	"github.com/litescript/ls-galaxy/internal/ui"
)

var (
	systemFlag string
	rootOutput outputFlags
)

func init() {
	rootCmd.Flags().StringVar(&systemFlag, "system", "", "open the system view for this id instead of the galaxy map")
	rootOutput.register(rootCmd)
}

// initialRoute picks the first view. An explicit empty --system opens the
// system view without an id.
func initialRoute(cmd *cobra.Command) string {
	if cmd.Flags().Changed("system") {
		if systemFlag == "" {
			return "system"
		}
		return render.SystemRoute(systemFlag)
	}
	return render.GalaxyRoute
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if err := rootOutput.validate(); err != nil {
		return err
	}

	// Not a terminal: print the first view once instead.
	if !isTerminal(os.Stdout) || rootOutput.format != "text" {
		if cmd.Flags().Changed("system") {
			return printSystem(cmd, systemFlag, &rootOutput)
		}
		return printGalaxy(cmd, &rootOutput)
	}

	e, err := setup(true)
	if err != nil {
		return err
	}
	defer e.closeLog()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stateMgr := state.NewManager(state.DefaultConfig())
	stateMgr.SetSource(e.provider.Name())

	model := ui.New(ui.Options{
		Context:    ctx,
		Provider:   e.provider,
		State:      stateMgr,
		Logger:     e.logger,
		Theme:      e.theme,
		CellWidth:  e.cfg.CellWidth,
		CellHeight: e.cfg.CellHeight,
		Route:      initialRoute(cmd),
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))

	if e.cfg.Watch && !e.cfg.IsRemote() {
		go runWatcher(ctx, e, p)
	}

	e.logger.Info("Starting TUI on %s", e.provider.Name())
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// runWatcher reloads the active view whenever the catalog file changes.
func runWatcher(ctx context.Context, e *env, p *tea.Program) {
	w := catalog.NewWatcher(e.cfg.Catalog, e.logger.Named("watch"))
	err := w.Run(ctx, func() {
		p.Send(ui.CatalogChangedMsg{})
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		e.logger.Warn("Catalog watch stopped: %v", err)
	}
}
