package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-galaxy/internal/render"
	"github.com/litescript/ls-galaxy/internal/ui"
)

var (
	mapOutput    outputFlags
	systemOutput outputFlags
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Print the galaxy map once",
	Long: `Loads the catalog and prints every system on the galaxy map.
Use --format json or yaml to export the laid-out scene instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := mapOutput.validate(); err != nil {
			return err
		}
		return printGalaxy(cmd, &mapOutput)
	},
}

var systemCmd = &cobra.Command{
	Use:   "system [id]",
	Short: "Print one star system once",
	Long: `Loads the catalog and prints the orbital view of one system.
Without an id the return-to-map message is printed and nothing is fetched.
An unknown id prints the not-found message.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := systemOutput.validate(); err != nil {
			return err
		}
		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		return printSystem(cmd, id, &systemOutput)
	},
}

func init() {
	mapOutput.register(mapCmd)
	systemOutput.register(systemCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(systemCmd)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printGalaxy(cmd *cobra.Command, out *outputFlags) error {
	e, err := setup(false)
	if err != nil {
		return err
	}
	defer e.closeLog()

	view, err := ui.RenderGalaxyOnce(commandContext(cmd), e.provider, out.staticOptions(e))
	if err != nil {
		e.logger.Error("Fetch failed: %v", err)
		return err
	}
	e.logger.Debug("Rendered %d elements", len(view.Surface.Elements()))
	return out.write(cmd.OutOrStdout(), render.GalaxyRoute, view)
}

func printSystem(cmd *cobra.Command, id string, out *outputFlags) error {
	e, err := setup(false)
	if err != nil {
		return err
	}
	defer e.closeLog()

	route := "system"
	if id != "" {
		route = render.SystemRoute(id)
	}

	view, err := ui.RenderSystemOnce(commandContext(cmd), e.provider, id, out.staticOptions(e))
	if err != nil {
		e.logger.Error("Fetch failed: %v", err)
		return fmt.Errorf("render %s: %w", route, err)
	}
	return out.write(cmd.OutOrStdout(), route, view)
}
