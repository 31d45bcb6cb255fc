package cli

import (
	"github.com/spf13/cobra"

	"github.com/litescript/ls-galaxy/internal/catalog"
	"github.com/litescript/ls-galaxy/internal/state"
)

var validateEvents int

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the catalog and print a summary",
	Long: `Loads and validates the catalog, then prints one row per system.
Any invalid record rejects the whole catalog and every problem is reported.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().IntVar(&validateEvents, "events", 0, "also print up to this many state events")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	e, err := setup(false)
	if err != nil {
		return err
	}
	defer e.closeLog()

	stateMgr := state.NewManager(state.DefaultConfig())
	stateMgr.SetSource(e.provider.Name())

	res := catalog.Load(commandContext(cmd), e.provider)
	stateMgr.Update(res.Systems, res.Duration, res.Error)
	if res.Error != nil {
		e.logger.Error("Fetch failed: %v", res.Error)
		return res.Error
	}
	e.logger.Debug("Fetch complete: %d systems in %v", len(res.Systems), res.Duration)

	out := cmd.OutOrStdout()
	catalog.WriteSummaryTable(out, res.Systems, e.provider.Name(), res.FetchedAt)

	if validateEvents > 0 {
		cmd.Println()
		state.WriteEvents(out, stateMgr.RecentEvents(validateEvents), validateEvents)
	}
	return nil
}
