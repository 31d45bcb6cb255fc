package cli

import (
	"github.com/spf13/cobra"

	buildinfo "github.com/litescript/ls-galaxy/internal/version"
)

// version is a variable so release builds can set it with -ldflags.
var version = buildinfo.Version

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("ls-galaxy version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
