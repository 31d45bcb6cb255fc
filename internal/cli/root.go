// Package cli implements the ls-galaxy command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-galaxy/internal/catalog"
	"github.com/litescript/ls-galaxy/internal/config"
	"github.com/litescript/ls-galaxy/internal/logging"
	"github.com/litescript/ls-galaxy/internal/ui"
)

// Persistent flags
var (
	configPath   string
	catalogFlag  string
	logLevelFlag string
	logFileFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "ls-galaxy",
	Short: "Explore a star catalog in the terminal",
	Long: `ls-galaxy draws a star catalog as a galaxy map and opens each star
system in an animated orbital view.

Hover a star to see its name and type, click it to open the system.
In a system, click a planet to pin its details; click elsewhere to
dismiss them.

Controls:
  esc/m  - Back to the galaxy map
  space  - Pause orbits
  r      - Reload the catalog
  ?      - Toggle help
  q      - Quit`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/ls-galaxy/config.toml)")
	pf.StringVar(&catalogFlag, "catalog", "", "catalog file path or http(s) URL")
	pf.StringVar(&logLevelFlag, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&logFileFlag, "log-file", "", "append logs to this file")
}

// Execute runs the command line with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// env is what every command needs: resolved config, a logger and the
// catalog provider.
type env struct {
	cfg      config.Config
	logger   *logging.Logger
	provider catalog.Provider
	theme    ui.Theme
	closeLog func()
}

// setup loads the config file and applies flag overrides. Without a log
// file, interactive sessions discard logs so they do not corrupt the
// screen; headless commands log to stderr.
func setup(interactive bool) (*env, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if catalogFlag != "" {
		cfg.Catalog = catalogFlag
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}
	if logFileFlag != "" {
		cfg.LogFile = logFileFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, theme: ui.NewTheme(cfg.Theme), closeLog: func() {}}

	var out io.Writer = os.Stderr
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		e.closeLog = func() { _ = f.Close() }
	case interactive:
		out = io.Discard
	}
	e.logger = logging.NewWithOutput(cfg.Level(), out)

	timeout, err := cfg.Timeout()
	if err != nil {
		e.closeLog()
		return nil, err
	}
	e.provider = catalog.New(cfg.Catalog, catalog.WithTimeout(timeout))

	e.logger.Debug("Config %s: catalog=%s watch=%v", path, cfg.Catalog, cfg.Watch)
	return e, nil
}
