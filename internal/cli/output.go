package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-galaxy/internal/render"
	"github.com/litescript/ls-galaxy/internal/ui"
)

const (
	defaultCols = 100
	defaultRows = 40
)

// outputFlags configures one-shot rendering.
type outputFlags struct {
	format string
	cols   int
	rows   int
	color  bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "text", "output format: text, json or yaml")
	cmd.Flags().IntVar(&o.cols, "width", 0, "canvas width in columns (default: terminal width or 100)")
	cmd.Flags().IntVar(&o.rows, "height", 0, "canvas height in rows (default: terminal height or 40)")
	cmd.Flags().BoolVar(&o.color, "color", false, "force colored text output")
}

func (o *outputFlags) validate() error {
	switch o.format {
	case "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", o.format)
	}
}

// staticOptions sizes the canvas from the flags, then the terminal.
func (o *outputFlags) staticOptions(e *env) ui.StaticOptions {
	cols, rows := o.cols, o.rows
	tty := isTerminal(os.Stdout)
	if tty && (cols <= 0 || rows <= 0) {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if cols <= 0 {
				cols = w
			}
			if rows <= 0 {
				rows = h - 1
			}
		}
	}
	if cols <= 0 {
		cols = defaultCols
	}
	if rows <= 0 {
		rows = defaultRows
	}

	return ui.StaticOptions{
		Cols:  cols,
		Rows:  rows,
		CellW: e.cfg.CellWidth,
		CellH: e.cfg.CellHeight,
		Theme: e.theme,
		Color: o.color || tty,
	}
}

// write prints a rendered view in the requested format.
func (o *outputFlags) write(w io.Writer, route string, view ui.StaticView) error {
	switch o.format {
	case "json":
		return render.ExportScene(route, view.Surface).WriteJSON(w)
	case "yaml":
		return render.ExportScene(route, view.Surface).WriteYAML(w)
	default:
		_, err := fmt.Fprintln(w, view.Text)
		return err
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
