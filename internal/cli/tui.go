package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tOgg1/doula/internal/doulatui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the terminal UI",
		Long:  "Launch the interactive timeline, chat, weekly, partner and go-bag screens.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(contextOf(cmd), a)
		},
	}
}

func launchTUI(ctx context.Context, a *app) error {
	if !a.isTTY() {
		return Exitf(ExitCodeUsage, "the TUI needs an interactive terminal; try `doula timeline` or `doula --help`")
	}
	client, err := a.client()
	if err != nil {
		return Exitf(ExitCodeUsage, "%v", err)
	}
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	return doulatui.Run(doulatui.Config{
		Backend:  client,
		DB:       store,
		Theme:    a.cfg.TUI.Theme,
		Markdown: a.cfg.TUI.Markdown,
		Now:      a.now,
	})
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
