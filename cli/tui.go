// ABOUTME: TUI subcommand
// ABOUTME: Starts the full-screen contacts interface against the API
package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/harperreed/rolodex/tui"
)

var errNoTTY = errors.New("the terminal UI needs an interactive terminal; try 'rolodex contacts list'")

var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func (a *app) newTUICommand() *cobra.Command {
	var startPath string
	cmd := &cobra.Command{
		Use:         "tui",
		Short:       "Start the terminal UI",
		Annotations: map[string]string{annotationTUI: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd, startPath)
		},
	}
	cmd.Flags().StringVar(&startPath, "path", tui.PathHome, "Page to open: /, /new or /edit/<id>")
	return cmd
}

func (a *app) runTUI(cmd *cobra.Command, startPath string) error {
	if !stdoutIsTerminal() {
		return errNoTTY
	}

	client, err := a.client()
	if err != nil {
		return err
	}
	defer client.CloseIdleConnections()

	opts := []tui.Option{
		tui.WithLogger(a.logger.Named("tui")),
		tui.WithToastLifetime(a.cfg.UI.ToastLifetime),
		tui.WithInitialOrder(a.cfg.SortOrder()),
	}
	if startPath != "" {
		opts = append(opts, tui.WithStartPath(startPath))
	}

	a.logger.Info("starting tui", zap.String("api", a.cfg.API.URL))
	p := tea.NewProgram(tui.NewModel(client, opts...), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
