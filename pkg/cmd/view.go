package cmd

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"qcomposer/pkg/document"
	"qcomposer/pkg/viewer"
)

func newViewCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [flags] document",
		Short: "browse a circuit document and its translations.",
		Long: `Open an interactive viewer showing the circuit diagram next to its
translation. Translations saved from the viewer are written next to the
document.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := document.Load(args[0])
			if err != nil {
				return err
			}
			exp, opts, err := exportSettings(cmd, a.cfg.Export)
			if err != nil {
				return err
			}
			m, err := viewer.New(doc, viewer.Config{
				Name:    baseName(args[0]),
				Dir:     filepath.Dir(args[0]),
				Format:  exp.Name(),
				Options: opts,
				Circuit: a.circuitOptions(),
			})
			if err != nil {
				return err
			}
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
			if _, err := p.Run(); err != nil {
				return errors.Wrap(err, "viewer")
			}
			return nil
		},
	}
	addExportFlags(cmd)
	return cmd
}
