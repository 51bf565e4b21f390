package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"qcomposer/pkg/render"
)

func newDrawCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draw [flags] document",
		Short: "draw a circuit document as a diagram.",
		Long: `Draw a circuit document as a box drawing diagram. On a terminal the
diagram is coloured and cut to the terminal width; --width and --start pick
the window of steps shown.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			c, err := doc.Circuit(a.circuitOptions()...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			termW, tty := terminalWidth(out)
			width := GetInt(cmd, "width")
			if width == 0 && tty {
				width = termW
			}
			diagram := render.Diagram(c, render.Options{
				Color: tty && !GetFlag(cmd, "no-color"),
				Width: width,
				Start: GetInt(cmd, "start"),
			})
			_, err = io.WriteString(out, diagram)
			return err
		},
	}
	cmd.Flags().Int("width", 0, "maximum diagram width (defaults to the terminal width)")
	cmd.Flags().Int("start", 0, "first step drawn")
	cmd.Flags().Bool("no-color", false, "draw without colours")
	return cmd
}
