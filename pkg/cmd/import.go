package cmd

import (
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"qcomposer/pkg/circuit"
	"qcomposer/pkg/qasm"
)

func newImportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [flags] program.qasm",
		Short: "convert an OpenQASM 2.0 program into a circuit document.",
		Long: `Convert an OpenQASM 2.0 program into a circuit document. Gates are packed
into the current step until one collides with a gate already placed there,
unless --sequential gives every gate a step of its own. The program is read
from standard input when the file is "-".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.Wrap(err, "open qasm program")
				}
				defer f.Close()
				r = f
			}

			layout := qasm.Packed
			if GetFlag(cmd, "sequential") {
				layout = qasm.Sequential
			}
			c, err := qasm.ImportReader(r,
				qasm.WithLayout(layout),
				qasm.WithCircuitOptions(a.circuitOptions()...),
			)
			if err != nil {
				return errors.Wrap(err, args[0])
			}
			log.Debugf("imported %s: %d qubits, %d steps", args[0], c.Capacity(), c.CurrentStep()+1)
			return writeCircuit(cmd, c, GetString(cmd, "output"))
		},
	}
	cmd.Flags().StringP("output", "o", "", "write the document to this file instead of standard output")
	cmd.Flags().Bool("sequential", false, "place every gate in its own step")
	return cmd
}

// writeCircuit serializes c to the named document, or to the command
// output when name is empty.
func writeCircuit(cmd *cobra.Command, c *circuit.Circuit, name string) error {
	if name == "" || name == "-" {
		_, err := c.WriteTo(cmd.OutOrStdout())
		return err
	}
	return c.Export(name)
}
