package cmd

import (
	"github.com/spf13/cobra"

	"qcomposer/pkg/random"
)

func newRandomCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "random [flags]",
		Short: "generate a random circuit document.",
		Long: `Generate a reproducible random circuit document. Defaults for the number
of qubits, the number of gates and the seed come from the settings file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc := a.cfg.Random
			if cmd.Flags().Changed("qubits") {
				rc.Qubits = GetInt(cmd, "qubits")
			}
			if cmd.Flags().Changed("gates") {
				rc.Gates = GetInt(cmd, "gates")
			}
			if cmd.Flags().Changed("seed") {
				rc.Seed = GetInt64(cmd, "seed")
			}
			if cmd.Flags().Changed("measure") {
				rc.Measure = GetFlag(cmd, "measure")
			}
			if cmd.Flags().Changed("fill") {
				rc.Fill = GetFlag(cmd, "fill")
			}
			policy, err := a.cfg.Circuit.OccupancyPolicy()
			if err != nil {
				return err
			}

			c, err := random.Generate(random.Options{
				Qubits:  rc.Qubits,
				Gates:   rc.Gates,
				Seed:    rc.Seed,
				Measure: rc.Measure,
				Fill:    rc.Fill,
				Policy:  policy,
			})
			if err != nil {
				return err
			}
			return writeCircuit(cmd, c, GetString(cmd, "output"))
		},
	}
	cmd.Flags().IntP("qubits", "n", 0, "number of qubits")
	cmd.Flags().IntP("gates", "g", 0, "number of gates")
	cmd.Flags().Int64P("seed", "s", 0, "random seed")
	cmd.Flags().Bool("measure", false, "measure every qubit at the end")
	cmd.Flags().Bool("fill", false, "pack gates onto neighbouring qubits")
	cmd.Flags().StringP("output", "o", "", "write the document to this file instead of standard output")
	return cmd
}
