// Package cmd implements the qcomposer command line.
package cmd

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"qcomposer/pkg/circuit"
	"qcomposer/pkg/config"
)

// Version is filled in at link time, but *not* when installing via "go
// install".
var Version string

// app carries the settings shared by every command.
type app struct {
	cfg *config.Config
}

// NewRootCmd builds the qcomposer command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "qcomposer",
		Short: "Build, draw and translate quantum circuit documents.",
		Long: `qcomposer works on circuit documents: YAML files listing the gates of a
quantum circuit step by step. Documents can be imported from OpenQASM,
generated at random, drawn, browsed interactively and translated into
source code for several frameworks.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if GetFlag(cmd, "version") {
				fmt.Fprintf(cmd.OutOrStdout(), "qcomposer %s\n", version())
				return nil
			}
			return cmd.Help()
		},
	}

	root.Flags().Bool("version", false, "Report version of this executable")
	root.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	root.PersistentFlags().String("config", config.DefaultPath(), "settings file")
	root.PersistentFlags().String("policy", "", "occupancy policy, inclusive-span or exact-set (overrides the settings file)")

	root.AddCommand(
		newTranslateCmd(a),
		newImportCmd(a),
		newRandomCmd(a),
		newDrawCmd(a),
		newViewCmd(a),
		newGatesCmd(),
		newConfigCmd(a),
	)
	return root
}

// Execute runs the command line. This is called by main.main(). It only
// needs to happen once.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func version() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(unknown version)"
}

// setup loads the settings file and configures logging.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(GetString(cmd, "config"))
	if err != nil {
		return err
	}
	if p := GetString(cmd, "policy"); p != "" {
		cfg.Circuit.Policy = p
		if _, err := cfg.Circuit.OccupancyPolicy(); err != nil {
			return errors.Wrap(err, "--policy")
		}
	}

	lvl, err := cfg.Log.ParseLevel()
	if err != nil {
		return err
	}
	if GetFlag(cmd, "verbose") {
		lvl = log.DebugLevel
	}
	log.SetLevel(lvl)
	log.SetOutput(cmd.ErrOrStderr())
	log.Debugf("settings: policy %s, format %s", cfg.Circuit.Policy, cfg.Export.Format)

	a.cfg = cfg
	return nil
}

// circuitOptions returns the builder options from the settings.
func (a *app) circuitOptions() []circuit.Option {
	// The policy was validated in setup.
	p, _ := a.cfg.Circuit.OccupancyPolicy()
	return []circuit.Option{circuit.WithOccupancyPolicy(p)}
}
