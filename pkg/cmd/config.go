package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"qcomposer/pkg/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "manage the settings file.",
		Args:  cobra.NoArgs,
	}

	initCmd := &cobra.Command{
		Use:   "init [flags]",
		Short: "write the effective settings to the settings file.",
		Long: `Write the settings currently in effect, defaults included, to the file
named by --config. An existing file is kept unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := GetString(cmd, "config")
			if path == "" {
				return errors.New("no settings file location, use --config")
			}
			if _, err := os.Stat(path); err == nil && !GetFlag(cmd, "force") {
				return errors.Errorf("%s already exists, use --force to overwrite it", path)
			}
			if err := config.Save(path, a.cfg); err != nil {
				return err
			}
			log.Debugf("wrote settings to %s", path)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "overwrite an existing settings file")

	cmd.AddCommand(initCmd)
	return cmd
}
