package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"qcomposer/pkg/config"
	"qcomposer/pkg/exporter"
)

func newTranslateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate [flags] document",
		Short: "translate a circuit document into framework source code.",
		Long: fmt.Sprintf(`Translate a circuit document into source code for a quantum programming
framework. The document is read from the given file, or from standard input
when it is "-". Supported frameworks: %s.`, strings.Join(exporter.Names(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			if GetFlag(cmd, "dump") {
				spew.Fdump(cmd.ErrOrStderr(), doc)
			}

			exp, opts, err := exportSettings(cmd, a.cfg.Export)
			if err != nil {
				return err
			}
			code, err := exporter.Translate(doc, exp, opts)
			if err != nil {
				return err
			}

			out := GetString(cmd, "output")
			if GetFlag(cmd, "save") && out == "" && args[0] != "-" {
				out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + exp.Extension()
			}
			log.Debugf("translated %s with %s (%d bytes)", args[0], exp.Name(), len(code))
			return writeOutput(cmd, out, code)
		},
	}
	addExportFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "write the code to this file instead of standard output")
	cmd.Flags().Bool("save", false, "write the code next to the document, with the framework's extension")
	cmd.Flags().Bool("dump", false, "dump the parsed document to standard error")
	return cmd
}

// addExportFlags registers the flags that override the export settings.
func addExportFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", "target framework (defaults to the settings file)")
	cmd.Flags().Bool("no-comments", false, "omit the comment line naming each gate")
	cmd.Flags().Bool("skip-non-unitary", false, "drop measurements and barriers")
}

// exportSettings resolves the exporter and options from the settings and
// any flags given on the command line.
func exportSettings(cmd *cobra.Command, cfg config.ExportConfig) (exporter.Exporter, exporter.Options, error) {
	if f := GetString(cmd, "format"); f != "" {
		cfg.Format = f
	}
	if cmd.Flags().Changed("no-comments") {
		cfg.NoComments = GetFlag(cmd, "no-comments")
	}
	if cmd.Flags().Changed("skip-non-unitary") {
		cfg.SkipNonUnitary = GetFlag(cmd, "skip-non-unitary")
	}
	exp, err := exporter.Lookup(cfg.Format)
	if err != nil {
		return nil, exporter.Options{}, err
	}
	return exp, cfg.Options(), nil
}
