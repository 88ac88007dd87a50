// internal/app/catalog.go
package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"enigma/internal/cli"
	"enigma/internal/config"
)

func newCatalogCmd(opts *cli.Options, s Streams) *cobra.Command {
	var text bool
	cmd := &cobra.Command{
		Use:   "catalog CONFIG",
		Short: "Check a machine description and print it as YAML",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: catalog takes exactly one CONFIG, got %d arguments", cli.ErrUsage, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(*opts, s)
			if err != nil {
				return err
			}
			spec, err := config.Load(args[0])
			if err != nil {
				return err
			}
			m, err := spec.Build()
			if err != nil {
				return err
			}
			log.Debug("catalog", "config", args[0], "rotors", m.Catalog())
			if text {
				return config.FormatText(s.Out, spec)
			}
			return config.FormatYAML(s.Out, spec)
		},
	}
	cmd.Flags().BoolVar(&text, "text", false, "print in the whitespace text format instead of YAML")
	return cmd
}
