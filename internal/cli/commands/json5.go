package commands

import (
	"encoding/json"
	"fmt"
	"github.com/davecgh/go-spew/spew"
	"github.com/go-gum/textual"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func newJSON5Command(opts *rootOptions) *cobra.Command {
	var format string
	var dump bool

	cmd := &cobra.Command{
		Use:   "json5 [file]",
		Short: "Convert a JSON document with comments into plain JSON",
		Long: `Convert a JSON document with comments and trailing commas into plain JSON or YAML.

Use --dump to print the decoded go values instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, name := sourceOf(cmd, args)

			value, err := textual.LoadJSON5(source)
			if err != nil {
				return fmt.Errorf("load %s: %w", name, err)
			}

			opts.mainLogger().Debug("Decoded document", zap.String("source", name))

			out := cmd.OutOrStdout()

			switch {
			case dump:
				config := spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}
				config.Fdump(out, value)
				return nil

			case format == "yaml":
				encoder := yaml.NewEncoder(out)
				encoder.SetIndent(2)

				if err := encoder.Encode(value); err != nil {
					return err
				}

				return encoder.Close()

			case format == "json":
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(value)

			default:
				return fmt.Errorf("unknown output format %q", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml.")
	cmd.Flags().BoolVar(&dump, "dump", false, "Print the decoded go values.")

	return cmd
}
