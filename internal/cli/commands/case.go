package commands

import (
	"fmt"
	"github.com/go-gum/textual/naming"
	"github.com/spf13/cobra"
)

// NewCaseCommand creates the case command
func NewCaseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "case <style> <name>...",
		Short: "Convert names into a naming style",
		Long: `Convert names into one of the naming styles snake_case, kebab-case, camelCase
or PascalCase. Names may be written in any of these styles:

  textual case kebab myFieldName     # my-field-name
  textual case pascal some_column    # SomeColumn`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var style naming.Style
			if err := style.UnmarshalText([]byte(args[0])); err != nil {
				return fmt.Errorf("%w, expected one of %v", err, naming.Styles())
			}

			for _, name := range args[1:] {
				fmt.Fprintln(cmd.OutOrStdout(), naming.Convert(name, style))
			}

			return nil
		},
	}
}
