package commands

import (
	"fmt"
	"github.com/go-gum/textual/hint"
	"github.com/go-gum/textual/internal/config"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"maps"
	"reflect"
	"slices"
	"strings"
	"time"
)

// cellTypes are the type names accepted by the --type flag.
var cellTypes = map[string]reflect.Type{
	"any":    hint.Any,
	"bool":   reflect.TypeFor[bool](),
	"float":  reflect.TypeFor[float64](),
	"int":    reflect.TypeFor[int](),
	"string": reflect.TypeFor[string](),
	"time":   reflect.TypeFor[time.Time](),
	"uuid":   reflect.TypeFor[uuid.UUID](),
}

func newCSVCommand(opts *rootOptions) *cobra.Command {
	var types map[string]string

	cmd := &cobra.Command{
		Use:   "csv [file]",
		Short: "Print the rows of a delimited file",
		Long: `Print the rows of a delimited file as JSON lines or YAML documents.

Cells are printed as strings, unless a type is given for the column:

  textual csv --type count=int --type id=int|string data.csv
  textual csv --style snake --format yaml data.csv
  cat data.csv | textual csv --delimiter '|'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath, cmd.Flags())
			if err != nil {
				return err
			}

			loader, err := cfg.Loader(opts.parser())
			if err != nil {
				return err
			}

			loader = loader.WithLogger(opts.logger.Named("loader"))

			for _, field := range slices.Sorted(maps.Keys(types)) {
				spec, err := parseTypeSpec(types[field])
				if err != nil {
					return fmt.Errorf("type of %q: %w", field, err)
				}

				loader = loader.WithFieldType(field, spec)
			}

			out, err := newOutput(cmd.OutOrStdout(), cfg.Format)
			if err != nil {
				return err
			}

			source, name := sourceOf(cmd, args)

			var count int
			for row, err := range loader.Values(source) {
				if err != nil {
					return fmt.Errorf("load %s: %w", name, err)
				}

				if err := out.Write(row); err != nil {
					return err
				}

				count++
			}

			opts.mainLogger().Info("Printed rows", zap.String("source", name), zap.Int("count", count))

			return out.Close()
		},
	}

	config.AddFlags(cmd.Flags())
	cmd.Flags().StringToStringVarP(&types, "type", "t", nil,
		"Convert the cells of a column, as column=type pairs. Alternatives are separated by '|'.")

	return cmd
}

// parseTypeSpec parses a list of type names separated by '|'.
func parseTypeSpec(value string) (hint.Spec, error) {
	var spec hint.Union

	for _, name := range strings.Split(value, "|") {
		ty, ok := cellTypes[strings.TrimSpace(name)]
		if !ok {
			return nil, fmt.Errorf("unknown type %q, expected one of %s",
				name, strings.Join(slices.Sorted(maps.Keys(cellTypes)), ", "))
		}

		spec = append(spec, ty)
	}

	return spec, nil
}
