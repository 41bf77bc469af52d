package commands

import (
	"encoding/json"
	"fmt"
	"github.com/go-gum/textual"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"io"
)

// output writes values as JSON lines or as a stream of YAML documents.
type output struct {
	json *json.Encoder
	yaml *yaml.Encoder
}

func newOutput(w io.Writer, format string) (*output, error) {
	switch format {
	case "json":
		return &output{json: json.NewEncoder(w)}, nil

	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		return &output{yaml: encoder}, nil

	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

func (o *output) Write(value any) error {
	if o.yaml != nil {
		return o.yaml.Encode(value)
	}

	return o.json.Encode(value)
}

func (o *output) Close() error {
	if o.yaml != nil {
		return o.yaml.Close()
	}

	return nil
}

// sourceOf reads the file named by the first argument, or stdin if there is none or
// it is "-".
func sourceOf(cmd *cobra.Command, args []string) (textual.Source, string) {
	if len(args) == 0 || args[0] == "-" {
		return textual.Reader(cmd.InOrStdin()), "stdin"
	}

	return textual.Path(args[0]), args[0]
}
