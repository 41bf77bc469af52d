// Package config loads the settings of the textual command line tool.
package config

import (
	"fmt"
	"github.com/go-gum/textual"
	"github.com/go-gum/textual/naming"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// EnvPrefix is the prefix of environment variables overriding settings,
// e.g. TEXTUAL_DELIMITER.
const EnvPrefix = "TEXTUAL"

// Config holds the settings used to load delimited text.
type Config struct {
	Delimiter   string            `mapstructure:"delimiter"`
	Style       string            `mapstructure:"style"`
	Columns     []string          `mapstructure:"columns"`
	Fields      map[string]string `mapstructure:"fields"`
	AllowSubset bool              `mapstructure:"allow-subset"`
	Duplicates  string            `mapstructure:"duplicates"`
	Format      string            `mapstructure:"format"`
}

// Load reads the configuration. Values are taken from, in order of precedence, the
// flags that were set, the environment, the config file at path and the defaults.
// path may be empty. Files ending in .json5 may contain comments and trailing commas.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("delimiter", ",")
	v.SetDefault("style", "")
	v.SetDefault("columns", []string{})
	v.SetDefault("fields", map[string]string{})
	v.SetDefault("allow-subset", true)
	v.SetDefault("duplicates", textual.DuplicateColumnsLastWins.String())
	v.SetDefault("format", "json")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if path != "" {
		if err := readConfigFile(v, path); err != nil {
			return Config{}, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return Config{}, err
	}

	return config, nil
}

func readConfigFile(v *viper.Viper, path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".json5") {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	v.SetConfigType("json")

	if err := v.ReadConfig(strings.NewReader(textual.StripJSON5(string(content)))); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}

func validateConfig(config Config) error {
	if utf8.RuneCountInString(config.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got: %q", config.Delimiter)
	}

	if config.Style != "" {
		var style naming.Style
		if err := style.UnmarshalText([]byte(config.Style)); err != nil {
			return err
		}
	}

	var duplicates textual.DuplicateColumns
	if err := duplicates.UnmarshalText([]byte(config.Duplicates)); err != nil {
		return err
	}

	switch config.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("format must be json or yaml, got: %q", config.Format)
	}

	return nil
}

// Loader creates a loader using parser that is configured by c.
func (c Config) Loader(parser *textual.Parser) (*textual.Loader, error) {
	if err := validateConfig(c); err != nil {
		return nil, err
	}

	delimiter, _ := utf8.DecodeRuneInString(c.Delimiter)

	loader := textual.NewLoader(parser).WithDelimiter(delimiter)

	if c.Style != "" {
		var style naming.Style
		_ = style.UnmarshalText([]byte(c.Style))
		loader = loader.WithNameStyle(style)
	}

	if len(c.Columns) > 0 {
		loader = loader.WithColumnNames(c.Columns...)
	}

	if len(c.Fields) > 0 {
		loader = loader.WithFieldMapping(c.Fields)
	}

	if c.AllowSubset {
		loader = loader.AllowColumnSubset()
	} else {
		loader = loader.DisallowColumnSubset()
	}

	var duplicates textual.DuplicateColumns
	_ = duplicates.UnmarshalText([]byte(c.Duplicates))

	return loader.WithDuplicateColumns(duplicates), nil
}

// AddFlags registers the flags read by Load on fs.
func AddFlags(fs *pflag.FlagSet) {
	fs.StringP("delimiter", "d", ",", "Character separating the cells of a row.")
	fs.StringP("style", "s", "", "Naming style applied to the column names, e.g. snake or camel.")
	fs.StringSlice("columns", nil, "Column names to use, the first row is then treated as data.")
	fs.StringToString("fields", nil, "Load only the given columns, as field=column pairs.")
	fs.Bool("allow-subset", true, "Tolerate columns that are not loaded.")
	fs.String("duplicates", textual.DuplicateColumnsLastWins.String(), "Duplicated column names: last, first or reject.")
	fs.StringP("format", "f", "json", "Output format: json or yaml.")
}
