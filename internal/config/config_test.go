package config

import (
	"github.com/go-gum/textual"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	config, err := Load("", nil)
	require.NoError(t, err)

	require.Equal(t, ",", config.Delimiter)
	require.Empty(t, config.Style)
	require.Empty(t, config.Columns)
	require.True(t, config.AllowSubset)
	require.Equal(t, "last", config.Duplicates)
	require.Equal(t, "json", config.Format)
}

func TestLoadJSON5File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textual.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{
		// pipes instead of commas
		"delimiter": "|",
		"style": "snake",
		"duplicates": "reject", /* fail loudly */
		"format": "yaml",
	}`), 0o644))

	config, err := Load(path, nil)
	require.NoError(t, err)

	require.Equal(t, "|", config.Delimiter)
	require.Equal(t, "snake", config.Style)
	require.Equal(t, "reject", config.Duplicates)
	require.Equal(t, "yaml", config.Format)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textual.yaml")
	require.NoError(t, os.WriteFile(path, []byte("delimiter: ';'\ncolumns: [a, b]\n"), 0o644))

	config, err := Load(path, nil)
	require.NoError(t, err)

	require.Equal(t, ";", config.Delimiter)
	require.Equal(t, []string{"a", "b"}, config.Columns)
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textual.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"delimiter": "|", "format": "yaml", "allow-subset": true}`), 0o644))

	t.Setenv("TEXTUAL_DELIMITER", ";")
	t.Setenv("TEXTUAL_ALLOW_SUBSET", "false")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(fs)
	require.NoError(t, fs.Parse([]string{"--format", "json"}))

	config, err := Load(path, fs)
	require.NoError(t, err)

	// flag over file
	require.Equal(t, "json", config.Format)

	// env over file
	require.Equal(t, ";", config.Delimiter)
	require.False(t, config.AllowSubset)
}

func TestLoadFieldsFlag(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(fs)
	require.NoError(t, fs.Parse([]string{"--fields", "name=Full Name"}))

	config, err := Load("", fs)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"name": "Full Name"}, config.Fields)
}

func TestLoadValidation(t *testing.T) {
	cases := map[string]string{
		"delimiter":  "::",
		"style":      "screaming",
		"duplicates": "middle",
		"format":     "xml",
	}

	for key, value := range cases {
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		AddFlags(fs)
		require.NoError(t, fs.Set(key, value))

		_, err := Load("", fs)
		require.Error(t, err, key)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json5"), nil)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigLoader(t *testing.T) {
	config := Config{
		Delimiter:   "|",
		Style:       "snake",
		AllowSubset: false,
		Duplicates:  "first",
		Format:      "json",
	}

	loader, err := config.Loader(nil)
	require.NoError(t, err)

	rows, err := textual.Collect(loader.Maps(textual.Text("FirstName|Value\nAda|1\n")))
	require.NoError(t, err)
	require.Equal(t, []map[string]string{{"first_name": "Ada", "value": "1"}}, rows)

	// the second copy of a duplicated column is not consumed
	_, err = textual.Collect(loader.Maps(textual.Text("FirstName|Value|Value\nAda|1|2\n")))

	var subsetErr textual.ColumnSubsetError
	require.ErrorAs(t, err, &subsetErr)
	require.Equal(t, []string{"Value"}, subsetErr.Columns)

	config.AllowSubset = true

	loader, err = config.Loader(nil)
	require.NoError(t, err)

	rows, err = textual.Collect(loader.Maps(textual.Text("FirstName|Value|Value\nAda|1|2\n")))
	require.NoError(t, err)
	require.Equal(t, []map[string]string{{"first_name": "Ada", "value": "1"}}, rows)
}

func TestConfigLoaderRejectsInvalid(t *testing.T) {
	_, err := Config{Delimiter: "", Duplicates: "last", Format: "json"}.Loader(nil)
	require.Error(t, err)
}
