package textual

import (
	"encoding/json"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestStripJSON5(t *testing.T) {
	cases := map[string]string{
		"{\"a\": 1, // comment\n \"b\": 2}":         "{\"a\": 1,\n \"b\": 2}",
		"{\"a\": 1 /* block\n comment */}":          "{\"a\": 1}",
		"[1, 2, 3,]":                                "[1, 2, 3]",
		"{\"a\": [1,\n],\n}":                        "{\"a\": [1\n]\n}",
		`{"key": "// not a comment"}`:               `{"key": "// not a comment"}`,
		`{"key": "/* not a comment */"}`:            `{"key": "/* not a comment */"}`,
		`{"key": "trailing,}"}`:                     `{"key": "trailing,}"}`,
		`{"q": "has \"quotes\" // inside", "x": 1}`: `{"q": "has \"quotes\" // inside", "x": 1}`,
		"":                                          "",
	}

	for input, expected := range cases {
		require.Equal(t, expected, StripJSON5(input), input)
	}
}

func TestLoadJSON5(t *testing.T) {
	value, err := LoadJSON5(Lines{
		`{`,
		`  // the name`,
		`  "name": "example", /* inline */`,
		`  "numbers": [1, 2.5, 3,],`,
		`  "nested": {"enabled": true,},`,
		`}`,
	})

	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"name":    "example",
		"numbers": []any{1.0, 2.5, 3.0},
		"nested":  map[string]any{"enabled": true},
	}, value)
}

func TestLoadJSON5Scalars(t *testing.T) {
	value, err := LoadJSON5(Text("42 // the answer"))
	require.NoError(t, err)
	require.Equal(t, 42.0, value)

	value, err = LoadJSON5(Text(`"text"`))
	require.NoError(t, err)
	require.Equal(t, "text", value)
}

func TestLoadJSON5Invalid(t *testing.T) {
	_, err := LoadJSON5(Text(`{"a": }`))
	require.ErrorContains(t, err, "decode json5")

	var syntaxErr *json.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)

	_, err = LoadJSON5(Text(""))
	require.Error(t, err)
}

func TestUnmarshalJSON5(t *testing.T) {
	type settings struct {
		Name    string   `json:"name"`
		Retries int      `json:"retries"`
		Tags    []string `json:"tags"`
	}

	var target settings

	err := UnmarshalJSON5(Text(`{
		"name": "primary", // the main one
		"retries": 3,
		"tags": ["a", "b",],
	}`), &target)

	require.NoError(t, err)
	require.Equal(t, settings{Name: "primary", Retries: 3, Tags: []string{"a", "b"}}, target)
}
