package naming

import (
	"fmt"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestSplitWords(t *testing.T) {
	cases := map[string][]string{
		"some_sample_name":     {"some", "sample", "name"},
		"some-sample-name":     {"some", "sample", "name"},
		"someSampleName":       {"some", "sample", "name"},
		"SomeSampleName":       {"some", "sample", "name"},
		"single":               {"single"},
		"Single":               {"single"},
		"  some_sample_name  ": {"some", "sample", "name"},
		"some sample\tname":    {"some", "sample", "name"},
		"":                     nil,
		"___":                  nil,
		"---":                  nil,
	}

	for name, expected := range cases {
		t.Run(fmt.Sprintf("%q", name), func(t *testing.T) {
			require.Equal(t, expected, SplitWords(name))
		})
	}
}

func TestJoinWords(t *testing.T) {
	words := []string{"some", "sample", "name"}

	require.Equal(t, "some_sample_name", JoinWords(words, SnakeCase))
	require.Equal(t, "some-sample-name", JoinWords(words, KebabCase))
	require.Equal(t, "someSampleName", JoinWords(words, CamelCase))
	require.Equal(t, "SomeSampleName", JoinWords(words, PascalCase))

	require.Equal(t, "single", JoinWords([]string{"single"}, SnakeCase))
	require.Equal(t, "single", JoinWords([]string{"single"}, CamelCase))
	require.Equal(t, "Single", JoinWords([]string{"single"}, PascalCase))
}

func TestJoinWordsIgnoresEmptyWords(t *testing.T) {
	words := []string{"", "some", "", "name", ""}

	require.Equal(t, "some_name", JoinWords(words, SnakeCase))
	require.Equal(t, "SomeName", JoinWords(words, PascalCase))
	require.Equal(t, "someName", JoinWords(words, CamelCase))
}

func TestJoinWordsLowersInput(t *testing.T) {
	require.Equal(t, "some_name", JoinWords([]string{"SOME", "Name"}, SnakeCase))
	require.Equal(t, "SomeName", JoinWords([]string{"SOME", "nAME"}, PascalCase))
}

func TestConvertExamples(t *testing.T) {
	require.Equal(t, "some_sample_name", Convert("someSampleName", SnakeCase))
	require.Equal(t, "SomeSampleName", Convert("some-sample-name", PascalCase))
	require.Equal(t, "some-sample-name", Convert("SomeSampleName", KebabCase))
	require.Equal(t, "someSampleName", Convert("some_sample_name", CamelCase))
	require.Equal(t, "some_sample_name", Convert("some_sample_name", SnakeCase))
	require.Equal(t, "SomeSampleName", Convert("SomeSampleName", PascalCase))
}

func TestConvertViaIntermediateStyle(t *testing.T) {
	names := []string{
		"some_sample_name",
		"some-sample-name",
		"someSampleName",
		"SomeSampleName",
		"single",
	}

	for _, name := range names {
		for _, intermediate := range Styles() {
			for _, style := range Styles() {
				direct := Convert(name, style)
				via := Convert(Convert(name, intermediate), style)
				require.Equal(t, direct, via, "%q via %s to %s", name, intermediate, style)
			}
		}
	}
}

func TestConvertEmpty(t *testing.T) {
	for _, style := range Styles() {
		require.Equal(t, "", Convert("", style))
	}
}

func TestStyleText(t *testing.T) {
	for _, style := range Styles() {
		text, err := style.MarshalText()
		require.NoError(t, err)

		var parsed Style
		require.NoError(t, parsed.UnmarshalText(text))
		require.Equal(t, style, parsed)
	}

	aliases := map[string]Style{
		"snake":  SnakeCase,
		"kebab":  KebabCase,
		"camel":  CamelCase,
		"Pascal": PascalCase,
		"PASCAL": PascalCase,
	}

	for alias, expected := range aliases {
		var parsed Style
		require.NoError(t, parsed.UnmarshalText([]byte(alias)))
		require.Equal(t, expected, parsed)
	}

	var parsed Style
	require.Error(t, parsed.UnmarshalText([]byte("screaming")))
}

func TestStyleString(t *testing.T) {
	require.Equal(t, "camelCase", CamelCase.String())
	require.Equal(t, "Style(42)", Style(42).String())

	_, err := Style(42).MarshalText()
	require.Error(t, err)
}
