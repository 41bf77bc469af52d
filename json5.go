package textual

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Strings are matched first, so comments and commas inside of them are kept.
var json5CommentPattern = regexp.MustCompile(
	`("(?:\\.|[^"\\])*")` + // 1: double quoted string
		`|('(?:\\.|[^'\\])*')` + // 2: single quoted string
		`|[ \t]*//[^\r\n]*` + // spaces + line comment
		`|(?s:[ \t]*/\*.*?\*/)`, // spaces + block comment
)

var json5TrailingCommaPattern = regexp.MustCompile(
	`("(?:\\.|[^"\\])*")` +
		`|('(?:\\.|[^'\\])*')` +
		`|,(\s*[\]}])`, // 3: whitespace and closing bracket following a comma
)

// StripJSON5 removes line and block comments as well as trailing commas before
// a closing bracket from text. Quoted strings are kept as is.
// This is not a full JSON5 implementation.
func StripJSON5(text string) string {
	withoutComments := replaceGroups(json5CommentPattern, text)
	return replaceGroups(json5TrailingCommaPattern, withoutComments)
}

// replaceGroups replaces each match of pattern with the first non empty
// capture group of the match.
func replaceGroups(pattern *regexp.Regexp, text string) string {
	var result []byte

	last := 0
	for _, match := range pattern.FindAllStringSubmatchIndex(text, -1) {
		result = append(result, text[last:match[0]]...)

		for group := 1; group < len(match)/2; group++ {
			start, end := match[2*group], match[2*group+1]
			if start >= 0 && end > start {
				result = append(result, text[start:end]...)
				break
			}
		}

		last = match[1]
	}

	result = append(result, text[last:]...)

	return string(result)
}

// LoadJSON5 decodes a JSON document with comments and trailing commas. Objects are
// decoded into map[string]any, arrays into []any and numbers into float64.
func LoadJSON5(source Source) (any, error) {
	var value any
	if err := UnmarshalJSON5(source, &value); err != nil {
		return nil, err
	}

	return value, nil
}

// UnmarshalJSON5 decodes a JSON document with comments and trailing commas
// into target, see json.Unmarshal.
func UnmarshalJSON5(source Source, target any) error {
	text, err := ReadText(source)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(StripJSON5(text)), target); err != nil {
		return fmt.Errorf("decode json5: %w", err)
	}

	return nil
}
