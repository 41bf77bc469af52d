// Package naming converts identifiers between snake_case, kebab-case, camelCase and
// PascalCase.
package naming

import (
	"fmt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"strings"
	"unicode"
)

// Style is a naming convention for identifiers.
type Style int

const (
	SnakeCase  Style = iota // snake_case
	KebabCase               // kebab-case
	CamelCase               // camelCase
	PascalCase              // PascalCase
)

type styleConfig struct {
	name            string
	separator       string
	capitalizeFirst bool
	capitalizeRest  bool
}

var styleConfigs = [...]styleConfig{
	SnakeCase:  {name: "snake_case", separator: "_"},
	KebabCase:  {name: "kebab-case", separator: "-"},
	CamelCase:  {name: "camelCase", capitalizeRest: true},
	PascalCase: {name: "PascalCase", capitalizeFirst: true, capitalizeRest: true},
}

// Styles returns all known styles.
func Styles() []Style {
	return []Style{SnakeCase, KebabCase, CamelCase, PascalCase}
}

func (s Style) valid() bool {
	return s >= 0 && int(s) < len(styleConfigs)
}

func (s Style) String() string {
	if !s.valid() {
		return fmt.Sprintf("Style(%d)", int(s))
	}

	return styleConfigs[s].name
}

func (s Style) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("invalid style %d", int(s))
	}

	return []byte(s.String()), nil
}

// UnmarshalText parses a style by name. The name itself may be written in any
// style and may omit the "case" suffix, e.g. "snake", "kebab-case" or "Pascal".
func (s *Style) UnmarshalText(text []byte) error {
	name := strings.TrimSuffix(Convert(string(text), SnakeCase), "_case")

	for _, style := range Styles() {
		if strings.TrimSuffix(Convert(style.String(), SnakeCase), "_case") == name {
			*s = style
			return nil
		}
	}

	return fmt.Errorf("unknown naming style %q", string(text))
}

// SplitWords splits a name into lower case words. Words are separated by '-', '_',
// white space and transitions from a non upper case to an upper case letter.
func SplitWords(name string) []string {
	runes := []rune(name)

	var words []string

	// start of the current word, -1 if there is none
	offset := -1

	lastUpper := true

	// a trailing separator terminates the last word
	for idx, current := range append(runes, '-') {
		isDelimiter := current == '-' || current == '_' || unicode.IsSpace(current)
		isLowerToUpper := !lastUpper && unicode.IsUpper(current)

		switch {
		case isDelimiter || isLowerToUpper:
			if offset >= 0 && offset != idx {
				words = append(words, strings.ToLower(string(runes[offset:idx])))
			}

			offset = -1
			if isLowerToUpper {
				offset = idx
			}

		case offset < 0:
			offset = idx
		}

		lastUpper = unicode.IsUpper(current)
	}

	return words
}

// JoinWords joins words using the given style. Empty words are dropped.
func JoinWords(words []string, style Style) string {
	if !style.valid() {
		panic(fmt.Sprintf("invalid naming style %d", int(style)))
	}

	config := styleConfigs[style]

	// a Caser is stateful and must not be shared
	title := cases.Title(language.Und)

	var transformed []string
	for _, word := range words {
		if word == "" {
			continue
		}

		word = strings.ToLower(word)

		capitalize := config.capitalizeRest
		if len(transformed) == 0 {
			capitalize = config.capitalizeFirst
		}

		if capitalize {
			word = title.String(word)
		}

		transformed = append(transformed, word)
	}

	return strings.Join(transformed, config.separator)
}

// Convert converts a name written in any of the supported styles into the given style.
func Convert(name string, style Style) string {
	return JoinWords(SplitWords(name), style)
}
