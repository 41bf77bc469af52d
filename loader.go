package textual

import (
	"fmt"
	"github.com/go-gum/textual/hint"
	"github.com/go-gum/textual/naming"
	"go.uber.org/zap"
	"maps"
	"slices"
	"strings"
)

// DuplicateColumns decides which column is used if a column name appears more than
// once in the header of a source.
type DuplicateColumns int

const (
	// DuplicateColumnsLastWins uses the last column with the name.
	DuplicateColumnsLastWins DuplicateColumns = iota

	// DuplicateColumnsFirstWins uses the first column with the name.
	DuplicateColumnsFirstWins

	// DuplicateColumnsReject fails the load with a DuplicateColumnError if a
	// duplicated column name is used by a field.
	DuplicateColumnsReject
)

var duplicateColumnsNames = [...]string{"last", "first", "reject"}

func (d DuplicateColumns) String() string {
	if d < 0 || int(d) >= len(duplicateColumnsNames) {
		return fmt.Sprintf("DuplicateColumns(%d)", int(d))
	}

	return duplicateColumnsNames[d]
}

// UnmarshalText parses one of "last", "first" or "reject".
func (d *DuplicateColumns) UnmarshalText(text []byte) error {
	idx := slices.Index(duplicateColumnsNames[:], strings.ToLower(string(text)))
	if idx < 0 {
		return fmt.Errorf("unknown duplicate column policy %q", string(text))
	}

	*d = DuplicateColumns(idx)
	return nil
}

// DefaultTagKey is the struct tag used to override the column name of a field.
const DefaultTagKey = "csv"

// Loader loads delimited text into maps or structs. A Loader is immutable, the
// With* methods return a modified copy. It can be used from multiple goroutines.
type Loader struct {
	parser *Parser
	logger *zap.Logger

	delimiter         rune
	tagKey            string
	allowColumnSubset bool
	duplicateColumns  DuplicateColumns

	columnNames   []string
	fieldToColumn map[string]string
	nameStyle     *naming.Style
	fieldTypes    map[string]hint.Spec
}

// NewLoader creates a Loader that uses parser to convert cells. If parser is nil,
// a new Parser is created.
func NewLoader(parser *Parser) *Loader {
	if parser == nil {
		parser = NewParser(nil)
	}

	return &Loader{
		parser:            parser,
		logger:            parser.logger,
		delimiter:         ',',
		tagKey:            DefaultTagKey,
		allowColumnSubset: true,
	}
}

func (l *Loader) clone() *Loader {
	c := *l
	return &c
}

// Parser returns the Parser used to convert cells.
func (l *Loader) Parser() *Parser {
	return l.parser
}

// WithLogger returns a Loader that logs to logger.
func (l *Loader) WithLogger(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := l.clone()
	c.logger = logger
	return c
}

// WithDelimiter returns a Loader that splits cells at delimiter.
func (l *Loader) WithDelimiter(delimiter rune) *Loader {
	if l.delimiter == delimiter {
		return l
	}

	c := l.clone()
	c.delimiter = delimiter
	return c
}

// WithTag returns a Loader that reads column name overrides from the struct tag tagKey.
func (l *Loader) WithTag(tagKey string) *Loader {
	if l.tagKey == tagKey {
		return l
	}

	c := l.clone()
	c.tagKey = tagKey
	return c
}

// WithColumnNames returns a Loader using the given column names. The first row of a
// source is then treated as data instead of as header.
func (l *Loader) WithColumnNames(names ...string) *Loader {
	c := l.clone()
	c.columnNames = slices.Clone(names)
	return c
}

// WithFieldMapping returns a Loader that maps fields to columns as given by
// fieldToColumn. Fields not in the mapping are not loaded.
// Can not be combined with WithNameStyle.
func (l *Loader) WithFieldMapping(fieldToColumn map[string]string) *Loader {
	c := l.clone()
	c.fieldToColumn = maps.Clone(fieldToColumn)
	return c
}

// WithNameStyle returns a Loader that derives column names from field names by
// converting them into style. Can not be combined with WithFieldMapping.
func (l *Loader) WithNameStyle(style naming.Style) *Loader {
	c := l.clone()
	c.nameStyle = &style
	return c
}

// WithFieldType returns a Loader that converts cells of field into one of the types
// in spec, instead of the fields declared type. This is useful for interface typed
// fields or in combination with [Loader.Values].
func (l *Loader) WithFieldType(field string, spec hint.Spec) *Loader {
	c := l.clone()
	c.fieldTypes = maps.Clone(l.fieldTypes)
	if c.fieldTypes == nil {
		c.fieldTypes = map[string]hint.Spec{}
	}

	c.fieldTypes[field] = spec
	return c
}

// AllowColumnSubset returns a Loader that tolerates source columns that are not
// used by any field. This is the default.
func (l *Loader) AllowColumnSubset() *Loader {
	c := l.clone()
	c.allowColumnSubset = true
	return c
}

// DisallowColumnSubset returns a Loader that fails with a ColumnSubsetError if the
// source has columns not used by any field.
func (l *Loader) DisallowColumnSubset() *Loader {
	c := l.clone()
	c.allowColumnSubset = false
	return c
}

// WithDuplicateColumns returns a Loader using the given policy for duplicated
// column names.
func (l *Loader) WithDuplicateColumns(policy DuplicateColumns) *Loader {
	c := l.clone()
	c.duplicateColumns = policy
	return c
}
