package textual

import (
	"errors"
	"fmt"
	"github.com/go-gum/textual/hint"
	"reflect"
	"strings"
)

var ErrMissingCell = errors.New("missing cell")

// ConversionError is returned if none of the converters for a type was able to
// convert a string.
type ConversionError struct {
	Value string
	Types []reflect.Type
}

func (e ConversionError) Error() string {
	if len(e.Types) == 0 {
		return fmt.Sprintf("could not parse string %q: no converter", e.Value)
	}

	return fmt.Sprintf("could not parse string %q as %s", e.Value, hint.FormatSpec(typesToSpec(e.Types)))
}

// ColumnSubsetError is returned if a source has columns that are not consumed by any
// field and column subsets are not allowed.
type ColumnSubsetError struct {
	Columns []string
}

func (e ColumnSubsetError) Error() string {
	return fmt.Sprintf("%d columns were not consumed: %s", len(e.Columns), strings.Join(e.Columns, ", "))
}

// NotARecordError is returned if a type that is expected to be a struct is not one.
type NotARecordError struct {
	Type reflect.Type
}

func (e NotARecordError) Error() string {
	return fmt.Sprintf("record type %v isn't a struct", e.Type)
}

// MutuallyExclusiveError is returned if options are set that can not be used together.
type MutuallyExclusiveError struct {
	Options []string
}

func (e MutuallyExclusiveError) Error() string {
	return fmt.Sprintf("mutually exclusive options provided: %s", strings.Join(e.Options, ", "))
}

// DuplicateColumnError is returned if a field references a column name that appears
// more than once and duplicates are rejected.
type DuplicateColumnError struct {
	Column  string
	Indices []int
}

func (e DuplicateColumnError) Error() string {
	return fmt.Sprintf("column %q appears %d times", e.Column, len(e.Indices))
}

// RowError describes a failure while producing the record of a single row.
type RowError struct {
	// Line of the row in the source, starting at 1
	Line int

	// Field that failed, empty if the failure is not specific to a field
	Field string

	Err error
}

func (e RowError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Err)
	}

	return fmt.Sprintf("line %d, field %q: %s", e.Line, e.Field, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

func typesToSpec(types []reflect.Type) hint.Union {
	spec := make(hint.Union, 0, len(types))
	for _, ty := range types {
		spec = append(spec, ty)
	}

	return spec
}
