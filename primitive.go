package textual

import (
	"fmt"
	"golang.org/x/exp/constraints"
	"reflect"
	"strconv"
	"strings"
)

// ParseBool interprets "1", "true" and "yes" in any casing as true, everything
// else as false. It never fails.
func ParseBool(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// kindConverters parse strings into the canonical go type of a reflect.Kind.
var kindConverters = map[reflect.Kind]Converter{
	reflect.Bool:   parseBool,
	reflect.String: parseString,

	reflect.Int:   makeParseInt[int](strconv.IntSize),
	reflect.Int8:  makeParseInt[int8](8),
	reflect.Int16: makeParseInt[int16](16),
	reflect.Int32: makeParseInt[int32](32),
	reflect.Int64: makeParseInt[int64](64),

	reflect.Uint:   makeParseUint[uint](strconv.IntSize),
	reflect.Uint8:  makeParseUint[uint8](8),
	reflect.Uint16: makeParseUint[uint16](16),
	reflect.Uint32: makeParseUint[uint32](32),
	reflect.Uint64: makeParseUint[uint64](64),

	reflect.Float32: makeParseFloat[float32](32),
	reflect.Float64: makeParseFloat[float64](64),
}

// defaultConverters returns the converters a new Parser is seeded with.
func defaultConverters() map[reflect.Type]Converter {
	converters := map[reflect.Type]Converter{
		// the wildcard keeps the string as is
		reflect.TypeFor[any](): parseString,
	}

	canonical := []reflect.Type{
		reflect.TypeFor[bool](),
		reflect.TypeFor[string](),
		reflect.TypeFor[int](),
		reflect.TypeFor[int8](),
		reflect.TypeFor[int16](),
		reflect.TypeFor[int32](),
		reflect.TypeFor[int64](),
		reflect.TypeFor[uint](),
		reflect.TypeFor[uint8](),
		reflect.TypeFor[uint16](),
		reflect.TypeFor[uint32](),
		reflect.TypeFor[uint64](),
		reflect.TypeFor[float32](),
		reflect.TypeFor[float64](),
	}

	for _, ty := range canonical {
		converters[ty] = kindConverters[ty.Kind()]
	}

	return converters
}

// makeKindConverter returns a converter for a named type with a primitive
// underlying type, e.g. `type Celsius float64`.
func makeKindConverter(ty reflect.Type) (Converter, bool) {
	parse, ok := kindConverters[ty.Kind()]
	if !ok {
		return nil, false
	}

	converter := func(value string) (any, error) {
		parsed, err := parse(value)
		if err != nil {
			return nil, err
		}

		return reflect.ValueOf(parsed).Convert(ty).Interface(), nil
	}

	return converter, true
}

func parseBool(value string) (any, error) {
	return ParseBool(value), nil
}

func parseString(value string) (any, error) {
	return value, nil
}

func makeParseInt[T constraints.Signed](bitSize int) Converter {
	return func(value string) (any, error) {
		parsedValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, bitSize)
		return handleSyntaxErr(value, T(parsedValue), err)
	}
}

func makeParseUint[T constraints.Unsigned](bitSize int) Converter {
	return func(value string) (any, error) {
		parsedValue, err := strconv.ParseUint(strings.TrimSpace(value), 10, bitSize)
		return handleSyntaxErr(value, T(parsedValue), err)
	}
}

func makeParseFloat[T constraints.Float](bitSize int) Converter {
	return func(value string) (any, error) {
		parsedValue, err := strconv.ParseFloat(strings.TrimSpace(value), bitSize)
		return handleSyntaxErr(value, T(parsedValue), err)
	}
}

func handleSyntaxErr[T any](inputValue string, value T, err error) (any, error) {
	if err != nil {
		return nil, fmt.Errorf("parse number %q: %w", inputValue, err)
	}

	return value, nil
}
