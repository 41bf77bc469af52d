package textual

import (
	"encoding"
	"fmt"
	"github.com/go-gum/textual/hint"
	"go.uber.org/zap"
	"reflect"
	"sync"
)

// A Converter converts a string into a value of the type it is registered for.
type Converter func(string) (any, error)

// Entry pairs a Converter with the type it produces.
type Entry struct {
	Convert Converter
	Type    reflect.Type
}

var tyTextUnmarshaler = reflect.TypeFor[encoding.TextUnmarshaler]()

// Parser is a registry of string converters, indexed by type. It is safe for
// concurrent use.
//
// A new Parser knows how to convert strings into bool, string, all sized integer and
// float types and the wildcard type any. Converters for other types are registered
// using [Parser.SetConverter] or discovered the first time a type is looked up:
//   - types implementing [encoding.TextUnmarshaler] (with a pointer receiver or as
//     pointer type) are parsed using UnmarshalText.
//   - named types with a primitive underlying type (e.g. `type Celsius float64`) are
//     parsed like their underlying type.
type Parser struct {
	mu         sync.Mutex
	converters map[reflect.Type]Converter
	logger     *zap.Logger
}

// NewParser creates a Parser seeded with the default converters. A nil logger
// disables logging.
func NewParser(logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Parser{
		converters: defaultConverters(),
		logger:     logger,
	}
}

// Converters returns the converters for all types in spec, in the order of
// [hint.Types]. Types without a converter are skipped.
func (p *Parser) Converters(spec hint.Spec) []Entry {
	p.mu.Lock()
	defer p.mu.Unlock()

	var entries []Entry

	for _, ty := range hint.Types(spec) {
		converter, ok := p.converters[ty]
		if !ok {
			converter, ok = discoverConverter(ty)
			if ok {
				p.converters[ty] = converter
			}
		}

		if !ok {
			p.logger.Debug("Skipping type without converter", zap.Stringer("type", ty))
			continue
		}

		entries = append(entries, Entry{Convert: converter, Type: ty})
	}

	return entries
}

// SetConverter registers converter for every type in spec. Existing converters
// are replaced.
func (p *Parser) SetConverter(spec hint.Spec, converter Converter) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, ty := range hint.Types(spec) {
		p.converters[ty] = converter
	}
}

// FirstValidConversion tries the entries in order and returns the first converted
// value that matches the entries type. Failing converters are skipped.
// Returns a ConversionError if no converter succeeds.
func (p *Parser) FirstValidConversion(value string, entries []Entry) (any, error) {
	for _, entry := range entries {
		converted, err := convert(entry, value)
		if err != nil {
			p.logger.Debug("Failed to convert",
				zap.Stringer("type", entry.Type),
				zap.String("value", value),
				zap.Error(err),
			)

			continue
		}

		return converted, nil
	}

	types := make([]reflect.Type, 0, len(entries))
	for _, entry := range entries {
		types = append(types, entry.Type)
	}

	return nil, ConversionError{Value: value, Types: types}
}

// Parse reads the full text of source and converts it into one of the types in spec.
func (p *Parser) Parse(source Source, spec hint.Spec) (any, error) {
	text, err := ReadText(source)
	if err != nil {
		return nil, err
	}

	value, err := p.FirstValidConversion(text, p.Converters(spec))
	if err != nil {
		p.logger.Warn("Could not parse source",
			zap.String("spec", hint.FormatSpec(spec)),
			zap.String("text", text),
		)

		return nil, err
	}

	return value, nil
}

// ParseAs parses the source into a value of type T.
func ParseAs[T any](p *Parser, source Source) (T, error) {
	value, err := p.Parse(source, reflect.TypeFor[T]())
	if err != nil {
		var zero T
		return zero, err
	}

	return hint.VerifiedCast[T](value)
}

// convert runs a single converter and verifies the type of the result. Converters
// are user code, a panic is reported as error.
func convert(entry Entry, value string) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("converter panicked: %v", r)
		}
	}()

	converted, err := entry.Convert(value)
	if err != nil {
		return nil, err
	}

	return hint.VerifyType(entry.Type, converted)
}

func discoverConverter(ty reflect.Type) (Converter, bool) {
	switch {
	case reflect.PointerTo(ty).Implements(tyTextUnmarshaler):
		return makeTextUnmarshalerConverter(ty, false), true

	case ty.Kind() == reflect.Pointer && ty.Implements(tyTextUnmarshaler):
		return makeTextUnmarshalerConverter(ty.Elem(), true), true

	default:
		return makeKindConverter(ty)
	}
}

func makeTextUnmarshalerConverter(ty reflect.Type, asPointer bool) Converter {
	return func(value string) (any, error) {
		// newValue is a pointer to a new instance of ty
		newValue := reflect.New(ty)

		m := newValue.Interface().(encoding.TextUnmarshaler)
		if err := m.UnmarshalText([]byte(value)); err != nil {
			return nil, err
		}

		if asPointer {
			return newValue.Interface(), nil
		}

		return newValue.Elem().Interface(), nil
	}
}
