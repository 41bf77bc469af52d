package textual

import (
	"encoding/csv"
	"errors"
	"fmt"
	"github.com/go-gum/textual/hint"
	"io"
	"iter"
	"reflect"
)

var ErrUnknownField = errors.New("unknown field")

var tyString = reflect.TypeFor[string]()

// Maps loads each row of source into a map from column name to cell value.
//
// Without an explicit field mapping every column is loaded, the key being the column
// name, converted into the name style if one is set. With a field mapping, only the
// mapped columns are loaded under their field names.
func (l *Loader) Maps(source Source) iter.Seq2[map[string]string, error] {
	specOf := func(string, *hint.Param) hint.Spec { return tyString }

	return load(l, source, nil, specOf, func(fields []boundField, values []any) (map[string]string, error) {
		record := make(map[string]string, len(fields))
		for idx, field := range fields {
			record[field.name] = values[idx].(string)
		}

		return record, nil
	})
}

// Values loads each row of source into a map like [Loader.Maps] does. Cells of fields
// that have a type configured using [Loader.WithFieldType] are converted into that
// type, all other cells are kept as string.
func (l *Loader) Values(source Source) iter.Seq2[map[string]any, error] {
	specOf := func(name string, _ *hint.Param) hint.Spec {
		if spec, ok := l.fieldTypes[name]; ok {
			return spec
		}

		return tyString
	}

	return load(l, source, nil, specOf, func(fields []boundField, values []any) (map[string]any, error) {
		record := make(map[string]any, len(fields))
		for idx, field := range fields {
			record[field.name] = values[idx]
		}

		return record, nil
	})
}

// Records loads each row of source into a new instance of the struct T. T may also
// be a pointer to a struct.
//
// Each exported field of T is a parameter. It is loaded from the column named by the
// fields struct tag (see [Loader.WithTag]) or, if there is none, from the column with
// the fields name, converted into the name style if one is set. A name given by the
// struct tag is used as is, the name style is not applied to it. Fields without a
// matching column keep their zero value.
func Records[T any](l *Loader, source Source) iter.Seq2[T, error] {
	return loadStruct(l, source, reflect.TypeFor[T](), func(record reflect.Value) (T, error) {
		return record.Interface().(T), nil
	})
}

// Construct loads each row of source into a new instance of the parameter struct A and
// passes it to construct. Fields of A are resolved like the fields of a record in
// [Records]. A field of type [hint.InitVar] is loaded as its inner type, allowing
// construction-only values that the result does not keep.
func Construct[A, T any](l *Loader, source Source, construct func(A) (T, error)) iter.Seq2[T, error] {
	return loadStruct(l, source, reflect.TypeFor[A](), func(args reflect.Value) (T, error) {
		return construct(args.Interface().(A))
	})
}

// Collect consumes seq into a slice. It stops at the first error and returns the
// values collected up to that point.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var values []T
	for value, err := range seq {
		if err != nil {
			return values, err
		}

		values = append(values, value)
	}

	return values, nil
}

// boundField is a single value of a row, resolved once per load.
type boundField struct {
	name       string
	column     string
	index      int
	converters []Entry

	// param is nil when loading maps
	param *hint.Param
}

// specFunc returns the spec a field is converted into.
type specFunc func(name string, param *hint.Param) hint.Spec

// buildFunc assembles the converted values of a row into a result.
type buildFunc[T any] func(fields []boundField, values []any) (T, error)

func loadStruct[T any](l *Loader, source Source, ty reflect.Type, build func(reflect.Value) (T, error)) iter.Seq2[T, error] {
	structType := ty
	if ty.Kind() == reflect.Pointer {
		structType = ty.Elem()
	}

	params, err := hint.Params(structType, l.tagKey)
	if err != nil {
		return failed[T](NotARecordError{Type: ty})
	}

	if params == nil {
		// a struct without parameters is still a struct
		params = []hint.Param{}
	}

	specOf := func(name string, param *hint.Param) hint.Spec {
		if spec, ok := l.fieldTypes[name]; ok {
			return spec
		}

		return param.Type
	}

	return load(l, source, params, specOf, func(fields []boundField, values []any) (T, error) {
		// newValue is a pointer to a new instance of the struct
		newValue := reflect.New(structType)
		target := newValue.Elem()

		for idx, field := range fields {
			if values[idx] == nil {
				continue
			}

			if _, err := hint.VerifyType(field.param.Type, values[idx]); err != nil {
				var zero T
				return zero, fmt.Errorf("field %q: %w", field.name, err)
			}

			field.param.Set(target, reflect.ValueOf(values[idx]))
		}

		if ty.Kind() == reflect.Pointer {
			return build(newValue)
		}

		return build(target)
	})
}

func failed[T any](err error) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		yield(zero, err)
	}
}

func load[T any](l *Loader, source Source, params []hint.Param, specOf specFunc, build buildFunc[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		if l.fieldToColumn != nil && l.nameStyle != nil {
			yield(zero, MutuallyExclusiveError{Options: []string{"field mapping", "name style"}})
			return
		}

		reader, err := source.Open()
		if err != nil {
			yield(zero, err)
			return
		}

		// Close on Reader sources is a no-op, the caller keeps ownership
		defer reader.Close()

		csvReader := csv.NewReader(reader)
		csvReader.Comma = l.delimiter
		csvReader.FieldsPerRecord = -1
		csvReader.LazyQuotes = true

		columns := l.columnNames
		if columns == nil {
			header, err := csvReader.Read()
			switch {
			case errors.Is(err, io.EOF):
				l.logger.Debug("No column names provided and source is empty")
				return

			case err != nil:
				yield(zero, fmt.Errorf("read header: %w", err))
				return
			}

			columns = header
		}

		fields, err := l.resolveFields(columns, params, specOf)
		if err != nil {
			yield(zero, err)
			return
		}

		for {
			record, err := csvReader.Read()
			switch {
			case errors.Is(err, io.EOF):
				return

			case err != nil:
				yield(zero, fmt.Errorf("read row: %w", err))
				return
			}

			line, _ := csvReader.FieldPos(0)

			result, err := buildRow(l, line, record, fields, build)
			if err != nil {
				yield(zero, err)
				return
			}

			if !yield(result, nil) {
				return
			}
		}
	}
}

func buildRow[T any](l *Loader, line int, record []string, fields []boundField, build buildFunc[T]) (T, error) {
	var zero T

	values := make([]any, len(fields))

	for idx, field := range fields {
		if field.index >= len(record) {
			return zero, RowError{Line: line, Field: field.name, Err: ErrMissingCell}
		}

		value, err := l.parser.FirstValidConversion(record[field.index], field.converters)
		if err != nil {
			return zero, RowError{Line: line, Field: field.name, Err: err}
		}

		values[idx] = value
	}

	result, err := build(fields, values)
	if err != nil {
		return zero, RowError{Line: line, Err: err}
	}

	return result, nil
}
