package textual

import (
	"fmt"
	"github.com/go-gum/textual/hint"
	"github.com/go-gum/textual/naming"
	"go.uber.org/zap"
	"maps"
	"slices"
)

// fieldColumn pairs the name of a field with the name of the column it is loaded from.
type fieldColumn struct {
	Field  string
	Column string

	// Param is nil when loading maps
	Param *hint.Param
}

// fieldColumns derives the columns of all fields. params is nil when loading maps.
func (l *Loader) fieldColumns(columns []string, params []hint.Param) ([]fieldColumn, error) {
	styled := func(name string) string {
		if l.nameStyle == nil {
			return name
		}

		return naming.Convert(name, *l.nameStyle)
	}

	var pairs []fieldColumn

	switch {
	case l.fieldToColumn != nil && params != nil:
		known := map[string]bool{}
		for _, param := range params {
			known[param.Name] = true
		}

		for _, name := range slices.Sorted(maps.Keys(l.fieldToColumn)) {
			if !known[name] {
				return nil, fmt.Errorf("field %q: %w", name, ErrUnknownField)
			}
		}

		for idx := range params {
			if column, ok := l.fieldToColumn[params[idx].Name]; ok {
				pairs = append(pairs, fieldColumn{Field: params[idx].Name, Column: column, Param: &params[idx]})
			}
		}

	case l.fieldToColumn != nil:
		for _, name := range slices.Sorted(maps.Keys(l.fieldToColumn)) {
			pairs = append(pairs, fieldColumn{Field: name, Column: l.fieldToColumn[name]})
		}

	case params != nil:
		for idx := range params {
			// an explicit name in the tag is used as is
			column, ok := params[idx].TagName(l.tagKey)
			if !ok {
				column = styled(params[idx].Name)
			}

			pairs = append(pairs, fieldColumn{Field: params[idx].Name, Column: column, Param: &params[idx]})
		}

	default:
		seen := map[string]bool{}
		for _, column := range columns {
			key := styled(column)
			if seen[key] {
				continue
			}

			seen[key] = true
			pairs = append(pairs, fieldColumn{Field: key, Column: column})
		}
	}

	return pairs, nil
}

// resolveFields binds every field to the index of its column and resolves the
// converters for the fields type. Fields without a column are dropped.
func (l *Loader) resolveFields(columns []string, params []hint.Param, specOf specFunc) ([]boundField, error) {
	pairs, err := l.fieldColumns(columns, params)
	if err != nil {
		return nil, err
	}

	positions := map[string][]int{}
	for idx, name := range columns {
		positions[name] = append(positions[name], idx)
	}

	consumed := map[int]bool{}

	var fields []boundField

	for _, pair := range pairs {
		indices, ok := positions[pair.Column]
		if !ok {
			l.logger.Debug("Column not found, field is not loaded",
				zap.String("field", pair.Field),
				zap.String("column", pair.Column),
			)

			continue
		}

		index := indices[len(indices)-1]
		if len(indices) > 1 {
			switch l.duplicateColumns {
			case DuplicateColumnsFirstWins:
				index = indices[0]

			case DuplicateColumnsReject:
				return nil, DuplicateColumnError{Column: pair.Column, Indices: indices}

			default:
				// last one wins
			}
		}

		// the other copies of a duplicated column stay unconsumed
		consumed[index] = true

		fields = append(fields, boundField{
			name:       pair.Field,
			column:     pair.Column,
			index:      index,
			converters: l.parser.Converters(specOf(pair.Field, pair.Param)),
			param:      pair.Param,
		})
	}

	var unconsumed []string
	for idx, name := range columns {
		if !consumed[idx] {
			unconsumed = append(unconsumed, name)
		}
	}

	if len(unconsumed) > 0 {
		if !l.allowColumnSubset {
			return nil, ColumnSubsetError{Columns: unconsumed}
		}

		l.logger.Info("Loading a subset of the columns", zap.Strings("unconsumed", unconsumed))
	}

	return fields, nil
}
