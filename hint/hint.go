// Package hint inspects Go types at runtime. It flattens type specifications made of
// nested unions into a flat list of concrete types, verifies values against such a
// specification and extracts the named, typed parameters of constructor functions.
//
// A [Spec] is either a [reflect.Type] or a [Union] of further specs:
//
//	spec := hint.Union{reflect.TypeFor[int](), hint.Union{reflect.TypeFor[string]()}}
//	hint.Types(spec) // [int string]
//
// The wildcard type [Any] is satisfied by every value.
package hint

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"slices"
)

// Spec describes the acceptable runtime shapes of a value. It is either a
// reflect.Type or a Union. Any other value is treated as opaque.
type Spec = any

// Union is a set of alternative specs. Unions may nest.
type Union []Spec

// Any is the wildcard type. Every value satisfies it.
var Any = reflect.TypeFor[any]()

var ErrInvalidType = errors.New("invalid type")

// InvalidTypeError is returned when a value does not match any type of a Spec.
type InvalidTypeError struct {
	Expected Spec
	Actual   reflect.Type
	Value    any
}

func (e InvalidTypeError) Error() string {
	return fmt.Sprintf("expected: %s, actual: %v, value: %v", FormatSpec(e.Expected), e.Actual, e.Value)
}

func (e InvalidTypeError) Is(target error) bool {
	return target == ErrInvalidType
}

// Expand flattens the given specs into a sequence of concrete types. Unions are
// resolved recursively, duplicates are dropped and the first occurrence keeps
// its position.
func Expand(specs ...Spec) iter.Seq[Spec] {
	return func(yield func(Spec) bool) {
		queue := slices.Clone(specs)
		seen := map[any]struct{}{}

		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			if union, ok := current.(Union); ok {
				// members go back to the front, in declaration order
				queue = append(slices.Clone(union), queue...)
				continue
			}

			if isComparable(current) {
				if _, ok := seen[current]; ok {
					continue
				}

				seen[current] = struct{}{}
			}

			if !yield(current) {
				return
			}
		}
	}
}

// Types returns the concrete types of the given specs. Opaque values are skipped.
func Types(specs ...Spec) []reflect.Type {
	var types []reflect.Type
	for spec := range Expand(specs...) {
		if ty, ok := spec.(reflect.Type); ok {
			types = append(types, ty)
		}
	}

	return types
}

// VerifyType returns value unchanged if it satisfies one of the types in expected.
// Otherwise an InvalidTypeError is returned.
func VerifyType(expected Spec, value any) (any, error) {
	actual := reflect.TypeOf(value)

	for _, candidate := range Types(expected) {
		if satisfies(candidate, actual) {
			return value, nil
		}
	}

	return nil, InvalidTypeError{Expected: expected, Actual: actual, Value: value}
}

// VerifiedCast verifies that value is assignable to T and returns it as a T.
func VerifiedCast[T any](value any) (T, error) {
	var target T

	if _, err := VerifyType(reflect.TypeFor[T](), value); err != nil {
		return target, err
	}

	if value != nil {
		reflect.ValueOf(&target).Elem().Set(reflect.ValueOf(value))
	}

	return target, nil
}

// FormatSpec renders a spec in a `a | b | c` notation.
func FormatSpec(spec Spec) string {
	var formatted string
	for idx, ty := range slices.Collect(Expand(spec)) {
		if idx > 0 {
			formatted += " | "
		}

		formatted += fmt.Sprint(ty)
	}

	return formatted
}

func satisfies(candidate, actual reflect.Type) bool {
	if candidate == Any {
		return true
	}

	if actual == nil {
		// untyped nil
		switch candidate.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return true
		default:
			return false
		}
	}

	return actual.AssignableTo(candidate)
}

func isComparable(value any) bool {
	return value == nil || reflect.ValueOf(value).Comparable()
}
