package hint

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// InitVar marks a constructor parameter that is only needed while constructing a
// value and is not kept on the result. Parameter extraction reports the type T
// instead of the wrapper.
//
//	type scoreArgs struct {
//	    Name   string
//	    Score1 hint.InitVar[float64]
//	}
type InitVar[T any] struct {
	Value T
}

func (InitVar[T]) initVarType() reflect.Type {
	return reflect.TypeFor[T]()
}

type initVar interface {
	initVarType() reflect.Type
}

var tyInitVar = reflect.TypeFor[initVar]()

// NotStructError is returned if parameters are requested from something that is
// not a struct or a constructor taking a struct.
type NotStructError struct {
	Type reflect.Type
}

func (n NotStructError) Error() string {
	return fmt.Sprintf("type %v is not a struct", n.Type)
}

// Param is a single named and typed parameter of a constructor.
type Param struct {
	// Name of the struct field
	Name string

	// Type is the declared type, with InitVar unwrapped
	Type reflect.Type

	// Tag is the field's struct tag
	Tag reflect.StructTag

	// Index of the field, see reflect.Value.FieldByIndex
	Index []int

	// InitOnly is true if the field was declared as InitVar
	InitOnly bool
}

// TagName returns the name given to this parameter by the tag with the given key.
// The second return value is false if the tag does not define a name.
func (p Param) TagName(tagKey string) (string, bool) {
	tag := p.Tag.Get(tagKey)

	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return "", false
	}

	return name, true
}

// Set stores value into the parameters field on target, which must be an addressable
// struct value. Values for InitVar fields are stored inside the wrapper.
func (p Param) Set(target reflect.Value, value reflect.Value) {
	field := target.FieldByIndex(p.Index)
	if p.InitOnly {
		field = field.Field(0)
	}

	field.Set(value)
}

// ArgumentHints maps parameter names of callable to their declared types.
// callable is either a struct type, a struct value or a function taking a
// single struct parameter. A function without parameters has no hints.
func ArgumentHints(callable any) (map[string]reflect.Type, error) {
	ty, ok := callable.(reflect.Type)
	if !ok {
		ty = reflect.TypeOf(callable)
	}

	if ty != nil && ty.Kind() == reflect.Func {
		if ty.NumIn() == 0 {
			return map[string]reflect.Type{}, nil
		}

		if ty.NumIn() != 1 {
			return nil, NotStructError{Type: ty}
		}

		ty = ty.In(0)
	}

	params, err := Params(ty, "")
	if err != nil {
		return nil, err
	}

	hints := make(map[string]reflect.Type, len(params))
	for _, param := range params {
		hints[param.Name] = param.Type
	}

	return hints, nil
}

// Params returns the parameters of a struct type: its exported fields, with fields of
// embedded structs promoted. Fields tagged with `-` under tagKey are skipped.
func Params(ty reflect.Type, tagKey string) ([]Param, error) {
	if ty == nil || ty.Kind() != reflect.Struct {
		return nil, NotStructError{Type: ty}
	}

	type Queued struct {
		Type        reflect.Type
		ParentIndex []int
	}

	type Candidate struct {
		Explicit bool
		Param    Param
	}

	// initialize queue to walk
	queue := []Queued{{Type: ty}}

	candidates := map[string][]Candidate{}

	var order []string

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		for idx := range item.Type.NumField() {
			fi := item.Type.Field(idx)
			if !fi.IsExported() {
				continue
			}

			explicit, skip := tagged(fi, tagKey)
			if skip {
				continue
			}

			// derive index of this one. ensure we allocate a new slice by setting cap to
			// the length of the parents index
			parent := item.ParentIndex
			index := append(parent[:len(parent):len(parent)], fi.Index...)

			if fi.Anonymous && !explicit && !fi.Type.Implements(tyInitVar) {
				// this is an embedded field. skip if not struct
				if fi.Type.Kind() != reflect.Struct {
					continue
				}

				// queue for later analysis
				queue = append(queue, Queued{fi.Type, index})
				continue
			}

			if len(candidates[fi.Name]) == 0 {
				order = append(order, fi.Name)
			}

			param := Param{
				Name:  fi.Name,
				Type:  fi.Type,
				Tag:   fi.Tag,
				Index: index,
			}

			if fi.Type.Implements(tyInitVar) {
				param.Type = reflect.Zero(fi.Type).Interface().(initVar).initVarType()
				param.InitOnly = true
			}

			candidates[fi.Name] = append(candidates[fi.Name], Candidate{
				Explicit: explicit,
				Param:    param,
			})
		}
	}

	var params []Param

	for _, name := range order {
		candidates := candidates[name]

		// INVARIANT: due to walking the type in bfs order, candidates are sorted by
		//  index length with the shortest index at the beginning.
		cmp := func(a, b Candidate) int { return len(a.Param.Index) - len(b.Param.Index) }
		if !slices.IsSortedFunc(candidates, cmp) {
			panic("candidates are not sorted")
		}

		// take the prefix of candidates that share the shortest index length
		visible := candidates[:1]
		for idx := 1; idx < len(candidates); idx++ {
			if len(candidates[idx].Param.Index) == len(candidates[0].Param.Index) {
				visible = candidates[:idx+1]
			}
		}

		// if we have exactly one visible item, that one always wins
		if len(visible) == 1 {
			params = append(params, visible[0].Param)
			continue
		}

		// keep only explicit candidates
		explicit := slices.DeleteFunc(slices.Clone(visible), func(c Candidate) bool { return !c.Explicit })

		// if we have exactly one explicit item, that one wins
		if len(explicit) == 1 {
			params = append(params, explicit[0].Param)
			continue
		}

		// ambiguous name, the field is ignored like encoding/json does
	}

	return params, nil
}

// tagged reports if the field carries a name under tagKey and if it must be skipped.
func tagged(fi reflect.StructField, tagKey string) (explicit, skip bool) {
	if tagKey == "" {
		return false, false
	}

	tag := fi.Tag.Get(tagKey)
	if tag == "-" {
		return true, true
	}

	name, _, _ := strings.Cut(tag, ",")
	return name != "", false
}
