package hint

import (
	"errors"
	"github.com/stretchr/testify/require"
	"io"
	"reflect"
	"slices"
	"strings"
	"testing"
)

var (
	tyInt    = reflect.TypeFor[int]()
	tyString = reflect.TypeFor[string]()
	tyFloat  = reflect.TypeFor[float64]()
	tyBytes  = reflect.TypeFor[[]byte]()
	tyBool   = reflect.TypeFor[bool]()
)

func TestExpandFlattening(t *testing.T) {
	spec := Union{tyInt, tyFloat, Union{tyString, tyBytes}, tyBool}
	require.Equal(t, []reflect.Type{tyInt, tyFloat, tyString, tyBytes, tyBool}, Types(spec))
}

func TestExpandDeduplication(t *testing.T) {
	spec := Union{tyInt, tyInt, Union{tyString, tyString}}
	require.Equal(t, []reflect.Type{tyInt, tyString}, Types(spec))
}

func TestExpandNestedUnions(t *testing.T) {
	spec := Union{tyInt, Union{tyFloat, Union{tyString, tyBytes}}}
	require.Equal(t, []reflect.Type{tyInt, tyFloat, tyString, tyBytes}, Types(spec))
}

func TestExpandKeepsSiblingsBehindUnion(t *testing.T) {
	// members of a union are processed before types queued after the union
	types := Types(Union{tyString, tyInt}, tyFloat, Union{tyInt, tyBool})
	require.Equal(t, []reflect.Type{tyString, tyInt, tyFloat, tyBool}, types)
}

func TestExpandNonUnion(t *testing.T) {
	require.Equal(t, []reflect.Type{tyString}, Types(tyString))
}

func TestExpandOpaqueValues(t *testing.T) {
	values := slices.Collect(Expand(Union{"opaque", tyInt, "opaque", []int{1}}))
	require.Equal(t, []Spec{"opaque", tyInt, []int{1}}, values)

	// only types are returned by Types
	require.Equal(t, []reflect.Type{tyInt}, Types(Union{"opaque", tyInt}))
}

func TestExpandStopsEarly(t *testing.T) {
	var seen []Spec
	for spec := range Expand(tyInt, tyString, tyFloat) {
		seen = append(seen, spec)
		if len(seen) == 2 {
			break
		}
	}

	require.Equal(t, []Spec{tyInt, tyString}, seen)
}

func TestVerifyTypeAcceptsValidType(t *testing.T) {
	spec := Union{tyInt, tyString}

	value, err := VerifyType(spec, 5)
	require.NoError(t, err)
	require.Equal(t, 5, value)

	value, err = VerifyType(spec, "ok")
	require.NoError(t, err)
	require.Equal(t, "ok", value)
}

func TestVerifyTypeRejectsInvalidType(t *testing.T) {
	_, err := VerifyType(Union{tyInt, tyString}, 1.2)
	require.ErrorIs(t, err, ErrInvalidType)

	var invalidType InvalidTypeError
	require.ErrorAs(t, err, &invalidType)
	require.Equal(t, tyFloat, invalidType.Actual)
	require.Equal(t, 1.2, invalidType.Value)
	require.Equal(t, "expected: int | string, actual: float64, value: 1.2", err.Error())
}

func TestVerifyTypeWildcard(t *testing.T) {
	value, err := VerifyType(Union{tyInt, Any}, struct{ A int }{A: 1})
	require.NoError(t, err)
	require.Equal(t, struct{ A int }{A: 1}, value)
}

func TestVerifyTypeInterfaces(t *testing.T) {
	tyReader := reflect.TypeFor[io.Reader]()

	reader := strings.NewReader("")

	// *strings.Reader implements io.Reader, the value is passed through unchanged
	value, err := VerifyType(tyReader, reader)
	require.NoError(t, err)
	require.Same(t, reader, value)

	_, err = VerifyType(tyReader, "not a reader")
	require.ErrorIs(t, err, ErrInvalidType)
}

func TestVerifyTypeNil(t *testing.T) {
	_, err := VerifyType(reflect.TypeFor[*int](), nil)
	require.NoError(t, err)

	_, err = VerifyType(tyInt, nil)
	require.ErrorIs(t, err, ErrInvalidType)
}

func TestVerifiedCast(t *testing.T) {
	value, err := VerifiedCast[int](123)
	require.NoError(t, err)
	require.Equal(t, 123, value)

	_, err = VerifiedCast[int]("123")
	require.ErrorIs(t, err, ErrInvalidType)

	var target InvalidTypeError
	require.True(t, errors.As(err, &target))
	require.Equal(t, tyInt, target.Expected)
}

func TestVerifiedCastToInterface(t *testing.T) {
	reader, err := VerifiedCast[io.Reader](strings.NewReader("abc"))
	require.NoError(t, err)

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Equal(t, "abc", string(content))

	reader, err = VerifiedCast[io.Reader](nil)
	require.NoError(t, err)
	require.Nil(t, reader)
}

func TestVerifiedCastNamedSlice(t *testing.T) {
	type Values []int

	values, err := VerifiedCast[Values]([]int{1, 2})
	require.NoError(t, err)
	require.Equal(t, Values{1, 2}, values)
}
