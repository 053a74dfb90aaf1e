package jsonish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_ObjectToStringKeyedMap(t *testing.T) {
	schema := MapOf(Prim(SchemaString), Prim(SchemaInt))
	out, err := Parse(`{"a": 1, "b": "2"}`, schema)
	require.NoError(t, err)
	fields := out.(*OrderedFields)
	a, _ := fields.Get("a")
	b, _ := fields.Get("b")
	assert.Equal(t, int64(1), a)
	assert.Equal(t, int64(2), b)
	assert.Equal(t, []string{"a", "b"}, fields.Keys())
}

func TestMap_EmptyStringCoercesToEmptyMap(t *testing.T) {
	schema := MapOf(Prim(SchemaString), Prim(SchemaInt))
	out, err := Parse(`""`, schema)
	require.NoError(t, err)
	fields := out.(*OrderedFields)
	assert.Empty(t, fields.Keys())
}

func TestMap_StringHoldingJSONObject(t *testing.T) {
	schema := MapOf(Prim(SchemaString), Prim(SchemaString))
	out, err := Parse(`"{\"x\": \"y\"}"`, schema)
	require.NoError(t, err)
	fields := out.(*OrderedFields)
	x, _ := fields.Get("x")
	assert.Equal(t, "y", x)
}

func TestMap_UnsupportedKeySchema(t *testing.T) {
	schema := MapOf(Prim(SchemaInt), Prim(SchemaString))
	_, err := Parse(`{"a": "b"}`, schema)
	require.Error(t, err)
	perr := err.(*ParseError)
	assert.Equal(t, ReasonUnsupportedMapKey, perr.Reason)
}

func TestMap_BadValueDroppedByDefault(t *testing.T) {
	schema := MapOf(Prim(SchemaString), Prim(SchemaInt))
	out, err := Parse(`{"a": 1, "b": {"nested": true}}`, schema)
	require.NoError(t, err)
	fields := out.(*OrderedFields)
	_, hasB := fields.Get("b")
	assert.False(t, hasB)
	a, _ := fields.Get("a")
	assert.Equal(t, int64(1), a)
}

func TestRefined_PassesPredicate(t *testing.T) {
	positiveInt := RefinedOf(Prim(SchemaInt), func(v any) error {
		n, _ := v.(int64)
		if n <= 0 {
			return assert.AnError
		}
		return nil
	})
	out, err := Parse(`5`, positiveInt)
	require.NoError(t, err)
	assert.Equal(t, int64(5), out)
}

func TestRefined_FailsPredicateOutsideUnion(t *testing.T) {
	positiveInt := RefinedOf(Prim(SchemaInt), func(v any) error {
		n, _ := v.(int64)
		if n <= 0 {
			return assert.AnError
		}
		return nil
	})
	_, err := Parse(`-3`, positiveInt)
	require.Error(t, err)
	perr := err.(*ParseError)
	assert.Equal(t, ReasonRefinementFailed, perr.Reason)
}

func TestRefined_IgnoreRefinementsOptionSuppressesFailure(t *testing.T) {
	positiveInt := RefinedOf(Prim(SchemaInt), func(v any) error {
		n, _ := v.(int64)
		if n <= 0 {
			return assert.AnError
		}
		return nil
	})
	out, err := Parse(`-3`, positiveInt, WithIgnoreRefinements(true))
	require.NoError(t, err)
	assert.Equal(t, int64(-3), out)
}

func TestRefined_FailureInsideUnionIsPenalizedNotRejected(t *testing.T) {
	positiveInt := RefinedOf(Prim(SchemaInt), func(v any) error {
		n, _ := v.(int64)
		if n <= 0 {
			return assert.AnError
		}
		return nil
	})
	schema := UnionOf(positiveInt, Prim(SchemaString))
	out, err := Parse(`-3`, schema)
	require.NoError(t, err)
	// -3 coerces to the string "-3" at the cost of NumberToString (penalty
	// 1), which beats the int arm's RefinementFailed penalty (8).
	assert.Equal(t, "-3", out)
}

func TestPartial_MissingNestedObjectFieldDefaultsRecursively(t *testing.T) {
	inner := ObjectOf(true,
		Field{Name: "x", Schema: Prim(SchemaInt)},
		Field{Name: "y", Schema: Prim(SchemaString)},
	)
	schema := ObjectOf(true,
		Field{Name: "id", Schema: Prim(SchemaString)},
		Field{Name: "nested", Schema: inner},
	)
	out, err := Parse(`{"id": "abc"`, schema, WithAllowPartial(true))
	require.NoError(t, err)
	fields := out.(*OrderedFields)
	id, _ := fields.Get("id")
	assert.Equal(t, "abc", id)
	nested, ok := fields.Get("nested")
	require.True(t, ok)
	nestedFields := nested.(*OrderedFields)
	assert.Empty(t, nestedFields.Keys())
}

func TestPartial_MissingArrayFieldDefaultsToEmpty(t *testing.T) {
	schema := ObjectOf(true,
		Field{Name: "id", Schema: Prim(SchemaString)},
		Field{Name: "tags", Schema: ArrayOf(Prim(SchemaString))},
	)
	out, err := Parse(`{"id": "abc"`, schema, WithAllowPartial(true))
	require.NoError(t, err)
	fields := out.(*OrderedFields)
	tags, ok := fields.Get("tags")
	require.True(t, ok)
	assert.Equal(t, []any{}, tags)
}

func TestOptions_CoercePrimitivesFalseRejectsLaxStringToInt(t *testing.T) {
	schema := Prim(SchemaInt)
	_, err := Parse(`"30"`, schema, WithCoercePrimitives(false))
	require.Error(t, err)

	out, err := Parse(`"30"`, schema)
	require.NoError(t, err)
	assert.Equal(t, int64(30), out)
}

func TestOptions_CoercePrimitivesFalseStillAcceptsExactKind(t *testing.T) {
	schema := Prim(SchemaInt)
	out, err := Parse(`30`, schema, WithCoercePrimitives(false))
	require.NoError(t, err)
	assert.Equal(t, int64(30), out)
}

func TestOptions_OnElementErrorFailFast(t *testing.T) {
	schema := ArrayOf(Prim(SchemaInt))
	input := `[1, "not a number at all", 3]`

	out, err := Parse(input, schema)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(3)}, out)

	_, err = Parse(input, schema, WithOnElementError(FailFast))
	require.Error(t, err)
}

func TestOptions_WithPenaltiesOverridesTieBreak(t *testing.T) {
	// Neither arm matches the input's raw kind (a string), so both only
	// succeed in Phase 2 and tie at the default penalty (StringToInt and
	// StringToFloat both cost 1) — the declaration-order tie-break picks
	// Int. Raising StringToInt's penalty above StringToFloat's flips it.
	schema := UnionOf(Prim(SchemaInt), Prim(SchemaFloat))

	out, err := Parse(`"30"`, schema)
	require.NoError(t, err)
	assert.Equal(t, int64(30), out)

	out, err = Parse(`"30"`, schema, WithPenalties(map[Flag]int{StringToInt: 5}))
	require.NoError(t, err)
	assert.Equal(t, 30.0, out)
}

func TestErrors_UnwrapExposesCauseTree(t *testing.T) {
	cause := NewParseError(ReasonTypeMismatch, []string{"x"})
	top := NewParseError(ReasonNoMatchingUnionArm, nil).WithCause(cause)
	unwrapped := top.Unwrap()
	require.Len(t, unwrapped, 1)
	assert.Same(t, cause, unwrapped[0])
}

func TestErrors_LocalizeFallsBackToErrorWithNilLocalizer(t *testing.T) {
	perr := NewParseError(ReasonTypeMismatch, []string{"a", "b"}).WithDetail("oops")
	assert.Equal(t, perr.Error(), perr.Localize(nil))
}
