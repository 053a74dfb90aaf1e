package jsonish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Testable Property 1: strict-JSON roundtrip records no flags beyond
// UnionMatch.
func TestProperty_StrictJSONRoundtrip(t *testing.T) {
	schema := ObjectOf(true,
		Field{Name: "a", Schema: Prim(SchemaInt)},
		Field{Name: "b", Schema: Prim(SchemaString)},
	)
	v, err := ParseToValue(`{"a":1,"b":"x"}`)
	require.NoError(t, err)

	ctx := newContext(DefaultOptions())
	coerced, perr := coerce(v, schema, ctx, modeCoerce)
	require.Nil(t, perr)
	assert.Equal(t, 0, coerced.Flags.total(DefaultOptions()))

	out, err := Parse(`{"a":1,"b":"x"}`, schema)
	require.NoError(t, err)
	fields := out.(*OrderedFields)
	a, _ := fields.Get("a")
	b, _ := fields.Get("b")
	assert.Equal(t, int64(1), a)
	assert.Equal(t, "x", b)
}

// Testable Property 2: idempotent partial — allow_partial=true matches
// allow_partial=false whenever the latter succeeds.
func TestProperty_IdempotentPartial(t *testing.T) {
	schema := ObjectOf(true,
		Field{Name: "id", Schema: Prim(SchemaString)},
		Field{Name: "name", Schema: Prim(SchemaString)},
	)
	input := `{"id":"1","name":"complete"}`

	strict, err := Parse(input, schema, WithAllowPartial(false))
	require.NoError(t, err)
	partial, err := Parse(input, schema, WithAllowPartial(true))
	require.NoError(t, err)

	assert.Equal(t, strict.(*OrderedFields).Values, partial.(*OrderedFields).Values)
}

// Testable Property 3: scoring monotonicity — a strict subset of flags
// scores no worse than a superset of the same kinds.
func TestProperty_ScoringMonotonicity(t *testing.T) {
	opts := DefaultOptions()
	a := &FlagSet{}
	a.add(StringToInt)

	b := &FlagSet{}
	b.add(StringToInt)
	b.add(ExtraKey)

	assert.LessOrEqual(t, a.total(opts), b.total(opts))
}

// Testable Property 4: cycle termination — a cyclic schema applied to a
// finite value terminates rather than looping forever.
func TestProperty_CycleTermination(t *testing.T) {
	var cyclic Schema
	cyclic = LazyOf(func() Schema { return cyclic })

	_, err := Parse(`{"a":1}`, cyclic, WithMaxDepth(20))
	require.Error(t, err)
}

// Testable Property 5: raw parser totality — with allow_as_string, any
// input produces a Value, never an error.
func TestProperty_RawParserTotality(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"not json at all, just prose",
		"{{{{{",
		"]]]]]",
		`{"a": `,
		"\x00\x01garbage",
	}
	for _, in := range inputs {
		v, err := ParseToValue(in, WithAllowAsString(true))
		require.NoError(t, err, "input %q", in)
		require.NotNil(t, v)
	}
}

// Testable Property 6: ordering preservation for object schemas: the
// schema declares its fields in alphabetical order while the source text
// mentions keys in a different order.
func TestProperty_OrderingPreservation(t *testing.T) {
	schema := ObjectOf(true,
		Field{Name: "alpha", Schema: Prim(SchemaInt)},
		Field{Name: "beta", Schema: Prim(SchemaInt)},
		Field{Name: "gamma", Schema: Prim(SchemaInt)},
	)
	// Source mentions gamma, then alpha, then beta — deliberately not the
	// schema's declared (and not alphabetical) order.
	input := `{"gamma":3,"alpha":1,"beta":2}`

	out, err := Parse(input, schema)
	require.NoError(t, err)
	fields := out.(*OrderedFields)
	assert.Equal(t, []string{"gamma", "alpha", "beta"}, fields.Keys())
}

func TestProperty_OrderingPreservation_MissingFieldAppendsAfterSource(t *testing.T) {
	schema := ObjectOf(true,
		Field{Name: "alpha", Schema: Prim(SchemaInt)},
		Field{Name: "beta", Schema: OptionalOf(Prim(SchemaInt))},
		Field{Name: "gamma", Schema: Prim(SchemaInt)},
	)
	input := `{"gamma":3,"alpha":1}`

	out, err := Parse(input, schema)
	require.NoError(t, err)
	fields := out.(*OrderedFields)
	// beta never appeared in source, so it's appended after the
	// source-ordered fields rather than inserted at its schema position.
	assert.Equal(t, []string{"gamma", "alpha", "beta"}, fields.Keys())
}

// Testable Property 7: union preference — a Phase 1 success wins over a
// better-scoring Phase 2 candidate.
func TestProperty_UnionPreference(t *testing.T) {
	// Arm 0 only succeeds via lax string->int coercion (Phase 2).
	// Arm 1 matches a literal string exactly (Phase 1, no coercion).
	schema := UnionOf(
		Prim(SchemaInt),
		LiteralOf("42"),
	)
	out, err := Parse(`"42"`, schema)
	require.NoError(t, err)
	// Phase 1 (LiteralOf("42") exact match) must win even though Phase 2
	// (string->int) would otherwise be viable.
	assert.Equal(t, "42", out)
}

// Testable Property 8: discriminator fast path — exact tag match wins
// regardless of other arms' scores.
func TestProperty_DiscriminatorFastPath(t *testing.T) {
	dogSchema := ObjectOf(true,
		Field{Name: "kind", Schema: LiteralOf("dog")},
		Field{Name: "bark", Schema: Prim(SchemaString)},
	)
	catSchema := ObjectOf(true,
		Field{Name: "kind", Schema: LiteralOf("cat")},
		Field{Name: "bark", Schema: OptionalOf(Prim(SchemaString))},
	)
	du := DiscriminatedUnionOf("kind",
		Field{Name: "dog", Schema: dogSchema},
		Field{Name: "cat", Schema: catSchema},
	)

	out, err := Parse(`{"kind":"dog","bark":"woof"}`, du)
	require.NoError(t, err)
	fields := out.(*OrderedFields)
	bark, _ := fields.Get("bark")
	assert.Equal(t, "woof", bark)
}
