package jsonish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S1 — malformed input with lax primitive coercions (spec.md §8 S1).
func TestParse_S1_MalformedWithCoercions(t *testing.T) {
	schema := ObjectOf(true,
		Field{Name: "name", Schema: Prim(SchemaString)},
		Field{Name: "age", Schema: Prim(SchemaInt)},
		Field{Name: "active", Schema: OptionalOf(Prim(SchemaBool))},
	)
	input := `{"name": "Alice", "age": "30", "active": True}`

	out, err := Parse(input, schema)
	require.NoError(t, err)

	fields, ok := out.(*OrderedFields)
	require.True(t, ok)
	name, _ := fields.Get("name")
	age, _ := fields.Get("age")
	active, _ := fields.Get("active")
	assert.Equal(t, "Alice", name)
	assert.Equal(t, int64(30), age)
	assert.Equal(t, true, active)
	assert.Equal(t, []string{"name", "age", "active"}, fields.Keys())
}

// S2 — Markdown extraction (spec.md §8 S2).
func TestParse_S2_MarkdownExtraction(t *testing.T) {
	schema := ObjectOf(true,
		Field{Name: "message", Schema: Prim(SchemaString)},
		Field{Name: "timestamp", Schema: Prim(SchemaInt)},
	)
	input := "Here you go:\n```json\n{\"message\":\"Hi\",\"timestamp\":1}\n```\nThanks."

	out, err := Parse(input, schema)
	require.NoError(t, err)
	fields := out.(*OrderedFields)
	msg, _ := fields.Get("message")
	ts, _ := fields.Get("timestamp")
	assert.Equal(t, "Hi", msg)
	assert.Equal(t, int64(1), ts)
}

// S3 — enum resolution against prose, both the ambiguous and the
// resolvable case (spec.md §8 S3).
func TestParse_S3_EnumWithProse(t *testing.T) {
	schema := EnumOf("one", "two", "three")

	_, err := Parse(`"**one** is the answer, not two"`, schema)
	require.Error(t, err)
	perr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, ReasonAmbiguousEnum, perr.Reason)

	out, err := Parse(`"The answer is **one**."`, schema)
	require.NoError(t, err)
	assert.Equal(t, "one", out)
}

// S4 — single-to-array lifting, nested through an object field (spec.md
// §8 S4).
func TestParse_S4_SingleToArray(t *testing.T) {
	elem := ObjectOf(true, Field{Name: "hi", Schema: ArrayOf(Prim(SchemaString))})
	schema := ArrayOf(elem)

	out, err := Parse(`{"hi":"a"}`, schema)
	require.NoError(t, err)
	arr, ok := out.([]any)
	require.True(t, ok)
	require.Len(t, arr, 1)
	fields := arr[0].(*OrderedFields)
	hi, _ := fields.Get("hi")
	assert.Equal(t, []any{"a"}, hi)
}

// S5 — discriminated union fast path across an array of mixed variants
// (spec.md §8 S5).
func TestParse_S5_DiscriminatedUnion(t *testing.T) {
	serverAction := ObjectOf(true,
		Field{Name: "type", Schema: LiteralOf("server_action")},
		Field{Name: "signature", Schema: Prim(SchemaString)},
	)
	page := ObjectOf(true,
		Field{Name: "type", Schema: LiteralOf("page")},
		Field{Name: "name", Schema: Prim(SchemaString)},
	)
	component := ObjectOf(true,
		Field{Name: "type", Schema: LiteralOf("component")},
		Field{Name: "name", Schema: Prim(SchemaString)},
	)
	du := DiscriminatedUnionOf("type",
		Field{Name: "server_action", Schema: serverAction},
		Field{Name: "page", Schema: page},
		Field{Name: "component", Schema: component},
	)
	schema := ArrayOf(du)

	input := `[{"type":"server_action","signature":"f()"},{"type":"page","name":"Home"}]`
	out, err := Parse(input, schema)
	require.NoError(t, err)
	arr := out.([]any)
	require.Len(t, arr, 2)

	first := arr[0].(*OrderedFields)
	sig, _ := first.Get("signature")
	assert.Equal(t, "f()", sig)

	second := arr[1].(*OrderedFields)
	name, _ := second.Get("name")
	assert.Equal(t, "Home", name)
}

// S6 — recursive JSON-value schema, zero flags beyond UnionMatch (spec.md
// §8 S6).
func TestParse_S6_RecursiveJSONValue(t *testing.T) {
	var jsonValue Schema
	jsonValue = UnionOf(
		Prim(SchemaNull),
		Prim(SchemaBool),
		Prim(SchemaFloat),
		Prim(SchemaString),
		ArrayOf(LazyOf(func() Schema { return jsonValue })),
		MapOf(Prim(SchemaString), LazyOf(func() Schema { return jsonValue })),
	)

	input := `{"a":1,"b":[true,"x",{"c":null}]}`
	out, err := Parse(input, jsonValue)
	require.NoError(t, err)

	top := out.(*OrderedFields)
	a, _ := top.Get("a")
	assert.Equal(t, 1.0, a)

	b, _ := top.Get("b")
	bArr := b.([]any)
	require.Len(t, bArr, 3)
	assert.Equal(t, true, bArr[0])
	assert.Equal(t, "x", bArr[1])
	inner := bArr[2].(*OrderedFields)
	c, _ := inner.Get("c")
	assert.Nil(t, c)
}

// S7 — partial streaming: the same truncated input under allow_partial
// true and false (spec.md §8 S7).
func TestParse_S7_PartialStreaming(t *testing.T) {
	schema := ObjectOf(true,
		Field{Name: "id", Schema: Prim(SchemaString)},
		Field{Name: "name", Schema: Prim(SchemaString)},
		Field{Name: "status", Schema: OptionalOf(Prim(SchemaString))},
	)
	input := `{"id":"123","name":"Alice`

	out, err := Parse(input, schema, WithAllowPartial(true))
	require.NoError(t, err)
	fields := out.(*OrderedFields)
	id, _ := fields.Get("id")
	name, _ := fields.Get("name")
	assert.Equal(t, "123", id)
	assert.Equal(t, "Alice", name)
	_, hasStatus := fields.Get("status")
	assert.False(t, hasStatus)

	_, err = Parse(input, schema, WithAllowPartial(false))
	require.Error(t, err)
}

func TestParse_NilSchema(t *testing.T) {
	_, err := Parse(`{}`, nil)
	assert.ErrorIs(t, err, ErrNilSchema)
}

func TestParse_InvalidMaxDepth(t *testing.T) {
	_, err := Parse(`{}`, Prim(SchemaString), WithMaxDepth(0))
	assert.ErrorIs(t, err, ErrMaxDepthInvalid)
}
