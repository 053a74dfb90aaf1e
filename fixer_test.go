package jsonish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Rule 1: a quoted string only closes on a quote followed by a structural
// token appropriate for the position; otherwise the quote is literal.
func TestFixer_NestedQuotesInString(t *testing.T) {
	v, _, ok := fixJSON(`{"msg": "she said "stop" and left"}`)
	require.True(t, ok)
	require.Equal(t, KindObject, v.Kind)
	require.Len(t, v.Entries, 1)
	assert.Equal(t, "msg", v.Entries[0].Key)
	assert.Equal(t, KindString, v.Entries[0].Value.Kind)
	assert.Equal(t, `she said "stop" and left`, v.Entries[0].Value.Str)
}

// Rule 2: triple-quoted strings consume everything verbatim.
func TestFixer_TripleQuotedString(t *testing.T) {
	v, _, ok := fixJSON(`{"code": """def f():\n    return "x""""}`)
	require.True(t, ok)
	require.Equal(t, KindObject, v.Kind)
	assert.Contains(t, v.Entries[0].Value.Str, "def f()")
}

// Rule 3: unquoted keys and values, including a value containing a colon
// at a deeper parenthesis depth that must not terminate the scan early.
func TestFixer_UnquotedKeysAndValues(t *testing.T) {
	v, _, ok := fixJSON(`{name: Alice, signature: async fn f(page: number): Promise<T>}`)
	require.True(t, ok)
	require.Equal(t, KindObject, v.Kind)
	entries := map[string]*Value{}
	for _, e := range v.Entries {
		entries[e.Key] = e.Value
	}
	require.Contains(t, entries, "name")
	assert.Equal(t, "Alice", entries["name"].Str)
	require.Contains(t, entries, "signature")
	assert.Contains(t, entries["signature"].Str, "Promise<T>")
}

// Rule 4: comments are dropped and recorded.
func TestFixer_DropsComments(t *testing.T) {
	v, fixes, ok := fixJSON("{\n  // a comment\n  \"a\": 1, # another\n  \"b\": /* inline */ 2\n}")
	require.True(t, ok)
	require.Equal(t, KindObject, v.Kind)
	require.Len(t, v.Entries, 2)
	found := false
	for _, f := range fixes {
		if f == DroppedComment {
			found = true
		}
	}
	assert.True(t, found)
}

// Rule 5: missing comma inference between two complete array elements.
func TestFixer_InfersMissingComma(t *testing.T) {
	v, fixes, ok := fixJSON(`[1 2 3]`)
	require.True(t, ok)
	require.Equal(t, KindArray, v.Kind)
	assert.Len(t, v.Items, 3)
	found := false
	for _, f := range fixes {
		if f == InferredComma {
			found = true
		}
	}
	assert.True(t, found)
}

// Rule 5 (trailing comma tolerance).
func TestFixer_TrailingCommaIgnored(t *testing.T) {
	v, _, ok := fixJSON(`[1, 2, 3,]`)
	require.True(t, ok)
	assert.Len(t, v.Items, 3)
}

// Rule 6: a missing closer at EOF is inferred LIFO and marks the
// container Incomplete.
func TestFixer_InfersMissingCloser(t *testing.T) {
	v, fixes, ok := fixJSON(`{"a": [1, 2`)
	require.True(t, ok)
	require.Equal(t, KindObject, v.Kind)
	assert.Equal(t, Incomplete, v.State)
	require.Len(t, v.Entries, 1)
	arr := v.Entries[0].Value
	assert.Equal(t, KindArray, arr.Kind)
	assert.Equal(t, Incomplete, arr.State)
	assert.Len(t, arr.Items, 2)

	var sawBrace, sawBracket bool
	for _, f := range fixes {
		if f == InferredBrace {
			sawBrace = true
		}
		if f == InferredBracket {
			sawBracket = true
		}
	}
	assert.True(t, sawBrace)
	assert.True(t, sawBracket)
}

// Rule 7: a scalar immediately followed by a structural opener (no
// separator) is recovered as a string value, not a new sibling field.
func TestFixer_EmbeddedMalformedJSONAsString(t *testing.T) {
	v, _, ok := fixJSON(`{"key": null{"nested": true}}`)
	require.True(t, ok)
	require.Equal(t, KindObject, v.Kind)
	require.Len(t, v.Entries, 1)
	assert.Equal(t, KindString, v.Entries[0].Value.Kind)
}

// Rule 8: comma-grouped, currency, percentage, and fraction numeric
// literals.
func TestFixer_NumberGrammar(t *testing.T) {
	v, _, ok := fixJSON(`[$3,200.50, 42%, 1/5]`)
	require.True(t, ok)
	require.Equal(t, KindArray, v.Kind)
	require.Len(t, v.Items, 3)
	assert.Equal(t, KindNumber, v.Items[0].Kind)
	assert.InDelta(t, 3200.50, v.Items[0].Number.Float64(), 0.0001)
	assert.Equal(t, KindNumber, v.Items[1].Kind)
	assert.InDelta(t, 42, v.Items[1].Number.Float64(), 0.0001)
	assert.Equal(t, KindNumber, v.Items[2].Kind)
	assert.InDelta(t, 0.2, v.Items[2].Number.Float64(), 0.0001)
}

// Rule 9: duplicate keys are preserved in source order by the raw parser;
// merge decisions are deferred to the coercer.
func TestFixer_DuplicateKeysPreserved(t *testing.T) {
	v, _, ok := fixJSON(`{"tag": "a", "tag": "b"}`)
	require.True(t, ok)
	require.Len(t, v.Entries, 2)
	assert.Equal(t, "a", v.Entries[0].Value.Str)
	assert.Equal(t, "b", v.Entries[1].Value.Str)
}

func TestFixer_GrepsLeadingProse(t *testing.T) {
	v, fixes, ok := fixJSON("Sure, here's the JSON you asked for:\n{\"a\": 1}")
	require.True(t, ok)
	require.Equal(t, KindObject, v.Kind)
	found := false
	for _, f := range fixes {
		if f == GreppedForJSON {
			found = true
		}
	}
	assert.True(t, found)
}

func TestMultiObjectExtractor_FindsSeveralRoots(t *testing.T) {
	input := `Some text {"a":1} more text [1,2,3] end`
	v, ok := extractMultiObject(input, DefaultOptions(), 0)
	require.True(t, ok)
	require.Equal(t, KindAnyOf, v.Kind)
	assert.GreaterOrEqual(t, len(v.Candidates), 2)
}

func TestMultiObjectExtractor_SingleSpanDefersToRestOfCascade(t *testing.T) {
	_, ok := extractMultiObject(`{"a":1}`, DefaultOptions(), 0)
	assert.False(t, ok)
}

func TestMarkdownExtractor_SingleBlock(t *testing.T) {
	v, ok := extractMarkdown("```json\n{\"a\":1}\n```", DefaultOptions(), 0)
	require.True(t, ok)
	assert.Equal(t, KindMarkdown, v.Kind)
	assert.Equal(t, "json", v.Tag)
}

func TestMarkdownExtractor_MultipleBlocks(t *testing.T) {
	v, ok := extractMarkdown("```json\n{\"a\":1}\n```\nand\n```json\n{\"b\":2}\n```", DefaultOptions(), 0)
	require.True(t, ok)
	assert.Equal(t, KindAnyOf, v.Kind)
	assert.Len(t, v.Candidates, 2)
}

func TestStrictJSON_RejectsTrailingGarbage(t *testing.T) {
	_, ok := tryStrictJSON(`{"a":1} trailing`)
	assert.False(t, ok)
}

func TestStrictJSON_PreservesBigIntegerPrecision(t *testing.T) {
	v, ok := tryStrictJSON(`12345678901234567890`)
	require.True(t, ok)
	require.Equal(t, KindNumber, v.Kind)
	assert.Equal(t, "12345678901234567890", v.Number.String())
}
