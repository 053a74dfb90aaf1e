package jsonish

import (
	"fmt"
	"sort"
	"strings"
)

// CompletionState records whether a Value's terminator was actually observed
// in the source, or merely inferred by the fixer (§3.1).
type CompletionState int

const (
	// Complete means every child of a container is Complete and the
	// container's own terminator was seen in the source text.
	Complete CompletionState = iota
	// Incomplete means at least one child is incomplete, or the
	// container's terminator was never observed (EOF reached first).
	Incomplete
)

// Fix names one recovery step the fixing state machine (§4.5) applied.
type Fix int

const (
	GreppedForJSON Fix = iota
	ClosedString
	InferredComma
	InferredBrace
	InferredBracket
	DroppedComment
	StrippedQuote
	TripleQuoteUnwrap
	OtherRecovery
)

func (f Fix) String() string {
	switch f {
	case GreppedForJSON:
		return "GreppedForJSON"
	case ClosedString:
		return "ClosedString"
	case InferredComma:
		return "InferredComma"
	case InferredBrace:
		return "InferredBrace"
	case InferredBracket:
		return "InferredBracket"
	case DroppedComment:
		return "DroppedComment"
	case StrippedQuote:
		return "StrippedQuote"
	case TripleQuoteUnwrap:
		return "TripleQuoteUnwrap"
	case OtherRecovery:
		return "OtherRecovery"
	default:
		return "UnknownFix"
	}
}

// ValueKind discriminates the Value sum type.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindMarkdown
	KindFixedJson
	KindAnyOf
)

// Entry is one (key, value) pair of an Object. Duplicate keys are retained
// in source order; merge/last-wins decisions are deferred to the coercer
// (§4.1, §4.9.4).
type Entry struct {
	Key   string
	Value *Value
}

// Value is the tagged tree produced by the raw parser and consumed by the
// coercer (§3.1). It is immutable after construction: every "fix" or "merge"
// produces a new node rather than mutating an existing one.
type Value struct {
	Kind  ValueKind
	State CompletionState

	Bool   bool
	Number *Number
	Str    string

	Items   []*Value // Array
	Entries []Entry  // Object

	// Markdown
	Tag   string
	Inner *Value

	// FixedJson
	Fixes []Fix

	// AnyOf
	Candidates []*Value
	Origin     string
}

func NewNull(state CompletionState) *Value {
	return &Value{Kind: KindNull, State: state}
}

func NewBool(b bool, state CompletionState) *Value {
	return &Value{Kind: KindBool, Bool: b, State: state}
}

func NewNumber(n *Number, state CompletionState) *Value {
	return &Value{Kind: KindNumber, Number: n, State: state}
}

func NewString(s string, state CompletionState) *Value {
	return &Value{Kind: KindString, Str: s, State: state}
}

// NewArray derives its own CompletionState from its items per the container
// invariant in §3.1: Complete iff every child is Complete and terminated
// was observed; terminated must be supplied by the caller (the parser knows
// whether it actually consumed a closing bracket).
func NewArray(items []*Value, terminated bool) *Value {
	state := Complete
	if !terminated {
		state = Incomplete
	}
	for _, it := range items {
		if it.State == Incomplete {
			state = Incomplete
			break
		}
	}
	return &Value{Kind: KindArray, Items: items, State: state}
}

func NewObject(entries []Entry, terminated bool) *Value {
	state := Complete
	if !terminated {
		state = Incomplete
	}
	for _, e := range entries {
		if e.Value.State == Incomplete {
			state = Incomplete
			break
		}
	}
	return &Value{Kind: KindObject, Entries: entries, State: state}
}

// NewMarkdown wraps the value recursively parsed from a fenced code block's
// body. Its completion state mirrors the inner value's (§3.1).
func NewMarkdown(tag string, inner *Value) *Value {
	return &Value{Kind: KindMarkdown, Tag: tag, Inner: inner, State: inner.State}
}

// NewFixedJson records the fixes applied to produce inner. Per the
// invariant in §3.1, inner is never itself FixedJson and fix lists are
// merged on nesting.
func NewFixedJson(inner *Value, fixes []Fix) *Value {
	if inner.Kind == KindFixedJson {
		merged := append(append([]Fix{}, inner.Fixes...), fixes...)
		return &Value{Kind: KindFixedJson, Inner: inner.Inner, Fixes: merged, State: inner.Inner.State}
	}
	return &Value{Kind: KindFixedJson, Inner: inner, Fixes: fixes, State: inner.State}
}

// NewAnyOf flattens nested AnyOf candidates on construction (§3.1 invariant:
// "AnyOf never nests directly inside AnyOf").
func NewAnyOf(candidates []*Value, origin string) *Value {
	flat := make([]*Value, 0, len(candidates))
	for _, c := range candidates {
		if c == nil {
			continue
		}
		if c.Kind == KindAnyOf {
			flat = append(flat, c.Candidates...)
			continue
		}
		flat = append(flat, c)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	state := Complete
	for _, c := range flat {
		if c.State == Incomplete {
			state = Incomplete
			break
		}
	}
	return &Value{Kind: KindAnyOf, Candidates: flat, Origin: origin, State: state}
}

// mergeDuplicateKeysAsArray lifts every value recorded under key into a
// single Array entry, used when the coercer (§4.9.4) decides the target
// field schema is an Array. Order of the lifted values matches source order.
func mergeDuplicateKeysAsArray(values []*Value, terminated bool) *Value {
	return NewArray(values, terminated)
}

// groupByKey returns entries grouped by key, preserving the first-seen order
// of distinct keys and the source order of values within each group. Used by
// §4.9.4's duplicate-key handling.
func groupByKey(entries []Entry) (order []string, groups map[string][]*Value) {
	groups = make(map[string][]*Value)
	for _, e := range entries {
		if _, ok := groups[e.Key]; !ok {
			order = append(order, e.Key)
		}
		groups[e.Key] = append(groups[e.Key], e.Value)
	}
	return order, groups
}

// fingerprint computes a structural digest of v suitable as a cycle-guard
// set key (§3.2's ValueFingerprint): same shape and scalars at two distinct
// source positions fingerprint identically, which is exactly what cycle
// detection needs and "serialize then compare" famously gets wrong.
func fingerprint(v *Value) string {
	var b strings.Builder
	writeFingerprint(&b, v)
	return b.String()
}

func writeFingerprint(b *strings.Builder, v *Value) {
	if v == nil {
		b.WriteString("∅")
		return
	}
	switch v.Kind {
	case KindNull:
		b.WriteString("n")
	case KindBool:
		fmt.Fprintf(b, "b%v", v.Bool)
	case KindNumber:
		fmt.Fprintf(b, "#%s", v.Number.String())
	case KindString:
		fmt.Fprintf(b, "s%d:%s", len(v.Str), v.Str)
	case KindArray:
		b.WriteString("[")
		for _, it := range v.Items {
			writeFingerprint(b, it)
			b.WriteString(",")
		}
		b.WriteString("]")
	case KindObject:
		keys := make([]string, 0, len(v.Entries))
		byKey := map[string]*Value{}
		for _, e := range v.Entries {
			if _, ok := byKey[e.Key]; !ok {
				keys = append(keys, e.Key)
			}
			byKey[e.Key] = e.Value
		}
		sort.Strings(keys)
		b.WriteString("{")
		for _, k := range keys {
			fmt.Fprintf(b, "%s:", k)
			writeFingerprint(b, byKey[k])
			b.WriteString(",")
		}
		b.WriteString("}")
	case KindMarkdown:
		fmt.Fprintf(b, "md(%s):", v.Tag)
		writeFingerprint(b, v.Inner)
	case KindFixedJson:
		b.WriteString("fx:")
		writeFingerprint(b, v.Inner)
	case KindAnyOf:
		b.WriteString("any[")
		for _, c := range v.Candidates {
			writeFingerprint(b, c)
			b.WriteString("|")
		}
		b.WriteString("]")
	}
}
