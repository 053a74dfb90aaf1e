package jsonish

import "strings"

// coerceEnumLiteral implements the field-match-ladder-shaped matching of
// §4.9.1 for both Enum (multiple allowed strings) and Literal (one allowed
// scalar). modeTryCast only allows step 1 (exact match); the lax ladder
// (trim, case-fold, strip punctuation, substring) is modeCoerce-only,
// matching Phase 1's "no cross-kind coercion" restriction extended here to
// "no approximate matching" for the same reason.
func coerceEnumLiteral(v *Value, schema Schema, ctx *Context, m mode) (*Coerced, *ParseError) {
	if schema.Kind() == SchemaLiteral {
		return coerceLiteral(v, schema, ctx, m)
	}
	return coerceEnum(v, schema, ctx, m)
}

func coerceLiteral(v *Value, schema Schema, ctx *Context, m mode) (*Coerced, *ParseError) {
	want := schema.Literal()
	wantStr, wantIsStr := want.(string)
	if !wantIsStr {
		// Non-string literals (numbers, bools, null) only ever match
		// exactly; the textual ladder below doesn't apply.
		if valueEqualsScalar(v, want) {
			return newCoerced(want, schema), nil
		}
		return nil, typeMismatch(ctx, "literal mismatch")
	}
	if v.Kind != KindString {
		return nil, typeMismatch(ctx, "literal expects a string value")
	}
	match, flags, err := matchVariant(v.Str, []string{wantStr}, m)
	if err != nil {
		return nil, ctx.wrapLadderError(err)
	}
	c := newCoerced(match, schema)
	for _, f := range flags {
		c.flag(f)
	}
	return c, nil
}

func valueEqualsScalar(v *Value, want any) bool {
	switch w := want.(type) {
	case nil:
		return v.Kind == KindNull
	case bool:
		return v.Kind == KindBool && v.Bool == w
	case float64:
		return v.Kind == KindNumber && v.Number.Float64() == w
	case int:
		return v.Kind == KindNumber && v.Number.IsInt() && v.Number.Int64() == int64(w)
	case int64:
		return v.Kind == KindNumber && v.Number.IsInt() && v.Number.Int64() == w
	default:
		return false
	}
}

func coerceEnum(v *Value, schema Schema, ctx *Context, m mode) (*Coerced, *ParseError) {
	if v.Kind != KindString {
		return nil, typeMismatch(ctx, "enum expects a string value")
	}
	variants := make([]string, 0, len(schema.Variants()))
	for _, f := range schema.Variants() {
		variants = append(variants, f.Name)
	}
	match, flags, err := matchVariant(v.Str, variants, m)
	if err != nil {
		return nil, ctx.wrapLadderError(err)
	}
	c := newCoerced(match, schema)
	for _, f := range flags {
		c.flag(f)
	}
	return c, nil
}

// ladderError distinguishes "nothing matched" from "two or more variants
// are plausible", since the latter reports as AmbiguousEnum (spec.md S3)
// rather than a bare type mismatch.
type ladderError struct {
	ambiguous bool
	detail    string
}

func (ctx *Context) wrapLadderError(e *ladderError) *ParseError {
	if e.ambiguous {
		return NewParseError(ReasonAmbiguousEnum, ctx.scope).WithDetail(e.detail)
	}
	return NewParseError(ReasonTypeMismatch, ctx.scope).WithDetail(e.detail)
}

// matchVariant runs the §4.9.1 ladder against one input string and a set
// of candidate variant names, returning the matched canonical variant text
// and the flags the winning rung recorded.
func matchVariant(input string, variants []string, m mode) (string, []Flag, *ladderError) {
	for _, cand := range variants {
		if input == cand {
			return cand, nil, nil
		}
	}
	if m == modeTryCast {
		return "", nil, &ladderError{detail: "no exact match for " + input}
	}

	trimmed := strings.TrimSpace(input)
	for _, cand := range variants {
		if trimmed == cand {
			return cand, []Flag{TrimmedMatch}, nil
		}
	}

	lower := strings.ToLower(trimmed)
	for _, cand := range variants {
		if strings.ToLower(cand) == lower {
			return cand, []Flag{CaseInsensitiveMatch}, nil
		}
	}

	stripped := stripNonAlphaNumeric(trimmed)
	for _, cand := range variants {
		if strings.EqualFold(stripped, stripNonAlphaNumeric(cand)) {
			return cand, []Flag{StrippedNonAlphaNumeric}, nil
		}
	}

	emphasisStripped := stripMarkdownEmphasis(input)
	var hits []string
	for _, cand := range variants {
		if containsWholeWord(strings.ToLower(emphasisStripped), strings.ToLower(cand)) {
			hits = append(hits, cand)
		}
	}
	switch len(hits) {
	case 0:
		return "", nil, &ladderError{detail: "no variant found in " + input}
	case 1:
		return hits[0], []Flag{SubstringMatch}, nil
	default:
		return "", nil, &ladderError{ambiguous: true, detail: strings.Join(hits, ", ")}
	}
}

func stripNonAlphaNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if isWordRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stripMarkdownEmphasis(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "*", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}
