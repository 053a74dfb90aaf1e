package jsonish

import "strings"

// coercePrimitive implements §4.8 for the five scalar schema kinds. mode
// gates which rules apply: modeTryCast allows only same-representation
// matches (Union Phase 1's "exact kind match, no cross-kind coercion");
// modeCoerce additionally runs the lax string/number/bool conversion
// rules.
func coercePrimitive(v *Value, schema Schema, ctx *Context, m mode) (*Coerced, *ParseError) {
	// Options.CoercePrimitives=false (§6.2) disables the lax rules below
	// exactly like Union Phase 1's modeTryCast does, so the two share the
	// same "exact representation only" gate.
	if !ctx.options.CoercePrimitives {
		m = modeTryCast
	}
	switch schema.Kind() {
	case SchemaString:
		return coerceString(v, schema, ctx, m)
	case SchemaInt:
		return coerceInt(v, schema, ctx, m)
	case SchemaFloat:
		return coerceFloat(v, schema, ctx, m)
	case SchemaBool:
		return coerceBool(v, schema, ctx, m)
	case SchemaNull:
		return coerceNull(v, schema, ctx, m)
	}
	return nil, NewParseError(ReasonUnsupportedSchemaKind, ctx.scope)
}

func typeMismatch(ctx *Context, detail string) *ParseError {
	return NewParseError(ReasonTypeMismatch, ctx.scope).WithDetail(detail)
}

func coerceString(v *Value, schema Schema, ctx *Context, m mode) (*Coerced, *ParseError) {
	switch v.Kind {
	case KindString:
		return newCoerced(v.Str, schema), nil
	case KindNumber:
		if m == modeTryCast {
			return nil, typeMismatch(ctx, "number is not a string")
		}
		return newCoerced(v.Number.String(), schema).flag(NumberToString), nil
	case KindBool:
		if m == modeTryCast {
			return nil, typeMismatch(ctx, "bool is not a string")
		}
		s := "false"
		if v.Bool {
			s = "true"
		}
		return newCoerced(s, schema).flag(BoolToString), nil
	default:
		return nil, typeMismatch(ctx, "cannot coerce to string")
	}
}

func coerceInt(v *Value, schema Schema, ctx *Context, m mode) (*Coerced, *ParseError) {
	switch v.Kind {
	case KindNumber:
		if v.Number.IsInt() {
			return newCoerced(v.Number.Int64(), schema), nil
		}
		if m == modeTryCast {
			return nil, typeMismatch(ctx, "non-integral number")
		}
		return newCoerced(v.Number.RoundHalfEven(), schema).flag(FloatToInt), nil
	case KindString:
		if m == modeTryCast {
			return nil, typeMismatch(ctx, "string is not an int")
		}
		if n, ok := normalizeNumericString(v.Str); ok {
			if n.IsInt() {
				return newCoerced(n.Int64(), schema).flag(StringToInt), nil
			}
			// Only accept as Int when the fraction divides exactly
			// (§4.8: "accept '1/5'-style fraction only if ... the
			// denominator divides the numerator exactly").
			if n.Rat().IsInt() {
				return newCoerced(n.Int64(), schema).flag(StringToInt), nil
			}
			return nil, typeMismatch(ctx, "fractional string does not divide evenly")
		}
		return nil, NewParseError(ReasonUnparseableNumber, ctx.scope).WithDetail(v.Str)
	case KindBool:
		if m == modeTryCast {
			return nil, typeMismatch(ctx, "bool is not an int")
		}
		n := int64(0)
		if v.Bool {
			n = 1
		}
		return newCoerced(n, schema).flag(BoolToInt), nil
	}
	return nil, typeMismatch(ctx, "cannot coerce to int")
}

func coerceFloat(v *Value, schema Schema, ctx *Context, m mode) (*Coerced, *ParseError) {
	switch v.Kind {
	case KindNumber:
		return newCoerced(v.Number.Float64(), schema), nil
	case KindString:
		if m == modeTryCast {
			return nil, typeMismatch(ctx, "string is not a float")
		}
		if n, ok := normalizeNumericString(v.Str); ok {
			return newCoerced(n.Float64(), schema).flag(StringToFloat), nil
		}
		return nil, NewParseError(ReasonUnparseableNumber, ctx.scope).WithDetail(v.Str)
	case KindBool:
		if m == modeTryCast {
			return nil, typeMismatch(ctx, "bool is not a float")
		}
		f := 0.0
		if v.Bool {
			f = 1.0
		}
		return newCoerced(f, schema).flag(BoolToFloat), nil
	}
	return nil, typeMismatch(ctx, "cannot coerce to float")
}

// normalizeNumericString implements the shared String→Int/Float string
// normalisation of §4.8: strip whitespace/leading $/trailing %, drop group
// commas, accept an optional sign, and accept fractions/scientific
// notation (fractions only get a special divides-exactly check at the Int
// call site above).
func normalizeNumericString(s string) (*Number, bool) {
	return NewNumberFromString(normalizeNumberText(s))
}

func coerceBool(v *Value, schema Schema, ctx *Context, m mode) (*Coerced, *ParseError) {
	switch v.Kind {
	case KindBool:
		return newCoerced(v.Bool, schema), nil
	case KindString:
		if m == modeTryCast {
			return nil, typeMismatch(ctx, "string is not a bool")
		}
		s := strings.ToLower(strings.TrimSpace(v.Str))
		switch s {
		case "true", "yes", "y", "on":
			return newCoerced(true, schema).flag(StringToBool), nil
		case "false", "no", "n", "off":
			return newCoerced(false, schema).flag(StringToBool), nil
		}
		hasTrue := containsWholeWord(s, "true")
		hasFalse := containsWholeWord(s, "false")
		if hasTrue && !hasFalse {
			return newCoerced(true, schema).flag(StringToBool), nil
		}
		if hasFalse && !hasTrue {
			return newCoerced(false, schema).flag(StringToBool), nil
		}
		return nil, NewParseError(ReasonAmbiguousBoolean, ctx.scope).WithDetail(v.Str)
	case KindNumber:
		if m == modeTryCast {
			return nil, typeMismatch(ctx, "number is not a bool")
		}
		return newCoerced(v.Number.Sign() != 0, schema).flag(NumberToBool), nil
	}
	return nil, typeMismatch(ctx, "cannot coerce to bool")
}

func coerceNull(v *Value, schema Schema, ctx *Context, m mode) (*Coerced, *ParseError) {
	if v.Kind == KindNull {
		return newCoerced(nil, schema), nil
	}
	if m == modeCoerce && v.Kind == KindString && (v.Str == "null" || v.Str == "") {
		return newCoerced(nil, schema).flag(StringToNull), nil
	}
	return nil, typeMismatch(ctx, "cannot coerce to null")
}

// containsWholeWord reports whether word appears in s delimited by
// non-letter/digit boundaries, the "whole word" test §4.8's Bool
// text-embedded extraction and §4.9.1's SubstringMatch both rely on.
func containsWholeWord(s, word string) bool {
	idx := 0
	for {
		at := strings.Index(s[idx:], word)
		if at < 0 {
			return false
		}
		at += idx
		before := rune(' ')
		if at > 0 {
			before = rune(s[at-1])
		}
		after := rune(' ')
		if at+len(word) < len(s) {
			after = rune(s[at+len(word)])
		}
		if !isWordRune(before) && !isWordRune(after) {
			return true
		}
		idx = at + len(word)
		if idx >= len(s) {
			return false
		}
	}
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}
