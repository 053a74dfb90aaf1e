package jsonish

// Parse is the public entry point (§6.1): given an input string and a
// schema, it runs the raw parser (§4.2–§4.6) followed by the coercer
// (§4.7–§4.11) and returns the coerced, schema-typed payload. On failure
// it returns a *ParseError describing the failing rule and scope; no
// partial payload is ever returned alongside an error (§7).
func Parse(input string, schema Schema, opts ...Option) (any, error) {
	if schema == nil {
		return nil, ErrNilSchema
	}
	o := buildOptions(opts...)
	if o.MaxDepth <= 0 {
		return nil, ErrMaxDepthInvalid
	}

	v, err := parseRaw(input, o, 0)
	if err != nil {
		return nil, err
	}

	// Without AllowPartial, input whose every raw interpretation is
	// Incomplete (truncated, closed only by the fixer) is rejected rather
	// than coerced as if it were whole.
	if !o.AllowPartial && v.State == Incomplete {
		whole := false
		for _, c := range v.Candidates {
			if c.State == Complete {
				whole = true
			}
		}
		if !whole {
			return nil, NewParseError(ReasonUnterminatedString, nil).WithDetail("input is incomplete and allow_partial is off")
		}
	}

	ctx := newContext(o)
	coerced, perr := coerce(v, schema, ctx, modeCoerce)
	if perr != nil {
		return nil, perr
	}
	return coerced.Payload, nil
}
