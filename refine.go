package jsonish

// coerceRefined implements the Refinement Validator (K, §4.11): coerce
// against the inner schema, then call the host schema library's Validate
// on the resulting payload. Failure handling depends on context:
//   - modeTryCast (Union Phase 1): reject this arm outright.
//   - modeCoerce inside a Union Phase 2 attempt: attach RefinementFailed
//     (penalty, not rejection) and keep the candidate.
//   - modeCoerce outside a union: error unless Options.IgnoreRefinements.
func coerceRefined(v *Value, schema Schema, ctx *Context, m mode) (*Coerced, *ParseError) {
	inner := schema.Elem()
	coerced, err := coerce(v, inner, ctx, m)
	if err != nil {
		return nil, err
	}

	verr := schema.Validate(coerced.Payload)
	if verr == nil {
		return coerced, nil
	}

	switch {
	case m == modeTryCast:
		return nil, NewParseError(ReasonRefinementFailed, ctx.scope).WithCause(asParseError(verr))
	case ctx.inUnionAttempt:
		coerced.Flags.add(RefinementFailed)
		return coerced, nil
	case ctx.options.IgnoreRefinements:
		return coerced, nil
	default:
		return nil, NewParseError(ReasonRefinementFailed, ctx.scope).WithCause(asParseError(verr))
	}
}

// asParseError wraps an arbitrary host-library validation error (which may
// already be a *ParseError, e.g. from hostSchema.Validate) as a cause.
func asParseError(err error) *ParseError {
	if pe, ok := err.(*ParseError); ok {
		return pe
	}
	return NewParseError(ReasonRefinementFailed, nil).WithDetail(err.Error())
}
