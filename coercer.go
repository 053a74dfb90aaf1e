package jsonish

// Coerced is the output of the coercer (§3.3): a schema-typed payload plus
// the flags recorded while producing it. Flags travel with the value so
// union resolution can score it (§4.10); only Payload crosses the public
// Parse boundary.
type Coerced struct {
	Payload any
	Flags   *FlagSet
	Target  Schema
}

func newCoerced(payload any, target Schema) *Coerced {
	return &Coerced{Payload: payload, Flags: &FlagSet{}, Target: target}
}

func (c *Coerced) flag(f Flag) *Coerced {
	c.Flags.add(f)
	return c
}

// mode distinguishes Union resolution's two phases (§4.10): modeCoerce is
// the full lax pipeline of §4.8/§4.9; modeTryCast is Phase 1's strict
// subset (exact kind match, no default insertion, no ImpliedKey, no
// SingleToArray, no StringToX conversions), used only while probing union
// arms before falling back to modeCoerce.
type mode int

const (
	modeCoerce mode = iota
	modeTryCast
)

// coerce is the Coercer Dispatcher (F, §4.7): the single entry point every
// sub-coercer and every recursive call goes through. It resolves wrappers,
// unwraps raw-parser envelopes, fans out over AnyOf, and otherwise
// dispatches by schema kind.
func coerce(v *Value, schema Schema, ctx *Context, m mode) (*Coerced, *ParseError) {
	if schema == nil {
		return nil, NewParseError(ReasonUnsupportedSchemaKind, ctx.scope).WithDetail("nil schema")
	}
	resolved := schema.Resolve()
	kind := resolved.Kind()

	// §4.7 step 1: Optional/Nullable unwrap before anything else, so a
	// Null input short-circuits regardless of the wrapped kind.
	switch kind {
	case SchemaOptional:
		if v == nil || v.Kind == KindNull {
			return newCoerced(nil, resolved).flag(OptionalFromNull), nil
		}
		inner, err := coerce(v, resolved.Elem(), ctx, m)
		if err != nil {
			if m == modeTryCast {
				return nil, err
			}
			return newCoerced(nil, resolved).flag(OptionalDefaultFromNoValue), nil
		}
		inner.Flags.add(OptionalWrapper)
		return inner, nil
	case SchemaNullable:
		if v == nil || v.Kind == KindNull {
			return newCoerced(nil, resolved), nil
		}
		inner, err := coerce(v, resolved.Elem(), ctx, m)
		if err != nil {
			return nil, err
		}
		inner.Flags.add(NullableWrapper)
		return inner, nil
	}

	if v == nil {
		return nil, NewParseError(ReasonTypeMismatch, ctx.scope).WithDetail("no value")
	}

	// §4.7 step 2: unwrap FixedJson/Markdown, carrying their completion
	// state along but not scoring the unwrap itself (the fixes that
	// produced them are raw-parser provenance, not coercion flags).
	switch v.Kind {
	case KindFixedJson:
		return coerce(v.Inner, schema, ctx, m)
	case KindMarkdown:
		return coerce(v.Inner, schema, ctx, m)
	}

	// §4.7 step 3: AnyOf fans out and the best-scoring candidate wins.
	// Every candidate is coerced under the caller's own mode; unlike union
	// resolution (§4.10) there is no separate Phase1-then-Phase2 pass here
	// — the value carries the ambiguity, not the schema.
	if v.Kind == KindAnyOf {
		return coerceAnyOf(v, schema, ctx, m)
	}

	// §4.7's cycle protection applies "before dispatching into Object,
	// Map, or Lazy". Lazy is already unwrapped by Resolve() above, so the
	// guard covers the Object and Map kinds it resolves to, keyed on the
	// resolved schema's Id.
	switch kind {
	case SchemaObject, SchemaMap:
		release, cyclic := cycleGuard(resolved, v, ctx, m)
		if cyclic {
			return nil, NewParseError(ReasonCircularReference, ctx.scope)
		}
		defer release()
	}

	var result *Coerced
	var derr *ParseError
	switch kind {
	case SchemaUnion:
		return resolveUnion(v, resolved, ctx, m)
	case SchemaDiscriminatedUnion:
		return resolveDiscriminatedUnion(v, resolved, ctx, m)
	case SchemaRefined:
		return coerceRefined(v, resolved, ctx, m)
	case SchemaString, SchemaInt, SchemaFloat, SchemaBool, SchemaNull:
		result, derr = coercePrimitive(v, resolved, ctx, m)
	case SchemaEnum, SchemaLiteral:
		result, derr = coerceEnumLiteral(v, resolved, ctx, m)
	case SchemaArray:
		result, derr = coerceArray(v, resolved, ctx, m)
	case SchemaMap:
		result, derr = coerceMap(v, resolved, ctx, m)
	case SchemaObject:
		result, derr = coerceObject(v, resolved, ctx, m)
	default:
		return nil, NewParseError(ReasonUnsupportedSchemaKind, ctx.scope)
	}
	if derr != nil {
		return nil, derr
	}
	return validated(result, resolved, ctx, m)
}

// validated applies the host schema library's own Validate to a
// successful leaf coercion's payload (§4.11): in practice, JSON Schema
// keywords beyond bare type (minLength, pattern, minimum, format, ...)
// live directly on the same schema node as the structural kind rather
// than behind a separate Refined wrapper, so this is where most real
// refinement checking happens; SchemaRefined (coerceRefined) covers the
// explicit-wrapper case memSchema's RefinedOf exposes for tests. Failure
// handling mirrors §4.11 exactly.
func validated(result *Coerced, schema Schema, ctx *Context, m mode) (*Coerced, *ParseError) {
	if result == nil {
		return nil, nil
	}
	verr := schema.Validate(result.Payload)
	if verr == nil {
		return result, nil
	}
	switch {
	case m == modeTryCast:
		return nil, NewParseError(ReasonRefinementFailed, ctx.scope).WithCause(asParseError(verr))
	case ctx.inUnionAttempt:
		result.Flags.add(RefinementFailed)
		return result, nil
	case ctx.options.IgnoreRefinements:
		return result, nil
	default:
		return nil, NewParseError(ReasonRefinementFailed, ctx.scope).WithCause(asParseError(verr))
	}
}

// cycleGuard implements §4.7's "before dispatching into Object, Map, or
// Lazy" cycle protection, keyed per §3.2 on (SchemaId, fingerprint(Value))
// rather than on serialised value equality (spec.md §9's "Cyclic schemas"
// note: false positives from serialize(value) equality are the bug this
// avoids). The returned release func must be deferred by the caller.
func cycleGuard(schema Schema, v *Value, ctx *Context, m mode) (release func(), cyclic bool) {
	if m == modeTryCast {
		already, unmark := ctx.markTry(schema.Id(), v)
		if already {
			return func() {}, true
		}
		return unmark, false
	}
	already, unmark := ctx.markCoerce(schema.Id(), v)
	if already {
		return func() {}, true
	}
	return unmark, false
}
