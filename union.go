package jsonish

// cyclePenalty is the "heavy penalty" applied to a Phase 2 arm that hits a
// cycle (§4.10: "A cycle hit in Phase 2 returns Null with a heavy penalty,
// allowing resolution to pick a less-cyclic alternative" — as opposed to
// Phase 1, where a cycle hit is a hard Fail).
const cyclePenalty = 1000

// selectBest implements §4.10's selection rule over a set of successful
// candidates already restricted to one phase: lowest total penalty wins;
// ties break by composite-over-primitive, then non-Null-over-Null, then
// declaration/arrival order (the loop only replaces best on a strict
// improvement, so an untouched tie naturally keeps the earlier one).
func selectBest(results []*Coerced, opts Options) *Coerced {
	var best *Coerced
	bestScore := 0
	for _, r := range results {
		if r == nil {
			continue
		}
		score := r.Flags.total(opts)
		if best == nil {
			best, bestScore = r, score
			continue
		}
		if score < bestScore {
			best, bestScore = r, score
			continue
		}
		if score > bestScore {
			continue
		}
		bestComposite := isComposite(best.Payload)
		rComposite := isComposite(r.Payload)
		if rComposite && !bestComposite {
			best, bestScore = r, score
			continue
		}
		if rComposite != bestComposite {
			continue
		}
		if best.Payload == nil && r.Payload != nil {
			best, bestScore = r, score
		}
	}
	return best
}

// coerceAnyOf fans a raw-parser AnyOf value out over a single schema
// (§4.7 step 3, §4.6's "let the coercer pick"): every candidate value is
// tried against the same schema under the caller's current mode, and the
// best-scoring success wins using the same tie-break rule union resolution
// uses (§4.10).
func coerceAnyOf(v *Value, schema Schema, ctx *Context, m mode) (*Coerced, *ParseError) {
	var results []*Coerced
	var causes []*ParseError
	for i, cand := range v.Candidates {
		child, perr := ctx.push(anyOfScope(i))
		if perr != nil {
			return nil, perr
		}
		c, err := coerce(cand, schema, child, m)
		if err != nil {
			causes = append(causes, err)
			continue
		}
		results = append(results, c)
	}
	best := selectBest(results, ctx.options)
	if best == nil {
		// Every candidate failed for the same reason (e.g. AmbiguousEnum):
		// report that reason; NoCandidate is kept for a mix of reasons.
		if len(causes) > 0 {
			same := true
			for _, c := range causes[1:] {
				if c.Reason != causes[0].Reason {
					same = false
					break
				}
			}
			if same {
				return nil, causes[0]
			}
		}
		perr := NewParseError(ReasonNoCandidate, ctx.scope).WithDetail("no candidate interpretation matched the schema")
		for _, c := range causes {
			perr = perr.WithCause(c)
		}
		return nil, perr
	}
	return best, nil
}

func anyOfScope(i int) string {
	return "<anyof:" + itoa(i) + ">"
}

// resolveUnion implements §4.10's two-phase Union resolution for a Union
// schema kind: Phase 1 (try-cast, strict) over all arms; if that yields no
// successes, Phase 2 (coerce, lax) over all arms. Phase 1 successes are
// preferred categorically over any Phase 2 result. m is the caller's own
// mode: when this Union is itself nested inside an outer Union's Phase 1
// (modeTryCast), only this inner Phase 1 runs — an outer strict pass must
// not let a nested union succeed via its own lax Phase 2.
func resolveUnion(v *Value, schema Schema, ctx *Context, m mode) (*Coerced, *ParseError) {
	arms := schema.Arms()

	var phase1 []*Coerced
	var phase1Causes []*ParseError
	for i, arm := range arms {
		release, cyclic := cycleGuard(arm, v, ctx, modeTryCast)
		if cyclic {
			continue // Phase 1 cycle hit: hard Fail for this arm, try the next.
		}
		child, perr := ctx.push(unionScope(i))
		if perr != nil {
			release()
			return nil, perr
		}
		c, err := coerce(v, arm, child, modeTryCast)
		release()
		if err != nil {
			phase1Causes = append(phase1Causes, err)
			continue
		}
		phase1 = append(phase1, c)
	}
	if len(phase1) > 0 {
		best := selectBest(phase1, ctx.options)
		best.Flags.add(UnionMatch)
		return best, nil
	}

	if m == modeTryCast {
		perr := NewParseError(ReasonNoMatchingUnionArm, ctx.scope)
		for _, c := range phase1Causes {
			perr = perr.WithCause(c)
		}
		return nil, perr
	}

	var phase2 []*Coerced
	var phase2Causes []*ParseError
	for i, arm := range arms {
		release, cyclic := cycleGuard(arm, v, ctx, modeCoerce)
		if cyclic {
			synthetic := newCoerced(nil, arm)
			synthetic.Flags.add(UnionMatch)
			synthetic.Flags.addChild(cyclePenalty)
			phase2 = append(phase2, synthetic)
			continue
		}
		child, perr := ctx.push(unionScope(i))
		if perr != nil {
			release()
			return nil, perr
		}
		child.inUnionAttempt = true
		c, err := coerce(v, arm, child, modeCoerce)
		release()
		if err != nil {
			phase2Causes = append(phase2Causes, err)
			continue
		}
		phase2 = append(phase2, c)
	}
	if len(phase2) > 0 {
		best := selectBest(phase2, ctx.options)
		best.Flags.add(UnionMatch)
		return best, nil
	}

	perr := NewParseError(ReasonNoMatchingUnionArm, ctx.scope)
	for _, c := range phase1Causes {
		perr = perr.WithCause(c)
	}
	for _, c := range phase2Causes {
		perr = perr.WithCause(c)
	}
	return nil, perr
}

func unionScope(i int) string {
	return "<arm:" + itoa(i) + ">"
}

// resolveDiscriminatedUnion implements §4.10's discriminator fast path: an
// Object Value carrying the tag field's literal value selects exactly one
// arm to try in Phase 1; success there returns immediately regardless of
// other arms' scores (Testable Property 8). Any other shape, or a tag that
// doesn't match a known variant, falls back to standard Union resolution. m
// is threaded through to resolveUnion exactly as in resolveUnion itself, so
// a DiscriminatedUnion nested in an outer Phase 1 doesn't fall back to its
// own lax Phase 2.
func resolveDiscriminatedUnion(v *Value, schema Schema, ctx *Context, m mode) (*Coerced, *ParseError) {
	tagField := schema.DiscriminatorField()
	if tagField != "" && v.Kind == KindObject {
		if tagValue, ok := findEntry(v.Entries, tagField); ok && tagValue.Kind == KindString {
			for _, variant := range schema.Variants() {
				if variant.Name == tagValue.Str {
					child, perr := ctx.push(tagValue.Str)
					if perr != nil {
						return nil, perr
					}
					c, err := coerce(v, variant.Schema, child, modeTryCast)
					if err == nil {
						c.Flags.add(UnionMatch)
						return c, nil
					}
					// Fast path's own arm failed try-cast; fall through to
					// standard resolution rather than forcing an error,
					// since the lax pipeline may still recover this arm.
					break
				}
			}
		}
	}
	return resolveUnion(v, schema, ctx, m)
}

func findEntry(entries []Entry, key string) (*Value, bool) {
	var found *Value
	for _, e := range entries {
		if e.Key == key {
			found = e.Value
		}
	}
	if found == nil {
		return nil, false
	}
	return found, true
}
