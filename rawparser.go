package jsonish

import "strings"

// parseRaw is the Raw Parser orchestration of §4.6: strict JSON, then
// (optionally) Markdown extraction, multi-object extraction, and the
// fixing state machine, in that order, each contributing a candidate.
// Multiple candidates combine into AnyOf and the coercer picks among them
// (§4.10); depth is the recursion guard shared with the coercer's own
// Options.MaxDepth (§4.6: "fail if recursion exceeds a configured bound").
func parseRaw(input string, opts Options, depth int) (*Value, error) {
	if depth > opts.MaxDepth {
		return nil, NewParseError(ReasonDepthExceeded, nil)
	}

	var candidates []*Value

	if v, ok := tryStrictJSON(input); ok {
		candidates = append(candidates, v)
	}

	if opts.AllowMarkdownJSON {
		if v, ok := extractMarkdown(input, opts, depth); ok {
			candidates = append(candidates, v)
		}
	}

	if opts.FindAllJSONObjects {
		if v, ok := extractMultiObject(input, opts, depth); ok {
			candidates = append(candidates, v)
		}
	}

	if opts.AllowFixes {
		if v, fixes, ok := fixJSON(input); ok {
			if len(fixes) > 0 {
				v = NewFixedJson(v, fixes)
			}
			candidates = append(candidates, v)
		}
	}

	if len(candidates) == 0 {
		if opts.AllowAsString {
			return NewString(input, isDoneState(input)), nil
		}
		return nil, NewParseError(ReasonNoCandidate, nil).WithDetail("no strategy produced a value")
	}

	return NewAnyOf(candidates, "raw"), nil
}

// isDoneState is the §4.6 step 5 "completeness comes from is_done" check
// for the allow_as_string fallback: an input whose structural brackets all
// balance is treated as Complete even though it was never parsed as JSON,
// matching the fixer's own balance-counting style (multiobject.go).
func isDoneState(input string) CompletionState {
	depth := 0
	inString := false
	escaped := false
	for _, c := range input {
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
		}
	}
	if depth != 0 || inString {
		return Incomplete
	}
	if strings.TrimSpace(input) == "" {
		return Incomplete
	}
	return Complete
}

// ParseToValue runs the raw parser alone (§4.2–§4.6), without coercion.
// Exposed for callers (and tests) that want the intermediate Value tree,
// e.g. to inspect which fixes were applied.
func ParseToValue(input string, opts ...Option) (*Value, error) {
	o := buildOptions(opts...)
	return parseRaw(input, o, 0)
}
