package jsonish

// findBalancedSpans scans input for top-level {…} and […} spans using a
// bracket-depth counter that respects string literals and escapes (§4.4).
func findBalancedSpans(input string) []string {
	var spans []string
	n := len(input)
	i := 0
	for i < n {
		c := input[i]
		if c != '{' && c != '[' {
			i++
			continue
		}
		start := i
		depth := 0
		inString := false
		escaped := false
		j := i
		closed := false
		for ; j < n; j++ {
			c := input[j]
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
				if depth == 0 {
					closed = true
					j++
					goto done
				}
			}
		}
	done:
		if closed {
			spans = append(spans, input[start:j])
			i = j
		} else {
			// Unterminated: stop scanning for further top-level spans at
			// this position, but the fixer (E) may still recover it later
			// via its own closer-inference rule.
			break
		}
	}
	return spans
}

// extractMultiObject implements the Multi-object Extractor (D, §4.4). If
// zero or one span is found it defers to the rest of the cascade (returns
// ok=false); with 2+ spans it returns both the individual parses and their
// array aggregation as AnyOf candidates, letting the coercer's scoring
// decide which shape the target schema actually wants.
func extractMultiObject(input string, opts Options, depth int) (*Value, bool) {
	spans := findBalancedSpans(input)
	if len(spans) < 2 {
		return nil, false
	}
	individuals := make([]*Value, 0, len(spans))
	for _, s := range spans {
		v, err := parseRaw(s, opts, depth+1)
		if err != nil {
			continue
		}
		individuals = append(individuals, NewFixedJson(v, []Fix{GreppedForJSON}))
	}
	if len(individuals) < 2 {
		return nil, false
	}
	agg := NewArray(individuals, true)
	candidates := append(append([]*Value{}, individuals...), agg)
	return NewAnyOf(candidates, "multi-object"), true
}
