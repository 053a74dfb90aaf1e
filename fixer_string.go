package jsonish

import (
	"strconv"
	"strings"
	"unicode"
)

// parseQuotedString implements rule 1, the key rule enabling tolerance of
// `"he said "hi", and "bye""`: a quote only closes the string if it is not
// escaped AND the next non-whitespace character is a structural token
// appropriate for pos. Otherwise it is literal content.
func (f *fixer) parseQuotedString(quote rune, pos posState) *Value {
	f.i++ // consume opening quote
	var b strings.Builder
	for {
		if f.eof() {
			f.record(ClosedString)
			return NewString(b.String(), Incomplete)
		}
		c := f.advance()
		switch {
		case c == '\\' && !f.eof():
			b.WriteRune(f.decodeEscape())
		case c == quote:
			if f.closesAt(pos) {
				return NewString(b.String(), Complete)
			}
			b.WriteRune(c)
		default:
			b.WriteRune(c)
		}
	}
}

// decodeEscape consumes and decodes one backslash escape sequence, falling
// back to the literal escaped character for anything it doesn't recognise
// (tolerant of stray backslashes LLMs sometimes emit).
func (f *fixer) decodeEscape() rune {
	c := f.advance()
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	case '"', '\'', '\\', '/':
		return c
	case 'u':
		if f.i+4 <= len(f.s) {
			if n, err := strconv.ParseUint(string(f.s[f.i:f.i+4]), 16, 32); err == nil {
				f.i += 4
				return rune(n)
			}
		}
		return 'u'
	default:
		return c
	}
}

// parseTripleQuoted implements rule 2: everything up to the matching
// triple-quote is consumed verbatim, no escape processing.
func (f *fixer) parseTripleQuoted(quote rune) *Value {
	f.i += 3
	start := f.i
	for !f.eof() {
		if f.peek() == quote && f.peekAt(1) == quote && f.peekAt(2) == quote {
			content := string(f.s[start:f.i])
			f.i += 3
			f.record(TripleQuoteUnwrap)
			return NewString(content, Complete)
		}
		f.i++
	}
	f.record(TripleQuoteUnwrap)
	f.record(ClosedString)
	return NewString(string(f.s[start:]), Incomplete)
}

// parseTripleBacktick handles a stray ``` fence the Markdown extractor (C)
// didn't already consume (e.g. one nested inside a fixed-up object value).
// The optional language tag on the opening line is dropped; the body is
// captured as a plain string, matching §4.5's TripleBacktickString kind.
func (f *fixer) parseTripleBacktick() *Value {
	f.i += 3
	for !f.eof() && f.peek() != '\n' && !(f.peek() == '`' && f.peekAt(1) == '`' && f.peekAt(2) == '`') {
		f.i++ // skip optional language tag
	}
	if !f.eof() && f.peek() == '\n' {
		f.i++
	}
	start := f.i
	for !f.eof() {
		if f.peek() == '`' && f.peekAt(1) == '`' && f.peekAt(2) == '`' {
			content := string(f.s[start:f.i])
			f.i += 3
			f.record(TripleQuoteUnwrap)
			return NewString(strings.TrimSpace(content), Complete)
		}
		f.i++
	}
	f.record(TripleQuoteUnwrap)
	f.record(ClosedString)
	return NewString(strings.TrimSpace(string(f.s[start:])), Incomplete)
}

// parseUnquoted dispatches an unquoted token (rule 3) to the number
// grammar, a bare true/false/null literal, or a plain unquoted string, and
// implements rule 7 (embedded malformed JSON as a string value) when a
// scalar is immediately followed by a structural opener with no
// separator.
func (f *fixer) parseUnquoted(pos posState) *Value {
	start := f.i
	run := f.parseUnquotedRun(pos)

	// Rule 7: `"key": null{…}` — a scalar immediately (no whitespace)
	// followed by a structural opener is recovered as a string value
	// containing the whole malformed span, not a new sibling field.
	if !f.eof() && (f.peek() == '{' || f.peek() == '[') {
		f.skipBalancedForEmbed()
		whole := string(f.s[start:f.i])
		f.record(OtherRecovery)
		return NewString(whole, Complete)
	}

	if n, ok := NewNumberFromString(normalizeNumberText(run)); ok && looksNumeric(run) {
		return NewNumber(n, Complete)
	}
	switch strings.ToLower(run) {
	case "true":
		return NewBool(true, Complete)
	case "false":
		return NewBool(false, Complete)
	case "null":
		return NewNull(Complete)
	}
	return NewString(run, Complete)
}

// skipBalancedForEmbed consumes one balanced {...} or [...] span starting
// at the current position, used by rule 7's recovery.
func (f *fixer) skipBalancedForEmbed() {
	depth := 0
	inString := false
	escaped := false
	for !f.eof() {
		c := f.peek()
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			f.i++
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
		f.i++
		if depth == 0 {
			return
		}
	}
}

// parseUnquotedRun implements rule 3's identifier scanning: in
// inObjectKey, letters/digits/_/-/./spaces (folded to one) up to the next
// top-level ':'; in inObjectValue/inArray, up to the next top-level
// structural terminator at the same nesting level. Parenthesis depth is
// tracked so `async fn f(page: number): Promise<T>` doesn't terminate
// early on the inner ':'.
func (f *fixer) parseUnquotedRun(pos posState) string {
	var b strings.Builder
	parenDepth := 0
	lastWasSpace := false
	for !f.eof() {
		c := f.peek()
		switch c {
		case '(', '[', '{':
			parenDepth++
		case ')', ']', '}':
			if parenDepth > 0 {
				parenDepth--
			} else if pos == inArray && c == ']' {
				return strings.TrimSpace(b.String())
			} else if pos != inArray && c == '}' {
				return strings.TrimSpace(b.String())
			}
		case ':':
			if parenDepth == 0 && pos == inObjectKey {
				return strings.TrimSpace(b.String())
			}
		case ',':
			if parenDepth == 0 && (pos == inObjectValue || pos == inArray) {
				if f.looksLikeGroupingComma(b.String()) {
					break // fall through to the plain-append path below
				}
				return strings.TrimSpace(b.String())
			}
		case '\n':
			if pos == inObjectKey || pos == inObjectValue || pos == inArray {
				// A bare newline with nothing structural yet ends the
				// token too, so prose after the value isn't swallowed.
				return strings.TrimSpace(b.String())
			}
		}
		if unicode.IsSpace(c) {
			// A space after a token that already stands alone as a
			// complete scalar (a number, or true/false/null) only
			// separates prose ("Alice Smith" stays one token) unless
			// what follows is itself clearly a new element start — in
			// which case this is rule 5's missing-comma case applied
			// inline, e.g. the array "[1 2 3]".
			if parenDepth == 0 && (pos == inArray || pos == inObjectValue) && isCompleteScalarToken(b.String()) {
				if f.peekAtNewElementStart() {
					return strings.TrimSpace(b.String())
				}
			}
			if !lastWasSpace && b.Len() > 0 {
				b.WriteRune(' ')
			}
			lastWasSpace = true
			f.i++
			continue
		}
		lastWasSpace = false
		b.WriteRune(c)
		f.i++
	}
	return strings.TrimSpace(b.String())
}

// looksLikeGroupingComma implements the comma-grouped half of rule 8
// ("$3,200.50") for the case a top-level separator comma would otherwise
// end the run: true only when what's been scanned so far is a bare
// digit run (optional sign/currency prefix already folded into it by the
// caller) and the comma is followed by exactly three digits and then a
// boundary (end of input, another grouping comma, a decimal point, or a
// terminator appropriate to pos) — i.e. a genuine thousands group, not an
// adjacent array/object element that merely starts with digits.
func (f *fixer) looksLikeGroupingComma(soFar string) bool {
	soFar = strings.TrimSpace(soFar)
	soFar = strings.TrimPrefix(soFar, "+")
	soFar = strings.TrimPrefix(soFar, "-")
	soFar = strings.TrimPrefix(soFar, "$")
	if soFar == "" || !isAllDigits(soFar) {
		return false
	}
	for k := 1; k <= 3; k++ {
		if !isDigitRune(f.peekAt(k)) {
			return false
		}
	}
	if isDigitRune(f.peekAt(4)) {
		return false // more than three digits in the group; not a grouping comma
	}
	switch f.peekAt(4) {
	case 0, ',', '.', ' ', '\t', '\n', '}', ']':
		return true
	default:
		return false
	}
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !isDigitRune(r) {
			return false
		}
	}
	return true
}

func isDigitRune(r rune) bool {
	return r >= '0' && r <= '9'
}

// isCompleteScalarToken reports whether s, taken on its own, already parses
// as a whole number or true/false/null literal — used by parseUnquotedRun
// to decide whether a bare space is a token boundary (rule 5's missing-comma
// case, e.g. "[1 2 3]") rather than ordinary prose ("Alice Smith").
func isCompleteScalarToken(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	switch strings.ToLower(s) {
	case "true", "false", "null":
		return true
	}
	if _, ok := NewNumberFromString(normalizeNumberText(s)); ok && looksNumeric(s) {
		return true
	}
	return false
}

// peekAtNewElementStart looks past any run of spaces/tabs from the current
// position and reports whether what follows unambiguously starts a new
// element, mirroring looksLikeNewElementStart but without consuming input
// (parseUnquotedRun needs the answer before deciding to stop the run).
func (f *fixer) peekAtNewElementStart() bool {
	k := 0
	for {
		c := f.peekAt(k)
		if c == ' ' || c == '\t' {
			k++
			continue
		}
		if c == 0 {
			return false
		}
		if c == '{' || c == '[' || c == '"' || c == '\'' {
			return true
		}
		return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '-' || c == '$' || c == '#'
	}
}
