package jsonish

import (
	"bytes"
	"errors"
	"io"

	"github.com/go-json-experiment/json/jsontext"
)

var (
	errStrictNumber = errors.New("jsonish: invalid number literal")
	errStrictToken  = errors.New("jsonish: unexpected token")
)

// tryStrictJSON is the Strict JSON Reader (B, §4.2): the fast path for
// well-formed input. It never panics or returns an exception on malformed
// input — it simply reports ok=false so the orchestrator (§4.6) falls
// through to the next strategy. Numbers are read at token level via
// jsontext so a literal like "12345678901234567890" survives as exact
// decimal text instead of rounding through float64 (§3.1: "n is an
// arbitrary-precision decimal").
func tryStrictJSON(input string) (v *Value, ok bool) {
	dec := jsontext.NewDecoder(bytes.NewReader([]byte(input)))
	val, err := decodeStrictValue(dec)
	if err != nil {
		return nil, false
	}
	// Reject trailing garbage: a strict reader accepts exactly one JSON
	// value and nothing else (extra top-level content is the multi-object
	// extractor's job, §4.4, not this fast path's).
	if _, err := dec.ReadToken(); err != io.EOF {
		return nil, false
	}
	return val, true
}

func decodeStrictValue(dec *jsontext.Decoder) (*Value, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return nil, err
	}
	switch tok.Kind() {
	case 'n':
		return NewNull(Complete), nil
	case 't', 'f':
		return NewBool(tok.Bool(), Complete), nil
	case '"':
		return NewString(tok.String(), Complete), nil
	case '0':
		n, ok := NewNumberFromString(tok.String())
		if !ok {
			return nil, errStrictNumber
		}
		return NewNumber(n, Complete), nil
	case '[':
		var items []*Value
		for {
			peek := dec.PeekKind()
			if peek == ']' {
				if _, err := dec.ReadToken(); err != nil {
					return nil, err
				}
				return NewArray(items, true), nil
			}
			item, err := decodeStrictValue(dec)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
	case '{':
		var entries []Entry
		for {
			peek := dec.PeekKind()
			if peek == '}' {
				if _, err := dec.ReadToken(); err != nil {
					return nil, err
				}
				return NewObject(entries, true), nil
			}
			keyTok, err := dec.ReadToken()
			if err != nil {
				return nil, err
			}
			val, err := decodeStrictValue(dec)
			if err != nil {
				return nil, err
			}
			entries = append(entries, Entry{Key: keyTok.String(), Value: val})
		}
	default:
		return nil, errStrictToken
	}
}
