package jsonish

import (
	"bytes"
	"encoding/json"
)

// OrderedFields is the coerced payload shape for Object and Map schemas
// (§3.3, §5 "Ordering": "Object entries preserve source order throughout").
// A plain Go map cannot make that guarantee on iteration, so the coercer
// hands back this small ordered view instead of a bare map[string]any.
type OrderedFields struct {
	Order  []string
	Values map[string]any
}

func newOrderedFields() *OrderedFields {
	return &OrderedFields{Values: map[string]any{}}
}

// set appends key in first-seen order and (re)assigns its value, so a
// later call for an already-seen key updates in place without disturbing
// field order — the behaviour §4.9.4's field-by-field walk needs.
func (o *OrderedFields) set(key string, value any) {
	if _, ok := o.Values[key]; !ok {
		o.Order = append(o.Order, key)
	}
	o.Values[key] = value
}

// Get returns the value stored under key, if any.
func (o *OrderedFields) Get(key string) (any, bool) {
	v, ok := o.Values[key]
	return v, ok
}

// Keys returns the field names in source order.
func (o *OrderedFields) Keys() []string {
	return o.Order
}

// MarshalJSON renders the fields as a JSON object in source order (§5
// "Ordering"), rather than the struct's own Order/Values fields, so a
// coerced payload round-trips through encoding/json as the object it
// represents instead of its internal bookkeeping shape.
func (o *OrderedFields) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.Order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(o.Values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// isComposite reports whether a coerced payload is structural (Object,
// Array, Map) rather than a primitive scalar — used by the union
// tie-break rule (§4.10: "prefer composite result over primitive").
func isComposite(payload any) bool {
	switch payload.(type) {
	case []any, *OrderedFields:
		return true
	}
	return false
}
