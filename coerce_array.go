package jsonish

import "strings"

// coerceArray implements §4.9.2. elem is the Array schema's element
// schema; a bare (non-array) Value is wrapped as a single-element array
// when it coerces successfully against elem (SingleToArray), and an Object
// Value whose shape matches an Object elem schema is lifted the same way.
func coerceArray(v *Value, schema Schema, ctx *Context, m mode) (*Coerced, *ParseError) {
	elem := schema.Elem()

	// §4.9.1's last paragraph: Array(Enum) against a comma-separated
	// string splits and coerces each piece, rather than falling through
	// to the generic single-to-array wrap (which would produce a
	// one-element array of the whole string).
	if v.Kind == KindString && elem != nil && elem.Resolve().Kind() == SchemaEnum && strings.Contains(v.Str, ",") {
		parts := strings.Split(v.Str, ",")
		items := make([]*Value, len(parts))
		for i, p := range parts {
			items[i] = NewString(strings.TrimSpace(p), Complete)
		}
		v = NewArray(items, true)
	}

	if v.Kind != KindArray {
		if m == modeTryCast {
			return nil, typeMismatch(ctx, "not an array")
		}
		child, err := coerceChild(v, elem, ctx, "[0]", m)
		if err != nil {
			return nil, err
		}
		out := &Coerced{Payload: []any{child.Payload}, Flags: &FlagSet{}, Target: schema}
		out.Flags.add(SingleToArray)
		out.Flags.addChild(child.Flags.total(ctx.options))
		return out, nil
	}

	payload := make([]any, 0, len(v.Items))
	out := &Coerced{Flags: &FlagSet{}, Target: schema}
	for i, item := range v.Items {
		child, err := coerceChild(item, elem, ctx, indexScope(i), m)
		if err != nil {
			if ctx.options.OnElementError == FailFast && m == modeCoerce {
				return nil, err
			}
			if m == modeTryCast {
				return nil, err
			}
			out.Flags.add(ArrayElementDropped)
			continue
		}
		payload = append(payload, child.Payload)
		out.Flags.addChild(child.Flags.total(ctx.options))
	}
	out.Payload = payload
	return out, nil
}

func indexScope(i int) string {
	return "[" + itoa(i) + "]"
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var b []byte
	for i > 0 {
		b = append([]byte{byte('0' + i%10)}, b...)
		i /= 10
	}
	if neg {
		b = append([]byte{'-'}, b...)
	}
	return string(b)
}

// coerceChild pushes ctx's scope breadcrumb one level and recurses,
// sharing visited sets but guarding recursion depth (§3.2, §4.6).
func coerceChild(v *Value, schema Schema, ctx *Context, segment string, m mode) (*Coerced, *ParseError) {
	child, perr := ctx.push(segment)
	if perr != nil {
		return nil, perr
	}
	return coerce(v, schema, child, m)
}
