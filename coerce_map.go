package jsonish

// coerceMap implements §4.9.3. The key schema must resolve to String,
// Enum, or Literal(String); anything else is UnsupportedMapKey. A String
// Value is first tried as strict JSON (StringToMap) before falling back to
// failure; an empty string coerces to an empty map.
func coerceMap(v *Value, schema Schema, ctx *Context, m mode) (*Coerced, *ParseError) {
	keySchema := schema.MapKey()
	if !isStringlikeKey(keySchema) {
		return nil, NewParseError(ReasonUnsupportedMapKey, ctx.scope)
	}

	if v.Kind == KindString {
		if m == modeTryCast {
			return nil, typeMismatch(ctx, "string is not a map")
		}
		if v.Str == "" {
			return newCoerced(newOrderedFields(), schema).flag(StringToMap), nil
		}
		parsed, ok := tryStrictJSON(v.Str)
		if !ok || parsed.Kind != KindObject {
			return nil, typeMismatch(ctx, "string does not contain a JSON object")
		}
		inner, err := coerce(parsed, schema, ctx, m)
		if err != nil {
			return nil, err
		}
		inner.Flags.add(StringToMap)
		return inner, nil
	}

	if v.Kind != KindObject {
		return nil, typeMismatch(ctx, "not a map")
	}

	valueSchema := schema.Elem()
	out := newOrderedFields()
	fs := &FlagSet{}
	for _, e := range v.Entries {
		keyCoerced, kerr := coerce(NewString(e.Key, Complete), keySchema, ctx, m)
		if kerr != nil {
			if m == modeTryCast {
				return nil, kerr
			}
			fs.add(MapKeyParseError)
			continue
		}
		keyStr, _ := keyCoerced.Payload.(string)

		if e.Value.Kind == KindNull {
			if valueSchema != nil && valueSchema.Resolve().Kind() == SchemaOptional {
				out.set(keyStr, nil)
				continue
			}
			continue
		}

		valChild, perr := ctx.push(keyStr)
		if perr != nil {
			return nil, perr
		}
		valCoerced, verr := coerce(e.Value, valueSchema, valChild, m)
		if verr != nil {
			if m == modeTryCast {
				return nil, verr
			}
			fs.add(MapValueParseError)
			continue
		}
		out.set(keyStr, valCoerced.Payload)
		fs.addChild(valCoerced.Flags.total(ctx.options))
	}
	return &Coerced{Payload: out, Flags: fs, Target: schema}, nil
}

func isStringlikeKey(s Schema) bool {
	if s == nil {
		return true // absent PropertyNames constraint defaults to string keys
	}
	switch s.Resolve().Kind() {
	case SchemaString, SchemaEnum, SchemaLiteral:
		return true
	}
	return false
}
