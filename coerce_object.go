package jsonish

import "strings"

// coerceObject implements §4.9.4's four cases.
func coerceObject(v *Value, schema Schema, ctx *Context, m mode) (*Coerced, *ParseError) {
	switch v.Kind {
	case KindObject:
		return coerceObjectFromObject(v, schema, ctx, m)
	case KindString:
		return coerceObjectFromString(v, schema, ctx, m)
	default:
		return coerceObjectImpliedKey(v, schema, ctx, m)
	}
}

// coerceObjectFromString is Case D: try a strict parse of the string and
// recurse, flagging StringToObject.
func coerceObjectFromString(v *Value, schema Schema, ctx *Context, m mode) (*Coerced, *ParseError) {
	if m == modeTryCast {
		return nil, typeMismatch(ctx, "string is not an object")
	}
	parsed, ok := tryStrictJSON(v.Str)
	if !ok || parsed.Kind != KindObject {
		return nil, typeMismatch(ctx, "string does not contain a JSON object")
	}
	inner, err := coerceObjectFromObject(parsed, schema, ctx, m)
	if err != nil {
		return nil, err
	}
	inner.Flags.add(StringToObject)
	return inner, nil
}

// coerceObjectImpliedKey is Case B: a non-object Value against a schema
// with exactly one required field wraps the whole value under that field.
func coerceObjectImpliedKey(v *Value, schema Schema, ctx *Context, m mode) (*Coerced, *ParseError) {
	if m == modeTryCast {
		return nil, typeMismatch(ctx, "not an object")
	}
	var only *Field
	for _, f := range schema.Fields() {
		if !f.Optional {
			if only != nil {
				return nil, typeMismatch(ctx, "not an object and schema has more than one required field")
			}
			cp := f
			only = &cp
		}
	}
	if only == nil {
		return nil, typeMismatch(ctx, "not an object")
	}
	child, err := coerceChild(v, only.Schema, ctx, only.Name, m)
	if err != nil {
		return nil, err
	}
	out := newOrderedFields()
	out.set(only.Name, child.Payload)
	result := &Coerced{Payload: out, Flags: &FlagSet{}, Target: schema}
	result.Flags.add(ImpliedKey)
	result.Flags.addChild(child.Flags.total(ctx.options))
	return result, nil
}

// fieldMatch is one accepted binding of an input key to a schema field
// produced by the §4.9.4 ladder.
type fieldMatch struct {
	field Field
	flag  Flag // zero value (UnionMatch) means "exact, no flag"
	hasFlag bool
}

// matchField runs the field-match ladder (§4.9.4 step 1) for one input
// key against the schema's fields, returning the bound field if any rung
// succeeds.
func matchField(key string, fields []Field, aliases map[string][]string) (fieldMatch, bool) {
	for _, f := range fields {
		if f.Name == key {
			return fieldMatch{field: f}, true
		}
	}
	trimmedKey := strings.TrimSpace(key)
	for _, f := range fields {
		if f.Name == trimmedKey {
			return fieldMatch{field: f, flag: TrimmedMatch, hasFlag: true}, true
		}
	}
	lowerKey := strings.ToLower(trimmedKey)
	for _, f := range fields {
		if strings.ToLower(f.Name) == lowerKey {
			return fieldMatch{field: f, flag: CaseInsensitiveMatch, hasFlag: true}, true
		}
	}
	normKey := normalizeFieldName(key)
	for _, f := range fields {
		if normalizeFieldName(f.Name) == normKey {
			return fieldMatch{field: f, flag: AliasMatch, hasFlag: true}, true
		}
	}
	if aliases != nil {
		for _, f := range fields {
			for _, alias := range aliases[f.Name] {
				if alias == key || strings.EqualFold(alias, key) {
					return fieldMatch{field: f, flag: AliasMatch, hasFlag: true}, true
				}
			}
		}
	}
	return fieldMatch{}, false
}

func normalizeFieldName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case '-', '_', ' ', '\t', '\n':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func coerceObjectFromObject(v *Value, schema Schema, ctx *Context, m mode) (*Coerced, *ParseError) {
	fields := schema.Fields()
	aliases := schema.Aliases()

	order, groups := groupByKey(v.Entries)
	fs := &FlagSet{}

	// Bind each distinct input key to at most one field, tracking which
	// keys were consumed so the rest can be flagged ExtraKey.
	boundKeyForField := map[string]string{} // field name -> input key chosen
	fieldForKey := map[string]fieldMatch{}
	consumed := map[string]bool{}
	for _, key := range order {
		match, ok := matchField(key, fields, aliases)
		if !ok {
			continue
		}
		fieldForKey[key] = match
		consumed[key] = true
		if prior, already := boundKeyForField[match.field.Name]; already {
			// Duplicate binding to the same field via two different keys
			// (e.g. exact + alias) — keep the key that appears first in
			// the source.
			_ = prior
			continue
		}
		boundKeyForField[match.field.Name] = key
	}

	out := newOrderedFields()
	done := map[string]bool{}

	// Walk keys in source order (§5 "Ordering: Object entries preserve
	// source order throughout"; Testable Property 6) rather than schema
	// declaration order, which for a host schema's alphabetically-sorted
	// Fields() would otherwise reorder the output away from the input.
	for _, key := range order {
		match, bound := fieldForKey[key]
		if !bound {
			continue // extra key; flagged below
		}
		field := match.field
		if done[field.Name] || boundKeyForField[field.Name] != key {
			// A later-spelled alias/case variant of an already-bound field —
			// its value is discarded, so flag it rather than silently
			// dropping it unaccounted for.
			fs.add(ExtraKey)
			continue
		}
		done[field.Name] = true

		group := groups[key]
		valueToCoerce := group[0]
		if len(group) > 1 {
			resolvedElem := field.Schema.Resolve()
			if resolvedElem.Kind() == SchemaArray {
				valueToCoerce = mergeDuplicateKeysAsArray(group, true)
				fs.add(MergedDuplicateKeys)
			} else {
				// Last wins; earlier occurrences are discardable extras
				// (DESIGN.md Open Question 1's chosen policy).
				valueToCoerce = group[len(group)-1]
				for range group[:len(group)-1] {
					fs.add(ExtraKey)
				}
			}
		}

		if match.hasFlag {
			fs.add(match.flag)
		}

		child, perr := ctx.push(field.Name)
		if perr != nil {
			return nil, perr
		}
		coercedChild, err := coerce(valueToCoerce, field.Schema, child, m)
		if err != nil {
			if field.Optional {
				out.set(field.Name, nil)
				fs.add(OptionalDefaultFromNoValue)
				continue
			}
			// §4.10's DefaultButHadValue: the input did supply a value for
			// this key but it didn't coerce, and the schema has a default —
			// falling back to the default is preferable to failing outright,
			// but costs a steeper penalty than DefaultFromNoValue since a
			// present-but-wrong value is more suspicious than an absent one.
			if field.Default != nil {
				if def, ok := field.Default(); ok {
					out.set(field.Name, def)
					fs.add(DefaultButHadValue)
					continue
				}
			}
			if ctx.options.AllowPartial {
				if pv, ok := partialValue(field.Schema); ok {
					out.set(field.Name, pv)
				}
				continue
			}
			return nil, err
		}
		out.set(field.Name, coercedChild.Payload)
		fs.addChild(coercedChild.Flags.total(ctx.options))
	}

	// Fields the source never mentioned have no source position to
	// inherit, so they're appended in schema declaration order.
	for _, field := range fields {
		if done[field.Name] {
			continue
		}
		if handled, err := bindMissingField(field, schema, ctx, m, fs, out, v, fields, consumed); err != nil {
			return nil, err
		} else if handled {
			continue
		}
		if ctx.options.AllowPartial {
			if pv, ok := partialValue(field.Schema); ok {
				out.set(field.Name, pv)
			}
			continue
		}
		return nil, NewParseError(ReasonMissingRequiredField, ctx.scope).WithDetail(field.Name)
	}

	for _, key := range order {
		if !consumed[key] {
			fs.add(ExtraKey)
		}
	}

	return &Coerced{Payload: out, Flags: fs, Target: schema}, nil
}

// bindMissingField implements §4.9.4 step 3's fallbacks for a field with
// no bound input key: Optional, schema default, structural lift from
// inline parent keys, or (returning handled=false) "truly missing".
func bindMissingField(field Field, schema Schema, ctx *Context, m mode, fs *FlagSet, out *OrderedFields, parent *Value, allFields []Field, consumed map[string]bool) (handled bool, err *ParseError) {
	resolved := field.Schema.Resolve()
	if resolved.Kind() == SchemaOptional && ctx.options.AllowPartial && parent.State == Incomplete {
		// §4.9.5: during partial coercion of an incomplete value, a missing
		// Optional field stays absent.
		return true, nil
	}
	if resolved.Kind() == SchemaOptional || resolved.Kind() == SchemaNullable {
		out.set(field.Name, nil)
		fs.add(OptionalDefaultFromNoValue)
		return true, nil
	}
	if field.Optional {
		out.set(field.Name, nil)
		fs.add(OptionalDefaultFromNoValue)
		return true, nil
	}
	if field.Default != nil {
		if def, ok := field.Default(); ok {
			out.set(field.Name, def)
			fs.add(DefaultFromNoValue)
			return true, nil
		}
	}
	if resolved.Kind() == SchemaObject {
		if lifted, ok := liftInlineFields(resolved, parent, consumed); ok {
			child, perr := ctx.push(field.Name)
			if perr != nil {
				return false, perr
			}
			c, cerr := coerce(lifted, field.Schema, child, m)
			if cerr == nil {
				out.set(field.Name, c.Payload)
				fs.addChild(c.Flags.total(ctx.options))
				return true, nil
			}
		}
	}
	return false, nil
}

// liftInlineFields builds a synthetic Object Value out of parent's
// not-yet-consumed entries that match inner's own fields, implementing the
// "structural lift" fallback of §4.9.4 step 3 for payloads that flatten a
// nested object's fields into the parent instead of nesting them under a
// key.
func liftInlineFields(inner Schema, parent *Value, consumed map[string]bool) (*Value, bool) {
	innerFields := inner.Fields()
	if len(innerFields) == 0 {
		return nil, false
	}
	var entries []Entry
	found := false
	for _, e := range parent.Entries {
		if consumed[e.Key] {
			continue
		}
		if _, ok := matchField(e.Key, innerFields, inner.Aliases()); ok {
			entries = append(entries, e)
			found = true
		}
	}
	if !found {
		return nil, false
	}
	return NewObject(entries, parent.State == Complete), true
}
