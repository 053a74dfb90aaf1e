package jsonish

// partialValue implements §4.9.5's per-kind defaulting for a required
// field that is missing entirely, used only when Options.AllowPartial is
// true (the fixer having already closed any open collections LIFO via its
// own closer-inference rule, §4.5 rule 6 — by the time coercion runs, the
// Value tree is already the best-effort-closed shape; this function covers
// the remaining case of a field never seen at all):
//
//	Nullable  -> Null
//	Optional  -> absent (a top-level Optional field is handled earlier, in
//	             bindMissingField, before this is reached)
//	Array     -> []
//	Object    -> recursive partial
//	primitive -> absent (present=false; the object stays marked partial by
//	             simply having a shorter Keys() list than its schema)
func partialValue(schema Schema) (value any, present bool) {
	resolved := schema.Resolve()
	switch resolved.Kind() {
	case SchemaNullable:
		return nil, true
	case SchemaOptional:
		return nil, false
	case SchemaArray:
		return []any{}, true
	case SchemaObject:
		out := newOrderedFields()
		for _, f := range resolved.Fields() {
			if f.Optional {
				continue
			}
			if v, ok := partialValue(f.Schema); ok {
				out.set(f.Name, v)
			}
		}
		return out, true
	default:
		return nil, false
	}
}
