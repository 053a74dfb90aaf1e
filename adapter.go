package jsonish

import (
	"reflect"
	"sort"

	host "github.com/kaptinlin/jsonish/schemahost"
)

// hostSchema adapts *schemahost.Schema (the §3.4 host schema library kept
// from the teacher repo) to the jsonish.Schema capability interface. This
// is the concrete, production-shaped implementation of §3.4; memSchema
// (memschema.go) is a second, lightweight implementation used where JSON
// Schema's field-positional Required list and $ref-based recursion are
// awkward to express directly (Optional/Nullable/Lazy wrappers, ad hoc
// discriminated unions in tests).
type hostSchema struct {
	s    *host.Schema
	hint string // discriminator field name given to WrapWithHint, used by Kind()/Variants()/DiscriminatorField()
}

// Wrap adapts a compiled schemahost.Schema into a jsonish.Schema.
func Wrap(s *host.Schema) Schema {
	return WrapWithHint(s, "")
}

// WrapWithHint is Wrap plus an explicit discriminator field name, for
// schemas where no property is shared as a Const across every oneOf arm
// (DESIGN.md, Open Question 4).
func WrapWithHint(s *host.Schema, discriminatorHint string) Schema {
	if s == nil {
		return nil
	}
	return &hostSchema{s: s, hint: discriminatorHint}
}

func (h *hostSchema) resolved() *host.Schema {
	s := h.s
	for s.Ref != "" && s.ResolvedRef != nil {
		s = s.ResolvedRef
	}
	return s
}

func (h *hostSchema) Id() SchemaId {
	// $ref cycles resolve to the same *Schema pointer in the host's
	// compiled graph, so pointer identity is exactly the stable identity
	// §3.2 asks for, including across recursive schemas.
	return SchemaId(reflect.ValueOf(h.resolved()).Pointer())
}

func hasType(s *host.Schema, t string) bool {
	for _, x := range s.Type {
		if x == t {
			return true
		}
	}
	return false
}

func (h *hostSchema) Kind() SchemaKind {
	s := h.resolved()

	if len(s.OneOf) > 0 || len(s.AnyOf) > 0 {
		if h.discriminatorField(s) != "" {
			return SchemaDiscriminatedUnion
		}
		return SchemaUnion
	}
	if s.Enum != nil {
		return SchemaEnum
	}
	if s.Const != nil && s.Const.IsSet {
		return SchemaLiteral
	}
	if hasType(s, "null") && len(s.Type) == 2 {
		return SchemaNullable
	}
	if hasType(s, "object") || (s.Properties != nil && len(*s.Properties) > 0) {
		if (s.Properties == nil || len(*s.Properties) == 0) && s.AdditionalProperties != nil &&
			!(s.AdditionalProperties.Boolean != nil && !*s.AdditionalProperties.Boolean) {
			return SchemaMap
		}
		return SchemaObject
	}
	if hasType(s, "array") || s.Items != nil || len(s.PrefixItems) > 0 {
		return SchemaArray
	}
	if hasType(s, "integer") {
		return SchemaInt
	}
	if hasType(s, "number") {
		return SchemaFloat
	}
	if hasType(s, "boolean") {
		return SchemaBool
	}
	if hasType(s, "null") {
		return SchemaNull
	}
	return SchemaString
}

// discriminatorField implements the SUPPLEMENTED FEATURES auto-detection
// from SPEC_FULL.md: the property name shared by every oneOf/anyOf arm as a
// Const literal, or the explicit hint given to WrapWithHint.
func (h *hostSchema) discriminatorField(s *host.Schema) string {
	if h.hint != "" {
		return h.hint
	}
	arms := s.OneOf
	if len(arms) == 0 {
		arms = s.AnyOf
	}
	if len(arms) == 0 {
		return ""
	}
	var shared []string
	for i, arm := range arms {
		if arm.Properties == nil {
			return ""
		}
		var names []string
		for name, sub := range *arm.Properties {
			if sub.Const != nil && sub.Const.IsSet {
				if _, isStr := sub.Const.Value.(string); isStr {
					names = append(names, name)
				}
			}
		}
		if i == 0 {
			shared = names
			continue
		}
		shared = intersect(shared, names)
	}
	if len(shared) == 0 {
		return ""
	}
	sort.Strings(shared)
	return shared[0]
}

func intersect(a, b []string) []string {
	set := map[string]bool{}
	for _, x := range b {
		set[x] = true
	}
	var out []string
	for _, x := range a {
		if set[x] {
			out = append(out, x)
		}
	}
	return out
}

func (h *hostSchema) Elem() Schema {
	s := h.resolved()
	switch h.Kind() {
	case SchemaArray:
		if s.Items != nil {
			return Wrap(s.Items)
		}
		return Wrap(host.Any())
	case SchemaMap:
		return Wrap(s.AdditionalProperties)
	case SchemaNullable:
		inner := *s
		var newType host.SchemaType
		for _, t := range s.Type {
			if t != "null" {
				newType = append(newType, t)
			}
		}
		inner.Type = newType
		return Wrap(&inner)
	}
	return nil
}

func (h *hostSchema) MapKey() Schema {
	s := h.resolved()
	if s.PropertyNames != nil {
		return Wrap(s.PropertyNames)
	}
	return Wrap(host.String())
}

func (h *hostSchema) Fields() []Field {
	s := h.resolved()
	if s.Properties == nil {
		return nil
	}
	required := map[string]bool{}
	for _, r := range s.Required {
		required[r] = true
	}
	names := make([]string, 0, len(*s.Properties))
	for name := range *s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	fields := make([]Field, 0, len(names))
	for _, name := range names {
		sub := (*s.Properties)[name]
		f := Field{
			Name:     name,
			Schema:   Wrap(sub),
			Optional: !required[name],
		}
		if sub.Default != nil {
			def := sub.Default
			f.Default = func() (any, bool) { return def, true }
		}
		fields = append(fields, f)
	}
	return fields
}

func (h *hostSchema) Open() bool {
	s := h.resolved()
	if s.AdditionalProperties == nil {
		return true
	}
	if s.AdditionalProperties.Boolean != nil {
		return *s.AdditionalProperties.Boolean
	}
	return true
}

func (h *hostSchema) Variants() []Field {
	s := h.resolved()
	switch h.Kind() {
	case SchemaEnum:
		out := make([]Field, 0, len(s.Enum))
		for _, v := range s.Enum {
			out = append(out, Field{Name: toStr(v)})
		}
		return out
	case SchemaDiscriminatedUnion:
		field := h.discriminatorField(s)
		arms := s.OneOf
		if len(arms) == 0 {
			arms = s.AnyOf
		}
		out := make([]Field, 0, len(arms))
		for _, arm := range arms {
			tag := ""
			if arm.Properties != nil {
				if sub, ok := (*arm.Properties)[field]; ok && sub.Const != nil {
					tag = toStr(sub.Const.Value)
				}
			}
			out = append(out, Field{Name: tag, Schema: Wrap(arm)})
		}
		return out
	}
	return nil
}

func toStr(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func (h *hostSchema) Literal() any {
	s := h.resolved()
	if s.Const != nil {
		return s.Const.Value
	}
	return nil
}

func (h *hostSchema) Arms() []Schema {
	s := h.resolved()
	arms := s.OneOf
	if len(arms) == 0 {
		arms = s.AnyOf
	}
	out := make([]Schema, 0, len(arms))
	for _, a := range arms {
		out = append(out, Wrap(a))
	}
	return out
}

func (h *hostSchema) DiscriminatorField() string {
	return h.discriminatorField(h.resolved())
}

func (h *hostSchema) Resolve() Schema {
	return WrapWithHint(h.resolved(), h.hint)
}

func (h *hostSchema) Validate(payload any) error {
	res := h.s.Validate(payload)
	if res == nil || res.IsValid() {
		return nil
	}
	list := res.ToList()
	detail := ""
	for kw, msg := range list.Errors {
		if detail != "" {
			detail += "; "
		}
		detail += kw + ": " + msg
	}
	return NewParseError(ReasonRefinementFailed, nil).WithDetail(detail)
}

func (h *hostSchema) Aliases() map[string][]string {
	return nil
}
