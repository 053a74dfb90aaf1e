package jsonish

import "fmt"

// memSchema is a second, lightweight implementation of the Schema
// capability set (§3.4), built directly in Go rather than adapted from a
// JSON Schema document. It exists because JSON Schema has no first-class
// Optional/Nullable/Lazy wrapper kind (optionality is positional, via a
// parent's "required" list) while spec.md's capability set asks for them
// as schema nodes in their own right — e.g. a recursive type's self
// reference is naturally a thunk, not a compiled $ref graph. memSchema
// lets tests (and any caller building schemas programmatically) express
// those directly; hostSchema (adapter.go) remains the default for schemas
// that arrive as JSON Schema documents.
type memSchema struct {
	id       SchemaId
	kind     SchemaKind
	elem     Schema
	mapKey   Schema
	fields   []Field
	open     bool
	variants []Field
	literal  any
	arms     []Schema
	discTag  string
	thunk    func() Schema
	refine   func(any) error
	aliases  map[string][]string
}

var memSchemaCounter SchemaId

func nextMemSchemaId() SchemaId {
	memSchemaCounter++
	return memSchemaCounter | (1 << 62) // keep disjoint from pointer-derived hostSchema ids
}

func Prim(kind SchemaKind) Schema {
	return &memSchema{id: nextMemSchemaId(), kind: kind, open: true}
}

func ArrayOf(elem Schema) Schema {
	return &memSchema{id: nextMemSchemaId(), kind: SchemaArray, elem: elem, open: true}
}

func MapOf(key, val Schema) Schema {
	return &memSchema{id: nextMemSchemaId(), kind: SchemaMap, elem: val, mapKey: key, open: true}
}

func OptionalOf(inner Schema) Schema {
	return &memSchema{id: nextMemSchemaId(), kind: SchemaOptional, elem: inner, open: true}
}

func NullableOf(inner Schema) Schema {
	return &memSchema{id: nextMemSchemaId(), kind: SchemaNullable, elem: inner, open: true}
}

// LazyOf builds a recursive schema: thunk is called on demand and may
// itself return a schema that closes over the very value returned here,
// standing in for §3.4's Lazy(thunk→schema).
func LazyOf(thunk func() Schema) Schema {
	return &memSchema{id: nextMemSchemaId(), kind: SchemaLazy, thunk: thunk, open: true}
}

func RefinedOf(inner Schema, predicate func(any) error) Schema {
	return &memSchema{id: nextMemSchemaId(), kind: SchemaRefined, elem: inner, refine: predicate, open: true}
}

func ObjectOf(open bool, fields ...Field) Schema {
	return &memSchema{id: nextMemSchemaId(), kind: SchemaObject, fields: fields, open: open}
}

func EnumOf(variants ...string) Schema {
	fs := make([]Field, len(variants))
	for i, v := range variants {
		fs[i] = Field{Name: v}
	}
	return &memSchema{id: nextMemSchemaId(), kind: SchemaEnum, variants: fs, open: true}
}

func LiteralOf(v any) Schema {
	return &memSchema{id: nextMemSchemaId(), kind: SchemaLiteral, literal: v, open: true}
}

func UnionOf(arms ...Schema) Schema {
	return &memSchema{id: nextMemSchemaId(), kind: SchemaUnion, arms: arms, open: true}
}

// DiscriminatedUnionOf builds a tagged union keyed by tagField; each arm is
// paired with the literal tag value that selects it.
func DiscriminatedUnionOf(tagField string, variants ...Field) Schema {
	arms := make([]Schema, len(variants))
	for i, v := range variants {
		arms[i] = v.Schema
	}
	return &memSchema{id: nextMemSchemaId(), kind: SchemaDiscriminatedUnion, discTag: tagField, variants: variants, arms: arms, open: true}
}

func (m *memSchema) Id() SchemaId      { return m.id }
func (m *memSchema) Kind() SchemaKind  { return m.kind }
func (m *memSchema) Elem() Schema      { return m.elem }
func (m *memSchema) MapKey() Schema    { return m.mapKey }
func (m *memSchema) Fields() []Field   { return m.fields }
func (m *memSchema) Open() bool        { return m.open }
func (m *memSchema) Variants() []Field { return m.variants }
func (m *memSchema) Literal() any      { return m.literal }
func (m *memSchema) Arms() []Schema    { return m.arms }
func (m *memSchema) DiscriminatorField() string {
	return m.discTag
}

func (m *memSchema) Resolve() Schema {
	if m.kind == SchemaLazy {
		return m.thunk()
	}
	return m
}

func (m *memSchema) Validate(payload any) error {
	if m.refine == nil {
		return nil
	}
	if err := m.refine(payload); err != nil {
		return NewParseError(ReasonRefinementFailed, nil).WithDetail(fmt.Sprint(err))
	}
	return nil
}

func (m *memSchema) Aliases() map[string][]string { return m.aliases }
