package jsonish

// SchemaKind discriminates the §3.4 schema capability set.
type SchemaKind int

const (
	SchemaString SchemaKind = iota
	SchemaInt
	SchemaFloat
	SchemaBool
	SchemaNull
	SchemaArray
	SchemaObject
	SchemaMap
	SchemaEnum
	SchemaLiteral
	SchemaUnion
	SchemaDiscriminatedUnion
	SchemaOptional
	SchemaNullable
	SchemaLazy
	SchemaRefined
)

// Field describes one Object field (§3.4): name, inner schema, whether it
// may be omitted, and its default if any.
type Field struct {
	Name     string
	Schema   Schema
	Optional bool
	Default  (func() (any, bool))
}

// Schema is the capability set the coercer is polymorphic over (§3.4). A
// concrete implementation is supplied by a host schema library; this
// module's own implementation (adapter.go) wraps schemahost.Schema.
type Schema interface {
	// Id returns a stable identity suitable for cycle-guard map keys (§3.2).
	Id() SchemaId

	// Kind discriminates the schema.
	Kind() SchemaKind

	// Elem is the element schema for Array, the value schema for Map, the
	// inner schema for Optional/Nullable/Lazy/Refined.
	Elem() Schema

	// MapKey is the key schema for Map (must itself resolve to
	// SchemaString/SchemaEnum/SchemaLiteral, §4.9.3).
	MapKey() Schema

	// Fields is the ordered field list for Object.
	Fields() []Field

	// Open reports whether an Object schema accepts unknown extra
	// properties (host-library openness flag, §3.4's Object(...,openness)).
	// The object coercer does not consult it: every unconsumed input key
	// is flagged ExtraKey whatever Open returns.
	Open() bool

	// Variants is the allowed string values for Enum, or the
	// tag-value→schema map for DiscriminatedUnion (Name is the tag
	// literal, Schema is the arm).
	Variants() []Field

	// Literal returns the single allowed scalar for SchemaLiteral.
	Literal() any

	// Arms is the branch list for Union/DiscriminatedUnion.
	Arms() []Schema

	// DiscriminatorField names the tag property for
	// SchemaDiscriminatedUnion.
	DiscriminatorField() string

	// Resolve forces a Lazy schema's thunk. For non-Lazy schemas it
	// returns itself.
	Resolve() Schema

	// Validate runs the host schema library's validator against a
	// candidate payload (§4.11); used for Refined schemas and, through
	// validated() in coercer.go, on the payload of every other node the
	// dispatcher coerces.
	Validate(payload any) error

	// Aliases returns library-provided name aliases for an Object field
	// (§4.9.4 step e), keyed by canonical field name.
	Aliases() map[string][]string
}
