package jsonish

import (
	"errors"
	"fmt"
	"strings"

	i18n "github.com/kaptinlin/go-i18n"
)

// Reason names the rule that failed a coercion (§6.4). Each is also an
// i18n message key, mirroring schemahost.EvaluationError's Code field.
type Reason string

const (
	ReasonNoMatchingUnionArm    Reason = "no_matching_union_arm"
	ReasonMissingRequiredField  Reason = "missing_required_field"
	ReasonUnsupportedMapKey     Reason = "unsupported_map_key"
	ReasonCircularReference     Reason = "circular_reference"
	ReasonAmbiguousBoolean      Reason = "ambiguous_boolean"
	ReasonUnparseableNumber     Reason = "unparseable_number"
	ReasonRefinementFailed      Reason = "refinement_failed"
	ReasonUnterminatedString    Reason = "unterminated_string"
	ReasonDepthExceeded         Reason = "depth_exceeded"
	ReasonTypeMismatch          Reason = "type_mismatch"
	ReasonNoCandidate           Reason = "no_candidate"
	ReasonAmbiguousEnum         Reason = "ambiguous_enum"
	ReasonUnsupportedSchemaKind Reason = "unsupported_schema_kind"
)

// Sentinel errors for context-free failures raised before a ParseError's
// scope/cause tree would otherwise apply, in the style of
// schemahost/errors.go's plain errors.New sentinels.
var (
	ErrEmptyInput      = errors.New("jsonish: empty input")
	ErrMaxDepthInvalid = errors.New("jsonish: max depth must be positive")
	ErrNilSchema       = errors.New("jsonish: schema is nil")
)

// ParseError is the public failure type (§6.4). On failure, Parse returns a
// single ParseError rather than a partial payload (§7).
type ParseError struct {
	Scope  []string
	Reason Reason
	Causes []*ParseError

	// Detail carries a human-readable elaboration (e.g. the conflicting
	// enum variants found in an AmbiguousEnum failure). Optional.
	Detail string
}

func NewParseError(reason Reason, scope []string) *ParseError {
	return &ParseError{Reason: reason, Scope: append([]string{}, scope...)}
}

func (e *ParseError) WithDetail(detail string) *ParseError {
	e.Detail = detail
	return e
}

func (e *ParseError) WithCause(cause *ParseError) *ParseError {
	if cause != nil {
		e.Causes = append(e.Causes, cause)
	}
	return e
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if len(e.Scope) > 0 {
		fmt.Fprintf(&b, "%s: ", strings.Join(e.Scope, "."))
	}
	b.WriteString(string(e.Reason))
	if e.Detail != "" {
		fmt.Fprintf(&b, " (%s)", e.Detail)
	}
	if len(e.Causes) > 0 {
		causes := make([]string, len(e.Causes))
		for i, c := range e.Causes {
			causes[i] = c.Error()
		}
		fmt.Fprintf(&b, " [%s]", strings.Join(causes, "; "))
	}
	return b.String()
}

// Unwrap exposes the cause tree to errors.Is/errors.As, matching the
// UnmarshalError/StructTagError Unwrap convention in schemahost.
func (e *ParseError) Unwrap() []error {
	out := make([]error, len(e.Causes))
	for i, c := range e.Causes {
		out[i] = c
	}
	return out
}

// Localize renders the error via github.com/kaptinlin/go-i18n, the same
// dependency schemahost.EvaluationError.Localize uses, keyed by Reason.
func (e *ParseError) Localize(localizer *i18n.Localizer) string {
	if localizer == nil {
		return e.Error()
	}
	vars := i18n.Vars(map[string]any{"scope": strings.Join(e.Scope, "."), "detail": e.Detail})
	if msg := localizer.Get(string(e.Reason), vars); msg != "" {
		return msg
	}
	return e.Error()
}
