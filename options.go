package jsonish

// ElementErrorMode controls how the Array coercer (§4.9.2) treats an element
// that fails coercion.
type ElementErrorMode int

const (
	// KeepPartial drops the failing element and keeps the rest, recording
	// ArrayElementDropped. This is the default (§6.2).
	KeepPartial ElementErrorMode = iota
	// FailFast fails the whole array coercion on the first bad element.
	FailFast
)

// Options configures a single parse call (§6.2). The zero value is not
// valid; use DefaultOptions or the With* constructors.
type Options struct {
	AllowMarkdownJSON  bool
	FindAllJSONObjects bool
	AllowFixes         bool
	AllowAsString      bool
	AllowPartial       bool
	OnElementError     ElementErrorMode
	CoercePrimitives   bool
	IgnoreRefinements  bool
	MaxDepth           int

	// Penalties overrides the §4.10 penalty table. Left nil it falls back
	// to DefaultPenalties (spec.md §9, Open Question 2: "expose them as
	// part of Options if A/B-tuning becomes necessary").
	Penalties map[Flag]int

	// DiscriminatorHint is carried on Options but is not read by the
	// coercer or the adapter: a discriminator field name takes effect only
	// when passed to WrapWithHint (DESIGN.md, Open Question 4).
	DiscriminatorHint string
}

// DefaultOptions returns the §6.2 defaults.
func DefaultOptions() Options {
	return Options{
		AllowMarkdownJSON:  true,
		FindAllJSONObjects: true,
		AllowFixes:         true,
		AllowAsString:      true,
		AllowPartial:       false,
		OnElementError:     KeepPartial,
		CoercePrimitives:   true,
		IgnoreRefinements:  false,
		MaxDepth:           100,
	}
}

// Option mutates an Options value produced by DefaultOptions.
type Option func(*Options)

func WithAllowMarkdownJSON(v bool) Option  { return func(o *Options) { o.AllowMarkdownJSON = v } }
func WithFindAllJSONObjects(v bool) Option { return func(o *Options) { o.FindAllJSONObjects = v } }
func WithAllowFixes(v bool) Option         { return func(o *Options) { o.AllowFixes = v } }
func WithAllowAsString(v bool) Option      { return func(o *Options) { o.AllowAsString = v } }
func WithAllowPartial(v bool) Option       { return func(o *Options) { o.AllowPartial = v } }
func WithOnElementError(m ElementErrorMode) Option {
	return func(o *Options) { o.OnElementError = m }
}
func WithCoercePrimitives(v bool) Option  { return func(o *Options) { o.CoercePrimitives = v } }
func WithIgnoreRefinements(v bool) Option { return func(o *Options) { o.IgnoreRefinements = v } }
func WithMaxDepth(n int) Option           { return func(o *Options) { o.MaxDepth = n } }
func WithPenalties(p map[Flag]int) Option { return func(o *Options) { o.Penalties = p } }
func WithDiscriminatorHint(name string) Option {
	return func(o *Options) { o.DiscriminatorHint = name }
}

func buildOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// penaltyFor looks up a flag's penalty, falling back to DefaultPenalties.
func (o Options) penaltyFor(f Flag) int {
	if o.Penalties != nil {
		if p, ok := o.Penalties[f]; ok {
			return p
		}
	}
	return DefaultPenalties[f]
}
