package jsonish

// Flag names a non-trivial coercion step (§3.3, §4.10's penalty table).
// Flags travel with a Coerced value so union resolution can score it; the
// external caller never sees them.
type Flag int

const (
	UnionMatch Flag = iota
	OptionalFromNull
	ExactMatch
	OptionalWrapper
	NullableWrapper

	OptionalDefaultFromNoValue
	SingleToArray
	StringToInt
	StringToFloat
	StringToBool
	StringToNull
	NumberToBool
	FloatToInt
	BoolToInt
	BoolToFloat
	NumberToString
	BoolToString
	ExtraKey
	CaseInsensitiveMatch
	TrimmedMatch

	SubstringMatch
	AliasMatch
	MergedDuplicateKeys
	StrippedNonAlphaNumeric

	ImpliedKey
	StringToObject
	StringToMap
	MapKeyParseError
	MapValueParseError
	ArrayElementDropped

	DefaultFromNoValue
	DefaultButHadValue

	RefinementFailed
	// FormatMismatch is a SPEC_FULL.md addition (DOMAIN STACK) for a
	// String value that does not satisfy its schema's `format`. It has a
	// penalty entry below, but no coercer records it.
	FormatMismatch
)

// DefaultPenalties is the §4.10 penalty table, overridable via
// Options.Penalties (spec.md §9, Open Question 2).
var DefaultPenalties = map[Flag]int{
	UnionMatch:       0,
	OptionalFromNull: 0,
	ExactMatch:       0,
	OptionalWrapper:  0,
	NullableWrapper:  0,

	OptionalDefaultFromNoValue: 1,
	SingleToArray:              1,
	StringToInt:                1,
	StringToFloat:              1,
	StringToBool:               1,
	StringToNull:               1,
	NumberToBool:               1,
	FloatToInt:                 1,
	BoolToInt:                  1,
	BoolToFloat:                1,
	NumberToString:             1,
	BoolToString:               1,
	ExtraKey:                   1,
	CaseInsensitiveMatch:       1,
	TrimmedMatch:               1,

	SubstringMatch:          2,
	AliasMatch:              2,
	MergedDuplicateKeys:     2,
	StrippedNonAlphaNumeric: 2,

	ImpliedKey:       3,
	StringToObject:   3,
	StringToMap:      3,
	MapKeyParseError: 4,
	MapValueParseError: 4,
	ArrayElementDropped: 5,

	DefaultFromNoValue: 100,
	DefaultButHadValue: 110,

	RefinementFailed: 8,
	FormatMismatch:   1,
}

// FlagSet accumulates the flags recorded for one coercion attempt along
// with the total penalty of its children (for the composite-scoring
// amplifier below).
type FlagSet struct {
	flags       []Flag
	childTotals []int
}

func (fs *FlagSet) add(f Flag) {
	fs.flags = append(fs.flags, f)
}

func (fs *FlagSet) addChild(total int) {
	fs.childTotals = append(fs.childTotals, total)
}

func (fs *FlagSet) merge(other *FlagSet) {
	if other == nil {
		return
	}
	fs.flags = append(fs.flags, other.flags...)
	fs.childTotals = append(fs.childTotals, other.childTotals...)
}

// total computes §4.10's composite score: own flags' penalties plus 10x the
// sum of child totals, so a handful of structural wins dominate many
// leaf-level conversions.
func (fs *FlagSet) total(opts Options) int {
	if fs == nil {
		return 0
	}
	sum := 0
	for _, f := range fs.flags {
		sum += opts.penaltyFor(f)
	}
	for _, c := range fs.childTotals {
		sum += 10 * c
	}
	return sum
}

func (fs *FlagSet) has(f Flag) bool {
	for _, x := range fs.flags {
		if x == f {
			return true
		}
	}
	return false
}
