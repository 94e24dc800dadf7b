package jsonh

// Version selects the syntactic features available to the Tokenizer.
// Supports reports whether the receiver is at least as new as min, the
// same "supports(v)" predicate spec.md §3 describes.
type Version int

const (
	V1 Version = 1
	V2 Version = 2

	// Latest is the default version used when Options is zero-valued
	// through NewOptions.
	Latest = V2
)

// Supports reports whether v is at least as new as min.
func (v Version) Supports(min Version) bool { return v >= min }

// DefaultDecimals is the default precision (decimal places) used to
// expand fractional number exponents when Options.Decimals is zero.
const DefaultDecimals = 15

// DefaultMaxDepth is the default container-nesting guard.
const DefaultMaxDepth = 64

// Options configures the Tokenizer and ElementBuilder. The zero value is
// not directly usable; construct via NewOptions, which applies the
// defaults from spec.md §3.
type Options struct {
	// Version selects which syntactic features are recognized.
	Version Version
	// ParseSingleElement requires that, after the root element, only
	// comments and whitespace remain in the input.
	ParseSingleElement bool
	// MaxDepth bounds container nesting. NewOptions replaces zero or a
	// negative value with DefaultMaxDepth; the Tokenizer uses the field
	// as it is.
	MaxDepth int
	// IncompleteInputs makes EOF inside an open container implicitly
	// close it instead of raising ErrUnexpectedEOF.
	IncompleteInputs bool
	// BigNumbers delivers Number nodes as exact apd.Decimal values
	// instead of float64.
	BigNumbers bool
	// Decimals bounds the precision used to expand fractional number
	// exponents (see ParseNumber). Zero means DefaultDecimals.
	Decimals int
}

// Option mutates an Options value being built by NewOptions.
type Option func(*Options)

// WithVersion overrides the JSONH syntax version.
func WithVersion(v Version) Option { return func(o *Options) { o.Version = v } }

// WithParseSingleElement toggles single-element mode.
func WithParseSingleElement(b bool) Option {
	return func(o *Options) { o.ParseSingleElement = b }
}

// WithMaxDepth overrides the maximum container nesting depth.
func WithMaxDepth(n int) Option { return func(o *Options) { o.MaxDepth = n } }

// WithIncompleteInputs toggles tolerance of EOF inside an open container.
func WithIncompleteInputs(b bool) Option {
	return func(o *Options) { o.IncompleteInputs = b }
}

// WithBigNumbers toggles exact arbitrary-precision number decoding.
func WithBigNumbers(b bool) Option { return func(o *Options) { o.BigNumbers = b } }

// WithDecimals overrides the fractional-exponent expansion precision.
func WithDecimals(n int) Option { return func(o *Options) { o.Decimals = n } }

// NewOptions builds an Options value from the spec.md §3 defaults,
// applying opts in order.
func NewOptions(opts ...Option) Options {
	o := Options{
		Version:  Latest,
		MaxDepth: DefaultMaxDepth,
		Decimals: DefaultDecimals,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.Decimals <= 0 {
		o.Decimals = DefaultDecimals
	}
	return o
}
