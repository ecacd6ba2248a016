package rowassembly

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

type options struct {
	caseInsensitive bool
	trimSpace       bool
	missing         float64
	delimiter       rune
}

func defaultOptions() options {
	return options{
		missing:   math.NaN(),
		delimiter: ',',
	}
}

// Option configures name matching, the missing sentinel and the input delimiter.
type Option func(*options)

// WithCaseInsensitive matches field names to slot names after Unicode case
// folding and NFC normalization.
func WithCaseInsensitive() Option {
	return func(o *options) { o.caseInsensitive = true }
}

// WithTrimSpace strips leading and trailing whitespace from names before matching.
func WithTrimSpace() Option {
	return func(o *options) { o.trimSpace = true }
}

// WithMissing sets the value reported for slots that received no input.
// The default is NaN.
func WithMissing(v float64) Option {
	return func(o *options) { o.missing = v }
}

// WithDelimiter sets the column separator used by Parser. Default ','.
func WithDelimiter(r rune) Option {
	return func(o *options) {
		if r != 0 {
			o.delimiter = r
		}
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// key returns the lookup key for a field or slot name.
func (o options) key(name string) string {
	if o.trimSpace {
		name = strings.TrimSpace(name)
	}
	if o.caseInsensitive {
		// A Caser carries state, so one is made per call.
		name = cases.Fold().String(norm.NFC.String(name))
	}
	return name
}
