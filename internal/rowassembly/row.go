package rowassembly

import (
	"fmt"
	"math"
	"sort"
)

// NamedRow is one record of field name -> value pairs. Names are unique under
// the row's matching options.
type NamedRow struct {
	line   int
	names  []string
	values map[string]float64
	opts   options
}

// NewNamedRow builds a row from a map. Names that collide under the matching
// options (for example "pH" and "PH" with WithCaseInsensitive) are rejected,
// as are NaN and infinite values.
func NewNamedRow(values map[string]float64, opts ...Option) (NamedRow, error) {
	o := buildOptions(opts)

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	row := NamedRow{
		names:  make([]string, 0, len(names)),
		values: make(map[string]float64, len(names)),
		opts:   o,
	}
	for _, name := range names {
		k := o.key(name)
		if k == "" {
			return NamedRow{}, &ParseError{Field: name, Err: ErrEmptyFieldName}
		}
		if _, dup := row.values[k]; dup {
			return NamedRow{}, &ParseError{Field: name, Err: ErrDuplicateField}
		}
		if v := values[name]; math.IsNaN(v) || math.IsInf(v, 0) {
			return NamedRow{}, &ParseError{Field: name, Err: fmt.Errorf("%w: %v", ErrNotNumeric, v)}
		}
		row.values[k] = values[name]
		row.names = append(row.names, name)
	}
	return row, nil
}

// Line returns the 1-based line the row's values were read from, or 0.
func (r NamedRow) Line() int { return r.line }

// Len returns the number of fields that carry a value.
func (r NamedRow) Len() int { return len(r.values) }

// Names returns the field names that carry a value, in source order.
func (r NamedRow) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Get looks up a field by name using the row's matching options.
func (r NamedRow) Get(name string) (float64, bool) {
	v, ok := r.values[r.opts.key(name)]
	return v, ok
}
