package rowassembly

import "fmt"

// Slot is one named input a model requires, at a 1-based position.
type Slot struct {
	Position int
	Name     string
}

// Vector holds one value per slot, indexed 1..Len. Slots that received no
// input are missing; their Value is the sentinel chosen for the row.
type Vector struct {
	values  []float64
	present []bool
	missing float64
}

// Assemble places every row value whose name matches a slot at that slot's
// position. Unmatched row fields are ignored and unmatched slots stay missing.
//
// Slot positions must be exactly 1..len(slots), each used once. Anything else
// is a caller bug and panics with *ProgrammingError.
func Assemble(slots []Slot, row NamedRow) Vector {
	o := row.opts
	if row.values == nil {
		o = defaultOptions()
	}

	v := Vector{
		values:  make([]float64, len(slots)),
		present: make([]bool, len(slots)),
		missing: o.missing,
	}
	seen := make([]bool, len(slots))

	for _, s := range slots {
		if s.Position < 1 || s.Position > len(slots) {
			panic(&ProgrammingError{
				Op:  "assemble",
				Msg: fmt.Sprintf("slot %q has position %d outside 1..%d", s.Name, s.Position, len(slots)),
			})
		}
		i := s.Position - 1
		if seen[i] {
			panic(&ProgrammingError{
				Op:  "assemble",
				Msg: fmt.Sprintf("position %d is used by more than one slot", s.Position),
			})
		}
		seen[i] = true

		if val, ok := row.values[o.key(s.Name)]; ok {
			v.values[i] = val
			v.present[i] = true
		} else {
			v.values[i] = o.missing
		}
	}
	return v
}

// Unmatched returns the row's field names that match no slot, in source order.
func Unmatched(slots []Slot, row NamedRow) []string {
	o := row.opts
	wanted := make(map[string]struct{}, len(slots))
	for _, s := range slots {
		wanted[o.key(s.Name)] = struct{}{}
	}
	var out []string
	for _, name := range row.names {
		if _, ok := wanted[o.key(name)]; !ok {
			out = append(out, name)
		}
	}
	return out
}

// Len returns the number of slots.
func (v Vector) Len() int { return len(v.values) }

// At returns the value at a 1-based position and whether it was set.
func (v Vector) At(pos int) (float64, bool) {
	v.check(pos)
	return v.values[pos-1], v.present[pos-1]
}

// Value returns the value at pos, or the missing sentinel.
func (v Vector) Value(pos int) float64 {
	v.check(pos)
	return v.values[pos-1]
}

// IsMissing reports whether the slot at pos received no input.
func (v Vector) IsMissing(pos int) bool {
	v.check(pos)
	return !v.present[pos-1]
}

// Present returns how many slots received a value.
func (v Vector) Present() int {
	n := 0
	for _, ok := range v.present {
		if ok {
			n++
		}
	}
	return n
}

// Each calls fn for every slot that received a value, in position order.
func (v Vector) Each(fn func(pos int, value float64)) {
	for i, ok := range v.present {
		if ok {
			fn(i+1, v.values[i])
		}
	}
}

// Values returns a copy of the dense values, with missing slots set to the sentinel.
func (v Vector) Values() []float64 {
	out := make([]float64, len(v.values))
	copy(out, v.values)
	return out
}

func (v Vector) check(pos int) {
	if pos < 1 || pos > len(v.values) {
		panic(&ProgrammingError{
			Op:  "vector",
			Msg: fmt.Sprintf("position %d outside 1..%d", pos, len(v.values)),
		})
	}
}
