package handoff

import "slices"

// Source is an ordered sequence of values, immutable once constructed. It is
// safe to share across goroutines without locking.
type Source struct {
	values []Value
}

func NewSource(values ...Value) *Source {
	return &Source{values: slices.Clone(values)}
}

// RandomSource builds a source of n values with a random mix of integers and
// floats.
func RandomSource(n int) *Source {
	return &Source{values: RandomValues(n)}
}

func (s *Source) Len() int {
	return len(s.values)
}

func (s *Source) At(i int) Value {
	return s.values[i]
}

// Values returns a copy of the underlying sequence.
func (s *Source) Values() []Value {
	return slices.Clone(s.values)
}

// Destination is an ordered, append-only sequence with a fixed capacity. It
// is written by exactly one consumer, so it carries no lock of its own;
// readers must wait for the transfer to finish before inspecting it.
type Destination struct {
	values   []Value
	capacity int
}

func NewDestination(capacity int) *Destination {
	return &Destination{
		values:   make([]Value, 0, max(0, capacity)),
		capacity: max(0, capacity),
	}
}

// Append stores a value at the next position. Appending beyond the
// configured capacity is a programming defect and reported as
// ErrDestinationFull.
func (d *Destination) Append(v Value) error {
	if len(d.values) == d.capacity {
		return ErrDestinationFull
	}
	d.values = append(d.values, v)
	return nil
}

func (d *Destination) Len() int {
	return len(d.values)
}

func (d *Destination) At(i int) Value {
	return d.values[i]
}

// Values returns a copy of the accumulated sequence.
func (d *Destination) Values() []Value {
	return slices.Clone(d.values)
}
