// SPDX-License-Identifier: GPL-3.0-or-later

package devid

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Mapping maps each value of From onto To. To either has the size of From
// (pointwise mapping) or holds a single value (broadcast).
type Mapping struct {
	from Range
	to   Range
}

// NewMapping creates a Mapping, checking the size invariant.
func NewMapping(from, to Range) (Mapping, error) {
	if from.Size() != to.Size() && to.Size() != 1 {
		return Mapping{}, fmt.Errorf("%w: %s has %d values, %s has %d",
			ErrMappingSize, from, from.Size(), to, to.Size())
	}
	return Mapping{from: from, to: to}, nil
}

// IdentityMapping maps every value of r onto itself.
func IdentityMapping(r Range) Mapping { return Mapping{from: r, to: r} }

func (m Mapping) From() Range { return m.from }
func (m Mapping) To() Range   { return m.to }

// Apply returns the value k maps to.
func (m Mapping) Apply(k int) (int, bool) {
	if !m.from.Contains(k) {
		return 0, false
	}
	if m.to.Size() == 1 {
		return m.to.left, true
	}
	return m.to.left + (k - m.from.left), true
}

// Table converts the mapping to an ordered key-value table.
func (m Mapping) Table() *Table {
	t := &Table{
		keys: make([]int, 0, m.from.Size()),
		vals: make([]int, 0, m.from.Size()),
	}
	for k := range m.from.Iterate() {
		v, _ := m.Apply(k)
		t.keys = append(t.keys, k)
		t.vals = append(t.vals, v)
	}
	return t
}

func (m Mapping) String() string {
	if m.from == m.to {
		return m.from.String()
	}
	return m.from.String() + ":" + m.to.String()
}

// Axis is the per-axis mapping of a compiled pattern. It is either
// UnboundAxis, for axes no bracket refers to, or a *Table.
type Axis interface {
	// Contains reports whether k is a valid value for the axis.
	Contains(k int) bool
	// Eval returns the value substituted for k.
	Eval(k int) (int, bool)
	// Size returns the number of keys of the axis.
	Size() int
	// KeyAt returns the i-th key in ascending order.
	KeyAt(i int) int

	axis()
}

// UnboundAxis is the mapping of a gap axis: it has the single key Unspecified
// and accepts any value, but never evaluates.
var UnboundAxis Axis = unboundAxis{}

type unboundAxis struct{}

func (unboundAxis) Contains(int) bool    { return true }
func (unboundAxis) Eval(int) (int, bool) { return 0, false }
func (unboundAxis) Size() int            { return 1 }
func (unboundAxis) KeyAt(int) int        { return Unspecified }
func (unboundAxis) axis()                {}
func (unboundAxis) String() string       { return "_" }

// Table is an ordered key-value table, keys ascending.
type Table struct {
	keys []int
	vals []int
}

func (t *Table) axis() {}

func (t *Table) find(k int) (int, bool) {
	return slices.BinarySearch(t.keys, k)
}

func (t *Table) Contains(k int) bool {
	_, ok := t.find(k)
	return ok
}

func (t *Table) Eval(k int) (int, bool) {
	i, ok := t.find(k)
	if !ok {
		return 0, false
	}
	return t.vals[i], true
}

func (t *Table) Size() int { return len(t.keys) }

func (t *Table) KeyAt(i int) int { return t.keys[i] }

// Keys returns a copy of the table keys.
func (t *Table) Keys() []int { return slices.Clone(t.keys) }

// insert places k->v keeping keys ascending. An existing key is overwritten.
func (t *Table) insert(k, v int) {
	i, ok := t.find(k)
	if ok {
		t.vals[i] = v
		return
	}
	t.keys = slices.Insert(t.keys, i, k)
	t.vals = slices.Insert(t.vals, i, v)
}

func (t *Table) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range t.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(k))
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(t.vals[i]))
	}
	sb.WriteByte('}')
	return sb.String()
}
