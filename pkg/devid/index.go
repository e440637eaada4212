// SPDX-License-Identifier: GPL-3.0-or-later

package devid

import (
	"cmp"
	"slices"
	"strings"
)

// Unspecified marks an index entry that carries no value.
// It sorts below every concrete value.
const Unspecified = -1

// Index is an ordered tuple of axis values used to evaluate a Pattern.
// The zero value is the zero-dimensional index "()".
//
// An Index is always kept in canonical form: negative entries are stored as
// Unspecified and trailing Unspecified entries are dropped. Reading past the
// end yields Unspecified, so (1) and (1, _) are the same index.
type Index struct {
	vals []int
}

// NewIndex returns the canonical index for vals.
func NewIndex(vals ...int) Index {
	out := make([]int, len(vals))
	for i, v := range vals {
		out[i] = max(v, Unspecified)
	}
	return Index{vals: trimUnspecified(out)}
}

func trimUnspecified(vals []int) []int {
	n := len(vals)
	for n > 0 && vals[n-1] == Unspecified {
		n--
	}
	if n == 0 {
		return nil
	}
	return vals[:n]
}

// Dim returns the number of entries after canonicalization.
func (ix Index) Dim() int { return len(ix.vals) }

// At returns the value at position i, or Unspecified if i is out of range.
func (ix Index) At(i int) int {
	if i < 0 || i >= len(ix.vals) {
		return Unspecified
	}
	return ix.vals[i]
}

// Set returns a copy of ix with position i set to v. Negative v clears the position.
func (ix Index) Set(i, v int) Index {
	if i < 0 {
		return ix
	}
	n := max(len(ix.vals), i+1)
	out := make([]int, n)
	copy(out, ix.vals)
	for j := len(ix.vals); j < n; j++ {
		out[j] = Unspecified
	}
	out[i] = max(v, Unspecified)
	return Index{vals: trimUnspecified(out)}
}

// Values returns a copy of the canonical entries.
func (ix Index) Values() []int {
	return slices.Clone(ix.vals)
}

// Compare orders indexes lexicographically, Unspecified below every concrete value.
// It returns -1, 0 or +1.
func (ix Index) Compare(other Index) int {
	n := max(len(ix.vals), len(other.vals))
	for i := 0; i < n; i++ {
		if c := cmp.Compare(ix.At(i), other.At(i)); c != 0 {
			return c
		}
	}
	return 0
}

func (ix Index) Less(other Index) bool  { return ix.Compare(other) < 0 }
func (ix Index) Equal(other Index) bool { return slices.Equal(ix.vals, other.vals) }

// String renders the index as "(v0, v1, ...)" with Unspecified shown as "_".
func (ix Index) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, v := range ix.vals {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(formatValue(v))
	}
	sb.WriteByte(')')
	return sb.String()
}

// ParseIndex parses the comma-separated form used on the command line, e.g. "1,_,3".
// Empty input is the zero-dimensional index.
func ParseIndex(s string) (Index, error) {
	s = strings.Trim(strings.TrimSpace(s), "()")
	if strings.TrimSpace(s) == "" {
		return Index{}, nil
	}
	parts := strings.Split(s, ",")
	vals := make([]int, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "_" {
			vals[i] = Unspecified
			continue
		}
		v, err := parseNumber(part)
		if err != nil {
			return Index{}, err
		}
		vals[i] = v
	}
	return NewIndex(vals...), nil
}
