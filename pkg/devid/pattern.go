// SPDX-License-Identifier: GPL-3.0-or-later

package devid

import (
	"strconv"
	"strings"
)

// Pattern is a compiled device identifier pattern.
//
// A Pattern is immutable once built by Parse and safe for concurrent use.
type Pattern struct {
	raw         string
	fragments   []string // len(bracketAxes)+1 literal pieces
	bracketAxes []int    // axis of every bracket, in appearance order
	axes        []Axis
}

// Raw returns the pattern text the Pattern was compiled from.
func (p *Pattern) Raw() string { return p.raw }

func (p *Pattern) String() string { return p.raw }

// Dim returns the number of axes, i.e. one more than the highest axis any bracket is bound to.
func (p *Pattern) Dim() int { return len(p.axes) }

// Axis returns the mapping of axis a, or nil if a is out of range.
func (p *Pattern) Axis(a int) Axis {
	if a < 0 || a >= len(p.axes) {
		return nil
	}
	return p.axes[a]
}

// Brackets returns the number of bracket expressions in the pattern.
func (p *Pattern) Brackets() int { return len(p.bracketAxes) }

// InDomain reports whether ix can be evaluated.
// Entries past Dim are ignored; gap axes accept any value.
func (p *Pattern) InDomain(ix Index) bool {
	for a, axis := range p.axes {
		if !axis.Contains(ix.At(a)) {
			return false
		}
	}
	return true
}

// CheckDomain is like InDomain but returns a *DomainError listing every offending axis.
func (p *Pattern) CheckDomain(ix Index) error {
	var bad []int
	for a, axis := range p.axes {
		if !axis.Contains(ix.At(a)) {
			bad = append(bad, a)
		}
	}
	if len(bad) > 0 {
		return &DomainError{Pattern: p.raw, Index: ix, Axes: bad}
	}
	return nil
}

// Eval substitutes ix into the pattern.
func (p *Pattern) Eval(ix Index) (string, error) {
	if err := p.CheckDomain(ix); err != nil {
		return "", err
	}
	return p.eval(ix), nil
}

// MustEval is like Eval but panics if ix is out of the domain.
func (p *Pattern) MustEval(vals ...int) string {
	s, err := p.Eval(NewIndex(vals...))
	if err != nil {
		panic(err)
	}
	return s
}

// eval assumes ix is in the domain.
func (p *Pattern) eval(ix Index) string {
	if len(p.bracketAxes) == 0 {
		return p.fragments[0]
	}

	var sb strings.Builder
	sb.WriteString(p.fragments[0])
	for i, a := range p.bracketAxes {
		v, _ := p.axes[a].Eval(ix.At(a))
		sb.WriteString(strconv.Itoa(v))
		sb.WriteString(p.fragments[i+1])
	}
	return sb.String()
}
