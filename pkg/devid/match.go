// SPDX-License-Identifier: GPL-3.0-or-later

package devid

import (
	"slices"
	"strconv"
	"strings"
)

// Match returns every index in the domain that evaluates to s, in Domain order.
// The result is empty if s is not produced by the pattern and may hold more
// than one index if the pattern is not injective.
func (p *Pattern) Match(s string) []Index {
	m := newMatchState(p, s, false)
	m.run()
	slices.SortFunc(m.found, Index.Compare)
	return m.found
}

// Matches reports whether s is produced by some index of the domain.
func (p *Pattern) Matches(s string) bool {
	m := newMatchState(p, s, true)
	m.run()
	return len(m.found) > 0
}

// IsInjective reports whether no two indexes of the domain evaluate to the same string.
func (p *Pattern) IsInjective() bool {
	seen := make(map[string]struct{})
	for v := range p.Values() {
		if _, ok := seen[v]; ok {
			return false
		}
		seen[v] = struct{}{}
	}
	return true
}

// DimDomain returns the ascending distinct values taken by axis a across the domain.
// It is empty if a is out of range or the domain is empty; a gap axis yields [Unspecified].
func (p *Pattern) DimDomain(a int) []int {
	if a < 0 || a >= len(p.axes) || p.DomainSize() == 0 {
		return nil
	}
	axis := p.axes[a]
	keys := make([]int, axis.Size())
	for i := range keys {
		keys[i] = axis.KeyAt(i)
	}
	return keys
}

// matchState walks the brackets left to right, binding each axis the first
// time one of its brackets is reached and checking the binding afterwards.
type matchState struct {
	p     *Pattern
	s     string
	first bool

	bound  []bool
	assign []int
	found  []Index
}

func newMatchState(p *Pattern, s string, first bool) *matchState {
	return &matchState{
		p:      p,
		s:      s,
		first:  first,
		bound:  make([]bool, len(p.axes)),
		assign: make([]int, len(p.axes)),
	}
}

func (m *matchState) run() {
	if !strings.HasPrefix(m.s, m.p.fragments[0]) {
		return
	}
	m.walk(0, len(m.p.fragments[0]))
}

func (m *matchState) done() bool { return m.first && len(m.found) > 0 }

func (m *matchState) walk(bracket, off int) {
	if m.done() {
		return
	}
	if bracket == len(m.p.bracketAxes) {
		if off == len(m.s) {
			m.record()
		}
		return
	}

	a := m.p.bracketAxes[bracket]
	axis := m.p.axes[a]

	if m.bound[a] {
		if end, ok := m.accept(bracket, off, axis, m.assign[a]); ok {
			m.walk(bracket+1, end)
		}
		return
	}

	for i := 0; i < axis.Size() && !m.done(); i++ {
		k := axis.KeyAt(i)
		end, ok := m.accept(bracket, off, axis, k)
		if !ok {
			continue
		}
		m.bound[a], m.assign[a] = true, k
		m.walk(bracket+1, end)
		m.bound[a] = false
	}
}

// accept checks that the value of key k followed by the next literal fragment
// is found at off, and returns the offset past them.
func (m *matchState) accept(bracket, off int, axis Axis, k int) (int, bool) {
	v, ok := axis.Eval(k)
	if !ok {
		return 0, false
	}
	rest := m.s[off:]
	val := strconv.Itoa(v)
	if !strings.HasPrefix(rest, val) {
		return 0, false
	}
	next := m.p.fragments[bracket+1]
	if !strings.HasPrefix(rest[len(val):], next) {
		return 0, false
	}
	return off + len(val) + len(next), true
}

func (m *matchState) record() {
	vals := make([]int, len(m.p.axes))
	for a := range vals {
		vals[a] = Unspecified
		if m.bound[a] {
			vals[a] = m.assign[a]
		}
	}
	m.found = append(m.found, NewIndex(vals...))
}
