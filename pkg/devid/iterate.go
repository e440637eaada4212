// SPDX-License-Identifier: GPL-3.0-or-later

package devid

import (
	"iter"
	"math"
)

// Domain returns an iterator over every index the pattern can be evaluated with.
//
// The domain is the cartesian product of the axis keys, enumerated as a
// mixed-radix counter with axis 0 most significant: the last axis varies
// fastest, so indexes come out in strictly ascending order. Gap axes contribute
// the single key Unspecified. A pattern without brackets has the single empty index.
//
// The iterator is lazy and can be ranged over any number of times, concurrently.
func (p *Pattern) Domain() iter.Seq[Index] {
	return func(yield func(Index) bool) {
		n := len(p.axes)
		for _, axis := range p.axes {
			if axis.Size() == 0 {
				return
			}
		}

		pos := make([]int, n)
		for {
			vals := make([]int, n)
			for a, axis := range p.axes {
				vals[a] = axis.KeyAt(pos[a])
			}
			if !yield(Index{vals: trimUnspecified(vals)}) {
				return
			}

			a := n - 1
			for ; a >= 0; a-- {
				if pos[a]++; pos[a] < p.axes[a].Size() {
					break
				}
				pos[a] = 0
			}
			if a < 0 {
				return
			}
		}
	}
}

// Values returns an iterator over the evaluated pattern, aligned element by element with Domain.
func (p *Pattern) Values() iter.Seq[string] {
	return func(yield func(string) bool) {
		for ix := range p.Domain() {
			if !yield(p.eval(ix)) {
				return
			}
		}
	}
}

// All returns an iterator over (index, value) pairs in Domain order.
func (p *Pattern) All() iter.Seq2[Index, string] {
	return func(yield func(Index, string) bool) {
		for ix := range p.Domain() {
			if !yield(ix, p.eval(ix)) {
				return
			}
		}
	}
}

// DomainSize returns the number of indexes in the domain, saturating at math.MaxInt.
func (p *Pattern) DomainSize() int {
	for _, axis := range p.axes {
		if axis.Size() == 0 {
			return 0
		}
	}
	size := 1
	for _, axis := range p.axes {
		n := axis.Size()
		if size > math.MaxInt/n {
			return math.MaxInt
		}
		size *= n
	}
	return size
}
