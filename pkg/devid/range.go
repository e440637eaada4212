// SPDX-License-Identifier: GPL-3.0-or-later

package devid

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// MaxRangeSize bounds the number of values a single range may hold.
const MaxRangeSize = 1 << 20

// Range is an inclusive range of non-negative integers, left <= right.
type Range struct {
	left  int
	right int
}

// NewRange creates a Range. It fails if either bound is negative, left > right,
// or the range holds more than MaxRangeSize values.
func NewRange(left, right int) (Range, error) {
	if left < 0 || right < 0 {
		return Range{}, fmt.Errorf("%w: negative bound in %d-%d", ErrInvalidRange, left, right)
	}
	if left > right {
		return Range{}, fmt.Errorf("%w: left bound %d is greater than right bound %d", ErrInvalidRange, left, right)
	}
	if right-left >= MaxRangeSize {
		return Range{}, fmt.Errorf("%w: %d-%d holds more than %d values", ErrInvalidRange, left, right, MaxRangeSize)
	}
	return Range{left: left, right: right}, nil
}

// SingleRange returns the range holding only v.
func SingleRange(v int) Range { return Range{left: v, right: v} }

func (r Range) Left() int  { return r.left }
func (r Range) Right() int { return r.right }

// Size returns the number of values in the range.
func (r Range) Size() int { return r.right - r.left + 1 }

// Contains reports whether v is within the range.
func (r Range) Contains(v int) bool { return v >= r.left && v <= r.right }

// Iterate returns an iterator over the range values in ascending order.
func (r Range) Iterate() iter.Seq[int] {
	return func(yield func(int) bool) {
		for v := r.left; ; v++ {
			if !yield(v) || v == r.right {
				return
			}
		}
	}
}

// String returns "a" for a single value and "a-b" otherwise.
func (r Range) String() string {
	if r.left == r.right {
		return strconv.Itoa(r.left)
	}
	return fmt.Sprintf("%d-%d", r.left, r.right)
}

// ParseRange parses "a" or "a-b" where a and b are plain decimal numbers.
func ParseRange(s string) (Range, error) {
	parts := strings.Split(s, "-")

	switch len(parts) {
	case 1:
		v, err := parseNumber(parts[0])
		if err != nil {
			return Range{}, err
		}
		return SingleRange(v), nil
	case 2:
		left, err := parseNumber(parts[0])
		if err != nil {
			return Range{}, err
		}
		right, err := parseNumber(parts[1])
		if err != nil {
			return Range{}, err
		}
		return NewRange(left, right)
	default:
		return Range{}, fmt.Errorf("%w: %q is not of the form 'a' or 'a-b'", ErrInvalidRange, s)
	}
}

// parseNumber accepts only a non-empty run of ASCII digits that fits into an int.
func parseNumber(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidNumber)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: out of range", ErrInvalidNumber, s)
	}
	return v, nil
}
