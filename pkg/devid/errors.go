// SPDX-License-Identifier: GPL-3.0-or-later

package devid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnbalancedBrackets is returned for nested, stray or unterminated brackets.
	ErrUnbalancedBrackets = errors.New("unbalanced brackets")

	// ErrInvalidNumber is returned when a range bound or an axis is not a plain decimal number.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrInvalidRange is returned for malformed range text or a range with left > right.
	ErrInvalidRange = errors.New("invalid range")

	// ErrMappingSize is returned when a mapping target is neither the size of its source nor a single value.
	ErrMappingSize = errors.New("mapping size mismatch")

	// ErrMultipleSubRanges is returned for comma-joined bracket bodies, which are not supported.
	ErrMultipleSubRanges = errors.New("multiple sub-ranges not supported")

	// ErrInvalidAxis is returned for a malformed explicit axis binding.
	ErrInvalidAxis = errors.New("invalid axis binding")
)

// GrammarError reports a pattern that could not be parsed.
// Err is one of the package sentinel errors, possibly wrapped with details.
type GrammarError struct {
	Pattern string
	Segment string
	Err     error
}

func (e *GrammarError) Error() string {
	if e.Segment == "" {
		return fmt.Sprintf("pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("pattern %q: segment %q: %v", e.Pattern, e.Segment, e.Err)
}

func (e *GrammarError) Unwrap() error { return e.Err }

// AxisConflictError reports two brackets bound to the same axis that map one key to different values.
type AxisConflictError struct {
	Pattern     string
	Axis        int
	Key         int
	Value       int
	Conflicting int
}

func (e *AxisConflictError) Error() string {
	return fmt.Sprintf("pattern %q: ambivalent mapping on axis %d: key %d maps to both %d and %d",
		e.Pattern, e.Axis, e.Key, e.Value, e.Conflicting)
}

// DomainError reports an index that is outside of the pattern domain.
// Axes lists every offending axis in ascending order.
type DomainError struct {
	Pattern string
	Index   Index
	Axes    []int
}

func (e *DomainError) Error() string {
	parts := make([]string, 0, len(e.Axes))
	for _, axis := range e.Axes {
		parts = append(parts, fmt.Sprintf("axis %d (value %s)", axis, formatValue(e.Index.At(axis))))
	}
	return fmt.Sprintf("pattern %q: index %s out of domain at %s", e.Pattern, e.Index, strings.Join(parts, ", "))
}

func formatValue(v int) string {
	if v == Unspecified {
		return "_"
	}
	return strconv.Itoa(v)
}
