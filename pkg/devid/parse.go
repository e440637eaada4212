// SPDX-License-Identifier: GPL-3.0-or-later

package devid

import (
	"fmt"
	"strings"
)

// MaxAxis is the highest axis a bracket may be bound to explicitly.
const MaxAxis = 255

// Bracket is one parsed "[...]" segment of a pattern.
type Bracket struct {
	// Axis is the explicit axis binding, or Unspecified for an implicit one.
	Axis    int
	Mapping Mapping
}

// Explicit reports whether the bracket names its axis.
func (b Bracket) Explicit() bool { return b.Axis != Unspecified }

func (b Bracket) String() string {
	if b.Explicit() {
		return fmt.Sprintf("[%d|%s]", b.Axis, b.Mapping)
	}
	return "[" + b.Mapping.String() + "]"
}

// ParseBracket parses the contents of a bracket, without the enclosing "[" and "]":
//   - "a-b"          identity mapping, implicit axis
//   - "a-b:c-d"      mapping, implicit axis
//   - "n|a-b:c-d"    mapping bound to axis n
func ParseBracket(body string) (Bracket, error) {
	b := Bracket{Axis: Unspecified}

	parts := strings.Split(body, "|")
	switch len(parts) {
	case 1:
	case 2:
		axis, err := parseNumber(parts[0])
		if err != nil {
			return Bracket{}, fmt.Errorf("%w: %w", ErrInvalidAxis, err)
		}
		if axis > MaxAxis {
			return Bracket{}, fmt.Errorf("%w: axis %d is above %d", ErrInvalidAxis, axis, MaxAxis)
		}
		b.Axis = axis
		body = parts[1]
	default:
		return Bracket{}, fmt.Errorf("%w: more than one '|'", ErrInvalidAxis)
	}

	specs := strings.Split(body, ",")
	if len(specs) != 1 {
		return Bracket{}, ErrMultipleSubRanges
	}

	m, err := parseMapSpec(specs[0])
	if err != nil {
		return Bracket{}, err
	}
	b.Mapping = m

	return b, nil
}

func parseMapSpec(s string) (Mapping, error) {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 1:
		r, err := ParseRange(parts[0])
		if err != nil {
			return Mapping{}, err
		}
		return IdentityMapping(r), nil
	case 2:
		from, err := ParseRange(parts[0])
		if err != nil {
			return Mapping{}, err
		}
		to, err := ParseRange(parts[1])
		if err != nil {
			return Mapping{}, err
		}
		return NewMapping(from, to)
	default:
		return Mapping{}, fmt.Errorf("%w: more than one ':' in %q", ErrInvalidRange, s)
	}
}

// Parse compiles a device identifier pattern.
//
// A pattern is literal text with any number of bracketed ranges, e.g.
// "NVSwitch_[0|0-3]/Ports/NVLink_[1|0-17]". Each bracket is bound to an axis
// of the resulting Pattern: explicitly with the "n|" prefix, or implicitly to
// its own ordinal among all brackets of the pattern.
func Parse(raw string) (*Pattern, error) {
	fragments, bodies, err := splitSegments(raw)
	if err != nil {
		return nil, &GrammarError{Pattern: raw, Err: err}
	}

	brackets := make([]Bracket, len(bodies))
	for i, body := range bodies {
		b, err := ParseBracket(body)
		if err != nil {
			return nil, &GrammarError{Pattern: raw, Segment: body, Err: err}
		}
		if !b.Explicit() {
			b.Axis = i
		}
		brackets[i] = b
	}

	axes, err := resolveAxes(raw, brackets)
	if err != nil {
		return nil, err
	}

	p := &Pattern{
		raw:         raw,
		fragments:   fragments,
		bracketAxes: make([]int, len(brackets)),
		axes:        axes,
	}
	for i, b := range brackets {
		p.bracketAxes[i] = b.Axis
	}

	return p, nil
}

// MustParse is like Parse but panics if the pattern cannot be parsed.
func MustParse(raw string) *Pattern {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// splitSegments splits raw into N+1 literal fragments and N bracket bodies.
func splitSegments(raw string) (fragments, bodies []string, err error) {
	var (
		buf     strings.Builder
		inside  bool
		openPos int
	)

	for i := 0; i < len(raw); i++ {
		switch c := raw[i]; c {
		case '[':
			if inside {
				return nil, nil, fmt.Errorf("%w: nested '[' at offset %d", ErrUnbalancedBrackets, i)
			}
			fragments = append(fragments, buf.String())
			buf.Reset()
			inside, openPos = true, i
		case ']':
			if !inside {
				return nil, nil, fmt.Errorf("%w: unexpected ']' at offset %d", ErrUnbalancedBrackets, i)
			}
			bodies = append(bodies, buf.String())
			buf.Reset()
			inside = false
		default:
			buf.WriteByte(c)
		}
	}

	if inside {
		return nil, nil, fmt.Errorf("%w: '[' at offset %d is never closed", ErrUnbalancedBrackets, openPos)
	}
	fragments = append(fragments, buf.String())

	return fragments, bodies, nil
}
