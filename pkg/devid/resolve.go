// SPDX-License-Identifier: GPL-3.0-or-later

package devid

import (
	"github.com/NVIDIA/nvidia-gpio-status-handler-sub000/logger"
)

var log = logger.With("component", "devid")

// resolveAxes merges the brackets sharing an axis into one mapping per axis.
//
// Keys are kept only if every bracket bound to the axis has them, so the axis
// domain is the intersection of the co-bound brackets' keys. A kept key must
// map to the same value in all of them.
func resolveAxes(raw string, brackets []Bracket) ([]Axis, error) {
	maxAxis := -1
	for _, b := range brackets {
		maxAxis = max(maxAxis, b.Axis)
	}

	axes := make([]Axis, maxAxis+1)
	for a := range axes {
		var tables []*Table
		for _, b := range brackets {
			if b.Axis == a {
				tables = append(tables, b.Mapping.Table())
			}
		}
		if len(tables) == 0 {
			axes[a] = UnboundAxis
			continue
		}

		merged, err := mergeTables(raw, a, tables)
		if err != nil {
			return nil, err
		}
		axes[a] = merged
	}

	return axes, nil
}

func mergeTables(raw string, axis int, tables []*Table) (*Table, error) {
	merged := &Table{}
	dropped := make(map[int]bool)

	for _, t := range tables {
		for i, k := range t.keys {
			v := t.vals[i]

			if placed, ok := merged.Eval(k); ok {
				if placed != v {
					return nil, &AxisConflictError{Pattern: raw, Axis: axis, Key: k, Value: placed, Conflicting: v}
				}
				continue
			}

			if inAll(tables, k) {
				merged.insert(k, v)
				continue
			}

			if !dropped[k] {
				dropped[k] = true
				log.Debugf("pattern '%s': axis %d: key %d is not bound by every bracket of the axis, dropped", raw, axis, k)
			}
		}
	}

	return merged, nil
}

func inAll(tables []*Table, k int) bool {
	for _, t := range tables {
		if !t.Contains(k) {
			return false
		}
	}
	return true
}
