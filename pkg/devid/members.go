// SPDX-License-Identifier: GPL-3.0-or-later

package devid

// Member is one concrete device name of a pattern, keyed by its axis 0 value.
type Member struct {
	Key  int
	Name string
}

// Members expands the pattern into device names keyed by the axis 0 value of
// their index, ordered by key. When several indexes share the axis 0 value the
// last one in Domain order wins. Patterns without brackets, or whose axis 0 is
// a gap axis, yield their members under the key Unspecified.
func (p *Pattern) Members() []Member {
	var members []Member
	for ix, name := range p.All() {
		key := ix.At(0)
		// Domain order is ascending on axis 0, so equal keys are adjacent.
		if n := len(members); n > 0 && members[n-1].Key == key {
			members[n-1].Name = name
			continue
		}
		members = append(members, Member{Key: key, Name: name})
	}
	return members
}

// MembersMap is Members as a map.
func (p *Pattern) MembersMap() map[int]string {
	out := make(map[int]string)
	for _, m := range p.Members() {
		out[m.Key] = m.Name
	}
	return out
}

// Expand parses raw and returns its members.
func Expand(raw string) ([]Member, error) {
	p, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return p.Members(), nil
}
