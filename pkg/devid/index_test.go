// SPDX-License-Identifier: GPL-3.0-or-later

package devid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIndex(t *testing.T) {
	tests := map[string]struct {
		vals       []int
		wantDim    int
		wantString string
	}{
		"empty":                   {vals: nil, wantDim: 0, wantString: "()"},
		"only unspecified":        {vals: []int{-1, -1}, wantDim: 0, wantString: "()"},
		"single":                  {vals: []int{6}, wantDim: 1, wantString: "(6)"},
		"trailing unspecified":    {vals: []int{1, -1, -5}, wantDim: 1, wantString: "(1)"},
		"leading unspecified":     {vals: []int{-1, 2}, wantDim: 2, wantString: "(_, 2)"},
		"negative normalized":     {vals: []int{-7, 0, -3, 4}, wantDim: 4, wantString: "(_, 0, _, 4)"},
		"two values":              {vals: []int{731, 18}, wantDim: 2, wantString: "(731, 18)"},
		"gap axes before a value": {vals: []int{Unspecified, Unspecified, Unspecified, 1}, wantDim: 4, wantString: "(_, _, _, 1)"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ix := NewIndex(test.vals...)

			assert.Equal(t, test.wantDim, ix.Dim())
			assert.Equal(t, test.wantString, ix.String())
		})
	}
}

func TestIndex_At(t *testing.T) {
	ix := NewIndex(3, -1, 5)

	assert.Equal(t, 3, ix.At(0))
	assert.Equal(t, Unspecified, ix.At(1))
	assert.Equal(t, 5, ix.At(2))
	assert.Equal(t, Unspecified, ix.At(3))
	assert.Equal(t, Unspecified, ix.At(100))
	assert.Equal(t, Unspecified, ix.At(-1))
}

func TestIndex_Set(t *testing.T) {
	ix := NewIndex(1)

	extended := ix.Set(3, 4)
	assert.Equal(t, "(1, _, _, 4)", extended.String())
	assert.Equal(t, "(1)", ix.String(), "Set must not modify the receiver")

	assert.Equal(t, "(1)", extended.Set(3, Unspecified).String())
	assert.Equal(t, "()", NewIndex(2).Set(0, -9).String())
	assert.Equal(t, "(8, _, _, 4)", extended.Set(0, 8).String())
	assert.True(t, ix.Equal(ix.Set(-1, 5)))
}

func TestIndex_Compare(t *testing.T) {
	tests := map[string]struct {
		a, b []int
		want int
	}{
		"equal":                           {a: []int{1, 2}, b: []int{1, 2}, want: 0},
		"trailing unspecified is ignored": {a: []int{1}, b: []int{1, -1}, want: 0},
		"empty equals empty":              {a: nil, b: []int{-1}, want: 0},
		"unspecified below zero":          {a: []int{-1, 9}, b: []int{0}, want: -1},
		"shorter below longer":            {a: []int{1}, b: []int{1, 0}, want: -1},
		"first position dominates":        {a: []int{2}, b: []int{1, 9}, want: 1},
		"second position decides":         {a: []int{1, 3}, b: []int{1, 2}, want: 1},
		"empty below anything":            {a: nil, b: []int{0}, want: -1},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			a, b := NewIndex(test.a...), NewIndex(test.b...)

			assert.Equal(t, test.want, a.Compare(b))
			assert.Equal(t, -test.want, b.Compare(a))
			assert.Equal(t, test.want < 0, a.Less(b))
			assert.Equal(t, test.want == 0, a.Equal(b))
		})
	}
}

func TestIndex_Values(t *testing.T) {
	ix := NewIndex(1, 2, -1)
	vals := ix.Values()
	assert.Equal(t, []int{1, 2}, vals)

	vals[0] = 100
	assert.Equal(t, 1, ix.At(0))
}

func TestParseIndex(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    string
		wantErr bool
	}{
		"empty":            {input: "", want: "()"},
		"parentheses only": {input: "()", want: "()"},
		"single":           {input: "6", want: "(6)"},
		"with gaps":        {input: "1,_,3", want: "(1, _, 3)"},
		"printed form":     {input: "(731, 18)", want: "(731, 18)"},
		"trailing gap":     {input: "4,_", want: "(4)"},
		"not a number":     {input: "a", wantErr: true},
		"negative":         {input: "-1", wantErr: true},
		"empty entry":      {input: "1,,2", wantErr: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ix, err := ParseIndex(test.input)

			if test.wantErr {
				assert.ErrorIs(t, err, ErrInvalidNumber)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.want, ix.String())
		})
	}
}
