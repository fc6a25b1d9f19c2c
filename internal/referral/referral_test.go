package referral

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected int
	}{
		{name: "identical", a: "AG7KQ", b: "AG7KQ", expected: 0},
		{name: "single deletion", a: "AG7KQ", b: "AG7K", expected: 1},
		{name: "single substitution", a: "AG7KQ", b: "TG7KQ", expected: 1},
		{name: "single insertion", a: "AG7KQ", b: "AAG7KQ", expected: 1},
		{name: "disjoint strings", a: "AG7KQ", b: "ZZZZZ", expected: 5},
		{name: "empty left", a: "", b: "VS9F2", expected: 5},
		{name: "empty right", a: "VS9F2", b: "", expected: 5},
		{name: "both empty", a: "", b: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Distance(tt.a, tt.b))
		})
	}
}

func TestDistanceSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"AG7KQ", "AG7K"},
		{"AG7KQ", "TG7KQ"},
		{"AG7KQ", "ZZZZZ"},
		{"VS9F2", "VM4ZP"},
		{"", "ESJ6R"},
	}

	for _, p := range pairs {
		assert.Equal(t, Distance(p[0], p[1]), Distance(p[1], p[0]), "distance(%q,%q)", p[0], p[1])
	}
}

func TestLookup(t *testing.T) {
	t.Run("exact match", func(t *testing.T) {
		entry, ok := Lookup("AG7KQ")
		assert.True(t, ok)
		assert.Equal(t, "Ansh Gupta", entry.Owner)
	})

	t.Run("case-insensitive and whitespace-tolerant", func(t *testing.T) {
		upper, okUpper := Lookup("AG7KQ")
		messy, okMessy := Lookup(" ag7kq ")
		assert.True(t, okUpper)
		assert.True(t, okMessy)
		assert.Equal(t, upper, messy)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, ok := Lookup("NOPES")
		assert.False(t, ok)
	})

	t.Run("blank input", func(t *testing.T) {
		_, ok := Lookup("   ")
		assert.False(t, ok)
	})
}

func TestSuggest(t *testing.T) {
	t.Run("blank input yields no suggestions", func(t *testing.T) {
		assert.Empty(t, Suggest("", DefaultSuggestionDistance))
		assert.Empty(t, Suggest("   ", DefaultSuggestionDistance))
	})

	t.Run("near miss is suggested", func(t *testing.T) {
		got := Suggest("AG7K", DefaultSuggestionDistance)
		assert.NotEmpty(t, got)
		assert.Equal(t, "AG7KQ", got[0].Code)
		assert.Equal(t, 1, got[0].Distance)
	})

	t.Run("disjoint input yields nothing", func(t *testing.T) {
		assert.Empty(t, Suggest("!!!!!!!!", DefaultSuggestionDistance))
	})

	t.Run("sorted ascending with declaration-order ties", func(t *testing.T) {
		// AS2LD and AS5WD both sit at distance 1 from "AS2WD"; AS2LD is
		// declared first in the table so it must come first.
		got := Suggest("AS2WD", DefaultSuggestionDistance)
		var at1 []string
		for _, s := range got {
			if s.Distance == 1 {
				at1 = append(at1, s.Code)
			}
		}
		assert.Equal(t, []string{"AS2LD", "AS5WD"}, at1)
		for i := 1; i < len(got); i++ {
			assert.LessOrEqual(t, got[i-1].Distance, got[i].Distance)
		}
	})

	t.Run("threshold is respected", func(t *testing.T) {
		for _, s := range Suggest("AG7KQ", 1) {
			assert.LessOrEqual(t, s.Distance, 1)
		}
	})
}
