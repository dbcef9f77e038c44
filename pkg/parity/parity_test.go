package parity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name                         string
		critical, major, minor, info int
		want                         int
	}{
		{name: "no discrepancies", want: 100},
		{name: "critical penalty", critical: 1, want: 85},
		{name: "major penalty", major: 1, want: 92},
		{name: "minor penalty", minor: 1, want: 97},
		{name: "info penalty", info: 1, want: 99},
		{name: "combined", critical: 1, major: 2, minor: 3, info: 1, want: 59},
		{name: "floors at zero", critical: 10, major: 10, minor: 10, info: 10, want: 0},
		{name: "exactly zero", critical: 6, major: 1, minor: 0, info: 2, want: 0},
		{name: "huge major count", major: math.MaxInt / 4, want: 0},
		{name: "huge info count", minor: 1, info: math.MaxInt, want: 0},
		{name: "every count huge", critical: math.MaxInt, major: math.MaxInt, minor: math.MaxInt, info: math.MaxInt, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.critical, tt.major, tt.minor, tt.info))
		})
	}
}

func TestScore_MatchesFormula(t *testing.T) {
	for c := 0; c < 4; c++ {
		for m := 0; m < 4; m++ {
			for n := 0; n < 6; n++ {
				for i := 0; i < 10; i += 3 {
					want := max(0, 100-15*c-8*m-3*n-i)
					got := Score(c, m, n, i)
					assert.Equal(t, want, got)
					assert.True(t, got >= 0 && got <= 100)
				}
			}
		}
	}
}

func TestTally(t *testing.T) {
	counts := Tally([]Severity{Critical, Major, Major, Minor, Minor, Minor, Info})

	assert.Equal(t, Counts{Critical: 1, Major: 2, Minor: 3, Info: 1}, counts)
	assert.Equal(t, 7, counts.Total())
	assert.Equal(t, 59, counts.Score())
}

func TestCounts_AddIgnoresUnknown(t *testing.T) {
	var c Counts
	c.Add(Severity(42))
	assert.Zero(t, c.Total())
	assert.Equal(t, 100, c.Score())
	assert.Zero(t, Severity(42).Weight())
}

func TestParseSeverity(t *testing.T) {
	for _, s := range []Severity{Info, Minor, Major, Critical} {
		got, err := ParseSeverity(" " + s.String() + " ")
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	got, err := ParseSeverity("CRITICAL")
	require.NoError(t, err)
	assert.Equal(t, Critical, got)

	_, err = ParseSeverity("blocker")
	assert.Error(t, err)
}
