// Package parity converts design/code discrepancy counts into a 0-100 score.
package parity

import (
	"fmt"
	"strings"
)

// Severity classifies a single design/code discrepancy.
type Severity int

const (
	Info Severity = iota
	Minor
	Major
	Critical
)

var severityNames = map[Severity]string{
	Info:     "info",
	Minor:    "minor",
	Major:    "major",
	Critical: "critical",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Weight is the number of points a discrepancy of this severity costs.
func (s Severity) Weight() int {
	switch s {
	case Critical:
		return 15
	case Major:
		return 8
	case Minor:
		return 3
	case Info:
		return 1
	default:
		return 0
	}
}

// ParseSeverity parses a severity name, case-insensitively.
func ParseSeverity(name string) (Severity, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range severityNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown severity %q", name)
}

// Score returns max(0, 100 - 15*critical - 8*major - 3*minor - info).
// Counts must not be negative.
func Score(critical, major, minor, info int) int {
	score := 100
	for _, c := range []struct {
		count    int
		severity Severity
	}{
		{critical, Critical},
		{major, Major},
		{minor, Minor},
		{info, Info},
	} {
		// Anything past 100/weight already floors the score; stop before the product overflows.
		if c.count > score/c.severity.Weight() {
			return 0
		}
		score -= c.count * c.severity.Weight()
	}
	return score
}

// Counts holds the number of discrepancies per severity.
type Counts struct {
	Critical int `json:"critical"`
	Major    int `json:"major"`
	Minor    int `json:"minor"`
	Info     int `json:"info"`
}

// Add records one discrepancy of severity s. Unknown severities are ignored.
func (c *Counts) Add(s Severity) {
	switch s {
	case Critical:
		c.Critical++
	case Major:
		c.Major++
	case Minor:
		c.Minor++
	case Info:
		c.Info++
	}
}

// Total is the number of recorded discrepancies.
func (c Counts) Total() int {
	return c.Critical + c.Major + c.Minor + c.Info
}

// Score is Score applied to c.
func (c Counts) Score() int {
	return Score(c.Critical, c.Major, c.Minor, c.Info)
}

// Tally counts the given severities.
func Tally(severities []Severity) Counts {
	var c Counts
	for _, s := range severities {
		c.Add(s)
	}
	return c
}
