package match

import (
	"golang.org/x/text/cases"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultThreshold is the similarity above which two vendor names are
// reported as a possible duplicate.
const DefaultThreshold = 0.9

type Suspicion struct {
	Types  Operation
	Name   string
	Origin string
	Score  float64
}

type Operation int8

const (
	// Unknown item represents the names are unrelated.
	Unknown Operation = 0
	// Casing item represents names that differ only in letter case.
	Casing Operation = 1
	// Confusion item represents names that are suspiciously close.
	Confusion Operation = 2
)

func (o Operation) String() string {
	switch o {
	case Casing:
		return "casing"
	case Confusion:
		return "confusion"
	}
	return "unknown"
}

// Fold maps s to its Unicode case-folded form.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Compare returns the share of characters a and b have in common, from 0
// to 1.
func Compare(a, b string) float64 {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	matches := 0
	for _, diff := range diffs {
		if diff.Type == diffmatchpatch.DiffEqual {
			matches += len(diff.Text)
		}
	}

	sums := len(a) + len(b)
	if sums > 0 {
		return 2.0 * float64(matches) / float64(sums)
	}

	return 1.0
}

// Check classifies name against origin.
func Check(name, origin string, threshold float64) Suspicion {
	t := Suspicion{
		Types:  Unknown,
		Name:   name,
		Origin: origin,
	}

	if name == origin {
		return t
	}

	a, b := Fold(name), Fold(origin)
	if a == b {
		t.Types = Casing
		t.Score = 1.0
		return t
	}

	t.Score = Compare(a, b)
	if t.Score >= threshold {
		t.Types = Confusion
	}

	return t
}

// Neighbours checks each name against the previous distinct one. names are
// expected to be sorted, so near duplicates sit next to each other.
func Neighbours(names []string, threshold float64) []Suspicion {
	found := []Suspicion{}

	prev := ""
	for _, name := range names {
		if name == prev {
			continue
		}
		if prev != "" {
			if s := Check(name, prev, threshold); s.Types != Unknown {
				found = append(found, s)
			}
		}
		prev = name
	}

	return found
}
