package tonal

import (
	"fmt"
	"slices"
	"strings"

	"github.com/parkerchace/MusicTheory-sub004/algorithms/chroma"
)

// Grade ranks how well a result fits its context, Experimental lowest
type Grade int

const (
	Experimental Grade = iota
	Fair
	Good
	Excellent
	Perfect
)

func (g Grade) String() string {
	switch g {
	case Experimental:
		return "Experimental"
	case Fair:
		return "Fair"
	case Good:
		return "Good"
	case Excellent:
		return "Excellent"
	case Perfect:
		return "Perfect"
	default:
		return "Unknown"
	}
}

// ParseGrade reads a grade name case-insensitively
func ParseGrade(s string) (Grade, error) {
	for g := Experimental; g <= Perfect; g++ {
		if strings.EqualFold(strings.TrimSpace(s), g.String()) {
			return g, nil
		}
	}
	return Experimental, fmt.Errorf("unknown grade %q", s)
}

// GradingMode selects one of the two grading rules. They are kept separate because
// they can disagree for the same chord.
type GradingMode string

const (
	GradeByPercentage GradingMode = "percentage"
	GradeByRole       GradingMode = "role"
)

// PercentageGrade grades by scale match alone: 100 Perfect, 75+ Excellent, 50+ Good,
// anything lower Fair
func PercentageGrade(r SearchResult) Grade {
	switch p := r.ScaleMatchPercent; {
	case p >= 100:
		return Perfect
	case p >= 75:
		return Excellent
	case p >= 50:
		return Good
	default:
		return Fair
	}
}

// RoleAwareGrade grades a result found for a single focal note. The diatonic chord
// built on the focal note is Perfect; fully diatonic chords with a function tag are
// Excellent, other fully diatonic chords Good, tagged chromatic chords Fair.
func RoleAwareGrade(r SearchResult, focal chroma.PitchClass, scale chroma.ScaleContext, model chroma.PitchModel) Grade {
	full := r.ScaleMatchPercent >= 100

	if full && isCanonicalDiatonic(r, focal, scale, model) {
		return Perfect
	}

	switch {
	case full && r.HasTags():
		return Excellent
	case full:
		return Good
	case r.HasTags():
		return Fair
	default:
		return Experimental
	}
}

// isCanonicalDiatonic reports whether the chord's root is the focal note and its
// triad is the scale's own triad on that degree
func isCanonicalDiatonic(r SearchResult, focal chroma.PitchClass, scale chroma.ScaleContext, model chroma.PitchModel) bool {
	focal = chroma.Mod12(int(focal))
	if r.Chord.Spec.Root != focal || len(r.Chord.PitchClasses) < 3 {
		return false
	}

	deg, ok := scale.Degree(focal)
	if !ok {
		return false
	}

	dc, err := model.DiatonicChord(deg+1, scale.Tonic, scale.ScaleType)
	if err != nil {
		return false
	}
	triad, err := model.ChordNotes(dc.Root, dc.ChordType)
	if err != nil || len(triad) < 3 {
		return false
	}

	return slices.Equal(r.Chord.PitchClasses[:3], triad[:3])
}

// GradedResult pairs a result with a grade computed for one view. Grades are never
// stored on SearchResult.
type GradedResult struct {
	SearchResult
	Grade Grade `json:"grade"`
}

// GradeAll grades results by percentage
func GradeAll(results []SearchResult) []GradedResult {
	out := make([]GradedResult, len(results))
	for i, r := range results {
		out[i] = GradedResult{SearchResult: r, Grade: PercentageGrade(r)}
	}
	return out
}

// GradeAllForFocal grades results with the role-aware rule
func GradeAllForFocal(results []SearchResult, focal chroma.PitchClass, scale chroma.ScaleContext, model chroma.PitchModel) []GradedResult {
	out := make([]GradedResult, len(results))
	for i, r := range results {
		out[i] = GradedResult{SearchResult: r, Grade: RoleAwareGrade(r, focal, scale, model)}
	}
	return out
}
