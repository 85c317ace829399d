package tonal

import (
	"slices"
	"testing"

	"github.com/parkerchace/MusicTheory-sub004/algorithms/chroma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentageGrade(t *testing.T) {
	tests := []struct {
		percent int
		want    Grade
	}{
		{100, Perfect},
		{99, Excellent},
		{75, Excellent},
		{74, Good},
		{50, Good},
		{49, Fair},
		{0, Fair},
	}

	for _, tt := range tests {
		got := PercentageGrade(SearchResult{ScaleMatchPercent: tt.percent})
		assert.Equal(t, tt.want, got, "%d%%", tt.percent)
	}
}

func TestPercentageGradeMonotonic(t *testing.T) {
	prev := PercentageGrade(SearchResult{ScaleMatchPercent: 0})
	for p := 1; p <= 100; p++ {
		g := PercentageGrade(SearchResult{ScaleMatchPercent: p})
		assert.GreaterOrEqual(t, g, prev, "grade dropped at %d%%", p)
		prev = g
	}
}

func TestParseGrade(t *testing.T) {
	g, err := ParseGrade("excellent")
	require.NoError(t, err)
	assert.Equal(t, Excellent, g)

	_, err = ParseGrade("superb")
	assert.Error(t, err)
}

func TestRoleAwareGrade(t *testing.T) {
	model, scale := cMajor(t)
	results := NewChordSearcher(model).Search([]chroma.PitchClass{0}, scale)

	tests := []struct {
		name string
		want Grade
	}{
		{"C major", Perfect},
		{"C major 7", Perfect},
		{"C sus2", Excellent},
		{"A minor", Excellent},
		{"F major", Excellent},
		{"C dominant 7", Fair},
		{"G# augmented", Experimental},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := findResult(results, tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.want, RoleAwareGrade(r, 0, scale, model))
		})
	}
}

func TestGradingModesDiverge(t *testing.T) {
	model, scale := cMajor(t)
	results := NewChordSearcher(model).Search([]chroma.PitchClass{0}, scale)

	am, ok := findResult(results, "A minor")
	require.True(t, ok)
	assert.Equal(t, Perfect, PercentageGrade(am))
	assert.Equal(t, Excellent, RoleAwareGrade(am, 0, scale, model))
}

func TestFamilyOf(t *testing.T) {
	tests := map[string]Family{
		"Cmaj7":    FamilyMajor,
		"C6":       FamilyMajor,
		"Cm7":      FamilyMinor,
		"Cm(maj7)": FamilyMinor,
		"C7":       FamilyDominant,
		"C13":      FamilyDominant,
		"C7sus4":   FamilySuspended,
		"Csus2":    FamilySuspended,
		"C7b9":     FamilyAltered,
		"C7b5":     FamilyAltered,
		"C7#11":    FamilyAltered,
		"Caug7":    FamilyAugmented,
		"Cm7b5":    FamilyDiminished,
		"Cdim7":    FamilyDiminished,
	}

	for symbol, want := range tests {
		assert.Equal(t, want, FamilyOf(MustParseChord(symbol)), symbol)
	}
}

func TestFitBucket(t *testing.T) {
	assert.Equal(t, FitTight, FitBucket(0))
	assert.Equal(t, FitTight, FitBucket(1))
	assert.Equal(t, FitBalanced, FitBucket(2))
	assert.Equal(t, FitBalanced, FitBucket(3))
	assert.Equal(t, FitRich, FitBucket(4))
}

func TestCoreToneMatches(t *testing.T) {
	c9 := MustParseChord("C9")
	assert.Equal(t, 2, CoreToneMatches(c9, []chroma.PitchClass{0, 2, 4}))
	assert.Equal(t, 4, CoreToneMatches(c9, []chroma.PitchClass{0, 4, 7, 10}))
}

func TestGroupByFit(t *testing.T) {
	model, scale := cMajor(t)
	input := []chroma.PitchClass{0, 4}
	results := NewChordSearcher(model).Search(input, scale)

	groups, err := GroupResults(results, input, GroupByFit)
	require.NoError(t, err)
	require.NotEmpty(t, groups)

	order := map[string]int{FitTight: 0, FitBalanced: 1, FitRich: 2}
	total := 0
	for i, g := range groups {
		require.NotEmpty(t, g.Results)
		assert.Equal(t, len(g.Results), g.Count)
		total += g.Count
		if i > 0 {
			assert.Less(t, order[groups[i-1].Name], order[g.Name])
		}
		for _, r := range g.Results {
			assert.Equal(t, g.Name, FitBucket(len(r.Chord.PitchClasses)-len(input)))
		}
	}
	assert.Equal(t, len(results), total)

	tight := groups[0]
	assert.Equal(t, FitTight, tight.Name)
	assert.Equal(t, "C major", tight.Results[0].Chord.Name)
	assert.Equal(t, "A minor", tight.Results[1].Chord.Name)
}

func TestGroupByRoot(t *testing.T) {
	model, scale := cMajor(t)
	results := NewChordSearcher(model).Search([]chroma.PitchClass{0}, scale)

	groups, err := GroupResults(results, []chroma.PitchClass{0}, GroupByRoot)
	require.NoError(t, err)

	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
		assert.True(t, slices.IsSortedFunc(g.Results, func(a, b GradedResult) int {
			return int(b.Grade) - int(a.Grade)
		}), g.Name)
	}
	assert.True(t, slices.IsSorted(names))
	assert.Contains(t, names, "C")
	assert.Contains(t, names, "F#")
}

func TestGroupByFamily(t *testing.T) {
	model, scale := cMajor(t)
	results := NewChordSearcher(model).Search([]chroma.PitchClass{0, 4}, scale)

	groups, err := GroupResults(results, []chroma.PitchClass{0, 4}, GroupByFamily)
	require.NoError(t, err)

	last := -1
	for _, g := range groups {
		idx := slices.Index(familyOrder, Family(g.Name))
		require.GreaterOrEqual(t, idx, 0)
		assert.Greater(t, idx, last)
		last = idx

		for _, r := range g.Results {
			assert.Equal(t, Family(g.Name), FamilyOf(r.Chord.Spec))
		}
	}
}

func TestGroupResultsEmptyAndUnknown(t *testing.T) {
	for _, s := range []GroupStrategy{GroupByFit, GroupByRoot, GroupByFamily} {
		groups, err := GroupResults(nil, nil, s)
		require.NoError(t, err)
		assert.Empty(t, groups)
	}

	_, err := GroupResults(nil, nil, "colour")
	assert.Error(t, err)

	_, err = ParseGroupStrategy("colour")
	assert.Error(t, err)
}

func TestRoleOf(t *testing.T) {
	assert.Equal(t, "root", RoleOf(0, 0))
	assert.Equal(t, "m3", RoleOf(0, 9))
	assert.Equal(t, "b7", RoleOf(0, 2))
	assert.Equal(t, "5", RoleOf(7, 0))
	assert.Equal(t, "maj7", RoleOf(11, 0))
}

func TestProgressionLikelihood(t *testing.T) {
	_, scale := cMajor(t)

	assert.Equal(t, 100, ProgressionLikelihood(0, 0, scale))
	assert.Equal(t, 110, ProgressionLikelihood(7, 0, scale)) // V -> I plus cadence
	assert.Equal(t, 90, ProgressionLikelihood(2, 7, scale))  // ii -> V plus cadence
	assert.Equal(t, 70, ProgressionLikelihood(5, 0, scale))  // IV -> I plus cadence
	assert.Equal(t, 40, ProgressionLikelihood(9, 2, scale))  // vi -> ii
	assert.Equal(t, 0, ProgressionLikelihood(0, 6, scale))
	assert.Equal(t, 0, ProgressionLikelihood(1, 0, scale))
}

func TestGroupByRole(t *testing.T) {
	model, scale := cMajor(t)
	results := NewChordSearcher(model).Search([]chroma.PitchClass{7}, scale)

	groups := GroupByRole(results, 7, scale, model)
	require.GreaterOrEqual(t, len(groups), 2)

	assert.Equal(t, "5", groups[0].Role)
	assert.Equal(t, 110, groups[0].Score)
	assert.Equal(t, "C major", groups[0].Results[0].Chord.Name)

	assert.Equal(t, "root", groups[1].Role)
	assert.Equal(t, 100, groups[1].Score)
	assert.Equal(t, "G major", groups[1].Results[0].Chord.Name)
	assert.Equal(t, Perfect, groups[1].Results[0].Grade)

	for i := 1; i < len(groups); i++ {
		assert.GreaterOrEqual(t, groups[i-1].Score, groups[i].Score)
	}

	for _, g := range groups {
		for _, r := range g.Results {
			assert.Equal(t, g.Role, RoleOf(7, r.Chord.Spec.Root))
			assert.LessOrEqual(t, r.Score, g.Score)
		}
	}
}
