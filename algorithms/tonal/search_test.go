package tonal

import (
	"testing"

	"github.com/parkerchace/MusicTheory-sub004/algorithms/chroma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cMajor(t *testing.T) (chroma.PitchModel, chroma.ScaleContext) {
	t.Helper()
	model := chroma.NewStandardModel()
	scale, err := chroma.NewScaleContext(model, 0, "major")
	require.NoError(t, err)
	return model, scale
}

func findResult(results []SearchResult, name string) (SearchResult, bool) {
	for _, r := range results {
		if r.Chord.Name == name {
			return r, true
		}
	}
	return SearchResult{}, false
}

func pitchClasses(t *testing.T, model chroma.PitchModel, names ...string) []chroma.PitchClass {
	t.Helper()
	out := make([]chroma.PitchClass, len(names))
	for i, n := range names {
		pc, err := model.PitchClassOf(n)
		require.NoError(t, err)
		out[i] = pc
	}
	return out
}

func TestSearchCAndE(t *testing.T) {
	model, scale := cMajor(t)
	searcher := NewChordSearcher(model)

	results := searcher.Search(pitchClasses(t, model, "C", "E"), scale)
	require.NotEmpty(t, results)

	c, ok := findResult(results, "C major")
	require.True(t, ok)
	assert.Equal(t, 100, c.ScaleMatchPercent)
	assert.Equal(t, Perfect, PercentageGrade(c))
	assert.Equal(t, []string{TagTonic}, c.FunctionTags)
	assert.Equal(t, "C", c.Chord.Symbol)

	am, ok := findResult(results, "A minor")
	require.True(t, ok)
	assert.Equal(t, 100, am.ScaleMatchPercent)
	assert.Equal(t, 5, am.Degree)

	// roots ascend, catalogue order inside a root
	assert.Equal(t, "C major", results[0].Chord.Name)
}

func TestSearchSupersetInvariant(t *testing.T) {
	model, scale := cMajor(t)
	searcher := NewChordSearcher(model)

	inputs := [][]chroma.PitchClass{
		{0},
		{0, 4},
		{2, 5, 9},
		{7, 11, 5},
		{1, 6},
		{0, 1, 2},
	}

	for _, input := range inputs {
		results := searcher.Search(input, scale)
		inputSet := chroma.NewPitchClassSet(input...)

		for _, r := range results {
			assert.True(t, r.Chord.Set().ContainsAll(inputSet), "%s misses input %v", r.Chord.Name, input)
		}

		// every catalogue chord holding the input is found
		want := 0
		for root := 0; root < 12; root++ {
			for _, ct := range Catalogue() {
				if chroma.NewPitchClassSet(PitchClassesOf(ct.Spec(chroma.PitchClass(root)))...).ContainsAll(inputSet) {
					want++
				}
			}
		}
		assert.Len(t, results, want, "input %v", input)
	}
}

func TestSearchEmptyInput(t *testing.T) {
	model, scale := cMajor(t)
	searcher := NewChordSearcher(model)

	assert.Empty(t, searcher.Search(nil, scale))
	assert.Empty(t, searcher.Search([]chroma.PitchClass{}, scale))
}

func TestSearchDeduplicatesInput(t *testing.T) {
	model, scale := cMajor(t)
	searcher := NewChordSearcher(model)

	a := searcher.Search([]chroma.PitchClass{0, 4}, scale)
	b := searcher.Search([]chroma.PitchClass{0, 4, 12, 16, 0}, scale)
	assert.Equal(t, a, b)
}

func TestSearchScaleMatchPercent(t *testing.T) {
	model, scale := cMajor(t)
	searcher := NewChordSearcher(model)

	results := searcher.Search([]chroma.PitchClass{4}, scale)

	e7, ok := findResult(results, "E dominant 7")
	require.True(t, ok)
	assert.Equal(t, 75, e7.ScaleMatchPercent)

	fm, ok := findResult(searcher.Search([]chroma.PitchClass{5}, scale), "F minor")
	require.True(t, ok)
	assert.Equal(t, 67, fm.ScaleMatchPercent)
}

func TestSearchFunctionTags(t *testing.T) {
	model, scale := cMajor(t)
	searcher := NewChordSearcher(model)

	tests := []struct {
		input []chroma.PitchClass
		name  string
		want  []string
	}{
		{[]chroma.PitchClass{0}, "F major", []string{TagPredominant}},
		{[]chroma.PitchClass{7}, "G dominant 7", []string{TagDominant}},
		{[]chroma.PitchClass{11}, "B diminished", []string{TagDominant}},
		{[]chroma.PitchClass{4}, "E minor", []string{TagTonic}},
		{[]chroma.PitchClass{6}, "D dominant 7", []string{TagPredominant, TagSecondaryDominant}},
		{[]chroma.PitchClass{5}, "F minor", []string{TagPredominant, TagBorrowed}},
		{[]chroma.PitchClass{8}, "G# major", []string{TagBorrowed}},
		{[]chroma.PitchClass{1}, "C# major", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := findResult(searcher.Search(tt.input, scale), tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.want, r.FunctionTags)
		})
	}
}

func TestSearchSpellsFromKeySignature(t *testing.T) {
	model := chroma.NewStandardModel()
	scale, err := chroma.NewScaleContext(model, 5, "major")
	require.NoError(t, err)

	results := NewChordSearcher(model).Search([]chroma.PitchClass{10}, scale)
	bb, ok := findResult(results, "Bb major")
	require.True(t, ok)
	assert.Equal(t, "Bb", bb.Chord.Symbol)
	assert.Equal(t, "Bb", bb.RootName)
	assert.Equal(t, []string{TagPredominant}, bb.FunctionTags)
}

func TestSearchMaxComplexity(t *testing.T) {
	model, scale := cMajor(t)
	params := DefaultSearchParams()
	params.MaxComplexity = Triad
	searcher := NewChordSearcherWithParams(model, params)

	results := searcher.Search([]chroma.PitchClass{0}, scale)
	require.NotEmpty(t, results)
	for _, r := range results {
		assert.Equal(t, Triad, r.Complexity, r.Chord.Name)
	}
}

func TestSearchProfiles(t *testing.T) {
	model, scale := cMajor(t)

	withProfiles := NewChordSearcher(model).Search([]chroma.PitchClass{0, 3, 6, 9}, scale)
	dim7, ok := findResult(withProfiles, "C diminished 7")
	require.True(t, ok)
	assert.Equal(t, "octatonic", dim7.Profile.Dominant)

	params := DefaultSearchParams()
	params.ComputeProfiles = false
	without := NewChordSearcherWithParams(model, params).Search([]chroma.PitchClass{0, 3, 6, 9}, scale)
	dim7, ok = findResult(without, "C diminished 7")
	require.True(t, ok)
	assert.Equal(t, chroma.SetProfile{}, dim7.Profile)
}

func TestSearchEightNoteScaleDegrees(t *testing.T) {
	model := chroma.NewStandardModel()
	scale, err := chroma.NewScaleContext(model, 0, "bebop_dominant")
	require.NoError(t, err)

	results := NewChordSearcher(model).Search([]chroma.PitchClass{11}, scale)
	b, ok := findResult(results, "B diminished")
	require.True(t, ok)
	assert.Equal(t, 7, b.Degree)
	assert.NotContains(t, b.FunctionTags, TagDominant)
	assert.NotContains(t, b.FunctionTags, TagTonic)
}
