package tonal

import (
	"testing"

	"github.com/parkerchace/MusicTheory-sub004/algorithms/chroma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewContextToggle(t *testing.T) {
	v := NewViewContext()
	assert.True(t, v.IsOpen("Tight"))

	assert.False(t, v.ToggleGroup("Tight"))
	assert.False(t, v.IsOpen("Tight"))

	assert.True(t, v.ToggleGroup("Tight"))
	assert.True(t, v.IsOpen("Tight"))

	var zero ViewContext
	assert.False(t, zero.ToggleGroup("Rich"))
}

func TestApplyView(t *testing.T) {
	model, scale := cMajor(t)
	input := []chroma.PitchClass{0, 4}
	groups, err := GroupResults(NewChordSearcher(model).Search(input, scale), input, GroupByFit)
	require.NoError(t, err)

	t.Run("nil view passes through", func(t *testing.T) {
		assert.Equal(t, groups, ApplyView(groups, nil))
	})

	t.Run("grade filter", func(t *testing.T) {
		v := NewViewContext()
		v.MinGrade = Perfect

		for _, g := range ApplyView(groups, v) {
			for _, r := range g.Results {
				assert.Equal(t, Perfect, r.Grade)
			}
		}
	})

	t.Run("complexity filter drops empty groups", func(t *testing.T) {
		v := NewViewContext()
		v.MaxComplexity = Triad

		filtered := ApplyView(groups, v)
		require.Len(t, filtered, 1)
		assert.Equal(t, FitTight, filtered[0].Name)
	})

	t.Run("collapsed group keeps count", func(t *testing.T) {
		v := NewViewContext()
		v.ToggleGroup(FitTight)

		filtered := ApplyView(groups, v)
		require.NotEmpty(t, filtered)
		assert.True(t, filtered[0].Collapsed)
		assert.Nil(t, filtered[0].Results)
		assert.Equal(t, groups[0].Count, filtered[0].Count)

		// input untouched
		assert.NotEmpty(t, groups[0].Results)
	})

	t.Run("selection", func(t *testing.T) {
		v := NewViewContext()
		_, ok := v.SelectedResult(groups)
		assert.False(t, ok)

		v.Select("Am")
		r, ok := v.SelectedResult(groups)
		require.True(t, ok)
		assert.Equal(t, "A minor", r.Chord.Name)
	})
}
