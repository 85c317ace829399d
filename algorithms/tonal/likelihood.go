package tonal

import (
	"cmp"
	"slices"

	"github.com/parkerchace/MusicTheory-sub004/algorithms/chroma"
)

// Roles of a focal note relative to a chord root, indexed by ascending interval.
// The index also fixes the display order for tied groups.
var roleNames = [12]string{
	"root", "b9", "9", "m3", "M3", "11", "b5/#11", "5", "#5/b13", "13", "b7", "maj7",
}

// RoleOf names the role focal plays in a chord built on root
func RoleOf(focal, root chroma.PitchClass) string {
	return roleNames[root.IntervalTo(focal)]
}

// Degree-to-degree transition weights, zero-based degrees (0 = I ... 6 = vii)
var degreeTransitions = map[int]map[int]int{
	0: {0: 50, 3: 30, 4: 40, 5: 20},
	1: {4: 50, 0: 20},
	2: {5: 40, 3: 30, 1: 20},
	3: {0: 40, 4: 50, 1: 30},
	4: {0: 60, 5: 30},
	5: {1: 40, 3: 30, 4: 20},
	6: {0: 60, 2: 20},
}

// Cadence bonuses keyed by [from, to] zero-based degree
var cadenceBonus = map[[2]int]int{
	{4, 0}: 50, // V -> I
	{1, 4}: 40, // ii -> V
	{3, 0}: 30, // IV -> I
}

// ProgressionLikelihood scores how naturally a chord on root follows the degree of the
// focal note. A chord built on the focal note scores 100.
func ProgressionLikelihood(focal, root chroma.PitchClass, scale chroma.ScaleContext) int {
	if chroma.Mod12(int(focal)) == chroma.Mod12(int(root)) {
		return 100
	}

	from, ok := scale.Degree(focal)
	if !ok || from > 6 {
		return 0
	}
	to, ok := scale.Degree(root)
	if !ok || to > 6 {
		return 0
	}

	return degreeTransitions[from][to] + cadenceBonus[[2]int{from, to}]
}

// ScoredResult is a role-aware graded result with its likelihood score
type ScoredResult struct {
	GradedResult
	Role  string `json:"role"`
	Score int    `json:"score"`
}

// RoleGroup collects the chords in which the focal note plays the same role
type RoleGroup struct {
	Role    string         `json:"role"`
	Score   int            `json:"score"` // Highest member score
	Results []ScoredResult `json:"results"`
}

// GroupByRole groups single-note search results by the focal note's role. Groups are
// ordered by score with ties in role order; members by role-aware grade, then score.
// Results that do not contain the focal note are skipped.
func GroupByRole(results []SearchResult, focal chroma.PitchClass, scale chroma.ScaleContext, model chroma.PitchModel) []RoleGroup {
	focal = chroma.Mod12(int(focal))

	var byRole [12][]ScoredResult
	for _, r := range results {
		if !r.Chord.Set().Contains(focal) {
			continue
		}
		root := r.Chord.Spec.Root
		idx := root.IntervalTo(focal)
		byRole[idx] = append(byRole[idx], ScoredResult{
			GradedResult: GradedResult{SearchResult: r, Grade: RoleAwareGrade(r, focal, scale, model)},
			Role:         roleNames[idx],
			Score:        ProgressionLikelihood(focal, root, scale),
		})
	}

	var groups []RoleGroup
	order := map[string]int{}
	for idx, members := range byRole {
		if len(members) == 0 {
			continue
		}
		slices.SortStableFunc(members, func(a, b ScoredResult) int {
			return cmp.Or(
				cmp.Compare(b.Grade, a.Grade),
				cmp.Compare(b.Score, a.Score),
			)
		})

		best := 0
		for _, m := range members {
			best = max(best, m.Score)
		}
		order[roleNames[idx]] = idx
		groups = append(groups, RoleGroup{Role: roleNames[idx], Score: best, Results: members})
	}

	slices.SortStableFunc(groups, func(a, b RoleGroup) int {
		return cmp.Or(
			cmp.Compare(b.Score, a.Score),
			cmp.Compare(order[a.Role], order[b.Role]),
		)
	})
	return groups
}
