package voicing

import (
	"github.com/parkerchace/MusicTheory-sub004/algorithms/common"
)

// Summary aggregates the movement of a voiced progression. Transitions exclude the
// first step, which has no predecessor.
type Summary struct {
	Chords          int                `json:"chords"`
	Transitions     int                `json:"transitions"`
	TotalSemitones  int                `json:"total_semitones"`
	MeanSemitones   float64            `json:"mean_semitones"`   // Per transition
	StdDevSemitones float64            `json:"stddev_semitones"` // Per transition
	MaxLeap         int                `json:"max_leap"`         // Largest single-voice move
	PerVoiceMean    map[string]float64 `json:"per_voice_mean"`
	EfficientSteps  int                `json:"efficient_steps"`
	TotalCost       int                `json:"total_cost"`
	Parallels       int                `json:"parallels"`
}

// Summarize computes movement statistics over steps
func Summarize(steps []Step) Summary {
	s := Summary{
		Chords:       len(steps),
		PerVoiceMean: make(map[string]float64, 4),
	}
	if len(steps) < 2 {
		for _, v := range Voices {
			s.PerVoiceMean[v.String()] = 0
		}
		return s
	}

	transitions := steps[1:]
	s.Transitions = len(transitions)

	totals := make([]int, 0, len(transitions))
	var perVoice [4][]int
	for i, st := range transitions {
		totals = append(totals, st.Movement.TotalSemitones)
		s.TotalSemitones += st.Movement.TotalSemitones
		s.TotalCost += st.Cost
		s.Parallels += CountParallels(steps[i].Voicing, st.Voicing)
		if st.Movement.Efficient {
			s.EfficientSteps++
		}
		for v, mv := range st.Movement.PerVoice {
			perVoice[v] = append(perVoice[v], mv.Semitones)
			s.MaxLeap = max(s.MaxLeap, mv.Semitones)
		}
	}

	s.MeanSemitones = common.Mean(common.Ints(totals))
	s.StdDevSemitones = common.StandardDeviation(common.Ints(totals))
	for _, v := range Voices {
		s.PerVoiceMean[v.String()] = common.Mean(common.Ints(perVoice[v]))
	}

	return s
}
