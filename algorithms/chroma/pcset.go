package chroma

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// SetProfile holds the normalized DFT magnitudes of a pitch-class set.
// Each coefficient is |f_k| / cardinality, so it lies in [0, 1] and reaches 1 only for
// sets that are perfectly even with respect to that component.
type SetProfile struct {
	Chromatic   float64 `json:"chromatic"`   // |f1|: clustering in semitones
	Quartal     float64 `json:"quartal"`     // |f2|: dyadic/quartal balance
	Triadic     float64 `json:"triadic"`     // |f3|: augmented/hexatonic affinity
	Octatonic   float64 `json:"octatonic"`   // |f4|: diminished-seventh affinity
	Diatonic    float64 `json:"diatonic"`    // |f5|: diatonicity
	WholeTone   float64 `json:"whole_tone"`  // |f6|: whole-tone affinity
	Dominant    string  `json:"dominant"`    // Name of the strongest component
	Cardinality int     `json:"cardinality"` // Number of distinct pitch classes
}

var profileComponents = []string{"chromatic", "quartal", "triadic", "octatonic", "diatonic", "whole_tone"}

// ComputeSetProfile transforms the 12-point indicator vector of pcs with a real FFT
func ComputeSetProfile(pcs []PitchClass) SetProfile {
	unique := UniquePitchClasses(pcs)
	if len(unique) == 0 {
		return SetProfile{}
	}

	indicator := make([]float64, 12)
	for _, pc := range unique {
		indicator[pc] = 1
	}

	spectrum := fft.FFTReal(indicator)

	mags := make([]float64, 6)
	for k := 1; k <= 6; k++ {
		mags[k-1] = cmplx.Abs(spectrum[k])
	}
	floats.Scale(1/float64(len(unique)), mags)

	return SetProfile{
		Chromatic:   mags[0],
		Quartal:     mags[1],
		Triadic:     mags[2],
		Octatonic:   mags[3],
		Diatonic:    mags[4],
		WholeTone:   mags[5],
		Dominant:    profileComponents[floats.MaxIdx(mags)],
		Cardinality: len(unique),
	}
}

// Magnitudes returns |f1|..|f6| in order
func (p SetProfile) Magnitudes() []float64 {
	return []float64{p.Chromatic, p.Quartal, p.Triadic, p.Octatonic, p.Diatonic, p.WholeTone}
}

// Distance is the Euclidean distance between two profiles, a transposition and
// inversion invariant measure of how alike two sets sound
func (p SetProfile) Distance(other SetProfile) float64 {
	return floats.Distance(p.Magnitudes(), other.Magnitudes(), 2)
}
