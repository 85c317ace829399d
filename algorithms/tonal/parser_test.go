package tonal

import (
	"errors"
	"testing"

	"github.com/parkerchace/MusicTheory-sub004/algorithms/chroma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pcPtr(pc chroma.PitchClass) *chroma.PitchClass {
	return &pc
}

func TestParseChord(t *testing.T) {
	tests := []struct {
		symbol string
		want   ChordSpec
	}{
		{"C", ChordSpec{Root: 0, Quality: Major}},
		{"Cmaj", ChordSpec{Root: 0, Quality: Major}},
		{"CM", ChordSpec{Root: 0, Quality: Major}},
		{"Cmaj7", ChordSpec{Root: 0, Quality: Major, Extensions: []Extension{ExtMaj7}}},
		{"CMaj7", ChordSpec{Root: 0, Quality: Major, Extensions: []Extension{ExtMaj7}}},
		{"CM7", ChordSpec{Root: 0, Quality: Major, Extensions: []Extension{ExtMaj7}}},
		{"CΔ", ChordSpec{Root: 0, Quality: Major, Extensions: []Extension{ExtMaj7}}},
		{"Cmaj9", ChordSpec{Root: 0, Quality: Major, Extensions: []Extension{ExtMaj7, Ext9}}},
		{"Dm7", ChordSpec{Root: 2, Quality: Minor, Extensions: []Extension{Ext7}}},
		{"Dmin7", ChordSpec{Root: 2, Quality: Minor, Extensions: []Extension{Ext7}}},
		{"D-7", ChordSpec{Root: 2, Quality: Minor, Extensions: []Extension{Ext7}}},
		{"G7/B", ChordSpec{Root: 7, Quality: Major, Extensions: []Extension{Ext7}, Bass: pcPtr(11)}},
		{"C/Bb", ChordSpec{Root: 0, Quality: Major, Bass: pcPtr(10)}},
		{"Ebmaj7", ChordSpec{Root: 3, Quality: Major, Extensions: []Extension{ExtMaj7}}},
		{"F#m7b5", ChordSpec{Root: 6, Quality: Minor, Extensions: []Extension{Ext7}, Alterations: []Alteration{AltFlat5}}},
		{"Dm7b5", ChordSpec{Root: 2, Quality: Minor, Extensions: []Extension{Ext7}, Alterations: []Alteration{AltFlat5}}},
		{"Cø7", ChordSpec{Root: 0, Quality: Minor, Extensions: []Extension{Ext7}, Alterations: []Alteration{AltFlat5}}},
		{"Cdim", ChordSpec{Root: 0, Quality: Diminished}},
		{"Cdim7", ChordSpec{Root: 0, Quality: Diminished, Extensions: []Extension{Ext7}, Alterations: []Alteration{AltDoubleFlat7}}},
		{"C°7", ChordSpec{Root: 0, Quality: Diminished, Extensions: []Extension{Ext7}, Alterations: []Alteration{AltDoubleFlat7}}},
		{"Caug", ChordSpec{Root: 0, Quality: Augmented}},
		{"C+", ChordSpec{Root: 0, Quality: Augmented}},
		{"C7#5", ChordSpec{Root: 0, Quality: Augmented, Extensions: []Extension{Ext7}}},
		{"Cm(maj7)", ChordSpec{Root: 0, Quality: Minor, Extensions: []Extension{ExtMaj7}}},
		{"CmM7", ChordSpec{Root: 0, Quality: Minor, Extensions: []Extension{ExtMaj7}}},
		{"C7sus4", ChordSpec{Root: 0, Quality: Major, Extensions: []Extension{Ext7}, Alterations: []Alteration{AltSus4}}},
		{"Csus", ChordSpec{Root: 0, Quality: Major, Alterations: []Alteration{AltSus4}}},
		{"Cadd2", ChordSpec{Root: 0, Quality: Major, Alterations: []Alteration{AltAdd9}}},
		{"Cm(add9)", ChordSpec{Root: 0, Quality: Minor, Alterations: []Alteration{AltAdd9}}},
		{"Bb13(#11)", ChordSpec{Root: 10, Quality: Major, Extensions: []Extension{Ext13}, Alterations: []Alteration{AltSharp11}}},
		{"C13(b9, #11)", ChordSpec{Root: 0, Quality: Major, Extensions: []Extension{Ext13}, Alterations: []Alteration{AltFlat9, AltSharp11}}},
		{"C7♭9", ChordSpec{Root: 0, Quality: Major, Extensions: []Extension{Ext7}, Alterations: []Alteration{AltFlat9}}},
		{"Cm-5", ChordSpec{Root: 0, Quality: Minor, Alterations: []Alteration{AltFlat5}}},
		{"  A6 ", ChordSpec{Root: 9, Quality: Major, Extensions: []Extension{Ext6}}},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			got, err := ParseChord(tt.symbol)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChordErrors(t *testing.T) {
	tests := []struct {
		symbol    string
		reason    ParseReason
		sentinel  error
		wantToken string
	}{
		{"", NoRoot, ErrNoRoot, ""},
		{"H7", NoRoot, ErrNoRoot, ""},
		{"cmaj7", NoRoot, ErrNoRoot, ""},
		{"Cxyz", UnrecognizedToken, ErrUnrecognizedToken, "xyz"},
		{"C7/9", UnrecognizedToken, ErrUnrecognizedToken, "/9"},
		{"C7#", UnrecognizedToken, ErrUnrecognizedToken, "#"},
		{"Cmaj7q", UnrecognizedToken, ErrUnrecognizedToken, "q"},
		{"Cmdim", UnknownQuality, ErrUnknownQuality, "dim"},
		{"Caug-", UnknownQuality, ErrUnknownQuality, "-"},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			_, err := ParseChord(tt.symbol)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.reason, pe.Reason)
			assert.Equal(t, tt.wantToken, pe.Token)
			assert.Equal(t, tt.symbol, pe.Symbol)
		})
	}
}

func TestMustParseChordPanics(t *testing.T) {
	assert.Panics(t, func() { MustParseChord("Q") })
	assert.NotPanics(t, func() { MustParseChord("Am") })
}

func TestSymbolRoundTrip(t *testing.T) {
	model := chroma.NewStandardModel()

	for _, ct := range Catalogue() {
		for root := 0; root < 12; root++ {
			spec := ct.Spec(chroma.PitchClass(root))
			for _, flats := range []bool{false, true} {
				symbol := spec.Symbol(model, flats)
				parsed, err := ParseChord(symbol)
				require.NoError(t, err, symbol)
				assert.Equal(t, spec, parsed, symbol)
			}
		}
	}
}

func TestSymbolSpelling(t *testing.T) {
	model := chroma.NewStandardModel()

	assert.Equal(t, "Cmaj7", MustParseChord("CM7").Symbol(model, false))
	assert.Equal(t, "G7/B", MustParseChord("G7/B").Symbol(model, false))
	assert.Equal(t, "Bbm7b5", MustParseChord("A#ø7").Symbol(model, true))
	assert.Equal(t, "Cdim7", MustParseChord("C°7").Symbol(model, false))
	assert.Equal(t, "Cm(maj7)", MustParseChord("CmM7").Symbol(model, false))
	assert.Equal(t, "Cmaj9", MustParseChord("CΔ9").Symbol(model, false))
	assert.Equal(t, "C13b9#11", MustParseChord("C13(b9,#11)").Symbol(model, false))
}
