package voicing

import (
	"fmt"

	"github.com/parkerchace/MusicTheory-sub004/algorithms/tonal"
	"github.com/parkerchace/MusicTheory-sub004/logging"
)

// Lead voices a progression. The first chord gets the initial voicing with zero
// movement; every later chord is the minimum-cost successor of the one before.
func (o *Optimizer) Lead(specs []tonal.ChordSpec, spread bool) []Step {
	if len(specs) == 0 {
		return nil
	}

	steps := make([]Step, 0, len(specs))
	first := o.Initial(specs[0], spread)
	steps = append(steps, Step{
		Symbol:   specs[0].Symbol(o.model, false),
		Chord:    specs[0],
		Voicing:  first,
		Movement: MovementBetween(first, first, o.params.EfficientThreshold),
	})

	prev := first
	for _, spec := range specs[1:] {
		next, move, cost := o.Next(prev, spec)
		steps = append(steps, Step{
			Symbol:   spec.Symbol(o.model, false),
			Chord:    spec,
			Voicing:  next,
			Movement: move,
			Cost:     cost,
		})
		prev = next
	}

	o.logger.Debug("Progression voiced", logging.Fields{
		"chords": len(steps),
		"spread": spread,
	})

	return steps
}

// LeadSymbols parses and voices chord symbols, keeping each step's symbol as written.
// A parse failure names the offending chord by position.
func (o *Optimizer) LeadSymbols(symbols []string, spread bool) ([]Step, error) {
	specs := make([]tonal.ChordSpec, len(symbols))
	for i, sym := range symbols {
		spec, err := tonal.ParseChord(sym)
		if err != nil {
			return nil, fmt.Errorf("chord %d (%q): %w", i+1, sym, err)
		}
		specs[i] = spec
	}

	steps := o.Lead(specs, spread)
	for i := range steps {
		steps[i].Symbol = symbols[i]
	}
	return steps, nil
}
