package voicing

import (
	"math"
	"slices"

	"github.com/parkerchace/MusicTheory-sub004/algorithms/chroma"
	"github.com/parkerchace/MusicTheory-sub004/algorithms/common"
	"github.com/parkerchace/MusicTheory-sub004/algorithms/tonal"
	"github.com/parkerchace/MusicTheory-sub004/logging"
)

// ParallelPenalty is added for every pair of voices moving in forbidden parallels
const ParallelPenalty = 100

// Minimum spacing used by spread voicings
const (
	spreadTenorOverBass = 7
	spreadAltoOverTenor = 5
	spreadSopOverAlto   = 5
)

// OptimizerParams configures voice leading
type OptimizerParams struct {
	Ranges             Ranges `json:"ranges"`
	Spread             bool   `json:"spread"`              // Default spacing for initial voicings
	EfficientThreshold int    `json:"efficient_threshold"` // Total semitones below which a move is efficient
}

// DefaultOptimizerParams returns SATB ranges, close spacing and a threshold of 8
func DefaultOptimizerParams() OptimizerParams {
	return OptimizerParams{
		Ranges:             DefaultRanges(),
		Spread:             false,
		EfficientThreshold: 8,
	}
}

// Optimizer chooses four-part voicings that minimize movement between chords.
// It keeps no state between calls; the previous voicing is always passed in.
type Optimizer struct {
	params    OptimizerParams
	generator *Generator
	model     chroma.PitchModel
	logger    logging.Logger
}

// NewOptimizer creates an optimizer with default parameters
func NewOptimizer(model chroma.PitchModel) *Optimizer {
	return NewOptimizerWithParams(model, DefaultOptimizerParams())
}

// NewOptimizerWithParams creates an optimizer with custom parameters
func NewOptimizerWithParams(model chroma.PitchModel, params OptimizerParams) *Optimizer {
	if params.EfficientThreshold <= 0 {
		params.EfficientThreshold = DefaultOptimizerParams().EfficientThreshold
	}
	return &Optimizer{
		params:    params,
		generator: NewGenerator(params.Ranges),
		model:     model,
		logger: logging.WithFields(logging.Fields{
			"component": "voice_leading_optimizer",
		}),
	}
}

// WithLogger returns a copy of the optimizer that logs to l
func (o *Optimizer) WithLogger(l logging.Logger) *Optimizer {
	out := *o
	out.logger = logging.OrNoOp(l)
	return &out
}

// Params returns the optimizer's parameters
func (o *Optimizer) Params() OptimizerParams {
	return o.params
}

// Generator exposes the candidate generator
func (o *Optimizer) Generator() *Generator {
	return o.generator
}

// MoveCost scores one voice moving by delta semitones. Holding is rewarded.
func MoveCost(delta int) int {
	switch d := common.AbsInt(delta); {
	case d == 0:
		return -2
	case d <= 2:
		return 1
	case d <= 4:
		return 2
	case d == 5:
		return 3
	case d == 7:
		return 4
	default:
		return 6
	}
}

// isParallel reports forbidden parallels between two voices. Fifths count when both
// voices move the same way; unisons and octaves count whenever both voices move.
// A held voice never forms a parallel.
func isParallel(prevU, prevV, nextU, nextV chroma.Note) bool {
	du := int(nextU - prevU)
	dv := int(nextV - prevV)
	if du == 0 || dv == 0 {
		return false
	}

	before := common.Mod12(common.AbsInt(int(prevU - prevV)))
	after := common.Mod12(common.AbsInt(int(nextU - nextV)))

	switch {
	case before == 7 && after == 7:
		return common.Sign(du) == common.Sign(dv)
	case before == 0 && after == 0:
		return true
	default:
		return false
	}
}

// CountParallels counts voice pairs moving in forbidden parallels from prev to next
func CountParallels(prev, next State) int {
	p, n := prev.Notes(), next.Notes()
	count := 0
	for u := 0; u < 4; u++ {
		for v := u + 1; v < 4; v++ {
			if isParallel(p[u], p[v], n[u], n[v]) {
				count++
			}
		}
	}
	return count
}

// TransitionCost is the sum of per-voice move costs plus the parallel penalties
func TransitionCost(prev, next State) int {
	p, n := prev.Notes(), next.Notes()
	cost := 0
	for i := range p {
		cost += MoveCost(int(n[i] - p[i]))
	}
	return cost + ParallelPenalty*CountParallels(prev, next)
}

// Initial voices the first chord of a progression: lowest bass candidate, upper
// chord tones stacked above it in tenor, alto, soprano
func (o *Optimizer) Initial(spec tonal.ChordSpec, spread bool) State {
	pools := o.generator.Candidates(spec)
	ranges := o.params.Ranges

	var notes [4]chroma.Note
	if len(pools[Bass]) > 0 {
		notes[Bass] = pools[Bass][0]
	} else {
		notes[Bass] = ranges.Bass.Low
		o.logger.Warn("No bass candidate, using range floor", logging.Fields{
			"bass_pc": int(spec.BassPitchClass()),
		})
	}

	tones := upperTones(spec)
	gaps := [4]int{Tenor: spreadTenorOverBass, Alto: spreadAltoOverTenor, Soprano: spreadSopOverAlto}

	below := notes[Bass]
	for i, v := range []Voice{Tenor, Alto, Soprano} {
		n := placeVoice(pools[v], tones[i], below, spread, gaps[v], ranges.For(v))
		notes[v] = n
		below = n
	}

	return StateOf(notes)
}

// upperTones picks three pitch classes for tenor, alto and soprano. Bass is removed,
// the fifth goes first when there are too many, the bass doubles when too few.
func upperTones(spec tonal.ChordSpec) [3]chroma.PitchClass {
	bass := spec.BassPitchClass()
	var tones []chroma.PitchClass
	for _, pc := range tonal.PitchClassesOf(spec) {
		if pc != bass {
			tones = append(tones, pc)
		}
	}

	if len(tones) > 3 {
		fifthOff := tonal.ResolveIntervals(spec)
		for _, off := range fifthOff {
			if off >= 6 && off <= 8 {
				fifth := spec.Root.Transpose(off)
				tones = slices.DeleteFunc(tones, func(pc chroma.PitchClass) bool { return pc == fifth })
				break
			}
		}
	}
	if len(tones) > 3 {
		// keep the third and seventh plus the top color tone
		tones = []chroma.PitchClass{tones[0], tones[1], tones[len(tones)-1]}
	}
	for len(tones) < 3 {
		tones = append(tones, bass)
	}

	return [3]chroma.PitchClass{tones[0], tones[1], tones[2]}
}

// placeVoice returns the lowest candidate of pc meeting the spread gap, else the
// lowest strictly above below, else the highest in-range candidate
func placeVoice(pool []chroma.Note, pc chroma.PitchClass, below chroma.Note, spread bool, gap int, rg Range) chroma.Note {
	var matching []chroma.Note
	for _, n := range pool {
		if n.PitchClass() == pc {
			matching = append(matching, n)
		}
	}
	if len(matching) == 0 {
		matching = pool
	}
	if len(matching) == 0 {
		return rg.Low
	}

	if spread {
		for _, n := range matching {
			if n >= below+chroma.Note(gap) {
				return n
			}
		}
	}
	for _, n := range matching {
		if n > below {
			return n
		}
	}
	return matching[len(matching)-1]
}

// Next finds the voicing of spec with minimum TransitionCost from prev. Ties go to the
// first voicing in enumeration order: soprano outermost, bass innermost, each pool
// ascending. An empty pool repeats prev.
func (o *Optimizer) Next(prev State, spec tonal.ChordSpec) (State, Movement, int) {
	pools := o.generator.Candidates(spec)
	if pools.Empty() {
		o.logger.Warn("Empty candidate pool, holding previous voicing", logging.Fields{
			"root": int(spec.Root),
		})
		return prev, MovementBetween(prev, prev, o.params.EfficientThreshold), TransitionCost(prev, prev)
	}

	best, cost := search(prev, pools)
	return best, MovementBetween(prev, best, o.params.EfficientThreshold), cost
}

// search is a depth-first branch and bound over the pools. The bound adds each
// unassigned voice's cheapest move to the partial cost; penalties are never negative,
// so it never overestimates. Only branches strictly worse than the best are cut and
// only strictly better leaves replace it, which reproduces the first-minimum of the
// full cross product.
func search(prev State, pools Pools) (State, int) {
	p := prev.Notes()

	var minMove [4]int
	for v := range pools {
		minMove[v] = math.MaxInt32
		for _, n := range pools[v] {
			minMove[v] = min(minMove[v], MoveCost(int(n-p[v])))
		}
	}
	// remaining[k] is the cheapest possible cost of voices k..3
	var remaining [5]int
	for k := 3; k >= 0; k-- {
		remaining[k] = remaining[k+1] + minMove[k]
	}

	var (
		current  [4]chroma.Note
		bestNote [4]chroma.Note
		bestCost = math.MaxInt
	)

	var walk func(level, partial int)
	walk = func(level, partial int) {
		if level == 4 {
			if partial < bestCost {
				bestCost = partial
				bestNote = current
			}
			return
		}
		for _, n := range pools[level] {
			cost := partial + MoveCost(int(n-p[level]))
			for u := 0; u < level; u++ {
				if isParallel(p[u], p[level], current[u], n) {
					cost += ParallelPenalty
				}
			}
			if cost+remaining[level+1] > bestCost {
				continue
			}
			current[level] = n
			walk(level+1, cost)
		}
	}
	walk(0, 0)

	return StateOf(bestNote), bestCost
}
