package engine

import (
	"fmt"
	"io"

	"github.com/parkerchace/MusicTheory-sub004/algorithms/chroma"
	"github.com/parkerchace/MusicTheory-sub004/algorithms/tonal"
	"github.com/parkerchace/MusicTheory-sub004/algorithms/voicing"
	"github.com/parkerchace/MusicTheory-sub004/engine/config"
	"github.com/parkerchace/MusicTheory-sub004/logging"
	"github.com/parkerchace/MusicTheory-sub004/transcode"
)

// Analysis is the outcome of a container-chord search over one input set
type Analysis struct {
	Input   []chroma.PitchClass  `json:"input"`
	Scale   string               `json:"scale"`
	Results []tonal.SearchResult `json:"results"`
	Groups  []tonal.Group        `json:"groups"`
}

// Progression is a voiced chord sequence with its movement summary
type Progression struct {
	Steps   []voicing.Step  `json:"steps"`
	Summary voicing.Summary `json:"summary"`
}

// Engine wires one PitchModel, logger and configuration into the searcher, grader,
// grouping and voice-leading components. It keeps no per-call state.
type Engine struct {
	config    *config.Config
	model     chroma.PitchModel
	searcher  *tonal.ChordSearcher
	optimizer *voicing.Optimizer
	keys      *tonal.KeyEstimator
	encoder   *transcode.Encoder
	logger    logging.Logger
}

// New creates an engine with the standard pitch model. A nil config uses the defaults.
func New(cfg *config.Config) (*Engine, error) {
	return NewWithModel(cfg, chroma.NewStandardModel())
}

// NewWithModel creates an engine over a caller-supplied pitch model
func NewWithModel(cfg *config.Config, model chroma.PitchModel) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.WithFields(logging.Fields{
		"component": "harmony_engine",
	})

	searchParams := tonal.DefaultSearchParams()
	searchParams.MaxComplexity = cfg.Complexity()

	optParams := voicing.DefaultOptimizerParams()
	optParams.Ranges = cfg.Ranges
	optParams.Spread = cfg.Spread
	optParams.EfficientThreshold = cfg.EfficientThreshold

	encOpts := transcode.DefaultEncodeOptions()
	encOpts.BPM = cfg.MIDI.BPM
	encOpts.BeatsPerChord = cfg.MIDI.BeatsPerChord
	encOpts.Velocity = uint8(cfg.MIDI.Velocity)
	encOpts.Channel = uint8(cfg.MIDI.Channel)

	return &Engine{
		config:    cfg,
		model:     model,
		searcher:  tonal.NewChordSearcherWithParams(model, searchParams).WithLogger(logger),
		optimizer: voicing.NewOptimizerWithParams(model, optParams).WithLogger(logger),
		keys:      tonal.NewKeyEstimator(model).WithLogger(logger),
		encoder:   transcode.NewEncoder(encOpts).WithLogger(logger),
		logger:    logger,
	}, nil
}

// WithLogger returns a copy of the engine whose components all log to l
func (e *Engine) WithLogger(l logging.Logger) *Engine {
	l = logging.OrNoOp(l)
	out := *e
	out.logger = l
	out.searcher = e.searcher.WithLogger(l)
	out.optimizer = e.optimizer.WithLogger(l)
	out.keys = e.keys.WithLogger(l)
	out.encoder = e.encoder.WithLogger(l)
	return &out
}

// Config returns the engine's configuration
func (e *Engine) Config() *config.Config {
	return e.config
}

// Model returns the injected pitch model
func (e *Engine) Model() chroma.PitchModel {
	return e.model
}

// ParseChord parses a chord symbol and resolves its pitch classes
func (e *Engine) ParseChord(symbol string) (tonal.ChordInstance, error) {
	spec, err := tonal.ParseChord(symbol)
	if err != nil {
		return tonal.ChordInstance{}, err
	}
	return tonal.Resolve(spec, e.model), nil
}

// Scale builds a scale context. Empty arguments fall back to the configured default.
func (e *Engine) Scale(tonic, scaleType string) (chroma.ScaleContext, error) {
	if tonic == "" {
		tonic = e.config.Tonic
	}
	if scaleType == "" {
		scaleType = e.config.Scale
	}
	return chroma.ParseScaleContext(e.model, tonic, scaleType)
}

// PitchClasses converts note names to pitch classes through the model
func (e *Engine) PitchClasses(names []string) ([]chroma.PitchClass, error) {
	out := make([]chroma.PitchClass, len(names))
	for i, name := range names {
		pc, err := e.model.PitchClassOf(name)
		if err != nil {
			return nil, fmt.Errorf("note %d: %w", i+1, err)
		}
		out[i] = pc
	}
	return out, nil
}

// Search lists every catalogue chord containing the named notes
func (e *Engine) Search(notes []string, scale chroma.ScaleContext) ([]tonal.SearchResult, error) {
	input, err := e.PitchClasses(notes)
	if err != nil {
		return nil, err
	}
	return e.searcher.Search(input, scale), nil
}

// Analyze searches and groups in one call. An empty strategy uses the configured one.
func (e *Engine) Analyze(notes []string, scale chroma.ScaleContext, strategy tonal.GroupStrategy) (Analysis, error) {
	input, err := e.PitchClasses(notes)
	if err != nil {
		return Analysis{}, err
	}
	if strategy == "" {
		strategy = e.config.Strategy()
	}

	results := e.searcher.Search(input, scale)
	groups, err := tonal.GroupResults(results, input, strategy)
	if err != nil {
		return Analysis{}, err
	}

	e.logger.Debug("Analysis complete", logging.Fields{
		"input":    len(input),
		"scale":    scale.Name(),
		"results":  len(results),
		"groups":   len(groups),
		"strategy": string(strategy),
	})

	return Analysis{
		Input:   input,
		Scale:   scale.Name(),
		Results: results,
		Groups:  groups,
	}, nil
}

// Group buckets results by strategy
func (e *Engine) Group(results []tonal.SearchResult, input []chroma.PitchClass, strategy tonal.GroupStrategy) ([]tonal.Group, error) {
	return tonal.GroupResults(results, input, strategy)
}

// GroupByRole ranks results by the role of the focal note and progression likelihood
func (e *Engine) GroupByRole(focal string, scale chroma.ScaleContext) ([]tonal.RoleGroup, error) {
	pc, err := e.model.PitchClassOf(focal)
	if err != nil {
		return nil, err
	}
	results := e.searcher.Search([]chroma.PitchClass{pc}, scale)
	return tonal.GroupByRole(results, pc, scale, e.model), nil
}

// EstimateKey ranks the 24 major and minor keys for a chord progression
func (e *Engine) EstimateKey(symbols []string) (tonal.KeyEstimationResult, error) {
	specs := make([]tonal.ChordSpec, len(symbols))
	for i, sym := range symbols {
		spec, err := tonal.ParseChord(sym)
		if err != nil {
			return tonal.KeyEstimationResult{}, fmt.Errorf("chord %d (%q): %w", i+1, sym, err)
		}
		specs[i] = spec
	}
	return e.keys.EstimateKeyFromChords(specs), nil
}

// VoiceLead voices chord symbols with the configured spacing
func (e *Engine) VoiceLead(symbols []string) (Progression, error) {
	return e.VoiceLeadSpread(symbols, e.config.Spread)
}

// VoiceLeadSpread voices chord symbols with an explicit spacing choice
func (e *Engine) VoiceLeadSpread(symbols []string, spread bool) (Progression, error) {
	steps, err := e.optimizer.LeadSymbols(symbols, spread)
	if err != nil {
		e.logger.Warn("Progression rejected", logging.Fields{"error": err.Error()})
		return Progression{}, err
	}
	return Progression{Steps: steps, Summary: voicing.Summarize(steps)}, nil
}

// ExportMIDI writes a voiced progression as a Standard MIDI File
func (e *Engine) ExportMIDI(w io.Writer, p Progression) (int64, error) {
	return e.encoder.Encode(w, p.Steps)
}

// ExportMIDIFile writes a voiced progression to path
func (e *Engine) ExportMIDIFile(path string, p Progression) error {
	return e.encoder.WriteFile(path, p.Steps)
}
