package morphospace

import "math"

// Preset pairs two canonical states with an oscillation period and waveform.
type Preset struct {
	Name        string
	StateA      string
	StateB      string
	Period      int
	Waveform    Waveform
	Description string
}

// Sample is one point of a generated sequence.
type Sample struct {
	Step           int
	Cycle          int
	Phase          float64
	Coordinate     Coordinate
	VisualType     Match
	CanonicalState Match
}

// MaxSamples caps the number of samples one call may generate.
const MaxSamples = 100_000

// Sampler drives the interpolator across phase samples and classifies every
// sample against the canonical-state and visual-type catalogs.
type Sampler struct {
	States      *Catalog
	VisualTypes *Catalog
}

// NewSampler returns a Sampler over the two catalogs. Both must be non-empty.
func NewSampler(states, visualTypes *Catalog) (*Sampler, error) {
	if states == nil || states.Len() == 0 {
		return nil, Validationf("new sampler", "canonical-state catalog is empty")
	}
	if visualTypes == nil || visualTypes.Len() == 0 {
		return nil, Validationf("new sampler", "visual-type catalog is empty")
	}
	return &Sampler{States: states, VisualTypes: visualTypes}, nil
}

// Classify returns the nearest visual type and canonical state for c.
func (s *Sampler) Classify(c Coordinate) (visual, canonical Match, err error) {
	if visual, err = Nearest(c, s.VisualTypes); err != nil {
		return Match{}, Match{}, err
	}
	if canonical, err = Nearest(c, s.States); err != nil {
		return Match{}, Match{}, err
	}
	return visual, canonical, nil
}

// ValidatePreset checks that p names known states and has a positive period.
func (s *Sampler) ValidatePreset(p Preset) error {
	if p.Period <= 0 {
		return Validationf("preset "+p.Name, "period must be positive, got %d", p.Period)
	}
	if int(p.Waveform) < 0 || int(p.Waveform) >= len(waveformNames) {
		return &Error{Kind: KindValidation, Op: "preset " + p.Name, Message: "unknown waveform " + p.Waveform.String(), Valid: WaveformNames()}
	}
	if _, err := s.States.Lookup(p.StateA); err != nil {
		return err
	}
	if _, err := s.States.Lookup(p.StateB); err != nil {
		return err
	}
	return nil
}

// Replay samples one full cycle of p: Period samples at phase step/Period.
func (s *Sampler) Replay(p Preset) ([]Sample, error) {
	if err := s.ValidatePreset(p); err != nil {
		return nil, err
	}
	return s.Oscillate(Oscillation{
		StateA:        p.StateA,
		StateB:        p.StateB,
		Waveform:      p.Waveform,
		Cycles:        1,
		StepsPerCycle: p.Period,
	})
}

// Oscillation describes a custom multi-cycle oscillation between two
// canonical states.
type Oscillation struct {
	StateA        string
	StateB        string
	Waveform      Waveform
	Cycles        int
	StepsPerCycle int
	PhaseOffset   float64
}

// Oscillate produces Cycles*StepsPerCycle samples. Sample k sits at phase
// ((k/StepsPerCycle)+PhaseOffset) mod 1.
func (s *Sampler) Oscillate(o Oscillation) ([]Sample, error) {
	const op = "oscillate"
	if o.Cycles <= 0 {
		return nil, Validationf(op, "cycles must be positive, got %d", o.Cycles)
	}
	if o.StepsPerCycle <= 0 {
		return nil, Validationf(op, "steps per cycle must be positive, got %d", o.StepsPerCycle)
	}
	if o.Cycles > MaxSamples/o.StepsPerCycle {
		return nil, Validationf(op, "cycles x steps per cycle exceeds %d samples", MaxSamples)
	}
	if math.IsNaN(o.PhaseOffset) || math.IsInf(o.PhaseOffset, 0) {
		return nil, Validationf(op, "phase offset is not a finite number")
	}
	a, err := s.States.Lookup(o.StateA)
	if err != nil {
		return nil, err
	}
	b, err := s.States.Lookup(o.StateB)
	if err != nil {
		return nil, err
	}

	total := o.Cycles * o.StepsPerCycle
	out := make([]Sample, 0, total)
	for k := 0; k < total; k++ {
		phase := wrapPhase(float64(k)/float64(o.StepsPerCycle) + o.PhaseOffset)
		c, err := Interpolate(a, b, phase, o.Waveform)
		if err != nil {
			return nil, err
		}
		sample, err := s.sample(k, k/o.StepsPerCycle, phase, c)
		if err != nil {
			return nil, err
		}
		out = append(out, sample)
	}
	return out, nil
}

// Trajectory walks a straight line from one canonical state to another in
// steps equal increments, producing steps+1 samples including both ends.
func (s *Sampler) Trajectory(from, to string, steps int) ([]Sample, error) {
	if steps <= 0 {
		return nil, Validationf("trajectory", "steps must be positive, got %d", steps)
	}
	if steps >= MaxSamples {
		return nil, Validationf("trajectory", "steps must be below %d, got %d", MaxSamples, steps)
	}
	a, err := s.States.Lookup(from)
	if err != nil {
		return nil, err
	}
	b, err := s.States.Lookup(to)
	if err != nil {
		return nil, err
	}
	out := make([]Sample, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		sample, err := s.sample(i, 0, t, blend(a, b, t))
		if err != nil {
			return nil, err
		}
		out = append(out, sample)
	}
	return out, nil
}

// Keyframes takes count evenly spaced samples from one cycle of p, at
// step (i*max(1, Period/count)) mod Period.
func (s *Sampler) Keyframes(p Preset, count int) ([]Sample, error) {
	if count <= 0 {
		return nil, Validationf("keyframes", "keyframe count must be positive, got %d", count)
	}
	if count > MaxSamples {
		return nil, Validationf("keyframes", "keyframe count must be at most %d, got %d", MaxSamples, count)
	}
	if err := s.ValidatePreset(p); err != nil {
		return nil, err
	}
	a, _ := s.States.Lookup(p.StateA)
	b, _ := s.States.Lookup(p.StateB)

	stride := max(1, p.Period/count)
	out := make([]Sample, 0, count)
	for i := 0; i < count; i++ {
		step := (i * stride) % p.Period
		phase := float64(step) / float64(p.Period)
		c, err := Interpolate(a, b, phase, p.Waveform)
		if err != nil {
			return nil, err
		}
		sample, err := s.sample(step, 0, phase, c)
		if err != nil {
			return nil, err
		}
		out = append(out, sample)
	}
	return out, nil
}

func (s *Sampler) sample(step, cycle int, phase float64, c Coordinate) (Sample, error) {
	visual, canonical, err := s.Classify(c)
	if err != nil {
		return Sample{}, err
	}
	return Sample{
		Step:           step,
		Cycle:          cycle,
		Phase:          phase,
		Coordinate:     c,
		VisualType:     visual,
		CanonicalState: canonical,
	}, nil
}

// wrapPhase reduces x into [0,1).
func wrapPhase(x float64) float64 {
	p := math.Mod(x, 1)
	if p < 0 {
		p++
	}
	if p >= 1 {
		p = 0
	}
	return p
}
