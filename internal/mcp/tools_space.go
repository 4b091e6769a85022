package mcp

import (
	"context"

	"patina/internal/catalog"
	"patina/internal/morphospace"
)

func (s *Server) registerSpaceTools() {
	addTool(s, "get_patina_canonical_states",
		"List the canonical patina states with their five-axis coordinates and nearest visual type.",
		s.handleCanonicalStates)
	addTool(s, "get_patina_visual_types",
		"List the visual types with center coordinates, keywords, optical properties and colour associations.",
		s.handleVisualTypes)
	addTool(s, "list_patina_rhythmic_presets",
		"List the rhythmic presets: two canonical states oscillating with a fixed period and waveform.",
		s.handleListPresets)
	addTool(s, "apply_patina_rhythmic_preset",
		"Replay one full period of a rhythmic preset, classifying every sample.",
		s.handleApplyPreset)
	addTool(s, "generate_patina_rhythmic_sequence",
		"Generate a custom multi-cycle oscillation between two canonical states.",
		s.handleRhythmicSequence)
	addTool(s, "compute_patina_distance",
		"Compute the Euclidean distance between two canonical states with a per-axis breakdown.",
		s.handleDistance)
	addTool(s, "compute_patina_trajectory",
		"Walk a straight line between two canonical states, classifying every step.",
		s.handleTrajectory)
	addTool(s, "extract_patina_visual_vocabulary",
		"Extract the nearest visual type and graded vocabulary for a coordinate or canonical state.",
		s.handleVocabulary)
	addTool(s, "list_patina_attractor_presets",
		"List the curated attractor coordinates with provenance and nearest visual type.",
		s.handleListAttractors)
}

// --- Tool input/output types ---

type stateEntry struct {
	ID                string             `json:"id"`
	Coordinates       map[string]float64 `json:"coordinates"`
	NearestVisualType string             `json:"nearest_visual_type"`
	VisualDistance    float64            `json:"visual_distance"`
}

type canonicalStatesOutput struct {
	CanonicalStates []stateEntry `json:"canonical_states"`
	ParameterNames  []string     `json:"parameter_names"`
	Dimensionality  int          `json:"dimensionality"`
	TotalStates     int          `json:"total_states"`
}

type visualTypeEntry struct {
	ID                string             `json:"id"`
	Center            map[string]float64 `json:"center"`
	Keywords          []string           `json:"keywords"`
	Optical           catalog.Optical    `json:"optical"`
	ColorAssociations []string           `json:"color_associations"`
}

type visualTypesOutput struct {
	VisualTypes    []visualTypeEntry `json:"visual_types"`
	TotalTypes     int               `json:"total_types"`
	ParameterNames []string          `json:"parameter_names"`
}

type presetEntry struct {
	Name        string `json:"name"`
	Period      int    `json:"period"`
	StateA      string `json:"state_a"`
	StateB      string `json:"state_b"`
	Pattern     string `json:"pattern"`
	Description string `json:"description"`
}

func toPresetEntry(p morphospace.Preset) presetEntry {
	return presetEntry{
		Name:        p.Name,
		Period:      p.Period,
		StateA:      p.StateA,
		StateB:      p.StateB,
		Pattern:     p.Waveform.String(),
		Description: p.Description,
	}
}

type listPresetsOutput struct {
	Presets      []presetEntry `json:"presets"`
	TotalPresets int           `json:"total_presets"`
	Periods      []int         `json:"periods"`
}

type sampleEntry struct {
	Step                  int                `json:"step"`
	Cycle                 int                `json:"cycle"`
	Phase                 float64            `json:"phase"`
	State                 map[string]float64 `json:"state"`
	NearestVisualType     string             `json:"nearest_visual_type"`
	VisualDistance        float64            `json:"visual_distance"`
	NearestCanonicalState string             `json:"nearest_canonical_state"`
	CanonicalDistance     float64            `json:"canonical_distance"`
}

func toSampleEntries(samples []morphospace.Sample) []sampleEntry {
	out := make([]sampleEntry, 0, len(samples))
	for _, sm := range samples {
		out = append(out, sampleEntry{
			Step:                  sm.Step,
			Cycle:                 sm.Cycle,
			Phase:                 r4(sm.Phase),
			State:                 coord(sm.Coordinate),
			NearestVisualType:     sm.VisualType.ID,
			VisualDistance:        r4(sm.VisualType.Distance),
			NearestCanonicalState: sm.CanonicalState.ID,
			CanonicalDistance:     r4(sm.CanonicalState.Distance),
		})
	}
	return out
}

type presetInput struct {
	PresetName string `json:"preset_name" jsonschema:"rhythmic preset name, e.g. aging_cycle or entropy_wave"`
}

type applyPresetOutput struct {
	Preset      string        `json:"preset"`
	Period      int           `json:"period"`
	Pattern     string        `json:"pattern"`
	StateA      string        `json:"state_a"`
	StateB      string        `json:"state_b"`
	Description string        `json:"description"`
	Sequence    []sampleEntry `json:"sequence"`
	TotalSteps  int           `json:"total_steps"`
}

type rhythmicSequenceInput struct {
	StateAID           string  `json:"state_a_id" jsonschema:"starting canonical state id"`
	StateBID           string  `json:"state_b_id" jsonschema:"alternating canonical state id"`
	OscillationPattern string  `json:"oscillation_pattern,omitempty" jsonschema:"sinusoidal, triangular or square (default sinusoidal)"`
	NumCycles          *int    `json:"num_cycles,omitempty" jsonschema:"number of complete cycles (default 3)"`
	StepsPerCycle      *int    `json:"steps_per_cycle,omitempty" jsonschema:"samples per cycle (default 20)"`
	PhaseOffset        float64 `json:"phase_offset,omitempty" jsonschema:"starting phase added to every sample before wrapping into [0, 1)"`
}

type rhythmicSequenceOutput struct {
	StateA        string        `json:"state_a"`
	StateB        string        `json:"state_b"`
	Pattern       string        `json:"pattern"`
	NumCycles     int           `json:"num_cycles"`
	StepsPerCycle int           `json:"steps_per_cycle"`
	PhaseOffset   float64       `json:"phase_offset"`
	TotalSteps    int           `json:"total_steps"`
	Sequence      []sampleEntry `json:"sequence"`
}

type distanceInput struct {
	PatinaID1 string `json:"patina_id_1" jsonschema:"first canonical state id"`
	PatinaID2 string `json:"patina_id_2" jsonschema:"second canonical state id"`
}

type distanceOutput struct {
	PatinaID1         string             `json:"patina_id_1"`
	PatinaID2         string             `json:"patina_id_2"`
	EuclideanDistance float64            `json:"euclidean_distance"`
	PerParameterDiff  map[string]float64 `json:"per_parameter_diff"`
	AbsPerParameter   map[string]float64 `json:"abs_per_parameter"`
	MaxParameterDiff  float64            `json:"max_parameter_diff"`
	DominantAxis      string             `json:"dominant_axis"`
}

type trajectoryInput struct {
	StartPatinaID string `json:"start_patina_id" jsonschema:"starting canonical state id"`
	EndPatinaID   string `json:"end_patina_id" jsonschema:"target canonical state id"`
	NumSteps      *int   `json:"num_steps,omitempty" jsonschema:"number of interpolation steps (default 20)"`
}

type trajectoryEntry struct {
	Step              int                `json:"step"`
	T                 float64            `json:"t"`
	State             map[string]float64 `json:"state"`
	NearestVisualType string             `json:"nearest_visual_type"`
	VisualDistance    float64            `json:"visual_distance"`
	NearestCanonical  string             `json:"nearest_canonical"`
	CanonicalDistance float64            `json:"canonical_distance"`
}

type trajectoryOutput struct {
	Start         string            `json:"start"`
	End           string            `json:"end"`
	TotalDistance float64           `json:"total_distance"`
	NumSteps      int               `json:"num_steps"`
	Trajectory    []trajectoryEntry `json:"trajectory"`
}

type vocabularyInput struct {
	State    map[string]float64 `json:"state,omitempty" jsonschema:"coordinate keyed by axis name; give this or patina_id"`
	PatinaID string             `json:"patina_id,omitempty" jsonschema:"canonical state id to use as the coordinate; wins over state"`
	Strength *float64           `json:"strength,omitempty" jsonschema:"keyword weight multiplier in [0, 1] (default 1)"`
}

type vocabularyOutput struct {
	NearestVisualType     string               `json:"nearest_visual_type"`
	Distance              float64              `json:"distance"`
	Keywords              []string             `json:"keywords"`
	OpticalProperties     catalog.Optical      `json:"optical_properties"`
	ColorAssociations     []string             `json:"color_associations"`
	NearestCanonicalState string               `json:"nearest_canonical_state"`
	CanonicalDistance     float64              `json:"canonical_distance"`
	VocabularyByCategory  []categoryVocabulary `json:"vocabulary_by_category"`
	Strength              float64              `json:"strength"`
	InputState            map[string]float64   `json:"input_state"`
}

type attractorEntry struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Description       string             `json:"description"`
	BasinSize         *float64           `json:"basin_size,omitempty"`
	Classification    string             `json:"classification"`
	SourceDomains     []string           `json:"source_domains"`
	State             map[string]float64 `json:"state"`
	NearestVisualType string             `json:"nearest_visual_type"`
	VisualDistance    float64            `json:"visual_distance"`
}

type listAttractorsOutput struct {
	AttractorPresets []attractorEntry `json:"attractor_presets"`
	TotalPresets     int              `json:"total_presets"`
	ParameterNames   []string         `json:"parameter_names"`
}

// --- Tool handlers ---

func (s *Server) handleCanonicalStates(_ context.Context, _ noInput) (canonicalStatesOutput, error) {
	points := s.content.States().Points()
	out := canonicalStatesOutput{
		CanonicalStates: make([]stateEntry, 0, len(points)),
		ParameterNames:  morphospace.AxisNames(),
		Dimensionality:  morphospace.NumAxes,
		TotalStates:     len(points),
	}
	for _, p := range points {
		vt, err := morphospace.Nearest(p.Coordinate, s.content.VisualTypeCatalog())
		if err != nil {
			return canonicalStatesOutput{}, err
		}
		out.CanonicalStates = append(out.CanonicalStates, stateEntry{
			ID:                p.ID,
			Coordinates:       coord(p.Coordinate),
			NearestVisualType: vt.ID,
			VisualDistance:    r4(vt.Distance),
		})
	}
	return out, nil
}

func (s *Server) handleVisualTypes(_ context.Context, _ noInput) (visualTypesOutput, error) {
	vts := s.content.VisualTypes()
	out := visualTypesOutput{
		VisualTypes:    make([]visualTypeEntry, 0, len(vts)),
		TotalTypes:     len(vts),
		ParameterNames: morphospace.AxisNames(),
	}
	for _, vt := range vts {
		out.VisualTypes = append(out.VisualTypes, visualTypeEntry{
			ID:                vt.ID,
			Center:            coord(vt.Center),
			Keywords:          nonNil(vt.Keywords),
			Optical:           vt.Optical,
			ColorAssociations: nonNil(vt.ColorAssociations),
		})
	}
	return out, nil
}

func (s *Server) handleListPresets(_ context.Context, _ noInput) (listPresetsOutput, error) {
	presets := s.content.Presets()
	out := listPresetsOutput{
		Presets:      make([]presetEntry, 0, len(presets)),
		TotalPresets: len(presets),
		Periods:      periodsOf(s.content),
	}
	for _, p := range presets {
		out.Presets = append(out.Presets, toPresetEntry(p))
	}
	return out, nil
}

func (s *Server) handleApplyPreset(_ context.Context, in presetInput) (applyPresetOutput, error) {
	p, err := s.content.Preset(in.PresetName)
	if err != nil {
		return applyPresetOutput{}, err
	}
	samples, err := s.content.Sampler().Replay(p)
	if err != nil {
		return applyPresetOutput{}, err
	}
	s.metrics.AddSamples("replay", len(samples))
	return applyPresetOutput{
		Preset:      p.Name,
		Period:      p.Period,
		Pattern:     p.Waveform.String(),
		StateA:      p.StateA,
		StateB:      p.StateB,
		Description: p.Description,
		Sequence:    toSampleEntries(samples),
		TotalSteps:  len(samples),
	}, nil
}

func (s *Server) handleRhythmicSequence(_ context.Context, in rhythmicSequenceInput) (rhythmicSequenceOutput, error) {
	pattern := in.OscillationPattern
	if pattern == "" {
		pattern = morphospace.Sinusoidal.String()
	}
	w, err := morphospace.ParseWaveform(pattern)
	if err != nil {
		return rhythmicSequenceOutput{}, err
	}
	o := morphospace.Oscillation{
		StateA:        in.StateAID,
		StateB:        in.StateBID,
		Waveform:      w,
		Cycles:        intOr(in.NumCycles, 3),
		StepsPerCycle: intOr(in.StepsPerCycle, 20),
		PhaseOffset:   in.PhaseOffset,
	}
	samples, err := s.content.Sampler().Oscillate(o)
	if err != nil {
		return rhythmicSequenceOutput{}, err
	}
	s.metrics.AddSamples("oscillation", len(samples))
	return rhythmicSequenceOutput{
		StateA:        o.StateA,
		StateB:        o.StateB,
		Pattern:       w.String(),
		NumCycles:     o.Cycles,
		StepsPerCycle: o.StepsPerCycle,
		PhaseOffset:   o.PhaseOffset,
		TotalSteps:    len(samples),
		Sequence:      toSampleEntries(samples),
	}, nil
}

func (s *Server) handleDistance(_ context.Context, in distanceInput) (distanceOutput, error) {
	a, err := s.content.States().Lookup(in.PatinaID1)
	if err != nil {
		return distanceOutput{}, err
	}
	b, err := s.content.States().Lookup(in.PatinaID2)
	if err != nil {
		return distanceOutput{}, err
	}
	cmp := morphospace.Compare(a, b)
	return distanceOutput{
		PatinaID1:         in.PatinaID1,
		PatinaID2:         in.PatinaID2,
		EuclideanDistance: r4(cmp.Distance),
		PerParameterDiff:  coord(cmp.Diff),
		AbsPerParameter:   coord(cmp.AbsDiff),
		MaxParameterDiff:  r4(cmp.MaxAbsDiff),
		DominantAxis:      cmp.DominantAxis.String(),
	}, nil
}

func (s *Server) handleTrajectory(_ context.Context, in trajectoryInput) (trajectoryOutput, error) {
	steps := intOr(in.NumSteps, 20)
	samples, err := s.content.Sampler().Trajectory(in.StartPatinaID, in.EndPatinaID, steps)
	if err != nil {
		return trajectoryOutput{}, err
	}
	s.metrics.AddSamples("trajectory", len(samples))

	a, _ := s.content.States().Lookup(in.StartPatinaID)
	b, _ := s.content.States().Lookup(in.EndPatinaID)
	out := trajectoryOutput{
		Start:         in.StartPatinaID,
		End:           in.EndPatinaID,
		TotalDistance: r4(morphospace.Distance(a, b)),
		NumSteps:      steps,
		Trajectory:    make([]trajectoryEntry, 0, len(samples)),
	}
	for _, sm := range samples {
		out.Trajectory = append(out.Trajectory, trajectoryEntry{
			Step:              sm.Step,
			T:                 r4(sm.Phase),
			State:             coord(sm.Coordinate),
			NearestVisualType: sm.VisualType.ID,
			VisualDistance:    r4(sm.VisualType.Distance),
			NearestCanonical:  sm.CanonicalState.ID,
			CanonicalDistance: r4(sm.CanonicalState.Distance),
		})
	}
	return out, nil
}

func (s *Server) handleVocabulary(_ context.Context, in vocabularyInput) (vocabularyOutput, error) {
	const op = "extract vocabulary"
	var state morphospace.Coordinate
	switch {
	case in.PatinaID != "":
		c, err := s.content.States().Lookup(in.PatinaID)
		if err != nil {
			return vocabularyOutput{}, err
		}
		state = c
	case in.State != nil:
		c, err := morphospace.ParseCoordinate(in.State)
		if err != nil {
			return vocabularyOutput{}, err
		}
		state = c
	default:
		return vocabularyOutput{}, morphospace.Validationf(op, "provide either state or patina_id")
	}

	strength := 1.0
	if in.Strength != nil {
		strength = *in.Strength
	}
	if strength < 0 || strength > 1 {
		return vocabularyOutput{}, morphospace.Validationf(op, "strength %g outside [0, 1]", strength)
	}

	visual, canonical, err := s.content.Sampler().Classify(state)
	if err != nil {
		return vocabularyOutput{}, err
	}
	vt, err := s.content.VisualType(visual.ID)
	if err != nil {
		return vocabularyOutput{}, err
	}
	return vocabularyOutput{
		NearestVisualType:     visual.ID,
		Distance:              r4(visual.Distance),
		Keywords:              nonNil(vt.Keywords),
		OpticalProperties:     vt.Optical,
		ColorAssociations:     nonNil(vt.ColorAssociations),
		NearestCanonicalState: canonical.ID,
		CanonicalDistance:     r4(canonical.Distance),
		VocabularyByCategory:  vocabularyEntries(s.content.Vocabulary().Select(state)),
		Strength:              strength,
		InputState:            coord(state),
	}, nil
}

func (s *Server) handleListAttractors(_ context.Context, _ noInput) (listAttractorsOutput, error) {
	attractors := s.content.Attractors()
	out := listAttractorsOutput{
		AttractorPresets: make([]attractorEntry, 0, len(attractors)),
		TotalPresets:     len(attractors),
		ParameterNames:   morphospace.AxisNames(),
	}
	for _, a := range attractors {
		vt, err := morphospace.Nearest(a.Coordinate, s.content.VisualTypeCatalog())
		if err != nil {
			return listAttractorsOutput{}, err
		}
		out.AttractorPresets = append(out.AttractorPresets, attractorEntry{
			ID:                a.ID,
			Name:              a.Name,
			Description:       a.Description,
			BasinSize:         a.BasinSize,
			Classification:    a.Classification,
			SourceDomains:     nonNil(a.SourceDomains),
			State:             coord(a.Coordinate),
			NearestVisualType: vt.ID,
			VisualDistance:    r4(vt.Distance),
		})
	}
	return out, nil
}
