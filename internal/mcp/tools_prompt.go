package mcp

import (
	"context"

	"patina/internal/catalog"
	"patina/internal/morphospace"
	"patina/internal/prompt"
)

func (s *Server) registerPromptTools() {
	addTool(s, "generate_patina_attractor_prompt",
		"Render an image prompt from an attractor id or a custom coordinate. Modes: composite, split_view, sequence.",
		s.handleAttractorPrompt)
	addTool(s, "generate_patina_sequence_prompts",
		"Render evenly spaced keyframe prompts from one rhythmic preset.",
		s.handleSequencePrompts)
	addTool(s, "get_patina_domain_registry_config",
		"Get the patina domain description used by multi-domain composition registries.",
		s.handleRegistryConfig)
	addTool(s, "get_server_info",
		"Get server metadata, capabilities and content counts.",
		s.handleServerInfo)
}

// --- Tool input/output types ---

type attractorPromptInput struct {
	AttractorID   string             `json:"attractor_id,omitempty" jsonschema:"attractor id, e.g. period_30 or bifurcation_edge"`
	CustomState   map[string]float64 `json:"custom_state,omitempty" jsonschema:"custom coordinate keyed by axis name; wins over attractor_id"`
	Mode          string             `json:"mode,omitempty" jsonschema:"composite, split_view or sequence (default composite)"`
	StyleModifier string             `json:"style_modifier,omitempty" jsonschema:"optional prefix such as 'oil painting'"`
	KeyframeCount *int               `json:"keyframe_count,omitempty" jsonschema:"keyframes for sequence mode (default 4)"`
}

type keyframeEntry struct {
	Keyframe          int                `json:"keyframe"`
	Step              int                `json:"step"`
	Phase             float64            `json:"phase"`
	Prompt            string             `json:"prompt"`
	NearestVisualType string             `json:"nearest_visual_type"`
	VisualDistance    float64            `json:"visual_distance"`
	State             map[string]float64 `json:"state"`
}

func toKeyframeEntries(kfs []prompt.Keyframe) []keyframeEntry {
	out := make([]keyframeEntry, 0, len(kfs))
	for _, kf := range kfs {
		out = append(out, keyframeEntry{
			Keyframe:          kf.Index,
			Step:              kf.Step,
			Phase:             r4(kf.Phase),
			Prompt:            kf.Prompt,
			NearestVisualType: kf.VisualType.ID,
			VisualDistance:    r4(kf.VisualType.Distance),
			State:             coord(kf.State),
		})
	}
	return out
}

type attractorPromptOutput struct {
	Mode                  string                  `json:"mode"`
	Prompt                string                  `json:"prompt,omitempty"`
	Panels                []prompt.Panel          `json:"panels,omitempty"`
	PresetUsed            string                  `json:"preset_used,omitempty"`
	PresetPeriod          int                     `json:"preset_period,omitempty"`
	KeyframeCount         int                     `json:"keyframe_count,omitempty"`
	Keyframes             []keyframeEntry         `json:"keyframes,omitempty"`
	NearestVisualType     string                  `json:"nearest_visual_type"`
	VisualDistance        float64                 `json:"visual_distance"`
	NearestCanonicalState string                  `json:"nearest_canonical_state"`
	CanonicalDistance     float64                 `json:"canonical_distance"`
	OpticalProperties     catalog.Optical         `json:"optical_properties"`
	ColorAssociations     []string                `json:"color_associations"`
	Attractor             prompt.AttractorSummary `json:"attractor"`
	State                 map[string]float64      `json:"state"`
}

type sequencePromptsInput struct {
	PresetName    string `json:"preset_name" jsonschema:"rhythmic preset name"`
	KeyframeCount *int   `json:"keyframe_count,omitempty" jsonschema:"keyframes to extract (default 4)"`
	StyleModifier string `json:"style_modifier,omitempty" jsonschema:"optional style prefix for every prompt"`
}

type sequencePromptsOutput struct {
	Preset        string          `json:"preset"`
	Period        int             `json:"period"`
	KeyframeCount int             `json:"keyframe_count"`
	Keyframes     []keyframeEntry `json:"keyframes"`
}

type registryPreset struct {
	Name        string `json:"name"`
	Period      int    `json:"period"`
	StateAID    string `json:"state_a_id"`
	StateBID    string `json:"state_b_id"`
	Pattern     string `json:"pattern"`
	Description string `json:"description"`
}

type registryAttractor struct {
	Name           string             `json:"name"`
	BasinSize      *float64           `json:"basin_size,omitempty"`
	Classification string             `json:"classification"`
	State          map[string]float64 `json:"state"`
}

type registryOutput struct {
	DomainID            string                        `json:"domain_id"`
	DisplayName         string                        `json:"display_name"`
	Description         string                        `json:"description"`
	MCPServer           string                        `json:"mcp_server"`
	ParameterNames      []string                      `json:"parameter_names"`
	StateCoordinates    map[string]map[string]float64 `json:"state_coordinates"`
	Presets             map[string]registryPreset     `json:"presets"`
	Vocabulary          map[string][]string           `json:"vocabulary"`
	Periods             []int                         `json:"periods"`
	AttractorPresets    map[string]registryAttractor  `json:"attractor_presets"`
	DomainRegistryReady bool                          `json:"domain_registry_ready"`
}

type domainCoverage struct {
	MaterialCategories  int `json:"material_categories"`
	WeatheringAgents    int `json:"weathering_agents"`
	ConditionGrades     int `json:"condition_grades"`
	CanonicalStates     int `json:"canonical_states"`
	VisualTypes         int `json:"visual_types"`
	ParameterDimensions int `json:"parameter_dimensions"`
}

type rhythmCapabilities struct {
	PresetCount           int      `json:"preset_count"`
	Periods               []int    `json:"periods"`
	PresetNames           []string `json:"preset_names"`
	CustomOscillation     bool     `json:"custom_oscillation"`
	TrajectoryComputation bool     `json:"trajectory_computation"`
	Patterns              []string `json:"patterns"`
}

type attractorCapabilities struct {
	AttractorPresets    []string `json:"attractor_presets"`
	PromptModes         []string `json:"prompt_modes"`
	VisualVocabulary    bool     `json:"visual_vocabulary"`
	DomainRegistryReady bool     `json:"domain_registry_ready"`
}

type serverInfoOutput struct {
	Name                  string                `json:"name"`
	Version               string                `json:"version"`
	Architecture          string                `json:"architecture"`
	Description           string                `json:"description"`
	Layers                map[string]string     `json:"layers"`
	DomainCoverage        domainCoverage        `json:"domain_coverage"`
	Rhythm                rhythmCapabilities    `json:"rhythmic_composition"`
	Attractors            attractorCapabilities `json:"attractor_visualization"`
	ScienceFoundation     []string              `json:"science_foundation"`
	AestheticApplications []string              `json:"aesthetic_applications"`
	CompatibleServers     []string              `json:"compatible_servers"`
}

// --- Tool handlers ---

func (s *Server) handleAttractorPrompt(_ context.Context, in attractorPromptInput) (attractorPromptOutput, error) {
	modeName := in.Mode
	if modeName == "" {
		modeName = prompt.Composite.String()
	}
	mode, err := prompt.ParseMode(modeName)
	if err != nil {
		return attractorPromptOutput{}, err
	}
	target, err := parseOptionalCoordinate(in.CustomState)
	if err != nil {
		return attractorPromptOutput{}, err
	}

	res, err := s.assembler.Assemble(prompt.Request{
		AttractorID:   in.AttractorID,
		Coordinate:    target,
		Mode:          mode,
		Style:         in.StyleModifier,
		KeyframeCount: intOr(in.KeyframeCount, prompt.DefaultKeyframeCount),
	})
	if err != nil {
		return attractorPromptOutput{}, err
	}

	out := attractorPromptOutput{
		Mode:                  res.Mode.String(),
		Prompt:                res.Prompt,
		Panels:                res.Panels,
		NearestVisualType:     res.VisualType.ID,
		VisualDistance:        r4(res.VisualType.Distance),
		NearestCanonicalState: res.CanonicalState.ID,
		CanonicalDistance:     r4(res.CanonicalState.Distance),
		OpticalProperties:     res.Optical,
		ColorAssociations:     nonNil(res.ColorAssociations),
		Attractor:             res.Attractor,
		State:                 coord(res.State),
	}
	if res.Mode == prompt.Sequence {
		out.PresetUsed = res.Preset
		out.PresetPeriod = res.PresetPeriod
		out.KeyframeCount = len(res.Keyframes)
		out.Keyframes = toKeyframeEntries(res.Keyframes)
		s.metrics.AddSamples("keyframes", len(res.Keyframes))
	}
	return out, nil
}

func (s *Server) handleSequencePrompts(_ context.Context, in sequencePromptsInput) (sequencePromptsOutput, error) {
	count := intOr(in.KeyframeCount, prompt.DefaultKeyframeCount)
	seq, err := s.assembler.PresetKeyframes(in.PresetName, count, in.StyleModifier)
	if err != nil {
		return sequencePromptsOutput{}, err
	}
	s.metrics.AddSamples("keyframes", len(seq.Keyframes))
	return sequencePromptsOutput{
		Preset:        seq.Preset.Name,
		Period:        seq.Preset.Period,
		KeyframeCount: count,
		Keyframes:     toKeyframeEntries(seq.Keyframes),
	}, nil
}

func (s *Server) handleRegistryConfig(_ context.Context, _ noInput) (registryOutput, error) {
	out := registryOutput{
		DomainID:            "patina",
		DisplayName:         "Patina & Weathering",
		Description:         "Conservation science weathering aesthetic composition",
		MCPServer:           "patina-weathering-mcp",
		ParameterNames:      morphospace.AxisNames(),
		StateCoordinates:    make(map[string]map[string]float64),
		Presets:             make(map[string]registryPreset),
		Vocabulary:          make(map[string][]string),
		Periods:             periodsOf(s.content),
		AttractorPresets:    make(map[string]registryAttractor),
		DomainRegistryReady: true,
	}
	for _, p := range s.content.States().Points() {
		out.StateCoordinates[p.ID] = coord(p.Coordinate)
	}
	for _, p := range s.content.Presets() {
		out.Presets[p.Name] = registryPreset{
			Name:        p.Name,
			Period:      p.Period,
			StateAID:    p.StateA,
			StateBID:    p.StateB,
			Pattern:     p.Waveform.String(),
			Description: p.Description,
		}
	}
	for _, vt := range s.content.VisualTypes() {
		out.Vocabulary[vt.ID] = nonNil(vt.Keywords)
	}
	for _, a := range s.content.Attractors() {
		out.AttractorPresets[a.ID] = registryAttractor{
			Name:           a.Name,
			BasinSize:      a.BasinSize,
			Classification: a.Classification,
			State:          coord(a.Coordinate),
		}
	}
	return out, nil
}

func (s *Server) handleServerInfo(_ context.Context, _ noInput) (serverInfoOutput, error) {
	tax := s.content.Taxonomy()
	return serverInfoOutput{
		Name:         s.name,
		Version:      s.version,
		Architecture: "three_layer_olog",
		Description: "Conservation-science weathering composition. Rhythmic presets for temporal " +
			"composition and attractor visualization for multi-domain emergence add a time axis " +
			"to every material domain.",
		Layers: map[string]string{
			"layer_1": "Pure taxonomy (materials, agents, condition grades, visual types)",
			"layer_2": "Deterministic mapping (intent classification, parameter selection, rhythmic presets, trajectory computation, distance, vocabulary, attractor prompts)",
			"layer_3": "Synthesis interface (structured data for creative composition)",
		},
		DomainCoverage: domainCoverage{
			MaterialCategories:  len(tax.Materials),
			WeatheringAgents:    len(tax.Agents),
			ConditionGrades:     len(tax.Grades),
			CanonicalStates:     s.content.States().Len(),
			VisualTypes:         s.content.VisualTypeCatalog().Len(),
			ParameterDimensions: morphospace.NumAxes,
		},
		Rhythm: rhythmCapabilities{
			PresetCount:           len(s.content.Presets()),
			Periods:               periodsOf(s.content),
			PresetNames:           s.content.PresetNames(),
			CustomOscillation:     true,
			TrajectoryComputation: true,
			Patterns:              morphospace.WaveformNames(),
		},
		Attractors: attractorCapabilities{
			AttractorPresets:    s.content.AttractorIDs(),
			PromptModes:         prompt.ModeNames(),
			VisualVocabulary:    true,
			DomainRegistryReady: true,
		},
		ScienceFoundation: []string{
			"Conservation science condition assessment",
			"Materials engineering degradation mechanisms",
			"Geological weathering processes",
			"Archaeological stratigraphy",
			"Wabi-sabi aesthetic philosophy",
		},
		AestheticApplications: []string{
			"Architectural photography (patinated surfaces)",
			"Still life (antique objects)",
			"Concept art (post-apocalyptic, ruins)",
			"Product design (intentional aging, Corten steel)",
			"Museum/conservation documentation",
			"Historical reconstruction (period-accurate wear)",
		},
		CompatibleServers: []string{
			"catastrophe-morph-mcp",
			"diatom-morphology-mcp",
			"surface-design-aesthetics",
			"microscopy-aesthetics-mcp",
			"stage-lighting-mcp",
			"splash-aesthetics-mcp",
			"aesthetic-dynamics-core",
			"composition-graph-mcp",
		},
	}, nil
}
