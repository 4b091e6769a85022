package intent

// EnhanceOptions overrides the classified material and condition.
type EnhanceOptions struct {
	Material  string
	Condition string
	Intensity string
}

// MaterialContext is the material background handed to prompt synthesis.
type MaterialContext struct {
	Name                 string   `json:"name"`
	CharacteristicPatina string   `json:"characteristic_patina"`
	ColorProgression     []string `json:"color_progression"`
	TimeScale            string   `json:"time_scale"`
}

// SynthesisInstructions tell a downstream writer how to use the package.
type SynthesisInstructions struct {
	Task       string   `json:"task"`
	Approach   string   `json:"approach"`
	Emphasis   string   `json:"emphasis"`
	Guidelines []string `json:"guidelines"`
}

// Enhancement bundles everything derived from one intent text.
type Enhancement struct {
	Intent         string
	Intensity      string
	Classification *Classification
	Mapping        *Mapping
	Material       MaterialContext
	Instructions   SynthesisInstructions
}

var synthesisGuidelines = []string{
	"Use material_specific_markers for physical accuracy",
	"Reference color_progression for current weathering stage",
	"Translate agent_visual_indicators into observable surface evidence",
	"Maintain specificity — name the oxide, the organism, the fracture mode",
	"Preserve the aesthetic_character value (wabi-sabi vs destructive)",
	"Describe patina as surface evidence not metaphor",
}

// Enhance classifies text, applies overrides and maps the result to
// visual parameters.
func (c *Classifier) Enhance(text string, opts EnhanceOptions) (*Enhancement, error) {
	if opts.Intensity == "" {
		opts.Intensity = DefaultIntensity
	}
	cls, err := c.Classify(text)
	if err != nil {
		return nil, err
	}
	material := cls.PrimaryMaterial
	if opts.Material != "" {
		material = opts.Material
	}
	condition := cls.ConditionGrade
	if opts.Condition != "" {
		condition = opts.Condition
	}
	agent := DefaultAgent
	if len(cls.PrimaryAgents) > 0 {
		agent = cls.PrimaryAgents[0]
	}

	m, err := c.MapParameters(Params{
		Material:  material,
		Condition: condition,
		Agent:     agent,
		Intensity: opts.Intensity,
	})
	if err != nil {
		return nil, err
	}
	mat, err := c.content.Taxonomy().Material(material)
	if err != nil {
		return nil, err
	}

	return &Enhancement{
		Intent:         text,
		Intensity:      opts.Intensity,
		Classification: cls,
		Mapping:        m,
		Material: MaterialContext{
			Name:                 mat.Name,
			CharacteristicPatina: mat.CharacteristicPatina,
			ColorProgression:     mat.ColorProgression,
			TimeScale:            mat.TimeScale,
		},
		Instructions: SynthesisInstructions{
			Task:       "Synthesize image generation prompt from deterministic weathering parameters",
			Approach:   "Translate conservation science taxonomy into concrete visual descriptors",
			Emphasis:   "Apply " + opts.Intensity + " intensity to vocabulary selection",
			Guidelines: append([]string(nil), synthesisGuidelines...),
		},
	}, nil
}
