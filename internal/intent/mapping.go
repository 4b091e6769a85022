package intent

import (
	"fmt"

	"patina/internal/catalog"
	"patina/internal/morphospace"
)

// Params selects a material, condition and rendering emphasis. Empty
// fields take the package defaults.
type Params struct {
	Material  string
	Condition string
	Agent     string
	Intensity string
	Emphasis  string
}

func (p Params) withDefaults() Params {
	if p.Condition == "" {
		p.Condition = DefaultCondition
	}
	if p.Agent == "" {
		p.Agent = DefaultAgent
	}
	if p.Intensity == "" {
		p.Intensity = DefaultIntensity
	}
	if p.Emphasis == "" {
		p.Emphasis = DefaultEmphasis
	}
	return p
}

var intensityWeights = map[string]float64{
	"subtle":   0.6,
	"moderate": 1.0,
	"dramatic": 1.5,
}

var emphasisCategories = map[string]morphospace.Category{
	"surface":    morphospace.SurfaceTexture,
	"color":      morphospace.ColorTransformation,
	"structure":  morphospace.StructuralIntegrity,
	"biological": morphospace.BiologicalColonization,
	"temporal":   morphospace.TemporalEvidence,
	"light":      morphospace.LightInteraction,
}

// Mapping is the visual parameter set for one material and condition.
type Mapping struct {
	Material          string
	MaterialName      string
	Condition         string
	Agent             string
	Intensity         string
	Emphasis          string
	Weight            float64
	StateID           string
	State             morphospace.Coordinate
	VisualType        morphospace.Match
	Optical           catalog.Optical
	ColorStage        string
	MaterialMarkers   []string
	AgentIndicators   []string
	PrimaryVocabulary []string
	Vocabulary        morphospace.Selection
	Keywords          []string
	ColorAssociations []string
}

// stateForGrade picks the canonical state that stands in for a condition
// grade. Two grades depend on the material.
func stateForGrade(material, grade string) string {
	switch grade {
	case "pristine":
		return "fresh_pristine"
	case "light_weathering":
		return "gentle_patina"
	case "moderate_weathering":
		if material == "copper_alloy" {
			return "noble_verdigris"
		}
		return "cracked_glaze"
	case "advanced_decay":
		if material == "ferrous_metal" {
			return "deep_rust"
		}
		return "stone_erosion"
	case "severe_deterioration":
		return "stone_erosion"
	case "ruin":
		return "total_ruin"
	}
	return "gentle_patina"
}

// MapParameters resolves p against the taxonomy and the morphospace.
// Unknown materials and grades are errors; an unknown agent falls back to
// water, and unknown intensity or emphasis take the moderate weight and
// surface category.
func (c *Classifier) MapParameters(p Params) (*Mapping, error) {
	p = p.withDefaults()
	tax := c.content.Taxonomy()
	mat, err := tax.Material(p.Material)
	if err != nil {
		return nil, err
	}
	grade, err := tax.Grade(p.Condition)
	if err != nil {
		return nil, err
	}
	agent, err := tax.Agent(p.Agent)
	if err != nil {
		if agent, err = tax.Agent(DefaultAgent); err != nil {
			return nil, err
		}
	}

	stateID := stateForGrade(p.Material, p.Condition)
	state, err := c.content.States().Lookup(stateID)
	if err != nil {
		return nil, fmt.Errorf("map parameters: %w", err)
	}
	visual, err := morphospace.Nearest(state, c.content.VisualTypeCatalog())
	if err != nil {
		return nil, err
	}
	vt, err := c.content.VisualType(visual.ID)
	if err != nil {
		return nil, err
	}
	sel := c.content.Vocabulary().Select(state)

	weight, ok := intensityWeights[p.Intensity]
	if !ok {
		weight = 1.0
	}
	cat, ok := emphasisCategories[p.Emphasis]
	if !ok {
		cat = morphospace.SurfaceTexture
	}

	gi := grade.Grade - 1
	return &Mapping{
		Material:          p.Material,
		MaterialName:      mat.Name,
		Condition:         p.Condition,
		Agent:             p.Agent,
		Intensity:         p.Intensity,
		Emphasis:          p.Emphasis,
		Weight:            weight,
		StateID:           stateID,
		State:             state,
		VisualType:        visual,
		Optical:           vt.Optical,
		ColorStage:        colorStage(mat.ColorProgression, gi),
		MaterialMarkers:   markerWindow(mat.VisualMarkers, gi),
		AgentIndicators:   agent.VisualIndicators,
		PrimaryVocabulary: sel.Lookup(cat),
		Vocabulary:        sel,
		Keywords:          vt.Keywords,
		ColorAssociations: vt.ColorAssociations,
	}, nil
}

// markerWindow returns up to three markers centred on the grade index,
// clamped to the list.
func markerWindow(markers []string, gi int) []string {
	if len(markers) == 0 {
		return []string{}
	}
	mi := min(gi, len(markers)-1)
	lo := max(0, mi-1)
	hi := min(len(markers), mi+2)
	return append([]string(nil), markers[lo:hi]...)
}

func colorStage(progression []string, gi int) string {
	if len(progression) == 0 {
		return ""
	}
	return progression[min(gi, len(progression)-1)]
}
