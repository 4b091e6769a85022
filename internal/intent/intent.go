// Package intent classifies free-text weathering intent against the
// taxonomy keyword tables and maps the result onto morphospace parameters.
package intent

import (
	"strings"

	"patina/internal/catalog"
	"patina/internal/morphospace"
)

// Defaults applied when the intent text names nothing for a slot.
const (
	DefaultMaterial  = "ferrous_metal"
	DefaultAesthetic = "wabi_sabi"
	DefaultCondition = "moderate_weathering"
	DefaultAgent     = "water"
	DefaultIntensity = "moderate"
	DefaultEmphasis  = "surface"
)

var defaultAgents = []string{"water", "uv_solar"}

// Matches holds the ids matched per keyword table, in table order.
type Matches struct {
	Materials  []string `json:"materials"`
	Agents     []string `json:"agents"`
	Conditions []string `json:"conditions"`
	Aesthetics []string `json:"aesthetics"`
}

// Total is the number of matched ids across all tables.
func (m Matches) Total() int {
	return len(m.Materials) + len(m.Agents) + len(m.Conditions) + len(m.Aesthetics)
}

// MaterialDetails is the short material summary attached to a classification.
type MaterialDetails struct {
	Name                 string `json:"name"`
	CharacteristicPatina string `json:"characteristic_patina"`
}

// Classification is the structured reading of an intent text.
type Classification struct {
	PrimaryMaterial       string          `json:"primary_material"`
	MaterialDetails       MaterialDetails `json:"material_details"`
	PrimaryAgents         []string        `json:"primary_agents"`
	ConditionGrade        string          `json:"condition_grade"`
	ConditionDetails      catalog.Grade   `json:"condition_details"`
	AestheticMode         string          `json:"aesthetic_mode"`
	NearestCanonicalState string          `json:"nearest_canonical_state"`
	Confidence            float64         `json:"confidence"`
	MatchedKeywords       Matches         `json:"matched_keywords"`
}

// Classifier reads intent against one content set.
type Classifier struct {
	content *catalog.Content
}

// New returns a Classifier over c.
func New(c *catalog.Content) *Classifier {
	return &Classifier{content: c}
}

// Extract matches text against every keyword table. An entry matches when
// any of its patterns occurs in the lower-cased text.
func (c *Classifier) Extract(text string) Matches {
	lower := strings.ToLower(text)
	kw := c.content.Keywords()
	return Matches{
		Materials:  matchTable(kw.Materials, lower),
		Agents:     matchTable(kw.Agents, lower),
		Conditions: matchTable(kw.Conditions, lower),
		Aesthetics: matchTable(kw.Aesthetics, lower),
	}
}

func matchTable(entries []catalog.KeywordEntry, lower string) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if len(e.Match(lower)) > 0 {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

var conditionToState = map[string]string{
	"pristine":             "fresh_pristine",
	"light_weathering":     "gentle_patina",
	"moderate_weathering":  "noble_verdigris",
	"advanced_decay":       "deep_rust",
	"severe_deterioration": "stone_erosion",
	"ruin":                 "total_ruin",
}

// Classify reads text into a material, agents, condition grade and
// aesthetic, filling gaps with defaults.
func (c *Classifier) Classify(text string) (*Classification, error) {
	m := c.Extract(text)

	material := DefaultMaterial
	if len(m.Materials) > 0 {
		material = m.Materials[0]
	}
	agents := defaultAgents
	if len(m.Agents) > 0 {
		agents = m.Agents
	}
	condition := inferCondition(text)
	if len(m.Conditions) > 0 {
		condition = m.Conditions[0]
	}
	aesthetic := DefaultAesthetic
	if len(m.Aesthetics) > 0 {
		aesthetic = m.Aesthetics[0]
	}
	state, ok := conditionToState[condition]
	if !ok {
		state = "gentle_patina"
	}

	tax := c.content.Taxonomy()
	mat, err := tax.Material(material)
	if err != nil {
		return nil, err
	}
	grade, err := tax.Grade(condition)
	if err != nil {
		return nil, err
	}

	confidence := min(float64(m.Total())/5, 1)
	return &Classification{
		PrimaryMaterial:       material,
		MaterialDetails:       MaterialDetails{Name: mat.Name, CharacteristicPatina: mat.CharacteristicPatina},
		PrimaryAgents:         append([]string(nil), agents...),
		ConditionGrade:        condition,
		ConditionDetails:      grade,
		AestheticMode:         aesthetic,
		NearestCanonicalState: state,
		Confidence:            morphospace.Round(max(confidence, 0.3), 2),
		MatchedKeywords:       m,
	}, nil
}

// inferCondition guesses a grade from age words when no condition
// keyword matched.
func inferCondition(text string) string {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "old", "ancient", "centuries"):
		return "advanced_decay"
	case containsAny(lower, "aged", "vintage", "antique"):
		return "moderate_weathering"
	case containsAny(lower, "new", "clean", "fresh"):
		return "pristine"
	}
	return DefaultCondition
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
