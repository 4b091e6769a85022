package catalog

import (
	"fmt"
	"strings"

	"patina/internal/morphospace"

	"gopkg.in/yaml.v3"
)

// Material is a weathering material category.
type Material struct {
	ID                   string   `yaml:"id" json:"id"`
	Name                 string   `yaml:"name" json:"name"`
	Description          string   `yaml:"description" json:"description"`
	Examples             []string `yaml:"examples" json:"examples"`
	PrimaryWeathering    string   `yaml:"primary_weathering" json:"primary_weathering"`
	CharacteristicPatina string   `yaml:"characteristic_patina" json:"characteristic_patina"`
	ColorProgression     []string `yaml:"color_progression" json:"color_progression"`
	TimeScale            string   `yaml:"time_scale" json:"time_scale"`
	VisualMarkers        []string `yaml:"visual_markers" json:"visual_markers"`
}

// Severity describes an agent at three strengths.
type Severity struct {
	Mild     string `yaml:"mild" json:"mild"`
	Moderate string `yaml:"moderate" json:"moderate"`
	Severe   string `yaml:"severe" json:"severe"`
}

// Agent is a weathering agent.
type Agent struct {
	ID               string   `yaml:"id" json:"id"`
	Name             string   `yaml:"name" json:"name"`
	Mechanisms       []string `yaml:"mechanisms" json:"mechanisms"`
	VisualIndicators []string `yaml:"visual_indicators" json:"visual_indicators"`
	SeverityMarkers  Severity `yaml:"severity_markers" json:"severity_markers"`
}

// Grade is a conservation condition grade; Grade runs 1 (pristine) to 6 (ruin).
type Grade struct {
	ID                 string `yaml:"id" json:"id"`
	Grade              int    `yaml:"grade" json:"grade"`
	Description        string `yaml:"description" json:"description"`
	Structural         string `yaml:"structural" json:"structural"`
	Surface            string `yaml:"surface" json:"surface"`
	InterventionNeeded string `yaml:"intervention_needed" json:"intervention_needed"`
}

// Taxonomy is the material, agent and condition-grade reference.
type Taxonomy struct {
	Materials []Material `yaml:"materials"`
	Agents    []Agent    `yaml:"agents"`
	Grades    []Grade    `yaml:"condition_grades"`
}

func loadTaxonomy() (Taxonomy, error) {
	data, err := contentFS.ReadFile(taxonomyFile)
	if err != nil {
		return Taxonomy{}, fmt.Errorf("read embedded taxonomy: %w", err)
	}
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Taxonomy{}, fmt.Errorf("parse taxonomy yaml: %w", err)
	}
	if len(t.Materials) == 0 || len(t.Agents) == 0 || len(t.Grades) == 0 {
		return Taxonomy{}, fmt.Errorf("taxonomy: materials, agents and condition grades are all required")
	}
	for _, g := range t.Grades {
		if g.Grade < 1 {
			return Taxonomy{}, fmt.Errorf("condition grade %q: grade must be at least 1", g.ID)
		}
	}
	return t, nil
}

// Material returns the material with the given id.
func (t *Taxonomy) Material(id string) (Material, error) {
	for _, m := range t.Materials {
		if m.ID == id {
			return m, nil
		}
	}
	return Material{}, morphospace.NotFound("material", "material", id, t.MaterialIDs())
}

// MaterialIDs lists material ids in declaration order.
func (t *Taxonomy) MaterialIDs() []string {
	ids := make([]string, len(t.Materials))
	for i, m := range t.Materials {
		ids[i] = m.ID
	}
	return ids
}

// Agent returns the agent with the given id.
func (t *Taxonomy) Agent(id string) (Agent, error) {
	for _, a := range t.Agents {
		if a.ID == id {
			return a, nil
		}
	}
	return Agent{}, morphospace.NotFound("agent", "agent", id, t.AgentIDs())
}

// AgentIDs lists agent ids in declaration order.
func (t *Taxonomy) AgentIDs() []string {
	ids := make([]string, len(t.Agents))
	for i, a := range t.Agents {
		ids[i] = a.ID
	}
	return ids
}

// Grade returns the condition grade with the given id.
func (t *Taxonomy) Grade(id string) (Grade, error) {
	for _, g := range t.Grades {
		if g.ID == id {
			return g, nil
		}
	}
	return Grade{}, morphospace.NotFound("condition grade", "condition grade", id, t.GradeIDs())
}

// GradeIDs lists condition-grade ids in declaration order.
func (t *Taxonomy) GradeIDs() []string {
	ids := make([]string, len(t.Grades))
	for i, g := range t.Grades {
		ids[i] = g.ID
	}
	return ids
}

// KeywordEntry matches an id when any pattern occurs in the intent text.
type KeywordEntry struct {
	ID       string   `yaml:"id"`
	Patterns []string `yaml:"patterns"`
}

// Match returns the patterns of e found in the lower-cased text.
func (e KeywordEntry) Match(lower string) []string {
	var hits []string
	for _, p := range e.Patterns {
		if strings.Contains(lower, p) {
			hits = append(hits, p)
		}
	}
	return hits
}

// KeywordTables are the intent keyword tables, each tried in order.
type KeywordTables struct {
	Materials  []KeywordEntry `yaml:"materials"`
	Agents     []KeywordEntry `yaml:"agents"`
	Conditions []KeywordEntry `yaml:"conditions"`
	Aesthetics []KeywordEntry `yaml:"aesthetics"`
}

func loadKeywords() (KeywordTables, error) {
	data, err := contentFS.ReadFile(keywordsFile)
	if err != nil {
		return KeywordTables{}, fmt.Errorf("read embedded keywords: %w", err)
	}
	var k KeywordTables
	if err := yaml.Unmarshal(data, &k); err != nil {
		return KeywordTables{}, fmt.Errorf("parse keywords yaml: %w", err)
	}
	return k, nil
}
