package morphospace

import (
	"math"
	"strconv"
)

// Category is one graded vocabulary dimension.
type Category int

const (
	SurfaceTexture Category = iota
	ColorTransformation
	StructuralIntegrity
	BiologicalColonization
	LightInteraction
	TemporalEvidence

	NumCategories = 6
)

var categoryNames = [NumCategories]string{
	"surface_texture",
	"color_transformation",
	"structural_integrity",
	"biological_colonization",
	"light_interaction",
	"temporal_evidence",
}

func (c Category) String() string {
	if c < 0 || int(c) >= NumCategories {
		return "category(" + strconv.Itoa(int(c)) + ")"
	}
	return categoryNames[c]
}

// Categories returns every category in selection order.
func Categories() []Category {
	out := make([]Category, NumCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// CategoryNames lists category names in selection order.
func CategoryNames() []string {
	return append([]string(nil), categoryNames[:]...)
}

// ParseCategory resolves a category name.
func ParseCategory(name string) (Category, error) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return 0, &Error{
		Kind:    KindValidation,
		Op:      "parse category",
		Message: "unknown vocabulary category " + strconv.Quote(name),
		Valid:   CategoryNames(),
	}
}

// Scalar is the category's fixed weighting of the coordinate, nominally in [0,1].
func (c Category) Scalar(x Coordinate) float64 {
	exposure := x[ExposureDuration]
	agent := x[AgentIntensity]
	switch c {
	case SurfaceTexture, TemporalEvidence:
		return exposure
	case ColorTransformation:
		return (exposure + agent) / 2
	case StructuralIntegrity:
		// High agent on low resistance does the most damage.
		return agent * (1 - x[MaterialResistance]*0.5)
	case BiologicalColonization:
		return exposure*0.6 + agent*0.4
	case LightInteraction:
		return exposure*0.5 + agent*0.3 + (1-x[InterventionState])*0.2
	}
	return 0
}

// Vocabulary holds one graded phrase table per category. Index 0 is the
// least transformed phrase.
type Vocabulary struct {
	tables [NumCategories][]string
}

// NewVocabulary builds a Vocabulary from category-name keyed tables. Every
// category must be present with at least one phrase; unknown names are
// rejected.
func NewVocabulary(tables map[string][]string) (*Vocabulary, error) {
	v := &Vocabulary{}
	for name, terms := range tables {
		cat, err := ParseCategory(name)
		if err != nil {
			return nil, err
		}
		if len(terms) == 0 {
			return nil, Validationf("new vocabulary", "category %s has no phrases", name)
		}
		v.tables[cat] = append([]string(nil), terms...)
	}
	for i, t := range v.tables {
		if len(t) == 0 {
			return nil, Validationf("new vocabulary", "category %s is missing", categoryNames[i])
		}
	}
	return v, nil
}

// Terms returns a copy of the phrase table for c.
func (v *Vocabulary) Terms(c Category) []string {
	return append([]string(nil), v.tables[c]...)
}

// Index maps the category scalar for x onto the table, rounding half to
// even, clamped to the table bounds.
func (v *Vocabulary) Index(c Category, x Coordinate) int {
	n := len(v.tables[c])
	s := c.Scalar(x)
	if math.IsNaN(s) {
		return 0
	}
	idx := int(math.RoundToEven(s * float64(n-1)))
	return min(max(idx, 0), n-1)
}

// CategoryTerms is the selection for one category.
type CategoryTerms struct {
	Category Category
	Terms    []string
}

// Selection is the per-category vocabulary for one coordinate, in category order.
type Selection []CategoryTerms

// Select picks, for every category, the phrase at the coordinate's index and
// its immediate neighbours. Duplicates at the table edges are dropped, so a
// category yields two phrases at either end and three elsewhere.
func (v *Vocabulary) Select(x Coordinate) Selection {
	sel := make(Selection, 0, NumCategories)
	for _, c := range Categories() {
		terms := v.tables[c]
		idx := v.Index(c, x)
		picked := []string{
			terms[max(0, idx-1)],
			terms[idx],
			terms[min(len(terms)-1, idx+1)],
		}
		sel = append(sel, CategoryTerms{Category: c, Terms: dedupe(picked)})
	}
	return sel
}

// Flatten concatenates the selection in category order.
func (s Selection) Flatten() []string {
	var out []string
	for _, ct := range s {
		out = append(out, ct.Terms...)
	}
	return out
}

// Lookup returns the terms for c, or nil if the selection lacks c.
func (s Selection) Lookup(c Category) []string {
	for _, ct := range s {
		if ct.Category == c {
			return ct.Terms
		}
	}
	return nil
}

// Dedupe returns ss with later duplicates removed, preserving first-seen order.
func Dedupe(ss []string) []string { return dedupe(ss) }

func dedupe(ss []string) []string {
	seen := make(map[string]struct{}, len(ss))
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
