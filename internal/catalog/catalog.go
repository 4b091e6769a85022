// Package catalog decodes the reference content of the morphospace: the
// canonical states, visual types, graded vocabulary, rhythmic presets and
// attractor entries, plus the weathering taxonomy and intent keyword tables.
//
// Content is YAML embedded in the binary. It is decoded and validated once;
// a *Content is immutable afterwards and safe for concurrent readers.
package catalog

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"sync"

	"patina/internal/morphospace"

	"gopkg.in/yaml.v3"
)

//go:embed content/*.yaml
var contentFS embed.FS

const (
	morphospaceFile = "content/morphospace.yaml"
	taxonomyFile    = "content/taxonomy.yaml"
	keywordsFile    = "content/keywords.yaml"
)

// Optical describes how a visual type's surface treats light.
type Optical struct {
	Finish       string `yaml:"finish" json:"finish"`
	Scatter      string `yaml:"scatter" json:"scatter"`
	Transparency string `yaml:"transparency" json:"transparency"`
}

// VisualType is a visual-type center with its prompt vocabulary.
type VisualType struct {
	ID                string
	Center            morphospace.Coordinate
	Keywords          []string
	Optical           Optical
	ColorAssociations []string
}

// Attractor is a curated reference coordinate with provenance metadata.
// BasinSize is nil for hand-curated entries.
type Attractor struct {
	ID             string
	Name           string
	Description    string
	BasinSize      *float64
	Classification string
	SourceDomains  []string
	Coordinate     morphospace.Coordinate
}

// Content is the decoded, validated reference content.
type Content struct {
	states      *morphospace.Catalog
	visualCat   *morphospace.Catalog
	visualTypes []VisualType
	vocabulary  *morphospace.Vocabulary
	presets     []morphospace.Preset
	attractors  []Attractor
	attractorIx map[string]int
	sampler     *morphospace.Sampler

	taxonomy Taxonomy
	keywords KeywordTables
}

var (
	defaultOnce    sync.Once
	defaultContent *Content
	defaultErr     error
)

// Default returns the embedded content, decoding it on first use.
func Default() (*Content, error) {
	defaultOnce.Do(func() {
		defaultContent, defaultErr = loadEmbedded()
	})
	return defaultContent, defaultErr
}

// MustDefault is Default for callers that cannot proceed without content.
func MustDefault() *Content {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

func loadEmbedded() (*Content, error) {
	morph, err := contentFS.ReadFile(morphospaceFile)
	if err != nil {
		return nil, fmt.Errorf("read embedded morphospace content: %w", err)
	}
	return Load(morph)
}

// LoadFile decodes a replacement morphospace document from path. The
// taxonomy and keyword tables always come from the embedded content.
func LoadFile(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Load decodes a morphospace document and pairs it with the embedded
// taxonomy and keyword tables.
func Load(morph []byte) (*Content, error) {
	var doc morphospaceDoc
	if err := yaml.Unmarshal(morph, &doc); err != nil {
		return nil, fmt.Errorf("parse morphospace yaml: %w", err)
	}
	c, err := doc.build()
	if err != nil {
		return nil, err
	}
	if c.taxonomy, err = loadTaxonomy(); err != nil {
		return nil, err
	}
	if c.keywords, err = loadKeywords(); err != nil {
		return nil, err
	}
	return c, nil
}

// States returns the canonical-state catalog.
func (c *Content) States() *morphospace.Catalog { return c.states }

// VisualTypeCatalog returns the visual-type centers as a catalog.
func (c *Content) VisualTypeCatalog() *morphospace.Catalog { return c.visualCat }

// Sampler returns the sequence generator bound to both catalogs.
func (c *Content) Sampler() *morphospace.Sampler { return c.sampler }

// Vocabulary returns the graded vocabulary tables.
func (c *Content) Vocabulary() *morphospace.Vocabulary { return c.vocabulary }

// VisualTypes returns the visual types in declaration order.
func (c *Content) VisualTypes() []VisualType {
	return append([]VisualType(nil), c.visualTypes...)
}

// VisualType returns the visual type with the given id.
func (c *Content) VisualType(id string) (VisualType, error) {
	for _, vt := range c.visualTypes {
		if vt.ID == id {
			return vt, nil
		}
	}
	return VisualType{}, morphospace.NotFound("visual type", "visual type", id, c.visualCat.IDs())
}

// Presets returns the rhythmic presets in declaration order.
func (c *Content) Presets() []morphospace.Preset {
	return append([]morphospace.Preset(nil), c.presets...)
}

// Preset returns the preset with the given name.
func (c *Content) Preset(name string) (morphospace.Preset, error) {
	for _, p := range c.presets {
		if p.Name == name {
			return p, nil
		}
	}
	return morphospace.Preset{}, morphospace.NotFound("preset", "preset", name, c.PresetNames())
}

// PresetNames lists preset names in declaration order.
func (c *Content) PresetNames() []string {
	names := make([]string, len(c.presets))
	for i, p := range c.presets {
		names[i] = p.Name
	}
	return names
}

// Periods returns the distinct preset periods, ascending.
func (c *Content) Periods() []int {
	seen := make(map[int]bool, len(c.presets))
	var out []int
	for _, p := range c.presets {
		if !seen[p.Period] {
			seen[p.Period] = true
			out = append(out, p.Period)
		}
	}
	sort.Ints(out)
	return out
}

// Attractors returns the attractor entries in declaration order.
func (c *Content) Attractors() []Attractor {
	return append([]Attractor(nil), c.attractors...)
}

// Attractor returns the attractor with the given id.
func (c *Content) Attractor(id string) (Attractor, error) {
	i, ok := c.attractorIx[id]
	if !ok {
		return Attractor{}, morphospace.NotFound("attractor", "attractor", id, c.AttractorIDs())
	}
	return c.attractors[i], nil
}

// AttractorIDs lists attractor ids in declaration order.
func (c *Content) AttractorIDs() []string {
	ids := make([]string, len(c.attractors))
	for i, a := range c.attractors {
		ids[i] = a.ID
	}
	return ids
}

// Taxonomy returns the weathering taxonomy.
func (c *Content) Taxonomy() *Taxonomy { return &c.taxonomy }

// Keywords returns the intent keyword tables.
func (c *Content) Keywords() *KeywordTables { return &c.keywords }
