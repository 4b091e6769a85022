package catalog

import (
	"fmt"

	"patina/internal/morphospace"
)

type morphospaceDoc struct {
	CanonicalStates []stateDoc      `yaml:"canonical_states"`
	VisualTypes     []visualTypeDoc `yaml:"visual_types"`
	Vocabulary      []vocabularyDoc `yaml:"vocabulary"`
	Presets         []presetDoc     `yaml:"presets"`
	Attractors      []attractorDoc  `yaml:"attractors"`
}

type stateDoc struct {
	ID         string             `yaml:"id"`
	Coordinate map[string]float64 `yaml:"coordinate"`
}

type visualTypeDoc struct {
	ID                string             `yaml:"id"`
	Center            map[string]float64 `yaml:"center"`
	Keywords          []string           `yaml:"keywords"`
	Optical           Optical            `yaml:"optical"`
	ColorAssociations []string           `yaml:"color_associations"`
}

type vocabularyDoc struct {
	Category string   `yaml:"category"`
	Terms    []string `yaml:"terms"`
}

type presetDoc struct {
	Name        string `yaml:"name"`
	Period      int    `yaml:"period"`
	StateA      string `yaml:"state_a"`
	StateB      string `yaml:"state_b"`
	Waveform    string `yaml:"waveform"`
	Description string `yaml:"description"`
}

type attractorDoc struct {
	ID             string             `yaml:"id"`
	Name           string             `yaml:"name"`
	Description    string             `yaml:"description"`
	BasinSize      *float64           `yaml:"basin_size"`
	Classification string             `yaml:"classification"`
	SourceDomains  []string           `yaml:"source_domains"`
	Coordinate     map[string]float64 `yaml:"coordinate"`
}

func (d *morphospaceDoc) build() (*Content, error) {
	states := make([]morphospace.NamedPoint, 0, len(d.CanonicalStates))
	for _, s := range d.CanonicalStates {
		c, err := morphospace.ParseCoordinate(s.Coordinate)
		if err != nil {
			return nil, fmt.Errorf("canonical state %q: %w", s.ID, err)
		}
		states = append(states, morphospace.NamedPoint{ID: s.ID, Coordinate: c})
	}
	stateCat, err := morphospace.NewCatalog("canonical state", states...)
	if err != nil {
		return nil, err
	}

	visualTypes := make([]VisualType, 0, len(d.VisualTypes))
	centers := make([]morphospace.NamedPoint, 0, len(d.VisualTypes))
	for _, v := range d.VisualTypes {
		c, err := morphospace.ParseCoordinate(v.Center)
		if err != nil {
			return nil, fmt.Errorf("visual type %q: %w", v.ID, err)
		}
		visualTypes = append(visualTypes, VisualType{
			ID:                v.ID,
			Center:            c,
			Keywords:          v.Keywords,
			Optical:           v.Optical,
			ColorAssociations: v.ColorAssociations,
		})
		centers = append(centers, morphospace.NamedPoint{ID: v.ID, Coordinate: c})
	}
	visualCat, err := morphospace.NewCatalog("visual type", centers...)
	if err != nil {
		return nil, err
	}

	tables := make(map[string][]string, len(d.Vocabulary))
	for _, v := range d.Vocabulary {
		if _, dup := tables[v.Category]; dup {
			return nil, fmt.Errorf("vocabulary category %q declared twice", v.Category)
		}
		tables[v.Category] = v.Terms
	}
	vocab, err := morphospace.NewVocabulary(tables)
	if err != nil {
		return nil, err
	}

	sampler, err := morphospace.NewSampler(stateCat, visualCat)
	if err != nil {
		return nil, err
	}

	presets := make([]morphospace.Preset, 0, len(d.Presets))
	seenPreset := make(map[string]bool, len(d.Presets))
	for _, p := range d.Presets {
		if seenPreset[p.Name] {
			return nil, fmt.Errorf("preset %q declared twice", p.Name)
		}
		seenPreset[p.Name] = true
		w, err := morphospace.ParseWaveform(p.Waveform)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
		preset := morphospace.Preset{
			Name:        p.Name,
			StateA:      p.StateA,
			StateB:      p.StateB,
			Period:      p.Period,
			Waveform:    w,
			Description: p.Description,
		}
		if err := sampler.ValidatePreset(preset); err != nil {
			return nil, err
		}
		presets = append(presets, preset)
	}
	if len(presets) == 0 {
		return nil, morphospace.Validationf("load catalog", "at least one preset is required")
	}

	attractors := make([]Attractor, 0, len(d.Attractors))
	index := make(map[string]int, len(d.Attractors))
	for _, a := range d.Attractors {
		if _, dup := index[a.ID]; dup {
			return nil, fmt.Errorf("attractor %q declared twice", a.ID)
		}
		c, err := morphospace.ParseCoordinate(a.Coordinate)
		if err != nil {
			return nil, fmt.Errorf("attractor %q: %w", a.ID, err)
		}
		index[a.ID] = len(attractors)
		attractors = append(attractors, Attractor{
			ID:             a.ID,
			Name:           a.Name,
			Description:    a.Description,
			BasinSize:      a.BasinSize,
			Classification: a.Classification,
			SourceDomains:  a.SourceDomains,
			Coordinate:     c,
		})
	}

	return &Content{
		states:      stateCat,
		visualCat:   visualCat,
		visualTypes: visualTypes,
		vocabulary:  vocab,
		presets:     presets,
		attractors:  attractors,
		attractorIx: index,
		sampler:     sampler,
	}, nil
}
