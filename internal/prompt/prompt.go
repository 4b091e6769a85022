// Package prompt turns a morphospace target (a catalogued attractor or an
// explicit coordinate) into image-generation prompt text.
package prompt

import (
	"strconv"
	"strings"

	"patina/internal/catalog"
	"patina/internal/morphospace"
)

// Mode selects how the prompt is rendered.
type Mode int

const (
	// Composite renders one blended prompt.
	Composite Mode = iota
	// SplitView renders one panel per vocabulary category.
	SplitView
	// Sequence renders keyframes from the preset nearest the target's period.
	Sequence
)

var modeNames = [...]string{"composite", "split_view", "sequence"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
	return modeNames[m]
}

// ModeNames lists the accepted mode names.
func ModeNames() []string { return append([]string(nil), modeNames[:]...) }

// ParseMode resolves a mode name.
func ParseMode(name string) (Mode, error) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return 0, &morphospace.Error{
		Kind:    morphospace.KindValidation,
		Op:      "parse mode",
		Message: "unknown mode " + strconv.Quote(name),
		Valid:   ModeNames(),
	}
}

const (
	// DefaultKeyframeCount is the keyframe count used when a caller gives none.
	DefaultKeyframeCount = 4
	// DefaultTargetPeriod is the sequence target when the attractor id carries no period.
	DefaultTargetPeriod = 30

	customID   = "custom"
	customName = "Custom State"
	statePlace = 4
)

// Request names the target and rendering options. Coordinate, when set,
// takes precedence over AttractorID.
type Request struct {
	AttractorID   string
	Coordinate    *morphospace.Coordinate
	Mode          Mode
	Style         string
	KeyframeCount int
}

// AttractorSummary identifies where the target came from.
type AttractorSummary struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	BasinSize      *float64 `json:"basin_size,omitempty"`
	Classification string   `json:"classification"`
}

// Panel is one split-view category prompt.
type Panel struct {
	Category string   `json:"category"`
	Prompt   string   `json:"prompt"`
	Terms    []string `json:"terms"`
}

// Keyframe is one rendered sample of a preset cycle.
type Keyframe struct {
	Index      int
	Step       int
	Phase      float64
	Prompt     string
	VisualType morphospace.Match
	State      morphospace.Coordinate
}

// Result is an assembled prompt. Which of Prompt, Panels and Keyframes is
// populated depends on Mode.
type Result struct {
	Mode Mode

	Prompt string
	Panels []Panel

	Preset       string
	PresetPeriod int
	Keyframes    []Keyframe

	VisualType        morphospace.Match
	CanonicalState    morphospace.Match
	Optical           catalog.Optical
	ColorAssociations []string
	Attractor         AttractorSummary
	State             morphospace.Coordinate
}

// PresetSequence is the keyframe rendering of one preset.
type PresetSequence struct {
	Preset    morphospace.Preset
	Keyframes []Keyframe
}

// Assembler renders prompts against a fixed content set.
type Assembler struct {
	content *catalog.Content
}

// New returns an Assembler over c.
func New(c *catalog.Content) *Assembler {
	return &Assembler{content: c}
}

// Assemble renders req.
func (a *Assembler) Assemble(req Request) (*Result, error) {
	const op = "assemble prompt"
	if int(req.Mode) < 0 || int(req.Mode) >= len(modeNames) {
		return nil, &morphospace.Error{Kind: morphospace.KindValidation, Op: op, Message: "unknown mode " + req.Mode.String(), Valid: ModeNames()}
	}
	if req.KeyframeCount <= 0 {
		return nil, morphospace.Validationf(op, "keyframe count must be positive, got %d", req.KeyframeCount)
	}

	state, summary, err := a.resolve(req)
	if err != nil {
		return nil, err
	}

	sampler := a.content.Sampler()
	visual, canonical, err := sampler.Classify(state)
	if err != nil {
		return nil, err
	}
	vt, err := a.content.VisualType(visual.ID)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Mode:              req.Mode,
		VisualType:        visual,
		CanonicalState:    canonical,
		Optical:           vt.Optical,
		ColorAssociations: vt.ColorAssociations,
		Attractor:         summary,
		State:             state.Round(statePlace),
	}
	prefix := stylePrefix(req.Style)
	selection := a.content.Vocabulary().Select(state)

	switch req.Mode {
	case Composite:
		res.Prompt = composite(prefix, vt.Keywords, selection)
	case SplitView:
		res.Panels = make([]Panel, 0, len(selection))
		for _, ct := range selection {
			res.Panels = append(res.Panels, Panel{
				Category: ct.Category.String(),
				Prompt:   prefix + strings.Join(ct.Terms, ", "),
				Terms:    ct.Terms,
			})
		}
	case Sequence:
		preset := a.closestPreset(targetPeriod(summary))
		kfs, err := a.keyframes(preset, req.KeyframeCount, prefix)
		if err != nil {
			return nil, err
		}
		res.Preset = preset.Name
		res.PresetPeriod = preset.Period
		res.Keyframes = kfs
	}
	return res, nil
}

// PresetKeyframes renders count evenly spaced keyframes of the named preset.
func (a *Assembler) PresetKeyframes(name string, count int, style string) (*PresetSequence, error) {
	preset, err := a.content.Preset(name)
	if err != nil {
		return nil, err
	}
	kfs, err := a.keyframes(preset, count, stylePrefix(style))
	if err != nil {
		return nil, err
	}
	return &PresetSequence{Preset: preset, Keyframes: kfs}, nil
}

func (a *Assembler) resolve(req Request) (morphospace.Coordinate, AttractorSummary, error) {
	if req.Coordinate != nil {
		return *req.Coordinate, AttractorSummary{ID: customID, Name: customName, Classification: customID}, nil
	}
	at, err := a.content.Attractor(req.AttractorID)
	if err != nil {
		return morphospace.Coordinate{}, AttractorSummary{}, err
	}
	return at.Coordinate, AttractorSummary{
		ID:             at.ID,
		Name:           at.Name,
		BasinSize:      at.BasinSize,
		Classification: at.Classification,
	}, nil
}

// targetPeriod reads N from an attractor id of the form period_N.
func targetPeriod(s AttractorSummary) int {
	if s.ID == customID {
		return DefaultTargetPeriod
	}
	n, ok := strings.CutPrefix(s.ID, "period_")
	if !ok {
		return DefaultTargetPeriod
	}
	p, err := strconv.Atoi(n)
	if err != nil {
		return DefaultTargetPeriod
	}
	return p
}

// closestPreset returns the preset whose period is numerically closest to
// target; the earlier preset wins a tie.
func (a *Assembler) closestPreset(target int) morphospace.Preset {
	presets := a.content.Presets()
	best := presets[0]
	bestDiff := abs(best.Period - target)
	for _, p := range presets[1:] {
		if d := abs(p.Period - target); d < bestDiff {
			best, bestDiff = p, d
		}
	}
	return best
}

func (a *Assembler) keyframes(p morphospace.Preset, count int, prefix string) ([]Keyframe, error) {
	samples, err := a.content.Sampler().Keyframes(p, count)
	if err != nil {
		return nil, err
	}
	vocab := a.content.Vocabulary()
	out := make([]Keyframe, 0, len(samples))
	for i, s := range samples {
		vt, err := a.content.VisualType(s.VisualType.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, Keyframe{
			Index:      i,
			Step:       s.Step,
			Phase:      s.Phase,
			Prompt:     composite(prefix, vt.Keywords, vocab.Select(s.Coordinate)),
			VisualType: s.VisualType,
			State:      s.Coordinate.Round(statePlace),
		})
	}
	return out, nil
}

func composite(prefix string, keywords []string, sel morphospace.Selection) string {
	all := make([]string, 0, len(keywords)+3*len(sel))
	all = append(all, keywords...)
	all = append(all, sel.Flatten()...)
	return prefix + strings.Join(morphospace.Dedupe(all), ", ")
}

func stylePrefix(style string) string {
	if style == "" {
		return ""
	}
	return style + ", "
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
