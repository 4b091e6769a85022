package prompt_test

import (
	"strings"
	"testing"

	"patina/internal/catalog"
	"patina/internal/morphospace"
	"patina/internal/prompt"

	"github.com/google/go-cmp/cmp"
)

func newAssembler(t *testing.T) (*prompt.Assembler, *catalog.Content) {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	return prompt.New(c), c
}

func TestParseMode(t *testing.T) {
	for _, name := range prompt.ModeNames() {
		m, err := prompt.ParseMode(name)
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", name, err)
		}
		if m.String() != name {
			t.Errorf("String() = %q, want %q", m.String(), name)
		}
	}
	_, err := prompt.ParseMode("collage")
	if !morphospace.IsValidation(err) {
		t.Fatalf("err = %v, want validation", err)
	}
	if !strings.Contains(err.Error(), "split_view") {
		t.Errorf("error should list the modes: %v", err)
	}
}

func TestAssemble_Composite(t *testing.T) {
	a, c := newAssembler(t)
	res, err := a.Assemble(prompt.Request{
		AttractorID:   "period_30",
		Mode:          prompt.Composite,
		Style:         "watercolor",
		KeyframeCount: prompt.DefaultKeyframeCount,
	})
	if err != nil {
		t.Fatal(err)
	}

	at, _ := c.Attractor("period_30")
	vt, err := c.VisualType(res.VisualType.ID)
	if err != nil {
		t.Fatal(err)
	}
	terms := append(append([]string{}, vt.Keywords...), c.Vocabulary().Select(at.Coordinate).Flatten()...)
	want := "watercolor, " + strings.Join(morphospace.Dedupe(terms), ", ")
	if res.Prompt != want {
		t.Errorf("prompt mismatch:\n got  %q\n want %q", res.Prompt, want)
	}

	if res.Attractor.ID != "period_30" || res.Attractor.Name != at.Name {
		t.Errorf("attractor summary = %+v", res.Attractor)
	}
	if res.State != at.Coordinate.Round(4) {
		t.Errorf("state = %v, want %v", res.State, at.Coordinate)
	}
	if res.Panels != nil || res.Keyframes != nil {
		t.Error("composite mode should not fill panels or keyframes")
	}
}

func TestAssemble_SplitView(t *testing.T) {
	a, _ := newAssembler(t)
	res, err := a.Assemble(prompt.Request{
		AttractorID:   "bifurcation_edge",
		Mode:          prompt.SplitView,
		KeyframeCount: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Panels) != morphospace.NumCategories {
		t.Fatalf("panels = %d, want %d", len(res.Panels), morphospace.NumCategories)
	}
	var cats []string
	for _, p := range res.Panels {
		cats = append(cats, p.Category)
		if p.Prompt != strings.Join(p.Terms, ", ") {
			t.Errorf("panel %s prompt %q does not join its terms", p.Category, p.Prompt)
		}
	}
	if diff := cmp.Diff(morphospace.CategoryNames(), cats); diff != "" {
		t.Errorf("panel order (-want +got):\n%s", diff)
	}
	if res.Prompt != "" {
		t.Error("split view should leave Prompt empty")
	}
}

func TestAssemble_SequencePicksClosestPeriod(t *testing.T) {
	a, _ := newAssembler(t)
	tests := []struct {
		attractor string
		preset    string
		period    int
	}{
		// 18 and 20 are equally close; the earlier declared preset wins.
		{"period_19", "restoration_pendulum", 20},
		{"period_28", "entropy_wave", 30},
		{"period_60", "entropy_wave", 30},
		// No period in the id: the default target applies.
		{"bifurcation_edge", "entropy_wave", 30},
	}
	for _, tc := range tests {
		res, err := a.Assemble(prompt.Request{
			AttractorID:   tc.attractor,
			Mode:          prompt.Sequence,
			KeyframeCount: prompt.DefaultKeyframeCount,
		})
		if err != nil {
			t.Fatalf("%s: %v", tc.attractor, err)
		}
		if res.Preset != tc.preset || res.PresetPeriod != tc.period {
			t.Errorf("%s: preset = %s/%d, want %s/%d", tc.attractor, res.Preset, res.PresetPeriod, tc.preset, tc.period)
		}
		if len(res.Keyframes) != prompt.DefaultKeyframeCount {
			t.Errorf("%s: keyframes = %d", tc.attractor, len(res.Keyframes))
		}
	}
}

func TestAssemble_CustomCoordinate(t *testing.T) {
	a, _ := newAssembler(t)
	coord := morphospace.NewCoordinate(0, 0, 0.5, 0, 0.5)
	res, err := a.Assemble(prompt.Request{
		AttractorID:   "does_not_matter",
		Coordinate:    &coord,
		Mode:          prompt.Composite,
		KeyframeCount: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := prompt.AttractorSummary{ID: "custom", Name: "Custom State", Classification: "custom"}
	if diff := cmp.Diff(want, res.Attractor); diff != "" {
		t.Errorf("summary (-want +got):\n%s", diff)
	}
	if res.CanonicalState.ID != "fresh_pristine" || res.CanonicalState.Distance != 0 {
		t.Errorf("canonical = %+v, want fresh_pristine at 0", res.CanonicalState)
	}
	if res.VisualType.ID != "pristine_surface" {
		t.Errorf("visual type = %s, want pristine_surface", res.VisualType.ID)
	}
}

func TestAssemble_Errors(t *testing.T) {
	a, _ := newAssembler(t)

	_, err := a.Assemble(prompt.Request{AttractorID: "period_99", KeyframeCount: 1})
	if !morphospace.IsNotFound(err) {
		t.Errorf("unknown attractor: err = %v, want not found", err)
	}
	_, err = a.Assemble(prompt.Request{AttractorID: "period_30", Mode: prompt.Mode(7), KeyframeCount: 1})
	if !morphospace.IsValidation(err) {
		t.Errorf("bad mode: err = %v, want validation", err)
	}
	_, err = a.Assemble(prompt.Request{AttractorID: "period_30", Mode: prompt.Sequence})
	if !morphospace.IsValidation(err) {
		t.Errorf("zero keyframes: err = %v, want validation", err)
	}
}

func TestPresetKeyframes(t *testing.T) {
	a, _ := newAssembler(t)
	seq, err := a.PresetKeyframes("aging_cycle", 4, "etching")
	if err != nil {
		t.Fatal(err)
	}
	if seq.Preset.Period != 16 {
		t.Errorf("period = %d, want 16", seq.Preset.Period)
	}
	var steps []int
	for i, kf := range seq.Keyframes {
		steps = append(steps, kf.Step)
		if kf.Index != i {
			t.Errorf("keyframe %d index = %d", i, kf.Index)
		}
		if !strings.HasPrefix(kf.Prompt, "etching, ") {
			t.Errorf("keyframe %d prompt lacks style prefix: %q", i, kf.Prompt)
		}
	}
	if diff := cmp.Diff([]int{0, 4, 8, 12}, steps); diff != "" {
		t.Errorf("steps (-want +got):\n%s", diff)
	}
	if seq.Keyframes[0].VisualType.ID != "pristine_surface" {
		t.Errorf("first keyframe should sit on the fresh state, got %s", seq.Keyframes[0].VisualType.ID)
	}

	if _, err := a.PresetKeyframes("missing", 4, ""); !morphospace.IsNotFound(err) {
		t.Errorf("err = %v, want not found", err)
	}
	if _, err := a.PresetKeyframes("aging_cycle", 0, ""); !morphospace.IsValidation(err) {
		t.Errorf("err = %v, want validation", err)
	}
}
