package morphospace_test

import (
	"fmt"
	"testing"

	"patina/internal/morphospace"

	"github.com/google/go-cmp/cmp"
)

func testVocabulary(t *testing.T) *morphospace.Vocabulary {
	t.Helper()
	tables := make(map[string][]string)
	for _, name := range morphospace.CategoryNames() {
		var terms []string
		for i := 0; i < 5; i++ {
			terms = append(terms, fmt.Sprintf("%s-%d", name, i))
		}
		tables[name] = terms
	}
	v, err := morphospace.NewVocabulary(tables)
	if err != nil {
		t.Fatalf("NewVocabulary: %v", err)
	}
	return v
}

func TestVocabulary_IndexRoundsHalfToEven(t *testing.T) {
	v := testVocabulary(t)
	tests := []struct {
		exposure float64
		want     int
	}{
		{0, 0},
		{0.375, 2}, // 1.5 rounds to 2
		{0.625, 2}, // 2.5 rounds to 2
		{0.9, 4},
		{1, 4},
	}
	for _, tc := range tests {
		x := morphospace.NewCoordinate(tc.exposure, 0, 0.5, 0, 0.5)
		if got := v.Index(morphospace.SurfaceTexture, x); got != tc.want {
			t.Errorf("Index(exposure=%v) = %d, want %d", tc.exposure, got, tc.want)
		}
	}
}

func TestVocabulary_IndexClamps(t *testing.T) {
	v := testVocabulary(t)
	over := morphospace.Coordinate{2, 2, 0, 0, 0}
	if got := v.Index(morphospace.SurfaceTexture, over); got != 4 {
		t.Errorf("over-range index = %d, want 4", got)
	}
	under := morphospace.Coordinate{-1, -1, 0, 0, 0}
	if got := v.Index(morphospace.ColorTransformation, under); got != 0 {
		t.Errorf("under-range index = %d, want 0", got)
	}
}

func TestVocabulary_SelectNeighbours(t *testing.T) {
	v := testVocabulary(t)
	x := morphospace.NewCoordinate(0, 0, 0.5, 0, 0.5)
	sel := v.Select(x)
	if len(sel) != morphospace.NumCategories {
		t.Fatalf("len = %d, want %d", len(sel), morphospace.NumCategories)
	}

	// Edge of the table: two phrases.
	if diff := cmp.Diff([]string{"surface_texture-0", "surface_texture-1"}, sel.Lookup(morphospace.SurfaceTexture)); diff != "" {
		t.Errorf("surface_texture (-want +got):\n%s", diff)
	}
	// Light interaction scalar is 0.2 here, index 1: three phrases.
	want := []string{"light_interaction-0", "light_interaction-1", "light_interaction-2"}
	if diff := cmp.Diff(want, sel.Lookup(morphospace.LightInteraction)); diff != "" {
		t.Errorf("light_interaction (-want +got):\n%s", diff)
	}

	if got := len(sel.Flatten()); got != 2*5+3 {
		t.Errorf("flatten len = %d, want 13", got)
	}
	var order []morphospace.Category
	for _, ct := range sel {
		order = append(order, ct.Category)
	}
	if diff := cmp.Diff(morphospace.Categories(), order); diff != "" {
		t.Errorf("category order (-want +got):\n%s", diff)
	}
}

func TestVocabulary_SelectIsDeterministic(t *testing.T) {
	v := testVocabulary(t)
	x := morphospace.NewCoordinate(0.6, 0.45, 0.75, 0.1, 0.95)
	if diff := cmp.Diff(v.Select(x), v.Select(x)); diff != "" {
		t.Errorf("selection changed between calls:\n%s", diff)
	}
}

func TestNewVocabulary_Rejects(t *testing.T) {
	if _, err := morphospace.NewVocabulary(map[string][]string{"surface_texture": {"a"}}); err == nil {
		t.Error("expected error for missing categories")
	}
	if _, err := morphospace.NewVocabulary(map[string][]string{"sheen": {"a"}}); !morphospace.IsValidation(err) {
		t.Errorf("unknown category: err = %v, want validation", err)
	}
}

func TestDedupe(t *testing.T) {
	got := morphospace.Dedupe([]string{"a", "b", "a", "c", "b"})
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Errorf("Dedupe (-want +got):\n%s", diff)
	}
}
