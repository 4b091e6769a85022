package morphospace_test

import (
	"encoding/json"
	"math"
	"testing"

	"patina/internal/morphospace"

	"github.com/google/go-cmp/cmp"
)

func fullMap() map[string]float64 {
	return map[string]float64{
		"exposure_duration":   0.1,
		"agent_intensity":     0.2,
		"material_resistance": 0.3,
		"intervention_state":  0.4,
		"aesthetic_character": 0.5,
	}
}

func TestParseCoordinate(t *testing.T) {
	c, err := morphospace.ParseCoordinate(fullMap())
	if err != nil {
		t.Fatalf("ParseCoordinate: %v", err)
	}
	want := morphospace.NewCoordinate(0.1, 0.2, 0.3, 0.4, 0.5)
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("coordinate mismatch (-want +got):\n%s", diff)
	}
	if got := c.At(morphospace.InterventionState); got != 0.4 {
		t.Errorf("At(InterventionState) = %v, want 0.4", got)
	}
}

func TestParseCoordinate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m map[string]float64)
	}{
		{"missing axis", func(m map[string]float64) { delete(m, "agent_intensity") }},
		{"extra axis", func(m map[string]float64) { m["luminosity"] = 0.5 }},
		{"above range", func(m map[string]float64) { m["exposure_duration"] = 1.2 }},
		{"below range", func(m map[string]float64) { m["aesthetic_character"] = -0.1 }},
		{"nan", func(m map[string]float64) { m["material_resistance"] = math.NaN() }},
		{"inf", func(m map[string]float64) { m["material_resistance"] = math.Inf(1) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := fullMap()
			tc.mutate(m)
			_, err := morphospace.ParseCoordinate(m)
			if err == nil {
				t.Fatal("expected error")
			}
			if !morphospace.IsValidation(err) {
				t.Errorf("error kind = %v, want validation", err)
			}
		})
	}

	if _, err := morphospace.ParseCoordinate(nil); !morphospace.IsValidation(err) {
		t.Errorf("nil map: got %v, want validation error", err)
	}
}

func TestCoordinate_MapRoundTrip(t *testing.T) {
	c := morphospace.NewCoordinate(0, 0.25, 0.5, 0.75, 1)
	back, err := morphospace.ParseCoordinate(c.Map())
	if err != nil {
		t.Fatal(err)
	}
	if back != c {
		t.Errorf("round trip = %v, want %v", back, c)
	}
	if diff := cmp.Diff(morphospace.AxisNames(), []string{
		"exposure_duration", "agent_intensity", "material_resistance", "intervention_state", "aesthetic_character",
	}); diff != "" {
		t.Errorf("axis order changed:\n%s", diff)
	}
}

func TestCoordinate_JSON(t *testing.T) {
	c := morphospace.NewCoordinate(0, 0.25, 0.5, 0.75, 1)
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"exposure_duration":0,"agent_intensity":0.25,"material_resistance":0.5,"intervention_state":0.75,"aesthetic_character":1}`
	if string(data) != want {
		t.Errorf("json = %s\nwant   %s", data, want)
	}
	var back morphospace.Coordinate
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != c {
		t.Errorf("unmarshal = %v, want %v", back, c)
	}
	if err := json.Unmarshal([]byte(`{"exposure_duration":2}`), &back); err == nil {
		t.Error("expected validation error for partial coordinate")
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		v      float64
		places int
		want   float64
	}{
		{0.14644660940672624, 4, 0.1464},
		{-0.14644660940672624, 4, -0.1464},
		{0.25, 1, 0.3},
		{0.123456, 2, 0.12},
		{1, 4, 1},
	}
	for _, tc := range tests {
		if got := morphospace.Round(tc.v, tc.places); got != tc.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tc.v, tc.places, got, tc.want)
		}
	}
}

func TestParseAxis(t *testing.T) {
	a, err := morphospace.ParseAxis("material_resistance")
	if err != nil || a != morphospace.MaterialResistance {
		t.Errorf("ParseAxis = %v, %v", a, err)
	}
	if _, err := morphospace.ParseAxis("gloss"); !morphospace.IsValidation(err) {
		t.Errorf("ParseAxis(gloss) err = %v, want validation", err)
	}
}
