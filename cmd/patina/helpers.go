package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"patina/internal/format"
	"patina/internal/morphospace"
)

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

func newTable() format.TableBuilder {
	return format.NewTable(app.table)
}

// parseCoord reads "axis=value,axis=value,..." naming all five axes.
func parseCoord(s string) (morphospace.Coordinate, error) {
	m := make(map[string]float64, morphospace.NumAxes)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, val, ok := strings.Cut(part, "=")
		if !ok {
			return morphospace.Coordinate{}, morphospace.Validationf("parse coordinate", "expected axis=value, got %q", part)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return morphospace.Coordinate{}, morphospace.Validationf("parse coordinate", "axis %s: %v", name, err)
		}
		m[strings.TrimSpace(name)] = v
	}
	return morphospace.ParseCoordinate(m)
}

// sampleRow is the JSON shape of one sequence sample.
type sampleRow struct {
	Step           int                    `json:"step"`
	Cycle          int                    `json:"cycle"`
	Phase          float64                `json:"phase"`
	State          morphospace.Coordinate `json:"state"`
	VisualType     morphospace.Match      `json:"nearest_visual_type"`
	CanonicalState morphospace.Match      `json:"nearest_canonical_state"`
}

func toSampleRows(samples []morphospace.Sample) []sampleRow {
	rows := make([]sampleRow, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, sampleRow{
			Step:           s.Step,
			Cycle:          s.Cycle,
			Phase:          morphospace.Round(s.Phase, 4),
			State:          s.Coordinate.Round(4),
			VisualType:     roundMatch(s.VisualType),
			CanonicalState: roundMatch(s.CanonicalState),
		})
	}
	return rows
}

func roundMatch(m morphospace.Match) morphospace.Match {
	return morphospace.Match{ID: m.ID, Distance: morphospace.Round(m.Distance, 4)}
}

func writeSamples(w io.Writer, title string, samples []morphospace.Sample) error {
	tb := newTable()
	tb.Title(title)
	tb.Header("Step", "Phase", format.CoordinateHeader(), "Visual type", "Canonical state")
	for _, s := range samples {
		tb.Row(s.Step, format.Float(s.Phase), format.Coordinate(s.Coordinate), s.VisualType.ID, s.CanonicalState.ID)
	}
	tb.Columns(
		format.ColumnConfig{Number: 1, Align: format.AlignRight},
		format.ColumnConfig{Number: 2, Align: format.AlignRight},
	)
	_, err := tb.WriteTo(w)
	return err
}
