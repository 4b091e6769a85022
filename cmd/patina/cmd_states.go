package main

import (
	"github.com/spf13/cobra"

	"patina/internal/format"
	"patina/internal/morphospace"
)

var statesFlags struct {
	visual bool
	json   bool
}

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "List the canonical states (or visual types) with their coordinates",
	Args:  cobra.NoArgs,
	RunE:  runStates,
}

func init() {
	f := statesCmd.Flags()
	f.BoolVar(&statesFlags.visual, "visual", false, "List visual-type centers instead of canonical states")
	f.BoolVar(&statesFlags.json, "json", false, "Print JSON")
}

type stateRow struct {
	ID         string                 `json:"id"`
	Coordinate morphospace.Coordinate `json:"coordinates"`
	Nearest    morphospace.Match      `json:"nearest"`
}

func runStates(cmd *cobra.Command, _ []string) error {
	points, against, title := app.content.States().Points(), app.content.VisualTypeCatalog(), "Canonical states"
	if statesFlags.visual {
		points, against, title = app.content.VisualTypeCatalog().Points(), app.content.States(), "Visual types"
	}

	rows := make([]stateRow, 0, len(points))
	for _, p := range points {
		m, err := morphospace.Nearest(p.Coordinate, against)
		if err != nil {
			return err
		}
		rows = append(rows, stateRow{ID: p.ID, Coordinate: p.Coordinate, Nearest: roundMatch(m)})
	}

	out := cmd.OutOrStdout()
	if statesFlags.json {
		return writeJSON(out, rows)
	}
	nearest := "Nearest visual type"
	if statesFlags.visual {
		nearest = "Nearest canonical state"
	}
	tb := newTable()
	tb.Title(title)
	tb.Header("ID", format.CoordinateHeader(), nearest, "Distance")
	for _, r := range rows {
		tb.Row(r.ID, format.Coordinate(r.Coordinate), r.Nearest.ID, format.Float(r.Nearest.Distance))
	}
	tb.Footer("TOTAL", len(rows), "", "")
	_, err := tb.WriteTo(out)
	return err
}
