package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"patina/internal/format"
	"patina/internal/morphospace"
)

var vocabFlags struct {
	state string
	coord string
	json  bool
}

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Show the graded vocabulary for a canonical state or coordinate",
	Args:  cobra.NoArgs,
	RunE:  runVocab,
}

func init() {
	f := vocabCmd.Flags()
	f.StringVar(&vocabFlags.state, "state", "", "Canonical state id")
	f.StringVar(&vocabFlags.coord, "coord", "", "Coordinate as axis=value,... naming all five axes")
	f.BoolVar(&vocabFlags.json, "json", false, "Print JSON")
	vocabCmd.MarkFlagsMutuallyExclusive("state", "coord")
	vocabCmd.MarkFlagsOneRequired("state", "coord")
}

type categoryRow struct {
	Category string   `json:"category"`
	Terms    []string `json:"terms"`
}

func toCategoryRows(sel morphospace.Selection) []categoryRow {
	rows := make([]categoryRow, 0, len(sel))
	for _, ct := range sel {
		rows = append(rows, categoryRow{Category: ct.Category.String(), Terms: ct.Terms})
	}
	return rows
}

func runVocab(cmd *cobra.Command, _ []string) error {
	var (
		x   morphospace.Coordinate
		err error
	)
	if vocabFlags.state != "" {
		x, err = app.content.States().Lookup(vocabFlags.state)
	} else {
		x, err = parseCoord(vocabFlags.coord)
	}
	if err != nil {
		return err
	}

	visual, canonical, err := app.content.Sampler().Classify(x)
	if err != nil {
		return err
	}
	vt, err := app.content.VisualType(visual.ID)
	if err != nil {
		return err
	}
	sel := app.content.Vocabulary().Select(x)

	out := cmd.OutOrStdout()
	if vocabFlags.json {
		return writeJSON(out, map[string]any{
			"input_state":             x.Round(4),
			"nearest_visual_type":     roundMatch(visual),
			"nearest_canonical_state": roundMatch(canonical),
			"keywords":                vt.Keywords,
			"optical_properties":      vt.Optical,
			"color_associations":      vt.ColorAssociations,
			"vocabulary_by_category":  toCategoryRows(sel),
		})
	}

	fmt.Fprintf(out, "coordinate:      %s (%s)\n", format.Coordinate(x), format.CoordinateHeader())
	fmt.Fprintf(out, "visual type:     %s (%s)\n", visual.ID, format.Float(visual.Distance))
	fmt.Fprintf(out, "canonical state: %s (%s)\n", canonical.ID, format.Float(canonical.Distance))
	fmt.Fprintf(out, "optical:         %s / %s / %s\n", vt.Optical.Finish, vt.Optical.Scatter, vt.Optical.Transparency)
	fmt.Fprintf(out, "colours:         %s\n", strings.Join(vt.ColorAssociations, ", "))

	tb := newTable()
	tb.Header("Category", "Terms")
	for _, ct := range sel {
		tb.Row(ct.Category.String(), strings.Join(ct.Terms, "\n"))
	}
	_, err = tb.WriteTo(out)
	return err
}
