package main

import (
	"github.com/spf13/cobra"

	"patina/internal/format"
)

var presetsFlags struct {
	json bool
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the rhythmic presets and attractor entries",
	Args:  cobra.NoArgs,
	RunE:  runPresets,
}

func init() {
	presetsCmd.Flags().BoolVar(&presetsFlags.json, "json", false, "Print JSON")
}

type presetRow struct {
	Name        string `json:"name"`
	Period      int    `json:"period"`
	StateA      string `json:"state_a"`
	StateB      string `json:"state_b"`
	Pattern     string `json:"pattern"`
	Description string `json:"description"`
}

type attractorRow struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	BasinSize      *float64 `json:"basin_size,omitempty"`
	Classification string   `json:"classification"`
}

func runPresets(cmd *cobra.Command, _ []string) error {
	c := app.content
	var presets []presetRow
	for _, p := range c.Presets() {
		presets = append(presets, presetRow{
			Name:        p.Name,
			Period:      p.Period,
			StateA:      p.StateA,
			StateB:      p.StateB,
			Pattern:     p.Waveform.String(),
			Description: p.Description,
		})
	}
	var attractors []attractorRow
	for _, a := range c.Attractors() {
		attractors = append(attractors, attractorRow{
			ID:             a.ID,
			Name:           a.Name,
			BasinSize:      a.BasinSize,
			Classification: a.Classification,
		})
	}

	out := cmd.OutOrStdout()
	if presetsFlags.json {
		return writeJSON(out, map[string]any{
			"presets":    presets,
			"periods":    c.Periods(),
			"attractors": attractors,
		})
	}

	tb := newTable()
	tb.Title("Rhythmic presets")
	tb.Header("Preset", "Period", "State A", "State B", "Pattern")
	for _, p := range presets {
		tb.Row(p.Name, p.Period, p.StateA, p.StateB, p.Pattern)
	}
	tb.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
	if _, err := tb.WriteTo(out); err != nil {
		return err
	}

	at := newTable()
	at.Title("Attractors")
	at.Header("ID", "Name", "Basin", "Class")
	for _, a := range attractors {
		basin := "-"
		if a.BasinSize != nil {
			basin = format.Float(*a.BasinSize)
		}
		at.Row(a.ID, format.Truncate(a.Name, 40), basin, a.Classification)
	}
	_, err := at.WriteTo(out)
	return err
}
