package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"patina/internal/format"
	"patina/internal/morphospace"
	"patina/internal/prompt"
)

var promptFlags struct {
	attractor string
	coord     string
	mode      string
	style     string
	keyframes int
	preset    string
	json      bool
}

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Render an image prompt from an attractor, coordinate or preset",
	Long: `Renders an image-generation prompt for an attractor entry (--attractor) or
an explicit coordinate (--coord), in composite, split_view or sequence mode.
With --preset, renders evenly spaced keyframe prompts from one preset instead.`,
	Args: cobra.NoArgs,
	RunE: runPrompt,
}

func init() {
	f := promptCmd.Flags()
	f.StringVar(&promptFlags.attractor, "attractor", "", "Attractor id, e.g. period_30")
	f.StringVar(&promptFlags.coord, "coord", "", "Custom coordinate as axis=value,...; wins over --attractor")
	f.StringVar(&promptFlags.mode, "mode", "composite", "composite, split_view or sequence")
	f.StringVar(&promptFlags.style, "style", "", "Style prefix, e.g. 'oil painting'")
	f.IntVar(&promptFlags.keyframes, "keyframes", prompt.DefaultKeyframeCount, "Keyframes for sequence mode or --preset")
	f.StringVar(&promptFlags.preset, "preset", "", "Render keyframes of this rhythmic preset")
	f.BoolVar(&promptFlags.json, "json", false, "Print JSON")
	promptCmd.MarkFlagsOneRequired("attractor", "coord", "preset")
}

type keyframeRow struct {
	Keyframe   int                    `json:"keyframe"`
	Step       int                    `json:"step"`
	Phase      float64                `json:"phase"`
	VisualType morphospace.Match      `json:"nearest_visual_type"`
	State      morphospace.Coordinate `json:"state"`
	Prompt     string                 `json:"prompt"`
}

func toKeyframeRows(kfs []prompt.Keyframe) []keyframeRow {
	rows := make([]keyframeRow, 0, len(kfs))
	for _, kf := range kfs {
		rows = append(rows, keyframeRow{
			Keyframe:   kf.Index,
			Step:       kf.Step,
			Phase:      morphospace.Round(kf.Phase, 4),
			VisualType: roundMatch(kf.VisualType),
			State:      kf.State,
			Prompt:     kf.Prompt,
		})
	}
	return rows
}

func runPrompt(cmd *cobra.Command, _ []string) error {
	a := prompt.New(app.content)
	out := cmd.OutOrStdout()

	if promptFlags.preset != "" {
		seq, err := a.PresetKeyframes(promptFlags.preset, promptFlags.keyframes, promptFlags.style)
		if err != nil {
			return err
		}
		if promptFlags.json {
			return writeJSON(out, map[string]any{
				"preset":    seq.Preset.Name,
				"period":    seq.Preset.Period,
				"keyframes": toKeyframeRows(seq.Keyframes),
			})
		}
		return writeKeyframes(cmd, fmt.Sprintf("%s (period %d)", seq.Preset.Name, seq.Preset.Period), seq.Keyframes)
	}

	mode, err := prompt.ParseMode(promptFlags.mode)
	if err != nil {
		return err
	}
	req := prompt.Request{
		AttractorID:   promptFlags.attractor,
		Mode:          mode,
		Style:         promptFlags.style,
		KeyframeCount: promptFlags.keyframes,
	}
	if promptFlags.coord != "" {
		c, err := parseCoord(promptFlags.coord)
		if err != nil {
			return err
		}
		req.Coordinate = &c
	}
	res, err := a.Assemble(req)
	if err != nil {
		return err
	}

	if promptFlags.json {
		body := map[string]any{
			"mode":                    res.Mode.String(),
			"attractor":               res.Attractor,
			"state":                   res.State,
			"nearest_visual_type":     roundMatch(res.VisualType),
			"nearest_canonical_state": roundMatch(res.CanonicalState),
			"optical_properties":      res.Optical,
			"color_associations":      res.ColorAssociations,
		}
		switch res.Mode {
		case prompt.Composite:
			body["prompt"] = res.Prompt
		case prompt.SplitView:
			body["panels"] = res.Panels
		case prompt.Sequence:
			body["preset_used"] = res.Preset
			body["preset_period"] = res.PresetPeriod
			body["keyframes"] = toKeyframeRows(res.Keyframes)
		}
		return writeJSON(out, body)
	}

	fmt.Fprintf(out, "%s: %s [%s]\n", res.Attractor.ID, res.Attractor.Name, res.Mode)
	fmt.Fprintf(out, "visual type %s, canonical state %s\n\n", res.VisualType.ID, res.CanonicalState.ID)
	switch res.Mode {
	case prompt.Composite:
		_, err = fmt.Fprintln(out, res.Prompt)
		return err
	case prompt.SplitView:
		tb := newTable()
		tb.Header("Panel", "Prompt")
		for _, p := range res.Panels {
			tb.Row(p.Category, p.Prompt)
		}
		tb.Columns(format.ColumnConfig{Number: 2, MaxWidth: 100})
		_, err = tb.WriteTo(out)
		return err
	}
	return writeKeyframes(cmd, fmt.Sprintf("%s (period %d)", res.Preset, res.PresetPeriod), res.Keyframes)
}

func writeKeyframes(cmd *cobra.Command, title string, kfs []prompt.Keyframe) error {
	tb := newTable()
	tb.Title(title)
	tb.Header("#", "Step", "Phase", "Visual type", "Prompt")
	for _, kf := range kfs {
		tb.Row(kf.Index, kf.Step, format.Float(kf.Phase), kf.VisualType.ID, kf.Prompt)
	}
	tb.Columns(format.ColumnConfig{Number: 5, MaxWidth: 80})
	_, err := tb.WriteTo(cmd.OutOrStdout())
	return err
}
