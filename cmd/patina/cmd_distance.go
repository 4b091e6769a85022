package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"patina/internal/format"
	"patina/internal/morphospace"
)

var distanceFlags struct {
	json bool
}

var distanceCmd = &cobra.Command{
	Use:   "distance <state> <state>",
	Short: "Compare two canonical states axis by axis",
	Args:  cobra.ExactArgs(2),
	RunE:  runDistance,
}

func init() {
	distanceCmd.Flags().BoolVar(&distanceFlags.json, "json", false, "Print JSON")
}

func runDistance(cmd *cobra.Command, args []string) error {
	states := app.content.States()
	a, err := states.Lookup(args[0])
	if err != nil {
		return err
	}
	b, err := states.Lookup(args[1])
	if err != nil {
		return err
	}
	cmp := morphospace.Compare(a, b)

	out := cmd.OutOrStdout()
	if distanceFlags.json {
		return writeJSON(out, map[string]any{
			"patina_id_1":        args[0],
			"patina_id_2":        args[1],
			"euclidean_distance": morphospace.Round(cmp.Distance, 4),
			"per_parameter_diff": cmp.Diff.Round(4),
			"max_parameter_diff": morphospace.Round(cmp.MaxAbsDiff, 4),
			"dominant_axis":      cmp.DominantAxis.String(),
		})
	}

	tb := newTable()
	tb.Title(fmt.Sprintf("%s -> %s", args[0], args[1]))
	tb.Header("Axis", args[0], args[1], "Diff")
	for i, name := range morphospace.AxisNames() {
		tb.Row(name, format.Float(a[i]), format.Float(b[i]), format.Float(cmp.Diff[i]))
	}
	tb.Footer("DISTANCE", "", "", format.Float(cmp.Distance))
	tb.Columns(
		format.ColumnConfig{Number: 2, Align: format.AlignRight},
		format.ColumnConfig{Number: 3, Align: format.AlignRight},
		format.ColumnConfig{Number: 4, Align: format.AlignRight},
	)
	if _, err := tb.WriteTo(out); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "dominant axis: %s\n", cmp.DominantAxis)
	return err
}
