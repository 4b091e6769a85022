package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"patina/internal/morphospace"
)

var sequenceFlags struct {
	preset     string
	from       string
	to         string
	waveform   string
	cycles     int
	steps      int
	offset     float64
	trajectory bool
	json       bool
}

var sequenceCmd = &cobra.Command{
	Use:   "sequence",
	Short: "Generate a rhythmic sequence from a preset or between two states",
	Long: `Replays one cycle of a preset (--preset), oscillates between two canonical
states (--from/--to with --waveform, --cycles, --steps, --offset) or, with
--trajectory, walks a straight line from --from to --to in --steps steps.`,
	Args: cobra.NoArgs,
	RunE: runSequence,
}

func init() {
	f := sequenceCmd.Flags()
	f.StringVar(&sequenceFlags.preset, "preset", "", "Rhythmic preset to replay")
	f.StringVar(&sequenceFlags.from, "from", "", "Starting canonical state")
	f.StringVar(&sequenceFlags.to, "to", "", "Alternating or target canonical state")
	f.StringVar(&sequenceFlags.waveform, "waveform", "sinusoidal", "sinusoidal, triangular or square")
	f.IntVar(&sequenceFlags.cycles, "cycles", 3, "Number of cycles")
	f.IntVar(&sequenceFlags.steps, "steps", 20, "Samples per cycle, or trajectory steps")
	f.Float64Var(&sequenceFlags.offset, "offset", 0, "Phase offset added to every sample")
	f.BoolVar(&sequenceFlags.trajectory, "trajectory", false, "Straight-line trajectory instead of oscillation")
	f.BoolVar(&sequenceFlags.json, "json", false, "Print JSON")

	sequenceCmd.MarkFlagsMutuallyExclusive("preset", "from")
	sequenceCmd.MarkFlagsMutuallyExclusive("preset", "trajectory")
	sequenceCmd.MarkFlagsRequiredTogether("from", "to")
}

func runSequence(cmd *cobra.Command, _ []string) error {
	sampler := app.content.Sampler()
	var (
		samples []morphospace.Sample
		title   string
		err     error
	)
	switch {
	case sequenceFlags.preset != "":
		preset, perr := app.content.Preset(sequenceFlags.preset)
		if perr != nil {
			return perr
		}
		samples, err = sampler.Replay(preset)
		title = fmt.Sprintf("%s (period %d, %s)", preset.Name, preset.Period, preset.Waveform)
	case sequenceFlags.from == "":
		return fmt.Errorf("either --preset or --from/--to is required")
	case sequenceFlags.trajectory:
		samples, err = sampler.Trajectory(sequenceFlags.from, sequenceFlags.to, sequenceFlags.steps)
		title = fmt.Sprintf("%s -> %s", sequenceFlags.from, sequenceFlags.to)
	default:
		w, werr := morphospace.ParseWaveform(sequenceFlags.waveform)
		if werr != nil {
			return werr
		}
		samples, err = sampler.Oscillate(morphospace.Oscillation{
			StateA:        sequenceFlags.from,
			StateB:        sequenceFlags.to,
			Waveform:      w,
			Cycles:        sequenceFlags.cycles,
			StepsPerCycle: sequenceFlags.steps,
			PhaseOffset:   sequenceFlags.offset,
		})
		title = fmt.Sprintf("%s <-> %s (%s, %d x %d)", sequenceFlags.from, sequenceFlags.to, w, sequenceFlags.cycles, sequenceFlags.steps)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if sequenceFlags.json {
		return writeJSON(out, toSampleRows(samples))
	}
	return writeSamples(out, title, samples)
}
