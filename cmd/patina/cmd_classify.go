package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"patina/internal/intent"
)

var classifyFlags struct {
	material  string
	condition string
	intensity string
	emphasis  string
	enhance   bool
	json      bool
}

var classifyCmd = &cobra.Command{
	Use:   "classify <intent text>",
	Short: "Classify a weathering description and map it to visual parameters",
	Long: `Classifies free text into material, weathering agents, condition grade and
aesthetic, then maps the result onto the morphospace. --material and
--condition override what the text implies.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	f := classifyCmd.Flags()
	f.StringVar(&classifyFlags.material, "material", "", "Material id overriding the detected material")
	f.StringVar(&classifyFlags.condition, "condition", "", "Condition grade id overriding the detected grade")
	f.StringVar(&classifyFlags.intensity, "intensity", intent.DefaultIntensity, "subtle, moderate or dramatic")
	f.StringVar(&classifyFlags.emphasis, "emphasis", intent.DefaultEmphasis, "Vocabulary category to lead with: surface, color, structure, biological, temporal, light")
	f.BoolVar(&classifyFlags.enhance, "enhance", false, "Print the full enhancement bundle (JSON only)")
	f.BoolVar(&classifyFlags.json, "json", false, "Print JSON")
}

func runClassify(cmd *cobra.Command, args []string) error {
	c := intent.New(app.content)
	text := strings.Join(args, " ")
	out := cmd.OutOrStdout()

	if classifyFlags.enhance {
		e, err := c.Enhance(text, intent.EnhanceOptions{
			Material:  classifyFlags.material,
			Condition: classifyFlags.condition,
			Intensity: classifyFlags.intensity,
		})
		if err != nil {
			return err
		}
		return writeJSON(out, map[string]any{
			"original_intent":        e.Intent,
			"intensity":              e.Intensity,
			"classification":         e.Classification,
			"state_id":               e.Mapping.StateID,
			"state":                  e.Mapping.State.Round(4),
			"primary_vocabulary":     e.Mapping.PrimaryVocabulary,
			"material_context":       e.Material,
			"synthesis_instructions": e.Instructions,
		})
	}

	cls, err := c.Classify(text)
	if err != nil {
		return err
	}
	material := cls.PrimaryMaterial
	if classifyFlags.material != "" {
		material = classifyFlags.material
	}
	condition := cls.ConditionGrade
	if classifyFlags.condition != "" {
		condition = classifyFlags.condition
	}
	m, err := c.MapParameters(intent.Params{
		Material:  material,
		Condition: condition,
		Agent:     cls.PrimaryAgents[0],
		Intensity: classifyFlags.intensity,
		Emphasis:  classifyFlags.emphasis,
	})
	if err != nil {
		return err
	}

	grade, err := app.content.Taxonomy().Grade(m.Condition)
	if err != nil {
		return err
	}

	if classifyFlags.json {
		return writeJSON(out, map[string]any{
			"classification":      cls,
			"state_id":            m.StateID,
			"state":               m.State.Round(4),
			"nearest_visual_type": roundMatch(m.VisualType),
			"color_stage":         m.ColorStage,
			"material_markers":    m.MaterialMarkers,
			"primary_vocabulary":  m.PrimaryVocabulary,
		})
	}

	fmt.Fprintf(out, "material:    %s (%s)\n", m.Material, m.MaterialName)
	fmt.Fprintf(out, "agents:      %s\n", strings.Join(cls.PrimaryAgents, ", "))
	fmt.Fprintf(out, "condition:   %s (grade %d)\n", m.Condition, grade.Grade)
	fmt.Fprintf(out, "aesthetic:   %s\n", cls.AestheticMode)
	fmt.Fprintf(out, "confidence:  %.2f\n", cls.Confidence)
	fmt.Fprintf(out, "state:       %s\n", m.StateID)
	fmt.Fprintf(out, "visual type: %s\n", m.VisualType.ID)
	fmt.Fprintf(out, "colour:      %s\n", m.ColorStage)
	fmt.Fprintf(out, "markers:     %s\n", strings.Join(m.MaterialMarkers, "; "))
	_, err = fmt.Fprintf(out, "vocabulary:  %s\n", strings.Join(m.PrimaryVocabulary, "; "))
	return err
}
