package intent_test

import (
	"testing"

	"patina/internal/catalog"
	"patina/internal/intent"
	"patina/internal/morphospace"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClassifier(t *testing.T) *intent.Classifier {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return intent.New(c)
}

func TestClassify_Defaults(t *testing.T) {
	cls, err := newClassifier(t).Classify("")
	require.NoError(t, err)

	assert.Equal(t, intent.DefaultMaterial, cls.PrimaryMaterial)
	assert.Equal(t, []string{"water", "uv_solar"}, cls.PrimaryAgents)
	assert.Equal(t, intent.DefaultCondition, cls.ConditionGrade)
	assert.Equal(t, intent.DefaultAesthetic, cls.AestheticMode)
	assert.Equal(t, "noble_verdigris", cls.NearestCanonicalState)
	assert.Equal(t, 0.3, cls.Confidence)
	assert.Equal(t, 0, cls.MatchedKeywords.Total())
	assert.NotNil(t, cls.MatchedKeywords.Materials)
}

func TestClassify_Material(t *testing.T) {
	cls, err := newClassifier(t).Classify("Heavily RUSTED iron gate")
	require.NoError(t, err)
	assert.Equal(t, "ferrous_metal", cls.PrimaryMaterial)
	assert.Equal(t, []string{"ferrous_metal"}, cls.MatchedKeywords.Materials)
	assert.NotEmpty(t, cls.MaterialDetails.Name)
}

func TestClassify_ConditionKeywordAndFallback(t *testing.T) {
	c := newClassifier(t)
	tests := []struct {
		text      string
		condition string
		state     string
	}{
		{"ancient ruins of a temple", "ruin", "total_ruin"},
		{"an old bronze bell", "advanced_decay", "deep_rust"},
		{"a vintage clock", "moderate_weathering", "noble_verdigris"},
		{"a clean marble floor", "pristine", "fresh_pristine"},
		{"a derelict factory", "severe_deterioration", "stone_erosion"},
	}
	for _, tc := range tests {
		cls, err := c.Classify(tc.text)
		require.NoError(t, err, tc.text)
		assert.Equal(t, tc.condition, cls.ConditionGrade, tc.text)
		assert.Equal(t, tc.state, cls.NearestCanonicalState, tc.text)
		assert.Equal(t, tc.condition, cls.ConditionDetails.ID, tc.text)
	}
}

func TestClassify_Confidence(t *testing.T) {
	c := newClassifier(t)

	full, err := c.Classify("rusted iron, weathered by rain and lichen, wabi-sabi")
	require.NoError(t, err)
	assert.Equal(t, 5, full.MatchedKeywords.Total())
	assert.Equal(t, 1.0, full.Confidence)

	some, err := c.Classify("bronze in the rain")
	require.NoError(t, err)
	assert.Equal(t, 0.4, some.Confidence)
}

func TestMapParameters_StateForGrade(t *testing.T) {
	c := newClassifier(t)
	tests := []struct {
		material, condition, state string
	}{
		{"copper_alloy", "moderate_weathering", "noble_verdigris"},
		{"limestone", "moderate_weathering", "cracked_glaze"},
		{"ferrous_metal", "advanced_decay", "deep_rust"},
		{"wood", "advanced_decay", "stone_erosion"},
		{"glass", "pristine", "fresh_pristine"},
		{"paper_textile", "ruin", "total_ruin"},
	}
	for _, tc := range tests {
		m, err := c.MapParameters(intent.Params{Material: tc.material, Condition: tc.condition})
		require.NoError(t, err)
		assert.Equal(t, tc.state, m.StateID, "%s/%s", tc.material, tc.condition)
	}
}

func TestMapParameters_Details(t *testing.T) {
	c := newClassifier(t)
	m, err := c.MapParameters(intent.Params{Material: "copper_alloy", Emphasis: "color", Intensity: "dramatic"})
	require.NoError(t, err)

	assert.Equal(t, intent.DefaultCondition, m.Condition)
	assert.Equal(t, intent.DefaultAgent, m.Agent)
	assert.Equal(t, 1.5, m.Weight)
	assert.NotEmpty(t, m.ColorStage)
	assert.NotEmpty(t, m.MaterialMarkers)
	assert.LessOrEqual(t, len(m.MaterialMarkers), 3)
	assert.Equal(t, m.Vocabulary.Lookup(morphospace.ColorTransformation), m.PrimaryVocabulary)
	assert.NotEmpty(t, m.Keywords)

	state, err := catalog.MustDefault().States().Lookup(m.StateID)
	require.NoError(t, err)
	assert.Equal(t, state, m.State)
}

func TestMapParameters_Fallbacks(t *testing.T) {
	c := newClassifier(t)
	water, err := catalog.MustDefault().Taxonomy().Agent("water")
	require.NoError(t, err)

	m, err := c.MapParameters(intent.Params{
		Material:  "sandstone",
		Agent:     "volcanic",
		Intensity: "extreme",
		Emphasis:  "smell",
	})
	require.NoError(t, err)
	assert.Equal(t, water.VisualIndicators, m.AgentIndicators)
	assert.Equal(t, 1.0, m.Weight)
	assert.Equal(t, m.Vocabulary.Lookup(morphospace.SurfaceTexture), m.PrimaryVocabulary)
}

func TestMapParameters_Errors(t *testing.T) {
	c := newClassifier(t)
	_, err := c.MapParameters(intent.Params{Material: "adamantium"})
	assert.True(t, morphospace.IsNotFound(err), "err = %v", err)

	_, err = c.MapParameters(intent.Params{Material: "wood", Condition: "spotless"})
	assert.True(t, morphospace.IsNotFound(err), "err = %v", err)
}

func TestEnhance(t *testing.T) {
	c := newClassifier(t)

	e, err := c.Enhance("lichen on an old wooden barn", intent.EnhanceOptions{})
	require.NoError(t, err)
	assert.Equal(t, intent.DefaultIntensity, e.Intensity)
	assert.Equal(t, "wood", e.Mapping.Material)
	assert.Equal(t, "advanced_decay", e.Mapping.Condition)
	assert.Equal(t, "biological", e.Mapping.Agent)
	assert.Len(t, e.Instructions.Guidelines, 6)
	assert.Equal(t, "Maintain specificity — name the oxide, the organism, the fracture mode", e.Instructions.Guidelines[3])
	assert.Contains(t, e.Instructions.Emphasis, "moderate")

	over, err := c.Enhance("lichen on an old wooden barn", intent.EnhanceOptions{
		Material:  "copper_alloy",
		Condition: "moderate_weathering",
		Intensity: "subtle",
	})
	require.NoError(t, err)
	assert.Equal(t, "wood", over.Classification.PrimaryMaterial)
	assert.Equal(t, "copper_alloy", over.Mapping.Material)
	assert.Equal(t, "noble_verdigris", over.Mapping.StateID)
	assert.Equal(t, 0.6, over.Mapping.Weight)
	assert.Equal(t, over.Mapping.MaterialName, over.Material.Name)

	_, err = c.Enhance("anything", intent.EnhanceOptions{Material: "unobtainium"})
	assert.Error(t, err)
}
