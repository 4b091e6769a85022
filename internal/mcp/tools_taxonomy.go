package mcp

import (
	"context"

	"patina/internal/catalog"
	"patina/internal/intent"
)

func (s *Server) registerTaxonomyTools() {
	addTool(s, "list_material_categories",
		"List the material categories with their characteristic weathering behaviour.",
		s.handleListMaterials)
	addTool(s, "get_material_details",
		"Get the full specification of one material category: colour progression, time scale and visual markers.",
		s.handleMaterialDetails)
	addTool(s, "list_weathering_agents",
		"List the weathering agents with their mechanisms and visual indicators.",
		s.handleListAgents)
	addTool(s, "get_weathering_agent_details",
		"Get the full specification of one weathering agent, including severity markers.",
		s.handleAgentDetails)
	addTool(s, "list_condition_grades",
		"List the conservation condition grades from pristine (1) to ruin (6).",
		s.handleListGrades)
	addTool(s, "classify_weathering_intent",
		"Classify a free-text weathering description into material, agents, condition grade, aesthetic and nearest canonical state.",
		s.handleClassify)
	addTool(s, "map_weathering_parameters",
		"Map a material and condition grade to visual parameters: canonical state, visual type, markers and weighted vocabulary.",
		s.handleMapParameters)
	addTool(s, "enhance_patina_prompt",
		"Classify an intent and bundle every deterministic weathering parameter for prompt synthesis.",
		s.handleEnhance)
}

// --- Tool input/output types ---

type noInput struct{}

type materialSummary struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	PrimaryWeathering    string   `json:"primary_weathering"`
	CharacteristicPatina string   `json:"characteristic_patina"`
	Examples             []string `json:"examples"`
}

type listMaterialsOutput struct {
	MaterialCategories []materialSummary `json:"material_categories"`
	TotalCategories    int               `json:"total_categories"`
}

type materialInput struct {
	MaterialID string `json:"material_id" jsonschema:"material category id, e.g. ferrous_metal or copper_alloy"`
}

type agentSummary struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Mechanisms       []string `json:"mechanisms"`
	VisualIndicators []string `json:"visual_indicators"`
}

type listAgentsOutput struct {
	WeatheringAgents []agentSummary `json:"weathering_agents"`
	TotalAgents      int            `json:"total_agents"`
}

type agentInput struct {
	AgentID string `json:"agent_id" jsonschema:"weathering agent id: water, uv_solar, chemical, biological, mechanical or thermal"`
}

type listGradesOutput struct {
	ConditionGrades []catalog.Grade `json:"condition_grades"`
	TotalGrades     int             `json:"total_grades"`
}

type classifyInput struct {
	UserIntent string `json:"user_intent" jsonschema:"free-text description of the desired weathering aesthetic"`
}

type mapParametersInput struct {
	MaterialID     string `json:"material_id" jsonschema:"material category id"`
	ConditionGrade string `json:"condition_grade,omitempty" jsonschema:"condition grade id (default moderate_weathering)"`
	PrimaryAgent   string `json:"primary_agent,omitempty" jsonschema:"dominant weathering agent id (default water)"`
	Intensity      string `json:"intensity,omitempty" jsonschema:"subtle, moderate or dramatic (default moderate)"`
	Emphasis       string `json:"emphasis,omitempty" jsonschema:"surface, color, structure, biological, temporal or light (default surface)"`
}

type mappingOutput struct {
	MaterialID              string               `json:"material_id"`
	MaterialName            string               `json:"material_name"`
	ConditionGrade          string               `json:"condition_grade"`
	PrimaryAgent            string               `json:"primary_agent"`
	Intensity               string               `json:"intensity"`
	Emphasis                string               `json:"emphasis"`
	Weight                  float64              `json:"weight"`
	StateID                 string               `json:"state_id"`
	State                   map[string]float64   `json:"state"`
	NearestVisualType       string               `json:"nearest_visual_type"`
	VisualDistance          float64              `json:"visual_distance"`
	OpticalProperties       catalog.Optical      `json:"optical_properties"`
	CurrentColorStage       string               `json:"current_color_stage"`
	MaterialSpecificMarkers []string             `json:"material_specific_markers"`
	AgentVisualIndicators   []string             `json:"agent_visual_indicators"`
	PrimaryVocabulary       []string             `json:"primary_vocabulary"`
	FullVocabulary          []categoryVocabulary `json:"full_vocabulary"`
	Keywords                []string             `json:"keywords"`
	ColorAssociations       []string             `json:"color_associations"`
}

func toMappingOutput(m *intent.Mapping) mappingOutput {
	return mappingOutput{
		MaterialID:              m.Material,
		MaterialName:            m.MaterialName,
		ConditionGrade:          m.Condition,
		PrimaryAgent:            m.Agent,
		Intensity:               m.Intensity,
		Emphasis:                m.Emphasis,
		Weight:                  m.Weight,
		StateID:                 m.StateID,
		State:                   coord(m.State),
		NearestVisualType:       m.VisualType.ID,
		VisualDistance:          r4(m.VisualType.Distance),
		OpticalProperties:       m.Optical,
		CurrentColorStage:       m.ColorStage,
		MaterialSpecificMarkers: nonNil(m.MaterialMarkers),
		AgentVisualIndicators:   nonNil(m.AgentIndicators),
		PrimaryVocabulary:       nonNil(m.PrimaryVocabulary),
		FullVocabulary:          vocabularyEntries(m.Vocabulary),
		Keywords:                nonNil(m.Keywords),
		ColorAssociations:       nonNil(m.ColorAssociations),
	}
}

type enhanceInput struct {
	UserIntent        string `json:"user_intent" jsonschema:"free-text description of the desired weathering aesthetic"`
	MaterialOverride  string `json:"material_override,omitempty" jsonschema:"material id replacing the detected material"`
	ConditionOverride string `json:"condition_override,omitempty" jsonschema:"condition grade id replacing the detected grade"`
	Intensity         string `json:"intensity,omitempty" jsonschema:"subtle, moderate or dramatic (default moderate)"`
}

type enhanceOutput struct {
	OriginalIntent          string                       `json:"original_intent"`
	Intensity               string                       `json:"intensity"`
	Classification          intent.Classification        `json:"classification"`
	WeatheringSpecification mappingOutput                `json:"weathering_specification"`
	MaterialContext         intent.MaterialContext       `json:"material_context"`
	SynthesisInstructions   intent.SynthesisInstructions `json:"synthesis_instructions"`
}

// --- Tool handlers ---

func (s *Server) handleListMaterials(_ context.Context, _ noInput) (listMaterialsOutput, error) {
	mats := s.content.Taxonomy().Materials
	out := listMaterialsOutput{
		MaterialCategories: make([]materialSummary, 0, len(mats)),
		TotalCategories:    len(mats),
	}
	for _, m := range mats {
		out.MaterialCategories = append(out.MaterialCategories, materialSummary{
			ID:                   m.ID,
			Name:                 m.Name,
			Description:          m.Description,
			PrimaryWeathering:    m.PrimaryWeathering,
			CharacteristicPatina: m.CharacteristicPatina,
			Examples:             nonNil(m.Examples),
		})
	}
	return out, nil
}

func (s *Server) handleMaterialDetails(_ context.Context, in materialInput) (catalog.Material, error) {
	return s.content.Taxonomy().Material(in.MaterialID)
}

func (s *Server) handleListAgents(_ context.Context, _ noInput) (listAgentsOutput, error) {
	agents := s.content.Taxonomy().Agents
	out := listAgentsOutput{
		WeatheringAgents: make([]agentSummary, 0, len(agents)),
		TotalAgents:      len(agents),
	}
	for _, a := range agents {
		out.WeatheringAgents = append(out.WeatheringAgents, agentSummary{
			ID:               a.ID,
			Name:             a.Name,
			Mechanisms:       nonNil(a.Mechanisms),
			VisualIndicators: nonNil(a.VisualIndicators),
		})
	}
	return out, nil
}

func (s *Server) handleAgentDetails(_ context.Context, in agentInput) (catalog.Agent, error) {
	return s.content.Taxonomy().Agent(in.AgentID)
}

func (s *Server) handleListGrades(_ context.Context, _ noInput) (listGradesOutput, error) {
	grades := s.content.Taxonomy().Grades
	return listGradesOutput{
		ConditionGrades: append([]catalog.Grade{}, grades...),
		TotalGrades:     len(grades),
	}, nil
}

func (s *Server) handleClassify(_ context.Context, in classifyInput) (intent.Classification, error) {
	c, err := s.classifier.Classify(in.UserIntent)
	if err != nil {
		return intent.Classification{}, err
	}
	return *c, nil
}

func (s *Server) handleMapParameters(_ context.Context, in mapParametersInput) (mappingOutput, error) {
	m, err := s.classifier.MapParameters(intent.Params{
		Material:  in.MaterialID,
		Condition: in.ConditionGrade,
		Agent:     in.PrimaryAgent,
		Intensity: in.Intensity,
		Emphasis:  in.Emphasis,
	})
	if err != nil {
		return mappingOutput{}, err
	}
	return toMappingOutput(m), nil
}

func (s *Server) handleEnhance(_ context.Context, in enhanceInput) (enhanceOutput, error) {
	e, err := s.classifier.Enhance(in.UserIntent, intent.EnhanceOptions{
		Material:  in.MaterialOverride,
		Condition: in.ConditionOverride,
		Intensity: in.Intensity,
	})
	if err != nil {
		return enhanceOutput{}, err
	}
	return enhanceOutput{
		OriginalIntent:          e.Intent,
		Intensity:               e.Intensity,
		Classification:          *e.Classification,
		WeatheringSpecification: toMappingOutput(e.Mapping),
		MaterialContext:         e.Material,
		SynthesisInstructions:   e.Instructions,
	}, nil
}
