package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/stylesyncapp/stylesync-server/internal/domain"
	"github.com/stylesyncapp/stylesync-server/internal/taxonomy"
)

func (s *Server) registerStyleRuleRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listAesthetics",
		Method:      http.MethodGet,
		Path:        "/api/v1/rules/aesthetics",
		Summary:     "List aesthetics",
		Description: "Returns all known style aesthetics",
		Tags:        []string{"Rules"},
	}, s.handleListAesthetics)

	huma.Register(s.api, huma.Operation{
		OperationID: "getStyleRules",
		Method:      http.MethodGet,
		Path:        "/api/v1/rules/styles/{aesthetic}",
		Summary:     "Get style rules",
		Description: "Returns the static compatibility rules loaded for one aesthetic",
		Tags:        []string{"Rules"},
	}, s.handleGetStyleRules)
}

// === DTOs ===

// ListAestheticsResponse contains all known style aesthetics.
type ListAestheticsResponse struct {
	Aesthetics []taxonomy.StyleAesthetic `json:"aesthetics" doc:"Known style aesthetics"`
}

// ListAestheticsOutput wraps the aesthetics response for Huma.
type ListAestheticsOutput struct {
	Body ListAestheticsResponse
}

// GetStyleRulesInput contains parameters for reading one aesthetic's rules.
type GetStyleRulesInput struct {
	Aesthetic string `path:"aesthetic" doc:"Style aesthetic name"`
}

// StyleRulesResponse contains the static rules for one aesthetic.
type StyleRulesResponse struct {
	Aesthetic taxonomy.StyleAesthetic         `json:"aesthetic" doc:"Canonical aesthetic name"`
	Rules     []domain.StyleCompatibilityRule `json:"rules" doc:"Compatibility rules for this aesthetic"`
}

// StyleRulesOutput wraps the style rules response for Huma.
type StyleRulesOutput struct {
	Body StyleRulesResponse
}

// === Handlers ===

func (s *Server) handleListAesthetics(_ context.Context, _ *struct{}) (*ListAestheticsOutput, error) {
	return &ListAestheticsOutput{
		Body: ListAestheticsResponse{Aesthetics: taxonomy.Aesthetics()},
	}, nil
}

func (s *Server) handleGetStyleRules(_ context.Context, input *GetStyleRulesInput) (*StyleRulesOutput, error) {
	aesthetic, ok := taxonomy.ParseAesthetic(input.Aesthetic)
	if !ok {
		return nil, huma.Error404NotFound("unknown style aesthetic: " + input.Aesthetic)
	}

	rules := s.ruleIndex.StyleRules(aesthetic)
	if rules == nil {
		rules = []domain.StyleCompatibilityRule{}
	}

	return &StyleRulesOutput{
		Body: StyleRulesResponse{
			Aesthetic: aesthetic,
			Rules:     rules,
		},
	}, nil
}
