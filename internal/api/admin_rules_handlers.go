package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/stylesyncapp/stylesync-server/internal/domain"
	"github.com/stylesyncapp/stylesync-server/internal/store"
)

func (s *Server) registerAdminRuleRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getRuleSet",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/rules",
		Summary:     "Get rule set",
		Description: "Returns the live dynamic rule set with its metadata",
		Tags:        []string{"Admin"},
	}, s.handleGetRuleSet)

	huma.Register(s.api, huma.Operation{
		OperationID: "patchRule",
		Method:      http.MethodPatch,
		Path:        "/api/v1/admin/rules",
		Summary:     "Patch rule",
		Description: "Updates one scalar leaf of the dynamic rule set by path",
		Tags:        []string{"Admin"},
	}, s.handlePatchRule)

	huma.Register(s.api, huma.Operation{
		OperationID: "upsertMaterialClimateRule",
		Method:      http.MethodPut,
		Path:        "/api/v1/admin/rules/material-climate/{material}",
		Summary:     "Upsert material climate rule",
		Description: "Creates or replaces the climate thresholds for one material",
		Tags:        []string{"Admin"},
	}, s.handleUpsertMaterialClimateRule)

	huma.Register(s.api, huma.Operation{
		OperationID: "listRuleHistory",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/rules/history",
		Summary:     "List rule history",
		Description: "Returns change entries in reverse-chronological order",
		Tags:        []string{"Admin"},
	}, s.handleListRuleHistory)
}

// === DTOs ===

// RuleSetOutput wraps the dynamic rule set for Huma.
type RuleSetOutput struct {
	Body domain.DynamicRuleSet
}

// PatchRuleRequest is the request body for patching one rule leaf.
type PatchRuleRequest struct {
	ActorID  string `json:"actor_id" validate:"required,min=1,max=100" doc:"Administrator making the change"`
	RulePath string `json:"rule_path" validate:"required,min=1" doc:"Dot-addressed path, e.g. 'materialClimateRules.wool.maxTempF'"`
	NewValue any    `json:"new_value" doc:"Replacement value for the addressed leaf"`
}

// PatchRuleInput wraps the patch request for Huma.
type PatchRuleInput struct {
	Body PatchRuleRequest
}

// RuleChangeResponse contains one audit history entry.
type RuleChangeResponse struct {
	ID        string    `json:"id" doc:"Change entry ID"`
	Timestamp time.Time `json:"timestamp" doc:"When the change committed"`
	ActorID   string    `json:"actor_id" doc:"Administrator who made the change"`
	RulePath  string    `json:"rule_path" doc:"Dot-addressed path that changed"`
	OldValue  any       `json:"old_value" doc:"Value before the change"`
	NewValue  any       `json:"new_value" doc:"Value after the change"`
}

// RuleChangeOutput wraps a change entry for Huma.
type RuleChangeOutput struct {
	Body RuleChangeResponse
}

// UpsertMaterialClimateRequest is the request body for upserting climate thresholds.
type UpsertMaterialClimateRequest struct {
	ActorID  string  `json:"actor_id" validate:"required,min=1,max=100" doc:"Administrator making the change"`
	MinTempF float64 `json:"min_temp_f" doc:"Lowest comfortable temperature in Fahrenheit"`
	MaxTempF float64 `json:"max_temp_f" doc:"Highest comfortable temperature in Fahrenheit"`
}

// UpsertMaterialClimateInput wraps the upsert request for Huma.
type UpsertMaterialClimateInput struct {
	Material string `path:"material" doc:"Material name, e.g. 'wool'"`
	Body     UpsertMaterialClimateRequest
}

// ListRuleHistoryInput contains pagination parameters for the history listing.
type ListRuleHistoryInput struct {
	Limit  int    `query:"limit" doc:"Maximum entries to return (default 50, max 500)"`
	Cursor string `query:"cursor" doc:"Opaque cursor from a previous page"`
}

// RuleHistoryResponse contains a page of change entries, newest first.
type RuleHistoryResponse struct {
	Entries    []RuleChangeResponse `json:"entries" doc:"Change entries, newest first"`
	HasMore    bool                 `json:"has_more" doc:"Whether more entries exist"`
	NextCursor string               `json:"next_cursor,omitempty" doc:"Cursor for the next page"`
}

// RuleHistoryOutput wraps the history response for Huma.
type RuleHistoryOutput struct {
	Body RuleHistoryResponse
}

// === Handlers ===

func (s *Server) handleGetRuleSet(ctx context.Context, _ *struct{}) (*RuleSetOutput, error) {
	ruleset, err := s.services.Rules.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &RuleSetOutput{Body: *ruleset}, nil
}

func (s *Server) handlePatchRule(ctx context.Context, input *PatchRuleInput) (*RuleChangeOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	entry, err := s.services.Rules.Patch(ctx, input.Body.ActorID, input.Body.RulePath, input.Body.NewValue)
	if err != nil {
		return nil, err
	}

	return &RuleChangeOutput{Body: toRuleChangeResponse(entry)}, nil
}

func (s *Server) handleUpsertMaterialClimateRule(ctx context.Context, input *UpsertMaterialClimateInput) (*RuleChangeOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	entry, err := s.services.Rules.UpsertMaterialClimateRule(ctx, input.Body.ActorID, input.Material, input.Body.MinTempF, input.Body.MaxTempF)
	if err != nil {
		return nil, err
	}

	return &RuleChangeOutput{Body: toRuleChangeResponse(entry)}, nil
}

func (s *Server) handleListRuleHistory(ctx context.Context, input *ListRuleHistoryInput) (*RuleHistoryOutput, error) {
	params := store.DefaultPaginationParams()
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	params.Cursor = input.Cursor
	params.Validate()

	page, err := s.services.Rules.History(ctx, params)
	if err != nil {
		return nil, err
	}

	entries := make([]RuleChangeResponse, len(page.Items))
	for i := range page.Items {
		entries[i] = toRuleChangeResponse(&page.Items[i])
	}

	return &RuleHistoryOutput{
		Body: RuleHistoryResponse{
			Entries:    entries,
			HasMore:    page.HasMore,
			NextCursor: page.NextCursor,
		},
	}, nil
}

func toRuleChangeResponse(entry *domain.RuleChangeEntry) RuleChangeResponse {
	return RuleChangeResponse{
		ID:        entry.ID,
		Timestamp: entry.Timestamp,
		ActorID:   entry.ActorID,
		RulePath:  entry.RulePath,
		OldValue:  entry.OldValue,
		NewValue:  entry.NewValue,
	}
}
