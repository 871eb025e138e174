package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/stylesyncapp/stylesync-server/internal/domain"
	"github.com/stylesyncapp/stylesync-server/internal/service"
	"github.com/stylesyncapp/stylesync-server/internal/taxonomy"
)

func (s *Server) registerValidationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "validateOutfit",
		Method:      http.MethodPost,
		Path:        "/api/v1/outfits/validate",
		Summary:     "Validate outfit",
		Description: "Evaluates one candidate outfit against the static and dynamic rules",
		Tags:        []string{"Validation"},
	}, s.handleValidateOutfit)

	huma.Register(s.api, huma.Operation{
		OperationID: "validateOutfitBatch",
		Method:      http.MethodPost,
		Path:        "/api/v1/outfits/validate-batch",
		Summary:     "Validate outfit batch",
		Description: "Evaluates several candidate outfits against one rule-set snapshot",
		Tags:        []string{"Validation"},
	}, s.handleValidateOutfitBatch)
}

// === DTOs ===

// ClothingItemRequest describes one garment in a candidate outfit.
type ClothingItemRequest struct {
	ID           string `json:"id,omitempty" doc:"Caller-supplied item ID"`
	Name         string `json:"name" minLength:"1" doc:"Item name, e.g. 'logo hoodie'"`
	Type         string `json:"type" minLength:"1" doc:"Item type, e.g. 'top', 'shoes'"`
	Subtype      string `json:"subtype,omitempty" doc:"Item subtype, e.g. 'blazer'"`
	Color        string `json:"color,omitempty" doc:"Primary color"`
	Material     string `json:"material,omitempty" doc:"Primary material, e.g. 'wool'"`
	Pattern      string `json:"pattern,omitempty" doc:"Pattern, e.g. 'plaid'"`
	Fit          string `json:"fit,omitempty" doc:"Fit, e.g. 'slim'"`
	SleeveLength string `json:"sleeve_length,omitempty" doc:"Sleeve length, e.g. 'long'"`
}

// OutfitContextRequest describes the styling situation to evaluate against.
type OutfitContextRequest struct {
	Aesthetic    string   `json:"aesthetic" minLength:"1" doc:"Style aesthetic, e.g. 'Old Money'"`
	Formality    string   `json:"formality,omitempty" doc:"Formality subtype, e.g. 'Business Formal'"`
	Activity     string   `json:"activity,omitempty" doc:"Activity subtype, e.g. 'Business'"`
	Weather      string   `json:"weather,omitempty" doc:"Weather subtype, e.g. 'Cold'"`
	Mood         string   `json:"mood,omitempty" doc:"Mood subtype, e.g. 'Confident'"`
	Theme        string   `json:"theme,omitempty" doc:"Theme subtype, optional"`
	TemperatureF *float64 `json:"temperature_f,omitempty" doc:"Expected temperature in Fahrenheit"`
	Season       string   `json:"season,omitempty" doc:"Season name, e.g. 'winter'"`
}

// ValidateOutfitRequest is the request body for validating one outfit.
type ValidateOutfitRequest struct {
	Items   []ClothingItemRequest `json:"items" minItems:"1" doc:"Candidate outfit items"`
	Context OutfitContextRequest  `json:"context" doc:"Styling context"`
}

// ValidateOutfitInput wraps the validation request for Huma.
type ValidateOutfitInput struct {
	Body ValidateOutfitRequest
}

// ValidateOutfitOutput wraps the validation result for Huma.
type ValidateOutfitOutput struct {
	Body domain.ValidationResult
}

// ValidateBatchRequest is the request body for validating several outfits.
type ValidateBatchRequest struct {
	Outfits [][]ClothingItemRequest `json:"outfits" minItems:"1" doc:"Candidate outfits, each a list of items"`
	Context OutfitContextRequest    `json:"context" doc:"Styling context shared by all candidates"`
}

// ValidateBatchInput wraps the batch request for Huma.
type ValidateBatchInput struct {
	Body ValidateBatchRequest
}

// ValidateBatchResponse contains one result per candidate, in input order.
type ValidateBatchResponse struct {
	Results []domain.ValidationResult `json:"results" doc:"One result per candidate outfit, in input order"`
}

// ValidateBatchOutput wraps the batch response for Huma.
type ValidateBatchOutput struct {
	Body ValidateBatchResponse
}

// === Handlers ===

func (s *Server) handleValidateOutfit(ctx context.Context, input *ValidateOutfitInput) (*ValidateOutfitOutput, error) {
	outfit := toOutfit(input.Body.Items)
	octx := toOutfitContext(input.Body.Context)

	result, err := s.services.Validation.Validate(ctx, outfit, octx)
	if err != nil {
		return nil, err
	}

	return &ValidateOutfitOutput{Body: *result}, nil
}

func (s *Server) handleValidateOutfitBatch(ctx context.Context, input *ValidateBatchInput) (*ValidateBatchOutput, error) {
	if len(input.Body.Outfits) > service.MaxBatchSize {
		return nil, huma.Error422UnprocessableEntity("too many candidate outfits")
	}

	outfits := make([]domain.Outfit, len(input.Body.Outfits))
	for i, items := range input.Body.Outfits {
		outfits[i] = toOutfit(items)
	}
	octx := toOutfitContext(input.Body.Context)

	results, err := s.services.Validation.ValidateBatch(ctx, outfits, octx)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.ValidationResult, len(results))
	for i, r := range results {
		resp[i] = *r
	}

	return &ValidateBatchOutput{Body: ValidateBatchResponse{Results: resp}}, nil
}

// === Mapping ===

func toOutfit(items []ClothingItemRequest) domain.Outfit {
	out := domain.Outfit{Items: make([]domain.ClothingItem, len(items))}
	for i, it := range items {
		out.Items[i] = domain.ClothingItem{
			ID:           it.ID,
			Name:         it.Name,
			Type:         it.Type,
			Subtype:      it.Subtype,
			Color:        it.Color,
			Material:     it.Material,
			Pattern:      it.Pattern,
			Fit:          it.Fit,
			SleeveLength: it.SleeveLength,
		}
	}
	return out
}

func toOutfitContext(req OutfitContextRequest) domain.OutfitContext {
	octx := domain.OutfitContext{
		Aesthetic: taxonomy.StyleAesthetic(req.Aesthetic),
		Formality: taxonomy.Subtype(req.Formality),
		Activity:  taxonomy.Subtype(req.Activity),
		Weather:   taxonomy.Subtype(req.Weather),
		Mood:      taxonomy.Subtype(req.Mood),
		Theme:     taxonomy.Subtype(req.Theme),
		Season:    req.Season,
	}
	if req.TemperatureF != nil {
		octx.TemperatureF = *req.TemperatureF
		octx.HasTemperature = true
	}
	return octx
}
