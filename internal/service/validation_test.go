package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stylesyncapp/stylesync-server/internal/domain"
	"github.com/stylesyncapp/stylesync-server/internal/errors"
	"github.com/stylesyncapp/stylesync-server/internal/evaluator"
	"github.com/stylesyncapp/stylesync-server/internal/rules"
	"github.com/stylesyncapp/stylesync-server/internal/store"
	"github.com/stylesyncapp/stylesync-server/internal/taxonomy"
)

func setupTestValidation(t *testing.T) (*ValidationService, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "validation-service-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	testStore, err := store.New(dbPath, nil)
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	rulesSvc, err := NewRulesService(context.Background(), testStore, logger)
	require.NoError(t, err)

	index, err := rules.LoadDefault()
	require.NoError(t, err)

	svc := NewValidationService(evaluator.New(index), rulesSvc, logger)

	cleanup := func() {
		_ = testStore.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return svc, cleanup
}

func staplesOutfit() domain.Outfit {
	return domain.Outfit{Items: []domain.ClothingItem{
		{Name: "White Dress Shirt", Type: "top", Color: "white"},
		{Name: "Black Slacks", Type: "bottom", Color: "black"},
		{Name: "Black Oxford Shoes", Type: "shoes", Color: "black"},
	}}
}

func logoOutfit() domain.Outfit {
	return domain.Outfit{Items: []domain.ClothingItem{
		{Name: "Logo Hoodie", Type: "top", Color: "red"},
		{Name: "Jeans", Type: "bottom", Color: "blue"},
		{Name: "Sneakers", Type: "shoes", Color: "white"},
	}}
}

func TestValidationService_Validate_Success(t *testing.T) {
	svc, cleanup := setupTestValidation(t)
	defer cleanup()

	result, err := svc.Validate(context.Background(), staplesOutfit(), domain.OutfitContext{
		Aesthetic: taxonomy.AestheticBusinessCasual,
		Activity:  taxonomy.ActivityBusiness,
	})
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.HardErrors)
}

func TestValidationService_Validate_CanonicalizesCase(t *testing.T) {
	svc, cleanup := setupTestValidation(t)
	defer cleanup()

	// Lowercase context values must still hit the canonical rule tables:
	// a logo piece against old money business wear is a hard conflict.
	result, err := svc.Validate(context.Background(), logoOutfit(), domain.OutfitContext{
		Aesthetic: "old money",
		Activity:  "business",
	})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.NotEmpty(t, result.HardErrors)
	assert.Equal(t, []string{"Logo Hoodie"}, result.HardErrors[0].ItemRefs)
}

func TestValidationService_Validate_UnknownAesthetic(t *testing.T) {
	svc, cleanup := setupTestValidation(t)
	defer cleanup()

	_, err := svc.Validate(context.Background(), staplesOutfit(), domain.OutfitContext{
		Aesthetic: "Skydiving Chic",
	})
	require.Error(t, err)

	var domainErr *errors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, errors.CodeValidation, domainErr.Code)
}

func TestValidationService_Validate_UnknownSubtype(t *testing.T) {
	svc, cleanup := setupTestValidation(t)
	defer cleanup()

	_, err := svc.Validate(context.Background(), staplesOutfit(), domain.OutfitContext{
		Aesthetic: taxonomy.AestheticMinimalist,
		Activity:  "Spelunking",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Spelunking")
}

func TestValidationService_ValidateBatch_PreservesOrder(t *testing.T) {
	svc, cleanup := setupTestValidation(t)
	defer cleanup()

	outfits := []domain.Outfit{staplesOutfit(), logoOutfit(), staplesOutfit()}
	results, err := svc.ValidateBatch(context.Background(), outfits, domain.OutfitContext{
		Aesthetic: taxonomy.AestheticOldMoney,
		Activity:  taxonomy.ActivityBusiness,
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.True(t, results[0].Valid)
	assert.False(t, results[1].Valid)
	assert.True(t, results[2].Valid)
}

func TestValidationService_ValidateBatch_Empty(t *testing.T) {
	svc, cleanup := setupTestValidation(t)
	defer cleanup()

	results, err := svc.ValidateBatch(context.Background(), nil, domain.OutfitContext{
		Aesthetic: taxonomy.AestheticMinimalist,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestValidationService_ValidateBatch_TooLarge(t *testing.T) {
	svc, cleanup := setupTestValidation(t)
	defer cleanup()

	outfits := make([]domain.Outfit, MaxBatchSize+1)
	for i := range outfits {
		outfits[i] = staplesOutfit()
	}

	_, err := svc.ValidateBatch(context.Background(), outfits, domain.OutfitContext{
		Aesthetic: taxonomy.AestheticMinimalist,
	})
	require.Error(t, err)

	var domainErr *errors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, errors.CodeValidation, domainErr.Code)
}
