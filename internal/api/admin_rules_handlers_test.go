package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylesyncapp/stylesync-server/internal/domain"
)

func TestAdminRules_Get(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/v1/admin/rules")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var ruleset domain.DynamicRuleSet
	decodeBody(t, resp.Body.Bytes(), &ruleset)
	assert.NotEmpty(t, ruleset.MaterialClimateRules)
	assert.Equal(t, "1", ruleset.Metadata.Version)
	assert.InDelta(t, 70, ruleset.MaterialClimateRules["wool"].MaxTempF, 0.001)
}

func TestAdminRules_Patch(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Patch("/api/v1/admin/rules", map[string]any{
		"actor_id":  "admin-1",
		"rule_path": "materialClimateRules.wool.maxTempF",
		"new_value": 80,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var entry RuleChangeResponse
	decodeBody(t, resp.Body.Bytes(), &entry)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "admin-1", entry.ActorID)
	assert.Equal(t, "materialClimateRules.wool.maxTempF", entry.RulePath)
	assert.Equal(t, 70.0, entry.OldValue)
	assert.Equal(t, 80.0, entry.NewValue)

	// The live rule set reflects the change.
	resp = ts.api.Get("/api/v1/admin/rules")
	require.Equal(t, http.StatusOK, resp.Code)

	var ruleset domain.DynamicRuleSet
	decodeBody(t, resp.Body.Bytes(), &ruleset)
	assert.InDelta(t, 80, ruleset.MaterialClimateRules["wool"].MaxTempF, 0.001)
}

func TestAdminRules_Patch_UnknownPath(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Patch("/api/v1/admin/rules", map[string]any{
		"actor_id":  "admin-1",
		"rule_path": "materialClimateRules.unobtainium.maxTempF",
		"new_value": 50,
	})
	assert.Equal(t, http.StatusNotFound, resp.Code, resp.Body.String())

	var apiErr APIError
	decodeBody(t, resp.Body.Bytes(), &apiErr)
	assert.Equal(t, "RULE_PATH_NOT_FOUND", apiErr.Code)

	// A failed patch leaves no trace in history.
	resp = ts.api.Get("/api/v1/admin/rules/history")
	require.Equal(t, http.StatusOK, resp.Code)

	var history RuleHistoryResponse
	decodeBody(t, resp.Body.Bytes(), &history)
	assert.Empty(t, history.Entries)
}

func TestAdminRules_Patch_MissingActor(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Patch("/api/v1/admin/rules", map[string]any{
		"rule_path": "colorRules.maxColors",
		"new_value": 5,
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

	var apiErr APIError
	decodeBody(t, resp.Body.Bytes(), &apiErr)
	assert.Equal(t, "VALIDATION", apiErr.Code)
}

func TestAdminRules_UpsertMaterialClimate_Create(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Put("/api/v1/admin/rules/material-climate/corduroy", map[string]any{
		"actor_id":   "admin-2",
		"min_temp_f": 15,
		"max_temp_f": 70,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var entry RuleChangeResponse
	decodeBody(t, resp.Body.Bytes(), &entry)
	assert.Equal(t, "materialClimateRules.corduroy", entry.RulePath)
	assert.Nil(t, entry.OldValue)

	resp = ts.api.Get("/api/v1/admin/rules")
	require.Equal(t, http.StatusOK, resp.Code)

	var ruleset domain.DynamicRuleSet
	decodeBody(t, resp.Body.Bytes(), &ruleset)
	got, ok := ruleset.MaterialClimateRules["corduroy"]
	require.True(t, ok)
	assert.InDelta(t, 15, got.MinTempF, 0.001)
	assert.InDelta(t, 70, got.MaxTempF, 0.001)
}

func TestAdminRules_UpsertMaterialClimate_InvalidRange(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Put("/api/v1/admin/rules/material-climate/wool", map[string]any{
		"actor_id":   "admin-2",
		"min_temp_f": 80,
		"max_temp_f": 40,
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
}

func TestAdminRules_History_NewestFirst(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	for _, v := range []int{5, 6, 7} {
		resp := ts.api.Patch("/api/v1/admin/rules", map[string]any{
			"actor_id":  "admin-1",
			"rule_path": "colorRules.maxColors",
			"new_value": v,
		})
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	}

	resp := ts.api.Get("/api/v1/admin/rules/history")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var history RuleHistoryResponse
	decodeBody(t, resp.Body.Bytes(), &history)
	require.Len(t, history.Entries, 3)
	assert.False(t, history.HasMore)
	assert.Equal(t, 7.0, history.Entries[0].NewValue)
	assert.Equal(t, 5.0, history.Entries[2].NewValue)
}

func TestAdminRules_History_Paginates(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	for i := 0; i < 5; i++ {
		resp := ts.api.Patch("/api/v1/admin/rules", map[string]any{
			"actor_id":  "admin-1",
			"rule_path": "layeringRules.maxLayers",
			"new_value": 4 + i,
		})
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	}

	resp := ts.api.Get("/api/v1/admin/rules/history?limit=2")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var first RuleHistoryResponse
	decodeBody(t, resp.Body.Bytes(), &first)
	require.Len(t, first.Entries, 2)
	assert.True(t, first.HasMore)
	require.NotEmpty(t, first.NextCursor)
	assert.Equal(t, 8.0, first.Entries[0].NewValue)

	resp = ts.api.Get("/api/v1/admin/rules/history?limit=2&cursor=" + first.NextCursor)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var second RuleHistoryResponse
	decodeBody(t, resp.Body.Bytes(), &second)
	require.Len(t, second.Entries, 2)
	assert.Equal(t, 6.0, second.Entries[0].NewValue)
}
