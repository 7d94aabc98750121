package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"github.com/gigaverse-labs/advisor/internal/advisor"
	"github.com/gigaverse-labs/advisor/internal/frontend/httpapi"
	"github.com/gigaverse-labs/advisor/internal/game/combat"
	"github.com/gigaverse-labs/advisor/internal/game/loot"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const snapshotJSON = `{
	"player": {
		"health": {"current": 10, "max": 10},
		"shield": {"current": 0, "max": 0},
		"rock": {"attack_power": 5, "charges_remaining": 2},
		"paper": {"attack_power": 5, "charges_remaining": 0},
		"scissor": {"attack_power": 5, "charges_remaining": 2}
	},
	"enemy": {
		"health": {"current": 10, "max": 10},
		"shield": {"current": 0, "max": 0},
		"rock": {"attack_power": 5, "charges_remaining": 1},
		"paper": {"attack_power": 0, "charges_remaining": 0},
		"scissor": {"attack_power": 0, "charges_remaining": 0}
	}
}`

type brokenAdvisor struct{}

func (brokenAdvisor) RecommendMove(context.Context, combat.Snapshot) (advisor.MoveRecommendation, error) {
	return advisor.MoveRecommendation{}, errors.New("boom")
}

func (brokenAdvisor) RecommendLoot(context.Context, []loot.Option, combat.Snapshot, string) (advisor.LootRecommendation, error) {
	return advisor.LootRecommendation{}, errors.New("boom")
}

func newRouter(t *testing.T, hash string) *gin.Engine {
	t.Helper()
	svc := advisor.New(combat.DefaultParams(), loot.Balanced, nil, zap.NewNop())
	return httpapi.NewRouter(svc, nil, hash, zap.NewNop())
}

func do(r http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	w := do(newRouter(t, ""), http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestOptimalMove(t *testing.T) {
	w := do(newRouter(t, ""), http.MethodPost, "/v1/combat/optimal-move", `{"snapshot": `+snapshotJSON+`}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, "rock", body["best_move"])
	assert.Equal(t, 2.5, body["expected_value"])
	assert.NotEmpty(t, body["decision_id"])
	assert.Contains(t, body["explanation"], "play rock")

	evals, ok := body["evaluations"].([]any)
	require.True(t, ok)
	require.Len(t, evals, 3)
	first := evals[0].(map[string]any)
	assert.Equal(t, "rock", first["move"])
}

func TestOptimalMove_BadRequests(t *testing.T) {
	r := newRouter(t, "")
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"snapshot":`},
		{"missing snapshot", `{}`},
		{"invalid snapshot", `{"snapshot": {"player": {}, "enemy": {}}}`},
		{"health over max", `{"snapshot": ` + strings.Replace(snapshotJSON, `"current": 10, "max": 10`, `"current": 12, "max": 10`, 1) + `}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/v1/combat/optimal-move", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, decode(t, w)["error"])
		})
	}
}

func TestOptimalMove_MissingFieldsAreNotDefaulted(t *testing.T) {
	r := newRouter(t, "")
	tests := []struct {
		name    string
		body    string
		missing string
	}{
		{
			name:    "health current",
			body:    `{"snapshot":{"player":{"health":{"max":10}},"enemy":{"health":{"max":10}}}}`,
			missing: "Health.Current",
		},
		{
			name:    "enemy shield",
			body:    `{"snapshot": ` + strings.Replace(snapshotJSON, `"shield": {"current": 0, "max": 0},`, "", 2) + `}`,
			missing: "Shield",
		},
		{
			name:    "attack line",
			body:    `{"snapshot": ` + strings.Replace(snapshotJSON, `"paper": {"attack_power": 5, "charges_remaining": 0},`, "", 1) + `}`,
			missing: "Player.Paper",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/v1/combat/optimal-move", tt.body, nil)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			msg, _ := decode(t, w)["error"].(string)
			assert.Contains(t, msg, combat.ErrInvalidSnapshot.Error())
			assert.Contains(t, msg, tt.missing)
		})
	}
}

func TestSelectLoot(t *testing.T) {
	body := `{
		"snapshot": ` + snapshotJSON + `,
		"strategy": "aggressive",
		"options": [
			{"boon_type": "def_boost", "rarity": 2, "upgrade_value_1": 3, "upgrade_value_2": 4},
			{"boon_type": "atk_boost", "rarity": 2, "upgrade_value_1": 3, "upgrade_value_2": 4}
		]
	}`
	w := do(newRouter(t, ""), http.MethodPost, "/v1/loot/select", body, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decode(t, w)
	assert.Equal(t, float64(1), got["best_index"])
	assert.Equal(t, "aggressive", got["strategy"])
	assert.Equal(t, "atk_boost", got["best_option"].(map[string]any)["boon_type"])
	assert.Len(t, got["scores"], 2)
}

func TestSelectLoot_BadRequests(t *testing.T) {
	r := newRouter(t, "")
	tests := []struct {
		name string
		body string
	}{
		{"no options", `{"snapshot": ` + snapshotJSON + `, "options": []}`},
		{"unknown strategy", `{"snapshot": ` + snapshotJSON + `, "strategy": "berserker", "options": [{"boon_type": "atk"}]}`},
		{"missing snapshot", `{"options": [{"boon_type": "atk"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/v1/loot/select", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestInternalErrorsAreHidden(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := httpapi.NewRouter(brokenAdvisor{}, nil, "", zap.New(core))

	w := do(r, http.MethodPost, "/v1/combat/optimal-move", `{"snapshot": `+snapshotJSON+`}`, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal error", decode(t, w)["error"])
	assert.Equal(t, 1, logs.FilterMessage("advisor request failed").Len())
}

func TestRequireAPIKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	r := newRouter(t, string(hash))
	body := `{"snapshot": ` + snapshotJSON + `}`

	w := do(r, http.MethodPost, "/v1/combat/optimal-move", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "missing API key", decode(t, w)["error"])

	w = do(r, http.MethodPost, "/v1/combat/optimal-move", body, http.Header{httpapi.APIKeyHeader: {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid API key", decode(t, w)["error"])

	w = do(r, http.MethodPost, "/v1/combat/optimal-move", body, http.Header{httpapi.APIKeyHeader: {"s3cret"}})
	assert.Equal(t, http.StatusOK, w.Code)

	// health stays open
	w = do(r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	svc := advisor.New(combat.DefaultParams(), loot.Balanced, nil, zap.NewNop())
	r := httpapi.NewRouter(svc, nil, "", zap.New(core))

	do(r, http.MethodGet, "/healthz", "", nil)
	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/healthz", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, httpapi.StatusFor(combat.ErrInvalidSnapshot))
	assert.Equal(t, http.StatusBadRequest, httpapi.StatusFor(loot.ErrNoOptions))
	assert.Equal(t, http.StatusBadRequest, httpapi.StatusFor(loot.ErrUnknownStrategy))
	assert.Equal(t, http.StatusInternalServerError, httpapi.StatusFor(errors.New("db")))
}

func TestHashAndCheckAPIKey(t *testing.T) {
	hash, err := httpapi.HashAPIKey("advisor-key")
	require.NoError(t, err)
	assert.True(t, httpapi.CheckAPIKey("advisor-key", hash))
	assert.False(t, httpapi.CheckAPIKey("other-key", hash))

	_, err = httpapi.HashAPIKey("")
	assert.Error(t, err)
}
