package httpapi_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gigaverse-labs/advisor/internal/advisor"
	"github.com/gigaverse-labs/advisor/internal/frontend/httpapi"
	"github.com/gigaverse-labs/advisor/internal/game/combat"
	"github.com/gigaverse-labs/advisor/internal/game/loot"
)

type fakeDecisionLog struct {
	recs      []advisor.Record
	err       error
	lastLimit int
}

func (f *fakeDecisionLog) Recent(_ context.Context, limit int) ([]advisor.Record, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.recs[:min(limit, len(f.recs))], nil
}

func auditedRecords() []advisor.Record {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []advisor.Record{
		{
			ID:          uuid.New(),
			Kind:        advisor.KindLoot,
			Choice:      "atk",
			Score:       12.5,
			Explanation: "attack boon",
			Options:     []loot.Option{{BoonType: "atk", Rarity: 2}},
			CreatedAt:   now,
		},
		{
			ID:          uuid.New(),
			Kind:        advisor.KindMove,
			Choice:      combat.Rock.String(),
			Score:       2.5,
			Explanation: "rock wins",
			CreatedAt:   now.Add(-time.Minute),
		},
	}
}

func newAuditedRouter(t *testing.T, log httpapi.DecisionLog, hash string) http.Handler {
	t.Helper()
	svc := advisor.New(combat.DefaultParams(), loot.Balanced, nil, zap.NewNop())
	return httpapi.NewRouter(svc, log, hash, zap.NewNop())
}

func TestListDecisions_NewestFirst(t *testing.T) {
	log := &fakeDecisionLog{recs: auditedRecords()}
	r := newAuditedRouter(t, log, "")

	w := do(r, http.MethodGet, "/v1/decisions", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, httpapi.DefaultDecisionLimit, log.lastLimit)

	got, ok := decode(t, w)["decisions"].([]any)
	require.True(t, ok)
	require.Len(t, got, 2)
	first := got[0].(map[string]any)
	assert.Equal(t, log.recs[0].ID.String(), first["decision_id"])
	assert.Equal(t, "loot", first["kind"])
	assert.Equal(t, "atk", first["choice"])
	assert.Equal(t, 12.5, first["expected_value"])
	assert.Len(t, first["options"], 1)
	second := got[1].(map[string]any)
	assert.Equal(t, "move", second["kind"])
	assert.NotContains(t, second, "options")
}

func TestListDecisions_Limit(t *testing.T) {
	log := &fakeDecisionLog{recs: auditedRecords()}
	r := newAuditedRouter(t, log, "")

	w := do(r, http.MethodGet, "/v1/decisions?limit=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, log.lastLimit)
	assert.Len(t, decode(t, w)["decisions"], 1)

	for _, bad := range []string{"0", "-3", "ten", "1.5"} {
		w := do(r, http.MethodGet, "/v1/decisions?limit="+bad, "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
		assert.Contains(t, decode(t, w)["error"], "limit must be a positive integer")
	}
}

func TestListDecisions_StoreErrorIsHidden(t *testing.T) {
	r := newAuditedRouter(t, &fakeDecisionLog{err: errors.New("connection reset")}, "")

	w := do(r, http.MethodGet, "/v1/decisions", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal error", decode(t, w)["error"])
}

func TestListDecisions_RequiresAPIKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	r := newAuditedRouter(t, &fakeDecisionLog{recs: auditedRecords()}, string(hash))

	w := do(r, http.MethodGet, "/v1/decisions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/v1/decisions", "", http.Header{httpapi.APIKeyHeader: {"s3cret"}})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListDecisions_NotRoutedWithoutAudit(t *testing.T) {
	r := newRouter(t, "")

	w := do(r, http.MethodGet, "/v1/decisions", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
