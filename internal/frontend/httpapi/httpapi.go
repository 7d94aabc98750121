// Package httpapi exposes the advisor over a JSON HTTP API built on gin.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/gigaverse-labs/advisor/internal/advisor"
	"github.com/gigaverse-labs/advisor/internal/game/combat"
	"github.com/gigaverse-labs/advisor/internal/game/loot"
)

// Advisor is the decision surface the handlers call.
type Advisor interface {
	RecommendMove(ctx context.Context, snap combat.Snapshot) (advisor.MoveRecommendation, error)
	RecommendLoot(ctx context.Context, options []loot.Option, snap combat.Snapshot, strategyName string) (advisor.LootRecommendation, error)
}

// DecisionLog reads back audited decisions, newest first.
type DecisionLog interface {
	Recent(ctx context.Context, limit int) ([]advisor.Record, error)
}

// DefaultDecisionLimit is used when GET /v1/decisions has no limit parameter.
const DefaultDecisionLimit = 50

// Handler serves the advisor endpoints.
type Handler struct {
	advisor   Advisor
	decisions DecisionLog
	logger    *zap.Logger
}

// NewHandler creates a Handler. decisions may be nil when auditing is disabled.
//
// Precondition: adv and logger must not be nil.
func NewHandler(adv Advisor, decisions DecisionLog, logger *zap.Logger) *Handler {
	if adv == nil {
		panic("httpapi.NewHandler: advisor must not be nil")
	}
	if logger == nil {
		panic("httpapi.NewHandler: logger must not be nil")
	}
	return &Handler{advisor: adv, decisions: decisions, logger: logger}
}

// NewRouter builds the gin engine. When apiKeyHash is non-empty every /v1 route
// requires a matching X-API-Key header. GET /v1/decisions is only routed when
// decisions is non-nil.
//
// Precondition: adv and logger must not be nil.
func NewRouter(adv Advisor, decisions DecisionLog, apiKeyHash string, logger *zap.Logger) *gin.Engine {
	h := NewHandler(adv, decisions, logger)

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))
	r.GET("/healthz", h.Health)

	v1 := r.Group("/v1")
	if apiKeyHash != "" {
		v1.Use(RequireAPIKey(apiKeyHash))
	}
	v1.POST("/combat/optimal-move", h.OptimalMove)
	v1.POST("/loot/select", h.SelectLoot)
	if decisions != nil {
		v1.GET("/decisions", h.ListDecisions)
	}
	return r
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// OptimalMove answers POST /v1/combat/optimal-move.
func (h *Handler) OptimalMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	snap, err := req.Snapshot.Snapshot()
	if err != nil {
		h.fail(c, err)
		return
	}

	rec, err := h.advisor.RecommendMove(c.Request.Context(), snap)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newMoveResponse(rec))
}

// SelectLoot answers POST /v1/loot/select.
func (h *Handler) SelectLoot(c *gin.Context) {
	var req lootRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	snap, err := req.Snapshot.Snapshot()
	if err != nil {
		h.fail(c, err)
		return
	}

	rec, err := h.advisor.RecommendLoot(c.Request.Context(), req.Options, snap, req.Strategy)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newLootResponse(rec))
}

// ListDecisions answers GET /v1/decisions?limit=N.
func (h *Handler) ListDecisions(c *gin.Context) {
	limit := DefaultDecisionLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("limit must be a positive integer, got %q", raw)})
			return
		}
		limit = n
	}

	recs, err := h.decisions.Recent(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"decisions": newDecisionResponses(recs)})
}

// badRequest reports a body that failed to decode or bind. Absent snapshot
// fields fail binding and are reported as an invalid snapshot.
func (h *Handler) badRequest(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Namespace())
		}
		err = fmt.Errorf("%w: missing %s", combat.ErrInvalidSnapshot, strings.Join(fields, ", "))
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("advisor request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// StatusFor maps advisor errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, combat.ErrInvalidSnapshot),
		errors.Is(err, loot.ErrNoOptions),
		errors.Is(err, loot.ErrUnknownStrategy):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RequestLogger logs one line per request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// RequireAPIKey rejects requests whose X-API-Key does not match hash.
func RequireAPIKey(hash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing API key"})
			return
		}
		if !CheckAPIKey(key, hash) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
			return
		}
		c.Next()
	}
}
