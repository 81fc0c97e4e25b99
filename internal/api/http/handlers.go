// Package http contains the gin handlers for the service surface.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alejandrogranizo/tractusx-sdk/internal/logging"
	"github.com/alejandrogranizo/tractusx-sdk/internal/monitoring"
	"github.com/alejandrogranizo/tractusx-sdk/internal/service"
	"github.com/alejandrogranizo/tractusx-sdk/internal/types"
)

// Handlers bundles the HTTP endpoints with their dependencies.
type Handlers struct {
	registry *service.Registry
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewHandlers creates the endpoint set.
func NewHandlers(registry *service.Registry, metrics *monitoring.Metrics, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{registry: registry, metrics: metrics, logger: logger}
}

// Root describes the service.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "operations",
		"endpoints": []string{
			"/health",
			"/services",
			"/services/discover",
			"/services/execute",
		},
	})
}

// Health reports liveness and registry statistics.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"registry": h.registry.Stats(),
	})
}

// ListServices returns registered service definitions, optionally
// filtered by category.
func (h *Handlers) ListServices(c *gin.Context) {
	var category *types.Category
	if v := c.Query("category"); v != "" {
		cat := types.Category(v)
		category = &cat
	}
	c.JSON(http.StatusOK, gin.H{"services": h.registry.List(category)})
}

type discoverRequest struct {
	Intent string `json:"intent" binding:"required"`
	Limit  int    `json:"limit"`
}

// DiscoverServices ranks services against a free-form intent.
func (h *Handlers) DiscoverServices(c *gin.Context) {
	var req discoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Limit <= 0 {
		req.Limit = 5
	}
	c.JSON(http.StatusOK, gin.H{"services": h.registry.Discover(req.Intent, req.Limit)})
}

type executeRequest struct {
	ToolID string                 `json:"tool_id" binding:"required"`
	Params map[string]interface{} `json:"params"`
}

// ExecuteService dispatches one tool call through the registry.
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req executeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var ctx *types.Context
	if id, ok := c.Get("request_id"); ok {
		if s, ok := id.(string); ok {
			ctx = &types.Context{RequestID: &s}
		}
	}

	start := time.Now()
	result, err := h.registry.Execute(req.ToolID, req.Params, ctx)
	success := err == nil && result != nil && result.Success
	if h.metrics != nil {
		h.metrics.RecordToolCall(req.ToolID, success, time.Since(start))
	}
	if err != nil {
		h.logger.Warn("Tool execution rejected",
			zap.String("tool", req.ToolID),
			zap.Error(err),
		)
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if result == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "provider returned no result"})
		return
	}
	c.JSON(http.StatusOK, result)
}
