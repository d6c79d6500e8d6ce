package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/campus/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// HealthCheck probes one dependency
type HealthCheck func(ctx context.Context) error

// SystemHandler serves the operational endpoints
type SystemHandler struct {
	BaseHandler
	version  string
	entities int
	checks   map[string]HealthCheck
	timeout  time.Duration
}

// NewSystemHandler creates a SystemHandler reporting version and the number of served entities
func NewSystemHandler(version string, entities int) *SystemHandler {
	return &SystemHandler{
		version:  version,
		entities: entities,
		checks:   make(map[string]HealthCheck),
		timeout:  2 * time.Second,
	}
}

// AddCheck registers a dependency probe run on every health request
func (h *SystemHandler) AddCheck(name string, check HealthCheck) *SystemHandler {
	h.checks[name] = check
	return h
}

// Health answers 200 when every check passes and 503 otherwise
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := dto.HealthResponse{
		Status:   "ok",
		Version:  h.version,
		Entities: h.entities,
	}
	status := http.StatusOK
	for _, name := range names {
		if resp.Checks == nil {
			resp.Checks = make(map[string]string, len(names))
		}
		if err := h.checks[name](ctx); err != nil {
			resp.Checks[name] = "down"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "up"
	}
	c.JSON(status, resp)
}
