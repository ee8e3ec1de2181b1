// Package handler provides HTTP handlers for the GuideCane API.
package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/guidecane/guidecane/internal/api/models"
	"github.com/guidecane/guidecane/internal/api/response"
	"github.com/guidecane/guidecane/internal/gateway/resilience"
)

// Pinger checks connectivity to a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	db        Pinger
	registry  *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, db Pinger, registry *resilience.Registry) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		db:        db,
		registry:  registry,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
// Ready means the database answers; the external gateways are allowed to be
// down since the API degrades per request rather than going unavailable.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			health.Status = models.HealthStatusFail
			health.Details = map[string]interface{}{"database": err.Error()}
			response.JSON(w, r, http.StatusServiceUnavailable, health)
			return
		}
	}

	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - provider and subsystem status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())
	status := models.SystemStatus{
		Status: models.HealthStatusOK,
		Time:   now,
	}

	dbStatus := models.SubsystemStatus{Name: "postgres", Status: models.HealthStatusOK}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		if err := h.db.Ping(ctx); err != nil {
			detail := err.Error()
			dbStatus.Status = models.HealthStatusFail
			dbStatus.Detail = &detail
			status.Status = models.HealthStatusFail
		}
		cancel()
	}
	status.Subsystems = append(status.Subsystems, dbStatus)

	if h.registry != nil {
		gateways := h.registry.GetAllHealth()
		sort.Slice(gateways, func(i, j int) bool { return gateways[i].Name < gateways[j].Name })

		for _, g := range gateways {
			provider := models.ProviderStatus{
				Provider: g.Name,
				Status:   gatewayStatus(g),
			}
			if g.LastSuccessAt != nil {
				t := models.Timestamp(*g.LastSuccessAt)
				provider.LastSuccessAt = &t
			}
			if g.LastFailureAt != nil {
				t := models.Timestamp(*g.LastFailureAt)
				provider.LastFailureAt = &t
			}
			if g.LastError != "" {
				msg := g.LastError
				provider.Message = &msg
			}

			if provider.Status != models.HealthStatusOK && status.Status == models.HealthStatusOK {
				status.Status = models.HealthStatusDegraded
			}

			status.Providers = append(status.Providers, provider)
		}
	}

	response.JSON(w, r, http.StatusOK, status)
}

// gatewayStatus maps circuit breaker state to a health status.
func gatewayStatus(g *resilience.GatewayHealth) models.HealthStatus {
	switch {
	case g.IsHealthy():
		return models.HealthStatusOK
	case g.IsDegraded():
		return models.HealthStatusDegraded
	default:
		return models.HealthStatusFail
	}
}
