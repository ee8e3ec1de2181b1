package resilience

import (
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

// GatewayHealth represents the health status of one external gateway.
type GatewayHealth struct {
	// Name is the gateway identifier.
	Name string

	// CircuitState is the current circuit breaker state.
	CircuitState gobreaker.State

	// Counts contains circuit breaker statistics.
	Counts gobreaker.Counts

	// LastSuccessAt is the timestamp of the last successful request.
	LastSuccessAt *time.Time

	// LastFailureAt is the timestamp of the last failed request.
	LastFailureAt *time.Time

	// LastError is the most recent error message, if any.
	LastError string
}

// IsHealthy returns true if the gateway is considered healthy.
func (h *GatewayHealth) IsHealthy() bool {
	return h.CircuitState == gobreaker.StateClosed
}

// IsDegraded returns true if the gateway is in a degraded state (half-open).
func (h *GatewayHealth) IsDegraded() bool {
	return h.CircuitState == gobreaker.StateHalfOpen
}

// IsUnhealthy returns true if the gateway is unhealthy (circuit open).
func (h *GatewayHealth) IsUnhealthy() bool {
	return h.CircuitState == gobreaker.StateOpen
}

// Registry tracks registered gateway clients and their health status.
type Registry struct {
	mu       sync.RWMutex
	gateways map[string]*registeredGateway
}

type registeredGateway struct {
	client        *Client
	lastSuccessAt *time.Time
	lastFailureAt *time.Time
	lastError     string
}

// NewRegistry creates a new gateway registry.
func NewRegistry() *Registry {
	return &Registry{
		gateways: make(map[string]*registeredGateway),
	}
}

// Register adds a gateway client to the registry.
func (r *Registry) Register(name string, client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gateways[name] = &registeredGateway{
		client: client,
	}
}

// Unregister removes a gateway from the registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.gateways, name)
}

// RecordSuccess records a successful request for a gateway.
func (r *Registry) RecordSuccess(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.gateways[name]; ok {
		now := time.Now()
		g.lastSuccessAt = &now
	}
}

// RecordFailure records a failed request for a gateway.
func (r *Registry) RecordFailure(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.gateways[name]; ok {
		now := time.Now()
		g.lastFailureAt = &now
		if err != nil {
			g.lastError = err.Error()
		}
	}
}

// GetHealth returns the health status of a specific gateway.
func (r *Registry) GetHealth(name string) *GatewayHealth {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.gateways[name]
	if !ok {
		return nil
	}

	return &GatewayHealth{
		Name:          name,
		CircuitState:  g.client.BreakerState(),
		Counts:        g.client.BreakerCounts(),
		LastSuccessAt: g.lastSuccessAt,
		LastFailureAt: g.lastFailureAt,
		LastError:     g.lastError,
	}
}

// GetAllHealth returns the health status of all registered gateways.
func (r *Registry) GetAllHealth() []*GatewayHealth {
	r.mu.RLock()
	defer r.mu.RUnlock()

	health := make([]*GatewayHealth, 0, len(r.gateways))
	for name, g := range r.gateways {
		health = append(health, &GatewayHealth{
			Name:          name,
			CircuitState:  g.client.BreakerState(),
			Counts:        g.client.BreakerCounts(),
			LastSuccessAt: g.lastSuccessAt,
			LastFailureAt: g.lastFailureAt,
			LastError:     g.lastError,
		})
	}

	return health
}

// GatewayNames returns the names of all registered gateways.
func (r *Registry) GatewayNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.gateways))
	for name := range r.gateways {
		names = append(names, name)
	}
	return names
}

// GatewayCount returns the number of registered gateways.
func (r *Registry) GatewayCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.gateways)
}
