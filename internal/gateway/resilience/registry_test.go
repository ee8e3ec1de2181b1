package resilience_test

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidecane/guidecane/internal/gateway/resilience"
)

func TestRegistry_RegisterAndGetHealth(t *testing.T) {
	registry := resilience.NewRegistry()
	cfg := resilience.DefaultClientConfig("test-gateway")
	cfg.Registry = registry

	client := resilience.NewClient(cfg)

	assert.Equal(t, 1, registry.GatewayCount())

	health := registry.GetHealth("test-gateway")
	require.NotNil(t, health)
	assert.Equal(t, "test-gateway", health.Name)
	assert.Equal(t, gobreaker.StateClosed, health.CircuitState)
	assert.True(t, health.IsHealthy())
	assert.False(t, health.IsDegraded())
	assert.False(t, health.IsUnhealthy())

	assert.Equal(t, "test-gateway", client.Name())
}

func TestRegistry_Unregister(t *testing.T) {
	registry := resilience.NewRegistry()
	cfg := resilience.DefaultClientConfig("test-gateway")
	cfg.Registry = registry

	_ = resilience.NewClient(cfg)

	assert.Equal(t, 1, registry.GatewayCount())

	registry.Unregister("test-gateway")

	assert.Equal(t, 0, registry.GatewayCount())
	assert.Nil(t, registry.GetHealth("test-gateway"))
}

func TestRegistry_RecordSuccessAndFailure(t *testing.T) {
	registry := resilience.NewRegistry()
	cfg := resilience.DefaultClientConfig("test-gateway")
	cfg.Registry = registry

	_ = resilience.NewClient(cfg)

	health := registry.GetHealth("test-gateway")
	require.NotNil(t, health)
	assert.Nil(t, health.LastSuccessAt)
	assert.Nil(t, health.LastFailureAt)

	registry.RecordSuccess("test-gateway")
	health = registry.GetHealth("test-gateway")
	assert.NotNil(t, health.LastSuccessAt)

	registry.RecordFailure("test-gateway", errors.New("connection refused"))
	health = registry.GetHealth("test-gateway")
	assert.NotNil(t, health.LastFailureAt)
	assert.Equal(t, "connection refused", health.LastError)
}

func TestRegistry_GetAllHealth(t *testing.T) {
	registry := resilience.NewRegistry()

	for _, name := range []string{"speech", "translate", "geocode", "directions"} {
		cfg := resilience.DefaultClientConfig(name)
		cfg.Registry = registry
		_ = resilience.NewClient(cfg)
	}

	all := registry.GetAllHealth()
	assert.Len(t, all, 4)
	assert.ElementsMatch(t, []string{"speech", "translate", "geocode", "directions"}, registry.GatewayNames())
}
