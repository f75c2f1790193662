package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func familyNames(t *testing.T, g prometheus.Gatherer) map[string]bool {
	t.Helper()

	families, err := g.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}

// TestRegister_EveryRegistryGetsCollectors tests that a second registerer is not left empty.
// Follows AAA (Arrange, Act, Assert) pattern.
func TestRegister_EveryRegistryGetsCollectors(t *testing.T) {
	// Arrange
	first := prometheus.NewRegistry()
	second := prometheus.NewRegistry()

	// Act
	_, err := Register(first)
	require.NoError(t, err)
	handler, err := Register(second)
	require.NoError(t, err)

	RecordUpstream("github", OutcomeSuccess, 10*time.Millisecond)
	RecordCacheHit("github")
	RecordStats("github", "live")
	RecordHTTP(http.MethodGet, "/api/health", "200", time.Millisecond)

	// Assert
	for _, reg := range []*prometheus.Registry{first, second} {
		names := familyNames(t, reg)
		assert.True(t, names["upstream_requests_total"])
		assert.True(t, names["upstream_request_duration_seconds"])
		assert.True(t, names["cache_hits_total"])
		assert.True(t, names["stats_responses_total"])
		assert.True(t, names["http_requests_total"])
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cache_hits_total")
}

func TestRegister_Idempotent(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := Register(reg)
	require.NoError(t, err)
	_, err = Register(reg)
	assert.NoError(t, err)
}
