package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveCall(t *testing.T) {
	m := New()

	m.ObserveCall("compute_patina_distance", StatusOK, 2*time.Millisecond)
	m.ObserveCall("compute_patina_distance", StatusOK, time.Millisecond)
	m.ObserveCall("compute_patina_distance", StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ToolCalls.WithLabelValues("compute_patina_distance", StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ToolCalls.WithLabelValues("compute_patina_distance", StatusNotFound)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ToolDuration))
}

func TestAddSamples(t *testing.T) {
	m := New()
	m.AddSamples("replay", 16)
	m.AddSamples("replay", 20)
	m.AddSamples("trajectory", 21)

	assert.Equal(t, 36.0, testutil.ToFloat64(m.SamplesTotal.WithLabelValues("replay")))
	assert.Equal(t, 21.0, testutil.ToFloat64(m.SamplesTotal.WithLabelValues("trajectory")))
}

func TestHandler_ExposesToolMetrics(t *testing.T) {
	m := New()
	m.ObserveCall("get_server_info", StatusOK, time.Millisecond)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.True(t, strings.Contains(text, `patina_tool_calls_total{status="ok",tool="get_server_info"} 1`), text)
	assert.Contains(t, text, "patina_tool_duration_seconds_bucket")
	assert.Contains(t, text, "go_goroutines")
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.ObserveCall("x", StatusOK, 0)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ToolCalls.WithLabelValues("x", StatusOK)))
}
