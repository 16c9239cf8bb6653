package observability_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sileo/pkg/domain"
	"github.com/aretw0/sileo/pkg/observability"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics("")
	h := m.Hooks()

	h.OnCreate(&domain.ToastEvent{State: domain.StateSuccess})
	h.OnCreate(&domain.ToastEvent{State: domain.StateError, Replaced: 3})
	h.OnUpdate(&domain.ToastEvent{State: domain.StateSuccess})
	h.OnDismiss(&domain.ToastEvent{})
	h.OnRemove(&domain.ToastEvent{})
	h.OnSync(&domain.SyncEvent{Instances: 2, Timers: 1})
	h.OnTimer(&domain.TimerEvent{Action: domain.TimerArmed})

	expected := `
# HELP sileo_toasts_created_total Toasts created, by state.
# TYPE sileo_toasts_created_total counter
sileo_toasts_created_total{state="error"} 1
sileo_toasts_created_total{state="success"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "sileo_toasts_created_total"))

	count, err := testutil.GatherAndCount(m.Registry(), "sileo_toasts_updated_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = testutil.GatherAndCount(m.Registry(), "sileo_live_instances", "sileo_pending_dismiss_timers")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics("toasts")
	m.Hooks().OnDismiss(&domain.ToastEvent{})

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "toasts_toasts_dismissed_total 1")
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	observability.LogHooks(logger).OnCreate(&domain.ToastEvent{
		EventBase: domain.EventBase{Type: domain.EventCreate},
		ID:        "a",
		State:     domain.StateInfo,
	})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "toast_create", line["msg"])
	assert.Equal(t, "a", line["id"])
	assert.Equal(t, "info", line["state"])
}
