package main

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sileo/internal/logging"
	"github.com/aretw0/sileo/internal/scenario"
	"github.com/aretw0/sileo/pkg/domain"
	"github.com/aretw0/sileo/pkg/observability"
)

func TestTourScenario(t *testing.T) {
	s, err := demoScenario(nil)
	require.NoError(t, err)

	assert.Equal(t, "tour", s.Name)
	assert.NotEmpty(t, s.Steps)
	assert.Positive(t, s.Duration())
}

func TestMetricsRouter(t *testing.T) {
	m := observability.NewMetrics("")
	m.Hooks().OnCreate(&domain.ToastEvent{State: domain.StateInfo})
	srv := httptest.NewServer(metricsRouter(m))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `sileo_toasts_created_total{state="info"} 1`)

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

type recordingTarget struct {
	scenario.Target
	shown []domain.Options
}

func (r *recordingTarget) Show(opts domain.Options) string {
	r.shown = append(r.shown, opts)
	return opts.ID
}

func TestMarkdownTarget(t *testing.T) {
	rec := &recordingTarget{}
	md := markdownTarget{
		Target: rec,
		render: func(s string) (domain.Content, error) {
			if s == "broken" {
				return nil, errors.New("bad markdown")
			}
			return domain.Prebuilt{Handle: "<" + s + ">"}, nil
		},
		logger: logging.NewNop(),
	}

	md.Show(domain.Options{ID: "a", Description: domain.Text("**hi**")})
	md.Show(domain.Options{ID: "b", Description: domain.Text("broken")})
	md.Show(domain.Options{ID: "c"})

	require.Len(t, rec.shown, 3)
	assert.Equal(t, domain.Prebuilt{Handle: "<**hi**>"}, rec.shown[0].Description)
	assert.Equal(t, domain.Text("broken"), rec.shown[1].Description)
	assert.Nil(t, rec.shown[2].Description)
}
