package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/signalsfoundry/jamscope/core"
	"github.com/signalsfoundry/jamscope/internal/logging"
	"github.com/signalsfoundry/jamscope/internal/observability"
)

const evaluateBody = `{
  "transmitter": {"position": {"x": 0, "y": 0}, "power_dbm": 30, "frequency_hz": 1e9},
  "jammer": {"position": {"x": 500, "y": 0}, "power_dbm": 40, "frequency_hz": 1e9},
  "receiver": {"position": {"x": 1000, "y": 0}, "sensitivity_dbm": -90},
  "threshold_db": 10
}`

func newTestServer(t *testing.T) (*Server, *observability.Collector) {
	t.Helper()
	collector, err := observability.NewCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	return NewServer(logging.Noop(), collector), collector
}

func TestHandleEvaluate(t *testing.T) {
	srv, collector := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/evaluate", strings.NewReader(evaluateBody))
	rr := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rr.Code, rr.Body.String())
	}

	var result core.ScenarioResult
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !result.JammingSuccessful {
		t.Errorf("JammingSuccessful = false, want true; result: %+v", result)
	}
	if result.JSRatioDB < 15 || result.JSRatioDB > 17 {
		t.Errorf("JSRatioDB = %v, want ~16", result.JSRatioDB)
	}
	if rr.Header().Get("X-Request-Id") == "" {
		t.Error("missing X-Request-Id response header")
	}

	if got := testutil.ToFloat64(collector.Evaluations.WithLabelValues(observability.OutcomeJammed)); got != 1 {
		t.Errorf("jammed evaluation count = %v, want 1", got)
	}
}

func TestHandleEvaluatePropagatesRequestID(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/evaluate", strings.NewReader(evaluateBody))
	req.Header.Set("X-Request-Id", "req-123")
	rr := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Request-Id"); got != "req-123" {
		t.Errorf("X-Request-Id = %q, want %q", got, "req-123")
	}
}

func TestHandleEvaluateBadInput(t *testing.T) {
	srv, collector := newTestServer(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{oops`, http.StatusBadRequest},
		{"missing jammer", `{"transmitter": {"power_dbm": 1, "frequency_hz": 1}, "receiver": {}, "threshold_db": 1}`, http.StatusBadRequest},
		{"zero frequency", strings.Replace(evaluateBody, `"power_dbm": 30, "frequency_hz": 1e9`, `"power_dbm": 30, "frequency_hz": 0`, 1), http.StatusBadRequest},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/v1/evaluate", strings.NewReader(tc.body))
		rr := httptest.NewRecorder()
		srv.Routes().ServeHTTP(rr, req)
		if rr.Code != tc.want {
			t.Errorf("%s: status = %d, want %d; body: %s", tc.name, rr.Code, tc.want, rr.Body.String())
		}
		var resp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil || resp.Error == "" {
			t.Errorf("%s: expected JSON error payload, got %s", tc.name, rr.Body.String())
		}
	}

	if got := testutil.ToFloat64(collector.Evaluations.WithLabelValues(observability.OutcomeError)); got != float64(len(cases)) {
		t.Errorf("error evaluation count = %v, want %d", got, len(cases))
	}
}

func TestHandleMonteCarlo(t *testing.T) {
	srv, collector := newTestServer(t)

	body := `{
	  "transmitter": {"position": {"x": 0, "y": 0}, "power_dbm": 30, "frequency_hz": 1e9},
	  "receiver": {"position": {"x": 1000, "y": 0}, "sensitivity_dbm": -90},
	  "jammer": {
	    "power_dbm": {"dist": "normal", "mean": 40, "stddev": 2},
	    "pos_x": {"dist": "uniform", "min": 400, "max": 600},
	    "pos_y": {"dist": "constant", "value": 0},
	    "frequency_hz": 1e9
	  },
	  "threshold_db": 10,
	  "trials": 200,
	  "seed": 7
	}`

	req := httptest.NewRequest(http.MethodPost, "/v1/montecarlo", strings.NewReader(body))
	rr := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rr.Code, rr.Body.String())
	}

	var result core.MonteCarloResult
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if result.Trials != 200 {
		t.Errorf("Trials = %d, want 200", result.Trials)
	}
	if len(result.JSRatiosDB) != 0 {
		t.Errorf("HTTP response should omit the per-trial sample array, got %d entries", len(result.JSRatiosDB))
	}
	if result.JammingSuccessRate < 0 || result.JammingSuccessRate > 1 {
		t.Errorf("JammingSuccessRate = %v outside [0,1]", result.JammingSuccessRate)
	}

	if got := testutil.ToFloat64(collector.MonteCarloTrials); got != 200 {
		t.Errorf("trial counter = %v, want 200", got)
	}
}

func TestHandleMonteCarloRejectsUnknownDistribution(t *testing.T) {
	srv, _ := newTestServer(t)

	body := `{
	  "transmitter": {"position": {"x": 0, "y": 0}, "power_dbm": 30, "frequency_hz": 1e9},
	  "receiver": {"position": {"x": 1000, "y": 0}},
	  "jammer": {
	    "power_dbm": {"dist": "cauchy", "value": 40},
	    "pos_x": {"dist": "constant", "value": 500},
	    "pos_y": {"dist": "constant", "value": 0},
	    "frequency_hz": 1e9
	  },
	  "threshold_db": 10,
	  "trials": 10
	}`

	req := httptest.NewRequest(http.MethodPost, "/v1/montecarlo", strings.NewReader(body))
	rr := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", rr.Code, rr.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("healthz status = %d, want 200", rr.Code)
	}
}
