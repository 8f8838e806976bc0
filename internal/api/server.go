// Package api exposes the evaluation engine over a small JSON HTTP surface.
// Presentation (plotting, forms) stays with the callers; handlers here only
// decode scenarios, invoke the core, and encode results.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/signalsfoundry/jamscope/core"
	"github.com/signalsfoundry/jamscope/internal/logging"
	"github.com/signalsfoundry/jamscope/internal/observability"
)

// Server wires the evaluation handlers with logging and metrics.
type Server struct {
	log     logging.Logger
	metrics *observability.Collector
}

// NewServer constructs a Server. Both dependencies are optional; nil values
// degrade to a noop logger and unrecorded metrics.
func NewServer(log logging.Logger, metrics *observability.Collector) *Server {
	if log == nil {
		log = logging.Noop()
	}
	return &Server{log: log, metrics: metrics}
}

// Routes returns the fully wired handler tree.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /v1/evaluate", s.instrument("evaluate", s.handleEvaluate))
	mux.Handle("POST /v1/montecarlo", s.instrument("montecarlo", s.handleMonteCarlo))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	return mux
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	scenario, err := core.LoadScenario(r.Body)
	if err != nil {
		s.metrics.ObserveEvaluationError()
		writeError(w, err)
		return
	}

	result, err := core.EvaluateScenario(*scenario)
	if err != nil {
		s.metrics.ObserveEvaluationError()
		writeError(w, err)
		return
	}

	s.metrics.ObserveEvaluation(result.JammingSuccessful, result.JSRatioDB)
	s.log.Info(ctx, "scenario evaluated",
		logging.Float64("js_ratio_db", result.JSRatioDB),
		logging.Float64("threshold_db", result.ThresholdDB),
		logging.Bool("jamming_successful", result.JammingSuccessful),
	)

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleMonteCarlo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	model, err := decodeMonteCarloRequest(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := model.Run()
	if err != nil {
		writeError(w, err)
		return
	}

	s.metrics.ObserveMonteCarlo(result.Trials)
	s.log.Info(ctx, "monte carlo run complete",
		logging.Int("trials", result.Trials),
		logging.Float64("jamming_success_rate", result.JammingSuccessRate),
		logging.Float64("mean_js_ratio_db", result.MeanJSRatioDB),
	)

	// The per-trial sample array can be large; the HTTP surface returns the
	// summary only.
	result.JSRatiosDB = nil
	writeJSON(w, http.StatusOK, result)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps engine errors onto HTTP status codes: contract violations
// are client errors, everything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrInvalidInput),
		errors.Is(err, core.ErrInvalidScenario),
		isDecodeError(err):
		status = http.StatusBadRequest
	case errors.Is(err, core.ErrUndefinedRatio):
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already out; an encode failure here has no recovery path.
	_ = json.NewEncoder(w).Encode(v)
}
