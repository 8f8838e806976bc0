package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles Prometheus metrics for the evaluation engine and its
// HTTP surface.
type Collector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	Evaluations      *prometheus.CounterVec
	JSRatios         prometheus.Histogram
	MonteCarloTrials prometheus.Counter
}

// Evaluation outcome labels.
const (
	OutcomeJammed = "jammed"
	OutcomeClear  = "clear"
	OutcomeError  = "error"
)

// NewCollector registers the engine's Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jamscope_http_requests_total",
		Help: "Total number of handled HTTP requests, labeled by handler, method, and status code.",
	}, []string{"handler", "method", "code"})
	requests, err := registerCounterVec(reg, requests, "jamscope_http_requests_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jamscope_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"handler", "method"})
	durations, err = registerHistogramVec(reg, durations, "jamscope_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	evaluations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jamscope_evaluations_total",
		Help: "Total number of scenario evaluations, labeled by outcome (jammed, clear, error).",
	}, []string{"outcome"})
	evaluations, err = registerCounterVec(reg, evaluations, "jamscope_evaluations_total")
	if err != nil {
		return nil, err
	}

	ratios := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "jamscope_js_ratio_db",
		Help:    "Distribution of computed J/S ratios in dB.",
		Buckets: prometheus.LinearBuckets(-60, 10, 13),
	})
	ratios, err = registerHistogram(reg, ratios, "jamscope_js_ratio_db")
	if err != nil {
		return nil, err
	}

	trials := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "jamscope_montecarlo_trials_total",
		Help: "Total number of Monte Carlo trials executed.",
	})
	trials, err = registerCounter(reg, trials, "jamscope_montecarlo_trials_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:         gatherer,
		HTTPRequests:     requests,
		HTTPDurations:    durations,
		Evaluations:      evaluations,
		JSRatios:         ratios,
		MonteCarloTrials: trials,
	}, nil
}

// ObserveEvaluation records one scenario evaluation.
func (c *Collector) ObserveEvaluation(jammed bool, jsRatioDB float64) {
	if c == nil {
		return
	}
	outcome := OutcomeClear
	if jammed {
		outcome = OutcomeJammed
	}
	if c.Evaluations != nil {
		c.Evaluations.WithLabelValues(outcome).Inc()
	}
	if c.JSRatios != nil {
		c.JSRatios.Observe(jsRatioDB)
	}
}

// ObserveEvaluationError records a rejected evaluation.
func (c *Collector) ObserveEvaluationError() {
	if c == nil || c.Evaluations == nil {
		return
	}
	c.Evaluations.WithLabelValues(OutcomeError).Inc()
}

// ObserveMonteCarlo records a completed Monte Carlo run.
func (c *Collector) ObserveMonteCarlo(trials int) {
	if c == nil || c.MonteCarloTrials == nil {
		return
	}
	c.MonteCarloTrials.Add(float64(trials))
}

// ObserveHTTP records one handled HTTP request.
func (c *Collector) ObserveHTTP(handler, method string, code int, elapsed time.Duration) {
	if c == nil {
		return
	}
	if c.HTTPRequests != nil {
		c.HTTPRequests.WithLabelValues(handler, method, fmt.Sprintf("%d", code)).Inc()
	}
	if c.HTTPDurations != nil {
		c.HTTPDurations.WithLabelValues(handler, method).Observe(elapsed.Seconds())
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}
