package cache

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker/v2"
)

// BreakerConfig holds configuration for the circuit breaker guarding the
// cache backend.
type BreakerConfig struct {
	// Name identifies this breaker in metrics and logs.
	Name string

	// MaxRequests is the number of probes allowed while half-open.
	MaxRequests uint32

	// Interval is the cyclic period of the closed state for clearing counts.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration

	// FailureRatio trips the breaker once this share of requests fail.
	FailureRatio float64

	// MinRequests is the minimum sample before FailureRatio is evaluated.
	MinRequests uint32
}

// DefaultBreakerConfig returns the breaker settings used for Redis.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:         name,
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      15 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  5,
	}
}

var breakerState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "cache_circuit_breaker_state",
		Help: "Current state of the cache circuit breaker (0=closed, 1=half-open, 2=open)",
	},
	[]string{"name"},
)

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// newBreaker builds a breaker that treats cache misses as successes.
func newBreaker(cfg BreakerConfig, logger *slog.Logger) *gobreaker.CircuitBreaker[[]byte] {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || err == ErrMiss
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("cache circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			breakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	}

	breakerState.WithLabelValues(cfg.Name).Set(0)
	return gobreaker.NewCircuitBreaker[[]byte](settings)
}
