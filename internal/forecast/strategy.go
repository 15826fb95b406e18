// Package forecast predicts the variable component of future daily net
// change from a historical daily series. Three strategies are available
// behind one interface; the dispatcher falls back to the hybrid strategy
// when a statistical fit cannot proceed.
package forecast

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/LucasAust/forecaster/internal/config"
)

// Method names accepted in requests.
const (
	MethodHybrid         = "hybrid"
	MethodAutoregressive = "autoregressive"
	MethodDecomposition  = "decomposition"
)

// fallbackSuffix marks a summary method that was recovered by the hybrid
// strategy after a fit failure.
const fallbackSuffix = "_fallback_hybrid"

// ErrInsufficientHistory reports that a statistical strategy has too few
// observations to fit. It is recovered by falling back to hybrid.
var ErrInsufficientHistory = errors.New("insufficient history for model fit")

// ModelFitError reports a numerical failure while fitting a statistical
// model. It is recovered by falling back to hybrid.
type ModelFitError struct {
	Method string
	Reason string
}

func (e *ModelFitError) Error() string {
	return fmt.Sprintf("%s model fit failed: %s", e.Method, e.Reason)
}

// UnknownMethodError rejects a request naming a method that does not exist.
type UnknownMethodError struct {
	Method string
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("unknown forecast method %q", e.Method)
}

// Strategy fits a model to a historical daily series.
type Strategy interface {
	Name() string
	Fit(history []float64) (Model, error)
}

// Model projects n future daily values from a fitted state.
type Model interface {
	Predict(n int) []float64
}

// Forecaster selects and runs a strategy, applying the hybrid fallback. The
// random source is injected so runs are reproducible under a fixed seed;
// nothing here touches the global generator.
type Forecaster struct {
	cfg config.ForecastConfig
	rng *rand.Rand
}

// New returns a Forecaster using the given tunables and random source.
func New(cfg config.ForecastConfig, rng *rand.Rand) *Forecaster {
	return &Forecaster{cfg: cfg, rng: rng}
}

// Project returns exactly horizon residual values, one per future day, and
// the name of the method that actually produced them. An empty history
// yields all zeros. A statistical strategy that cannot fit is recovered by
// the hybrid method and reported as "<requested>_fallback_hybrid"; an
// unknown method rejects the call.
func (f *Forecaster) Project(ctx context.Context, method string, history []float64, horizon int) ([]float64, string, error) {
	strat, err := f.strategy(method)
	if err != nil {
		return nil, "", err
	}

	if len(history) == 0 {
		return make([]float64, horizon), strat.Name(), nil
	}

	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	m, err := strat.Fit(history)
	if err != nil {
		var fitErr *ModelFitError
		if !errors.Is(err, ErrInsufficientHistory) && !errors.As(err, &fitErr) {
			return nil, "", err
		}
		// Hybrid never fails to fit a non-empty series.
		m, err = f.hybrid().Fit(history)
		if err != nil {
			return nil, "", err
		}
		return m.Predict(horizon), strat.Name() + fallbackSuffix, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	return m.Predict(horizon), strat.Name(), nil
}

func (f *Forecaster) strategy(method string) (Strategy, error) {
	switch method {
	case MethodHybrid, "":
		return f.hybrid(), nil
	case MethodAutoregressive:
		return &autoregressive{}, nil
	case MethodDecomposition:
		return &decomposition{}, nil
	default:
		return nil, &UnknownMethodError{Method: method}
	}
}

func (f *Forecaster) hybrid() *hybrid {
	return &hybrid{window: f.cfg.HybridWindowDays, noiseScale: f.cfg.NoiseScale, rng: f.rng}
}
