// Package engine runs one cash-flow forecast end to end: schedule expansion,
// ledger merging, residual forecasting, balance integration, and rule
// evaluation. A forecast is a pure function of its request: the engine keeps
// no state between calls, so concurrent invocations never interfere.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/LucasAust/forecaster/internal/advice"
	"github.com/LucasAust/forecaster/internal/balance"
	"github.com/LucasAust/forecaster/internal/config"
	"github.com/LucasAust/forecaster/internal/forecast"
	"github.com/LucasAust/forecaster/internal/ledger"
	"github.com/LucasAust/forecaster/internal/model"
	"github.com/LucasAust/forecaster/internal/schedule"
)

// Horizon bounds accepted in requests.
const (
	MinHorizonDays = 1
	MaxHorizonDays = 365
)

// InvalidHorizonError rejects a request whose horizon is out of range. It is
// a request-level failure: no partial response accompanies it.
type InvalidHorizonError struct {
	Horizon int
}

func (e *InvalidHorizonError) Error() string {
	return fmt.Sprintf("horizon_days %d outside [%d, %d]", e.Horizon, MinHorizonDays, MaxHorizonDays)
}

// InvalidAsOfError rejects a request whose as_of date does not parse.
type InvalidAsOfError struct {
	Value string
}

func (e *InvalidAsOfError) Error() string {
	return fmt.Sprintf("unparsable as_of date %q", e.Value)
}

// Engine computes forecasts with a fixed configuration.
type Engine struct {
	cfg config.Config
}

// New returns an Engine using cfg's tunables.
func New(cfg config.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Run computes the full projection for one request. Request-level problems
// (bad horizon, unknown method, unparsable as-of date) reject the call with
// no response body; per-item problems are recovered by skipping and surface
// in the response diagnostics. ctx cancels the computation between and
// inside the expensive stages.
func (e *Engine) Run(ctx context.Context, req model.Request) (*model.Response, error) {
	if req.HorizonDays < MinHorizonDays || req.HorizonDays > MaxHorizonDays {
		return nil, &InvalidHorizonError{Horizon: req.HorizonDays}
	}

	start, err := asOfDate(req.AsOf)
	if err != nil {
		return nil, err
	}

	method := req.Method
	if method == "" {
		method = e.cfg.General.DefaultMethod
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	events, skippedRules := schedule.Expand(req.Scheduled, start, req.HorizonDays)
	led := ledger.Build(req.Transactions, events, start, req.HorizonDays)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	residuals, methodUsed, err := forecast.New(e.cfg.Forecast, rng).Project(ctx, method, led.HistoryValues(), req.HorizonDays)
	if err != nil {
		return nil, err
	}

	points, sum := balance.Integrate(led, residuals, req.OpeningBalance, methodUsed, e.cfg.Forecast)

	threshold := e.cfg.Advice.LowBalanceThreshold
	if req.LowBalanceThreshold != nil {
		threshold = *req.LowBalanceThreshold
	}
	alerts, recs := advice.Evaluate(points, sum, threshold, e.cfg.Advice)

	if skippedRules == nil {
		skippedRules = []string{}
	}
	if alerts == nil {
		alerts = []model.Alert{}
	}
	if recs == nil {
		recs = []model.Recommendation{}
	}

	return &model.Response{
		Forecast:        points,
		Summary:         sum,
		Alerts:          alerts,
		Recommendations: recs,
		Diagnostics: model.Diagnostics{
			SkippedRules:        skippedRules,
			SkippedTransactions: led.SkippedTransactions,
		},
	}, nil
}

// asOfDate resolves the request's pinned "today", defaulting to the current
// UTC date.
func asOfDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(model.DateFormat, s)
	if err != nil {
		return time.Time{}, &InvalidAsOfError{Value: s}
	}
	return t, nil
}
