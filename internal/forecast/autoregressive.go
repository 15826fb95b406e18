package forecast

import "math"

// Minimum observation counts for the statistical strategies.
const (
	minAutoregressiveObs = 12
	minDecompositionObs  = 14
)

// Stationarity clamp for the AR and MA coefficients.
const maxARCoeff = 0.98

// autoregressive fits a fixed-order (1,1,1) autoregressive-integrated model:
// the first-differenced series is modeled as
//
//	y[t] = c + phi*y[t-1] + theta*e[t-1] + e[t]
//
// using the Hannan–Rissanen two-stage least-squares procedure: an AR(1)
// regression supplies residual estimates, then y is regressed on its lag and
// the lagged residual. Forecasts are integrated back to daily levels.
type autoregressive struct{}

func (a *autoregressive) Name() string { return MethodAutoregressive }

func (a *autoregressive) Fit(history []float64) (Model, error) {
	if len(history) < minAutoregressiveObs {
		return nil, ErrInsufficientHistory
	}

	// First difference.
	y := make([]float64, len(history)-1)
	for i := range y {
		y[i] = history[i+1] - history[i]
	}

	// Stage one: AR(1) by ordinary least squares, for residual estimates.
	alpha, beta, ok := olsLine(y[:len(y)-1], y[1:])
	if !ok {
		return nil, &ModelFitError{Method: MethodAutoregressive, Reason: "degenerate differenced series"}
	}
	resid := make([]float64, len(y))
	for t := 1; t < len(y); t++ {
		resid[t] = y[t] - alpha - beta*y[t-1]
	}

	// Stage two: regress y[t] on [1, y[t-1], resid[t-1]].
	var m [3][4]float64
	for t := 2; t < len(y); t++ {
		row := [3]float64{1, y[t-1], resid[t-1]}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				m[i][j] += row[i] * row[j]
			}
			m[i][3] += row[i] * y[t]
		}
	}
	coef, ok := solve3(m)
	if !ok {
		return nil, &ModelFitError{Method: MethodAutoregressive, Reason: "singular normal equations"}
	}

	c, phi, theta := coef[0], coef[1], coef[2]
	if !isFinite(c) || !isFinite(phi) || !isFinite(theta) {
		return nil, &ModelFitError{Method: MethodAutoregressive, Reason: "non-finite coefficients"}
	}
	phi = clamp(phi, -maxARCoeff, maxARCoeff)
	theta = clamp(theta, -maxARCoeff, maxARCoeff)

	return &arModel{
		c:         c,
		phi:       phi,
		theta:     theta,
		lastY:     y[len(y)-1],
		lastE:     resid[len(resid)-1],
		lastLevel: history[len(history)-1],
	}, nil
}

type arModel struct {
	c, phi, theta float64
	lastY         float64
	lastE         float64
	lastLevel     float64
}

func (m *arModel) Predict(n int) []float64 {
	out := make([]float64, n)
	yhat := m.c + m.phi*m.lastY + m.theta*m.lastE
	level := m.lastLevel
	for i := 0; i < n; i++ {
		if i > 0 {
			// Future shocks have zero expectation, so the MA term vanishes
			// after the first step.
			yhat = m.c + m.phi*yhat
		}
		level += yhat
		out[i] = level
	}
	return out
}

// olsLine fits y = alpha + beta*x by least squares. ok is false when x has
// no variance.
func olsLine(x, y []float64) (alpha, beta float64, ok bool) {
	n := float64(len(x))
	if n < 3 {
		return 0, 0, false
	}
	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var sxx, sxy float64
	for i := range x {
		dx := x[i] - meanX
		sxx += dx * dx
		sxy += dx * (y[i] - meanY)
	}
	if sxx < 1e-12 {
		return 0, 0, false
	}
	beta = sxy / sxx
	alpha = meanY - beta*meanX
	return alpha, beta, isFinite(alpha) && isFinite(beta)
}

// solve3 solves a 3x3 augmented linear system by Gaussian elimination with
// partial pivoting. ok is false for singular systems.
func solve3(m [3][4]float64) ([3]float64, bool) {
	for col := 0; col < 3; col++ {
		pivot := col
		for r := col + 1; r < 3; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(m[pivot][col]) < 1e-12 {
			return [3]float64{}, false
		}
		m[col], m[pivot] = m[pivot], m[col]

		for r := 0; r < 3; r++ {
			if r == col {
				continue
			}
			f := m[r][col] / m[col][col]
			for j := col; j < 4; j++ {
				m[r][j] -= f * m[col][j]
			}
		}
	}

	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = m[i][3] / m[i][i]
	}
	return out, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
