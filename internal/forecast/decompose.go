package forecast

// seasonPeriod is the daily seasonality cycle length (one week).
const seasonPeriod = 7

// decomposition fits an additive linear-trend-plus-weekly-seasonality model.
// The trend is a least-squares line over the observation index; the seasonal
// component is the mean detrended value at each position in the weekly
// cycle, centered so the components sum cleanly.
type decomposition struct{}

func (d *decomposition) Name() string { return MethodDecomposition }

func (d *decomposition) Fit(history []float64) (Model, error) {
	n := len(history)
	if n < minDecompositionObs {
		return nil, ErrInsufficientHistory
	}

	idx := make([]float64, n)
	for i := range idx {
		idx[i] = float64(i)
	}
	intercept, slope, ok := olsLine(idx, history)
	if !ok {
		// A flat index axis is impossible here, so this means the series
		// produced non-finite sums.
		return nil, &ModelFitError{Method: MethodDecomposition, Reason: "trend fit produced non-finite coefficients"}
	}

	var seasonal [seasonPeriod]float64
	var counts [seasonPeriod]int
	for i, v := range history {
		phase := i % seasonPeriod
		seasonal[phase] += v - (intercept + slope*float64(i))
		counts[phase]++
	}
	var mean float64
	for p := range seasonal {
		seasonal[p] /= float64(counts[p])
		mean += seasonal[p]
	}
	mean /= seasonPeriod
	for p := range seasonal {
		seasonal[p] -= mean
		if !isFinite(seasonal[p]) {
			return nil, &ModelFitError{Method: MethodDecomposition, Reason: "non-finite seasonal component"}
		}
	}

	return &decompModel{intercept: intercept, slope: slope, seasonal: seasonal, n: n}, nil
}

type decompModel struct {
	intercept float64
	slope     float64
	seasonal  [seasonPeriod]float64
	n         int
}

func (m *decompModel) Predict(n int) []float64 {
	out := make([]float64, n)
	for k := range out {
		i := m.n + k
		out[k] = m.intercept + m.slope*float64(i) + m.seasonal[i%seasonPeriod]
	}
	return out
}
