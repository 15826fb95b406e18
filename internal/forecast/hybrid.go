package forecast

import (
	"math"
	"math/rand"
)

// hybrid is the naive mean-plus-bounded-noise strategy and the universal
// fallback. It averages the most recent window of daily history and draws
// each future day from a normal distribution centered at that mean, with a
// standard deviation of noiseScale times the mean's magnitude.
type hybrid struct {
	window     int
	noiseScale float64
	rng        *rand.Rand
}

func (h *hybrid) Name() string { return MethodHybrid }

func (h *hybrid) Fit(history []float64) (Model, error) {
	recent := history
	if h.window > 0 && len(recent) > h.window {
		recent = recent[len(recent)-h.window:]
	}

	var sum float64
	for _, v := range recent {
		sum += v
	}
	mean := sum / float64(len(recent))

	return &hybridModel{
		mean:  mean,
		sigma: h.noiseScale * math.Abs(mean),
		rng:   h.rng,
	}, nil
}

type hybridModel struct {
	mean  float64
	sigma float64
	rng   *rand.Rand
}

func (m *hybridModel) Predict(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = m.mean + m.rng.NormFloat64()*m.sigma
	}
	return out
}
