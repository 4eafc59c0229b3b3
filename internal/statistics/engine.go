// Package statistics computes descriptive statistics for Likert-scale
// response samples.
package statistics

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"lsparrow/domain/survey"
	"lsparrow/internal/config"
)

// Likert scale bounds; responses outside this range are treated as invalid
// and dropped before any computation.
const (
	scaleMin = 1
	scaleMax = 5
)

// Engine computes the per-question statistics record.
type Engine struct {
	epsilon float64
}

// NewEngine creates a statistics engine from analysis configuration.
func NewEngine(cfg config.AnalysisConfig) *Engine {
	return &Engine{epsilon: cfg.Epsilon}
}

// Compute calculates the statistics record for one question over one row
// subset. Values are the numerically coerced responses (NaN = missing).
// ok is false when no valid in-scale response remains, in which case the
// question is omitted from output entirely.
func (e *Engine) Compute(question string, values []float64) (survey.StatsRecord, bool) {
	valid := filterScale(values)
	n := len(valid)
	if n == 0 {
		return survey.StatsRecord{}, false
	}

	mean, _ := stats.Mean(valid)
	median, _ := stats.Median(valid)

	record := survey.StatsRecord{
		Question: question,
		N:        n,
		Mean:     metric(mean),
		Median:   metric(median),
		StdDev:   survey.None(),
		Skewness: survey.None(),
		Kurtosis: survey.None(),
		KSStat:   survey.None(),
		KSPValue: survey.None(),
	}

	// Sample standard deviation needs at least two observations; with one,
	// Bessel's correction divides by zero.
	if n < 2 {
		return record, true
	}
	stdDev, err := stats.StandardDeviationSample(valid)
	if err != nil {
		return record, true
	}
	record.StdDev = metric(stdDev)

	// Higher moments and the normality test are numerically unstable on
	// near-constant samples, so they stay undefined below the epsilon.
	if n >= 3 && stdDev > e.epsilon {
		record.Skewness = metric(skewness(valid, mean))
	}
	if n >= 4 && stdDev > e.epsilon {
		record.Kurtosis = metric(kurtosis(valid, mean))
	}
	if n >= 5 && stdDev > e.epsilon {
		d, p := kolmogorovSmirnov(valid, mean, stdDev)
		record.KSStat = metric(d)
		record.KSPValue = metric(p)
	}

	return record, true
}

// filterScale keeps values inside the Likert range, dropping missing (NaN)
// and out-of-range entries.
func filterScale(values []float64) stats.Float64Data {
	valid := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || v < scaleMin || v > scaleMax {
			continue
		}
		valid = append(valid, v)
	}
	return valid
}

// metric wraps a computed value, mapping non-finite results to the
// undefined marker and rounding for presentation.
func metric(v float64) survey.Metric {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return survey.None()
	}
	return survey.Num(round3(v))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// skewness computes the population (biased) third standardized moment, the
// same convention survey reports use for Likert distributions.
func skewness(data []float64, mean float64) float64 {
	n := float64(len(data))
	m2, m3 := 0.0, 0.0
	for _, x := range data {
		d := x - mean
		m2 += d * d
		m3 += d * d * d
	}
	m2 /= n
	m3 /= n
	return m3 / math.Pow(m2, 1.5)
}

// kurtosis computes population excess kurtosis (fourth standardized moment
// minus 3).
func kurtosis(data []float64, mean float64) float64 {
	n := float64(len(data))
	m2, m4 := 0.0, 0.0
	for _, x := range data {
		d := x - mean
		d2 := d * d
		m2 += d2
		m4 += d2 * d2
	}
	m2 /= n
	m4 /= n
	return m4/(m2*m2) - 3
}

// kolmogorovSmirnov runs the one-sample K-S test against a normal
// distribution parameterized by the sample's own mean and standard
// deviation. It returns the max deviation between the empirical and
// theoretical CDFs and the corresponding p-value.
func kolmogorovSmirnov(data []float64, mean, stdDev float64) (float64, float64) {
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	dist := distuv.Normal{Mu: mean, Sigma: stdDev}
	n := float64(len(sorted))

	d := 0.0
	for i, x := range sorted {
		cdf := dist.CDF(x)
		if above := (float64(i)+1)/n - cdf; above > d {
			d = above
		}
		if below := cdf - float64(i)/n; below > d {
			d = below
		}
	}

	return d, ksPValue(d, len(sorted))
}

// ksPValue approximates the two-sided K-S p-value via the asymptotic
// Kolmogorov distribution with the standard small-sample correction
// lambda = (sqrt(n) + 0.12 + 0.11/sqrt(n)) * D.
func ksPValue(d float64, n int) float64 {
	if d <= 0 {
		return 1
	}
	sqrtN := math.Sqrt(float64(n))
	lambda := (sqrtN + 0.12 + 0.11/sqrtN) * d

	sum := 0.0
	sign := 1.0
	for j := 1; j <= 100; j++ {
		term := sign * math.Exp(-2*float64(j)*float64(j)*lambda*lambda)
		sum += term
		if math.Abs(term) < 1e-12 {
			break
		}
		sign = -sign
	}

	p := 2 * sum
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
