package analytics

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"

	"github.com/pancakeanalytics/cardboard-compass/internal/models"
)

// confidenceZ is the z-score of the symmetric 95% confidence band.
const confidenceZ = 1.96

// Forecaster fits an additive-trend, additive-seasonal exponential smoothing
// model to a monthly series and projects it a fixed horizon ahead.
//
// The band is intentionally flat: one standard deviation is computed from
// the in-sample residuals and applied uniformly to every horizon step. It is
// not a widening prediction interval.
type Forecaster struct {
	seasonalPeriods int
	logger          *logrus.Logger
}

// NewForecaster creates a forecaster with the given seasonal period length.
func NewForecaster(seasonalPeriods int, logger *logrus.Logger) *Forecaster {
	return &Forecaster{seasonalPeriods: seasonalPeriods, logger: logger}
}

// holtWintersState carries the smoothing recursion outputs for one
// parameter triple.
type holtWintersState struct {
	level     float64
	trend     float64
	seasonals []float64 // ring indexed by phase t mod m
	residuals []float64
	sse       float64
}

// Forecast fits the model over the full history and returns the point
// forecast with its confidence band for the given horizon.
func (f *Forecaster) Forecast(series models.MonthlySeries, horizon int) (models.ForecastResult, error) {
	n := series.Len()
	m := f.seasonalPeriods

	if n < 2*m {
		return models.ForecastResult{}, NewModelFitError(nil,
			"insufficient history for seasonal fit: need at least %d observations, got %d", 2*m, n)
	}
	if n < 3*m {
		f.logger.WithFields(logrus.Fields{
			"observations": n,
			"recommended":  3 * m,
		}).Warn("Short history may destabilize the seasonal fit")
	}

	alpha, beta, gamma, err := f.fit(series.Values)
	if err != nil {
		return models.ForecastResult{}, err
	}

	state := smooth(series.Values, m, alpha, beta, gamma)

	// Population standard deviation around the residual mean, not the
	// sample estimator.
	sigma := stat.PopStdDev(state.residuals, nil)
	margin := confidenceZ * sigma

	timestamps := make([]time.Time, horizon)
	forecast := make([]float64, horizon)
	lower := make([]float64, horizon)
	upper := make([]float64, horizon)

	last := series.LastTimestamp()
	for k := 1; k <= horizon; k++ {
		phase := (n + k - 1) % m
		value := state.level + float64(k)*state.trend + state.seasonals[phase]

		forecast[k-1] = value
		lower[k-1] = value - margin
		upper[k-1] = value + margin
		timestamps[k-1] = monthEnd(last.AddDate(0, k, 0))
	}

	f.logger.WithFields(logrus.Fields{
		"alpha":   alpha,
		"beta":    beta,
		"gamma":   gamma,
		"sigma":   sigma,
		"horizon": horizon,
	}).Debug("Seasonal model fitted")

	return models.ForecastResult{
		Timestamps: timestamps,
		Forecast:   forecast,
		Lower:      lower,
		Upper:      upper,
	}, nil
}

// fit estimates the smoothing parameters by minimizing the in-sample sum of
// squared one-step-ahead errors. The numerical search is delegated to
// gonum's Nelder-Mead; parameters travel through a logistic transform so the
// optimizer works on an unconstrained space while alpha, beta and gamma stay
// inside (0, 1).
func (f *Forecaster) fit(values []float64) (alpha, beta, gamma float64, err error) {
	m := f.seasonalPeriods

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			state := smooth(values, m, logistic(x[0]), logistic(x[1]), logistic(x[2]))
			if math.IsNaN(state.sse) || math.IsInf(state.sse, 0) {
				return math.MaxFloat64
			}
			return state.sse
		},
	}

	initial := []float64{logit(0.3), logit(0.1), logit(0.1)}
	result, optErr := optimize.Minimize(problem, initial, nil, &optimize.NelderMead{})
	if optErr != nil {
		return 0, 0, 0, NewModelFitError(optErr, "exponential smoothing optimizer failed")
	}
	if statusErr := result.Status.Err(); statusErr != nil {
		return 0, 0, 0, NewModelFitError(statusErr, "exponential smoothing optimizer did not converge")
	}
	if math.IsNaN(result.F) || math.IsInf(result.F, 0) {
		return 0, 0, 0, NewModelFitError(nil, "exponential smoothing fit produced a non-finite objective")
	}

	return logistic(result.X[0]), logistic(result.X[1]), logistic(result.X[2]), nil
}

// smooth runs the additive Holt-Winters recursion over the history and
// returns the final states together with the in-sample residuals.
func smooth(values []float64, m int, alpha, beta, gamma float64) holtWintersState {
	level, trend, seasonals := initialState(values, m)

	residuals := make([]float64, len(values))
	sse := 0.0
	for t, y := range values {
		phase := t % m
		fitted := level + trend + seasonals[phase]
		residuals[t] = y - fitted
		sse += residuals[t] * residuals[t]

		prevLevel := level
		level = alpha*(y-seasonals[phase]) + (1-alpha)*(level+trend)
		trend = beta*(level-prevLevel) + (1-beta)*trend
		seasonals[phase] = gamma*(y-level) + (1-gamma)*seasonals[phase]
	}

	return holtWintersState{
		level:     level,
		trend:     trend,
		seasonals: seasonals,
		residuals: residuals,
		sse:       sse,
	}
}

// initialState seeds the recursion with the conventional heuristics: the
// first cycle's mean as level, the averaged cycle-to-cycle difference as
// trend, and per-phase deviations from each cycle's mean as seasonals.
func initialState(values []float64, m int) (level, trend float64, seasonals []float64) {
	level = mean(values[:m])
	trend = (mean(values[m:2*m]) - level) / float64(m)

	cycles := len(values) / m
	seasonals = make([]float64, m)
	for phase := 0; phase < m; phase++ {
		sum := 0.0
		for c := 0; c < cycles; c++ {
			cycleMean := mean(values[c*m : (c+1)*m])
			sum += values[c*m+phase] - cycleMean
		}
		seasonals[phase] = sum / float64(cycles)
	}
	return level, trend, seasonals
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func logistic(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func logit(p float64) float64 {
	return math.Log(p / (1 - p))
}

// monthEnd returns the last calendar day of t's month.
func monthEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
}
