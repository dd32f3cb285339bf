package analytics

import (
	"github.com/sirupsen/logrus"

	"github.com/pancakeanalytics/cardboard-compass/internal/config"
	"github.com/pancakeanalytics/cardboard-compass/internal/models"
)

// MomentumAnalyzer computes a MACD-style oscillator over a monthly series
// and classifies each point into a trend bucket.
//
// The exponential moving averages use the plain recursive form seeded with
// the first observation: ema[0] = y[0], ema[t] = alpha*y[t] + (1-alpha)*
// ema[t-1] with alpha = 2/(span+1). Every derived series stays index-aligned
// with the input; there is no warm-up trimming.
type MomentumAnalyzer struct {
	macd    config.MACDConfig
	buckets config.BucketsConfig
	logger  *logrus.Logger
}

// NewMomentumAnalyzer creates a new momentum analyzer.
func NewMomentumAnalyzer(macd config.MACDConfig, buckets config.BucketsConfig, logger *logrus.Logger) *MomentumAnalyzer {
	return &MomentumAnalyzer{macd: macd, buckets: buckets, logger: logger}
}

// Analyze computes MACD (short EWM minus long EWM), its signal line and
// their difference, then buckets each difference value.
func (m *MomentumAnalyzer) Analyze(series models.MonthlySeries) models.MomentumResult {
	shortEMA := ewm(series.Values, m.macd.ShortSpan)
	longEMA := ewm(series.Values, m.macd.LongSpan)

	macd := make([]float64, len(series.Values))
	for i := range macd {
		macd[i] = shortEMA[i] - longEMA[i]
	}

	signal := ewm(macd, m.macd.SignalSpan)

	histogram := make([]float64, len(macd))
	buckets := make([]models.TrendBucket, len(macd))
	for i := range macd {
		histogram[i] = macd[i] - signal[i]
		buckets[i] = m.classify(histogram[i])
	}

	if len(buckets) > 0 {
		m.logger.WithFields(logrus.Fields{
			"points":       len(buckets),
			"recent_trend": buckets[len(buckets)-1],
		}).Debug("Momentum classified")
	}

	return models.MomentumResult{
		Timestamps: series.Timestamps,
		MACD:       macd,
		Signal:     signal,
		Histogram:  histogram,
		Buckets:    buckets,
	}
}

// classify maps a macd-signal difference onto a trend bucket. Conditions are
// evaluated top to bottom, first match wins. The final condition covers the
// rest of the real line, so Neutral can only surface for NaN input. There is
// deliberately no Medium Downward condition.
func (m *MomentumAnalyzer) classify(diff float64) models.TrendBucket {
	switch {
	case diff > m.buckets.HighUpward:
		return models.TrendHighUpward
	case diff > m.buckets.MediumUpward:
		return models.TrendMediumUpward
	case diff > m.buckets.LowUpward:
		return models.TrendLowUpward
	case diff > m.buckets.LowDownward:
		return models.TrendLowDownward
	case diff <= m.buckets.LowDownward:
		return models.TrendHighDownward
	default:
		return models.TrendNeutral
	}
}

// ewm computes the recursive exponentially weighted mean with smoothing
// factor 2/(span+1), seeded by the first value.
func ewm(values []float64, span int) []float64 {
	result := make([]float64, len(values))
	if len(values) == 0 {
		return result
	}

	alpha := 2.0 / (float64(span) + 1.0)
	result[0] = values[0]
	for i := 1; i < len(values); i++ {
		result[i] = alpha*values[i] + (1-alpha)*result[i-1]
	}
	return result
}
