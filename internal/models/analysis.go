package models

import (
	"strings"
	"time"
)

// MonthlySeries is a monthly aggregate time series. Timestamps are unique,
// strictly increasing month-start dates and Values holds the aggregate for
// each month, index-aligned.
type MonthlySeries struct {
	Timestamps []time.Time `json:"timestamps"`
	Values     []float64   `json:"values"`
}

// Len returns the number of observations in the series.
func (s MonthlySeries) Len() int {
	return len(s.Values)
}

// LastValue returns the most recent observation.
func (s MonthlySeries) LastValue() float64 {
	return s.Values[len(s.Values)-1]
}

// LastTimestamp returns the month-start date of the most recent observation.
func (s MonthlySeries) LastTimestamp() time.Time {
	return s.Timestamps[len(s.Timestamps)-1]
}

// ForecastResult holds a point forecast with a symmetric confidence band.
// Timestamps are the month-end dates of the calendar months immediately
// following the last observed month. The band width is constant across the
// horizon: Lower[i] <= Forecast[i] <= Upper[i] for every step.
type ForecastResult struct {
	Timestamps []time.Time `json:"timestamps"`
	Forecast   []float64   `json:"forecast"`
	Lower      []float64   `json:"lower"`
	Upper      []float64   `json:"upper"`
}

// LastValue returns the final forecast value of the horizon.
func (f ForecastResult) LastValue() float64 {
	return f.Forecast[len(f.Forecast)-1]
}

// TrendBucket labels the momentum of a single observation.
type TrendBucket string

const (
	TrendHighUpward   TrendBucket = "High Upward"
	TrendMediumUpward TrendBucket = "Medium Upward"
	TrendLowUpward    TrendBucket = "Low Upward"
	TrendLowDownward  TrendBucket = "Low Downward"
	TrendHighDownward TrendBucket = "High Downward"
	TrendNeutral      TrendBucket = "Neutral"

	// TrendMediumDownward is never produced by the classifier; it exists
	// only as a narrative key. The classifier's threshold table has no
	// matching condition for it.
	TrendMediumDownward TrendBucket = "Medium Downward"
)

// IsUpward reports whether the bucket describes upward momentum.
func (b TrendBucket) IsUpward() bool {
	return strings.Contains(string(b), "Upward")
}

// MomentumResult holds the MACD oscillator, its signal line, their
// difference and the per-point trend classification. All slices are
// index-aligned with the input series.
type MomentumResult struct {
	Timestamps []time.Time   `json:"timestamps"`
	MACD       []float64     `json:"macd"`
	Signal     []float64     `json:"signal"`
	Histogram  []float64     `json:"histogram"`
	Buckets    []TrendBucket `json:"buckets"`
}

// RecentBucket returns the classification of the most recent observation.
func (m MomentumResult) RecentBucket() TrendBucket {
	return m.Buckets[len(m.Buckets)-1]
}

// SeasonalProfile maps each observed calendar month to its mean market value
// across years. BestMonth is the month with the lowest mean, the historical
// best time to buy.
type SeasonalProfile struct {
	Means     map[time.Month]float64 `json:"means"`
	BestMonth time.Month             `json:"best_month"`
}

// TrendSnapshot carries supplementary indicator context for a series: a
// smoothed trendline and the latest relative strength reading.
type TrendSnapshot struct {
	Trendline []float64 `json:"trendline"`
	RSI       float64   `json:"rsi"`
}

// AnalysisBundle is the complete analytical output for one category. It is
// built fresh on every run and holds no shared state.
type AnalysisBundle struct {
	Category      string          `json:"category"`
	Series        MonthlySeries   `json:"series"`
	Forecast      ForecastResult  `json:"forecast"`
	Momentum      MomentumResult  `json:"momentum"`
	Seasonal      SeasonalProfile `json:"seasonal"`
	Snapshot      *TrendSnapshot  `json:"snapshot,omitempty"`
	PercentChange float64         `json:"percent_change"`
	RecentTrend   TrendBucket     `json:"recent_trend"`
}

// ComparisonResult pairs two category bundles with the comparative verdicts.
type ComparisonResult struct {
	First          *AnalysisBundle `json:"first"`
	Second         *AnalysisBundle `json:"second"`
	BetterOutlook  string          `json:"better_outlook"`
	BetterMomentum string          `json:"better_momentum"`
}
