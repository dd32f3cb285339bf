package services

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pancakeanalytics/cardboard-compass/internal/analytics"
	"github.com/pancakeanalytics/cardboard-compass/internal/config"
	"github.com/pancakeanalytics/cardboard-compass/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		LogLevel:    "error",
		Dataset: config.DatasetConfig{
			ExcludedCategories: []string{"Lorcana"},
		},
		Analysis: config.AnalysisConfig{
			Categories:      []string{"Pokemon", "Baseball", "Hockey"},
			Horizon:         12,
			SeasonalPeriods: 12,
			MACD:            config.MACDConfig{ShortSpan: 12, LongSpan: 26, SignalSpan: 9},
			Buckets: config.BucketsConfig{
				HighUpward:   0.02,
				MediumUpward: 0.005,
				LowUpward:    -0.005,
				LowDownward:  -0.02,
			},
			Snapshot: config.SnapshotConfig{TrendlinePeriod: 3, RSIPeriod: 14},
		},
	}
}

// addMonthly appends one record per month for 36 consecutive months
// starting January 2020, with values produced by the supplied function.
func addMonthly(ds *models.CleanedDataset, category string, value func(i int) float64) {
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 36; i++ {
		date := start.AddDate(0, i, 0)
		ds.Records = append(ds.Records, models.Record{
			Category:    category,
			Year:        date.Year(),
			Month:       date.Month(),
			MarketValue: decimal.NewFromFloat(value(i)),
			Date:        date,
		})
	}
}

func testDataset() *models.CleanedDataset {
	ds := &models.CleanedDataset{Source: "memory"}
	addMonthly(ds, "Pokemon", func(i int) float64 { return 100 + 2*float64(i) })
	addMonthly(ds, "Baseball", func(i int) float64 { return 300 - 2*float64(i) })
	addMonthly(ds, "Hockey", func(i int) float64 {
		if i == 35 {
			return 0
		}
		return 100 + float64(i%5)
	})
	return ds
}

func TestAnalyzeBuildsCompleteBundle(t *testing.T) {
	service := NewAnalysisService(testConfig(), testLogger())
	ds := testDataset()

	bundle, err := service.Analyze(ds, "Pokemon", 12)
	require.NoError(t, err)

	assert.Equal(t, "Pokemon", bundle.Category)
	assert.Equal(t, 36, bundle.Series.Len())
	assert.Len(t, bundle.Forecast.Forecast, 12)
	assert.Len(t, bundle.Momentum.Buckets, 36)
	assert.NotEmpty(t, bundle.Seasonal.Means)
	assert.NotNil(t, bundle.Snapshot)
	assert.Equal(t, bundle.Momentum.RecentBucket(), bundle.RecentTrend)
	assert.Greater(t, bundle.PercentChange, 0.0, "rising series should project a positive change")
}

func TestAnalyzeDefaultHorizon(t *testing.T) {
	service := NewAnalysisService(testConfig(), testLogger())

	bundle, err := service.Analyze(testDataset(), "Pokemon", 0)
	require.NoError(t, err)
	assert.Len(t, bundle.Forecast.Forecast, 12)
}

func TestAnalyzeUnknownCategory(t *testing.T) {
	service := NewAnalysisService(testConfig(), testLogger())

	_, err := service.Analyze(testDataset(), "Beanie Babies", 12)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestAnalyzeEmptyCategory(t *testing.T) {
	cfg := testConfig()
	cfg.Analysis.Categories = append(cfg.Analysis.Categories, "Soccer")
	service := NewAnalysisService(cfg, testLogger())

	_, err := service.Analyze(testDataset(), "Soccer", 12)
	require.Error(t, err)

	var emptyErr *analytics.EmptyCategoryError
	assert.True(t, errors.As(err, &emptyErr))
}

func TestAnalyzeZeroBaseValue(t *testing.T) {
	service := NewAnalysisService(testConfig(), testLogger())

	_, err := service.Analyze(testDataset(), "Hockey", 12)
	require.Error(t, err)

	var divErr *analytics.DivisionByZeroError
	assert.True(t, errors.As(err, &divErr))
}

func TestAnalyzeIdempotent(t *testing.T) {
	service := NewAnalysisService(testConfig(), testLogger())
	ds := testDataset()

	first, err := service.Analyze(ds, "Pokemon", 12)
	require.NoError(t, err)
	second, err := service.Analyze(ds, "Pokemon", 12)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical input must produce identical bundles")
}

func TestCompareRisingBeatsFalling(t *testing.T) {
	service := NewAnalysisService(testConfig(), testLogger())

	result, err := service.Compare(testDataset(), "Pokemon", "Baseball", 12)
	require.NoError(t, err)

	assert.Equal(t, "Pokemon", result.BetterOutlook)
	assert.True(t, result.First.RecentTrend.IsUpward())
	assert.False(t, result.Second.RecentTrend.IsUpward())
	assert.Equal(t, "Pokemon", result.BetterMomentum)
}

func TestCompareMomentumFavorsUpwardBucket(t *testing.T) {
	service := NewAnalysisService(testConfig(), testLogger())

	// Order reversed: the first category is falling, so momentum goes to
	// the second regardless of forecast direction.
	result, err := service.Compare(testDataset(), "Baseball", "Pokemon", 12)
	require.NoError(t, err)

	assert.Equal(t, "Pokemon", result.BetterOutlook)
	assert.Equal(t, "Pokemon", result.BetterMomentum)
}

func TestCompareIndependentBundles(t *testing.T) {
	service := NewAnalysisService(testConfig(), testLogger())
	ds := testDataset()

	comparison, err := service.Compare(ds, "Pokemon", "Baseball", 12)
	require.NoError(t, err)

	solo, err := service.Analyze(ds, "Pokemon", 12)
	require.NoError(t, err)

	assert.Equal(t, solo, comparison.First, "comparison must not perturb per-category results")
}

func TestPercentChange(t *testing.T) {
	change, err := percentChange(100, 125)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, change, 1e-9)

	change, err = percentChange(200, 150)
	require.NoError(t, err)
	assert.InDelta(t, -25.0, change, 1e-9)

	_, err = percentChange(0, 50)
	require.Error(t, err)
	var divErr *analytics.DivisionByZeroError
	assert.True(t, errors.As(err, &divErr))
}
