package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pancakeanalytics/cardboard-compass/internal/analytics"
	"github.com/pancakeanalytics/cardboard-compass/internal/config"
	"github.com/pancakeanalytics/cardboard-compass/internal/models"
)

// AnalysisService orchestrates the analytical pipeline for one or two
// categories. It composes the aggregator, forecaster, momentum analyzer and
// seasonal finder without duplicating any of their logic; every numerical
// result in a bundle comes from exactly one component.
type AnalysisService struct {
	cfg        *config.Config
	logger     *logrus.Logger
	aggregator *analytics.Aggregator
	forecaster *analytics.Forecaster
	momentum   *analytics.MomentumAnalyzer
	seasonal   *analytics.SeasonalExtremumFinder
	snapshots  *analytics.SnapshotBuilder
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(cfg *config.Config, logger *logrus.Logger) *AnalysisService {
	return &AnalysisService{
		cfg:        cfg,
		logger:     logger,
		aggregator: analytics.NewAggregator(logger),
		forecaster: analytics.NewForecaster(cfg.Analysis.SeasonalPeriods, logger),
		momentum:   analytics.NewMomentumAnalyzer(cfg.Analysis.MACD, cfg.Analysis.Buckets, logger),
		seasonal:   analytics.NewSeasonalExtremumFinder(logger),
		snapshots:  analytics.NewSnapshotBuilder(cfg.Analysis.Snapshot, logger),
	}
}

// Analyze runs the full pipeline for one category and assembles the result
// bundle. The horizon falls back to the configured default when zero.
func (s *AnalysisService) Analyze(ds *models.CleanedDataset, category string, horizon int) (*models.AnalysisBundle, error) {
	if !s.cfg.IsKnownCategory(category) {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	if horizon <= 0 {
		horizon = s.cfg.Analysis.Horizon
	}

	s.logger.WithFields(logrus.Fields{
		"category": category,
		"horizon":  horizon,
	}).Info("Starting category analysis")

	series, err := s.aggregator.MonthlyTotals(ds, category)
	if err != nil {
		return nil, err
	}

	forecast, err := s.forecaster.Forecast(series, horizon)
	if err != nil {
		return nil, fmt.Errorf("forecast for %s failed: %w", category, err)
	}

	momentum := s.momentum.Analyze(series)

	seasonal, err := s.seasonal.Profile(series)
	if err != nil {
		return nil, fmt.Errorf("seasonal profile for %s failed: %w", category, err)
	}

	change, err := percentChange(series.LastValue(), forecast.LastValue())
	if err != nil {
		return nil, err
	}

	return &models.AnalysisBundle{
		Category:      category,
		Series:        series,
		Forecast:      forecast,
		Momentum:      momentum,
		Seasonal:      seasonal,
		Snapshot:      s.snapshots.Build(series),
		PercentChange: change,
		RecentTrend:   momentum.RecentBucket(),
	}, nil
}

// Compare analyzes two categories independently against the same immutable
// dataset and derives the comparative verdicts.
func (s *AnalysisService) Compare(ds *models.CleanedDataset, first, second string, horizon int) (*models.ComparisonResult, error) {
	a, err := s.Analyze(ds, first, horizon)
	if err != nil {
		return nil, err
	}
	b, err := s.Analyze(ds, second, horizon)
	if err != nil {
		return nil, err
	}

	// Higher percentage change wins: for two declines that is the smaller
	// magnitude decrease. Ties favor the first category.
	betterOutlook := a.Category
	if b.PercentChange > a.PercentChange {
		betterOutlook = b.Category
	}

	betterMomentum := b.Category
	if a.RecentTrend.IsUpward() {
		betterMomentum = a.Category
	}

	s.logger.WithFields(logrus.Fields{
		"first":           first,
		"second":          second,
		"better_outlook":  betterOutlook,
		"better_momentum": betterMomentum,
	}).Info("Category comparison complete")

	return &models.ComparisonResult{
		First:          a,
		Second:         b,
		BetterOutlook:  betterOutlook,
		BetterMomentum: betterMomentum,
	}, nil
}

// percentChange computes ((final-initial)/initial)*100.
func percentChange(initial, final float64) (float64, error) {
	if initial == 0 {
		return 0, analytics.NewDivisionByZeroErrorf("percentage change base is zero")
	}
	return ((final - initial) / initial) * 100, nil
}
