package analytics

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pancakeanalytics/cardboard-compass/internal/models"
)

// SeasonalExtremumFinder averages the monthly totals by calendar month
// across all observed years and picks the cheapest month to buy.
type SeasonalExtremumFinder struct {
	logger *logrus.Logger
}

// NewSeasonalExtremumFinder creates a new finder.
func NewSeasonalExtremumFinder(logger *logrus.Logger) *SeasonalExtremumFinder {
	return &SeasonalExtremumFinder{logger: logger}
}

// Profile computes the mean value per calendar month and the month with the
// globally minimum mean. Ties break toward the earliest month number.
func (s *SeasonalExtremumFinder) Profile(series models.MonthlySeries) (models.SeasonalProfile, error) {
	if series.Len() == 0 {
		return models.SeasonalProfile{}, NewInsufficientDataError("seasonal profile requires at least one observed month")
	}

	sums := make(map[time.Month]float64)
	counts := make(map[time.Month]int)
	for i, ts := range series.Timestamps {
		month := ts.Month()
		sums[month] += series.Values[i]
		counts[month]++
	}

	means := make(map[time.Month]float64, len(sums))
	for month, sum := range sums {
		means[month] = sum / float64(counts[month])
	}

	best := time.Month(0)
	for month := time.January; month <= time.December; month++ {
		m, ok := means[month]
		if !ok {
			continue
		}
		if best == 0 || m < means[best] {
			best = month
		}
	}

	s.logger.WithFields(logrus.Fields{
		"months_observed": len(means),
		"best_month":      best.String(),
	}).Debug("Seasonal profile computed")

	return models.SeasonalProfile{Means: means, BestMonth: best}, nil
}
