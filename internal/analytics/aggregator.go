package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/pancakeanalytics/cardboard-compass/internal/models"
)

// Aggregator turns the cleaned dataset into per-category monthly series.
type Aggregator struct {
	logger *logrus.Logger
}

// NewAggregator creates a new aggregator.
func NewAggregator(logger *logrus.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// MonthlyTotals filters the dataset to one category and sums market values
// per month-start date. Summation happens in decimal; the resulting series
// carries float64 values for the analytical components. A category with no
// records is an error, never an empty series.
func (a *Aggregator) MonthlyTotals(ds *models.CleanedDataset, category string) (models.MonthlySeries, error) {
	records := ds.FilterCategory(category)
	if len(records) == 0 {
		return models.MonthlySeries{}, NewEmptyCategoryError(category)
	}

	totals := make(map[time.Time]decimal.Decimal)
	for _, r := range records {
		totals[r.Date] = totals[r.Date].Add(r.MarketValue)
	}

	timestamps := make([]time.Time, 0, len(totals))
	for ts := range totals {
		timestamps = append(timestamps, ts)
	}
	sort.Slice(timestamps, func(i, j int) bool {
		return timestamps[i].Before(timestamps[j])
	})

	values := make([]float64, len(timestamps))
	for i, ts := range timestamps {
		values[i], _ = totals[ts].Float64()
	}

	a.logger.WithFields(logrus.Fields{
		"category": category,
		"months":   len(timestamps),
		"records":  len(records),
	}).Debug("Monthly totals aggregated")

	return models.MonthlySeries{Timestamps: timestamps, Values: values}, nil
}
