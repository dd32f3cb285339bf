package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pancakeanalytics/cardboard-compass/internal/models"
)

func record(category string, year int, month time.Month, value float64) models.Record {
	return models.Record{
		Category:    category,
		Year:        year,
		Month:       month,
		MarketValue: decimal.NewFromFloat(value),
		Date:        time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestMonthlyTotalsSumsPerMonth(t *testing.T) {
	ds := &models.CleanedDataset{Records: []models.Record{
		record("Pokemon", 2023, time.January, 10.5),
		record("Pokemon", 2023, time.January, 4.5),
		record("Pokemon", 2023, time.February, 20),
		record("Baseball", 2023, time.January, 99),
	}}

	aggregator := NewAggregator(testLogger())
	series, err := aggregator.MonthlyTotals(ds, "Pokemon")
	require.NoError(t, err)

	require.Equal(t, 2, series.Len())
	assert.Equal(t, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), series.Timestamps[0])
	assert.Equal(t, time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC), series.Timestamps[1])
	assert.InDelta(t, 15.0, series.Values[0], 1e-9)
	assert.InDelta(t, 20.0, series.Values[1], 1e-9)
}

func TestMonthlyTotalsConservation(t *testing.T) {
	ds := &models.CleanedDataset{}
	total := decimal.Zero
	for i := 0; i < 40; i++ {
		value := 10.0 + float64(i)*0.25
		r := record("Pokemon", 2020+i/12, time.Month(i%12+1), value)
		ds.Records = append(ds.Records, r)
		total = total.Add(r.MarketValue)
	}

	aggregator := NewAggregator(testLogger())
	series, err := aggregator.MonthlyTotals(ds, "Pokemon")
	require.NoError(t, err)

	sum := 0.0
	for _, v := range series.Values {
		sum += v
	}
	want, _ := total.Float64()
	assert.InDelta(t, want, sum, 1e-6, "monthly totals must conserve the category total")
}

func TestMonthlyTotalsAscendingTimestamps(t *testing.T) {
	ds := &models.CleanedDataset{Records: []models.Record{
		record("Pokemon", 2023, time.March, 1),
		record("Pokemon", 2022, time.December, 2),
		record("Pokemon", 2023, time.January, 3),
	}}

	aggregator := NewAggregator(testLogger())
	series, err := aggregator.MonthlyTotals(ds, "Pokemon")
	require.NoError(t, err)

	for i := 1; i < series.Len(); i++ {
		assert.True(t, series.Timestamps[i-1].Before(series.Timestamps[i]))
	}
}

func TestMonthlyTotalsEmptyCategory(t *testing.T) {
	ds := &models.CleanedDataset{Records: []models.Record{
		record("Baseball", 2023, time.January, 99),
	}}

	aggregator := NewAggregator(testLogger())
	_, err := aggregator.MonthlyTotals(ds, "Pokemon")
	require.Error(t, err)

	var emptyErr *EmptyCategoryError
	require.True(t, errors.As(err, &emptyErr))
	assert.Equal(t, "Pokemon", emptyErr.Category)
}
