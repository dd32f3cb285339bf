package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTrendBucketIsUpward(t *testing.T) {
	assert.True(t, TrendHighUpward.IsUpward())
	assert.True(t, TrendMediumUpward.IsUpward())
	assert.True(t, TrendLowUpward.IsUpward())
	assert.False(t, TrendLowDownward.IsUpward())
	assert.False(t, TrendMediumDownward.IsUpward())
	assert.False(t, TrendHighDownward.IsUpward())
	assert.False(t, TrendNeutral.IsUpward())
}

func TestMonthlySeriesAccessors(t *testing.T) {
	series := MonthlySeries{
		Timestamps: []time.Time{
			time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC),
		},
		Values: []float64{10, 20},
	}

	assert.Equal(t, 2, series.Len())
	assert.Equal(t, 20.0, series.LastValue())
	assert.Equal(t, time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC), series.LastTimestamp())
}

func TestCleanedDatasetFilterCategory(t *testing.T) {
	ds := &CleanedDataset{Records: []Record{
		{Category: "Pokemon", MarketValue: decimal.NewFromInt(1)},
		{Category: "Baseball", MarketValue: decimal.NewFromInt(2)},
		{Category: "Pokemon", MarketValue: decimal.NewFromInt(3)},
	}}

	filtered := ds.FilterCategory("Pokemon")
	assert.Len(t, filtered, 2)
	for _, r := range filtered {
		assert.Equal(t, "Pokemon", r.Category)
	}

	assert.Empty(t, ds.FilterCategory("Hockey"))
}

func TestCleanedDatasetCategories(t *testing.T) {
	ds := &CleanedDataset{Records: []Record{
		{Category: "Pokemon"},
		{Category: "Baseball"},
		{Category: "Pokemon"},
	}}

	assert.Equal(t, []string{"Pokemon", "Baseball"}, ds.Categories())
}
