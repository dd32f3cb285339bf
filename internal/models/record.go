package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record represents one observed sale/listing for a card category
type Record struct {
	Category    string          `json:"category"`
	Year        int             `json:"year"`
	Month       time.Month      `json:"month"`
	MarketValue decimal.Decimal `json:"market_value"`
	Date        time.Time       `json:"date"`
}

// CleanedDataset is the normalized, chronologically sorted dataset for one
// session. Records are sorted ascending by Date and excluded categories are
// already removed. Treated as immutable after load.
type CleanedDataset struct {
	Source  string   `json:"source"`
	Records []Record `json:"records"`
}

// FilterCategory returns the records belonging to a single category,
// preserving chronological order.
func (d *CleanedDataset) FilterCategory(category string) []Record {
	var filtered []Record
	for _, r := range d.Records {
		if r.Category == category {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Categories returns the distinct categories present in the dataset, in
// first-appearance order.
func (d *CleanedDataset) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, r := range d.Records {
		if !seen[r.Category] {
			seen[r.Category] = true
			categories = append(categories, r.Category)
		}
	}
	return categories
}
