// Package report renders analysis bundles as plain text. It is presentation
// glue: narrative selection is table dispatch keyed off the structured
// results and performs no aggregation, smoothing or classification.
package report

import (
	"fmt"
	"strings"

	"github.com/pancakeanalytics/cardboard-compass/internal/models"
)

// trendNarratives maps each momentum bucket to its collector guidance. The
// Medium Downward entry exists only here; the classifier never emits that
// bucket.
var trendNarratives = map[models.TrendBucket]string{
	models.TrendHighUpward:     "Strong positive momentum; values are likely to keep rising near term. Consider holding or selling into strength, and buy quickly if at all.",
	models.TrendMediumUpward:   "Moderate positive momentum; prices are likely to increase gradually. A suitable window to buy before values climb further.",
	models.TrendLowUpward:      "Slight positive momentum; prices are edging upward. Cautious buying is favorable while the trend develops.",
	models.TrendLowDownward:    "Slight negative momentum; values are softening. Consider holding off on purchases until the trend stabilizes.",
	models.TrendMediumDownward: "Moderate negative momentum; prices are noticeably declining. Avoid purchases and hold existing cards until recovery signs appear.",
	models.TrendHighDownward:   "Strong negative momentum; values may fall sharply. Not a buying window; wait for the market to stabilize.",
	models.TrendNeutral:        "No strong momentum in either direction; the market is in equilibrium. Decisions can follow individual collecting goals.",
}

// TrendNarrative returns the guidance text for a momentum bucket.
func TrendNarrative(bucket models.TrendBucket) string {
	if text, ok := trendNarratives[bucket]; ok {
		return text
	}
	return trendNarratives[models.TrendNeutral]
}

// ChangeNarrative describes the projected percentage change.
func ChangeNarrative(category string, change float64, endMonth string) string {
	switch {
	case change < 0:
		return fmt.Sprintf("The projected market value change for %s over the forecast horizon is %.2f%%. "+
			"This decline could present a buying opportunity at lower prices; the window runs through %s.",
			category, change, endMonth)
	case change > 0:
		return fmt.Sprintf("The projected market value change for %s over the forecast horizon is %.2f%%. "+
			"Values are expected to rise through %s, so earlier purchases are likely cheaper.",
			category, change, endMonth)
	default:
		return fmt.Sprintf("The projected market value change for %s is 0.00%%. "+
			"The market looks stable through %s, allowing steady purchases throughout the year.",
			category, endMonth)
	}
}

// BestMonthNarrative describes the seasonal buying recommendation.
func BestMonthNarrative(category string, month string) string {
	return fmt.Sprintf("Historical values suggest the best time to buy %s cards is %s, "+
		"when average market values dip. Seasonal supply and demand likely drive the discount; "+
		"check upcoming releases before committing.", category, month)
}

// RenderBundle renders one category's analysis as a plain-text report.
func RenderBundle(b *models.AnalysisBundle) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "=== %s ===\n\n", b.Category)

	fmt.Fprintf(&sb, "Forecast (%d months)\n", len(b.Forecast.Forecast))
	fmt.Fprintf(&sb, "%-10s %12s %12s %12s\n", "Month", "Forecast", "Lower", "Upper")
	for i, ts := range b.Forecast.Timestamps {
		fmt.Fprintf(&sb, "%-10s %12.2f %12.2f %12.2f\n",
			ts.Format("2006-01"), b.Forecast.Forecast[i], b.Forecast.Lower[i], b.Forecast.Upper[i])
	}

	endMonth := b.Forecast.Timestamps[len(b.Forecast.Timestamps)-1].Format("January 2006")
	fmt.Fprintf(&sb, "\nProjected change: %.2f%%\n", b.PercentChange)
	fmt.Fprintf(&sb, "%s\n", ChangeNarrative(b.Category, b.PercentChange, endMonth))

	fmt.Fprintf(&sb, "\nMost recent MACD trend: %s\n", b.RecentTrend)
	fmt.Fprintf(&sb, "%s\n", TrendNarrative(b.RecentTrend))
	sb.WriteString("Note: MACD reflects short-term momentum; weigh it against the long-term forecast.\n")

	fmt.Fprintf(&sb, "\nBest month to buy: %s\n", b.Seasonal.BestMonth)
	fmt.Fprintf(&sb, "%s\n", BestMonthNarrative(b.Category, b.Seasonal.BestMonth.String()))

	if b.Snapshot != nil {
		fmt.Fprintf(&sb, "\nSupplementary context: RSI %.1f\n", b.Snapshot.RSI)
	}

	return sb.String()
}

// RenderComparison renders a two-category comparison as a plain-text report.
func RenderComparison(c *models.ComparisonResult) string {
	var sb strings.Builder

	sb.WriteString(RenderBundle(c.First))
	sb.WriteString("\n")
	sb.WriteString(RenderBundle(c.Second))

	fmt.Fprintf(&sb, "\n=== %s vs. %s ===\n", c.First.Category, c.Second.Category)
	fmt.Fprintf(&sb, "Projected change: %s %.2f%%, %s %.2f%%\n",
		c.First.Category, c.First.PercentChange, c.Second.Category, c.Second.PercentChange)
	fmt.Fprintf(&sb, "Better forecast outlook: %s\n", c.BetterOutlook)
	fmt.Fprintf(&sb, "Recent momentum: %s %s, %s %s\n",
		c.First.Category, c.First.RecentTrend, c.Second.Category, c.Second.RecentTrend)
	fmt.Fprintf(&sb, "Better momentum: %s\n", c.BetterMomentum)
	fmt.Fprintf(&sb, "Best month to buy: %s %s, %s %s\n",
		c.First.Category, c.First.Seasonal.BestMonth, c.Second.Category, c.Second.Seasonal.BestMonth)

	return sb.String()
}
