package analytics

import (
	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/momentum"
	"github.com/cinar/indicator/v2/trend"
	"github.com/sirupsen/logrus"

	"github.com/pancakeanalytics/cardboard-compass/internal/config"
	"github.com/pancakeanalytics/cardboard-compass/internal/models"
)

// SnapshotBuilder computes supplementary indicator context for a series: a
// short SMA trendline and the latest RSI reading. Unlike the momentum
// oscillator these carry the library's usual warm-up trimming, so they are
// advisory context rather than an index-aligned series.
type SnapshotBuilder struct {
	cfg    config.SnapshotConfig
	logger *logrus.Logger
}

// NewSnapshotBuilder creates a new snapshot builder.
func NewSnapshotBuilder(cfg config.SnapshotConfig, logger *logrus.Logger) *SnapshotBuilder {
	return &SnapshotBuilder{cfg: cfg, logger: logger}
}

// Build returns the trend snapshot for a series, or nil when the series is
// shorter than the indicator warm-up.
func (b *SnapshotBuilder) Build(series models.MonthlySeries) *models.TrendSnapshot {
	if series.Len() < b.cfg.TrendlinePeriod || series.Len() < b.cfg.RSIPeriod+1 {
		return nil
	}

	smaIndicator := trend.NewSmaWithPeriod[float64](b.cfg.TrendlinePeriod)
	trendline := helper.ChanToSlice(smaIndicator.Compute(helper.SliceToChan(series.Values)))

	rsiIndicator := momentum.NewRsiWithPeriod[float64](b.cfg.RSIPeriod)
	rsi := helper.ChanToSlice(rsiIndicator.Compute(helper.SliceToChan(series.Values)))
	if len(trendline) == 0 || len(rsi) == 0 {
		return nil
	}

	snapshot := &models.TrendSnapshot{
		Trendline: trendline,
		RSI:       rsi[len(rsi)-1],
	}

	b.logger.WithFields(logrus.Fields{
		"trendline_points": len(trendline),
		"rsi":              snapshot.RSI,
	}).Debug("Trend snapshot computed")

	return snapshot
}
