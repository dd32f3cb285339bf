package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string         `mapstructure:"environment"`
	LogLevel    string         `mapstructure:"log_level"`
	Dataset     DatasetConfig  `mapstructure:"dataset"`
	Analysis    AnalysisConfig `mapstructure:"analysis"`
}

type DatasetConfig struct {
	SourceURL          string   `mapstructure:"source_url"`
	ExcludedCategories []string `mapstructure:"excluded_categories"`
}

type AnalysisConfig struct {
	Categories      []string       `mapstructure:"categories"`
	Horizon         int            `mapstructure:"horizon"`
	SeasonalPeriods int            `mapstructure:"seasonal_periods"`
	MACD            MACDConfig     `mapstructure:"macd"`
	Buckets         BucketsConfig  `mapstructure:"buckets"`
	Snapshot        SnapshotConfig `mapstructure:"snapshot"`
}

type MACDConfig struct {
	ShortSpan  int `mapstructure:"short_span"`
	LongSpan   int `mapstructure:"long_span"`
	SignalSpan int `mapstructure:"signal_span"`
}

type BucketsConfig struct {
	HighUpward   float64 `mapstructure:"high_upward"`
	MediumUpward float64 `mapstructure:"medium_upward"`
	LowUpward    float64 `mapstructure:"low_upward"`
	LowDownward  float64 `mapstructure:"low_downward"`
}

type SnapshotConfig struct {
	TrendlinePeriod int `mapstructure:"trendline_period"`
	RSIPeriod       int `mapstructure:"rsi_period"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// Set default values
	setDefaults()

	// Enable environment variable support
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		// Config file not found, use defaults and environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Normalize environment to lowercase for consistent comparison
	config.Environment = strings.ToLower(config.Environment)

	if config.Analysis.Horizon <= 0 {
		return nil, fmt.Errorf("analysis horizon must be positive, got %d", config.Analysis.Horizon)
	}
	if config.Analysis.SeasonalPeriods <= 1 {
		return nil, fmt.Errorf("seasonal periods must be greater than 1, got %d", config.Analysis.SeasonalPeriods)
	}
	if config.Analysis.MACD.ShortSpan <= 0 || config.Analysis.MACD.LongSpan <= 0 || config.Analysis.MACD.SignalSpan <= 0 {
		return nil, fmt.Errorf("MACD spans must be positive, got short=%d long=%d signal=%d",
			config.Analysis.MACD.ShortSpan, config.Analysis.MACD.LongSpan, config.Analysis.MACD.SignalSpan)
	}
	if config.Analysis.MACD.ShortSpan >= config.Analysis.MACD.LongSpan {
		return nil, fmt.Errorf("MACD short span must be below the long span, got short=%d long=%d",
			config.Analysis.MACD.ShortSpan, config.Analysis.MACD.LongSpan)
	}
	if len(config.Analysis.Categories) == 0 {
		return nil, fmt.Errorf("at least one analysis category must be configured")
	}

	return &config, nil
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")

	// Dataset
	viper.SetDefault("dataset.source_url", "https://pancakebreakfaststats.com/wp-content/uploads/2024/08/data_file.xlsx")
	viper.SetDefault("dataset.excluded_categories", []string{"Lorcana"})

	// Analysis
	viper.SetDefault("analysis.categories", []string{
		"Fortnite", "Marvel", "Pokemon", "Star Wars", "Magic the Gathering",
		"Baseball", "Basketball", "Football", "Hockey", "Soccer",
	})
	viper.SetDefault("analysis.horizon", 12)
	viper.SetDefault("analysis.seasonal_periods", 12)

	// MACD
	viper.SetDefault("analysis.macd.short_span", 12)
	viper.SetDefault("analysis.macd.long_span", 26)
	viper.SetDefault("analysis.macd.signal_span", 9)

	// Trend buckets
	viper.SetDefault("analysis.buckets.high_upward", 0.02)
	viper.SetDefault("analysis.buckets.medium_upward", 0.005)
	viper.SetDefault("analysis.buckets.low_upward", -0.005)
	viper.SetDefault("analysis.buckets.low_downward", -0.02)

	// Trend snapshot
	viper.SetDefault("analysis.snapshot.trendline_period", 3)
	viper.SetDefault("analysis.snapshot.rsi_period", 14)
}

// IsKnownCategory reports whether the category belongs to the configured set.
func (c *Config) IsKnownCategory(category string) bool {
	for _, known := range c.Analysis.Categories {
		if known == category {
			return true
		}
	}
	return false
}
