package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/pancakeanalytics/cardboard-compass/internal/config"
	"github.com/pancakeanalytics/cardboard-compass/internal/dataset"
	"github.com/pancakeanalytics/cardboard-compass/internal/report"
	"github.com/pancakeanalytics/cardboard-compass/internal/services"
)

func main() {
	// Load .env if present; environment variables override config defaults.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	category := flag.String("category", "", "category to analyze")
	compare := flag.String("compare", "", "optional second category for comparison")
	horizon := flag.Int("horizon", cfg.Analysis.Horizon, "forecast horizon in months")
	flag.Parse()

	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if *category == "" {
		fmt.Fprintf(os.Stderr, "usage: compass -category <name> [-compare <name>] [-horizon <months>]\n")
		fmt.Fprintf(os.Stderr, "categories: %v\n", cfg.Analysis.Categories)
		os.Exit(2)
	}

	loader := dataset.NewLoader(cfg.Dataset.ExcludedCategories, logger)
	cache := dataset.NewCache(logger)

	ctx := context.Background()
	ds, ok := cache.Get(cfg.Dataset.SourceURL)
	if !ok {
		ds, err = loader.Load(ctx, cfg.Dataset.SourceURL)
		if err != nil {
			logger.WithError(err).Fatal("Failed to load dataset")
		}
		cache.Set(cfg.Dataset.SourceURL, ds)
	}

	service := services.NewAnalysisService(cfg, logger)

	if *compare != "" {
		result, err := service.Compare(ds, *category, *compare, *horizon)
		if err != nil {
			logger.WithError(err).Fatal("Comparison failed")
		}
		fmt.Print(report.RenderComparison(result))
		return
	}

	bundle, err := service.Analyze(ds, *category, *horizon)
	if err != nil {
		logger.WithError(err).Fatal("Analysis failed")
	}
	fmt.Print(report.RenderBundle(bundle))
}
