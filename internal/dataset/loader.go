package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/pancakeanalytics/cardboard-compass/internal/models"
)

// Required dataset columns, in any order. A missing or renamed column is a
// fatal load error.
const (
	columnCategory = "Category"
	columnYear     = "Year"
	columnMonth    = "Month"
	columnValue    = "market_value"
)

// ParseError represents an error occurring while parsing a raw dataset field.
type ParseError struct {
	Field string
	Value string
	Err   error
}

// Error returns the error message string.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("parse %s %q", e.Field, e.Value)
}

// Unwrap returns the underlying cause, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError for a specific field and raw value.
func NewParseError(field, value string, err error) error {
	return &ParseError{Field: field, Value: value, Err: err}
}

// Loader fetches and cleans the raw pricing dataset. The same loader handles
// xlsx workbooks (the published dataset format) and CSV files, fetched over
// HTTP or read from the local filesystem.
type Loader struct {
	httpClient *http.Client
	excluded   map[string]bool
	logger     *logrus.Logger
}

// NewLoader creates a new dataset loader. Records in the excluded categories
// are dropped during cleaning.
func NewLoader(excludedCategories []string, logger *logrus.Logger) *Loader {
	excluded := make(map[string]bool, len(excludedCategories))
	for _, c := range excludedCategories {
		excluded[c] = true
	}
	return &Loader{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		excluded:   excluded,
		logger:     logger,
	}
}

// Load fetches the dataset identified by source (URL or path), parses it and
// returns the cleaned, chronologically sorted dataset.
func (l *Loader) Load(ctx context.Context, source string) (*models.CleanedDataset, error) {
	raw, err := l.fetch(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset from %s: %w", source, err)
	}

	rows, err := parseTable(source, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset from %s: %w", source, err)
	}

	records, err := l.clean(rows)
	if err != nil {
		return nil, err
	}

	l.logger.WithFields(logrus.Fields{
		"source":  source,
		"records": len(records),
	}).Info("Dataset loaded and cleaned")

	return &models.CleanedDataset{Source: source, Records: records}, nil
}

// fetch retrieves the raw dataset bytes from a URL or the local filesystem.
func (l *Loader) fetch(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}
		resp, err := l.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer func() {
			if closeErr := resp.Body.Close(); closeErr != nil {
				l.logger.Warnf("Failed to close response body: %v", closeErr)
			}
		}()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(source)
}

// parseTable decodes the raw bytes into header + data rows. Workbooks are
// recognized by extension or by the zip magic bytes; everything else is
// treated as CSV.
func parseTable(source string, raw []byte) ([][]string, error) {
	if strings.HasSuffix(strings.ToLower(source), ".xlsx") || bytes.HasPrefix(raw, []byte("PK")) {
		return parseWorkbook(raw)
	}
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

func parseWorkbook(raw []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheet)
}

// clean converts raw rows into Records: month names become month numbers,
// dates are anchored to the first of the month, the result is stably sorted
// by date and excluded categories are dropped.
func (l *Loader) clean(rows [][]string) ([]models.Record, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}

	columns, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]models.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		record, err := parseRecord(row, columns)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	// Stable sort keeps the original relative order of same-month records.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})

	if len(l.excluded) == 0 {
		return records, nil
	}
	kept := records[:0]
	dropped := 0
	for _, r := range records {
		if l.excluded[r.Category] {
			dropped++
			continue
		}
		kept = append(kept, r)
	}
	if dropped > 0 {
		l.logger.WithFields(logrus.Fields{"dropped": dropped}).Debug("Excluded category records removed")
	}
	return kept, nil
}

func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{columnCategory, columnYear, columnMonth, columnValue} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("dataset is missing required column %q", required)
		}
	}
	return columns, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseRecord(row []string, columns map[string]int) (models.Record, error) {
	cell := func(name string) string {
		idx := columns[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	month, err := parseMonthName(cell(columnMonth))
	if err != nil {
		return models.Record{}, err
	}

	yearText := cell(columnYear)
	year, err := strconv.Atoi(yearText)
	if err != nil {
		return models.Record{}, NewParseError(columnYear, yearText, err)
	}
	if year <= 0 {
		return models.Record{}, NewParseError(columnYear, yearText, fmt.Errorf("year must be positive"))
	}

	valueText := cell(columnValue)
	value, err := decimal.NewFromString(valueText)
	if err != nil {
		return models.Record{}, NewParseError(columnValue, valueText, err)
	}

	return models.Record{
		Category:    cell(columnCategory),
		Year:        year,
		Month:       month,
		MarketValue: value,
		Date:        time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
	}, nil
}

// parseMonthName converts a full calendar month name into its month number.
func parseMonthName(name string) (time.Month, error) {
	t, err := time.Parse("January", name)
	if err != nil {
		return 0, NewParseError(columnMonth, name, err)
	}
	return t.Month(), nil
}
