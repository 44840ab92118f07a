// Package pipeline builds the Greenbook/FOMC mapping from the historical pages.
//
// Run discovers the published years, fetches each year page in ascending order, extracts
// and parses document filenames, aggregates the records into one table and applies the
// override table. Fetching goes through the Fetcher interface so everything else can run
// against canned pages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pfrederiksen/gbfomc/internal/logger"
	"github.com/pfrederiksen/gbfomc/internal/mapping"
	"github.com/pfrederiksen/gbfomc/internal/pattern"
	"github.com/pfrederiksen/gbfomc/internal/scraper"
)

// Fetcher returns the content of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Options controls a run. Zero values fall back to the Federal Reserve defaults,
// except Overrides: a nil slice applies none.
type Options struct {
	IndexURL  string
	YearURL   func(year int) string
	StartYear int
	Registry  *pattern.Registry
	Overrides []mapping.OverrideRule
	// KeepGoing records a failed year and moves on instead of aborting the run.
	KeepGoing bool
}

// YearFailure is a year page that could not be fetched.
type YearFailure struct {
	Year int    `json:"year"`
	URL  string `json:"url"`
	Err  error  `json:"-"`
}

// Error returns the failure text.
func (f YearFailure) Error() string {
	return fmt.Sprintf("year %d (%s): %v", f.Year, f.URL, f.Err)
}

// Unwrap returns the underlying fetch error.
func (f YearFailure) Unwrap() error {
	return f.Err
}

// Result is the outcome of a run.
type Result struct {
	Table            *mapping.Table `json:"-"`
	Years            []int          `json:"years"`
	Documents        int            `json:"documents"`
	Malformed        []string       `json:"malformed,omitempty"`
	Collisions       int            `json:"collisions"`
	OverridesApplied int            `json:"overrides_applied"`
	Failed           []YearFailure  `json:"failed,omitempty"`
}

func (o *Options) setDefaults() {
	if o.IndexURL == "" {
		o.IndexURL = scraper.IndexURL
	}
	if o.YearURL == nil {
		o.YearURL = scraper.New().YearURL
	}
	if o.StartYear == 0 {
		o.StartYear = scraper.FirstYear
	}
	if o.Registry == nil {
		o.Registry = pattern.Default()
	}
}

// ExtractRecords finds and parses every document filename in one page.
// Filenames that match a convention but do not parse are returned as errors.
func ExtractRecords(content string, reg *pattern.Registry) ([]mapping.Record, []error) {
	return mapping.ParseFilenames(reg.Extract(content))
}

// Run builds the mapping table. Overrides are applied last; a curated key missing from
// the extracted table fails the run.
func Run(ctx context.Context, f Fetcher, opts Options) (*Result, error) {
	opts.setDefaults()

	index, err := f.Fetch(ctx, opts.IndexURL)
	if err != nil {
		return nil, fmt.Errorf("fetching year index: %w", err)
	}

	years, err := scraper.YearRange(scraper.DiscoverYears(index), opts.StartYear)
	if err != nil {
		return nil, fmt.Errorf("discovering years from %s: %w", opts.IndexURL, err)
	}

	logger.Info("Discovered archive years", logger.Fields{
		"first": years[0],
		"last":  years[len(years)-1],
	})

	result := &Result{Years: years}
	yearly := make([][]mapping.Record, 0, len(years))

	for _, year := range years {
		url := opts.YearURL(year)
		start := time.Now()

		content, err := f.Fetch(ctx, url)
		if err != nil {
			failure := YearFailure{Year: year, URL: url, Err: err}
			if !opts.KeepGoing || errors.Is(err, context.Canceled) {
				return nil, failure
			}
			logger.Error("Skipping year", logger.Fields{"year": year, "url": url}, err)
			logger.IncrCounter("years.failed")
			result.Failed = append(result.Failed, failure)
			continue
		}
		logger.RecordTiming("fetch.year", time.Since(start))
		logger.IncrCounter("years.fetched")

		records, errs := ExtractRecords(content, opts.Registry)
		for _, e := range errs {
			logger.Warn("Skipping malformed document name", logger.Fields{
				"year":  year,
				"error": e.Error(),
			})
			logger.IncrCounter("records.malformed")
			result.Malformed = append(result.Malformed, e.Error())
		}

		yearly = append(yearly, records)
		result.Documents += len(records)
		logger.Info("Parsed year page", logger.Fields{
			"year":      year,
			"documents": len(records),
		})
	}

	table := mapping.Aggregate(yearly, func(prev, next mapping.Record) {
		result.Collisions++
		logger.IncrCounter("records.collisions")
		logger.Warn("Publication date seen twice, keeping the later record", logger.Fields{
			"gb_pub_date": next.GBPubDate.String(),
			"previous":    prev.FOMCDate.String(),
			"kept":        next.FOMCDate.String(),
		})
	})

	if err := table.ApplyOverrides(opts.Overrides); err != nil {
		return nil, fmt.Errorf("applying overrides: %w", err)
	}
	result.OverridesApplied = len(opts.Overrides)
	result.Table = table

	logger.SetGauge("table.rows", float64(table.Len()))
	logger.Info("Built mapping", logger.Fields{
		"rows":      table.Len(),
		"overrides": result.OverridesApplied,
		"failed":    len(result.Failed),
	})

	return result, nil
}
