package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/pfrederiksen/gbfomc/internal/logger"
	"github.com/pfrederiksen/gbfomc/internal/mapping"
	"github.com/pfrederiksen/gbfomc/internal/pattern"
	"github.com/pfrederiksen/gbfomc/internal/pipeline"
	"github.com/pfrederiksen/gbfomc/internal/scraper"
	"github.com/pfrederiksen/gbfomc/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagOutput    string
	flagStdout    bool
	flagBaseURL   string
	flagIndexURL  string
	flagStartYear int
	flagDelay     time.Duration
	flagKeepGoing bool
	flagOverrides string
	flagFormat    string
	flagVerbose   bool
	flagLogLevel  string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gbfomc",
		Short: "Build the Greenbook to FOMC meeting date mapping",
		Long: `Builds GBFOMCmapping.csv from the Federal Reserve's FOMC historical pages.

Each row links an FOMC meeting (FOMCdate, the last day of the meeting) to the Greenbook
prepared for it: GBpubDate is the publication date, GBdate the date used by the
Philadelphia Fed's Greenbook Data Set. All dates are YYYYMMDD.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logger.ParseLevel(flagLogLevel)
			if err != nil {
				return err
			}
			if flagVerbose {
				level = logger.LevelDebug
			}
			logger.Default().SetLevel(level)
			return nil
		},
		RunE: runBuild,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flagBaseURL, "base-url", scraper.BaseURL, "Prefix of the per-year archive pages")
	pf.StringVar(&flagIndexURL, "index-url", scraper.IndexURL, "Page listing the archive years")
	pf.DurationVar(&flagDelay, "delay", scraper.DefaultDelay, "Minimum time between page fetches")
	pf.BoolVar(&flagVerbose, "verbose", false, "Enable debug logging and detailed summaries")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn or error")

	f := cmd.Flags()
	f.StringVar(&flagOutput, "output", storage.DefaultPath, "Mapping CSV file to write")
	f.BoolVar(&flagStdout, "stdout", false, "Write the CSV to stdout instead of --output")
	f.IntVar(&flagStartYear, "start-year", scraper.FirstYear, "First year to fetch")
	f.BoolVar(&flagKeepGoing, "keep-going", false, "Skip years whose page cannot be fetched")
	f.StringVar(&flagOverrides, "overrides", "", "YAML override table to use instead of the built-in one")
	f.StringVar(&flagFormat, "format", "text", "Summary format: text or json")

	cmd.AddCommand(newYearsCmd(), newLinksCmd())

	return cmd
}

func newScraper() *scraper.Scraper {
	return scraper.New(
		scraper.WithBaseURL(flagBaseURL),
		scraper.WithIndexURL(flagIndexURL),
		scraper.WithDelay(flagDelay),
	)
}

func loadOverrides() ([]mapping.OverrideRule, error) {
	if flagOverrides == "" {
		return mapping.LoadOverrides()
	}
	return mapping.LoadOverridesFile(flagOverrides)
}

// runBuild is the main command logic
func runBuild(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	overrides, err := loadOverrides()
	if err != nil {
		return fmt.Errorf("loading overrides: %w", err)
	}
	logger.Debug("Loaded overrides", logger.Fields{"count": len(overrides)})

	sc := newScraper()
	started := time.Now()

	result, err := pipeline.Run(cmd.Context(), sc, pipeline.Options{
		IndexURL:  sc.IndexURL(),
		YearURL:   sc.YearURL,
		StartYear: flagStartYear,
		Registry:  pattern.Default(),
		Overrides: overrides,
		KeepGoing: flagKeepGoing,
	})
	if err != nil {
		return fmt.Errorf("building mapping: %w", err)
	}

	summary := &OutputResult{
		BuiltAt:          time.Now().UTC(),
		Elapsed:          time.Since(started).Round(time.Millisecond).String(),
		Rows:             result.Table.Len(),
		Documents:        result.Documents,
		Malformed:        result.Malformed,
		Collisions:       result.Collisions,
		OverridesApplied: result.OverridesApplied,
		Metrics:          logger.GetMetricsSnapshot(),
	}
	if n := len(result.Years); n > 0 {
		summary.FirstYear, summary.LastYear = result.Years[0], result.Years[n-1]
	}
	for _, f := range result.Failed {
		summary.FailedYears = append(summary.FailedYears, f.Year)
	}

	// With --stdout the CSV owns stdout, so the summary moves to stderr.
	summaryOut := cmd.OutOrStdout()
	if flagStdout {
		if err := storage.WriteCSV(cmd.OutOrStdout(), result.Table); err != nil {
			return fmt.Errorf("writing mapping: %w", err)
		}
		summaryOut = cmd.ErrOrStderr()
	} else {
		if err := saveMapping(result.Table, summary); err != nil {
			return err
		}
	}

	if err := WriteOutput(summaryOut, summary, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// saveMapping writes the table to --output, recording what changed since the last file.
func saveMapping(table *mapping.Table, summary *OutputResult) error {
	store, err := storage.New(flagOutput)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	previous, err := store.Load()
	if err != nil {
		// An unreadable previous file is replaced, not fatal.
		logger.Warn("Could not read previous mapping", logger.Fields{"path": store.Path(), "error": err.Error()})
		previous = nil
	}

	diff := mapping.Diff(previous, table)
	for _, c := range diff.Changed {
		logger.Info("Row changed", logger.Fields{
			"gb_pub_date": c.After.GBPubDate.String(),
			"before":      fmt.Sprintf("%s,%s", c.Before.FOMCDate, c.Before.GBDate),
			"after":       fmt.Sprintf("%s,%s", c.After.FOMCDate, c.After.GBDate),
		})
	}

	if err := store.Save(table); err != nil {
		return fmt.Errorf("saving mapping: %w", err)
	}
	logger.Info("Saved mapping", logger.Fields{"path": store.Path(), "rows": table.Len()})

	summary.Output = store.Path()
	summary.Diff = diff
	return nil
}

func newYearsCmd() *cobra.Command {
	var startYear int

	cmd := &cobra.Command{
		Use:   "years",
		Short: "List the archive years linked from the index page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := newScraper()

			years, err := sc.DiscoverYears(cmd.Context())
			if err != nil {
				return fmt.Errorf("discovering years: %w", err)
			}

			span, err := scraper.YearRange(years, startYear)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Linked years: %s\n", joinInts(years))
			fmt.Fprintf(out, "Fetch range:  %d-%d (%d pages)\n", span[0], span[len(span)-1], len(span))
			return nil
		},
	}

	cmd.Flags().IntVar(&startYear, "start-year", scraper.FirstYear, "First year to fetch")
	return cmd
}

func newLinksCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "links YEAR",
		Short: "List the Greenbook and Tealbook documents on one year page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year: %s", args[0])
			}

			f := OutputFormat(strings.ToLower(format))
			if f != FormatText && f != FormatJSON {
				return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", format)
			}

			sc := newScraper()
			links, err := sc.FetchLinks(cmd.Context(), sc.YearURL(year), pattern.Default())
			if err != nil {
				return fmt.Errorf("listing documents for %d: %w", year, err)
			}

			return WriteLinks(cmd.OutOrStdout(), links, f)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	return cmd
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		logger.Error("Run failed", nil, err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
