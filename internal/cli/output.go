package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/gbfomc/internal/mapping"
	"github.com/pfrederiksen/gbfomc/internal/scraper"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult summarizes a build
type OutputResult struct {
	BuiltAt          time.Time              `json:"built_at"`
	Elapsed          string                 `json:"elapsed"`
	Output           string                 `json:"output,omitempty"`
	FirstYear        int                    `json:"first_year"`
	LastYear         int                    `json:"last_year"`
	Rows             int                    `json:"rows"`
	Documents        int                    `json:"documents"`
	Malformed        []string               `json:"malformed,omitempty"`
	Collisions       int                    `json:"collisions"`
	OverridesApplied int                    `json:"overrides_applied"`
	FailedYears      []int                  `json:"failed_years,omitempty"`
	Diff             *mapping.DiffResult    `json:"diff,omitempty"`
	Metrics          map[string]interface{} `json:"metrics,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	fmt.Fprintf(w, "Years %d-%d: %d documents, %d rows\n", result.FirstYear, result.LastYear, result.Documents, result.Rows)
	fmt.Fprintf(w, "Overrides applied: %d\n", result.OverridesApplied)

	if result.Collisions > 0 {
		fmt.Fprintf(w, "Publication dates seen twice: %d (later record kept)\n", result.Collisions)
	}

	if len(result.Malformed) > 0 {
		fmt.Fprintf(w, "Skipped %d malformed document names:\n", len(result.Malformed))
		for _, m := range result.Malformed {
			fmt.Fprintf(w, "  %s\n", m)
		}
	}

	if len(result.FailedYears) > 0 {
		fmt.Fprintf(w, "Failed years: %v\n", result.FailedYears)
	}

	if result.Diff != nil {
		if result.Diff.Empty() {
			fmt.Fprintln(w, "No changes since the previous mapping.")
		} else {
			fmt.Fprintf(w, "Changes: %d added, %d removed, %d changed\n",
				len(result.Diff.Added), len(result.Diff.Removed), len(result.Diff.Changed))
			if verbose {
				for _, r := range result.Diff.Added {
					fmt.Fprintf(w, "  + %s,%s,%s\n", r.FOMCDate, r.GBDate, r.GBPubDate)
				}
				for _, r := range result.Diff.Removed {
					fmt.Fprintf(w, "  - %s,%s,%s\n", r.FOMCDate, r.GBDate, r.GBPubDate)
				}
				for _, c := range result.Diff.Changed {
					fmt.Fprintf(w, "  ~ %s: %s,%s -> %s,%s\n", c.After.GBPubDate,
						c.Before.FOMCDate, c.Before.GBDate, c.After.FOMCDate, c.After.GBDate)
				}
			}
		}
	}

	if result.Output != "" {
		fmt.Fprintf(w, "Wrote %s\n", result.Output)
	}

	if verbose {
		fmt.Fprintf(w, "Elapsed: %s\n", result.Elapsed)
	}

	return nil
}

// WriteLinks writes the documents found on a year page
func WriteLinks(w io.Writer, links []scraper.DocumentLink, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, links)
	case FormatText:
		if len(links) == 0 {
			fmt.Fprintln(w, "No documents found.")
			return nil
		}
		for _, l := range links {
			fmt.Fprintf(w, "%-10s %s\n", l.Convention, l.URL)
		}
		fmt.Fprintf(w, "\nTotal: %d documents\n", len(links))
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
