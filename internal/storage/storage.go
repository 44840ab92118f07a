package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/gbfomc/internal/mapping"
)

// DefaultPath is where the mapping is written when no path is given.
const DefaultPath = "intermediates/GBFOMCmapping.csv"

// Header is the fixed column order of the mapping file.
var Header = []string{"FOMCdate", "GBdate", "GBpubDate"}

// WriteCSV writes the table with a header row, ordered by GBpubDate.
func WriteCSV(w io.Writer, table *mapping.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, rec := range table.Records() {
		row := []string{rec.FOMCDate.String(), rec.GBDate.String(), rec.GBPubDate.String()}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %s: %w", rec.GBPubDate, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

// ReadCSV parses a file written by WriteCSV.
func ReadCSV(r io.Reader) (*mapping.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("mapping file is empty")
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i, name := range Header {
		if header[i] != name {
			return nil, fmt.Errorf("unexpected header %q, want %q", strings.Join(header, ","), strings.Join(Header, ","))
		}
	}

	table := mapping.NewTable()
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		rec, err := parseRow(row)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		table.Put(rec)
	}

	return table, nil
}

func parseRow(row []string) (mapping.Record, error) {
	var dates [3]mapping.Date
	for i, field := range row {
		d, err := mapping.ParseDate(strings.TrimSpace(field))
		if err != nil {
			return mapping.Record{}, fmt.Errorf("%s: %w", Header[i], err)
		}
		dates[i] = d
	}
	return mapping.Record{FOMCDate: dates[0], GBDate: dates[1], GBPubDate: dates[2]}, nil
}

// Storage persists the mapping to a single file
type Storage struct {
	path string
}

// New creates a new Storage instance, creating the parent directory if needed.
func New(path string) (*Storage, error) {
	if path == "" {
		path = DefaultPath
	}

	// Expand ~ to home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Storage{
		path: path,
	}, nil
}

// Path returns the file the mapping is stored in.
func (s *Storage) Path() string {
	return s.path
}

// Load reads the stored mapping. A missing file yields an empty table.
func (s *Storage) Load() (*mapping.Table, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return mapping.NewTable(), nil
		}
		return nil, fmt.Errorf("opening mapping: %w", err)
	}
	defer f.Close()

	table, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return table, nil
}

// Save writes the table, replacing any previous file.
func (s *Storage) Save(table *mapping.Table) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // nolint:errcheck

	if err := WriteCSV(tmp, table); err != nil {
		tmp.Close() // nolint:errcheck
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("writing mapping: %w", err)
	}
	return nil
}
