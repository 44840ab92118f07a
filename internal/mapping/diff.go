package mapping

// Change describes a row present in both tables with different contents.
type Change struct {
	Before Record `json:"before"`
	After  Record `json:"after"`
}

// DiffResult contains the results of comparing two tables.
type DiffResult struct {
	Added   []Record `json:"added"`
	Removed []Record `json:"removed"`
	Changed []Change `json:"changed"`
}

// Empty reports whether the tables were identical.
func (d *DiffResult) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Diff compares the current table against a previous one, usually the last file written.
// A nil previous table counts as empty. Results are ordered by publication date.
func Diff(previous, current *Table) *DiffResult {
	result := &DiffResult{
		Added:   make([]Record, 0),
		Removed: make([]Record, 0),
		Changed: make([]Change, 0),
	}

	if previous == nil {
		previous = NewTable()
	}
	if current == nil {
		current = NewTable()
	}

	for _, rec := range current.Records() {
		prev, exists := previous.Get(rec.GBPubDate)
		if !exists {
			result.Added = append(result.Added, rec)
			continue
		}
		if prev != rec {
			result.Changed = append(result.Changed, Change{Before: prev, After: rec})
		}
	}

	for _, rec := range previous.Records() {
		if _, exists := current.Get(rec.GBPubDate); !exists {
			result.Removed = append(result.Removed, rec)
		}
	}

	return result
}
