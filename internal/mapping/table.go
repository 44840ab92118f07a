package mapping

import (
	"sort"
)

// CollisionFunc is called when a record replaces a different row with the same key.
type CollisionFunc func(prev, next Record)

// Table is the Greenbook/FOMC mapping, one row per publication date.
// Later writes to the same key replace earlier ones.
type Table struct {
	rows        map[Date]Record
	onCollision CollisionFunc
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		rows: make(map[Date]Record),
	}
}

// OnCollision registers fn to be told about overwritten rows.
func (t *Table) OnCollision(fn CollisionFunc) {
	t.onCollision = fn
}

// Put stores rec under rec.GBPubDate, falling back to rec.GBDate when the
// publication date is unset.
func (t *Table) Put(rec Record) {
	if rec.GBPubDate.IsZero() {
		rec.GBPubDate = rec.GBDate
	}

	if prev, exists := t.rows[rec.GBPubDate]; exists && prev != rec && t.onCollision != nil {
		t.onCollision(prev, rec)
	}

	t.rows[rec.GBPubDate] = rec
}

// Get returns the row stored under key.
func (t *Table) Get(key Date) (Record, bool) {
	rec, ok := t.rows[key]
	return rec, ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Keys returns the publication dates in ascending order.
func (t *Table) Keys() []Date {
	keys := make([]Date, 0, len(t.rows))
	for k := range t.rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

// Records returns all rows ordered by publication date.
func (t *Table) Records() []Record {
	keys := t.Keys()
	records := make([]Record, 0, len(keys))
	for _, k := range keys {
		records = append(records, t.rows[k])
	}
	return records
}

// Equal reports whether both tables hold the same rows, irrespective of insertion order.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if len(t.rows) != len(other.rows) {
		return false
	}
	for k, rec := range t.rows {
		if o, ok := other.rows[k]; !ok || o != rec {
			return false
		}
	}
	return true
}

// Aggregate flattens per-year record lists, in the order given, into one table.
// Callers pass years in ascending order so the last-processed record wins a
// shared publication date.
func Aggregate(yearly [][]Record, onCollision CollisionFunc) *Table {
	t := NewTable()
	t.OnCollision(onCollision)

	for _, records := range yearly {
		for _, rec := range records {
			t.Put(rec)
		}
	}

	return t
}
