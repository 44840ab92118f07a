package mapping

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrMissingOverrideTarget is returned when an override names a key the table does not have.
// It usually means the curated list has gone stale relative to the source pages.
var ErrMissingOverrideTarget = errors.New("override target not in table")

//go:embed overrides.yaml
var curatedOverrides []byte

// Field names a Record column an override can rewrite. Values match the CSV header.
type Field string

const (
	FieldGBDate   Field = "GBdate"
	FieldFOMCDate Field = "FOMCdate"
)

// OverrideRule replaces one field of the row stored under Key.
type OverrideRule struct {
	Key    Date   `yaml:"key"`
	Field  Field  `yaml:"field"`
	Value  Date   `yaml:"value"`
	Reason string `yaml:"reason"`
}

type overrideFile struct {
	Overrides []OverrideRule `yaml:"overrides"`
}

// LoadOverrides returns the curated override table shipped with the binary.
func LoadOverrides() ([]OverrideRule, error) {
	return ParseOverrides(curatedOverrides)
}

// LoadOverridesFile reads an override table from disk in the same format as the curated one.
func LoadOverridesFile(path string) ([]OverrideRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading overrides: %w", err)
	}
	return ParseOverrides(data)
}

// ParseOverrides decodes and validates a YAML override table.
func ParseOverrides(data []byte) ([]OverrideRule, error) {
	var file overrideFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing overrides: %w", err)
	}

	for i, rule := range file.Overrides {
		if rule.Key.IsZero() || rule.Value.IsZero() {
			return nil, fmt.Errorf("override %d: key and value are required", i)
		}
		switch rule.Field {
		case FieldGBDate, FieldFOMCDate:
		default:
			return nil, fmt.Errorf("override %d (%s): unknown field %q", i, rule.Key, rule.Field)
		}
	}

	return file.Overrides, nil
}

// Apply rewrites rule.Field of rec.
func (rule OverrideRule) Apply(rec Record) Record {
	switch rule.Field {
	case FieldGBDate:
		rec.GBDate = rule.Value
	case FieldFOMCDate:
		rec.FOMCDate = rule.Value
	}
	return rec
}

// ApplyOverrides rewrites the rows named by rules. Every key must already be in the
// table: if any is missing, nothing is changed and the returned error lists them all.
// Each row keeps its original publication date as GBPubDate.
func (t *Table) ApplyOverrides(rules []OverrideRule) error {
	var missing []error
	for _, rule := range rules {
		if _, ok := t.rows[rule.Key]; !ok {
			missing = append(missing, fmt.Errorf("%w: %s (%s)", ErrMissingOverrideTarget, rule.Key, rule.Field))
		}
	}
	if len(missing) > 0 {
		return errors.Join(missing...)
	}

	for _, rule := range rules {
		rec := rule.Apply(t.rows[rule.Key])
		rec.GBPubDate = rule.Key
		t.rows[rule.Key] = rec
	}

	return nil
}
