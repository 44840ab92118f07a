// Package pattern recognizes Greenbook and Tealbook document filenames in page source.
//
// The Federal Reserve has used several naming conventions for these documents over the
// years. Each convention is a named, case-insensitive regular expression held in an ordered
// Registry; Extract runs them in registration order and concatenates the matches.
package pattern

import (
	"fmt"
	"regexp"
)

// Convention is one historical document naming scheme.
type Convention struct {
	Name string
	re   *regexp.Regexp
}

// FindAll returns every match of the convention in content, in page order.
func (c Convention) FindAll(content string) []string {
	return c.re.FindAllString(content, -1)
}

// MatchString reports whether s contains a filename of this convention.
func (c Convention) MatchString(s string) bool {
	return c.re.MatchString(s)
}

// Find returns the first filename of this convention in s, or "".
func (c Convention) Find(s string) string {
	return c.re.FindString(s)
}

// Registry is an ordered list of conventions.
type Registry struct {
	conventions []Convention
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Default returns a registry with the four conventions used on the historical pages,
// oldest first.
func Default() *Registry {
	r := NewRegistry()
	// Single-part Greenbook.
	r.MustRegister("greenbook", `fomc[0-9]{8}greenbook[0-9]{8}.pdf`)
	// Greenbook split into parts; part 1 carries the forecast.
	r.MustRegister("gbpt1", `fomc[0-9]{8}gbpt1[0-9]{8}.pdf`)
	// Renamed to Tealbook; book A carries the forecast.
	r.MustRegister("tealbooka", `fomc[0-9]{8}tealbooka[0-9]{8}.pdf`)
	// Special or interim Greenbook.
	r.MustRegister("gbspecial", `fomc[0-9]{8}gbspecial[0-9]{8}.pdf`)
	return r
}

// Register appends a convention. Matching is case-insensitive.
func (r *Registry) Register(name, expr string) error {
	if name == "" {
		return fmt.Errorf("convention name is required")
	}
	for _, c := range r.conventions {
		if c.Name == name {
			return fmt.Errorf("convention %q already registered", name)
		}
	}

	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return fmt.Errorf("compiling convention %q: %w", name, err)
	}

	r.conventions = append(r.conventions, Convention{Name: name, re: re})
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name, expr string) {
	if err := r.Register(name, expr); err != nil {
		panic(err)
	}
}

// Conventions returns the registered conventions in order.
func (r *Registry) Conventions() []Convention {
	out := make([]Convention, len(r.conventions))
	copy(out, r.conventions)
	return out
}

// Extract returns all filenames found in content: every match of the first convention,
// then every match of the second, and so on. Repeated filenames are kept.
func (r *Registry) Extract(content string) []string {
	names := make([]string, 0)
	for _, c := range r.conventions {
		names = append(names, c.FindAll(content)...)
	}
	return names
}

// Classify returns the first convention matching s.
func (r *Registry) Classify(s string) (Convention, bool) {
	for _, c := range r.conventions {
		if c.MatchString(s) {
			return c, true
		}
	}
	return Convention{}, false
}
