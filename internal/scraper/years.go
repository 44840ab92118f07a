package scraper

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

// FirstYear is the first year of the historical record.
const FirstYear = 1967

// ErrNoYears is returned when the index page links no year pages.
var ErrNoYears = errors.New("no archive years found")

var yearPagePattern = regexp.MustCompile(`fomchistorical([0-9]{4})\.htm`)

// DiscoverYears returns the distinct years linked from an index page, ascending.
func DiscoverYears(content string) []int {
	seen := make(map[int]bool)
	years := make([]int, 0)

	for _, m := range yearPagePattern.FindAllStringSubmatch(content, -1) {
		year, err := strconv.Atoi(m[1])
		if err != nil || seen[year] {
			continue
		}
		seen[year] = true
		years = append(years, year)
	}

	sort.Ints(years)
	return years
}

// YearRange returns every year from start through the latest discovered year.
// Years missing from the index inside that span are still included.
func YearRange(discovered []int, start int) ([]int, error) {
	if len(discovered) == 0 {
		return nil, ErrNoYears
	}

	last := discovered[0]
	for _, y := range discovered[1:] {
		if y > last {
			last = y
		}
	}

	if last < start {
		return nil, fmt.Errorf("latest year %d is before start year %d", last, start)
	}

	years := make([]int, 0, last-start+1)
	for y := start; y <= last; y++ {
		years = append(years, y)
	}
	return years, nil
}
