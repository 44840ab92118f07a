package mapping

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrMalformedRecord is returned when a recognized filename does not carry two usable dates.
var ErrMalformedRecord = errors.New("malformed record")

var (
	// The meeting date follows the "fomc" prefix.
	meetingPattern = regexp.MustCompile(`(?i)fomc([0-9]{8})`)
	// The document date is the last thing before the extension.
	documentPattern = regexp.MustCompile(`(?i)([0-9]{8}).pdf`)
)

// Record links one FOMC meeting to the Greenbook prepared for it.
type Record struct {
	// FOMCDate is the last day of the meeting.
	FOMCDate Date `json:"fomc_date"`
	// GBDate is the Greenbook date used by the Philadelphia Fed's Greenbook Data Set.
	GBDate Date `json:"gb_date"`
	// GBPubDate is the date the document was first published. It is the table key.
	GBPubDate Date `json:"gb_pub_date"`
}

// ParseFilename extracts the meeting and document dates from a Greenbook filename such as
// fomc19920826greenbook19920819.pdf. GBPubDate starts out equal to GBDate.
func ParseFilename(name string) (Record, error) {
	meeting := meetingPattern.FindStringSubmatch(name)
	if meeting == nil {
		return Record{}, fmt.Errorf("%w: %q has no meeting date", ErrMalformedRecord, name)
	}

	document := documentPattern.FindStringSubmatch(name)
	if document == nil {
		return Record{}, fmt.Errorf("%w: %q has no document date", ErrMalformedRecord, name)
	}

	fomcDate, err := ParseDate(meeting[1])
	if err != nil {
		return Record{}, fmt.Errorf("%w: %q meeting date: %v", ErrMalformedRecord, name, err)
	}

	gbDate, err := ParseDate(document[1])
	if err != nil {
		return Record{}, fmt.Errorf("%w: %q document date: %v", ErrMalformedRecord, name, err)
	}

	return Record{
		FOMCDate:  fomcDate,
		GBDate:    gbDate,
		GBPubDate: gbDate,
	}, nil
}

// ParseFilenames parses every name, returning the good records in input order
// and one error per name that could not be parsed.
func ParseFilenames(names []string) ([]Record, []error) {
	records := make([]Record, 0, len(names))
	var errs []error

	for _, name := range names {
		rec, err := ParseFilename(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		records = append(records, rec)
	}

	return records, errs
}
