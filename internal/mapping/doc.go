// Package mapping holds the Greenbook/FOMC cross-reference table and the logic that builds it.
//
// Document filenames published on the Federal Reserve's historical pages embed two dates:
// the FOMC meeting date and the date of the Greenbook (later Tealbook) itself. ParseFilename
// recovers that pair as a Record, Aggregate collects records into a Table keyed by the
// document's publication date, and ApplyOverrides rewrites the handful of entries where the
// Philadelphia Fed's Greenbook Data Set records a different date than the one published.
//
// All dates are calendar dates in YYYYMMDD form. They are always rendered as 8-digit,
// zero-padded strings so nothing downstream has to guess at their encoding.
package mapping
