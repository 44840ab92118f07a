// Package storage writes and reads the Greenbook/FOMC mapping as CSV.
//
// The file has a header row and three columns, FOMCdate, GBdate and GBpubDate, each an
// 8-digit zero-padded YYYYMMDD date. Rows are ordered by GBpubDate and carry no index column.
// Saves go through a temporary file in the same directory followed by a rename, so a failed
// run never leaves a half-written mapping behind.
package storage
