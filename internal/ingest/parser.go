package ingest

import (
	"io"

	"energy_dashboard/internal/model"
)

// Parser reads meter data from a source and returns cleaned readings.
type Parser interface {
	Parse(r io.Reader) ([]model.RawReading, LoadStats, error)
}

// LoadStats counts what happened to the data rows of one source.
type LoadStats struct {
	Rows         int // data rows read, header excluded
	BadTimestamp int // dropped: Date+Time did not parse
	MissingValue int // dropped: at least one numeric field missing or malformed
}

// Kept returns the number of rows that survived cleaning.
func (s LoadStats) Kept() int {
	return s.Rows - s.BadTimestamp - s.MissingValue
}
