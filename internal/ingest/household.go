package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"energy_dashboard/internal/model"
)

var (
	// ErrMissingColumn is returned when the header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrNoUsableRows is returned when no row survives cleaning.
	ErrNoUsableRows = errors.New("no usable rows")
)

// Date is day-first and neither day nor month is zero-padded in the export.
const timestampLayout = "2/1/2006 15:04:05"

const (
	colDate = iota
	colTime
	colActivePower
	colReactivePower
	colVoltage
	colIntensity
	colSub1
	colSub2
	colSub3
	numColumns
)

var requiredColumns = [numColumns]string{
	"Date",
	"Time",
	"Global_active_power",
	"Global_reactive_power",
	"Voltage",
	"Global_intensity",
	"Sub_metering_1",
	"Sub_metering_2",
	"Sub_metering_3",
}

// HouseholdParser parses the semicolon-delimited household power consumption export.
//
// Expected format:
//
//	Date;Time;Global_active_power;Global_reactive_power;Voltage;Global_intensity;Sub_metering_1;Sub_metering_2;Sub_metering_3
//	16/12/2006;17:24:00;4.216;0.418;234.840;18.400;0.000;1.000;17.000
//
// Rows with an unparseable timestamp or any missing numeric field ("?" in the
// raw export) are dropped and counted in LoadStats.
type HouseholdParser struct{}

var _ Parser = (*HouseholdParser)(nil)

// LoadFile reads and cleans the export at path. A missing file, a bad header
// and a file with no usable rows are all errors.
func LoadFile(path string) ([]model.RawReading, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("opening data file: %w", err)
	}
	defer f.Close()

	readings, stats, err := (&HouseholdParser{}).Parse(bufio.NewReaderSize(f, 1<<20))
	if err != nil {
		return nil, stats, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(readings) == 0 {
		return nil, stats, fmt.Errorf("%s: %w (%d rows read)", path, ErrNoUsableRows, stats.Rows)
	}
	return readings, stats, nil
}

func (p *HouseholdParser) Parse(r io.Reader) ([]model.RawReading, LoadStats, error) {
	var stats LoadStats

	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, stats, fmt.Errorf("reading CSV header: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, stats, err
	}

	var readings []model.RawReading
	lineNum := 1 // header was line 1

	for {
		lineNum++
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			// A malformed row is dropped like one with a bad numeric token.
			stats.Rows++
			stats.MissingValue++
			continue
		}
		if err != nil {
			return nil, stats, fmt.Errorf("reading CSV line %d: %w", lineNum, err)
		}
		stats.Rows++

		ts, ok := parseTimestamp(field(record, idx[colDate]), field(record, idx[colTime]))
		if !ok {
			stats.BadTimestamp++
			continue
		}

		var values [numColumns]float64
		complete := true
		for c := colActivePower; c < numColumns; c++ {
			v, ok := parseNumeric(field(record, idx[c]))
			if !ok {
				complete = false
				break
			}
			values[c] = v
		}
		if !complete {
			stats.MissingValue++
			continue
		}

		readings = append(readings, model.RawReading{
			Timestamp:           ts,
			GlobalActivePower:   values[colActivePower],
			GlobalReactivePower: values[colReactivePower],
			Voltage:             values[colVoltage],
			GlobalIntensity:     values[colIntensity],
			SubMetering1:        values[colSub1],
			SubMetering2:        values[colSub2],
			SubMetering3:        values[colSub3],
		})
	}

	return readings, stats, nil
}

// columnIndex locates every required column by name. Extra columns are ignored.
func columnIndex(header []string) ([numColumns]int, error) {
	var idx [numColumns]int
	pos := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}

	for c, name := range requiredColumns {
		i, ok := pos[name]
		if !ok {
			return idx, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
		idx[c] = i
	}
	return idx, nil
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseTimestamp(date, clock string) (time.Time, bool) {
	if date == "" || clock == "" {
		return time.Time{}, false
	}
	ts, err := time.ParseInLocation(timestampLayout, date+" "+clock, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// parseNumeric maps placeholder tokens such as "?", NaN and infinities to
// missing.
func parseNumeric(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
