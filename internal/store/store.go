package store

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"energy_dashboard/internal/model"
)

// ErrDuplicateHour is returned when two records share an hour timestamp.
var ErrDuplicateHour = errors.New("duplicate hourly timestamp")

// HourlyTable holds hourly records sorted by timestamp with no duplicates.
// It is never modified after construction, so it is safe to share between
// goroutines without locking.
type HourlyTable struct {
	records []model.HourlyRecord
}

// New copies and sorts records, rejecting duplicate timestamps.
func New(records []model.HourlyRecord) (*HourlyTable, error) {
	sorted := make([]model.HourlyRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	for i := 1; i < len(sorted); i++ {
		if !sorted[i].Timestamp.After(sorted[i-1].Timestamp) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateHour, sorted[i].Timestamp.Format(time.RFC3339))
		}
	}

	return &HourlyTable{records: sorted}, nil
}

// Len returns the number of hourly records.
func (t *HourlyTable) Len() int {
	return len(t.records)
}

func (t *HourlyTable) Empty() bool {
	return len(t.records) == 0
}

// Records returns a copy of all records in timestamp order.
func (t *HourlyTable) Records() []model.HourlyRecord {
	out := make([]model.HourlyRecord, len(t.records))
	copy(out, t.records)
	return out
}

// Each calls fn with a copy of every record in order.
func (t *HourlyTable) Each(fn func(r model.HourlyRecord)) {
	for _, r := range t.records {
		fn(r)
	}
}

// TimeRange returns the first and last hour covered by the table.
func (t *HourlyTable) TimeRange() (model.TimeRange, bool) {
	if len(t.records) == 0 {
		return model.TimeRange{}, false
	}
	return model.TimeRange{
		Start: t.records[0].Timestamp,
		End:   t.records[len(t.records)-1].Timestamp,
	}, true
}

// InRange returns records between start (inclusive) and end (exclusive).
func (t *HourlyTable) InRange(start, end time.Time) []model.HourlyRecord {
	all := t.records
	if len(all) == 0 {
		return nil
	}

	startIdx := sort.Search(len(all), func(i int) bool {
		return !all[i].Timestamp.Before(start)
	})
	endIdx := sort.Search(len(all), func(i int) bool {
		return !all[i].Timestamp.Before(end)
	})

	if startIdx >= endIdx {
		return nil
	}

	result := make([]model.HourlyRecord, endIdx-startIdx)
	copy(result, all[startIdx:endIdx])
	return result
}

// Filter returns the records whose time category equals c. CategoryAll
// returns the receiver itself; an unknown category yields an empty table.
func (t *HourlyTable) Filter(c model.TimeCategory) *HourlyTable {
	if c == model.CategoryAll {
		return t
	}

	var subset []model.HourlyRecord
	for _, r := range t.records {
		if r.TimeCategory == c {
			subset = append(subset, r)
		}
	}
	// Already sorted and unique.
	return &HourlyTable{records: subset}
}
