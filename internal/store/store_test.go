package store

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energy_dashboard/internal/model"
)

var startTime = time.Date(2006, 12, 16, 17, 0, 0, 0, time.UTC)

func makeRecords(values []float64, start time.Time) []model.HourlyRecord {
	records := make([]model.HourlyRecord, len(values))
	for i, v := range values {
		ts := start.Add(time.Duration(i) * time.Hour)
		records[i] = model.HourlyRecord{
			Timestamp:            ts,
			GlobalActivePower:    v,
			EnergyConsumptionKWh: v,
			TimeOfDay:            ts.Hour(),
			Month:                int(ts.Month()),
			TimeCategory:         model.CategoryForHour(ts.Hour()),
		}
	}
	return records
}

func TestNew_SortsRecords(t *testing.T) {
	records := makeRecords([]float64{1, 2, 3}, startTime)
	reversed := []model.HourlyRecord{records[2], records[0], records[1]}

	table, err := New(reversed)
	require.NoError(t, err)

	got := table.Records()
	require.Len(t, got, 3)
	assert.InDelta(t, 1.0, got[0].EnergyConsumptionKWh, 1e-9)
	assert.InDelta(t, 2.0, got[1].EnergyConsumptionKWh, 1e-9)
	assert.InDelta(t, 3.0, got[2].EnergyConsumptionKWh, 1e-9)
}

func TestNew_RejectsDuplicates(t *testing.T) {
	records := makeRecords([]float64{1, 2}, startTime)
	records = append(records, records[0])

	_, err := New(records)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateHour))
}

func TestHourlyTable_RecordsIsCopy(t *testing.T) {
	table, err := New(makeRecords([]float64{1, 2}, startTime))
	require.NoError(t, err)

	got := table.Records()
	got[0].EnergyConsumptionKWh = 99

	assert.InDelta(t, 1.0, table.Records()[0].EnergyConsumptionKWh, 1e-9)
}

func TestHourlyTable_TimeRange(t *testing.T) {
	table, err := New(makeRecords([]float64{1, 2, 3}, startTime))
	require.NoError(t, err)

	tr, ok := table.TimeRange()
	require.True(t, ok)
	assert.Equal(t, startTime, tr.Start)
	assert.Equal(t, startTime.Add(2*time.Hour), tr.End)

	empty, err := New(nil)
	require.NoError(t, err)
	_, ok = empty.TimeRange()
	assert.False(t, ok)
	assert.True(t, empty.Empty())
}

func TestHourlyTable_InRange(t *testing.T) {
	table, err := New(makeRecords([]float64{1, 2, 3, 4, 5}, startTime))
	require.NoError(t, err)

	result := table.InRange(startTime.Add(time.Hour), startTime.Add(3*time.Hour))
	require.Len(t, result, 2)
	assert.InDelta(t, 2.0, result[0].EnergyConsumptionKWh, 1e-9)
	assert.InDelta(t, 3.0, result[1].EnergyConsumptionKWh, 1e-9)

	assert.Empty(t, table.InRange(startTime.Add(10*time.Hour), startTime.Add(11*time.Hour)))
}

func TestHourlyTable_Filter(t *testing.T) {
	// 17:00 .. 04:00 next day
	table, err := New(makeRecords([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, startTime))
	require.NoError(t, err)

	peak := table.Filter(model.CategoryPeakEvening)
	assert.Equal(t, 5, peak.Len())
	peak.Each(func(r model.HourlyRecord) {
		assert.Equal(t, model.CategoryPeakEvening, r.TimeCategory)
	})

	night := table.Filter(model.CategoryOffPeakNight)
	assert.Equal(t, 7, night.Len())

	assert.Equal(t, 0, table.Filter(model.CategoryMidDay).Len())
	assert.Equal(t, 0, table.Filter(model.TimeCategory("bogus")).Len())
	assert.Same(t, table, table.Filter(model.CategoryAll))
}

func TestHourlyTable_EachDoesNotExposeStorage(t *testing.T) {
	table, err := New(makeRecords([]float64{1, 2, 3}, startTime))
	require.NoError(t, err)

	table.Each(func(r model.HourlyRecord) {
		r.EnergyConsumptionKWh = -1
		r.TimeCategory = model.CategoryMidDay
	})

	for _, r := range table.Records() {
		assert.NotEqual(t, -1.0, r.EnergyConsumptionKWh)
		assert.NotEqual(t, model.CategoryMidDay, r.TimeCategory)
	}
}
