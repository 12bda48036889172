package resample

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energy_dashboard/internal/model"
)

var base = time.Date(2007, 7, 14, 21, 0, 0, 0, time.UTC)

// twoHourReadings returns 24 readings in each of two consecutive hours.
// Hour one: active power i*0.1 for i in 0..23, hour two: 5 + i*0.2.
func twoHourReadings() []model.RawReading {
	var readings []model.RawReading
	for h := 0; h < 2; h++ {
		for i := 0; i < 24; i++ {
			fi := float64(i)
			r := model.RawReading{
				Timestamp:           base.Add(time.Duration(h)*time.Hour + time.Duration(i*2)*time.Minute + 30*time.Second),
				GlobalActivePower:   fi * 0.1,
				GlobalReactivePower: 0.05,
				Voltage:             230 + fi,
				GlobalIntensity:     fi / 3,
				SubMetering1:        0,
				SubMetering2:        fi,
				SubMetering3:        float64(h) * 17,
			}
			if h == 1 {
				r.GlobalActivePower = 5 + fi*0.2
			}
			readings = append(readings, r)
		}
	}
	return readings
}

func TestHourly_TwoHourScenario(t *testing.T) {
	readings := twoHourReadings()
	require.Len(t, readings, 48)

	records := Hourly(readings)
	require.Len(t, records, 2)

	first, second := records[0], records[1]
	assert.Equal(t, base, first.Timestamp)
	assert.Equal(t, base.Add(time.Hour), second.Timestamp)

	// mean(0..23) = 11.5
	assert.InDelta(t, 1.15, first.GlobalActivePower, 1e-6)
	assert.InDelta(t, 7.3, second.GlobalActivePower, 1e-6)
	assert.InDelta(t, 0.05, first.GlobalReactivePower, 1e-6)
	assert.InDelta(t, 241.5, first.Voltage, 1e-6)
	assert.InDelta(t, 11.5/3, first.GlobalIntensity, 1e-6)
	assert.InDelta(t, 11.5, first.SubMetering2, 1e-6)
	assert.InDelta(t, 0.0, first.SubMetering3, 1e-6)
	assert.InDelta(t, 17.0, second.SubMetering3, 1e-6)
}

func TestHourly_DerivedFields(t *testing.T) {
	records := Hourly(twoHourReadings())
	require.Len(t, records, 2)

	first, second := records[0], records[1]
	assert.Equal(t, first.GlobalActivePower, first.EnergyConsumptionKWh)
	assert.Equal(t, 21, first.TimeOfDay)
	assert.Equal(t, 22, second.TimeOfDay)
	assert.Equal(t, 7, first.Month)
	assert.False(t, first.HasAC)
	assert.True(t, second.HasAC)
	assert.Equal(t, model.CategoryPeakEvening, first.TimeCategory)
	assert.Equal(t, model.CategoryOffPeakNight, second.TimeCategory)
}

func TestHourly_OrderIndependent(t *testing.T) {
	readings := twoHourReadings()
	expected := Hourly(readings)

	rng := rand.New(rand.NewPCG(7, 0))
	for trial := 0; trial < 5; trial++ {
		shuffled := make([]model.RawReading, len(readings))
		copy(shuffled, readings)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got := Hourly(shuffled)
		require.Len(t, got, len(expected))
		for i := range got {
			assert.Equal(t, expected[i].Timestamp, got[i].Timestamp)
			assert.InDelta(t, expected[i].GlobalActivePower, got[i].GlobalActivePower, 1e-9)
		}
		for i := 1; i < len(got); i++ {
			assert.True(t, got[i].Timestamp.After(got[i-1].Timestamp))
		}
	}
}

func TestHourly_SkipsEmptyHours(t *testing.T) {
	readings := []model.RawReading{
		{Timestamp: base, GlobalActivePower: 1},
		{Timestamp: base.Add(5*time.Hour + 10*time.Minute), GlobalActivePower: 3},
	}

	records := Hourly(readings)
	require.Len(t, records, 2)
	assert.Equal(t, base.Add(5*time.Hour), records[1].Timestamp)
}

func TestHourly_Empty(t *testing.T) {
	assert.Empty(t, Hourly(nil))
}

func TestDerive_MidnightAndBoundaryHours(t *testing.T) {
	for _, tc := range []struct {
		hour int
		cat  model.TimeCategory
	}{
		{0, model.CategoryOffPeakNight},
		{8, model.CategoryOffPeakNight},
		{9, model.CategoryMidDay},
		{16, model.CategoryMidDay},
		{17, model.CategoryPeakEvening},
	} {
		r := Derive(model.HourlyRecord{Timestamp: time.Date(2008, 3, 1, tc.hour, 0, 0, 0, time.UTC)})
		assert.Equal(t, tc.cat, r.TimeCategory, "hour %d", tc.hour)
		assert.Equal(t, 3, r.Month)
	}
}
