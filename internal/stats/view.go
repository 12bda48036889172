package stats

import (
	"math/rand/v2"
	"sort"
	"time"

	"energy_dashboard/internal/model"
	"energy_dashboard/internal/store"
)

// DailyPoint is the mean hourly energy of one calendar day.
type DailyPoint struct {
	Day       time.Time `json:"day"`
	EnergyKWh float64   `json:"energy_consumption_kwh"`
}

// SubMeterPoint is one channel's summed consumption on one day.
type SubMeterPoint struct {
	Day           time.Time             `json:"day"`
	Channel       model.SubMeterChannel `json:"sub_meter"`
	ConsumptionWh float64               `json:"consumption_wh"`
}

// HourPoint is the mean energy for one hour of day.
type HourPoint struct {
	Hour      int     `json:"time_of_day"`
	EnergyKWh float64 `json:"energy_consumption_kwh"`
}

// ChartView is everything the dashboard charts need for one category
// selection. An empty selection produces empty series, never an error.
type ChartView struct {
	Category         model.TimeCategory `json:"category"`
	Title            string             `json:"title"`
	Records          int                `json:"records"`
	DailyMean        []DailyPoint       `json:"daily_mean"`
	DailySubMetering []SubMeterPoint    `json:"daily_sub_metering"`
	HourlyProfile    []HourPoint        `json:"hourly_profile"`
}

// BuildView filters t by category and derives the three chart series. At most
// sampleCap sub-meter points are kept (0 keeps all), sampled with seed.
func BuildView(t *store.HourlyTable, category model.TimeCategory, sampleCap int, seed uint64) ChartView {
	subset := t.Filter(category)
	return ChartView{
		Category:         category,
		Title:            "Category: " + string(category),
		Records:          subset.Len(),
		DailyMean:        DailyMean(subset),
		DailySubMetering: SampleSubMetering(DailySubMetering(subset), sampleCap, seed),
		HourlyProfile:    HourlyProfile(subset),
	}
}

func dayOf(ts time.Time) time.Time {
	y, m, d := ts.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DailyMean averages energy per calendar day. Days without records are
// omitted.
func DailyMean(t *store.HourlyTable) []DailyPoint {
	points := []DailyPoint{}
	var count int
	var sum float64

	flush := func() {
		if count > 0 {
			points[len(points)-1].EnergyKWh = sum / float64(count)
		}
	}

	t.Each(func(r model.HourlyRecord) {
		day := dayOf(r.Timestamp)
		if len(points) == 0 || !points[len(points)-1].Day.Equal(day) {
			flush()
			points = append(points, DailyPoint{Day: day})
			count, sum = 0, 0
		}
		count++
		sum += r.EnergyConsumptionKWh
	})
	flush()

	return points
}

// DailySubMetering sums each sub-meter channel per day, one point per
// (day, channel) in that order. Days between the first and last day that
// have no records get zero sums.
func DailySubMetering(t *store.HourlyTable) []SubMeterPoint {
	type sums struct {
		day        time.Time
		s1, s2, s3 float64
	}
	var days []sums

	t.Each(func(r model.HourlyRecord) {
		day := dayOf(r.Timestamp)
		if len(days) == 0 || !days[len(days)-1].day.Equal(day) {
			days = append(days, sums{day: day})
		}
		d := &days[len(days)-1]
		d.s1 += r.SubMetering1
		d.s2 += r.SubMetering2
		d.s3 += r.SubMetering3
	})

	var filled []sums
	for _, d := range days {
		if len(filled) > 0 {
			for gap := filled[len(filled)-1].day.AddDate(0, 0, 1); gap.Before(d.day); gap = gap.AddDate(0, 0, 1) {
				filled = append(filled, sums{day: gap})
			}
		}
		filled = append(filled, d)
	}

	points := make([]SubMeterPoint, 0, len(filled)*len(model.SubMeterChannels))
	for _, d := range filled {
		points = append(points,
			SubMeterPoint{Day: d.day, Channel: model.SubMetering1, ConsumptionWh: d.s1},
			SubMeterPoint{Day: d.day, Channel: model.SubMetering2, ConsumptionWh: d.s2},
			SubMeterPoint{Day: d.day, Channel: model.SubMetering3, ConsumptionWh: d.s3},
		)
	}
	return points
}

// SampleSubMetering keeps a seeded random subset of at most n points,
// preserving their original order.
func SampleSubMetering(points []SubMeterPoint, n int, seed uint64) []SubMeterPoint {
	if n <= 0 || len(points) <= n {
		return points
	}

	rng := rand.New(rand.NewPCG(seed, 0))
	picked := rng.Perm(len(points))[:n]
	sort.Ints(picked)

	out := make([]SubMeterPoint, n)
	for i, idx := range picked {
		out[i] = points[idx]
	}
	return out
}

// HourlyProfile averages energy per hour of day across all days and months,
// for the hours present in t, ascending.
func HourlyProfile(t *store.HourlyTable) []HourPoint {
	var sums [24]float64
	var counts [24]int
	t.Each(func(r model.HourlyRecord) {
		sums[r.TimeOfDay] += r.EnergyConsumptionKWh
		counts[r.TimeOfDay]++
	})

	points := []HourPoint{}
	for h := 0; h < 24; h++ {
		if counts[h] == 0 {
			continue
		}
		points = append(points, HourPoint{Hour: h, EnergyKWh: sums[h] / float64(counts[h])})
	}
	return points
}
