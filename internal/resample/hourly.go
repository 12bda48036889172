// Package resample turns cleaned minute-level readings into one record per
// clock hour and derives the calendar and category features.
package resample

import (
	"sort"
	"time"

	"energy_dashboard/internal/model"
)

type bucket struct {
	count                     int
	active, reactive, voltage float64
	intensity                 float64
	sub1, sub2, sub3          float64
}

func (b *bucket) add(r model.RawReading) {
	b.count++
	b.active += r.GlobalActivePower
	b.reactive += r.GlobalReactivePower
	b.voltage += r.Voltage
	b.intensity += r.GlobalIntensity
	b.sub1 += r.SubMetering1
	b.sub2 += r.SubMetering2
	b.sub3 += r.SubMetering3
}

// Hourly groups readings by hour-aligned timestamp and averages each numeric
// field. Hours without readings are omitted; nothing is filled. The result is
// sorted ascending and has one record per hour regardless of input order.
func Hourly(readings []model.RawReading) []model.HourlyRecord {
	buckets := make(map[int64]*bucket)
	for _, r := range readings {
		key := r.Timestamp.UTC().Truncate(time.Hour).Unix()
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.add(r)
	}

	keys := make([]int64, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	records := make([]model.HourlyRecord, len(keys))
	for i, k := range keys {
		b := buckets[k]
		n := float64(b.count)
		records[i] = Derive(model.HourlyRecord{
			Timestamp:           time.Unix(k, 0).UTC(),
			GlobalActivePower:   b.active / n,
			GlobalReactivePower: b.reactive / n,
			Voltage:             b.voltage / n,
			GlobalIntensity:     b.intensity / n,
			SubMetering1:        b.sub1 / n,
			SubMetering2:        b.sub2 / n,
			SubMetering3:        b.sub3 / n,
		})
	}
	return records
}

// Derive fills the engineered fields of r from its timestamp and means.
func Derive(r model.HourlyRecord) model.HourlyRecord {
	// Active power is carried over as-is, with no kWh conversion.
	r.EnergyConsumptionKWh = r.GlobalActivePower * 1
	r.TimeOfDay = r.Timestamp.Hour()
	r.Month = int(r.Timestamp.Month())
	r.HasAC = r.SubMetering3 > 0
	r.TimeCategory = model.CategoryForHour(r.TimeOfDay)
	return r
}
