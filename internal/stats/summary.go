package stats

import (
	"errors"
	"math"

	"energy_dashboard/internal/model"
	"energy_dashboard/internal/store"
)

// ErrEmptyTable is returned when summary statistics are requested for a
// table with no records. The values are undefined, not zero.
var ErrEmptyTable = errors.New("hourly table is empty")

// Sub-meter channels are recorded in Wh, active power in kW.
const subMeterScale = 1000.0

// Summary holds the scalar statistics shown on the dashboard.
type Summary struct {
	AvgHourlyUsage      float64   `json:"avg_hourly_usage"`
	PeakHour            int       `json:"peak_hour"`
	AvgSubMeteringUsage float64   `json:"avg_sub_metering_usage"`
	TotalEnergyKWh      float64   `json:"total_energy_kwh"`
	Breakdown           Breakdown `json:"consumption_breakdown"`
	Normalized          Breakdown `json:"normalized_breakdown"`
}

// BreakdownEntry is one slice of the consumption breakdown.
type BreakdownEntry struct {
	Category model.ApplianceCategory `json:"category"`
	KWh      float64                 `json:"kwh"`
}

// Breakdown is an ordered category -> kWh mapping.
type Breakdown []BreakdownEntry

// Get returns the kWh for category c.
func (b Breakdown) Get(c model.ApplianceCategory) (float64, bool) {
	for _, e := range b {
		if e.Category == c {
			return e.KWh, true
		}
	}
	return 0, false
}

// Without returns a copy of b with category c removed.
func (b Breakdown) Without(c model.ApplianceCategory) Breakdown {
	out := make(Breakdown, 0, len(b))
	for _, e := range b {
		if e.Category != c {
			out = append(out, e)
		}
	}
	return out
}

// Total sums all slices.
func (b Breakdown) Total() float64 {
	var sum float64
	for _, e := range b {
		sum += e.KWh
	}
	return sum
}

// Summarize computes every dashboard scalar in a single pass over t.
func Summarize(t *store.HourlyTable) (Summary, error) {
	if t.Empty() {
		return Summary{}, ErrEmptyTable
	}

	var energy, subTotal, sub1, sub2, sub3 float64
	t.Each(func(r model.HourlyRecord) {
		energy += r.EnergyConsumptionKWh
		subTotal += r.SubMeteringTotal()
		sub1 += r.SubMetering1
		sub2 += r.SubMetering2
		sub3 += r.SubMetering3
	})

	n := float64(t.Len())
	peak, _ := PeakHour(t)
	breakdown := ConsumptionBreakdown(energy, sub1, sub2, sub3)

	return Summary{
		AvgHourlyUsage:      Round(energy/n, 3),
		PeakHour:            peak,
		AvgSubMeteringUsage: Round(subTotal/n, 3),
		TotalEnergyKWh:      Round(energy, 2),
		Breakdown:           breakdown,
		Normalized:          Normalized(breakdown),
	}, nil
}

// PeakHour returns the hour of day with the highest mean energy consumption.
// Ties go to the earliest hour. ok is false for an empty table.
func PeakHour(t *store.HourlyTable) (hour int, ok bool) {
	profile := HourlyProfile(t)
	if len(profile) == 0 {
		return 0, false
	}

	best := profile[0]
	for _, p := range profile[1:] {
		if p.EnergyKWh > best.EnergyKWh {
			best = p
		}
	}
	return best.Hour, true
}

// ConsumptionBreakdown splits the total energy into the three sub-meter
// channels plus the unmetered remainder. Sub-meter sums are converted from
// Wh; each figure is rounded to 2 decimals before the residual is taken.
func ConsumptionBreakdown(energySum, sub1Sum, sub2Sum, sub3Sum float64) Breakdown {
	kitchen := Round(sub1Sum/subMeterScale, 2)
	laundry := Round(sub2Sum/subMeterScale, 2)
	heater := Round(sub3Sum/subMeterScale, 2)
	metered := Round(kitchen+laundry+heater, 2)
	total := Round(energySum, 2)

	return Breakdown{
		{Category: model.ApplianceKitchen, KWh: kitchen},
		{Category: model.ApplianceLaundry, KWh: laundry},
		{Category: model.ApplianceWaterHeaterAC, KWh: heater},
		{Category: model.ApplianceGeneral, KWh: Round(total-metered, 2)},
	}
}

// Normalized drops the kitchen slice, which dwarfs the others in a pie chart.
func Normalized(b Breakdown) Breakdown {
	return b.Without(model.ApplianceKitchen)
}

// Round rounds half to even at the given number of decimal places.
func Round(x float64, places int) float64 {
	p := math.Pow10(places)
	return math.RoundToEven(x*p) / p
}
