package model

import "time"

// TimeCategory is the coarse tariff-style bucket an hour of day falls into.
type TimeCategory string

const (
	CategoryPeakEvening  TimeCategory = "Peak Evening (17-21h)"
	CategoryOffPeakNight TimeCategory = "Off-Peak Night (22-8h)"
	CategoryMidDay       TimeCategory = "Mid-Day (9-16h)"

	// CategoryAll is the selector value that disables category filtering.
	CategoryAll TimeCategory = "ALL"
)

// TimeCategories lists the three hour buckets in display order.
var TimeCategories = []TimeCategory{
	CategoryPeakEvening,
	CategoryOffPeakNight,
	CategoryMidDay,
}

// CategoryForHour maps an hour of day to its category. Evaluation order
// matters: 17-21 is checked first, then >=22 or <=8, and the rest is mid-day.
func CategoryForHour(h int) TimeCategory {
	switch {
	case h >= 17 && h <= 21:
		return CategoryPeakEvening
	case h >= 22 || h <= 8:
		return CategoryOffPeakNight
	default:
		return CategoryMidDay
	}
}

// Known reports whether c is one of the three hour buckets.
func (c TimeCategory) Known() bool {
	for _, k := range TimeCategories {
		if c == k {
			return true
		}
	}
	return false
}

// RawReading is one minute-level sample from the household meter.
type RawReading struct {
	Timestamp           time.Time
	GlobalActivePower   float64 // kW
	GlobalReactivePower float64 // kW
	Voltage             float64 // V
	GlobalIntensity     float64 // A
	SubMetering1        float64 // Wh, kitchen
	SubMetering2        float64 // Wh, laundry and refrigeration
	SubMetering3        float64 // Wh, water heater and AC
}

// HourlyRecord is the mean of all raw readings within one clock hour plus
// the derived calendar and category fields.
type HourlyRecord struct {
	Timestamp           time.Time `json:"timestamp"`
	GlobalActivePower   float64   `json:"global_active_power"`
	GlobalReactivePower float64   `json:"global_reactive_power"`
	Voltage             float64   `json:"voltage"`
	GlobalIntensity     float64   `json:"global_intensity"`
	SubMetering1        float64   `json:"sub_metering_1"`
	SubMetering2        float64   `json:"sub_metering_2"`
	SubMetering3        float64   `json:"sub_metering_3"`

	// EnergyConsumptionKWh equals GlobalActivePower; no unit conversion is applied.
	EnergyConsumptionKWh float64      `json:"energy_consumption_kwh"`
	TimeOfDay            int          `json:"time_of_day"`
	Month                int          `json:"month"`
	HasAC                bool         `json:"has_ac_numeric"`
	TimeCategory         TimeCategory `json:"time_category"`
}

// SubMeteringTotal is the sum of the three sub-metering channels.
func (r HourlyRecord) SubMeteringTotal() float64 {
	return r.SubMetering1 + r.SubMetering2 + r.SubMetering3
}

type TimeRange struct {
	Start time.Time
	End   time.Time
}

// ApplianceCategory labels one slice of the consumption breakdown.
type ApplianceCategory string

const (
	ApplianceKitchen       ApplianceCategory = "Kitchen Appliances (Sub-meter 1)"
	ApplianceLaundry       ApplianceCategory = "Refrigerator & Laundry (Sub-meter 2)"
	ApplianceWaterHeaterAC ApplianceCategory = "Water Heater / AC (Sub-meter 3)"
	ApplianceGeneral       ApplianceCategory = "General Use (Lights, Plugs, TV)"
)

// ApplianceCategories lists breakdown slices in display order.
var ApplianceCategories = []ApplianceCategory{
	ApplianceKitchen,
	ApplianceLaundry,
	ApplianceWaterHeaterAC,
	ApplianceGeneral,
}

// SubMeterChannel names a sub-metering column in chart series.
type SubMeterChannel string

const (
	SubMetering1 SubMeterChannel = "Sub_metering_1"
	SubMetering2 SubMeterChannel = "Sub_metering_2"
	SubMetering3 SubMeterChannel = "Sub_metering_3"
)

var SubMeterChannels = []SubMeterChannel{SubMetering1, SubMetering2, SubMetering3}
