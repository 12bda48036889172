package model

// Feature column indices. The order is the regression input order and must
// not change once a model has been saved.
const (
	FeatureReactivePower = iota
	FeatureVoltage
	FeatureIntensity
	FeatureSubMetering3
	FeatureTimeOfDay
	FeatureMonth

	FeatureCount
)

// FeatureNames maps feature indices to column names.
var FeatureNames = [FeatureCount]string{
	"global_reactive_power",
	"voltage",
	"global_intensity",
	"sub_metering_3",
	"time_of_day",
	"month",
}

// FeatureVector is the fixed-arity regression input.
type FeatureVector [FeatureCount]float64

// NewFeatureVector builds a vector in regression column order.
func NewFeatureVector(reactivePower, voltage, intensity, subMetering3, timeOfDay, month float64) FeatureVector {
	var v FeatureVector
	v[FeatureReactivePower] = reactivePower
	v[FeatureVoltage] = voltage
	v[FeatureIntensity] = intensity
	v[FeatureSubMetering3] = subMetering3
	v[FeatureTimeOfDay] = timeOfDay
	v[FeatureMonth] = month
	return v
}

// Features extracts the regression input from an hourly record.
func (r HourlyRecord) Features() FeatureVector {
	return NewFeatureVector(
		r.GlobalReactivePower,
		r.Voltage,
		r.GlobalIntensity,
		r.SubMetering3,
		float64(r.TimeOfDay),
		float64(r.Month),
	)
}

func (v FeatureVector) ReactivePower() float64 { return v[FeatureReactivePower] }
func (v FeatureVector) Voltage() float64       { return v[FeatureVoltage] }
func (v FeatureVector) Intensity() float64     { return v[FeatureIntensity] }
func (v FeatureVector) SubMetering3() float64  { return v[FeatureSubMetering3] }
func (v FeatureVector) TimeOfDay() float64     { return v[FeatureTimeOfDay] }
func (v FeatureVector) Month() float64         { return v[FeatureMonth] }

// WithVoltage returns a copy of v with the voltage column replaced.
func (v FeatureVector) WithVoltage(voltage float64) FeatureVector {
	v[FeatureVoltage] = voltage
	return v
}

// Slice returns the vector as a fresh slice, for matrix construction.
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v[:])
	return out
}
