package envsensor

import (
	"errors"
	"math"
)

type fakeClimate struct {
	humidity    []float64
	temperature []float64

	humidityReads    int
	temperatureReads int
}

func (f *fakeClimate) ReadHumidity() float64 {
	f.humidityReads++
	return next(&f.humidity)
}

func (f *fakeClimate) ReadTemperature() float64 {
	f.temperatureReads++
	return next(&f.temperature)
}

// next pops the head of values, repeating the last one forever. An empty
// slice reads as NaN.
func next(values *[]float64) float64 {
	if len(*values) == 0 {
		return math.NaN()
	}
	v := (*values)[0]
	if len(*values) > 1 {
		*values = (*values)[1:]
	}
	return v
}

type fakeAirQuality struct {
	beginErr    error
	measureErr  error
	baselineErr error
	serial      Serial
	values      AirQuality

	humidity  []float64
	resets    int
	measures  int
	baselines int
}

func (f *fakeAirQuality) Begin() (Serial, error) {
	if f.beginErr != nil {
		return Serial{}, f.beginErr
	}
	return f.serial, nil
}

func (f *fakeAirQuality) SoftReset() error {
	f.resets++
	return nil
}

func (f *fakeAirQuality) SetHumidity(absolute float64) error {
	f.humidity = append(f.humidity, absolute)
	if math.IsNaN(absolute) {
		return errors.New("invalid humidity")
	}
	return nil
}

func (f *fakeAirQuality) Measure() (AirQuality, error) {
	f.measures++
	if f.measureErr != nil {
		return AirQuality{}, f.measureErr
	}
	return f.values, nil
}

func (f *fakeAirQuality) Baseline() (uint16, uint16, error) {
	f.baselines++
	if f.baselineErr != nil {
		return 0, 0, f.baselineErr
	}
	return 0x8e5a, 0x8f1b, nil
}
