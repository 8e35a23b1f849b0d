package envsensor

import (
	"math"
	"time"
)

// Snapshot holds the latest accepted readings of all sensors.
type Snapshot struct {
	// units: % of relative humidity, NaN when the last read failed
	Humidity float64

	// units: degrees Celsius, NaN when the last read failed
	Temperature float64

	// units: degrees Celsius
	HeatIndex float64

	// AirQuality is only meaningful when HasAirQuality is set.
	AirQuality    AirQuality
	HasAirQuality bool

	AirQualitySerial string
	LastSample       time.Time
}

func newSnapshot() Snapshot {
	return Snapshot{
		Humidity:    math.NaN(),
		Temperature: math.NaN(),
		HeatIndex:   math.NaN(),
	}
}

// Complete reports whether every exported reading is present.
func (s Snapshot) Complete() bool {
	return !math.IsNaN(s.Humidity) &&
		!math.IsNaN(s.Temperature) &&
		!math.IsNaN(s.HeatIndex) &&
		s.HasAirQuality
}
