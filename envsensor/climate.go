package envsensor

import (
	"math"

	log "github.com/sirupsen/logrus"
)

// ClimateAdapter reads one channel of the climate sensor and applies a fixed
// calibration offset.
type ClimateAdapter struct {
	name    string
	channel Channel
	reader  Reader
	offset  float64
	stats   *Stats
}

func NewHumidityAdapter(driver ClimateDriver, reader Reader, offset float64, stats *Stats) *ClimateAdapter {
	return &ClimateAdapter{
		name:    "humidity",
		channel: HumidityChannel(driver),
		reader:  reader,
		offset:  offset,
		stats:   stats,
	}
}

func NewTemperatureAdapter(driver ClimateDriver, reader Reader, offset float64, stats *Stats) *ClimateAdapter {
	return &ClimateAdapter{
		name:    "temperature",
		channel: TemperatureChannel(driver),
		reader:  reader,
		offset:  offset,
		stats:   stats,
	}
}

// Read returns the calibrated value, or NaN if every attempt failed.
// Zero is a valid reading.
func (a *ClimateAdapter) Read() float64 {
	log.Debugf("reading %s sensor", a.name)

	value := a.reader.Attempt(a.channel)
	if math.IsNaN(value) {
		log.Errorf("failed to read %s sensor", a.name)
		a.stats.readFailed(a.name)
		return value
	}
	return value + a.offset
}
