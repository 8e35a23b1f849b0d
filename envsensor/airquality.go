package envsensor

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// BaselineInterval is the number of successful measurements between two
// baseline harvests.
const BaselineInterval = 30

// AirQualityAdapter drives the air quality sensor. If the sensor fails to
// initialize, the adapter stays inert for the lifetime of the process.
type AirQualityAdapter struct {
	driver AirQualityDriver
	stats  *Stats

	initialized bool
	ready       bool
	serial      string
	counter     int
}

func NewAirQualityAdapter(driver AirQualityDriver, stats *Stats) *AirQualityAdapter {
	return &AirQualityAdapter{driver: driver, stats: stats}
}

// Initialize performs the sensor handshake once. Later calls return the
// outcome of the first one.
func (a *AirQualityAdapter) Initialize() bool {
	if a.initialized {
		return a.ready
	}
	a.initialized = true

	log.Info("setting up air quality sensor")
	if a.driver == nil {
		log.Error("no air quality sensor driver available")
		return false
	}

	serial, err := a.driver.Begin()
	if err != nil {
		log.Errorf("air quality sensor failed to begin: %s", err)
		return false
	}
	a.serial = fmt.Sprintf("%x%x%x", serial[0], serial[1], serial[2])
	log.Infof("air quality sensor serial #%s", a.serial)

	if err := a.driver.SoftReset(); err != nil {
		log.Errorf("air quality sensor soft reset failed: %s", err)
	}

	a.ready = true
	return true
}

func (a *AirQualityAdapter) Ready() bool {
	return a.ready
}

// Serial is the hex serial number, empty unless the sensor is ready.
func (a *AirQualityAdapter) Serial() string {
	return a.serial
}

// Sample measures air quality with humidity compensation derived from t and h.
// All four values are returned together, or not at all.
func (a *AirQualityAdapter) Sample(t, h float64) (AirQuality, bool) {
	if !a.ready {
		log.Debug("air quality sensor not available, skipping")
		return AirQuality{}, false
	}
	log.Debug("reading air quality sensor")

	if err := a.driver.SetHumidity(AbsoluteHumidity(t, h)); err != nil {
		log.Debugf("could not set air quality humidity compensation: %s", err)
	}

	values, err := a.driver.Measure()
	if err != nil {
		log.Errorf("failed to read air quality sensor: %s", err)
		a.stats.readFailed("air_quality")
		return AirQuality{}, false
	}

	a.counter++
	if a.counter >= BaselineInterval {
		a.counter = 0
		a.harvestBaseline()
	}
	return values, true
}

func (a *AirQualityAdapter) harvestBaseline() {
	eco2, tvoc, err := a.driver.Baseline()
	a.stats.harvested(err == nil)
	if err != nil {
		log.Errorf("failed to get air quality baseline: %s", err)
		return
	}
	log.Debugf("baseline values: eCO2: 0x%x & TVOC: 0x%x", eco2, tvoc)
}
