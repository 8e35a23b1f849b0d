package envsensor

import (
	"math"

	log "github.com/sirupsen/logrus"
)

// Channel is one scalar quantity of a sensor. Read performs a single bus read
// and returns NaN when it fails.
type Channel interface {
	Read() float64
}

type humidityChannel struct {
	driver ClimateDriver
}

func (c humidityChannel) Read() float64 {
	return c.driver.ReadHumidity()
}

type temperatureChannel struct {
	driver ClimateDriver
}

func (c temperatureChannel) Read() float64 {
	return c.driver.ReadTemperature()
}

// HumidityChannel reads relative humidity (%) from driver.
func HumidityChannel(driver ClimateDriver) Channel {
	return humidityChannel{driver: driver}
}

// TemperatureChannel reads temperature (°C) from driver.
func TemperatureChannel(driver ClimateDriver) Channel {
	return temperatureChannel{driver: driver}
}

// Reader retries a Channel a bounded number of times without delay.
type Reader struct {
	Retries int
}

// Attempt returns the first non-NaN value read from ch, or NaN when all tries failed.
func (r Reader) Attempt(ch Channel) float64 {
	tries := r.Retries
	if tries < 1 {
		tries = 1
	}
	for i := 0; i < tries; i++ {
		value := ch.Read()
		if !math.IsNaN(value) {
			return value
		}
		log.Debugf("sensor read attempt %d/%d failed", i+1, tries)
	}
	return math.NaN()
}
