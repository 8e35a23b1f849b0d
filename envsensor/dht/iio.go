// Package dht reads a DHT11/DHT22 through the Linux dht11 IIO driver, which
// exposes the sensor under /sys/bus/iio/devices.
package dht

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/alepar/envexporter/envsensor"
)

// DefaultDevice is the first IIO device, where a lone dht11 overlay shows up.
const DefaultDevice = "/sys/bus/iio/devices/iio:device0"

const (
	humidityFile    = "in_humidityrelative_input"
	temperatureFile = "in_temp_input"
)

// Sensor is a DHT sensor bound to one IIO device directory.
type Sensor struct {
	Dir string
}

func New(dir string) *Sensor {
	return &Sensor{Dir: dir}
}

// ReadHumidity returns relative humidity in %, or NaN.
func (s *Sensor) ReadHumidity() float64 {
	return s.readMilli(humidityFile)
}

// ReadTemperature returns the temperature in °C, or NaN.
func (s *Sensor) ReadTemperature() float64 {
	return s.readMilli(temperatureFile)
}

// readMilli reads a value the kernel reports in thousandths. The driver
// answers EIO or ETIMEDOUT when a transfer from the sensor fails, which is
// frequent and expected.
func (s *Sensor) readMilli(name string) float64 {
	value, err := readInt(filepath.Join(s.Dir, name))
	if err != nil {
		log.Debugf("dht read failed: %s", err)
		return math.NaN()
	}
	return float64(value) / 1000
}

func readInt(path string) (int64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Wrapf(err, "couldn't read %s", path)
	}
	value, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "malformed value in %s", path)
	}
	return value, nil
}

var _ envsensor.ClimateDriver = (*Sensor)(nil)
