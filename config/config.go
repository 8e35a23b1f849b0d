// Package config parses the exporter's command line.
package config

import (
	"flag"
	"io"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/common/model"
	"github.com/prometheus/common/version"

	"github.com/alepar/envexporter/envsensor/dht"
	"github.com/alepar/envexporter/envsensor/sgp30"
)

type Config struct {
	ListenAddress string
	MetricsPath   string
	TelemetryPath string

	ReadInterval      time.Duration
	Retries           int
	HumidityOffset    float64
	TemperatureOffset float64

	Namespace         string
	Version           string
	Board             string
	ClimateSensorName string

	ClimateDevice  string
	I2CBus         string
	AirQualityAddr uint

	Debug       bool
	ShowVersion bool
}

// Parse reads the configuration from args, which exclude the program name.
func Parse(args []string, output io.Writer) (*Config, error) {
	c := &Config{}

	fs := flag.NewFlagSet("envexporter", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&c.ListenAddress, "listen-address", ":8080", "The address to listen on for HTTP requests.")
	fs.StringVar(&c.MetricsPath, "metrics-path", "/metrics", "path serving the sensor metrics")
	fs.StringVar(&c.TelemetryPath, "telemetry-path", "/exporter-metrics", "path serving the exporter's own metrics")

	fs.DurationVar(&c.ReadInterval, "read-int", 2*time.Second, "minimum time between sensor reads, at least 1s")
	fs.IntVar(&c.Retries, "retries", 5, "max number of tries for a climate sensor read")
	fs.Float64Var(&c.HumidityOffset, "humidity-offset", 0, "calibration offset added to humidity (%)")
	fs.Float64Var(&c.TemperatureOffset, "temperature-offset", 0, "calibration offset added to temperature (°C)")

	fs.StringVar(&c.Namespace, "namespace", "iot", "metric name prefix")
	fs.StringVar(&c.Board, "board", "generic", "board name reported in the info metric")
	fs.StringVar(&c.ClimateSensorName, "climate-sensor", "DHT22", "humidity/temperature sensor name reported in the sensor metric")

	fs.StringVar(&c.ClimateDevice, "climate-device", dht.DefaultDevice, "IIO device directory of the DHT sensor")
	fs.StringVar(&c.I2CBus, "i2c-bus", "", "I²C bus of the SGP30, empty for the first one")
	fs.UintVar(&c.AirQualityAddr, "sgp30-addr", uint(sgp30.DefaultAddress), "I²C address of the SGP30")

	fs.BoolVar(&c.Debug, "debug", false, "log debug messages")
	fs.BoolVar(&c.ShowVersion, "version", false, "print version information and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, errors.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	c.Version = version.Version
	if c.Version == "" {
		c.Version = "unknown"
	}

	if c.ShowVersion {
		return c, nil
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks values that flag parsing alone does not.
func (c *Config) Validate() error {
	if !model.IsValidMetricName(model.LabelValue(c.Namespace + "_info")) {
		return errors.Errorf("invalid namespace %q", c.Namespace)
	}
	for _, p := range []string{c.MetricsPath, c.TelemetryPath} {
		if !strings.HasPrefix(p, "/") || p == "/" {
			return errors.Errorf("invalid path %q: must start with / and not be the root", p)
		}
	}
	if c.MetricsPath == c.TelemetryPath {
		return errors.New("metrics and telemetry paths must differ")
	}
	if c.Retries < 1 {
		return errors.Errorf("retries must be at least 1, got %d", c.Retries)
	}
	for name, v := range map[string]float64{"humidity": c.HumidityOffset, "temperature": c.TemperatureOffset} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Errorf("%s offset must be finite, got %v", name, v)
		}
	}
	if c.ReadInterval < 0 {
		return errors.Errorf("negative read interval %s", c.ReadInterval)
	}
	if c.AirQualityAddr < 0x08 || c.AirQualityAddr > 0x77 {
		return errors.Errorf("I²C address 0x%x out of range", c.AirQualityAddr)
	}
	for name, v := range map[string]string{"board": c.Board, "climate sensor": c.ClimateSensorName} {
		if v == "" || !model.LabelValue(v).IsValid() {
			return errors.Errorf("invalid %s name %q", name, v)
		}
	}
	return nil
}
