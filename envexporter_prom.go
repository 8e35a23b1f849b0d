package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/version"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/alepar/envexporter/config"
	"github.com/alepar/envexporter/envsensor"
	"github.com/alepar/envexporter/envsensor/dht"
	"github.com/alepar/envexporter/envsensor/sgp30"
	"github.com/alepar/envexporter/exposition"
	"github.com/alepar/envexporter/logging"
)

const programName = "envexporter"

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.ShowVersion {
		fmt.Println(version.Print(programName))
		return
	}

	logging.Setup(os.Stderr, cfg.Debug)
	log.Infof("starting %s %s", programName, cfg.Version)

	// exporter's own metrics, served apart from the sensor exposition
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewBuildInfoCollector())
	stats := envsensor.NewStats(registry)

	log.Infof("setting up climate sensor at %s", cfg.ClimateDevice)
	device := envsensor.NewDevice(
		dht.New(cfg.ClimateDevice),
		openAirQuality(cfg),
		envsensor.Settings{
			ReadInterval:      cfg.ReadInterval,
			Retries:           cfg.Retries,
			HumidityOffset:    cfg.HumidityOffset,
			TemperatureOffset: cfg.TemperatureOffset,
		},
		stats,
	)
	device.Setup()

	renderer := exposition.NewRenderer(cfg.Namespace, exposition.Identity{
		Version:           cfg.Version,
		Board:             cfg.Board,
		ClimateSensorName: cfg.ClimateSensorName,
	})

	log.Infof("namespace: %s", cfg.Namespace)
	log.Infof("metrics endpoint: %s", cfg.MetricsPath)
	log.Infof("listening on %s", cfg.ListenAddress)
	log.Fatal(http.ListenAndServe(cfg.ListenAddress, newHandler(cfg, device, renderer, registry)))
}

// openAirQuality returns the SGP30 driver, or nil when the I²C bus is not
// usable. The device then runs without air quality readings.
func openAirQuality(cfg *config.Config) envsensor.AirQualityDriver {
	if _, err := host.Init(); err != nil {
		log.Errorf("failed to initialize host drivers: %s", err)
		return nil
	}
	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		log.Errorf("failed to open I²C bus %q: %s", cfg.I2CBus, err)
		return nil
	}
	log.Debugf("using I²C bus %s", bus)
	return sgp30.New(bus, uint16(cfg.AirQualityAddr))
}
