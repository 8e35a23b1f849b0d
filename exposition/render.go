// Package exposition renders the sensor snapshot in the text exposition
// format served to the monitoring collector.
package exposition

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/alepar/envexporter/envsensor"
)

const (
	// ContentType of every response body produced by the exporter.
	ContentType = "text/plain; charset=utf-8"

	// SensorError is the body served when a reading is missing.
	SensorError = "Sensor error."

	// AirQualitySensorName labels the air quality sensor.
	AirQualitySensorName = "SGP30"

	climateSerial = "n/a"
)

// Source provides the snapshot to render, sampling the sensors if due.
type Source interface {
	Refresh() envsensor.Snapshot
}

// Identity is the static description of the device.
type Identity struct {
	Version           string
	Board             string
	ClimateSensorName string
}

type Renderer struct {
	Namespace string
	Identity  Identity
}

func NewRenderer(namespace string, identity Identity) *Renderer {
	return &Renderer{Namespace: namespace, Identity: identity}
}

// Render refreshes src and returns the HTTP status and body. A snapshot with
// any reading missing is never rendered partially.
func (r *Renderer) Render(src Source) (int, []byte) {
	snap := src.Refresh()
	if !snap.Complete() {
		return http.StatusInternalServerError, []byte(SensorError)
	}
	return http.StatusOK, r.Document(snap)
}

// Document renders a complete snapshot.
func (r *Renderer) Document(snap envsensor.Snapshot) []byte {
	var b strings.Builder
	for _, f := range r.families(snap) {
		f.writeTo(&b, r.Namespace)
	}
	return []byte(b.String())
}

func (r *Renderer) families(snap envsensor.Snapshot) []family {
	aq := snap.AirQuality
	return []family{
		{
			name: "info",
			help: "Metadata about the device.",
			samples: []sample{{
				labels: []label{{"version", r.Identity.Version}, {"board", r.Identity.Board}},
				value:  "1",
			}},
		},
		{
			name: "sensor",
			help: "Metadata about a sensor.",
			samples: []sample{
				{labels: []label{{"sensor", r.Identity.ClimateSensorName}, {"serial", climateSerial}}, value: "1"},
				{labels: []label{{"sensor", AirQualitySensorName}, {"serial", snap.AirQualitySerial}}, value: "1"},
			},
		},
		gauge("air_humidity_percent", "Air humidity.", "%", formatFloat(snap.Humidity)),
		gauge("air_temperature_celsius", "Air temperature.", "°C", formatFloat(snap.Temperature)),
		gauge("air_heat_index_celsius", "Apparent air temperature, based on temperature and humidity.", "°C", formatFloat(snap.HeatIndex)),
		gauge("air_quality_eco2", "Equivalent calculated carbon-dioxide (eCO2).", "ppm", formatUint(aq.ECO2)),
		gauge("air_quality_tvoc", "Total Volatile Organic Compound (TVOC).", "ppb", formatUint(aq.TVOC)),
		gauge("air_quality_h2", "Hydrogen.", "ppm", formatUint(aq.RawH2)),
		gauge("air_quality_ethanol", "Ethanol.", "ppm", formatUint(aq.RawEthanol)),
	}
}

// formatFloat matches printf %f.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func formatUint(v uint16) string {
	return strconv.FormatUint(uint64(v), 10)
}
