package envsensor

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// MinReadInterval is the floor applied to Settings.ReadInterval.
const MinReadInterval = time.Second

type Settings struct {
	ReadInterval      time.Duration
	Retries           int
	HumidityOffset    float64
	TemperatureOffset float64
}

// Device owns the sensors and the snapshot of their latest readings.
// All methods are serialized.
type Device struct {
	mu sync.Mutex

	interval    time.Duration
	now         func() time.Time
	stats       *Stats
	humidity    *ClimateAdapter
	temperature *ClimateAdapter
	airQuality  *AirQualityAdapter
	snapshot    Snapshot
}

func NewDevice(climate ClimateDriver, airQuality AirQualityDriver, settings Settings, stats *Stats) *Device {
	reader := Reader{Retries: settings.Retries}

	interval := settings.ReadInterval
	if interval < MinReadInterval {
		interval = MinReadInterval
	}

	return &Device{
		interval:    interval,
		now:         time.Now,
		stats:       stats,
		humidity:    NewHumidityAdapter(climate, reader, settings.HumidityOffset, stats),
		temperature: NewTemperatureAdapter(climate, reader, settings.TemperatureOffset, stats),
		airQuality:  NewAirQualityAdapter(airQuality, stats),
		snapshot:    newSnapshot(),
	}
}

// SetClock replaces the time source.
func (d *Device) SetClock(now func() time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.now = now
}

// Setup initializes the air quality sensor and runs a forced sample as a
// self-test of all sensors.
func (d *Device) Setup() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.airQuality.Initialize() {
		d.snapshot.AirQualitySerial = d.airQuality.Serial()
	}
	d.maybeSample(true)

	if !d.snapshot.Complete() {
		log.Error("sensor self-test incomplete, scrapes will fail until sensors recover")
	}
}

// MaybeSample samples all sensors unless the last sample is more recent than
// the read interval. force bypasses the rate limit. It reports whether a
// sample was taken.
func (d *Device) MaybeSample(force bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.maybeSample(force)
}

// Refresh samples if due and returns the resulting snapshot.
func (d *Device) Refresh() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.maybeSample(false)
	return d.snapshot
}

// Snapshot returns the latest readings without sampling.
func (d *Device) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshot
}

func (d *Device) maybeSample(force bool) bool {
	now := d.now()
	last := d.snapshot.LastSample
	if !force && !last.IsZero() && now.Sub(last) < d.interval {
		log.Debug("sensors were recently read, will not read again yet")
		d.stats.sampled(true)
		return false
	}
	d.snapshot.LastSample = now
	d.stats.sampled(false)

	// heat index and humidity compensation depend on fresh humidity and temperature
	d.snapshot.Humidity = d.humidity.Read()
	d.snapshot.Temperature = d.temperature.Read()
	d.snapshot.HeatIndex = HeatIndex(d.snapshot.Temperature, d.snapshot.Humidity)

	if values, ok := d.airQuality.Sample(d.snapshot.Temperature, d.snapshot.Humidity); ok {
		d.snapshot.AirQuality = values
		d.snapshot.HasAirQuality = true
	}
	return true
}
