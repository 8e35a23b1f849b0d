package envsensor

// ClimateDriver is a humidity/temperature sensor such as a DHT22.
// A failed bus read is reported as NaN.
type ClimateDriver interface {
	ReadHumidity() float64
	ReadTemperature() float64
}

// AirQualityDriver is an SGP30-style VOC sensor.
type AirQualityDriver interface {
	// Begin performs the driver handshake and returns the sensor serial number.
	Begin() (Serial, error)
	SoftReset() error

	// SetHumidity sets the absolute humidity compensation, in g/m3.
	SetHumidity(absolute float64) error

	// Measure runs the combined IAQ and raw signal measurement.
	Measure() (AirQuality, error)
	Baseline() (eco2 uint16, tvoc uint16, err error)
}

// Serial is the 48 bit serial number of an air quality sensor, as three words.
type Serial [3]uint16

type AirQuality struct {
	// units: ppb
	TVOC uint16

	// units: ppm
	ECO2 uint16

	// raw H2 signal
	RawH2 uint16

	// raw ethanol signal
	RawEthanol uint16
}
