// Package sgp30 controls a Sensirion SGP30 gas sensor over I²C.
package sgp30

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c"

	"github.com/alepar/envexporter/envsensor"
)

// DefaultAddress is the fixed I²C address of the SGP30.
const DefaultAddress uint16 = 0x58

const (
	cmdGetSerialID       = 0x3682
	cmdGetFeatureSet     = 0x202f
	cmdInitAirQuality    = 0x2003
	cmdMeasureAirQuality = 0x2008
	cmdMeasureRaw        = 0x2050
	cmdGetBaseline       = 0x2015
	cmdSetHumidity       = 0x2061

	generalCallAddress = 0x00
	generalCallReset   = 0x06

	// product type bits of the feature set word
	productTypeMask  = 0xf000
	productTypeSGP30 = 0x0000
)

// Dev is a handle to an SGP30.
type Dev struct {
	d       i2c.Dev
	general i2c.Dev
	sleep   func(time.Duration)
}

// New returns a handle to the SGP30 at addr on bus. No I/O is done until Begin.
func New(bus i2c.Bus, addr uint16) *Dev {
	return &Dev{
		d:       i2c.Dev{Bus: bus, Addr: addr},
		general: i2c.Dev{Bus: bus, Addr: generalCallAddress},
		sleep:   time.Sleep,
	}
}

func (dev *Dev) String() string {
	return fmt.Sprintf("SGP30{%s}", &dev.d)
}

// Begin reads the serial number, checks the product type and starts the
// air quality algorithm.
func (dev *Dev) Begin() (envsensor.Serial, error) {
	words, err := dev.read(cmdGetSerialID, time.Millisecond, 3)
	if err != nil {
		return envsensor.Serial{}, errors.Wrap(err, "couldn't read serial id")
	}
	serial := envsensor.Serial{words[0], words[1], words[2]}

	features, err := dev.read(cmdGetFeatureSet, 10*time.Millisecond, 1)
	if err != nil {
		return envsensor.Serial{}, errors.Wrap(err, "couldn't read feature set")
	}
	if features[0]&productTypeMask != productTypeSGP30 {
		return envsensor.Serial{}, errors.Errorf("unexpected feature set 0x%04x", features[0])
	}
	log.Debugf("sgp30 feature set 0x%04x", features[0])

	if err := dev.initAirQuality(); err != nil {
		return envsensor.Serial{}, err
	}
	return serial, nil
}

// SoftReset resets every device on the bus that honours the I²C general call
// and restarts the air quality algorithm, which a reset stops.
func (dev *Dev) SoftReset() error {
	if err := dev.general.Tx([]byte{generalCallReset}, nil); err != nil {
		return errors.Wrap(err, "general call reset failed")
	}
	dev.sleep(10 * time.Millisecond)
	return dev.initAirQuality()
}

// SetHumidity sets the absolute humidity compensation in g/m3. Zero disables
// compensation.
func (dev *Dev) SetHumidity(absolute float64) error {
	if math.IsNaN(absolute) || absolute < 0 || absolute*256 > math.MaxUint16 {
		return errors.Errorf("absolute humidity %f out of range", absolute)
	}
	return dev.write(cmdSetHumidity, 10*time.Millisecond, uint16(absolute*256))
}

// Measure runs an air quality and a raw signal measurement.
func (dev *Dev) Measure() (envsensor.AirQuality, error) {
	iaq, err := dev.read(cmdMeasureAirQuality, 12*time.Millisecond, 2)
	if err != nil {
		return envsensor.AirQuality{}, errors.Wrap(err, "air quality measurement failed")
	}
	raw, err := dev.read(cmdMeasureRaw, 25*time.Millisecond, 2)
	if err != nil {
		return envsensor.AirQuality{}, errors.Wrap(err, "raw signal measurement failed")
	}
	return envsensor.AirQuality{
		ECO2:       iaq[0],
		TVOC:       iaq[1],
		RawH2:      raw[0],
		RawEthanol: raw[1],
	}, nil
}

// Baseline returns the current baseline of the air quality algorithm.
func (dev *Dev) Baseline() (eco2 uint16, tvoc uint16, err error) {
	words, err := dev.read(cmdGetBaseline, 10*time.Millisecond, 2)
	if err != nil {
		return 0, 0, errors.Wrap(err, "couldn't read baseline")
	}
	return words[0], words[1], nil
}

func (dev *Dev) initAirQuality() error {
	if err := dev.write(cmdInitAirQuality, 10*time.Millisecond); err != nil {
		return errors.Wrap(err, "couldn't start air quality algorithm")
	}
	return nil
}

// write sends cmd followed by args, each with its checksum, and waits delay.
func (dev *Dev) write(cmd uint16, delay time.Duration, args ...uint16) error {
	buf := make([]byte, 2, 2+3*len(args))
	binary.BigEndian.PutUint16(buf, cmd)
	for _, arg := range args {
		word := []byte{byte(arg >> 8), byte(arg)}
		buf = append(buf, word[0], word[1], crc8(word))
	}
	if err := dev.d.Tx(buf, nil); err != nil {
		return err
	}
	dev.sleep(delay)
	return nil
}

// read sends cmd, waits delay for the measurement and reads n checked words.
func (dev *Dev) read(cmd uint16, delay time.Duration, n int) ([]uint16, error) {
	if err := dev.write(cmd, delay); err != nil {
		return nil, err
	}

	buf := make([]byte, 3*n)
	if err := dev.d.Tx(nil, buf); err != nil {
		return nil, err
	}

	words := make([]uint16, n)
	for i := range words {
		chunk := buf[3*i : 3*i+3]
		if crc := crc8(chunk[:2]); crc != chunk[2] {
			return nil, errors.Errorf("crc mismatch on word %d: got 0x%02x, want 0x%02x", i, chunk[2], crc)
		}
		words[i] = binary.BigEndian.Uint16(chunk)
	}
	return words, nil
}

var _ envsensor.AirQualityDriver = (*Dev)(nil)
