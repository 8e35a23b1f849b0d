package envsensor

import (
	"math"
)

// HeatIndex returns the apparent temperature in °C for temperature t (°C) and
// relative humidity h (%), or NaN if either input is NaN.
//
// The formula works in Fahrenheit: the Steadman approximation is used below
// 80°F and the Rothfusz regression with its low and high humidity
// adjustments above that.
func HeatIndex(t, h float64) float64 {
	if math.IsNaN(t) || math.IsNaN(h) {
		return math.NaN()
	}

	f := t*1.8 + 32
	hi := 0.5 * (f + 61.0 + ((f - 68.0) * 1.2) + (h * 0.094))

	if hi > 79 {
		hi = -42.379 +
			2.04901523*f +
			10.14333127*h +
			-0.22475541*f*h +
			-0.00683783*f*f +
			-0.05481717*h*h +
			0.00122874*f*f*h +
			0.00085282*f*h*h +
			-0.00000199*f*f*h*h

		switch {
		case h < 13 && f >= 80 && f <= 112:
			hi -= ((13 - h) * 0.25) * math.Sqrt((17-math.Abs(f-95))*0.05882)
		case h > 85 && f >= 80 && f <= 87:
			hi += ((h - 85) * 0.1) * ((87 - f) * 0.2)
		}
	}

	return (hi - 32) / 1.8
}

// AbsoluteHumidity converts temperature t (°C) and relative humidity h (%) to
// absolute humidity in g/m3. NaN inputs give NaN.
func AbsoluteHumidity(t, h float64) float64 {
	ah := (2.167 * 6.112) * h
	ah *= math.Exp((17.62 * t) / (243.12 + t))
	ah /= 273.15 + t
	return ah
}
