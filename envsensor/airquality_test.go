package envsensor

import (
	"errors"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAirQualityInitialize(t *testing.T) {
	driver := &fakeAirQuality{serial: Serial{0x0000, 0x0048, 0xb3c4}}
	a := NewAirQualityAdapter(driver, nil)

	require.True(t, a.Initialize())
	assert.True(t, a.Ready())
	assert.Equal(t, "048b3c4", a.Serial())
	assert.Equal(t, 1, driver.resets)
}

func TestAirQualityInitializeFailureIsPermanent(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()
	driver := &fakeAirQuality{beginErr: errors.New("no ack"), serial: Serial{1, 2, 3}}
	a := NewAirQualityAdapter(driver, nil)

	assert.False(t, a.Initialize())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)

	driver.beginErr = nil
	assert.False(t, a.Initialize())
	assert.Empty(t, a.Serial())

	_, ok := a.Sample(20, 50)
	assert.False(t, ok)
	assert.Zero(t, driver.measures)
	assert.Empty(t, driver.humidity)
}

func TestAirQualityWithoutDriver(t *testing.T) {
	a := NewAirQualityAdapter(nil, nil)

	assert.False(t, a.Initialize())
	_, ok := a.Sample(20, 50)
	assert.False(t, ok)
}

func TestAirQualitySample(t *testing.T) {
	want := AirQuality{TVOC: 12, ECO2: 400, RawH2: 13000, RawEthanol: 18000}
	driver := &fakeAirQuality{values: want}
	a := NewAirQualityAdapter(driver, nil)
	require.True(t, a.Initialize())

	got, ok := a.Sample(20, 50)

	require.True(t, ok)
	assert.Equal(t, want, got)
	require.Len(t, driver.humidity, 1)
	assert.InDelta(t, 8.621415, driver.humidity[0], 1e-5)
}

func TestAirQualitySampleFailure(t *testing.T) {
	stats := NewStats(nil)
	driver := &fakeAirQuality{measureErr: errors.New("crc mismatch")}
	a := NewAirQualityAdapter(driver, stats)
	require.True(t, a.Initialize())

	_, ok := a.Sample(20, 50)

	assert.False(t, ok)
	assert.Equal(t, 1.0, testutil.ToFloat64(stats.ReadFailures.WithLabelValues("air_quality")))
}

func TestAirQualityNaNCompensationStillMeasures(t *testing.T) {
	driver := &fakeAirQuality{values: AirQuality{ECO2: 400}}
	a := NewAirQualityAdapter(driver, nil)
	require.True(t, a.Initialize())

	_, ok := a.Sample(math.NaN(), 50)

	assert.True(t, ok)
	require.Len(t, driver.humidity, 1)
	assert.True(t, math.IsNaN(driver.humidity[0]))
}

func TestAirQualityBaselineCycle(t *testing.T) {
	stats := NewStats(nil)
	driver := &fakeAirQuality{}
	a := NewAirQualityAdapter(driver, stats)
	require.True(t, a.Initialize())

	for i := 1; i < BaselineInterval; i++ {
		_, ok := a.Sample(20, 50)
		require.True(t, ok)
		assert.Equal(t, i, a.counter)
	}
	assert.Zero(t, driver.baselines)

	_, ok := a.Sample(20, 50)
	require.True(t, ok)
	assert.Equal(t, 1, driver.baselines)
	assert.Zero(t, a.counter)

	for i := 0; i < BaselineInterval; i++ {
		a.Sample(20, 50)
	}
	assert.Equal(t, 2, driver.baselines)
	assert.Equal(t, 2.0, testutil.ToFloat64(stats.BaselineHarvests.WithLabelValues("success")))
}

func TestAirQualityFailedMeasurementsDoNotCount(t *testing.T) {
	driver := &fakeAirQuality{measureErr: errors.New("timeout")}
	a := NewAirQualityAdapter(driver, nil)
	require.True(t, a.Initialize())

	for i := 0; i < 2*BaselineInterval; i++ {
		a.Sample(20, 50)
	}
	assert.Zero(t, a.counter)
	assert.Zero(t, driver.baselines)
}

func TestAirQualityBaselineFailureKeepsSample(t *testing.T) {
	stats := NewStats(nil)
	driver := &fakeAirQuality{baselineErr: errors.New("nack"), values: AirQuality{TVOC: 5}}
	a := NewAirQualityAdapter(driver, stats)
	require.True(t, a.Initialize())
	a.counter = BaselineInterval - 1

	got, ok := a.Sample(20, 50)

	assert.True(t, ok)
	assert.Equal(t, uint16(5), got.TVOC)
	assert.Zero(t, a.counter)
	assert.Equal(t, 1.0, testutil.ToFloat64(stats.BaselineHarvests.WithLabelValues("failure")))
}
