package dht

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeValue(t *testing.T, dir, name, value string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value), 0o644))
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	writeValue(t, dir, humidityFile, "45300\n")
	writeValue(t, dir, temperatureFile, "-1500\n")

	s := New(dir)

	assert.Equal(t, 45.3, s.ReadHumidity())
	assert.Equal(t, -1.5, s.ReadTemperature())
}

func TestReadZero(t *testing.T) {
	dir := t.TempDir()
	writeValue(t, dir, temperatureFile, "0\n")

	assert.Equal(t, 0.0, New(dir).ReadTemperature())
}

func TestReadFailure(t *testing.T) {
	dir := t.TempDir()
	writeValue(t, dir, humidityFile, "garbage")

	s := New(dir)

	assert.True(t, math.IsNaN(s.ReadHumidity()))
	assert.True(t, math.IsNaN(s.ReadTemperature()))
}
