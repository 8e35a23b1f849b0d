package logging

import (
	"bytes"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	start := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	f := &Formatter{Start: start}

	tests := []struct {
		entry *log.Entry
		want  string
	}{
		{
			entry: &log.Entry{Time: start.Add(1234567 * time.Microsecond), Level: log.InfoLevel, Message: "setup done"},
			want:  "[     1.235] [INFO ] setup done\n",
		},
		{
			entry: &log.Entry{Time: start.Add(90 * time.Second), Level: log.ErrorLevel, Message: "failed"},
			want:  "[    90.000] [ERROR] failed\n",
		},
		{
			entry: &log.Entry{Time: start, Level: log.DebugLevel, Message: "tick"},
			want:  "[     0.000] [DEBUG] tick\n",
		},
		{
			entry: &log.Entry{
				Time:    start,
				Level:   log.WarnLevel,
				Message: "request",
				Data:    log.Fields{"path": "/metrics", "method": "GET"},
			},
			want: "[     0.000] [WARN ] request method=GET path=/metrics\n",
		},
	}
	for _, tt := range tests {
		got, err := f.Format(tt.entry)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(got))
	}
}

func TestSetupSuppressesDebug(t *testing.T) {
	defer log.SetOutput(log.StandardLogger().Out)
	defer log.SetLevel(log.GetLevel())

	var out bytes.Buffer
	Setup(&out, false)
	log.Debug("hidden")
	log.Info("shown")
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "[INFO ] shown")

	out.Reset()
	Setup(&out, true)
	log.Debug("visible")
	assert.Contains(t, out.String(), "[DEBUG] visible")
}
