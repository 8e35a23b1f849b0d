// Package logging formats log records as single lines stamped with the
// seconds elapsed since the process started.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Formatter renders "[   12.345] [INFO ] message key=value".
type Formatter struct {
	Start time.Time
}

func (f *Formatter) Format(entry *log.Entry) ([]byte, error) {
	var b bytes.Buffer

	// entry.Time carries the monotonic clock reading of time.Now
	seconds := entry.Time.Sub(f.Start).Seconds()
	fmt.Fprintf(&b, "[%10.3f] [%-5s] %s", seconds, levelName(entry.Level), entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

func levelName(level log.Level) string {
	if level == log.WarnLevel {
		return "WARN"
	}
	return strings.ToUpper(level.String())
}

// Setup installs the formatter on the standard logger. Debug records are
// dropped unless debug is set.
func Setup(out io.Writer, debug bool) {
	log.SetFormatter(&Formatter{Start: time.Now()})
	log.SetOutput(out)
	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}
