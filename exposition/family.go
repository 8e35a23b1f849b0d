package exposition

import (
	"strings"
)

type label struct {
	name  string
	value string
}

type sample struct {
	labels []label
	value  string
}

// family is one metric family. Every family is a gauge.
type family struct {
	name    string
	help    string
	unit    string
	samples []sample
}

func gauge(name, help, unit, value string) family {
	return family{name: name, help: help, unit: unit, samples: []sample{{value: value}}}
}

var labelValueEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func (f family) writeTo(b *strings.Builder, namespace string) {
	name := namespace + "_" + f.name

	b.WriteString("# HELP " + name + " " + f.help + "\n")
	b.WriteString("# TYPE " + name + " gauge\n")
	b.WriteString("# UNIT " + name + " " + f.unit + "\n")

	for _, s := range f.samples {
		b.WriteString(name)
		if len(s.labels) > 0 {
			b.WriteByte('{')
			for i, l := range s.labels {
				if i > 0 {
					b.WriteByte(',')
				}
				b.WriteString(l.name + `="` + labelValueEscaper.Replace(l.value) + `"`)
			}
			b.WriteByte('}')
		}
		b.WriteString(" " + s.value + "\n")
	}
}
