package format

import (
	json "github.com/goccy/go-json"

	"github.com/byte4ever/podtail/tail"
)

// jsonLine is the wire form of a line in JSON output.
type jsonLine struct {
	Namespace string `json:"namespace,omitempty"`
	Pod       string `json:"pod"`
	Container string `json:"container,omitempty"`
	Message   string `json:"message"`
}

// JSON renders each line as a single JSON object. The
// label is omitted; the pod name is always present.
type JSON struct{}

// Format implements tail.Formatter.
func (JSON) Format(line tail.Line) string {
	buf, err := json.Marshal(jsonLine{
		Namespace: line.Namespace,
		Pod:       line.Pod,
		Container: line.Container,
		Message:   line.Message,
	})
	if err != nil {
		return line.Message
	}

	return string(buf)
}
