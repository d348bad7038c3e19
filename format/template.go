package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/byte4ever/podtail/tail"
)

// DefaultTemplate prints the padded pod label followed
// by the log message.
const DefaultTemplate = "{{label}}{{message}}"

// Template renders lines through a fasttemplate with
// {{namespace}}, {{pod}}, {{container}}, {{label}} and
// {{message}} placeholders. Unknown placeholders are
// kept verbatim.
type Template struct {
	tpl    *fasttemplate.Template
	styler *Styler
}

// NewTemplate parses text. A nil styler disables label
// styling.
func NewTemplate(
	text string,
	styler *Styler,
) (*Template, error) {
	const errCtx = "parsing output template"

	if text == "" {
		text = DefaultTemplate
	}

	tpl, err := fasttemplate.NewTemplate(text, "{{", "}}")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return &Template{tpl: tpl, styler: styler}, nil
}

// Format implements tail.Formatter.
func (t *Template) Format(line tail.Line) string {
	values := map[string]string{
		"namespace": line.Namespace,
		"pod":       line.Pod,
		"container": line.Container,
		"label":     t.styler.Dim(line.Label),
		"message":   line.Message,
	}

	return t.tpl.ExecuteFuncString(
		func(w io.Writer, tag string) (int, error) {
			v, ok := values[strings.TrimSpace(tag)]
			if !ok {
				return io.WriteString(w, "{{"+tag+"}}")
			}

			return io.WriteString(w, v)
		},
	)
}
