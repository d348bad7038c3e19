package format

import (
	"errors"
	"fmt"
	"io"

	"github.com/byte4ever/podtail/tail"
)

// Output formats accepted by New.
const (
	Text       = "text"
	JSONOutput = "json"
)

// ErrInvalidFormat is returned for an unknown output
// format.
var ErrInvalidFormat = errors.New(
	"output format should be one of 'text' or 'json'",
)

// New returns the formatter for format. Text output uses
// template (DefaultTemplate when empty) and styles labels
// written to w according to color.
func New(
	w io.Writer,
	format, template, color string,
) (tail.Formatter, error) {
	const errCtx = "building formatter"

	switch format {
	case Text, "":
		styler, err := NewStyler(w, color)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		tpl, err := NewTemplate(template, styler)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		return tpl, nil
	case JSONOutput:
		return JSON{}, nil
	default:
		return nil, fmt.Errorf(
			"%s: %w", errCtx, ErrInvalidFormat,
		)
	}
}
