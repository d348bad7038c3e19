package format

import (
	"errors"
	"io"

	"github.com/muesli/termenv"
)

// Color modes accepted by NewStyler.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ErrInvalidColor is returned for an unknown color mode.
var ErrInvalidColor = errors.New(
	"color should be one of 'auto', 'always' or 'never'",
)

// Styler dims pod labels on color-capable terminals.
type Styler struct {
	output *termenv.Output
}

// NewStyler returns a Styler for w. In auto mode color
// is used only when w is a terminal that supports it.
func NewStyler(w io.Writer, mode string) (*Styler, error) {
	var opts []termenv.OutputOption

	switch mode {
	case ColorAuto, "":
	case ColorAlways:
		opts = append(opts, termenv.WithProfile(termenv.ANSI))
	case ColorNever:
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	default:
		return nil, ErrInvalidColor
	}

	return &Styler{output: termenv.NewOutput(w, opts...)}, nil
}

// Dim renders s faint. Empty strings and plain outputs
// are returned unchanged.
func (s *Styler) Dim(str string) string {
	if s == nil || str == "" {
		return str
	}

	return s.output.String(str).Faint().String()
}
