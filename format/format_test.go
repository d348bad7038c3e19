package format_test

import (
	"bytes"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/podtail/format"
	"github.com/byte4ever/podtail/tail"
)

var sample = tail.Line{
	Namespace: "prod",
	Pod:       "web-1",
	Container: "app",
	Label:     "web-1   ",
	Message:   "GET / 200",
}

func TestTemplate_default(t *testing.T) {
	t.Parallel()

	tpl, err := format.NewTemplate("", nil)
	require.NoError(t, err)

	assert.Equal(t, "web-1   GET / 200", tpl.Format(sample))
}

func TestTemplate_custom(t *testing.T) {
	t.Parallel()

	tpl, err := format.NewTemplate(
		"{{namespace}}/{{pod}}/{{ container }} {{message}} {{unknown}}",
		nil,
	)
	require.NoError(t, err)

	assert.Equal(
		t,
		"prod/web-1/app GET / 200 {{unknown}}",
		tpl.Format(sample),
	)
}

func TestTemplate_unclosed_tag(t *testing.T) {
	t.Parallel()

	_, err := format.NewTemplate("{{pod", nil)

	assert.Error(t, err)
}

func TestStyler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	always, err := format.NewStyler(&buf, format.ColorAlways)
	require.NoError(t, err)

	dimmed := always.Dim("web-1")
	assert.Contains(t, dimmed, "\x1b[2m")
	assert.Contains(t, dimmed, "web-1")
	assert.Empty(t, always.Dim(""))

	never, err := format.NewStyler(&buf, format.ColorNever)
	require.NoError(t, err)
	assert.Equal(t, "web-1", never.Dim("web-1"))

	_, err = format.NewStyler(&buf, "rainbow")
	assert.ErrorIs(t, err, format.ErrInvalidColor)
}

func TestTemplate_dims_label_only(t *testing.T) {
	t.Parallel()

	styler, err := format.NewStyler(
		&bytes.Buffer{}, format.ColorAlways,
	)
	require.NoError(t, err)

	tpl, err := format.NewTemplate("", styler)
	require.NoError(t, err)

	got := tpl.Format(sample)
	assert.Contains(t, got, "\x1b[2m")
	assert.Contains(t, got, "GET / 200")

	single := sample
	single.Label = ""
	assert.Equal(t, "GET / 200", tpl.Format(single))
}

func TestJSON(t *testing.T) {
	t.Parallel()

	got := format.JSON{}.Format(sample)

	var decoded map[string]string

	require.NoError(t, json.Unmarshal([]byte(got), &decoded))
	assert.Equal(t, map[string]string{
		"namespace": "prod",
		"pod":       "web-1",
		"container": "app",
		"message":   "GET / 200",
	}, decoded)
}

func TestNew(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	text, err := format.New(&buf, format.Text, "", format.ColorNever)
	require.NoError(t, err)
	assert.Equal(t, "web-1   GET / 200", text.Format(sample))

	js, err := format.New(&buf, format.JSONOutput, "", "")
	require.NoError(t, err)
	assert.IsType(t, format.JSON{}, js)

	_, err = format.New(&buf, "xml", "", "")
	assert.ErrorIs(t, err, format.ErrInvalidFormat)

	_, err = format.New(&buf, format.Text, "", "rainbow")
	assert.ErrorIs(t, err, format.ErrInvalidColor)
}
