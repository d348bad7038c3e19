package tail_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/podtail/tail"
)

func TestMultiplexer_Run_preserves_per_source_order(t *testing.T) {
	t.Parallel()

	src := &fakeSource{logs: map[string]string{
		"web-1": "A1\nA2\nA3\n",
		"web-2": "B1\nB2\n",
	}}

	var out bytes.Buffer

	mux := tail.NewMultiplexer(&out, 1, nil)
	mux.Add(tail.NewWorker(src, "web-1", "a "))
	mux.Add(tail.NewWorker(src, "web-2", "b "))

	require.NoError(t, mux.Run(context.Background()))

	assert.Equal(
		t,
		[]string{"a A1", "a A2", "a A3"},
		linesWithPrefix(out.String(), "a "),
	)
	assert.Equal(
		t,
		[]string{"b B1", "b B2"},
		linesWithPrefix(out.String(), "b "),
	)
}

func TestMultiplexer_Run_failed_worker_does_not_stop_others(t *testing.T) {
	t.Parallel()

	boom := errors.New("pod not found")
	src := &fakeSource{
		logs: map[string]string{"web-1": "ok\n"},
		errs: map[string]error{"web-2": boom},
	}

	var (
		mu     sync.Mutex
		failed []string
		out    bytes.Buffer
	)

	mux := tail.NewMultiplexer(
		&out, 0,
		func(pod string, err error) {
			mu.Lock()
			defer mu.Unlock()

			assert.ErrorIs(t, err, boom)
			failed = append(failed, pod)
		},
	)
	mux.Add(tail.NewWorker(src, "web-1", "1 "))
	mux.Add(tail.NewWorker(src, "web-2", "2 "))

	require.NoError(t, mux.Run(context.Background()))

	assert.Equal(t, "1 ok\n", out.String())
	assert.Equal(t, []string{"web-2"}, failed)
}

func TestMultiplexer_Run_no_workers(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	mux := tail.NewMultiplexer(&out, 0, nil)

	require.NoError(t, mux.Run(context.Background()))
	assert.Empty(t, out.String())
}

func TestMultiplexer_Run_returns_on_cancel(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()

	t.Cleanup(func() {
		//nolint:errcheck // test cleanup
		pw.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())

	mux := tail.NewMultiplexer(io.Discard, 0, nil)
	mux.Add(tail.NewWorker(pipeSource{r: pr}, "web-1", ""))

	done := make(chan error, 1)

	go func() { done <- mux.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("multiplexer did not stop after cancel")
	}
}

// failingWriter rejects every write.
type failingWriter struct{}

var errWrite = errors.New("broken pipe")

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWrite
}

func TestMultiplexer_Run_write_error(t *testing.T) {
	t.Parallel()

	src := &fakeSource{logs: map[string]string{
		"web-1": strings.Repeat("x\n", 10),
	}}

	mux := tail.NewMultiplexer(failingWriter{}, 0, nil)
	mux.Add(tail.NewWorker(src, "web-1", ""))

	err := mux.Run(context.Background())

	assert.ErrorIs(t, err, errWrite)
}

func TestMultiplexer_Run_all_lines_delivered(t *testing.T) {
	t.Parallel()

	const perPod = 200

	logs := make(map[string]string)
	pods := []string{"p-1", "p-2", "p-3", "p-4"}

	for _, p := range pods {
		logs[p] = strings.Repeat(p+"\n", perPod)
	}

	src := &fakeSource{logs: logs}

	var out bytes.Buffer

	mux := tail.NewMultiplexer(&out, 8, nil)
	for _, p := range pods {
		mux.Add(tail.NewWorker(src, p, ""))
	}

	require.NoError(t, mux.Run(context.Background()))

	got := strings.Split(
		strings.TrimSuffix(out.String(), "\n"), "\n",
	)
	assert.Len(t, got, perPod*len(pods))

	opened := src.openedPods()
	sort.Strings(opened)
	assert.Equal(t, pods, opened)
}
