package tail_test

import (
	"context"
	"io"
	"strings"
	"sync"
)

// fakeLister returns a fixed pod list.
type fakeLister struct {
	pods []string
	err  error
}

func (l *fakeLister) ListPods(
	context.Context,
) ([]string, error) {
	return l.pods, l.err
}

// fakeSource serves canned log content per pod and
// records which pods were opened.
type fakeSource struct {
	mu      sync.Mutex
	logs    map[string]string
	readers map[string]io.Reader
	errs    map[string]error
	opened  []string
}

func (s *fakeSource) OpenLogs(
	_ context.Context,
	pod string,
) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.opened = append(s.opened, pod)

	if err, ok := s.errs[pod]; ok {
		return nil, err
	}

	if r, ok := s.readers[pod]; ok {
		return io.NopCloser(r), nil
	}

	return io.NopCloser(
		strings.NewReader(s.logs[pod]),
	), nil
}

func (s *fakeSource) openedPods() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.opened...)
}

// linesWithPrefix returns the lines of out starting
// with prefix, in order.
func linesWithPrefix(out, prefix string) []string {
	var got []string

	for _, l := range strings.Split(out, "\n") {
		if strings.HasPrefix(l, prefix) {
			got = append(got, l)
		}
	}

	return got
}
