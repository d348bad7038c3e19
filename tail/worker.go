// Copyright 2016 Wercker Holding BV
//
// Licensed under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in
// compliance with the License. You may obtain a copy of
// the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in
// writing, software distributed under the License is
// distributed on an "AS IS" BASIS, WITHOUT WARRANTIES
// OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing
// permissions and limitations under the License.

package tail

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// Worker follows the log stream of a single pod.
type Worker struct {
	Namespace string
	Pod       string
	Container string

	// Label is prepended to every line. Empty in
	// single-pod mode.
	Label string

	Source    LogSource
	Formatter Formatter
}

// NewWorker returns a worker for pod reading from source.
func NewWorker(
	source LogSource,
	pod, label string,
) *Worker {
	return &Worker{
		Pod:       pod,
		Label:     label,
		Source:    source,
		Formatter: PlainFormatter,
	}
}

// Run opens the pod's log stream and passes every
// rendered line to emit until the stream ends or ctx is
// done. A clean end of stream and cancellation both
// return nil.
func (w *Worker) Run(
	ctx context.Context,
	emit func(string) error,
) error {
	stream, err := w.Source.OpenLogs(ctx, w.Pod)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}

		return &StreamOpenError{Pod: w.Pod, Err: err}
	}

	//nolint:errcheck,gosec // best-effort close
	defer stream.Close()

	// Unblock the reader on cancellation.
	stop := context.AfterFunc(ctx, func() {
		//nolint:errcheck,gosec // best-effort close
		stream.Close()
	})
	defer stop()

	formatter := w.Formatter
	if formatter == nil {
		formatter = PlainFormatter
	}

	reader := bufio.NewReader(stream)

	for {
		raw, readErr := reader.ReadString('\n')

		if raw != "" {
			line := Line{
				Namespace: w.Namespace,
				Pod:       w.Pod,
				Container: w.Container,
				Label:     w.Label,
				Message:   trimEOL(raw),
			}

			if emitErr := emit(
				formatter.Format(line),
			); emitErr != nil {
				if ctx.Err() != nil {
					return nil
				}

				return emitErr
			}
		}

		if readErr == nil {
			continue
		}

		if errors.Is(readErr, io.EOF) || ctx.Err() != nil {
			return nil
		}

		return &StreamInterruptedError{
			Pod: w.Pod, Err: readErr,
		}
	}
}

func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")

	return strings.TrimSuffix(s, "\r")
}
