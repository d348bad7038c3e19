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

package kube

import (
	"errors"

	corev1 "k8s.io/api/core/v1"
)

// ContainerState selects pods by the state of their
// containers.
type ContainerState string

const (
	// AnyState selects every pod.
	AnyState ContainerState = ""
	// Running selects pods with a running container.
	Running ContainerState = "running"
	// Waiting selects pods with a waiting container.
	Waiting ContainerState = "waiting"
	// Terminated selects pods with a terminated
	// container.
	Terminated ContainerState = "terminated"
)

// ErrInvalidContainerState is returned when the state
// is not one of running, waiting, terminated or empty.
var ErrInvalidContainerState = errors.New(
	"container state should be one of" +
		" 'running', 'waiting', 'terminated' or empty",
)

// NewContainerState validates and returns a
// ContainerState from the given string.
func NewContainerState(
	stateConfig string,
) (ContainerState, error) {
	switch ContainerState(stateConfig) {
	case AnyState:
		return AnyState, nil
	case Running:
		return Running, nil
	case Waiting:
		return Waiting, nil
	case Terminated:
		return Terminated, nil
	default:
		return "", ErrInvalidContainerState
	}
}

// Match returns true if the ContainerState matches the
// given Kubernetes container state.
func (s ContainerState) Match(
	containerState corev1.ContainerState,
) bool {
	return s == AnyState ||
		(s == Running &&
			containerState.Running != nil) ||
		(s == Waiting &&
			containerState.Waiting != nil) ||
		(s == Terminated &&
			containerState.Terminated != nil)
}

// MatchPod returns true if any container of pod, init
// containers included, is in state s. Every pod matches
// AnyState, including pods with no reported status yet.
// When container is set only statuses of that container
// are considered.
func (s ContainerState) MatchPod(
	pod *corev1.Pod,
	container string,
) bool {
	if s == AnyState {
		return true
	}

	var statuses []corev1.ContainerStatus
	statuses = append(
		statuses,
		pod.Status.InitContainerStatuses...,
	)
	statuses = append(
		statuses,
		pod.Status.ContainerStatuses...,
	)

	for _, status := range statuses {
		if container != "" && status.Name != container {
			continue
		}

		if s.Match(status.State) {
			return true
		}
	}

	return false
}
