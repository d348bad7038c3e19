package kube

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/client-go/kubernetes"
	v1 "k8s.io/client-go/kubernetes/typed/core/v1"
)

// LogOptions controls which part of a pod's log is
// streamed.
type LogOptions struct {
	// Container selects the container; empty means the
	// pod's only or default container.
	Container string

	// Timestamps prefixes every line with its RFC3339
	// timestamp.
	Timestamps bool

	// TailLines limits the initial backlog; negative
	// means the whole log.
	TailLines int64

	// Since limits the initial backlog to lines newer
	// than this; zero means no limit.
	Since time.Duration
}

// Pods enumerates and streams the pods of a single
// namespace. It implements tail.PodLister and
// tail.LogSource.
type Pods struct {
	Namespace string
	Selector  labels.Selector
	State     ContainerState
	Options   LogOptions

	client v1.PodInterface
}

// NewPods returns a Pods bound to namespace. A nil
// selector selects every pod.
func NewPods(
	clientset kubernetes.Interface,
	namespace string,
	selector labels.Selector,
	state ContainerState,
	opts LogOptions,
) *Pods {
	if selector == nil {
		selector = labels.Everything()
	}

	return &Pods{
		Namespace: namespace,
		Selector:  selector,
		State:     state,
		Options:   opts,
		client:    clientset.CoreV1().Pods(namespace),
	}
}

// ListPods returns the names of pods matching the
// selector and container state, in API order.
func (p *Pods) ListPods(
	ctx context.Context,
) ([]string, error) {
	const errCtx = "listing pods"

	list, err := p.client.List(
		ctx,
		metav1.ListOptions{
			LabelSelector: p.Selector.String(),
		},
	)
	if err != nil {
		return nil, fmt.Errorf(
			"%s in %s: %w", errCtx, p.Namespace, err,
		)
	}

	names := make([]string, 0, len(list.Items))

	for i := range list.Items {
		pod := &list.Items[i]

		if !p.State.MatchPod(pod, p.Options.Container) {
			continue
		}

		names = append(names, pod.Name)
	}

	return names, nil
}

// OpenLogs opens a follow stream over the logs of pod.
func (p *Pods) OpenLogs(
	ctx context.Context,
	pod string,
) (io.ReadCloser, error) {
	slog.Debug(
		"opening log stream",
		"namespace", p.Namespace,
		"pod", pod,
		"container", p.Options.Container,
	)

	req := p.client.GetLogs(pod, p.Options.podLogOptions())

	stream, err := req.Stream(ctx)
	if err != nil {
		return nil, fmt.Errorf(
			"streaming logs of %s/%s: %w",
			p.Namespace, pod, err,
		)
	}

	return stream, nil
}

func (o LogOptions) podLogOptions() *corev1.PodLogOptions {
	opts := &corev1.PodLogOptions{
		Follow:     true,
		Timestamps: o.Timestamps,
		Container:  o.Container,
	}

	if o.TailLines >= 0 {
		lines := o.TailLines
		opts.TailLines = &lines
	}

	if o.Since > 0 {
		secs := int64(o.Since.Round(time.Second) / time.Second)
		if secs == 0 {
			secs = 1
		}

		opts.SinceSeconds = &secs
	}

	return opts
}
