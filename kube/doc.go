// Package kube backs the tail package with client-go: it
// enumerates pods of a namespace, optionally narrowed by
// label selector and container state, and opens follow
// streams over their logs.
package kube
