// Package tail follows the logs of one or more pods and
// merges them into a single console stream. Pods are
// selected by exact or prefix match against user-supplied
// names. With a single match the raw log is copied
// through; with several, each line is prefixed with a
// fixed-width pod label and all streams are multiplexed
// in arrival order.
//
// The main entry point is Run, which accepts a Config
// carrying the pod lister and log source to use.
package tail
