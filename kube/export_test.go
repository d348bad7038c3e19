package kube

// Exported aliases for testing internal functions from
// the kube_test package.

// PodLogOptionsForTest exposes LogOptions.podLogOptions.
var PodLogOptionsForTest = LogOptions.podLogOptions

// KubeconfigPathForTest exposes kubeconfigPath.
var KubeconfigPathForTest = kubeconfigPath
