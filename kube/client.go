package kube

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/client-go/kubernetes"
	// Register cloud auth providers referenced by
	// kubeconfig files.
	_ "k8s.io/client-go/plugin/pkg/client/auth/gcp"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// DefaultNamespace is used when neither the caller nor
// the kubeconfig context names a namespace.
const DefaultNamespace = "default"

// Connection is a clientset together with the namespace
// it should operate in.
type Connection struct {
	Clientset kubernetes.Interface
	Namespace string
}

// Connect loads the kubeconfig at path (or the default
// location, or the in-cluster config when running inside
// a pod) using kubeContext when set, and returns a
// clientset. An empty namespace is resolved from the
// selected context, falling back to DefaultNamespace.
func Connect(
	path, kubeContext, namespace string,
) (*Connection, error) {
	const errCtx = "connecting to cluster"

	clientConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		&clientcmd.ClientConfigLoadingRules{
			ExplicitPath: kubeconfigPath(path),
		},
		&clientcmd.ConfigOverrides{
			CurrentContext: kubeContext,
		},
	)

	restConfig, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf(
			"%s: building kubeconfig: %w", errCtx, err,
		)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: creating clientset: %w", errCtx, err,
		)
	}

	if namespace == "" {
		namespace = contextNamespace(clientConfig)
	}

	return &Connection{
		Clientset: clientset,
		Namespace: namespace,
	}, nil
}

// kubeconfigPath returns path, or ~/.kube/config when
// path is empty and we are not running inside a cluster.
// An empty result lets client-go fall back to the
// in-cluster config.
func kubeconfigPath(path string) string {
	if path != "" {
		return path
	}

	if _, ok := os.LookupEnv(
		"KUBERNETES_SERVICE_HOST",
	); ok {
		return ""
	}

	return filepath.Join(
		homedir.HomeDir(), ".kube", "config",
	)
}

func contextNamespace(
	clientConfig clientcmd.ClientConfig,
) string {
	ns, _, err := clientConfig.Namespace()
	if err != nil || ns == "" {
		return DefaultNamespace
	}

	return ns
}
