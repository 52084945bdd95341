// Package client builds Kubernetes API clients for publishing generated
// dashboard artifacts into the cluster. Configuration is discovered from the
// KUBECONFIG environment variable, ~/.kube/config, or the in-cluster service
// account, in that order.
package client
