// Package k8s groups Kubernetes integration sub-packages.
//
// # Sub-packages
//
// client - builds Kubernetes API clients with kubeconfig and in-cluster
// discovery, used when publishing dashboard artifacts to ConfigMaps.
package k8s
