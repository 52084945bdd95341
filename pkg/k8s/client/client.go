// Copyright (c) 2025, Sema Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package client

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// Interface aliases kubernetes.Interface so callers can be tested against
// fake.NewSimpleClientset.
type Interface = kubernetes.Interface

var (
	once         sync.Once
	cachedClient *kubernetes.Clientset
	cachedConfig *rest.Config
	cachedErr    error
)

// Get returns a singleton Kubernetes client, creating it on first call.
// The singleton keeps connection reuse across repeated artifact writes in
// one run. Use Build for explicit kubeconfig control.
func Get() (Interface, *rest.Config, error) {
	once.Do(func() {
		cachedClient, cachedConfig, cachedErr = Build("")
	})
	return cachedClient, cachedConfig, cachedErr
}

// Build creates a Kubernetes client from the given kubeconfig path. An empty
// path triggers automatic discovery: the KUBECONFIG environment variable,
// then ~/.kube/config, then the in-cluster service account.
func Build(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	var config *rest.Config
	var err error

	if kubeconfig == "" {
		kubeconfig = os.Getenv("KUBECONFIG")
		if kubeconfig == "" {
			kubeconfig = filepath.Join(homedir.HomeDir(), ".kube", "config")
			if _, err = os.Stat(kubeconfig); os.IsNotExist(err) {
				kubeconfig = ""
			}
		}
	}

	if kubeconfig == "" {
		config, err = rest.InClusterConfig()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get in-cluster config: %w", err)
		}
	} else {
		config, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build kube config from %s: %w", kubeconfig, err)
		}
	}

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return client, config, nil
}
