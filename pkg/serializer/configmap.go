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

package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/semalabs/sema/pkg/defaults"
	"github.com/semalabs/sema/pkg/k8s/client"
)

// ConfigMapURIScheme prefixes output paths that address a ConfigMap.
const ConfigMapURIScheme = "cm://"

// fieldManager identifies this writer to the API server for Server-Side
// Apply ownership tracking.
const fieldManager = "sema"

// ConfigMapWriter publishes serialized artifacts into a Kubernetes
// ConfigMap, created or updated via Server-Side Apply. The ConfigMap carries
// the grafana_dashboard label so the Grafana dashboard sidecar loads it
// without further plumbing.
type ConfigMapWriter struct {
	namespace string
	name      string
	format    Format
}

// NewConfigMapWriter creates a writer targeting the named ConfigMap.
func NewConfigMapWriter(namespace, name string, format Format) *ConfigMapWriter {
	return &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    normalizeFormat(format),
	}
}

// Serialize writes the payload into the ConfigMap. The resulting data block
// has:
//   - report.{json|yaml|txt}: the serialized payload
//   - format: the format used
//   - timestamp: RFC 3339 write time
func (w *ConfigMapWriter) Serialize(ctx context.Context, payload any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	kube, _, err := client.Get()
	if err != nil {
		return fmt.Errorf("failed to get kubernetes client: %w", err)
	}

	content, err := encode(w.format, payload)
	if err != nil {
		return err
	}
	extension := "txt"
	switch w.format {
	case FormatJSON:
		extension = "json"
	case FormatYAML:
		extension = "yaml"
	}

	configMap := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "sema",
			"app.kubernetes.io/component": "dashboards",
			"grafana_dashboard":           "1",
		}).
		WithData(map[string]string{
			fmt.Sprintf("report.%s", extension): string(content),
			"format":                            string(w.format),
			"timestamp":                         time.Now().UTC().Format(time.RFC3339),
		})

	slog.Info("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"format", w.format)

	// Server-Side Apply makes the write an atomic create-or-update; Force
	// takes field ownership from any previous manager.
	_, err = kube.CoreV1().ConfigMaps(w.namespace).Apply(
		writeCtx,
		configMap,
		metav1.ApplyOptions{
			FieldManager: fieldManager,
			Force:        true,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap: %w", err)
	}
	return nil
}

// parseConfigMapURI splits a cm://namespace/name URI into its components.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}

	path := strings.TrimPrefix(uri, ConfigMapURIScheme)
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])
	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}
	return namespace, name, nil
}
