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

// Package serializer writes generation reports and dashboard artifacts to
// their output destinations.
//
// Three formats are supported:
//   - JSON: machine-readable, indented
//   - YAML: human-readable, suited to version control
//   - Table: flattened key/value view for terminals
//
// Destinations are files, stdout, or Kubernetes ConfigMaps addressed with a
// cm://namespace/name URI. ConfigMap output carries the grafana_dashboard
// label so a Grafana dashboard sidecar picks the artifact up directly.
//
// Usage:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, path)
//	defer serializer.CloseQuietly(w)
//	if err := w.Serialize(ctx, report); err != nil {
//		return err
//	}
package serializer
