/*
Copyright © 2025 Sema Authors
SPDX-License-Identifier: Apache-2.0
*/
package intent

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	//go:embed data/catalog.yaml
	catalogData []byte

	catalogOnce     sync.Once
	catalogRegistry *Registry
	catalogErr      error
)

// catalogFile is the on-disk shape of an intent catalog document.
type catalogFile struct {
	APIVersion string    `yaml:"apiVersion"`
	Intents    []*Intent `yaml:"intents"`
}

// Default returns the registry populated from the built-in catalog. The
// catalog is parsed and registered once; any duplicate key or validation
// error surfaces here, before any service is processed.
func Default() (*Registry, error) {
	catalogOnce.Do(func() {
		catalogRegistry, catalogErr = LoadCatalog(catalogData)
	})
	return catalogRegistry, catalogErr
}

// LoadCatalog parses a YAML catalog document and registers every intent in
// file order into a fresh registry. File order is preserved: it becomes
// panel ordering downstream.
func LoadCatalog(data []byte) (*Registry, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal intent catalog: %w", err)
	}

	r := NewRegistry()
	for _, i := range file.Intents {
		if err := r.Register(i); err != nil {
			return nil, fmt.Errorf("failed to register intent %q: %w", i.Key, err)
		}
	}
	return r, nil
}
