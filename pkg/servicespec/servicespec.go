/*
Copyright © 2025 Sema Authors
SPDX-License-Identifier: Apache-2.0
*/
package servicespec

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/semalabs/sema/pkg/classifier"
	"github.com/semalabs/sema/pkg/errors"
	"github.com/semalabs/sema/pkg/intent"
)

// Service declares one service to resolve and generate artifacts for.
type Service struct {
	// ID is the stable service identifier, unique within a spec.
	ID string `json:"id" yaml:"id"`

	// Selector is the label selector scoping discovery to this service.
	Selector string `json:"selector" yaml:"selector"`

	// Technologies tags the service with its observable technologies.
	Technologies []classifier.Technology `json:"technologies" yaml:"technologies"`

	// Overrides maps intent keys to operator-chosen metric names.
	Overrides map[intent.Key]string `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

// Spec is a complete service definition document.
type Spec struct {
	// APIVersion is the document schema version.
	APIVersion string `json:"apiVersion" yaml:"apiVersion"`

	// Services lists the declared services in document order.
	Services []Service `json:"services" yaml:"services"`
}

// supportedAPIVersion is the only schema version this build understands.
const supportedAPIVersion = "v1"

// Load parses and validates a service spec document.
func Load(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSpec,
			"failed to parse service spec", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadFile reads and parses a service spec file.
func LoadFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidSpec,
			"failed to read service spec file", err,
			map[string]any{"path": path})
	}
	return Load(data)
}

// Validate checks the document for structural problems: unsupported schema
// version, empty or duplicate service IDs, missing selectors, unknown
// technology tags, and empty override targets.
func (s *Spec) Validate() error {
	if s.APIVersion != supportedAPIVersion {
		return errors.NewWithContext(errors.ErrCodeInvalidSpec,
			fmt.Sprintf("unsupported apiVersion %q, expected %q", s.APIVersion, supportedAPIVersion),
			nil)
	}
	if len(s.Services) == 0 {
		return errors.New(errors.ErrCodeInvalidSpec, "spec declares no services")
	}

	seen := make(map[string]bool, len(s.Services))
	for i := range s.Services {
		svc := &s.Services[i]
		if err := svc.validate(); err != nil {
			return err
		}
		if seen[svc.ID] {
			return errors.NewWithContext(errors.ErrCodeInvalidSpec,
				fmt.Sprintf("duplicate service id %q", svc.ID), nil)
		}
		seen[svc.ID] = true
	}
	return nil
}

func (s *Service) validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New(errors.ErrCodeInvalidSpec, "service id cannot be empty")
	}
	ctx := map[string]any{"service": s.ID}

	if strings.TrimSpace(s.Selector) == "" {
		return errors.NewWithContext(errors.ErrCodeInvalidSpec,
			"service selector cannot be empty", ctx)
	}
	if len(s.Technologies) == 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidSpec,
			"service declares no technologies", ctx)
	}
	for _, tech := range s.Technologies {
		if !tech.IsValid() || tech == classifier.TechnologyUnknown {
			return errors.NewWithContext(errors.ErrCodeInvalidSpec,
				fmt.Sprintf("unknown technology %q", tech), ctx)
		}
	}
	for key, metric := range s.Overrides {
		if strings.TrimSpace(string(key)) == "" || strings.TrimSpace(metric) == "" {
			return errors.NewWithContext(errors.ErrCodeInvalidSpec,
				"override entries require both an intent key and a metric name", ctx)
		}
	}
	return nil
}
