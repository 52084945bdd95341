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

package defaults

import "time"

// Discovery timeouts and budgets for metrics backend queries.
const (
	// DiscoveryTimeout is the default timeout for one discovery call.
	// Discovery honors shorter parent context deadlines.
	DiscoveryTimeout = 30 * time.Second

	// DiscoveryRetryAttempts is the default bounded retry budget for
	// backend queries. Authentication failures are never retried.
	DiscoveryRetryAttempts = 3

	// DiscoveryRetryBackoff is the fixed delay between retry attempts.
	DiscoveryRetryBackoff = 2 * time.Second

	// DiscoveryLookback is the window over which series existence is
	// checked; metrics not seen within it are treated as absent.
	DiscoveryLookback = 15 * time.Minute

	// DiscoveryRateLimit is the default outbound queries-per-second cap
	// against the metrics backend.
	DiscoveryRateLimit = 10

	// DiscoveryRateBurst is the default outbound query burst size.
	DiscoveryRateBurst = 20
)

// Generation run limits.
const (
	// GenerateConcurrency is the default number of services discovered
	// in parallel during a generation run.
	GenerateConcurrency = 4

	// GenerateTimeout is the default total budget for a generation run.
	GenerateTimeout = 5 * time.Minute
)

// ConfigMap timeouts for Kubernetes ConfigMap operations.
const (
	// ConfigMapWriteTimeout is the timeout for writing to ConfigMaps.
	ConfigMapWriteTimeout = 30 * time.Second
)
