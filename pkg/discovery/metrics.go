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

package discovery

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	discoveryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sema_discovery_duration_seconds",
			Help:    "Duration of one service inventory discovery in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	discoveryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sema_discovery_total",
			Help: "Total discovery calls by outcome",
		},
		[]string{"outcome"},
	)

	discoveryRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sema_discovery_retries_total",
			Help: "Total backend query retry attempts",
		},
	)
)
