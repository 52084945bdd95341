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

package resolver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resolutionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sema_resolution_duration_seconds",
			Help:    "Duration of one service resolution pass in seconds",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	resolutionSignals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sema_resolution_signals_total",
			Help: "Total resolved signals by binding source",
		},
		[]string{"source"},
	)

	resolutionCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sema_resolution_cache_hits_total",
			Help: "Total resolution passes served from the cache",
		},
	)

	resolutionCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sema_resolution_cache_misses_total",
			Help: "Total resolution passes that required discovery",
		},
	)
)
