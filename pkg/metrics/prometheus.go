/*
 * Copyright © 2024 Kaleido, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
 * the License. You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
 * an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
 * specific language governing permissions and limitations under the License.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector records publish durations in a histogram, the
// production Collector. Constructed once per process and registered
// against a single registry.
type PrometheusCollector struct {
	publishDuration prometheus.Histogram
}

// NewPrometheusCollector creates and registers the publisher's metrics
// against reg.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		publishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rollup_publisher",
			Name:      "publish_duration_seconds",
			Help:      "Time taken for a single publishRollup call, from batch construction to PUBLISHED; aborted calls are not recorded.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}
	reg.MustRegister(c.publishDuration)
	return c
}

func (c *PrometheusCollector) PublishTimer() StopFn {
	start := time.Now()
	return func() {
		c.publishDuration.Observe(time.Since(start).Seconds())
	}
}
