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

// Package metrics declares the metrics collaborator (spec §6) and a
// prometheus-backed implementation.
package metrics

// StopFn stops a publish-duration measurement started by PublishTimer.
type StopFn func()

// Collector is the external metrics collaborator the orchestrator starts
// and stops a publish timer against.
type Collector interface {
	PublishTimer() StopFn
}

// NoopCollector discards all measurements; useful for tests and for
// callers that don't care about publish-duration metrics.
type NoopCollector struct{}

func (NoopCollector) PublishTimer() StopFn { return func() {} }
