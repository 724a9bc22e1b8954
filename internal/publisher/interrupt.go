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

package publisher

import (
	"sync"
	"time"
)

// Interrupter is a single-shot, re-armable cancellation flag shared by
// every wait point in the publisher (spec §4.5). Unlike a
// context.Context, which can only move RUNNING -> cancelled, this flag
// can be cleared back to RUNNING so a subsequent publish call can
// proceed.
//
// States: RUNNING, INTERRUPT_REQUESTED.
// Transitions: RUNNING --interrupt()--> INTERRUPT_REQUESTED;
// INTERRUPT_REQUESTED --clearInterrupt()--> RUNNING.
type Interrupter struct {
	mux    sync.Mutex
	closed chan struct{}
}

// NewInterrupter returns an Interrupter starting in RUNNING.
func NewInterrupter() *Interrupter {
	return &Interrupter{closed: make(chan struct{})}
}

// Interrupt is an idempotent signal causing any in-progress publish to
// unwind to ABORTED as soon as possible.
func (i *Interrupter) Interrupt() {
	i.mux.Lock()
	defer i.mux.Unlock()
	select {
	case <-i.closed:
		// already interrupted; idempotent no-op
	default:
		close(i.closed)
	}
}

// Clear returns the flag to RUNNING. Required before the next publish
// after an interrupt.
func (i *Interrupter) Clear() {
	i.mux.Lock()
	defer i.mux.Unlock()
	select {
	case <-i.closed:
		i.closed = make(chan struct{})
	default:
		// already clear
	}
}

// IsSet reports whether the flag is currently raised.
func (i *Interrupter) IsSet() bool {
	i.mux.Lock()
	ch := i.closed
	i.mux.Unlock()
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

// SleepOrInterrupted returns as soon as either d elapses or the flag is
// raised, reporting which happened. Every waiting point in the gate,
// submitter and confirmer uses this instead of an uninterruptible sleep.
func (i *Interrupter) SleepOrInterrupted(d time.Duration) (interrupted bool) {
	i.mux.Lock()
	ch := i.closed
	i.mux.Unlock()

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ch:
		return true
	case <-timer.C:
		return false
	}
}
