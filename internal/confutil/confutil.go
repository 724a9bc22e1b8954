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

// Package confutil provides small config-defaulting helpers, matching the
// names and shapes of the teacher's toolkit/pkg/confutil package.
package confutil

import (
	"math/big"
	"time"
)

// P returns a pointer to v, for building struct literals of default config.
func P[T any](v T) *T { return &v }

// DurationMin returns conf if non-nil and >= min, otherwise def.
func DurationMin(conf *string, min time.Duration, def time.Duration) time.Duration {
	if conf == nil || *conf == "" {
		return def
	}
	d, err := time.ParseDuration(*conf)
	if err != nil || d < min {
		return def
	}
	return d
}

// IntMin returns conf if non-nil and >= min, otherwise def.
func IntMin(conf *int, min int, def int) int {
	if conf == nil || *conf < min {
		return def
	}
	return *conf
}

// BigIntOrNil parses a decimal or 0x-prefixed string into a *big.Int, or
// returns nil if conf is nil/empty/unparseable.
func BigIntOrNil(conf *string) *big.Int {
	if conf == nil || *conf == "" {
		return nil
	}
	v, ok := new(big.Int).SetString(*conf, 0)
	if !ok {
		return nil
	}
	return v
}

// BigIntOrDefault parses conf the same way as BigIntOrNil, falling back to
// def when conf cannot be parsed.
func BigIntOrDefault(conf *string, def *big.Int) *big.Int {
	if v := BigIntOrNil(conf); v != nil {
		return v
	}
	return def
}
