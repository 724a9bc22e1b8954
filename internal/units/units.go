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

// Package units formats wei amounts in human units for log lines. All
// comparisons in the publisher stay in native wei; these helpers are for
// display only.
package units

import "math/big"

var (
	gwei = big.NewFloat(1e9)
	eth  = big.NewFloat(1e18)
)

// Gwei renders a wei amount as a Gwei string, e.g. "32.5000 gwei".
func Gwei(wei *big.Int) string {
	if wei == nil {
		return "<nil>"
	}
	f := new(big.Float).SetInt(wei)
	f.Quo(f, gwei)
	return f.Text('f', 4) + " gwei"
}

// Ether renders a wei amount as an ETH string, e.g. "1.250000 eth".
func Ether(wei *big.Int) string {
	if wei == nil {
		return "<nil>"
	}
	f := new(big.Float).SetInt(wei)
	f.Quo(f, eth)
	return f.Text('f', 6) + " eth"
}
