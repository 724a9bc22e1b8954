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

package config

import (
	"math/big"
	"time"

	"github.com/alirezab22/aztec-connect/internal/confutil"
)

// Config carries the publisher's operator-set policy: the fee ceiling,
// the priority fee to bid, and the uniform gas limit applied to every
// transaction in a batch, plus the poll/backoff intervals used by the
// gate, submitter and confirmer.
type Config struct {
	// MaxFeePerGas is the absolute per-gas-unit ceiling (wei) passed on
	// every send, and used to size the required signer balance.
	MaxFeePerGas *string `yaml:"maxFeePerGas"`
	// MaxPriorityFeePerGas is the tip (wei) added to every send and to
	// the base fee when predicting the effective cost in the gate.
	MaxPriorityFeePerGas *string `yaml:"maxPriorityFeePerGas"`
	// GasLimit is the uniform gas limit (units) applied to every
	// transaction in the batch.
	GasLimit *uint64 `yaml:"gasLimit"`

	// GateRetryInterval is the cancellable sleep between gate polls.
	GateRetryInterval *string `yaml:"gateRetryInterval"`
	// SendRetryInterval is the cancellable sleep between per-tx send
	// retries.
	SendRetryInterval *string `yaml:"sendRetryInterval"`
	// ConfirmRetryInterval is the cancellable sleep after a non-fatal
	// revert, before the outer publish loop re-gates and re-sends.
	ConfirmRetryInterval *string `yaml:"confirmRetryInterval"`
	// ReceiptTimeout bounds how long the confirmer waits for a single
	// transaction's receipt before treating it as a timeout-abort.
	ReceiptTimeout *string `yaml:"receiptTimeout"`
}

// DefaultConfig mirrors the teacher's DefaultConfig package var pattern
// (kata/internal/signer's KeyDerivationDefaults), supplying the floors
// used by confutil when a Config field is unset.
var DefaultConfig = &Config{
	MaxFeePerGas:         confutil.P("0"),
	MaxPriorityFeePerGas: confutil.P("0"),
	GasLimit:             confutil.P(uint64(3_000_000)),
	GateRetryInterval:    confutil.P("60s"),
	SendRetryInterval:    confutil.P("60s"),
	ConfirmRetryInterval: confutil.P("60s"),
	ReceiptTimeout:       confutil.P("300s"),
}

// Resolved is the defaulted, typed form of Config consumed by the
// publisher's components.
type Resolved struct {
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
	GasLimit             uint64
	GateRetryInterval    time.Duration
	SendRetryInterval    time.Duration
	ConfirmRetryInterval time.Duration
	ReceiptTimeout       time.Duration
}

// Resolve applies DefaultConfig floors to conf, the way the teacher's
// NewPublicTransactionManager applies confutil.DurationMin/IntMin/BigIntOrNil
// against its own DefaultConfig.
func Resolve(conf *Config) *Resolved {
	if conf == nil {
		conf = &Config{}
	}
	return &Resolved{
		MaxFeePerGas:         confutil.BigIntOrDefault(conf.MaxFeePerGas, confutil.BigIntOrNil(DefaultConfig.MaxFeePerGas)),
		MaxPriorityFeePerGas: confutil.BigIntOrDefault(conf.MaxPriorityFeePerGas, confutil.BigIntOrNil(DefaultConfig.MaxPriorityFeePerGas)),
		GasLimit:             uint64(confutil.IntMin(intPtr(conf.GasLimit), 1, int(*DefaultConfig.GasLimit))),
		GateRetryInterval:    confutil.DurationMin(conf.GateRetryInterval, time.Millisecond, mustParse(*DefaultConfig.GateRetryInterval)),
		SendRetryInterval:    confutil.DurationMin(conf.SendRetryInterval, time.Millisecond, mustParse(*DefaultConfig.SendRetryInterval)),
		ConfirmRetryInterval: confutil.DurationMin(conf.ConfirmRetryInterval, time.Millisecond, mustParse(*DefaultConfig.ConfirmRetryInterval)),
		ReceiptTimeout:       confutil.DurationMin(conf.ReceiptTimeout, time.Second, mustParse(*DefaultConfig.ReceiptTimeout)),
	}
}

func intPtr(u *uint64) *int {
	if u == nil {
		return nil
	}
	v := int(*u)
	return &v
}

func mustParse(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}
	return d
}
