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

// Package rollupdb declares the downstream rollup database collaborator
// (spec §6) and a gorm-backed implementation, grounded on the teacher's
// own gorm usage in core/go/internal/publictxmgr/transaction_manager.go.
package rollupdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// RollupDatabase is the external rollup database the orchestrator
// persists progress to, so a restarting process can reconstruct what was
// meant to be published and locate the pending batch.
type RollupDatabase interface {
	// SetCallData persists the built rollup-proof transaction payload
	// before any on-chain attempt.
	SetCallData(ctx context.Context, rollupID uuid.UUID, rollupProofTx []byte) error
	// ConfirmSent persists the hash of the final (rollup-proof)
	// transaction once every transaction in the batch has been
	// dispatched.
	ConfirmSent(ctx context.Context, rollupID uuid.UUID, finalTxHash ethtypes.HexBytes0xPrefix) error
}
