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

package chainclient

import (
	"context"

	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
)

// Signer produces a signed, ready-to-broadcast RLP transaction from an
// unsigned one. Key management is out of the publisher's decision logic
// (spec Non-goals); this interface exists only so a RollupContract
// implementation has somewhere to get a signature from without the
// publisher ever touching key material itself.
type Signer interface {
	SignTransaction(ctx context.Context, tx *ethsigner.Transaction) (signedRLP []byte, err error)
}
