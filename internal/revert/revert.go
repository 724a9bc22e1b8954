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

// Package revert holds the solidity custom-error reason the chain client
// surfaces, already decoded, on a failed receipt, and classifies it as
// fatal or not. The decoding itself happens inside the chain client.
package revert

import "fmt"

// Info is the decoded revert reason for an on-chain transaction failure.
type Info struct {
	Name   string
	Params []interface{}
}

// IncorrectStateHash is the one revert name the confirmer treats as fatal:
// the rollup contract's on-chain state has advanced since the proof this
// batch carries was built, so retrying with the same payload can never
// succeed.
const IncorrectStateHash = "INCORRECT_STATE_HASH"

// IsFatal reports whether the decoded revert should abort the publish
// outright rather than fall into the ordinary retry path.
func (i *Info) IsFatal() bool {
	return i != nil && i.Name == IncorrectStateHash
}

// String renders the revert for log lines, e.g. "INCORRECT_STATE_HASH()"
// or "OTHER_ERROR(7, 0xabcd)".
func (i *Info) String() string {
	if i == nil {
		return "<no revert data>"
	}
	s := i.Name + "("
	for idx, p := range i.Params {
		if idx > 0 {
			s += ", "
		}
		s += toString(p)
	}
	return s + ")"
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
