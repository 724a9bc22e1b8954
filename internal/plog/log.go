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

// Package plog provides the context-scoped logger used throughout the
// publisher, mirroring the shape of the teacher's toolkit/pkg/log.
package plog

import (
	"context"

	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

var root = logrus.StandardLogger()

// WithField returns a derived context carrying an additional structured
// logging field, to be picked up by the next L(ctx) call.
func WithField(ctx context.Context, key string, value interface{}) context.Context {
	entry := entryFromContext(ctx).WithField(key, value)
	return context.WithValue(ctx, ctxKey{}, entry)
}

// L returns the logger entry attached to ctx, or the root logger if none
// has been attached yet.
func L(ctx context.Context) *logrus.Entry {
	return entryFromContext(ctx)
}

func entryFromContext(ctx context.Context) *logrus.Entry {
	if ctx != nil {
		if entry, ok := ctx.Value(ctxKey{}).(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(root)
}
