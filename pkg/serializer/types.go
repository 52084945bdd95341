// Copyright (c) 2025, Sema Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import "context"

// Serializer writes one payload to its destination. The context matters for
// destinations backed by I/O with real latency, such as ConfigMap writes.
type Serializer interface {
	Serialize(ctx context.Context, payload any) error
}

// Closer is implemented by serializers holding resources, such as open file
// handles.
type Closer interface {
	Close() error
}

// CloseQuietly closes the serializer if it implements Closer. Intended for
// defer sites where the close error has nowhere useful to go.
func CloseQuietly(s Serializer) {
	if c, ok := s.(Closer); ok {
		_ = c.Close()
	}
}
