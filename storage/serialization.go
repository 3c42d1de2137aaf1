// Copyright 2025 Poiesic Systems
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


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/poiesic/searchit/core"
)

// Vector components use the fixed-size raw encoding so round-trips are
// bit-exact and similarity rankings reproduce across runs.
var float32SliceMUS = ord.NewSliceSer[float32](raw.Float32)

// MarshalCacheRecord serializes a CacheRecord to bytes.
// Layout: docID, fingerprint, vector, updatedAt as unix microseconds.
func MarshalCacheRecord(record *core.CacheRecord) []byte {
	updatedAt := record.UpdatedAt.UnixMicro()
	size := ord.String.Size(record.DocId) +
		ord.String.Size(record.Fingerprint) +
		float32SliceMUS.Size(record.Vector) +
		raw.Int64.Size(updatedAt)

	buf := make([]byte, size)
	n := ord.String.Marshal(record.DocId, buf)
	n += ord.String.Marshal(record.Fingerprint, buf[n:])
	n += float32SliceMUS.Marshal(record.Vector, buf[n:])
	raw.Int64.Marshal(updatedAt, buf[n:])
	return buf
}

// UnmarshalCacheRecord deserializes a CacheRecord from bytes.
// Any decoding failure is wrapped in ErrSerializationFailed; callers treat
// it as a cache miss.
func UnmarshalCacheRecord(data []byte) (*core.CacheRecord, error) {
	docID, n, err := ord.String.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: doc id: %w", ErrSerializationFailed, err)
	}
	fingerprint, fn, err := ord.String.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: fingerprint: %w", ErrSerializationFailed, err)
	}
	n += fn
	vector, vn, err := float32SliceMUS.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: vector: %w", ErrSerializationFailed, err)
	}
	n += vn
	updatedAt, _, err := raw.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: updated at: %w", ErrSerializationFailed, err)
	}

	return &core.CacheRecord{
		DocId:       docID,
		Fingerprint: fingerprint,
		Vector:      vector,
		UpdatedAt:   time.UnixMicro(updatedAt).UTC(),
	}, nil
}
