// Copyright 2025 Ironleaf Labs
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

// Package ragconfig manages the runtime-mutable retrieval parameters.
//
// A Store sits in front of a storage.ConfigRepository and serves reads
// through an explicit TTL cache, so hot paths do not hit the database on
// every query while updates become visible within one TTL window. Any
// accepted update invalidates the whole cache eagerly.
//
// Updates are validated per key: unknown keys, unparseable values, and
// out-of-bounds values are rejected individually without blocking the rest
// of the batch. Every accepted change appends an audit row.
package ragconfig
