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


// Package search provides hybrid retrieval over stored chunks.
//
// The Searcher type implements a multi-signal retrieval algorithm that combines:
//   - Dense vector similarity against the query embedding
//   - A lexical rank statistic over the chunk text
//   - Optional fuzzy entity-name filtering on document facts
//
// Retrieval parameters (top-k, thresholds, fusion weights) are read from the
// configuration store at call time, so administrators can tune them without
// restarts. Candidates are ordered by the fused hybrid score and pass an
// acceptance filter on either the vector or the hybrid signal alone.
//
// The Auditor type writes one append-only selection record per scored
// candidate, capturing the scores and thresholds in force at evaluation time.
// Audit writes run off the caller's critical path; their failure is logged
// but never fails the retrieval that triggered them.
package search
