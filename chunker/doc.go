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


// Package chunker splits document text into overlapping segments under a size budget.
//
// Three strategies are provided behind the Strategy interface:
//   - fixed: a sliding window of size characters advancing by size-overlap
//   - paragraph: paragraph detection and grouping with paragraph-level overlap
//   - sentence: sentence detection and grouping with sentence-level overlap
//
// Splitting is deterministic: identical input and parameters always yield
// identical chunk boundaries, which is required for reproducible
// re-ingestion diffing.
package chunker
