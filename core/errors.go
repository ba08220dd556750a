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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyText indicates the Text field is empty.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrInvalidOffsets indicates chunk offsets are not strictly increasing.
	ErrInvalidOffsets = errors.New("start offset must be less than end offset")

	// ErrInvalidIngestStatus indicates an invalid IngestStatus value.
	ErrInvalidIngestStatus = errors.New("invalid ingest status")

	// ErrInvalidPromptTask indicates a PromptTask failed validation.
	ErrInvalidPromptTask = errors.New("invalid prompt task")

	// ErrEmptyResultField indicates the task's result field name is empty.
	ErrEmptyResultField = errors.New("result field cannot be empty")

	// ErrEmptyQuestion indicates the task's question template is empty.
	ErrEmptyQuestion = errors.New("question cannot be empty")
)
