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

import (
	"fmt"
	"strings"
)

// docTypes is the closed vocabulary for DocumentFacts.DocType.
var docTypes = map[string]bool{
	"manual":    true,
	"datasheet": true,
	"oferta":    true,
	"interno":   true,
	"pliego":    true,
	"informe":   true,
	"otro":      true,
}

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//   - Start must be strictly less than End
//
// NOT validated (populated by the ingestion pipeline):
//   - Vector (can be empty until the embedding batch runs)
//   - ID (0 is valid from database sequences)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyText)
	}

	if chunk.Start >= chunk.End {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrInvalidOffsets)
	}

	return nil
}

// ValidateDocument validates a Document according to domain rules.
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.Filename == "" {
		return fmt.Errorf("%w: filename cannot be empty", ErrInvalidDocument)
	}

	if err := ValidateIngestStatus(doc.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return nil
}

// ValidateIngestStatus validates that an IngestStatus has a valid value.
func ValidateIngestStatus(status IngestStatus) error {
	switch status {
	case IngestStatusPending, IngestStatusProcessing, IngestStatusCompleted, IngestStatusFailed:
		return nil
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidIngestStatus, status)
	}
}

// ValidatePromptTask validates a PromptTask according to domain rules.
func ValidatePromptTask(task *PromptTask) error {
	if task == nil {
		return fmt.Errorf("%w: task is nil", ErrInvalidPromptTask)
	}

	if task.Question == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPromptTask, ErrEmptyQuestion)
	}

	if task.ResultField == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPromptTask, ErrEmptyResultField)
	}

	return nil
}

// NormalizeDocType lowercases and checks a document type against the closed
// vocabulary, falling back to "otro" for unknown values.
func NormalizeDocType(docType string) string {
	normalized := strings.ToLower(strings.TrimSpace(docType))
	if docTypes[normalized] {
		return normalized
	}
	return "otro"
}

// NormalizeSource checks a provenance value, falling back to "externo".
func NormalizeSource(source string) string {
	normalized := strings.ToLower(strings.TrimSpace(source))
	if normalized == "interno" || normalized == "externo" {
		return normalized
	}
	return "externo"
}

// EstimatePage estimates a page number from a chunk's start offset,
// assuming roughly 2000 characters per page.
func EstimatePage(startOffset int) int {
	const charsPerPage = 2000
	return startOffset/charsPerPage + 1
}
