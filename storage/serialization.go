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

package storage

import (
	"github.com/ironleaf/docmind/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalChunk serializes a Chunk to bytes.
func MarshalChunk(chunk *core.Chunk) []byte {
	buf := make([]byte, core.ChunkMUS.Size(*chunk))
	core.ChunkMUS.Marshal(*chunk, buf)
	return buf
}

// UnmarshalChunk deserializes a Chunk from bytes.
func UnmarshalChunk(data []byte) (*core.Chunk, error) {
	chunk, _, err := core.ChunkMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}

// MarshalDocument serializes a Document to bytes.
func MarshalDocument(doc *core.Document) []byte {
	buf := make([]byte, core.DocumentMUS.Size(*doc))
	core.DocumentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalDocument deserializes a Document from bytes.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	doc, _, err := core.DocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// MarshalSelectionRecord serializes a SelectionRecord to bytes.
func MarshalSelectionRecord(record *core.SelectionRecord) []byte {
	buf := make([]byte, core.SelectionRecordMUS.Size(*record))
	core.SelectionRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalSelectionRecord deserializes a SelectionRecord from bytes.
func UnmarshalSelectionRecord(data []byte) (*core.SelectionRecord, error) {
	record, _, err := core.SelectionRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalAnalysisRun serializes an AnalysisRun to bytes.
func MarshalAnalysisRun(run *core.AnalysisRun) []byte {
	buf := make([]byte, core.AnalysisRunMUS.Size(*run))
	core.AnalysisRunMUS.Marshal(*run, buf)
	return buf
}

// UnmarshalAnalysisRun deserializes an AnalysisRun from bytes.
func UnmarshalAnalysisRun(data []byte) (*core.AnalysisRun, error) {
	run, _, err := core.AnalysisRunMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// MarshalConfigEntry serializes a ConfigEntry to bytes.
func MarshalConfigEntry(entry *core.ConfigEntry) []byte {
	buf := make([]byte, core.ConfigEntryMUS.Size(*entry))
	core.ConfigEntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalConfigEntry deserializes a ConfigEntry from bytes.
func UnmarshalConfigEntry(data []byte) (*core.ConfigEntry, error) {
	entry, _, err := core.ConfigEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// MarshalConfigChange serializes a ConfigChange to bytes.
func MarshalConfigChange(change *core.ConfigChange) []byte {
	buf := make([]byte, core.ConfigChangeMUS.Size(*change))
	core.ConfigChangeMUS.Marshal(*change, buf)
	return buf
}

// UnmarshalConfigChange deserializes a ConfigChange from bytes.
func UnmarshalConfigChange(data []byte) (*core.ConfigChange, error) {
	change, _, err := core.ConfigChangeMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &change, nil
}
