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
	"encoding/json"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for every type that reaches storage. Field order is part of
// the storage format: append new fields at the end, never reorder.

var (
	// IDMUS serializes IDs as varint-encoded uint64.
	IDMUS = idMUS{}
	// DocumentMUS serializes Document values.
	DocumentMUS = documentMUS{}
	// ChunkMUS serializes Chunk values including vector and metadata.
	ChunkMUS = chunkMUS{}
	// SelectionRecordMUS serializes selection audit rows.
	SelectionRecordMUS = selectionRecordMUS{}
	// AnalysisRunMUS serializes completed analysis runs.
	AnalysisRunMUS = analysisRunMUS{}
	// ConfigEntryMUS serializes configuration entries.
	ConfigEntryMUS = configEntryMUS{}
	// ConfigChangeMUS serializes configuration history rows.
	ConfigChangeMUS = configChangeMUS{}
)

var (
	float32SliceMUS = ord.NewSliceSer[float32](raw.Float32)
	taskResultsMUS  = ord.NewSliceSer[TaskResult](taskResultMUS{})
)

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

type documentMUS struct{}

func (documentMUS) Marshal(d Document, bs []byte) (n int) {
	n = IDMUS.Marshal(d.Id, bs)
	n += ord.String.Marshal(d.Filename, bs[n:])
	n += varint.Int.Marshal(int(d.Status), bs[n:])
	n += ord.String.Marshal(d.StatusError, bs[n:])
	n += varint.Int.Marshal(d.ChunkCount, bs[n:])
	n += varint.Int.Marshal(d.TokensUsed, bs[n:])
	n += raw.TimeUnixMicro.Marshal(d.InsertedAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(d.UpdatedAt, bs[n:])
	return n
}

func (documentMUS) Unmarshal(bs []byte) (d Document, n int, err error) {
	var n1 int
	if d.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if d.Filename, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	var status int
	if status, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	d.Status = IngestStatus(status)
	if d.StatusError, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if d.ChunkCount, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if d.TokensUsed, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if d.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if d.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (documentMUS) Size(d Document) (size int) {
	size = IDMUS.Size(d.Id)
	size += ord.String.Size(d.Filename)
	size += varint.Int.Size(int(d.Status))
	size += ord.String.Size(d.StatusError)
	size += varint.Int.Size(d.ChunkCount)
	size += varint.Int.Size(d.TokensUsed)
	size += raw.TimeUnixMicro.Size(d.InsertedAt)
	size += raw.TimeUnixMicro.Size(d.UpdatedAt)
	return size
}

func (s documentMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type documentFactsMUS struct{}

func (documentFactsMUS) Marshal(f DocumentFacts, bs []byte) (n int) {
	n = ord.String.Marshal(f.DocId, bs)
	n += ord.String.Marshal(f.Filename, bs[n:])
	n += ord.String.Marshal(f.DocType, bs[n:])
	n += ord.String.Marshal(f.Source, bs[n:])
	n += ord.String.Marshal(f.UploadedBy, bs[n:])
	n += ord.String.Marshal(f.ProjectId, bs[n:])
	n += ord.String.Marshal(f.Equipment, bs[n:])
	n += ord.String.Marshal(f.Manufacturer, bs[n:])
	return n
}

func (documentFactsMUS) Unmarshal(bs []byte) (f DocumentFacts, n int, err error) {
	fields := []*string{&f.DocId, &f.Filename, &f.DocType, &f.Source,
		&f.UploadedBy, &f.ProjectId, &f.Equipment, &f.Manufacturer}
	var n1 int
	for _, field := range fields {
		if *field, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += n1
	}
	return
}

func (documentFactsMUS) Size(f DocumentFacts) (size int) {
	for _, s := range []string{f.DocId, f.Filename, f.DocType, f.Source,
		f.UploadedBy, f.ProjectId, f.Equipment, f.Manufacturer} {
		size += ord.String.Size(s)
	}
	return size
}

func (s documentFactsMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type chunkFactsMUS struct{}

func (chunkFactsMUS) Marshal(f ChunkFacts, bs []byte) (n int) {
	n = varint.Int.Marshal(f.Index, bs)
	n += varint.Int.Marshal(f.Start, bs[n:])
	n += varint.Int.Marshal(f.End, bs[n:])
	n += varint.Int.Marshal(f.Page, bs[n:])
	n += ord.String.Marshal(f.Method, bs[n:])
	n += varint.Int.Marshal(f.Length, bs[n:])
	n += varint.Int.Marshal(f.TokenCount, bs[n:])
	return n
}

func (chunkFactsMUS) Unmarshal(bs []byte) (f ChunkFacts, n int, err error) {
	var n1 int
	ints := []*int{&f.Index, &f.Start, &f.End, &f.Page}
	for _, field := range ints {
		if *field, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += n1
	}
	if f.Method, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if f.Length, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if f.TokenCount, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (chunkFactsMUS) Size(f ChunkFacts) (size int) {
	for _, v := range []int{f.Index, f.Start, f.End, f.Page, f.Length, f.TokenCount} {
		size += varint.Int.Size(v)
	}
	size += ord.String.Size(f.Method)
	return size
}

func (s chunkFactsMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type embeddingFactsMUS struct{}

func (embeddingFactsMUS) Marshal(f EmbeddingFacts, bs []byte) (n int) {
	n = ord.String.Marshal(f.Model, bs)
	n += raw.TimeUnixMicro.Marshal(f.VectorizedAt, bs[n:])
	return n
}

func (embeddingFactsMUS) Unmarshal(bs []byte) (f EmbeddingFacts, n int, err error) {
	var n1 int
	if f.Model, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if f.VectorizedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (embeddingFactsMUS) Size(f EmbeddingFacts) int {
	return ord.String.Size(f.Model) + raw.TimeUnixMicro.Size(f.VectorizedAt)
}

func (s embeddingFactsMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type chunkMetadataMUS struct{}

func (chunkMetadataMUS) Marshal(m ChunkMetadata, bs []byte) (n int) {
	n = documentFactsMUS{}.Marshal(m.Doc, bs)
	n += chunkFactsMUS{}.Marshal(m.Chunk, bs[n:])
	n += embeddingFactsMUS{}.Marshal(m.Embedding, bs[n:])
	return n
}

func (chunkMetadataMUS) Unmarshal(bs []byte) (m ChunkMetadata, n int, err error) {
	var n1 int
	if m.Doc, n, err = (documentFactsMUS{}).Unmarshal(bs); err != nil {
		return
	}
	if m.Chunk, n1, err = (chunkFactsMUS{}).Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if m.Embedding, n1, err = (embeddingFactsMUS{}).Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (chunkMetadataMUS) Size(m ChunkMetadata) int {
	return documentFactsMUS{}.Size(m.Doc) +
		chunkFactsMUS{}.Size(m.Chunk) +
		embeddingFactsMUS{}.Size(m.Embedding)
}

func (s chunkMetadataMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type chunkMUS struct{}

func (chunkMUS) Marshal(c Chunk, bs []byte) (n int) {
	n = IDMUS.Marshal(c.Id, bs)
	n += IDMUS.Marshal(c.DocumentId, bs[n:])
	n += ord.String.Marshal(c.Text, bs[n:])
	n += varint.Int.Marshal(c.Index, bs[n:])
	n += varint.Int.Marshal(c.Start, bs[n:])
	n += varint.Int.Marshal(c.End, bs[n:])
	n += float32SliceMUS.Marshal(c.Vector, bs[n:])
	n += chunkMetadataMUS{}.Marshal(c.Metadata, bs[n:])
	n += raw.TimeUnixMicro.Marshal(c.InsertedAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(c.UpdatedAt, bs[n:])
	return n
}

func (chunkMUS) Unmarshal(bs []byte) (c Chunk, n int, err error) {
	var n1 int
	if c.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if c.DocumentId, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.Text, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	ints := []*int{&c.Index, &c.Start, &c.End}
	for _, field := range ints {
		if *field, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += n1
	}
	if c.Vector, n1, err = float32SliceMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.Metadata, n1, err = (chunkMetadataMUS{}).Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if c.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (chunkMUS) Size(c Chunk) (size int) {
	size = IDMUS.Size(c.Id)
	size += IDMUS.Size(c.DocumentId)
	size += ord.String.Size(c.Text)
	size += varint.Int.Size(c.Index)
	size += varint.Int.Size(c.Start)
	size += varint.Int.Size(c.End)
	size += float32SliceMUS.Size(c.Vector)
	size += chunkMetadataMUS{}.Size(c.Metadata)
	size += raw.TimeUnixMicro.Size(c.InsertedAt)
	size += raw.TimeUnixMicro.Size(c.UpdatedAt)
	return size
}

func (s chunkMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type selectionRecordMUS struct{}

func (selectionRecordMUS) Marshal(r SelectionRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(r.Id, bs)
	n += IDMUS.Marshal(r.ChunkId, bs[n:])
	n += IDMUS.Marshal(r.DocumentId, bs[n:])
	n += ord.String.Marshal(r.ChunkExcerpt, bs[n:])
	n += raw.Float32.Marshal(r.VectorScore, bs[n:])
	n += raw.Float32.Marshal(r.LexicalScore, bs[n:])
	n += raw.Float32.Marshal(r.HybridScore, bs[n:])
	n += raw.Float32.Marshal(r.MinSimilarity, bs[n:])
	n += raw.Float32.Marshal(r.MinHybrid, bs[n:])
	n += ord.String.Marshal(r.OperationType, bs[n:])
	n += ord.String.Marshal(r.OperationSubtype, bs[n:])
	n += ord.String.Marshal(r.QueryExcerpt, bs[n:])
	n += ord.Bool.Marshal(r.WasSelected, bs[n:])
	n += ord.String.Marshal(r.RejectionReason, bs[n:])
	n += varint.Int.Marshal(r.RankPosition, bs[n:])
	n += raw.TimeUnixMicro.Marshal(r.RecordedAt, bs[n:])
	return n
}

func (selectionRecordMUS) Unmarshal(bs []byte) (r SelectionRecord, n int, err error) {
	var n1 int
	ids := []*ID{&r.Id, &r.ChunkId, &r.DocumentId}
	for _, field := range ids {
		if *field, n1, err = IDMUS.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += n1
	}
	if r.ChunkExcerpt, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	scores := []*float32{&r.VectorScore, &r.LexicalScore, &r.HybridScore,
		&r.MinSimilarity, &r.MinHybrid}
	for _, field := range scores {
		if *field, n1, err = raw.Float32.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += n1
	}
	strs := []*string{&r.OperationType, &r.OperationSubtype, &r.QueryExcerpt}
	for _, field := range strs {
		if *field, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += n1
	}
	if r.WasSelected, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.RejectionReason, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.RankPosition, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.RecordedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (selectionRecordMUS) Size(r SelectionRecord) (size int) {
	size = IDMUS.Size(r.Id) + IDMUS.Size(r.ChunkId) + IDMUS.Size(r.DocumentId)
	for _, s := range []string{r.ChunkExcerpt, r.OperationType, r.OperationSubtype,
		r.QueryExcerpt, r.RejectionReason} {
		size += ord.String.Size(s)
	}
	for _, f := range []float32{r.VectorScore, r.LexicalScore, r.HybridScore,
		r.MinSimilarity, r.MinHybrid} {
		size += raw.Float32.Size(f)
	}
	size += ord.Bool.Size(r.WasSelected)
	size += varint.Int.Size(r.RankPosition)
	size += raw.TimeUnixMicro.Size(r.RecordedAt)
	return size
}

func (s selectionRecordMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

// jsonMapMUS stores free-form model output as a JSON string. The maps come
// from json.Unmarshal so re-encoding them cannot fail.
type jsonMapMUS struct{}

func (jsonMapMUS) Marshal(m map[string]any, bs []byte) int {
	data, err := json.Marshal(m)
	if err != nil {
		data = []byte("{}")
	}
	return ord.String.Marshal(string(data), bs)
}

func (jsonMapMUS) Unmarshal(bs []byte) (map[string]any, int, error) {
	s, n, err := ord.String.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if s == "" || s == "null" {
		return nil, n, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, n, err
	}
	return m, n, nil
}

func (jsonMapMUS) Size(m map[string]any) int {
	data, err := json.Marshal(m)
	if err != nil {
		data = []byte("{}")
	}
	return ord.String.Size(string(data))
}

func (jsonMapMUS) Skip(bs []byte) (n int, err error) {
	return ord.String.Skip(bs)
}

type taskResultMUS struct{}

func (taskResultMUS) Marshal(r TaskResult, bs []byte) (n int) {
	n = ord.String.Marshal(r.TaskId, bs)
	n += ord.String.Marshal(r.Question, bs[n:])
	n += ord.String.Marshal(r.ResultField, bs[n:])
	n += varint.Int.Marshal(int(r.State), bs[n:])
	n += jsonMapMUS{}.Marshal(r.Answer, bs[n:])
	n += ord.String.Marshal(r.Error, bs[n:])
	n += varint.Int64.Marshal(r.DurationMs, bs[n:])
	n += varint.Int.Marshal(r.TokensIn, bs[n:])
	n += varint.Int.Marshal(r.TokensOut, bs[n:])
	n += varint.Int.Marshal(r.TokensTotal, bs[n:])
	n += varint.Int.Marshal(r.ChunksUsed, bs[n:])
	n += ord.String.Marshal(r.Model, bs[n:])
	return n
}

func (taskResultMUS) Unmarshal(bs []byte) (r TaskResult, n int, err error) {
	var n1 int
	strs := []*string{&r.TaskId, &r.Question, &r.ResultField}
	for _, field := range strs {
		if *field, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += n1
	}
	var state int
	if state, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	r.State = TaskState(state)
	if r.Answer, n1, err = (jsonMapMUS{}).Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.Error, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.DurationMs, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	ints := []*int{&r.TokensIn, &r.TokensOut, &r.TokensTotal, &r.ChunksUsed}
	for _, field := range ints {
		if *field, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += n1
	}
	if r.Model, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (taskResultMUS) Size(r TaskResult) (size int) {
	for _, s := range []string{r.TaskId, r.Question, r.ResultField, r.Error, r.Model} {
		size += ord.String.Size(s)
	}
	size += varint.Int.Size(int(r.State))
	size += jsonMapMUS{}.Size(r.Answer)
	size += varint.Int64.Size(r.DurationMs)
	for _, v := range []int{r.TokensIn, r.TokensOut, r.TokensTotal, r.ChunksUsed} {
		size += varint.Int.Size(v)
	}
	return size
}

func (s taskResultMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type runStatsMUS struct{}

func (runStatsMUS) Marshal(st RunStats, bs []byte) (n int) {
	n = varint.Int64.Marshal(st.DurationMs, bs)
	n += varint.Int.Marshal(st.TokensIn, bs[n:])
	n += varint.Int.Marshal(st.TokensOut, bs[n:])
	n += varint.Int.Marshal(st.TokensTotal, bs[n:])
	n += varint.Int.Marshal(st.ChunksUsed, bs[n:])
	n += varint.Int.Marshal(st.SuccessCount, bs[n:])
	n += varint.Int.Marshal(st.FailureCount, bs[n:])
	n += ord.String.Marshal(st.Model, bs[n:])
	return n
}

func (runStatsMUS) Unmarshal(bs []byte) (st RunStats, n int, err error) {
	var n1 int
	if st.DurationMs, n, err = varint.Int64.Unmarshal(bs); err != nil {
		return
	}
	ints := []*int{&st.TokensIn, &st.TokensOut, &st.TokensTotal,
		&st.ChunksUsed, &st.SuccessCount, &st.FailureCount}
	for _, field := range ints {
		if *field, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += n1
	}
	if st.Model, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (runStatsMUS) Size(st RunStats) (size int) {
	size = varint.Int64.Size(st.DurationMs)
	for _, v := range []int{st.TokensIn, st.TokensOut, st.TokensTotal,
		st.ChunksUsed, st.SuccessCount, st.FailureCount} {
		size += varint.Int.Size(v)
	}
	size += ord.String.Size(st.Model)
	return size
}

func (s runStatsMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type analysisRunMUS struct{}

func (analysisRunMUS) Marshal(r AnalysisRun, bs []byte) (n int) {
	n = IDMUS.Marshal(r.Id, bs)
	n += ord.String.Marshal(r.AnalysisType, bs[n:])
	n += taskResultsMUS.Marshal(r.TaskResults, bs[n:])
	n += jsonMapMUS{}.Marshal(r.Consolidated, bs[n:])
	n += runStatsMUS{}.Marshal(r.Stats, bs[n:])
	n += raw.TimeUnixMicro.Marshal(r.StartedAt, bs[n:])
	return n
}

func (analysisRunMUS) Unmarshal(bs []byte) (r AnalysisRun, n int, err error) {
	var n1 int
	if r.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if r.AnalysisType, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.TaskResults, n1, err = taskResultsMUS.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.Consolidated, n1, err = (jsonMapMUS{}).Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.Stats, n1, err = (runStatsMUS{}).Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.StartedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (analysisRunMUS) Size(r AnalysisRun) (size int) {
	size = IDMUS.Size(r.Id)
	size += ord.String.Size(r.AnalysisType)
	size += taskResultsMUS.Size(r.TaskResults)
	size += jsonMapMUS{}.Size(r.Consolidated)
	size += runStatsMUS{}.Size(r.Stats)
	size += raw.TimeUnixMicro.Size(r.StartedAt)
	return size
}

func (s analysisRunMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type configEntryMUS struct{}

func (configEntryMUS) Marshal(e ConfigEntry, bs []byte) (n int) {
	n = ord.String.Marshal(e.Key, bs)
	n += ord.String.Marshal(e.Value, bs[n:])
	n += varint.Int.Marshal(int(e.Type), bs[n:])
	n += ord.Bool.Marshal(e.HasBounds, bs[n:])
	n += raw.Float64.Marshal(e.Min, bs[n:])
	n += raw.Float64.Marshal(e.Max, bs[n:])
	n += ord.String.Marshal(e.Description, bs[n:])
	n += raw.TimeUnixMicro.Marshal(e.UpdatedAt, bs[n:])
	n += ord.String.Marshal(e.UpdatedBy, bs[n:])
	return n
}

func (configEntryMUS) Unmarshal(bs []byte) (e ConfigEntry, n int, err error) {
	var n1 int
	if e.Key, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if e.Value, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	var typ int
	if typ, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	e.Type = ConfigType(typ)
	if e.HasBounds, n1, err = ord.Bool.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if e.Min, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if e.Max, n1, err = raw.Float64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if e.Description, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if e.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if e.UpdatedBy, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (configEntryMUS) Size(e ConfigEntry) (size int) {
	for _, s := range []string{e.Key, e.Value, e.Description, e.UpdatedBy} {
		size += ord.String.Size(s)
	}
	size += varint.Int.Size(int(e.Type))
	size += ord.Bool.Size(e.HasBounds)
	size += raw.Float64.Size(e.Min)
	size += raw.Float64.Size(e.Max)
	size += raw.TimeUnixMicro.Size(e.UpdatedAt)
	return size
}

func (s configEntryMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}

type configChangeMUS struct{}

func (configChangeMUS) Marshal(c ConfigChange, bs []byte) (n int) {
	n = IDMUS.Marshal(c.Id, bs)
	n += ord.String.Marshal(c.Key, bs[n:])
	n += ord.String.Marshal(c.OldValue, bs[n:])
	n += ord.String.Marshal(c.NewValue, bs[n:])
	n += ord.String.Marshal(c.ChangedBy, bs[n:])
	n += raw.TimeUnixMicro.Marshal(c.ChangedAt, bs[n:])
	return n
}

func (configChangeMUS) Unmarshal(bs []byte) (c ConfigChange, n int, err error) {
	var n1 int
	if c.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	strs := []*string{&c.Key, &c.OldValue, &c.NewValue, &c.ChangedBy}
	for _, field := range strs {
		if *field, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return
		}
		n += n1
	}
	if c.ChangedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (configChangeMUS) Size(c ConfigChange) (size int) {
	size = IDMUS.Size(c.Id)
	for _, s := range []string{c.Key, c.OldValue, c.NewValue, c.ChangedBy} {
		size += ord.String.Size(s)
	}
	size += raw.TimeUnixMicro.Size(c.ChangedAt)
	return size
}

func (s configChangeMUS) Skip(bs []byte) (n int, err error) {
	_, n, err = s.Unmarshal(bs)
	return
}
