package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/ironleaf/docmind/core"
)

// Key prefixes for different data types
const (
	chunkRecordPrefix    = "chkrec"
	chunkDocumentPrefix  = "chkdoc"
	chunkIDSeq           = "chkseq"
	documentRecordPrefix = "docrec"
	documentNamePrefix   = "docfnm"
	documentIDSeq        = "docseq"
	configEntryPrefix    = "cfgent"
	configChangePrefix   = "cfghis"
	configChangeIDSeq    = "cfgseq"
	selectionPrefix      = "selrec"
	selectionIDSeq       = "selseq"
	runRecordPrefix      = "runrec"
	runDatePrefix        = "rundat"
	runIDSeq             = "runseq"
)

// makeChunkKey generates a key for a chunk by ID.
func makeChunkKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", chunkRecordPrefix, id))
}

// makeChunkDocumentKey generates a composite key for the per-document index.
// Format: prefix:documentID:index. BigEndian so lexicographic order follows
// chunk index order within a document.
func makeChunkDocumentKey(documentID core.ID, index int) []byte {
	prefix := chunkDocumentPrefix + ":"
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(index))
	return buf
}

// makePartialChunkDocumentKey generates the per-document index prefix.
func makePartialChunkDocumentKey(documentID core.ID) []byte {
	prefix := chunkDocumentPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(documentID))
	return buf
}

// makeDocumentKey generates a key for a document record by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", documentRecordPrefix, id))
}

// makeDocumentNameKey generates a key for the filename index.
func makeDocumentNameKey(filename string) []byte {
	return []byte(documentNamePrefix + ":" + filename)
}

// makeConfigEntryKey generates a key for a configuration entry.
func makeConfigEntryKey(key string) []byte {
	return []byte(configEntryPrefix + ":" + key)
}

// makeConfigChangeKey generates a composite key for a history row.
// Format: prefix:timestamp:id. BigEndian so lexicographic order is
// chronological.
func makeConfigChangeKey(changedAt time.Time, id core.ID) []byte {
	return makeTimeCompositeKey(configChangePrefix, changedAt, id)
}

// makeSelectionKey generates a composite key for a selection audit row.
// Format: prefix:timestamp:id.
func makeSelectionKey(recordedAt time.Time, id core.ID) []byte {
	return makeTimeCompositeKey(selectionPrefix, recordedAt, id)
}

// makeRunKey generates a key for an analysis run by ID.
func makeRunKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", runRecordPrefix, id))
}

// makeRunDateKey generates a composite key for the run date index.
// Format: prefix:timestamp:id.
func makeRunDateKey(startedAt time.Time, id core.ID) []byte {
	return makeTimeCompositeKey(runDatePrefix, startedAt, id)
}

func makeTimeCompositeKey(prefix string, ts time.Time, id core.ID) []byte {
	p := prefix + ":"
	buf := make([]byte, len(p)+16)
	offset := copy(buf, p)
	// BigEndian so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(ts.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeUpperBoundKey returns a key past every composite key with the prefix,
// for seeding reverse iteration.
func makeUpperBoundKey(prefix string) []byte {
	p := prefix + ":"
	buf := make([]byte, len(p)+16)
	offset := copy(buf, p)
	for i := offset; i < len(buf); i++ {
		buf[i] = 0xFF
	}
	return buf
}
