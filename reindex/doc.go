// Package reindex re-embeds stored chunks with a new or updated embedding
// model.
//
// Chunks are streamed from storage in batches, embedded with retry and
// exponential backoff, normalized to unit length, and written back with
// refreshed embedding facts. Chunks already carrying the target model are
// skipped unless the operation is forced. Progress is reported to a
// configurable writer.
package reindex
