// Package ingestion provides the pipeline that turns document text into
// stored, embedded chunks.
//
// The Pipeline type manages the ingestion workflow for a document, including:
//   - Splitting text into chunks using the configured strategy
//   - Extracting document-level facts with the generation model
//   - Embedding chunks in fixed-size batches, strictly in order
//   - Persisting each batch as it completes
//   - Tracking the document's ingest status and token cost
//
// Completed batches are never rolled back when a later batch fails; recovery
// is re-ingestion, which deletes a document's chunks as a unit first.
// IngestAsync runs the same flow on a worker pool and returns a supervised
// handle so callers can observe completion or failure.
package ingestion
