// Package analysis fans a structured document analysis out into independent
// sub-questions and reconciles their results.
//
// An analysis category (pliego_tecnico, contrato, oferta, documentacion)
// maps to a catalog of prompt tasks. For each task the orchestrator retrieves
// relevant chunks from every input document, assembles a combined context,
// asks the generation model the task's question, and parses the structured
// answer. Tasks run concurrently on a bounded worker pool; a failed task
// marks its own result field and never aborts the run. The completed run is
// persisted as a single record.
package analysis
