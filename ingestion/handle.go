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


package ingestion

import "context"

// Handle supervises one asynchronous ingestion. Callers observe completion
// through Done or Wait; the outcome is never silently dropped.
type Handle struct {
	done   chan struct{}
	result *IngestResult
	err    error
}

// Done returns a channel closed when the ingestion finishes, successfully
// or not.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the ingestion finishes or ctx is cancelled, then
// returns the outcome.
func (h *Handle) Wait(ctx context.Context) (*IngestResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-h.done:
		return h.result, h.err
	}
}

// IngestAsync runs Ingest on the pipeline's worker pool and returns a
// supervised handle. The ingestion itself runs under a detached context
// bounded only by the pipeline's timeout.
func (p *Pipeline) IngestAsync(ctx context.Context, req *IngestRequest) (*Handle, error) {
	if req == nil || req.Filename == "" {
		return nil, ErrFilenameRequired
	}

	h := &Handle{done: make(chan struct{})}
	runCtx := context.WithoutCancel(ctx)

	err := p.pool.Submit(func() {
		defer close(h.done)
		h.result, h.err = p.Ingest(runCtx, req)
		if h.err != nil {
			p.logger.Error("asynchronous ingestion failed", "filename", req.Filename, "err", h.err)
		}
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}
