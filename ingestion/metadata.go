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

import (
	"context"
	"fmt"

	"github.com/ironleaf/docmind/ai"
	"github.com/ironleaf/docmind/core"
)

// metadataExcerptLen bounds how much document text the classification
// prompt sees. The head of a technical document carries its identity.
const metadataExcerptLen = 3000

const metadataSystemPrompt = `Eres un clasificador de documentación técnica industrial.
Analiza el extracto del documento y devuelve SOLO un objeto JSON con esta forma exacta:

{
  "doc_type": "manual" | "datasheet" | "oferta" | "interno" | "pliego" | "informe" | "otro",
  "source": "interno" | "externo",
  "equipment": "<modelo o familia de equipo mencionado, o cadena vacía>",
  "manufacturer": "<fabricante mencionado, o cadena vacía>"
}

Reglas:
- Usa exactamente uno de los valores listados para doc_type y source.
- Si no puedes determinar un campo, usa "otro", "externo" o cadena vacía.
- No incluyas texto fuera del objeto JSON.`

// extractedFacts mirrors the JSON shape the classification prompt requests.
type extractedFacts struct {
	DocType      string `json:"doc_type"`
	Source       string `json:"source"`
	Equipment    string `json:"equipment"`
	Manufacturer string `json:"manufacturer"`
}

// extractDocumentFacts classifies a document with the mini generation model.
// Any failure falls back to defaults so metadata extraction never blocks
// ingestion.
func (p *Pipeline) extractDocumentFacts(ctx context.Context, filename, text string) core.DocumentFacts {
	facts := core.DocumentFacts{
		Filename: filename,
		DocType:  "otro",
		Source:   "externo",
	}

	excerpt := []rune(text)
	if len(excerpt) > metadataExcerptLen {
		excerpt = excerpt[:metadataExcerptLen]
	}
	user := fmt.Sprintf("Nombre de archivo: %s\n\nExtracto del documento:\n%s", filename, string(excerpt))

	result, err := p.generator.Generate(ctx, metadataSystemPrompt, user, ai.TierMini)
	if err != nil {
		p.logger.Warn("metadata extraction failed, using defaults", "filename", filename, "err", err)
		return facts
	}

	var extracted extractedFacts
	if err := ai.DecodeJSON(result.Text, &extracted); err != nil {
		p.logger.Warn("metadata extraction returned invalid JSON, using defaults",
			"filename", filename, "err", err)
		return facts
	}

	facts.DocType = core.NormalizeDocType(extracted.DocType)
	facts.Source = core.NormalizeSource(extracted.Source)
	facts.Equipment = extracted.Equipment
	facts.Manufacturer = extracted.Manufacturer
	return facts
}

// mergeFacts lets caller-supplied facts override extracted ones field by field.
func mergeFacts(extracted, overrides core.DocumentFacts) core.DocumentFacts {
	merged := extracted
	if overrides.DocId != "" {
		merged.DocId = overrides.DocId
	}
	if overrides.DocType != "" {
		merged.DocType = core.NormalizeDocType(overrides.DocType)
	}
	if overrides.Source != "" {
		merged.Source = core.NormalizeSource(overrides.Source)
	}
	if overrides.UploadedBy != "" {
		merged.UploadedBy = overrides.UploadedBy
	}
	if overrides.ProjectId != "" {
		merged.ProjectId = overrides.ProjectId
	}
	if overrides.Equipment != "" {
		merged.Equipment = overrides.Equipment
	}
	if overrides.Manufacturer != "" {
		merged.Manufacturer = overrides.Manufacturer
	}
	return merged
}
