package analysis

import (
	"fmt"
	"strings"
)

// taskSystemPrompt instructs the model to answer from the supplied context
// only and to emit bare JSON without markdown fences.
const taskSystemPrompt = `Eres un asistente técnico experto. Responde basándote ÚNICAMENTE en el contexto proporcionado.

IMPORTANTE:
- Responde ÚNICAMENTE con un JSON válido
- NO incluyas markdown ni texto adicional
- Si no encuentras información relevante, devuelve un objeto JSON vacío con la estructura solicitada
- Sé específico y conciso`

// buildTaskPrompt assembles the user message for one prompt task: the
// combined retrieval context followed by the task's question.
func buildTaskPrompt(contextText, question string) string {
	return fmt.Sprintf("CONTEXTO:\n%s\n\nPREGUNTA:\n%s", contextText, question)
}

// combineContexts joins per-document context blocks. Each block is labeled
// with its source filename so the model can attribute information.
func combineContexts(blocks []documentContext) string {
	parts := make([]string, len(blocks))
	for i, block := range blocks {
		parts[i] = fmt.Sprintf("[%s]:\n%s", block.filename, block.text)
	}
	return strings.Join(parts, "\n\n---\n\n")
}

type documentContext struct {
	filename string
	text     string
	chunks   int
}
