package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedSplit(t *testing.T) {
	t.Run("sliding window with overlap", func(t *testing.T) {
		text := strings.Repeat("A", 1200)
		chunks, err := (FixedStrategy{}).Split(text, 500, 100)
		require.NoError(t, err)
		require.Len(t, chunks, 3)

		assert.Equal(t, 500, len(chunks[0].Text))
		assert.Equal(t, 500, len(chunks[1].Text))
		assert.Equal(t, 400, len(chunks[2].Text))

		assert.Equal(t, 0, chunks[0].Start)
		assert.Equal(t, 400, chunks[1].Start)
		assert.Equal(t, 800, chunks[2].Start)

		assert.Equal(t, 500, chunks[0].End)
		assert.Equal(t, 900, chunks[1].End)
		assert.Equal(t, 1200, chunks[2].End)
	})

	t.Run("deterministic", func(t *testing.T) {
		text := "El sistema WS600 requiere calibración periódica. " + strings.Repeat("dato ", 300)
		first, err := (FixedStrategy{}).Split(text, 200, 50)
		require.NoError(t, err)
		second, err := (FixedStrategy{}).Split(text, 200, 50)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("empty text", func(t *testing.T) {
		chunks, err := (FixedStrategy{}).Split("", 500, 100)
		require.NoError(t, err)
		assert.Empty(t, chunks)
	})

	t.Run("whitespace only text", func(t *testing.T) {
		chunks, err := (FixedStrategy{}).Split("   \n\t  ", 500, 100)
		require.NoError(t, err)
		assert.Empty(t, chunks)
	})

	t.Run("text shorter than size", func(t *testing.T) {
		chunks, err := (FixedStrategy{}).Split("short text", 500, 100)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, "short text", chunks[0].Text)
	})

	t.Run("no overlap", func(t *testing.T) {
		text := strings.Repeat("B", 1000)
		chunks, err := (FixedStrategy{}).Split(text, 500, 0)
		require.NoError(t, err)
		require.Len(t, chunks, 2)
		assert.Equal(t, 500, chunks[1].Start)
	})

	t.Run("windows advance by size minus overlap", func(t *testing.T) {
		text := strings.Repeat("C", 2000)
		chunks, err := (FixedStrategy{}).Split(text, 300, 60)
		require.NoError(t, err)
		for i := 1; i < len(chunks); i++ {
			assert.Equal(t, 240, chunks[i].Start-chunks[i-1].Start)
		}
	})

	t.Run("length bounded by size except last", func(t *testing.T) {
		text := strings.Repeat("D", 1750)
		chunks, err := (FixedStrategy{}).Split(text, 400, 80)
		require.NoError(t, err)
		for i, c := range chunks {
			if i < len(chunks)-1 {
				assert.Equal(t, 400, len(c.Text))
			} else {
				assert.LessOrEqual(t, len(c.Text), 400)
			}
		}
	})

	t.Run("overlap equal to size fails fast", func(t *testing.T) {
		_, err := (FixedStrategy{}).Split("text", 100, 100)
		assert.ErrorIs(t, err, ErrInvalidOverlap)
	})

	t.Run("overlap greater than size fails fast", func(t *testing.T) {
		_, err := (FixedStrategy{}).Split("text", 100, 150)
		assert.ErrorIs(t, err, ErrInvalidOverlap)
	})

	t.Run("negative overlap fails fast", func(t *testing.T) {
		_, err := (FixedStrategy{}).Split("text", 100, -1)
		assert.ErrorIs(t, err, ErrInvalidOverlap)
	})

	t.Run("zero size fails fast", func(t *testing.T) {
		_, err := (FixedStrategy{}).Split("text", 0, 0)
		assert.ErrorIs(t, err, ErrInvalidChunkSize)
	})

	t.Run("multibyte characters counted as single characters", func(t *testing.T) {
		text := strings.Repeat("ñ", 600)
		chunks, err := (FixedStrategy{}).Split(text, 500, 100)
		require.NoError(t, err)
		require.Len(t, chunks, 2)
		assert.Equal(t, 500, len([]rune(chunks[0].Text)))
		assert.Equal(t, 200, len([]rune(chunks[1].Text)))
	})
}

func TestParagraphSplit(t *testing.T) {
	t.Run("groups small paragraphs", func(t *testing.T) {
		text := "Primer párrafo corto.\n\nSegundo párrafo corto.\n\nTercer párrafo corto."
		chunks, err := (ParagraphStrategy{}).Split(text, 200, 0)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Contains(t, chunks[0].Text, "Primer párrafo")
		assert.Contains(t, chunks[0].Text, "Tercer párrafo")
	})

	t.Run("splits when budget exceeded", func(t *testing.T) {
		p1 := strings.Repeat("a", 150) + "."
		p2 := strings.Repeat("b", 150) + "."
		text := p1 + "\n\n" + p2
		chunks, err := (ParagraphStrategy{}).Split(text, 200, 0)
		require.NoError(t, err)
		require.Len(t, chunks, 2)
	})

	t.Run("oversized paragraph falls back to fixed", func(t *testing.T) {
		text := strings.Repeat("x", 900)
		chunks, err := (ParagraphStrategy{}).Split(text, 300, 50)
		require.NoError(t, err)
		assert.Greater(t, len(chunks), 1)
		for _, c := range chunks {
			assert.LessOrEqual(t, len([]rune(c.Text)), 300)
		}
	})

	t.Run("punctuation then capital starts new paragraph", func(t *testing.T) {
		text := "La estación queda instalada.\nEl mantenimiento es anual."
		chunks, err := (ParagraphStrategy{}).Split(text, 40, 0)
		require.NoError(t, err)
		require.Len(t, chunks, 2)
	})

	t.Run("continuation line merges", func(t *testing.T) {
		text := "La estación queda\ninstalada en la sierra."
		chunks, err := (ParagraphStrategy{}).Split(text, 200, 0)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, "La estación queda instalada en la sierra.", chunks[0].Text)
	})

	t.Run("offsets always advance", func(t *testing.T) {
		text := "Uno.\n\nDos.\n\nTres.\n\nCuatro.\n\nCinco."
		chunks, err := (ParagraphStrategy{}).Split(text, 12, 0)
		require.NoError(t, err)
		for _, c := range chunks {
			assert.Less(t, c.Start, c.End)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		text := "Párrafo uno.\n\nPárrafo dos.\n\n" + strings.Repeat("relleno ", 100)
		first, err := (ParagraphStrategy{}).Split(text, 150, 30)
		require.NoError(t, err)
		second, err := (ParagraphStrategy{}).Split(text, 150, 30)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("windows line endings normalized", func(t *testing.T) {
		text := "Uno.\r\n\r\nDos."
		chunks, err := (ParagraphStrategy{}).Split(text, 100, 0)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, "Uno.\n\nDos.", chunks[0].Text)
	})
}

func TestSentenceSplit(t *testing.T) {
	t.Run("groups sentences under budget", func(t *testing.T) {
		text := "Primera frase. Segunda frase. Tercera frase."
		chunks, err := (SentenceStrategy{}).Split(text, 100, 0)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
	})

	t.Run("splits at budget", func(t *testing.T) {
		s1 := "La bomba " + strings.Repeat("principal ", 9) + "funciona."
		s2 := "El filtro " + strings.Repeat("secundario ", 9) + "falla."
		chunks, err := (SentenceStrategy{}).Split(s1+" "+s2, 120, 0)
		require.NoError(t, err)
		require.Len(t, chunks, 2)
	})

	t.Run("oversized sentence falls back to fixed", func(t *testing.T) {
		text := strings.Repeat("y", 500) + "."
		chunks, err := (SentenceStrategy{}).Split(text, 200, 40)
		require.NoError(t, err)
		assert.Greater(t, len(chunks), 1)
	})

	t.Run("empty text", func(t *testing.T) {
		chunks, err := (SentenceStrategy{}).Split("  ", 100, 0)
		require.NoError(t, err)
		assert.Empty(t, chunks)
	})
}

func TestSplitDispatch(t *testing.T) {
	t.Run("fixed method", func(t *testing.T) {
		chunks, err := Split("some text here", MethodFixed, 100, 10)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
	})

	t.Run("paragraph method", func(t *testing.T) {
		_, err := Split("some text here", MethodParagraph, 100, 10)
		require.NoError(t, err)
	})

	t.Run("sentence method", func(t *testing.T) {
		_, err := Split("some text here.", MethodSentence, 100, 10)
		require.NoError(t, err)
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := Split("text", "semantic", 100, 10)
		assert.ErrorIs(t, err, ErrUnknownMethod)
	})

	t.Run("bad params fail before chunking", func(t *testing.T) {
		_, err := Split("text", MethodFixed, 10, 10)
		assert.ErrorIs(t, err, ErrInvalidOverlap)
	})
}
