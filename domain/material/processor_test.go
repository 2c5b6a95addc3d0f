package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProcessor() *Processor {
	return NewProcessor(NewTemplateGenerator())
}

func TestProcessText(t *testing.T) {
	t.Run("photosynthesis scenario", func(t *testing.T) {
		m, err := newTestProcessor().ProcessText(
			"Photosynthesis converts light energy into chemical energy", "Bio")
		require.NoError(t, err)

		assert.Equal(t, "Bio", m.Title)
		assert.NotEmpty(t, m.ID)
		assert.False(t, m.CreatedAt.IsZero())

		require.NotEmpty(t, m.Keywords)
		assert.True(t, contains(m.Keywords, "Photosynthesis") || contains(m.Keywords, "Energy"),
			"keywords %v should include Photosynthesis or Energy", m.Keywords)

		require.NotEmpty(t, m.Topics)
		wantCards := len(m.Topics)
		if wantCards > 3 {
			wantCards = 3
		}
		assert.Len(t, m.Flashcards, wantCards)
		assert.LessOrEqual(t, len(m.Summary.KeyPoints), 3)

		require.NoError(t, m.Validate())
	})

	t.Run("empty text is rejected", func(t *testing.T) {
		_, err := newTestProcessor().ProcessText("   ", "Notes")
		assert.Error(t, err)
	})

	t.Run("title defaults when missing", func(t *testing.T) {
		m, err := newTestProcessor().ProcessText("Thermodynamics governs heat transfer", "")
		require.NoError(t, err)
		assert.Equal(t, DefaultTitle, m.Title)
	})

	t.Run("flashcard difficulty escalates", func(t *testing.T) {
		text := "alpha alpha alpha alpha beta beta beta gamma gamma delta"
		m, err := newTestProcessor().ProcessText(text, "Greek")
		require.NoError(t, err)

		require.Len(t, m.Flashcards, 3)
		assert.Equal(t, DifficultyEasy, m.Flashcards[0].Difficulty)
		assert.Equal(t, DifficultyMedium, m.Flashcards[1].Difficulty)
		assert.Equal(t, DifficultyHard, m.Flashcards[2].Difficulty)
		for _, fc := range m.Flashcards {
			assert.Equal(t, m.ID, fc.MaterialID)
		}
	})

	t.Run("quiz questions put the correct answer first", func(t *testing.T) {
		m, err := newTestProcessor().ProcessText(
			"Gravity bends spacetime. Gravity shapes orbits. Orbits follow ellipses.", "Physics")
		require.NoError(t, err)

		require.NotNil(t, m.Quiz)
		require.NotEmpty(t, m.Quiz.Questions)
		for _, q := range m.Quiz.Questions {
			assert.Equal(t, 0, q.CorrectAnswer)
			assert.Len(t, q.Options, 4)
		}
	})
}

func TestSummarize(t *testing.T) {
	gen := NewTemplateGenerator()

	t.Run("brief names the first long token", func(t *testing.T) {
		summary := gen.Summarize("basic neural networks learn representations")
		assert.Equal(t, "This material covers key concepts about Neural.", summary.Brief)
	})

	t.Run("brief falls back when no long token exists", func(t *testing.T) {
		summary := gen.Summarize("a cat ran")
		assert.Contains(t, summary.Brief, "This topic")
	})

	t.Run("key points are the first three sentences", func(t *testing.T) {
		summary := gen.Summarize("First point. Second point! Third point? Fourth point.")
		assert.Equal(t, []string{"First point", "Second point", "Third point"}, summary.KeyPoints)
	})

	t.Run("key points fall back to placeholders", func(t *testing.T) {
		summary := gen.Summarize("...")
		assert.Len(t, summary.KeyPoints, 3)
	})
}

func TestProcessUpload(t *testing.T) {
	file := FileInfo{
		Name:     "lecture.pdf",
		URL:      "https://storage.example/materials/lecture.pdf",
		Size:     2048,
		MimeType: "application/pdf",
	}

	t.Run("without extracted text keywords stay empty", func(t *testing.T) {
		m, err := newTestProcessor().ProcessUpload(file, "", "")
		require.NoError(t, err)

		assert.Equal(t, "lecture.pdf", m.Title)
		assert.Empty(t, m.Keywords)
		assert.Empty(t, m.Topics)
		assert.Empty(t, m.Flashcards)
		require.NoError(t, m.Validate())
	})

	t.Run("with extracted text the pipeline runs", func(t *testing.T) {
		m, err := newTestProcessor().ProcessUpload(file, "Cells",
			"Mitochondria produce cellular energy. Mitochondria power cells.")
		require.NoError(t, err)

		assert.Equal(t, "Cells", m.Title)
		assert.Contains(t, m.Keywords, "Mitochondria")
		assert.NotEmpty(t, m.Flashcards)
	})
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
