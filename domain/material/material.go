// Package material defines the central study-material entity and the
// content generation pipeline that derives summaries, topics, flashcards,
// and quizzes from raw text.
package material

import (
	"time"

	"studymesh-backend/domain/analysis"
	apperrors "studymesh-backend/pkg/errors"
)

// Difficulty grades a flashcard.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Material is a user-submitted study item plus everything derived from it.
// Exactly one of OriginalText and FileURL is meaningful: pasted text keeps
// the text inline, uploads reference the stored blob.
type Material struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	OriginalText string           `json:"originalText,omitempty"`
	FileURL      string           `json:"fileUrl,omitempty"`
	FileName     string           `json:"fileName,omitempty"`
	FileSize     int64            `json:"fileSize,omitempty"`
	MimeType     string           `json:"mimeType,omitempty"`
	Keywords     []string         `json:"keywords"`
	Topics       []analysis.Topic `json:"topics"`
	Summary      Summary          `json:"summary"`
	Flashcards   []Flashcard      `json:"flashcards"`
	Quiz         *Quiz            `json:"quiz,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// Summary is the short generated overview of a material.
type Summary struct {
	Brief     string   `json:"brief"`
	KeyPoints []string `json:"keyPoints"`
}

// Flashcard is a question/answer pair owned by exactly one material. It is
// generated at material creation and immutable afterward; deleting the
// material deletes its flashcards.
type Flashcard struct {
	ID         string     `json:"id"`
	MaterialID string     `json:"materialId"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Difficulty Difficulty `json:"difficulty"`
	Topic      string     `json:"topic"`
}

// Quiz is a small multiple-choice set generated alongside the flashcards.
type Quiz struct {
	ID        string         `json:"id"`
	Questions []QuizQuestion `json:"questions"`
}

// QuizQuestion is one multiple-choice question. By generation convention
// the correct answer is always option index 0; the view layer shuffles.
type QuizQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// KeywordTexts returns the capitalized keyword strings for a keyword list.
func KeywordTexts(keywords []analysis.Keyword) []string {
	texts := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		texts = append(texts, kw.Text)
	}
	return texts
}

// Validate checks the invariants every persisted material must hold.
// Empty keyword, topic, and flashcard sets are valid; unprocessable input
// still produces a material.
func (m *Material) Validate() error {
	if m.ID == "" {
		return apperrors.NewValidationError("material id cannot be empty")
	}
	if m.Title == "" {
		return apperrors.NewValidationError("material title cannot be empty")
	}
	if m.OriginalText == "" && m.FileURL == "" {
		return apperrors.NewValidationError("material needs either text or a file reference")
	}
	for _, fc := range m.Flashcards {
		if fc.MaterialID != m.ID {
			return apperrors.NewValidationError("flashcard belongs to a different material")
		}
	}
	return nil
}
