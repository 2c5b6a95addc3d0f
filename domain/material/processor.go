package material

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"studymesh-backend/domain/analysis"
	apperrors "studymesh-backend/pkg/errors"
)

// DefaultTitle is used when the caller supplies no title.
const DefaultTitle = "Untitled"

// Processor assembles complete Material records from raw text using an
// injected ContentGenerator. It is constructed explicitly and carries no
// process-wide state.
type Processor struct {
	generator ContentGenerator
}

// NewProcessor creates a processor around the given generator.
func NewProcessor(generator ContentGenerator) *Processor {
	return &Processor{generator: generator}
}

// ProcessText builds a material from pasted text. Text is required on this
// path; an empty title falls back to the default.
func (p *Processor) ProcessText(text, title string) (*Material, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("text cannot be empty")
	}
	if title == "" {
		title = DefaultTitle
	}

	id := uuid.New().String()
	topics := p.generator.Topics(text)

	m := &Material{
		ID:           id,
		Title:        title,
		OriginalText: text,
		Keywords:     KeywordTexts(analysis.ExtractKeywords(text, analysis.DefaultMaxKeywords)),
		Topics:       topics,
		Summary:      p.generator.Summarize(text),
		Flashcards:   p.generator.Flashcards(id, topics),
		Quiz:         p.generator.Quiz(topics),
		CreatedAt:    time.Now().UTC(),
	}

	return m, nil
}

// FileInfo describes a stored upload.
type FileInfo struct {
	Name     string
	URL      string
	Size     int64
	MimeType string
}

// ProcessUpload builds a material for an uploaded file. extractedText may
// be empty (image uploads, unparseable documents); the material is still
// created with empty keyword and topic sets, matching the partial-failure
// policy that extraction problems never fail the creation flow.
func (p *Processor) ProcessUpload(file FileInfo, title, extractedText string) (*Material, error) {
	if title == "" {
		title = file.Name
	}
	if title == "" {
		title = DefaultTitle
	}

	id := uuid.New().String()
	m := &Material{
		ID:        id,
		Title:     title,
		FileURL:   file.URL,
		FileName:  file.Name,
		FileSize:  file.Size,
		MimeType:  file.MimeType,
		Keywords:  []string{},
		Topics:    []analysis.Topic{},
		CreatedAt: time.Now().UTC(),
	}

	if strings.TrimSpace(extractedText) != "" {
		topics := p.generator.Topics(extractedText)
		m.Keywords = KeywordTexts(analysis.ExtractKeywords(extractedText, analysis.DefaultMaxKeywords))
		m.Topics = topics
		m.Summary = p.generator.Summarize(extractedText)
		m.Flashcards = p.generator.Flashcards(id, topics)
		m.Quiz = p.generator.Quiz(topics)
	}

	return m, nil
}
