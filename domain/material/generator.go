package material

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"studymesh-backend/domain/analysis"
)

// ContentGenerator produces the derived artifacts for a material. The
// template implementation below is the default; a higher-quality external
// generator can be swapped in through configuration without changing the
// Material shape.
type ContentGenerator interface {
	Summarize(text string) Summary
	Topics(text string) []analysis.Topic
	Flashcards(materialID string, topics []analysis.Topic) []Flashcard
	Quiz(topics []analysis.Topic) *Quiz
}

// TemplateGenerator derives content from frequency analysis and fixed
// sentence templates. It holds no state and is safe for concurrent use.
type TemplateGenerator struct {
	maxTopics     int
	maxFlashcards int
}

// NewTemplateGenerator creates the default template-based generator.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{
		maxTopics:     analysis.DefaultMaxTopics,
		maxFlashcards: 3,
	}
}

// Summarize produces a one-line brief naming the heuristic main topic and
// up to three verbatim key-point sentences.
func (g *TemplateGenerator) Summarize(text string) Summary {
	return Summary{
		Brief:     fmt.Sprintf("This material covers key concepts about %s.", mainTopic(text)),
		KeyPoints: keyPoints(text),
	}
}

// Topics delegates to the frequency-based topic synthesizer.
func (g *TemplateGenerator) Topics(text string) []analysis.Topic {
	return analysis.ExtractTopics(text, g.maxTopics)
}

// Flashcards emits one card per topic for the first three topics, with
// difficulty escalating easy, medium, hard. Zero topics yield exactly one
// generic fallback card.
func (g *TemplateGenerator) Flashcards(materialID string, topics []analysis.Topic) []Flashcard {
	difficulties := []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

	cards := make([]Flashcard, 0, g.maxFlashcards)
	for i, topic := range topics {
		if i >= g.maxFlashcards {
			break
		}
		cards = append(cards, Flashcard{
			ID:         uuid.New().String(),
			MaterialID: materialID,
			Question:   fmt.Sprintf("What is %s?", topic.Name),
			Answer: fmt.Sprintf("%s is a key concept that relates to the core principles discussed in this material. "+
				"It involves understanding the fundamental aspects and applications.", topic.Name),
			Difficulty: difficulties[i],
			Topic:      topic.Name,
		})
	}

	if len(cards) == 0 {
		cards = append(cards, Flashcard{
			ID:         uuid.New().String(),
			MaterialID: materialID,
			Question:   "What are the main concepts covered?",
			Answer:     "This material covers fundamental concepts and their practical applications.",
			Difficulty: DifficultyMedium,
			Topic:      "General",
		})
	}

	return cards
}

// Quiz emits up to three multiple-choice questions, one per topic, with
// the correct answer always at option index 0. Zero topics yield one
// generic question.
func (g *TemplateGenerator) Quiz(topics []analysis.Topic) *Quiz {
	quiz := &Quiz{ID: uuid.New().String()}

	for i, topic := range topics {
		if i >= g.maxFlashcards {
			break
		}
		quiz.Questions = append(quiz.Questions, QuizQuestion{
			ID:       fmt.Sprintf("q-%d", i),
			Question: fmt.Sprintf("Which of the following best describes %s?", topic.Name),
			Options: []string{
				fmt.Sprintf("A fundamental concept related to %s", topic.Name),
				"An unrelated topic",
				"A different concept entirely",
				"None of the above",
			},
			CorrectAnswer: 0,
			Explanation:   fmt.Sprintf("%s is a key concept covered in this material.", topic.Name),
		})
	}

	if len(quiz.Questions) == 0 {
		quiz.Questions = append(quiz.Questions, QuizQuestion{
			ID:       "q-0",
			Question: "What is the main focus of this material?",
			Options: []string{
				"Core concepts and principles",
				"Unrelated information",
				"Random facts",
				"None of the above",
			},
			CorrectAnswer: 0,
			Explanation:   "This material focuses on core concepts and principles.",
		})
	}

	return quiz
}

// mainTopic picks the first raw token longer than five characters,
// capitalized, falling back to a generic phrase.
func mainTopic(text string) string {
	for _, word := range strings.Fields(text) {
		if len([]rune(word)) > 5 {
			return analysis.Capitalize(word)
		}
	}
	return "This topic"
}

// keyPoints returns the first three non-empty sentences verbatim (trimmed),
// or three generic placeholders when the text has none.
func keyPoints(text string) []string {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	points := make([]string, 0, 3)
	for _, s := range sentences {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			continue
		}
		points = append(points, trimmed)
		if len(points) == 3 {
			break
		}
	}

	if len(points) == 0 {
		return []string{
			"Core concepts and fundamental principles",
			"Practical applications and examples",
			"Important relationships and connections",
		}
	}
	return points
}
