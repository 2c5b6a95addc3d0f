// Package analysis turns raw study text into ranked keywords and topics
// using frequency analysis over tokenized words.
//
// The pipeline is deliberately simple: lowercase, strip punctuation, split
// on whitespace, drop stopwords and short tokens, count, rank. All
// functions are pure and safe for concurrent use; running them twice on
// identical input yields identical output.
package analysis

import (
	"strings"
	"unicode"
)

const (
	// DefaultMaxKeywords is the keyword cap when the caller passes max <= 0.
	DefaultMaxKeywords = 10
	// DefaultMaxTopics is the topic cap when the caller passes max <= 0.
	DefaultMaxTopics = 5

	// minTokenLen filters out tokens of this length or shorter.
	minTokenLen = 3

	// importanceStep is the per-rank decay applied to topic importance.
	importanceStep = 0.15
	// importanceFloor is the clamp applied so deep ranks stay visible.
	importanceFloor = 0.05
)

// Keyword is a content word with its occurrence count.
type Keyword struct {
	Text      string `json:"keyword"`
	Frequency int    `json:"frequency"`
}

// Topic is a ranked keyword with a decaying importance score.
type Topic struct {
	Name       string   `json:"name"`
	Importance float64  `json:"importance"`
	Keywords   []string `json:"keywords"`
}

// token is a distinct term with its count and first-seen rank, which is
// the tie-break for equal frequencies.
type token struct {
	text  string
	count int
	order int
}

// Frequencies tokenizes text and counts surviving tokens. Empty or blank
// input yields an empty map, never an error.
func Frequencies(text string) map[string]int {
	counts := make(map[string]int)
	for _, tok := range tokenize(text) {
		counts[tok.text] = tok.count
	}
	return counts
}

// ExtractKeywords returns the top max keywords ranked by descending
// frequency. Ties are broken by first appearance in the text, making the
// result deterministic. Keywords are returned with their first letter
// capitalized; capitalization is cosmetic and matching stays
// case-insensitive throughout.
func ExtractKeywords(text string, max int) []Keyword {
	if max <= 0 {
		max = DefaultMaxKeywords
	}

	tokens := tokenize(text)
	if len(tokens) == 0 {
		return []Keyword{}
	}

	// Stable selection sort over (count desc, order asc). Token lists are
	// small enough that simplicity wins over sort.Slice bookkeeping.
	sortTokens(tokens)

	if len(tokens) > max {
		tokens = tokens[:max]
	}

	keywords := make([]Keyword, 0, len(tokens))
	for _, tok := range tokens {
		keywords = append(keywords, Keyword{
			Text:      Capitalize(tok.text),
			Frequency: tok.count,
		})
	}
	return keywords
}

// ExtractTopics maps the top max keywords to topics. The topic at rank i
// gets importance 1 - 0.15*i, clamped to a 0.05 floor so ranks past six
// never go non-positive. Scores are never re-normalized.
func ExtractTopics(text string, max int) []Topic {
	if max <= 0 {
		max = DefaultMaxTopics
	}

	keywords := ExtractKeywords(text, max)
	topics := make([]Topic, 0, len(keywords))
	for i, kw := range keywords {
		importance := 1 - importanceStep*float64(i)
		if importance < importanceFloor {
			importance = importanceFloor
		}
		topics = append(topics, Topic{
			Name:       kw.Text,
			Importance: importance,
			Keywords:   []string{kw.Text},
		})
	}
	return topics
}

// Capitalize upper-cases the first rune of a word.
func Capitalize(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(word)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// tokenize lowercases text, replaces every non word character with a
// space, splits on whitespace runs, drops stopwords and short tokens, and
// counts the survivors in first-seen order. Word characters follow the
// Unicode letter and digit classes, so accented words ("café") survive as
// one token instead of splitting at the accent.
func tokenize(text string) []token {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return unicode.ToLower(r)
		}
		return ' '
	}, text)

	index := make(map[string]int)
	var tokens []token
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= minTokenLen || isStopword(word) {
			continue
		}
		if i, seen := index[word]; seen {
			tokens[i].count++
			continue
		}
		index[word] = len(tokens)
		tokens = append(tokens, token{text: word, count: 1, order: len(tokens)})
	}
	return tokens
}

// sortTokens orders by descending count, then ascending first-seen order.
func sortTokens(tokens []token) {
	for i := 1; i < len(tokens); i++ {
		for j := i; j > 0 && less(tokens[j], tokens[j-1]); j-- {
			tokens[j], tokens[j-1] = tokens[j-1], tokens[j]
		}
	}
}

func less(a, b token) bool {
	if a.count != b.count {
		return a.count > b.count
	}
	return a.order < b.order
}
