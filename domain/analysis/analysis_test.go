package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequencies(t *testing.T) {
	t.Run("empty input returns empty map", func(t *testing.T) {
		assert.Empty(t, Frequencies(""))
		assert.Empty(t, Frequencies("   \n\t  "))
	})

	t.Run("counts case-insensitively with stopwords removed", func(t *testing.T) {
		freq := Frequencies("The Quick quick FOX fox fox")

		assert.Equal(t, 3, freq["fox"])
		assert.Equal(t, 2, freq["quick"])
		assert.NotContains(t, freq, "the")
	})

	t.Run("short tokens are dropped", func(t *testing.T) {
		freq := Frequencies("cat dog ant bee elephant")
		assert.Equal(t, map[string]int{"elephant": 1}, freq)
	})

	t.Run("punctuation splits words", func(t *testing.T) {
		freq := Frequencies("mitochondria; mitochondria! (mitochondria)")
		assert.Equal(t, 3, freq["mitochondria"])
	})

	t.Run("accented words stay whole", func(t *testing.T) {
		freq := Frequencies("café café résumé")
		assert.Equal(t, 2, freq["café"])
		assert.Equal(t, 1, freq["résumé"])
	})
}

func TestExtractKeywords(t *testing.T) {
	t.Run("ranks by frequency and capitalizes", func(t *testing.T) {
		keywords := ExtractKeywords("The Quick quick FOX fox fox", 2)

		require.Len(t, keywords, 2)
		assert.Equal(t, Keyword{Text: "Fox", Frequency: 3}, keywords[0])
		assert.Equal(t, Keyword{Text: "Quick", Frequency: 2}, keywords[1])
	})

	t.Run("ties break by first appearance", func(t *testing.T) {
		keywords := ExtractKeywords("zebra apple zebra apple mango", 3)

		require.Len(t, keywords, 3)
		assert.Equal(t, "Zebra", keywords[0].Text)
		assert.Equal(t, "Apple", keywords[1].Text)
		assert.Equal(t, "Mango", keywords[2].Text)
	})

	t.Run("no matches returns empty slice", func(t *testing.T) {
		keywords := ExtractKeywords("a an the is", 10)
		assert.Empty(t, keywords)
	})

	t.Run("default cap applies for non-positive max", func(t *testing.T) {
		text := "alpha beta gamma delta epsilon theta lambda sigma omega kappa newton tesla"
		keywords := ExtractKeywords(text, 0)
		assert.Len(t, keywords, DefaultMaxKeywords)
	})

	t.Run("pure function, identical runs match", func(t *testing.T) {
		text := "photosynthesis converts light energy into chemical energy"
		first := ExtractKeywords(text, 5)
		second := ExtractKeywords(text, 5)
		assert.Equal(t, first, second)
	})
}

func TestExtractTopics(t *testing.T) {
	t.Run("importance decays by 0.15 per rank", func(t *testing.T) {
		text := "alpha alpha alpha alpha alpha beta beta beta beta gamma gamma gamma delta delta epsilon"
		topics := ExtractTopics(text, 5)

		require.Len(t, topics, 5)
		want := []float64{1, 0.85, 0.70, 0.55, 0.40}
		for i, topic := range topics {
			assert.InDelta(t, want[i], topic.Importance, 1e-9)
			assert.Equal(t, []string{topic.Name}, topic.Keywords)
		}
	})

	t.Run("importance clamps at the floor for deep ranks", func(t *testing.T) {
		text := "alpha beta gamma delta epsilon theta lambda sigma omega kappa"
		topics := ExtractTopics(text, 10)

		require.Len(t, topics, 10)
		for _, topic := range topics {
			assert.GreaterOrEqual(t, topic.Importance, importanceFloor)
		}
		assert.InDelta(t, importanceFloor, topics[9].Importance, 1e-9)
	})

	t.Run("empty text yields no topics", func(t *testing.T) {
		assert.Empty(t, ExtractTopics("", 5))
	})
}
