package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSentences(t *testing.T) {
	sentences := splitSentences("First sentence. Second one! Is this the third? ")
	assert.Equal(t, []string{"First sentence", "Second one", "Is this the third"}, sentences)

	assert.Empty(t, splitSentences(""))
	assert.Empty(t, splitSentences("..!!??"))
}

func TestSentenceIsValid(t *testing.T) {
	assert.True(t, sentenceIsValid("a normal sentence about gravity"))
	assert.True(t, sentenceIsValid("word word word word"))
	// 同一单词出现 5 次即视为刷字数
	assert.False(t, sentenceIsValid("word word word word word"))
	// 大小写折叠后计数
	assert.False(t, sentenceIsValid("Word word WORD word worD"))
}

func TestAnalyzeContentCoverage(t *testing.T) {
	answerKey := "alpha beta gamma delta"

	partial := AnalyzeContent("alpha and beta only", answerKey)
	assert.InDelta(t, 0.5, partial.KeyCoverage, 1e-9)

	full := AnalyzeContent("alpha beta gamma delta all here", answerKey)
	assert.InDelta(t, 1.0, full.KeyCoverage, 1e-9)

	// 覆盖更多关键词时覆盖率不降
	assert.GreaterOrEqual(t, full.KeyCoverage, partial.KeyCoverage)

	none := AnalyzeContent("nothing relevant at all", answerKey)
	assert.Zero(t, none.KeyCoverage)
}

func TestAnalyzeContentEmptyAnswerKey(t *testing.T) {
	result := AnalyzeContent("some student answer here", "")
	assert.Zero(t, result.KeyCoverage)
}

func TestAnalyzeContentDistinctWords(t *testing.T) {
	// 重复词去重后计数
	result := AnalyzeContent("apple apple banana banana", "cherry")
	assert.Equal(t, 2, result.TotalWords)
}

func TestAnalyzeContentMeaningfulSentences(t *testing.T) {
	answerKey := "gravity force mass"

	// 超过 10 词且命中关键词
	meaningful := AnalyzeContent(
		"Gravity is a very important concept that we should study deeply today.",
		answerKey,
	)
	assert.Equal(t, 1, meaningful.MeaningfulSentences)

	// 命中关键词但词数不足
	short := AnalyzeContent("Gravity matters.", answerKey)
	assert.Zero(t, short.MeaningfulSentences)

	// 词数足够但与关键词无交集
	offTopic := AnalyzeContent(
		"Cooking dinner tonight requires onions tomatoes garlic basil pepper salt and patience.",
		answerKey,
	)
	assert.Zero(t, offTopic.MeaningfulSentences)
}

func TestAnalyzeContentInvalidSentencesExcluded(t *testing.T) {
	answerKey := "gravity force mass"
	spam := "gravity gravity gravity gravity gravity is definitely the answer to everything here."
	result := AnalyzeContent(spam, answerKey)
	assert.Zero(t, result.ValidSentences)
	assert.Zero(t, result.MeaningfulSentences)
}

func TestAnalyzeStructure(t *testing.T) {
	wellStructured := "Introduction paragraph here.\nHowever the body expands the argument.\nConclusion wraps it up."
	result := AnalyzeStructure(wellStructured)
	assert.True(t, result.WellStructured)
	assert.True(t, result.HasIntroduction)
	assert.True(t, result.HasConclusion)
	assert.True(t, result.UsesTransitionWord)
	assert.Equal(t, 3, result.ParagraphCount)

	single := AnalyzeStructure("Just one short paragraph.")
	assert.False(t, single.WellStructured)
	assert.True(t, single.HasIntroduction)
	assert.False(t, single.HasConclusion)
	assert.Equal(t, 1, single.ParagraphCount)

	// 三段但没有连接词
	noTransitions := AnalyzeStructure("One.\nTwo.\nThree.")
	assert.False(t, noTransitions.WellStructured)
}
