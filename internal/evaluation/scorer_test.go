package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreChoice(t *testing.T) {
	score, fb := ScoreChoice("a", "a")
	assert.Equal(t, 1.0, score)
	assert.True(t, fb.Correct)
	assert.Equal(t, "Excellent choice!", fb.Feedback)

	// 大小写与首尾空格不影响判定
	score, _ = ScoreChoice(" A ", "a")
	assert.Equal(t, 1.0, score)
	score, _ = ScoreChoice("b", "B")
	assert.Equal(t, 1.0, score)

	score, fb = ScoreChoice("a", "b")
	assert.Equal(t, 0.0, score)
	assert.False(t, fb.Correct)
	assert.Equal(t, "b", fb.CorrectAnswer)
	assert.Equal(t, "Review this concept for better understanding", fb.Feedback)
}

func TestScoreTextEmptyAnswer(t *testing.T) {
	score, fb := ScoreText("", "gravity force mass", 10, nil)
	assert.Zero(t, score)
	assert.Equal(t, []string{"no answer provided."}, fb.Feedback)

	score, fb = ScoreText("   \t ", "gravity force mass", 10, nil)
	assert.Zero(t, score)
	assert.Equal(t, []string{"no answer provided."}, fb.Feedback)
}

func TestScoreTextParticipationAndCoverage(t *testing.T) {
	answerKey := "gravity force mass acceleration"

	// 覆盖 3/4 关键词、超过 10 词的有效句：0.2 参与分 + 0.6 覆盖分
	answer := "Gravity is the force that pulls objects with mass toward each other constantly."
	score, fb := ScoreText(answer, answerKey, 0, nil)
	assert.InDelta(t, 0.8, score, 1e-9)
	assert.InDelta(t, 75.0, fb.KeyCoveragePercent, 1e-9)
	assert.Equal(t, 13, fb.WordCount)
	assert.Equal(t, 1, fb.MeaningfulSentences)
	assert.Contains(t, fb.Feedback, "Shows effort in addressing the question")
	assert.Contains(t, fb.Feedback, "Good coverage of key concepts")
	assert.Contains(t, fb.Feedback, "Good response length")
}

func TestScoreTextCoverageTiersAreExclusive(t *testing.T) {
	answerKey := "gravity force mass acceleration"

	// 覆盖全部关键词时只取最高档：0.2 + 0.8 = 1.0，档位不叠加
	answer := "Gravity is the force acting on mass and causing acceleration downward every single day."
	score, fb := ScoreText(answer, answerKey, 0, nil)
	assert.InDelta(t, 1.0, score, 1e-9)
	assert.Contains(t, fb.Feedback, "Excellent coverage of key concepts")
	assert.NotContains(t, fb.Feedback, "Good coverage of key concepts")
}

func TestScoreTextFullMarksScenario(t *testing.T) {
	answerKey := "paris is the capital of france"

	// 12 个去重词覆盖 5/6 关键词（≈0.833 → 0.8 档），含一条有信息量的句子，无长度限制 → 满分
	answer := "Paris remains known worldwide as the beautiful capital city of romantic France."
	score, fb := ScoreText(answer, answerKey, 0, nil)
	assert.InDelta(t, 1.0, score, 1e-9)
	assert.InDelta(t, 500.0/6.0, fb.KeyCoveragePercent, 1e-6)
	assert.Equal(t, 12, fb.WordCount)
	assert.Equal(t, 1, fb.MeaningfulSentences)
}

func TestScoreTextLowCoverage(t *testing.T) {
	score, fb := ScoreText("Completely unrelated text here.", "gravity force mass acceleration", 0, nil)
	assert.Zero(t, score)
	assert.Contains(t, fb.Feedback, "Try to incorporate more relevant concepts")
}

func TestScoreTextLengthPenalties(t *testing.T) {
	answerKey := "gravity force mass acceleration"
	answer := "Gravity is the force that pulls objects with mass toward each other constantly."

	// 不足下限：按 13/20 线性折减
	score, fb := ScoreText(answer, answerKey, 20, nil)
	assert.InDelta(t, 0.8*13.0/20.0, score, 1e-9)
	assert.Contains(t, fb.Feedback, "Response is brief - expand to improve score (13/20 words)")

	// 超出上限：固定折减 30%
	maxWords := 5
	score, fb = ScoreText(answer, answerKey, 0, &maxWords)
	assert.InDelta(t, 0.8*0.7, score, 1e-9)
	assert.Contains(t, fb.Feedback, "Response exceeds length limit - be more concise (13/5 words)")

	// 折减后得分仍在 [0, 1] 区间
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}

func TestScoreTextDetailedDeterministic(t *testing.T) {
	answerKey := "gravity force mass acceleration"
	answer := "Gravity is the force that pulls objects with mass toward each other constantly.\nHowever the strength depends on distance.\nIn conclusion mass determines acceleration."

	score1, fb1 := ScoreTextDetailed(answer, answerKey, 0, nil)
	score2, fb2 := ScoreTextDetailed(answer, answerKey, 0, nil)
	assert.Equal(t, score1, score2)
	assert.Equal(t, fb1.Feedback, fb2.Feedback)

	// 结构良好的作答附带结构评语
	assert.Contains(t, fb1.Feedback, "Clear and well-organized presentation of ideas")
}

func TestScoreTextDetailedEmptyAnswer(t *testing.T) {
	score, fb := ScoreTextDetailed("", "gravity", 0, nil)
	assert.Zero(t, score)
	assert.Equal(t, []string{"no answer provided."}, fb.Feedback)
}

func TestRoundScore(t *testing.T) {
	assert.Equal(t, 0.52, RoundScore(0.52000001))
	assert.Equal(t, 2.67, RoundScore(2.666666))
	assert.Equal(t, 0.0, RoundScore(0))
}
