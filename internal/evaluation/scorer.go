package evaluation

import (
	"fmt"
	"math"
	"strings"
)

// ChoiceFeedback MCQ 评分反馈
type ChoiceFeedback struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
	Feedback      string `json:"feedback"`
}

// TextFeedback 自由文本评分反馈，Feedback 列表的顺序固定：
// 参与分提示、覆盖率提示、长度提示
type TextFeedback struct {
	Score               float64  `json:"score"`
	MaxScore            float64  `json:"max_score"`
	WordCount           int      `json:"word_count"`
	MeaningfulSentences int      `json:"meaningful_sentences"`
	KeyCoveragePercent  float64  `json:"key_coverage_percentage"`
	Feedback            []string `json:"feedback"`
}

// ScoreChoice 比较去除首尾空格后的选项键（忽略大小写），满分 1.0 否则 0.0
func ScoreChoice(selected, correct string) (float64, ChoiceFeedback) {
	isCorrect := strings.EqualFold(strings.TrimSpace(selected), strings.TrimSpace(correct))

	feedback := ChoiceFeedback{
		Correct:       isCorrect,
		CorrectAnswer: correct,
	}
	if isCorrect {
		feedback.Feedback = "Excellent choice!"
		return 1.0, feedback
	}
	feedback.Feedback = "Review this concept for better understanding"
	return 0.0, feedback
}

// ScoreText 自由文本评分：
//   - 参与分 0.2：存在有信息量的句子
//   - 覆盖分（单档，非累加，高档优先）：覆盖率 >=0.8 得 0.8，>=0.6 得 0.6，>=0.4 得 0.4
//   - 长度调整：不足 minWords 按 wordCount/minWords 线性折减；
//     超出 maxWords 固定折减 30%；否则不变
//
// 返回值域 [0.0, 1.0]，对相同输入完全确定。
func ScoreText(studentAnswer, answerKey string, minWords int, maxWords *int) (float64, TextFeedback) {
	if strings.TrimSpace(studentAnswer) == "" {
		return 0.0, TextFeedback{
			MaxScore: 1.0,
			Feedback: []string{"no answer provided."},
		}
	}

	analysis := AnalyzeContent(studentAnswer, answerKey)
	wordCount := analysis.TotalWords

	feedback := make([]string, 0, 3)
	score := 0.0

	if analysis.MeaningfulSentences > 0 {
		score += 0.2
		feedback = append(feedback, "Shows effort in addressing the question")
	}

	coverage := analysis.KeyCoverage
	switch {
	case coverage >= 0.8:
		score += 0.8
		feedback = append(feedback, "Excellent coverage of key concepts")
	case coverage >= 0.6:
		score += 0.6
		feedback = append(feedback, "Good coverage of key concepts")
	case coverage >= 0.4:
		score += 0.4
		feedback = append(feedback, "Consider including more key concepts")
	default:
		feedback = append(feedback, "Try to incorporate more relevant concepts")
	}

	var finalScore float64
	switch {
	case minWords > 0 && wordCount < minWords:
		finalScore = score * (float64(wordCount) / float64(minWords))
		feedback = append(feedback, fmt.Sprintf("Response is brief - expand to improve score (%d/%d words)", wordCount, minWords))
	case maxWords != nil && wordCount > *maxWords:
		finalScore = score * 0.7
		feedback = append(feedback, fmt.Sprintf("Response exceeds length limit - be more concise (%d/%d words)", wordCount, *maxWords))
	default:
		finalScore = score
		feedback = append(feedback, "Good response length")
	}

	return finalScore, TextFeedback{
		Score:               finalScore,
		MaxScore:            1.0,
		WordCount:           wordCount,
		MeaningfulSentences: analysis.MeaningfulSentences,
		KeyCoveragePercent:  coverage * 100,
		Feedback:            feedback,
	}
}

// ScoreTextDetailed 在 ScoreText 基础上叠加结构分析的定性评语，
// 用于 Essay 题型。评语列表同样对相同输入确定。
func ScoreTextDetailed(studentAnswer, answerKey string, minWords int, maxWords *int) (float64, TextFeedback) {
	finalScore, fb := ScoreText(studentAnswer, answerKey, minWords, maxWords)
	if strings.TrimSpace(studentAnswer) == "" {
		return finalScore, fb
	}

	structure := AnalyzeStructure(studentAnswer)
	fb.Feedback = append(fb.Feedback, describeStructure(finalScore, structure)...)
	return finalScore, fb
}

// describeStructure 根据结构分析与得分生成定性评语
func describeStructure(scoreFraction float64, structure StructureAnalysis) []string {
	remarks := make([]string, 0, 4)

	if structure.WellStructured {
		remarks = append(remarks, "Clear and well-organized presentation of ideas")
	} else {
		if !structure.HasIntroduction {
			remarks = append(remarks, "Consider starting with a stronger opening to engage the reader")
		}
		if !structure.HasConclusion {
			remarks = append(remarks, "Try wrapping up your main points for a stronger finish")
		}
		if !structure.UsesTransitionWord {
			remarks = append(remarks, "Adding connecting phrases between ideas could enhance readability")
		}
	}

	switch {
	case scoreFraction >= 0.8:
		remarks = append(remarks, "Excellent depth of understanding shown")
	case scoreFraction >= 0.6:
		remarks = append(remarks, "Good understanding with room for deeper analysis")
	default:
		remarks = append(remarks, "Further development of ideas would enhance your answer")
	}

	return remarks
}

// RoundScore 得分保留两位小数
func RoundScore(x float64) float64 {
	return math.Round(x*100) / 100
}
