package service

import (
	"encoding/json"
	"testing"

	"exam_portal_backend/internal/evaluation"
	"exam_portal_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentageOf(t *testing.T) {
	assert.InDelta(t, 25.0, percentageOf(50, 200), 1e-9)
	assert.InDelta(t, 100.0, percentageOf(20, 20), 1e-9)

	// 总分为零时按 0 处理，避免除零
	assert.Zero(t, percentageOf(50, 0))
	assert.Zero(t, percentageOf(0, 0))
}

func TestEvaluateRoutesByQuestionType(t *testing.T) {
	mcq := &model.Question{
		QuestionType:  model.MCQ,
		Score:         1,
		CorrectOption: "b",
	}
	frac, feedback, err := evaluate(mcq, &SubmitAnswerRequest{SelectedOption: "b"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, frac)
	fb, ok := feedback.(evaluation.ChoiceFeedback)
	require.True(t, ok)
	assert.True(t, fb.Correct)

	frac, _, err = evaluate(mcq, &SubmitAnswerRequest{SelectedOption: "a"})
	require.NoError(t, err)
	assert.Zero(t, frac)

	paragraph := &model.Question{
		QuestionType: model.Paragraph,
		Score:        5,
		AnswerKey:    "gravity force mass acceleration",
	}
	frac, feedback, err = evaluate(paragraph, &SubmitAnswerRequest{
		TypedAnswer: "Gravity is the force that pulls objects with mass toward each other constantly.",
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.8, frac, 1e-9)
	_, ok = feedback.(evaluation.TextFeedback)
	assert.True(t, ok)

	unknown := &model.Question{QuestionType: model.QuestionType("TrueFalse")}
	_, _, err = evaluate(unknown, &SubmitAnswerRequest{})
	assert.Error(t, err)
}

func TestEvaluateFeedbackSerializable(t *testing.T) {
	essay := &model.Question{
		QuestionType: model.Essay,
		Score:        10,
		AnswerKey:    "gravity force mass acceleration",
	}
	_, feedback, err := evaluate(essay, &SubmitAnswerRequest{
		TypedAnswer: "Gravity is the force that pulls objects with mass toward each other constantly.",
	})
	require.NoError(t, err)

	data, err := json.Marshal(feedback)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestGroupAnswersByExam(t *testing.T) {
	score := func(v float64) *float64 { return &v }
	answers := []model.StudentAnswer{
		{ExamID: "exam-a", QuestionID: "q1", ScoreEarned: score(1)},
		{ExamID: "exam-b", QuestionID: "q2", ScoreEarned: score(4)},
		{ExamID: "exam-a", QuestionID: "q3", ScoreEarned: score(0.5)},
		{ExamID: "exam-a", QuestionID: "q4"},
	}

	byExam := groupAnswersByExam(answers)
	require.Len(t, byExam, 2)
	require.Len(t, byExam["exam-a"], 3)
	require.Len(t, byExam["exam-b"], 1)

	// 组内保持原有提交顺序
	assert.Equal(t, "q1", byExam["exam-a"][0].QuestionID)
	assert.Equal(t, "q3", byExam["exam-a"][1].QuestionID)
	assert.Equal(t, "q4", byExam["exam-a"][2].QuestionID)

	// 未评分的答卷不计入总分
	total := 0.0
	for _, a := range byExam["exam-a"] {
		if a.ScoreEarned != nil {
			total += *a.ScoreEarned
		}
	}
	assert.InDelta(t, 1.5, total, 1e-9)

	assert.Empty(t, groupAnswersByExam(nil))
}

func TestScoreEarnedScaling(t *testing.T) {
	question := &model.Question{
		QuestionType: model.Paragraph,
		Score:        5,
		AnswerKey:    "gravity force mass acceleration",
	}
	frac, _, err := evaluate(question, &SubmitAnswerRequest{
		TypedAnswer: "Gravity is the force that pulls objects with mass toward each other constantly.",
	})
	require.NoError(t, err)

	scoreEarned := evaluation.RoundScore(frac * float64(question.Score))
	assert.InDelta(t, 4.0, scoreEarned, 1e-9)
}
