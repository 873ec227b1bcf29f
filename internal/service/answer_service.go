package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"exam_portal_backend/internal/evaluation"
	"exam_portal_backend/internal/model"
	"exam_portal_backend/internal/repository"
	"exam_portal_backend/internal/util"
	"exam_portal_backend/pkg/logger"
	"exam_portal_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AnswerService struct {
	answerRepo   *repository.StudentAnswerRepository
	examRepo     *repository.ExamRepository
	questionRepo *repository.QuestionRepository
	redis        *redis.Client
}

func NewAnswerService(answerRepo *repository.StudentAnswerRepository, examRepo *repository.ExamRepository, questionRepo *repository.QuestionRepository, rdb *redis.Client) *AnswerService {
	return &AnswerService{
		answerRepo:   answerRepo,
		examRepo:     examRepo,
		questionRepo: questionRepo,
		redis:        rdb,
	}
}

type SubmitAnswerRequest struct {
	QuestionID     string `json:"questionId" binding:"required"`
	SelectedOption string `json:"selectedOption"`
	TypedAnswer    string `json:"typedAnswer"`
}

// SubmitResult 提交后立即返回的评分结果
type SubmitResult struct {
	AnswerID    string      `json:"answer_id"`
	QuestionID  string      `json:"question_id"`
	SectionType string      `json:"section_type"`
	ScoreEarned float64     `json:"score_earned"`
	MaxScore    int         `json:"max_score"`
	Feedback    interface{} `json:"feedback"`
}

// Submit 学生提交单题答案并同步评分。
// 同一 (考试, 学生, 题目) 评过分后拒绝重复提交。
func (s *AnswerService) Submit(ctx context.Context, examID string, studentID uint, req *SubmitAnswerRequest) (*SubmitResult, error) {
	exam, err := s.examRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}

	question, err := s.questionRepo.FindByID(req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if question.QuestionBankID != exam.QuestionBankID {
		return nil, util.ErrQuestionNotFound
	}

	if existing, err := s.answerRepo.FindByTriple(examID, studentID, req.QuestionID); err == nil {
		if existing.IsEvaluated {
			return nil, util.ErrAnswerAlreadySubmitted
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	scoreFraction, feedback, err := evaluate(question, req)
	if err != nil {
		return nil, err
	}

	feedbackJSON, err := json.Marshal(feedback)
	if err != nil {
		return nil, err
	}

	scoreEarned := evaluation.RoundScore(scoreFraction * float64(question.Score))
	now := time.Now()
	answer := &model.StudentAnswer{
		ExamID:              examID,
		StudentID:           studentID,
		QuestionID:          req.QuestionID,
		SelectedOption:      req.SelectedOption,
		TypedAnswer:         req.TypedAnswer,
		SectionType:         question.QuestionType,
		ScoreEarned:         &scoreEarned,
		IsEvaluated:         true,
		Feedback:            string(feedbackJSON),
		EvaluationTimestamp: &now,
	}

	if err := s.answerRepo.CreateEvaluated(answer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrAnswerAlreadySubmitted
		}
		return nil, err
	}

	monitoring.AnswerEvaluations.WithLabelValues(string(question.QuestionType)).Inc()
	s.invalidateResultCache(ctx, examID)

	logger.Log.Info("答案评分完成",
		zap.String("examId", examID),
		zap.Uint("studentId", studentID),
		zap.String("questionId", req.QuestionID),
		zap.Float64("scoreEarned", scoreEarned))

	return &SubmitResult{
		AnswerID:    answer.ID,
		QuestionID:  req.QuestionID,
		SectionType: string(question.QuestionType),
		ScoreEarned: scoreEarned,
		MaxScore:    question.Score,
		Feedback:    feedback,
	}, nil
}

// evaluate 按题型路由到对应评分函数，返回得分比例与反馈
func evaluate(question *model.Question, req *SubmitAnswerRequest) (float64, interface{}, error) {
	switch question.QuestionType {
	case model.MCQ:
		frac, fb := evaluation.ScoreChoice(req.SelectedOption, question.CorrectOption)
		return frac, fb, nil
	case model.Paragraph:
		frac, fb := evaluation.ScoreText(req.TypedAnswer, question.AnswerKey, question.MinWords, question.MaxWords)
		return frac, fb, nil
	case model.Essay:
		frac, fb := evaluation.ScoreTextDetailed(req.TypedAnswer, question.AnswerKey, question.MinWords, question.MaxWords)
		return frac, fb, nil
	}
	return 0, nil, fmt.Errorf("unsupported question type: %s", question.QuestionType)
}

// invalidateResultCache 提交成功后淘汰该考试的成绩汇总缓存
func (s *AnswerService) invalidateResultCache(ctx context.Context, examID string) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, resultCacheKey(examID)).Err(); err != nil {
		logger.Log.Warn("成绩缓存淘汰失败", zap.String("examId", examID), zap.Error(err))
	}
}
