package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"exam_portal_backend/internal/model"
	"exam_portal_backend/internal/repository"
	"exam_portal_backend/internal/util"

	"gorm.io/gorm"
)

// 各题型的默认分值与字数限制
const (
	defaultMCQScore       = 1
	defaultParagraphScore = 5
	defaultEssayScore     = 10

	defaultParagraphMinWords = 10
	defaultParagraphMaxWords = 200
	defaultEssayMinWords     = 100
	defaultEssayMaxWords     = 500
)

type QuestionService struct {
	questionRepo *repository.QuestionRepository
	bankRepo     *repository.QuestionBankRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository, bankRepo *repository.QuestionBankRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo, bankRepo: bankRepo}
}

type CreateQuestionRequest struct {
	QuestionBankID string             `json:"questionBankId" binding:"required"`
	QuestionText   string             `json:"questionText" binding:"required"`
	QuestionType   model.QuestionType `json:"questionType" binding:"required"`
	Score          *int               `json:"score"`
	AnswerKey      string             `json:"answerKey"`
	MinWords       *int               `json:"minWords"`
	MaxWords       *int               `json:"maxWords"`
	Options        map[string]string  `json:"options"`
	CorrectOption  string             `json:"correctOption"`
}

// Create 创建题目，按题型校验字段并填充默认分值/字数限制
func (s *QuestionService) Create(teacherID uint, req *CreateQuestionRequest) (*model.Question, error) {
	if !model.ValidQuestionType(req.QuestionType) {
		return nil, fmt.Errorf("unsupported question type: %s", req.QuestionType)
	}

	bank, err := s.bankRepo.FindByID(req.QuestionBankID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionBankNotFound
		}
		return nil, err
	}
	if bank.OwnerID != teacherID {
		return nil, util.ErrPermissionDenied
	}

	q := &model.Question{
		QuestionBankID: req.QuestionBankID,
		QuestionText:   req.QuestionText,
		QuestionType:   req.QuestionType,
	}

	switch req.QuestionType {
	case model.MCQ:
		if len(req.Options) < 2 {
			return nil, errors.New("MCQ requires at least two options")
		}
		if _, ok := req.Options[req.CorrectOption]; !ok {
			return nil, errors.New("correct option must be one of the option keys")
		}
		raw, err := json.Marshal(req.Options)
		if err != nil {
			return nil, err
		}
		q.Options = raw
		q.CorrectOption = req.CorrectOption
		q.Score = defaultMCQScore

	case model.Paragraph, model.Essay:
		if req.AnswerKey == "" {
			return nil, errors.New("answer key is required for text questions")
		}
		q.AnswerKey = req.AnswerKey
		if req.QuestionType == model.Paragraph {
			q.Score = defaultParagraphScore
			q.MinWords = defaultParagraphMinWords
			maxWords := defaultParagraphMaxWords
			q.MaxWords = &maxWords
		} else {
			q.Score = defaultEssayScore
			q.MinWords = defaultEssayMinWords
			maxWords := defaultEssayMaxWords
			q.MaxWords = &maxWords
		}
		if req.MinWords != nil {
			q.MinWords = *req.MinWords
		}
		if req.MaxWords != nil {
			q.MaxWords = req.MaxWords
		}
		if q.MaxWords != nil && q.MinWords > *q.MaxWords {
			return nil, errors.New("minWords must not exceed maxWords")
		}
	}

	if req.Score != nil {
		if *req.Score <= 0 {
			return nil, errors.New("score must be positive")
		}
		q.Score = *req.Score
	}

	if err := s.questionRepo.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Get(id string) (*model.Question, error) {
	q, err := s.questionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Delete(id string, teacherID uint) error {
	q, err := s.Get(id)
	if err != nil {
		return err
	}
	bank, err := s.bankRepo.FindByID(q.QuestionBankID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionBankNotFound
		}
		return err
	}
	if bank.OwnerID != teacherID {
		return util.ErrPermissionDenied
	}
	return s.questionRepo.Delete(id)
}
