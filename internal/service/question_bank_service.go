package service

import (
	"errors"

	"exam_portal_backend/internal/model"
	"exam_portal_backend/internal/repository"
	"exam_portal_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionBankService struct {
	bankRepo     *repository.QuestionBankRepository
	questionRepo *repository.QuestionRepository
}

func NewQuestionBankService(bankRepo *repository.QuestionBankRepository, questionRepo *repository.QuestionRepository) *QuestionBankService {
	return &QuestionBankService{bankRepo: bankRepo, questionRepo: questionRepo}
}

type CreateQuestionBankRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"max=1000"`
}

func (s *QuestionBankService) Create(ownerID uint, req *CreateQuestionBankRequest) (*model.QuestionBank, error) {
	bank := &model.QuestionBank{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     ownerID,
	}
	if err := s.bankRepo.Create(bank); err != nil {
		return nil, err
	}
	return bank, nil
}

func (s *QuestionBankService) Get(id string) (*model.QuestionBank, error) {
	bank, err := s.bankRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionBankNotFound
		}
		return nil, err
	}
	return bank, nil
}

func (s *QuestionBankService) ListByOwner(ownerID uint) ([]model.QuestionBank, error) {
	return s.bankRepo.ListByOwner(ownerID)
}

// ListQuestions 题库下全部题目
func (s *QuestionBankService) ListQuestions(bankID string) ([]model.Question, error) {
	if _, err := s.Get(bankID); err != nil {
		return nil, err
	}
	return s.questionRepo.ListByBank(bankID)
}

func (s *QuestionBankService) Delete(id string, ownerID uint) error {
	if err := s.bankRepo.DeleteByOwner(id, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionBankNotFound
		}
		return err
	}
	return nil
}
