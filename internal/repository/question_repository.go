package repository

import (
	"exam_portal_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, "id = ?", id).Error
	return &q, err
}

func (r *QuestionRepository) ListByBank(bankID string) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("question_bank_id = ?", bankID).Order("created_at asc").Find(&qs).Error
	return qs, err
}

// ListByBankAndType 取某题库下指定题型的全部题目（分区抽题的候选池）
func (r *QuestionRepository) ListByBankAndType(bankID string, qType model.QuestionType) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("question_bank_id = ? AND question_type = ?", bankID, qType).
		Order("created_at asc").Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) Delete(id string) error {
	return r.DB.Delete(&model.Question{}, "id = ?", id).Error
}
