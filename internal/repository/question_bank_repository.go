package repository

import (
	"exam_portal_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionBankRepository struct {
	DB *gorm.DB
}

func NewQuestionBankRepository(db *gorm.DB) *QuestionBankRepository {
	return &QuestionBankRepository{DB: db}
}

func (r *QuestionBankRepository) Create(bank *model.QuestionBank) error {
	return r.DB.Create(bank).Error
}

func (r *QuestionBankRepository) FindByID(id string) (*model.QuestionBank, error) {
	var bank model.QuestionBank
	err := r.DB.First(&bank, "id = ?", id).Error
	return &bank, err
}

func (r *QuestionBankRepository) ListByOwner(ownerID uint) ([]model.QuestionBank, error) {
	var banks []model.QuestionBank
	err := r.DB.Where("owner_id = ?", ownerID).Order("created_at desc").Find(&banks).Error
	return banks, err
}

// DeleteByOwner 仅允许所有者删除，连带删除题库下的题目
func (r *QuestionBankRepository) DeleteByOwner(id string, ownerID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var bank model.QuestionBank
		if err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&bank).Error; err != nil {
			return err
		}
		if err := tx.Where("question_bank_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&bank).Error
	})
}
