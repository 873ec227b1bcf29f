package repository

import (
	"exam_portal_backend/internal/model"

	"gorm.io/gorm"
)

type StudentAnswerRepository struct {
	DB *gorm.DB
}

func NewStudentAnswerRepository(db *gorm.DB) *StudentAnswerRepository {
	return &StudentAnswerRepository{DB: db}
}

// CreateEvaluated 答卷落库与评分结果写入在同一事务内完成，
// (exam_id, student_id, question_id) 唯一索引保证不可重复提交
func (r *StudentAnswerRepository) CreateEvaluated(answer *model.StudentAnswer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(answer).Error
	})
}

func (r *StudentAnswerRepository) FindByTriple(examID string, studentID uint, questionID string) (*model.StudentAnswer, error) {
	var answer model.StudentAnswer
	err := r.DB.Where("exam_id = ? AND student_id = ? AND question_id = ?", examID, studentID, questionID).
		First(&answer).Error
	return &answer, err
}

func (r *StudentAnswerRepository) ListByExam(examID string) ([]model.StudentAnswer, error) {
	var answers []model.StudentAnswer
	err := r.DB.Where("exam_id = ?", examID).Order("created_at asc").Find(&answers).Error
	return answers, err
}

func (r *StudentAnswerRepository) ListByExamAndStudent(examID string, studentID uint) ([]model.StudentAnswer, error) {
	var answers []model.StudentAnswer
	err := r.DB.Where("exam_id = ? AND student_id = ?", examID, studentID).
		Order("created_at asc").Find(&answers).Error
	return answers, err
}

// ListByStudent 学生名下全部答卷，跨考试，供历史成绩页按考试分组
func (r *StudentAnswerRepository) ListByStudent(studentID uint) ([]model.StudentAnswer, error) {
	var answers []model.StudentAnswer
	err := r.DB.Where("student_id = ?", studentID).Order("created_at asc").Find(&answers).Error
	return answers, err
}

// UpdateBatch 重新评卷时批量写回得分，整批同事务
func (r *StudentAnswerRepository) UpdateBatch(answers []model.StudentAnswer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i := range answers {
			if err := tx.Save(&answers[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
