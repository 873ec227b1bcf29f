package repository

import (
	"exam_portal_backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) Create(exam *model.Exam) error {
	return r.DB.Create(exam).Error
}

func (r *ExamRepository) FindByID(id string) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.First(&exam, "id = ?", id).Error
	return &exam, err
}

func (r *ExamRepository) ListByTeacher(teacherID uint) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Where("teacher_id = ?", teacherID).Order("exam_date desc").Find(&exams).Error
	return exams, err
}

func (r *ExamRepository) ListAll() ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Order("exam_date desc").Find(&exams).Error
	return exams, err
}

// ListByIDs 按主键批量取考试，用于学生成绩页回填考试信息
func (r *ExamRepository) ListByIDs(ids []string) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Where("id IN ?", ids).Find(&exams).Error
	return exams, err
}

func (r *ExamRepository) DeleteByTeacher(id string, teacherID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var exam model.Exam
		if err := tx.Where("id = ? AND teacher_id = ?", id, teacherID).First(&exam).Error; err != nil {
			return err
		}
		if err := tx.Where("exam_id = ?", id).Delete(&model.StudentAnswer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&exam).Error
	})
}
