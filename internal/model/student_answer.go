package model

import "time"

// swagger:model StudentAnswer
// StudentAnswer 同一 (exam, student, question) 只允许一条已评分记录
type StudentAnswer struct {
	UUIDBase
	ExamID              string       `gorm:"type:varchar(36);not null;uniqueIndex:uniq_exam_student_question" json:"examId"`
	StudentID           uint         `gorm:"not null;uniqueIndex:uniq_exam_student_question" json:"studentId"`
	QuestionID          string       `gorm:"type:varchar(36);not null;uniqueIndex:uniq_exam_student_question" json:"questionId"`
	SelectedOption      string       `gorm:"size:10" json:"selectedOption,omitempty"`
	TypedAnswer         string       `gorm:"type:text" json:"typedAnswer,omitempty"`
	SectionType         QuestionType `gorm:"size:20;not null" json:"sectionType"`
	ScoreEarned         *float64     `json:"scoreEarned,omitempty"`
	IsEvaluated         bool         `gorm:"default:false" json:"isEvaluated"`
	HasPassed           *bool        `json:"hasPassed,omitempty"`
	Feedback            string       `gorm:"type:text" json:"feedback,omitempty"`
	EvaluationTimestamp *time.Time   `json:"evaluationTimestamp,omitempty"`
}

func (StudentAnswer) TableName() string {
	return "student_answers"
}
