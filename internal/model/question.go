package model

import "encoding/json"

type QuestionType string

const (
	MCQ       QuestionType = "MCQ"
	Paragraph QuestionType = "Paragraph"
	Essay     QuestionType = "Essay"
)

// ValidQuestionType 校验题型是否受支持
func ValidQuestionType(t QuestionType) bool {
	switch t {
	case MCQ, Paragraph, Essay:
		return true
	}
	return false
}

// swagger:model Question
// Question 按题型二选一填充：MCQ 使用 Options/CorrectOption，
// Paragraph/Essay 使用 AnswerKey/MinWords/MaxWords
type Question struct {
	UUIDBase
	QuestionBankID string          `gorm:"index;type:varchar(36);not null" json:"questionBankId"`
	QuestionText   string          `gorm:"type:text;not null" json:"questionText"`
	QuestionType   QuestionType    `gorm:"size:20;not null" json:"questionType"`
	Score          int             `gorm:"not null" json:"score"`
	AnswerKey      string          `gorm:"type:text" json:"answerKey,omitempty"`
	MinWords       int             `json:"minWords,omitempty"`
	MaxWords       *int            `json:"maxWords,omitempty"`
	Options        json.RawMessage `gorm:"type:json" json:"options,omitempty"`
	CorrectOption  string          `gorm:"size:10" json:"correctOption,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// OptionMap 反序列化 MCQ 选项（选项键 -> 选项文本）
func (q *Question) OptionMap() (map[string]string, error) {
	opts := make(map[string]string)
	if len(q.Options) == 0 {
		return opts, nil
	}
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}
