package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// SectionConfig 单个考试分区的配置：抽题数量与分区时长（秒）
type SectionConfig struct {
	Count    int `json:"count"`
	Duration int `json:"duration"`
}

// SectionMap 分区名（即题型）到分区配置的映射，JSON 列存储
type SectionMap map[string]SectionConfig

func (m SectionMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *SectionMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for SectionMap")
	}
	return json.Unmarshal(data, m)
}

// swagger:model Exam
type Exam struct {
	UUIDBase
	TeacherID      uint       `gorm:"index;not null" json:"teacherId"`
	QuestionBankID string     `gorm:"index;type:varchar(36);not null" json:"questionBankId"`
	ExamName       string     `gorm:"size:200;not null" json:"examName"`
	ExamDate       time.Time  `gorm:"not null" json:"examDate"`
	Sections       SectionMap `gorm:"type:json;not null" json:"sections"`
	PassMarks      float64    `gorm:"not null" json:"passMarks"`
	TotalMarks     float64    `gorm:"not null" json:"totalMarks"`
}

func (Exam) TableName() string {
	return "exams"
}
