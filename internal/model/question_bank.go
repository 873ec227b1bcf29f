package model

// swagger:model QuestionBank
type QuestionBank struct {
	UUIDBase
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	OwnerID     uint   `gorm:"index;not null" json:"ownerId"`

	Questions []Question `gorm:"foreignKey:QuestionBankID" json:"-"`
}

func (QuestionBank) TableName() string {
	return "question_banks"
}
