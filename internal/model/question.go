package model

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Text            string         `json:"text" gorm:"type:text;not null;uniqueIndex:idx_question_text_questionnaire"`
	QuestionnaireID uint           `json:"questionnaireId" gorm:"not null;uniqueIndex:idx_question_text_questionnaire"`
	Questionnaire   Questionnaire  `json:"questionnaire,omitempty" gorm:"foreignKey:QuestionnaireID"`
	Answers         []Answer       `json:"answers,omitempty" gorm:"foreignKey:QuestionID"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
