package model

import (
	"time"

	"gorm.io/gorm"
)

type Questionnaire struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Title          string         `json:"title" gorm:"size:255;not null"`
	OrganizationID uint           `json:"organizationId" gorm:"not null;index"`
	Organization   Organization   `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	Questions      []Question     `json:"questions,omitempty" gorm:"foreignKey:QuestionnaireID"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
