package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Organization struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `json:"name" gorm:"size:255;not null;uniqueIndex"`
	// APIKey authenticates organization-scoped callers (the partner batch
	// submission surface and the GraphQL organization query).
	APIKey         string          `json:"apiKey,omitempty" gorm:"size:64;uniqueIndex"`
	Questionnaires []Questionnaire `json:"questionnaires,omitempty" gorm:"foreignKey:OrganizationID"`
	AddressLists   []AddressList   `json:"addressLists,omitempty" gorm:"foreignKey:OrganizationID"`
	Users          []User          `json:"users,omitempty" gorm:"many2many:organization_users;"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate assigns an API key when none was provided.
func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.APIKey == "" {
		o.APIKey = uuid.NewString()
	}
	return nil
}
