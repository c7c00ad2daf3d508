package model

import (
	"time"

	"gorm.io/gorm"
)

// Answer rows are immutable once written; there is no update path.
//
// A composite unique index over (question_id, address_list_id, user_id,
// address_id) would restrict each user to a single answer per question,
// list and address. The submission workflow does not enforce it and
// product has not decided whether duplicates should be rejected, so the
// index stays out of the schema for now.
type Answer struct {
	ID            uint        `gorm:"primarykey" json:"id"`
	Text          string      `json:"text" gorm:"type:text;not null"`
	QuestionID    uint        `json:"questionId" gorm:"not null;index"`
	Question      Question    `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	AddressListID uint        `json:"addressListId" gorm:"not null;index"`
	AddressList   AddressList `json:"addressList,omitempty" gorm:"foreignKey:AddressListID"`
	// UserID is nil for organization-authenticated batch submissions,
	// which carry no user identity.
	UserID *uint `json:"userId,omitempty" gorm:"index"`
	User   *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	AddressID     uint        `json:"addressId" gorm:"not null;index"`
	Address       Address     `json:"address,omitempty" gorm:"foreignKey:AddressID"`
	// InlineReferenceData is a JSON snapshot of the related entities taken
	// at submission time. It is never refreshed when those entities change.
	InlineReferenceData string         `json:"inlineReferenceData" gorm:"type:text"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}
