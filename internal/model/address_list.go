package model

import (
	"time"

	"gorm.io/gorm"
)

type AddressList struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Title string `json:"title" gorm:"size:255;not null"`
	// OrganizationID is deliberately kept as a queryable scalar next to the
	// relation; the submission validation chain filters on it directly.
	OrganizationID uint           `json:"organizationId" gorm:"not null;index"`
	Organization   Organization   `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	Addresses      []Address      `json:"addresses,omitempty" gorm:"many2many:address_list_addresses;"`
	Answers        []Answer       `json:"answers,omitempty" gorm:"foreignKey:AddressListID"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
