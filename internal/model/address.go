package model

import (
	"time"

	"gorm.io/gorm"
)

type Address struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Address1     string         `json:"address1" gorm:"size:255;not null;uniqueIndex:idx_address_line_zip"`
	Address2     *string        `json:"address2" gorm:"size:255"`
	City         string         `json:"city" gorm:"size:100;not null"`
	State        string         `json:"state" gorm:"size:100;not null"`
	Zipcode      string         `json:"zipcode" gorm:"size:20;not null;uniqueIndex:idx_address_line_zip"`
	AddressLists []AddressList  `json:"addressLists,omitempty" gorm:"many2many:address_list_addresses;"`
	Answers      []Answer       `json:"answers,omitempty" gorm:"foreignKey:AddressID"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
