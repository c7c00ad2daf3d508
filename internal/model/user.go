package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Users can have one of two roles: ADMIN or PARTNER.
const (
	RoleAdmin   = "admin"
	RolePartner = "partner"
)

type User struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Username      string         `json:"username" gorm:"size:255;not null;uniqueIndex"`
	Password      string         `json:"-" gorm:"size:255;not null"`
	Role          string         `json:"role" gorm:"size:20;not null;default:'partner'"`
	Organizations []Organization `json:"organizations,omitempty" gorm:"many2many:organization_users;"`
	Answers       []Answer       `json:"answers,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hashes the plaintext password before the row is inserted.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// ValidatePassword compares a plaintext password against the stored hash.
func (u *User) ValidatePassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}
