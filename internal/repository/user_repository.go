package repository

import (
	"github.com/lshigami/canvassing/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByIDWithOrganizations(id uint) (*model.User, error)
	FindByIDWithDetails(id uint) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindAll() ([]model.User, error)
	Delete(id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIDWithOrganizations(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.Preload("Organizations").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDWithDetails loads the full membership graph behind a user for the
// account view: organizations, their questionnaires with questions, and
// their address lists with addresses.
func (r *userRepository) FindByIDWithDetails(id uint) (*model.User, error) {
	var user model.User
	err := r.db.
		Preload("Organizations").
		Preload("Organizations.Questionnaires").
		Preload("Organizations.Questionnaires.Questions").
		Preload("Organizations.AddressLists").
		Preload("Organizations.AddressLists.Addresses").
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll() ([]model.User, error) {
	var users []model.User
	if err := r.db.Order("created_at desc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Delete(id uint) error {
	return r.db.Delete(&model.User{}, id).Error
}
