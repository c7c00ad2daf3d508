package repository

import (
	"github.com/lshigami/canvassing/internal/model"
	"gorm.io/gorm"
)

type OrganizationRepository interface {
	Create(org *model.Organization) error
	FindByID(id uint) (*model.Organization, error)
	FindByIDWithQuestionnaires(id uint) (*model.Organization, error)
	FindByAPIKey(key string) (*model.Organization, error)
	FindAll() ([]model.Organization, error)
	AddUser(org *model.Organization, user *model.User) error
	Delete(id uint) error
}

type organizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(org *model.Organization) error {
	return r.db.Create(org).Error
}

func (r *organizationRepository) FindByID(id uint) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) FindByIDWithQuestionnaires(id uint) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.Preload("Questionnaires").First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) FindByAPIKey(key string) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.Where("api_key = ?", key).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) FindAll() ([]model.Organization, error) {
	var orgs []model.Organization
	if err := r.db.Order("created_at desc").Find(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}

// AddUser links a user to an organization through the join table.
func (r *organizationRepository) AddUser(org *model.Organization, user *model.User) error {
	return r.db.Model(org).Association("Users").Append(user)
}

func (r *organizationRepository) Delete(id uint) error {
	return r.db.Delete(&model.Organization{}, id).Error
}
