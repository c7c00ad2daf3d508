package repository

import (
	"github.com/lshigami/canvassing/internal/model"
	"gorm.io/gorm"
)

type AddressListRepository interface {
	Create(list *model.AddressList) error
	FindByID(id uint) (*model.AddressList, error)
	FindByIDWithAddresses(id uint) (*model.AddressList, error)
	FindByIDAndOrganization(id, organizationID uint) (*model.AddressList, error)
	FindAll() ([]model.AddressList, error)
	AddAddress(list *model.AddressList, address *model.Address) error
	Delete(id uint) error
}

type addressListRepository struct {
	db *gorm.DB
}

func NewAddressListRepository(db *gorm.DB) AddressListRepository {
	return &addressListRepository{db: db}
}

func (r *addressListRepository) Create(list *model.AddressList) error {
	return r.db.Create(list).Error
}

func (r *addressListRepository) FindByID(id uint) (*model.AddressList, error) {
	var list model.AddressList
	if err := r.db.First(&list, id).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *addressListRepository) FindByIDWithAddresses(id uint) (*model.AddressList, error) {
	var list model.AddressList
	if err := r.db.Preload("Addresses").First(&list, id).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// FindByIDAndOrganization filters on the organization_id scalar so a list
// belonging to a different organization surfaces exactly like a missing one.
func (r *addressListRepository) FindByIDAndOrganization(id, organizationID uint) (*model.AddressList, error) {
	var list model.AddressList
	err := r.db.
		Where("id = ? AND organization_id = ?", id, organizationID).
		First(&list).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *addressListRepository) FindAll() ([]model.AddressList, error) {
	var lists []model.AddressList
	if err := r.db.Order("created_at desc").Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// AddAddress links an address into the list through the join table.
func (r *addressListRepository) AddAddress(list *model.AddressList, address *model.Address) error {
	return r.db.Model(list).Association("Addresses").Append(address)
}

func (r *addressListRepository) Delete(id uint) error {
	return r.db.Delete(&model.AddressList{}, id).Error
}
