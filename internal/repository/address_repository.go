package repository

import (
	"github.com/lshigami/canvassing/internal/model"
	"gorm.io/gorm"
)

type AddressRepository interface {
	Create(address *model.Address) error
	FindByID(id uint) (*model.Address, error)
	FindByIDWithLists(id uint) (*model.Address, error)
	FindAll() ([]model.Address, error)
	Delete(id uint) error
}

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(address *model.Address) error {
	return r.db.Create(address).Error
}

func (r *addressRepository) FindByID(id uint) (*model.Address, error) {
	var address model.Address
	if err := r.db.First(&address, id).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

// FindByIDWithLists preloads the address list memberships the validation
// chain checks against.
func (r *addressRepository) FindByIDWithLists(id uint) (*model.Address, error) {
	var address model.Address
	if err := r.db.Preload("AddressLists").First(&address, id).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) FindAll() ([]model.Address, error) {
	var addresses []model.Address
	if err := r.db.Order("created_at desc").Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *addressRepository) Delete(id uint) error {
	return r.db.Delete(&model.Address{}, id).Error
}
