package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/canvassing/internal/dto"
	"github.com/lshigami/canvassing/internal/model"
	"github.com/lshigami/canvassing/internal/repository"
	"github.com/rs/zerolog/log"
)

// AddressService covers address lists and the addresses inside them.
type AddressService interface {
	CreateAddressList(req dto.CreateAddressListDTO) (*dto.AddressListResponse, error)
	FindAddressList(id uint) (*dto.AddressListResponse, error)
	FindAddressLists() ([]dto.AddressListResponse, error)
	AddListAddress(listID, addressID uint) error
	DeleteAddressList(id uint) error

	CreateAddress(req dto.CreateAddressDTO) (*dto.AddressResponse, error)
	FindAddress(id uint) (*dto.AddressResponse, error)
	FindAddresses() ([]dto.AddressResponse, error)
	DeleteAddress(id uint) error
}

type addressService struct {
	listRepo    repository.AddressListRepository
	addressRepo repository.AddressRepository
	orgRepo     repository.OrganizationRepository
}

func NewAddressService(
	listRepo repository.AddressListRepository,
	addressRepo repository.AddressRepository,
	orgRepo repository.OrganizationRepository,
) AddressService {
	return &addressService{listRepo: listRepo, addressRepo: addressRepo, orgRepo: orgRepo}
}

func (s *addressService) CreateAddressList(req dto.CreateAddressListDTO) (*dto.AddressListResponse, error) {
	if _, err := s.orgRepo.FindByID(req.OrganizationID); err != nil {
		return nil, notFoundf("Organization with ID %d not found", req.OrganizationID)
	}

	list := model.AddressList{
		Title:          req.Title,
		OrganizationID: req.OrganizationID,
	}
	if err := s.listRepo.Create(&list); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create address list")
		return nil, fmt.Errorf("database error creating address list: %w", err)
	}

	var resp dto.AddressListResponse
	if err := copier.Copy(&resp, &list); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

func (s *addressService) FindAddressList(id uint) (*dto.AddressListResponse, error) {
	list, err := s.listRepo.FindByIDWithAddresses(id)
	if err != nil {
		return nil, notFoundf("AddressList with ID %d not found", id)
	}

	var resp dto.AddressListResponse
	if err := copier.Copy(&resp, list); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

func (s *addressService) FindAddressLists() ([]dto.AddressListResponse, error) {
	lists, err := s.listRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("error fetching address lists: %w", err)
	}

	var resp []dto.AddressListResponse
	if err := copier.Copy(&resp, &lists); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return resp, nil
}

// AddListAddress links an existing address into an address list.
func (s *addressService) AddListAddress(listID, addressID uint) error {
	list, err := s.listRepo.FindByID(listID)
	if err != nil {
		return notFoundf("AddressList with ID %d not found", listID)
	}
	address, err := s.addressRepo.FindByID(addressID)
	if err != nil {
		return notFoundf("Address with ID %d not found", addressID)
	}
	if err := s.listRepo.AddAddress(list, address); err != nil {
		log.Error().Err(err).Uint("listID", listID).Uint("addressID", addressID).Msg("Failed to add address to list")
		return fmt.Errorf("database error adding address to list: %w", err)
	}
	return nil
}

func (s *addressService) DeleteAddressList(id uint) error {
	return s.listRepo.Delete(id)
}

func (s *addressService) CreateAddress(req dto.CreateAddressDTO) (*dto.AddressResponse, error) {
	address := model.Address{
		Address1: req.Address1,
		Address2: req.Address2,
		City:     req.City,
		State:    req.State,
		Zipcode:  req.Zipcode,
	}
	if err := s.addressRepo.Create(&address); err != nil {
		log.Error().Err(err).Str("address1", req.Address1).Msg("Failed to create address")
		return nil, fmt.Errorf("database error creating address: %w", err)
	}

	var resp dto.AddressResponse
	if err := copier.Copy(&resp, &address); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

func (s *addressService) FindAddress(id uint) (*dto.AddressResponse, error) {
	address, err := s.addressRepo.FindByIDWithLists(id)
	if err != nil {
		return nil, notFoundf("Address with ID %d not found", id)
	}

	var resp dto.AddressResponse
	if err := copier.Copy(&resp, address); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

func (s *addressService) FindAddresses() ([]dto.AddressResponse, error) {
	addresses, err := s.addressRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("error fetching addresses: %w", err)
	}

	var resp []dto.AddressResponse
	if err := copier.Copy(&resp, &addresses); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return resp, nil
}

func (s *addressService) DeleteAddress(id uint) error {
	return s.addressRepo.Delete(id)
}
