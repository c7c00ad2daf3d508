package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/canvassing/internal/dto"
	"github.com/lshigami/canvassing/internal/model"
	"github.com/lshigami/canvassing/internal/repository"
	"github.com/rs/zerolog/log"
)

type OrganizationService interface {
	Create(req dto.CreateOrganizationDTO) (*dto.OrganizationResponse, error)
	Find(id uint) (*dto.OrganizationResponse, error)
	FindAll() ([]dto.OrganizationResponse, error)
	AddMember(id, userID uint) error
	Delete(id uint) error
}

type organizationService struct {
	orgRepo  repository.OrganizationRepository
	userRepo repository.UserRepository
}

func NewOrganizationService(orgRepo repository.OrganizationRepository, userRepo repository.UserRepository) OrganizationService {
	return &organizationService{orgRepo: orgRepo, userRepo: userRepo}
}

func (s *organizationService) Create(req dto.CreateOrganizationDTO) (*dto.OrganizationResponse, error) {
	org := model.Organization{Name: req.Name}
	if err := s.orgRepo.Create(&org); err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("Failed to create organization")
		return nil, fmt.Errorf("database error creating organization: %w", err)
	}

	var resp dto.OrganizationResponse
	if err := copier.Copy(&resp, &org); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

func (s *organizationService) Find(id uint) (*dto.OrganizationResponse, error) {
	org, err := s.orgRepo.FindByIDWithQuestionnaires(id)
	if err != nil {
		return nil, notFoundf("Organization with ID %d not found", id)
	}

	var resp dto.OrganizationResponse
	if err := copier.Copy(&resp, org); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

func (s *organizationService) FindAll() ([]dto.OrganizationResponse, error) {
	orgs, err := s.orgRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("error fetching organizations: %w", err)
	}

	var resp []dto.OrganizationResponse
	if err := copier.Copy(&resp, &orgs); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return resp, nil
}

// AddMember links a user into the organization's membership set.
func (s *organizationService) AddMember(id, userID uint) error {
	org, err := s.orgRepo.FindByID(id)
	if err != nil {
		return notFoundf("Organization with ID %d not found", id)
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return notFoundf("User with ID %d not found", userID)
	}
	if err := s.orgRepo.AddUser(org, user); err != nil {
		log.Error().Err(err).Uint("organizationID", id).Uint("userID", userID).Msg("Failed to add organization member")
		return fmt.Errorf("database error adding member: %w", err)
	}
	return nil
}

func (s *organizationService) Delete(id uint) error {
	return s.orgRepo.Delete(id)
}
