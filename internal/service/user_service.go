package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/canvassing/internal/dto"
	"github.com/lshigami/canvassing/internal/model"
	"github.com/lshigami/canvassing/internal/repository"
	"github.com/rs/zerolog/log"
)

type UserService interface {
	Create(req dto.CreateUserDTO) (*dto.UserResponse, error)
	Find(id uint) (*dto.UserResponse, error)
	FindAll() ([]dto.UserResponse, error)
	Delete(id uint) error
	// Account loads the full membership graph for the logged-in user.
	Account(id uint) (*dto.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(req dto.CreateUserDTO) (*dto.UserResponse, error) {
	role := req.Role
	if role == "" {
		role = model.RolePartner
	}

	user := model.User{
		Username: req.Username,
		Password: req.Password,
		Role:     role,
	}
	if err := s.userRepo.Create(&user); err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("Failed to create user")
		return nil, fmt.Errorf("database error creating user: %w", err)
	}

	var resp dto.UserResponse
	if err := copier.Copy(&resp, &user); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

func (s *userService) Find(id uint) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByIDWithOrganizations(id)
	if err != nil {
		return nil, notFoundf("User with ID %d not found", id)
	}

	var resp dto.UserResponse
	if err := copier.Copy(&resp, user); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

func (s *userService) FindAll() ([]dto.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("error fetching users: %w", err)
	}

	var resp []dto.UserResponse
	if err := copier.Copy(&resp, &users); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return resp, nil
}

func (s *userService) Delete(id uint) error {
	return s.userRepo.Delete(id)
}

func (s *userService) Account(id uint) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByIDWithDetails(id)
	if err != nil {
		return nil, notFoundf("User with ID %d not found", id)
	}

	var resp dto.UserResponse
	if err := copier.Copy(&resp, user); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}
