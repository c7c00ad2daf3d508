package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/canvassing/internal/dto"
	"github.com/lshigami/canvassing/internal/model"
	"github.com/lshigami/canvassing/internal/repository"
	"github.com/rs/zerolog/log"
)

// AnswerService is the administrative view of answers. The partner
// submission path with its validation chain lives in SubmissionService.
type AnswerService interface {
	Create(req dto.CreateAnswerDTO) (*dto.AnswerResponse, error)
	Find(id uint) (*dto.AnswerResponse, error)
	FindAll() ([]dto.AnswerResponse, error)
	Delete(id uint) error
}

type answerService struct {
	answerRepo   repository.AnswerRepository
	questionRepo repository.QuestionRepository
	userRepo     repository.UserRepository
	listRepo     repository.AddressListRepository
	addressRepo  repository.AddressRepository
}

func NewAnswerService(
	answerRepo repository.AnswerRepository,
	questionRepo repository.QuestionRepository,
	userRepo repository.UserRepository,
	listRepo repository.AddressListRepository,
	addressRepo repository.AddressRepository,
) AnswerService {
	return &answerService{
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
		listRepo:     listRepo,
		addressRepo:  addressRepo,
	}
}

// Create records an answer verbatim. Each referenced entity must exist, but
// no membership validation applies and the reference snapshot stays empty
// for admin-created answers.
func (s *answerService) Create(req dto.CreateAnswerDTO) (*dto.AnswerResponse, error) {
	if _, err := s.questionRepo.FindByID(req.QuestionID); err != nil {
		return nil, notFoundf("Question with ID %d not found", req.QuestionID)
	}
	user, err := s.userRepo.FindByID(req.UserID)
	if err != nil {
		return nil, notFoundf("User with ID %d not found", req.UserID)
	}
	if _, err := s.listRepo.FindByID(req.AddressListID); err != nil {
		return nil, notFoundf("AddressList with ID %d not found", req.AddressListID)
	}
	if _, err := s.addressRepo.FindByID(req.AddressID); err != nil {
		return nil, notFoundf("Address with ID %d not found", req.AddressID)
	}

	answer := model.Answer{
		Text:                req.Text,
		QuestionID:          req.QuestionID,
		AddressListID:       req.AddressListID,
		UserID:              &user.ID,
		AddressID:           req.AddressID,
		InlineReferenceData: "{}",
	}
	if err := s.answerRepo.Create(&answer); err != nil {
		log.Error().Err(err).Uint("questionID", req.QuestionID).Msg("Failed to create answer")
		return nil, fmt.Errorf("database error creating answer: %w", err)
	}

	var resp dto.AnswerResponse
	if err := copier.Copy(&resp, &answer); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

func (s *answerService) Find(id uint) (*dto.AnswerResponse, error) {
	answer, err := s.answerRepo.FindByIDWithRelations(id)
	if err != nil {
		return nil, notFoundf("Answer with ID %d not found", id)
	}

	var resp dto.AnswerResponse
	if err := copier.Copy(&resp, answer); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

func (s *answerService) FindAll() ([]dto.AnswerResponse, error) {
	answers, err := s.answerRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("error fetching answers: %w", err)
	}

	var resp []dto.AnswerResponse
	if err := copier.Copy(&resp, &answers); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return resp, nil
}

func (s *answerService) Delete(id uint) error {
	return s.answerRepo.Delete(id)
}
