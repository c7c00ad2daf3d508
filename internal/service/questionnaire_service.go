package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/canvassing/internal/dto"
	"github.com/lshigami/canvassing/internal/model"
	"github.com/lshigami/canvassing/internal/repository"
	"github.com/rs/zerolog/log"
)

// QuestionnaireService covers questionnaires and their questions.
type QuestionnaireService interface {
	CreateQuestionnaire(req dto.CreateQuestionnaireDTO) (*dto.QuestionnaireResponse, error)
	FindQuestionnaire(id uint) (*dto.QuestionnaireResponse, error)
	FindQuestionnaires() ([]dto.QuestionnaireResponse, error)
	DeleteQuestionnaire(id uint) error

	CreateQuestion(req dto.CreateQuestionDTO) (*dto.QuestionResponse, error)
	FindQuestion(id uint) (*dto.QuestionResponse, error)
	FindQuestions() ([]dto.QuestionResponse, error)
	DeleteQuestion(id uint) error
}

type questionnaireService struct {
	questnaireRepo repository.QuestionnaireRepository
	questionRepo   repository.QuestionRepository
	orgRepo        repository.OrganizationRepository
}

func NewQuestionnaireService(
	questnaireRepo repository.QuestionnaireRepository,
	questionRepo repository.QuestionRepository,
	orgRepo repository.OrganizationRepository,
) QuestionnaireService {
	return &questionnaireService{
		questnaireRepo: questnaireRepo,
		questionRepo:   questionRepo,
		orgRepo:        orgRepo,
	}
}

func (s *questionnaireService) CreateQuestionnaire(req dto.CreateQuestionnaireDTO) (*dto.QuestionnaireResponse, error) {
	if _, err := s.orgRepo.FindByID(req.OrganizationID); err != nil {
		return nil, notFoundf("Organization with ID %d not found", req.OrganizationID)
	}

	questionnaire := model.Questionnaire{
		Title:          req.Title,
		OrganizationID: req.OrganizationID,
	}
	if err := s.questnaireRepo.Create(&questionnaire); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create questionnaire")
		return nil, fmt.Errorf("database error creating questionnaire: %w", err)
	}

	var resp dto.QuestionnaireResponse
	if err := copier.Copy(&resp, &questionnaire); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

func (s *questionnaireService) FindQuestionnaire(id uint) (*dto.QuestionnaireResponse, error) {
	questionnaire, err := s.questnaireRepo.FindByIDWithQuestions(id)
	if err != nil {
		return nil, notFoundf("Questionnaire with ID %d not found", id)
	}

	var resp dto.QuestionnaireResponse
	if err := copier.Copy(&resp, questionnaire); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

func (s *questionnaireService) FindQuestionnaires() ([]dto.QuestionnaireResponse, error) {
	questionnaires, err := s.questnaireRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("error fetching questionnaires: %w", err)
	}

	var resp []dto.QuestionnaireResponse
	if err := copier.Copy(&resp, &questionnaires); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return resp, nil
}

func (s *questionnaireService) DeleteQuestionnaire(id uint) error {
	return s.questnaireRepo.Delete(id)
}

func (s *questionnaireService) CreateQuestion(req dto.CreateQuestionDTO) (*dto.QuestionResponse, error) {
	if _, err := s.questnaireRepo.FindByID(req.QuestionnaireID); err != nil {
		return nil, notFoundf("Questionnaire with ID %d not found", req.QuestionnaireID)
	}

	question := model.Question{
		Text:            req.Text,
		QuestionnaireID: req.QuestionnaireID,
	}
	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Uint("questionnaireID", req.QuestionnaireID).Msg("Failed to create question")
		return nil, fmt.Errorf("database error creating question: %w", err)
	}

	var resp dto.QuestionResponse
	if err := copier.Copy(&resp, &question); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

func (s *questionnaireService) FindQuestion(id uint) (*dto.QuestionResponse, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		return nil, notFoundf("Question with ID %d not found", id)
	}

	var resp dto.QuestionResponse
	if err := copier.Copy(&resp, question); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

func (s *questionnaireService) FindQuestions() ([]dto.QuestionResponse, error) {
	questions, err := s.questionRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}

	var resp []dto.QuestionResponse
	if err := copier.Copy(&resp, &questions); err != nil {
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return resp, nil
}

func (s *questionnaireService) DeleteQuestion(id uint) error {
	return s.questionRepo.Delete(id)
}
