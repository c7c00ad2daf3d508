package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/lshigami/canvassing/internal/dto"
	"github.com/lshigami/canvassing/internal/model"
	"github.com/lshigami/canvassing/internal/pubsub"
	"github.com/lshigami/canvassing/internal/repository"
	"github.com/rs/zerolog/log"
)

// ErrNotFound is the uniform failure for every miss in the submission
// validation chain. Missing entities, role mismatches and membership
// mismatches are deliberately indistinguishable so a caller cannot probe
// which part of the tuple exists.
var ErrNotFound = errors.New("not found")

// TopicNewAnswer is the pub/sub topic fed by single-answer submissions.
const TopicNewAnswer = "newAnswer"

// NotFoundError carries a human-readable message while matching
// errors.Is(err, ErrNotFound).
type NotFoundError struct {
	msg string
}

func (e *NotFoundError) Error() string        { return e.msg }
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func notFoundf(format string, args ...interface{}) error {
	return &NotFoundError{msg: fmt.Sprintf(format, args...)}
}

// referenceSnapshot is the denormalized inlineReferenceData payload stored
// with every partner-submitted answer. Field order and key names are a
// compatibility contract with clients that parse stored answers.
type referenceSnapshot struct {
	Question      questionRef      `json:"question"`
	Questionnaire questionnaireRef `json:"questionnaire"`
	Address       addressRef       `json:"address"`
	AddressList   addressListRef   `json:"addressList"`
	User          userRef          `json:"user"`
	Organization  organizationRef  `json:"organization"`
}

type questionRef struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type questionnaireRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

type addressRef struct {
	ID       uint    `json:"id"`
	Address1 string  `json:"address1"`
	Address2 *string `json:"address2"`
	City     string  `json:"city"`
	State    string  `json:"state"`
	Zipcode  string  `json:"zipcode"`
}

type addressListRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

type userRef struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type organizationRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// SubmissionService implements the answer-submission workflow: the
// membership validation chain, the snapshot-carrying write, and the
// newAnswer notification.
type SubmissionService interface {
	SubmitAnswer(userID uint, req dto.SubmitAnswerDTO) (*model.Answer, error)
	SubmitBatch(organizationID, questionnaireID uint, req dto.SubmitBatchDTO) (*dto.BatchSubmitResponse, error)
}

type submissionService struct {
	userRepo        repository.UserRepository
	questionRepo    repository.QuestionRepository
	questnaireRepo  repository.QuestionnaireRepository
	addressListRepo repository.AddressListRepository
	addressRepo     repository.AddressRepository
	answerRepo      repository.AnswerRepository
	broker          *pubsub.Broker
}

func NewSubmissionService(
	userRepo repository.UserRepository,
	questionRepo repository.QuestionRepository,
	questnaireRepo repository.QuestionnaireRepository,
	addressListRepo repository.AddressListRepository,
	addressRepo repository.AddressRepository,
	answerRepo repository.AnswerRepository,
	broker *pubsub.Broker,
) SubmissionService {
	return &submissionService{
		userRepo:        userRepo,
		questionRepo:    questionRepo,
		questnaireRepo:  questnaireRepo,
		addressListRepo: addressListRepo,
		addressRepo:     addressRepo,
		answerRepo:      answerRepo,
		broker:          broker,
	}
}

// validatedSubmission is the fully resolved entity tuple handed from the
// validation chain to the writer.
type validatedSubmission struct {
	user         *model.User
	question     *model.Question
	addressList  *model.AddressList
	address      *model.Address
	organization *model.Organization
}

// validateSubmission establishes that every identifier forms one coherent,
// authorized submission before any write happens. The organization is
// re-derived from the question's questionnaire rather than trusted from the
// caller, so a question from one organization can never be answered against
// another organization's address list.
func (s *submissionService) validateSubmission(userID, questionID, addressListID, addressID uint) (*validatedSubmission, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, notFoundf("User %d not found", userID)
	}
	if user.Role != model.RolePartner {
		return nil, notFoundf("User %d is not a partner role user", userID)
	}

	question, err := s.questionRepo.FindByIDWithOrganization(questionID)
	if err != nil {
		return nil, notFoundf("Question %d is not valid", questionID)
	}
	if question.Questionnaire.ID == 0 {
		return nil, notFoundf("Question %d does not belong to a questionnaire", questionID)
	}
	if question.Questionnaire.Organization.ID == 0 {
		return nil, notFoundf("Questionnaire %d does not belong to an organization", question.Questionnaire.ID)
	}
	organization := question.Questionnaire.Organization

	membered, err := s.userRepo.FindByIDWithOrganizations(userID)
	if err != nil || len(membered.Organizations) == 0 {
		return nil, notFoundf("No organizations found for %d", userID)
	}
	isMember := false
	for _, org := range membered.Organizations {
		if org.ID == organization.ID {
			isMember = true
			break
		}
	}
	if !isMember {
		return nil, notFoundf("User %d is not a member of organization %d associated with questionnaire %d",
			userID, organization.ID, question.QuestionnaireID)
	}

	addressList, err := s.addressListRepo.FindByIDAndOrganization(addressListID, organization.ID)
	if err != nil {
		return nil, notFoundf("AddressList %d is not valid for organization %d", addressListID, organization.ID)
	}

	address, err := s.addressRepo.FindByIDWithLists(addressID)
	if err != nil {
		return nil, notFoundf("Address %d is not a member of address list %d", addressID, addressListID)
	}
	inList := false
	for _, list := range address.AddressLists {
		if list.ID == addressListID {
			inList = true
			break
		}
	}
	if !inList {
		return nil, notFoundf("Address %d is not a member of address list %d", addressID, addressListID)
	}

	return &validatedSubmission{
		user:         user,
		question:     question,
		addressList:  addressList,
		address:      address,
		organization: &organization,
	}, nil
}

// SubmitAnswer validates the submission tuple, persists the answer with its
// inline reference snapshot, and publishes the stored answer to newAnswer
// subscribers. The chain and the insert are separate round trips; a
// concurrent delete between them surfaces as an insert error, not a clean
// not-found.
func (s *submissionService) SubmitAnswer(userID uint, req dto.SubmitAnswerDTO) (*model.Answer, error) {
	resolved, err := s.validateSubmission(userID, req.QuestionID, req.AddressListID, req.AddressID)
	if err != nil {
		log.Warn().Err(err).Uint("userID", userID).Uint("questionID", req.QuestionID).Msg("SubmitAnswer: validation failed")
		return nil, err
	}

	snapshot, err := json.Marshal(referenceSnapshot{
		Question: questionRef{ID: resolved.question.ID, Text: resolved.question.Text},
		Questionnaire: questionnaireRef{
			ID:    resolved.question.Questionnaire.ID,
			Title: resolved.question.Questionnaire.Title,
		},
		Address: addressRef{
			ID:       resolved.address.ID,
			Address1: resolved.address.Address1,
			Address2: resolved.address.Address2,
			City:     resolved.address.City,
			State:    resolved.address.State,
			Zipcode:  resolved.address.Zipcode,
		},
		AddressList:  addressListRef{ID: resolved.addressList.ID, Title: resolved.addressList.Title},
		User:         userRef{ID: resolved.user.ID, Username: resolved.user.Username},
		Organization: organizationRef{ID: resolved.organization.ID, Name: resolved.organization.Name},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build reference snapshot: %w", err)
	}

	answer := model.Answer{
		Text:                req.AnswerText,
		QuestionID:          resolved.question.ID,
		AddressListID:       resolved.addressList.ID,
		UserID:              &resolved.user.ID,
		AddressID:           resolved.address.ID,
		InlineReferenceData: string(snapshot),
	}
	if err := s.answerRepo.Create(&answer); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("SubmitAnswer: failed to persist answer")
		return nil, fmt.Errorf("failed to store answer: %w", err)
	}

	// Subscribers get the answer with its relations resolved. Delivery is
	// best-effort and in-process; a publish failure never fails the
	// submission that already committed.
	stored, err := s.answerRepo.FindByIDWithRelations(answer.ID)
	if err != nil {
		log.Error().Err(err).Uint("answerID", answer.ID).Msg("SubmitAnswer: failed to reload answer for notification")
		return &answer, nil
	}
	log.Info().Uint("answerID", stored.ID).Msg("Signalling to subscribers that an answer was added")
	s.broker.Publish(TopicNewAnswer, stored)

	return stored, nil
}

// batchInsertResult carries the outcome of one concurrent batch insert.
type batchInsertResult struct {
	questionID uint
	err        error
}

// SubmitBatch is the organization-authenticated variant. The caller's
// organization context replaces the user/role checks: the questionnaire and
// address list must belong to that organization, the address must be in the
// list, and each question must belong to the questionnaire. Inserts run
// concurrently with no all-or-nothing guarantee; a failed answer does not
// cancel or roll back its siblings.
func (s *submissionService) SubmitBatch(organizationID, questionnaireID uint, req dto.SubmitBatchDTO) (*dto.BatchSubmitResponse, error) {
	questionnaire, err := s.questnaireRepo.FindByIDAndOrganization(questionnaireID, organizationID)
	if err != nil {
		return nil, notFoundf("Questionnaire %d is not valid for organization %d", questionnaireID, organizationID)
	}

	addressList, err := s.addressListRepo.FindByIDAndOrganization(req.AddressListID, organizationID)
	if err != nil {
		return nil, notFoundf("AddressList %d is not valid for organization %d", req.AddressListID, organizationID)
	}

	address, err := s.addressRepo.FindByIDWithLists(req.AddressID)
	if err != nil {
		return nil, notFoundf("Address %d is not a member of address list %d", req.AddressID, addressList.ID)
	}
	inList := false
	for _, list := range address.AddressLists {
		if list.ID == addressList.ID {
			inList = true
			break
		}
	}
	if !inList {
		return nil, notFoundf("Address %d is not a member of address list %d", req.AddressID, addressList.ID)
	}

	var wg sync.WaitGroup
	resultsChan := make(chan batchInsertResult, len(req.Answers))

	for _, entry := range req.Answers {
		wg.Add(1)
		go func(entry dto.BatchAnswerDTO) {
			defer wg.Done()

			if _, err := s.questionRepo.FindByIDAndQuestionnaire(entry.QuestionID, questionnaire.ID); err != nil {
				resultsChan <- batchInsertResult{
					questionID: entry.QuestionID,
					err:        notFoundf("Question %d does not belong to questionnaire %d", entry.QuestionID, questionnaire.ID),
				}
				return
			}

			// Batch answers carry no snapshot; only the partner
			// single-answer path denormalizes reference data.
			answer := model.Answer{
				Text:                entry.AnswerText,
				QuestionID:          entry.QuestionID,
				AddressListID:       addressList.ID,
				AddressID:           address.ID,
				InlineReferenceData: "{}",
			}
			if err := s.answerRepo.Create(&answer); err != nil {
				log.Error().Err(err).Uint("questionID", entry.QuestionID).Msg("SubmitBatch: insert failed")
				resultsChan <- batchInsertResult{questionID: entry.QuestionID, err: err}
				return
			}
			resultsChan <- batchInsertResult{questionID: entry.QuestionID}
		}(entry)
	}

	wg.Wait()
	close(resultsChan)

	resp := dto.BatchSubmitResponse{}
	for result := range resultsChan {
		if result.err != nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, fmt.Sprintf("question %d: %s", result.questionID, result.err.Error()))
			continue
		}
		resp.Submitted++
	}
	log.Info().
		Uint("organizationID", organizationID).
		Uint("questionnaireID", questionnaireID).
		Int("submitted", resp.Submitted).
		Int("failed", resp.Failed).
		Msg("SubmitBatch: batch completed")
	return &resp, nil
}
