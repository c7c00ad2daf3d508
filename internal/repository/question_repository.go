package repository

import (
	"github.com/lshigami/canvassing/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindByIDWithOrganization(id uint) (*model.Question, error)
	FindByIDAndQuestionnaire(id, questionnaireID uint) (*model.Question, error)
	FindAll() ([]model.Question, error)
	Delete(id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// FindByIDWithOrganization loads the question together with its parent
// questionnaire and that questionnaire's organization, the ancestry the
// submission validation chain walks.
func (r *questionRepository) FindByIDWithOrganization(id uint) (*model.Question, error) {
	var question model.Question
	err := r.db.
		Preload("Questionnaire").
		Preload("Questionnaire.Organization").
		First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByIDAndQuestionnaire(id, questionnaireID uint) (*model.Question, error) {
	var question model.Question
	err := r.db.
		Where("id = ? AND questionnaire_id = ?", id, questionnaireID).
		First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindAll() ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Order("created_at desc").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) Delete(id uint) error {
	return r.db.Delete(&model.Question{}, id).Error
}
