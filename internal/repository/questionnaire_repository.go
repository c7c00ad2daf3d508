package repository

import (
	"github.com/lshigami/canvassing/internal/model"
	"gorm.io/gorm"
)

type QuestionnaireRepository interface {
	Create(questionnaire *model.Questionnaire) error
	FindByID(id uint) (*model.Questionnaire, error)
	FindByIDWithQuestions(id uint) (*model.Questionnaire, error)
	FindByIDAndOrganization(id, organizationID uint) (*model.Questionnaire, error)
	FindAll() ([]model.Questionnaire, error)
	Delete(id uint) error
}

type questionnaireRepository struct {
	db *gorm.DB
}

func NewQuestionnaireRepository(db *gorm.DB) QuestionnaireRepository {
	return &questionnaireRepository{db: db}
}

func (r *questionnaireRepository) Create(questionnaire *model.Questionnaire) error {
	return r.db.Create(questionnaire).Error
}

func (r *questionnaireRepository) FindByID(id uint) (*model.Questionnaire, error) {
	var questionnaire model.Questionnaire
	if err := r.db.First(&questionnaire, id).Error; err != nil {
		return nil, err
	}
	return &questionnaire, nil
}

func (r *questionnaireRepository) FindByIDWithQuestions(id uint) (*model.Questionnaire, error) {
	var questionnaire model.Questionnaire
	if err := r.db.Preload("Questions").First(&questionnaire, id).Error; err != nil {
		return nil, err
	}
	return &questionnaire, nil
}

func (r *questionnaireRepository) FindByIDAndOrganization(id, organizationID uint) (*model.Questionnaire, error) {
	var questionnaire model.Questionnaire
	err := r.db.
		Where("id = ? AND organization_id = ?", id, organizationID).
		First(&questionnaire).Error
	if err != nil {
		return nil, err
	}
	return &questionnaire, nil
}

func (r *questionnaireRepository) FindAll() ([]model.Questionnaire, error) {
	var questionnaires []model.Questionnaire
	if err := r.db.Order("created_at desc").Find(&questionnaires).Error; err != nil {
		return nil, err
	}
	return questionnaires, nil
}

func (r *questionnaireRepository) Delete(id uint) error {
	return r.db.Delete(&model.Questionnaire{}, id).Error
}
