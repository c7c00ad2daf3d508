package repository

import (
	"github.com/lshigami/canvassing/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	Create(answer *model.Answer) error
	FindByID(id uint) (*model.Answer, error)
	FindByIDWithRelations(id uint) (*model.Answer, error)
	FindAll() ([]model.Answer, error)
	Delete(id uint) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Create(answer *model.Answer) error {
	return r.db.Create(answer).Error
}

func (r *answerRepository) FindByID(id uint) (*model.Answer, error) {
	var answer model.Answer
	if err := r.db.First(&answer, id).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

// FindByIDWithRelations loads the answer with all four referenced entities,
// the shape delivered to newAnswer subscribers.
func (r *answerRepository) FindByIDWithRelations(id uint) (*model.Answer, error) {
	var answer model.Answer
	err := r.db.
		Preload("Question").
		Preload("Question.Questionnaire").
		Preload("AddressList").
		Preload("User").
		Preload("Address").
		First(&answer, id).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) FindAll() ([]model.Answer, error) {
	var answers []model.Answer
	if err := r.db.Order("created_at desc").Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *answerRepository) Delete(id uint) error {
	return r.db.Delete(&model.Answer{}, id).Error
}
