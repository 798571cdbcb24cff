package repository

import (
	"github.com/mindfunnel/mindfunnel-api/internal/model"
	"gorm.io/gorm"
)

type QuestionSetRepository interface {
	Create(set *model.QuestionSet) error
	// FindLatestByCategory returns the highest-version question set for a category.
	FindLatestByCategory(categoryID string) (*model.QuestionSet, error)
	FindByID(id string) (*model.QuestionSet, error)
}

type questionSetRepository struct {
	db *gorm.DB
}

func NewQuestionSetRepository(db *gorm.DB) QuestionSetRepository {
	return &questionSetRepository{db: db}
}

func (r *questionSetRepository) Create(set *model.QuestionSet) error {
	return r.db.Create(set).Error
}

func (r *questionSetRepository) FindLatestByCategory(categoryID string) (*model.QuestionSet, error) {
	var set model.QuestionSet
	err := r.db.
		Where("category_id = ?", categoryID).
		Order("version DESC").
		First(&set).Error
	if err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *questionSetRepository) FindByID(id string) (*model.QuestionSet, error) {
	var set model.QuestionSet
	if err := r.db.First(&set, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &set, nil
}
