package repository

import (
	"github.com/mindfunnel/mindfunnel-api/internal/model"
	"gorm.io/gorm"
)

type PromptRepository interface {
	Create(prompt *model.Prompt) error
	FindByCategoryAndType(categoryID, promptType string) (*model.Prompt, error)
}

type promptRepository struct {
	db *gorm.DB
}

func NewPromptRepository(db *gorm.DB) PromptRepository {
	return &promptRepository{db: db}
}

func (r *promptRepository) Create(prompt *model.Prompt) error {
	return r.db.Create(prompt).Error
}

func (r *promptRepository) FindByCategoryAndType(categoryID, promptType string) (*model.Prompt, error) {
	var prompt model.Prompt
	err := r.db.
		Where("category_id = ? AND type = ?", categoryID, promptType).
		First(&prompt).Error
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}
