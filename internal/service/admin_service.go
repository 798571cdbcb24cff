package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/mindfunnel/mindfunnel-api/internal/dto"
	"github.com/mindfunnel/mindfunnel-api/internal/model"
	"github.com/mindfunnel/mindfunnel-api/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AdminService provisions quiz verticals: a category plus its first question
// set and prompt templates, in one call.
type AdminService interface {
	CreateCategory(req dto.CategoryCreateRequest) (*dto.CategoryCreateResponse, error)
}

type adminService struct {
	categories   repository.CategoryRepository
	questionSets repository.QuestionSetRepository
	prompts      repository.PromptRepository
}

func NewAdminService(
	categories repository.CategoryRepository,
	questionSets repository.QuestionSetRepository,
	prompts repository.PromptRepository,
) AdminService {
	return &adminService{categories: categories, questionSets: questionSets, prompts: prompts}
}

func (s *adminService) CreateCategory(req dto.CategoryCreateRequest) (*dto.CategoryCreateResponse, error) {
	if existing, err := s.categories.FindBySlug(req.Slug); err == nil && existing != nil {
		return nil, fmt.Errorf("category %q already exists", req.Slug)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("category lookup failed: %w", err)
	}

	category := &model.Category{}
	if err := copier.Copy(category, &req); err != nil {
		return nil, fmt.Errorf("failed to map category: %w", err)
	}
	if err := s.categories.Create(category); err != nil {
		return nil, fmt.Errorf("unable to create category: %w", err)
	}

	questionSet := &model.QuestionSet{
		CategoryID: category.ID,
		Version:    1,
		Schema:     model.SchemaDocument{Schema: req.Schema},
	}
	if err := s.questionSets.Create(questionSet); err != nil {
		return nil, fmt.Errorf("unable to create question set: %w", err)
	}

	for _, p := range req.Prompts {
		prompt := &model.Prompt{
			CategoryID: category.ID,
			Type:       model.NormalizeProduct(p.Type),
			Template:   p.Template,
		}
		if err := s.prompts.Create(prompt); err != nil {
			return nil, fmt.Errorf("unable to create %s prompt: %w", p.Type, err)
		}
	}

	log.Info().
		Str("categoryID", category.ID).
		Str("slug", req.Slug).
		Int("promptCount", len(req.Prompts)).
		Msg("Category provisioned")

	return &dto.CategoryCreateResponse{
		CategoryID:    category.ID,
		QuestionSetID: questionSet.ID,
		PromptCount:   len(req.Prompts),
	}, nil
}
