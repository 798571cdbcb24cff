package service

import (
	"errors"
	"fmt"

	"github.com/mindfunnel/mindfunnel-api/internal/dto"
	"github.com/mindfunnel/mindfunnel-api/internal/model"
	"github.com/mindfunnel/mindfunnel-api/internal/repository"
	"github.com/mindfunnel/mindfunnel-api/internal/scoring"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// QuizSubmissionService creates a quiz attempt: upserts the visitor by email,
// scores the answers against the category's latest question set, and stores
// the attempt with its teaser. Answers and archetype are immutable after this.
type QuizSubmissionService interface {
	SubmitQuiz(categorySlug string, req dto.QuizSubmitRequest) (*dto.QuizSubmitResponse, error)
}

type quizSubmissionService struct {
	users        repository.UserRepository
	categories   repository.CategoryRepository
	questionSets repository.QuestionSetRepository
	affiliates   repository.AffiliateRepository
	attempts     repository.QuizAttemptRepository
}

func NewQuizSubmissionService(
	users repository.UserRepository,
	categories repository.CategoryRepository,
	questionSets repository.QuestionSetRepository,
	affiliates repository.AffiliateRepository,
	attempts repository.QuizAttemptRepository,
) QuizSubmissionService {
	return &quizSubmissionService{
		users:        users,
		categories:   categories,
		questionSets: questionSets,
		affiliates:   affiliates,
		attempts:     attempts,
	}
}

func (s *quizSubmissionService) SubmitQuiz(categorySlug string, req dto.QuizSubmitRequest) (*dto.QuizSubmitResponse, error) {
	user, err := s.users.UpsertByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("unable to upsert user: %w", err)
	}

	category, err := s.categories.FindBySlug(categorySlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, categorySlug)
		}
		return nil, fmt.Errorf("category lookup failed: %w", err)
	}

	questionSet, err := s.questionSets.FindLatestByCategory(category.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w for category %s", ErrQuestionSetNotFound, categorySlug)
		}
		return nil, fmt.Errorf("question set lookup failed: %w", err)
	}

	var affiliateID *string
	if req.AffiliateHandle != "" {
		affiliate, err := s.affiliates.FindByHandle(req.AffiliateHandle)
		if err != nil {
			return nil, fmt.Errorf("affiliate lookup failed: %w", err)
		}
		if affiliate != nil {
			affiliateID = &affiliate.ID
		}
	}

	answers := make(model.AnswerList, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, scoring.Answer{ID: a.ID, Choice: a.Choice})
	}

	key, name := scoring.PickArchetype(questionSet.Schema.Schema, answers)
	teaser := teaserHTML(name)

	attempt := &model.QuizAttempt{
		UserID:        user.ID,
		CategoryID:    category.ID,
		AffiliateID:   affiliateID,
		QuestionSetID: questionSet.ID,
		Answers:       answers,
		Archetype:     key,
		TeaserHTML:    teaser,
		Status:        model.AttemptStatusTeaserShown,
	}
	if err := s.attempts.Create(attempt); err != nil {
		log.Error().Err(err).Str("categorySlug", categorySlug).Msg("Failed to create quiz attempt")
		return nil, fmt.Errorf("unable to create attempt: %w", err)
	}

	log.Info().
		Str("attemptID", attempt.ID).
		Str("archetype", key).
		Str("categorySlug", categorySlug).
		Int("answerCount", len(answers)).
		Msg("Quiz attempt created")

	return &dto.QuizSubmitResponse{
		AttemptID:     attempt.ID,
		ArchetypeKey:  key,
		ArchetypeName: name,
		TeaserHTML:    teaser,
	}, nil
}

func teaserHTML(archetypeName string) string {
	return fmt.Sprintf(
		"<h2>%s</h2>\n<p>You default to %s patterns under pressure. One quick win: 60-second nasal inhale/exhale (4:6) before big decisions. The full report covers stress triggers, habit stack, and a 7-day plan.</p>",
		archetypeName, archetypeName,
	)
}
