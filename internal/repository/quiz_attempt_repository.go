package repository

import (
	"github.com/mindfunnel/mindfunnel-api/internal/model"
	"gorm.io/gorm"
)

type QuizAttemptRepository interface {
	Create(attempt *model.QuizAttempt) error
	FindByID(id string) (*model.QuizAttempt, error)
	// FindLatestByUser returns the most recently created attempt for a user,
	// the fallback used when a payment event carries no attempt id.
	FindLatestByUser(userID string) (*model.QuizAttempt, error)
	// UpgradeStatus sets the attempt status to newStatus only if it outranks
	// the current one. Returns true when a row actually changed.
	UpgradeStatus(id string, newStatus string) (bool, error)
}

type quizAttemptRepository struct {
	db *gorm.DB
}

func NewQuizAttemptRepository(db *gorm.DB) QuizAttemptRepository {
	return &quizAttemptRepository{db: db}
}

func (r *quizAttemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *quizAttemptRepository) FindByID(id string) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	if err := r.db.First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *quizAttemptRepository) FindLatestByUser(userID string) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *quizAttemptRepository) UpgradeStatus(id string, newStatus string) (bool, error) {
	rank := model.AttemptStatusRank(newStatus)
	if rank < 0 {
		return false, gorm.ErrInvalidValue
	}

	// Monotonic guard in the WHERE clause: only statuses outranked by the new
	// one are eligible, so a late mini_paid event can never downgrade full_paid.
	var lower []string
	for _, status := range []string{model.AttemptStatusTeaserShown, model.AttemptStatusMiniPaid, model.AttemptStatusFullPaid} {
		if model.AttemptStatusRank(status) < rank {
			lower = append(lower, status)
		}
	}
	res := r.db.Model(&model.QuizAttempt{}).
		Where("id = ? AND status IN ?", id, lower).
		Update("status", newStatus)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
