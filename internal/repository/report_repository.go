package repository

import (
	"errors"

	"github.com/mindfunnel/mindfunnel-api/internal/model"
	"gorm.io/gorm"
)

type ReportRepository interface {
	// Create inserts the finished report. The unique (attempt, type) index
	// guarantees at most one report per paid tier.
	Create(report *model.Report) error
	// FindByAttempt returns the newest report for an attempt, or (nil, nil).
	FindByAttempt(attemptID string) (*model.Report, error)
	// FindByAttemptAndType returns (nil, nil) when the pair has no report yet.
	FindByAttemptAndType(attemptID, reportType string) (*model.Report, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *model.Report) error {
	return r.db.Create(report).Error
}

func (r *reportRepository) FindByAttempt(attemptID string) (*model.Report, error) {
	var report model.Report
	err := r.db.
		Where("quiz_attempt_id = ?", attemptID).
		Order("created_at DESC").
		First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) FindByAttemptAndType(attemptID, reportType string) (*model.Report, error) {
	var report model.Report
	err := r.db.
		Where("quiz_attempt_id = ? AND type = ?", attemptID, reportType).
		First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}
