package repository

import (
	"errors"

	"github.com/mindfunnel/mindfunnel-api/internal/model"
	"gorm.io/gorm"
)

type ReportJobRepository interface {
	Create(job *model.ReportJob) error
	FindByID(id string) (*model.ReportJob, error)
	// FindLatestByAttempt returns (nil, nil) when the attempt has no job.
	FindLatestByAttempt(attemptID string) (*model.ReportJob, error)
	// FindByAttemptAndProduct returns (nil, nil) when no job exists for the pair.
	FindByAttemptAndProduct(attemptID, product string) (*model.ReportJob, error)
	// ClaimOldestPending atomically moves the oldest pending job to processing.
	// Returns (nil, false, nil) when the queue is empty or the job was claimed
	// by someone else between the read and the conditional update.
	ClaimOldestPending() (*model.ReportJob, bool, error)
	// MarkDone flips a processing job to done. No-op unless it is processing.
	MarkDone(id string) error
	// MarkError flips a processing job to its terminal error state, recording
	// the failure detail. No-op unless the job is processing.
	MarkError(id string, detail string) error
}

type reportJobRepository struct {
	db *gorm.DB
}

func NewReportJobRepository(db *gorm.DB) ReportJobRepository {
	return &reportJobRepository{db: db}
}

func (r *reportJobRepository) Create(job *model.ReportJob) error {
	if job.Status == "" {
		job.Status = model.JobStatusPending
	}
	return r.db.Create(job).Error
}

func (r *reportJobRepository) FindByID(id string) (*model.ReportJob, error) {
	var job model.ReportJob
	if err := r.db.First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *reportJobRepository) FindLatestByAttempt(attemptID string) (*model.ReportJob, error) {
	var job model.ReportJob
	err := r.db.
		Where("quiz_attempt_id = ?", attemptID).
		Order("created_at DESC").
		First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *reportJobRepository) FindByAttemptAndProduct(attemptID, product string) (*model.ReportJob, error) {
	var job model.ReportJob
	err := r.db.
		Where("quiz_attempt_id = ? AND product = ?", attemptID, product).
		Order("created_at DESC").
		First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *reportJobRepository) ClaimOldestPending() (*model.ReportJob, bool, error) {
	var job model.ReportJob
	err := r.db.
		Where("status = ?", model.JobStatusPending).
		Order("created_at ASC").
		First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	// Conditional update: the status predicate makes the claim atomic, so a
	// second worker instance can never double-process the same job.
	res := r.db.Model(&model.ReportJob{}).
		Where("id = ? AND status = ?", job.ID, model.JobStatusPending).
		Update("status", model.JobStatusProcessing)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, false, nil
	}
	job.Status = model.JobStatusProcessing
	return &job, true, nil
}

func (r *reportJobRepository) MarkDone(id string) error {
	return r.db.Model(&model.ReportJob{}).
		Where("id = ? AND status = ?", id, model.JobStatusProcessing).
		Update("status", model.JobStatusDone).Error
}

func (r *reportJobRepository) MarkError(id string, detail string) error {
	return r.db.Model(&model.ReportJob{}).
		Where("id = ? AND status = ?", id, model.JobStatusProcessing).
		Updates(map[string]interface{}{
			"status": model.JobStatusError,
			"error":  detail,
		}).Error
}
