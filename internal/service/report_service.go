package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/mindfunnel/mindfunnel-api/internal/dto"
	"github.com/mindfunnel/mindfunnel-api/internal/model"
	"github.com/mindfunnel/mindfunnel-api/internal/repository"
	"github.com/rs/zerolog/log"
)

// ReportService answers the client's result poll. The contract is read-only:
// polling never enqueues work, it only reflects what the worker has produced.
type ReportService interface {
	GetReportStatus(attemptID string) (*dto.ReportStatusResponse, error)
}

type reportService struct {
	reports repository.ReportRepository
	jobs    repository.ReportJobRepository
}

func NewReportService(reports repository.ReportRepository, jobs repository.ReportJobRepository) ReportService {
	return &reportService{reports: reports, jobs: jobs}
}

func (s *reportService) GetReportStatus(attemptID string) (*dto.ReportStatusResponse, error) {
	report, err := s.reports.FindByAttempt(attemptID)
	if err != nil {
		return nil, fmt.Errorf("report lookup failed: %w", err)
	}
	if report != nil {
		var reportDTO dto.ReportDTO
		if err := copier.Copy(&reportDTO, report); err != nil {
			return nil, fmt.Errorf("failed to map report: %w", err)
		}
		return &dto.ReportStatusResponse{
			Ready:  true,
			Status: dto.ReportStateReady,
			Report: &reportDTO,
		}, nil
	}

	job, err := s.jobs.FindLatestByAttempt(attemptID)
	if err != nil {
		return nil, fmt.Errorf("job lookup failed: %w", err)
	}
	if job == nil {
		return &dto.ReportStatusResponse{Ready: false, Status: dto.ReportStateNone}, nil
	}

	switch job.Status {
	case model.JobStatusPending:
		return &dto.ReportStatusResponse{Ready: false, Status: dto.ReportStatePending}, nil
	case model.JobStatusProcessing:
		return &dto.ReportStatusResponse{Ready: false, Status: dto.ReportStateProcessing}, nil
	case model.JobStatusError:
		return &dto.ReportStatusResponse{Ready: false, Status: dto.ReportStateError, Error: job.Error}, nil
	case model.JobStatusDone:
		// Done without a stored report means the worker crashed between the
		// report insert and the status flip, or the insert was rolled back.
		// Report it as still processing rather than lying about readiness.
		log.Warn().Str("jobID", job.ID).Str("attemptID", attemptID).
			Msg("Job marked done but no report row exists")
		return &dto.ReportStatusResponse{Ready: false, Status: dto.ReportStateProcessing}, nil
	default:
		return nil, fmt.Errorf("unexpected job status %q for job %s", job.Status, job.ID)
	}
}
