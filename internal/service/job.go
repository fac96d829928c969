package service

import (
	"context"
	"errors"

	"github.com/deppfellow/jod-api/internal/errs"
	"github.com/deppfellow/jod-api/internal/model"
	"github.com/deppfellow/jod-api/internal/repository"
	"github.com/deppfellow/jod-api/internal/server"
)

// JobReader is what JobService needs from the job repository.
type JobReader interface {
	ListShifts(ctx context.Context, jobID int64) ([]model.Shift, error)
	ListSlots(ctx context.Context, jobID int64) ([]model.Slot, error)
	GetStats(ctx context.Context, jobID int64) (*model.JobStats, error)
}

type JobService struct {
	server *server.Server
	repo   JobReader
}

func NewJobService(s *server.Server, repo JobReader) *JobService {
	return &JobService{server: s, repo: repo}
}

func (s *JobService) ListShifts(ctx context.Context, jobID int64) ([]model.Shift, error) {
	return s.repo.ListShifts(ctx, jobID)
}

func (s *JobService) ListSlots(ctx context.Context, jobID int64) ([]model.Slot, error) {
	return s.repo.ListSlots(ctx, jobID)
}

// GetStats answers 404 "Job not found" for a job that does not exist.
func (s *JobService) GetStats(ctx context.Context, jobID int64) (*model.JobStats, error) {
	stats, err := s.repo.GetStats(ctx, jobID)
	if errors.Is(err, repository.ErrJobNotFound) {
		return nil, errs.NewNotFoundError("Job not found", true, nil)
	}
	return stats, err
}
