package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/deppfellow/jod-api/internal/errs"
	"github.com/deppfellow/jod-api/internal/middleware"
	"github.com/deppfellow/jod-api/internal/model"
	"github.com/deppfellow/jod-api/internal/repository"
	"github.com/deppfellow/jod-api/internal/server"
)

// ShiftStore is what ShiftService needs from the shift repository.
type ShiftStore interface {
	ListSlots(ctx context.Context, shiftID int64) ([]model.Slot, error)
	ListUsers(ctx context.Context, shiftID int64) ([]model.User, error)
	Create(ctx context.Context, jobID int64, p model.ShiftPayload) (*model.Shift, error)
	Update(ctx context.Context, shiftID int64, p model.ShiftPayload) (*model.Shift, error)
	Delete(ctx context.Context, shiftID int64) error
}

type ShiftService struct {
	server *server.Server
	repo   ShiftStore
}

func NewShiftService(s *server.Server, repo ShiftStore) *ShiftService {
	return &ShiftService{server: s, repo: repo}
}

func shiftNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("Shift not found", true, nil)
}

func (s *ShiftService) ListSlots(ctx context.Context, shiftID int64) ([]model.Slot, error) {
	return s.repo.ListSlots(ctx, shiftID)
}

func (s *ShiftService) ListUsers(ctx context.Context, shiftID int64) ([]model.User, error) {
	return s.repo.ListUsers(ctx, shiftID)
}

// Create stores a shift for jobID. A missing shift_uuid is generated here.
func (s *ShiftService) Create(ctx context.Context, jobID int64, p model.ShiftPayload) (*model.Shift, error) {
	if p.ShiftUUID == uuid.Nil {
		p.ShiftUUID = uuid.New()
	}

	shift, err := s.repo.Create(ctx, jobID, p)
	if err != nil {
		return nil, err
	}

	logger := middleware.LoggerFromContext(ctx)
	logger.Info().
		Int64("job_id", jobID).
		Int64("shift_id", shift.ID).
		Msg("shift created")

	return shift, nil
}

// Update replaces the shift. An omitted shift_uuid keeps the stored one.
func (s *ShiftService) Update(ctx context.Context, shiftID int64, p model.ShiftPayload) (*model.Shift, error) {
	shift, err := s.repo.Update(ctx, shiftID, p)
	if errors.Is(err, repository.ErrShiftNotFound) {
		return nil, shiftNotFound()
	}
	return shift, err
}

func (s *ShiftService) Delete(ctx context.Context, shiftID int64) (*model.MessageResponse, error) {
	err := s.repo.Delete(ctx, shiftID)
	if errors.Is(err, repository.ErrShiftNotFound) {
		return nil, shiftNotFound()
	}
	if err != nil {
		return nil, err
	}

	logger := middleware.LoggerFromContext(ctx)
	logger.Info().Int64("shift_id", shiftID).Msg("shift deleted")

	return &model.MessageResponse{Message: "Shift deleted successfully"}, nil
}
