package service

import (
	"context"
	"errors"

	"github.com/deppfellow/jod-api/internal/errs"
	"github.com/deppfellow/jod-api/internal/model"
	"github.com/deppfellow/jod-api/internal/repository"
	"github.com/deppfellow/jod-api/internal/server"
)

// SlotStore is what SlotService needs from the slot repository.
type SlotStore interface {
	Create(ctx context.Context, shiftID int64, p model.SlotPayload) (*model.Slot, error)
	Update(ctx context.Context, slotID, shiftID int64, p model.SlotPayload) (*model.Slot, error)
	Delete(ctx context.Context, slotID int64) error
}

type SlotService struct {
	server *server.Server
	repo   SlotStore
}

func NewSlotService(s *server.Server, repo SlotStore) *SlotService {
	return &SlotService{server: s, repo: repo}
}

func slotNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("Slot not found", true, nil)
}

func (s *SlotService) Create(ctx context.Context, shiftID int64, p model.SlotPayload) (*model.Slot, error) {
	return s.repo.Create(ctx, shiftID, p)
}

func (s *SlotService) Update(ctx context.Context, slotID, shiftID int64, p model.SlotPayload) (*model.Slot, error) {
	slot, err := s.repo.Update(ctx, slotID, shiftID, p)
	if errors.Is(err, repository.ErrSlotNotFound) {
		return nil, slotNotFound()
	}
	return slot, err
}

func (s *SlotService) Delete(ctx context.Context, slotID int64) (*model.MessageResponse, error) {
	err := s.repo.Delete(ctx, slotID)
	if errors.Is(err, repository.ErrSlotNotFound) {
		return nil, slotNotFound()
	}
	if err != nil {
		return nil, err
	}
	return &model.MessageResponse{Message: "Slot deleted successfully"}, nil
}
