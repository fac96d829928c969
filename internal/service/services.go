package service

import (
	"github.com/deppfellow/jod-api/internal/repository"
	"github.com/deppfellow/jod-api/internal/server"
)

type Services struct {
	Job   *JobService
	Shift *ShiftService
	Slot  *SlotService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Job:   NewJobService(s, repos.Job),
		Shift: NewShiftService(s, repos.Shift),
		Slot:  NewSlotService(s, repos.Slot),
	}, nil
}
