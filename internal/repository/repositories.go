package repository

import (
	"github.com/deppfellow/jod-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Job   *JobRepository
	Shift *ShiftRepository
	Slot  *SlotRepository
}

// NewRepositories builds every repository on the server's database.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Job:   NewJobRepository(s.DB),
		Shift: NewShiftRepository(s.DB),
		Slot:  NewSlotRepository(s.DB),
	}
}
