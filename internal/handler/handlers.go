package handler

import (
	"github.com/deppfellow/jod-api/internal/server"
	"github.com/deppfellow/jod-api/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Job     *JobHandler
	Shift   *ShiftHandler
	Slot    *SlotHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Job:     NewJobHandler(s, services.Job),
		Shift:   NewShiftHandler(s, services.Shift),
		Slot:    NewSlotHandler(s, services.Slot),
	}
}
