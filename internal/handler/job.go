package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/jod-api/internal/model"
	"github.com/deppfellow/jod-api/internal/server"
	"github.com/deppfellow/jod-api/internal/service"
)

type JobHandler struct {
	Handler
	jobService *service.JobService
}

func NewJobHandler(s *server.Server, jobService *service.JobService) *JobHandler {
	return &JobHandler{
		Handler:    NewHandler(s),
		jobService: jobService,
	}
}

func (h *JobHandler) ListShifts(c echo.Context, req *model.JobIDRequest) ([]model.Shift, error) {
	return h.jobService.ListShifts(c.Request().Context(), req.JobID)
}

// ListSlots returns the slots of every shift mapped to the job.
func (h *JobHandler) ListSlots(c echo.Context, req *model.JobIDRequest) ([]model.Slot, error) {
	return h.jobService.ListSlots(c.Request().Context(), req.JobID)
}

func (h *JobHandler) GetStats(c echo.Context, req *model.JobIDRequest) (*model.JobStats, error) {
	return h.jobService.GetStats(c.Request().Context(), req.JobID)
}
