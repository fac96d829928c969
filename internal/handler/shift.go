package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/jod-api/internal/model"
	"github.com/deppfellow/jod-api/internal/server"
	"github.com/deppfellow/jod-api/internal/service"
)

type ShiftHandler struct {
	Handler
	shiftService *service.ShiftService
}

func NewShiftHandler(s *server.Server, shiftService *service.ShiftService) *ShiftHandler {
	return &ShiftHandler{
		Handler:      NewHandler(s),
		shiftService: shiftService,
	}
}

func (h *ShiftHandler) ListSlots(c echo.Context, req *model.ShiftIDRequest) ([]model.Slot, error) {
	return h.shiftService.ListSlots(c.Request().Context(), req.ShiftID)
}

func (h *ShiftHandler) ListUsers(c echo.Context, req *model.ShiftIDRequest) ([]model.User, error) {
	return h.shiftService.ListUsers(c.Request().Context(), req.ShiftID)
}

// CreateShift creates a shift and maps it to the job in the path.
func (h *ShiftHandler) CreateShift(c echo.Context, req *model.CreateShiftRequest) (*model.Shift, error) {
	return h.shiftService.Create(c.Request().Context(), req.JobID, req.ShiftPayload)
}

func (h *ShiftHandler) UpdateShift(c echo.Context, req *model.UpdateShiftRequest) (*model.Shift, error) {
	return h.shiftService.Update(c.Request().Context(), req.ShiftID, req.ShiftPayload)
}

func (h *ShiftHandler) DeleteShift(c echo.Context, req *model.ShiftIDRequest) (*model.MessageResponse, error) {
	return h.shiftService.Delete(c.Request().Context(), req.ShiftID)
}
