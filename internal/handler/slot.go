package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/jod-api/internal/model"
	"github.com/deppfellow/jod-api/internal/server"
	"github.com/deppfellow/jod-api/internal/service"
)

type SlotHandler struct {
	Handler
	slotService *service.SlotService
}

func NewSlotHandler(s *server.Server, slotService *service.SlotService) *SlotHandler {
	return &SlotHandler{
		Handler:     NewHandler(s),
		slotService: slotService,
	}
}

func (h *SlotHandler) CreateSlot(c echo.Context, req *model.CreateSlotRequest) (*model.Slot, error) {
	return h.slotService.Create(c.Request().Context(), req.ShiftID, req.SlotPayload)
}

// UpdateSlot replaces a slot. The shift it belongs to comes from the body
// and may differ from the current one.
func (h *SlotHandler) UpdateSlot(c echo.Context, req *model.UpdateSlotRequest) (*model.Slot, error) {
	return h.slotService.Update(c.Request().Context(), req.SlotID, req.ShiftID, req.SlotPayload)
}

func (h *SlotHandler) DeleteSlot(c echo.Context, req *model.SlotIDRequest) (*model.MessageResponse, error) {
	return h.slotService.Delete(c.Request().Context(), req.SlotID)
}
