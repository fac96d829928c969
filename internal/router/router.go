// Package router builds the Echo instance: the middleware chain, the
// global error handler and every route.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/jod-api/internal/handler"
	"github.com/deppfellow/jod-api/internal/middleware"
	"github.com/deppfellow/jod-api/internal/model"
	"github.com/deppfellow/jod-api/internal/server"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.RateLimit.Limit(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerJobRoutes(router, h)

	return router
}

func registerJobRoutes(r *echo.Echo, h *handler.Handlers) {
	jobs := r.Group("/jobs/:job_id")
	jobs.GET("/shifts", handler.Handle(h.Job.Handler, h.Job.ListShifts, http.StatusOK, &model.JobIDRequest{}))
	jobs.POST("/shifts", handler.Handle(h.Shift.Handler, h.Shift.CreateShift, http.StatusCreated, &model.CreateShiftRequest{}))
	jobs.GET("/slots-shifts", handler.Handle(h.Job.Handler, h.Job.ListSlots, http.StatusOK, &model.JobIDRequest{}))
	jobs.GET("/stats", handler.Handle(h.Job.Handler, h.Job.GetStats, http.StatusOK, &model.JobIDRequest{}))

	shifts := r.Group("/shifts/:shift_id")
	shifts.PUT("", handler.Handle(h.Shift.Handler, h.Shift.UpdateShift, http.StatusOK, &model.UpdateShiftRequest{}))
	shifts.DELETE("", handler.Handle(h.Shift.Handler, h.Shift.DeleteShift, http.StatusOK, &model.ShiftIDRequest{}))
	shifts.GET("/slots", handler.Handle(h.Shift.Handler, h.Shift.ListSlots, http.StatusOK, &model.ShiftIDRequest{}))
	shifts.POST("/slots", handler.Handle(h.Slot.Handler, h.Slot.CreateSlot, http.StatusCreated, &model.CreateSlotRequest{}))
	shifts.GET("/users", handler.Handle(h.Shift.Handler, h.Shift.ListUsers, http.StatusOK, &model.ShiftIDRequest{}))

	slots := r.Group("/slots/:slot_id")
	slots.PUT("", handler.Handle(h.Slot.Handler, h.Slot.UpdateSlot, http.StatusOK, &model.UpdateSlotRequest{}))
	slots.DELETE("", handler.Handle(h.Slot.Handler, h.Slot.DeleteSlot, http.StatusOK, &model.SlotIDRequest{}))
}
