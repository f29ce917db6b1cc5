package handlers

import (
	"kintai/internal/app"
	"kintai/internal/logger"

	managerController "kintai/internal/controllers/manager"

	"github.com/gofiber/fiber/v2"
)

type ManagerHandler struct {
	Handler
	manager managerController.ManagerControllerInterface
}

func NewManagerHandler(app app.App, router fiber.Router) *ManagerHandler {
	return &ManagerHandler{
		manager: app.Controllers.Manager,
		Handler: Handler{
			log:        logger.New("handlers").File("manager_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ManagerHandler) Register() {
	manager := h.router.Group(
		"/manager",
		h.middleware.RequireAuth(),
		h.middleware.RequireManager(),
	)

	manager.Get("/staff-status", h.getStaffStatus)
}

func (h *ManagerHandler) getStaffStatus(c *fiber.Ctx) error {
	overview, err := h.manager.GetStaffOverview(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(fiber.Map{"staff": overview})
}
