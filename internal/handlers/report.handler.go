package handlers

import (
	"kintai/internal/app"
	"kintai/internal/handlers/middleware"
	"kintai/internal/logger"

	reportsController "kintai/internal/controllers/reports"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	Handler
	reports reportsController.ReportsControllerInterface
}

type submitReportRequest struct {
	Content      string   `json:"content" validate:"required"`
	Date         string   `json:"date"`
	WorkHours    *float64 `json:"workHours"`
	Achievements *string  `json:"achievements"`
	Challenges   *string  `json:"challenges"`
	Tomorrow     *string  `json:"tomorrow"`
}

func NewReportHandler(app app.App, router fiber.Router) *ReportHandler {
	return &ReportHandler{
		reports: app.Controllers.Reports,
		Handler: Handler{
			log:        logger.New("handlers").File("report_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ReportHandler) Register() {
	reports := h.router.Group("/reports", h.middleware.RequireAuth())

	reports.Post("/daily", h.submitDaily)
	reports.Get("/daily", h.getActiveDaily)
}

func (h *ReportHandler) submitDaily(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	var req submitReportRequest
	if err := c.BodyParser(&req); err != nil {
		return respondValidationError(c, err)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	report, err := h.reports.SubmitReport(c.UserContext(), user.ID, reportsController.SubmitReportRequest{
		Date:         req.Date,
		Content:      req.Content,
		WorkHours:    req.WorkHours,
		Achievements: req.Achievements,
		Challenges:   req.Challenges,
		Tomorrow:     req.Tomorrow,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(fiber.Map{"reportId": report.ID})
}

func (h *ReportHandler) getActiveDaily(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	report, err := h.reports.GetActiveReport(c.UserContext(), user.ID, c.Query("date"))
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(fiber.Map{"report": report})
}
