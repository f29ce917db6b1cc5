package handlers

import (
	"context"

	"kintai/internal/app"
	"kintai/internal/handlers/middleware"
	"kintai/internal/logger"
	"kintai/internal/models"

	attendanceController "kintai/internal/controllers/attendance"
	previousdayController "kintai/internal/controllers/previousday"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AttendanceHandler struct {
	Handler
	attendance  attendanceController.AttendanceControllerInterface
	previousDay previousdayController.PreviousDayControllerInterface
}

type timeReportRequest struct {
	Timestamp   string  `json:"timestamp"   validate:"required"`
	Date        string  `json:"date"`
	Location    *string `json:"location"`
	Destination *string `json:"destination"`
	Notes       *string `json:"notes"`
}

type dayRequest struct {
	Date string `json:"date"`
}

type previousDayRequest struct {
	NextWakeUpTime     string  `json:"next_wake_up_time"    validate:"required"`
	NextDepartureTime  string  `json:"next_departure_time"  validate:"required"`
	NextArrivalTime    string  `json:"next_arrival_time"    validate:"required"`
	AppearancePhotoURL string  `json:"appearance_photo_url" validate:"required,url"`
	RoutePhotoURL      string  `json:"route_photo_url"      validate:"required,url"`
	Notes              *string `json:"notes"`
}

type linkPreviousDayRequest struct {
	AttendanceRecordID string `json:"attendance_record_id" validate:"required,uuid"`
	ReportDate         string `json:"report_date"`
}

func NewAttendanceHandler(app app.App, router fiber.Router) *AttendanceHandler {
	return &AttendanceHandler{
		attendance:  app.Controllers.Attendance,
		previousDay: app.Controllers.PreviousDay,
		Handler: Handler{
			log:        logger.New("handlers").File("attendance_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AttendanceHandler) Register() {
	attendance := h.router.Group("/attendance", h.middleware.RequireAuth())

	attendance.Post("/wake-up", h.reportWakeUp)
	attendance.Post("/departure", h.reportDeparture)
	attendance.Post("/arrival", h.reportArrival)
	attendance.Post("/complete-day", h.completeDay)
	attendance.Post("/reopen-day", h.reopenDay)
	attendance.Post("/start-new-day", h.startNewDay)
	attendance.Post("/reset-for-new-day", h.resetForNewDay)
	attendance.Get("/status", h.getStatus)
	attendance.Post("/previous-day", h.submitPreviousDay)
	attendance.Post("/link-previous-day", h.linkPreviousDay)
}

func (h *AttendanceHandler) reportWakeUp(c *fiber.Ctx) error {
	return h.reportTime(c, h.attendance.ReportWakeUp)
}

func (h *AttendanceHandler) reportDeparture(c *fiber.Ctx) error {
	return h.reportTime(c, h.attendance.ReportDeparture)
}

func (h *AttendanceHandler) reportArrival(c *fiber.Ctx) error {
	return h.reportTime(c, h.attendance.ReportArrival)
}

func (h *AttendanceHandler) reportTime(
	c *fiber.Ctx,
	report func(ctx context.Context, staffID uuid.UUID, req attendanceController.TimeReportRequest) (*models.AttendanceRecord, error),
) error {
	user := middleware.GetUser(c)

	var req timeReportRequest
	if err := c.BodyParser(&req); err != nil {
		return respondValidationError(c, err)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	record, err := report(c.UserContext(), user.ID, attendanceController.TimeReportRequest{
		Date:        req.Date,
		Timestamp:   req.Timestamp,
		Location:    req.Location,
		Destination: req.Destination,
		Notes:       req.Notes,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(fiber.Map{"record": record})
}

func (h *AttendanceHandler) completeDay(c *fiber.Ctx) error {
	return h.dayOperation(c, h.attendance.CompleteDay)
}

func (h *AttendanceHandler) reopenDay(c *fiber.Ctx) error {
	return h.dayOperation(c, h.attendance.ReopenDay)
}

func (h *AttendanceHandler) startNewDay(c *fiber.Ctx) error {
	return h.dayOperation(c, h.attendance.StartNewDay)
}

func (h *AttendanceHandler) resetForNewDay(c *fiber.Ctx) error {
	return h.dayOperation(c, h.attendance.ResetForNewDay)
}

func (h *AttendanceHandler) dayOperation(
	c *fiber.Ctx,
	operation func(ctx context.Context, staffID uuid.UUID, date string) (*attendanceController.CycleResult, error),
) error {
	user := middleware.GetUser(c)

	var req dayRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return respondValidationError(c, err)
		}
	}

	result, err := operation(c.UserContext(), user.ID, req.Date)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(result)
}

func (h *AttendanceHandler) getStatus(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	status, err := h.attendance.GetStatus(c.UserContext(), user.ID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(status)
}

func (h *AttendanceHandler) submitPreviousDay(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	var req previousDayRequest
	if err := c.BodyParser(&req); err != nil {
		return respondValidationError(c, err)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	report, err := h.previousDay.SubmitPreviousDayReport(
		c.UserContext(),
		user.ID,
		previousdayController.SubmitPreviousDayRequest{
			NextWakeUpTime:     req.NextWakeUpTime,
			NextDepartureTime:  req.NextDepartureTime,
			NextArrivalTime:    req.NextArrivalTime,
			AppearancePhotoURL: req.AppearancePhotoURL,
			RoutePhotoURL:      req.RoutePhotoURL,
			Notes:              req.Notes,
		},
	)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(fiber.Map{"data": report})
}

// linkPreviousDay is the follow-up step after an attendance record is created
// for a planned date. The engine never links automatically; callers that
// create a record are expected to call this endpoint to connect it to the
// plan that predicted it.
func (h *AttendanceHandler) linkPreviousDay(c *fiber.Ctx) error {
	user := middleware.GetUser(c)

	var req linkPreviousDayRequest
	if err := c.BodyParser(&req); err != nil {
		return respondValidationError(c, err)
	}
	if err := validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	recordID, err := uuid.Parse(req.AttendanceRecordID)
	if err != nil {
		return respondValidationError(c, err)
	}

	result, err := h.previousDay.LinkToAttendanceRecord(
		c.UserContext(),
		user.ID,
		recordID,
		req.ReportDate,
	)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(fiber.Map{
		"linked":                 result.Linked,
		"already_linked":         result.AlreadyLinked,
		"previous_day_report_id": result.PreviousDayReportID,
	})
}
