package controllers

import (
	"github.com/gofiber/fiber/v2"

	"classtrack_go/middleware"
	"classtrack_go/models"
	"classtrack_go/services"
	"classtrack_go/utils"
)

type AttendanceController struct {
	Service *services.AttendanceService
}

// BulkAttendanceRequest is the marking payload. The class comes from the
// path; an empty records list clears the date's attendance for the class.
type BulkAttendanceRequest struct {
	ClassID           string               `json:"class_id"`
	Date              string               `json:"date" validate:"required"`
	AttendanceRecords []services.MarkEntry `json:"attendance_records"`
}

// MarkAttendance marks attendance for a class (teachers and admins).
func (ac *AttendanceController) MarkAttendance(c *fiber.Ctx) error {
	var req BulkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date is required"})
	}

	marker := middleware.CurrentUser(c)
	if marker == nil {
		return utils.JSONError(c, utils.ErrUnauthenticated)
	}

	if err := ac.Service.Mark(c.UserContext(), marker, c.Params("class_id"), req.Date, req.AttendanceRecords); err != nil {
		return utils.JSONError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Attendance marked successfully"})
}

// GetClassAttendance returns a class's records visible to the caller,
// optionally filtered by ?date=.
func (ac *AttendanceController) GetClassAttendance(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.JSONError(c, utils.ErrUnauthenticated)
	}

	records, err := ac.Service.ClassAttendance(c.UserContext(), user, c.Params("class_id"), c.Query("date"))
	if err != nil {
		return utils.JSONError(c, err)
	}
	if records == nil {
		records = []models.AttendanceRecord{}
	}
	return c.JSON(records)
}

// GetStudentAttendance returns one student's records visible to the caller.
func (ac *AttendanceController) GetStudentAttendance(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.JSONError(c, utils.ErrUnauthenticated)
	}

	records, err := ac.Service.StudentAttendance(c.UserContext(), user, c.Params("student_id"))
	if err != nil {
		return utils.JSONError(c, err)
	}
	if records == nil {
		records = []models.AttendanceRecord{}
	}
	return c.JSON(records)
}
