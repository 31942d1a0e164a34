package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"classtrack_go/models"
	"classtrack_go/store"
	"classtrack_go/utils"
)

type ClassController struct {
	Store *store.Store
}

// CreateClassRequest represents the class-creation body.
type CreateClassRequest struct {
	Name     string `json:"name" validate:"required"`
	Division string `json:"division" validate:"required"`
	Stream   string `json:"stream" validate:"required"`
	Grade    string `json:"grade"`
}

// CreateClass creates a new class (admin only).
func (cc *ClassController) CreateClass(c *fiber.Ctx) error {
	var req CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Grade == "" {
		req.Grade = "12"
	}

	class := &models.Class{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Division:   req.Division,
		Stream:     req.Stream,
		Grade:      req.Grade,
		TeacherIDs: models.StringList{},
		StudentIDs: models.StringList{},
		CreatedAt:  time.Now().UTC(),
	}
	if err := cc.Store.Classes.InsertOne(c.UserContext(), class); err != nil {
		return utils.JSONError(c, err)
	}

	return c.JSON(class)
}

// GetClasses returns all classes (any authenticated user).
func (cc *ClassController) GetClasses(c *fiber.Ctx) error {
	classes, err := cc.Store.Classes.FindMany(c.UserContext(), nil)
	if err != nil {
		return utils.JSONError(c, err)
	}
	if classes == nil {
		classes = []models.Class{}
	}
	return c.JSON(classes)
}

// AssignStudent adds a student to a class (admin only). It is the one
// operation that touches both sides of the student/class link, keeping
// class.student_ids and user.class_id consistent. Re-assigning an
// already listed student only refreshes the user side.
func (cc *ClassController) AssignStudent(c *fiber.Ctx) error {
	var req struct {
		StudentID string `json:"student_id" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "student_id is required"})
	}

	ctx := c.UserContext()
	classID := c.Params("id")

	class, err := cc.Store.Classes.FindOne(ctx, store.Filter{"id": classID})
	if err != nil {
		return utils.JSONError(c, err)
	}
	if class == nil {
		return utils.JSONError(c, fmt.Errorf("class %w", utils.ErrNotFound))
	}

	if !class.StudentIDs.Contains(req.StudentID) {
		updated := append(class.StudentIDs, req.StudentID)
		if _, err := cc.Store.Classes.UpdateOne(ctx,
			store.Filter{"id": classID},
			store.Updates{"student_ids": updated}); err != nil {
			return utils.JSONError(c, err)
		}
	}

	if _, err := cc.Store.Users.UpdateOne(ctx,
		store.Filter{"id": req.StudentID, "role": models.RoleStudent},
		store.Updates{"class_id": classID}); err != nil {
		return utils.JSONError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Student assigned to class successfully"})
}
