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

type UserController struct {
	Store *store.Store
}

// CreateUserRequest represents the admin user-creation body.
type CreateUserRequest struct {
	Email          string   `json:"email" validate:"required,email"`
	Name           string   `json:"name" validate:"required"`
	Role           string   `json:"role" validate:"required"`
	StudentID      string   `json:"student_id"`
	ParentChildIDs []string `json:"parent_child_ids"`
	ClassID        string   `json:"class_id"`
}

// CreateUser creates a new user (admin only). A duplicate email is a
// conflict and performs no write.
func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !utils.IsValidRole(req.Role) {
		return utils.JSONError(c, fmt.Errorf("%w: unknown role %q", utils.ErrInvalid, req.Role))
	}

	ctx := c.UserContext()
	existing, err := uc.Store.Users.FindOne(ctx, store.Filter{"email": req.Email})
	if err != nil {
		return utils.JSONError(c, err)
	}
	if existing != nil {
		return utils.JSONError(c, fmt.Errorf("user %w", utils.ErrConflict))
	}

	user := &models.User{
		ID:             uuid.NewString(),
		Email:          req.Email,
		Name:           req.Name,
		Role:           req.Role,
		StudentID:      req.StudentID,
		ParentChildIDs: models.StringList(req.ParentChildIDs),
		ClassID:        req.ClassID,
		CreatedAt:      time.Now().UTC(),
	}
	if err := uc.Store.Users.InsertOne(ctx, user); err != nil {
		return utils.JSONError(c, err)
	}

	return c.JSON(user)
}

// GetUsers returns all users (admin only).
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	users, err := uc.Store.Users.FindMany(c.UserContext(), nil)
	if err != nil {
		return utils.JSONError(c, err)
	}
	if users == nil {
		users = []models.User{}
	}
	return c.JSON(users)
}

// UpdateUserRole changes a user's role (admin only). This is the only
// path that mutates a role after creation.
func (uc *UserController) UpdateUserRole(c *fiber.Ctx) error {
	var req struct {
		Role string `json:"role" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !utils.IsValidRole(req.Role) {
		return utils.JSONError(c, fmt.Errorf("%w: unknown role %q", utils.ErrInvalid, req.Role))
	}

	matched, err := uc.Store.Users.UpdateOne(c.UserContext(),
		store.Filter{"id": c.Params("id")},
		store.Updates{"role": req.Role})
	if err != nil {
		return utils.JSONError(c, err)
	}
	if matched == 0 {
		return utils.JSONError(c, fmt.Errorf("user %w", utils.ErrNotFound))
	}

	return c.JSON(fiber.Map{"message": "User role updated successfully"})
}
