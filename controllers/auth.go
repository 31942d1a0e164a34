package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"classtrack_go/config"
	"classtrack_go/middleware"
	"classtrack_go/models"
	"classtrack_go/services/authprovider"
	"classtrack_go/store"
	"classtrack_go/utils"
)

type AuthController struct {
	Store    *store.Store
	Provider authprovider.Exchanger
}

// SessionRequest carries the opaque session id from the OAuth callback.
type SessionRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

// CreateSession exchanges the external session id for user identity,
// creates the local user on first login (default role student), issues
// a fresh session and sets the session cookie. Repeated logins always
// create new session records; they are never deduplicated.
func (ac *AuthController) CreateSession(c *fiber.Ctx) error {
	var req SessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "session_id is required"})
	}

	ctx := c.UserContext()
	data, err := ac.Provider.Exchange(ctx, req.SessionID)
	if err != nil {
		return utils.JSONError(c, err)
	}

	user, err := ac.Store.Users.FindOne(ctx, store.Filter{"email": data.Email})
	if err != nil {
		return utils.JSONError(c, err)
	}
	if user == nil {
		// First login: admins promote the account later.
		user = &models.User{
			ID:        uuid.NewString(),
			Email:     data.Email,
			Name:      data.Name,
			Picture:   data.Picture,
			Role:      models.RoleStudent,
			CreatedAt: time.Now().UTC(),
		}
		if err := ac.Store.Users.InsertOne(ctx, user); err != nil {
			return utils.JSONError(c, err)
		}
	}

	ttl := config.AppConfig.SessionTTL
	sess := &models.Session{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		SessionToken: data.SessionToken,
		ExpiresAt:    time.Now().UTC().Add(ttl),
		CreatedAt:    time.Now().UTC(),
	}
	if err := ac.Store.Sessions.InsertOne(ctx, sess); err != nil {
		return utils.JSONError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sess.SessionToken,
		MaxAge:   int(ttl.Seconds()),
		Path:     "/",
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})

	return c.JSON(fiber.Map{
		"user":          user,
		"session_token": sess.SessionToken,
	})
}

// Logout deletes the session behind the presented token, if any, and
// clears the cookie. Always succeeds.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if token := middleware.ExtractToken(c); token != "" {
		_, _ = ac.Store.Sessions.DeleteMany(c.UserContext(), store.Filter{"session_token": token})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		MaxAge:   -1,
		Path:     "/",
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// Me returns the current user.
func (ac *AuthController) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return utils.JSONError(c, utils.ErrUnauthenticated)
	}
	return c.JSON(user)
}
