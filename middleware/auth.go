package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"classtrack_go/models"
	"classtrack_go/store"
	"classtrack_go/utils"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session_token"

const userLocalKey = "user"

// ExtractToken reads the session token from the cookie, falling back to
// an Authorization bearer header.
func ExtractToken(c *fiber.Ctx) string {
	if token := c.Cookies(SessionCookieName); token != "" {
		return token
	}
	auth := c.Get("Authorization")
	if token := strings.TrimPrefix(auth, "Bearer "); token != auth {
		return token
	}
	return ""
}

// SessionAuth resolves the request's session token to a user and stores
// it in the request locals. Requests without a resolvable session pass
// through anonymously; the gates below decide whether that matters.
func SessionAuth(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if user := resolveUser(c, st); user != nil {
			c.Locals(userLocalKey, user)
		}
		return c.Next()
	}
}

func resolveUser(c *fiber.Ctx, st *store.Store) *models.User {
	token := ExtractToken(c)
	if token == "" {
		return nil
	}

	ctx := c.UserContext()
	sess, err := st.Sessions.FindOne(ctx, store.Filter{"session_token": token})
	if err != nil || sess == nil {
		return nil
	}

	if sess.ExpiresAt.Before(time.Now()) {
		// Lazy cleanup. Best effort: a concurrent reader of the same
		// token may race the delete and simply see "not found".
		_, _ = st.Sessions.DeleteMany(ctx, store.Filter{"session_token": token})
		return nil
	}

	user, err := st.Users.FindOne(ctx, store.Filter{"id": sess.UserID})
	if err != nil || user == nil {
		return nil
	}
	return user
}

// CurrentUser returns the authenticated user for this request, nil when
// the request is anonymous.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalKey).(*models.User)
	return user
}

// RequireAuth rejects anonymous requests.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return utils.JSONError(c, utils.ErrUnauthenticated)
		}
		return c.Next()
	}
}

// RequireRole rejects anonymous requests first, then requests whose user
// holds none of the allowed roles. The order matters: a missing session
// must never leak whether a role would have been sufficient.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return utils.JSONError(c, utils.ErrUnauthenticated)
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return utils.JSONError(c, utils.ErrForbidden)
	}
}
