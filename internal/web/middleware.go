package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pbordage/restaurant-web/internal/session"
	"github.com/pbordage/restaurant-web/internal/user"
)

const currentUserKey = "currentUser"

// LoadUser resolves the session's user id to the full User row and stores it
// in request locals for handlers and views. Anonymous requests pass through
// untouched.
func LoadUser(sessions *session.Manager, users *user.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := sessions.UserID(c); ok {
			if u, err := users.GetByID(id); err == nil {
				c.Locals(currentUserKey, u)
			}
		}
		return c.Next()
	}
}

// CurrentUser returns the user loaded by LoadUser, if any.
func CurrentUser(c *fiber.Ctx) (user.User, bool) {
	u, ok := c.Locals(currentUserKey).(user.User)
	return u, ok
}

// RequireLogin redirects anonymous requests to the login form instead of
// delegating to the wrapped handler.
func RequireLogin(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := sessions.UserID(c); !ok {
			return c.Redirect("/login", fiber.StatusFound)
		}
		return c.Next()
	}
}

// resetCurrentUser drops the loaded user after the session has been cleared
// mid-request, so re-rendered forms do not show a stale identity.
func resetCurrentUser(c *fiber.Ctx) {
	c.Locals(currentUserKey, nil)
}
