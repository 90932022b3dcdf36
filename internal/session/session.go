// Package session wraps Fiber's server-side session store behind the small
// surface the auth flows need: safe user-id lookup, sign-in, clear.
package session

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

const userIDKey = "user_id"

// Manager owns the session store. The cookie carries only the session id;
// the user id lives server-side.
type Manager struct {
	store *session.Store
}

func NewManager() *Manager {
	return &Manager{
		store: session.New(session.Config{
			KeyLookup:      "cookie:session_id",
			KeyGenerator:   uuid.NewString,
			CookieHTTPOnly: true,
		}),
	}
}

// UserID returns the logged-in user id for this request, if any. A missing
// or foreign-typed value reads as "not logged in" rather than failing.
func (m *Manager) UserID(c *fiber.Ctx) (int, bool) {
	sess, err := m.store.Get(c)
	if err != nil {
		return 0, false
	}

	id, ok := sess.Get(userIDKey).(int)
	if !ok || id == 0 {
		return 0, false
	}

	return id, true
}

// SignIn drops any existing session state, issues a fresh session id and
// stores the user id in it.
func (m *Manager) SignIn(c *fiber.Ctx, id int) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}

	if err := sess.Reset(); err != nil {
		return err
	}

	sess.Set(userIDKey, id)
	return sess.Save()
}

// Clear removes the session and expires its cookie. Clearing an absent
// session is a no-op.
func (m *Manager) Clear(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}

	return sess.Destroy()
}
