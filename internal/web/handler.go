package web

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/pbordage/restaurant-web/internal/session"
	"github.com/pbordage/restaurant-web/internal/user"
	"github.com/pbordage/restaurant-web/internal/validate"
)

// Handler serves the HTML pages: homepage, registration, login, logout and
// the profile page.
type Handler struct {
	users    *user.Service
	sessions *session.Manager
}

func NewHandler(users *user.Service, sessions *session.Manager) *Handler {
	return &Handler{users: users, sessions: sessions}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Use(LoadUser(h.sessions, h.users))
	app.Get("/", h.index)
	app.Get("/register", h.registerForm)
	app.Post("/register", h.register)
	app.Get("/login", h.loginForm)
	app.Post("/login", h.login)
	app.Get("/logout", h.logout)
	app.Get("/profile", RequireLogin(h.sessions), h.profile)
}

func (h *Handler) index(c *fiber.Ctx) error {
	return h.render(c, "index", fiber.Map{"Title": "Home"})
}

func (h *Handler) registerForm(c *fiber.Ctx) error {
	return h.render(c, "register", fiber.Map{"Title": "Register"})
}

func (h *Handler) register(c *fiber.Ctx) error {
	// a logged-in user resubmitting registration starts from a clean session
	if err := h.sessions.Clear(c); err != nil {
		return err
	}
	resetCurrentUser(c)

	form := validate.Registration{
		Username:     c.FormValue("username"),
		FirstName:    c.FormValue("first_name"),
		LastName:     c.FormValue("last_name"),
		PhoneNumber:  c.FormValue("phone_number"),
		Email:        c.FormValue("email"),
		Password:     c.FormValue("password"),
		Confirmation: c.FormValue("confirmation"),
	}

	if msg := form.Check(); msg != "" {
		return h.render(c, "register", fiber.Map{"Title": "Register", "Error": msg})
	}

	created, err := h.users.Register(user.User{
		Username:    form.Username,
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		PhoneNumber: form.PhoneNumber,
		Email:       form.Email,
	}, form.Password)
	if err != nil {
		if errors.Is(err, user.ErrUsernameExists) {
			msg := fmt.Sprintf("User %s is already registered.", form.Username)
			return h.render(c, "register", fiber.Map{"Title": "Register", "Error": msg})
		}
		return err
	}

	if err := h.sessions.SignIn(c, created.ID); err != nil {
		return err
	}

	return c.Redirect("/", fiber.StatusFound)
}

func (h *Handler) loginForm(c *fiber.Ctx) error {
	return h.render(c, "login", fiber.Map{"Title": "Log in"})
}

func (h *Handler) login(c *fiber.Ctx) error {
	// forget any existing identity before checking credentials
	if err := h.sessions.Clear(c); err != nil {
		return err
	}
	resetCurrentUser(c)

	authed, err := h.users.Authenticate(c.FormValue("username"), c.FormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUnknownUsername):
			return h.render(c, "login", fiber.Map{"Title": "Log in", "Error": "Incorrect username."})
		case errors.Is(err, user.ErrWrongPassword):
			return h.render(c, "login", fiber.Map{"Title": "Log in", "Error": "Incorrect password."})
		default:
			return err
		}
	}

	if err := h.sessions.SignIn(c, authed.ID); err != nil {
		return err
	}

	return c.Redirect("/", fiber.StatusFound)
}

func (h *Handler) logout(c *fiber.Ctx) error {
	if err := h.sessions.Clear(c); err != nil {
		return err
	}
	return c.Redirect("/", fiber.StatusFound)
}

func (h *Handler) profile(c *fiber.Ctx) error {
	current, ok := CurrentUser(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusFound)
	}
	return h.render(c, "profile", fiber.Map{"Title": "Profile", "User": current})
}

// render injects the logged-in user so the shared layout can show it.
func (h *Handler) render(c *fiber.Ctx, name string, data fiber.Map) error {
	if current, ok := CurrentUser(c); ok {
		data["CurrentUser"] = current
	}
	return c.Render(name, data)
}
