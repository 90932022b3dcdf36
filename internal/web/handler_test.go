package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/pbordage/restaurant-web/internal/session"
	"github.com/pbordage/restaurant-web/internal/user"
)

func newTestApp(seed []user.User) (*fiber.App, *user.InMemoryRepository) {
	repo := user.NewInMemoryRepository(seed)
	service := user.NewService(repo)
	sessions := session.NewManager()

	app := NewApp()
	NewHandler(service, sessions).RegisterRoutes(app)
	return app, repo
}

func get(t *testing.T, app *fiber.App, path string, cookies []*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	return res
}

func postForm(t *testing.T, app *fiber.App, path string, values url.Values, cookies []*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	return res
}

func body(t *testing.T, res *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("reading body failed: %v", err)
	}
	return string(b)
}

func registrationForm() url.Values {
	return url.Values{
		"username":     {"validuser1"},
		"first_name":   {"Jane"},
		"last_name":    {"Doe"},
		"phone_number": {"+1 555-123-4567"},
		"email":        {"jane@example.com"},
		"password":     {"Secret1!"},
		"confirmation": {"Secret1!"},
	}
}

func TestHomepage(t *testing.T) {
	app, _ := newTestApp(nil)

	res := get(t, app, "/", nil)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for homepage, got %d", res.StatusCode)
	}
	if !strings.Contains(body(t, res), "Welcome") {
		t.Fatalf("homepage should render the welcome text")
	}
}

func TestRegister_Success(t *testing.T) {
	app, repo := newTestApp(nil)

	res := postForm(t, app, "/register", registrationForm(), nil)
	if res.StatusCode != fiber.StatusFound {
		t.Fatalf("expected 302 after registration, got %d", res.StatusCode)
	}
	if loc := res.Header.Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
	if repo.Count() != 1 {
		t.Fatalf("expected one stored user, got %d", repo.Count())
	}

	// the response cookie now identifies the session; the guarded profile
	// page must be reachable with it
	cookies := res.Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected a session cookie after registration")
	}
	profile := get(t, app, "/profile", cookies)
	if profile.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for profile with session, got %d", profile.StatusCode)
	}
	if !strings.Contains(body(t, profile), "validuser1") {
		t.Fatalf("profile should show the registered username")
	}
}

func TestRegister_FirstValidationErrorWins(t *testing.T) {
	app, repo := newTestApp(nil)

	form := registrationForm()
	form.Del("username")
	form.Del("password")

	res := postForm(t, app, "/register", form, nil)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 re-render on validation error, got %d", res.StatusCode)
	}
	if !strings.Contains(body(t, res), "Username is required.") {
		t.Fatalf("expected the first missing field to decide the error")
	}
	if repo.Count() != 0 {
		t.Fatalf("no row may be inserted on a rejected registration")
	}
}

func TestRegister_PasswordMismatch(t *testing.T) {
	app, repo := newTestApp(nil)

	form := registrationForm()
	form.Set("confirmation", "Secret2!")

	res := postForm(t, app, "/register", form, nil)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 re-render, got %d", res.StatusCode)
	}
	if !strings.Contains(body(t, res), "Password and confirmation must match.") {
		t.Fatalf("expected the mismatch message")
	}
	if repo.Count() != 0 {
		t.Fatalf("no row may be inserted on mismatch")
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	app, repo := newTestApp(nil)

	first := postForm(t, app, "/register", registrationForm(), nil)
	if first.StatusCode != fiber.StatusFound {
		t.Fatalf("first registration should succeed, got %d", first.StatusCode)
	}

	form := registrationForm()
	form.Set("email", "other@example.com")
	second := postForm(t, app, "/register", form, nil)
	if second.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 re-render on duplicate, got %d", second.StatusCode)
	}
	if !strings.Contains(body(t, second), "User validuser1 is already registered.") {
		t.Fatalf("expected the duplicate-username message")
	}
	if repo.Count() != 1 {
		t.Fatalf("duplicate registration must not add a row, got %d", repo.Count())
	}
}

func TestLogin_UnknownUsername(t *testing.T) {
	app, _ := newTestApp(nil)

	res := postForm(t, app, "/login", url.Values{
		"username": {"nobody"},
		"password": {"Secret1!"},
	}, nil)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 re-render, got %d", res.StatusCode)
	}
	if !strings.Contains(body(t, res), "Incorrect username.") {
		t.Fatalf("expected the unknown-username message")
	}

	// the session must stay empty after a failed login
	profile := get(t, app, "/profile", res.Cookies())
	if profile.StatusCode != fiber.StatusFound {
		t.Fatalf("expected redirect for anonymous profile access, got %d", profile.StatusCode)
	}
	if loc := profile.Header.Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	app, _ := newTestApp(nil)

	if res := postForm(t, app, "/register", registrationForm(), nil); res.StatusCode != fiber.StatusFound {
		t.Fatalf("registration should succeed, got %d", res.StatusCode)
	}

	res := postForm(t, app, "/login", url.Values{
		"username": {"validuser1"},
		"password": {"Wrong9!!"},
	}, nil)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 re-render, got %d", res.StatusCode)
	}
	if !strings.Contains(body(t, res), "Incorrect password.") {
		t.Fatalf("expected the wrong-password message")
	}
}

func TestLoginAndLogout(t *testing.T) {
	app, _ := newTestApp(nil)

	if res := postForm(t, app, "/register", registrationForm(), nil); res.StatusCode != fiber.StatusFound {
		t.Fatalf("registration should succeed, got %d", res.StatusCode)
	}

	login := postForm(t, app, "/login", url.Values{
		"username": {"validuser1"},
		"password": {"Secret1!"},
	}, nil)
	if login.StatusCode != fiber.StatusFound {
		t.Fatalf("expected 302 after login, got %d", login.StatusCode)
	}
	if loc := login.Header.Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}

	cookies := login.Cookies()
	home := get(t, app, "/", cookies)
	if !strings.Contains(body(t, home), "validuser1") {
		t.Fatalf("homepage should show the logged-in user")
	}

	logout := get(t, app, "/logout", cookies)
	if logout.StatusCode != fiber.StatusFound {
		t.Fatalf("expected 302 after logout, got %d", logout.StatusCode)
	}
	if loc := logout.Header.Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}

	// the old session id no longer grants access
	profile := get(t, app, "/profile", cookies)
	if profile.StatusCode != fiber.StatusFound {
		t.Fatalf("expected redirect after logout, got %d", profile.StatusCode)
	}
}

func TestProfile_RequiresLogin(t *testing.T) {
	app, _ := newTestApp(nil)

	res := get(t, app, "/profile", nil)
	if res.StatusCode != fiber.StatusFound {
		t.Fatalf("expected redirect for anonymous request, got %d", res.StatusCode)
	}
	if loc := res.Header.Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}
