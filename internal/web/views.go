package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

//go:embed views
var viewsFS embed.FS

// Engine returns the view engine over the embedded templates.
func Engine() *html.Engine {
	views, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err)
	}
	return html.NewFileSystem(http.FS(views), ".html")
}

// NewApp returns a Fiber app configured for the HTML surface. Routes and
// middleware are registered by the caller.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		Views:       Engine(),
		ViewsLayout: "layouts/main",
	})
}
