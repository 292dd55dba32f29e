package scalar

import (
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"
)

// Config for the Scalar API reference page
type Config struct {
	Title   string
	Theme   string // default, moon, purple, solarized, bluePlanet, deepSpace, saturn, kepler, mars, none
	DocPath string // where the OpenAPI document is served
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Title:   "People Service API",
		Theme:   "deepSpace",
		DocPath: "/docs/openapi.json",
	}
}

const scalarTemplate = `<!DOCTYPE html>
<html>
<head>
    <title>{{.Title}}</title>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
</head>
<body>
    <script id="api-reference" data-url="{{.DocPath}}"></script>
    <script>
        document.getElementById('api-reference').dataset.configuration = JSON.stringify({
            theme: '{{.Theme}}'
        });
    </script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
</body>
</html>`

// SetupRoutes serves the reference page at /docs and the registered swag
// document at cfg.DocPath.
func SetupRoutes(app *fiber.App, config ...Config) {
	cfg := DefaultConfig()
	if len(config) > 0 {
		cfg = withDefaults(config[0])
	}

	tmpl := template.Must(template.New("scalar").Parse(scalarTemplate))

	app.Get(cfg.DocPath, func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	app.Get("/docs", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return tmpl.Execute(c.Response().BodyWriter(), cfg)
	})
}

func withDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Title == "" {
		cfg.Title = def.Title
	}
	if cfg.Theme == "" {
		cfg.Theme = def.Theme
	}
	if cfg.DocPath == "" {
		cfg.DocPath = def.DocPath
	}
	return cfg
}
