package render

import (
	"fmt"
	"html/template"
	"io"
	"math"

	"fintrack/web"

	"github.com/labstack/echo/v4"
)

// Renderer implements echo.Renderer over the embedded HTML templates.
// Each view is a {{define}} block; handlers address views by name and hand
// over a data payload, nothing more.
type Renderer struct {
	templates *template.Template
}

var funcs = template.FuncMap{
	// NaN amounts can reach the page through the unvalidated update path
	"money": func(amount float64) string {
		if math.IsNaN(amount) {
			return "NaN"
		}
		return fmt.Sprintf("%.2f", amount)
	},
}

// New parses the embedded templates into a Renderer
func New() (*Renderer, error) {
	templates, err := template.New("").Funcs(funcs).ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: templates}, nil
}

// Render implements echo.Renderer
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
