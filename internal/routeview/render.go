package routeview

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"bffmvp/internal/model"
)

const (
	// AppName is the literal heading identifying the application.
	AppName = "BFF MVP"
	// RoutesHeading labels the route list section.
	RoutesHeading = "Configured routes"
)

//go:embed templates/*.html
var templateFS embed.FS

// Parsed once; a parse failure is a build defect, not a runtime condition.
var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type renderData struct {
	Title   string
	Heading string
	Failed  bool
	Dump    string
}

// Render writes the view's HTML fragment for the current state.
// It never triggers a fetch.
func (v *View) Render(w io.Writer) error {
	return v.execute(w, "fragment")
}

// RenderPage writes a complete HTML document wrapping the fragment.
func (v *View) RenderPage(w io.Writer) error {
	return v.execute(w, "page")
}

func (v *View) execute(w io.Writer, name string) error {
	st := v.State()

	dump, err := Dump(st.Routes)
	if err != nil {
		return err
	}

	data := renderData{
		Title:   AppName,
		Heading: RoutesHeading,
		Failed:  st.Phase == PhaseFailed,
		Dump:    dump,
	}
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

// Dump serializes routes as two-space indented JSON with keys in field order.
// A nil slice dumps as an empty list.
func Dump(routes []model.RouteConfig) (string, error) {
	if routes == nil {
		routes = []model.RouteConfig{}
	}
	b, err := json.MarshalIndent(routes, "", "  ")
	if err != nil {
		return "", fmt.Errorf("dump routes: %w", err)
	}
	return string(b), nil
}
