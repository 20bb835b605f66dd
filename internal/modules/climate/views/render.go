package views

import (
	"errors"
	"html/template"
	"io"
	"io/fs"
)

var homeTmpl *template.Template

// loadTemplatesFromFS parses the page templates under dir of fsys.
// Tests use it to simulate a broken template set.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	tmpl, err := template.ParseFS(sub, "*.html")
	if err != nil {
		return err
	}
	homeTmpl = tmpl
	return nil
}

// LoadTemplates parses the embedded templates. Call during startup before
// serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

type Route struct {
	Path        string
	Description string
}

type HomeData struct {
	Title  string
	Routes []Route
}

func RenderHome(w io.Writer, data *HomeData) error {
	if homeTmpl == nil {
		return errors.New("home template not loaded: call views.LoadTemplates during startup")
	}
	return homeTmpl.ExecuteTemplate(w, "home.html", data)
}
