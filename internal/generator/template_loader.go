package generator

import (
	"bytes"
	"embed"
	"text/template"

	pmerrors "github.com/carlosnayan/protomodel/internal/errors"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// executeTemplate renders one embedded template to a string.
func executeTemplate(name string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return "", pmerrors.Wrapf(pmerrors.ErrWriteFailed, "template %s: %v", name, err)
	}
	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return "", pmerrors.Wrapf(pmerrors.ErrWriteFailed, "template %s: %v", name, err)
	}
	return out.String(), nil
}

// headerData feeds the generated-file header templates.
type headerData struct {
	Schema  string
	Package string
	Imports []string
}
