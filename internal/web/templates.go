package web

import (
	"embed"
	"html/template"

	"github.com/dmitrijs2005/appgallery/internal/client/models"
	"github.com/dmitrijs2005/appgallery/internal/web/render"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates(md *render.Markdown) (*template.Template, error) {
	return template.New("pages").Funcs(template.FuncMap{
		"markdown":  md.HTML,
		"thumbnail": func() string { return models.PlaceholderThumbnail },
	}).ParseFS(templateFS, "templates/*.html")
}

// page is the data every template receives.
type page struct {
	Title  string
	Error  string
	Notice string

	Entries []models.Entry
	Entry   *models.Entry
	Form    models.Fields

	Token     string
	Action    string
	MaxImages int
}
