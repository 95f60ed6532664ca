package http

import (
	"embed"
	"html/template"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/carrental/internal/entities"
	"github.com/mrlokans/carrental/internal/utils"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// LoadTemplates parses the page templates. An empty path uses the copies
// compiled into the binary; otherwise *.html under path is loaded.
func LoadTemplates(path, currency string) (*template.Template, error) {
	tmpl := template.New("").Funcs(templateFuncs(currency))
	if path == "" {
		return tmpl.ParseFS(embeddedTemplates, "templates/*.html")
	}
	return tmpl.ParseGlob(filepath.Join(path, "*.html"))
}

func templateFuncs(currency string) template.FuncMap {
	return template.FuncMap{
		"money": func(amount int) string {
			return utils.FormatMoney(currency, amount)
		},
		"carAvailable": func(status entities.CarStatus) bool {
			return status == entities.CarStatusAvailable
		},
		"rentalActive": func(status entities.RentalStatus) bool {
			return status == entities.RentalStatusActive
		},
	}
}

// pageData fills the fields every page template expects.
func pageData(c *gin.Context, tab string, data gin.H) gin.H {
	data["Tab"] = tab
	data["Auth"] = GetAuthTemplateData(c)
	data["Error"] = c.Query("error")
	data["Notice"] = c.Query("notice")
	return data
}
