package handlers

import (
	"html/template"
	"net/http"

	"github.com/hvisser/gatehouse/internal/auth"
	"github.com/rs/zerolog/log"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
{{if .Name}}<p>Signed in as {{.Name}} ({{.Email}})</p>{{end}}
</body>
</html>
`))

type pageData struct {
	Title string
	Name  string
	Email string
}

// PageHandler serves the minimal HTML pages the access gate steers
// between. The real UI lives elsewhere; these exist so the redirect
// flow works end to end without a frontend.
type PageHandler struct{}

// NewPageHandler creates a new PageHandler.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Home serves the public landing page.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, pageData{Title: "Gatehouse"})
}

// Dashboard serves the protected dashboard. The gate guarantees claims
// are present here.
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "Dashboard"}
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		data.Name = claims.Name
		data.Email = claims.Email
	}
	h.render(w, data)
}

// SignIn serves the sign-in page.
func (h *PageHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	h.render(w, pageData{Title: "Sign in"})
}

// SignUp serves the sign-up page.
func (h *PageHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	h.render(w, pageData{Title: "Sign up"})
}

func (h *PageHandler) render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		log.Error().Err(err).Msg("Failed to render page")
	}
}
