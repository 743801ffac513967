package stubapi

import (
	"fmt"
	"html"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Pages maps frontend routes to their page titles.
var Pages = map[string]string{
	"/":            "My Hibachi Chef",
	"/BookUs":      "Book Us | My Hibachi Chef",
	"/menu":        "Menu | My Hibachi Chef",
	"/reviews":     "Reviews | My Hibachi Chef",
	"/faqs":        "FAQs | My Hibachi Chef",
	"/contact":     "Contact | My Hibachi Chef",
	"/admin-login": "Admin Login | My Hibachi Chef",
}

const pageTemplate = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta property="og:title" content="%[1]s">
<title>%[1]s</title>
</head>
<body><div id="root"><h1>%[1]s</h1></div></body>
</html>
`

// FrontendRouter serves a small HTML page for every known route and 404
// for anything else.
func FrontendRouter() http.Handler {
	r := chi.NewRouter()
	for route, title := range Pages {
		page := fmt.Sprintf(pageTemplate, html.EscapeString(title))
		r.Get(route, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(page))
		})
	}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("<!doctype html><title>Not Found</title><h1>404</h1>\n"))
	})
	return r
}
