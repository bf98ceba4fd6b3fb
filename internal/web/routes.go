package web

import (
	"net/http"

	"github.com/dmitrijs2005/appgallery/internal/logging"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the gallery pages.
//
// Routes:
//
//	GET  /                  gallery grid
//	GET  /health            liveness probe
//	GET  /register          creation gate or registration form
//	POST /register/unlock   check the creation password
//	POST /register          submit a new entry (multipart)
//	GET  /apps/{id}         detail view
//	GET  /apps/{id}/edit    owner gate or edit form
//	POST /apps/{id}/unlock  check the owner password with the endpoint
//	POST /apps/{id}/edit    submit changed fields
//	POST /apps/{id}/delete  forward a delete request
func NewRouter(h *Handler, log logging.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RealIP)
	r.Use(RequestID)
	r.Use(RequestLogger(log))
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", h.Health)
	r.Get("/", h.Index)

	r.Route("/register", func(r chi.Router) {
		r.Get("/", h.RegisterPage)
		r.Post("/", h.RegisterSubmit)
		r.Post("/unlock", h.RegisterUnlock)
	})

	r.Route("/apps/{id}", func(r chi.Router) {
		r.Get("/", h.Detail)
		r.Get("/edit", h.EditPage)
		r.Post("/unlock", h.EditUnlock)
		r.Post("/edit", h.EditSubmit)
		r.Post("/delete", h.Delete)
	})

	return r
}
