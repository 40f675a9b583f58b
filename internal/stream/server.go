package stream

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Server holds the collaborators the handlers need. Backends are chosen once
// at startup and injected; handlers never probe availability themselves.
type Server struct {
	users     UserStore
	playlists PlaylistStore
	sessions  SessionStore
	catalog   *Catalog

	// secureCookies tightens the session cookie for production (Secure +
	// SameSite=None, for cross-site frontends over HTTPS).
	secureCookies bool
}

func NewServer(users UserStore, playlists PlaylistStore, sessions SessionStore, catalog *Catalog, secureCookies bool) *Server {
	return &Server{
		users:         users,
		playlists:     playlists,
		sessions:      sessions,
		catalog:       catalog,
		secureCookies: secureCookies,
	}
}

func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/demo-login", s.handleDemoLogin)
			r.Post("/logout", s.handleLogout)

			r.Group(func(r chi.Router) {
				r.Use(s.sessionRequired)
				r.Get("/check", s.handleAuthCheck)
			})
		})

		r.Route("/music", func(r chi.Router) {
			r.Use(s.sessionRequired)
			r.Get("/featured", s.handleFeatured)
			r.Get("/trending", s.handleTrending)
			r.Get("/search", s.handleSearch)
			r.Get("/{id}", s.handleGetSong)
		})

		r.Route("/playlists", func(r chi.Router) {
			r.Use(s.sessionRequired)
			r.Get("/", s.handleListPlaylists)
			r.Post("/", s.handleCreatePlaylist)
			r.Get("/{id}", s.handleGetPlaylist)
			r.Put("/{id}", s.handleUpdatePlaylist)
			r.Delete("/{id}", s.handleDeletePlaylist)
			r.Post("/{id}/songs", s.handleAddSong)
			r.Delete("/{id}/songs/{songId}", s.handleRemoveSong)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "musicstream",
	})
}
