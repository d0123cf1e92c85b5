// Package httpapi exposes the application over HTTP JSON under /api/v1:
// registration and login, the Google/NextAuth verification endpoints, and
// the note and profile operations.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/dkurilov/notehub/internal/logging"
	"github.com/dkurilov/notehub/internal/server/config"
	"github.com/dkurilov/notehub/internal/server/models"
	noterepo "github.com/dkurilov/notehub/internal/server/repositories/notes"
	"github.com/dkurilov/notehub/internal/server/services"
)

// UserService is the slice of the user service the HTTP layer needs.
type UserService interface {
	Register(ctx context.Context, email, username, password string) (*models.User, error)
	Login(ctx context.Context, identifier, password string) (*models.User, string, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdatePreferences(ctx context.Context, userID int64, theme, font *string) (*models.User, error)
}

// IdentityService verifies an external provider token and resolves it to a
// local user plus an access token.
type IdentityService interface {
	Authenticate(ctx context.Context, providerToken string) (*models.User, string, error)
}

// NoteService is the slice of the note service the HTTP layer needs.
type NoteService interface {
	Create(ctx context.Context, userID int64, note *models.Note) (*services.NoteWithTags, error)
	Get(ctx context.Context, userID, noteID int64) (*services.NoteWithTags, error)
	List(ctx context.Context, userID int64, archived bool) ([]*services.NoteWithTags, error)
	Update(ctx context.Context, userID, noteID int64, patch noterepo.UpdateParams) (*services.NoteWithTags, error)
	Delete(ctx context.Context, userID, noteID int64) error
	AddTags(ctx context.Context, userID, noteID int64, names []string) (*services.NoteWithTags, error)
}

type Server struct {
	address     string
	corsOrigins []string
	logger      logging.Logger
	users       UserService
	identity    IdentityService
	notes       NoteService
	jwtSecret   []byte
}

func NewServer(cfg *config.Config, l logging.Logger, us UserService, is IdentityService, ns NoteService) *Server {
	return &Server{
		address:     cfg.EndpointAddr,
		corsOrigins: splitOrigins(cfg.CORSAllowedOrigins),
		logger:      l.With("module", "http_server"),
		users:       us,
		identity:    is,
		notes:       ns,
		jwtSecret:   []byte(cfg.SecretKey),
	}
}

// splitOrigins turns the comma-separated origin list into a slice, trimming
// whitespace and trailing slashes.
func splitOrigins(origins string) []string {
	var result []string
	for _, part := range strings.Split(origins, ",") {
		if o := strings.TrimRight(strings.TrimSpace(part), "/"); o != "" {
			result = append(result, o)
		}
	}
	return result
}

// Handler builds the full route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/token", s.handleToken)
			r.Post("/google/verify", s.handleGoogleVerify)
			r.Post("/nextauth/callback/credentials", s.handleNextAuthCredentials)

			r.Group(func(r chi.Router) {
				r.Use(s.authenticate)
				r.Get("/me", s.handleCurrentUser)
			})
		})

		r.Route("/notes", func(r chi.Router) {
			r.Use(s.authenticate)
			r.Post("/", s.handleCreateNote)
			r.Get("/", s.handleListNotes)
			r.Get("/{noteID}", s.handleGetNote)
			r.Put("/{noteID}", s.handleUpdateNote)
			r.Delete("/{noteID}", s.handleDeleteNote)
			r.Post("/{noteID}/tags", s.handleAddTags)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/me", s.handleCurrentUser)
			r.Put("/me/preferences", s.handleUpdatePreferences)
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
