package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/alphasourceai/upload-portal/internal/application/portal"
	"github.com/alphasourceai/upload-portal/internal/config"
	"github.com/alphasourceai/upload-portal/internal/infrastructure/signer"
	"github.com/alphasourceai/upload-portal/internal/infrastructure/smtp"
	"github.com/alphasourceai/upload-portal/internal/transport/http/handler"
	appmiddleware "github.com/alphasourceai/upload-portal/internal/transport/http/middleware"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	Requests portal.RequestStore
	Sessions portal.SessionStore
	Files    portal.FileStore
	Accounts portal.AccountStore
	Signer   signer.Signer
	Mailer   smtp.Dispatcher
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	portalSvc := portal.NewService(portal.ServiceDeps{
		Requests:   deps.Requests,
		Sessions:   deps.Sessions,
		Files:      deps.Files,
		Accounts:   deps.Accounts,
		Signer:     deps.Signer,
		Dispatcher: deps.Mailer,
		Config: portal.Config{
			BaseURL:             cfg.BaseURL,
			RequestTTL:          time.Duration(cfg.TokenTTLMinutes) * time.Minute,
			SessionTTL:          time.Duration(cfg.SessionTTLMinutes) * time.Minute,
			MaxFileSizeBytes:    int64(cfg.MaxFileSizeMB) << 20,
			AllowedContentTypes: cfg.AllowedContentTypes,
			Bucket:              cfg.Bucket,
		},
	})

	portalH := handler.NewPortalHandler(portalSvc)
	healthH := handler.NewHealthHandler()
	staticH := handler.NewStaticHandler(cfg.StaticDir)

	// Only request creation is rate limited; the other steps already
	// require possession of a token.
	requestRL := appmiddleware.NewRateLimiter(
		cfg.RateLimitMax, time.Duration(cfg.RateLimitWindowSeconds)*time.Second)

	r.Route("/api/upload-portal", func(r chi.Router) {
		r.Get("/health", healthH.Check)

		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.RequireOrigin(cfg.AllowedOrigins))

			r.With(requestRL.Limit).Post("/request", portalH.CreateRequest)
			r.Post("/verify", portalH.VerifyToken)
			r.Post("/signed-upload-url", portalH.SignedUploadURL)
			r.Post("/complete", portalH.CompleteUpload)
		})
	})

	r.Get("/uploads", staticH.Serve)
	r.Get("/uploads/*", staticH.Serve)

	return r
}
