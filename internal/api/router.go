package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "voiceforge/internal/api/middleware"
	"voiceforge/internal/api/response"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	RateLimit *mw.RateLimit

	HealthHandler      http.HandlerFunc
	SynthesizeHandler  http.HandlerFunc
	PollJobHandler     http.HandlerFunc
	ListAudioHandler   http.HandlerFunc
	DeleteAudioHandler http.HandlerFunc
	ListSpeakers       http.HandlerFunc
	ValidateKeyHandler http.HandlerFunc
	ListVoicesHandler  http.HandlerFunc
	QuotaHandler       http.HandlerFunc

	DownloadAudioHandler http.HandlerFunc
}

// NewRouter builds the Chi router with the middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	// Public health check and audio downloads
	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))
	r.Get("/audio/{filename}", orNotImplemented(deps.DownloadAudioHandler))

	// Rate-limited API
	r.Group(func(r chi.Router) {
		if deps.RateLimit != nil {
			r.Use(deps.RateLimit.Limit)
		}

		r.Post("/api/v1/synthesize", orNotImplemented(deps.SynthesizeHandler))
		r.Get("/api/v1/jobs/{jobID}", orNotImplemented(deps.PollJobHandler))

		r.Get("/api/v1/audio", orNotImplemented(deps.ListAudioHandler))
		r.Delete("/api/v1/audio/{filename}", orNotImplemented(deps.DeleteAudioHandler))

		r.Get("/api/v1/speakers", orNotImplemented(deps.ListSpeakers))

		r.Post("/api/v1/elevenlabs/validate", orNotImplemented(deps.ValidateKeyHandler))
		r.Post("/api/v1/elevenlabs/voices", orNotImplemented(deps.ListVoicesHandler))
		r.Post("/api/v1/elevenlabs/subscription", orNotImplemented(deps.QuotaHandler))
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "Endpoint not yet implemented")
	}
}
