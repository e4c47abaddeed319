package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"voiceforge/internal/api"
	mw "voiceforge/internal/api/middleware"
	"voiceforge/internal/cache"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRouterRoutes(t *testing.T) {
	deps := api.Dependencies{
		RateLimit: mw.NewRateLimit(cache.NewMemoryCache(), 1000),

		HealthHandler:        okHandler,
		SynthesizeHandler:    okHandler,
		PollJobHandler:       okHandler,
		ListAudioHandler:     okHandler,
		DeleteAudioHandler:   okHandler,
		ListSpeakers:         okHandler,
		ValidateKeyHandler:   okHandler,
		ListVoicesHandler:    okHandler,
		QuotaHandler:         okHandler,
		DownloadAudioHandler: okHandler,
	}
	router := api.NewRouter(deps)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/health"},
		{http.MethodPost, "/api/v1/synthesize"},
		{http.MethodGet, "/api/v1/jobs/some-id"},
		{http.MethodGet, "/api/v1/audio"},
		{http.MethodDelete, "/api/v1/audio/file.wav"},
		{http.MethodGet, "/api/v1/speakers"},
		{http.MethodPost, "/api/v1/elevenlabs/validate"},
		{http.MethodPost, "/api/v1/elevenlabs/voices"},
		{http.MethodPost, "/api/v1/elevenlabs/subscription"},
		{http.MethodGet, "/audio/file.wav"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouterUnwiredHandlerIs501(t *testing.T) {
	router := api.NewRouter(api.Dependencies{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestRouterUnknownRouteIs404(t *testing.T) {
	router := api.NewRouter(api.Dependencies{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
