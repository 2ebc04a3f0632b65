package ui

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"agriyield/app"
	"agriyield/internal"
	"agriyield/ports"
)

// Server is the forecast API surface
type Server struct {
	router     *chi.Mux
	forecaster *app.Forecaster
	soil       *app.SoilCatalog
	weather    ports.WeatherProviderPort
	registry   ports.RunRegistryPort
	reports    ReportLoader
	log        *internal.Logger
}

// ReportLoader serves the persisted training report. The filesystem
// artifact store satisfies it.
type ReportLoader interface {
	LoadReport() ([]byte, error)
}

// NewServer wires the HTTP layer over the serving components
func NewServer(forecaster *app.Forecaster, soil *app.SoilCatalog, weather ports.WeatherProviderPort, registry ports.RunRegistryPort, reports ReportLoader) *Server {
	s := &Server{
		router:     chi.NewRouter(),
		forecaster: forecaster,
		soil:       soil,
		weather:    weather,
		registry:   registry,
		reports:    reports,
		log:        internal.DefaultLogger.WithPrefix("Server"),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(30 * time.Second))
}

func (s *Server) setupRoutes() {
	s.router.Post("/predict", s.handlePredict)
	s.router.Get("/model-info", s.handleModelInfo)
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/states", s.handleStates)
	s.router.Get("/soil-data/{state}", s.handleSoilData)
	s.router.Get("/weather/{state}", s.handleWeather)
	s.router.Get("/runs", s.handleRuns)
	s.router.Get("/runs/latest", s.handleLatestRun)
	s.router.Get("/report", s.handleReport)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Endpoint not found")
	})
}

// Handler exposes the router for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server until it fails
func (s *Server) Start(addr string) error {
	s.log.Info("listening on http://%s", addr)
	return http.ListenAndServe(addr, s.router)
}
