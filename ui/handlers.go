package ui

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"agriyield/domain/advisory"
	"agriyield/domain/core"
	"agriyield/domain/forecast"
	"agriyield/domain/tabular"
)

type predictRequest struct {
	State string `json:"state"`
	Year  *int   `json:"year"`
	advisory.Parameters
}

// handlePredict scores one forecast request and attaches the rule-based
// advisory summary
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	if !s.forecaster.Ready() {
		writeError(w, http.StatusServiceUnavailable, "Model not loaded. Train a bundle first.")
		return
	}

	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if violations := req.Parameters.Validate(); len(violations) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "Invalid input",
			"details": violations,
		})
		return
	}

	input := forecast.InputRecord{
		forecast.ColNitrogen:   *req.Nitrogen,
		forecast.ColPhosphorus: *req.Phosphorus,
		forecast.ColPotassium:  *req.Potassium,
		forecast.ColPH:         *req.PH,
		tabular.ColTemp:        *req.AvgTempC,
		tabular.ColRainfall:    *req.RainfallMM,
		tabular.ColHumidity:    *req.HumidityPct,
	}
	if req.State != "" {
		input[tabular.ColState] = req.State
	}
	if req.Year != nil {
		input[tabular.ColYear] = *req.Year
	}

	prediction, err := s.forecaster.Predict(input)
	if err != nil {
		s.predictError(w, err)
		return
	}
	prediction = math.Round(prediction*100) / 100

	summary := advisory.BuildSummary(prediction, req.Parameters)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"prediction":     prediction,
		"yield_category": summary.YieldCategory,
		"irrigation":     summary.IrrigationAdvice,
		"crop_cycle":     summary.CropCycle,
		"soil_health":    summary.SoilHealth,
		"weather_risks":  summary.WeatherRisks,
		"farming_tips":   advisory.FarmingTips(req.Parameters),
	})
}

func (s *Server) predictError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotReady):
		writeError(w, http.StatusServiceUnavailable, "Model not loaded. Train a bundle first.")
	case errors.Is(err, core.ErrUnseenCategory):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case core.IsSchemaMismatchError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.log.Error("prediction failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Prediction error")
	}
}

// handleModelInfo returns diagnostics for the installed bundle
func (s *Server) handleModelInfo(w http.ResponseWriter, r *http.Request) {
	diag, err := s.forecaster.Diagnostics()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "No model loaded")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"model_info": diag})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":                "healthy",
		"forecast_model_loaded": s.forecaster.Ready(),
	})
}

func (s *Server) handleStates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"states": s.soil.States()})
}

func (s *Server) handleSoilData(w http.ResponseWriter, r *http.Request) {
	state := chi.URLParam(r, "state")
	profile, err := s.soil.Lookup(state)
	if err != nil {
		writeError(w, http.StatusNotFound, "No soil data found for state: "+state)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"soil_data": profile})
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	state := chi.URLParam(r, "state")
	observation, err := s.weather.CurrentWeather(r.Context(), state)
	if err != nil {
		writeError(w, http.StatusBadGateway, "Weather data error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"weather_data": observation})
}

// handleRuns lists recent training runs from the run registry
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	runs, err := s.registry.ListRuns(r.Context(), limit)
	if err != nil {
		s.log.Error("run registry list failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Run registry unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"runs": runs, "count": len(runs)})
}

// handleLatestRun returns the most recent training run
func (s *Server) handleLatestRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.registry.LatestRun(r.Context())
	if err != nil {
		if errors.Is(err, core.ErrRunNotFound) {
			writeError(w, http.StatusNotFound, "No training runs recorded")
			return
		}
		s.log.Error("run registry latest failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Run registry unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"run": run})
}

// handleReport renders the persisted training report as HTML
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	source, err := s.reports.LoadReport()
	if err != nil {
		writeError(w, http.StatusNotFound, "No training report available")
		return
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	rendered := markdown.Render(p.Parse(source), renderer)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(rendered)
}
