package uiapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/awaistahir/energy-opt/internal/energy"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	version           = "1.0.0"
	defaultSettingsID = "default"
)

var errBadRequest = errors.New("bad request")

// SettingsStore persists dashboard preferences
type SettingsStore interface {
	GetSettings(id string) (*energy.Settings, error)
	SaveSettings(s *energy.Settings) error
}

type Server struct {
	store  SettingsStore
	hub    *Hub
	webDir string
}

func NewServer(store SettingsStore, webDir string) *Server {
	return &Server{
		store:  store,
		hub:    NewHub(),
		webDir: webDir,
	}
}

// Hub exposes the dashboard connection hub
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS for local development
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	// Serve static files
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Get("/", s.serveUI)
		r.Get("/static/*", s.serveStatic)
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Long-lived, so kept outside the request timeout
		r.Get("/ws", s.handleWebSocket)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))
			r.Get("/status", s.handleStatus)
			r.Get("/simulation", s.handleSimulation)
			r.Get("/simulation/table", s.handleTable)
			r.Get("/simulation/series", s.handleSeries)
			r.Get("/summary", s.handleSummary)
			r.Get("/settings", s.handleGetSettings)
			r.Put("/settings", s.handleUpdateSettings)
		})
	})

	return r
}

// SimulationResponse is the full optimized table for a day count
type SimulationResponse struct {
	Days    int                          `json:"days"`
	Records []energy.OptimizedHourRecord `json:"records"`
	Summary energy.Summary               `json:"summary"`
}

// TableRow is the reduced row shown in the dashboard table
type TableRow struct {
	Hour         int     `json:"hour"`
	TotalKWh     float64 `json:"total_kwh"`
	OptimizedKWh float64 `json:"optimized_kwh"`
	Savings      float64 `json:"savings"`
}

// SeriesResponse holds the chart series
type SeriesResponse struct {
	Hours     []int     `json:"hours"`
	Original  []float64 `json:"original"`
	Optimized []float64 `json:"optimized"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	settings, err := s.store.GetSettings(defaultSettingsID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"version":  version,
		"days":     settings.Days,
		"min_days": energy.MinDays,
		"max_days": energy.MaxDays,
	})
}

func (s *Server) handleSimulation(w http.ResponseWriter, r *http.Request) {
	resp, _, ok := s.simulateRequest(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	resp, settings, ok := s.simulateRequest(w, r)
	if !ok {
		return
	}

	limit := settings.TableRows
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > len(resp.Records) {
		limit = len(resp.Records)
	}

	rows := make([]TableRow, 0, limit)
	for _, rec := range resp.Records[:limit] {
		rows = append(rows, TableRow{
			Hour:         rec.HourIndex,
			TotalKWh:     rec.TotalLoad,
			OptimizedKWh: rec.OptimizedTotal,
			Savings:      rec.Savings,
		})
	}

	respondJSON(w, http.StatusOK, rows)
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	resp, _, ok := s.simulateRequest(w, r)
	if !ok {
		return
	}

	series := SeriesResponse{
		Hours:     make([]int, 0, len(resp.Records)),
		Original:  make([]float64, 0, len(resp.Records)),
		Optimized: make([]float64, 0, len(resp.Records)),
	}
	for _, rec := range resp.Records {
		series.Hours = append(series.Hours, rec.HourIndex)
		series.Original = append(series.Original, rec.TotalLoad)
		series.Optimized = append(series.Optimized, rec.OptimizedTotal)
	}

	respondJSON(w, http.StatusOK, series)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	resp, _, ok := s.simulateRequest(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, resp.Summary)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.store.GetSettings(defaultSettingsID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings energy.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings.ID = defaultSettingsID
	if settings.TableRows == 0 {
		settings.TableRows = energy.DefaultTableRows
	}
	if err := validateDays(settings.Days); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if settings.TableRows < 0 {
		respondError(w, http.StatusBadRequest, "table_rows must be positive")
		return
	}

	if err := s.store.SaveSettings(&settings); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Re-run for connected dashboards
	if resp, err := simulate(settings.Days); err == nil {
		if msg, err := NewEnvelope(TypeSimulation, resp); err == nil {
			s.hub.Broadcast(msg)
		} else {
			log.Printf("encoding simulation push: %v", err)
		}
	}

	respondJSON(w, http.StatusOK, settings)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	settings, err := s.store.GetSettings(defaultSettingsID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, 16),
	}

	// Queue the current table before joining the hub
	if resp, err := simulate(settings.Days); err == nil {
		if msg, err := NewEnvelope(TypeSimulation, resp); err == nil {
			c.send <- msg
		}
	}

	s.hub.register(c)
	go c.writePump()
	s.hub.readPump(c)
}

// simulateRequest resolves the requested day count and runs the simulation,
// writing an error response and returning false on failure
func (s *Server) simulateRequest(w http.ResponseWriter, r *http.Request) (*SimulationResponse, *energy.Settings, bool) {
	settings, err := s.store.GetSettings(defaultSettingsID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return nil, nil, false
	}

	days := settings.Days
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "days must be an integer")
			return nil, nil, false
		}
		days = n
	}

	if err := validateDays(days); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}

	resp, err := simulate(days)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, energy.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		respondError(w, status, err.Error())
		return nil, nil, false
	}

	return resp, settings, true
}

func simulate(days int) (*SimulationResponse, error) {
	records, err := energy.Simulate(days)
	if err != nil {
		return nil, err
	}
	return &SimulationResponse{
		Days:    days,
		Records: records,
		Summary: energy.Summarize(records),
	}, nil
}

func validateDays(days int) error {
	if days < energy.MinDays || days > energy.MaxDays {
		return fmt.Errorf("%w: days must be between %d and %d", errBadRequest, energy.MinDays, energy.MaxDays)
	}
	return nil
}

func (s *Server) serveUI(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.webDir, "index.html"))
}

func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	// Disable caching for development
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
	http.StripPrefix("/static/", http.FileServer(http.Dir(filepath.Join(s.webDir, "static")))).ServeHTTP(w, r)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
