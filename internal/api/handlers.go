// Package api implements the inbound HTTP contract (§6): catalog, forecast
// reads, trip analysis, and the write endpoint that triggers a background
// refresh.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lbrouwer/surfcast/internal/catalog"
	"github.com/lbrouwer/surfcast/internal/dberrors"
	"github.com/lbrouwer/surfcast/internal/flights"
	"github.com/lbrouwer/surfcast/internal/forecastview"
	"github.com/lbrouwer/surfcast/internal/metrics"
	"github.com/lbrouwer/surfcast/internal/orchestrator"
	"github.com/lbrouwer/surfcast/internal/window"
)

// Handler groups every dependency the HTTP layer needs.
type Handler struct {
	Store   forecastview.Store
	Orch    *orchestrator.Orchestrator
	Tracker *orchestrator.Tracker
	Flights flights.Adapter
	Logger  *slog.Logger

	// BackgroundRefreshThreshold replaces the orchestrator's freshness
	// threshold for refreshes started by the write endpoint (when > 0).
	BackgroundRefreshThreshold time.Duration
}

// NewHandler builds a Handler.
func NewHandler(store forecastview.Store, orch *orchestrator.Orchestrator, tracker *orchestrator.Tracker, flightAdapter flights.Adapter, logger *slog.Logger, backgroundThreshold time.Duration) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if flightAdapter == nil {
		flightAdapter = flights.StubAdapter{}
	}
	return &Handler{
		Store:                      store,
		Orch:                       orch,
		Tracker:                    tracker,
		Flights:                    flightAdapter,
		Logger:                     logger,
		BackgroundRefreshThreshold: backgroundThreshold,
	}
}

// HealthCheck reports liveness.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetCatalog lists every tracked spot.
func (h *Handler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.Spots)
}

// GetDailyForecast serves daily_view(spot_id).
func (h *Handler) GetDailyForecast(c *gin.Context) {
	spotID := c.Param("spot_id")
	rows, err := forecastview.DailyView(c.Request.Context(), h.Store, spotID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetDetailedForecast serves detailed_view(spot_id, days).
func (h *Handler) GetDetailedForecast(c *gin.Context) {
	spotID := c.Param("spot_id")
	days := 7
	if raw := c.Query("days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			days = parsed
		}
	}

	view, err := forecastview.Detail(c.Request.Context(), h.Store, spotID, days)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// tripAnalysisRequest is the trip analysis POST body (§6).
type tripAnalysisRequest struct {
	DepartureAirports   []string `json:"departure_airports"`
	SelectedSpots       []string `json:"selected_spots" binding:"required"`
	TripStyle           string   `json:"trip_style" binding:"required"` // weekend | long_weekend | best
	MinScore            float64  `json:"min_score"`
	MinDays             int      `json:"min_days"`
	MaxDays             int      `json:"max_days"`
	StopoversAllowed    bool     `json:"stopovers_allowed"`
	OutboundTimePref    string   `json:"outbound_time_pref"`
	ReturnTimePref      string   `json:"return_time_pref"`
	DateRangeStart      string   `json:"date_range_start"`
	DateRangeEnd        string   `json:"date_range_end"`
}

type tripAnalysisResult struct {
	SpotID  string           `json:"spot_id"`
	Windows []window.Window  `json:"windows"`
	Flights []flights.Flight `json:"flights,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// PostTripAnalysis runs the Window Selector (variant chosen by trip_style)
// over each selected spot, then optionally asks the flight adapter for
// itineraries.
func (h *Handler) PostTripAnalysis(c *gin.Context) {
	var req tripAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(dberrors.ErrInvalidInput)
		return
	}

	results := make([]tripAnalysisResult, 0, len(req.SelectedSpots))
	for _, spotID := range req.SelectedSpots {
		result := tripAnalysisResult{SpotID: spotID}

		halfDayRows, err := h.Store.GetHalfDayAggregates(c.Request.Context(), spotID)
		if err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		daily := window.ReduceToDaily(halfDayRows)

		switch req.TripStyle {
		case "long_weekend":
			metrics.WindowSelectionRequests.WithLabelValues("weekend").Inc()
			wins, err := window.SelectWeekendWindows(daily)
			if err != nil {
				result.Error = err.Error()
				break
			}
			for i, w := range wins {
				wins[i] = window.ExtendLongWeekend(daily, w)
			}
			result.Windows = wins
		case "best":
			metrics.WindowSelectionRequests.WithLabelValues("best").Inc()
			maxDays := req.MaxDays
			if maxDays <= 0 {
				maxDays = 5
			}
			best, ok := window.BestWindow(daily, maxDays)
			if ok {
				result.Windows = []window.Window{best}
			}
		default: // "weekend" and anything unrecognized falls back to the generic selector
			metrics.WindowSelectionRequests.WithLabelValues("generic").Inc()
			minDays, maxDays := req.MinDays, req.MaxDays
			if minDays < 1 {
				minDays = 2
			}
			if maxDays < minDays {
				maxDays = minDays
			}
			wins, err := window.SelectWindows(daily, window.Params{MinDays: minDays, MaxDays: maxDays, MinScore: req.MinScore})
			if err != nil {
				result.Error = err.Error()
				break
			}
			result.Windows = wins
		}

		if len(req.DepartureAirports) > 0 && len(result.Windows) > 0 {
			w := result.Windows[0]
			for _, departure := range req.DepartureAirports {
				fl, err := h.Flights.FetchFlights(c.Request.Context(), departure, spotID,
					w.Start, w.End,
					flights.TimePreference(req.OutboundTimePref), flights.TimePreference(req.ReturnTimePref),
					req.StopoversAllowed)
				if err != nil {
					continue // flight search is a best-effort collaborator, per §6
				}
				result.Flights = append(result.Flights, fl...)
			}
		}

		results = append(results, result)
	}

	c.JSON(http.StatusOK, results)
}

// refreshRequest is the write endpoint body.
type refreshRequest struct {
	SpotIDs []string `json:"spot_ids"`
	Force   bool     `json:"force"`
}

// PostRefresh triggers a background refresh for the given spots (or the
// whole catalog if none are given) and returns a run_id for polling.
func (h *Handler) PostRefresh(c *gin.Context) {
	var req refreshRequest
	_ = c.ShouldBindJSON(&req) // an empty/absent body means "refresh everything"

	runID := h.Tracker.Start()
	trigger := "manual"
	if req.Force {
		trigger = "forced"
	}
	metrics.RefreshRuns.WithLabelValues(trigger).Inc()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 25*time.Minute)
		defer cancel()

		spotIDs := req.SpotIDs
		if len(spotIDs) == 0 {
			spotIDs = catalog.IDs()
		}
		orch := *h.Orch
		if h.BackgroundRefreshThreshold > 0 {
			orch.RawThreshold = h.BackgroundRefreshThreshold
		}
		results := orch.RefreshSpots(ctx, spotIDs, req.Force)
		h.Tracker.Complete(runID, results)
	}()

	c.JSON(http.StatusAccepted, gin.H{"run_id": runID})
}

// GetRefreshStatus serves GET /api/v1/refresh/status/:run_id.
func (h *Handler) GetRefreshStatus(c *gin.Context) {
	runID := c.Param("run_id")
	run, ok := h.Tracker.Get(runID)
	if !ok {
		c.Error(dberrors.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, run)
}
