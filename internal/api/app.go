package api

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/g-jaeger77/celestAI-sub000/internal/biometrics"
	"github.com/g-jaeger77/celestAI-sub000/internal/profile"
	"github.com/g-jaeger77/celestAI-sub000/internal/storage"
	"github.com/g-jaeger77/celestAI-sub000/internal/synastry"
	"github.com/g-jaeger77/celestAI-sub000/internal/synergy"
	"github.com/g-jaeger77/celestAI-sub000/internal/trends"
	"github.com/g-jaeger77/celestAI-sub000/internal/zodiac"
)

const maxRequestBodySize = 1 << 20 // 1MB

// refreshWorkers caps concurrent score recomputations on refresh.
const refreshWorkers = 4

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type AppDeps struct {
	Store   *storage.Store
	Profile *profile.Manager
	Token   string
	Clock   profile.Clock // optional; defaults to wall clock
}

func NewAppHandler(deps AppDeps) http.Handler {
	if deps.Clock == nil {
		deps.Clock = systemClock{}
	}

	r := chi.NewRouter()

	r.Get("/health", handleHealth())

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(deps.Token))

		r.Get("/dashboard", handleDashboard(deps))
		r.Get("/trends", handleTrends(deps))
		r.Get("/history", handleHistory(deps))
		r.Get("/profile", handleGetProfile(deps))
		r.Patch("/profile", handlePatchProfile(deps))
		r.Get("/connections", handleListConnections(deps))
		r.Post("/connections", handleAddConnection(deps))
		r.Post("/connections/refresh", handleRefreshConnections(deps))
		r.Get("/connections/{id}", handleGetConnection(deps))
		r.Delete("/connections/{id}", handleDeleteConnection(deps))
		r.Get("/connections/{id}/synastry", handleSynastry(deps))
		r.Get("/data/export", handleExport(deps))
		r.Post("/data/purge", handlePurge(deps))
	})

	return r
}

func handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

// DashboardResponse is the daily reading plus its synergy breakdown.
type DashboardResponse struct {
	Date       string                   `json:"date"`
	Report     biometrics.Report        `json:"report"`
	Tier       synergy.Tier             `json:"tier"`
	Verdict    string                   `json:"verdict"`
	Highlights synergy.PillarHighlights `json:"highlights"`
	Alignment  int                      `json:"alignmentScore"`
}

func handleDashboard(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := deps.Profile.GetProfile()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get profile: %v", err)
			return
		}
		if !p.Identity.Onboarded() {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "profile incomplete: set identity.full_name and identity.birth_date first")
			return
		}

		now := deps.Clock.Now()
		report := biometrics.Compute(p.Identity.FullName, now)
		pillars := report.Pillars()
		tier := synergy.Classify(pillars)

		alignment := int(math.Round(float64(pillars.Mind+pillars.Body+pillars.Soul) / 3))
		snap := storage.Snapshot{
			Date:      now.Format("2006-01-02"),
			Mind:      pillars.Mind,
			Body:      pillars.Body,
			Soul:      pillars.Soul,
			Alignment: alignment,
			Tier:      string(tier),
			CreatedAt: now.UTC(),
		}
		if err := deps.Store.UpsertSnapshot(snap); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save snapshot: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(DashboardResponse{
			Date:       snap.Date,
			Report:     report,
			Tier:       tier,
			Verdict:    synergy.Verdict(pillars),
			Highlights: synergy.Highlights(pillars),
			Alignment:  alignment,
		})
	}
}

func handleTrends(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := deps.Profile.GetProfile()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get profile: %v", err)
			return
		}
		if !p.Identity.Onboarded() {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "profile incomplete: set identity.full_name and identity.birth_date first")
			return
		}

		partner := r.URL.Query().Get("partner")
		dateStr := trends.DateString(deps.Clock.Now())
		snapshot := trends.Compute(p.Identity.FullName, dateStr, partner)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snapshot)
	}
}

func handleHistory(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseIntParam(r, "limit", 30, 365)

		snaps, err := deps.Store.ListSnapshots(limit)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list snapshots: %v", err)
			return
		}
		if snaps == nil {
			snaps = []storage.Snapshot{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snaps)
	}
}

func handleGetProfile(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := deps.Profile.GetProfile()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get profile: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(p)
	}
}

func handlePatchProfile(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var fields map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		for key, value := range fields {
			if err := deps.Profile.SetField(key, value); err != nil {
				httpError(w, http.StatusInternalServerError, "api_error", "failed to set field %q: %v", key, err)
				return
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "updated"})
	}
}

func handleListConnections(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conns, err := deps.Store.ListConnections()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list connections: %v", err)
			return
		}
		if conns == nil {
			conns = []storage.Connection{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(conns)
	}
}

// AddConnectionRequest is the POST /connections payload.
type AddConnectionRequest struct {
	Name      string `json:"name"`
	BirthDate string `json:"birthDate"`
	BirthTime string `json:"birthTime"`
	BirthCity string `json:"birthCity"`
	RelType   string `json:"type"`
}

func handleAddConnection(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var req AddConnectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.Name == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "name is required")
			return
		}
		if req.BirthDate == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "birthDate is required")
			return
		}
		if req.RelType == "" {
			req.RelType = "love"
		}

		now := deps.Clock.Now()
		conn := storage.Connection{
			ID:        uuid.New().String(),
			Name:      req.Name,
			BirthDate: req.BirthDate,
			BirthTime: req.BirthTime,
			BirthCity: req.BirthCity,
			RelType:   req.RelType,
			CreatedAt: now.UTC(),
		}

		// Score the new connection right away when the user is onboarded.
		if p, err := deps.Profile.GetProfile(); err == nil && p.Identity.Onboarded() {
			conn.Score = connectionScore(p, conn, now)
		}

		if err := deps.Store.SaveConnection(conn); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save connection: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(conn)
	}
}

func handleGetConnection(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		conn, err := deps.Store.GetConnection(id)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "connection not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get connection: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(conn)
	}
}

func handleDeleteConnection(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		err := deps.Store.DeleteConnection(id)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "connection not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to delete connection: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
	}
}

// RadarAxes pairs the five context axis labels with both charts' trait values.
type RadarAxes struct {
	Labels [5]string `json:"labels"`
	Self   [5]int    `json:"self"`
	Other  [5]int    `json:"other"`
}

// SynastryResponse is the full compatibility reading for one connection.
type SynastryResponse struct {
	Context     zodiac.Context       `json:"context"`
	Date        string               `json:"date"`
	Scores      synastry.Result      `json:"scores"`
	Total       int                  `json:"total"`
	DealBreaker synastry.DealBreaker `json:"dealBreaker"`
	Radar       RadarAxes            `json:"radar"`
}

func handleSynastry(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		conn, err := deps.Store.GetConnection(id)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "connection not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get connection: %v", err)
			return
		}

		p, err := deps.Profile.GetProfile()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get profile: %v", err)
			return
		}
		if !p.Identity.Onboarded() {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "profile incomplete: set identity.full_name and identity.birth_date first")
			return
		}

		ctx := zodiac.ParseContext(r.URL.Query().Get("context"))
		now := deps.Clock.Now()
		dateStr := trends.DateString(now)

		self := zodiac.GenerateChart(p.Identity.FullName, p.Identity.BirthDate)
		other := zodiac.GenerateChart(conn.Name, conn.BirthDate)
		src := zodiac.NewSource(synastry.SeedFor(p.Identity.FullName, conn.Name, dateStr))
		result := synastry.Compute(self, other, src)
		total := synastry.TotalFor(result, ctx)

		if err := deps.Store.UpdateConnectionScore(conn.ID, total); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save score: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SynastryResponse{
			Context:     ctx,
			Date:        dateStr,
			Scores:      result,
			Total:       total,
			DealBreaker: synastry.DealBreakerFor(result, ctx),
			Radar: RadarAxes{
				Labels: zodiac.AxisLabels(ctx),
				Self:   zodiac.Traits(self, ctx),
				Other:  zodiac.Traits(other, ctx),
			},
		})
	}
}

func handleRefreshConnections(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := deps.Profile.GetProfile()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get profile: %v", err)
			return
		}
		if !p.Identity.Onboarded() {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "profile incomplete: set identity.full_name and identity.birth_date first")
			return
		}

		conns, err := deps.Store.ListConnections()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list connections: %v", err)
			return
		}

		now := deps.Clock.Now()

		g, _ := errgroup.WithContext(r.Context())
		g.SetLimit(refreshWorkers)
		for _, conn := range conns {
			g.Go(func() error {
				score := connectionScore(p, conn, now)
				return deps.Store.UpdateConnectionScore(conn.ID, score)
			})
		}
		if err := g.Wait(); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "refresh failed: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status": "refreshed",
			"count":  len(conns),
		})
	}
}

// connectionScore computes today's compatibility total for a stored
// connection, in the context the connection was saved under.
func connectionScore(p profile.Profile, conn storage.Connection, now time.Time) int {
	dateStr := trends.DateString(now)
	self := zodiac.GenerateChart(p.Identity.FullName, p.Identity.BirthDate)
	other := zodiac.GenerateChart(conn.Name, conn.BirthDate)
	src := zodiac.NewSource(synastry.SeedFor(p.Identity.FullName, conn.Name, dateStr))
	result := synastry.Compute(self, other, src)
	return synastry.TotalFor(result, zodiac.ParseContext(conn.RelType))
}

// ExportPayload is the complete local dataset, for backup or migration.
type ExportPayload struct {
	ExportedAt  string               `json:"exportedAt"`
	Profile     profile.Profile      `json:"profile"`
	Connections []storage.Connection `json:"connections"`
	Snapshots   []storage.Snapshot   `json:"snapshots"`
}

func handleExport(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := deps.Profile.GetProfile()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get profile: %v", err)
			return
		}
		conns, err := deps.Store.ListConnections()
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list connections: %v", err)
			return
		}
		snaps, err := deps.Store.ListSnapshots(365)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list snapshots: %v", err)
			return
		}
		if conns == nil {
			conns = []storage.Connection{}
		}
		if snaps == nil {
			snaps = []storage.Snapshot{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ExportPayload{
			ExportedAt:  deps.Clock.Now().UTC().Format(time.RFC3339),
			Profile:     p,
			Connections: conns,
			Snapshots:   snaps,
		})
	}
}

func handlePurge(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Store.PurgeAll(); err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to purge data: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "purged"})
	}
}

func parseIntParam(r *http.Request, key string, defaultVal, maxVal int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	if maxVal > 0 && v > maxVal {
		return maxVal
	}
	return v
}
