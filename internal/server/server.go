// Package server is the demo HTTP surface: it accepts a match ID (and
// optionally a player name), runs the prediction pipeline, and renders
// the result as JSON with a human-readable message per failure kind.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"rank-predictor/internal/model"
	"rank-predictor/internal/pipeline"
	"rank-predictor/internal/riot"
	"rank-predictor/internal/store"
)

type Server struct {
	pipeline *pipeline.Pipeline
	store    *store.Store // nil when no archive is configured
	logger   *zap.SugaredLogger
}

func New(p *pipeline.Pipeline, st *store.Store, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Server{
		pipeline: p,
		store:    st,
		logger:   logger,
	}
}

// Router builds the chi routing tree.
func (s *Server) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/match/{matchID}/predictions", s.MatchPredictions)
		r.Get("/match/{matchID}/player/{name}", s.PlayerPrediction)
		r.Get("/predictions/recent", s.RecentPredictions)
	})

	return r
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// MatchPredictions predicts a rank for every player in a match.
func (s *Server) MatchPredictions(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")
	if matchID == "" {
		s.errorResponse(w, http.StatusBadRequest, "Match ID is required")
		return
	}

	start := time.Now()
	result, err := s.pipeline.PredictMatch(r.Context(), matchID)
	if err != nil {
		s.failure(w, err, "matchId", matchID)
		return
	}
	predictDuration.Observe(time.Since(start).Seconds())
	predictionsTotal.Add(float64(len(result.Players)))

	s.archive(r, result)
	s.jsonResponse(w, http.StatusOK, result)
}

// PlayerPrediction predicts the rank of one named player in a match.
func (s *Server) PlayerPrediction(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")
	name := chi.URLParam(r, "name")
	if matchID == "" || name == "" {
		s.errorResponse(w, http.StatusBadRequest, "Match ID and player name are required")
		return
	}

	start := time.Now()
	pred, diag, err := s.pipeline.PredictPlayer(r.Context(), matchID, name)
	if err != nil {
		s.failure(w, err, "matchId", matchID, "player", name)
		return
	}
	if diag != nil {
		s.jsonResponse(w, http.StatusNotFound, map[string]interface{}{
			"error":     "Player not found in this match",
			"player":    diag.Player,
			"available": diag.Available,
		})
		return
	}
	predictDuration.Observe(time.Since(start).Seconds())
	predictionsTotal.Inc()

	s.jsonResponse(w, http.StatusOK, pred)
}

// RecentPredictions serves the archive, when one is configured.
func (s *Server) RecentPredictions(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusNotFound, "Prediction history is not enabled")
		return
	}

	records, err := s.store.RecentPredictions(r.Context(), 50)
	if err != nil {
		s.logger.Errorw("failed to load recent predictions", "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load prediction history")
		return
	}
	s.jsonResponse(w, http.StatusOK, records)
}

// archive stores each prediction when a store is configured. Archive
// failures are logged, never surfaced: history is best-effort.
func (s *Server) archive(r *http.Request, result *pipeline.MatchPrediction) {
	if s.store == nil {
		return
	}
	for _, p := range result.Players {
		rec := &store.PredictionRecord{
			MatchID:       result.MatchID,
			GameName:      p.Row.SummonerName,
			ChampionName:  p.Row.ChampionName,
			RankIndex:     p.RankIndex,
			PredictedRank: string(p.Rank),
			KDA:           p.Row.KDA,
			Win:           p.Row.Win == 1,
		}
		if err := s.store.SavePrediction(r.Context(), rec); err != nil {
			s.logger.Warnw("failed to archive prediction", "matchId", result.MatchID, "error", err)
			return
		}
	}
}

// failure maps a pipeline error onto a status code and a message a
// person can act on, never a raw internal error.
func (s *Server) failure(w http.ResponseWriter, err error, keysAndValues ...interface{}) {
	kind := riot.Kind(err)
	if kind != "" && kind != riot.KindNotFound {
		fetchFailures.WithLabelValues(string(kind)).Inc()
	}

	switch {
	case kind == riot.KindValidation:
		s.errorResponse(w, http.StatusBadRequest, "Match ID is malformed")
	case kind == riot.KindNotFound:
		s.errorResponse(w, http.StatusNotFound, "Match not found")
	case kind == riot.KindRateLimited:
		s.errorResponse(w, http.StatusTooManyRequests, "The stats service is rate limiting us; try again shortly")
	case kind == riot.KindAuth:
		s.logger.Errorw("upstream credential rejected", keysAndValues...)
		s.errorResponse(w, http.StatusBadGateway, "The stats service rejected our credentials")
	case kind == riot.KindTransport:
		s.logger.Errorw("upstream request failed", append(keysAndValues, "error", err)...)
		s.errorResponse(w, http.StatusBadGateway, "Could not reach the stats service")
	default:
		var schemaErr *model.SchemaError
		if errors.As(err, &schemaErr) {
			s.logger.Errorw("model schema mismatch", append(keysAndValues, "error", err)...)
			s.errorResponse(w, http.StatusInternalServerError, "Loaded model does not match the feature schema")
			return
		}
		s.logger.Errorw("prediction failed", append(keysAndValues, "error", err)...)
		s.errorResponse(w, http.StatusInternalServerError, "Prediction failed")
	}
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Errorw("failed to encode response", "error", err)
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
