package httpapi

import (
	"net/http"
	"strconv"

	"github.com/dyslexiquest/quest-engine-go/internal/common/httputil"
)

// StorageResponse: 저장소 상태 응답 DTO
type StorageResponse struct {
	Available  bool `json:"available"`
	UsageBytes int  `json:"usage_bytes"`
}

func registerStatsRoutes(mux *http.ServeMux, deps Deps) {
	// GET /api/storage - 저장소 가용성 탐침과 사용량
	mux.HandleFunc("GET /api/storage", func(w http.ResponseWriter, r *http.Request) {
		_ = httputil.WriteJSON(w, http.StatusOK, StorageResponse{
			Available:  deps.Sessions.Probe(r.Context()),
			UsageBytes: deps.Sessions.Usage(r.Context()),
		})
	})

	if deps.Stats == nil {
		return
	}

	// GET /api/stats/genres - 장르별 완주 통계 (DB 구성 시)
	mux.HandleFunc("GET /api/stats/genres", func(w http.ResponseWriter, r *http.Request) {
		stats, err := deps.Stats.GenreStats(r.Context())
		if err != nil {
			deps.Logger.Error("GENRE_STATS_FAILED", "err", err)
			httputil.WriteErrorJSON(w, http.StatusInternalServerError, "stats_failed", "could not load stats")
			return
		}
		_ = httputil.WriteJSON(w, http.StatusOK, stats)
	})

	// GET /api/stats/recent?limit= - 최근 완주 기록 (DB 구성 시)
	mux.HandleFunc("GET /api/stats/recent", func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				httputil.WriteErrorJSON(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive number")
				return
			}
			limit = parsed
		}

		games, err := deps.Stats.RecentGames(r.Context(), limit)
		if err != nil {
			deps.Logger.Error("RECENT_GAMES_FAILED", "err", err)
			httputil.WriteErrorJSON(w, http.StatusInternalServerError, "stats_failed", "could not load stats")
			return
		}
		_ = httputil.WriteJSON(w, http.StatusOK, games)
	})
}
