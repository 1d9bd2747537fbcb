// Package httpapi: 퀘스트 엔진의 HTTP API 표면.
// 게임 연산은 서비스 스냅샷을 그대로 반환하며, 실패 문구는 스냅샷의
// error 필드에 실려 나간다. HTTP 에러는 요청 자체가 잘못된 경우에만 쓴다.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/dyslexiquest/quest-engine-go/internal/common/health"
	"github.com/dyslexiquest/quest-engine-go/internal/common/httputil"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/repository"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/reveal"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/service"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/store"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/vocab"
)

const maxBodyBytes = httputil.DefaultMaxBodyBytes

// Deps: 라우트가 의존하는 구성 요소 묶음
type Deps struct {
	Service     *service.GameService
	Sessions    *store.SessionStore
	Tracker     *vocab.Tracker
	Dictionary  *vocab.Dictionary
	Highlighter *vocab.Highlighter
	Revealer    *reveal.Scheduler
	Stats       StatsSource
	Logger      *slog.Logger
}

// StatsSource: 장기 통계 조회 표면. repository가 구현하며, DB가 없으면 nil이다.
type StatsSource interface {
	GenreStats(ctx context.Context) ([]repository.GenreStat, error)
	RecentGames(ctx context.Context, limit int) ([]repository.FinishedGameRecord, error)
}

// Register HTTP API 라우트 등록.
func Register(mux *http.ServeMux, deps Deps) {
	registerGameRoutes(mux, deps)
	registerVocabularyRoutes(mux, deps)
	registerSettingsRoutes(mux, deps)
	registerStatsRoutes(mux, deps)

	// GET /healthz - 엔진 상태와 백엔드 도달 가능 여부
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		backendUp := deps.Service.BackendHealthy(r.Context())
		_ = httputil.WriteJSON(w, http.StatusOK, health.Get(backendUp))
	})

	deps.Logger.Info("quest_http_api_registered")
}

func registerGameRoutes(mux *http.ServeMux, deps Deps) {
	// POST /api/game/start - 새 모험 시작
	mux.HandleFunc("POST /api/game/start", func(w http.ResponseWriter, r *http.Request) {
		handleStart(w, r, deps)
	})

	// POST /api/game/input - 플레이어 입력으로 턴 진행
	mux.HandleFunc("POST /api/game/input", func(w http.ResponseWriter, r *http.Request) {
		handleInput(w, r, deps)
	})

	// POST /api/game/backtrack - 이전 턴으로 되돌리기
	mux.HandleFunc("POST /api/game/backtrack", func(w http.ResponseWriter, r *http.Request) {
		handleBacktrack(w, r, deps)
	})

	// POST /api/game/end - 세션 종료
	mux.HandleFunc("POST /api/game/end", func(w http.ResponseWriter, r *http.Request) {
		respondSnapshot(w, deps.Service.EndGame(r.Context()))
	})

	// POST /api/game/new - 저장된 세션을 비우고 처음으로
	mux.HandleFunc("POST /api/game/new", func(w http.ResponseWriter, r *http.Request) {
		respondSnapshot(w, deps.Service.NewGame(r.Context()))
	})

	// GET /api/game/state - 현재 스냅샷 조회
	mux.HandleFunc("GET /api/game/state", func(w http.ResponseWriter, r *http.Request) {
		respondSnapshot(w, deps.Service.Snapshot())
	})

	// GET /api/game/annotated - 어휘 주석이 달린 현재 서사
	mux.HandleFunc("GET /api/game/annotated", func(w http.ResponseWriter, r *http.Request) {
		handleAnnotated(w, r, deps)
	})

	// GET /api/game/reveal - 현재 서사의 타자기 프레임 스트림 (NDJSON)
	mux.HandleFunc("GET /api/game/reveal", func(w http.ResponseWriter, r *http.Request) {
		handleReveal(w, r, deps)
	})

	// POST /api/game/backup - 현재 상태를 내보내기 블롭으로
	mux.HandleFunc("POST /api/game/backup", func(w http.ResponseWriter, r *http.Request) {
		handleBackup(w, r, deps)
	})

	// POST /api/game/restore - 블롭에서 상태 복원 검증
	mux.HandleFunc("POST /api/game/restore", func(w http.ResponseWriter, r *http.Request) {
		handleRestore(w, r, deps)
	})
}

type (
	// StartRequest: 게임 시작 요청 DTO
	StartRequest struct {
		Genre string `json:"genre"`
	}

	// InputRequest: 턴 진행 요청 DTO
	InputRequest struct {
		Input string `json:"input"`
	}

	// BacktrackReq: 되돌리기 요청 DTO
	BacktrackReq struct {
		TargetTurn int `json:"target_turn"`
	}

	// AnnotatedResponse: 주석 서사 응답 DTO
	AnnotatedResponse struct {
		HTML  string   `json:"html"`
		Words []string `json:"words"`
	}

	// BackupResponse: 내보내기 블롭 응답 DTO
	BackupResponse struct {
		Backup string `json:"backup"`
	}

	// RestoreRequest: 복원 요청 DTO
	RestoreRequest struct {
		Backup string `json:"backup"`
	}
)

func handleStart(w http.ResponseWriter, r *http.Request, deps Deps) {
	var req StartRequest
	if err := httputil.ReadJSON(r, &req, maxBodyBytes); err != nil {
		httputil.WriteErrorJSON(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}

	start := time.Now()
	snap := deps.Service.Start(r.Context(), req.Genre)
	deps.Logger.Info("START_HANDLED", "genre", req.Genre, "phase", snap.Phase,
		"duration", time.Since(start).Milliseconds())
	respondSnapshot(w, snap)
}

func handleInput(w http.ResponseWriter, r *http.Request, deps Deps) {
	var req InputRequest
	if err := httputil.ReadJSON(r, &req, maxBodyBytes); err != nil {
		httputil.WriteErrorJSON(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}

	start := time.Now()
	snap := deps.Service.SendInput(r.Context(), req.Input)
	deps.Logger.Info("INPUT_HANDLED", "phase", snap.Phase,
		"duration", time.Since(start).Milliseconds())
	respondSnapshot(w, snap)
}

func handleBacktrack(w http.ResponseWriter, r *http.Request, deps Deps) {
	var req BacktrackReq
	if err := httputil.ReadJSON(r, &req, maxBodyBytes); err != nil {
		httputil.WriteErrorJSON(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}

	snap := deps.Service.BacktrackToTurn(r.Context(), req.TargetTurn)
	deps.Logger.Info("BACKTRACK_HANDLED", "target", req.TargetTurn, "phase", snap.Phase)
	respondSnapshot(w, snap)
}

func handleAnnotated(w http.ResponseWriter, r *http.Request, deps Deps) {
	state := deps.Service.State()
	if state == nil {
		httputil.WriteErrorJSON(w, http.StatusNotFound, "no_session", "no active session")
		return
	}

	annotated := deps.Highlighter.Highlight(state.CurrentNarrative(), deps.Tracker)
	_ = httputil.WriteJSON(w, http.StatusOK, AnnotatedResponse{
		HTML:  annotated,
		Words: vocab.WrappedWords(annotated),
	})
}

// handleReveal: 서사를 타자기 프레임으로 흘려보낸다. 접근성 설정의
// skip_animations가 켜져 있으면 전체 텍스트 프레임 하나만 나간다.
func handleReveal(w http.ResponseWriter, r *http.Request, deps Deps) {
	state := deps.Service.State()
	if state == nil {
		httputil.WriteErrorJSON(w, http.StatusNotFound, "no_session", "no active session")
		return
	}

	settings := deps.Sessions.LoadSettings(r.Context())
	frames := deps.Revealer.Reveal(r.Context(), state.CurrentNarrative(), settings.SkipAnimations)

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)

	encoder := json.NewEncoder(w)
	for frame := range frames {
		if err := encoder.Encode(frame); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

func handleBackup(w http.ResponseWriter, r *http.Request, deps Deps) {
	state := deps.Service.State()
	if state == nil {
		httputil.WriteErrorJSON(w, http.StatusNotFound, "no_session", "no active session")
		return
	}

	blob, err := store.CreateBackup(*state)
	if err != nil {
		deps.Logger.Error("BACKUP_FAILED", "err", err)
		httputil.WriteErrorJSON(w, http.StatusInternalServerError, "backup_failed", "could not create backup")
		return
	}
	_ = httputil.WriteJSON(w, http.StatusOK, BackupResponse{Backup: blob})
}

func handleRestore(w http.ResponseWriter, r *http.Request, deps Deps) {
	var req RestoreRequest
	if err := httputil.ReadJSON(r, &req, maxBodyBytes); err != nil {
		httputil.WriteErrorJSON(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}

	restored, err := store.RestoreBackup(req.Backup)
	if err != nil {
		httputil.WriteErrorJSON(w, http.StatusBadRequest, "invalid_backup", "backup blob is not valid")
		return
	}

	deps.Sessions.SaveGameState(r.Context(), *restored)
	deps.Logger.Info("RESTORE_HANDLED", "session_id", restored.SessionID, "turn", restored.Turn)
	_ = httputil.WriteJSON(w, http.StatusOK, restored)
}

func respondSnapshot(w http.ResponseWriter, snap service.Snapshot) {
	_ = httputil.WriteJSON(w, http.StatusOK, snap)
}
