// Package service: 게임 세션 상태 기계.
// 메모리 내 GameState가 단일 진실 출처이며, 모든 변이 연산은
// 자신의 에러를 잡아 사용자 문구로 바꿔 스냅샷의 error 필드에 싣는다.
package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/dyslexiquest/quest-engine-go/internal/common/messageprovider"
	"github.com/dyslexiquest/quest-engine-go/internal/common/retrier"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/announce"
	questconfig "github.com/dyslexiquest/quest-engine-go/internal/quest/config"
	questerrors "github.com/dyslexiquest/quest-engine-go/internal/quest/errors"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/gameapi"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/messages"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/model"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/store"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/vocab"
)

// Phase: 세션 수명 주기 단계
type Phase string

// Phase 상수 목록.
const (
	PhaseNotStarted Phase = "not_started"
	PhaseInProgress Phase = "in_progress"
	PhaseGameOver   Phase = "game_over"
)

// Snapshot: UI에 내보내는 세션 상태의 한 시점.
// Error는 사람이 읽을 문구이며, 상태 기계 밖으로 에러를 던지지 않는다.
type Snapshot struct {
	Phase      Phase            `json:"phase"`
	State      *model.GameState `json:"state,omitempty"`
	TurnStatus string           `json:"turn_status,omitempty"`
	Error      string           `json:"error,omitempty"`
	Loading    bool             `json:"loading"`
}

// FinishedGame: 장기 통계용으로 기록하는 완주 요약
type FinishedGame struct {
	SessionID    string
	Genre        model.Genre
	TurnsUsed    int
	Backtracks   int
	WordsLearned int
	FinishedAt   time.Time
}

// GameRecorder: 완주 기록을 영속화하는 저장소 인터페이스다.
type GameRecorder interface {
	RecordFinishedGame(ctx context.Context, game FinishedGame) error
}

// GameService 는 타입이다.
type GameService struct {
	backend   Backend
	sessions  *store.SessionStore
	tracker   *vocab.Tracker
	extractor *vocab.Extractor
	humanizer *gameapi.Humanizer
	announcer *announce.Announcer
	msgs      *messageprovider.Provider
	recorder  GameRecorder
	logger    *slog.Logger
	retryCfg  retrier.Config

	// 단일 진행 중 가드. UI 플래그 대신 세마포어가 동시 변이를 거부한다.
	inflight *semaphore.Weighted

	mu        sync.RWMutex
	state     *model.GameState
	lastError string
}

// Backend: 게임 API 클라이언트 표면. 테스트에서 교체할 수 있다.
type Backend interface {
	StartGame(ctx context.Context, genre model.Genre) (gameapi.StartGameResponse, error)
	NextTurn(ctx context.Context, req gameapi.NextTurnRequest) (gameapi.NextTurnResponse, error)
	Backtrack(ctx context.Context, req gameapi.BacktrackRequest) (gameapi.BacktrackResponse, error)
	EndGame(ctx context.Context, sessionID string) (gameapi.EndGameResponse, error)
	CheckHealth(ctx context.Context) (gameapi.HealthResponse, error)
}

// Options: 서비스 구성 옵션
type Options struct {
	Backend   Backend
	Sessions  *store.SessionStore
	Tracker   *vocab.Tracker
	Extractor *vocab.Extractor
	Humanizer *gameapi.Humanizer
	Announcer *announce.Announcer
	Messages  *messageprovider.Provider
	Recorder  GameRecorder
	Logger    *slog.Logger
	RetryCfg  retrier.Config
}

// NewGameService: 서비스를 만들고 영속 상태와 어휘 진행도를 복원한다.
func NewGameService(ctx context.Context, opts Options) *GameService {
	s := &GameService{
		backend:   opts.Backend,
		sessions:  opts.Sessions,
		tracker:   opts.Tracker,
		extractor: opts.Extractor,
		humanizer: opts.Humanizer,
		announcer: opts.Announcer,
		msgs:      opts.Messages,
		recorder:  opts.Recorder,
		logger:    opts.Logger,
		retryCfg:  opts.RetryCfg,
		inflight:  semaphore.NewWeighted(1),
	}
	if s.retryCfg.Attempts <= 0 {
		s.retryCfg = retrier.DefaultConfig()
	}

	if progress := s.sessions.LoadProgress(ctx); progress != nil {
		s.tracker.Restore(*progress)
	}
	if state := s.sessions.LoadGameState(ctx); state != nil {
		if state.CheckInvariants(questconfig.MaxBacktrackCount) {
			s.state = state
			s.logger.Info("session_restored",
				"session_id", state.SessionID, "turn", state.Turn, "game_over", state.GameOver)
		} else {
			s.logger.Warn("session_restore_rejected", "session_id", state.SessionID)
			s.sessions.ClearGameState(ctx)
		}
	}
	return s
}

// Snapshot: 현재 세션 스냅샷을 반환한다.
func (s *GameService) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *GameService) snapshotLocked() Snapshot {
	snap := Snapshot{Phase: PhaseNotStarted, Error: s.lastError, Loading: s.IsLoading()}
	if s.state != nil {
		stateCopy := *s.state
		snap.State = &stateCopy
		snap.Phase = PhaseInProgress
		if stateCopy.GameOver {
			snap.Phase = PhaseGameOver
		} else {
			snap.TurnStatus = s.msgs.Get(messages.GameTurnStatus,
				messageprovider.P("current", stateCopy.Turn),
				messageprovider.P("max", questconfig.MaxTurns))
		}
	}
	return snap
}

// State: 현재 상태의 복사본. 세션이 없으면 nil이다.
func (s *GameService) State() *model.GameState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return nil
	}
	stateCopy := *s.state
	return &stateCopy
}

// IsLoading: 변이 연산이 진행 중인지 보고한다.
func (s *GameService) IsLoading() bool {
	if s.inflight.TryAcquire(1) {
		s.inflight.Release(1)
		return false
	}
	return true
}

// Start: 새 세션을 시작한다. NotStarted 상태에서만 허용된다.
func (s *GameService) Start(ctx context.Context, genreInput string) Snapshot {
	return s.mutate(ctx, "start_game", func(ctx context.Context) error {
		genre, ok := model.ParseGenre(genreInput)
		if !ok {
			return questerrors.InvalidGenreError{Genre: genreInput}
		}

		s.mu.RLock()
		existing := s.state
		s.mu.RUnlock()
		// 끝난 세션도 NewGame으로 비우기 전에는 새로 시작할 수 없다.
		if existing != nil {
			return questerrors.GameAlreadyStartedError{SessionID: existing.SessionID}
		}

		resp, err := retrier.Do(ctx, s.logger, "start_game", s.retryCfg,
			func(ctx context.Context) (gameapi.StartGameResponse, error) {
				return s.backend.StartGame(ctx, genre)
			})
		if err != nil {
			return err
		}

		state := model.NewInitialState(resp.SessionID, genre, resp.StoryIntro, clampChoices(resp.Choices))
		s.replaceState(ctx, state)
		s.sessions.SaveTheme(ctx, string(genre))
		s.logger.Info("game_started", "session_id", state.SessionID, "genre", genre)
		s.announce(announce.PriorityAssertive,
			s.msgs.Get(messages.AnnounceGameStarted, messageprovider.P("genre", string(genre))))
		return nil
	})
}

// SendInput: 플레이어 입력으로 다음 턴을 진행한다.
func (s *GameService) SendInput(ctx context.Context, input string) Snapshot {
	return s.mutate(ctx, "next_turn", func(ctx context.Context) error {
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			return questerrors.EmptyInputError{}
		}

		s.mu.RLock()
		current := s.state
		s.mu.RUnlock()
		switch {
		case current == nil:
			return questerrors.GameNotStartedError{}
		case current.GameOver:
			return questerrors.GameOverError{}
		case current.Turn >= questconfig.MaxTurns:
			return questerrors.TurnLimitError{MaxTurns: questconfig.MaxTurns}
		}

		resp, err := retrier.Do(ctx, s.logger, "next_turn", s.retryCfg,
			func(ctx context.Context) (gameapi.NextTurnResponse, error) {
				return s.backend.NextTurn(ctx, gameapi.NextTurnRequest{
					SessionID: current.SessionID,
					UserInput: trimmed,
					Turn:      current.Turn,
				})
			})
		if err != nil {
			return err
		}

		learned := s.mergeLearnedWords(resp.Response, resp.VocabularyWords)
		gameOver := resp.GameOver || resp.Turn >= questconfig.MaxTurns

		next := current.
			AppendTurn(resp.Turn, trimmed, resp.Response, learned, gameOver, clampChoices(resp.Choices)).
			MergeVocabulary(learned)
		s.replaceState(ctx, next)
		s.persistProgress(ctx)

		s.logger.Info("turn_advanced",
			"session_id", next.SessionID, "turn", next.Turn,
			"game_over", next.GameOver, "vocabulary", len(learned))
		s.announce(announce.PriorityPolite,
			s.msgs.Get(messages.AnnounceNewNarrative, messageprovider.P("preview", preview(resp.Response))))
		if gameOver {
			s.finishGame(ctx, next)
		}
		return nil
	})
}

// BacktrackToTurn: 이전 턴으로 되돌린다. 세션당 최대 횟수가 제한된다.
func (s *GameService) BacktrackToTurn(ctx context.Context, targetTurn int) Snapshot {
	return s.mutate(ctx, "backtrack", func(ctx context.Context) error {
		s.mu.RLock()
		current := s.state
		s.mu.RUnlock()
		switch {
		case current == nil:
			return questerrors.GameNotStartedError{}
		case current.GameOver:
			return questerrors.GameOverError{}
		case current.BacktrackCount >= questconfig.MaxBacktrackCount:
			return questerrors.BacktrackLimitError{Limit: questconfig.MaxBacktrackCount}
		case targetTurn < 1 || targetTurn >= current.Turn:
			return questerrors.InvalidBacktrackError{Target: targetTurn, CurrentTurn: current.Turn}
		}

		resp, err := retrier.Do(ctx, s.logger, "backtrack", s.retryCfg,
			func(ctx context.Context) (gameapi.BacktrackResponse, error) {
				return s.backend.Backtrack(ctx, gameapi.BacktrackRequest{
					SessionID:  current.SessionID,
					TargetTurn: targetTurn,
				})
			})
		if err != nil {
			return err
		}

		// 복원 스냅샷은 백엔드가 준 그대로 쓰되, 되돌리기 횟수는 클라이언트가 센다.
		restored := resp.RestoredState.WithBacktrackCount(current.BacktrackCount + 1)
		s.replaceState(ctx, restored)

		s.logger.Info("backtrack_done",
			"session_id", restored.SessionID, "target_turn", targetTurn,
			"backtrack_count", restored.BacktrackCount)
		s.announce(announce.PriorityAssertive,
			s.msgs.Get(messages.AnnounceBacktrack, messageprovider.P("turn", targetTurn)))
		return nil
	})
}

// EndGame: 세션을 종료 상태로 만든다. 히스토리는 보존된다.
func (s *GameService) EndGame(ctx context.Context) Snapshot {
	return s.mutate(ctx, "end_game", func(ctx context.Context) error {
		s.mu.RLock()
		current := s.state
		s.mu.RUnlock()
		if current == nil {
			return questerrors.GameNotStartedError{}
		}
		if current.GameOver {
			return nil
		}

		resp, err := retrier.Do(ctx, s.logger, "end_game", s.retryCfg,
			func(ctx context.Context) (gameapi.EndGameResponse, error) {
				return s.backend.EndGame(ctx, current.SessionID)
			})
		if err != nil {
			return err
		}

		ended := current.MarkGameOver()
		s.replaceState(ctx, ended)
		s.logger.Info("game_ended", "session_id", ended.SessionID, "turn", ended.Turn)

		farewell := strings.TrimSpace(resp.Message)
		if farewell == "" {
			farewell = s.msgs.Get(messages.GameEndedFallback)
		}
		s.announce(announce.PriorityPolite, farewell)
		s.finishGame(ctx, ended)
		return nil
	})
}

// NewGame: 영속 상태를 비우고 NotStarted로 돌아간다. 네트워크 호출이 없다.
func (s *GameService) NewGame(ctx context.Context) Snapshot {
	return s.mutate(ctx, "new_game", func(ctx context.Context) error {
		s.sessions.ClearGameState(ctx)
		s.tracker.ResetStreak()
		s.persistProgress(ctx)

		s.mu.Lock()
		s.state = nil
		s.mu.Unlock()

		s.logger.Info("game_cleared")
		return nil
	})
}

// BackendHealthy: 엔진 헬스 체크용 백엔드 연결 확인이다.
func (s *GameService) BackendHealthy(ctx context.Context) bool {
	resp, err := s.backend.CheckHealth(ctx)
	if err != nil {
		s.logger.Warn("backend_health_failed", "error", err)
		return false
	}
	return resp.Healthy()
}

// mutate: 단일 진행 가드 아래에서 변이 연산을 실행하고,
// 실패는 문구로 바꿔 스냅샷에 싣는다.
func (s *GameService) mutate(ctx context.Context, operation string, fn func(ctx context.Context) error) Snapshot {
	if !s.inflight.TryAcquire(1) {
		s.logger.Warn("operation_rejected_busy", "operation", operation)
		busy := s.humanizer.Humanize(questerrors.EngineBusyError{})
		s.mu.Lock()
		s.lastError = busy
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.announceError(busy)
		return snap
	}
	defer s.inflight.Release(1)

	err := fn(ctx)

	s.mu.Lock()
	s.lastError = ""
	if err != nil {
		s.lastError = s.humanizer.Humanize(err)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	// 이 시점에는 연산이 끝났으므로, 아직 쥐고 있는 세마포어는 무시한다.
	snap.Loading = false

	if err != nil {
		if questerrors.IsExpectedUserBehavior(err) {
			s.logger.Info("operation_blocked", "operation", operation, "reason", err)
		} else {
			s.logger.Error("operation_failed", "operation", operation, "error", err)
		}
		s.announceError(snap.Error)
	}
	return snap
}

// replaceState: 상태를 교체하고 변경 직후 영속화한다(실패 허용).
// 전이 후마다 불변식을 검사한다.
func (s *GameService) replaceState(ctx context.Context, state model.GameState) {
	if !state.CheckInvariants(questconfig.MaxBacktrackCount) {
		s.logger.Warn("state_invariant_violation",
			"session_id", state.SessionID, "turn", state.Turn,
			"backtrack_count", state.BacktrackCount)
	}
	s.mu.Lock()
	s.state = &state
	s.mu.Unlock()
	s.sessions.SaveGameState(ctx, state)
}

// mergeLearnedWords: 백엔드가 표시한 단어와 서사에서 추출한 단어를 합친다.
// 처음 배우는 단어마다 알림을 보낸다.
func (s *GameService) mergeLearnedWords(narrative string, backendWords []string) []string {
	seen := make(map[string]struct{})
	var learned []string
	for _, word := range append(append([]string{}, backendWords...), s.extractor.Extract(narrative)...) {
		normalized := vocab.NormalizeWord(word)
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		learned = append(learned, normalized)

		if s.tracker.AddLearnedWord(normalized) {
			s.announce(announce.PriorityPolite,
				s.msgs.Get(messages.AnnounceVocabLearned, messageprovider.P("word", normalized)))
		}
	}
	return learned
}

// finishGame: 게임 종료 시의 공통 마무리다.
func (s *GameService) finishGame(ctx context.Context, state model.GameState) {
	s.tracker.RecordGamePlayed()
	s.persistProgress(ctx)

	if s.recorder != nil {
		record := FinishedGame{
			SessionID:    state.SessionID,
			Genre:        state.Genre,
			TurnsUsed:    state.Turn,
			Backtracks:   state.BacktrackCount,
			WordsLearned: len(state.VocabularyLearned),
			FinishedAt:   time.Now(),
		}
		if err := s.recorder.RecordFinishedGame(ctx, record); err != nil {
			s.logger.Warn("finished_game_record_failed", "session_id", state.SessionID, "error", err)
		}
	}

	s.announce(announce.PriorityAssertive,
		s.msgs.Get(messages.AnnounceGameEnded, messageprovider.P("count", len(state.VocabularyLearned))))
}

func (s *GameService) persistProgress(ctx context.Context) {
	s.sessions.SaveProgress(ctx, s.tracker.Progress())
}

func (s *GameService) announce(priority announce.Priority, message string) {
	if s.announcer != nil {
		s.announcer.Announce(priority, message)
	}
}

func (s *GameService) announceError(message string) {
	if message == "" {
		return
	}
	s.announce(announce.PriorityAssertive,
		s.msgs.Get(messages.AnnounceError, messageprovider.P("message", message)))
}

// clampChoices: 백엔드가 준 선택지를 최대 개수까지만 받는다.
func clampChoices(choices []string) []string {
	if len(choices) > questconfig.MaxChoices {
		return choices[:questconfig.MaxChoices]
	}
	return choices
}

// preview: 알림에 실을 서사 앞부분을 만든다.
func preview(text string) string {
	const limit = 80
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit]) + "..."
}
