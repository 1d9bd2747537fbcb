package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	commonerrors "github.com/dyslexiquest/quest-engine-go/internal/common/errors"
	"github.com/dyslexiquest/quest-engine-go/internal/common/messageprovider"
	"github.com/dyslexiquest/quest-engine-go/internal/common/retrier"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/announce"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/assets"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/gameapi"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/messages"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/model"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/store"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/vocab"
)

type fakeBackend struct {
	mu    sync.Mutex
	delay time.Duration
	err   error

	startResp     gameapi.StartGameResponse
	nextResp      gameapi.NextTurnResponse
	backtrackResp gameapi.BacktrackResponse

	startCalls     int
	nextCalls      int
	backtrackCalls int
	endCalls       int
}

func (f *fakeBackend) wait() error {
	f.mu.Lock()
	delay, err := f.delay, f.err
	f.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	return err
}

func (f *fakeBackend) StartGame(_ context.Context, _ model.Genre) (gameapi.StartGameResponse, error) {
	f.mu.Lock()
	f.startCalls++
	f.mu.Unlock()
	if err := f.wait(); err != nil {
		return gameapi.StartGameResponse{}, err
	}
	return f.startResp, nil
}

func (f *fakeBackend) NextTurn(_ context.Context, _ gameapi.NextTurnRequest) (gameapi.NextTurnResponse, error) {
	f.mu.Lock()
	f.nextCalls++
	f.mu.Unlock()
	if err := f.wait(); err != nil {
		return gameapi.NextTurnResponse{}, err
	}
	return f.nextResp, nil
}

func (f *fakeBackend) Backtrack(_ context.Context, _ gameapi.BacktrackRequest) (gameapi.BacktrackResponse, error) {
	f.mu.Lock()
	f.backtrackCalls++
	f.mu.Unlock()
	if err := f.wait(); err != nil {
		return gameapi.BacktrackResponse{}, err
	}
	return f.backtrackResp, nil
}

func (f *fakeBackend) EndGame(_ context.Context, _ string) (gameapi.EndGameResponse, error) {
	f.mu.Lock()
	f.endCalls++
	f.mu.Unlock()
	if err := f.wait(); err != nil {
		return gameapi.EndGameResponse{}, err
	}
	return gameapi.EndGameResponse{Message: "ended"}, nil
}

func (f *fakeBackend) CheckHealth(_ context.Context) (gameapi.HealthResponse, error) {
	if err := f.wait(); err != nil {
		return gameapi.HealthResponse{}, err
	}
	return gameapi.HealthResponse{Status: "healthy", GeminiAvailable: true}, nil
}

type recordingSink struct {
	mu      sync.Mutex
	records []FinishedGame
}

func (r *recordingSink) RecordFinishedGame(_ context.Context, game FinishedGame) error {
	r.mu.Lock()
	r.records = append(r.records, game)
	r.mu.Unlock()
	return nil
}

type testEnv struct {
	service   *GameService
	backend   *fakeBackend
	sessions  *store.SessionStore
	recorder  *recordingSink
	announcer *announce.Announcer
	msgs      *messageprovider.Provider
}

func newTestEnv(t *testing.T, backend *fakeBackend) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	kv, err := store.NewFileKV(t.TempDir(), "test")
	if err != nil {
		t.Fatalf("NewFileKV: %v", err)
	}
	sessions := store.NewSessionStore(kv, logger)

	dict, err := vocab.DefaultDictionary()
	if err != nil {
		t.Fatalf("DefaultDictionary: %v", err)
	}
	msgs, err := messageprovider.NewFromYAML(assets.MessagesYAML)
	if err != nil {
		t.Fatalf("NewFromYAML: %v", err)
	}

	recorder := &recordingSink{}
	announcer := announce.NewAnnouncer(time.Hour)
	svc := NewGameService(context.Background(), Options{
		Backend:   backend,
		Sessions:  sessions,
		Tracker:   vocab.NewTracker(dict.Size()),
		Extractor: vocab.NewExtractor(dict),
		Humanizer: gameapi.NewHumanizer(msgs),
		Announcer: announcer,
		Messages:  msgs,
		Recorder:  recorder,
		Logger:    logger,
		RetryCfg:  retrier.Config{Attempts: 1, BaseDelay: time.Millisecond},
	})
	return &testEnv{service: svc, backend: backend, sessions: sessions, recorder: recorder, announcer: announcer, msgs: msgs}
}

func startedEnv(t *testing.T) *testEnv {
	t.Helper()

	backend := &fakeBackend{
		startResp: gameapi.StartGameResponse{
			SessionID:  "sess-1",
			StoryIntro: "You stand at the edge of a dark forest.",
			Turn:       1,
		},
	}
	env := newTestEnv(t, backend)
	snap := env.service.Start(context.Background(), "forest")
	if snap.Error != "" || snap.Phase != PhaseInProgress {
		t.Fatalf("start failed: %+v", snap)
	}
	return env
}

func TestStartSuccess(t *testing.T) {
	env := startedEnv(t)

	state := env.service.State()
	if state == nil {
		t.Fatal("state is nil after start")
	}
	if state.SessionID != "sess-1" || state.Turn != 1 || state.Genre != model.GenreForest {
		t.Fatalf("state = %+v", state)
	}
	if len(state.CurrentChoices) != 4 {
		t.Fatalf("choices = %v, want 4 defaults", state.CurrentChoices)
	}

	snap := env.service.Snapshot()
	want := env.msgs.Get(messages.GameTurnStatus,
		messageprovider.P("current", 1), messageprovider.P("max", 10))
	if snap.TurnStatus != want {
		t.Fatalf("turn status = %q, want %q", snap.TurnStatus, want)
	}

	// 변경 직후 영속화되어야 한다.
	persisted := env.sessions.LoadGameState(context.Background())
	if persisted == nil || persisted.SessionID != "sess-1" {
		t.Fatalf("persisted = %+v", persisted)
	}
}

func TestStartInvalidGenre(t *testing.T) {
	env := newTestEnv(t, &fakeBackend{})

	snap := env.service.Start(context.Background(), "underwater")
	if snap.Phase != PhaseNotStarted {
		t.Fatalf("phase = %q", snap.Phase)
	}
	if want := env.msgs.Get(messages.ErrorInvalidGenre); snap.Error != want {
		t.Fatalf("error = %q, want %q", snap.Error, want)
	}
	if env.backend.startCalls != 0 {
		t.Fatal("backend should not be called for an invalid genre")
	}
}

func TestStartWhileInProgress(t *testing.T) {
	env := startedEnv(t)

	snap := env.service.Start(context.Background(), "space")
	if want := env.msgs.Get(messages.ErrorAlreadyStarted); snap.Error != want {
		t.Fatalf("error = %q, want %q", snap.Error, want)
	}
	if env.backend.startCalls != 1 {
		t.Fatalf("startCalls = %d", env.backend.startCalls)
	}
	if env.service.State().Genre != model.GenreForest {
		t.Fatal("existing session was replaced")
	}
}

func TestStartAfterGameOverRequiresNewGame(t *testing.T) {
	env := startedEnv(t)
	env.service.EndGame(context.Background())

	snap := env.service.Start(context.Background(), "space")
	if want := env.msgs.Get(messages.ErrorAlreadyStarted); snap.Error != want {
		t.Fatalf("error = %q, want %q", snap.Error, want)
	}
	if env.backend.startCalls != 1 {
		t.Fatalf("startCalls = %d", env.backend.startCalls)
	}

	env.service.NewGame(context.Background())
	snap = env.service.Start(context.Background(), "space")
	if snap.Error != "" || snap.Phase != PhaseInProgress {
		t.Fatalf("start after new game = %+v", snap)
	}
}

func TestStartFailureLeavesNotStarted(t *testing.T) {
	backend := &fakeBackend{err: commonerrors.NetworkError{Operation: "start_game", Err: context.DeadlineExceeded}}
	env := newTestEnv(t, backend)

	snap := env.service.Start(context.Background(), "forest")
	if snap.Phase != PhaseNotStarted || snap.State != nil {
		t.Fatalf("snapshot = %+v", snap)
	}
	if want := env.msgs.Get(messages.ErrorNetwork); snap.Error != want {
		t.Fatalf("error = %q, want %q", snap.Error, want)
	}
}

func TestSendInputAdvancesTurn(t *testing.T) {
	env := startedEnv(t)
	env.backend.nextResp = gameapi.NextTurnResponse{
		Response:        "A mysterious chronicle lies on the stone.",
		Turn:            2,
		VocabularyWords: []string{"Mysterious"},
		Choices:         []string{"1. Open it", "2. Leave it"},
	}

	snap := env.service.SendInput(context.Background(), "  look around  ")
	if snap.Error != "" {
		t.Fatalf("error = %q", snap.Error)
	}

	state := snap.State
	if state.Turn != 2 || len(state.History) != 2 {
		t.Fatalf("state = %+v", state)
	}
	if got := state.History[1].UserInput; got != "look around" {
		t.Fatalf("user input = %q, want trimmed", got)
	}
	if len(state.CurrentChoices) != 2 {
		t.Fatalf("choices = %v", state.CurrentChoices)
	}

	// 백엔드 표시 단어와 서사 추출 단어가 소문자로 합쳐진다.
	learned := map[string]bool{}
	for _, w := range state.VocabularyLearned {
		learned[w] = true
	}
	if !learned["mysterious"] || !learned["chronicle"] {
		t.Fatalf("vocabulary = %v", state.VocabularyLearned)
	}
}

func TestSendInputGuards(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		env := startedEnv(t)
		snap := env.service.SendInput(context.Background(), "   ")
		if want := env.msgs.Get(messages.ErrorEmptyInput); snap.Error != want {
			t.Fatalf("error = %q, want %q", snap.Error, want)
		}
		if env.backend.nextCalls != 0 {
			t.Fatal("backend called for empty input")
		}
	})

	t.Run("not started", func(t *testing.T) {
		env := newTestEnv(t, &fakeBackend{})
		snap := env.service.SendInput(context.Background(), "go north")
		if want := env.msgs.Get(messages.ErrorNotStarted); snap.Error != want {
			t.Fatalf("error = %q, want %q", snap.Error, want)
		}
	})

	t.Run("game over", func(t *testing.T) {
		env := startedEnv(t)
		env.backend.nextResp = gameapi.NextTurnResponse{Response: "The end.", Turn: 2, GameOver: true}
		if snap := env.service.SendInput(context.Background(), "finish"); snap.Phase != PhaseGameOver {
			t.Fatalf("phase = %q", snap.Phase)
		}

		snap := env.service.SendInput(context.Background(), "more")
		if want := env.msgs.Get(messages.ErrorGameOver); snap.Error != want {
			t.Fatalf("error = %q, want %q", snap.Error, want)
		}
	})
}

func TestTurnLimitEndsGame(t *testing.T) {
	env := startedEnv(t)

	// 백엔드가 game_over를 주지 않아도 턴 상한 도달 시 종료된다.
	env.backend.nextResp = gameapi.NextTurnResponse{Response: "Step taken.", Turn: 10}
	snap := env.service.SendInput(context.Background(), "march on")
	if snap.Phase != PhaseGameOver || !snap.State.GameOver {
		t.Fatalf("snapshot = %+v", snap)
	}
	if len(env.recorder.records) != 1 {
		t.Fatalf("records = %d", len(env.recorder.records))
	}

	after := env.service.SendInput(context.Background(), "keep going")
	if after.Error == "" || env.backend.nextCalls != 1 {
		t.Fatalf("post game-over input reached the backend: %+v", after)
	}
}

func TestBacktrack(t *testing.T) {
	env := startedEnv(t)
	env.backend.nextResp = gameapi.NextTurnResponse{Response: "Deeper in.", Turn: 2}
	env.service.SendInput(context.Background(), "go deeper")

	restored := model.NewInitialState("sess-1", model.GenreForest, "You stand at the edge of a dark forest.", nil)
	env.backend.backtrackResp = gameapi.BacktrackResponse{RestoredState: restored, Message: "restored"}

	snap := env.service.BacktrackToTurn(context.Background(), 1)
	if snap.Error != "" {
		t.Fatalf("error = %q", snap.Error)
	}
	if snap.State.Turn != 1 || len(snap.State.History) != 1 {
		t.Fatalf("restored state = %+v", snap.State)
	}
	if snap.State.BacktrackCount != 1 {
		t.Fatalf("backtrack count = %d, want client-side increment", snap.State.BacktrackCount)
	}
}

func TestBacktrackGuards(t *testing.T) {
	env := startedEnv(t)
	env.backend.nextResp = gameapi.NextTurnResponse{Response: "Onward.", Turn: 2}
	env.service.SendInput(context.Background(), "onward")

	t.Run("invalid target", func(t *testing.T) {
		for _, target := range []int{0, 2, 5} {
			snap := env.service.BacktrackToTurn(context.Background(), target)
			if want := env.msgs.Get(messages.ErrorBacktrackInvalid); snap.Error != want {
				t.Fatalf("target %d: error = %q, want %q", target, snap.Error, want)
			}
		}
		if env.backend.backtrackCalls != 0 {
			t.Fatal("backend called for invalid targets")
		}
	})

	t.Run("limit reached", func(t *testing.T) {
		restored := env.service.State().WithBacktrackCount(2)
		env.service.replaceState(context.Background(), restored)

		snap := env.service.BacktrackToTurn(context.Background(), 1)
		if want := env.msgs.Get(messages.ErrorBacktrackLimit); snap.Error != want {
			t.Fatalf("error = %q, want %q", snap.Error, want)
		}
	})
}

func TestEndGamePreservesHistory(t *testing.T) {
	env := startedEnv(t)
	env.backend.nextResp = gameapi.NextTurnResponse{Response: "A quiet clearing.", Turn: 2}
	env.service.SendInput(context.Background(), "rest")

	snap := env.service.EndGame(context.Background())
	if snap.Phase != PhaseGameOver || snap.Error != "" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if len(snap.State.History) != 2 {
		t.Fatalf("history = %d entries", len(snap.State.History))
	}
	if env.backend.endCalls != 1 || len(env.recorder.records) != 1 {
		t.Fatalf("endCalls = %d, records = %d", env.backend.endCalls, len(env.recorder.records))
	}
	if env.recorder.records[0].SessionID != "sess-1" {
		t.Fatalf("record = %+v", env.recorder.records[0])
	}
	if snap.TurnStatus != "" {
		t.Fatalf("turn status after game over = %q", snap.TurnStatus)
	}
}

func TestChoicesClamped(t *testing.T) {
	env := startedEnv(t)
	env.backend.nextResp = gameapi.NextTurnResponse{
		Response: "Paths branch in every direction.",
		Turn:     2,
		Choices:  []string{"north", "south", "east", "west", "up", "down"},
	}

	snap := env.service.SendInput(context.Background(), "look around")
	if len(snap.State.CurrentChoices) != 4 {
		t.Fatalf("choices = %v", snap.State.CurrentChoices)
	}
}

func TestEndGameAnnouncesFarewell(t *testing.T) {
	env := startedEnv(t)

	env.service.EndGame(context.Background())
	if got := env.announcer.Current(); got == "" {
		t.Fatal("no announcement after end game")
	}
}

func TestNewGameClearsState(t *testing.T) {
	env := startedEnv(t)

	snap := env.service.NewGame(context.Background())
	if snap.Phase != PhaseNotStarted || snap.State != nil || snap.Error != "" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if env.sessions.LoadGameState(context.Background()) != nil {
		t.Fatal("persisted state was not cleared")
	}
}

func TestBusyGuardRejectsSecondCall(t *testing.T) {
	backend := &fakeBackend{
		delay: 150 * time.Millisecond,
		startResp: gameapi.StartGameResponse{
			SessionID:  "sess-slow",
			StoryIntro: "Slowly, the stars appear.",
			Turn:       1,
		},
	}
	env := newTestEnv(t, backend)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		env.service.Start(context.Background(), "space")
	}()

	time.Sleep(30 * time.Millisecond)
	if !env.service.IsLoading() {
		t.Fatal("IsLoading() = false during an in-flight call")
	}

	snap := env.service.SendInput(context.Background(), "hello")
	if want := env.msgs.Get(messages.ErrorBusy); snap.Error != want {
		t.Fatalf("error = %q, want %q", snap.Error, want)
	}

	wg.Wait()
	if env.service.IsLoading() {
		t.Fatal("IsLoading() = true after completion")
	}
	if env.service.State() == nil {
		t.Fatal("first call should have completed")
	}
}

func TestSessionRestoredOnConstruction(t *testing.T) {
	env := startedEnv(t)
	env.backend.nextResp = gameapi.NextTurnResponse{Response: "The path splits.", Turn: 2}
	env.service.SendInput(context.Background(), "walk")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dict, _ := vocab.DefaultDictionary()
	revived := NewGameService(context.Background(), Options{
		Backend:   env.backend,
		Sessions:  env.sessions,
		Tracker:   vocab.NewTracker(dict.Size()),
		Extractor: vocab.NewExtractor(dict),
		Humanizer: gameapi.NewHumanizer(env.msgs),
		Messages:  env.msgs,
		Logger:    logger,
	})

	state := revived.State()
	if state == nil || state.SessionID != "sess-1" || state.Turn != 2 {
		t.Fatalf("restored state = %+v", state)
	}
}

func TestErrorAnnounced(t *testing.T) {
	env := newTestEnv(t, &fakeBackend{})
	ch, cancel := env.service.announcer.Subscribe()
	defer cancel()

	env.service.SendInput(context.Background(), "hello")

	select {
	case got := <-ch:
		if got.Priority != announce.PriorityAssertive {
			t.Fatalf("priority = %q", got.Priority)
		}
	case <-time.After(time.Second):
		t.Fatal("no error announcement")
	}
}
