package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/dyslexiquest/quest-engine-go/internal/quest/model"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/service"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	repo := New(db)
	if err := repo.AutoMigrate(context.Background()); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return repo
}

func finishedGame(sessionID string, genre model.Genre, turns int) service.FinishedGame {
	return service.FinishedGame{
		SessionID:    sessionID,
		Genre:        genre,
		TurnsUsed:    turns,
		Backtracks:   1,
		WordsLearned: 3,
		FinishedAt:   time.Now(),
	}
}

func TestRecordFinishedGame(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.RecordFinishedGame(ctx, finishedGame("sess-1", model.GenreForest, 10)); err != nil {
		t.Fatalf("RecordFinishedGame: %v", err)
	}

	games, err := repo.RecentGames(ctx, 10)
	if err != nil {
		t.Fatalf("RecentGames: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("games = %d", len(games))
	}
	if games[0].SessionID != "sess-1" || games[0].Genre != "forest" || games[0].TurnsUsed != 10 {
		t.Fatalf("record = %+v", games[0])
	}
}

func TestRecordFinishedGameUpsert(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.RecordFinishedGame(ctx, finishedGame("sess-1", model.GenreSpace, 5)); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if err := repo.RecordFinishedGame(ctx, finishedGame("sess-1", model.GenreSpace, 8)); err != nil {
		t.Fatalf("second record: %v", err)
	}

	games, err := repo.RecentGames(ctx, 10)
	if err != nil {
		t.Fatalf("RecentGames: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("games = %d, want the duplicate session collapsed", len(games))
	}
	if games[0].TurnsUsed != 8 {
		t.Fatalf("turns = %d, want the newer value", games[0].TurnsUsed)
	}
}

func TestRecordFinishedGameEmptySessionIgnored(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.RecordFinishedGame(ctx, finishedGame("", model.GenreForest, 3)); err != nil {
		t.Fatalf("RecordFinishedGame: %v", err)
	}
	games, err := repo.RecentGames(ctx, 10)
	if err != nil {
		t.Fatalf("RecentGames: %v", err)
	}
	if len(games) != 0 {
		t.Fatalf("games = %d, want 0", len(games))
	}
}

func TestGenreStats(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, game := range []service.FinishedGame{
		finishedGame("f-1", model.GenreForest, 10),
		finishedGame("f-2", model.GenreForest, 6),
		finishedGame("s-1", model.GenreSpace, 4),
	} {
		if err := repo.RecordFinishedGame(ctx, game); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	stats, err := repo.GenreStats(ctx)
	if err != nil {
		t.Fatalf("GenreStats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("stats = %+v", stats)
	}

	// 장르 오름차순 정렬: forest, space
	forest := stats[0]
	if forest.Genre != "forest" || forest.GamesPlayed != 2 || forest.AvgTurns != 8 {
		t.Fatalf("forest stat = %+v", forest)
	}
	if stats[1].Genre != "space" || stats[1].GamesPlayed != 1 {
		t.Fatalf("space stat = %+v", stats[1])
	}
}

func TestSaveProgressSnapshot(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	progress := model.VocabularyProgress{
		WordsLearned:     []string{"quest", "ancient"},
		WordsMastered:    []string{"quest"},
		TotalGamesPlayed: 4,
		CurrentStreak:    2,
		BestStreak:       5,
	}
	if err := repo.SaveProgressSnapshot(ctx, progress, time.Now()); err != nil {
		t.Fatalf("SaveProgressSnapshot: %v", err)
	}

	var snapshots []ProgressSnapshot
	if err := repo.db.WithContext(ctx).Find(&snapshots).Error; err != nil {
		t.Fatalf("find snapshots: %v", err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("snapshots = %d", len(snapshots))
	}
	got := snapshots[0]
	if got.WordsLearned != 2 || got.WordsMastered != 1 || got.BestStreak != 5 {
		t.Fatalf("snapshot = %+v", got)
	}
}
