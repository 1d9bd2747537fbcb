// Package repository: 완주 기록과 어휘 진행도 스냅샷의 GORM 기반 영속화.
package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	commonerrors "github.com/dyslexiquest/quest-engine-go/internal/common/errors"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/model"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/service"
)

// Repository: 장기 통계용 DB 접근 계층
type Repository struct {
	db *gorm.DB
}

// New: 새로운 Repository 인스턴스를 생성한다.
func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AutoMigrate: 자동으로 DB 테이블 스키마를 마이그레이션한다.
func (r *Repository) AutoMigrate(ctx context.Context) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("db is nil")
	}
	if err := r.db.WithContext(ctx).AutoMigrate(
		&FinishedGameRecord{},
		&ProgressSnapshot{},
	); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	return nil
}

// RecordFinishedGame: 완주 요약을 기록한다. 같은 세션의 중복 기록은 갱신으로 처리한다.
func (r *Repository) RecordFinishedGame(ctx context.Context, game service.FinishedGame) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("db is nil")
	}
	if game.SessionID == "" {
		return nil
	}

	entity := FinishedGameRecord{
		SessionID:    game.SessionID,
		Genre:        string(game.Genre),
		TurnsUsed:    game.TurnsUsed,
		Backtracks:   game.Backtracks,
		WordsLearned: game.WordsLearned,
		FinishedAt:   game.FinishedAt,
	}

	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"turns_used", "backtracks", "words_learned", "finished_at",
		}),
	}).Create(&entity).Error; err != nil {
		return commonerrors.DatabaseError{Operation: "record_finished_game", Err: err}
	}
	return nil
}

// SaveProgressSnapshot: 어휘 진행도의 현재 시점을 남긴다.
func (r *Repository) SaveProgressSnapshot(ctx context.Context, progress model.VocabularyProgress, now time.Time) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("db is nil")
	}

	entity := ProgressSnapshot{
		WordsLearned:     len(progress.WordsLearned),
		WordsMastered:    len(progress.WordsMastered),
		TotalGamesPlayed: progress.TotalGamesPlayed,
		CurrentStreak:    progress.CurrentStreak,
		BestStreak:       progress.BestStreak,
		RecordedAt:       now,
	}
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return commonerrors.DatabaseError{Operation: "save_progress_snapshot", Err: err}
	}
	return nil
}

// GenreStat: 장르별 완주 통계 집계 행
type GenreStat struct {
	Genre        string  `gorm:"column:genre" json:"genre"`
	GamesPlayed  int     `gorm:"column:games_played" json:"games_played"`
	AvgTurns     float64 `gorm:"column:avg_turns" json:"avg_turns"`
	AvgBacktrack float64 `gorm:"column:avg_backtrack" json:"avg_backtrack"`
	WordsLearned int     `gorm:"column:words_learned" json:"words_learned"`
}

// GenreStats: 장르별 완주 통계를 집계한다.
func (r *Repository) GenreStats(ctx context.Context) ([]GenreStat, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("db is nil")
	}

	var stats []GenreStat
	err := r.db.WithContext(ctx).
		Model(&FinishedGameRecord{}).
		Select("genre, COUNT(*) AS games_played, AVG(turns_used) AS avg_turns, " +
			"AVG(backtracks) AS avg_backtrack, SUM(words_learned) AS words_learned").
		Group("genre").
		Order("genre").
		Scan(&stats).Error
	if err != nil {
		return nil, commonerrors.DatabaseError{Operation: "genre_stats", Err: err}
	}
	return stats, nil
}

// RecentGames: 최근 완주 기록을 최신순으로 조회한다.
func (r *Repository) RecentGames(ctx context.Context, limit int) ([]FinishedGameRecord, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	if limit <= 0 {
		limit = 20
	}

	var records []FinishedGameRecord
	err := r.db.WithContext(ctx).
		Order("finished_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, commonerrors.DatabaseError{Operation: "recent_games", Err: err}
	}
	return records, nil
}
