package repository

import "time"

// FinishedGameRecord: 완주한 게임 한 판의 장기 기록
// 복합 인덱스: idx_finished_games_genre_stats (genre, finished_at)
type FinishedGameRecord struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	SessionID    string    `gorm:"column:session_id;not null;uniqueIndex"`
	Genre        string    `gorm:"column:genre;not null;index:idx_finished_games_genre_stats,priority:1"`
	TurnsUsed    int       `gorm:"column:turns_used;not null;default:0"`
	Backtracks   int       `gorm:"column:backtracks;not null;default:0"`
	WordsLearned int       `gorm:"column:words_learned;not null;default:0"`
	FinishedAt   time.Time `gorm:"column:finished_at;not null;index:idx_finished_games_genre_stats,priority:2"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

func (FinishedGameRecord) TableName() string { return "finished_games" }

// ProgressSnapshot: 어휘 진행도의 시점 스냅샷
// 학급 서버 배포에서 학습 추이를 되짚어 볼 때 사용한다.
type ProgressSnapshot struct {
	ID               uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	WordsLearned     int       `gorm:"column:words_learned;not null;default:0"`
	WordsMastered    int       `gorm:"column:words_mastered;not null;default:0"`
	TotalGamesPlayed int       `gorm:"column:total_games_played;not null;default:0"`
	CurrentStreak    int       `gorm:"column:current_streak;not null;default:0"`
	BestStreak       int       `gorm:"column:best_streak;not null;default:0"`
	RecordedAt       time.Time `gorm:"column:recorded_at;not null;index"`
	CreatedAt        time.Time `gorm:"column:created_at;not null;autoCreateTime"`
}

func (ProgressSnapshot) TableName() string { return "progress_snapshots" }
