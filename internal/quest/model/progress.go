package model

import (
	"slices"
	"time"
)

// VocabularyProgress: 어휘 학습 진행 상황 집계
// 게임 상태와는 별도로 저장되며, 어휘 엔진이 소유한다.
type VocabularyProgress struct {
	WordsLearned      []string  `json:"words_learned"`
	DefinitionsViewed []string  `json:"definitions_viewed"`
	WordsMastered     []string  `json:"words_mastered"`
	TotalGamesPlayed  int       `json:"total_games_played"`
	LastPlayed        time.Time `json:"last_played,omitempty"`
	CurrentStreak     int       `json:"current_streak"`
	BestStreak        int       `json:"best_streak"`
}

// NewVocabularyProgress: 빈 기본값으로 진행 상황을 생성한다.
func NewVocabularyProgress() VocabularyProgress {
	return VocabularyProgress{
		WordsLearned:      []string{},
		DefinitionsViewed: []string{},
		WordsMastered:     []string{},
	}
}

// Clone: 방어적 복사본을 반환한다. 외부에 내부 슬라이스가 노출되지 않도록 한다.
func (p VocabularyProgress) Clone() VocabularyProgress {
	next := p
	next.WordsLearned = slices.Clone(p.WordsLearned)
	next.DefinitionsViewed = slices.Clone(p.DefinitionsViewed)
	next.WordsMastered = slices.Clone(p.WordsMastered)
	return next
}
