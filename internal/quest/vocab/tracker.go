package vocab

import (
	"math"
	"slices"
	"sync"
	"time"

	"github.com/dyslexiquest/quest-engine-go/internal/quest/model"
)

// Tracker: 어휘 학습 진행 상황을 소유하고 갱신한다.
// 모든 변경 연산은 멱등이며, 소문자 정규화 후 집합에 반영된다.
type Tracker struct {
	mu       sync.Mutex
	progress model.VocabularyProgress
	dictSize int
}

// NewTracker 는 동작을 수행한다.
func NewTracker(dictSize int) *Tracker {
	return &Tracker{
		progress: model.NewVocabularyProgress(),
		dictSize: dictSize,
	}
}

// Restore: 저장소에서 읽어 온 진행 상황으로 교체한다.
// 스트릭은 복원 시 초기화하지 않는다. 새 게임 시작 시에만 초기화된다.
func (t *Tracker) Restore(p model.VocabularyProgress) {
	t.mu.Lock()
	defer t.mu.Unlock()
	restored := p.Clone()
	if restored.WordsLearned == nil {
		restored.WordsLearned = []string{}
	}
	if restored.DefinitionsViewed == nil {
		restored.DefinitionsViewed = []string{}
	}
	if restored.WordsMastered == nil {
		restored.WordsMastered = []string{}
	}
	t.progress = restored
}

// AddLearnedWord: 단어를 학습 집합에 추가한다. 최초 추가일 때만 스트릭이 증가하며
// 최고 스트릭은 최댓값으로 갱신된다. 최초 추가 여부를 반환한다.
func (t *Tracker) AddLearnedWord(word string) bool {
	normalized := NormalizeWord(word)
	if normalized == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if slices.Contains(t.progress.WordsLearned, normalized) {
		return false
	}
	t.progress.WordsLearned = append(t.progress.WordsLearned, normalized)
	t.progress.CurrentStreak++
	if t.progress.CurrentStreak > t.progress.BestStreak {
		t.progress.BestStreak = t.progress.CurrentStreak
	}
	return true
}

// MarkDefinitionViewed: 정의를 열람한 단어를 기록한다. 멱등.
func (t *Tracker) MarkDefinitionViewed(word string) {
	t.addToSet(&t.progress.DefinitionsViewed, word)
}

// MarkMastered: 완전히 익힌 단어를 기록한다. 멱등.
func (t *Tracker) MarkMastered(word string) {
	t.addToSet(&t.progress.WordsMastered, word)
}

func (t *Tracker) addToSet(set *[]string, word string) {
	normalized := NormalizeWord(word)
	if normalized == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if !slices.Contains(*set, normalized) {
		*set = append(*set, normalized)
	}
}

// ResetStreak: 현재 스트릭만 0으로 되돌린다. 최고 스트릭과 집합은 유지된다.
func (t *Tracker) ResetStreak() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress.CurrentStreak = 0
}

// RecordGamePlayed: 게임 종료 시 플레이 횟수와 마지막 플레이 시각을 갱신한다.
func (t *Tracker) RecordGamePlayed() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress.TotalGamesPlayed++
	t.progress.LastPlayed = time.Now()
}

// Progress: 진행 상황의 방어적 복사본을 반환한다.
func (t *Tracker) Progress() model.VocabularyProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress.Clone()
}

// Stats: 진행 요약 통계
type Stats struct {
	WordsLearned      int `json:"words_learned"`
	DefinitionsViewed int `json:"definitions_viewed"`
	WordsMastered     int `json:"words_mastered"`
	TotalGamesPlayed  int `json:"total_games_played"`
	CurrentStreak     int `json:"current_streak"`
	BestStreak        int `json:"best_streak"`
	CompletionPercent int `json:"completion_percent"`
}

// Stats: 개수 집계와 사전 대비 완성률(%)을 반환한다.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	completion := 0
	if t.dictSize > 0 {
		completion = int(math.Round(float64(len(t.progress.WordsLearned)) / float64(t.dictSize) * 100))
	}
	return Stats{
		WordsLearned:      len(t.progress.WordsLearned),
		DefinitionsViewed: len(t.progress.DefinitionsViewed),
		WordsMastered:     len(t.progress.WordsMastered),
		TotalGamesPlayed:  t.progress.TotalGamesPlayed,
		CurrentStreak:     t.progress.CurrentStreak,
		BestStreak:        t.progress.BestStreak,
		CompletionPercent: completion,
	}
}
