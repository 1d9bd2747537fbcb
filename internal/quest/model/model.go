// Package model: 퀘스트 엔진의 핵심 도메인 모델(게임 상태, 턴, 장르)을 정의한다.
package model

import (
	"slices"
	"strings"
	"time"
)

// Genre: 모험 장르 타입
type Genre string

const (
	// GenreForest: 숲 속 모험
	GenreForest Genre = "forest"
	// GenreSpace: 우주 탐험
	GenreSpace Genre = "space"
	// GenreDungeon: 던전 탐사
	GenreDungeon Genre = "dungeon"
	// GenreMystery: 미스터리 추리
	GenreMystery Genre = "mystery"
)

// AllGenres: 지원하는 장르 전체 목록
func AllGenres() []Genre {
	return []Genre{GenreForest, GenreSpace, GenreDungeon, GenreMystery}
}

// ParseGenre: 문자열을 Genre로 변환한다. 알 수 없는 값이면 ok=false를 반환한다.
func ParseGenre(input string) (Genre, bool) {
	normalized := Genre(strings.ToLower(strings.TrimSpace(input)))
	switch normalized {
	case GenreForest, GenreSpace, GenreDungeon, GenreMystery:
		return normalized, true
	default:
		return "", false
	}
}

// GameTurn: 한 턴의 기록 (플레이어 선택과 그에 대한 서사 응답)
// 한 번 추가되면 변경되지 않는다. 되돌리기 시 꼬리 부분만 잘려 나간다.
type GameTurn struct {
	Turn            int       `json:"turn"`
	UserInput       string    `json:"user_input"`
	AIResponse      string    `json:"ai_response"`
	VocabularyWords []string  `json:"vocabulary_words,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// DefaultChoices: 백엔드가 선택지를 주지 않았을 때 사용하는 기본 선택지
func DefaultChoices() []string {
	return []string{
		"1. Explore further",
		"2. Look around carefully",
		"3. Talk to someone nearby",
		"4. Check your belongings",
	}
}

// GameState: 한 세션의 게임 진행 상황 전체를 담는 루트 상태 객체
// 세션 서비스가 단독으로 소유하며, 통째로 직렬화되어 저장된다.
type GameState struct {
	SessionID         string     `json:"session_id"`
	Turn              int        `json:"turn"`
	Genre             Genre      `json:"genre"`
	History           []GameTurn `json:"history"`
	VocabularyLearned []string   `json:"vocabulary_learned,omitempty"`
	GameOver          bool       `json:"game_over"`
	BacktrackCount    int        `json:"backtrack_count"`
	CurrentChoices    []string   `json:"current_choices,omitempty"`
}

// NewInitialState: 시작 턴 하나를 가진 새 게임 상태를 생성한다.
// 첫 턴의 user_input은 비어 있다.
func NewInitialState(sessionID string, genre Genre, intro string, choices []string) GameState {
	if len(choices) == 0 {
		choices = DefaultChoices()
	}
	return GameState{
		SessionID: sessionID,
		Turn:      1,
		Genre:     genre,
		History: []GameTurn{{
			Turn:       1,
			AIResponse: intro,
			Timestamp:  time.Now(),
		}},
		CurrentChoices: choices,
	}
}

// AppendTurn: 새 턴을 이력에 추가하고 상태를 갱신한다. (Immutable)
// 선택지가 비어 있으면 기본 선택지로 대체한다.
func (s GameState) AppendTurn(turn int, userInput, response string, vocabulary []string, gameOver bool, choices []string) GameState {
	entry := GameTurn{
		Turn:            turn,
		UserInput:       userInput,
		AIResponse:      response,
		VocabularyWords: slices.Clone(vocabulary),
		Timestamp:       time.Now(),
	}
	nextHistory := append(slices.Clone(s.History), entry)
	if len(choices) == 0 {
		choices = DefaultChoices()
	}
	return s.copyWith(func(next *GameState) {
		next.Turn = turn
		next.History = nextHistory
		next.GameOver = gameOver
		next.CurrentChoices = choices
	})
}

// MergeVocabulary: 새로 보고된 어휘를 소문자로 정규화하여 중복 없이 병합한다. (Immutable)
func (s GameState) MergeVocabulary(words []string) GameState {
	if len(words) == 0 {
		return s
	}
	merged := slices.Clone(s.VocabularyLearned)
	for _, word := range words {
		normalized := strings.ToLower(strings.TrimSpace(word))
		if normalized == "" {
			continue
		}
		if !slices.Contains(merged, normalized) {
			merged = append(merged, normalized)
		}
	}
	return s.copyWith(func(next *GameState) {
		next.VocabularyLearned = merged
	})
}

// MarkGameOver: 게임을 종료 상태로 변경한다. 이력은 그대로 유지된다. (Immutable)
func (s GameState) MarkGameOver() GameState {
	return s.copyWith(func(next *GameState) {
		next.GameOver = true
	})
}

// WithBacktrackCount: 되돌리기 소비 횟수를 설정한다. (Immutable)
// 복원된 상태에 클라이언트 측 카운트를 덧씌울 때 사용한다.
func (s GameState) WithBacktrackCount(count int) GameState {
	return s.copyWith(func(next *GameState) {
		next.BacktrackCount = count
	})
}

// CurrentNarrative: 마지막 턴의 서사 텍스트를 반환한다.
func (s GameState) CurrentNarrative() string {
	if len(s.History) == 0 {
		return ""
	}
	return s.History[len(s.History)-1].AIResponse
}

// CheckInvariants: 상태 불변식을 검사한다. 전이 후 검증용.
func (s GameState) CheckInvariants(maxBacktrack int) bool {
	if len(s.History) == 0 {
		return false
	}
	if s.History[0].Turn != 1 {
		return false
	}
	if s.Turn != s.History[len(s.History)-1].Turn {
		return false
	}
	if s.BacktrackCount < 0 || s.BacktrackCount > maxBacktrack {
		return false
	}
	return true
}

func (s GameState) copyWith(mut func(*GameState)) GameState {
	next := s
	mut(&next)
	return next
}
