// Package gameapi: 스토리 생성 백엔드의 REST 표면을 감싸는 클라이언트.
package gameapi

import "github.com/dyslexiquest/quest-engine-go/internal/quest/model"

// StartGameRequest: POST /api/start 요청 바디
type StartGameRequest struct {
	Genre model.Genre `json:"genre"`
}

// StartGameResponse: 새 세션 시작 응답
type StartGameResponse struct {
	SessionID  string   `json:"session_id"`
	StoryIntro string   `json:"story_intro"`
	Turn       int      `json:"turn"`
	Choices    []string `json:"choices,omitempty"`
}

// NextTurnRequest: POST /api/next 요청 바디
type NextTurnRequest struct {
	SessionID string `json:"session_id"`
	UserInput string `json:"user_input"`
	Turn      int    `json:"turn"`
}

// NextTurnResponse: 다음 턴 진행 응답
type NextTurnResponse struct {
	Response        string   `json:"response"`
	Turn            int      `json:"turn"`
	VocabularyWords []string `json:"vocabulary_words,omitempty"`
	GameOver        bool     `json:"game_over"`
	Choices         []string `json:"choices,omitempty"`
}

// BacktrackRequest: POST /api/backtrack 요청 바디
type BacktrackRequest struct {
	SessionID  string `json:"session_id"`
	TargetTurn int    `json:"target_turn"`
}

// BacktrackResponse: 되돌리기 응답. 복원된 상태는 백엔드가 준 그대로 사용한다.
type BacktrackResponse struct {
	RestoredState model.GameState `json:"restored_state"`
	Message       string          `json:"message"`
}

// EndGameRequest: POST /api/end 요청 바디
type EndGameRequest struct {
	SessionID string `json:"session_id"`
}

// EndGameResponse: 세션 종료 응답
type EndGameResponse struct {
	Message string `json:"message"`
}

// HealthResponse: GET /api/health 응답
type HealthResponse struct {
	Status          string `json:"status"`
	GeminiAvailable bool   `json:"gemini_available"`
}

// Healthy: 백엔드가 정상 상태인지 확인한다.
func (r HealthResponse) Healthy() bool {
	return r.Status == "healthy"
}
