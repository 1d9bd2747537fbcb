// Package messages: yaml 메시지 팩의 키 상수를 정의한다.
// 사용자에게 노출되는 모든 문구는 이 키를 통해 조회한다.
package messages

// 에러 안내 문구 (humanization)
const (
	ErrorNetwork     = "errors.network"
	ErrorRateLimited = "errors.rate_limited"
	ErrorServer      = "errors.server"
	ErrorGeneric     = "errors.generic"

	ErrorBusy             = "errors.busy"
	ErrorNotStarted       = "errors.not_started"
	ErrorAlreadyStarted   = "errors.already_started"
	ErrorGameOver         = "errors.game_over"
	ErrorTurnLimit        = "errors.turn_limit"
	ErrorEmptyInput       = "errors.empty_input"
	ErrorInvalidGenre     = "errors.invalid_genre"
	ErrorBacktrackInvalid = "errors.backtrack_invalid"
	ErrorBacktrackLimit   = "errors.backtrack_limit"
)

// 접근성 알림 문구
const (
	AnnounceGameStarted  = "announce.game_started"
	AnnounceNewNarrative = "announce.new_narrative"
	AnnounceVocabLearned = "announce.vocabulary_learned"
	AnnounceError        = "announce.error"
	AnnounceBacktrack    = "announce.backtrack"
	AnnounceGameEnded    = "announce.game_ended"
)

// 게임 진행 문구
const (
	GameEndedFallback = "game.ended_fallback"
	GameTurnStatus    = "game.turn_status"
)
