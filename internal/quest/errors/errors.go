// Package errors: 게임 세션 전이 과정에서 발생하는 도메인 에러 타입을 정의한다.
// 사용자 행동으로 인한 예상 가능한 에러와 내부 오류를 구분하여 로그 레벨 결정에 사용한다.
package errors

import (
	"errors"
	"fmt"
)

// GameNotStartedError: 시작되지 않은 세션에 대해 진행 조작이 요청되었을 때
type GameNotStartedError struct{}

func (e GameNotStartedError) Error() string { return "game not started" }

// GameAlreadyStartedError: 이미 진행 중인 세션에서 다시 시작이 요청되었을 때
type GameAlreadyStartedError struct {
	SessionID string
}

func (e GameAlreadyStartedError) Error() string {
	return fmt.Sprintf("game already started session=%s", e.SessionID)
}

// GameOverError: 이미 종료된 게임에 입력이 들어왔을 때
type GameOverError struct{}

func (e GameOverError) Error() string { return "game is over" }

// TurnLimitError: 최대 턴 수에 도달한 뒤 입력이 들어왔을 때
type TurnLimitError struct {
	MaxTurns int
}

func (e TurnLimitError) Error() string {
	return fmt.Sprintf("turn limit reached max_turns=%d", e.MaxTurns)
}

// EmptyInputError: 공백 제거 후 입력이 비어 있을 때
type EmptyInputError struct{}

func (e EmptyInputError) Error() string { return "input is empty after trimming" }

// InvalidGenreError: 지원하지 않는 장르가 요청되었을 때
type InvalidGenreError struct {
	Genre string
}

func (e InvalidGenreError) Error() string {
	return fmt.Sprintf("invalid genre %q", e.Genre)
}

// InvalidBacktrackError: 되돌리기 대상 턴이 1 <= t < turn 범위를 벗어났을 때
type InvalidBacktrackError struct {
	Target      int
	CurrentTurn int
}

func (e InvalidBacktrackError) Error() string {
	return fmt.Sprintf("invalid backtrack target=%d current_turn=%d", e.Target, e.CurrentTurn)
}

// BacktrackLimitError: 되돌리기 허용 횟수를 모두 소진했을 때
type BacktrackLimitError struct {
	Limit int
}

func (e BacktrackLimitError) Error() string {
	return fmt.Sprintf("backtrack limit reached limit=%d", e.Limit)
}

// EngineBusyError: 다른 세션 변경 작업이 진행 중인 상태에서 새 작업이 요청되었을 때
// 단일 슬롯 가드가 두 번째 호출을 거절할 때 반환된다.
type EngineBusyError struct{}

func (e EngineBusyError) Error() string { return "another operation is in flight" }

// IsExpectedUserBehavior: 에러가 사용자의 정상적인 (혹은 예상 가능한) 행동으로
// 인한 것인지 판단한다. true면 경고 대신 정보 수준으로 로깅한다.
func IsExpectedUserBehavior(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.As(err, new(GameNotStartedError)):
		return true
	case errors.As(err, new(GameAlreadyStartedError)):
		return true
	case errors.As(err, new(GameOverError)):
		return true
	case errors.As(err, new(TurnLimitError)):
		return true
	case errors.As(err, new(EmptyInputError)):
		return true
	case errors.As(err, new(InvalidGenreError)):
		return true
	case errors.As(err, new(InvalidBacktrackError)):
		return true
	case errors.As(err, new(BacktrackLimitError)):
		return true
	case errors.As(err, new(EngineBusyError)):
		return true
	default:
		return false
	}
}
