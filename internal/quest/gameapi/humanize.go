package gameapi

import (
	"errors"
	"net/http"

	commonerrors "github.com/dyslexiquest/quest-engine-go/internal/common/errors"
	"github.com/dyslexiquest/quest-engine-go/internal/common/messageprovider"
	questerrors "github.com/dyslexiquest/quest-engine-go/internal/quest/errors"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/messages"
)

// Humanizer: 에러를 아이에게 보여 줄 수 있는 문구로 변환한다.
// 문자열 매칭 대신 에러 경계에서 태깅된 타입으로 분기한다.
type Humanizer struct {
	msgs *messageprovider.Provider
}

// NewHumanizer 는 동작을 수행한다.
func NewHumanizer(msgs *messageprovider.Provider) *Humanizer {
	return &Humanizer{msgs: msgs}
}

// Humanize: 에러 태그에 따라 사용자 노출 문구를 선택한다.
func (h *Humanizer) Humanize(err error) string {
	if err == nil {
		return ""
	}

	// 도메인 검증 에러: 네트워크 호출 없이 발생한 예상 가능한 상황
	switch {
	case errors.As(err, new(questerrors.EngineBusyError)):
		return h.msgs.Get(messages.ErrorBusy)
	case errors.As(err, new(questerrors.GameNotStartedError)):
		return h.msgs.Get(messages.ErrorNotStarted)
	case errors.As(err, new(questerrors.GameAlreadyStartedError)):
		return h.msgs.Get(messages.ErrorAlreadyStarted)
	case errors.As(err, new(questerrors.GameOverError)):
		return h.msgs.Get(messages.ErrorGameOver)
	case errors.As(err, new(questerrors.TurnLimitError)):
		return h.msgs.Get(messages.ErrorTurnLimit)
	case errors.As(err, new(questerrors.EmptyInputError)):
		return h.msgs.Get(messages.ErrorEmptyInput)
	case errors.As(err, new(questerrors.InvalidGenreError)):
		return h.msgs.Get(messages.ErrorInvalidGenre)
	case errors.As(err, new(questerrors.InvalidBacktrackError)):
		return h.msgs.Get(messages.ErrorBacktrackInvalid)
	case errors.As(err, new(questerrors.BacktrackLimitError)):
		return h.msgs.Get(messages.ErrorBacktrackLimit)
	}

	// 백엔드 경계에서 태깅된 에러
	if errors.As(err, new(commonerrors.NetworkError)) {
		return h.msgs.Get(messages.ErrorNetwork)
	}
	if status := commonerrors.HTTPStatusOf(err); status != 0 {
		switch {
		case status == http.StatusTooManyRequests:
			return h.msgs.Get(messages.ErrorRateLimited)
		case status >= 500:
			return h.msgs.Get(messages.ErrorServer)
		default:
			return h.msgs.Get(messages.ErrorGeneric)
		}
	}
	// 응답 본문 해석 실패 등 나머지 백엔드 경계 에러도 네트워크 문제로 안내한다.
	if commonerrors.IsBackendError(err) {
		return h.msgs.Get(messages.ErrorNetwork)
	}

	return h.msgs.Get(messages.ErrorGeneric)
}
