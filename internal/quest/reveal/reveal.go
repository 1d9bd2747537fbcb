// Package reveal: 서사 텍스트의 타자기 연출 스케줄러.
// 텍스트를 줄 기반 조각으로 나눠 일정한 간격으로 점진 공개한다.
package reveal

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dyslexiquest/quest-engine-go/internal/common/textutil"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/config"
)

// Frame: 공개 진행 중의 한 장면. Text는 지금까지 공개된 누적 텍스트다.
type Frame struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Scheduler 는 타입이다.
type Scheduler struct {
	chunkLength  int
	charInterval time.Duration
}

// NewScheduler: 공개 설정으로 스케줄러를 만든다.
func NewScheduler(cfg config.RevealConfig) *Scheduler {
	chunkLength := cfg.ChunkLength
	if chunkLength <= 0 {
		chunkLength = 80
	}
	charInterval := cfg.CharInterval
	if charInterval <= 0 {
		charInterval = 35 * time.Millisecond
	}
	return &Scheduler{chunkLength: chunkLength, charInterval: charInterval}
}

// Reveal: 텍스트 공개 스트림을 시작한다.
// skipAnimations가 참이면 전체 텍스트를 담은 완료 프레임 하나만 보낸다.
// 컨텍스트가 취소되면 남은 조각을 건너뛰고 채널을 닫는다.
func (s *Scheduler) Reveal(ctx context.Context, text string, skipAnimations bool) <-chan Frame {
	frames := make(chan Frame, 1)

	if skipAnimations || text == "" {
		frames <- Frame{Text: text, Done: true}
		close(frames)
		return frames
	}

	// 줄 기반 분할이 원문을 재구성하지 못하면(조각 길이를 넘는 줄이 있으면)
	// 룬 창 분할로 대체해 서사 텍스트가 잘리지 않게 한다.
	chunks := textutil.ChunkByLines(text, s.chunkLength)
	separator := "\n"
	if strings.Join(chunks, separator) != text {
		chunks = splitRunes(text, s.chunkLength)
		separator = ""
	}

	go func() {
		defer close(frames)

		revealed := ""
		for index, chunk := range chunks {
			if index > 0 {
				revealed += separator
			}
			revealed += chunk

			done := index == len(chunks)-1
			select {
			case frames <- Frame{Text: revealed, Done: done}:
			case <-ctx.Done():
				return
			}
			if done {
				return
			}

			if !s.waitChunk(ctx, chunk) {
				return
			}
		}
	}()

	return frames
}

// splitRunes: 텍스트를 maxLength 룬 단위의 창으로 자른다. 문자는 버리지 않는다.
func splitRunes(text string, maxLength int) []string {
	runes := []rune(text)
	chunks := make([]string, 0, len(runes)/maxLength+1)
	for start := 0; start < len(runes); start += maxLength {
		end := start + maxLength
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// waitChunk: 조각 길이에 비례한 간격만큼 대기한다. 취소되면 false를 반환한다.
func (s *Scheduler) waitChunk(ctx context.Context, chunk string) bool {
	delay := time.Duration(utf8.RuneCountInString(chunk)) * s.charInterval
	if delay <= 0 {
		return true
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
