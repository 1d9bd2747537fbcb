// Package announce: 스크린 리더 라이브 영역에 대응하는 알림 채널.
// 주요 상태 변화마다 일시적인 문구를 흘려보내고, 짧은 시간 뒤 현재 값을 비운다.
package announce

import (
	"sync"
	"time"
)

// Priority: 알림 우선순위. 라이브 영역의 polite/assertive에 대응한다.
type Priority string

// Priority 상수 목록.
const (
	PriorityPolite    Priority = "polite"
	PriorityAssertive Priority = "assertive"
)

// DefaultClearDelay: 알림이 현재 값에서 비워지기까지의 시간
const DefaultClearDelay = 100 * time.Millisecond

// Announcement: 한 건의 알림
type Announcement struct {
	Priority Priority  `json:"priority"`
	Message  string    `json:"message"`
	At       time.Time `json:"at"`
}

// Announcer: 구독자들에게 알림을 전달하고 현재 값을 관리한다.
type Announcer struct {
	mu         sync.Mutex
	current    string
	clearDelay time.Duration
	clearTimer *time.Timer
	subs       map[int]chan Announcement
	nextSubID  int
}

// NewAnnouncer 는 동작을 수행한다. clearDelay가 0 이하이면 기본값을 쓴다.
func NewAnnouncer(clearDelay time.Duration) *Announcer {
	if clearDelay <= 0 {
		clearDelay = DefaultClearDelay
	}
	return &Announcer{
		clearDelay: clearDelay,
		subs:       make(map[int]chan Announcement),
	}
}

// Announce: 알림을 현재 값으로 만들고 구독자들에게 전달한다.
// 전달은 논블로킹이다. 수신이 느린 구독자는 해당 알림을 놓친다.
func (a *Announcer) Announce(priority Priority, message string) {
	if message == "" {
		return
	}

	entry := Announcement{Priority: priority, Message: message, At: time.Now()}

	a.mu.Lock()
	a.current = message
	if a.clearTimer != nil {
		a.clearTimer.Stop()
	}
	a.clearTimer = time.AfterFunc(a.clearDelay, a.clearCurrent)
	for _, ch := range a.subs {
		select {
		case ch <- entry:
		default:
		}
	}
	a.mu.Unlock()
}

func (a *Announcer) clearCurrent() {
	a.mu.Lock()
	a.current = ""
	a.mu.Unlock()
}

// Current: 라이브 영역의 현재 텍스트. 비워진 뒤에는 빈 문자열이다.
func (a *Announcer) Current() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Subscribe: 알림 스트림을 구독한다. 반환된 함수로 구독을 해지한다.
func (a *Announcer) Subscribe() (<-chan Announcement, func()) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.nextSubID
	a.nextSubID++
	ch := make(chan Announcement, 16)
	a.subs[id] = ch

	cancel := func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if sub, ok := a.subs[id]; ok {
			delete(a.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}
