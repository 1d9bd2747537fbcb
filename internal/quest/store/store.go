// Package store: 게임 상태, 테마, 접근성 설정, 어휘 진행 상황의 키-값 영속화를 담당한다.
// 파일 백엔드(기본)와 Valkey 백엔드(공유 배포)를 같은 인터페이스 뒤에 둔다.
package store

import "context"

// 고정 저장 키: 관심사마다 하나씩.
const (
	KeyGameState     = "game_state"
	KeyTheme         = "adventure_theme"
	KeySettings      = "settings"
	KeyVocabProgress = "vocabulary_progress"
)

// probeKey: 저장소 가용성 점검용 스코프 키
const probeKey = "storage_probe"

// KV: 네임스페이스 하나에 대한 원시 키-값 저장소.
// Read는 키가 없으면 (nil, nil)을 반환한다.
type KV interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Entries: 네임스페이스 내 모든 키와 값 크기를 반환한다. 사용량 집계용.
	Entries(ctx context.Context) (map[string]int, error)
}
