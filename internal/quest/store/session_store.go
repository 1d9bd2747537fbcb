package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"

	"github.com/dyslexiquest/quest-engine-go/internal/quest/model"
)

// SessionStore: 원시 KV 위에서 타입별 직렬화, 형태 검증, fail-soft 정책을 적용하는 계층.
// 손상된 데이터와 없는 데이터는 동일하게 취급된다. 쓰기 실패는 로그만 남기고 전파하지 않는다.
type SessionStore struct {
	kv     KV
	logger *slog.Logger
}

// NewSessionStore 는 동작을 수행한다.
func NewSessionStore(kv KV, logger *slog.Logger) *SessionStore {
	return &SessionStore{kv: kv, logger: logger}
}

// LoadGameState: 저장된 게임 상태를 읽는다.
// 없거나, JSON이 손상되었거나, 필수 필드의 형태가 틀리면 nil을 반환한다.
func (s *SessionStore) LoadGameState(ctx context.Context) *model.GameState {
	raw := s.readSoft(ctx, KeyGameState)
	if raw == nil {
		return nil
	}
	if !validGameStateShape(raw) {
		s.logger.Warn("game_state_corrupted", "key", KeyGameState)
		return nil
	}
	var state model.GameState
	if err := json.Unmarshal(raw, &state); err != nil {
		s.logger.Warn("game_state_decode_failed", "key", KeyGameState, "error", err)
		return nil
	}
	return &state
}

// SaveGameState: 게임 상태를 저장한다. 실패는 경고 로그로만 남는다.
func (s *SessionStore) SaveGameState(ctx context.Context, state model.GameState) {
	s.writeSoft(ctx, KeyGameState, state)
}

// ClearGameState: 저장된 게임 상태를 제거한다.
func (s *SessionStore) ClearGameState(ctx context.Context) {
	if err := s.kv.Delete(ctx, KeyGameState); err != nil {
		s.logger.Warn("store_delete_failed", "key", KeyGameState, "error", err)
	}
}

// LoadSettings: 접근성 설정을 읽는다. 없거나 손상 시 기본값을 반환한다.
func (s *SessionStore) LoadSettings(ctx context.Context) model.AccessibilitySettings {
	raw := s.readSoft(ctx, KeySettings)
	if raw == nil {
		return model.DefaultSettings()
	}
	var settings model.AccessibilitySettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		s.logger.Warn("settings_decode_failed", "error", err)
		return model.DefaultSettings()
	}
	return settings.Normalize()
}

// SaveSettings 는 동작을 수행한다.
func (s *SessionStore) SaveSettings(ctx context.Context, settings model.AccessibilitySettings) {
	s.writeSoft(ctx, KeySettings, settings.Normalize())
}

// LoadTheme: 선택된 모험 테마를 읽는다. 없으면 빈 문자열.
func (s *SessionStore) LoadTheme(ctx context.Context) string {
	raw := s.readSoft(ctx, KeyTheme)
	if raw == nil {
		return ""
	}
	var theme string
	if err := json.Unmarshal(raw, &theme); err != nil {
		s.logger.Warn("theme_decode_failed", "error", err)
		return ""
	}
	return theme
}

// SaveTheme 는 동작을 수행한다.
func (s *SessionStore) SaveTheme(ctx context.Context, theme string) {
	s.writeSoft(ctx, KeyTheme, theme)
}

// LoadProgress: 어휘 진행 상황을 읽는다. 없거나 형태가 틀리면 nil.
func (s *SessionStore) LoadProgress(ctx context.Context) *model.VocabularyProgress {
	raw := s.readSoft(ctx, KeyVocabProgress)
	if raw == nil {
		return nil
	}
	if !validProgressShape(raw) {
		s.logger.Warn("progress_corrupted", "key", KeyVocabProgress)
		return nil
	}
	var progress model.VocabularyProgress
	if err := json.Unmarshal(raw, &progress); err != nil {
		s.logger.Warn("progress_decode_failed", "error", err)
		return nil
	}
	return &progress
}

// SaveProgress 는 동작을 수행한다.
func (s *SessionStore) SaveProgress(ctx context.Context, progress model.VocabularyProgress) {
	s.writeSoft(ctx, KeyVocabProgress, progress)
}

// Probe: 스코프 키에 쓰고 지워서 저장소 가용성을 확인한다.
// 사설 브라우징 같은 쓰기 불가 환경을 미리 감지하는 용도다.
func (s *SessionStore) Probe(ctx context.Context) bool {
	if err := s.kv.Write(ctx, probeKey, []byte(`"ok"`)); err != nil {
		s.logger.Warn("storage_probe_failed", "error", err)
		return false
	}
	if err := s.kv.Delete(ctx, probeKey); err != nil {
		s.logger.Warn("storage_probe_cleanup_failed", "error", err)
	}
	return true
}

// Usage: 네임스페이스 전체의 키+값 길이 합을 반환한다.
func (s *SessionStore) Usage(ctx context.Context) int {
	entries, err := s.kv.Entries(ctx)
	if err != nil {
		s.logger.Warn("storage_usage_failed", "error", err)
		return 0
	}
	total := 0
	for key, size := range entries {
		total += len(key) + size
	}
	return total
}

func (s *SessionStore) readSoft(ctx context.Context, key string) []byte {
	raw, err := s.kv.Read(ctx, key)
	if err != nil {
		s.logger.Warn("store_read_failed", "key", key, "error", err)
		return nil
	}
	return raw
}

func (s *SessionStore) writeSoft(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("store_encode_failed", "key", key, "error", err)
		return
	}
	if err := s.kv.Write(ctx, key, raw); err != nil {
		s.logger.Warn("store_write_failed", "key", key, "error", err)
	}
}

// validGameStateShape: session_id 문자열, turn 숫자, history 배열을 요구한다.
func validGameStateShape(raw []byte) bool {
	var probe map[string]any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	if _, ok := probe["session_id"].(string); !ok {
		return false
	}
	switch probe["turn"].(type) {
	case float64, int, int64, json.Number:
	default:
		return false
	}
	if _, ok := probe["history"].([]any); !ok {
		return false
	}
	return true
}

// validProgressShape: 세 추적 집합이 배열이고 카운터가 숫자여야 한다.
func validProgressShape(raw []byte) bool {
	var probe map[string]any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	for _, field := range []string{"words_learned", "definitions_viewed", "words_mastered"} {
		if _, ok := probe[field].([]any); !ok {
			return false
		}
	}
	switch probe["total_games_played"].(type) {
	case float64, int, int64, json.Number:
		return true
	default:
		return false
	}
}

// backupEnvelope: 내보내기 블롭에만 존재하는 북키핑 필드를 포함한다.
type backupEnvelope struct {
	model.GameState
	BackupTimestamp time.Time `json:"backup_timestamp"`
}

// CreateBackup: 게임 상태를 내보내기용 문자열 블롭으로 직렬화한다.
func CreateBackup(state model.GameState) (string, error) {
	raw, err := json.Marshal(backupEnvelope{GameState: state, BackupTimestamp: time.Now()})
	if err != nil {
		return "", fmt.Errorf("create backup failed: %w", err)
	}
	return string(raw), nil
}

// RestoreBackup: 블롭에서 상태를 복원한다. backup_timestamp는 버려진다.
func RestoreBackup(blob string) (*model.GameState, error) {
	if !validGameStateShape([]byte(blob)) {
		return nil, fmt.Errorf("backup blob has invalid shape")
	}
	var envelope backupEnvelope
	if err := json.Unmarshal([]byte(blob), &envelope); err != nil {
		return nil, fmt.Errorf("restore backup failed: %w", err)
	}
	return &envelope.GameState, nil
}
