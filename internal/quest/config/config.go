package config

import (
	"time"

	commonconfig "github.com/dyslexiquest/quest-engine-go/internal/common/config"
)

// ServerConfig: 로컬 HTTP 서버 설정입니다.
type ServerConfig = commonconfig.ServerConfig

// ValkeyConfig: Valkey 저장소 백엔드 설정입니다.
type ValkeyConfig = commonconfig.ValkeyConfig

// DatabaseConfig: 진행도 기록용 데이터베이스 설정입니다.
type DatabaseConfig = commonconfig.DatabaseConfig

// LogConfig: 로그 출력 설정입니다.
type LogConfig = commonconfig.LogConfig

// BackendConfig: 스토리 생성 백엔드 API 통신 설정입니다.
type BackendConfig struct {
	BaseURL        string
	Timeout        time.Duration
	ConnectTimeout time.Duration
	HTTP2Enabled   bool
	RetryAttempts  int
	RetryBaseDelay time.Duration
}

// StoreConfig: 로컬 키-값 저장소 설정입니다.
type StoreConfig struct {
	// DataDir: 파일 백엔드의 데이터 디렉터리
	DataDir string
	// TTL: Valkey 백엔드 키 만료 시간 (0이면 만료 없음)
	TTL time.Duration
}

// RevealConfig: 타자기 연출 설정입니다.
type RevealConfig struct {
	ChunkLength  int
	CharInterval time.Duration
}

// Config: 퀘스트 엔진 전체 설정을 통합하는 구조체입니다.
type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	Store     StoreConfig
	Valkey    ValkeyConfig
	Database  DatabaseConfig
	Reveal    RevealConfig
	Log       LogConfig
	Telemetry commonconfig.TelemetryConfig
}

// LoadFromEnv: 환경 변수에서 전체 설정을 읽어옵니다.
func LoadFromEnv() (*Config, error) {
	return &Config{
		Server:    commonconfig.ReadServerConfigFromEnv("ENGINE_PORT", 8790),
		Backend:   readBackendConfig(),
		Store:     readStoreConfig(),
		Valkey:    commonconfig.ReadValkeyConfigFromEnv(),
		Database:  commonconfig.ReadDatabaseConfigFromEnv("data/quest.db"),
		Reveal:    readRevealConfig(),
		Log:       commonconfig.ReadLogConfigFromEnv("logs/quest-engine.log"),
		Telemetry: commonconfig.ReadTelemetryConfigFromEnv(ServiceName),
	}, nil
}

func readBackendConfig() BackendConfig {
	return BackendConfig{
		BaseURL:        commonconfig.StringFromEnvFirstNonEmpty("http://localhost:8000", "BACKEND_BASE_URL", "API_BASE_URL"),
		Timeout:        commonconfig.DurationFromEnv("BACKEND_TIMEOUT", 30*time.Second),
		ConnectTimeout: commonconfig.DurationFromEnv("BACKEND_CONNECT_TIMEOUT", 5*time.Second),
		HTTP2Enabled:   commonconfig.BoolFromEnv("BACKEND_HTTP2", false),
		RetryAttempts:  commonconfig.IntFromEnv("BACKEND_RETRY_ATTEMPTS", 3),
		RetryBaseDelay: commonconfig.DurationFromEnv("BACKEND_RETRY_BASE_DELAY", time.Second),
	}
}

func readStoreConfig() StoreConfig {
	return StoreConfig{
		DataDir: commonconfig.StringFromEnv("STORE_DATA_DIR", "data/store"),
		TTL:     commonconfig.DurationFromEnv("STORE_TTL", 0),
	}
}

func readRevealConfig() RevealConfig {
	return RevealConfig{
		ChunkLength:  commonconfig.IntFromEnv("REVEAL_CHUNK_LENGTH", 80),
		CharInterval: commonconfig.DurationFromEnv("REVEAL_CHAR_INTERVAL", 35*time.Millisecond),
	}
}
