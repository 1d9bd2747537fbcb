package config

import "time"

// ServerConfig: 로컬 HTTP 서버 바인딩 설정
type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
	UseH2C          bool
}

// ValkeyConfig: Valkey 연결 설정. Addr가 비어 있으면 Valkey 백엔드를 사용하지 않는다.
type ValkeyConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled: Valkey 백엔드 사용 여부를 반환한다.
func (c ValkeyConfig) Enabled() bool { return c.Addr != "" }

// DatabaseConfig: 학습 진행도 저장용 데이터베이스 설정
// Host가 비어 있으면 로컬 SQLite 파일을 사용한다.
type DatabaseConfig struct {
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SQLiteFile string
}

// UsePostgres: PostgreSQL 사용 여부를 반환한다.
func (c DatabaseConfig) UsePostgres() bool { return c.Host != "" }

// LogConfig: 로그 출력 설정 (터미널 + 파일 동시 출력)
type LogConfig struct {
	Level      string
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// TelemetryConfig: OTLP 트레이스 내보내기 설정. Endpoint가 비어 있으면 비활성화된다.
type TelemetryConfig struct {
	ServiceName string
	Endpoint    string
	SampleRatio float64
}

// Enabled: 트레이스 내보내기 활성화 여부를 반환한다.
func (c TelemetryConfig) Enabled() bool { return c.Endpoint != "" }
