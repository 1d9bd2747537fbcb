package config

import "time"

// ReadServerConfigFromEnv: HTTP 서버 설정을 환경 변수에서 읽는다.
func ReadServerConfigFromEnv(portKey string, defaultPort int) ServerConfig {
	return ServerConfig{
		Host:            StringFromEnv("SERVER_HOST", "127.0.0.1"),
		Port:            IntFromEnv(portKey, defaultPort),
		ShutdownTimeout: DurationFromEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		UseH2C:          BoolFromEnv("SERVER_H2C", false),
	}
}

// ReadValkeyConfigFromEnv: Valkey 설정을 환경 변수에서 읽는다.
// VALKEY_* 키를 우선하고 REDIS_* 키도 허용한다.
func ReadValkeyConfigFromEnv() ValkeyConfig {
	return ValkeyConfig{
		Addr:     StringFromEnvFirstNonEmpty("", "VALKEY_ADDR", "REDIS_ADDR"),
		Password: StringFromEnvFirstNonEmpty("", "VALKEY_PASSWORD", "REDIS_PASSWORD"),
		DB:       IntFromEnv("VALKEY_DB", 0),
	}
}

// ReadDatabaseConfigFromEnv: 데이터베이스 설정을 환경 변수에서 읽는다.
func ReadDatabaseConfigFromEnv(defaultSQLiteFile string) DatabaseConfig {
	return DatabaseConfig{
		Host:       StringFromEnv("DB_HOST", ""),
		Port:       IntFromEnv("DB_PORT", 5432),
		User:       StringFromEnv("DB_USER", "quest"),
		Password:   StringFromEnv("DB_PASSWORD", ""),
		Name:       StringFromEnv("DB_NAME", "quest"),
		SQLiteFile: StringFromEnv("DB_SQLITE_FILE", defaultSQLiteFile),
	}
}

// ReadLogConfigFromEnv: 로그 설정을 환경 변수에서 읽는다.
func ReadLogConfigFromEnv(defaultFilePath string) LogConfig {
	return LogConfig{
		Level:      StringFromEnv("LOG_LEVEL", "info"),
		FilePath:   StringFromEnv("LOG_FILE", defaultFilePath),
		MaxSizeMB:  IntFromEnv("LOG_MAX_SIZE_MB", 20),
		MaxBackups: IntFromEnv("LOG_MAX_BACKUPS", 5),
		MaxAgeDays: IntFromEnv("LOG_MAX_AGE_DAYS", 14),
	}
}

// ReadTelemetryConfigFromEnv: OTLP 트레이스 설정을 환경 변수에서 읽는다.
func ReadTelemetryConfigFromEnv(serviceName string) TelemetryConfig {
	return TelemetryConfig{
		ServiceName: StringFromEnv("OTEL_SERVICE_NAME", serviceName),
		Endpoint:    StringFromEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		SampleRatio: FloatFromEnv("OTEL_TRACES_SAMPLE_RATIO", 1.0),
	}
}
