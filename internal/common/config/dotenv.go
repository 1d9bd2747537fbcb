package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotenv: 작업 디렉터리의 .env 파일을 로드한다.
// 파일이 없는 것은 정상 상황이므로 조용히 넘어간다.
func LoadDotenv(logger *slog.Logger) {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(); err != nil {
		logger.Warn("dotenv_load_failed", "error", err)
		return
	}
	logger.Info("dotenv_loaded")
}
