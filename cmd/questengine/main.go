package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dyslexiquest/quest-engine-go/internal/common/bootstrap"
	"github.com/dyslexiquest/quest-engine-go/internal/common/health"
	qapp "github.com/dyslexiquest/quest-engine-go/internal/quest/app"
	qconfig "github.com/dyslexiquest/quest-engine-go/internal/quest/config"
)

// Version: 빌드 시 ldflags로 주입됨 (예: -ldflags="-X main.Version=1.0.0")
var Version = "dev"

func main() {
	health.Init(Version)
	qapp.Version = Version

	logger := bootstrap.NewLogger()
	slog.SetDefault(logger)

	finalLogger, err := bootstrap.RunEngineEntrypoint(
		context.Background(),
		logger,
		qconfig.LoadFromEnv,
		func(cfg *qconfig.Config) qconfig.LogConfig { return cfg.Log },
		true,
		qapp.Initialize,
	)
	if err != nil {
		logger = finalLogger
		logger.Error("fatal", "err", err)
		os.Exit(1)
	}
}
