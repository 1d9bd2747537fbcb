// Package app: 퀘스트 엔진의 구성 요소 조립.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dyslexiquest/quest-engine-go/internal/common/bootstrap"
	"github.com/dyslexiquest/quest-engine-go/internal/common/httpclient"
	"github.com/dyslexiquest/quest-engine-go/internal/common/httpserver"
	"github.com/dyslexiquest/quest-engine-go/internal/common/messageprovider"
	"github.com/dyslexiquest/quest-engine-go/internal/common/retrier"
	"github.com/dyslexiquest/quest-engine-go/internal/common/telemetry"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/announce"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/assets"
	qconfig "github.com/dyslexiquest/quest-engine-go/internal/quest/config"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/gameapi"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/httpapi"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/repository"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/reveal"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/service"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/store"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/vocab"
)

// Version: 빌드 시 ldflags로 주입된다. main에서 덮어쓴다.
var Version = "dev"

// 어휘 진행도 스냅샷 주기
const progressSnapshotInterval = 10 * time.Minute

// Initialize: 설정으로부터 전체 엔진을 조립한다.
// 반환된 정리 함수는 종료 시 외부 리소스(Valkey, DB, 트레이서)를 닫는다.
func Initialize(ctx context.Context, cfg *qconfig.Config, logger *slog.Logger) (*bootstrap.ServerApp, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	tracer, err := telemetry.NewProvider(ctx, cfg.Telemetry, Version)
	if err != nil {
		return nil, nil, fmt.Errorf("init telemetry failed: %w", err)
	}
	if tracer.IsEnabled() {
		cleanups = append(cleanups, func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if shutdownErr := tracer.Shutdown(shutdownCtx); shutdownErr != nil {
				logger.Warn("telemetry_shutdown_failed", "err", shutdownErr)
			}
		})
	}

	kv, err := newKV(ctx, cfg, logger, &cleanups)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	sessions := store.NewSessionStore(kv, logger)

	dict, err := vocab.DefaultDictionary()
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("load vocabulary failed: %w", err)
	}
	msgs, err := messageprovider.NewFromYAML(assets.MessagesYAML)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("load messages failed: %w", err)
	}

	backendClient := gameapi.NewClient(
		cfg.Backend.BaseURL,
		httpclient.New(httpclient.Config{
			Timeout:        cfg.Backend.Timeout,
			ConnectTimeout: cfg.Backend.ConnectTimeout,
			HTTP2Enabled:   cfg.Backend.HTTP2Enabled,
			Tracing:        tracer.IsEnabled(),
		}),
		logger,
	)

	repo, err := newRepository(ctx, cfg, logger, &cleanups)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	tracker := vocab.NewTracker(dict.Size())
	svc := service.NewGameService(ctx, service.Options{
		Backend:   backendClient,
		Sessions:  sessions,
		Tracker:   tracker,
		Extractor: vocab.NewExtractor(dict),
		Humanizer: gameapi.NewHumanizer(msgs),
		Announcer: announce.NewAnnouncer(announce.DefaultClearDelay),
		Messages:  msgs,
		Recorder:  recorderOrNil(repo),
		Logger:    logger,
		RetryCfg: retrier.Config{
			Attempts:  cfg.Backend.RetryAttempts,
			BaseDelay: cfg.Backend.RetryBaseDelay,
		},
	})

	mux := http.NewServeMux()
	httpapi.Register(mux, httpapi.Deps{
		Service:     svc,
		Sessions:    sessions,
		Tracker:     tracker,
		Dictionary:  dict,
		Highlighter: vocab.NewHighlighter(dict),
		Revealer:    reveal.NewScheduler(cfg.Reveal),
		Stats:       statsOrNil(repo),
		Logger:      logger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := httpserver.NewServer(addr, mux, httpserver.ServerOptions{
		UseH2C: cfg.Server.UseH2C,
	})

	var tasks []bootstrap.BackgroundTask
	if repo != nil {
		tasks = append(tasks, progressSnapshotTask(repo, tracker, logger))
	}

	serverApp := bootstrap.NewServerApp(
		qconfig.ServiceName,
		logger,
		server,
		cfg.Server.ShutdownTimeout,
		tasks...,
	)
	return serverApp, cleanup, nil
}

// progressSnapshotTask: 어휘 진행도를 주기적으로 DB에 남긴다.
// 스냅샷 실패는 경고만 남기고 서버는 계속 돈다.
func progressSnapshotTask(repo *repository.Repository, tracker *vocab.Tracker, logger *slog.Logger) bootstrap.BackgroundTask {
	return bootstrap.BackgroundTask{
		Name:        "progress_snapshot",
		ErrorLogKey: "progress_snapshot_task_failed",
		Run: func(ctx context.Context) error {
			ticker := time.NewTicker(progressSnapshotInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case now := <-ticker.C:
					if err := repo.SaveProgressSnapshot(ctx, tracker.Progress(), now); err != nil {
						logger.Warn("progress_snapshot_failed", "err", err)
					}
				}
			}
		},
	}
}

// newKV: 저장소 백엔드를 고른다. VALKEY_ADDR가 설정되면 Valkey, 아니면 로컬 파일.
func newKV(ctx context.Context, cfg *qconfig.Config, logger *slog.Logger, cleanups *[]func()) (store.KV, error) {
	if cfg.Valkey.Enabled() {
		client, closeFn, err := bootstrap.NewAndPingValkeyClient(ctx, cfg.Valkey, logger)
		if err != nil {
			return nil, fmt.Errorf("connect valkey failed: %w", err)
		}
		*cleanups = append(*cleanups, closeFn)
		logger.Info("store_backend_selected", "backend", "valkey", "addr", cfg.Valkey.Addr)
		return store.NewValkeyKV(client, qconfig.StoreNamespace, cfg.Store.TTL), nil
	}

	kv, err := store.NewFileKV(cfg.Store.DataDir, qconfig.StoreNamespace)
	if err != nil {
		return nil, fmt.Errorf("create file store failed: %w", err)
	}
	logger.Info("store_backend_selected", "backend", "file", "dir", cfg.Store.DataDir)
	return kv, nil
}

func newRepository(ctx context.Context, cfg *qconfig.Config, logger *slog.Logger, cleanups *[]func()) (*repository.Repository, error) {
	db, sqlDB, err := repository.OpenDB(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("open database failed: %w", err)
	}
	*cleanups = append(*cleanups, func() {
		if closeErr := sqlDB.Close(); closeErr != nil {
			logger.Warn("db_close_failed", "err", closeErr)
		}
	})

	repo := repository.New(db)
	if err := repo.AutoMigrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate database failed: %w", err)
	}
	return repo, nil
}

// recorderOrNil: nil 포인터가 nil 인터페이스로 전달되도록 감싼다.
func recorderOrNil(repo *repository.Repository) service.GameRecorder {
	if repo == nil {
		return nil
	}
	return repo
}

func statsOrNil(repo *repository.Repository) httpapi.StatsSource {
	if repo == nil {
		return nil
	}
	return repo
}
