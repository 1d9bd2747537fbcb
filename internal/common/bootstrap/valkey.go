package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	commonconfig "github.com/dyslexiquest/quest-engine-go/internal/common/config"
	"github.com/dyslexiquest/quest-engine-go/internal/common/valkeyx"
)

// ToValkeyConfig: 저장소 백엔드 연결을 위한 Valkey 설정 객체를 생성합니다.
func ToValkeyConfig(cfg commonconfig.ValkeyConfig) valkeyx.Config {
	return valkeyx.Config{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
		// 로컬 단일 사용자 엔진이므로 클라이언트 사이드 캐싱은 사용하지 않는다.
		DisableCache: true,
	}
}

// NewAndPingValkeyClient: Valkey 클라이언트를 생성하고 Ping 테스트를 통해 연결성을 확인합니다.
// 연결 실패 시 생성된 리소스를 정리하고 에러를 반환합니다.
func NewAndPingValkeyClient(
	ctx context.Context,
	cfg commonconfig.ValkeyConfig,
	logger *slog.Logger,
) (valkey.Client, func(), error) {
	client, err := valkeyx.NewClient(ToValkeyConfig(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("create valkey client failed: %w", err)
	}

	closeFn := func() {
		valkeyx.Close(client)
		logger.Debug("valkey_client_closed")
	}

	if pingErr := valkeyx.Ping(ctx, client); pingErr != nil {
		closeFn()
		return nil, nil, fmt.Errorf("valkey ping failed: %w", pingErr)
	}

	return client, closeFn, nil
}
