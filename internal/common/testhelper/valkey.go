// Package testhelper: 테스트에서 공용으로 사용하는 헬퍼를 제공합니다.
package testhelper

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/valkey-io/valkey-go"
)

// NewTestValkeyClient: miniredis 인스턴스를 띄우고 연결된 Valkey 클라이언트를 생성합니다.
// 인스턴스와 클라이언트 모두 테스트 종료 시 자동으로 정리됩니다.
func NewTestValkeyClient(t *testing.T) valkey.Client {
	t.Helper()

	mr := miniredis.RunT(t)

	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:       []string{mr.Addr()},
		DisableCache:      true,
		ForceSingleClient: true,
	})
	if err != nil {
		t.Fatalf("failed to create valkey client (addr=%s): %v", mr.Addr(), err)
	}
	t.Cleanup(client.Close)

	return client
}

// UniqueTestPrefix: 테스트별로 고유한 키 prefix를 생성합니다.
func UniqueTestPrefix(t *testing.T) string {
	return "test:" + t.Name() + ":"
}
