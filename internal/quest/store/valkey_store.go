package store

import (
	"context"
	"time"

	"github.com/valkey-io/valkey-go"

	commonerrors "github.com/dyslexiquest/quest-engine-go/internal/common/errors"
	"github.com/dyslexiquest/quest-engine-go/internal/common/valkeyx"
)

// ValkeyKV: 교실/공유 서버 배포에서 사용하는 Valkey 백엔드.
type ValkeyKV struct {
	client    valkey.Client
	namespace string
	ttl       time.Duration
}

// NewValkeyKV 는 동작을 수행한다. ttl이 0이면 키가 만료되지 않는다.
func NewValkeyKV(client valkey.Client, namespace string, ttl time.Duration) *ValkeyKV {
	return &ValkeyKV{client: client, namespace: namespace, ttl: ttl}
}

func (v *ValkeyKV) keyFor(key string) string {
	return valkeyx.BuildKey(v.namespace, key)
}

// Read: 키를 조회한다. 없거나 만료된 키는 (nil, nil).
func (v *ValkeyKV) Read(ctx context.Context, key string) ([]byte, error) {
	raw, err := v.client.Do(ctx, v.client.B().Get().Key(v.keyFor(key)).Build()).AsBytes()
	if err != nil {
		if valkeyx.IsNil(err) {
			return nil, nil
		}
		return nil, commonerrors.RedisError{Operation: "get", Err: err}
	}
	return raw, nil
}

// Write: 값을 저장한다. TTL이 설정되어 있으면 함께 적용한다.
func (v *ValkeyKV) Write(ctx context.Context, key string, value []byte) error {
	builder := v.client.B().Set().Key(v.keyFor(key)).Value(valkey.BinaryString(value))
	var cmd valkey.Completed
	if v.ttl > 0 {
		cmd = builder.Ex(v.ttl).Build()
	} else {
		cmd = builder.Build()
	}
	if err := v.client.Do(ctx, cmd).Error(); err != nil {
		return commonerrors.RedisError{Operation: "set", Err: err}
	}
	return nil
}

// Delete: 키를 제거한다.
func (v *ValkeyKV) Delete(ctx context.Context, key string) error {
	if err := v.client.Do(ctx, v.client.B().Del().Key(v.keyFor(key)).Build()).Error(); err != nil {
		return commonerrors.RedisError{Operation: "del", Err: err}
	}
	return nil
}

// Entries: 네임스페이스 키들의 값 크기를 반환한다.
func (v *ValkeyKV) Entries(ctx context.Context) (map[string]int, error) {
	pattern := valkeyx.BuildKey(v.namespace, "*")
	keys, err := v.client.Do(ctx, v.client.B().Keys().Pattern(pattern).Build()).AsStrSlice()
	if err != nil {
		return nil, commonerrors.RedisError{Operation: "keys", Err: err}
	}

	prefixLen := len(v.namespace) + 1
	out := make(map[string]int, len(keys))
	for _, fullKey := range keys {
		raw, err := v.client.Do(ctx, v.client.B().Get().Key(fullKey).Build()).AsBytes()
		if err != nil {
			if valkeyx.IsNil(err) {
				continue
			}
			return nil, commonerrors.RedisError{Operation: "get", Err: err}
		}
		if len(fullKey) <= prefixLen {
			continue
		}
		out[fullKey[prefixLen:]] = len(raw)
	}
	return out, nil
}
