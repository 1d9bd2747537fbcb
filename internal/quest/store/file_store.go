package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	commonerrors "github.com/dyslexiquest/quest-engine-go/internal/common/errors"
)

// FileKV: 키마다 JSON 파일 하나를 두는 파일 백엔드. 로컬 단독 실행의 기본값이다.
type FileKV struct {
	dir       string
	namespace string
}

// NewFileKV 는 동작을 수행한다.
func NewFileKV(dir, namespace string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir failed: %w", err)
	}
	return &FileKV{dir: dir, namespace: namespace}, nil
}

func (f *FileKV) pathFor(key string) string {
	return filepath.Join(f.dir, f.namespace+"_"+key+".json")
}

// Read: 키 파일을 읽는다. 파일이 없으면 (nil, nil).
func (f *FileKV) Read(_ context.Context, key string) ([]byte, error) {
	raw, err := os.ReadFile(f.pathFor(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, commonerrors.StorageError{Key: key, Err: err}
	}
	return raw, nil
}

// Write: 임시 파일에 쓴 뒤 원자적으로 교체한다.
func (f *FileKV) Write(_ context.Context, key string, value []byte) error {
	target := f.pathFor(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, value, 0644); err != nil {
		return commonerrors.StorageError{Key: key, Err: err}
	}
	if err := os.Rename(tmp, target); err != nil {
		return commonerrors.StorageError{Key: key, Err: err}
	}
	return nil
}

// Delete: 키 파일을 제거한다. 없는 키 삭제는 에러가 아니다.
func (f *FileKV) Delete(_ context.Context, key string) error {
	if err := os.Remove(f.pathFor(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return commonerrors.StorageError{Key: key, Err: err}
	}
	return nil
}

// Entries: 네임스페이스에 속한 파일들의 키와 값 크기를 반환한다.
func (f *FileKV) Entries(_ context.Context) (map[string]int, error) {
	dirEntries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, commonerrors.StorageError{Key: "*", Err: err}
	}

	prefix := f.namespace + "_"
	out := make(map[string]int)
	for _, entry := range dirEntries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		key := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".json")
		out[key] = int(info.Size())
	}
	return out, nil
}
