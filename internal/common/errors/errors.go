// Package errors: 엔진 전체에서 공용으로 사용되는 인프라 에러 타입들을 정의한다.
// 백엔드 API 통신, 로컬 저장소, DB 등 도메인 간 공유되는 에러 타입을 포함한다.
package errors

import (
	"errors"
	"fmt"
)

// NetworkError: 백엔드 API 호출 중 네트워크 계층에서 발생한 에러 (연결 실패, 타임아웃 등)
type NetworkError struct {
	Operation string
	Err       error
}

func (e NetworkError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("network error operation=%s", e.Operation)
	}
	return fmt.Sprintf("network error operation=%s: %v", e.Operation, e.Err)
}

func (e NetworkError) Unwrap() error { return e.Err }

// HTTPStatusError: 백엔드가 2xx 외의 HTTP 상태를 반환했을 때 발생하는 에러
// 응답 바디는 디코딩을 시도하기 전 상태 그대로 보존한다.
type HTTPStatusError struct {
	Operation string
	Status    int
	Body      string
}

func (e HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http status %d operation=%s", e.Status, e.Operation)
	}
	return fmt.Sprintf("http status %d operation=%s: %s", e.Status, e.Operation, e.Body)
}

// DecodeError: 2xx 응답 바디의 JSON 디코딩에 실패했을 때 발생하는 에러
type DecodeError struct {
	Operation string
	Err       error
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("decode error operation=%s: %v", e.Operation, e.Err)
}

func (e DecodeError) Unwrap() error { return e.Err }

// StorageError: 로컬 키-값 저장소 작업 중 발생한 에러
// 저장소 읽기/쓰기는 fail-soft이므로 이 에러는 대부분 로깅 용도로만 전파된다.
type StorageError struct {
	Key string
	Err error
}

func (e StorageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("storage error key=%s", e.Key)
	}
	return fmt.Sprintf("storage error key=%s: %v", e.Key, e.Err)
}

func (e StorageError) Unwrap() error { return e.Err }

// RedisError: Valkey 작업을 수행하는 도중 발생한 에러
type RedisError struct {
	Operation string
	Err       error
}

func (e RedisError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("redis error operation=%s", e.Operation)
	}
	return fmt.Sprintf("redis error operation=%s: %v", e.Operation, e.Err)
}

func (e RedisError) Unwrap() error { return e.Err }

// DatabaseError: 데이터베이스(SQLite/PostgreSQL) 작업을 수행하는 도중 발생한 에러
type DatabaseError struct {
	Operation string
	Err       error
}

func (e DatabaseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("db error operation=%s", e.Operation)
	}
	return fmt.Sprintf("db error operation=%s: %v", e.Operation, e.Err)
}

func (e DatabaseError) Unwrap() error { return e.Err }

// IsBackendError: 에러가 백엔드 API 경계에서 태깅된 에러인지 확인한다.
func IsBackendError(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.As(err, new(NetworkError)):
		return true
	case errors.As(err, new(HTTPStatusError)):
		return true
	case errors.As(err, new(DecodeError)):
		return true
	default:
		return false
	}
}

// HTTPStatusOf: 래핑된 에러 체인에서 HTTP 상태 코드를 추출한다.
// HTTPStatusError가 아니면 0을 반환한다.
func HTTPStatusOf(err error) int {
	var statusErr HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status
	}
	return 0
}
