// Package config: 환경 변수 기반 설정 로딩을 위한 공용 헬퍼 모음.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// StringFromEnv: 환경 변수를 읽고, 비어 있으면 기본값을 반환한다.
func StringFromEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

// StringFromEnvFirstNonEmpty: 여러 키 중 처음으로 값이 있는 환경 변수를 반환한다.
// 모두 비어 있으면 기본값을 사용한다.
func StringFromEnvFirstNonEmpty(defaultValue string, keys ...string) string {
	for _, key := range keys {
		value := strings.TrimSpace(os.Getenv(key))
		if value != "" {
			return value
		}
	}
	return defaultValue
}

// IntFromEnv: 환경 변수를 정수로 읽는다. 파싱 실패 시 기본값을 반환한다.
func IntFromEnv(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// BoolFromEnv: 환경 변수를 불리언으로 읽는다. 파싱 실패 시 기본값을 반환한다.
func BoolFromEnv(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// DurationFromEnv: 환경 변수를 time.Duration으로 읽는다.
// "5s" 같은 duration 문법과 순수 숫자(초 단위)를 모두 허용한다.
func DurationFromEnv(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if parsed, err := time.ParseDuration(value); err == nil {
		return parsed
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}

// FloatFromEnv: 환경 변수를 float64로 읽는다. 파싱 실패 시 기본값을 반환한다.
func FloatFromEnv(key string, defaultValue float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}
