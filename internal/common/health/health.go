// Package health: 엔진 프로세스 상태 정보
package health

import (
	"runtime"
	"sync"
	"time"
)

var (
	startTime time.Time
	version   = "dev"
	initOnce  sync.Once
)

// Init: 엔진 시작 시 호출 (버전 정보 설정)
func Init(v string) {
	initOnce.Do(func() {
		startTime = time.Now()
		if v != "" {
			version = v
		}
	})
}

// Response: /healthz 엔드포인트 표준 응답
// 스토리 백엔드 연결 상태에 따라 Status가 healthy/degraded로 나뉜다.
type Response struct {
	Status           string `json:"status"`
	Version          string `json:"version"`
	Uptime           string `json:"uptime"`
	Goroutines       int    `json:"goroutines"`
	BackendAvailable bool   `json:"backend_available"`
}

// Get: 현재 프로세스 상태를 반환한다. 백엔드 연결 불가 시 degraded로 표시한다.
func Get(backendAvailable bool) Response {
	status := "healthy"
	if !backendAvailable {
		status = "degraded"
	}
	return Response{
		Status:           status,
		Version:          version,
		Uptime:           formatDuration(time.Since(startTime)),
		Goroutines:       runtime.NumGoroutine(),
		BackendAvailable: backendAvailable,
	}
}

// formatDuration: Duration을 사람이 읽기 쉬운 형식으로 변환
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return time.Duration(h*time.Hour + m*time.Minute + s*time.Second).String()
	}
	if m > 0 {
		return time.Duration(m*time.Minute + s*time.Second).String()
	}
	return time.Duration(s * time.Second).String()
}
