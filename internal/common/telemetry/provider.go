// Package telemetry: OpenTelemetry 트레이스 초기화와 컨텍스트 전파 헬퍼를 제공한다.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	commonconfig "github.com/dyslexiquest/quest-engine-go/internal/common/config"
)

// Provider: OpenTelemetry provider를 관리합니다.
type Provider struct {
	tracerProvider *sdktrace.TracerProvider
}

// NewProvider: TracerProvider를 초기화하고 글로벌로 설정합니다.
// 설정에 Endpoint가 없으면 no-op Provider를 반환합니다.
func NewProvider(ctx context.Context, cfg commonconfig.TelemetryConfig, version string) (*Provider, error) {
	if !cfg.Enabled() {
		return &Provider{}, nil
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(version),
	)

	// 로컬 수집기 대상이므로 평문 gRPC로 내보낸다.
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create exporter: %w", err)
	}

	// ParentBased: 부모가 샘플링 결정을 했으면 그 결정을 따름
	var rootSampler sdktrace.Sampler
	switch {
	case cfg.SampleRatio >= 1.0:
		rootSampler = sdktrace.AlwaysSample()
	case cfg.SampleRatio <= 0:
		rootSampler = sdktrace.NeverSample()
	default:
		rootSampler = sdktrace.TraceIDRatioBased(cfg.SampleRatio)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(rootSampler)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	return &Provider{tracerProvider: tp}, nil
}

// Shutdown: TracerProvider를 정리합니다. 애플리케이션 종료 시 호출하세요.
// 버퍼에 남은 span들을 flush하여 데이터 유실을 방지합니다.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.tracerProvider == nil {
		return nil
	}
	return p.tracerProvider.Shutdown(ctx)
}

// IsEnabled: OpenTelemetry가 활성화되었는지 확인합니다.
func (p *Provider) IsEnabled() bool {
	return p.tracerProvider != nil
}
