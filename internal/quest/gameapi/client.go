package gameapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	commonerrors "github.com/dyslexiquest/quest-engine-go/internal/common/errors"
	"github.com/dyslexiquest/quest-engine-go/internal/common/httputil"
	"github.com/dyslexiquest/quest-engine-go/internal/quest/model"
)

// maxResponseBytes: 백엔드 응답 바디 크기 상한
const maxResponseBytes = 4 << 20

// Client: 백엔드 REST API 클라이언트. 재시도는 포함하지 않는다.
// 재시도는 호출 측에서 retrier로 감싼다.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient 는 동작을 수행한다.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// StartGame: 새 게임 세션을 시작한다.
func (c *Client) StartGame(ctx context.Context, genre model.Genre) (StartGameResponse, error) {
	return postJSON[StartGameResponse](ctx, c, "/api/start", StartGameRequest{Genre: genre}, "start_game")
}

// NextTurn: 플레이어 입력을 보내고 다음 턴 서사를 받는다.
func (c *Client) NextTurn(ctx context.Context, req NextTurnRequest) (NextTurnResponse, error) {
	return postJSON[NextTurnResponse](ctx, c, "/api/next", req, "next_turn")
}

// Backtrack: 세션을 이전 턴으로 되돌린다.
func (c *Client) Backtrack(ctx context.Context, req BacktrackRequest) (BacktrackResponse, error) {
	return postJSON[BacktrackResponse](ctx, c, "/api/backtrack", req, "backtrack")
}

// EndGame: 세션을 종료한다.
func (c *Client) EndGame(ctx context.Context, sessionID string) (EndGameResponse, error) {
	return postJSON[EndGameResponse](ctx, c, "/api/end", EndGameRequest{SessionID: sessionID}, "end_game")
}

// CheckHealth: 백엔드 상태를 확인한다.
func (c *Client) CheckHealth(ctx context.Context) (HealthResponse, error) {
	return getJSON[HealthResponse](ctx, c, "/api/health", "check_health")
}

// postJSON: JSON 바디를 전송하고 응답을 디코딩한다.
// 2xx 외 상태는 디코딩 전에 HTTPStatusError로 변환된다.
func postJSON[T any](ctx context.Context, c *Client, path string, body any, operation string) (T, error) {
	var zero T

	payload, err := json.Marshal(body)
	if err != nil {
		return zero, fmt.Errorf("marshal request failed operation=%s: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return zero, fmt.Errorf("build request failed operation=%s: %w", operation, err)
	}
	req.Header.Set(httputil.HeaderContentType, httputil.ContentTypeJSON)

	return doJSON[T](c, req, operation)
}

// getJSON: GET 요청을 보내고 응답을 디코딩한다.
func getJSON[T any](ctx context.Context, c *Client, path string, operation string) (T, error) {
	var zero T

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return zero, fmt.Errorf("build request failed operation=%s: %w", operation, err)
	}

	return doJSON[T](c, req, operation)
}

func doJSON[T any](c *Client, req *http.Request, operation string) (T, error) {
	var zero T

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return zero, commonerrors.NetworkError{Operation: operation, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return zero, commonerrors.NetworkError{Operation: operation, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("backend_http_error",
			"operation", operation,
			"status", resp.StatusCode,
		)
		return zero, commonerrors.HTTPStatusError{
			Operation: operation,
			Status:    resp.StatusCode,
			Body:      strings.TrimSpace(string(raw)),
		}
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, commonerrors.DecodeError{Operation: operation, Err: err}
	}
	return out, nil
}
