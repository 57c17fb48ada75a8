package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/niplan/internal/client/storage"
	"github.com/iudanet/niplan/pkg/api"
)

const (
	DefaultBaseURL        = "http://localhost:8000/api"
	DefaultRefreshPath    = "/token/refresh/"
	DefaultRefreshTimeout = 15 * time.Second

	// maxRefreshBody ограничивает чтение ответа refresh endpoint
	maxRefreshBody = 1 << 20
)

// Doer выполняет HTTP запрос (*http.Client удовлетворяет интерфейсу)
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config настройки координатора
type Config struct {
	BaseURL        string
	RefreshPath    string
	RefreshTimeout time.Duration
	// ProtectedMarkers переопределяют DefaultProtectedMarkers
	ProtectedMarkers []string
}

type state int

const (
	stateIdle state = iota
	stateRefreshing
)

func (s state) String() string {
	if s == stateRefreshing {
		return "REFRESHING"
	}
	return "IDLE"
}

// pendingRequest is a request parked on 401 while a refresh is in flight.
// resume is called exactly once with the refresh outcome.
type pendingRequest struct {
	req    *Request
	resume func(err error)
	id     string
}

// Coordinator sends API requests with the stored credential and handles expiry:
// the first 401 starts a single refresh, concurrent 401s wait for it in FIFO order,
// then every waiter replays once with the new token. A failed refresh tears the session down.
type Coordinator struct {
	client        Doer
	refreshClient Doer
	store         storage.CredentialStorage
	decorator     *Decorator
	teardown      *Teardown
	logger        *slog.Logger
	queue         []*pendingRequest
	cfg           Config
	mu            sync.Mutex
	state         state
}

// Option настраивает Coordinator
type Option func(*Coordinator)

// WithHTTPClient задает клиент для обычных запросов
func WithHTTPClient(client Doer) Option {
	return func(c *Coordinator) { c.client = client }
}

// WithRefreshClient задает клиент для refresh endpoint (без декоратора)
func WithRefreshClient(client Doer) Option {
	return func(c *Coordinator) { c.refreshClient = client }
}

// WithLogger задает логгер
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = logger }
}

// NewCoordinator создает координатор поверх хранилища учетных данных.
// navigator вызывается при завершении сессии и может быть nil.
func NewCoordinator(cfg Config, store storage.CredentialStorage, navigator Navigator, opts ...Option) *Coordinator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RefreshPath == "" {
		cfg.RefreshPath = DefaultRefreshPath
	}
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = DefaultRefreshTimeout
	}

	c := &Coordinator{
		cfg:       cfg,
		store:     store,
		decorator: NewDecorator(store, cfg.ProtectedMarkers...),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = NewHTTPClient()
	}
	if c.refreshClient == nil {
		c.refreshClient = c.client
	}
	c.teardown = NewTeardown(store, navigator, c.logger)

	return c
}

// NewHTTPClient возвращает http.Client с настройками по умолчанию
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Ограничиваем количество редиректов
			if len(via) >= 10 {
				return fmt.Errorf("stopped after 10 redirects")
			}
			// Копируем заголовки Authorization при редиректе
			if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
				req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
			}
			return nil
		},
	}
}

// BaseURL returns the API root requests are resolved against
func (c *Coordinator) BaseURL() string {
	return c.cfg.BaseURL
}

// Decorator returns the decorator used for every request
func (c *Coordinator) Decorator() *Decorator {
	return c.decorator
}

// Teardown returns the session teardown bound to the coordinator's store
func (c *Coordinator) Teardown() *Teardown {
	return c.teardown
}

// Do sends req. The caller owns the returned response body.
//
// A 401 on the first attempt is absorbed: the request waits for (or starts)
// a credential refresh and is replayed once. A 401 on the replay, or on a request
// sent without a credential, is returned as is. Transport errors are returned unchanged.
func (c *Coordinator) Do(ctx context.Context, req *Request) (*http.Response, error) {
	resp, sentToken, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	// Без credential обновлять нечего
	if resp.StatusCode != http.StatusUnauthorized || req.Attempt > 0 || sentToken == "" {
		return resp, nil
	}
	drain(resp)

	retry := req.retry()
	if err := c.awaitCredential(ctx, retry, sentToken); err != nil {
		return nil, err
	}

	resp, _, err = c.send(ctx, retry)
	return resp, err
}

func (c *Coordinator) send(ctx context.Context, req *Request) (*http.Response, string, error) {
	httpReq, err := req.build(ctx, c.cfg.BaseURL)
	if err != nil {
		return nil, "", err
	}

	token, err := c.decorator.Decorate(ctx, httpReq)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, token, err
	}
	return resp, token, nil
}

// awaitCredential blocks until a fresh credential is available for req.
// Exactly one caller per expiry event performs the refresh; the rest queue behind it.
func (c *Coordinator) awaitCredential(ctx context.Context, req *Request, sentToken string) error {
	c.mu.Lock()
	if c.state == stateRefreshing {
		done := make(chan error, 1)
		p := &pendingRequest{
			id:     uuid.NewString(),
			req:    req,
			resume: func(err error) { done <- err },
		}
		c.queue = append(c.queue, p)
		c.mu.Unlock()

		c.logger.DebugContext(ctx, "request queued behind refresh",
			slog.String("request_id", p.id),
			slog.String("method", req.Method),
			slog.String("path", req.Path),
		)
		err := <-done
		c.logger.DebugContext(ctx, "queued request resumed",
			slog.String("request_id", p.id),
			slog.Bool("refreshed", err == nil),
		)
		return err
	}

	// Refresh мог завершиться между отправкой запроса и получением 401
	current, err := c.store.Get(ctx, storage.KeyAccessToken)
	if err == nil && current != sentToken && !IsTrivialToken(current) {
		c.mu.Unlock()
		return nil
	}

	c.state = stateRefreshing
	c.mu.Unlock()

	c.logger.DebugContext(ctx, "access token expired, refreshing", slog.String("path", req.Path))

	refreshErr := c.refresh(ctx)
	if refreshErr != nil {
		refreshErr = fmt.Errorf("%w: %w", ErrRefreshFailed, refreshErr)
		c.logger.WarnContext(ctx, "credential refresh failed", slog.Any("error", refreshErr))

		if err := c.teardown.Run(context.WithoutCancel(ctx), "session expired"); err != nil {
			c.logger.ErrorContext(ctx, "failed to tear down session", slog.Any("error", err))
		}
	}

	c.settle(refreshErr)
	return refreshErr
}

// settle resets the state machine and resumes every parked request in FIFO order.
func (c *Coordinator) settle(outcome error) {
	c.mu.Lock()
	queue := c.queue
	c.queue = nil
	c.state = stateIdle
	c.mu.Unlock()

	for _, p := range queue {
		p.resume(outcome)
	}
}

// refresh exchanges the stored refresh token for a new access token.
// It ignores cancellation of ctx and is bounded by RefreshTimeout instead.
func (c *Coordinator) refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.RefreshTimeout)
	defer cancel()

	refreshToken, err := c.store.Get(ctx, storage.KeyRefreshToken)
	if err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		return fmt.Errorf("failed to read refresh token: %w", err)
	}
	if IsTrivialToken(refreshToken) {
		return ErrNoRefreshToken
	}

	body, err := json.Marshal(api.RefreshRequest{Refresh: refreshToken})
	if err != nil {
		return fmt.Errorf("failed to marshal refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+c.cfg.RefreshPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.refreshClient.Do(req)
	if err != nil {
		return fmt.Errorf("refresh request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxRefreshBody))
	if err != nil {
		return fmt.Errorf("failed to read refresh response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("refresh rejected with status %d", resp.StatusCode)
	}

	var tokens api.RefreshResponse
	if err := json.Unmarshal(respBody, &tokens); err != nil {
		return fmt.Errorf("failed to decode refresh response: %w", err)
	}
	if IsTrivialToken(tokens.Access) {
		return ErrEmptyAccessToken
	}

	if err := c.store.Set(ctx, storage.KeyAccessToken, tokens.Access); err != nil {
		return fmt.Errorf("failed to save access token: %w", err)
	}
	if tokens.Refresh != "" {
		if err := c.store.Set(ctx, storage.KeyRefreshToken, tokens.Refresh); err != nil {
			return fmt.Errorf("failed to save refresh token: %w", err)
		}
	}

	c.logger.DebugContext(ctx, "access token refreshed", slog.Bool("rotated", tokens.Refresh != ""))
	return nil
}

// pending returns the number of parked requests
func (c *Coordinator) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// drain дочитывает и закрывает тело, чтобы соединение вернулось в пул
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxRefreshBody))
	_ = resp.Body.Close()
}
