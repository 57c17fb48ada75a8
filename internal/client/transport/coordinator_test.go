package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/niplan/internal/client/storage"
	"github.com/iudanet/niplan/internal/client/storage/memory"
	"github.com/iudanet/niplan/pkg/api"
)

// fakeAPI имитирует backend: защищённый endpoint принимает только текущий access token,
// refresh endpoint выдаёт новый токен.
type fakeAPI struct {
	server *httptest.Server
	// refresh переопределяет поведение refresh endpoint
	refresh func(w http.ResponseWriter, r *http.Request)
	// protected переопределяет поведение защищённого endpoint
	protected func(w http.ResponseWriter, r *http.Request)
	// public переопределяет поведение публичного endpoint
	public func(w http.ResponseWriter, r *http.Request)

	validToken   atomic.Value
	refreshHits  atomic.Int32
	protectedHit atomic.Int32
	publicHits   atomic.Int32
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	f := &fakeAPI{}
	f.validToken.Store("fresh-access")

	mux := http.NewServeMux()
	mux.HandleFunc("/api/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		f.refreshHits.Add(1)
		if f.refresh != nil {
			f.refresh(w, r)
			return
		}
		var req api.RefreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Refresh != "refresh-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(api.RefreshResponse{Access: f.validToken.Load().(string)})
	})
	mux.HandleFunc("/api/my-business/update/", func(w http.ResponseWriter, r *http.Request) {
		f.protectedHit.Add(1)
		if f.protected != nil {
			f.protected(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+f.validToken.Load().(string) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	})
	mux.HandleFunc("/api/products/", func(w http.ResponseWriter, r *http.Request) {
		f.publicHits.Add(1)
		if f.public != nil {
			f.public(w, r)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

type navigatorSpy struct {
	reasons []string
	mu      sync.Mutex
}

func (n *navigatorSpy) ToLogin(reason string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reasons = append(n.reasons, reason)
}

func (n *navigatorSpy) calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.reasons)
}

func newSessionStore(t *testing.T, access, refresh string) *memory.Storage {
	t.Helper()
	store := memory.New()
	require.NoError(t, store.SetSession(context.Background(), &storage.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		Role:         storage.RoleVendor,
		BusinessSlug: "chez-mama",
	}))
	return store
}

func newTestCoordinator(f *fakeAPI, store storage.CredentialStorage, nav Navigator) *Coordinator {
	return NewCoordinator(Config{BaseURL: f.server.URL + "/api"}, store, nav,
		WithHTTPClient(f.server.Client()),
	)
}

func updateBusiness() *Request {
	return NewRequest(http.MethodPatch, "/my-business/update/", []byte(`{"name":"Chez Mama"}`))
}

func TestCoordinator_ValidTokenNoRefresh(t *testing.T) {
	f := newFakeAPI(t)
	store := newSessionStore(t, "fresh-access", "refresh-1")
	c := newTestCoordinator(f, store, nil)

	g, ctx := errgroup.WithContext(context.Background())
	for range 5 {
		g.Go(func() error {
			resp, err := c.Do(ctx, updateBusiness())
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return errors.New(resp.Status)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Zero(t, f.refreshHits.Load())
	assert.EqualValues(t, 5, f.protectedHit.Load())
}

// M одновременных 401 дают ровно один вызов refresh, все запросы повторяются с новым токеном
func TestCoordinator_SingleRefreshForConcurrentExpiry(t *testing.T) {
	const n = 8

	f := newFakeAPI(t)
	release := make(chan struct{})
	f.refresh = func(w http.ResponseWriter, r *http.Request) {
		<-release
		_ = json.NewEncoder(w).Encode(api.RefreshResponse{Access: "fresh-access"})
	}

	store := newSessionStore(t, "stale-access", "refresh-1")
	nav := &navigatorSpy{}
	c := newTestCoordinator(f, store, nav)

	statuses := make(chan int, n)
	g, ctx := errgroup.WithContext(context.Background())
	for range n {
		g.Go(func() error {
			resp, err := c.Do(ctx, updateBusiness())
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			statuses <- resp.StatusCode
			return nil
		})
	}

	// Refresh держится, пока остальные n-1 запросов не встанут в очередь
	require.Eventually(t, func() bool {
		return f.refreshHits.Load() == 1 && c.pending() == n-1
	}, 5*time.Second, 5*time.Millisecond)
	close(release)

	require.NoError(t, g.Wait())
	close(statuses)
	for status := range statuses {
		assert.Equal(t, http.StatusOK, status)
	}

	assert.EqualValues(t, 1, f.refreshHits.Load())
	assert.EqualValues(t, 2*n, f.protectedHit.Load())
	assert.Zero(t, nav.calls())
	assert.Zero(t, c.pending())
	assert.Equal(t, stateIdle, c.state)

	access, err := store.Get(context.Background(), storage.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "fresh-access", access)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Split(strings.TrimSpace(b.buf.String()), "\n")
}

var requestIDPattern = regexp.MustCompile(`request_id=(\S+)`)

// request_id в логе связывает постановку в очередь с возобновлением
func TestCoordinator_QueuedRequestIDLoggedOnResume(t *testing.T) {
	const n = 4

	f := newFakeAPI(t)
	release := make(chan struct{})
	f.refresh = func(w http.ResponseWriter, r *http.Request) {
		<-release
		_ = json.NewEncoder(w).Encode(api.RefreshResponse{Access: "fresh-access"})
	}

	logs := &syncBuffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	store := newSessionStore(t, "stale-access", "refresh-1")
	c := NewCoordinator(Config{BaseURL: f.server.URL + "/api"}, store, nil,
		WithHTTPClient(f.server.Client()),
		WithLogger(logger),
	)

	g, ctx := errgroup.WithContext(context.Background())
	for range n {
		g.Go(func() error {
			resp, err := c.Do(ctx, updateBusiness())
			if err != nil {
				return err
			}
			return resp.Body.Close()
		})
	}

	require.Eventually(t, func() bool {
		return c.pending() == n-1
	}, 5*time.Second, 5*time.Millisecond)
	close(release)
	require.NoError(t, g.Wait())

	queued := map[string]bool{}
	resumed := map[string]bool{}
	for _, line := range logs.lines() {
		m := requestIDPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		switch {
		case strings.Contains(line, `msg="request queued behind refresh"`):
			queued[m[1]] = true
		case strings.Contains(line, `msg="queued request resumed"`):
			assert.Contains(t, line, "refreshed=true")
			resumed[m[1]] = true
		}
	}

	assert.Len(t, queued, n-1)
	assert.Equal(t, queued, resumed)
}

func TestCoordinator_RefreshFailureTearsDownSession(t *testing.T) {
	const n = 5

	f := newFakeAPI(t)
	release := make(chan struct{})
	f.refresh = func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusUnauthorized)
	}

	store := newSessionStore(t, "stale-access", "refresh-1")
	nav := &navigatorSpy{}
	c := newTestCoordinator(f, store, nav)

	errs := make(chan error, n)
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := c.Do(context.Background(), updateBusiness())
			if resp != nil {
				_ = resp.Body.Close()
			}
			errs <- err
		}()
	}

	require.Eventually(t, func() bool {
		return f.refreshHits.Load() == 1 && c.pending() == n-1
	}, 5*time.Second, 5*time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	// Ни один ожидающий запрос не потерян: каждый получил ErrRefreshFailed
	count := 0
	for err := range errs {
		count++
		assert.ErrorIs(t, err, ErrRefreshFailed)
	}
	assert.Equal(t, n, count)

	assert.EqualValues(t, 1, f.refreshHits.Load())
	assert.EqualValues(t, n, f.protectedHit.Load(), "no request is replayed after a failed refresh")
	assert.Equal(t, 1, nav.calls())

	_, err := store.GetSession(context.Background())
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
	assert.Equal(t, stateIdle, c.state)
}

func TestCoordinator_ReplayRejectedAgainIsTerminal(t *testing.T) {
	f := newFakeAPI(t)
	f.protected = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}

	store := newSessionStore(t, "stale-access", "refresh-1")
	nav := &navigatorSpy{}
	c := newTestCoordinator(f, store, nav)

	resp, err := c.Do(context.Background(), updateBusiness())
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.EqualValues(t, 2, f.protectedHit.Load())
	assert.EqualValues(t, 1, f.refreshHits.Load())
	assert.Zero(t, nav.calls())
}

func TestCoordinator_ReplayCarriesSameBody(t *testing.T) {
	f := newFakeAPI(t)

	var bodies []string
	var mu sync.Mutex
	f.protected = func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, r.Method+" "+string(body))
		mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer fresh-access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}

	store := newSessionStore(t, "stale-access", "refresh-1")
	c := newTestCoordinator(f, store, nil)

	resp, err := c.Do(context.Background(), updateBusiness())
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{
		`PATCH {"name":"Chez Mama"}`,
		`PATCH {"name":"Chez Mama"}`,
	}, bodies)
}

func TestCoordinator_NoCredentialForProtectedPath(t *testing.T) {
	f := newFakeAPI(t)
	c := newTestCoordinator(f, memory.New(), nil)

	resp, err := c.Do(context.Background(), updateBusiness())
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrNoCredential)
	assert.Zero(t, f.protectedHit.Load())
	assert.Zero(t, f.refreshHits.Load())
}

func TestCoordinator_PublicPathWithoutCredential(t *testing.T) {
	f := newFakeAPI(t)
	c := newTestCoordinator(f, memory.New(), nil)

	resp, err := c.Do(context.Background(), NewRequest(http.MethodGet, "/products/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, f.publicHits.Load())
}

// 401 на запрос без credential не запускает refresh и не ведёт на экран входа
func TestCoordinator_UnauthorizedWithoutCredentialIsReturned(t *testing.T) {
	f := newFakeAPI(t)
	f.public = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}
	store := memory.New()
	require.NoError(t, store.Set(context.Background(), storage.KeyRefreshToken, "refresh-1"))
	nav := &navigatorSpy{}
	c := newTestCoordinator(f, store, nav)

	resp, err := c.Do(context.Background(), NewRequest(http.MethodGet, "/products/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.EqualValues(t, 1, f.publicHits.Load())
	assert.Zero(t, f.refreshHits.Load())
	assert.Zero(t, nav.calls())
	assert.Equal(t, stateIdle, c.state)

	// Refresh token не тронут
	refresh, err := store.Get(context.Background(), storage.KeyRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh-1", refresh)
}

func TestCoordinator_NetworkErrorPassesThrough(t *testing.T) {
	f := newFakeAPI(t)
	store := newSessionStore(t, "fresh-access", "refresh-1")
	nav := &navigatorSpy{}
	c := newTestCoordinator(f, store, nav)
	f.server.Close()

	resp, err := c.Do(context.Background(), updateBusiness())
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRefreshFailed)
	assert.Zero(t, nav.calls())

	// Сессия не тронута
	session, err := store.GetSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-access", session.AccessToken)
}

func TestCoordinator_ServerErrorDoesNotRefresh(t *testing.T) {
	f := newFakeAPI(t)
	f.protected = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}
	c := newTestCoordinator(f, newSessionStore(t, "fresh-access", "refresh-1"), nil)

	resp, err := c.Do(context.Background(), updateBusiness())
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Zero(t, f.refreshHits.Load())
}

// 401 пришёл после того, как другой запрос уже обновил токен: повтор без второго refresh
func TestCoordinator_StaleTokenReplaysWithoutRefresh(t *testing.T) {
	f := newFakeAPI(t)
	store := newSessionStore(t, "stale-access", "refresh-1")

	f.protected = func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer fresh-access" {
			w.WriteHeader(http.StatusOK)
			return
		}
		// Пока запрос был в пути, токен в хранилище уже обновили
		_ = store.Set(context.Background(), storage.KeyAccessToken, "fresh-access")
		w.WriteHeader(http.StatusUnauthorized)
	}
	c := newTestCoordinator(f, store, nil)

	resp, err := c.Do(context.Background(), updateBusiness())
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, f.refreshHits.Load())
	assert.EqualValues(t, 2, f.protectedHit.Load())
}

func TestCoordinator_RefreshFailures(t *testing.T) {
	tests := []struct {
		name    string
		refresh string
		handler func(w http.ResponseWriter, r *http.Request)
		wantErr error
		wantHit int32
	}{
		{
			name:    "missing refresh token",
			refresh: "",
			wantErr: ErrNoRefreshToken,
			wantHit: 0,
		},
		{
			name:    "literal null refresh token",
			refresh: "null",
			wantErr: ErrNoRefreshToken,
			wantHit: 0,
		},
		{
			name:    "empty access in response",
			refresh: "refresh-1",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"access":""}`))
			},
			wantErr: ErrEmptyAccessToken,
			wantHit: 1,
		},
		{
			name:    "server error",
			refresh: "refresh-1",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantHit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeAPI(t)
			f.refresh = tt.handler

			store := memory.New()
			require.NoError(t, store.Set(context.Background(), storage.KeyAccessToken, "stale-access"))
			if tt.refresh != "" {
				require.NoError(t, store.Set(context.Background(), storage.KeyRefreshToken, tt.refresh))
			}
			nav := &navigatorSpy{}
			c := newTestCoordinator(f, store, nav)

			_, err := c.Do(context.Background(), updateBusiness())
			require.ErrorIs(t, err, ErrRefreshFailed)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, tt.wantHit, f.refreshHits.Load())
			assert.Equal(t, 1, nav.calls())

			_, err = store.Get(context.Background(), storage.KeyAccessToken)
			assert.ErrorIs(t, err, storage.ErrKeyNotFound)
		})
	}
}

func TestCoordinator_RefreshRotatesRefreshToken(t *testing.T) {
	f := newFakeAPI(t)
	f.refresh = func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.RefreshResponse{Access: "fresh-access", Refresh: "refresh-2"})
	}
	store := newSessionStore(t, "stale-access", "refresh-1")
	c := newTestCoordinator(f, store, nil)

	resp, err := c.Do(context.Background(), updateBusiness())
	require.NoError(t, err)
	defer resp.Body.Close()

	refresh, err := store.Get(context.Background(), storage.KeyRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh-2", refresh)
}

// Отмена контекста инициатора не срывает refresh для остальных
func TestCoordinator_CancelledInitiatorDoesNotFailWaiters(t *testing.T) {
	f := newFakeAPI(t)
	release := make(chan struct{})
	f.refresh = func(w http.ResponseWriter, r *http.Request) {
		<-release
		_ = json.NewEncoder(w).Encode(api.RefreshResponse{Access: "fresh-access"})
	}
	store := newSessionStore(t, "stale-access", "refresh-1")
	nav := &navigatorSpy{}
	c := newTestCoordinator(f, store, nav)

	initiatorCtx, cancel := context.WithCancel(context.Background())
	initiatorErr := make(chan error, 1)
	go func() {
		resp, err := c.Do(initiatorCtx, updateBusiness())
		if resp != nil {
			_ = resp.Body.Close()
		}
		initiatorErr <- err
	}()

	require.Eventually(t, func() bool { return f.refreshHits.Load() == 1 }, 5*time.Second, 5*time.Millisecond)

	waiterResp := make(chan *http.Response, 1)
	go func() {
		resp, err := c.Do(context.Background(), updateBusiness())
		assert.NoError(t, err)
		waiterResp <- resp
	}()
	require.Eventually(t, func() bool { return c.pending() == 1 }, 5*time.Second, 5*time.Millisecond)

	cancel()
	close(release)

	resp := <-waiterResp
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Инициатор получает ошибку отмены при повторе, сессия остаётся
	assert.ErrorIs(t, <-initiatorErr, context.Canceled)
	assert.Zero(t, nav.calls())
	access, err := store.Get(context.Background(), storage.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "fresh-access", access)
}

func TestCoordinator_SettleResumesInFIFOOrder(t *testing.T) {
	c := NewCoordinator(Config{}, memory.New(), nil)
	c.state = stateRefreshing

	var order []string
	for _, id := range []string{"first", "second", "third"} {
		c.queue = append(c.queue, &pendingRequest{
			id:     id,
			req:    updateBusiness(),
			resume: func(err error) { order = append(order, id) },
		})
	}

	c.settle(nil)

	assert.Equal(t, []string{"first", "second", "third"}, order)
	assert.Empty(t, c.queue)
	assert.Equal(t, stateIdle, c.state)
	assert.Equal(t, "IDLE", c.state.String())
}

func TestCoordinator_SettleDeliversFailureToEveryRecord(t *testing.T) {
	c := NewCoordinator(Config{}, memory.New(), nil)
	c.state = stateRefreshing

	cause := errors.New("boom")
	var got []error
	for range 3 {
		c.queue = append(c.queue, &pendingRequest{
			req:    updateBusiness(),
			resume: func(err error) { got = append(got, err) },
		})
	}

	c.settle(cause)

	require.Len(t, got, 3)
	for _, err := range got {
		assert.ErrorIs(t, err, cause)
	}
}

func TestNewCoordinator_Defaults(t *testing.T) {
	c := NewCoordinator(Config{}, memory.New(), nil)

	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, DefaultRefreshPath, c.cfg.RefreshPath)
	assert.Equal(t, DefaultRefreshTimeout, c.cfg.RefreshTimeout)
	assert.NotNil(t, c.Decorator())
	assert.NotNil(t, c.Teardown())

	client, ok := c.client.(*http.Client)
	require.True(t, ok)
	assert.Equal(t, 30*time.Second, client.Timeout)
}
