package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"orgdash/pkg/config"
	apperrors "orgdash/pkg/errors"
)

func newTestClient(t *testing.T, baseURL string, retries int) *Client {
	t.Helper()
	client, err := New(config.APIConfig{
		BaseURL:       baseURL,
		Token:         "secret",
		Timeout:       2 * time.Second,
		MaxRedirects:  3,
		MaxRetries:    retries,
		RetryInterval: time.Millisecond,
	}, zap.NewNop())
	require.NoError(t, err)
	return client
}

func TestNew_RejectsRelativeBaseURL(t *testing.T) {
	_, err := New(config.APIConfig{BaseURL: "/api/v1"}, nil)
	require.Error(t, err)
}

func TestDo_HeadersAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/organizations/", r.URL.Path)
		assert.Equal(t, "acme", r.URL.Query().Get("search"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get(requestIDHeader))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Acme", body["name"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"1"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL+"/api/v1/", 0)
	resp, err := client.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "organizations/",
		Query:  url.Values{"search": {"acme"}},
		Body:   map[string]string{"name": "Acme"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.JSONEq(t, `{"data":{"id":"1"}}`, string(resp.Body))
}

func TestDo_RawURLUsedVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/elsewhere/teams/", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL+"/api/v1", 0)
	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, RawURL: server.URL + "/elsewhere/teams/?page=3"})
	require.NoError(t, err)
}

func TestDo_ErrorStatusIsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"message":"busy"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 3)
	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "teams/"})

	var transportErr *apperrors.TransportError
	require.ErrorAs(t, err, &transportErr)
	require.NotNil(t, transportErr.Response)
	assert.Equal(t, http.StatusServiceUnavailable, transportErr.Response.Status)
	assert.JSONEq(t, `{"message":"busy"}`, string(transportErr.Response.Body))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDo_NetworkErrorIsRetried(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := newTestClient(t, baseURL, 2)
	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "teams/"})

	var transportErr *apperrors.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Nil(t, transportErr.Response)

	var networkErr *apperrors.NetworkError
	require.ErrorAs(t, apperrors.Classify(err), &networkErr)
	assert.True(t, networkErr.Retryable)
}

func TestDo_TimedOutWriteIsNotRepeated(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(150 * time.Millisecond)
		_, _ = w.Write([]byte(`{"data":{"id":"1"}}`))
	}))
	defer server.Close()

	client, err := New(config.APIConfig{
		BaseURL:       server.URL,
		Timeout:       50 * time.Millisecond,
		MaxRetries:    2,
		RetryInterval: time.Millisecond,
	}, zap.NewNop())
	require.NoError(t, err)

	for _, method := range []string{http.MethodPost, http.MethodPatch} {
		atomic.StoreInt32(&calls, 0)
		_, err := client.Do(context.Background(), Request{Method: method, Path: "organizations/", Body: map[string]string{"name": "Acme"}})

		var networkErr *apperrors.NetworkError
		require.ErrorAs(t, apperrors.Classify(err), &networkErr, method)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls), method)
	}

	atomic.StoreInt32(&calls, 0)
	_, err = client.Do(context.Background(), Request{Method: http.MethodGet, Path: "organizations/"})
	require.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDo_WriteIsRetriedWhenConnectionFails(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	core, logs := observer.New(zapcore.WarnLevel)
	client, err := New(config.APIConfig{
		BaseURL:       "http://" + addr,
		Timeout:       time.Second,
		MaxRetries:    2,
		RetryInterval: time.Millisecond,
	}, zap.New(core))
	require.NoError(t, err)

	_, err = client.Do(context.Background(), Request{Method: http.MethodPost, Path: "organizations/", Body: map[string]string{"name": "Acme"}})
	var networkErr *apperrors.NetworkError
	require.ErrorAs(t, apperrors.Classify(err), &networkErr)
	assert.Equal(t, 2, logs.FilterMessage("Сетевая ошибка, повторяем запрос").Len())
}

func TestDo_CancelledContextStopsImmediately(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient(t, server.URL, 5)
	_, err := client.Do(ctx, Request{Method: http.MethodGet, Path: "teams/"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestDo_RedirectLoopIsCapped(t *testing.T) {
	var hops int32
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hops, 1)
		http.Redirect(w, r, server.URL+"/loop/", http.StatusFound)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 2)
	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "loop/"})

	var transportErr *apperrors.TransportError
	require.ErrorAs(t, err, &transportErr)
	require.NotNil(t, transportErr.Response)
	assert.Equal(t, http.StatusFound, transportErr.Response.Status)
	assert.Equal(t, int32(4), atomic.LoadInt32(&hops))

	var serverErr *apperrors.ServerError
	require.ErrorAs(t, apperrors.Classify(err), &serverErr)
	assert.Equal(t, http.StatusFound, serverErr.ResponseStatus)
}

func TestDo_CookiesAreKept(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login/" {
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
			_, _ = w.Write([]byte(`{}`))
			return
		}
		cookie, err := r.Cookie("session")
		if assert.NoError(t, err) {
			assert.Equal(t, "abc", cookie.Value)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 0)
	_, err := client.Do(context.Background(), Request{Method: http.MethodPost, Path: "login/"})
	require.NoError(t, err)
	_, err = client.Do(context.Background(), Request{Method: http.MethodGet, Path: "teams/"})
	require.NoError(t, err)
}

func TestSetToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer rotated", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 0)
	client.SetToken("rotated")
	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "teams/"})
	require.NoError(t, err)
}
