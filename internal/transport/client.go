package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"orgdash/pkg/config"
	apperrors "orgdash/pkg/errors"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxRedirects = 3
	requestIDHeader     = "X-Request-ID"
)

// Request описывает один вызов. Path берётся относительно базового URL,
// RawURL (next/previous из пагинации) используется как есть.
type Request struct {
	Method string
	Path   string
	RawURL string
	Query  url.Values
	Body   any
}

type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Doer - то, что нужно клиентам ресурсов от транспорта.
type Doer interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

type Client struct {
	httpClient    *http.Client
	baseURL       string
	maxRetries    int
	retryInterval time.Duration
	logger        *zap.Logger

	token      string
	tokenMutex sync.RWMutex
}

func New(cfg config.APIConfig, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать cookie jar: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxRedirects := cfg.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = defaultMaxRedirects
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) > maxRedirects {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		baseURL:       baseURL,
		maxRetries:    retries,
		retryInterval: cfg.RetryInterval,
		logger:        logger.Named("transport"),
		token:         cfg.Token,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("некорректный API_BASE_URL %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" || parsed.Host == "" {
		return "", fmt.Errorf("некорректный API_BASE_URL %q: нужен абсолютный http(s) адрес", raw)
	}
	return strings.TrimRight(raw, "/"), nil
}

func (c *Client) BaseURL() string { return c.baseURL }

// SetToken меняет bearer-токен для всех последующих запросов.
func (c *Client) SetToken(token string) {
	c.tokenMutex.Lock()
	defer c.tokenMutex.Unlock()
	c.token = token
}

func (c *Client) getToken() string {
	c.tokenMutex.RLock()
	defer c.tokenMutex.RUnlock()
	return c.token
}

// Do выполняет запрос. Повторяются только отказы без HTTP-ответа, и только
// пока контекст жив. Любой не-2xx ответ возвращается как *apperrors.TransportError.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	target, err := c.resolve(req)
	if err != nil {
		return nil, err
	}

	var payload []byte
	if req.Body != nil {
		payload, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("не удалось сериализовать тело запроса: %w", err)
		}
	}

	var (
		result   *Response
		finalErr error
	)
	operation := func() error {
		result, finalErr = c.send(ctx, req.Method, target, payload)
		if finalErr != nil && c.shouldRetry(ctx, req.Method, finalErr) {
			return finalErr
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	if c.retryInterval > 0 {
		bo.InitialInterval = c.retryInterval
	}
	bo.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(c.maxRetries)), ctx)

	_ = backoff.RetryNotify(operation, policy, func(err error, wait time.Duration) {
		c.logger.Warn("Сетевая ошибка, повторяем запрос",
			zap.String("method", req.Method),
			zap.String("url", target),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	})

	return result, finalErr
}

// shouldRetry повторяет только ошибки без ответа сервера. POST и PATCH
// повторяются лишь при ошибке соединения: запрос мог уже дойти до сервера,
// а создание и изменение не дедуплицируются.
func (c *Client) shouldRetry(ctx context.Context, method string, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var transportErr *apperrors.TransportError
	if !errors.As(err, &transportErr) || transportErr.Response != nil {
		return false
	}
	if idempotent(method) {
		return true
	}
	var opErr *net.OpError
	return errors.As(transportErr.Err, &opErr) && opErr.Op == "dial"
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

func (c *Client) resolve(req Request) (string, error) {
	var target string
	if req.RawURL != "" {
		target = req.RawURL
	} else {
		target = c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	}

	if len(req.Query) == 0 {
		return target, nil
	}

	parsed, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("некорректный адрес %q: %w", target, err)
	}
	query := parsed.Query()
	for key, values := range req.Query {
		query[key] = values
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func (c *Client) send(ctx context.Context, method, target string, payload []byte) (*Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса %s %s: %w", method, target, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(requestIDHeader, uuid.NewString())
	if token := c.getToken(); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &apperrors.TransportError{Method: method, URL: target, Err: err}
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &apperrors.TransportError{Method: method, URL: target, Err: fmt.Errorf("ошибка чтения ответа: %w", err)}
	}

	c.logger.Debug("HTTP запрос выполнен",
		zap.String("method", method),
		zap.String("url", target),
		zap.Int("status", httpResp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, &apperrors.TransportError{
			Method:   method,
			URL:      target,
			Response: &apperrors.TransportResponse{Status: httpResp.StatusCode, Body: data},
		}
	}

	return &Response{Status: httpResp.StatusCode, Header: httpResp.Header, Body: data}, nil
}
