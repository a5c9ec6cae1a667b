package resource

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"orgdash/internal/transport"
	apperrors "orgdash/pkg/errors"
	"orgdash/pkg/types"
	"orgdash/pkg/utils"
)

// DefaultMaxPages ограничивает обход курсоров в ListAll.
const DefaultMaxPages = 1000

// Client - CRUD одного ресурса поверх транспорта. Пути всегда
// {base}/{id}/{sub}/ с одним завершающим слешем, конверт фиксирован при создании.
type Client[T any] struct {
	doer     transport.Doer
	basePath string
	envelope transport.Envelope
	logger   *zap.Logger
	maxPages int
}

func New[T any](doer transport.Doer, basePath string, envelope transport.Envelope, logger *zap.Logger) *Client[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client[T]{
		doer:     doer,
		basePath: basePath,
		envelope: envelope,
		logger:   logger.With(zap.String("resource", basePath)),
		maxPages: DefaultMaxPages,
	}
}

// WithMaxPages возвращает копию клиента с другим лимитом страниц.
func (c *Client[T]) WithMaxPages(n int) *Client[T] {
	clone := *c
	if n > 0 {
		clone.maxPages = n
	}
	return &clone
}

func (c *Client[T]) Envelope() transport.Envelope { return c.envelope }

// Path строит путь относительно базового URL API.
func (c *Client[T]) Path(segments ...string) string {
	return utils.JoinPath(c.basePath, segments...)
}

// itemPath - путь {base}/{id}/{sub}/ для одной записи. id обязан быть
// одним непустым сегментом, иначе запрос не уходит в сеть.
func (c *Client[T]) itemPath(id string, sub ...string) (string, error) {
	if err := checkID(id); err != nil {
		return "", apperrors.HandleAPIError(err, c.logger)
	}
	return c.Path(append([]string{id}, sub...)...), nil
}

func checkID(id string) error {
	var problem string
	switch trimmed := strings.TrimSpace(id); {
	case trimmed == "":
		problem = "Идентификатор обязателен"
	case strings.Contains(id, "/"):
		problem = "Идентификатор не может содержать \"/\""
	case trimmed == "." || trimmed == "..":
		problem = "Недопустимый идентификатор"
	default:
		return nil
	}
	return apperrors.NewValidationError(problem, map[string][]string{"id": {problem}}, nil)
}

func (c *Client[T]) List(ctx context.Context, params types.Params) (types.PaginatedResponse[T], error) {
	return fetch[types.PaginatedResponse[T]](ctx, c, transport.Request{
		Method: http.MethodGet,
		Path:   c.Path(),
		Query:  params.Values(),
	})
}

// ListAll идёт по next до конца. Курсоры непрозрачны и передаются как есть.
func (c *Client[T]) ListAll(ctx context.Context, params types.Params) ([]T, error) {
	return walk[T](ctx, c, transport.Request{Method: http.MethodGet, Path: c.Path(), Query: params.Values()})
}

func (c *Client[T]) Get(ctx context.Context, id string) (T, error) {
	path, err := c.itemPath(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return fetch[T](ctx, c, transport.Request{Method: http.MethodGet, Path: path})
}

func (c *Client[T]) Create(ctx context.Context, payload any) (T, error) {
	return fetch[T](ctx, c, transport.Request{Method: http.MethodPost, Path: c.Path(), Body: payload})
}

// Update - PATCH: бэкенд сливает переданные поля с текущей записью.
func (c *Client[T]) Update(ctx context.Context, id string, patch any) (T, error) {
	path, err := c.itemPath(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return fetch[T](ctx, c, transport.Request{Method: http.MethodPatch, Path: path, Body: patch})
}

// Delete - мягкое удаление, запись остаётся с is_active=false.
func (c *Client[T]) Delete(ctx context.Context, id string) (bool, error) {
	path, err := c.itemPath(id)
	if err != nil {
		return false, err
	}
	return c.remove(ctx, path)
}

// HardDelete удаляет запись физически. Повторный вызов даёт NotFoundError.
func (c *Client[T]) HardDelete(ctx context.Context, id string) (bool, error) {
	path, err := c.itemPath(id, "hard_delete")
	if err != nil {
		return false, err
	}
	return c.remove(ctx, path)
}

func (c *Client[T]) remove(ctx context.Context, path string) (bool, error) {
	if _, err := c.doer.Do(ctx, transport.Request{Method: http.MethodDelete, Path: path}); err != nil {
		return false, apperrors.HandleAPIError(err, c.logger)
	}
	return true, nil
}

// ListRelated - вложенная коллекция: GET {base}/{id}/{relation}/.
func ListRelated[C, T any](ctx context.Context, c *Client[T], id, relation string, params types.Params) (types.PaginatedResponse[C], error) {
	path, err := c.itemPath(id, relation)
	if err != nil {
		return types.PaginatedResponse[C]{}, err
	}
	return fetch[types.PaginatedResponse[C]](ctx, c, transport.Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  params.Values(),
	})
}

// ListAllRelated - то же, что ListRelated, но со всеми страницами.
func ListAllRelated[C, T any](ctx context.Context, c *Client[T], id, relation string, params types.Params) ([]C, error) {
	path, err := c.itemPath(id, relation)
	if err != nil {
		return nil, err
	}
	return walk[C](ctx, c, transport.Request{Method: http.MethodGet, Path: path, Query: params.Values()})
}

// Aggregate - агрегат только для чтения: GET {base}/{id}/{name}/. Если тип
// несёт версию схемы, она должна совпасть с wantVersion.
func Aggregate[A, T any](ctx context.Context, c *Client[T], id, name string, params types.Params, wantVersion int) (A, error) {
	path, err := c.itemPath(id, name)
	if err != nil {
		var zero A
		return zero, err
	}
	out, err := fetch[A](ctx, c, transport.Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  params.Values(),
	})
	if err != nil {
		return out, err
	}

	if versioned, ok := any(out).(interface{ SchemaVersion() int }); ok && versioned.SchemaVersion() != wantVersion {
		var zero A
		mismatch := fmt.Errorf("%w: %s ожидается %d, получено %d", apperrors.ErrSchemaVersion, name, wantVersion, versioned.SchemaVersion())
		return zero, apperrors.HandleAPIError(mismatch, c.logger)
	}
	return out, nil
}

// CollectionAction - GET на действие коллекции, например get_by_organization/.
func CollectionAction[R, T any](ctx context.Context, c *Client[T], action string, params types.Params) (R, error) {
	return fetch[R](ctx, c, transport.Request{
		Method: http.MethodGet,
		Path:   c.Path(action),
		Query:  params.Values(),
	})
}

// ItemAction - POST на действие записи, например assign_permissions/.
func ItemAction[R, T any](ctx context.Context, c *Client[T], id, action string, payload any) (R, error) {
	path, err := c.itemPath(id, action)
	if err != nil {
		var zero R
		return zero, err
	}
	return fetch[R](ctx, c, transport.Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   payload,
	})
}

func fetch[R, T any](ctx context.Context, c *Client[T], req transport.Request) (R, error) {
	var zero R
	resp, err := c.doer.Do(ctx, req)
	if err != nil {
		return zero, apperrors.HandleAPIError(err, c.logger)
	}
	out, err := transport.Decode[R](c.envelope, resp.Body)
	if err != nil {
		return zero, apperrors.HandleAPIError(err, c.logger)
	}
	return out, nil
}

func walk[C, T any](ctx context.Context, c *Client[T], first transport.Request) ([]C, error) {
	all := make([]C, 0)
	req := first
	for page := 1; ; page++ {
		if page > c.maxPages {
			err := fmt.Errorf("%w: %s, лимит %d", apperrors.ErrTooManyPages, c.basePath, c.maxPages)
			return nil, apperrors.HandleAPIError(err, c.logger)
		}

		result, err := fetch[types.PaginatedResponse[C]](ctx, c, req)
		if err != nil {
			return nil, err
		}
		all = append(all, result.Results...)

		if !result.HasNext() {
			c.logger.Debug("Обход списка завершён", zap.Int("pages", page), zap.Int("items", len(all)))
			return all, nil
		}
		req = transport.Request{Method: http.MethodGet, RawURL: *result.Next}
	}
}
