package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"orgdash/internal/repositories"
	"orgdash/internal/transport"
	"orgdash/pkg/api"
	apperrors "orgdash/pkg/errors"
	"orgdash/pkg/types"
	"orgdash/pkg/utils"
	"orgdash/pkg/validation"
)

const (
	requestTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20

	// Фиксированная ширина: строки сортируются так же, как время.
	timestampLayout = "2006-01-02T15:04:05.000000Z"
)

// Поля, которые проставляет только сервер.
var serverFields = []string{"id", "created_at", "updated_at"}

// RecordController обслуживает все коллекции сервера разработки поверх
// одного хранилища записей.
type RecordController struct {
	repo     repositories.RecordRepositoryInterface
	cache    repositories.CacheRepositoryInterface
	envelope transport.Envelope
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time

	// uniqueMu держит проверку уникальности и вставку одним шагом.
	uniqueMu sync.Mutex
}

// NewRecordController: cache может быть nil, тогда агрегаты считаются на каждый запрос.
func NewRecordController(
	repo repositories.RecordRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	envelope transport.Envelope,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *RecordController {
	return &RecordController{
		repo:     repo,
		cache:    cache,
		envelope: envelope,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

func (rc *RecordController) timestamp() string {
	return rc.now().UTC().Format(timestampLayout)
}

func (rc *RecordController) fail(c echo.Context, err error) error {
	var validationErr *apperrors.ValidationError
	var inputErr *apperrors.InvalidInputError
	switch {
	case errors.As(err, &validationErr), errors.As(err, &inputErr):
		rc.logger.Warn("Некорректный запрос", zap.String("uri", c.Request().RequestURI), zap.Error(err))
	case errors.Is(err, apperrors.ErrNotFound):
		rc.logger.Debug("Запись не найдена", zap.String("uri", c.Request().RequestURI))
	default:
		rc.logger.Error("Ошибка обработки запроса", zap.String("uri", c.Request().RequestURI), zap.Error(err))
	}
	return api.ErrorResponse(c, err)
}

func (rc *RecordController) List(kind Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := utils.ContextWithTimeout(c, requestTimeout)
		defer cancel()
		return rc.page(ctx, c, kind, repositories.RecordQuery{})
	}
}

// page отдаёт страницу коллекции. Условия scope добавляются к фильтрам из
// query и имеют приоритет над ними.
func (rc *RecordController) page(ctx context.Context, c echo.Context, kind Kind, scope repositories.RecordQuery) error {
	filter := types.ParseFilterFromQuery(c.QueryParams())
	query := repositories.RecordQuery{
		Filter:       filter.Filter,
		In:           scope.In,
		Search:       filter.Search,
		SearchFields: kind.SearchFields,
		Ordering:     filter.Ordering,
		Offset:       filter.Offset(),
		Limit:        filter.PageSize,
	}
	for key, value := range scope.Filter {
		query.Filter[key] = value
	}
	if len(query.Ordering) == 0 {
		query.Ordering = kind.DefaultOrdering
	}
	for _, values := range query.In {
		if len(values) == 0 {
			return api.SuccessOne(c, http.StatusOK, rc.envelope, types.NewPage[repositories.Record](nil, 0, nil, nil))
		}
	}

	records, total, err := rc.repo.List(ctx, kind.Name, query)
	if err != nil {
		return rc.fail(c, err)
	}
	next, previous := pageLinks(c, filter, total)
	return api.SuccessOne(c, http.StatusOK, rc.envelope, types.NewPage(records, total, next, previous))
}

// pageLinks строит абсолютные ссылки на соседние страницы из текущего URL.
func pageLinks(c echo.Context, filter types.Filter, total uint64) (next, previous *string) {
	link := func(page int) *string {
		u := *c.Request().URL
		u.Scheme = c.Scheme()
		u.Host = c.Request().Host
		q := u.Query()
		q.Set("page", strconv.Itoa(page))
		q.Set("page_size", strconv.Itoa(filter.PageSize))
		u.RawQuery = q.Encode()
		return utils.ToPtr(u.String())
	}

	if uint64(filter.Offset())+uint64(filter.PageSize) < total {
		next = link(filter.Page + 1)
	}
	if filter.Page > 1 {
		previous = link(filter.Page - 1)
	}
	return next, previous
}

func (rc *RecordController) Get(kind Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := utils.ContextWithTimeout(c, requestTimeout)
		defer cancel()

		rec, err := rc.repo.Find(ctx, kind.Name, c.Param("id"))
		if err != nil {
			return rc.fail(c, err)
		}
		return api.SuccessOne(c, http.StatusOK, rc.envelope, rec)
	}
}

func (rc *RecordController) Create(kind Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := utils.ContextWithTimeout(c, requestTimeout)
		defer cancel()

		fields, err := decodeBody(c, kind.NewCreate())
		if err != nil {
			return rc.fail(c, err)
		}
		created, err := rc.create(ctx, kind, fields)
		if err != nil {
			return rc.fail(c, err)
		}
		return api.SuccessOne(c, http.StatusCreated, rc.envelope, created)
	}
}

// CreateRecord создаёт запись из DTO так же, как POST коллекции.
func (rc *RecordController) CreateRecord(ctx context.Context, kind Kind, input any) (repositories.Record, error) {
	raw, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации %s: %w", kind.Name, err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, apperrors.NewInvalidInputError("%s: ожидается JSON-объект", kind.Name)
	}
	return rc.create(ctx, kind, fields)
}

func (rc *RecordController) create(ctx context.Context, kind Kind, fields map[string]any) (repositories.Record, error) {
	rec := repositories.Record(fields)
	for _, key := range serverFields {
		delete(rec, key)
	}
	for key, value := range kind.Defaults {
		if current, ok := rec[key]; !ok || current == nil || current == "" {
			rec[key] = value()
		}
	}
	if _, ok := rec["is_active"]; !ok {
		rec["is_active"] = true
	}

	now := rc.timestamp()
	rec["id"] = uuid.NewString()
	rec["created_at"] = now
	rec["updated_at"] = now

	if err := rc.checkReferences(ctx, kind, rec.ID(), rec); err != nil {
		return nil, err
	}
	created, err := rc.insert(ctx, kind, rec)
	if err != nil {
		return nil, err
	}
	rc.afterCreate(ctx, kind, created)
	rc.afterMutation(ctx, kind, "create", created, created)

	rc.logger.Info("Запись создана", zap.String("kind", kind.Name), zap.String("id", created.ID()))
	return created, nil
}

func (rc *RecordController) insert(ctx context.Context, kind Kind, rec repositories.Record) (repositories.Record, error) {
	if kind.Name == OrganizationSettings.Name {
		rc.uniqueMu.Lock()
		defer rc.uniqueMu.Unlock()
	}
	if err := rc.beforeCreate(ctx, kind, rec); err != nil {
		return nil, err
	}
	return rc.repo.Create(ctx, kind.Name, rec)
}

func (rc *RecordController) Update(kind Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := utils.ContextWithTimeout(c, requestTimeout)
		defer cancel()

		id := c.Param("id")
		patch, err := decodeBody(c, kind.NewUpdate())
		if err != nil {
			return rc.fail(c, err)
		}
		if err := rc.checkReferences(ctx, kind, id, patch); err != nil {
			return rc.fail(c, err)
		}

		protected := append(append([]string{}, serverFields...), kind.Immutable...)
		updated, err := rc.repo.Patch(ctx, kind.Name, id, func(rec repositories.Record) error {
			utils.MergePatch(rec, patch, protected...)
			rec["updated_at"] = rc.timestamp()
			return nil
		})
		if err != nil {
			return rc.fail(c, err)
		}
		rc.afterMutation(ctx, kind, "update", updated, patch)
		return api.SuccessOne(c, http.StatusOK, rc.envelope, updated)
	}
}

// Delete - мягкое удаление: запись остаётся и читается с is_active=false.
func (rc *RecordController) Delete(kind Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := utils.ContextWithTimeout(c, requestTimeout)
		defer cancel()

		updated, err := rc.repo.Patch(ctx, kind.Name, c.Param("id"), func(rec repositories.Record) error {
			rec["is_active"] = false
			rec["updated_at"] = rc.timestamp()
			return nil
		})
		if err != nil {
			return rc.fail(c, err)
		}
		rc.afterMutation(ctx, kind, "delete", updated, map[string]any{"is_active": false})
		return api.NoContent(c)
	}
}

// HardDelete удаляет запись физически; повторный вызов даёт 404.
func (rc *RecordController) HardDelete(kind Kind) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := utils.ContextWithTimeout(c, requestTimeout)
		defer cancel()

		id := c.Param("id")
		existing, err := rc.repo.Find(ctx, kind.Name, id)
		if err != nil {
			return rc.fail(c, err)
		}
		if err := rc.repo.Delete(ctx, kind.Name, id); err != nil {
			return rc.fail(c, err)
		}
		rc.afterHardDelete(ctx, kind, existing)
		rc.afterMutation(ctx, kind, "hard_delete", existing, nil)

		rc.logger.Warn("Запись удалена безвозвратно", zap.String("kind", kind.Name), zap.String("id", id))
		return api.NoContent(c)
	}
}

// checkReferences проверяет, что поля-ссылки указывают на существующие записи.
func (rc *RecordController) checkReferences(ctx context.Context, kind Kind, id string, fields map[string]any) error {
	keys := make([]string, 0, len(kind.References))
	for field := range kind.References {
		keys = append(keys, field)
	}
	sort.Strings(keys)

	for _, field := range keys {
		target := kind.References[field]
		for _, refID := range referencedIDs(fields[field]) {
			if target == kind.Name && refID == id {
				return apperrors.NewValidationError("Запись не может ссылаться на себя",
					map[string][]string{field: {"Запись не может ссылаться на себя"}}, nil)
			}
			if _, err := rc.repo.Find(ctx, target, refID); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					msg := fmt.Sprintf("%s %q не найден", target, refID)
					return apperrors.NewValidationError("Ссылка на несуществующую запись",
						map[string][]string{field: {msg}}, err)
				}
				return err
			}
		}
	}
	return nil
}

func referencedIDs(value any) []string {
	switch v := value.(type) {
	case string:
		if v != "" {
			return []string{v}
		}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// decodeBody читает JSON-объект тела, проверяет его через target (DTO) и
// возвращает поля как есть, чтобы сохранить всё, что прислал клиент.
func decodeBody(c echo.Context, target any) (map[string]any, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
	if err != nil {
		return nil, apperrors.NewInvalidInputError("не удалось прочитать тело запроса")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	fields := map[string]any{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, apperrors.NewInvalidInputError("неверное тело запроса: ожидается JSON-объект")
	}
	if target != nil {
		if err := json.Unmarshal(body, target); err != nil {
			return nil, apperrors.NewInvalidInputError("неверное тело запроса: %v", err)
		}
		if err := c.Validate(target); err != nil {
			return nil, validation.ToValidationError(err)
		}
	}
	return fields, nil
}
