package services

import (
	"context"

	"go.uber.org/zap"

	"orgdash/internal/resource"
	apperrors "orgdash/pkg/errors"
	"orgdash/pkg/types"
	"orgdash/pkg/validation"
)

// crudService - общий набор операций, который каждый сервис оборачивает
// в методы со своими именами. C и U - DTO создания и частичного обновления.
type crudService[T, C, U any] struct {
	client    *resource.Client[T]
	validator *validation.CustomValidator
	logger    *zap.Logger
	label     string
}

func newCRUD[T, C, U any](client *resource.Client[T], v *validation.CustomValidator, logger *zap.Logger, label string) crudService[T, C, U] {
	return crudService[T, C, U]{client: client, validator: v, logger: logger, label: label}
}

func (s crudService[T, C, U]) list(ctx context.Context, params types.Params) (types.PaginatedResponse[T], error) {
	return s.client.List(ctx, params)
}

func (s crudService[T, C, U]) listAll(ctx context.Context, params types.Params) ([]T, error) {
	return s.client.ListAll(ctx, params)
}

func (s crudService[T, C, U]) get(ctx context.Context, id string) (*T, error) {
	item, err := s.client.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s crudService[T, C, U]) create(ctx context.Context, payload C) (*T, error) {
	if err := s.validate(payload); err != nil {
		return nil, err
	}
	item, err := s.client.Create(ctx, payload)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Запись создана", zap.String("resource", s.label))
	return &item, nil
}

func (s crudService[T, C, U]) update(ctx context.Context, id string, patch U) (*T, error) {
	if err := s.validate(patch); err != nil {
		return nil, err
	}
	item, err := s.client.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Запись обновлена", zap.String("resource", s.label), zap.String("id", id))
	return &item, nil
}

func (s crudService[T, C, U]) delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.client.Delete(ctx, id)
	if err == nil {
		s.logger.Info("Запись деактивирована", zap.String("resource", s.label), zap.String("id", id))
	}
	return ok, err
}

func (s crudService[T, C, U]) hardDelete(ctx context.Context, id string) (bool, error) {
	ok, err := s.client.HardDelete(ctx, id)
	if err == nil {
		s.logger.Warn("Запись удалена безвозвратно", zap.String("resource", s.label), zap.String("id", id))
	}
	return ok, err
}

// validate проверяет DTO до отправки. Ошибка уходит в лог так же, как
// ValidationError от бэкенда.
func (s crudService[T, C, U]) validate(payload any) error {
	if err := s.validator.Validate(payload); err != nil {
		validationErr := validation.ToValidationError(err)
		apperrors.LogError(s.logger, validationErr)
		return validationErr
	}
	return nil
}
