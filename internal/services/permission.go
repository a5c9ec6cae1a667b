package services

import (
	"context"

	"go.uber.org/zap"

	"orgdash/internal/dto"
	"orgdash/internal/entities"
	"orgdash/internal/resource"
	"orgdash/pkg/types"
	"orgdash/pkg/validation"
)

type PermissionServiceInterface interface {
	GetPermissions(ctx context.Context, params types.Params) (types.PaginatedResponse[entities.Permission], error)
	GetPermission(ctx context.Context, id string) (*entities.Permission, error)
	CreatePermission(ctx context.Context, payload dto.CreatePermissionDTO) (*entities.Permission, error)
	UpdatePermission(ctx context.Context, id string, patch dto.UpdatePermissionDTO) (*entities.Permission, error)
	DeletePermission(ctx context.Context, id string) (bool, error)
	HardDeletePermission(ctx context.Context, id string) (bool, error)
}

type PermissionService struct {
	crud crudService[entities.Permission, dto.CreatePermissionDTO, dto.UpdatePermissionDTO]
}

func NewPermissionService(client *resource.Client[entities.Permission], v *validation.CustomValidator, logger *zap.Logger) *PermissionService {
	return &PermissionService{crud: newCRUD[entities.Permission, dto.CreatePermissionDTO, dto.UpdatePermissionDTO](client, v, logger, "rbac/permissions")}
}

func (s *PermissionService) GetPermissions(ctx context.Context, params types.Params) (types.PaginatedResponse[entities.Permission], error) {
	return s.crud.list(ctx, params)
}

func (s *PermissionService) GetPermission(ctx context.Context, id string) (*entities.Permission, error) {
	return s.crud.get(ctx, id)
}

func (s *PermissionService) CreatePermission(ctx context.Context, payload dto.CreatePermissionDTO) (*entities.Permission, error) {
	return s.crud.create(ctx, payload)
}

func (s *PermissionService) UpdatePermission(ctx context.Context, id string, patch dto.UpdatePermissionDTO) (*entities.Permission, error) {
	return s.crud.update(ctx, id, patch)
}

func (s *PermissionService) DeletePermission(ctx context.Context, id string) (bool, error) {
	return s.crud.delete(ctx, id)
}

func (s *PermissionService) HardDeletePermission(ctx context.Context, id string) (bool, error) {
	return s.crud.hardDelete(ctx, id)
}
