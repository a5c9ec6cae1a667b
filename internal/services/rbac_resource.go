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

type ResourceServiceInterface interface {
	GetResources(ctx context.Context, params types.Params) (types.PaginatedResponse[entities.Resource], error)
	GetResource(ctx context.Context, id string) (*entities.Resource, error)
	CreateResource(ctx context.Context, payload dto.CreateResourceDTO) (*entities.Resource, error)
	UpdateResource(ctx context.Context, id string, patch dto.UpdateResourceDTO) (*entities.Resource, error)
	DeleteResource(ctx context.Context, id string) (bool, error)
	HardDeleteResource(ctx context.Context, id string) (bool, error)
	GetResourcePermissions(ctx context.Context, id string, params types.Params) (types.PaginatedResponse[entities.Permission], error)
}

// ResourceService - RBAC-ресурсы, то есть объекты, на которые выдаются права.
type ResourceService struct {
	crud crudService[entities.Resource, dto.CreateResourceDTO, dto.UpdateResourceDTO]
}

func NewResourceService(client *resource.Client[entities.Resource], v *validation.CustomValidator, logger *zap.Logger) *ResourceService {
	return &ResourceService{crud: newCRUD[entities.Resource, dto.CreateResourceDTO, dto.UpdateResourceDTO](client, v, logger, "rbac/resources")}
}

func (s *ResourceService) GetResources(ctx context.Context, params types.Params) (types.PaginatedResponse[entities.Resource], error) {
	return s.crud.list(ctx, params)
}

func (s *ResourceService) GetResource(ctx context.Context, id string) (*entities.Resource, error) {
	return s.crud.get(ctx, id)
}

func (s *ResourceService) CreateResource(ctx context.Context, payload dto.CreateResourceDTO) (*entities.Resource, error) {
	return s.crud.create(ctx, payload)
}

func (s *ResourceService) UpdateResource(ctx context.Context, id string, patch dto.UpdateResourceDTO) (*entities.Resource, error) {
	return s.crud.update(ctx, id, patch)
}

func (s *ResourceService) DeleteResource(ctx context.Context, id string) (bool, error) {
	return s.crud.delete(ctx, id)
}

func (s *ResourceService) HardDeleteResource(ctx context.Context, id string) (bool, error) {
	return s.crud.hardDelete(ctx, id)
}

func (s *ResourceService) GetResourcePermissions(ctx context.Context, id string, params types.Params) (types.PaginatedResponse[entities.Permission], error) {
	return resource.ListRelated[entities.Permission](ctx, s.crud.client, id, "permissions", params)
}
