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

type RoleServiceInterface interface {
	GetRoles(ctx context.Context, params types.Params) (types.PaginatedResponse[entities.Role], error)
	GetRole(ctx context.Context, id string) (*entities.Role, error)
	CreateRole(ctx context.Context, payload dto.CreateRoleDTO) (*entities.Role, error)
	UpdateRole(ctx context.Context, id string, patch dto.UpdateRoleDTO) (*entities.Role, error)
	DeleteRole(ctx context.Context, id string) (bool, error)
	HardDeleteRole(ctx context.Context, id string) (bool, error)
	GetRolePermissions(ctx context.Context, id string, params types.Params) (types.PaginatedResponse[entities.Permission], error)
	AssignPermissions(ctx context.Context, id string, payload dto.PermissionIDsDTO) (*entities.Role, error)
	RevokePermissions(ctx context.Context, id string, payload dto.PermissionIDsDTO) (*entities.Role, error)
}

type RoleService struct {
	crud crudService[entities.Role, dto.CreateRoleDTO, dto.UpdateRoleDTO]
}

func NewRoleService(client *resource.Client[entities.Role], v *validation.CustomValidator, logger *zap.Logger) *RoleService {
	return &RoleService{crud: newCRUD[entities.Role, dto.CreateRoleDTO, dto.UpdateRoleDTO](client, v, logger, "rbac/roles")}
}

func (s *RoleService) GetRoles(ctx context.Context, params types.Params) (types.PaginatedResponse[entities.Role], error) {
	return s.crud.list(ctx, params)
}

func (s *RoleService) GetRole(ctx context.Context, id string) (*entities.Role, error) {
	return s.crud.get(ctx, id)
}

func (s *RoleService) CreateRole(ctx context.Context, payload dto.CreateRoleDTO) (*entities.Role, error) {
	return s.crud.create(ctx, payload)
}

func (s *RoleService) UpdateRole(ctx context.Context, id string, patch dto.UpdateRoleDTO) (*entities.Role, error) {
	return s.crud.update(ctx, id, patch)
}

func (s *RoleService) DeleteRole(ctx context.Context, id string) (bool, error) {
	return s.crud.delete(ctx, id)
}

func (s *RoleService) HardDeleteRole(ctx context.Context, id string) (bool, error) {
	return s.crud.hardDelete(ctx, id)
}

func (s *RoleService) GetRolePermissions(ctx context.Context, id string, params types.Params) (types.PaginatedResponse[entities.Permission], error) {
	return resource.ListRelated[entities.Permission](ctx, s.crud.client, id, "permissions", params)
}

func (s *RoleService) AssignPermissions(ctx context.Context, id string, payload dto.PermissionIDsDTO) (*entities.Role, error) {
	return s.permissionAction(ctx, id, "assign_permissions", payload)
}

func (s *RoleService) RevokePermissions(ctx context.Context, id string, payload dto.PermissionIDsDTO) (*entities.Role, error) {
	return s.permissionAction(ctx, id, "revoke_permissions", payload)
}

func (s *RoleService) permissionAction(ctx context.Context, id, action string, payload dto.PermissionIDsDTO) (*entities.Role, error) {
	if err := s.crud.validate(payload); err != nil {
		return nil, err
	}
	role, err := resource.ItemAction[entities.Role](ctx, s.crud.client, id, action, payload)
	if err != nil {
		return nil, err
	}
	s.crud.logger.Info("Права роли изменены",
		zap.String("role_id", id),
		zap.String("action", action),
		zap.Strings("permission_ids", payload.PermissionIDs),
	)
	return &role, nil
}
