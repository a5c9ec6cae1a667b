package dto

import "github.com/aarondl/null/v8"

type CreateRoleDTO struct {
	Name          string      `json:"name" validate:"required,max=50"`
	Description   null.String `json:"description" validate:"omitempty,max=255"`
	PermissionIDs []string    `json:"permission_ids,omitempty" validate:"omitempty,dive,required"`
}

type UpdateRoleDTO struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=50"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// PermissionIDsDTO - тело assign_permissions/ и revoke_permissions/.
type PermissionIDsDTO struct {
	PermissionIDs []string `json:"permission_ids" validate:"required,min=1,dive,required"`
}

type CreatePermissionDTO struct {
	Name        string      `json:"name" validate:"required,max=100,permission_code"`
	Description null.String `json:"description" validate:"omitempty,max=255"`
	ResourceID  null.String `json:"resource_id"`
	Action      string      `json:"action" validate:"required,oneof=view create update delete manage"`
}

type UpdatePermissionDTO struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100,permission_code"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
	Action      *string `json:"action,omitempty" validate:"omitempty,oneof=view create update delete manage"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type CreateResourceDTO struct {
	Name        string      `json:"name" validate:"required,max=100"`
	Type        string      `json:"type" validate:"required,oneof=entity api ui"`
	Description null.String `json:"description" validate:"omitempty,max=255"`
	Path        null.String `json:"path" validate:"omitempty,max=255"`
}

type UpdateResourceDTO struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Type        *string `json:"type,omitempty" validate:"omitempty,oneof=entity api ui"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
	Path        *string `json:"path,omitempty" validate:"omitempty,max=255"`
	IsActive    *bool   `json:"is_active,omitempty"`
}
