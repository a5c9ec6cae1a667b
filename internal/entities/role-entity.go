package entities

import (
	"github.com/aarondl/null/v8"

	"orgdash/pkg/types"
)

type Role struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   null.String `json:"description"`
	IsSystem      bool        `json:"is_system"`
	PermissionIDs []string    `json:"permission_ids"`

	types.SoftDelete
	types.BaseEntity
}

// Resource - то, на что выдаются права: сущность, API или экран UI.
type Resource struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Description null.String `json:"description"`
	Path        null.String `json:"path"`

	types.SoftDelete
	types.BaseEntity
}
