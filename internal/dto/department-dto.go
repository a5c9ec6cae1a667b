package dto

import "github.com/aarondl/null/v8"

type CreateDepartmentDTO struct {
	Name               string       `json:"name" validate:"required,min=2,max=255"`
	Description        null.String  `json:"description" validate:"omitempty,max=2000"`
	OrganizationID     string       `json:"organization_id" validate:"required"`
	ParentDepartmentID null.String  `json:"parent_department_id"`
	ManagerID          null.String  `json:"manager_id"`
	Budget             null.Float64 `json:"budget" validate:"omitempty,gte=0"`
	Headcount          null.Int     `json:"headcount" validate:"omitempty,gte=0"`
	Location           null.String  `json:"location" validate:"omitempty,max=255"`
}

type UpdateDepartmentDTO struct {
	Name               *string  `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description        *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	ParentDepartmentID *string  `json:"parent_department_id,omitempty"`
	ManagerID          *string  `json:"manager_id,omitempty"`
	Budget             *float64 `json:"budget,omitempty" validate:"omitempty,gte=0"`
	Headcount          *int     `json:"headcount,omitempty" validate:"omitempty,gte=0"`
	Location           *string  `json:"location,omitempty" validate:"omitempty,max=255"`
	IsActive           *bool    `json:"is_active,omitempty"`
}
