package entities

import (
	"github.com/aarondl/null/v8"

	"orgdash/pkg/types"
)

// Department образует дерево через ParentDepartmentID. Отсутствие циклов
// здесь не проверяется.
type Department struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Description        null.String  `json:"description"`
	OrganizationID     string       `json:"organization_id"`
	ParentDepartmentID null.String  `json:"parent_department_id"`
	ManagerID          null.String  `json:"manager_id"`
	Budget             null.Float64 `json:"budget"`
	Headcount          null.Int     `json:"headcount"`
	Location           null.String  `json:"location"`

	types.SoftDelete
	types.BaseEntity
}
