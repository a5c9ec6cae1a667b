package entities

import (
	"github.com/aarondl/null/v8"

	"orgdash/pkg/types"
)

type Team struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Description  null.String `json:"description"`
	DepartmentID string      `json:"department_id"`
	LeaderID     null.String `json:"leader_id"`
	ProjectID    null.String `json:"project_id"`
	Skills       []string    `json:"skills"`

	types.SoftDelete
	types.BaseEntity
}

type TeamMember struct {
	ID                string       `json:"id"`
	UserID            string       `json:"user_id"`
	TeamID            string       `json:"team_id"`
	Role              string       `json:"role"`
	IsLeader          bool         `json:"is_leader"`
	JoinDate          string       `json:"join_date"`
	Skills            []string     `json:"skills"`
	Availability      null.String  `json:"availability"`
	PerformanceRating null.Float64 `json:"performance_rating"`

	types.SoftDelete
	types.BaseEntity
}
