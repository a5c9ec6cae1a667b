package dto

import "github.com/aarondl/null/v8"

type CreateTeamDTO struct {
	Name         string      `json:"name" validate:"required,min=2,max=255"`
	Description  null.String `json:"description" validate:"omitempty,max=2000"`
	DepartmentID string      `json:"department_id" validate:"required"`
	LeaderID     null.String `json:"leader_id"`
	ProjectID    null.String `json:"project_id"`
	Skills       []string    `json:"skills,omitempty" validate:"omitempty,dive,required,max=50"`
}

type UpdateTeamDTO struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	LeaderID    *string  `json:"leader_id,omitempty"`
	ProjectID   *string  `json:"project_id,omitempty"`
	Skills      []string `json:"skills,omitempty" validate:"omitempty,dive,required,max=50"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

type CreateTeamMemberDTO struct {
	UserID            string       `json:"user_id" validate:"required"`
	TeamID            string       `json:"team_id" validate:"required"`
	Role              string       `json:"role" validate:"omitempty,max=100"`
	IsLeader          bool         `json:"is_leader"`
	JoinDate          string       `json:"join_date" validate:"omitempty,iso_date"`
	Skills            []string     `json:"skills,omitempty" validate:"omitempty,dive,required,max=50"`
	Availability      null.String  `json:"availability" validate:"omitempty,max=50"`
	PerformanceRating null.Float64 `json:"performance_rating" validate:"omitempty,gte=0,lte=5"`
}

type UpdateTeamMemberDTO struct {
	Role              *string  `json:"role,omitempty" validate:"omitempty,max=100"`
	IsLeader          *bool    `json:"is_leader,omitempty"`
	JoinDate          *string  `json:"join_date,omitempty" validate:"omitempty,iso_date"`
	Skills            []string `json:"skills,omitempty" validate:"omitempty,dive,required,max=50"`
	Availability      *string  `json:"availability,omitempty" validate:"omitempty,max=50"`
	PerformanceRating *float64 `json:"performance_rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	IsActive          *bool    `json:"is_active,omitempty"`
}
