package entities

import (
	"fmt"
	"time"
)

// AggregateVersion - версия схемы агрегатов, о которой договорились с бэкендом.
// Ответ с другой версией клиент отклоняет.
const AggregateVersion = 1

func (a OrganizationAnalytics) SchemaVersion() int { return a.Version }
func (a OrganizationActivity) SchemaVersion() int  { return a.Version }
func (a OrganizationGrowth) SchemaVersion() int    { return a.Version }
func (a DepartmentPerformance) SchemaVersion() int { return a.Version }
func (a DepartmentAnalytics) SchemaVersion() int   { return a.Version }
func (a TeamPerformance) SchemaVersion() int       { return a.Version }

type OrganizationAnalytics struct {
	Version            int     `json:"version"`
	OrganizationID     string  `json:"organization_id"`
	DepartmentCount    int     `json:"department_count"`
	TeamCount          int     `json:"team_count"`
	MemberCount        int     `json:"member_count"`
	ActiveMemberCount  int     `json:"active_member_count"`
	AveragePerformance float64 `json:"average_performance"`
	TotalBudget        float64 `json:"total_budget"`
	TotalHeadcount     int64   `json:"total_headcount"`
}

// ActivePercent - доля активных участников, "75.0%".
func (a OrganizationAnalytics) ActivePercent() string {
	return FormatPercent(a.ActiveMemberCount, a.MemberCount)
}

type ActivityItem struct {
	ID           string    `json:"id"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	ActorID      string    `json:"actor_id,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

type OrganizationActivity struct {
	Version        int            `json:"version"`
	OrganizationID string         `json:"organization_id"`
	Items          []ActivityItem `json:"items"`
}

// GrowthPoint - сколько записей создано за период ("2024-03").
type GrowthPoint struct {
	Period      string `json:"period"`
	Departments int    `json:"departments"`
	Teams       int    `json:"teams"`
	Members     int    `json:"members"`
}

type OrganizationGrowth struct {
	Version        int           `json:"version"`
	OrganizationID string        `json:"organization_id"`
	Points         []GrowthPoint `json:"points"`
}

type DepartmentPerformance struct {
	Version            int     `json:"version"`
	DepartmentID       string  `json:"department_id"`
	TeamCount          int     `json:"team_count"`
	MemberCount        int     `json:"member_count"`
	AveragePerformance float64 `json:"average_performance"`
	Budget             float64 `json:"budget"`
	Headcount          int64   `json:"headcount"`
	BudgetPerHead      float64 `json:"budget_per_head"`
}

type DepartmentAnalytics struct {
	Version            int            `json:"version"`
	DepartmentID       string         `json:"department_id"`
	SubDepartmentCount int            `json:"sub_department_count"`
	TeamCount          int            `json:"team_count"`
	MemberCount        int            `json:"member_count"`
	LeaderCount        int            `json:"leader_count"`
	SkillCoverage      map[string]int `json:"skill_coverage"`
}

type TeamPerformance struct {
	Version            int            `json:"version"`
	TeamID             string         `json:"team_id"`
	MemberCount        int            `json:"member_count"`
	LeaderCount        int            `json:"leader_count"`
	AveragePerformance float64        `json:"average_performance"`
	SkillCoverage      map[string]int `json:"skill_coverage"`
}

// Score - средняя оценка с одним знаком, "4.3 / 5".
func (t TeamPerformance) Score() string {
	return fmt.Sprintf("%.1f / 5", t.AveragePerformance)
}

// FormatPercent: part от total с одним знаком после запятой; total == 0 даёт "0.0%".
func FormatPercent(part, total int) string {
	if total <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)*100/float64(total))
}
