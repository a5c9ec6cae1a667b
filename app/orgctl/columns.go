package main

import (
	"strings"
	"time"

	"github.com/aarondl/null/v8"

	"orgdash/internal/entities"
	"orgdash/pkg/export"
)

const dateTimeFormat = "02.01.2006 15:04"

func optional(s null.String) any {
	if !s.Valid {
		return ""
	}
	return s.String
}

func stamp(t *time.Time) any {
	if t == nil {
		return ""
	}
	return t.Local().Format(dateTimeFormat)
}

func yesNo(v bool) string {
	if v {
		return "да"
	}
	return "нет"
}

var organizationColumns = []export.Column[entities.Organization]{
	{Header: "ID", Width: 38, Value: func(o entities.Organization) any { return o.ID }},
	{Header: "Название", Width: 30, Value: func(o entities.Organization) any { return o.Name }},
	{Header: "Отрасль", Width: 20, Value: func(o entities.Organization) any { return optional(o.Industry) }},
	{Header: "Размер", Value: func(o entities.Organization) any { return optional(o.Size) }},
	{Header: "Город", Width: 20, Value: func(o entities.Organization) any { return optional(o.Location) }},
	{Header: "Email", Width: 30, Value: func(o entities.Organization) any { return optional(o.ContactEmail) }},
	{Header: "Сайт", Width: 30, Value: func(o entities.Organization) any { return optional(o.Website) }},
	{Header: "Основана", Value: func(o entities.Organization) any { return optional(o.FoundingDate) }},
	{Header: "Активна", Value: func(o entities.Organization) any { return yesNo(o.IsActive) }},
	{Header: "Создана", Width: 18, Value: func(o entities.Organization) any { return stamp(o.CreatedAt) }},
}

var departmentColumns = []export.Column[entities.Department]{
	{Header: "ID", Width: 38, Value: func(d entities.Department) any { return d.ID }},
	{Header: "Название", Width: 30, Value: func(d entities.Department) any { return d.Name }},
	{Header: "Организация", Width: 38, Value: func(d entities.Department) any { return d.OrganizationID }},
	{Header: "Родительский отдел", Width: 38, Value: func(d entities.Department) any { return optional(d.ParentDepartmentID) }},
	{Header: "Бюджет", Width: 14, Value: func(d entities.Department) any {
		if !d.Budget.Valid {
			return ""
		}
		return d.Budget.Float64
	}},
	{Header: "Численность", Value: func(d entities.Department) any {
		if !d.Headcount.Valid {
			return ""
		}
		return d.Headcount.Int
	}},
	{Header: "Город", Width: 20, Value: func(d entities.Department) any { return optional(d.Location) }},
	{Header: "Активен", Value: func(d entities.Department) any { return yesNo(d.IsActive) }},
	{Header: "Создан", Width: 18, Value: func(d entities.Department) any { return stamp(d.CreatedAt) }},
}

var teamColumns = []export.Column[entities.Team]{
	{Header: "ID", Width: 38, Value: func(t entities.Team) any { return t.ID }},
	{Header: "Название", Width: 30, Value: func(t entities.Team) any { return t.Name }},
	{Header: "Отдел", Width: 38, Value: func(t entities.Team) any { return t.DepartmentID }},
	{Header: "Лидер", Width: 20, Value: func(t entities.Team) any { return optional(t.LeaderID) }},
	{Header: "Навыки", Width: 40, Value: func(t entities.Team) any { return strings.Join(t.Skills, ", ") }},
	{Header: "Активна", Value: func(t entities.Team) any { return yesNo(t.IsActive) }},
	{Header: "Создана", Width: 18, Value: func(t entities.Team) any { return stamp(t.CreatedAt) }},
}

var teamMemberColumns = []export.Column[entities.TeamMember]{
	{Header: "ID", Width: 38, Value: func(m entities.TeamMember) any { return m.ID }},
	{Header: "Пользователь", Width: 20, Value: func(m entities.TeamMember) any { return m.UserID }},
	{Header: "Команда", Width: 38, Value: func(m entities.TeamMember) any { return m.TeamID }},
	{Header: "Роль", Width: 20, Value: func(m entities.TeamMember) any { return m.Role }},
	{Header: "Лидер", Value: func(m entities.TeamMember) any { return yesNo(m.IsLeader) }},
	{Header: "Навыки", Width: 40, Value: func(m entities.TeamMember) any { return strings.Join(m.Skills, ", ") }},
	{Header: "Оценка", Value: func(m entities.TeamMember) any {
		if !m.PerformanceRating.Valid {
			return ""
		}
		return m.PerformanceRating.Float64
	}},
	{Header: "Дата вступления", Width: 14, Value: func(m entities.TeamMember) any { return m.JoinDate }},
}

var auditLogColumns = []export.Column[entities.AuditLog]{
	{Header: "Время", Width: 18, Value: func(l entities.AuditLog) any { return l.Timestamp.Local().Format(dateTimeFormat) }},
	{Header: "Действие", Width: 20, Value: func(l entities.AuditLog) any { return l.Action }},
	{Header: "Ресурс", Width: 22, Value: func(l entities.AuditLog) any { return l.ResourceType }},
	{Header: "ID записи", Width: 38, Value: func(l entities.AuditLog) any { return l.ResourceID }},
	{Header: "Автор", Width: 20, Value: func(l entities.AuditLog) any { return optional(l.ActorID) }},
}
