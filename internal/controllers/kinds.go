package controllers

import (
	"orgdash/internal/authz"
	"orgdash/internal/dto"
)

// Kind описывает коллекцию сервера разработки: имя в хранилище (оно же
// ресурс прав), поля поиска, DTO для проверки тел и значения по умолчанию.
type Kind struct {
	Name            string
	SearchFields    []string
	DefaultOrdering []string
	NewCreate       func() any
	NewUpdate       func() any
	Defaults        map[string]func() any
	// References: поле -> коллекция, в которой должна существовать запись.
	References map[string]string
	// Immutable не меняются через PATCH.
	Immutable []string
	ReadOnly  bool
}

func (k Kind) Permission(action string) string {
	return authz.Permission(k.Name, action)
}

func emptyList() any { return []any{} }
func emptyMap() any  { return map[string]any{} }
func isFalse() any   { return false }

var (
	Organizations = Kind{
		Name:         "organizations",
		SearchFields: []string{"name", "description", "industry", "location"},
		NewCreate:    func() any { return &dto.CreateOrganizationDTO{} },
		NewUpdate:    func() any { return &dto.UpdateOrganizationDTO{} },
		Defaults:     map[string]func() any{"settings_id": func() any { return nil }},
	}
	Departments = Kind{
		Name:         "departments",
		SearchFields: []string{"name", "description", "location"},
		NewCreate:    func() any { return &dto.CreateDepartmentDTO{} },
		NewUpdate:    func() any { return &dto.UpdateDepartmentDTO{} },
		References:   map[string]string{"organization_id": "organizations", "parent_department_id": "departments"},
	}
	Teams = Kind{
		Name:         "teams",
		SearchFields: []string{"name", "description"},
		NewCreate:    func() any { return &dto.CreateTeamDTO{} },
		NewUpdate:    func() any { return &dto.UpdateTeamDTO{} },
		Defaults:     map[string]func() any{"skills": emptyList},
		References:   map[string]string{"department_id": "departments"},
	}
	TeamMembers = Kind{
		Name:         "team-members",
		SearchFields: []string{"user_id", "role"},
		NewCreate:    func() any { return &dto.CreateTeamMemberDTO{} },
		NewUpdate:    func() any { return &dto.UpdateTeamMemberDTO{} },
		Defaults:     map[string]func() any{"skills": emptyList, "is_leader": isFalse},
		References:   map[string]string{"team_id": "teams"},
		Immutable:    []string{"team_id", "user_id"},
	}
	OrganizationSettings = Kind{
		Name:      "organization-settings",
		NewCreate: func() any { return &dto.CreateOrganizationSettingsDTO{} },
		NewUpdate: func() any { return &dto.UpdateOrganizationSettingsDTO{} },
		Defaults: map[string]func() any{
			"theme":                    func() any { return "light" },
			"language":                 func() any { return "ru" },
			"timezone":                 func() any { return "UTC" },
			"date_format":              func() any { return "YYYY-MM-DD" },
			"notification_preferences": emptyMap,
			"security_settings":        emptyMap,
			"feature_flags":            emptyMap,
		},
		References: map[string]string{"organization_id": "organizations"},
		Immutable:  []string{"organization_id"},
	}

	Roles = Kind{
		Name:         "rbac-roles",
		SearchFields: []string{"name", "description"},
		NewCreate:    func() any { return &dto.CreateRoleDTO{} },
		NewUpdate:    func() any { return &dto.UpdateRoleDTO{} },
		Defaults:     map[string]func() any{"permission_ids": emptyList, "is_system": isFalse},
		References:   map[string]string{"permission_ids": "rbac-permissions"},
	}
	Permissions = Kind{
		Name:         "rbac-permissions",
		SearchFields: []string{"name", "description"},
		NewCreate:    func() any { return &dto.CreatePermissionDTO{} },
		NewUpdate:    func() any { return &dto.UpdatePermissionDTO{} },
		References:   map[string]string{"resource_id": "rbac-resources"},
	}
	Resources = Kind{
		Name:         "rbac-resources",
		SearchFields: []string{"name", "description", "path"},
		NewCreate:    func() any { return &dto.CreateResourceDTO{} },
		NewUpdate:    func() any { return &dto.UpdateResourceDTO{} },
	}
	AuditLogs = Kind{
		Name:            "rbac-audit-logs",
		SearchFields:    []string{"action", "resource_type", "resource_id"},
		DefaultOrdering: []string{"-timestamp"},
		ReadOnly:        true,
	}
)
