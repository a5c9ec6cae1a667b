package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"orgdash/internal/entities"
	"orgdash/internal/services"
	"orgdash/pkg/export"
	"orgdash/pkg/types"
)

// resourceCommands - что orgctl умеет делать с одним ресурсом.
// exportTo == nil означает, что выгрузка для ресурса не поддерживается.
type resourceCommands struct {
	list     func(ctx context.Context, params types.Params) (any, error)
	get      func(ctx context.Context, id string) (any, error)
	exportTo func(ctx context.Context, w io.Writer, organizationID string) (int, error)
}

func writeSheet[T any](w io.Writer, sheet string, columns []export.Column[T], rows []T) (int, error) {
	if err := export.WriteXLSX(w, sheet, columns, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func registry(api *services.API) map[string]resourceCommands {
	return map[string]resourceCommands{
		"organizations": {
			list: func(ctx context.Context, p types.Params) (any, error) { return api.Organizations.GetOrganizations(ctx, p) },
			get:  func(ctx context.Context, id string) (any, error) { return api.Organizations.GetOrganization(ctx, id) },
			exportTo: func(ctx context.Context, w io.Writer, orgID string) (int, error) {
				var rows []entities.Organization
				if orgID != "" {
					org, err := api.Organizations.GetOrganization(ctx, orgID)
					if err != nil {
						return 0, err
					}
					rows = []entities.Organization{*org}
				} else {
					var err error
					if rows, err = api.Organizations.GetAllOrganizations(ctx, types.Params{"ordering": "name"}); err != nil {
						return 0, err
					}
				}
				return writeSheet(w, "Организации", organizationColumns, rows)
			},
		},
		"departments": {
			list: func(ctx context.Context, p types.Params) (any, error) { return api.Departments.GetDepartments(ctx, p) },
			get:  func(ctx context.Context, id string) (any, error) { return api.Departments.GetDepartment(ctx, id) },
			exportTo: func(ctx context.Context, w io.Writer, orgID string) (int, error) {
				var rows []entities.Department
				var err error
				if orgID != "" {
					rows, err = api.Organizations.GetAllOrganizationDepartments(ctx, orgID, nil)
				} else {
					rows, err = api.Departments.GetAllDepartments(ctx, nil)
				}
				if err != nil {
					return 0, err
				}
				return writeSheet(w, "Отделы", departmentColumns, rows)
			},
		},
		"teams": {
			list: func(ctx context.Context, p types.Params) (any, error) { return api.Teams.GetTeams(ctx, p) },
			get:  func(ctx context.Context, id string) (any, error) { return api.Teams.GetTeam(ctx, id) },
			exportTo: func(ctx context.Context, w io.Writer, orgID string) (int, error) {
				var rows []entities.Team
				var err error
				if orgID != "" {
					rows, err = api.Organizations.GetAllOrganizationTeams(ctx, orgID, nil)
				} else {
					rows, err = api.Teams.GetAllTeams(ctx, nil)
				}
				if err != nil {
					return 0, err
				}
				return writeSheet(w, "Команды", teamColumns, rows)
			},
		},
		"team-members": {
			list: func(ctx context.Context, p types.Params) (any, error) { return api.TeamMembers.GetTeamMemberList(ctx, p) },
			get:  func(ctx context.Context, id string) (any, error) { return api.TeamMembers.GetTeamMember(ctx, id) },
			exportTo: func(ctx context.Context, w io.Writer, orgID string) (int, error) {
				if orgID == "" {
					rows, err := api.TeamMembers.GetAllTeamMembers(ctx, nil)
					if err != nil {
						return 0, err
					}
					return writeSheet(w, "Участники", teamMemberColumns, rows)
				}

				teams, err := api.Organizations.GetAllOrganizationTeams(ctx, orgID, nil)
				if err != nil {
					return 0, err
				}
				var rows []entities.TeamMember
				for _, team := range teams {
					members, err := api.Teams.GetAllTeamMembers(ctx, team.ID, nil)
					if err != nil {
						return 0, err
					}
					rows = append(rows, members...)
				}
				return writeSheet(w, "Участники", teamMemberColumns, rows)
			},
		},
		"organization-settings": {
			list: func(ctx context.Context, p types.Params) (any, error) {
				return api.OrganizationSettings.GetOrganizationSettingsList(ctx, p)
			},
			get: func(ctx context.Context, id string) (any, error) {
				return api.OrganizationSettings.GetOrganizationSettings(ctx, id)
			},
		},
		"roles": {
			list: func(ctx context.Context, p types.Params) (any, error) { return api.Roles.GetRoles(ctx, p) },
			get:  func(ctx context.Context, id string) (any, error) { return api.Roles.GetRole(ctx, id) },
		},
		"permissions": {
			list: func(ctx context.Context, p types.Params) (any, error) { return api.Permissions.GetPermissions(ctx, p) },
			get:  func(ctx context.Context, id string) (any, error) { return api.Permissions.GetPermission(ctx, id) },
		},
		"resources": {
			list: func(ctx context.Context, p types.Params) (any, error) { return api.Resources.GetResources(ctx, p) },
			get:  func(ctx context.Context, id string) (any, error) { return api.Resources.GetResource(ctx, id) },
		},
		"audit-logs": {
			list: func(ctx context.Context, p types.Params) (any, error) { return api.AuditLogs.GetAuditLogs(ctx, p) },
			get:  func(ctx context.Context, id string) (any, error) { return api.AuditLogs.GetAuditLog(ctx, id) },
			exportTo: func(ctx context.Context, w io.Writer, orgID string) (int, error) {
				params := types.Params{}
				if orgID != "" {
					params["organization_id"] = orgID
				}
				rows, err := api.AuditLogs.GetAllAuditLogs(ctx, params)
				if err != nil {
					return 0, err
				}
				return writeSheet(w, "Журнал аудита", auditLogColumns, rows)
			},
		},
	}
}

func resourceNames(commands map[string]resourceCommands) []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookup(commands map[string]resourceCommands, name string) (resourceCommands, error) {
	cmd, ok := commands[name]
	if !ok {
		return resourceCommands{}, fmt.Errorf("неизвестный ресурс %q, доступны: %v", name, resourceNames(commands))
	}
	return cmd, nil
}
