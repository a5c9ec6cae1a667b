package authz

// Коды прав имеют вид "<ресурс>:<действие>".
const (
	Superuser = "superuser"

	ActionView   = "view"
	ActionManage = "manage"
	ActionDelete = "delete"

	OrganizationsView   = "organizations:view"
	OrganizationsManage = "organizations:manage"
	OrganizationsDelete = "organizations:delete"

	DepartmentsView   = "departments:view"
	DepartmentsManage = "departments:manage"
	DepartmentsDelete = "departments:delete"

	TeamsView   = "teams:view"
	TeamsManage = "teams:manage"
	TeamsDelete = "teams:delete"

	TeamMembersView   = "team-members:view"
	TeamMembersManage = "team-members:manage"
	TeamMembersDelete = "team-members:delete"

	SettingsView   = "organization-settings:view"
	SettingsManage = "organization-settings:manage"
	SettingsDelete = "organization-settings:delete"

	RolesView   = "rbac-roles:view"
	RolesManage = "rbac-roles:manage"
	RolesDelete = "rbac-roles:delete"

	PermissionsView   = "rbac-permissions:view"
	PermissionsManage = "rbac-permissions:manage"
	PermissionsDelete = "rbac-permissions:delete"

	ResourcesView   = "rbac-resources:view"
	ResourcesManage = "rbac-resources:manage"
	ResourcesDelete = "rbac-resources:delete"

	AuditLogsView = "rbac-audit-logs:view"
)

// Permission собирает код права для ресурса.
func Permission(resource, action string) string {
	return resource + ":" + action
}

// All - все коды, которые знает система. Используется сидером.
func All() []string {
	return []string{
		OrganizationsView, OrganizationsManage, OrganizationsDelete,
		DepartmentsView, DepartmentsManage, DepartmentsDelete,
		TeamsView, TeamsManage, TeamsDelete,
		TeamMembersView, TeamMembersManage, TeamMembersDelete,
		SettingsView, SettingsManage, SettingsDelete,
		RolesView, RolesManage, RolesDelete,
		PermissionsView, PermissionsManage, PermissionsDelete,
		ResourcesView, ResourcesManage, ResourcesDelete,
		AuditLogsView,
	}
}
