package routes

import (
	"github.com/labstack/echo/v4"

	"orgdash/internal/authz"
	"orgdash/internal/controllers"
	"orgdash/pkg/middleware"
)

func runRBACRouter(rbac *echo.Group, ctrl *controllers.RecordController, authMW *middleware.AuthMiddleware) {
	roles := runCollectionRouter(rbac, "roles", controllers.Roles, ctrl, authMW)
	roles.GET("/:id/permissions/", ctrl.Related(controllers.Roles, controllers.Permissions, controllers.ByIDList("permission_ids")),
		authMW.AuthorizeAny(authz.RolesView), authMW.AuthorizeAny(authz.PermissionsView))
	roles.POST("/:id/assign_permissions/", ctrl.RolePermissions(true), authMW.AuthorizeAny(authz.RolesManage))
	roles.POST("/:id/revoke_permissions/", ctrl.RolePermissions(false), authMW.AuthorizeAny(authz.RolesManage))

	runCollectionRouter(rbac, "permissions", controllers.Permissions, ctrl, authMW)

	resources := runCollectionRouter(rbac, "resources", controllers.Resources, ctrl, authMW)
	resources.GET("/:id/permissions/", ctrl.Related(controllers.Resources, controllers.Permissions, controllers.ByField("resource_id")),
		authMW.AuthorizeAny(authz.ResourcesView), authMW.AuthorizeAny(authz.PermissionsView))

	runCollectionRouter(rbac, "audit-logs", controllers.AuditLogs, ctrl, authMW)
}
