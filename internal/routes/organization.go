package routes

import (
	"github.com/labstack/echo/v4"

	"orgdash/internal/authz"
	"orgdash/internal/controllers"
	"orgdash/pkg/middleware"
)

func runOrganizationRouter(v1 *echo.Group, ctrl *controllers.RecordController, authMW *middleware.AuthMiddleware) {
	org := controllers.Organizations
	g := runCollectionRouter(v1, "organizations", org, ctrl, authMW)
	view := authMW.AuthorizeAny(authz.OrganizationsView)

	g.GET("/:id/departments/", ctrl.Related(org, controllers.Departments, controllers.ByField("organization_id")),
		view, authMW.AuthorizeAny(authz.DepartmentsView))
	g.GET("/:id/teams/", ctrl.Related(org, controllers.Teams, ctrl.OrganizationTeams()),
		view, authMW.AuthorizeAny(authz.TeamsView))
	g.GET("/:id/analytics/", ctrl.Aggregate(org, "analytics", ctrl.OrganizationAnalytics), view)
	g.GET("/:id/activity/", ctrl.Aggregate(org, "activity", ctrl.OrganizationActivity), view)
	g.GET("/:id/growth/", ctrl.Aggregate(org, "growth", ctrl.OrganizationGrowth), view)
}

func runSettingsRouter(v1 *echo.Group, ctrl *controllers.RecordController, authMW *middleware.AuthMiddleware) {
	g := runCollectionRouter(v1, "organization-settings", controllers.OrganizationSettings, ctrl, authMW)
	g.GET("/get_by_organization/", ctrl.SettingsByOrganization, authMW.AuthorizeAny(authz.SettingsView))
}
