package routes

import (
	"github.com/labstack/echo/v4"

	"orgdash/internal/authz"
	"orgdash/internal/controllers"
	"orgdash/pkg/middleware"
)

func runDepartmentRouter(v1 *echo.Group, ctrl *controllers.RecordController, authMW *middleware.AuthMiddleware) {
	dept := controllers.Departments
	g := runCollectionRouter(v1, "departments", dept, ctrl, authMW)
	view := authMW.AuthorizeAny(authz.DepartmentsView)

	g.GET("/:id/teams/", ctrl.Related(dept, controllers.Teams, controllers.ByField("department_id")),
		view, authMW.AuthorizeAny(authz.TeamsView))
	g.GET("/:id/sub_departments/", ctrl.Related(dept, dept, controllers.ByField("parent_department_id")), view)
	g.GET("/:id/performance/", ctrl.Aggregate(dept, "performance", ctrl.DepartmentPerformance), view)
	g.GET("/:id/analytics/", ctrl.Aggregate(dept, "analytics", ctrl.DepartmentAnalytics), view)
}

func runTeamRouter(v1 *echo.Group, ctrl *controllers.RecordController, authMW *middleware.AuthMiddleware) {
	team := controllers.Teams
	g := runCollectionRouter(v1, "teams", team, ctrl, authMW)
	view := authMW.AuthorizeAny(authz.TeamsView)

	g.GET("/:id/members/", ctrl.Related(team, controllers.TeamMembers, controllers.ByField("team_id")),
		view, authMW.AuthorizeAny(authz.TeamMembersView))
	g.GET("/:id/performance/", ctrl.Aggregate(team, "performance", ctrl.TeamPerformance), view)
}
