package routes

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"orgdash/internal/authz"
	"orgdash/internal/controllers"
	"orgdash/internal/repositories"
	"orgdash/internal/transport"
	"orgdash/pkg/api"
	"orgdash/pkg/config"
	apperrors "orgdash/pkg/errors"
	"orgdash/pkg/middleware"
	"orgdash/pkg/service"
	"orgdash/pkg/validation"
)

type Loggers struct {
	Main    *zap.Logger
	Auth    *zap.Logger
	Records *zap.Logger
}

func NopLoggers() *Loggers {
	nop := zap.NewNop()
	return &Loggers{Main: nop, Auth: nop, Records: nop}
}

// InitRouter собирает сервер разработки: /api/v1 и /api/v1/rbac.
// jwtSvc == nil выключает аутентификацию, cache == nil выключает кеш агрегатов.
func InitRouter(
	e *echo.Echo,
	repo repositories.RecordRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	jwtSvc service.JWTService,
	loggers *Loggers,
	cfg *config.Config,
) error {
	loggers.Main.Info("InitRouter: начало создания маршрутов")

	envelope, err := transport.ParseEnvelope(cfg.API.Envelope)
	if err != nil {
		return fmt.Errorf("API_ENVELOPE: %w", err)
	}

	if e.Validator == nil {
		e.Validator = validation.New()
	}
	e.Pre(echomw.AddTrailingSlash())
	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			loggers.Main.Error("Паника при обработке запроса",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				_ = api.ErrorResponse(c, apperrors.ErrInternal)
			}
			return err
		},
	}))
	e.Use(middleware.InjectLogger(loggers.Main))
	e.Use(middleware.RequestLog(loggers.Main))

	e.GET("/health/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	authMW := middleware.NewAuthMiddleware(jwtSvc, loggers.Auth)
	ctrl := controllers.NewRecordController(repo, cache, envelope, cfg.Server.AggregateCacheTTL, loggers.Records)

	v1 := e.Group("/api/v1", authMW.Auth)
	runOrganizationRouter(v1, ctrl, authMW)
	runDepartmentRouter(v1, ctrl, authMW)
	runTeamRouter(v1, ctrl, authMW)
	runCollectionRouter(v1, "team-members", controllers.TeamMembers, ctrl, authMW)
	runSettingsRouter(v1, ctrl, authMW)
	runRBACRouter(v1.Group("/rbac"), ctrl, authMW)

	loggers.Main.Info("InitRouter: создание маршрутов завершено",
		zap.Bool("auth", authMW.Enabled()),
		zap.Bool("aggregate_cache", cache != nil),
		zap.String("envelope", envelope.String()),
	)
	return nil
}

// runCollectionRouter регистрирует CRUD коллекции. Чтение требует view,
// изменение manage, удаление delete.
func runCollectionRouter(
	group *echo.Group,
	prefix string,
	kind controllers.Kind,
	ctrl *controllers.RecordController,
	authMW *middleware.AuthMiddleware,
) *echo.Group {
	g := group.Group("/" + prefix)
	view := authMW.AuthorizeAny(kind.Permission(authz.ActionView))

	g.GET("/", ctrl.List(kind), view)
	g.GET("/:id/", ctrl.Get(kind), view)
	if kind.ReadOnly {
		return g
	}

	manage := authMW.AuthorizeAny(kind.Permission(authz.ActionManage))
	remove := authMW.AuthorizeAny(kind.Permission(authz.ActionDelete))
	g.POST("/", ctrl.Create(kind), manage)
	g.PATCH("/:id/", ctrl.Update(kind), manage)
	g.DELETE("/:id/", ctrl.Delete(kind), remove)
	g.DELETE("/:id/hard_delete/", ctrl.HardDelete(kind), remove)
	return g
}
