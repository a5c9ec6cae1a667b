package services

import (
	"go.uber.org/zap"

	"orgdash/internal/entities"
	"orgdash/internal/resource"
	"orgdash/internal/transport"
	"orgdash/pkg/config"
	"orgdash/pkg/validation"
)

const rbacPrefix = "rbac"

// API - все клиенты ресурсов поверх одного транспорта.
type API struct {
	Transport *transport.Client

	Organizations        OrganizationServiceInterface
	Departments          DepartmentServiceInterface
	Teams                TeamServiceInterface
	TeamMembers          TeamMemberServiceInterface
	OrganizationSettings OrganizationSettingsServiceInterface

	Roles       RoleServiceInterface
	Permissions PermissionServiceInterface
	Resources   ResourceServiceInterface
	AuditLogs   AuditLogServiceInterface
}

func NewAPI(cfg config.APIConfig, logger *zap.Logger) (*API, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	envelope, err := transport.ParseEnvelope(cfg.Envelope)
	if err != nil {
		return nil, err
	}

	client, err := transport.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	api := NewAPIWithDoer(client, envelope, logger)
	api.Transport = client

	logger.Info("Клиент API инициализирован",
		zap.String("base_url", client.BaseURL()),
		zap.String("envelope", envelope.String()),
	)
	return api, nil
}

// NewAPIWithDoer собирает сервисы поверх произвольного транспорта.
func NewAPIWithDoer(doer transport.Doer, envelope transport.Envelope, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	v := validation.New()
	log := logger.Named("api")

	return &API{
		Organizations: NewOrganizationService(
			resource.New[entities.Organization](doer, "organizations", envelope, log), v, log),
		Departments: NewDepartmentService(
			resource.New[entities.Department](doer, "departments", envelope, log), v, log),
		Teams: NewTeamService(
			resource.New[entities.Team](doer, "teams", envelope, log), v, log),
		TeamMembers: NewTeamMemberService(
			resource.New[entities.TeamMember](doer, "team-members", envelope, log), v, log),
		OrganizationSettings: NewOrganizationSettingsService(
			resource.New[entities.OrganizationSettings](doer, "organization-settings", envelope, log), v, log),

		Roles: NewRoleService(
			resource.New[entities.Role](doer, rbacPrefix+"/roles", envelope, log), v, log),
		Permissions: NewPermissionService(
			resource.New[entities.Permission](doer, rbacPrefix+"/permissions", envelope, log), v, log),
		Resources: NewResourceService(
			resource.New[entities.Resource](doer, rbacPrefix+"/resources", envelope, log), v, log),
		AuditLogs: NewAuditLogService(
			resource.New[entities.AuditLog](doer, rbacPrefix+"/audit-logs", envelope, log)),
	}
}
