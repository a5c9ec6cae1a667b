package services

import (
	"context"

	"go.uber.org/zap"

	"orgdash/internal/dto"
	"orgdash/internal/entities"
	"orgdash/internal/resource"
	"orgdash/pkg/types"
	"orgdash/pkg/validation"
)

type OrganizationServiceInterface interface {
	GetOrganizations(ctx context.Context, params types.Params) (types.PaginatedResponse[entities.Organization], error)
	GetAllOrganizations(ctx context.Context, params types.Params) ([]entities.Organization, error)
	GetAllOrganizationDepartments(ctx context.Context, id string, params types.Params) ([]entities.Department, error)
	GetAllOrganizationTeams(ctx context.Context, id string, params types.Params) ([]entities.Team, error)
	GetOrganization(ctx context.Context, id string) (*entities.Organization, error)
	CreateOrganization(ctx context.Context, payload dto.CreateOrganizationDTO) (*entities.Organization, error)
	UpdateOrganization(ctx context.Context, id string, patch dto.UpdateOrganizationDTO) (*entities.Organization, error)
	DeleteOrganization(ctx context.Context, id string) (bool, error)
	HardDeleteOrganization(ctx context.Context, id string) (bool, error)
	GetOrganizationDepartments(ctx context.Context, id string, params types.Params) (types.PaginatedResponse[entities.Department], error)
	GetOrganizationTeams(ctx context.Context, id string, params types.Params) (types.PaginatedResponse[entities.Team], error)
	GetOrganizationAnalytics(ctx context.Context, id string, params types.Params) (*entities.OrganizationAnalytics, error)
	GetOrganizationActivity(ctx context.Context, id string, params types.Params) (*entities.OrganizationActivity, error)
	GetOrganizationGrowth(ctx context.Context, id string, params types.Params) (*entities.OrganizationGrowth, error)
}

type OrganizationService struct {
	crud crudService[entities.Organization, dto.CreateOrganizationDTO, dto.UpdateOrganizationDTO]
}

func NewOrganizationService(client *resource.Client[entities.Organization], v *validation.CustomValidator, logger *zap.Logger) *OrganizationService {
	return &OrganizationService{crud: newCRUD[entities.Organization, dto.CreateOrganizationDTO, dto.UpdateOrganizationDTO](client, v, logger, "organizations")}
}

func (s *OrganizationService) GetOrganizations(ctx context.Context, params types.Params) (types.PaginatedResponse[entities.Organization], error) {
	return s.crud.list(ctx, params)
}

// GetAllOrganizations проходит все страницы списка.
func (s *OrganizationService) GetAllOrganizations(ctx context.Context, params types.Params) ([]entities.Organization, error) {
	return s.crud.listAll(ctx, params)
}

func (s *OrganizationService) GetOrganization(ctx context.Context, id string) (*entities.Organization, error) {
	return s.crud.get(ctx, id)
}

func (s *OrganizationService) CreateOrganization(ctx context.Context, payload dto.CreateOrganizationDTO) (*entities.Organization, error) {
	return s.crud.create(ctx, payload)
}

func (s *OrganizationService) UpdateOrganization(ctx context.Context, id string, patch dto.UpdateOrganizationDTO) (*entities.Organization, error) {
	return s.crud.update(ctx, id, patch)
}

func (s *OrganizationService) DeleteOrganization(ctx context.Context, id string) (bool, error) {
	return s.crud.delete(ctx, id)
}

func (s *OrganizationService) HardDeleteOrganization(ctx context.Context, id string) (bool, error) {
	return s.crud.hardDelete(ctx, id)
}

func (s *OrganizationService) GetOrganizationDepartments(ctx context.Context, id string, params types.Params) (types.PaginatedResponse[entities.Department], error) {
	return resource.ListRelated[entities.Department](ctx, s.crud.client, id, "departments", params)
}

func (s *OrganizationService) GetOrganizationTeams(ctx context.Context, id string, params types.Params) (types.PaginatedResponse[entities.Team], error) {
	return resource.ListRelated[entities.Team](ctx, s.crud.client, id, "teams", params)
}

func (s *OrganizationService) GetOrganizationAnalytics(ctx context.Context, id string, params types.Params) (*entities.OrganizationAnalytics, error) {
	return aggregate[entities.OrganizationAnalytics](ctx, s.crud.client, id, "analytics", params)
}

func (s *OrganizationService) GetOrganizationActivity(ctx context.Context, id string, params types.Params) (*entities.OrganizationActivity, error) {
	return aggregate[entities.OrganizationActivity](ctx, s.crud.client, id, "activity", params)
}

func (s *OrganizationService) GetOrganizationGrowth(ctx context.Context, id string, params types.Params) (*entities.OrganizationGrowth, error) {
	return aggregate[entities.OrganizationGrowth](ctx, s.crud.client, id, "growth", params)
}

func aggregate[A, T any](ctx context.Context, client *resource.Client[T], id, name string, params types.Params) (*A, error) {
	out, err := resource.Aggregate[A](ctx, client, id, name, params, entities.AggregateVersion)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *OrganizationService) GetAllOrganizationDepartments(ctx context.Context, id string, params types.Params) ([]entities.Department, error) {
	return resource.ListAllRelated[entities.Department](ctx, s.crud.client, id, "departments", params)
}

func (s *OrganizationService) GetAllOrganizationTeams(ctx context.Context, id string, params types.Params) ([]entities.Team, error) {
	return resource.ListAllRelated[entities.Team](ctx, s.crud.client, id, "teams", params)
}
