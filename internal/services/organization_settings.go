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

type OrganizationSettingsServiceInterface interface {
	GetOrganizationSettingsList(ctx context.Context, params types.Params) (types.PaginatedResponse[entities.OrganizationSettings], error)
	GetOrganizationSettings(ctx context.Context, id string) (*entities.OrganizationSettings, error)
	GetSettingsByOrganization(ctx context.Context, organizationID string) (*entities.OrganizationSettings, error)
	CreateOrganizationSettings(ctx context.Context, payload dto.CreateOrganizationSettingsDTO) (*entities.OrganizationSettings, error)
	UpdateOrganizationSettings(ctx context.Context, id string, patch dto.UpdateOrganizationSettingsDTO) (*entities.OrganizationSettings, error)
	DeleteOrganizationSettings(ctx context.Context, id string) (bool, error)
	HardDeleteOrganizationSettings(ctx context.Context, id string) (bool, error)
}

type OrganizationSettingsService struct {
	crud crudService[entities.OrganizationSettings, dto.CreateOrganizationSettingsDTO, dto.UpdateOrganizationSettingsDTO]
}

func NewOrganizationSettingsService(client *resource.Client[entities.OrganizationSettings], v *validation.CustomValidator, logger *zap.Logger) *OrganizationSettingsService {
	return &OrganizationSettingsService{
		crud: newCRUD[entities.OrganizationSettings, dto.CreateOrganizationSettingsDTO, dto.UpdateOrganizationSettingsDTO](client, v, logger, "organization-settings"),
	}
}

func (s *OrganizationSettingsService) GetOrganizationSettingsList(ctx context.Context, params types.Params) (types.PaginatedResponse[entities.OrganizationSettings], error) {
	return s.crud.list(ctx, params)
}

func (s *OrganizationSettingsService) GetOrganizationSettings(ctx context.Context, id string) (*entities.OrganizationSettings, error) {
	return s.crud.get(ctx, id)
}

// GetSettingsByOrganization: настройки 1:1 с организацией, ищутся по organization_id.
func (s *OrganizationSettingsService) GetSettingsByOrganization(ctx context.Context, organizationID string) (*entities.OrganizationSettings, error) {
	settings, err := resource.CollectionAction[entities.OrganizationSettings](ctx, s.crud.client, "get_by_organization", types.Params{"organization_id": organizationID})
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *OrganizationSettingsService) CreateOrganizationSettings(ctx context.Context, payload dto.CreateOrganizationSettingsDTO) (*entities.OrganizationSettings, error) {
	return s.crud.create(ctx, payload)
}

func (s *OrganizationSettingsService) UpdateOrganizationSettings(ctx context.Context, id string, patch dto.UpdateOrganizationSettingsDTO) (*entities.OrganizationSettings, error) {
	return s.crud.update(ctx, id, patch)
}

func (s *OrganizationSettingsService) DeleteOrganizationSettings(ctx context.Context, id string) (bool, error) {
	return s.crud.delete(ctx, id)
}

func (s *OrganizationSettingsService) HardDeleteOrganizationSettings(ctx context.Context, id string) (bool, error) {
	return s.crud.hardDelete(ctx, id)
}
