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

type TeamServiceInterface interface {
	GetTeams(ctx context.Context, params types.Params) (types.PaginatedResponse[entities.Team], error)
	GetAllTeams(ctx context.Context, params types.Params) ([]entities.Team, error)
	GetAllTeamMembers(ctx context.Context, id string, params types.Params) ([]entities.TeamMember, error)
	GetTeam(ctx context.Context, id string) (*entities.Team, error)
	CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*entities.Team, error)
	UpdateTeam(ctx context.Context, id string, patch dto.UpdateTeamDTO) (*entities.Team, error)
	DeleteTeam(ctx context.Context, id string) (bool, error)
	HardDeleteTeam(ctx context.Context, id string) (bool, error)
	GetTeamMembers(ctx context.Context, id string, params types.Params) (types.PaginatedResponse[entities.TeamMember], error)
	GetTeamPerformance(ctx context.Context, id string, params types.Params) (*entities.TeamPerformance, error)
}

type TeamService struct {
	crud crudService[entities.Team, dto.CreateTeamDTO, dto.UpdateTeamDTO]
}

func NewTeamService(client *resource.Client[entities.Team], v *validation.CustomValidator, logger *zap.Logger) *TeamService {
	return &TeamService{crud: newCRUD[entities.Team, dto.CreateTeamDTO, dto.UpdateTeamDTO](client, v, logger, "teams")}
}

func (s *TeamService) GetTeams(ctx context.Context, params types.Params) (types.PaginatedResponse[entities.Team], error) {
	return s.crud.list(ctx, params)
}

func (s *TeamService) GetTeam(ctx context.Context, id string) (*entities.Team, error) {
	return s.crud.get(ctx, id)
}

func (s *TeamService) CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*entities.Team, error) {
	return s.crud.create(ctx, payload)
}

func (s *TeamService) UpdateTeam(ctx context.Context, id string, patch dto.UpdateTeamDTO) (*entities.Team, error) {
	return s.crud.update(ctx, id, patch)
}

func (s *TeamService) DeleteTeam(ctx context.Context, id string) (bool, error) {
	return s.crud.delete(ctx, id)
}

func (s *TeamService) HardDeleteTeam(ctx context.Context, id string) (bool, error) {
	return s.crud.hardDelete(ctx, id)
}

func (s *TeamService) GetTeamMembers(ctx context.Context, id string, params types.Params) (types.PaginatedResponse[entities.TeamMember], error) {
	return resource.ListRelated[entities.TeamMember](ctx, s.crud.client, id, "members", params)
}

func (s *TeamService) GetTeamPerformance(ctx context.Context, id string, params types.Params) (*entities.TeamPerformance, error) {
	return aggregate[entities.TeamPerformance](ctx, s.crud.client, id, "performance", params)
}

func (s *TeamService) GetAllTeams(ctx context.Context, params types.Params) ([]entities.Team, error) {
	return s.crud.listAll(ctx, params)
}

// GetAllTeamMembers - все участники команды со всех страниц.
func (s *TeamService) GetAllTeamMembers(ctx context.Context, id string, params types.Params) ([]entities.TeamMember, error) {
	return resource.ListAllRelated[entities.TeamMember](ctx, s.crud.client, id, "members", params)
}
