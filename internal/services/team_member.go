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

type TeamMemberServiceInterface interface {
	GetTeamMemberList(ctx context.Context, params types.Params) (types.PaginatedResponse[entities.TeamMember], error)
	GetAllTeamMembers(ctx context.Context, params types.Params) ([]entities.TeamMember, error)
	GetTeamMember(ctx context.Context, id string) (*entities.TeamMember, error)
	CreateTeamMember(ctx context.Context, payload dto.CreateTeamMemberDTO) (*entities.TeamMember, error)
	UpdateTeamMember(ctx context.Context, id string, patch dto.UpdateTeamMemberDTO) (*entities.TeamMember, error)
	DeleteTeamMember(ctx context.Context, id string) (bool, error)
	HardDeleteTeamMember(ctx context.Context, id string) (bool, error)
}

type TeamMemberService struct {
	crud crudService[entities.TeamMember, dto.CreateTeamMemberDTO, dto.UpdateTeamMemberDTO]
}

func NewTeamMemberService(client *resource.Client[entities.TeamMember], v *validation.CustomValidator, logger *zap.Logger) *TeamMemberService {
	return &TeamMemberService{crud: newCRUD[entities.TeamMember, dto.CreateTeamMemberDTO, dto.UpdateTeamMemberDTO](client, v, logger, "team-members")}
}

func (s *TeamMemberService) GetTeamMemberList(ctx context.Context, params types.Params) (types.PaginatedResponse[entities.TeamMember], error) {
	return s.crud.list(ctx, params)
}

func (s *TeamMemberService) GetTeamMember(ctx context.Context, id string) (*entities.TeamMember, error) {
	return s.crud.get(ctx, id)
}

func (s *TeamMemberService) CreateTeamMember(ctx context.Context, payload dto.CreateTeamMemberDTO) (*entities.TeamMember, error) {
	return s.crud.create(ctx, payload)
}

func (s *TeamMemberService) UpdateTeamMember(ctx context.Context, id string, patch dto.UpdateTeamMemberDTO) (*entities.TeamMember, error) {
	return s.crud.update(ctx, id, patch)
}

func (s *TeamMemberService) DeleteTeamMember(ctx context.Context, id string) (bool, error) {
	return s.crud.delete(ctx, id)
}

func (s *TeamMemberService) HardDeleteTeamMember(ctx context.Context, id string) (bool, error) {
	return s.crud.hardDelete(ctx, id)
}

func (s *TeamMemberService) GetAllTeamMembers(ctx context.Context, params types.Params) ([]entities.TeamMember, error) {
	return s.crud.listAll(ctx, params)
}
