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

type DepartmentServiceInterface interface {
	GetDepartments(ctx context.Context, params types.Params) (types.PaginatedResponse[entities.Department], error)
	GetAllDepartments(ctx context.Context, params types.Params) ([]entities.Department, error)
	GetDepartment(ctx context.Context, id string) (*entities.Department, error)
	CreateDepartment(ctx context.Context, payload dto.CreateDepartmentDTO) (*entities.Department, error)
	UpdateDepartment(ctx context.Context, id string, patch dto.UpdateDepartmentDTO) (*entities.Department, error)
	DeleteDepartment(ctx context.Context, id string) (bool, error)
	HardDeleteDepartment(ctx context.Context, id string) (bool, error)
	GetDepartmentTeams(ctx context.Context, id string, params types.Params) (types.PaginatedResponse[entities.Team], error)
	GetSubDepartments(ctx context.Context, id string, params types.Params) (types.PaginatedResponse[entities.Department], error)
	GetDepartmentPerformance(ctx context.Context, id string, params types.Params) (*entities.DepartmentPerformance, error)
	GetDepartmentAnalytics(ctx context.Context, id string, params types.Params) (*entities.DepartmentAnalytics, error)
}

type DepartmentService struct {
	crud crudService[entities.Department, dto.CreateDepartmentDTO, dto.UpdateDepartmentDTO]
}

func NewDepartmentService(client *resource.Client[entities.Department], v *validation.CustomValidator, logger *zap.Logger) *DepartmentService {
	return &DepartmentService{crud: newCRUD[entities.Department, dto.CreateDepartmentDTO, dto.UpdateDepartmentDTO](client, v, logger, "departments")}
}

func (s *DepartmentService) GetDepartments(ctx context.Context, params types.Params) (types.PaginatedResponse[entities.Department], error) {
	return s.crud.list(ctx, params)
}

func (s *DepartmentService) GetDepartment(ctx context.Context, id string) (*entities.Department, error) {
	return s.crud.get(ctx, id)
}

func (s *DepartmentService) CreateDepartment(ctx context.Context, payload dto.CreateDepartmentDTO) (*entities.Department, error) {
	return s.crud.create(ctx, payload)
}

func (s *DepartmentService) UpdateDepartment(ctx context.Context, id string, patch dto.UpdateDepartmentDTO) (*entities.Department, error) {
	return s.crud.update(ctx, id, patch)
}

func (s *DepartmentService) DeleteDepartment(ctx context.Context, id string) (bool, error) {
	return s.crud.delete(ctx, id)
}

func (s *DepartmentService) HardDeleteDepartment(ctx context.Context, id string) (bool, error) {
	return s.crud.hardDelete(ctx, id)
}

func (s *DepartmentService) GetDepartmentTeams(ctx context.Context, id string, params types.Params) (types.PaginatedResponse[entities.Team], error) {
	return resource.ListRelated[entities.Team](ctx, s.crud.client, id, "teams", params)
}

// GetSubDepartments - прямые дочерние отделы, без обхода всего дерева.
func (s *DepartmentService) GetSubDepartments(ctx context.Context, id string, params types.Params) (types.PaginatedResponse[entities.Department], error) {
	return resource.ListRelated[entities.Department](ctx, s.crud.client, id, "sub_departments", params)
}

func (s *DepartmentService) GetDepartmentPerformance(ctx context.Context, id string, params types.Params) (*entities.DepartmentPerformance, error) {
	return aggregate[entities.DepartmentPerformance](ctx, s.crud.client, id, "performance", params)
}

func (s *DepartmentService) GetDepartmentAnalytics(ctx context.Context, id string, params types.Params) (*entities.DepartmentAnalytics, error) {
	return aggregate[entities.DepartmentAnalytics](ctx, s.crud.client, id, "analytics", params)
}

func (s *DepartmentService) GetAllDepartments(ctx context.Context, params types.Params) ([]entities.Department, error) {
	return s.crud.listAll(ctx, params)
}
