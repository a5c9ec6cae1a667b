package services

import (
	"context"

	"orgdash/internal/entities"
	"orgdash/internal/resource"
	"orgdash/pkg/types"
)

type AuditLogServiceInterface interface {
	GetAuditLogs(ctx context.Context, params types.Params) (types.PaginatedResponse[entities.AuditLog], error)
	GetAllAuditLogs(ctx context.Context, params types.Params) ([]entities.AuditLog, error)
	GetAuditLog(ctx context.Context, id string) (*entities.AuditLog, error)
}

// AuditLogService только читает: журнал пишет бэкенд.
type AuditLogService struct {
	client *resource.Client[entities.AuditLog]
}

func NewAuditLogService(client *resource.Client[entities.AuditLog]) *AuditLogService {
	return &AuditLogService{client: client}
}

func (s *AuditLogService) GetAuditLogs(ctx context.Context, params types.Params) (types.PaginatedResponse[entities.AuditLog], error) {
	return s.client.List(ctx, params)
}

func (s *AuditLogService) GetAuditLog(ctx context.Context, id string) (*entities.AuditLog, error) {
	log, err := s.client.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (s *AuditLogService) GetAllAuditLogs(ctx context.Context, params types.Params) ([]entities.AuditLog, error) {
	return s.client.ListAll(ctx, params)
}
