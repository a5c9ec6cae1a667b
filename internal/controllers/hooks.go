package controllers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"orgdash/internal/repositories"
	apperrors "orgdash/pkg/errors"
	"orgdash/pkg/utils"
)

const aggregateVersionKey = "agg:version"

// beforeCreate: у организации не больше одной записи настроек.
func (rc *RecordController) beforeCreate(ctx context.Context, kind Kind, rec repositories.Record) error {
	if kind.Name != OrganizationSettings.Name {
		return nil
	}
	_, total, err := rc.repo.List(ctx, kind.Name, repositories.RecordQuery{
		Filter: map[string]string{"organization_id": rec.String("organization_id")},
		Limit:  1,
	})
	if err != nil {
		return err
	}
	if total > 0 {
		return apperrors.NewValidationError("Настройки организации уже существуют",
			map[string][]string{"organization_id": {"Для организации уже созданы настройки"}}, nil)
	}
	return nil
}

// afterCreate проставляет организации обратную ссылку на её настройки.
func (rc *RecordController) afterCreate(ctx context.Context, kind Kind, rec repositories.Record) {
	if kind.Name != OrganizationSettings.Name {
		return
	}
	rc.setSettingsLink(ctx, rec.String("organization_id"), rec.ID(), rec.ID())
}

func (rc *RecordController) afterHardDelete(ctx context.Context, kind Kind, rec repositories.Record) {
	if kind.Name != OrganizationSettings.Name {
		return
	}
	rc.setSettingsLink(ctx, rec.String("organization_id"), rec.ID(), nil)
}

func (rc *RecordController) setSettingsLink(ctx context.Context, organizationID, settingsID string, value any) {
	_, err := rc.repo.Patch(ctx, Organizations.Name, organizationID, func(org repositories.Record) error {
		if value == nil && org.String("settings_id") != settingsID {
			return nil
		}
		org["settings_id"] = value
		return nil
	})
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		rc.logger.Error("Не удалось обновить settings_id организации",
			zap.String("organization_id", organizationID),
			zap.Error(err),
		)
	}
}

// afterMutation сбрасывает кеш агрегатов и пишет запись журнала аудита.
// Ошибки здесь только логируются: само изменение уже сохранено.
func (rc *RecordController) afterMutation(ctx context.Context, kind Kind, action string, rec repositories.Record, changes map[string]any) {
	rc.invalidateAggregates(ctx)
	rc.audit(ctx, kind, action, rec, changes)
}

func (rc *RecordController) invalidateAggregates(ctx context.Context) {
	if rc.cache == nil {
		return
	}
	if _, err := rc.cache.Incr(ctx, aggregateVersionKey); err != nil {
		rc.logger.Warn("Не удалось сбросить кеш агрегатов", zap.Error(err))
	}
}

func (rc *RecordController) audit(ctx context.Context, kind Kind, action string, rec repositories.Record, changes map[string]any) {
	entry := repositories.Record{
		"id":              uuid.NewString(),
		"action":          action,
		"resource_type":   kind.Name,
		"resource_id":     rec.ID(),
		"actor_id":        nil,
		"organization_id": rc.organizationOf(ctx, kind, rec),
		"changes":         changes,
		"timestamp":       rc.timestamp(),
	}
	if subject, err := utils.GetSubjectFromCtx(ctx); err == nil {
		entry["actor_id"] = subject
	}

	if _, err := rc.repo.Create(ctx, AuditLogs.Name, entry); err != nil {
		rc.logger.Error("Не удалось записать журнал аудита",
			zap.String("kind", kind.Name),
			zap.String("id", rec.ID()),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// organizationOf находит организацию, к которой относится запись: у команд
// через отдел, у участников через команду и отдел. nil, если связи нет.
func (rc *RecordController) organizationOf(ctx context.Context, kind Kind, rec repositories.Record) any {
	switch kind.Name {
	case Organizations.Name:
		return rec.ID()
	case Departments.Name, OrganizationSettings.Name:
		return nullable(rec.String("organization_id"))
	case Teams.Name:
		return rc.lookupOrganization(ctx, rec.String("department_id"))
	case TeamMembers.Name:
		team, err := rc.repo.Find(ctx, Teams.Name, rec.String("team_id"))
		if err != nil {
			return nil
		}
		return rc.lookupOrganization(ctx, team.String("department_id"))
	default:
		return nil
	}
}

func (rc *RecordController) lookupOrganization(ctx context.Context, departmentID string) any {
	if departmentID == "" {
		return nil
	}
	department, err := rc.repo.Find(ctx, Departments.Name, departmentID)
	if err != nil {
		return nil
	}
	return nullable(department.String("organization_id"))
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
