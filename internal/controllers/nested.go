package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"orgdash/internal/dto"
	"orgdash/internal/repositories"
	"orgdash/pkg/api"
	apperrors "orgdash/pkg/errors"
	"orgdash/pkg/utils"
)

// Scope выбирает дочерние записи для найденного родителя.
type Scope func(ctx context.Context, parent repositories.Record) (repositories.RecordQuery, error)

// Related - вложенная коллекция {parent}/{id}/{relation}/. Несуществующий
// родитель даёт 404, а не пустой список.
func (rc *RecordController) Related(parent, child Kind, scope Scope) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := utils.ContextWithTimeout(c, requestTimeout)
		defer cancel()

		rec, err := rc.repo.Find(ctx, parent.Name, c.Param("id"))
		if err != nil {
			return rc.fail(c, err)
		}
		query, err := scope(ctx, rec)
		if err != nil {
			return rc.fail(c, err)
		}
		return rc.page(ctx, c, child, query)
	}
}

// ByField: дети, у которых field равно id родителя.
func ByField(field string) Scope {
	return func(_ context.Context, parent repositories.Record) (repositories.RecordQuery, error) {
		return repositories.RecordQuery{Filter: map[string]string{field: parent.ID()}}, nil
	}
}

// ByIDList: дети, чьи id перечислены в поле-списке родителя.
func ByIDList(field string) Scope {
	return func(_ context.Context, parent repositories.Record) (repositories.RecordQuery, error) {
		ids := referencedIDs(parent[field])
		if ids == nil {
			ids = []string{}
		}
		return repositories.RecordQuery{In: map[string][]string{"id": ids}}, nil
	}
}

// OrganizationTeams: команды всех отделов организации.
func (rc *RecordController) OrganizationTeams() Scope {
	return func(ctx context.Context, org repositories.Record) (repositories.RecordQuery, error) {
		departments, err := rc.all(ctx, Departments.Name, repositories.RecordQuery{
			Filter: map[string]string{"organization_id": org.ID()},
		})
		if err != nil {
			return repositories.RecordQuery{}, err
		}
		return repositories.RecordQuery{In: map[string][]string{"department_id": idsOf(departments)}}, nil
	}
}

// SettingsByOrganization - get_by_organization/?organization_id=.
func (rc *RecordController) SettingsByOrganization(c echo.Context) error {
	ctx, cancel := utils.ContextWithTimeout(c, requestTimeout)
	defer cancel()

	organizationID := c.QueryParam("organization_id")
	if organizationID == "" {
		return rc.fail(c, apperrors.NewValidationError("Не указан organization_id",
			map[string][]string{"organization_id": {"Обязательное поле"}}, nil))
	}

	records, _, err := rc.repo.List(ctx, OrganizationSettings.Name, repositories.RecordQuery{
		Filter: map[string]string{"organization_id": organizationID},
		Limit:  1,
	})
	if err != nil {
		return rc.fail(c, err)
	}
	if len(records) == 0 {
		return rc.fail(c, fmt.Errorf("настройки организации %s: %w", organizationID, apperrors.ErrNotFound))
	}
	return api.SuccessOne(c, http.StatusOK, rc.envelope, records[0])
}

// RolePermissions - assign_permissions/ (assign=true) и revoke_permissions/.
func (rc *RecordController) RolePermissions(assign bool) echo.HandlerFunc {
	action := "revoke_permissions"
	if assign {
		action = "assign_permissions"
	}

	return func(c echo.Context) error {
		ctx, cancel := utils.ContextWithTimeout(c, requestTimeout)
		defer cancel()

		var payload dto.PermissionIDsDTO
		if _, err := decodeBody(c, &payload); err != nil {
			return rc.fail(c, err)
		}
		if assign {
			if err := rc.checkReferences(ctx, Roles, c.Param("id"), map[string]any{"permission_ids": toAnyList(payload.PermissionIDs)}); err != nil {
				return rc.fail(c, err)
			}
		}

		updated, err := rc.repo.Patch(ctx, Roles.Name, c.Param("id"), func(role repositories.Record) error {
			current := referencedIDs(role["permission_ids"])
			var next []string
			if assign {
				next = union(current, payload.PermissionIDs)
			} else {
				next = subtract(current, payload.PermissionIDs)
			}
			role["permission_ids"] = toAnyList(next)
			role["updated_at"] = rc.timestamp()
			return nil
		})
		if err != nil {
			return rc.fail(c, err)
		}

		rc.afterMutation(ctx, Roles, action, updated, map[string]any{"permission_ids": payload.PermissionIDs})
		rc.logger.Info("Права роли изменены",
			zap.String("role_id", updated.ID()),
			zap.String("action", action),
			zap.Strings("permission_ids", payload.PermissionIDs),
		)
		return api.SuccessOne(c, http.StatusOK, rc.envelope, updated)
	}
}

// all читает все записи по условию, без пагинации.
func (rc *RecordController) all(ctx context.Context, kind string, query repositories.RecordQuery) ([]repositories.Record, error) {
	for _, values := range query.In {
		if len(values) == 0 {
			return nil, nil
		}
	}
	query.Offset, query.Limit = 0, 0
	records, _, err := rc.repo.List(ctx, kind, query)
	return records, err
}

func idsOf(records []repositories.Record) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.ID())
	}
	return out
}

func union(current, extra []string) []string {
	seen := make(map[string]bool, len(current)+len(extra))
	out := make([]string, 0, len(current)+len(extra))
	for _, id := range append(append([]string{}, current...), extra...) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func subtract(current, removed []string) []string {
	drop := make(map[string]bool, len(removed))
	for _, id := range removed {
		drop[id] = true
	}
	out := make([]string, 0, len(current))
	for _, id := range current {
		if !drop[id] {
			out = append(out, id)
		}
	}
	return out
}

func toAnyList(ids []string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
