package seeders

import (
	"context"
	"fmt"
	_ "time/tzdata"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"orgdash/internal/authz"
	"orgdash/internal/controllers"
	"orgdash/internal/dto"
	"orgdash/internal/repositories"
	"orgdash/pkg/validation"
)

// Seeder наполняет сервер разработки демонстрационными данными. Записи
// создаются тем же путём, что и через POST коллекций: со ссылками,
// значениями по умолчанию и журналом аудита.
type Seeder struct {
	repo      repositories.RecordRepositoryInterface
	records   *controllers.RecordController
	validator *validation.CustomValidator
	logger    *zap.Logger
}

func NewSeeder(repo repositories.RecordRepositoryInterface, records *controllers.RecordController, logger *zap.Logger) *Seeder {
	return &Seeder{
		repo:      repo,
		records:   records,
		validator: validation.New(),
		logger:    logger,
	}
}

// SeedDemoData ничего не делает, если организации уже есть.
func (s *Seeder) SeedDemoData(ctx context.Context) error {
	_, total, err := s.repo.List(ctx, controllers.Organizations.Name, repositories.RecordQuery{Limit: 1})
	if err != nil {
		return fmt.Errorf("не удалось проверить наличие данных: %w", err)
	}
	if total > 0 {
		s.logger.Info("Демо-данные уже есть. Пропускаем.", zap.Uint64("organizations", total))
		return nil
	}

	s.logger.Info("▶️  Запуск наполнения демо-данными...")
	if err := s.seedRBAC(ctx); err != nil {
		return fmt.Errorf("ошибка наполнения RBAC: %w", err)
	}
	if err := s.seedOrganizations(ctx); err != nil {
		return fmt.Errorf("ошибка наполнения организаций: %w", err)
	}
	s.logger.Info("✅ Наполнение демо-данными завершено")
	return nil
}

func (s *Seeder) create(ctx context.Context, kind controllers.Kind, input any) (repositories.Record, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, validation.ToValidationError(err)
	}
	return s.records.CreateRecord(ctx, kind, input)
}

func (s *Seeder) seedRBAC(ctx context.Context) error {
	resourceIDs := make(map[string]string, len(resourcesData))
	for _, kind := range resourcesData {
		rec, err := s.create(ctx, controllers.Resources, dto.CreateResourceDTO{
			Name: kind.Name,
			Type: "entity",
			Path: null.StringFrom("/api/v1/" + kind.Name + "/"),
		})
		if err != nil {
			return fmt.Errorf("ресурс %s: %w", kind.Name, err)
		}
		resourceIDs[kind.Name] = rec.ID()
	}

	permissionIDs := map[string]string{}
	for _, code := range authz.All() {
		resource, action := authz.Split(code)
		rec, err := s.create(ctx, controllers.Permissions, dto.CreatePermissionDTO{
			Name:       code,
			Action:     action,
			ResourceID: optionalString(resourceIDs[resource]),
		})
		if err != nil {
			return fmt.Errorf("право %s: %w", code, err)
		}
		permissionIDs[code] = rec.ID()
	}
	s.logger.Info("  - Ресурсы и права созданы", zap.Int("resources", len(resourceIDs)), zap.Int("permissions", len(permissionIDs)))

	for _, role := range rolesData {
		codes := role.Permissions
		if len(codes) == 0 {
			codes = authz.All()
		}
		ids := make([]string, 0, len(codes))
		for _, code := range codes {
			id, ok := permissionIDs[code]
			if !ok {
				return fmt.Errorf("роль %s: неизвестное право %s", role.Name, code)
			}
			ids = append(ids, id)
		}
		if _, err := s.create(ctx, controllers.Roles, dto.CreateRoleDTO{
			Name:          role.Name,
			Description:   optionalString(role.Description),
			PermissionIDs: ids,
		}); err != nil {
			return fmt.Errorf("роль %s: %w", role.Name, err)
		}
	}
	s.logger.Info("  - Роли созданы", zap.Int("roles", len(rolesData)))
	return nil
}

func (s *Seeder) seedOrganizations(ctx context.Context) error {
	for _, org := range organizationsData {
		rec, err := s.create(ctx, controllers.Organizations, dto.CreateOrganizationDTO{
			Name:         org.Name,
			Industry:     optionalString(org.Industry),
			Size:         optionalString(org.Size),
			Location:     optionalString(org.Location),
			Website:      optionalString(org.Website),
			ContactEmail: optionalString(org.ContactEmail),
			FoundingDate: optionalString(org.FoundingDate),
		})
		if err != nil {
			return fmt.Errorf("организация %s: %w", org.Name, err)
		}

		if _, err := s.create(ctx, controllers.OrganizationSettings, dto.CreateOrganizationSettingsDTO{
			OrganizationID: rec.ID(),
			Language:       org.Language,
			Timezone:       org.Timezone,
			FeatureFlags:   map[string]any{"analytics": true},
		}); err != nil {
			return fmt.Errorf("настройки %s: %w", org.Name, err)
		}

		for _, department := range org.Departments {
			if err := s.seedDepartment(ctx, rec.ID(), null.String{}, department); err != nil {
				return fmt.Errorf("организация %s: %w", org.Name, err)
			}
		}
		s.logger.Info("  - Организация создана", zap.String("name", org.Name), zap.String("id", rec.ID()))
	}
	return nil
}

func (s *Seeder) seedDepartment(ctx context.Context, organizationID string, parentID null.String, seed departmentSeed) error {
	rec, err := s.create(ctx, controllers.Departments, dto.CreateDepartmentDTO{
		Name:               seed.Name,
		OrganizationID:     organizationID,
		ParentDepartmentID: parentID,
		Budget:             null.Float64From(seed.Budget),
		Headcount:          null.IntFrom(seed.Headcount),
		Location:           optionalString(seed.Location),
	})
	if err != nil {
		return fmt.Errorf("отдел %s: %w", seed.Name, err)
	}

	for _, team := range seed.Teams {
		if err := s.seedTeam(ctx, rec.ID(), team); err != nil {
			return err
		}
	}
	for _, child := range seed.Children {
		if err := s.seedDepartment(ctx, organizationID, null.StringFrom(rec.ID()), child); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedTeam(ctx context.Context, departmentID string, seed teamSeed) error {
	team, err := s.create(ctx, controllers.Teams, dto.CreateTeamDTO{
		Name:         seed.Name,
		DepartmentID: departmentID,
		Skills:       seed.Skills,
	})
	if err != nil {
		return fmt.Errorf("команда %s: %w", seed.Name, err)
	}

	for _, member := range seed.Members {
		if _, err := s.create(ctx, controllers.TeamMembers, dto.CreateTeamMemberDTO{
			UserID:            member.UserID,
			TeamID:            team.ID(),
			Role:              member.Role,
			IsLeader:          member.IsLeader,
			Skills:            member.Skills,
			PerformanceRating: null.Float64From(member.Rating),
		}); err != nil {
			return fmt.Errorf("участник %s команды %s: %w", member.UserID, seed.Name, err)
		}
	}
	return nil
}
