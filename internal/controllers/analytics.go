package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"orgdash/internal/entities"
	"orgdash/internal/repositories"
	"orgdash/pkg/api"
	"orgdash/pkg/utils"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

// Compute считает агрегат по найденной записи.
type Compute func(ctx context.Context, c echo.Context, rec repositories.Record) (any, error)

// Aggregate - GET {kind}/{id}/{name}/. Результат кешируется до следующего
// изменения любых данных или до истечения TTL.
func (rc *RecordController) Aggregate(kind Kind, name string, compute Compute) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := utils.ContextWithTimeout(c, requestTimeout)
		defer cancel()

		id := c.Param("id")
		rec, err := rc.repo.Find(ctx, kind.Name, id)
		if err != nil {
			return rc.fail(c, err)
		}

		key := fmt.Sprintf("%s:%s:%s?%s", kind.Name, id, name, c.QueryParams().Encode())
		raw, err := rc.cached(ctx, key, func() (any, error) { return compute(ctx, c, rec) })
		if err != nil {
			return rc.fail(c, err)
		}
		return api.SuccessOne(c, http.StatusOK, rc.envelope, raw)
	}
}

func (rc *RecordController) cached(ctx context.Context, key string, compute func() (any, error)) (json.RawMessage, error) {
	if rc.cache == nil {
		return marshalAggregate(compute)
	}

	version, err := rc.cache.Get(ctx, aggregateVersionKey)
	if errors.Is(err, repositories.ErrCacheMiss) {
		version = "0"
	} else if err != nil {
		rc.logger.Warn("Кеш агрегатов недоступен", zap.Error(err))
		return marshalAggregate(compute)
	}

	fullKey := "agg:v" + version + ":" + key
	if hit, err := rc.cache.Get(ctx, fullKey); err == nil {
		return json.RawMessage(hit), nil
	}

	raw, err := marshalAggregate(compute)
	if err != nil {
		return nil, err
	}
	if err := rc.cache.Set(ctx, fullKey, []byte(raw), rc.cacheTTL); err != nil {
		rc.logger.Warn("Не удалось сохранить агрегат в кеш", zap.String("key", fullKey), zap.Error(err))
	}
	return raw, nil
}

func marshalAggregate(compute func() (any, error)) (json.RawMessage, error) {
	value, err := compute()
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации агрегата: %w", err)
	}
	return raw, nil
}

// orgTree - отделы, команды и участники одной организации.
type orgTree struct {
	departments []repositories.Record
	teams       []repositories.Record
	members     []repositories.Record
}

func (rc *RecordController) loadOrgTree(ctx context.Context, organizationID string) (orgTree, error) {
	var tree orgTree
	var err error
	tree.departments, err = rc.all(ctx, Departments.Name, repositories.RecordQuery{
		Filter: map[string]string{"organization_id": organizationID},
	})
	if err != nil {
		return tree, err
	}
	tree.teams, err = rc.all(ctx, Teams.Name, repositories.RecordQuery{
		In: map[string][]string{"department_id": idsOf(tree.departments)},
	})
	if err != nil {
		return tree, err
	}
	tree.members, err = rc.all(ctx, TeamMembers.Name, repositories.RecordQuery{
		In: map[string][]string{"team_id": idsOf(tree.teams)},
	})
	return tree, err
}

func (rc *RecordController) OrganizationAnalytics(ctx context.Context, _ echo.Context, org repositories.Record) (any, error) {
	tree, err := rc.loadOrgTree(ctx, org.ID())
	if err != nil {
		return nil, err
	}

	out := entities.OrganizationAnalytics{
		Version:            entities.AggregateVersion,
		OrganizationID:     org.ID(),
		DepartmentCount:    len(tree.departments),
		TeamCount:          len(tree.teams),
		MemberCount:        len(tree.members),
		AveragePerformance: averagePerformance(tree.members),
	}
	for _, member := range tree.members {
		if isActive(member) {
			out.ActiveMemberCount++
		}
	}
	for _, department := range tree.departments {
		if budget, ok := number(department, "budget"); ok {
			out.TotalBudget += budget
		}
		if headcount, ok := number(department, "headcount"); ok {
			out.TotalHeadcount += int64(headcount)
		}
	}
	return out, nil
}

// OrganizationActivity - последние записи журнала аудита организации, ?limit=.
func (rc *RecordController) OrganizationActivity(ctx context.Context, c echo.Context, org repositories.Record) (any, error) {
	limit := defaultActivityLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = min(parsed, maxActivityLimit)
		}
	}

	logs, _, err := rc.repo.List(ctx, AuditLogs.Name, repositories.RecordQuery{
		Filter:   map[string]string{"organization_id": org.ID()},
		Ordering: AuditLogs.DefaultOrdering,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	out := entities.OrganizationActivity{
		Version:        entities.AggregateVersion,
		OrganizationID: org.ID(),
		Items:          make([]entities.ActivityItem, 0, len(logs)),
	}
	for _, entry := range logs {
		ts, _ := time.Parse(time.RFC3339Nano, entry.String("timestamp"))
		out.Items = append(out.Items, entities.ActivityItem{
			ID:           entry.ID(),
			Action:       entry.String("action"),
			ResourceType: entry.String("resource_type"),
			ResourceID:   entry.String("resource_id"),
			ActorID:      entry.String("actor_id"),
			Timestamp:    ts,
		})
	}
	return out, nil
}

// OrganizationGrowth - сколько отделов, команд и участников создано по месяцам.
func (rc *RecordController) OrganizationGrowth(ctx context.Context, _ echo.Context, org repositories.Record) (any, error) {
	tree, err := rc.loadOrgTree(ctx, org.ID())
	if err != nil {
		return nil, err
	}

	points := map[string]*entities.GrowthPoint{}
	bucket := func(rec repositories.Record) *entities.GrowthPoint {
		period := rec.String("created_at")
		if len(period) >= 7 {
			period = period[:7]
		}
		point, ok := points[period]
		if !ok {
			point = &entities.GrowthPoint{Period: period}
			points[period] = point
		}
		return point
	}
	for _, rec := range tree.departments {
		bucket(rec).Departments++
	}
	for _, rec := range tree.teams {
		bucket(rec).Teams++
	}
	for _, rec := range tree.members {
		bucket(rec).Members++
	}

	out := entities.OrganizationGrowth{
		Version:        entities.AggregateVersion,
		OrganizationID: org.ID(),
		Points:         make([]entities.GrowthPoint, 0, len(points)),
	}
	for _, point := range points {
		out.Points = append(out.Points, *point)
	}
	sort.Slice(out.Points, func(i, j int) bool { return out.Points[i].Period < out.Points[j].Period })
	return out, nil
}

func (rc *RecordController) departmentMembers(ctx context.Context, departmentID string) ([]repositories.Record, []repositories.Record, error) {
	teams, err := rc.all(ctx, Teams.Name, repositories.RecordQuery{
		Filter: map[string]string{"department_id": departmentID},
	})
	if err != nil {
		return nil, nil, err
	}
	members, err := rc.all(ctx, TeamMembers.Name, repositories.RecordQuery{
		In: map[string][]string{"team_id": idsOf(teams)},
	})
	return teams, members, err
}

func (rc *RecordController) DepartmentPerformance(ctx context.Context, _ echo.Context, department repositories.Record) (any, error) {
	teams, members, err := rc.departmentMembers(ctx, department.ID())
	if err != nil {
		return nil, err
	}

	out := entities.DepartmentPerformance{
		Version:            entities.AggregateVersion,
		DepartmentID:       department.ID(),
		TeamCount:          len(teams),
		MemberCount:        len(members),
		AveragePerformance: averagePerformance(members),
	}
	if budget, ok := number(department, "budget"); ok {
		out.Budget = budget
	}
	if headcount, ok := number(department, "headcount"); ok {
		out.Headcount = int64(headcount)
	}
	if out.Headcount > 0 {
		out.BudgetPerHead = out.Budget / float64(out.Headcount)
	}
	return out, nil
}

func (rc *RecordController) DepartmentAnalytics(ctx context.Context, _ echo.Context, department repositories.Record) (any, error) {
	subDepartments, err := rc.all(ctx, Departments.Name, repositories.RecordQuery{
		Filter: map[string]string{"parent_department_id": department.ID()},
	})
	if err != nil {
		return nil, err
	}
	teams, members, err := rc.departmentMembers(ctx, department.ID())
	if err != nil {
		return nil, err
	}

	return entities.DepartmentAnalytics{
		Version:            entities.AggregateVersion,
		DepartmentID:       department.ID(),
		SubDepartmentCount: len(subDepartments),
		TeamCount:          len(teams),
		MemberCount:        len(members),
		LeaderCount:        countLeaders(members),
		SkillCoverage:      skillCoverage(members),
	}, nil
}

func (rc *RecordController) TeamPerformance(ctx context.Context, _ echo.Context, team repositories.Record) (any, error) {
	members, err := rc.all(ctx, TeamMembers.Name, repositories.RecordQuery{
		Filter: map[string]string{"team_id": team.ID()},
	})
	if err != nil {
		return nil, err
	}

	return entities.TeamPerformance{
		Version:            entities.AggregateVersion,
		TeamID:             team.ID(),
		MemberCount:        len(members),
		LeaderCount:        countLeaders(members),
		AveragePerformance: averagePerformance(members),
		SkillCoverage:      skillCoverage(members),
	}, nil
}

func number(rec repositories.Record, key string) (float64, bool) {
	switch v := rec[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func isActive(rec repositories.Record) bool {
	active, ok := rec["is_active"].(bool)
	return !ok || active
}

// averagePerformance - среднее по участникам, у которых есть оценка.
func averagePerformance(members []repositories.Record) float64 {
	var sum float64
	var n int
	for _, member := range members {
		if rating, ok := number(member, "performance_rating"); ok {
			sum += rating
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func countLeaders(members []repositories.Record) int {
	n := 0
	for _, member := range members {
		if leader, _ := member["is_leader"].(bool); leader {
			n++
		}
	}
	return n
}

func skillCoverage(members []repositories.Record) map[string]int {
	out := map[string]int{}
	for _, member := range members {
		for _, skill := range referencedIDs(member["skills"]) {
			out[skill]++
		}
	}
	return out
}
