package seeders

import (
	"github.com/aarondl/null/v8"

	"orgdash/internal/authz"
	"orgdash/internal/controllers"
)

type memberSeed struct {
	UserID   string
	Role     string
	IsLeader bool
	Skills   []string
	Rating   float64
}

type teamSeed struct {
	Name    string
	Skills  []string
	Members []memberSeed
}

type departmentSeed struct {
	Name      string
	Budget    float64
	Headcount int
	Location  string
	Teams     []teamSeed
	Children  []departmentSeed
}

type organizationSeed struct {
	Name         string
	Industry     string
	Size         string
	Location     string
	Website      string
	ContactEmail string
	FoundingDate string
	Language     string
	Timezone     string
	Departments  []departmentSeed
}

var organizationsData = []organizationSeed{
	{
		Name:         "Сомон Тех",
		Industry:     "IT",
		Size:         "51-200",
		Location:     "Душанбе",
		Website:      "https://somon.example.com",
		ContactEmail: "info@somon.example.com",
		FoundingDate: "2016-04-01",
		Language:     "ru",
		Timezone:     "Asia/Dushanbe",
		Departments: []departmentSeed{
			{
				Name: "Разработка", Budget: 540000, Headcount: 18, Location: "Душанбе",
				Teams: []teamSeed{
					{
						Name: "Платформа", Skills: []string{"go", "postgres", "kubernetes"},
						Members: []memberSeed{
							{UserID: "u-1001", Role: "Тимлид", IsLeader: true, Skills: []string{"go", "kubernetes"}, Rating: 4.8},
							{UserID: "u-1002", Role: "Backend", Skills: []string{"go", "postgres"}, Rating: 4.2},
							{UserID: "u-1003", Role: "SRE", Skills: []string{"kubernetes"}, Rating: 3.9},
						},
					},
					{
						Name: "Мобильные приложения", Skills: []string{"kotlin", "swift"},
						Members: []memberSeed{
							{UserID: "u-1004", Role: "Тимлид", IsLeader: true, Skills: []string{"kotlin"}, Rating: 4.5},
							{UserID: "u-1005", Role: "iOS", Skills: []string{"swift"}, Rating: 4.0},
						},
					},
				},
				Children: []departmentSeed{
					{
						Name: "Контроль качества", Budget: 120000, Headcount: 4, Location: "Душанбе",
						Teams: []teamSeed{
							{
								Name: "Автотесты", Skills: []string{"go", "playwright"},
								Members: []memberSeed{
									{UserID: "u-1006", Role: "QA", IsLeader: true, Skills: []string{"playwright"}, Rating: 4.1},
								},
							},
						},
					},
				},
			},
			{
				Name: "Продажи", Budget: 210000, Headcount: 7, Location: "Худжанд",
				Teams: []teamSeed{
					{
						Name: "Корпоративные клиенты", Skills: []string{"crm"},
						Members: []memberSeed{
							{UserID: "u-1007", Role: "Руководитель", IsLeader: true, Skills: []string{"crm"}, Rating: 4.4},
							{UserID: "u-1008", Role: "Менеджер", Skills: []string{"crm"}, Rating: 3.6},
						},
					},
				},
			},
		},
	},
	{
		Name:         "Арванд Финанс",
		Industry:     "Финансы",
		Size:         "201-500",
		Location:     "Худжанд",
		Website:      "https://arvand.example.com",
		ContactEmail: "office@arvand.example.com",
		FoundingDate: "2009-09-15",
		Language:     "tg",
		Timezone:     "UTC",
		Departments: []departmentSeed{
			{
				Name: "Информационная безопасность", Budget: 300000, Headcount: 6, Location: "Худжанд",
				Teams: []teamSeed{
					{
						Name: "SOC", Skills: []string{"siem", "incident-response"},
						Members: []memberSeed{
							{UserID: "u-2001", Role: "Аналитик", IsLeader: true, Skills: []string{"siem"}, Rating: 4.6},
							{UserID: "u-2002", Role: "Аналитик", Skills: []string{"incident-response"}, Rating: 4.3},
						},
					},
				},
			},
		},
	},
}

type roleSeed struct {
	Name        string
	Description string
	// Права роли. Пустой список означает все права.
	Permissions []string
}

var rolesData = []roleSeed{
	{Name: "admin", Description: "Полный доступ ко всем ресурсам"},
	{Name: "viewer", Description: "Только просмотр", Permissions: viewPermissions()},
	{Name: "hr", Description: "Управление командами и участниками", Permissions: []string{
		authz.OrganizationsView, authz.DepartmentsView,
		authz.TeamsView, authz.TeamsManage,
		authz.TeamMembersView, authz.TeamMembersManage, authz.TeamMembersDelete,
	}},
}

func viewPermissions() []string {
	var out []string
	for _, code := range authz.All() {
		if _, action := authz.Split(code); action == authz.ActionView {
			out = append(out, code)
		}
	}
	return out
}

// resourcesData - ресурсы RBAC по одному на каждую коллекцию.
var resourcesData = []controllers.Kind{
	controllers.Organizations,
	controllers.Departments,
	controllers.Teams,
	controllers.TeamMembers,
	controllers.OrganizationSettings,
	controllers.Roles,
	controllers.Permissions,
	controllers.Resources,
	controllers.AuditLogs,
}

func optionalString(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
