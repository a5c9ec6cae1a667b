package entities

import (
	"github.com/aarondl/null/v8"

	"orgdash/pkg/types"
)

// Organization не владеет настройками: SettingsID - просто обратная ссылка.
type Organization struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Description  null.String `json:"description"`
	Logo         null.String `json:"logo"`
	Website      null.String `json:"website"`
	Industry     null.String `json:"industry"`
	Size         null.String `json:"size"`
	FoundingDate null.String `json:"founding_date"`
	Location     null.String `json:"location"`
	ContactEmail null.String `json:"contact_email"`
	ContactPhone null.String `json:"contact_phone"`
	SettingsID   null.String `json:"settings_id"`

	types.SoftDelete
	types.BaseEntity
}

// OrganizationSettings - ровно одна запись на организацию. Три карты
// без схемы, их проверяет только бэкенд.
type OrganizationSettings struct {
	ID                      string         `json:"id"`
	OrganizationID          string         `json:"organization_id"`
	Theme                   string         `json:"theme"`
	Language                string         `json:"language"`
	Timezone                string         `json:"timezone"`
	DateFormat              string         `json:"date_format"`
	NotificationPreferences map[string]any `json:"notification_preferences"`
	SecuritySettings        map[string]any `json:"security_settings"`
	FeatureFlags            map[string]any `json:"feature_flags"`

	types.SoftDelete
	types.BaseEntity
}
