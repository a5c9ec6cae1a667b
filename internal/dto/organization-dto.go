package dto

import "github.com/aarondl/null/v8"

type CreateOrganizationDTO struct {
	Name         string      `json:"name" validate:"required,min=2,max=255"`
	Description  null.String `json:"description" validate:"omitempty,max=2000"`
	Logo         null.String `json:"logo" validate:"omitempty,url"`
	Website      null.String `json:"website" validate:"omitempty,url"`
	Industry     null.String `json:"industry" validate:"omitempty,max=100"`
	Size         null.String `json:"size" validate:"omitempty,max=50"`
	FoundingDate null.String `json:"founding_date" validate:"omitempty,iso_date"`
	Location     null.String `json:"location" validate:"omitempty,max=255"`
	ContactEmail null.String `json:"contact_email" validate:"omitempty,custom_email"`
	ContactPhone null.String `json:"contact_phone" validate:"omitempty,max=32"`
}

// UpdateOrganizationDTO - частичное обновление: nil-поля не отправляются.
type UpdateOrganizationDTO struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Logo         *string `json:"logo,omitempty" validate:"omitempty,url"`
	Website      *string `json:"website,omitempty" validate:"omitempty,url"`
	Industry     *string `json:"industry,omitempty" validate:"omitempty,max=100"`
	Size         *string `json:"size,omitempty" validate:"omitempty,max=50"`
	FoundingDate *string `json:"founding_date,omitempty" validate:"omitempty,iso_date"`
	Location     *string `json:"location,omitempty" validate:"omitempty,max=255"`
	ContactEmail *string `json:"contact_email,omitempty" validate:"omitempty,custom_email"`
	ContactPhone *string `json:"contact_phone,omitempty" validate:"omitempty,max=32"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

type CreateOrganizationSettingsDTO struct {
	OrganizationID          string         `json:"organization_id" validate:"required"`
	Theme                   string         `json:"theme" validate:"omitempty,max=50"`
	Language                string         `json:"language" validate:"omitempty,min=2,max=10"`
	Timezone                string         `json:"timezone" validate:"omitempty,timezone"`
	DateFormat              string         `json:"date_format" validate:"omitempty,date_layout"`
	NotificationPreferences map[string]any `json:"notification_preferences,omitempty"`
	SecuritySettings        map[string]any `json:"security_settings,omitempty"`
	FeatureFlags            map[string]any `json:"feature_flags,omitempty"`
}

type UpdateOrganizationSettingsDTO struct {
	Theme                   *string        `json:"theme,omitempty" validate:"omitempty,max=50"`
	Language                *string        `json:"language,omitempty" validate:"omitempty,min=2,max=10"`
	Timezone                *string        `json:"timezone,omitempty" validate:"omitempty,timezone"`
	DateFormat              *string        `json:"date_format,omitempty" validate:"omitempty,date_layout"`
	NotificationPreferences map[string]any `json:"notification_preferences,omitempty"`
	SecuritySettings        map[string]any `json:"security_settings,omitempty"`
	FeatureFlags            map[string]any `json:"feature_flags,omitempty"`
}
