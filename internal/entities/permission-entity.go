package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"orgdash/pkg/types"
)

// Permission.Name - код вида "organizations:view".
type Permission struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description null.String `json:"description"`
	ResourceID  null.String `json:"resource_id"`
	Action      string      `json:"action"`

	types.SoftDelete
	types.BaseEntity
}

// AuditLog только читается: записи пишет бэкенд на каждое изменение.
type AuditLog struct {
	ID             string         `json:"id"`
	Action         string         `json:"action"`
	ResourceType   string         `json:"resource_type"`
	ResourceID     string         `json:"resource_id"`
	ActorID        null.String    `json:"actor_id"`
	OrganizationID null.String    `json:"organization_id"`
	Changes        map[string]any `json:"changes"`
	Timestamp      time.Time      `json:"timestamp"`
}
