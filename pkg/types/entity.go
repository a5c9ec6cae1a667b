package types

import "time"

// BaseEntity - поля, которые проставляет сервер.
type BaseEntity struct {
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// SoftDelete - флаг мягкого удаления; false означает, что запись удалена.
type SoftDelete struct {
	IsActive bool `json:"is_active"`
}
