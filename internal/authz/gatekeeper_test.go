package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGatekeeper_Can(t *testing.T) {
	g := NewGatekeeper()

	tests := []struct {
		name       string
		perms      map[string]bool
		permission string
		want       bool
	}{
		{"суперпользователь", map[string]bool{Superuser: true}, RolesDelete, true},
		{"точное совпадение", map[string]bool{TeamsView: true}, TeamsView, true},
		{"manage покрывает view", map[string]bool{TeamsManage: true}, TeamsView, true},
		{"manage покрывает delete", map[string]bool{TeamsManage: true}, TeamsDelete, true},
		{"view не даёт manage", map[string]bool{TeamsView: true}, TeamsManage, false},
		{"чужой ресурс", map[string]bool{TeamsManage: true}, TeamMembersView, false},
		{"нет прав", nil, OrganizationsView, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Can(tt.perms, tt.permission))
		})
	}
}

func TestSplit(t *testing.T) {
	resource, action := Split("team-members:view")
	assert.Equal(t, "team-members", resource)
	assert.Equal(t, "view", action)

	resource, action = Split("superuser")
	assert.Equal(t, "superuser", resource)
	assert.Empty(t, action)
}
