package authz

import "strings"

type Context struct {
	Subject           string
	Permissions       map[string]bool
	CurrentPermission string
}

func (c *Context) HasPermission(permission string) bool {
	if c.Permissions == nil {
		return false
	}
	return c.Permissions[permission]
}

// Split: "team-members:view" -> ("team-members", "view").
func Split(permission string) (string, string) {
	idx := strings.LastIndex(permission, ":")
	if idx < 0 {
		return permission, ""
	}
	return permission[:idx], permission[idx+1:]
}

// implied - права, которые покрывают запрошенное. manage включает view,
// delete требует либо delete, либо manage.
func implied(permission string) []string {
	resource, action := Split(permission)
	switch action {
	case ActionView, ActionDelete:
		return []string{permission, Permission(resource, ActionManage)}
	default:
		return []string{permission}
	}
}
