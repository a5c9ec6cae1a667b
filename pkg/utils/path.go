package utils

import (
	"net/url"
	"strings"
)

// EnsureTrailingSlash гарантирует ровно один завершающий слеш.
// "organizations" -> "organizations/", "organizations//" -> "organizations/".
func EnsureTrailingSlash(path string) string {
	return strings.TrimRight(path, "/") + "/"
}

// JoinPath собирает путь ресурса. base может состоять из нескольких частей
// ("rbac/roles"), каждый из segments - ровно один сегмент: внешние слеши
// срезаются, остальное экранируется целиком, поэтому "/" внутри сегмента
// не порождает новых уровней пути. Пустые сегменты отбрасываются, в конце
// всегда один слеш.
// JoinPath("rbac/roles", "7", "permissions") -> "rbac/roles/7/permissions/".
func JoinPath(base string, segments ...string) string {
	parts := make([]string, 0, len(segments)+2)
	for _, piece := range strings.Split(base, "/") {
		if piece = strings.TrimSpace(piece); piece != "" {
			parts = append(parts, url.PathEscape(piece))
		}
	}
	for _, segment := range segments {
		if segment = strings.Trim(strings.TrimSpace(segment), "/"); segment != "" {
			parts = append(parts, url.PathEscape(segment))
		}
	}
	if len(parts) == 0 {
		return "/"
	}
	return strings.Join(parts, "/") + "/"
}
