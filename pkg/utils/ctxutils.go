package utils

import (
	"context"

	"orgdash/pkg/contextkeys"
	apperrors "orgdash/pkg/errors"
)

func GetSubjectFromCtx(ctx context.Context) (string, error) {
	subject, ok := ctx.Value(contextkeys.SubjectKey).(string)
	if !ok || subject == "" {
		return "", apperrors.ErrUnauthorized
	}
	return subject, nil
}

func GetPermissionsMapFromCtx(ctx context.Context) (map[string]bool, error) {
	permissions, ok := ctx.Value(contextkeys.UserPermissionsMapKey).(map[string]bool)
	if !ok || permissions == nil {
		return nil, apperrors.ErrForbidden
	}
	return permissions, nil
}

func GetRequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(contextkeys.RequestIDKey).(string)
	return id
}
