package contextkeys

type contextKey string

const (
	SubjectKey            contextKey = "Subject"
	UserPermissionsMapKey contextKey = "userPermissionsMap"
	RequestIDKey          contextKey = "RequestID"
)
