package utils

// SafeDeref разыменовывает указатель, для nil отдаёт нулевое значение.
func SafeDeref[T any](ptr *T) T {
	if ptr == nil {
		var zero T
		return zero
	}
	return *ptr
}

// ToPtr - указатель на копию значения, для необязательных полей DTO и ссылок страниц.
func ToPtr[T any](v T) *T {
	return &v
}
