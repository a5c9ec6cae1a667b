package utils

// MergePatch накладывает PATCH-тело на запись: ключи из patch перезаписывают
// ключи dst, явный null очищает поле. Вложенные объекты сливаются рекурсивно.
// Ключи из protected не трогаются.
func MergePatch(dst, patch map[string]any, protected ...string) bool {
	skip := make(map[string]bool, len(protected))
	for _, key := range protected {
		skip[key] = true
	}

	hasChanges := false
	for key, value := range patch {
		if skip[key] {
			continue
		}

		if nested, ok := value.(map[string]any); ok {
			if current, ok := dst[key].(map[string]any); ok {
				if MergePatch(current, nested) {
					hasChanges = true
				}
				continue
			}
		}

		if value == nil {
			if existing, ok := dst[key]; ok && existing != nil {
				dst[key] = nil
				hasChanges = true
			}
			continue
		}

		dst[key] = value
		hasChanges = true
	}
	return hasChanges
}
