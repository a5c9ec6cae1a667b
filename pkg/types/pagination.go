package types

import "orgdash/pkg/utils"

// PaginatedResponse - единый конверт списков. Next и Previous - непрозрачные
// URL продолжения, а не смещения.
type PaginatedResponse[T any] struct {
	Count    uint64  `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// HasNext сообщает, есть ли следующая страница.
func (p *PaginatedResponse[T]) HasNext() bool {
	return p != nil && utils.SafeDeref(p.Next) != ""
}

// NewPage собирает страницу; пустой список отдаётся как [], а не null.
func NewPage[T any](results []T, count uint64, next, previous *string) PaginatedResponse[T] {
	if results == nil {
		results = make([]T, 0)
	}
	return PaginatedResponse[T]{Count: count, Next: next, Previous: previous, Results: results}
}
