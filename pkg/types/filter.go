package types

import (
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Params - непрозрачные параметры фильтрации и пагинации, уходят в query как есть.
type Params map[string]string

// Values переводит параметры в url.Values. Пустые значения пропускаются.
func (p Params) Values() url.Values {
	values := url.Values{}
	for key, value := range p {
		if key == "" || value == "" {
			continue
		}
		values.Set(key, value)
	}
	return values
}

// With возвращает копию с добавленным ключом, исходная карта не меняется.
func (p Params) With(key, value string) Params {
	out := make(Params, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	out[key] = value
	return out
}

// Filter - типизированная форма для частых параметров списка.
type Filter struct {
	Search   string            `json:"search,omitempty"`
	Ordering []string          `json:"ordering,omitempty"`
	Filter   map[string]string `json:"filter,omitempty"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// http://localhost:8080/api/v1/departments/?search=sales&ordering=-created_at&organization_id=1&page=2&page_size=20

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage держит (Page-1)*PageSize в пределах int на любой платформе.
	MaxPage = math.MaxInt32 / MaxPageSize
)

// Params сворачивает Filter в Params.
func (f Filter) Params() Params {
	params := Params{}
	for key, value := range f.Filter {
		params[key] = value
	}
	if f.Search != "" {
		params["search"] = f.Search
	}
	if len(f.Ordering) > 0 {
		params["ordering"] = strings.Join(f.Ordering, ",")
	}
	if f.Page > 0 {
		params["page"] = strconv.Itoa(f.Page)
	}
	if f.PageSize > 0 {
		params["page_size"] = strconv.Itoa(f.PageSize)
	}
	return params
}

var reservedQueryKeys = map[string]bool{"search": true, "ordering": true, "page": true, "page_size": true}

// ParseFilterFromQuery - обратная операция, для сервера разработки.
func ParseFilterFromQuery(values url.Values) Filter {
	filter := Filter{
		Filter:   make(map[string]string),
		Page:     1,
		PageSize: DefaultPageSize,
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filter.Page = min(p, MaxPage)
		}
	}
	if sizeStr := values.Get("page_size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 {
			if s > MaxPageSize {
				s = MaxPageSize
			}
			filter.PageSize = s
		}
	}
	filter.Search = strings.TrimSpace(values.Get("search"))
	if ordering := values.Get("ordering"); ordering != "" {
		for _, field := range strings.Split(ordering, ",") {
			if field = strings.TrimSpace(field); field != "" {
				filter.Ordering = append(filter.Ordering, field)
			}
		}
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if reservedQueryKeys[key] {
			continue
		}
		if value := values.Get(key); value != "" {
			filter.Filter[key] = value
		}
	}
	return filter
}

// Offset считается от страницы. При переполнении возвращает math.MaxInt:
// такая страница заведомо пуста.
func (f Filter) Offset() int {
	if f.Page <= 1 || f.PageSize <= 0 {
		return 0
	}
	if f.Page-1 > math.MaxInt/f.PageSize {
		return math.MaxInt
	}
	return (f.Page - 1) * f.PageSize
}
