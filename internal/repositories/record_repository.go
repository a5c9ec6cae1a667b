package repositories

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
)

// Record - запись любого ресурса в виде JSON-документа.
type Record map[string]any

func (r Record) ID() string { return r.String("id") }

// String приводит значение поля к строке так же, как это делает
// Postgres для data->>'key'.
func (r Record) String(key string) string {
	return stringify(r[key])
}

func (r Record) Clone() Record {
	raw, err := json.Marshal(r)
	if err != nil {
		out := make(Record, len(r))
		for k, v := range r {
			out[k] = v
		}
		return out
	}
	var out Record
	_ = json.Unmarshal(raw, &out)
	return out
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		raw, _ := json.Marshal(v)
		return string(raw)
	}
}

// RecordQuery - условия выборки. Filter сравнивает значения как строки,
// In ограничивает поле списком значений, Limit == 0 отдаёт всё.
type RecordQuery struct {
	Filter       map[string]string
	In           map[string][]string
	Search       string
	SearchFields []string
	Ordering     []string
	Offset       int
	Limit        int
}

type RecordRepositoryInterface interface {
	List(ctx context.Context, kind string, query RecordQuery) ([]Record, uint64, error)
	Find(ctx context.Context, kind, id string) (Record, error)
	Create(ctx context.Context, kind string, record Record) (Record, error)
	// Patch атомарно читает запись, даёт fn изменить её и сохраняет результат.
	Patch(ctx context.Context, kind, id string, fn func(Record) error) (Record, error)
	Delete(ctx context.Context, kind, id string) error
}

func orderingField(field string) (string, bool) {
	if strings.HasPrefix(field, "-") {
		return field[1:], true
	}
	return strings.TrimPrefix(field, "+"), false
}
