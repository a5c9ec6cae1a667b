package repositories

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	apperrors "orgdash/pkg/errors"
)

type memoryRecord struct {
	seq  uint64
	data Record
}

// MemoryRecordRepository хранит записи в памяти процесса. Используется,
// когда DATABASE_URL не задан, и в тестах.
type MemoryRecordRepository struct {
	mu      sync.RWMutex
	seq     uint64
	records map[string]map[string]*memoryRecord
}

func NewMemoryRecordRepository() RecordRepositoryInterface {
	return &MemoryRecordRepository{records: make(map[string]map[string]*memoryRecord)}
}

func (r *MemoryRecordRepository) List(_ context.Context, kind string, query RecordQuery) ([]Record, uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*memoryRecord, 0, len(r.records[kind]))
	for _, rec := range r.records[kind] {
		if matches(rec.data, query) {
			matched = append(matched, rec)
		}
	}

	sortRecords(matched, query.Ordering)

	total := uint64(len(matched))
	start := min(max(query.Offset, 0), len(matched))
	end := len(matched)
	if query.Limit > 0 && query.Limit < end-start {
		end = start + query.Limit
	}

	out := make([]Record, 0, end-start)
	for _, rec := range matched[start:end] {
		out = append(out, rec.data.Clone())
	}
	return out, total, nil
}

func (r *MemoryRecordRepository) Find(_ context.Context, kind, id string) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[kind][id]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", kind, id, apperrors.ErrNotFound)
	}
	return rec.data.Clone(), nil
}

func (r *MemoryRecordRepository) Create(_ context.Context, kind string, record Record) (Record, error) {
	id := record.ID()
	if id == "" {
		return nil, apperrors.NewInvalidInputError("у записи %s нет id", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.records[kind] == nil {
		r.records[kind] = make(map[string]*memoryRecord)
	}
	if _, exists := r.records[kind][id]; exists {
		return nil, apperrors.NewInvalidInputError("запись %s/%s уже существует", kind, id)
	}

	r.seq++
	stored := record.Clone()
	r.records[kind][id] = &memoryRecord{seq: r.seq, data: stored}
	return stored.Clone(), nil
}

func (r *MemoryRecordRepository) Patch(_ context.Context, kind, id string, fn func(Record) error) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[kind][id]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", kind, id, apperrors.ErrNotFound)
	}

	working := rec.data.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	rec.data = working
	return working.Clone(), nil
}

func (r *MemoryRecordRepository) Delete(_ context.Context, kind, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[kind][id]; !ok {
		return fmt.Errorf("%s/%s: %w", kind, id, apperrors.ErrNotFound)
	}
	delete(r.records[kind], id)
	return nil
}

func matches(rec Record, query RecordQuery) bool {
	for key, value := range query.Filter {
		if rec.String(key) != value {
			return false
		}
	}
	for key, values := range query.In {
		if !containsString(values, rec.String(key)) {
			return false
		}
	}
	if query.Search != "" && len(query.SearchFields) > 0 {
		needle := strings.ToLower(query.Search)
		found := false
		for _, field := range query.SearchFields {
			if strings.Contains(strings.ToLower(rec.String(field)), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func containsString(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}

// sortRecords: сначала поля из ordering, затем порядок вставки.
func sortRecords(records []*memoryRecord, ordering []string) {
	sort.SliceStable(records, func(i, j int) bool {
		for _, raw := range ordering {
			field, desc := orderingField(raw)
			cmp := compareValues(records[i].data[field], records[j].data[field])
			if cmp == 0 {
				continue
			}
			if desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return records[i].seq < records[j].seq
	})
}

func compareValues(a, b any) int {
	af, aNum := a.(float64)
	bf, bNum := b.(float64)
	if aNum && bNum {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(stringify(a), stringify(b))
}
