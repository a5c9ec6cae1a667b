package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	apperrors "orgdash/pkg/errors"
)

const (
	recordsTable    = "records"
	uniqueViolation = "23505"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRecordRepository хранит записи в одной таблице records
// (kind, id, data jsonb). Схему создают миграции goose.
type PostgresRecordRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewPostgresRecordRepository(storage *pgxpool.Pool, logger *zap.Logger) RecordRepositoryInterface {
	return &PostgresRecordRepository{storage: storage, logger: logger}
}

func applyRecordQuery(builder sq.SelectBuilder, query RecordQuery) sq.SelectBuilder {
	for key, value := range query.Filter {
		builder = builder.Where(sq.Expr("data->>(?::text) = ?", key, value))
	}
	for key, values := range query.In {
		builder = builder.Where(sq.Expr("data->>(?::text) = ANY(?::text[])", key, values))
	}
	if query.Search != "" && len(query.SearchFields) > 0 {
		pattern := "%" + query.Search + "%"
		conditions := sq.Or{}
		for _, field := range query.SearchFields {
			conditions = append(conditions, sq.Expr("data->>(?::text) ILIKE ?", field, pattern))
		}
		builder = builder.Where(conditions)
	}
	return builder
}

func (r *PostgresRecordRepository) List(ctx context.Context, kind string, query RecordQuery) ([]Record, uint64, error) {
	countBuilder := applyRecordQuery(psql.Select("COUNT(*)").From(recordsTable).Where(sq.Eq{"kind": kind}), query)
	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка построения запроса подсчёта: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчёта записей %s: %w", kind, err)
	}
	if total == 0 {
		return []Record{}, 0, nil
	}

	builder := applyRecordQuery(psql.Select("data").From(recordsTable).Where(sq.Eq{"kind": kind}), query)
	for _, raw := range query.Ordering {
		field, desc := orderingField(raw)
		direction := "ASC"
		if desc {
			direction = "DESC"
		}
		builder = builder.OrderByClause("data->>(?::text) "+direction, field)
	}
	builder = builder.OrderBy("seq ASC")
	if query.Limit > 0 {
		builder = builder.Limit(uint64(query.Limit))
	}
	if query.Offset > 0 {
		builder = builder.Offset(uint64(query.Offset))
	}

	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка построения запроса списка: %w", err)
	}

	rows, err := r.storage.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка выборки записей %s: %w", kind, err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ошибка чтения записей %s: %w", kind, err)
	}
	return records, total, nil
}

func scanRecord(row pgx.Row) (Record, error) {
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования записи: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("повреждённый JSON записи: %w", err)
	}
	return rec, nil
}

func (r *PostgresRecordRepository) Find(ctx context.Context, kind, id string) (Record, error) {
	return findRecord(ctx, r.storage, kind, id, false)
}

func findRecord(ctx context.Context, q querier, kind, id string, forUpdate bool) (Record, error) {
	builder := psql.Select("data").From(recordsTable).Where(sq.Eq{"kind": kind, "id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}
	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса: %w", err)
	}
	rec, err := scanRecord(q.QueryRow(ctx, sqlQuery, args...))
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("%s/%s: %w", kind, id, apperrors.ErrNotFound)
	}
	return rec, err
}

func (r *PostgresRecordRepository) Create(ctx context.Context, kind string, record Record) (Record, error) {
	id := record.ID()
	if id == "" {
		return nil, apperrors.NewInvalidInputError("у записи %s нет id", kind)
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации записи: %w", err)
	}

	sqlQuery, args, err := psql.Insert(recordsTable).
		Columns("kind", "id", "data").
		Values(kind, id, raw).
		Suffix("ON CONFLICT (kind, id) DO NOTHING RETURNING data").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса вставки: %w", err)
	}

	created, err := scanRecord(r.storage.QueryRow(ctx, sqlQuery, args...))
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewInvalidInputError("запись %s/%s уже существует", kind, id)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return nil, apperrors.NewInvalidInputError("запись %s нарушает уникальность (%s)", kind, pgErr.ConstraintName)
	}
	return created, err
}

func (r *PostgresRecordRepository) Patch(ctx context.Context, kind, id string, fn func(Record) error) (Record, error) {
	var updated Record
	err := WithTx(ctx, r.storage, func(tx pgx.Tx) error {
		current, err := findRecord(ctx, tx, kind, id, true)
		if err != nil {
			return err
		}
		if err := fn(current); err != nil {
			return err
		}

		raw, err := json.Marshal(current)
		if err != nil {
			return fmt.Errorf("ошибка сериализации записи: %w", err)
		}
		sqlQuery, args, err := psql.Update(recordsTable).
			Set("data", raw).
			Set("updated_at", sq.Expr("NOW()")).
			Where(sq.Eq{"kind": kind, "id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("ошибка построения запроса обновления: %w", err)
		}
		if _, err := tx.Exec(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("ошибка обновления записи %s/%s: %w", kind, id, err)
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *PostgresRecordRepository) Delete(ctx context.Context, kind, id string) error {
	sqlQuery, args, err := psql.Delete(recordsTable).Where(sq.Eq{"kind": kind, "id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка построения запроса удаления: %w", err)
	}
	tag, err := r.storage.Exec(ctx, sqlQuery, args...)
	if err != nil {
		return fmt.Errorf("ошибка удаления записи %s/%s: %w", kind, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s/%s: %w", kind, id, apperrors.ErrNotFound)
	}
	r.logger.Debug("Запись удалена", zap.String("kind", kind), zap.String("id", id))
	return nil
}
