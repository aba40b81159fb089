package maintenance

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id string) (*Entry, error)
	List(ctx context.Context, filter Filter) ([]*Entry, int, error)
	Resolve(ctx context.Context, id string, resolution string) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, e *Entry) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.maintenance_entries").
		Columns("asset_id", "reported_by", "issue").
		Values(e.AssetID, e.ReportedByID, e.Issue).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create maintenance entry query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Entry, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"m.id", "m.asset_id", "a.name",
		"m.reported_by", "COALESCE(u.display_name, u.email)",
		"m.issue", "m.resolution", "m.resolved_at", "m.created_at",
	).
		From("public.maintenance_entries m").
		Join("public.assets a ON m.asset_id = a.id").
		Join("public.users u ON m.reported_by = u.id").
		Where(squirrel.Eq{"m.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get maintenance entry query failed: %w", err)
	}

	var e Entry
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&e.ID, &e.AssetID, &e.AssetName,
		&e.ReportedByID, &e.ReportedByName,
		&e.Issue, &e.Resolution, &e.ResolvedAt, &e.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get maintenance entry failed: %w", err)
	}
	return &e, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Entry, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"m.id", "m.asset_id", "a.name",
		"m.reported_by", "COALESCE(u.display_name, u.email)",
		"m.issue", "m.resolution", "m.resolved_at", "m.created_at",
		"count(*) OVER() as total_count",
	).
		From("public.maintenance_entries m").
		Join("public.assets a ON m.asset_id = a.id").
		Join("public.users u ON m.reported_by = u.id")

	if filter.AssetID != "" {
		query = query.Where(squirrel.Eq{"m.asset_id": filter.AssetID})
	}
	if filter.Open != nil {
		if *filter.Open {
			query = query.Where("m.resolved_at IS NULL")
		} else {
			query = query.Where("m.resolved_at IS NOT NULL")
		}
	}

	query = query.OrderBy("m.created_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list maintenance entries query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list maintenance entries failed: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	var total int

	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.AssetID, &e.AssetName,
			&e.ReportedByID, &e.ReportedByName,
			&e.Issue, &e.Resolution, &e.ResolvedAt, &e.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan maintenance entry failed: %w", err)
		}
		entries = append(entries, &e)
	}

	return entries, total, nil
}

func (r *pgxRepository) Resolve(ctx context.Context, id string, resolution string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.maintenance_entries").
		Set("resolution", resolution).
		Set("resolved_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build resolve maintenance entry query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("resolve maintenance entry failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.maintenance_entries").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete maintenance entry query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete maintenance entry failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
