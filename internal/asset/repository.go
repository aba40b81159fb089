package asset

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, a *Asset) error
	GetByID(ctx context.Context, id string) (*Asset, error)
	GetByBarcode(ctx context.Context, barcode string) (*Asset, error)
	List(ctx context.Context, filter Filter) ([]*Asset, int, error)
	Update(ctx context.Context, a *Asset) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, a *Asset) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.assets").
		Columns("name", "barcode", "category", "location_id", "status", "description", "photo_path", "thumbnail_path").
		Values(a.Name, a.Barcode, a.Category, a.LocationID, a.Status, a.Description, a.PhotoPath, a.ThumbnailPath).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create asset query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrBarcodeTaken
		}
		return fmt.Errorf("create asset failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) getOne(ctx context.Context, where squirrel.Eq) (*Asset, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"a.id", "a.name", "a.barcode", "a.category",
		"a.location_id", "l.name",
		"a.status", "a.description", "a.photo_path", "a.thumbnail_path",
		"a.created_at", "a.updated_at",
	).
		From("public.assets a").
		Join("public.locations l ON a.location_id = l.id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get asset query failed: %w", err)
	}

	var a Asset
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&a.ID, &a.Name, &a.Barcode, &a.Category,
		&a.LocationID, &a.LocationName,
		&a.Status, &a.Description, &a.PhotoPath, &a.ThumbnailPath,
		&a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get asset failed: %w", err)
	}
	return &a, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Asset, error) {
	return r.getOne(ctx, squirrel.Eq{"a.id": id})
}

func (r *pgxRepository) GetByBarcode(ctx context.Context, barcode string) (*Asset, error) {
	return r.getOne(ctx, squirrel.Eq{"a.barcode": barcode})
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Asset, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"a.id", "a.name", "a.barcode", "a.category",
		"a.location_id", "l.name",
		"a.status", "a.description", "a.photo_path", "a.thumbnail_path",
		"a.created_at", "a.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.assets a").
		Join("public.locations l ON a.location_id = l.id")

	if filter.LocationID != "" {
		query = query.Where(squirrel.Eq{"a.location_id": filter.LocationID})
	}
	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"a.category": filter.Category})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"a.status": filter.Status})
	}
	if filter.Keyword != "" {
		query = query.Where(squirrel.Or{
			squirrel.ILike{"a.name": "%" + filter.Keyword + "%"},
			squirrel.ILike{"a.barcode": "%" + filter.Keyword + "%"},
		})
	}

	query = query.OrderBy("a.name ASC")

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
		return nil, 0, fmt.Errorf("build list assets query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list assets failed: %w", err)
	}
	defer rows.Close()

	var assets []*Asset
	var total int

	for rows.Next() {
		var a Asset
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Barcode, &a.Category,
			&a.LocationID, &a.LocationName,
			&a.Status, &a.Description, &a.PhotoPath, &a.ThumbnailPath,
			&a.CreatedAt, &a.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan asset failed: %w", err)
		}
		assets = append(assets, &a)
	}

	return assets, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, a *Asset) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.assets").
		Set("name", a.Name).
		Set("barcode", a.Barcode).
		Set("category", a.Category).
		Set("location_id", a.LocationID).
		Set("status", a.Status).
		Set("description", a.Description).
		Set("photo_path", a.PhotoPath).
		Set("thumbnail_path", a.ThumbnailPath).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update asset query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrBarcodeTaken
		}
		return fmt.Errorf("update asset failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.assets").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete asset query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete asset failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
