package kit

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/parishtools/equipment-booking-backend/internal/asset"
)

type Repository interface {
	Create(ctx context.Context, k *Kit) error
	GetByID(ctx context.Context, id string) (*Kit, error)
	List(ctx context.Context, filter Filter) ([]*Kit, int, error)
	Update(ctx context.Context, k *Kit) error
	Delete(ctx context.Context, id string) error

	SetMembers(ctx context.Context, kitID string, assetIDs []string) error
	ListMembers(ctx context.Context, kitID string) ([]*asset.Asset, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, k *Kit) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.kits").
		Columns("name", "description").
		Values(k.Name, k.Description).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create kit query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&k.ID, &k.CreatedAt, &k.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Kit, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"k.id", "k.name", "k.description",
		"(SELECT count(*) FROM public.kit_assets ka WHERE ka.kit_id = k.id) AS asset_count",
		"k.created_at", "k.updated_at",
	).
		From("public.kits k").
		Where(squirrel.Eq{"k.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get kit query failed: %w", err)
	}

	var k Kit
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&k.ID, &k.Name, &k.Description, &k.AssetCount, &k.CreatedAt, &k.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get kit failed: %w", err)
	}
	return &k, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Kit, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"k.id", "k.name", "k.description",
		"(SELECT count(*) FROM public.kit_assets ka WHERE ka.kit_id = k.id) AS asset_count",
		"k.created_at", "k.updated_at",
		"count(*) OVER() as total_count",
	).From("public.kits k")

	if filter.Keyword != "" {
		query = query.Where(squirrel.Or{
			squirrel.ILike{"k.name": "%" + filter.Keyword + "%"},
			squirrel.ILike{"k.description": "%" + filter.Keyword + "%"},
		})
	}

	query = query.OrderBy("k.name ASC")

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
		return nil, 0, fmt.Errorf("build list kits query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list kits failed: %w", err)
	}
	defer rows.Close()

	var kits []*Kit
	var total int

	for rows.Next() {
		var k Kit
		if err := rows.Scan(&k.ID, &k.Name, &k.Description, &k.AssetCount, &k.CreatedAt, &k.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan kit failed: %w", err)
		}
		kits = append(kits, &k)
	}

	return kits, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, k *Kit) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.kits").
		Set("name", k.Name).
		Set("description", k.Description).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": k.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update kit query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update kit failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.kits").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete kit query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete kit failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetMembers replaces the membership rows in a single transaction so readers
// never observe a half-updated kit.
func (r *pgxRepository) SetMembers(ctx context.Context, kitID string, assetIDs []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin set kit members failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM public.kit_assets WHERE kit_id = $1", kitID); err != nil {
		return fmt.Errorf("clear kit members failed: %w", err)
	}

	for _, assetID := range assetIDs {
		if _, err := tx.Exec(ctx,
			"INSERT INTO public.kit_assets (kit_id, asset_id) VALUES ($1, $2)",
			kitID, assetID,
		); err != nil {
			return fmt.Errorf("insert kit member failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit set kit members failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListMembers(ctx context.Context, kitID string) ([]*asset.Asset, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"a.id", "a.name", "a.barcode", "a.category",
		"a.location_id", "l.name",
		"a.status", "a.description", "a.photo_path", "a.thumbnail_path",
		"a.created_at", "a.updated_at",
	).
		From("public.kit_assets ka").
		Join("public.assets a ON ka.asset_id = a.id").
		Join("public.locations l ON a.location_id = l.id").
		Where(squirrel.Eq{"ka.kit_id": kitID}).
		OrderBy("a.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list kit members query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list kit members failed: %w", err)
	}
	defer rows.Close()

	var members []*asset.Asset
	for rows.Next() {
		var a asset.Asset
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Barcode, &a.Category,
			&a.LocationID, &a.LocationName,
			&a.Status, &a.Description, &a.PhotoPath, &a.ThumbnailPath,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan kit member failed: %w", err)
		}
		members = append(members, &a)
	}

	return members, nil
}
