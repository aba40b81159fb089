package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, b *Booking) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error

	// ListForResource returns the live bookings holding the given asset or
	// kit, in creation order. Exactly one of assetID / kitID is non-empty.
	ListForResource(ctx context.Context, assetID, kitID string) ([]*Booking, error)
	ListByStatus(ctx context.Context, status Status) ([]*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// bookingColumns is the shared select list. Requester and assignee names fall
// back to the email when no display name is set; asset/kit references are
// nullable and surface as empty strings.
var bookingColumns = []string{
	"b.id",
	"COALESCE(b.asset_id::text, '')",
	"COALESCE(b.kit_id::text, '')",
	"COALESCE(a.name, '')",
	"COALESCE(k.name, '')",
	"b.requested_by_id",
	"COALESCE(ru.display_name, ru.email)",
	"b.assigned_to_id",
	"COALESCE(au.display_name, au.email)",
	"b.booking_mode",
	"COALESCE(b.date, '')",
	"COALESCE(b.start_date, '')",
	"COALESCE(b.end_date, '')",
	"COALESCE(b.start_time, '')",
	"COALESCE(b.end_time, '')",
	"b.purpose",
	"b.notes",
	"b.status",
	"b.created_at",
	"b.updated_at",
}

func selectBookings() squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(bookingColumns...).
		From("public.bookings b").
		LeftJoin("public.assets a ON b.asset_id = a.id").
		LeftJoin("public.kits k ON b.kit_id = k.id").
		Join("public.users ru ON b.requested_by_id = ru.id").
		Join("public.users au ON b.assigned_to_id = au.id")
}

// scanTargets returns the scan destinations matching bookingColumns order.
func scanTargets(b *Booking) []any {
	return []any{
		&b.ID,
		&b.AssetID,
		&b.KitID,
		&b.AssetName,
		&b.KitName,
		&b.RequestedByID,
		&b.RequestedByName,
		&b.AssignedToID,
		&b.AssignedToName,
		&b.Window.Mode,
		&b.Window.Date,
		&b.Window.StartDate,
		&b.Window.EndDate,
		&b.Window.StartTime,
		&b.Window.EndTime,
		&b.Purpose,
		&b.Notes,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	}
}

// nullIfEmpty maps optional references and date fields onto nullable columns.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns(
			"asset_id", "kit_id", "requested_by_id", "assigned_to_id",
			"booking_mode", "date", "start_date", "end_date", "start_time", "end_time",
			"purpose", "notes", "status",
		).
		Values(
			nullIfEmpty(b.AssetID), nullIfEmpty(b.KitID), b.RequestedByID, b.AssignedToID,
			b.Window.Mode,
			nullIfEmpty(b.Window.Date), nullIfEmpty(b.Window.StartDate), nullIfEmpty(b.Window.EndDate),
			nullIfEmpty(b.Window.StartTime), nullIfEmpty(b.Window.EndTime),
			b.Purpose, b.Notes, b.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := selectBookings().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	if err := r.pool.QueryRow(ctx, query, args...).Scan(scanTargets(&b)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	query := selectBookings().Column("count(*) OVER() as total_count")

	if filter.RequestedByID != "" {
		query = query.Where(squirrel.Eq{"b.requested_by_id": filter.RequestedByID})
	}
	if filter.AssignedToID != "" {
		query = query.Where(squirrel.Eq{"b.assigned_to_id": filter.AssignedToID})
	}
	if filter.AssetID != "" {
		query = query.Where(squirrel.Eq{"b.asset_id": filter.AssetID})
	}
	if filter.KitID != "" {
		query = query.Where(squirrel.Eq{"b.kit_id": filter.KitID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}

	// Day-granularity window filter over whichever date columns the booking
	// mode populated.
	if filter.DateFrom != "" {
		query = query.Where(squirrel.GtOrEq{"COALESCE(b.end_date, b.date)": filter.DateFrom})
	}
	if filter.DateTo != "" {
		query = query.Where(squirrel.LtOrEq{"COALESCE(b.start_date, b.date)": filter.DateTo})
	}

	query = query.OrderBy("b.created_at DESC")

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
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(append(scanTargets(&b), &total)...); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("assigned_to_id", b.AssignedToID).
		Set("booking_mode", b.Window.Mode).
		Set("date", nullIfEmpty(b.Window.Date)).
		Set("start_date", nullIfEmpty(b.Window.StartDate)).
		Set("end_date", nullIfEmpty(b.Window.EndDate)).
		Set("start_time", nullIfEmpty(b.Window.StartTime)).
		Set("end_time", nullIfEmpty(b.Window.EndTime)).
		Set("purpose", b.Purpose).
		Set("notes", b.Notes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) listWhere(ctx context.Context, cond squirrel.Sqlizer) ([]*Booking, error) {
	query, args, err := selectBookings().
		Where(cond).
		OrderBy("b.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(scanTargets(&b)...); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, nil
}

func (r *pgxRepository) ListForResource(ctx context.Context, assetID, kitID string) ([]*Booking, error) {
	var resource squirrel.Sqlizer
	if assetID != "" {
		resource = squirrel.Eq{"b.asset_id": assetID}
	} else {
		resource = squirrel.Eq{"b.kit_id": kitID}
	}

	return r.listWhere(ctx, squirrel.And{
		resource,
		squirrel.Eq{"b.status": []Status{StatusPending, StatusApproved, StatusActive}},
	})
}

func (r *pgxRepository) ListByStatus(ctx context.Context, status Status) ([]*Booking, error) {
	return r.listWhere(ctx, squirrel.Eq{"b.status": status})
}
