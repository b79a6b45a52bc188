package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marvinjameserosa/db-event-reg-system/internal/domain"
)

// RegistrationRepository persists the admission ledger. GetEventForUpdate
// takes the per-event row lock that serializes concurrent registrations.
type RegistrationRepository struct {
	pool *pgxpool.Pool
}

func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

func (r *RegistrationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *RegistrationRepository) GetEventForUpdate(ctx context.Context, eventID string) (domain.Event, error) {
	const query = `
SELECT id, name, description, location, is_virtual, created_by,
       starts_at, ends_at, COALESCE(capacity_limit, 0), created_at
FROM events
WHERE id = $1
FOR UPDATE`

	var e domain.Event
	err := r.queryRow(ctx, query, eventID).Scan(
		&e.ID, &e.Name, &e.Description, &e.Location, &e.IsVirtual, &e.CreatedBy,
		&e.StartsAt, &e.EndsAt, &e.CapacityLimit, &e.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Event{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, wrapStorageErr("get event", err)
	}
	return e, nil
}

func (r *RegistrationRepository) GetRegistration(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	const query = `
SELECT event_id, user_id, used, registered_at, used_at
FROM registrations
WHERE event_id = $1 AND user_id = $2`

	var reg domain.Registration
	err := r.queryRow(ctx, query, eventID, userID).
		Scan(&reg.EventID, &reg.UserID, &reg.Used, &reg.RegisteredAt, &reg.UsedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, wrapStorageErr("get registration", err)
	}
	return &reg, nil
}

func (r *RegistrationRepository) CountRegistrations(ctx context.Context, eventID string) (int, error) {
	const query = `SELECT COUNT(*) FROM registrations WHERE event_id = $1`

	var count int
	if err := r.queryRow(ctx, query, eventID).Scan(&count); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		return 0, wrapStorageErr("count registrations", err)
	}
	return count, nil
}

func (r *RegistrationRepository) CreateRegistration(ctx context.Context, reg domain.Registration) error {
	const stmt = `
INSERT INTO registrations (event_id, user_id, used, registered_at)
VALUES ($1, $2, $3, $4)`

	_, err := r.exec(ctx, stmt, reg.EventID, reg.UserID, reg.Used, reg.RegisteredAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		if isForeignKeyViolation(err) {
			return domain.ErrEventNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return wrapStorageErr("create registration", err)
	}
	return nil
}

func (r *RegistrationRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *RegistrationRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
