package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marvinjameserosa/db-event-reg-system/internal/domain"
)

// CheckInRepository owns the used flag of a registration. The only write it
// performs is the conditional unused-to-used flip.
type CheckInRepository struct {
	pool *pgxpool.Pool
}

func NewCheckInRepository(pool *pgxpool.Pool) *CheckInRepository {
	return &CheckInRepository{pool: pool}
}

// ConsumeTicket is a compare-and-set on the prior state: the row updates only
// while still unused, so concurrent scans of one ticket commit exactly one
// transition no matter how they interleave.
func (r *CheckInRepository) ConsumeTicket(ctx context.Context, eventID, userID string, usedAt time.Time) (bool, error) {
	const stmt = `
UPDATE registrations
SET used = TRUE, used_at = $3
WHERE event_id = $1 AND user_id = $2 AND used = FALSE`

	tag, err := r.pool.Exec(ctx, stmt, eventID, userID, usedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, wrapStorageErr("consume ticket", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *CheckInRepository) UserExists(ctx context.Context, userID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, wrapStorageErr("check user", err)
	}
	return exists, nil
}

func (r *CheckInRepository) GetRegistration(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	const query = `
SELECT event_id, user_id, used, registered_at, used_at
FROM registrations
WHERE event_id = $1 AND user_id = $2`

	var reg domain.Registration
	err := r.pool.QueryRow(ctx, query, eventID, userID).
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
