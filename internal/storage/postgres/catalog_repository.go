package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marvinjameserosa/db-event-reg-system/internal/domain"
)

// CatalogRepository serves the read-only discovery queries.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

const summaryColumns = `
SELECT e.id, e.name, e.description, e.location, e.is_virtual, e.created_by,
       e.starts_at, e.ends_at, COALESCE(e.capacity_limit, 0), e.created_at,
       COUNT(r.user_id),
       COALESCE(BOOL_OR(r.user_id = $1), FALSE)
FROM events e
LEFT JOIN registrations r ON r.event_id = e.id`

func (r *CatalogRepository) ListEvents(ctx context.Context, userID string) ([]domain.EventSummary, error) {
	const query = summaryColumns + `
GROUP BY e.id
ORDER BY e.starts_at ASC, e.id ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, wrapStorageErr("list events", err)
	}
	defer rows.Close()

	var summaries []domain.EventSummary
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, wrapStorageErr("scan event", err)
		}
		summaries = append(summaries, summary)
	}
	if rows.Err() != nil {
		if isInvalidUUID(rows.Err()) {
			return nil, domain.ErrInvalidID
		}
		return nil, wrapStorageErr("iterate events", rows.Err())
	}
	return summaries, nil
}

func (r *CatalogRepository) GetEvent(ctx context.Context, eventID, userID string) (*domain.EventSummary, error) {
	const query = summaryColumns + `
WHERE e.id = $2
GROUP BY e.id`

	summary, err := scanSummary(r.pool.QueryRow(ctx, query, userID, eventID))
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, wrapStorageErr("get event", err)
	}
	return &summary, nil
}

func scanSummary(row pgx.Row) (domain.EventSummary, error) {
	var s domain.EventSummary
	err := row.Scan(
		&s.ID, &s.Name, &s.Description, &s.Location, &s.IsVirtual, &s.CreatedBy,
		&s.StartsAt, &s.EndsAt, &s.CapacityLimit, &s.CreatedAt,
		&s.RegisteredCount, &s.Going,
	)
	return s, err
}
