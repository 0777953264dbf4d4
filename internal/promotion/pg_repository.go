package promotion

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanPromotion(row pgx.Row) (*Promotion, error) {
	var p Promotion

	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.DiscountPct,
		&p.StartsAt,
		&p.EndsAt,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *PgRepository) loadServiceIDs(ctx context.Context, p *Promotion) error {
	rows, err := r.pool.Query(ctx, `
		SELECT service_id
		FROM promotion_services
		WHERE promotion_id = $1
	`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return err
		}
		p.ServiceIDs = append(p.ServiceIDs, id)
	}
	return rows.Err()
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Promotion, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, discount_pct, starts_at, ends_at, active, created_at, updated_at
		FROM promotions
		WHERE id = $1
	`, id)
	p, err := scanPromotion(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadServiceIDs(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PgRepository) List(ctx context.Context) ([]Promotion, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, discount_pct, starts_at, ends_at, active, created_at, updated_at
		FROM promotions
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		if err := r.loadServiceIDs(ctx, &result[i]); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (r *PgRepository) ListActiveForService(ctx context.Context, serviceID uuid.UUID, now time.Time) ([]Promotion, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.title, p.discount_pct, p.starts_at, p.ends_at, p.active, p.created_at, p.updated_at
		FROM promotions p
		JOIN promotion_services ps ON ps.promotion_id = p.id
		WHERE ps.service_id = $1
		  AND p.active
		  AND p.starts_at <= $2
		  AND p.ends_at >= $2
	`, serviceID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			return nil, err
		}
		p.ServiceIDs = []uuid.UUID{serviceID}
		result = append(result, *p)
	}

	return result, rows.Err()
}

func (r *PgRepository) Create(ctx context.Context, p *Promotion) (*Promotion, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	id := uuid.New()

	row := tx.QueryRow(ctx, `
		INSERT INTO promotions (id, title, discount_pct, starts_at, ends_at, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING id, title, discount_pct, starts_at, ends_at, active, created_at, updated_at
	`, id, p.Title, p.DiscountPct, p.StartsAt, p.EndsAt, p.Active)

	created, err := scanPromotion(row)
	if err != nil {
		return nil, err
	}

	for _, sid := range p.ServiceIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO promotion_services (promotion_id, service_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, created.ID, sid); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	created.ServiceIDs = p.ServiceIDs
	return created, nil
}

func (r *PgRepository) Update(ctx context.Context, p *Promotion) (*Promotion, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		UPDATE promotions
		SET title = $2,
		    discount_pct = $3,
		    starts_at = $4,
		    ends_at = $5,
		    active = $6,
		    updated_at = now()
		WHERE id = $1
		RETURNING id, title, discount_pct, starts_at, ends_at, active, created_at, updated_at
	`, p.ID, p.Title, p.DiscountPct, p.StartsAt, p.EndsAt, p.Active)

	updated, err := scanPromotion(row)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM promotion_services WHERE promotion_id = $1`, p.ID); err != nil {
		return nil, err
	}
	for _, sid := range p.ServiceIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO promotion_services (promotion_id, service_id)
			VALUES ($1, $2)
		`, p.ID, sid); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	updated.ServiceIDs = p.ServiceIDs
	return updated, nil
}

func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPromotionNotFound
	}
	return nil
}

func (r *PgRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE promotions
		SET active = FALSE,
		    updated_at = now()
		WHERE active
		  AND ends_at < $1
	`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
