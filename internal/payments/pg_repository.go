package payments

import (
	"context"
	"errors"

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

const proofColumns = `
	id, appointment_id, user_id, reference, amount_centavos,
	status, review_notes, reviewed_by, reviewed_at, created_at`

func scanProof(row pgx.Row) (*Proof, error) {
	var p Proof

	err := row.Scan(
		&p.ID,
		&p.AppointmentID,
		&p.UserID,
		&p.Reference,
		&p.AmountCentavos,
		&p.Status,
		&p.ReviewNotes,
		&p.ReviewedBy,
		&p.ReviewedAt,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProofNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Proof, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT`+proofColumns+`
		FROM payment_proofs
		WHERE id = $1
	`, id)
	return scanProof(row)
}

func (r *PgRepository) ListByStatus(ctx context.Context, status *ProofStatus) ([]Proof, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+proofColumns+`
		FROM payment_proofs
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC
	`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Proof
	for rows.Next() {
		p, err := scanProof(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}

	return result, rows.Err()
}

func (r *PgRepository) ListByAppointment(ctx context.Context, appointmentID uuid.UUID) ([]Proof, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+proofColumns+`
		FROM payment_proofs
		WHERE appointment_id = $1
		ORDER BY created_at DESC
	`, appointmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Proof
	for rows.Next() {
		p, err := scanProof(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}

	return result, rows.Err()
}

func (r *PgRepository) Create(ctx context.Context, p *Proof) (*Proof, error) {
	id := uuid.New()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO payment_proofs
			(id, appointment_id, user_id, reference, amount_centavos, status, created_at)
		VALUES ($1, $2, $3, $4, $5, 'pending', now())
		RETURNING`+proofColumns,
		id, p.AppointmentID, p.UserID, p.Reference, p.AmountCentavos)

	return scanProof(row)
}

func (r *PgRepository) Review(ctx context.Context, id uuid.UUID, to ProofStatus, reviewerID uuid.UUID, notes string) (*Proof, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE payment_proofs
		SET status = $2,
		    review_notes = $3,
		    reviewed_by = $4,
		    reviewed_at = now()
		WHERE id = $1
		  AND status = 'pending'
		RETURNING`+proofColumns, id, to, notes, reviewerID)

	p, err := scanProof(row)
	if err != nil {
		if errors.Is(err, ErrProofNotFound) {
			// Conditional update matched nothing: missing vs already done.
			var status string
			checkErr := r.pool.QueryRow(ctx, `
				SELECT status FROM payment_proofs WHERE id = $1
			`, id).Scan(&status)
			if checkErr != nil {
				return nil, ErrProofNotFound
			}
			return nil, ErrProofAlreadyReviewed
		}
		return nil, err
	}

	return p, nil
}
