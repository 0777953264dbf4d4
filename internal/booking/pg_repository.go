package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository needs. Satisfied by
// *pgxpool.Pool and by pgxmock pools in tests.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PgRepository struct {
	db DB
}

func NewPgRepository(db DB) *PgRepository {
	return &PgRepository{db: db}
}

const appointmentColumns = `
	id, doctor_id, user_id, service_id, slot_date::text, slot_time,
	status, final_price_centavos, created_by, created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var createdBy *uuid.UUID

	err := row.Scan(
		&a.ID,
		&a.DoctorID,
		&a.UserID,
		&a.ServiceID,
		&a.Date,
		&a.Time,
		&a.Status,
		&a.FinalPriceCentavos,
		&createdBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	a.CreatedBy = createdBy
	return &a, nil
}

func (r *PgRepository) GetAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.db.QueryRow(ctx, `
		SELECT`+appointmentColumns+`
		FROM appointments
		WHERE id = $1
	`, id)
	return scanAppointment(row)
}

func (r *PgRepository) ListAppointments(ctx context.Context, f Filter) ([]Appointment, error) {
	query := `
		SELECT` + appointmentColumns + `
		FROM appointments
		WHERE ($1::uuid IS NULL OR user_id = $1)
		  AND ($2::uuid IS NULL OR doctor_id = $2)
		  AND ($3::text IS NULL OR status = $3)
		ORDER BY slot_date DESC, slot_time, created_at DESC
		LIMIT $4 OFFSET $5`

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var status *string
	if f.Status != nil {
		s := string(*f.Status)
		status = &s
	}

	rows, err := r.db.Query(ctx, query, f.UserID, f.DoctorID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}

	return result, rows.Err()
}

func (r *PgRepository) ReserveAndCreate(ctx context.Context, appt *Appointment) (*Appointment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	id := uuid.New()

	row := tx.QueryRow(ctx, `
		INSERT INTO appointments
			(id, doctor_id, user_id, service_id, slot_date, slot_time,
			 status, final_price_centavos, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5::date, $6, 'booked', $7, $8, now(), now())
		RETURNING`+appointmentColumns,
		id, appt.DoctorID, appt.UserID, appt.ServiceID, appt.Date, appt.Time,
		appt.FinalPriceCentavos, appt.CreatedBy)

	created, err := scanAppointment(row)
	if err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}

	// The UNIQUE key on (doctor_id, slot_date, slot_time) is the
	// reserve-if-absent primitive: zero rows affected means another
	// appointment already holds the slot, and the whole tx rolls back.
	tag, err := tx.Exec(ctx, `
		INSERT INTO doctor_slots (doctor_id, slot_date, slot_time, appointment_id, created_at)
		VALUES ($1, $2::date, $3, $4, now())
		ON CONFLICT (doctor_id, slot_date, slot_time) DO NOTHING
	`, appt.DoctorID, appt.Date, appt.Time, created.ID)
	if err != nil {
		return nil, fmt.Errorf("reserve slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrSlotTaken
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

func (r *PgRepository) CompleteWithRecord(ctx context.Context, id uuid.UUID, notes string) (*Appointment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		UPDATE appointments
		SET status = 'completed',
		    updated_at = now()
		WHERE id = $1
		  AND status = 'booked'
		RETURNING`+appointmentColumns, id)

	updated, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, r.transitionFailure(ctx, id)
		}
		return nil, err
	}

	// Same transaction as the status change: both land or neither does.
	// ON CONFLICT keeps a retried completion from duplicating the record.
	if _, err := tx.Exec(ctx, `
		INSERT INTO patient_records
			(id, appointment_id, user_id, doctor_id, service_id, record_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7, now())
		ON CONFLICT (appointment_id) DO NOTHING
	`, uuid.New(), updated.ID, updated.UserID, updated.DoctorID, updated.ServiceID, updated.Date, notes); err != nil {
		return nil, fmt.Errorf("insert patient record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *PgRepository) CancelAndRelease(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		UPDATE appointments
		SET status = 'cancelled',
		    updated_at = now()
		WHERE id = $1
		  AND status = 'booked'
		RETURNING`+appointmentColumns, id)

	updated, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			return nil, r.transitionFailure(ctx, id)
		}
		return nil, err
	}

	// Cancelling frees the slot for rebooking.
	if _, err := tx.Exec(ctx, `
		DELETE FROM doctor_slots
		WHERE appointment_id = $1
	`, updated.ID); err != nil {
		return nil, fmt.Errorf("release slot: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *PgRepository) DeleteAndRelease(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM doctor_slots
		WHERE appointment_id = $1
	`, id); err != nil {
		return fmt.Errorf("release slot: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		DELETE FROM appointments
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}

	return tx.Commit(ctx)
}

func (r *PgRepository) ReservedSlots(ctx context.Context, doctorID uuid.UUID, from, to string) (map[string][]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT slot_date::text, slot_time
		FROM doctor_slots
		WHERE doctor_id = $1
		  AND slot_date BETWEEN $2::date AND $3::date
		ORDER BY slot_date, slot_time
	`, doctorID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reserved := make(map[string][]string)
	for rows.Next() {
		var date, slot string
		if err := rows.Scan(&date, &slot); err != nil {
			return nil, err
		}
		reserved[date] = append(reserved[date], slot)
	}

	return reserved, rows.Err()
}

func (r *PgRepository) PruneSlotsBefore(ctx context.Context, cutoff string) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM doctor_slots
		WHERE slot_date < $1::date
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// transitionFailure distinguishes a missing appointment from one in a
// terminal state after a conditional update matched no rows.
func (r *PgRepository) transitionFailure(ctx context.Context, id uuid.UUID) error {
	var status string
	err := r.db.QueryRow(ctx, `
		SELECT status FROM appointments WHERE id = $1
	`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAppointmentNotFound
		}
		return err
	}
	return fmt.Errorf("%w: current status %s", ErrInvalidTransition, status)
}
