package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

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

func scanRecord(row pgx.Row) (*PatientRecord, error) {
	var r PatientRecord

	err := row.Scan(
		&r.ID,
		&r.AppointmentID,
		&r.UserID,
		&r.DoctorID,
		&r.ServiceID,
		&r.Date,
		&r.Notes,
		&r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return &r, nil
}

func scanPrescription(row pgx.Row) (*Prescription, error) {
	var p Prescription
	var medicines []byte

	err := row.Scan(
		&p.ID,
		&p.AppointmentID,
		&p.UserID,
		&p.DoctorID,
		&medicines,
		&p.Notes,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPrescriptionNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(medicines, &p.Medicines); err != nil {
		return nil, fmt.Errorf("decode medicines: %w", err)
	}

	return &p, nil
}

func (r *PgRepository) GetRecordByID(ctx context.Context, id uuid.UUID) (*PatientRecord, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, appointment_id, user_id, doctor_id, service_id, record_date::text, notes, created_at
		FROM patient_records
		WHERE id = $1
	`, id)
	return scanRecord(row)
}

func (r *PgRepository) ListRecordsByUser(ctx context.Context, userID uuid.UUID) ([]PatientRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, appointment_id, user_id, doctor_id, service_id, record_date::text, notes, created_at
		FROM patient_records
		WHERE user_id = $1
		ORDER BY record_date DESC, created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PatientRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}

	return result, rows.Err()
}

func (r *PgRepository) UpdateRecordNotes(ctx context.Context, id uuid.UUID, notes string) (*PatientRecord, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE patient_records
		SET notes = $2
		WHERE id = $1
		RETURNING id, appointment_id, user_id, doctor_id, service_id, record_date::text, notes, created_at
	`, id, notes)
	return scanRecord(row)
}

func (r *PgRepository) CreatePrescription(ctx context.Context, p *Prescription) (*Prescription, error) {
	medicines, err := json.Marshal(p.Medicines)
	if err != nil {
		return nil, fmt.Errorf("encode medicines: %w", err)
	}

	id := uuid.New()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO prescriptions (id, appointment_id, user_id, doctor_id, medicines, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING id, appointment_id, user_id, doctor_id, medicines, notes, created_at
	`, id, p.AppointmentID, p.UserID, p.DoctorID, medicines, p.Notes)

	return scanPrescription(row)
}

func (r *PgRepository) GetPrescriptionByID(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, appointment_id, user_id, doctor_id, medicines, notes, created_at
		FROM prescriptions
		WHERE id = $1
	`, id)
	return scanPrescription(row)
}

func (r *PgRepository) ListPrescriptionsByUser(ctx context.Context, userID uuid.UUID) ([]Prescription, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, appointment_id, user_id, doctor_id, medicines, notes, created_at
		FROM prescriptions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Prescription
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}

	return result, rows.Err()
}
