package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock
}

func appointmentRows(mock pgxmock.PgxPoolIface, a Appointment) *pgxmock.Rows {
	return mock.NewRows([]string{
		"id", "doctor_id", "user_id", "service_id", "slot_date", "slot_time",
		"status", "final_price_centavos", "created_by", "created_at", "updated_at",
	}).AddRow(
		a.ID, a.DoctorID, a.UserID, a.ServiceID, a.Date, a.Time,
		a.Status, a.FinalPriceCentavos, a.CreatedBy, a.CreatedAt, a.UpdatedAt,
	)
}

func sampleAppointment() Appointment {
	now := time.Now()
	return Appointment{
		ID:                 uuid.New(),
		DoctorID:           uuid.New(),
		UserID:             uuid.New(),
		ServiceID:          uuid.New(),
		Date:               "2026-03-03",
		Time:               "10:00 AM",
		Status:             StatusBooked,
		FinalPriceCentavos: 40000,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func TestReserveAndCreateCommits(t *testing.T) {
	mock := mockPool(t)
	repo := NewPgRepository(mock)

	want := sampleAppointment()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(pgxmock.AnyArg(), want.DoctorID, want.UserID, want.ServiceID,
			want.Date, want.Time, want.FinalPriceCentavos, pgxmock.AnyArg()).
		WillReturnRows(appointmentRows(mock, want))
	mock.ExpectExec("INSERT INTO doctor_slots").
		WithArgs(want.DoctorID, want.Date, want.Time, want.ID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	got, err := repo.ReserveAndCreate(context.Background(), &Appointment{
		DoctorID:           want.DoctorID,
		UserID:             want.UserID,
		ServiceID:          want.ServiceID,
		Date:               want.Date,
		Time:               want.Time,
		FinalPriceCentavos: want.FinalPriceCentavos,
	})
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, StatusBooked, got.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveAndCreateSlotTakenRollsBack(t *testing.T) {
	mock := mockPool(t)
	repo := NewPgRepository(mock)

	want := sampleAppointment()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(pgxmock.AnyArg(), want.DoctorID, want.UserID, want.ServiceID,
			want.Date, want.Time, want.FinalPriceCentavos, pgxmock.AnyArg()).
		WillReturnRows(appointmentRows(mock, want))
	// Conditional insert matches nothing: the slot row already exists.
	mock.ExpectExec("INSERT INTO doctor_slots").
		WithArgs(want.DoctorID, want.Date, want.Time, want.ID).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectRollback()

	_, err := repo.ReserveAndCreate(context.Background(), &Appointment{
		DoctorID:           want.DoctorID,
		UserID:             want.UserID,
		ServiceID:          want.ServiceID,
		Date:               want.Date,
		Time:               want.Time,
		FinalPriceCentavos: want.FinalPriceCentavos,
	})
	assert.ErrorIs(t, err, ErrSlotTaken)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteWithRecordSharesTransaction(t *testing.T) {
	mock := mockPool(t)
	repo := NewPgRepository(mock)

	want := sampleAppointment()
	want.Status = StatusCompleted

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE appointments").
		WithArgs(want.ID).
		WillReturnRows(appointmentRows(mock, want))
	mock.ExpectExec("INSERT INTO patient_records").
		WithArgs(pgxmock.AnyArg(), want.ID, want.UserID, want.DoctorID,
			want.ServiceID, want.Date, "Appointment completed.").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	got, err := repo.CompleteWithRecord(context.Background(), want.ID, "Appointment completed.")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteWithRecordAlreadyTerminal(t *testing.T) {
	mock := mockPool(t)
	repo := NewPgRepository(mock)

	id := uuid.New()

	mock.ExpectBegin()
	// Conditional update matches nothing.
	mock.ExpectQuery("UPDATE appointments").
		WithArgs(id).
		WillReturnRows(mock.NewRows([]string{
			"id", "doctor_id", "user_id", "service_id", "slot_date", "slot_time",
			"status", "final_price_centavos", "created_by", "created_at", "updated_at",
		}))
	// The repo re-queries to tell not-found from wrong-state.
	mock.ExpectQuery("SELECT status FROM appointments").
		WithArgs(id).
		WillReturnRows(mock.NewRows([]string{"status"}).AddRow("cancelled"))
	mock.ExpectRollback()

	_, err := repo.CompleteWithRecord(context.Background(), id, "notes")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelAndReleaseFreesSlot(t *testing.T) {
	mock := mockPool(t)
	repo := NewPgRepository(mock)

	want := sampleAppointment()
	want.Status = StatusCancelled

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE appointments").
		WithArgs(want.ID).
		WillReturnRows(appointmentRows(mock, want))
	mock.ExpectExec("DELETE FROM doctor_slots").
		WithArgs(want.ID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	got, err := repo.CancelAndRelease(context.Background(), want.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservedSlotsGroupsByDate(t *testing.T) {
	mock := mockPool(t)
	repo := NewPgRepository(mock)

	doctorID := uuid.New()

	mock.ExpectQuery("SELECT slot_date::text, slot_time").
		WithArgs(doctorID, "2026-03-02", "2026-03-08").
		WillReturnRows(mock.NewRows([]string{"slot_date", "slot_time"}).
			AddRow("2026-03-03", "10:00 AM").
			AddRow("2026-03-03", "02:00 PM").
			AddRow("2026-03-05", "11:00 AM"))

	reserved, err := repo.ReservedSlots(context.Background(), doctorID, "2026-03-02", "2026-03-08")
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{
		"2026-03-03": {"10:00 AM", "02:00 PM"},
		"2026-03-05": {"11:00 AM"},
	}, reserved)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPruneSlotsBefore(t *testing.T) {
	mock := mockPool(t)
	repo := NewPgRepository(mock)

	mock.ExpectExec("DELETE FROM doctor_slots").
		WithArgs("2026-03-02").
		WillReturnResult(pgxmock.NewResult("DELETE", 12))

	n, err := repo.PruneSlotsBefore(context.Background(), "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)

	assert.NoError(t, mock.ExpectationsWereMet())
}
