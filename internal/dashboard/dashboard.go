package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Summary is the admin landing-page read model.
type Summary struct {
	Booked           int64 `json:"booked"`
	Completed        int64 `json:"completed"`
	Cancelled        int64 `json:"cancelled"`
	TodayBookings    int64 `json:"todayBookings"`
	PendingProofs    int64 `json:"pendingProofs"`
	RevenueCentavos  int64 `json:"revenueCentavos"`
	PatientsRecorded int64 `json:"patientsRecorded"`
}

// DoctorLoad is one row of the upcoming-week load table.
type DoctorLoad struct {
	DoctorID   string `json:"doctorId"`
	DoctorName string `json:"doctorName"`
	Upcoming   int64  `json:"upcoming"`
}

// Service runs the aggregation queries behind the admin dashboard.
// Read-only; it owns no tables.
type Service struct {
	pool *pgxpool.Pool
}

func NewService(pool *pgxpool.Pool) *Service {
	return &Service{pool: pool}
}

func (s *Service) Summary(ctx context.Context, now time.Time) (*Summary, error) {
	var out Summary

	err := s.pool.QueryRow(ctx, `
		SELECT
			count(*) FILTER (WHERE status = 'booked'),
			count(*) FILTER (WHERE status = 'completed'),
			count(*) FILTER (WHERE status = 'cancelled'),
			count(*) FILTER (WHERE slot_date = $1::date AND status = 'booked'),
			COALESCE(sum(final_price_centavos) FILTER (WHERE status = 'completed'), 0)
		FROM appointments
	`, now.Format("2006-01-02")).Scan(
		&out.Booked,
		&out.Completed,
		&out.Cancelled,
		&out.TodayBookings,
		&out.RevenueCentavos,
	)
	if err != nil {
		return nil, err
	}

	if err := s.pool.QueryRow(ctx, `
		SELECT count(*) FROM payment_proofs WHERE status = 'pending'
	`).Scan(&out.PendingProofs); err != nil {
		return nil, err
	}

	if err := s.pool.QueryRow(ctx, `
		SELECT count(DISTINCT user_id) FROM patient_records
	`).Scan(&out.PatientsRecorded); err != nil {
		return nil, err
	}

	return &out, nil
}

// UpcomingByDoctor counts booked appointments per doctor over the next
// seven days.
func (s *Service) UpcomingByDoctor(ctx context.Context, now time.Time) ([]DoctorLoad, error) {
	from := now.Format("2006-01-02")
	to := now.AddDate(0, 0, 6).Format("2006-01-02")

	rows, err := s.pool.Query(ctx, `
		SELECT d.id, d.name, count(a.id)
		FROM doctors d
		LEFT JOIN appointments a
		  ON a.doctor_id = d.id
		 AND a.status = 'booked'
		 AND a.slot_date BETWEEN $1::date AND $2::date
		GROUP BY d.id, d.name
		ORDER BY count(a.id) DESC, d.name
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []DoctorLoad
	for rows.Next() {
		var dl DoctorLoad
		if err := rows.Scan(&dl.DoctorID, &dl.DoctorName, &dl.Upcoming); err != nil {
			return nil, err
		}
		result = append(result, dl)
	}

	return result, rows.Err()
}
