package records

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrescriptionPDF(t *testing.T) {
	p := &Prescription{
		ID:            uuid.New(),
		AppointmentID: uuid.New(),
		UserID:        uuid.New(),
		DoctorID:      uuid.New(),
		Medicines: []Medicine{
			{Name: "Amoxicillin 500mg", Dosage: "1 capsule", Instructions: "Every 8 hours for 7 days"},
			{Name: "Mefenamic acid 500mg", Dosage: "1 tablet", Instructions: "As needed for pain"},
		},
		Notes:     "Soft diet for 24 hours.",
		CreatedAt: time.Date(2026, 3, 3, 11, 0, 0, 0, time.UTC),
	}

	out, err := buildPrescriptionPDF(p, "Dr. Reyes", "Maria Santos")
	require.NoError(t, err)

	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output must be a PDF document")
}

func TestBuildPrescriptionPDFEmptyNames(t *testing.T) {
	p := &Prescription{
		ID:        uuid.New(),
		Medicines: []Medicine{{Name: "Paracetamol 500mg"}},
		CreatedAt: time.Now(),
	}

	out, err := buildPrescriptionPDF(p, "", "")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
