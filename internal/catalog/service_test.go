package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightsmile/clinic-backend/internal/domain"
)

type memRepo struct {
	services map[uuid.UUID]*Service
	doctors  map[uuid.UUID]*Doctor
}

func newMemRepo() *memRepo {
	return &memRepo{
		services: make(map[uuid.UUID]*Service),
		doctors:  make(map[uuid.UUID]*Doctor),
	}
}

func (r *memRepo) GetServiceByID(_ context.Context, id uuid.UUID) (*Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memRepo) ListServices(_ context.Context) ([]Service, error) {
	out := make([]Service, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, *s)
	}
	return out, nil
}

func (r *memRepo) CreateService(_ context.Context, svc *Service) (*Service, error) {
	cp := *svc
	cp.ID = uuid.New()
	r.services[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memRepo) UpdateService(_ context.Context, svc *Service) (*Service, error) {
	if _, ok := r.services[svc.ID]; !ok {
		return nil, ErrServiceNotFound
	}
	cp := *svc
	r.services[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memRepo) DeleteService(_ context.Context, id uuid.UUID) error {
	if _, ok := r.services[id]; !ok {
		return ErrServiceNotFound
	}
	delete(r.services, id)
	return nil
}

func (r *memRepo) GetDoctorByID(_ context.Context, id uuid.UUID) (*Doctor, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, ErrDoctorNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *memRepo) ListDoctors(_ context.Context) ([]Doctor, error) {
	out := make([]Doctor, 0, len(r.doctors))
	for _, d := range r.doctors {
		out = append(out, *d)
	}
	return out, nil
}

func (r *memRepo) CreateDoctor(_ context.Context, doc *Doctor) (*Doctor, error) {
	cp := *doc
	cp.ID = uuid.New()
	r.doctors[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memRepo) UpdateDoctor(_ context.Context, doc *Doctor) (*Doctor, error) {
	if _, ok := r.doctors[doc.ID]; !ok {
		return nil, ErrDoctorNotFound
	}
	cp := *doc
	r.doctors[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memRepo) DeleteDoctor(_ context.Context, id uuid.UUID) error {
	if _, ok := r.doctors[id]; !ok {
		return ErrDoctorNotFound
	}
	delete(r.doctors, id)
	return nil
}

func TestCreateServiceValidation(t *testing.T) {
	svc := NewCatalogService(newMemRepo())

	_, err := svc.CreateService(context.Background(), Service{Name: "  ", PriceCentavos: 50000})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.CreateService(context.Background(), Service{Name: "Cleaning", PriceCentavos: 0})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.CreateService(context.Background(), Service{Name: "Cleaning", PriceCentavos: -100})
	assert.True(t, domain.IsValidation(err))
}

func TestServiceRoundTrip(t *testing.T) {
	svc := NewCatalogService(newMemRepo())

	created, err := svc.CreateService(context.Background(), Service{
		Name:          "  Oral Prophylaxis (Cleaning)  ",
		PriceCentavos: 50000,
		Duration:      "30 mins",
	})
	require.NoError(t, err)

	// Names come back trimmed.
	assert.Equal(t, "Oral Prophylaxis (Cleaning)", created.Name)

	got, err := svc.GetService(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	created.PriceCentavos = 55000
	updated, err := svc.UpdateService(context.Background(), *created)
	require.NoError(t, err)
	assert.Equal(t, int64(55000), updated.PriceCentavos)

	require.NoError(t, svc.DeleteService(context.Background(), created.ID))

	_, err = svc.GetService(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestUpdateUnknownService(t *testing.T) {
	svc := NewCatalogService(newMemRepo())

	_, err := svc.UpdateService(context.Background(), Service{
		ID:            uuid.New(),
		Name:          "Cleaning",
		PriceCentavos: 50000,
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCreateDoctorValidation(t *testing.T) {
	svc := NewCatalogService(newMemRepo())

	_, err := svc.CreateDoctor(context.Background(), Doctor{Name: ""})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.CreateDoctor(context.Background(), Doctor{Name: "Dr. Reyes", FeeCentavos: -1})
	assert.True(t, domain.IsValidation(err))
}

func TestDoctorRoundTrip(t *testing.T) {
	svc := NewCatalogService(newMemRepo())

	created, err := svc.CreateDoctor(context.Background(), Doctor{
		Name:        "Dr. Reyes",
		Credentials: "DMD, Orthodontics",
		FeeCentavos: 50000,
		Available:   true,
	})
	require.NoError(t, err)

	created.Available = false
	updated, err := svc.UpdateDoctor(context.Background(), *created)
	require.NoError(t, err)
	assert.False(t, updated.Available)

	require.NoError(t, svc.DeleteDoctor(context.Background(), created.ID))

	_, err = svc.GetDoctor(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}
