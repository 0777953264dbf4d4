package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrDoctorNotFound  = errors.New("doctor not found")
)

// Repository contains all DB interactions needed for the catalog.
type Repository interface {
	GetServiceByID(ctx context.Context, id uuid.UUID) (*Service, error)
	ListServices(ctx context.Context) ([]Service, error)
	CreateService(ctx context.Context, svc *Service) (*Service, error)
	UpdateService(ctx context.Context, svc *Service) (*Service, error)
	DeleteService(ctx context.Context, id uuid.UUID) error

	GetDoctorByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	ListDoctors(ctx context.Context) ([]Doctor, error)
	CreateDoctor(ctx context.Context, doc *Doctor) (*Doctor, error)
	UpdateDoctor(ctx context.Context, doc *Doctor) (*Doctor, error)
	DeleteDoctor(ctx context.Context, id uuid.UUID) error
}
