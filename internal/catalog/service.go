package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/brightsmile/clinic-backend/internal/domain"
)

// CatalogService validates and persists the clinic's price list and roster.
type CatalogService struct {
	repo Repository
}

func NewCatalogService(repo Repository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (*Service, error) {
	svc, err := s.repo.GetServiceByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load service: %w", err)
	}
	return svc, nil
}

func (s *CatalogService) ListServices(ctx context.Context) ([]Service, error) {
	return s.repo.ListServices(ctx)
}

func (s *CatalogService) CreateService(ctx context.Context, svc Service) (*Service, error) {
	if err := validateService(&svc); err != nil {
		return nil, err
	}
	return s.repo.CreateService(ctx, &svc)
}

func (s *CatalogService) UpdateService(ctx context.Context, svc Service) (*Service, error) {
	if err := validateService(&svc); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetServiceByID(ctx, svc.ID); err != nil {
		return nil, err
	}
	return s.repo.UpdateService(ctx, &svc)
}

func (s *CatalogService) DeleteService(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteService(ctx, id)
}

func (s *CatalogService) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	doc, err := s.repo.GetDoctorByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load doctor: %w", err)
	}
	return doc, nil
}

func (s *CatalogService) ListDoctors(ctx context.Context) ([]Doctor, error) {
	return s.repo.ListDoctors(ctx)
}

func (s *CatalogService) CreateDoctor(ctx context.Context, doc Doctor) (*Doctor, error) {
	if err := validateDoctor(&doc); err != nil {
		return nil, err
	}
	return s.repo.CreateDoctor(ctx, &doc)
}

func (s *CatalogService) UpdateDoctor(ctx context.Context, doc Doctor) (*Doctor, error) {
	if err := validateDoctor(&doc); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetDoctorByID(ctx, doc.ID); err != nil {
		return nil, err
	}
	return s.repo.UpdateDoctor(ctx, &doc)
}

func (s *CatalogService) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteDoctor(ctx, id)
}

func validateService(svc *Service) error {
	svc.Name = strings.TrimSpace(svc.Name)
	if svc.Name == "" {
		return domain.ValidationError{Field: "name", Msg: "must not be empty"}
	}
	if svc.PriceCentavos <= 0 {
		return domain.ValidationError{Field: "price", Msg: "must be greater than zero"}
	}
	return nil
}

func validateDoctor(doc *Doctor) error {
	doc.Name = strings.TrimSpace(doc.Name)
	if doc.Name == "" {
		return domain.ValidationError{Field: "name", Msg: "must not be empty"}
	}
	if doc.FeeCentavos < 0 {
		return domain.ValidationError{Field: "fee", Msg: "must not be negative"}
	}
	return nil
}
