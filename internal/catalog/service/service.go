package service

import (
	catalogerrors "barberbook/internal/catalog/errors"
	"barberbook/internal/catalog/repository"
	"barberbook/internal/catalog/validator"
	"barberbook/pkg/config"
	apperrors "barberbook/pkg/errors"
	"barberbook/pkg/model"
	"barberbook/pkg/sanitizer"
	"barberbook/pkg/tenant"
	"barberbook/pkg/validation"
	"context"
	"errors"
	"slices"
	"sync"
)

type CatalogService interface {
	Create(ctx context.Context, service *model.Service) error
	GetByID(ctx context.Context, id string) (*model.Service, error)
	GetAll(ctx context.Context, filter repository.ServiceFilter, limit int, offset int64) ([]*model.Service, int64, error)
	Update(ctx context.Context, id string, updates *model.ServiceUpdate) (*model.Service, error)
	Delete(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]string, error)
}

// DefaultCategories are always offered, even before a tenant uses them.
var DefaultCategories = []string{"corte", "barba", "tratamento", "pacote"}

type catalogService struct {
	repo      repository.ServiceRepository
	validator *validator.ServiceValidator
	cfg       *config.Config
}

func NewCatalogService(
	repo repository.ServiceRepository,
	validator *validator.ServiceValidator,
	cfg *config.Config,
) CatalogService {
	return &catalogService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *catalogService) Create(ctx context.Context, service *model.Service) error {
	tenantID, err := tenant.Require(ctx)
	if err != nil {
		return err
	}
	service.ID = ""
	service.TenantID = tenantID
	service.IsActive = true
	if service.DurationMinutes == 0 {
		service.DurationMinutes = s.cfg.DefaultServiceDurationMin
	}
	sanitize(service)

	if err := s.validator.Validate(service); err != nil {
		s.cfg.Log.Warn("Service validation failed", "name", service.Name, "tenant_id", tenantID, "error", err)
		return validation.ToAppError("Service validation failed", err)
	}

	if err := s.repo.Create(ctx, service); err != nil {
		s.cfg.Log.Error("Failed to create service", "name", service.Name, "tenant_id", tenantID, "error", err)
		return apperrors.Internal("Failed to create service", err)
	}

	s.cfg.Log.Info("Service created successfully", "id", service.ID, "name", service.Name, "tenant_id", tenantID)
	return nil
}

func (s *catalogService) GetByID(ctx context.Context, id string) (*model.Service, error) {
	tenantID, err := tenant.Require(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, apperrors.InvalidInput("Service ID cannot be empty")
	}

	service, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve service")
	}
	return service, nil
}

func (s *catalogService) GetAll(ctx context.Context, filter repository.ServiceFilter, limit int, offset int64) ([]*model.Service, int64, error) {
	tenantID, err := tenant.Require(ctx)
	if err != nil {
		return nil, 0, err
	}
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)
	filter.Category = sanitizer.NormalizeLabel(filter.Category)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var services []*model.Service
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		if count, err = s.repo.Count(sharedCtx, tenantID, filter); err != nil {
			s.cfg.Log.Error("Failed to count services", "tenant_id", tenantID, "error", err)
			errCount = apperrors.Internal("Failed to count services", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		if services, err = s.repo.FindAll(sharedCtx, tenantID, filter, limit, offset); err != nil {
			s.cfg.Log.Error("Failed to list services", "tenant_id", tenantID, "limit", limit, "offset", offset, "error", err)
			errFind = apperrors.Internal("Failed to retrieve services", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return services, count, nil
}

func (s *catalogService) Update(ctx context.Context, id string, updates *model.ServiceUpdate) (*model.Service, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sanitizeUpdate(updates)
	if err := s.validator.ValidateUpdate(updates); err != nil {
		return nil, validation.ToAppError("Service validation failed", err)
	}

	merged := mergeServiceUpdates(existing, updates)
	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Service validation failed", "id", id, "error", err)
		return nil, validation.ToAppError("Service validation failed", err)
	}

	if err := s.repo.Update(ctx, merged.TenantID, id, merged); err != nil {
		return nil, s.mapRepoError(err, id, "Failed to update service")
	}

	s.cfg.Log.Info("Service updated successfully", "id", id, "name", merged.Name)
	return merged, nil
}

// Delete removes the service from the catalog. Bookings already made for it
// keep their price and duration.
func (s *catalogService) Delete(ctx context.Context, id string) error {
	tenantID, err := tenant.Require(ctx)
	if err != nil {
		return err
	}
	if id == "" {
		return apperrors.InvalidInput("Service ID cannot be empty")
	}

	if err := s.repo.Deactivate(ctx, tenantID, id); err != nil {
		return s.mapRepoError(err, id, "Failed to delete service")
	}

	s.cfg.Log.Info("Service deactivated successfully", "id", id, "tenant_id", tenantID)
	return nil
}

// Categories lists the tenant's categories merged with DefaultCategories,
// sorted and without duplicates.
func (s *catalogService) Categories(ctx context.Context) ([]string, error) {
	tenantID, err := tenant.Require(ctx)
	if err != nil {
		return nil, err
	}

	used, err := s.repo.Categories(ctx, tenantID)
	if err != nil {
		s.cfg.Log.Error("Failed to list service categories", "tenant_id", tenantID, "error", err)
		return nil, apperrors.Internal("Failed to list service categories", err)
	}

	categories := sanitizer.NormalizeStringSlice(slices.Concat(used, DefaultCategories), sanitizer.NormalizeLabel)
	slices.Sort(categories)
	return categories, nil
}

func (s *catalogService) mapRepoError(err error, id, message string) error {
	switch {
	case errors.Is(err, catalogerrors.ErrNotFound):
		return apperrors.NotFoundWithID("Service", id)
	case errors.Is(err, catalogerrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid service ID format")
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}

func sanitize(service *model.Service) {
	service.Name = sanitizer.NormalizeName(service.Name)
	service.Description = sanitizer.NormalizeText(service.Description)
	service.Category = sanitizer.NormalizeLabel(service.Category)
}

func sanitizeUpdate(updates *model.ServiceUpdate) {
	if updates.Name != "" {
		updates.Name = sanitizer.NormalizeName(updates.Name)
	}
	if updates.Description != nil {
		d := sanitizer.NormalizeText(*updates.Description)
		updates.Description = &d
	}
	if updates.Category != nil {
		c := sanitizer.NormalizeLabel(*updates.Category)
		updates.Category = &c
	}
}

func mergeServiceUpdates(existing *model.Service, updates *model.ServiceUpdate) *model.Service {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.Price != nil {
		merged.Price = *updates.Price
	}
	if updates.DurationMinutes != nil {
		merged.DurationMinutes = *updates.DurationMinutes
	}
	if updates.Category != nil {
		merged.Category = *updates.Category
	}
	if updates.IsActive != nil {
		merged.IsActive = *updates.IsActive
	}
	return &merged
}
