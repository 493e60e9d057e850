package service

import (
	clienterrors "barberbook/internal/clients/errors"
	"barberbook/internal/clients/repository"
	"barberbook/internal/clients/validator"
	"barberbook/pkg/config"
	apperrors "barberbook/pkg/errors"
	"barberbook/pkg/model"
	"barberbook/pkg/sanitizer"
	"barberbook/pkg/tenant"
	"barberbook/pkg/validation"
	"context"
	"errors"
	"strings"
	"sync"
)

type ClientService interface {
	Create(ctx context.Context, client *model.Client) error
	GetByID(ctx context.Context, id string) (*model.Client, error)
	GetAll(ctx context.Context, filter repository.ClientFilter, limit int, offset int64) ([]*model.Client, int64, error)
	Update(ctx context.Context, id string, updates *model.ClientUpdate) (*model.Client, error)
	Delete(ctx context.Context, id string) error
}

type clientService struct {
	repo      repository.ClientRepository
	validator *validator.ClientValidator
	cfg       *config.Config
}

func NewClientService(
	repo repository.ClientRepository,
	validator *validator.ClientValidator,
	cfg *config.Config,
) ClientService {
	return &clientService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *clientService) Create(ctx context.Context, client *model.Client) error {
	tenantID, err := tenant.Require(ctx)
	if err != nil {
		return err
	}
	client.ID = ""
	client.TenantID = tenantID
	client.IsActive = true
	client.TotalAppointments = 0
	client.TotalSpent = 0
	client.LastVisit = nil

	if err := s.sanitize(client); err != nil {
		return err
	}
	if err := s.validator.Validate(client); err != nil {
		s.cfg.Log.Warn("Client validation failed", "name", client.Name, "tenant_id", tenantID, "error", err)
		return validation.ToAppError("Client validation failed", err)
	}

	if err := s.repo.Create(ctx, client); err != nil {
		return s.mapRepoError(err, "", "Failed to create client")
	}

	s.cfg.Log.Info("Client created successfully", "id", client.ID, "tenant_id", tenantID)
	return nil
}

func (s *clientService) GetByID(ctx context.Context, id string) (*model.Client, error) {
	tenantID, err := tenant.Require(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, apperrors.InvalidInput("Client ID cannot be empty")
	}

	client, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve client")
	}
	return client, nil
}

func (s *clientService) GetAll(ctx context.Context, filter repository.ClientFilter, limit int, offset int64) ([]*model.Client, int64, error) {
	tenantID, err := tenant.Require(ctx)
	if err != nil {
		return nil, 0, err
	}
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	filter.Name = sanitizer.NormalizeName(filter.Name)
	filter.Search = sanitizer.TrimAndNormalize(filter.Search)
	if filter.Phone != "" {
		raw := filter.Phone
		if filter.Phone = sanitizer.NormalizePhone(raw, s.cfg.DefaultPhoneRegion); filter.Phone == "" {
			return nil, 0, apperrors.InvalidInput("invalid phone parameter: " + raw)
		}
	}

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var clients []*model.Client
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		if count, err = s.repo.Count(sharedCtx, tenantID, filter); err != nil {
			s.cfg.Log.Error("Failed to count clients", "tenant_id", tenantID, "error", err)
			errCount = apperrors.Internal("Failed to count clients", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		if clients, err = s.repo.FindAll(sharedCtx, tenantID, filter, limit, offset); err != nil {
			s.cfg.Log.Error("Failed to list clients", "tenant_id", tenantID, "limit", limit, "offset", offset, "error", err)
			errFind = apperrors.Internal("Failed to retrieve clients", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return clients, count, nil
}

func (s *clientService) Update(ctx context.Context, id string, updates *model.ClientUpdate) (*model.Client, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.sanitizeUpdate(updates); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		return nil, validation.ToAppError("Client validation failed", err)
	}

	merged := mergeClientUpdates(existing, updates)
	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Client validation failed", "id", id, "error", err)
		return nil, validation.ToAppError("Client validation failed", err)
	}

	if err := s.repo.Update(ctx, merged.TenantID, id, merged); err != nil {
		return nil, s.mapRepoError(err, id, "Failed to update client")
	}

	s.cfg.Log.Info("Client updated successfully", "id", id)
	return merged, nil
}

// Delete deactivates the client so booking history stays attributable.
func (s *clientService) Delete(ctx context.Context, id string) error {
	tenantID, err := tenant.Require(ctx)
	if err != nil {
		return err
	}
	if id == "" {
		return apperrors.InvalidInput("Client ID cannot be empty")
	}

	if err := s.repo.Deactivate(ctx, tenantID, id); err != nil {
		return s.mapRepoError(err, id, "Failed to delete client")
	}

	s.cfg.Log.Info("Client deactivated successfully", "id", id, "tenant_id", tenantID)
	return nil
}

func (s *clientService) mapRepoError(err error, id, message string) error {
	switch {
	case errors.Is(err, clienterrors.ErrNotFound):
		return apperrors.NotFoundWithID("Client", id)
	case errors.Is(err, clienterrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid client ID format")
	case errors.Is(err, clienterrors.ErrPhoneTaken):
		return apperrors.Conflict("A client with this phone number already exists")
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}

func (s *clientService) normalizePhone(phone string) (string, error) {
	if strings.TrimSpace(phone) == "" {
		return "", nil
	}
	normalized := sanitizer.NormalizePhone(phone, s.cfg.DefaultPhoneRegion)
	if normalized == "" {
		return "", apperrors.Validation("Client validation failed", map[string]any{
			"phone": "phone is not a valid phone number",
		})
	}
	return normalized, nil
}

func (s *clientService) sanitize(client *model.Client) error {
	client.Name = sanitizer.NormalizeName(client.Name)
	client.Email = sanitizer.NormalizeEmail(client.Email)
	client.BirthDate = strings.TrimSpace(client.BirthDate)
	client.Notes = sanitizer.NormalizeText(client.Notes)

	phone, err := s.normalizePhone(client.Phone)
	if err != nil {
		return err
	}
	client.Phone = phone
	return nil
}

func (s *clientService) sanitizeUpdate(updates *model.ClientUpdate) error {
	if updates.Name != "" {
		updates.Name = sanitizer.NormalizeName(updates.Name)
	}
	if updates.Email != "" {
		updates.Email = sanitizer.NormalizeEmail(updates.Email)
	}
	if updates.Notes != nil {
		n := sanitizer.NormalizeText(*updates.Notes)
		updates.Notes = &n
	}
	phone, err := s.normalizePhone(updates.Phone)
	if err != nil {
		return err
	}
	updates.Phone = phone
	return nil
}

func mergeClientUpdates(existing *model.Client, updates *model.ClientUpdate) *model.Client {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Email != "" {
		merged.Email = updates.Email
	}
	if updates.Phone != "" {
		merged.Phone = updates.Phone
	}
	if updates.BirthDate != nil {
		merged.BirthDate = *updates.BirthDate
	}
	if updates.Notes != nil {
		merged.Notes = *updates.Notes
	}
	if updates.IsActive != nil {
		merged.IsActive = *updates.IsActive
	}
	return &merged
}
