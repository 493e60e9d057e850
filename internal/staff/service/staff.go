package service

import (
	"barberbook/internal/scheduling"
	stafferrors "barberbook/internal/staff/errors"
	"barberbook/internal/staff/repository"
	"barberbook/internal/staff/validator"
	"barberbook/pkg/config"
	apperrors "barberbook/pkg/errors"
	"barberbook/pkg/model"
	"barberbook/pkg/sanitizer"
	"barberbook/pkg/tenant"
	"barberbook/pkg/validation"
	"context"
	"errors"
	"sync"
)

type StaffService interface {
	Create(ctx context.Context, staff *model.Staff) error
	GetByID(ctx context.Context, id string) (*model.Staff, error)
	GetAll(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Staff, int64, error)
	Update(ctx context.Context, id string, updates *model.StaffUpdate) (*model.Staff, error)
	UpdateSchedule(ctx context.Context, id string, schedule model.WorkSchedule) (*model.WorkSchedule, error)
	Delete(ctx context.Context, id string) error
}

type staffService struct {
	repo      repository.StaffRepository
	validator *validator.StaffValidator
	cfg       *config.Config
}

func NewStaffService(
	repo repository.StaffRepository,
	validator *validator.StaffValidator,
	cfg *config.Config,
) StaffService {
	return &staffService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *staffService) Create(ctx context.Context, staff *model.Staff) error {
	tenantID, err := tenant.Require(ctx)
	if err != nil {
		return err
	}
	staff.ID = ""
	staff.TenantID = tenantID
	staff.IsActive = true
	s.sanitize(staff)

	if err := s.validator.Validate(staff); err != nil {
		s.cfg.Log.Warn("Staff validation failed", "name", staff.Name, "tenant_id", tenantID, "error", err)
		return validation.ToAppError("Staff validation failed", err)
	}

	if staff.WorkSchedule != nil {
		normalized, err := normalizeSchedule(*staff.WorkSchedule)
		if err != nil {
			return err
		}
		staff.WorkSchedule = normalized
	}

	if err := s.repo.Create(ctx, staff); err != nil {
		s.cfg.Log.Error("Failed to create staff member", "name", staff.Name, "tenant_id", tenantID, "error", err)
		return apperrors.Internal("Failed to create staff member", err)
	}

	s.cfg.Log.Info("Staff member created successfully", "id", staff.ID, "name", staff.Name, "tenant_id", tenantID)
	return nil
}

func (s *staffService) GetByID(ctx context.Context, id string) (*model.Staff, error) {
	tenantID, err := tenant.Require(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, apperrors.InvalidInput("Staff ID cannot be empty")
	}

	staff, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to retrieve staff member")
	}
	return staff, nil
}

func (s *staffService) GetAll(ctx context.Context, activeOnly bool, limit int, offset int64) ([]*model.Staff, int64, error) {
	tenantID, err := tenant.Require(ctx)
	if err != nil {
		return nil, 0, err
	}
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var staff []*model.Staff
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		if count, err = s.repo.Count(sharedCtx, tenantID, activeOnly); err != nil {
			s.cfg.Log.Error("Failed to count staff", "tenant_id", tenantID, "error", err)
			errCount = apperrors.Internal("Failed to count staff", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		if staff, err = s.repo.FindAll(sharedCtx, tenantID, activeOnly, limit, offset); err != nil {
			s.cfg.Log.Error("Failed to list staff", "tenant_id", tenantID, "limit", limit, "offset", offset, "error", err)
			errFind = apperrors.Internal("Failed to retrieve staff", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return staff, count, nil
}

func (s *staffService) Update(ctx context.Context, id string, updates *model.StaffUpdate) (*model.Staff, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.sanitizeUpdate(updates)
	if err := s.validator.ValidateUpdate(updates); err != nil {
		return nil, validation.ToAppError("Staff validation failed", err)
	}

	merged := mergeStaffUpdates(existing, updates)
	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Staff validation failed", "id", id, "error", err)
		return nil, validation.ToAppError("Staff validation failed", err)
	}

	if err := s.repo.Update(ctx, merged.TenantID, id, merged); err != nil {
		return nil, s.mapRepoError(err, id, "Failed to update staff member")
	}

	s.cfg.Log.Info("Staff member updated successfully", "id", id, "name", merged.Name)
	return merged, nil
}

// UpdateSchedule replaces the weekly schedule. Either every day is valid and
// the schedule is stored, or nothing changes.
func (s *staffService) UpdateSchedule(ctx context.Context, id string, schedule model.WorkSchedule) (*model.WorkSchedule, error) {
	tenantID, err := tenant.Require(ctx)
	if err != nil {
		return nil, err
	}

	normalized, err := normalizeSchedule(schedule)
	if err != nil {
		s.cfg.Log.Warn("Rejected work schedule", "id", id, "tenant_id", tenantID, "error", err)
		return nil, err
	}

	if err := s.repo.UpdateSchedule(ctx, tenantID, id, normalized); err != nil {
		return nil, s.mapRepoError(err, id, "Failed to update work schedule")
	}

	s.cfg.Log.Info("Work schedule updated successfully", "id", id, "tenant_id", tenantID)
	return normalized, nil
}

// Delete deactivates the staff member. Existing bookings keep referencing it.
func (s *staffService) Delete(ctx context.Context, id string) error {
	tenantID, err := tenant.Require(ctx)
	if err != nil {
		return err
	}
	if id == "" {
		return apperrors.InvalidInput("Staff ID cannot be empty")
	}

	if err := s.repo.Deactivate(ctx, tenantID, id); err != nil {
		return s.mapRepoError(err, id, "Failed to delete staff member")
	}

	s.cfg.Log.Info("Staff member deactivated successfully", "id", id, "tenant_id", tenantID)
	return nil
}

func (s *staffService) mapRepoError(err error, id, message string) error {
	switch {
	case errors.Is(err, stafferrors.ErrNotFound):
		return apperrors.NotFoundWithID("Staff", id)
	case errors.Is(err, stafferrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid staff ID format")
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}

func normalizeSchedule(schedule model.WorkSchedule) (*model.WorkSchedule, error) {
	cal, err := scheduling.NewCalendar(schedule)
	if err != nil {
		return nil, apperrors.InvalidSchedule(err.Error()).WithCause(err)
	}
	normalized := cal.Schedule()
	return &normalized, nil
}

func (s *staffService) sanitize(staff *model.Staff) {
	staff.Name = sanitizer.NormalizeName(staff.Name)
	staff.Email = sanitizer.NormalizeEmail(staff.Email)
	staff.Phone = sanitizer.NormalizePhone(staff.Phone, s.cfg.DefaultPhoneRegion)
	staff.Position = sanitizer.TrimAndNormalize(staff.Position)
	staff.Specialties = sanitizer.NormalizeSpecialties(staff.Specialties)
}

func (s *staffService) sanitizeUpdate(updates *model.StaffUpdate) {
	if updates.Name != "" {
		updates.Name = sanitizer.NormalizeName(updates.Name)
	}
	if updates.Email != "" {
		updates.Email = sanitizer.NormalizeEmail(updates.Email)
	}
	if updates.Phone != "" {
		updates.Phone = sanitizer.NormalizePhone(updates.Phone, s.cfg.DefaultPhoneRegion)
	}
	if updates.Position != nil {
		p := sanitizer.TrimAndNormalize(*updates.Position)
		updates.Position = &p
	}
	if updates.Specialties != nil {
		sp := sanitizer.NormalizeSpecialties(*updates.Specialties)
		updates.Specialties = &sp
	}
}

func mergeStaffUpdates(existing *model.Staff, updates *model.StaffUpdate) *model.Staff {
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
	if updates.Position != nil {
		merged.Position = *updates.Position
	}
	if updates.Specialties != nil {
		merged.Specialties = *updates.Specialties
	}
	if updates.ExperienceYears != nil {
		merged.ExperienceYears = *updates.ExperienceYears
	}
	if updates.IsActive != nil {
		merged.IsActive = *updates.IsActive
	}

	merged.ID = existing.ID
	merged.TenantID = existing.TenantID
	merged.CreatedAt = existing.CreatedAt
	return &merged
}
