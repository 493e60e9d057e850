package service

import (
	bookingserrors "barberbook/internal/bookings/errors"
	"barberbook/internal/bookings/events"
	"barberbook/internal/bookings/locker"
	"barberbook/internal/bookings/repository"
	"barberbook/internal/bookings/validator"
	catalogerrors "barberbook/internal/catalog/errors"
	clienterrors "barberbook/internal/clients/errors"
	"barberbook/internal/scheduling"
	stafferrors "barberbook/internal/staff/errors"
	"barberbook/pkg/config"
	apperrors "barberbook/pkg/errors"
	"barberbook/pkg/model"
	"barberbook/pkg/sanitizer"
	"barberbook/pkg/tenant"
	"barberbook/pkg/validation"
	"context"
	"errors"
	"net/http"
	"sync"
	"time"
)

// MaxCalendarRange bounds a calendar query.
const MaxCalendarRange = 62 * 24 * time.Hour

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	Search(ctx context.Context, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error)
	Calendar(ctx context.Context, from, to time.Time, staffID string) ([]model.CalendarEvent, error)
	Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
	Availability(ctx context.Context, staffID, serviceID string, date time.Time) (*model.Availability, error)
}

type StaffLookup interface {
	FindByID(ctx context.Context, tenantID, id string) (*model.Staff, error)
}

type ServiceLookup interface {
	FindByID(ctx context.Context, tenantID, id string) (*model.Service, error)
}

// ClientLedger is the part of the client store a booking touches.
type ClientLedger interface {
	FindByID(ctx context.Context, tenantID, id string) (*model.Client, error)
	RecordVisit(ctx context.Context, tenantID, id string, visit model.VisitRecord) error
}

type Dependencies struct {
	Bookings  repository.BookingRepository
	Staff     StaffLookup
	Services  ServiceLookup
	Clients   ClientLedger
	Locker    *locker.Locker
	Events    events.Publisher
	Validator *validator.BookingValidator
}

type bookingService struct {
	repo      repository.BookingRepository
	staff     StaffLookup
	services  ServiceLookup
	clients   ClientLedger
	locker    *locker.Locker
	events    events.Publisher
	validator *validator.BookingValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(deps Dependencies, cfg *config.Config) BookingService {
	if deps.Events == nil {
		deps.Events = events.NewNoop()
	}
	return &bookingService{
		repo:      deps.Bookings,
		staff:     deps.Staff,
		services:  deps.Services,
		clients:   deps.Clients,
		locker:    deps.Locker,
		events:    deps.Events,
		validator: deps.Validator,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	tenantID, err := tenant.Require(ctx)
	if err != nil {
		return err
	}
	booking.ID = ""
	booking.TenantID = tenantID
	booking.Notes = sanitizer.NormalizeText(booking.Notes)
	booking.ClientNotes = sanitizer.NormalizeText(booking.ClientNotes)
	if booking.Status == "" {
		booking.Status = model.StatusScheduled
	}
	if booking.PaymentStatus == "" {
		booking.PaymentStatus = model.PaymentPending
	}
	if booking.StartTime.IsZero() {
		return validation.ToAppError("Booking validation failed", validation.ValidationErrors{
			{Field: "start_time", Message: "start_time is required"},
		})
	}
	if !scheduling.InitialStatus(booking.Status) {
		return apperrors.InvalidInput("A new booking must be scheduled or confirmed").
			WithDetails(map[string]any{"status": booking.Status})
	}

	svc, err := s.lookupService(ctx, tenantID, booking.ServiceID)
	if err != nil {
		return err
	}
	if booking.DurationMinutes == 0 {
		booking.DurationMinutes = svc.DurationMinutes
	}
	if booking.Price == 0 {
		booking.Price = svc.Price
	}
	booking.StartTime = booking.StartTime.In(s.cfg.Location())
	booking.Reprice()

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "tenant_id", tenantID, "error", err)
		return validation.ToAppError("Booking validation failed", err)
	}

	staff, cal, err := s.lookupStaff(ctx, tenantID, booking.StaffID)
	if err != nil {
		return err
	}
	if _, err := s.lookupClient(ctx, tenantID, booking.ClientID); err != nil {
		return err
	}

	err = s.withSlotLock(ctx, tenantID, staff.ID, booking.StartTime, func(ctx context.Context) error {
		return s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
			if err := s.checkProposal(txCtx, tenantID, staff.ID, cal, scheduling.Proposal{
				Start:           booking.StartTime,
				DurationMinutes: booking.DurationMinutes,
			}); err != nil {
				return err
			}
			if err := s.repo.Create(txCtx, booking); err != nil {
				return err
			}
			return s.clients.RecordVisit(txCtx, tenantID, booking.ClientID, model.VisitRecord{
				Spent: booking.FinalPrice,
				At:    booking.StartTime,
			})
		})
	})
	if err != nil {
		return s.mapError(err, booking.ID, "Failed to create booking")
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"tenant_id", tenantID,
		"staff_id", booking.StaffID,
		"start_time", booking.StartTime,
	)
	s.publish(ctx, model.EventBookingCreated, booking, "")
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	tenantID, err := tenant.Require(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, s.mapError(err, id, "Failed to retrieve booking")
	}
	return booking, nil
}

func (s *bookingService) Search(ctx context.Context, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, int64, error) {
	tenantID, err := tenant.Require(ctx)
	if err != nil {
		return nil, 0, err
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, apperrors.InvalidInput("invalid status filter: " + string(filter.Status))
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, 0, apperrors.InvalidInput("date_from must not be after date_to")
	}
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		if count, err = s.repo.Count(sharedCtx, tenantID, filter); err != nil {
			s.cfg.Log.Error("Failed to count bookings", "tenant_id", tenantID, "error", err)
			errCount = apperrors.Internal("Failed to count bookings", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		if bookings, err = s.repo.Search(sharedCtx, tenantID, filter, limit, offset); err != nil {
			s.cfg.Log.Error("Failed to search bookings", "tenant_id", tenantID, "limit", limit, "offset", offset, "error", err)
			errFind = apperrors.Internal("Failed to retrieve bookings", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}
	return bookings, count, nil
}

// Calendar lists bookings starting in [from, to) as calendar events.
func (s *bookingService) Calendar(ctx context.Context, from, to time.Time, staffID string) ([]model.CalendarEvent, error) {
	tenantID, err := tenant.Require(ctx)
	if err != nil {
		return nil, err
	}
	if !from.Before(to) {
		return nil, apperrors.InvalidInput("date_from must not be after date_to")
	}
	if to.Sub(from) > MaxCalendarRange {
		return nil, apperrors.InvalidInput("calendar range is limited to 62 days")
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	bookings, err := s.repo.Search(ctx, tenantID, model.BookingFilter{
		StaffID: staffID,
		From:    &from,
		To:      &to,
	}, 0, 0)
	if err != nil {
		return nil, s.mapError(err, "", "Failed to load calendar")
	}

	out := make([]model.CalendarEvent, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, model.NewCalendarEvent(b))
	}
	return out, nil
}

// Update applies a partial update. Moving the booking in time re-runs the
// conflict check against the new day with the booking itself excluded.
func (s *bookingService) Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateUpdate(updates); err != nil {
		return nil, validation.ToAppError("Booking validation failed", err)
	}

	merged := mergeBookingUpdates(existing, updates)
	merged.StartTime = merged.StartTime.In(s.cfg.Location())
	merged.Reprice()
	if merged.Status != existing.Status {
		if err := scheduling.ValidateTransition(existing.Status, merged.Status); err != nil {
			return nil, apperrors.InvalidTransition(string(existing.Status), string(merged.Status)).WithCause(err)
		}
	}
	if err := s.validator.Validate(merged); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "id", id, "error", err)
		return nil, validation.ToAppError("Booking validation failed", err)
	}

	rescheduled := updates.Reschedules() &&
		(!merged.StartTime.Equal(existing.StartTime) || merged.DurationMinutes != existing.DurationMinutes)

	if rescheduled && !existing.Status.IsActive() {
		return nil, apperrors.New(apperrors.CodeInvalidTransition, "Only active bookings can be rescheduled", http.StatusConflict).
			WithDetails(map[string]any{"status": existing.Status})
	}

	if rescheduled && merged.Status.IsActive() {
		_, cal, lookupErr := s.lookupStaff(ctx, merged.TenantID, merged.StaffID)
		if lookupErr != nil {
			return nil, lookupErr
		}
		err = s.withSlotLock(ctx, merged.TenantID, merged.StaffID, merged.StartTime, func(ctx context.Context) error {
			return s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
				if err := s.checkProposal(txCtx, merged.TenantID, merged.StaffID, cal, scheduling.Proposal{
					ID:              merged.ID,
					Start:           merged.StartTime,
					DurationMinutes: merged.DurationMinutes,
				}); err != nil {
					return err
				}
				return s.repo.Update(txCtx, merged)
			})
		})
	} else {
		err = s.repo.Update(ctx, merged)
	}
	if err != nil {
		return nil, s.mapError(err, id, "Failed to update booking")
	}

	s.cfg.Log.Info("Booking updated successfully", "id", id, "tenant_id", merged.TenantID, "rescheduled", rescheduled)
	switch {
	case rescheduled:
		s.publish(ctx, model.EventBookingRescheduled, merged, existing.Status)
	case merged.Status != existing.Status:
		s.publish(ctx, model.EventBookingStatusChanged, merged, existing.Status)
	}
	return merged, nil
}

// UpdateStatus moves a booking through the status state machine. Setting the
// current status again is a no-op.
func (s *bookingService) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error) {
	if err := s.validator.ValidateStatus(&model.StatusUpdate{Status: status}); err != nil {
		return nil, validation.ToAppError("Booking validation failed", err)
	}
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := scheduling.ValidateTransition(existing.Status, status); err != nil {
		return nil, apperrors.InvalidTransition(string(existing.Status), string(status)).WithCause(err)
	}
	if existing.Status == status {
		return existing, nil
	}

	if err := s.repo.UpdateStatus(ctx, existing.TenantID, id, status); err != nil {
		return nil, s.mapError(err, id, "Failed to update booking status")
	}

	previous := existing.Status
	existing.Status = status
	s.cfg.Log.Info("Booking status updated", "id", id, "from", previous, "to", status)
	s.publish(ctx, model.EventBookingStatusChanged, existing, previous)
	return existing, nil
}

// Delete removes a booking that never took place. Anything else is kept and
// set to cancelled instead.
func (s *bookingService) Delete(ctx context.Context, id string) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	previous := existing.Status
	switch scheduling.DeletionFor(existing.Status, existing.StartTime, s.now()) {
	case scheduling.CancelRecord:
		if err := s.repo.UpdateStatus(ctx, existing.TenantID, id, model.StatusCancelled); err != nil {
			return s.mapError(err, id, "Failed to cancel booking")
		}
		existing.Status = model.StatusCancelled
		s.cfg.Log.Info("Booking cancelled instead of deleted", "id", id, "previous_status", previous)
		s.publish(ctx, model.EventBookingCancelled, existing, previous)
	default:
		if err := s.repo.Delete(ctx, existing.TenantID, id); err != nil {
			return s.mapError(err, id, "Failed to delete booking")
		}
		s.cfg.Log.Info("Booking deleted successfully", "id", id)
		s.publish(ctx, model.EventBookingDeleted, existing, previous)
	}
	return nil
}

// Availability lists the free slots for a service with one staff member on a
// date. The date is read as local midnight in the schedule time zone. Slots
// already in the past are left out.
func (s *bookingService) Availability(ctx context.Context, staffID, serviceID string, date time.Time) (*model.Availability, error) {
	tenantID, err := tenant.Require(ctx)
	if err != nil {
		return nil, err
	}
	if staffID == "" || serviceID == "" {
		return nil, apperrors.InvalidInput("Both 'staff_id' and 'service_id' are required")
	}

	loc := s.cfg.Location()
	now := s.now().In(loc)
	day := scheduling.DayStart(date.In(loc))
	if day.Before(scheduling.DayStart(now)) {
		return nil, apperrors.InvalidSlotRequest("Cannot check availability for past dates")
	}

	staff, cal, err := s.lookupStaff(ctx, tenantID, staffID)
	if err != nil {
		return nil, err
	}
	svc, err := s.lookupService(ctx, tenantID, serviceID)
	if err != nil {
		return nil, err
	}

	out := &model.Availability{
		Date:        day.Format("2006-01-02"),
		StaffID:     staff.ID,
		StaffName:   staff.Name,
		ServiceID:   svc.ID,
		ServiceName: svc.Name,
		Slots:       []model.AvailableSlot{},
	}

	if _, open := cal.On(day); !open {
		out.Message = scheduling.ErrStaffClosed.Error()
		return out, nil
	}

	from, to := scheduling.DayBounds(day)
	active, err := s.repo.FindActiveOverlapping(ctx, tenantID, staff.ID, from, to)
	if err != nil {
		return nil, s.mapError(err, staffID, "Failed to load bookings")
	}

	slots, err := scheduling.Available(day, cal, s.cfg.SlotGranularityMin, svc.DurationMinutes, active)
	if err != nil {
		return nil, s.mapError(err, staffID, "Failed to compute availability")
	}
	for _, slot := range slots {
		if slot.Start.Before(now) {
			continue
		}
		out.Slots = append(out.Slots, model.AvailableSlot{
			Time:     slot.Start.Format("15:04"),
			DateTime: slot.Start,
			Duration: slot.DurationMinutes,
		})
	}
	out.TotalSlots = len(out.Slots)
	return out, nil
}

// withSlotLock runs fn while holding the lock for the staff member's day.
func (s *bookingService) withSlotLock(ctx context.Context, tenantID, staffID string, start time.Time, fn func(ctx context.Context) error) error {
	lease, err := s.locker.Acquire(ctx, locker.SlotKey(tenantID, staffID, start))
	if err != nil {
		return err
	}
	defer func() {
		if err := lease.Release(context.WithoutCancel(ctx)); err != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "key", lease.Key(), "error", err)
		}
	}()
	return fn(ctx)
}

// checkProposal reads the ledger for the proposal's day and runs the conflict
// checker against it.
func (s *bookingService) checkProposal(ctx context.Context, tenantID, staffID string, cal scheduling.Calendar, p scheduling.Proposal) error {
	from, to := scheduling.DayBounds(p.Start)
	existing, err := s.repo.FindActiveOverlapping(ctx, tenantID, staffID, from, to)
	if err != nil {
		return err
	}
	return scheduling.CheckProposal(s.now(), cal, p, existing)
}

func (s *bookingService) lookupStaff(ctx context.Context, tenantID, id string) (*model.Staff, scheduling.Calendar, error) {
	staff, err := s.staff.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, scheduling.Calendar{}, s.mapError(err, id, "Failed to retrieve staff member")
	}
	if !staff.IsActive {
		return nil, scheduling.Calendar{}, apperrors.InvalidInput("Staff member is not active")
	}
	cal, err := scheduling.CalendarOf(staff.WorkSchedule)
	if err != nil {
		s.cfg.Log.Error("Stored work schedule is invalid", "staff_id", id, "error", err)
		return nil, scheduling.Calendar{}, apperrors.Internal("Stored work schedule is invalid", err)
	}
	return staff, cal, nil
}

func (s *bookingService) lookupService(ctx context.Context, tenantID, id string) (*model.Service, error) {
	if id == "" {
		return nil, validation.ToAppError("Booking validation failed", validation.ValidationErrors{
			{Field: "service_id", Message: "service_id is required"},
		})
	}
	svc, err := s.services.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, s.mapError(err, id, "Failed to retrieve service")
	}
	if !svc.IsActive {
		return nil, apperrors.InvalidInput("Service is not active")
	}
	return svc, nil
}

func (s *bookingService) lookupClient(ctx context.Context, tenantID, id string) (*model.Client, error) {
	client, err := s.clients.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, s.mapError(err, id, "Failed to retrieve client")
	}
	if !client.IsActive {
		return nil, apperrors.InvalidInput("Client is not active")
	}
	return client, nil
}

func (s *bookingService) publish(ctx context.Context, eventType model.BookingEventType, b *model.Booking, previous model.BookingStatus) {
	if err := s.events.Publish(context.WithoutCancel(ctx), model.NewBookingEvent(eventType, b, previous)); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event", "event_type", eventType, "booking_id", b.ID, "error", err)
	}
}

func (s *bookingService) mapError(err error, id, message string) error {
	var overlap *scheduling.OverlapError
	switch {
	case apperrors.IsAppError(err):
		return err
	case errors.As(err, &overlap):
		return apperrors.SlotUnavailable("The requested time overlaps an existing booking").
			WithDetails(map[string]any{
				"booking_id": overlap.BookingID,
				"start_time": overlap.Start,
				"end_time":   overlap.End,
			}).WithCause(err)
	case errors.Is(err, scheduling.ErrSlotUnavailable):
		return apperrors.SlotUnavailable(err.Error()).WithCause(err)
	case errors.Is(err, scheduling.ErrStaffClosed):
		return apperrors.StaffClosed(err.Error()).WithCause(err)
	case errors.Is(err, scheduling.ErrInvalidSlotRequest):
		return apperrors.InvalidSlotRequest(err.Error()).WithCause(err)
	case errors.Is(err, locker.ErrNotAcquired):
		return apperrors.ConcurrentConflict("Another booking for this staff member is in progress, please retry").WithCause(err)
	case errors.Is(err, bookingserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Booking", id)
	case errors.Is(err, bookingserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid booking ID format")
	case errors.Is(err, stafferrors.ErrNotFound):
		return apperrors.NotFoundWithID("Staff", id)
	case errors.Is(err, stafferrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid staff ID format")
	case errors.Is(err, catalogerrors.ErrNotFound):
		return apperrors.NotFoundWithID("Service", id)
	case errors.Is(err, catalogerrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid service ID format")
	case errors.Is(err, clienterrors.ErrNotFound):
		return apperrors.NotFoundWithID("Client", id)
	case errors.Is(err, clienterrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid client ID format")
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Timeout(message)
	}
	s.cfg.Log.Error(message, "id", id, "error", err)
	return apperrors.Internal(message, err)
}

func mergeBookingUpdates(existing *model.Booking, updates *model.BookingUpdate) *model.Booking {
	merged := *existing

	if updates.StartTime != nil {
		merged.StartTime = *updates.StartTime
	}
	if updates.DurationMinutes != nil {
		merged.DurationMinutes = *updates.DurationMinutes
	}
	if updates.Status != nil {
		merged.Status = *updates.Status
	}
	if updates.Price != nil {
		merged.Price = *updates.Price
	}
	if updates.Discount != nil {
		merged.Discount = *updates.Discount
	}
	if updates.PaymentStatus != nil {
		merged.PaymentStatus = *updates.PaymentStatus
	}
	if updates.PaymentMethod != nil {
		merged.PaymentMethod = *updates.PaymentMethod
	}
	if updates.Notes != nil {
		merged.Notes = sanitizer.NormalizeText(*updates.Notes)
	}
	if updates.ClientNotes != nil {
		merged.ClientNotes = sanitizer.NormalizeText(*updates.ClientNotes)
	}
	return &merged
}
