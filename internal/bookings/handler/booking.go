package handler

import (
	"barberbook/internal/bookings/service"
	apperrors "barberbook/pkg/errors"
	httputil "barberbook/pkg/http"
	"barberbook/pkg/logger"
	"barberbook/pkg/model"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	loc     *time.Location
	log     *logger.Logger
}

// NewBookingHandler builds the handler. Query dates are read as local days in
// loc, the zone staff schedules are defined in.
func NewBookingHandler(service service.BookingService, loc *time.Location, log *logger.Logger) *BookingHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &BookingHandler{
		service: service,
		loc:     loc,
		log:     log,
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := httputil.DecodeJSON(r, &booking); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := h.service.Create(r.Context(), &booking); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

// Search lists bookings. date_from and date_to are inclusive days.
func (h *BookingHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	query := r.URL.Query()
	from, to, err := h.dateRange(query.Get("date_from"), query.Get("date_to"))
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}
	filter := model.BookingFilter{
		Status:   model.BookingStatus(query.Get("status")),
		StaffID:  query.Get("staff_id"),
		ClientID: query.Get("client_id"),
		From:     from,
		To:       to,
	}

	bookings, total, err := h.service.Search(r.Context(), filter, limit, offset)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "Search", "operation", "WritePaginated", "error", err)
	}
}

func (h *BookingHandler) Calendar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	if query.Get("date_from") == "" || query.Get("date_to") == "" {
		h.writeError(w, "Calendar", apperrors.InvalidInput("Both 'date_from' and 'date_to' query parameters are required"))
		return
	}
	from, to, err := h.dateRange(query.Get("date_from"), query.Get("date_to"))
	if err != nil {
		h.writeError(w, "Calendar", err)
		return
	}

	events, err := h.service.Calendar(r.Context(), *from, *to, query.Get("staff_id"))
	if err != nil {
		h.writeError(w, "Calendar", err)
		return
	}

	if err := httputil.WriteSuccess(w, events); err != nil {
		h.log.Error("failed to write success response", "handler", "Calendar", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.BookingUpdate
	if err := httputil.DecodeJSON(r, &updates); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	booking, err := h.service.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update model.StatusUpdate
	if err := httputil.DecodeJSON(r, &update); err != nil {
		h.writeError(w, "UpdateStatus", err)
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), ps.ByName("id"), update.Status)
	if err != nil {
		h.writeError(w, "UpdateStatus", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateStatus", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) Availability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	staffID := query.Get("staff_id")
	serviceID := query.Get("service_id")
	dateStr := query.Get("date")

	if staffID == "" || serviceID == "" || dateStr == "" {
		h.writeError(w, "Availability", apperrors.InvalidInput("'staff_id', 'service_id' and 'date' query parameters are required"))
		return
	}

	date, err := httputil.ParseDate(dateStr, "date", h.loc)
	if err != nil {
		h.writeError(w, "Availability", apperrors.InvalidSlotRequest("Invalid date format, use YYYY-MM-DD"))
		return
	}

	availability, err := h.service.Availability(r.Context(), staffID, serviceID, *date)
	if err != nil {
		h.writeError(w, "Availability", err)
		return
	}

	if err := httputil.WriteSuccess(w, availability); err != nil {
		h.log.Error("failed to write success response", "handler", "Availability", "operation", "WriteSuccess", "error", err)
	}
}

// dateRange turns inclusive day bounds into a half-open [from, to) range.
func (h *BookingHandler) dateRange(fromStr, toStr string) (*time.Time, *time.Time, error) {
	from, err := httputil.ParseDate(fromStr, "date_from", h.loc)
	if err != nil {
		return nil, nil, err
	}
	to, err := httputil.ParseDate(toStr, "date_to", h.loc)
	if err != nil {
		return nil, nil, err
	}
	if to != nil {
		next := to.AddDate(0, 0, 1)
		to = &next
	}
	return from, to, nil
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.GET("/api/v1/bookings", h.Search)
	router.GET("/api/v1/bookings/calendar", h.Calendar)
	router.GET("/api/v1/bookings/id/:id", h.GetByID)
	router.PATCH("/api/v1/bookings/id/:id", h.Update)
	router.PATCH("/api/v1/bookings/id/:id/status", h.UpdateStatus)
	router.DELETE("/api/v1/bookings/id/:id", h.Delete)
	router.GET("/api/v1/availability", h.Availability)
}
