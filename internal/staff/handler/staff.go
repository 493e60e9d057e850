package handler

import (
	"barberbook/internal/staff/service"
	apperrors "barberbook/pkg/errors"
	httputil "barberbook/pkg/http"
	"barberbook/pkg/logger"
	"barberbook/pkg/model"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
)

type StaffHandler struct {
	service service.StaffService
	log     *logger.Logger
}

func NewStaffHandler(service service.StaffService, log *logger.Logger) *StaffHandler {
	return &StaffHandler{
		service: service,
		log:     log,
	}
}

func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var staff model.Staff
	if err := httputil.DecodeJSON(r, &staff); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := h.service.Create(r.Context(), &staff); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, staff); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *StaffHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	staff, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, staff); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *StaffHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	activeOnly := false
	if s := r.URL.Query().Get("active"); s != "" {
		activeOnly, err = strconv.ParseBool(s)
		if err != nil {
			h.writeError(w, "GetAll", apperrors.InvalidInput("invalid active parameter: "+s))
			return
		}
	}

	staff, total, err := h.service.GetAll(r.Context(), activeOnly, limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, staff, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.StaffUpdate
	if err := httputil.DecodeJSON(r, &updates); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	staff, err := h.service.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, staff); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *StaffHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var schedule model.WorkSchedule
	if err := httputil.DecodeJSON(r, &schedule); err != nil {
		h.writeError(w, "UpdateSchedule", err)
		return
	}

	stored, err := h.service.UpdateSchedule(r.Context(), ps.ByName("id"), schedule)
	if err != nil {
		h.writeError(w, "UpdateSchedule", err)
		return
	}

	if err := httputil.WriteSuccess(w, stored); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateSchedule", "operation", "WriteSuccess", "error", err)
	}
}

func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *StaffHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *StaffHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/staff", h.Create)
	router.GET("/api/v1/staff", h.GetAll)
	router.GET("/api/v1/staff/id/:id", h.GetByID)
	router.PATCH("/api/v1/staff/id/:id", h.Update)
	router.PUT("/api/v1/staff/id/:id/schedule", h.UpdateSchedule)
	router.DELETE("/api/v1/staff/id/:id", h.Delete)
}
