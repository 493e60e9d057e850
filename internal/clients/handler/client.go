package handler

import (
	"barberbook/internal/clients/repository"
	"barberbook/internal/clients/service"
	apperrors "barberbook/pkg/errors"
	httputil "barberbook/pkg/http"
	"barberbook/pkg/logger"
	"barberbook/pkg/model"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
)

type ClientHandler struct {
	service service.ClientService
	log     *logger.Logger
}

func NewClientHandler(service service.ClientService, log *logger.Logger) *ClientHandler {
	return &ClientHandler{
		service: service,
		log:     log,
	}
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var client model.Client
	if err := httputil.DecodeJSON(r, &client); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := h.service.Create(r.Context(), &client); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, client); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ClientHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	client, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, client); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ClientHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	query := r.URL.Query()
	filter := repository.ClientFilter{Name: query.Get("name"), Phone: query.Get("phone"), Search: query.Get("search")}
	if s := query.Get("active"); s != "" {
		filter.ActiveOnly, err = strconv.ParseBool(s)
		if err != nil {
			h.writeError(w, "GetAll", apperrors.InvalidInput("invalid active parameter: "+s))
			return
		}
	}

	clients, total, err := h.service.GetAll(r.Context(), filter, limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, clients, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

// Search matches q against name, email and phone among active clients.
func (h *ClientHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	q := r.URL.Query().Get("q")
	if q == "" {
		h.writeError(w, "Search", apperrors.InvalidInput("'q' query parameter is required"))
		return
	}

	clients, total, err := h.service.GetAll(r.Context(), repository.ClientFilter{ActiveOnly: true, Search: q}, limit, offset)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	if err := httputil.WritePaginated(w, clients, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "Search", "operation", "WritePaginated", "error", err)
	}
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.ClientUpdate
	if err := httputil.DecodeJSON(r, &updates); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	client, err := h.service.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, client); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ClientHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *ClientHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/clients", h.Create)
	router.GET("/api/v1/clients", h.GetAll)
	router.GET("/api/v1/clients/search", h.Search)
	router.GET("/api/v1/clients/id/:id", h.GetByID)
	router.PATCH("/api/v1/clients/id/:id", h.Update)
	router.DELETE("/api/v1/clients/id/:id", h.Delete)
}
