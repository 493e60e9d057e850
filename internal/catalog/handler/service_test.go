package handler

import (
	"barberbook/internal/catalog/repository"
	apperrors "barberbook/pkg/errors"
	"barberbook/pkg/logger"
	"barberbook/pkg/model"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalogService struct {
	categoriesFunc func(ctx context.Context) ([]string, error)
}

func (s *stubCatalogService) Create(ctx context.Context, service *model.Service) error {
	return nil
}

func (s *stubCatalogService) GetByID(ctx context.Context, id string) (*model.Service, error) {
	return nil, apperrors.NotFoundWithID("Service", id)
}

func (s *stubCatalogService) GetAll(ctx context.Context, filter repository.ServiceFilter, limit int, offset int64) ([]*model.Service, int64, error) {
	return []*model.Service{}, 0, nil
}

func (s *stubCatalogService) Update(ctx context.Context, id string, updates *model.ServiceUpdate) (*model.Service, error) {
	return nil, nil
}

func (s *stubCatalogService) Delete(ctx context.Context, id string) error {
	return nil
}

func (s *stubCatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.categoriesFunc(ctx)
}

func newRouter(svc *stubCatalogService) *httprouter.Router {
	router := httprouter.New()
	NewServiceHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func TestCategories(t *testing.T) {
	router := newRouter(&stubCatalogService{
		categoriesFunc: func(ctx context.Context) ([]string, error) {
			return []string{"barba", "corte"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/services/categories", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"barba", "corte"}, resp.Data)
}

func TestCategories_Error(t *testing.T) {
	router := newRouter(&stubCatalogService{
		categoriesFunc: func(ctx context.Context) ([]string, error) {
			return nil, apperrors.Unauthorized("tenant could not be resolved")
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/services/categories", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
