package service

import (
	catalogerrors "barberbook/internal/catalog/errors"
	"barberbook/internal/catalog/repository"
	"barberbook/internal/catalog/validator"
	"barberbook/pkg/config"
	apperrors "barberbook/pkg/errors"
	"barberbook/pkg/logger"
	"barberbook/pkg/model"
	"barberbook/pkg/tenant"
	"barberbook/pkg/validation"
	"context"
	"errors"
	"slices"
	"testing"
	"time"
)

type mockServiceRepository struct {
	createFunc     func(ctx context.Context, service *model.Service) error
	findByIDFunc   func(ctx context.Context, tenantID, id string) (*model.Service, error)
	findAllFunc    func(ctx context.Context, tenantID string, filter repository.ServiceFilter, limit int, offset int64) ([]*model.Service, error)
	countFunc      func(ctx context.Context, tenantID string, filter repository.ServiceFilter) (int64, error)
	updateFunc     func(ctx context.Context, tenantID, id string, service *model.Service) error
	deactivateFunc func(ctx context.Context, tenantID, id string) error
	categoriesFunc func(ctx context.Context, tenantID string) ([]string, error)
}

func (m *mockServiceRepository) Create(ctx context.Context, service *model.Service) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, service)
	}
	return nil
}

func (m *mockServiceRepository) FindByID(ctx context.Context, tenantID, id string) (*model.Service, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, tenantID, id)
	}
	return nil, catalogerrors.ErrNotFound
}

func (m *mockServiceRepository) FindAll(ctx context.Context, tenantID string, filter repository.ServiceFilter, limit int, offset int64) ([]*model.Service, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, tenantID, filter, limit, offset)
	}
	return []*model.Service{}, nil
}

func (m *mockServiceRepository) Count(ctx context.Context, tenantID string, filter repository.ServiceFilter) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, tenantID, filter)
	}
	return 0, nil
}

func (m *mockServiceRepository) Update(ctx context.Context, tenantID, id string, service *model.Service) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, tenantID, id, service)
	}
	return nil
}

func (m *mockServiceRepository) Deactivate(ctx context.Context, tenantID, id string) error {
	if m.deactivateFunc != nil {
		return m.deactivateFunc(ctx, tenantID, id)
	}
	return nil
}

func (m *mockServiceRepository) Categories(ctx context.Context, tenantID string) ([]string, error) {
	if m.categoriesFunc != nil {
		return m.categoriesFunc(ctx, tenantID)
	}
	return nil, nil
}

func newTestService(repo *mockServiceRepository) *catalogService {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return &catalogService{
		repo:      repo,
		validator: validator.NewServiceValidator(validation.New(log)),
		cfg: &config.Config{
			Log:                       log,
			ReadTimeout:               5 * time.Second,
			DefaultServiceDurationMin: 30,
		},
	}
}

func tenantCtx() context.Context {
	return tenant.WithTenant(context.Background(), "shop-1")
}

func TestCreate_DefaultsDuration(t *testing.T) {
	var stored *model.Service
	svc := newTestService(&mockServiceRepository{
		createFunc: func(ctx context.Context, service *model.Service) error {
			stored = service
			return nil
		},
	})

	err := svc.Create(tenantCtx(), &model.Service{Name: " Corte  Masculino ", Price: 45, Category: " Hair "})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if stored.DurationMinutes != 30 {
		t.Errorf("DurationMinutes = %d, want 30", stored.DurationMinutes)
	}
	if stored.Name != "Corte Masculino" || stored.Category != "hair" {
		t.Errorf("not sanitized: %q %q", stored.Name, stored.Category)
	}
	if stored.TenantID != "shop-1" || !stored.IsActive {
		t.Errorf("unexpected tenant/active: %s %v", stored.TenantID, stored.IsActive)
	}
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		service model.Service
		field   string
	}{
		{"negative price", model.Service{Name: "Barba", Price: -1}, "price"},
		{"duration too long", model.Service{Name: "Barba", DurationMinutes: 2000}, "duration_minutes"},
		{"missing name", model.Service{Price: 10}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&mockServiceRepository{
				createFunc: func(ctx context.Context, service *model.Service) error {
					t.Fatal("repository must not be called")
					return nil
				},
			})

			service := tt.service
			err := svc.Create(tenantCtx(), &service)
			if !apperrors.HasCode(err, apperrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := apperrors.AsAppError(err).Details[tt.field]; !ok {
				t.Errorf("expected %s in details, got %v", tt.field, apperrors.AsAppError(err).Details)
			}
		})
	}
}

func TestUpdate_InvalidMergeRejected(t *testing.T) {
	svc := newTestService(&mockServiceRepository{
		findByIDFunc: func(ctx context.Context, tenantID, id string) (*model.Service, error) {
			return &model.Service{ID: id, TenantID: tenantID, Name: "Corte", Price: 40, DurationMinutes: 30}, nil
		},
		updateFunc: func(ctx context.Context, tenantID, id string, service *model.Service) error {
			t.Fatal("repository must not be called")
			return nil
		},
	})

	zero := 0
	_, err := svc.Update(tenantCtx(), "507f1f77bcf86cd799439011", &model.ServiceUpdate{DurationMinutes: &zero})
	if !apperrors.HasCode(err, apperrors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestGetAll_PassesFilter(t *testing.T) {
	svc := newTestService(&mockServiceRepository{
		countFunc: func(ctx context.Context, tenantID string, filter repository.ServiceFilter) (int64, error) {
			return 1, nil
		},
		findAllFunc: func(ctx context.Context, tenantID string, filter repository.ServiceFilter, limit int, offset int64) ([]*model.Service, error) {
			if filter.Category != "beard" || !filter.ActiveOnly {
				t.Errorf("unexpected filter %+v", filter)
			}
			return []*model.Service{{ID: "1"}}, nil
		},
	})

	services, count, err := svc.GetAll(tenantCtx(), repository.ServiceFilter{ActiveOnly: true, Category: " Beard"}, 10, 0)
	if err != nil || count != 1 || len(services) != 1 {
		t.Errorf("GetAll() = %v, %d, %v", services, count, err)
	}
}

func TestGetByID_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantCode string
	}{
		{"not found", catalogerrors.ErrNotFound, apperrors.CodeNotFound},
		{"invalid id", catalogerrors.ErrInvalidID, apperrors.CodeInvalidInput},
		{"other", context.DeadlineExceeded, apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&mockServiceRepository{
				findByIDFunc: func(ctx context.Context, tenantID, id string) (*model.Service, error) {
					return nil, tt.repoErr
				},
			})
			_, err := svc.GetByID(tenantCtx(), "x")
			if !apperrors.HasCode(err, tt.wantCode) {
				t.Errorf("expected %s, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestCategories_MergesDefaults(t *testing.T) {
	svc := newTestService(&mockServiceRepository{
		categoriesFunc: func(ctx context.Context, tenantID string) ([]string, error) {
			if tenantID != "shop-1" {
				t.Errorf("tenantID = %q", tenantID)
			}
			return []string{"Barba", "coloração", "corte"}, nil
		},
	})

	got, err := svc.Categories(tenantCtx())
	if err != nil {
		t.Fatalf("Categories() error = %v", err)
	}
	want := []string{"barba", "coloração", "corte", "pacote", "tratamento"}
	if !slices.Equal(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestCategories_StoreFailure(t *testing.T) {
	svc := newTestService(&mockServiceRepository{
		categoriesFunc: func(ctx context.Context, tenantID string) ([]string, error) {
			return nil, errors.New("connection reset")
		},
	})

	_, err := svc.Categories(tenantCtx())
	if !apperrors.HasCode(err, apperrors.CodeInternal) {
		t.Errorf("expected internal error, got %v", err)
	}
}

func TestCategories_RequiresTenant(t *testing.T) {
	svc := newTestService(&mockServiceRepository{})

	if _, err := svc.Categories(context.Background()); err == nil {
		t.Error("expected an error without a tenant")
	}
}
