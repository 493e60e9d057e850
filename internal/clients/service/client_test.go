package service

import (
	clienterrors "barberbook/internal/clients/errors"
	"barberbook/internal/clients/repository"
	"barberbook/internal/clients/validator"
	"barberbook/pkg/config"
	apperrors "barberbook/pkg/errors"
	"barberbook/pkg/logger"
	"barberbook/pkg/model"
	"barberbook/pkg/tenant"
	"barberbook/pkg/validation"
	"context"
	"testing"
	"time"
)

type mockClientRepository struct {
	createFunc      func(ctx context.Context, client *model.Client) error
	findByIDFunc    func(ctx context.Context, tenantID, id string) (*model.Client, error)
	findAllFunc     func(ctx context.Context, tenantID string, filter repository.ClientFilter, limit int, offset int64) ([]*model.Client, error)
	updateFunc      func(ctx context.Context, tenantID, id string, client *model.Client) error
	recordVisitFunc func(ctx context.Context, tenantID, id string, visit model.VisitRecord) error
}

func (m *mockClientRepository) Create(ctx context.Context, client *model.Client) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, client)
	}
	return nil
}

func (m *mockClientRepository) FindByID(ctx context.Context, tenantID, id string) (*model.Client, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, tenantID, id)
	}
	return nil, clienterrors.ErrNotFound
}

func (m *mockClientRepository) FindAll(ctx context.Context, tenantID string, filter repository.ClientFilter, limit int, offset int64) ([]*model.Client, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, tenantID, filter, limit, offset)
	}
	return []*model.Client{}, nil
}

func (m *mockClientRepository) Count(ctx context.Context, tenantID string, filter repository.ClientFilter) (int64, error) {
	return 0, nil
}

func (m *mockClientRepository) Update(ctx context.Context, tenantID, id string, client *model.Client) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, tenantID, id, client)
	}
	return nil
}

func (m *mockClientRepository) RecordVisit(ctx context.Context, tenantID, id string, visit model.VisitRecord) error {
	if m.recordVisitFunc != nil {
		return m.recordVisitFunc(ctx, tenantID, id, visit)
	}
	return nil
}

func (m *mockClientRepository) Deactivate(ctx context.Context, tenantID, id string) error {
	return nil
}

func newTestService(repo *mockClientRepository) *clientService {
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return &clientService{
		repo:      repo,
		validator: validator.NewClientValidator(validation.New(log)),
		cfg: &config.Config{
			Log:                log,
			ReadTimeout:        5 * time.Second,
			DefaultPhoneRegion: "BR",
		},
	}
}

func tenantCtx() context.Context {
	return tenant.WithTenant(context.Background(), "shop-1")
}

func TestCreate_NormalizesPhone(t *testing.T) {
	var stored *model.Client
	svc := newTestService(&mockClientRepository{
		createFunc: func(ctx context.Context, client *model.Client) error {
			stored = client
			return nil
		},
	})

	client := &model.Client{
		Name:              "Carlos  Lima",
		Phone:             "(11) 91234-5678",
		Email:             " Carlos@Example.COM ",
		TotalAppointments: 99,
	}
	if err := svc.Create(tenantCtx(), client); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if stored.Phone != "+5511912345678" {
		t.Errorf("Phone = %q", stored.Phone)
	}
	if stored.Email != "carlos@example.com" || stored.Name != "Carlos Lima" {
		t.Errorf("not sanitized: %q %q", stored.Email, stored.Name)
	}
	if stored.TotalAppointments != 0 {
		t.Errorf("statistics must not be client-controlled")
	}
}

func TestCreate_PhoneErrors(t *testing.T) {
	tests := []struct {
		name     string
		phone    string
		repoErr  error
		wantCode string
	}{
		{"missing phone", "", nil, apperrors.CodeValidation},
		{"garbage phone", "call me maybe", nil, apperrors.CodeValidation},
		{"duplicate phone", "+5511912345678", clienterrors.ErrPhoneTaken, apperrors.CodeConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&mockClientRepository{
				createFunc: func(ctx context.Context, client *model.Client) error {
					return tt.repoErr
				},
			})
			err := svc.Create(tenantCtx(), &model.Client{Name: "Carlos", Phone: tt.phone})
			if !apperrors.HasCode(err, tt.wantCode) {
				t.Errorf("expected %s, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestGetAll_NormalizesPhoneFilter(t *testing.T) {
	svc := newTestService(&mockClientRepository{
		findAllFunc: func(ctx context.Context, tenantID string, filter repository.ClientFilter, limit int, offset int64) ([]*model.Client, error) {
			if filter.Phone != "+5511912345678" {
				t.Errorf("Phone filter = %q", filter.Phone)
			}
			return []*model.Client{}, nil
		},
	})

	if _, _, err := svc.GetAll(tenantCtx(), repository.ClientFilter{Phone: "11 91234-5678"}, 10, 0); err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}

	_, _, err := svc.GetAll(tenantCtx(), repository.ClientFilter{Phone: "nope"}, 10, 0)
	if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestUpdate_KeepsStatistics(t *testing.T) {
	visit := time.Date(2030, 1, 7, 14, 0, 0, 0, time.UTC)
	svc := newTestService(&mockClientRepository{
		findByIDFunc: func(ctx context.Context, tenantID, id string) (*model.Client, error) {
			return &model.Client{
				ID: id, TenantID: tenantID, Name: "Carlos", Phone: "+5511912345678",
				IsActive: true, TotalAppointments: 3, TotalSpent: 120, LastVisit: &visit,
			}, nil
		},
	})

	notes := "  prefers scissors  "
	updated, err := svc.Update(tenantCtx(), "507f1f77bcf86cd799439011", &model.ClientUpdate{Notes: &notes})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Notes != "prefers scissors" || updated.TotalAppointments != 3 || updated.LastVisit == nil {
		t.Errorf("unexpected merge %+v", updated)
	}
}

func TestGetAll_NormalizesSearchTerm(t *testing.T) {
	svc := newTestService(&mockClientRepository{
		findAllFunc: func(ctx context.Context, tenantID string, filter repository.ClientFilter, limit int, offset int64) ([]*model.Client, error) {
			if filter.Search != "ana silva" {
				t.Errorf("Search filter = %q", filter.Search)
			}
			return []*model.Client{}, nil
		},
	})

	if _, _, err := svc.GetAll(tenantCtx(), repository.ClientFilter{Search: "  ana   silva "}, 10, 0); err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
}
