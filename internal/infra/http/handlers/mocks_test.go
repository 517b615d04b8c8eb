package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/max-knopp/intellio/internal/entity"
	"github.com/max-knopp/intellio/internal/usecase"
)

type mockLeadRepository struct {
	mock.Mock
}

func (m *mockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *mockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *mockLeadRepository) FindAllForUser(ctx context.Context, userID string) ([]entity.Lead, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *mockLeadRepository) FindByStatuses(ctx context.Context, statuses []entity.LeadStatus) ([]entity.Lead, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *mockLeadRepository) Update(ctx context.Context, id string, fields usecase.LeadUpdate) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

type mockUserDirectory struct {
	mock.Mock
}

func (m *mockUserDirectory) FindIDByEmail(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Dispatch(ctx context.Context, session usecase.Session, leadID, message string) error {
	args := m.Called(ctx, session, leadID, message)
	return args.Error(0)
}
