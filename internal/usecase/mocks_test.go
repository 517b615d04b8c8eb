package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/max-knopp/intellio/internal/entity"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindAllForUser(ctx context.Context, userID string) ([]entity.Lead, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByStatuses(ctx context.Context, statuses []entity.LeadStatus) ([]entity.Lead, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, id string, fields LeadUpdate) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) FindIDByEmail(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

type MockMembership struct {
	mock.Mock
}

func (m *MockMembership) IsMember(ctx context.Context, orgID, userID string) (bool, error) {
	args := m.Called(ctx, orgID, userID)
	return args.Bool(0), args.Error(1)
}

type MockDispatchLogRepository struct {
	mock.Mock
}

func (m *MockDispatchLogRepository) Insert(ctx context.Context, log *entity.DispatchLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

type MockOutreachGateway struct {
	mock.Mock
}

func (m *MockOutreachGateway) IngestRecord(ctx context.Context, payload entity.OutreachRecord) (int, string, error) {
	args := m.Called(ctx, payload)
	return args.Int(0), args.String(1), args.Error(2)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishLeadIngested(ctx context.Context, event LeadIngestedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, session Session, leadID, message string) error {
	args := m.Called(ctx, session, leadID, message)
	return args.Error(0)
}
