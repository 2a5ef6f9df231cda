package service

import (
	"context"
	"testing"

	"servistakip/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type mockServiceRepo struct {
	mock.Mock
}

func (m *mockServiceRepo) Create(ctx context.Context, s *domain.Service) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *mockServiceRepo) List(ctx context.Context) ([]domain.Service, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Service), args.Error(1)
}

func (m *mockServiceRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Service, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Service), args.Error(1)
}

func (m *mockServiceRepo) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *mockServiceRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockQuoteRepo struct {
	mock.Mock
}

func (m *mockQuoteRepo) Create(ctx context.Context, sp *domain.ServicePart) error {
	args := m.Called(ctx, sp)
	return args.Error(0)
}

func (m *mockQuoteRepo) Get(ctx context.Context, serviceID, partID int64) (*domain.ServicePart, error) {
	args := m.Called(ctx, serviceID, partID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServicePart), args.Error(1)
}

func (m *mockQuoteRepo) ListByService(ctx context.Context, serviceID int64) ([]domain.ServicePart, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServicePart), args.Error(1)
}

func (m *mockQuoteRepo) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *mockQuoteRepo) Delete(ctx context.Context, serviceID, partID int64) error {
	args := m.Called(ctx, serviceID, partID)
	return args.Error(0)
}

type mockCustomerReader struct {
	mock.Mock
}

func (m *mockCustomerReader) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *mockCustomerReader) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

type mockDeviceReader struct {
	mock.Mock
}

func (m *mockDeviceReader) GetByID(ctx context.Context, id int64) (*domain.Device, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Device), args.Error(1)
}

type mockPartReader struct {
	mock.Mock
}

func (m *mockPartReader) GetByID(ctx context.Context, id int64) (*domain.DevicePart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DevicePart), args.Error(1)
}

type mockUserReader struct {
	mock.Mock
}

func (m *mockUserReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type testDeps struct {
	services  *mockServiceRepo
	quote     *mockQuoteRepo
	customers *mockCustomerReader
	devices   *mockDeviceReader
	parts     *mockPartReader
	users     *mockUserReader
}

func newTestService() (*Service, *testDeps) {
	deps := &testDeps{
		services:  new(mockServiceRepo),
		quote:     new(mockQuoteRepo),
		customers: new(mockCustomerReader),
		devices:   new(mockDeviceReader),
		parts:     new(mockPartReader),
		users:     new(mockUserReader),
	}
	svc := NewService(deps.services, deps.quote, deps.customers, deps.devices, deps.parts, deps.users)
	return svc, deps
}

func TestService_Create_StartsPending(t *testing.T) {
	svc, deps := newTestService()

	deps.customers.On("GetByID", mock.Anything, int64(1)).Return(&domain.Customer{ID: 1}, nil)
	deps.devices.On("GetByID", mock.Anything, int64(2)).Return(&domain.Device{ID: 2}, nil)
	deps.users.On("GetByID", mock.Anything, int64(3)).Return(&domain.User{ID: 3, Role: domain.RoleTechnician}, nil)
	deps.services.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Service) bool {
		return s.Status == domain.StatusPending
	})).Return(nil)

	ticket, err := svc.Create(context.Background(), CreateServiceRequest{
		CustomerID:   1,
		DeviceID:     2,
		TechnicianID: 3,
		Problem:      "Ekran kırık",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusPending, ticket.Status)
	deps.services.AssertExpectations(t)
}

func TestService_Create_RejectsBlankProblem(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateServiceRequest{
		CustomerID:   1,
		DeviceID:     2,
		TechnicianID: 3,
		Problem:      "   ",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Create_UnknownCustomer(t *testing.T) {
	svc, deps := newTestService()

	deps.customers.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), CreateServiceRequest{
		CustomerID:   99,
		DeviceID:     2,
		TechnicianID: 3,
		Problem:      "Açılmıyor",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Update_RejectsInvalidTransition(t *testing.T) {
	svc, deps := newTestService()

	deps.services.On("GetByID", mock.Anything, int64(1)).Return(&domain.Service{
		ID:     1,
		Status: domain.StatusDelivered,
	}, nil)

	next := string(domain.StatusInReview)
	_, err := svc.Update(context.Background(), 1, UpdateServiceRequest{Status: &next})

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	deps.services.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Update_RejectsUnknownStatus(t *testing.T) {
	svc, deps := newTestService()

	deps.services.On("GetByID", mock.Anything, int64(1)).Return(&domain.Service{
		ID:     1,
		Status: domain.StatusPending,
	}, nil)

	next := "KAYIP"
	_, err := svc.Update(context.Background(), 1, UpdateServiceRequest{Status: &next})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_Update_AllowsForwardSkip(t *testing.T) {
	svc, deps := newTestService()

	current := &domain.Service{ID: 1, CustomerID: 1, DeviceID: 2, Status: domain.StatusPending}
	deps.services.On("GetByID", mock.Anything, int64(1)).Return(current, nil)
	deps.services.On("UpdateFields", mock.Anything, int64(1), mock.MatchedBy(func(f map[string]any) bool {
		return f["status"] == string(domain.StatusRepaired)
	})).Return(nil)
	deps.customers.On("GetByID", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)
	deps.devices.On("GetByID", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	next := string(domain.StatusRepaired)
	_, err := svc.Update(context.Background(), 1, UpdateServiceRequest{Status: &next})

	assert.NoError(t, err)
	deps.services.AssertExpectations(t)
}

func TestService_Update_RejectsNegativePrice(t *testing.T) {
	svc, deps := newTestService()

	deps.services.On("GetByID", mock.Anything, int64(1)).Return(&domain.Service{
		ID:     1,
		Status: domain.StatusPending,
	}, nil)

	price := -50.0
	_, err := svc.Update(context.Background(), 1, UpdateServiceRequest{Price: &price})

	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestService_GetStatusByPhone_UnknownNumberEmpty(t *testing.T) {
	svc, deps := newTestService()

	deps.customers.On("GetByPhone", mock.Anything, "5551112233").Return(nil, gorm.ErrRecordNotFound)

	out, err := svc.GetStatusByPhone(context.Background(), "0555 111 22 33")

	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestService_GetStatusByPhone_ReturnsSummaries(t *testing.T) {
	svc, deps := newTestService()

	deps.customers.On("GetByPhone", mock.Anything, "5346496748").Return(&domain.Customer{ID: 4}, nil)
	deps.services.On("ListByCustomer", mock.Anything, int64(4)).Return([]domain.Service{
		{ID: 11, DeviceID: 2, Status: domain.StatusInReview, Problem: "Ekran kırık"},
	}, nil)
	deps.devices.On("GetByID", mock.Anything, int64(2)).Return(&domain.Device{
		ID: 2, Brand: "Apple", Model: "iPhone 13",
	}, nil)

	out, err := svc.GetStatusByPhone(context.Background(), "0534 649 67 48")

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, int64(11), out[0].ServiceID)
	assert.Equal(t, "Apple", out[0].DeviceBrand)
	assert.Equal(t, domain.StatusInReview, out[0].Status)
}

func TestService_AddPart_CapturesPrice(t *testing.T) {
	svc, deps := newTestService()

	deps.services.On("GetByID", mock.Anything, int64(1)).Return(&domain.Service{ID: 1, DeviceID: 2}, nil)
	deps.parts.On("GetByID", mock.Anything, int64(7)).Return(&domain.DevicePart{
		ID: 7, DeviceID: 2, Name: "Ekran", Price: 4500,
	}, nil)
	deps.quote.On("Get", mock.Anything, int64(1), int64(7)).Return(nil, gorm.ErrRecordNotFound)
	deps.quote.On("Create", mock.Anything, mock.MatchedBy(func(sp *domain.ServicePart) bool {
		return sp.Price == 4500 && sp.Quantity == 1
	})).Return(nil)

	line, err := svc.AddPart(context.Background(), 1, AddPartRequest{PartID: 7})

	assert.NoError(t, err)
	assert.Equal(t, 4500.0, line.Price)
	deps.quote.AssertExpectations(t)
}

func TestService_AddPart_IncrementsExistingLine(t *testing.T) {
	svc, deps := newTestService()

	deps.services.On("GetByID", mock.Anything, int64(1)).Return(&domain.Service{ID: 1, DeviceID: 2}, nil)
	deps.parts.On("GetByID", mock.Anything, int64(7)).Return(&domain.DevicePart{
		ID: 7, DeviceID: 2, Price: 4500,
	}, nil)
	deps.quote.On("Get", mock.Anything, int64(1), int64(7)).Return(&domain.ServicePart{
		ID: 31, ServiceID: 1, PartID: 7, Quantity: 1, Price: 4500,
	}, nil)
	deps.quote.On("UpdateQuantity", mock.Anything, int64(31), 3).Return(nil)

	line, err := svc.AddPart(context.Background(), 1, AddPartRequest{PartID: 7, Quantity: 2})

	assert.NoError(t, err)
	assert.Equal(t, 3, line.Quantity)
	deps.quote.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_AddPart_RejectsOtherDevicesPart(t *testing.T) {
	svc, deps := newTestService()

	deps.services.On("GetByID", mock.Anything, int64(1)).Return(&domain.Service{ID: 1, DeviceID: 2}, nil)
	deps.parts.On("GetByID", mock.Anything, int64(8)).Return(&domain.DevicePart{
		ID: 8, DeviceID: 99,
	}, nil)

	_, err := svc.AddPart(context.Background(), 1, AddPartRequest{PartID: 8})

	assert.ErrorIs(t, err, ErrPartDeviceMismatch)
}

func TestService_SetPartQuantity_ZeroRemoves(t *testing.T) {
	svc, deps := newTestService()

	deps.quote.On("Get", mock.Anything, int64(1), int64(7)).Return(&domain.ServicePart{
		ID: 31, ServiceID: 1, PartID: 7, Quantity: 2,
	}, nil)
	deps.quote.On("Delete", mock.Anything, int64(1), int64(7)).Return(nil)

	err := svc.SetPartQuantity(context.Background(), 1, 7, 0)

	assert.NoError(t, err)
	deps.quote.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}

func TestComputeTotal(t *testing.T) {
	lines := []domain.ServicePart{
		{Price: 4500, Quantity: 1},
		{Price: 1200, Quantity: 2},
		{Price: 100, Quantity: 0},
	}

	assert.Equal(t, 7000.0, ComputeTotal(lines))
	assert.Equal(t, 0.0, ComputeTotal(nil))
}

func TestCanTransition_Table(t *testing.T) {
	cases := []struct {
		from, to domain.ServiceStatus
		ok       bool
	}{
		{domain.StatusPending, domain.StatusInReview, true},
		{domain.StatusPending, domain.StatusDelivered, true},
		{domain.StatusInReview, domain.StatusPending, false},
		{domain.StatusRepaired, domain.StatusDelivered, true},
		{domain.StatusDelivered, domain.StatusCancelled, true},
		{domain.StatusDelivered, domain.StatusRepaired, false},
		{domain.StatusCancelled, domain.StatusPending, false},
		{domain.StatusCancelled, domain.StatusDelivered, false},
		{domain.StatusInReview, domain.StatusInReview, true},
		{domain.StatusPending, domain.StatusCancelled, true},
	}

	for _, c := range cases {
		assert.Equal(t, c.ok, domain.CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}
