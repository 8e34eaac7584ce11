package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aquaflow/internal/config"
	"aquaflow/internal/domain"
	"aquaflow/internal/dto"
	apperrors "aquaflow/internal/errors"
	"aquaflow/internal/order/repository"
	"aquaflow/internal/session"
	"aquaflow/internal/store"
)

func strPtr(s string) *string {
	return &s
}

type mockProductLookup struct {
	FindByIDFunc func(ctx context.Context, id string) (domain.Product, bool)
}

func (m *mockProductLookup) FindByID(ctx context.Context, id string) (domain.Product, bool) {
	return m.FindByIDFunc(ctx, id)
}

type mockDriverLookup struct {
	FindByIDFunc func(ctx context.Context, id string) (domain.DeliveryDriver, bool)
}

func (m *mockDriverLookup) FindByID(ctx context.Context, id string) (domain.DeliveryDriver, bool) {
	return m.FindByIDFunc(ctx, id)
}

type mockCompanyLookup struct {
	FindByIDFunc func(ctx context.Context, id string) (domain.Company, bool)
}

func (m *mockCompanyLookup) FindByID(ctx context.Context, id string) (domain.Company, bool) {
	return m.FindByIDFunc(ctx, id)
}

// trackingRepository reports whether a call happens inside an Update mutate.
type trackingRepository struct {
	*repository.OrderRepository
	inUpdate bool
}

func (r *trackingRepository) Update(ctx context.Context, id string, mutate func(*domain.Order) error) (domain.Order, bool, error) {
	return r.OrderRepository.Update(ctx, id, func(o *domain.Order) error {
		r.inUpdate = true
		defer func() { r.inUpdate = false }()
		return mutate(o)
	})
}

type mockPublisher struct {
	events []domain.OrderEvent
	err    error
}

func (m *mockPublisher) Publish(ctx context.Context, event domain.OrderEvent) error {
	m.events = append(m.events, event)
	return m.err
}

var (
	fixedNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	catalog = map[string]domain.Product{
		"p-20l": {ID: "p-20l", CompanyID: "c-1", Name: "Jug", Size: "20L", Price: 25, IsActive: true},
		"p-5l":  {ID: "p-5l", CompanyID: "c-1", Name: "Bottle", Size: "5L", Price: 4.5, IsActive: true},
		"p-old": {ID: "p-old", CompanyID: "c-1", Name: "Retired", Size: "10L", Price: 9, IsActive: false},
		"p-c2":  {ID: "p-c2", CompanyID: "c-2", Name: "Other", Size: "20L", Price: 30, IsActive: true},
	}

	fleet = map[string]domain.DeliveryDriver{
		"d-1": {ID: "d-1", CompanyID: "c-1", Name: "Ana"},
		"d-2": {ID: "d-2", CompanyID: "c-2", Name: "Bo"},
	}

	tenants = map[string]domain.Company{
		"c-1": {ID: "c-1", Name: "AquaPure", Status: domain.CompanyStatusActive},
		"c-2": {ID: "c-2", Name: "Crystal", Status: domain.CompanyStatusActive},
	}

	adminSession   = session.New(domain.User{ID: "u-admin", Role: domain.RoleAdmin})
	ownerSession   = session.New(domain.User{ID: "u-owner", Role: domain.RoleCompanyAdmin, CompanyID: strPtr("c-1")})
	staffSession   = session.New(domain.User{ID: "u-staff", Role: domain.RoleStaff, CompanyID: strPtr("c-1")})
	outsiderStaff  = session.New(domain.User{ID: "u-other", Role: domain.RoleStaff, CompanyID: strPtr("c-2")})
	defaultPricing = config.OrderConfig{TaxRate: 0.10, DeliveryFee: 5}
)

type fixture struct {
	svc       *OrderService
	repo      *repository.OrderRepository
	publisher *mockPublisher
}

func newFixture(t *testing.T, seed ...domain.Order) fixture {
	t.Helper()
	repo := repository.NewOrderRepository(store.NewMemorySlot(), seed, zap.NewNop())
	repo.Load(context.Background())

	publisher := &mockPublisher{}
	svc := NewOrderService(
		repo,
		&mockProductLookup{FindByIDFunc: func(ctx context.Context, id string) (domain.Product, bool) {
			p, ok := catalog[id]
			return p, ok
		}},
		&mockDriverLookup{FindByIDFunc: func(ctx context.Context, id string) (domain.DeliveryDriver, bool) {
			d, ok := fleet[id]
			return d, ok
		}},
		&mockCompanyLookup{FindByIDFunc: func(ctx context.Context, id string) (domain.Company, bool) {
			c, ok := tenants[id]
			return c, ok
		}},
		publisher,
		defaultPricing,
		zap.NewNop(),
	)
	svc.now = func() time.Time { return fixedNow }
	ids := 0
	svc.newID = func() string {
		ids++
		return "o-new-" + string(rune('0'+ids))
	}
	return fixture{svc: svc, repo: repo, publisher: publisher}
}

func seededOrder(id, companyID string, status domain.OrderStatus) domain.Order {
	o := domain.Order{
		ID:           id,
		OrderNumber:  "ORD-TEST-" + id,
		CompanyID:    companyID,
		CustomerName: "Customer " + id,
		Status:       status,
		Items:        []domain.OrderItem{domain.NewOrderItem(catalog["p-20l"], 1)},
		DeliveryFee:  5,
		CreatedAt:    fixedNow.Add(-time.Hour),
		UpdatedAt:    fixedNow.Add(-time.Hour),
	}
	o.Reprice(0.10)
	return o
}

func TestCreate_PricesAndPersists(t *testing.T) {
	f := newFixture(t)

	order, err := f.svc.Create(context.Background(), staffSession, dto.CreateOrderRequest{
		CustomerName: "Lia",
		Items:        []dto.OrderItemRequest{{ProductID: "p-20l", Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, "o-new-1", order.ID)
	assert.Equal(t, "c-1", order.CompanyID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Regexp(t, `^ORD-[0-9A-Z]{1,6}-\d{3}$`, order.OrderNumber)
	assert.Equal(t, 50.0, order.Subtotal)
	assert.Equal(t, 5.0, order.DeliveryFee)
	assert.Equal(t, 5.0, order.Tax)
	assert.Equal(t, 60.0, order.TotalAmount)
	assert.Equal(t, fixedNow, order.CreatedAt)
	assert.Equal(t, fixedNow, order.UpdatedAt)
	assert.Equal(t, "Jug", order.Items[0].Product.Name)

	stored, ok := f.repo.FindByID(context.Background(), order.ID)
	require.True(t, ok)
	assert.Equal(t, order, stored)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, domain.OrderEventCreated, f.publisher.events[0].Type)
	assert.Equal(t, "u-staff", f.publisher.events[0].ActorID)
}

func TestCreate_UsesProvidedStatusAndFee(t *testing.T) {
	f := newFixture(t)
	status := domain.OrderStatusConfirmed
	fee := 0.0

	order, err := f.svc.Create(context.Background(), ownerSession, dto.CreateOrderRequest{
		CustomerName: "Lia",
		Items:        []dto.OrderItemRequest{{ProductID: "p-5l", Quantity: 3}},
		DeliveryFee:  &fee,
		Status:       &status,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
	assert.Equal(t, 13.5, order.Subtotal)
	assert.Equal(t, 1.35, order.Tax)
	assert.InDelta(t, 14.85, order.TotalAmount, 1e-9)
}

func TestCreate_RejectsUnorderableProducts(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), staffSession, dto.CreateOrderRequest{
		CustomerName: "Lia",
		Items: []dto.OrderItemRequest{
			{ProductID: "p-old", Quantity: 1},
			{ProductID: "p-c2", Quantity: 1},
			{ProductID: "missing", Quantity: 1},
		},
	})

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Len(t, ve.Details, 3)
	assert.Empty(t, f.repo.List(context.Background()))
	assert.Empty(t, f.publisher.events)
}

func TestCreate_AdminMustNameCompany(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), adminSession, dto.CreateOrderRequest{
		CustomerName: "Lia",
		Items:        []dto.OrderItemRequest{{ProductID: "p-20l", Quantity: 1}},
	})

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestCreate_StaffCannotTargetOtherCompany(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), staffSession, dto.CreateOrderRequest{
		CompanyID:    "c-2",
		CustomerName: "Lia",
		Items:        []dto.OrderItemRequest{{ProductID: "p-c2", Quantity: 1}},
	})

	_, ok := apperrors.IsForbiddenError(err)
	assert.True(t, ok)
}

func TestCreate_UnknownCompany(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), adminSession, dto.CreateOrderRequest{
		CompanyID:    "c-404",
		CustomerName: "Lia",
		Items:        []dto.OrderItemRequest{{ProductID: "p-20l", Quantity: 1}},
	})

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	require.Len(t, ve.Details, 1)
	assert.Equal(t, "companyId", ve.Details[0].Field)
	assert.Empty(t, f.repo.List(context.Background()))
	assert.Empty(t, f.publisher.events)
}

func TestCreate_BacksOutWhenCompanyRemovedMeanwhile(t *testing.T) {
	f := newFixture(t)
	lookups := 0
	f.svc.companies = &mockCompanyLookup{FindByIDFunc: func(ctx context.Context, id string) (domain.Company, bool) {
		lookups++
		return tenants[id], lookups == 1
	}}

	_, err := f.svc.Create(context.Background(), staffSession, dto.CreateOrderRequest{
		CustomerName: "Lia",
		Items:        []dto.OrderItemRequest{{ProductID: "p-20l", Quantity: 1}},
	})

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, 2, lookups)
	assert.Empty(t, f.repo.List(context.Background()))
	assert.Empty(t, f.publisher.events)
}

func TestCreate_InitialStatusNeedsOverride(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	delivered := domain.OrderStatusDelivered

	_, err := f.svc.Create(ctx, staffSession, dto.CreateOrderRequest{
		CustomerName: "Lia",
		Items:        []dto.OrderItemRequest{{ProductID: "p-20l", Quantity: 1}},
		Status:       &delivered,
	})
	_, ok := apperrors.IsForbiddenError(err)
	assert.True(t, ok)
	assert.Empty(t, f.repo.List(ctx))

	pending := domain.OrderStatusPending
	order, err := f.svc.Create(ctx, staffSession, dto.CreateOrderRequest{
		CustomerName: "Lia",
		Items:        []dto.OrderItemRequest{{ProductID: "p-20l", Quantity: 1}},
		Status:       &pending,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)

	order, err = f.svc.Create(ctx, adminSession, dto.CreateOrderRequest{
		CompanyID:    "c-1",
		CustomerName: "Lia",
		Items:        []dto.OrderItemRequest{{ProductID: "p-20l", Quantity: 1}},
		Status:       &delivered,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, order.Status)
}

func TestCreate_PublishFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("broker down")

	order, err := f.svc.Create(context.Background(), staffSession, dto.CreateOrderRequest{
		CustomerName: "Lia",
		Items:        []dto.OrderItemRequest{{ProductID: "p-20l", Quantity: 1}},
	})

	require.NoError(t, err)
	_, ok := f.repo.FindByID(context.Background(), order.ID)
	assert.True(t, ok)
}

func TestGet_ScopesByCompany(t *testing.T) {
	f := newFixture(t, seededOrder("o-1", "c-1", domain.OrderStatusPending))

	_, err := f.svc.Get(context.Background(), outsiderStaff, "o-1")
	_, ok := apperrors.IsForbiddenError(err)
	assert.True(t, ok)

	got, err := f.svc.Get(context.Background(), adminSession, "o-1")
	require.NoError(t, err)
	assert.Equal(t, "o-1", got.ID)

	_, err = f.svc.Get(context.Background(), adminSession, "missing")
	_, ok = apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestList_FiltersByCompanyAndStatus(t *testing.T) {
	f := newFixture(t,
		seededOrder("o-1", "c-1", domain.OrderStatusPending),
		seededOrder("o-2", "c-2", domain.OrderStatusPending),
		seededOrder("o-3", "c-1", domain.OrderStatusDelivered),
	)
	ctx := context.Background()

	all, err := f.svc.List(ctx, adminSession, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := f.svc.List(ctx, staffSession, ListFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "o-1", mine[0].ID)
	assert.Equal(t, "o-3", mine[1].ID)

	delivered, err := f.svc.List(ctx, adminSession, ListFilter{CompanyID: "c-1", Status: domain.OrderStatusDelivered})
	require.NoError(t, err)
	require.Len(t, delivered, 1)
	assert.Equal(t, "o-3", delivered[0].ID)

	_, err = f.svc.List(ctx, staffSession, ListFilter{CompanyID: "c-2"})
	_, ok := apperrors.IsForbiddenError(err)
	assert.True(t, ok)
}

func TestUpdate_MergesRepricesAndStamps(t *testing.T) {
	f := newFixture(t, seededOrder("o-1", "c-1", domain.OrderStatusPending))
	items := []dto.OrderItemRequest{{ProductID: "p-20l", Quantity: 4}}

	updated, err := f.svc.Update(context.Background(), staffSession, "o-1", dto.UpdateOrderRequest{
		CustomerName: strPtr("Renamed"),
		Items:        &items,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.CustomerName)
	assert.Equal(t, 100.0, updated.Subtotal)
	assert.Equal(t, 10.0, updated.Tax)
	assert.Equal(t, 115.0, updated.TotalAmount)
	assert.Equal(t, fixedNow, updated.UpdatedAt)
	assert.Equal(t, fixedNow.Add(-time.Hour), updated.CreatedAt)
	assert.Equal(t, domain.OrderStatusPending, updated.Status)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, domain.OrderEventUpdated, f.publisher.events[0].Type)
}

func TestUpdate_RejectsStatusField(t *testing.T) {
	f := newFixture(t, seededOrder("o-1", "c-1", domain.OrderStatusPending))
	status := domain.OrderStatusDelivered

	_, err := f.svc.Update(context.Background(), ownerSession, "o-1", dto.UpdateOrderRequest{Status: &status})

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
	got, _ := f.repo.FindByID(context.Background(), "o-1")
	assert.Equal(t, domain.OrderStatusPending, got.Status)
}

func TestUpdate_UnknownOrder(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Update(context.Background(), adminSession, "missing", dto.UpdateOrderRequest{CustomerName: strPtr("x")})

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestDelete(t *testing.T) {
	f := newFixture(t, seededOrder("o-1", "c-1", domain.OrderStatusPending))
	ctx := context.Background()

	err := f.svc.Delete(ctx, outsiderStaff, "o-1")
	_, ok := apperrors.IsForbiddenError(err)
	assert.True(t, ok)

	require.NoError(t, f.svc.Delete(ctx, staffSession, "o-1"))
	_, found := f.repo.FindByID(ctx, "o-1")
	assert.False(t, found)

	assert.NoError(t, f.svc.Delete(ctx, staffSession, "o-1"))
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, domain.OrderEventDeleted, f.publisher.events[0].Type)
	assert.Nil(t, f.publisher.events[0].Order)
}

func TestTransition_AdjacentStep(t *testing.T) {
	f := newFixture(t, seededOrder("o-1", "c-1", domain.OrderStatusPending))

	updated, err := f.svc.Transition(context.Background(), staffSession, "o-1", domain.OrderStatusConfirmed, false)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusConfirmed, updated.Status)
	assert.Equal(t, fixedNow, updated.UpdatedAt)
	require.Len(t, f.publisher.events, 1)
	event := f.publisher.events[0]
	assert.Equal(t, domain.OrderEventStatusChanged, event.Type)
	assert.Equal(t, domain.OrderStatusPending, event.PreviousStatus)
	assert.Equal(t, domain.OrderStatusConfirmed, event.Status)
}

func TestTransition_SkipRequiresOverride(t *testing.T) {
	f := newFixture(t, seededOrder("o-1", "c-1", domain.OrderStatusPending))
	ctx := context.Background()

	_, err := f.svc.Transition(ctx, staffSession, "o-1", domain.OrderStatusDelivered, false)
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)

	_, err = f.svc.Transition(ctx, staffSession, "o-1", domain.OrderStatusDelivered, true)
	_, ok = apperrors.IsForbiddenError(err)
	assert.True(t, ok)

	got, _ := f.repo.FindByID(ctx, "o-1")
	assert.Equal(t, domain.OrderStatusPending, got.Status)

	updated, err := f.svc.Transition(ctx, ownerSession, "o-1", domain.OrderStatusDelivered, true)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, updated.Status)
}

func TestTransition_CancelFromAnyActiveStatus(t *testing.T) {
	f := newFixture(t, seededOrder("o-1", "c-1", domain.OrderStatusInTransit))

	updated, err := f.svc.Transition(context.Background(), staffSession, "o-1", domain.OrderStatusCancelled, false)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, updated.Status)

	_, err = f.svc.Transition(context.Background(), staffSession, "o-1", domain.OrderStatusPending, false)
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestTransition_OtherCompany(t *testing.T) {
	f := newFixture(t, seededOrder("o-1", "c-1", domain.OrderStatusPending))

	_, err := f.svc.Transition(context.Background(), outsiderStaff, "o-1", domain.OrderStatusConfirmed, false)

	_, ok := apperrors.IsForbiddenError(err)
	assert.True(t, ok)
}

func TestAdvance_WalksChainToDelivered(t *testing.T) {
	f := newFixture(t, seededOrder("o-1", "c-1", domain.OrderStatusPending))
	ctx := context.Background()

	expected := []domain.OrderStatus{
		domain.OrderStatusConfirmed,
		domain.OrderStatusPreparing,
		domain.OrderStatusReady,
		domain.OrderStatusInTransit,
		domain.OrderStatusDelivered,
	}
	for _, want := range expected {
		updated, err := f.svc.Advance(ctx, staffSession, "o-1")
		require.NoError(t, err)
		assert.Equal(t, want, updated.Status)
	}

	_, err := f.svc.Advance(ctx, staffSession, "o-1")
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
	assert.Len(t, f.publisher.events, len(expected))
}

func TestAssignDriver(t *testing.T) {
	f := newFixture(t, seededOrder("o-1", "c-1", domain.OrderStatusReady))
	ctx := context.Background()

	updated, err := f.svc.AssignDriver(ctx, staffSession, "o-1", strPtr("d-1"))
	require.NoError(t, err)
	require.NotNil(t, updated.AssignedDriver)
	assert.Equal(t, "d-1", *updated.AssignedDriver)

	deliveries, err := f.svc.DriverDeliveries(ctx, staffSession, "d-1")
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	assert.Equal(t, "o-1", deliveries[0].ID)

	cleared, err := f.svc.AssignDriver(ctx, staffSession, "o-1", nil)
	require.NoError(t, err)
	assert.Nil(t, cleared.AssignedDriver)
}

func TestAssignDriver_RejectsForeignOrUnknownDriver(t *testing.T) {
	f := newFixture(t, seededOrder("o-1", "c-1", domain.OrderStatusReady))
	ctx := context.Background()

	_, err := f.svc.AssignDriver(ctx, adminSession, "o-1", strPtr("d-2"))
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)

	_, err = f.svc.AssignDriver(ctx, adminSession, "o-1", strPtr("d-404"))
	_, ok = apperrors.IsValidationError(err)
	assert.True(t, ok)

	got, _ := f.repo.FindByID(ctx, "o-1")
	assert.Nil(t, got.AssignedDriver)
}

func TestAssignDriver_ChecksDriverInsideUpdate(t *testing.T) {
	f := newFixture(t, seededOrder("o-1", "c-1", domain.OrderStatusReady))
	ctx := context.Background()

	tracked := &trackingRepository{OrderRepository: f.repo}
	f.svc.orders = tracked
	checkedInside := false
	f.svc.drivers = &mockDriverLookup{FindByIDFunc: func(ctx context.Context, id string) (domain.DeliveryDriver, bool) {
		checkedInside = tracked.inUpdate
		d, ok := fleet[id]
		return d, ok
	}}

	_, err := f.svc.AssignDriver(ctx, staffSession, "o-1", strPtr("d-1"))
	require.NoError(t, err)
	assert.True(t, checkedInside)
}

func TestUnassignDriver_PublishesPerClearedOrder(t *testing.T) {
	assigned := func(id, driverID string) domain.Order {
		o := seededOrder(id, "c-1", domain.OrderStatusInTransit)
		o.AssignedDriver = strPtr(driverID)
		return o
	}
	f := newFixture(t,
		assigned("o-1", "d-1"),
		assigned("o-2", "d-2"),
		assigned("o-3", "d-1"),
		seededOrder("o-4", "c-1", domain.OrderStatusReady),
	)
	ctx := context.Background()

	n, err := f.svc.UnassignDriver(ctx, ownerSession, "d-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.Len(t, f.publisher.events, 2)
	for i, want := range []string{"o-1", "o-3"} {
		ev := f.publisher.events[i]
		assert.Equal(t, domain.OrderEventUpdated, ev.Type)
		assert.Equal(t, want, ev.OrderID)
		require.NotNil(t, ev.Order)
		assert.Nil(t, ev.Order.AssignedDriver)
		assert.Equal(t, "u-owner", ev.ActorID)
	}

	o1, _ := f.repo.FindByID(ctx, "o-1")
	assert.Nil(t, o1.AssignedDriver)
	assert.Equal(t, fixedNow, o1.UpdatedAt)
	o2, _ := f.repo.FindByID(ctx, "o-2")
	require.NotNil(t, o2.AssignedDriver)
	assert.Equal(t, "d-2", *o2.AssignedDriver)

	n, err = f.svc.UnassignDriver(ctx, ownerSession, "d-1")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, f.publisher.events, 2)
}

func TestSharedSlot_ConflictingWriterCatchesUp(t *testing.T) {
	slot := store.NewMemorySlot()
	ctx := context.Background()
	build := func() (*OrderService, *repository.OrderRepository) {
		repo := repository.NewOrderRepository(slot, nil, zap.NewNop())
		repo.Load(ctx)
		svc := NewOrderService(
			repo,
			&mockProductLookup{FindByIDFunc: func(ctx context.Context, id string) (domain.Product, bool) {
				p, ok := catalog[id]
				return p, ok
			}},
			&mockDriverLookup{FindByIDFunc: func(ctx context.Context, id string) (domain.DeliveryDriver, bool) {
				d, ok := fleet[id]
				return d, ok
			}},
			&mockCompanyLookup{FindByIDFunc: func(ctx context.Context, id string) (domain.Company, bool) {
				c, ok := tenants[id]
				return c, ok
			}},
			&mockPublisher{},
			defaultPricing,
			zap.NewNop(),
		)
		return svc, repo
	}
	a, _ := build()
	b, bRepo := build()
	a.newID = func() string { return "o-a" }
	b.newID = func() string { return "o-b" }

	req := dto.CreateOrderRequest{
		CustomerName: "Lia",
		Items:        []dto.OrderItemRequest{{ProductID: "p-20l", Quantity: 1}},
	}
	_, err := a.Create(ctx, staffSession, req)
	require.NoError(t, err)

	_, err = b.Create(ctx, staffSession, req)
	_, ok := apperrors.IsConflictError(err)
	require.True(t, ok)

	_, err = b.Create(ctx, staffSession, req)
	require.NoError(t, err)

	listed, err := b.List(ctx, staffSession, ListFilter{})
	require.NoError(t, err)
	ids := []string{}
	for _, o := range listed {
		ids = append(ids, o.ID)
	}
	assert.ElementsMatch(t, []string{"o-a", "o-b"}, ids)
	_, found := bRepo.FindByID(ctx, "o-a")
	assert.True(t, found)
}

func TestDriverDeliveries_Scoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.DriverDeliveries(ctx, staffSession, "d-2")
	_, ok := apperrors.IsForbiddenError(err)
	assert.True(t, ok)

	_, err = f.svc.DriverDeliveries(ctx, staffSession, "d-404")
	_, ok = apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
