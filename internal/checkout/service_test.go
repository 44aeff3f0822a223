package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-service/internal/models"
)

var fixedNow = time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, sink *fakeOrderSink, pub *fakePublisher) *Service {
	t.Helper()

	catalog := newFakeCatalog(
		testProduct(1, "Camiseta", "10"),
		testProduct(2, "Meia", "5"),
		testProduct(3, "Vestido", "120"),
		testProduct(4, "Calça", "50"),
	)
	customers := newFakeCustomers(models.Customer{
		ID:    7,
		Name:  "Maria",
		Email: "maria@example.com",
		Phone: "+5511999990000",
	})

	svc := NewService("tenant-1", catalog, customers, sink, pub, time.Hour)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestAddItemIncrementsQuantity(t *testing.T) {
	svc := newTestService(t, &fakeOrderSink{}, &fakePublisher{})
	ctx := context.Background()
	session := svc.OpenSession()

	_, err := svc.AddItem(ctx, session.ID, 1, "")
	require.NoError(t, err)
	view, err := svc.AddItem(ctx, session.ID, 1, "")
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, "20.00", view.Total.StringFixed(2))
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	sink := &fakeOrderSink{}
	svc := newTestService(t, sink, &fakePublisher{})
	session := svc.OpenSession()

	_, err := svc.SetPaymentMethod(session.ID, models.PaymentCash)
	require.NoError(t, err)

	_, err = svc.Checkout(context.Background(), session.ID)
	assert.True(t, models.IsValidation(err))

	view, err := svc.GetSession(session.ID)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, view.State)
	assert.Empty(t, sink.orders)
}

func TestFiadoWithoutCustomerRejected(t *testing.T) {
	svc := newTestService(t, &fakeOrderSink{}, &fakePublisher{})
	ctx := context.Background()
	session := svc.OpenSession()

	_, err := svc.AddItem(ctx, session.ID, 1, "")
	require.NoError(t, err)
	_, err = svc.SetPaymentMethod(session.ID, models.PaymentFiado)
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, session.ID)
	assert.True(t, models.IsValidation(err))

	view, err := svc.GetSession(session.ID)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, view.State)
	assert.Nil(t, view.Schedule)
}

func TestCashSaleEndToEnd(t *testing.T) {
	sink := &fakeOrderSink{}
	pub := &fakePublisher{}
	svc := newTestService(t, sink, pub)
	ctx := context.Background()
	session := svc.OpenSession()

	_, err := svc.AddItem(ctx, session.ID, 4, "")
	require.NoError(t, err)
	_, err = svc.SetPaymentMethod(session.ID, models.PaymentCash)
	require.NoError(t, err)

	result, err := svc.Checkout(ctx, session.ID)
	require.NoError(t, err)
	require.True(t, result.Finalized)

	order := result.Order
	assert.Equal(t, models.WalkInCustomerName, order.CustomerName)
	assert.Nil(t, order.CustomerID)
	assert.Equal(t, "50.00", order.Total.StringFixed(2))
	assert.Equal(t, models.PaymentCash, order.PaymentMethod)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
	assert.Equal(t, models.OriginPOS, order.Origin)
	assert.Equal(t, models.ShippingPickup, order.Shipping)
	assert.True(t, order.ShippingCost.IsZero())
	assert.Empty(t, order.Installments)

	// transient state cleared, order retained for the receipt view
	view := result.Session
	assert.Equal(t, StateIdle, view.State)
	assert.Empty(t, view.Items)
	assert.Nil(t, view.Customer)
	assert.Empty(t, string(view.PaymentMethod))
	require.NotNil(t, view.LastOrder)
	assert.Equal(t, order.ID, view.LastOrder.ID)

	require.Len(t, sink.orders, 1)
	require.Len(t, pub.events, 1)
	assert.Equal(t, order.ID, pub.events[0].OrderID)
}

func TestFiadoSaleEndToEnd(t *testing.T) {
	sink := &fakeOrderSink{}
	pub := &fakePublisher{}
	svc := newTestService(t, sink, pub)
	ctx := context.Background()
	session := svc.OpenSession()

	_, err := svc.AddItem(ctx, session.ID, 3, "")
	require.NoError(t, err)

	customerID := int64(7)
	_, err = svc.SelectCustomer(ctx, session.ID, &customerID)
	require.NoError(t, err)
	_, err = svc.SetPaymentMethod(session.ID, models.PaymentFiado)
	require.NoError(t, err)

	result, err := svc.Checkout(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, result.Finalized)
	assert.Nil(t, result.Order)
	assert.Equal(t, StatePendingCreditConfig, result.Session.State)
	require.Len(t, result.Session.Schedule, 1)
	assert.Equal(t, "120.00", result.Session.Schedule[0].Amount.StringFixed(2))

	view, err := svc.SetInstallmentCount(session.ID, 4)
	require.NoError(t, err)
	require.Len(t, view.Schedule, 4)
	for i, inst := range view.Schedule {
		assert.Equal(t, "30.00", inst.Amount.StringFixed(2))
		assert.Equal(t, fixedNow.AddDate(0, 0, 30*(i+1)), inst.DueDate)
	}

	confirmed, err := svc.ConfirmCredit(ctx, session.ID)
	require.NoError(t, err)
	require.True(t, confirmed.Finalized)
	require.Len(t, confirmed.Order.Installments, 4)
	assert.Equal(t, "Maria", confirmed.Order.CustomerName)
	require.NotNil(t, confirmed.Order.CustomerID)
	assert.Equal(t, int64(7), *confirmed.Order.CustomerID)

	assert.Equal(t, StateIdle, confirmed.Session.State)
	assert.Empty(t, confirmed.Session.Items)
	assert.Nil(t, confirmed.Session.Schedule)
	assert.Nil(t, confirmed.Session.Customer)

	require.Len(t, pub.events, 1)
	assert.Equal(t, 4, pub.events[0].Installments)
	assert.Equal(t, "+5511999990000", pub.events[0].CustomerPhone)
}

func TestRegenerateDiscardsManualDueDateEdits(t *testing.T) {
	svc := newTestService(t, &fakeOrderSink{}, &fakePublisher{})
	ctx := context.Background()
	session := svc.OpenSession()

	_, err := svc.AddItem(ctx, session.ID, 3, "")
	require.NoError(t, err)
	customerID := int64(7)
	_, err = svc.SelectCustomer(ctx, session.ID, &customerID)
	require.NoError(t, err)
	_, err = svc.SetPaymentMethod(session.ID, models.PaymentFiado)
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, session.ID)
	require.NoError(t, err)

	_, err = svc.SetInstallmentCount(session.ID, 2)
	require.NoError(t, err)

	edited := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)
	view, err := svc.EditInstallmentDueDate(session.ID, 1, edited)
	require.NoError(t, err)
	assert.Equal(t, edited, view.Schedule[0].DueDate)

	// count change regenerates the whole schedule, dropping the edit
	view, err = svc.SetInstallmentCount(session.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.AddDate(0, 0, 30), view.Schedule[0].DueDate)
}

func TestCancelCreditReturnsToIdleWithoutSideEffects(t *testing.T) {
	sink := &fakeOrderSink{}
	svc := newTestService(t, sink, &fakePublisher{})
	ctx := context.Background()
	session := svc.OpenSession()

	_, err := svc.AddItem(ctx, session.ID, 3, "")
	require.NoError(t, err)
	customerID := int64(7)
	_, err = svc.SelectCustomer(ctx, session.ID, &customerID)
	require.NoError(t, err)
	_, err = svc.SetPaymentMethod(session.ID, models.PaymentFiado)
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, session.ID)
	require.NoError(t, err)

	view, err := svc.CancelCredit(session.ID)
	require.NoError(t, err)

	assert.Equal(t, StateIdle, view.State)
	assert.Nil(t, view.Schedule)
	// cart and customer survive the abandoned configuration
	assert.Len(t, view.Items, 1)
	require.NotNil(t, view.Customer)
	assert.Equal(t, "Maria", view.Customer.Name)
	assert.Empty(t, sink.orders)
}

func TestCartMutationRejectedDuringCreditConfig(t *testing.T) {
	svc := newTestService(t, &fakeOrderSink{}, &fakePublisher{})
	ctx := context.Background()
	session := svc.OpenSession()

	_, err := svc.AddItem(ctx, session.ID, 3, "")
	require.NoError(t, err)
	customerID := int64(7)
	_, err = svc.SelectCustomer(ctx, session.ID, &customerID)
	require.NoError(t, err)
	_, err = svc.SetPaymentMethod(session.ID, models.PaymentFiado)
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, session.ID)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, session.ID, 1, "")
	assert.True(t, models.IsValidation(err))
	_, err = svc.RemoveItem(session.ID, 3)
	assert.True(t, models.IsValidation(err))
}

func TestEditItemOverridesPriceAndQuantity(t *testing.T) {
	svc := newTestService(t, &fakeOrderSink{}, &fakePublisher{})
	ctx := context.Background()
	session := svc.OpenSession()

	_, err := svc.AddItem(ctx, session.ID, 1, "")
	require.NoError(t, err)

	view, err := svc.EditItem(session.ID, 1, decimal.RequireFromString("8.90"), 3)
	require.NoError(t, err)
	assert.Equal(t, "26.70", view.Total.StringFixed(2))

	_, err = svc.EditItem(session.ID, 1, decimal.NewFromInt(-1), 3)
	assert.True(t, models.IsValidation(err))
}

func TestOrderSinkFailureKeepsSessionIntact(t *testing.T) {
	sink := &fakeOrderSink{failErr: assert.AnError}
	svc := newTestService(t, sink, &fakePublisher{})
	ctx := context.Background()
	session := svc.OpenSession()

	_, err := svc.AddItem(ctx, session.ID, 4, "")
	require.NoError(t, err)
	_, err = svc.SetPaymentMethod(session.ID, models.PaymentCash)
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, session.ID)
	require.Error(t, err)

	// the cart is still there for a retry
	view, err := svc.GetSession(session.ID)
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, models.PaymentCash, view.PaymentMethod)
}

func TestAcknowledgeOrderClearsReceipt(t *testing.T) {
	svc := newTestService(t, &fakeOrderSink{}, &fakePublisher{})
	ctx := context.Background()
	session := svc.OpenSession()

	_, err := svc.AddItem(ctx, session.ID, 4, "")
	require.NoError(t, err)
	_, err = svc.SetPaymentMethod(session.ID, models.PaymentPix)
	require.NoError(t, err)
	result, err := svc.Checkout(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, result.Session.LastOrder)

	view, err := svc.AcknowledgeOrder(session.ID)
	require.NoError(t, err)
	assert.Nil(t, view.LastOrder)
}

func TestSessionExpiry(t *testing.T) {
	svc := newTestService(t, &fakeOrderSink{}, &fakePublisher{})
	session := svc.OpenSession()

	svc.now = func() time.Time { return fixedNow.Add(2 * time.Hour) }
	svc.sweepExpired()

	_, err := svc.GetSession(session.ID)
	assert.True(t, models.IsNotFound(err))
}

func TestUnknownSession(t *testing.T) {
	svc := newTestService(t, &fakeOrderSink{}, &fakePublisher{})
	_, err := svc.GetSession("nope")
	assert.True(t, models.IsNotFound(err))
}
