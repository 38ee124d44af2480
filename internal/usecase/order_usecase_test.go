package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/soil2spoon/go-backend/internal/domain"
	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCheckoutReq(userID int64) *CheckoutReq {
	return &CheckoutReq{
		UserID:        userID,
		ShippingName:  "Asha Patel",
		Phone:         "9876543210",
		AddressLine1:  "12 MG Road",
		City:          "Pune",
		State:         "Maharashtra",
		Pincode:       "411001",
		PaymentMethod: "COD",
	}
}

func newOrderFixture(t *testing.T) (*OrderUseCase, *fakeProductRepo, *fakeCartRepo, *fakeOrderRepo, *fakeOutboxRepo, *fakeVerifier, *fakeTxManager) {
	t.Helper()

	productRepo := newFakeProductRepo(
		&domain.Product{ID: 1, Slug: "alphonso-mango", Name: "Alphonso Mango", Price: 49900},
		&domain.Product{ID: 2, Slug: "basmati-rice", Name: "Basmati Rice", Price: 19900},
	)
	cartRepo := newFakeCartRepo(productRepo)
	orderRepo := &fakeOrderRepo{}
	outboxRepo := &fakeOutboxRepo{}
	verifier := &fakeVerifier{}
	txm := &fakeTxManager{}

	uc := NewOrderUC(orderRepo, cartRepo, outboxRepo, verifier, txm, nopLogger{})

	return uc, productRepo, cartRepo, orderRepo, outboxRepo, verifier, txm
}

func fillCart(t *testing.T, cartRepo *fakeCartRepo, userID int64) {
	t.Helper()

	require.NoError(t, cartRepo.CreateMany(context.Background(), []domain.CartItem{
		{UserID: userID, ProductID: 1, Quantity: 2},
		{UserID: userID, ProductID: 2, Quantity: 1},
	}))
}

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	uc, _, cartRepo, _, outboxRepo, verifier, txm := newOrderFixture(t)
	ctx := context.Background()
	fillCart(t, cartRepo, 7)

	res, err := uc.Checkout(ctx, validCheckoutReq(7))
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPending, res.Status)
	assert.Equal(t, int64(2*49900+19900), res.Total)
	assert.Equal(t, "COD", res.PaymentMethod)
	require.Len(t, res.Items, 2)
	assert.Equal(t, int64(49900), res.Items[0].Price)
	assert.Equal(t, 2, res.Items[0].Quantity)
	assert.Equal(t, "Alphonso Mango", res.Items[0].Name)
	assert.Equal(t, 1, verifier.calls)
	assert.True(t, txm.last().committed)

	// Корзина очищена той же транзакцией
	lines, err := cartRepo.ListByUser(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, lines)

	// Событие о заказе встало в очередь
	require.Len(t, outboxRepo.events, 1)
	assert.Equal(t, OrderCreated, outboxRepo.events[0].EventType)
	assert.Equal(t, res.ID, outboxRepo.events[0].OrderID)

	var event OrderCreatedEvent
	require.NoError(t, json.Unmarshal(outboxRepo.events[0].Payload, &event))
	assert.Equal(t, res.Total, event.Total)
	assert.Equal(t, 2, event.ItemCount)
}

func TestCheckoutPriceSnapshotSurvivesPriceChange(t *testing.T) {
	uc, productRepo, cartRepo, orderRepo, _, _, _ := newOrderFixture(t)
	ctx := context.Background()
	fillCart(t, cartRepo, 7)

	res, err := uc.Checkout(ctx, validCheckoutReq(7))
	require.NoError(t, err)

	// Цена товара меняется после оформления
	productRepo.products[1].Price = 99900

	orders, err := orderRepo.ListByUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, res.Total, orders[0].Total)
	assert.Equal(t, int64(49900), orders[0].Items[0].PriceAtOrder)
}

func TestCheckoutEmptyCart(t *testing.T) {
	uc, _, _, orderRepo, _, verifier, txm := newOrderFixture(t)

	_, err := uc.Checkout(context.Background(), validCheckoutReq(7))
	assert.ErrorIs(t, err, e.ErrCartEmpty)
	assert.Empty(t, orderRepo.orders)
	assert.Zero(t, verifier.calls)
	assert.True(t, txm.last().rolledBack)
}

func TestCheckoutShippingValidation(t *testing.T) {
	uc, _, cartRepo, orderRepo, _, _, _ := newOrderFixture(t)
	ctx := context.Background()
	fillCart(t, cartRepo, 7)

	t.Run("no shipping data at all", func(t *testing.T) {
		_, err := uc.Checkout(ctx, &CheckoutReq{UserID: 7})
		assert.ErrorIs(t, err, e.ErrShippingRequired)
	})

	t.Run("partial shipping data", func(t *testing.T) {
		req := validCheckoutReq(7)
		req.Pincode = ""
		_, err := uc.Checkout(ctx, req)
		assert.ErrorIs(t, err, e.ErrShippingFieldsRequired)
	})

	t.Run("invalid phone", func(t *testing.T) {
		req := validCheckoutReq(7)
		req.Phone = "12345"
		_, err := uc.Checkout(ctx, req)
		assert.ErrorIs(t, err, e.ErrPhoneInvalid)
	})

	// Ни одна из неудачных попыток не тронула корзину и не создала заказ
	lines, err := cartRepo.ListByUser(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
	assert.Empty(t, orderRepo.orders)
}

func TestCheckoutVerifierFailureKeepsCart(t *testing.T) {
	uc, _, cartRepo, orderRepo, outboxRepo, verifier, txm := newOrderFixture(t)
	ctx := context.Background()
	fillCart(t, cartRepo, 7)

	verifier.err = e.ErrAddressNotInIndia

	_, err := uc.Checkout(ctx, validCheckoutReq(7))
	assert.ErrorIs(t, err, e.ErrAddressNotInIndia)
	assert.True(t, txm.last().rolledBack)
	assert.Empty(t, orderRepo.orders)
	assert.Empty(t, outboxRepo.events)

	lines, err := cartRepo.ListByUser(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestCheckoutWithoutOutbox(t *testing.T) {
	productRepo := newFakeProductRepo(&domain.Product{ID: 1, Slug: "alphonso-mango", Name: "Alphonso Mango", Price: 49900})
	cartRepo := newFakeCartRepo(productRepo)
	uc := NewOrderUC(&fakeOrderRepo{}, cartRepo, nil, &fakeVerifier{}, &fakeTxManager{}, nopLogger{})

	ctx := context.Background()
	require.NoError(t, cartRepo.CreateMany(ctx, []domain.CartItem{{UserID: 7, ProductID: 1, Quantity: 1}}))

	res, err := uc.Checkout(ctx, validCheckoutReq(7))
	require.NoError(t, err)
	assert.Equal(t, int64(49900), res.Total)
}

func TestCheckoutPaymentMethodOptional(t *testing.T) {
	uc, _, cartRepo, orderRepo, _, _, _ := newOrderFixture(t)
	ctx := context.Background()
	fillCart(t, cartRepo, 7)

	req := validCheckoutReq(7)
	req.PaymentMethod = ""

	res, err := uc.Checkout(ctx, req)
	require.NoError(t, err)
	assert.Empty(t, res.PaymentMethod)

	orders, err := orderRepo.ListByUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Empty(t, orders[0].PaymentMethod)
}

func TestListOrdersNewestFirst(t *testing.T) {
	uc, _, cartRepo, _, _, _, _ := newOrderFixture(t)
	ctx := context.Background()

	fillCart(t, cartRepo, 7)
	first, err := uc.Checkout(ctx, validCheckoutReq(7))
	require.NoError(t, err)

	require.NoError(t, cartRepo.CreateMany(ctx, []domain.CartItem{{UserID: 7, ProductID: 2, Quantity: 3}}))
	second, err := uc.Checkout(ctx, validCheckoutReq(7))
	require.NoError(t, err)

	orders, err := uc.ListOrders(ctx, 7)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)

	// Чужие заказы не видны
	other, err := uc.ListOrders(ctx, 8)
	require.NoError(t, err)
	assert.Empty(t, other)
}
