package usecase

import (
	"context"
	"testing"

	"github.com/soil2spoon/go-backend/internal/domain"
	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartFixture(t *testing.T) (*CartUseCase, *fakeCartRepo, *fakeTxManager) {
	t.Helper()

	productRepo := newFakeProductRepo(
		&domain.Product{ID: 1, Slug: "alphonso-mango", Name: "Alphonso Mango", Price: 49900},
		&domain.Product{ID: 2, Slug: "basmati-rice", Name: "Basmati Rice", Price: 19900},
	)
	cartRepo := newFakeCartRepo(productRepo)
	txm := &fakeTxManager{}

	return NewCartUC(cartRepo, productRepo, txm, nopLogger{}), cartRepo, txm
}

func TestSetCartReplacesContents(t *testing.T) {
	uc, _, txm := newCartFixture(t)
	ctx := context.Background()

	lines, err := uc.SetCart(ctx, &SetCartReq{UserID: 7, Items: []SetCartItem{
		{ProductID: 1, Quantity: 2},
	}})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(49900), lines[0].Price)
	assert.Equal(t, "Alphonso Mango", lines[0].Name)
	assert.True(t, txm.last().committed)

	// Повторная установка замещает корзину целиком
	lines, err = uc.SetCart(ctx, &SetCartReq{UserID: 7, Items: []SetCartItem{
		{ProductID: 2, Quantity: 5},
	}})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, int64(2), lines[0].ProductID)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestGetCartKeepsInsertionOrder(t *testing.T) {
	uc, _, _ := newCartFixture(t)
	ctx := context.Background()

	// Позиции возвращаются в порядке добавления, а не по ID товара
	_, err := uc.SetCart(ctx, &SetCartReq{UserID: 7, Items: []SetCartItem{
		{ProductID: 2, Quantity: 1},
		{ProductID: 1, Quantity: 1},
	}})
	require.NoError(t, err)

	lines, err := uc.GetCart(ctx, 7)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, int64(2), lines[0].ProductID)
	assert.Equal(t, int64(1), lines[1].ProductID)
}

func TestSetCartDropsNonPositiveQuantities(t *testing.T) {
	uc, _, _ := newCartFixture(t)

	lines, err := uc.SetCart(context.Background(), &SetCartReq{UserID: 7, Items: []SetCartItem{
		{ProductID: 1, Quantity: 0},
		{ProductID: 2, Quantity: -3},
	}})
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestSetCartUnknownProductRejectsWholeRequest(t *testing.T) {
	uc, cartRepo, _ := newCartFixture(t)
	ctx := context.Background()

	_, err := uc.SetCart(ctx, &SetCartReq{UserID: 7, Items: []SetCartItem{
		{ProductID: 1, Quantity: 1},
		{ProductID: 99, Quantity: 1},
	}})
	assert.ErrorIs(t, err, e.ErrProductNotFound)

	lines, err := cartRepo.ListByUser(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestSetCartEmptyClearsCart(t *testing.T) {
	uc, _, _ := newCartFixture(t)
	ctx := context.Background()

	_, err := uc.SetCart(ctx, &SetCartReq{UserID: 7, Items: []SetCartItem{{ProductID: 1, Quantity: 1}}})
	require.NoError(t, err)

	lines, err := uc.SetCart(ctx, &SetCartReq{UserID: 7})
	require.NoError(t, err)
	assert.Empty(t, lines)

	lines, err = uc.GetCart(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestGetCartIsolatedPerUser(t *testing.T) {
	uc, _, _ := newCartFixture(t)
	ctx := context.Background()

	_, err := uc.SetCart(ctx, &SetCartReq{UserID: 7, Items: []SetCartItem{{ProductID: 1, Quantity: 1}}})
	require.NoError(t, err)

	lines, err := uc.GetCart(ctx, 8)
	require.NoError(t, err)
	assert.Empty(t, lines)
}
