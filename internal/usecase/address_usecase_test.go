package usecase

import (
	"context"
	"testing"

	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSaveAddressReq(userID int64) *SaveAddressReq {
	return &SaveAddressReq{
		UserID:       userID,
		Name:         "Asha Patel",
		Phone:        "9876543210",
		AddressLine1: "12 MG Road",
		City:         "Pune",
		State:        "Maharashtra",
		Pincode:      "411001",
	}
}

func newAddressFixture(t *testing.T) (*AddressUseCase, *fakeAddressRepo, *fakeVerifier) {
	t.Helper()

	addressRepo := newFakeAddressRepo()
	verifier := &fakeVerifier{}
	uc := NewAddressUC(addressRepo, verifier, &fakeTxManager{}, nopLogger{})

	return uc, addressRepo, verifier
}

func TestCreateAddressFirstBecomesDefault(t *testing.T) {
	uc, _, verifier := newAddressFixture(t)
	ctx := context.Background()

	first, err := uc.CreateAddress(ctx, validSaveAddressReq(7))
	require.NoError(t, err)
	assert.True(t, first.IsDefault)
	assert.Equal(t, 1, verifier.calls)

	second, err := uc.CreateAddress(ctx, validSaveAddressReq(7))
	require.NoError(t, err)
	assert.False(t, second.IsDefault)
}

func TestCreateAddressExplicitDefaultDisplacesOld(t *testing.T) {
	uc, _, _ := newAddressFixture(t)
	ctx := context.Background()

	first, err := uc.CreateAddress(ctx, validSaveAddressReq(7))
	require.NoError(t, err)

	req := validSaveAddressReq(7)
	req.IsDefault = true
	second, err := uc.CreateAddress(ctx, req)
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	addresses, err := uc.ListAddresses(ctx, 7)
	require.NoError(t, err)
	require.Len(t, addresses, 2)
	for _, a := range addresses {
		if a.ID == first.ID {
			assert.False(t, a.IsDefault)
		}
	}
}

func TestCreateAddressVerifierFailure(t *testing.T) {
	uc, addressRepo, verifier := newAddressFixture(t)
	verifier.err = e.ErrPincodeMismatch

	_, err := uc.CreateAddress(context.Background(), validSaveAddressReq(7))
	assert.ErrorIs(t, err, e.ErrPincodeMismatch)
	assert.Empty(t, addressRepo.addresses)
}

func TestCreateAddressFieldValidation(t *testing.T) {
	uc, _, verifier := newAddressFixture(t)

	req := validSaveAddressReq(7)
	req.Pincode = "123"

	_, err := uc.CreateAddress(context.Background(), req)
	assert.ErrorIs(t, err, e.ErrPincodeInvalid)
	// До внешней проверки дело не дошло
	assert.Zero(t, verifier.calls)
}

func TestUpdateAddressOwnership(t *testing.T) {
	uc, _, _ := newAddressFixture(t)
	ctx := context.Background()

	created, err := uc.CreateAddress(ctx, validSaveAddressReq(7))
	require.NoError(t, err)

	// Чужой адрес неотличим от несуществующего
	req := validSaveAddressReq(9)
	req.AddressID = created.ID
	_, err = uc.UpdateAddress(ctx, req)
	assert.ErrorIs(t, err, e.ErrAddressNotFound)

	req = validSaveAddressReq(7)
	req.AddressID = created.ID
	req.City = "Mumbai"
	updated, err := uc.UpdateAddress(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", updated.City)
	// Статус адреса по умолчанию не теряется при обновлении
	assert.True(t, updated.IsDefault)
}

func TestDeleteAddressPromotesNextDefault(t *testing.T) {
	uc, _, _ := newAddressFixture(t)
	ctx := context.Background()

	first, err := uc.CreateAddress(ctx, validSaveAddressReq(7))
	require.NoError(t, err)
	second, err := uc.CreateAddress(ctx, validSaveAddressReq(7))
	require.NoError(t, err)
	require.False(t, second.IsDefault)

	require.NoError(t, uc.DeleteAddress(ctx, first.ID, 7))

	addresses, err := uc.ListAddresses(ctx, 7)
	require.NoError(t, err)
	require.Len(t, addresses, 1)
	assert.Equal(t, second.ID, addresses[0].ID)
	assert.True(t, addresses[0].IsDefault)
}

func TestDeleteAddressOwnership(t *testing.T) {
	uc, _, _ := newAddressFixture(t)
	ctx := context.Background()

	created, err := uc.CreateAddress(ctx, validSaveAddressReq(7))
	require.NoError(t, err)

	err = uc.DeleteAddress(ctx, created.ID, 9)
	assert.ErrorIs(t, err, e.ErrAddressNotFound)

	err = uc.DeleteAddress(ctx, 404, 7)
	assert.ErrorIs(t, err, e.ErrAddressNotFound)
}
