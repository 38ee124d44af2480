package usecase

import (
	"context"

	"github.com/soil2spoon/go-backend/internal/domain"
	"github.com/soil2spoon/go-backend/pkg/e"
	"github.com/soil2spoon/go-backend/pkg/logger"
)

// AddressUseCase управляет адресной книгой пользователя.
type AddressUseCase struct {
	addressRepo AddressRepository
	verifier    AddressVerifier
	txm         TxManager
	logger      logger.Logger
}

func NewAddressUC(
	addressRepo AddressRepository,
	verifier AddressVerifier,
	txm TxManager,
	logger logger.Logger,
) *AddressUseCase {
	return &AddressUseCase{
		addressRepo: addressRepo,
		verifier:    verifier,
		txm:         txm,
		logger:      logger,
	}
}

func (a *AddressUseCase) ListAddresses(ctx context.Context, userID int64) ([]AddressRes, error) {
	const op = "AddressUseCase.ListAddresses"

	addresses, err := a.addressRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res := make([]AddressRes, 0, len(addresses))
	for i := range addresses {
		res = append(res, NewAddressRes(&addresses[i]))
	}

	return res, nil
}

// CreateAddress сохраняет адрес после проверки полей и внешней
// верификации. Первый адрес пользователя становится адресом по умолчанию.
func (a *AddressUseCase) CreateAddress(ctx context.Context, req *SaveAddressReq) (*AddressRes, error) {
	const op = "AddressUseCase.CreateAddress"

	var err error
	err = a.validateAndVerify(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	existing, err := a.addressRepo.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	isDefault := req.IsDefault || len(existing) == 0

	ctx, tx, err := a.txm.Begin(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()

	if isDefault {
		err = a.addressRepo.ClearDefaultByUser(ctx, req.UserID)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	created, err := a.addressRepo.Create(ctx, newAddress(req, isDefault))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res := NewAddressRes(created)

	return &res, nil
}

// UpdateAddress обновляет собственный адрес пользователя.
func (a *AddressUseCase) UpdateAddress(ctx context.Context, req *SaveAddressReq) (*AddressRes, error) {
	const op = "AddressUseCase.UpdateAddress"

	var err error
	err = a.validateAndVerify(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	current, err := a.ownedAddress(ctx, req.AddressID, req.UserID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := a.txm.Begin(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()

	if req.IsDefault && !current.IsDefault {
		err = a.addressRepo.ClearDefaultByUser(ctx, req.UserID)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	address := newAddress(req, req.IsDefault || current.IsDefault)
	address.ID = req.AddressID

	updated, err := a.addressRepo.Update(ctx, address)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res := NewAddressRes(updated)

	return &res, nil
}

// DeleteAddress удаляет собственный адрес пользователя. Если удалён
// адрес по умолчанию, им становится первый из оставшихся.
func (a *AddressUseCase) DeleteAddress(ctx context.Context, addressID, userID int64) error {
	const op = "AddressUseCase.DeleteAddress"

	var err error
	current, err := a.ownedAddress(ctx, addressID, userID)
	if err != nil {
		return e.Wrap(op, err)
	}

	ctx, tx, err := a.txm.Begin(ctx)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()

	err = a.addressRepo.Delete(ctx, addressID)
	if err != nil {
		return e.Wrap(op, err)
	}

	if current.IsDefault {
		err = a.promoteNextDefault(ctx, userID)
		if err != nil {
			return e.Wrap(op, err)
		}
	}

	err = tx.Commit(ctx)
	if err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// ownedAddress возвращает адрес, только если он принадлежит пользователю.
// Чужие адреса неотличимы от несуществующих.
func (a *AddressUseCase) ownedAddress(ctx context.Context, addressID, userID int64) (*domain.Address, error) {
	address, err := a.addressRepo.GetByID(ctx, addressID)
	if err != nil {
		return nil, err
	}

	if address.UserID != userID {
		return nil, e.ErrAddressNotFound
	}

	return address, nil
}

func (a *AddressUseCase) promoteNextDefault(ctx context.Context, userID int64) error {
	remaining, err := a.addressRepo.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	if len(remaining) == 0 {
		return nil
	}

	next := remaining[0]
	next.IsDefault = true

	_, err = a.addressRepo.Update(ctx, &next)

	return err
}

func (a *AddressUseCase) validateAndVerify(ctx context.Context, req *SaveAddressReq) error {
	if err := validateShippingFields(req.Name, req.Phone, req.AddressLine1, req.City, req.State, req.Pincode); err != nil {
		return err
	}

	return a.verifier.Verify(ctx, &VerifyAddressReq{
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
	})
}

func newAddress(req *SaveAddressReq, isDefault bool) *domain.Address {
	return &domain.Address{
		UserID:       req.UserID,
		Name:         req.Name,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
		IsDefault:    isDefault,
	}
}
